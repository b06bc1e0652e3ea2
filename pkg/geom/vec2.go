package geom

import (
	"fmt"
	"math"

	"github.com/chazu/kerf/pkg/scalar"
	v2 "github.com/deadsy/sdfx/vec/v2"
)

// Point2 is a location in the plane.
type Point2 v2.Vec

// Vector2 is a displacement in the plane.
type Vector2 v2.Vec

// P2 returns the point (x, y).
func P2(x, y float64) Point2 { return Point2{X: x, Y: y} }

// V2 returns the vector (x, y).
func V2(x, y float64) Vector2 { return Vector2{X: x, Y: y} }

// Point2FromVector returns the point at the tip of v placed at the origin.
func Point2FromVector(v Vector2) Point2 { return Point2(v) }

// Vector returns the position vector of p.
func (p Point2) Vector() Vector2 { return Vector2(p) }

// Add returns p displaced by v.
func (p Point2) Add(v Vector2) Point2 { return Point2(v2.Vec(p).Add(v2.Vec(v))) }

// Sub returns the vector from q to p.
func (p Point2) Sub(q Point2) Vector2 { return Vector2(v2.Vec(p).Sub(v2.Vec(q))) }

// DistanceTo returns the distance between p and q.
func (p Point2) DistanceTo(q Point2) float64 { return p.Sub(q).Length() }

// IsFinite reports whether both coordinates are finite.
func (p Point2) IsFinite() bool { return scalar.AllFinite(p.X, p.Y) }

// ApproxEqual reports whether p and q are within tol.Distance.
func (p Point2) ApproxEqual(q Point2, tol Tol) bool {
	return p.DistanceTo(q) <= tol.Distance*math.Max(1, p.Vector().Length())
}

// Min returns the component-wise minimum.
func (p Point2) Min(q Point2) Point2 { return Point2{X: math.Min(p.X, q.X), Y: math.Min(p.Y, q.Y)} }

// Max returns the component-wise maximum.
func (p Point2) Max(q Point2) Point2 { return Point2{X: math.Max(p.X, q.X), Y: math.Max(p.Y, q.Y)} }

func (p Point2) String() string { return fmt.Sprintf("(%g, %g)", p.X, p.Y) }

// Add returns v + w.
func (v Vector2) Add(w Vector2) Vector2 { return Vector2(v2.Vec(v).Add(v2.Vec(w))) }

// Sub returns v - w.
func (v Vector2) Sub(w Vector2) Vector2 { return Vector2(v2.Vec(v).Sub(v2.Vec(w))) }

// Scale returns v multiplied by k.
func (v Vector2) Scale(k float64) Vector2 { return Vector2(v2.Vec(v).MulScalar(k)) }

// Mul returns the component-wise product.
func (v Vector2) Mul(w Vector2) Vector2 { return Vector2{X: v.X * w.X, Y: v.Y * w.Y} }

// Neg returns -v.
func (v Vector2) Neg() Vector2 { return Vector2{X: -v.X, Y: -v.Y} }

// Dot returns the scalar product.
func (v Vector2) Dot(w Vector2) float64 { return v2.Vec(v).Dot(v2.Vec(w)) }

// Cross returns the z component of the 3D cross product of v and w.
func (v Vector2) Cross(w Vector2) float64 { return v.X*w.Y - v.Y*w.X }

// Perp returns v rotated a quarter turn counter-clockwise.
func (v Vector2) Perp() Vector2 { return Vector2{X: -v.Y, Y: v.X} }

// Length returns |v|.
func (v Vector2) Length() float64 { return v2.Vec(v).Length() }

// Angle returns the polar angle of v in (-π, π].
func (v Vector2) Angle() float64 { return math.Atan2(v.Y, v.X) }

// IsFinite reports whether both components are finite.
func (v Vector2) IsFinite() bool { return scalar.AllFinite(v.X, v.Y) }

// IsZero reports whether |v| is within tol.Distance.
func (v Vector2) IsZero(tol Tol) bool { return v.Length() <= tol.Distance }

// ApproxEqual reports whether v and w are within tol.Distance.
func (v Vector2) ApproxEqual(w Vector2, tol Tol) bool {
	return v.Sub(w).Length() <= tol.Distance*math.Max(1, v.Length())
}

func (v Vector2) String() string { return fmt.Sprintf("<%g, %g>", v.X, v.Y) }

// Direction2 is a unit vector in the plane.
type Direction2 struct {
	v Vector2
}

// NewDirection2 normalizes v, failing with ErrZeroVector for zero input.
func NewDirection2(v Vector2, tol Tol) (Direction2, error) {
	if !v.IsFinite() {
		return Direction2{}, Fail("direction", ErrInvalidGeometry, "vector %v is not finite", v)
	}
	l := v.Length()
	if l <= tol.Distance {
		return Direction2{}, Fail("direction", ErrZeroVector, "length %g is within tolerance of zero", l)
	}
	return Direction2{v: v.Scale(1 / l)}, nil
}

// DirectionAt returns the unit vector at polar angle a.
func DirectionAt(a float64) Direction2 {
	return Direction2{v: Vector2{X: math.Cos(a), Y: math.Sin(a)}}
}

// Vector returns the unit vector.
func (d Direction2) Vector() Vector2 { return d.v }

// Angle returns the polar angle of d.
func (d Direction2) Angle() float64 { return d.v.Angle() }

func (d Direction2) String() string { return d.v.String() }
