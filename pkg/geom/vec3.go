package geom

import (
	"fmt"
	"math"

	"github.com/chazu/kerf/pkg/scalar"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Point3 is a location in 3D space.
type Point3 v3.Vec

// Vector3 is a displacement in 3D space.
type Vector3 v3.Vec

// Origin is the point (0, 0, 0).
var Origin = Point3{}

// P3 returns the point (x, y, z).
func P3(x, y, z float64) Point3 { return Point3{X: x, Y: y, Z: z} }

// V3 returns the vector (x, y, z).
func V3(x, y, z float64) Vector3 { return Vector3{X: x, Y: y, Z: z} }

// PointFromVector returns the point at the tip of v placed at the origin.
func PointFromVector(v Vector3) Point3 { return Point3(v) }

// ---------------------------------------------------------------------------
// Point3
// ---------------------------------------------------------------------------

// Vector returns the position vector of p.
func (p Point3) Vector() Vector3 { return Vector3(p) }

// Add returns p displaced by v.
func (p Point3) Add(v Vector3) Point3 {
	return Point3(v3.Vec(p).Add(v3.Vec(v)))
}

// Sub returns the vector from q to p.
func (p Point3) Sub(q Point3) Vector3 {
	return Vector3(v3.Vec(p).Sub(v3.Vec(q)))
}

// DistanceTo returns the Euclidean distance between p and q.
func (p Point3) DistanceTo(q Point3) float64 {
	return p.Sub(q).Length()
}

// IsFinite reports whether every coordinate is finite.
func (p Point3) IsFinite() bool {
	return scalar.AllFinite(p.X, p.Y, p.Z)
}

// ApproxEqual reports whether p and q are within tol.Distance of each other.
func (p Point3) ApproxEqual(q Point3, tol Tol) bool {
	return p.DistanceTo(q) <= tol.Distance*math.Max(1, p.Vector().Length())
}

// Min returns the component-wise minimum of p and q.
func (p Point3) Min(q Point3) Point3 { return Point3(v3.Vec(p).Min(v3.Vec(q))) }

// Max returns the component-wise maximum of p and q.
func (p Point3) Max(q Point3) Point3 { return Point3(v3.Vec(p).Max(v3.Vec(q))) }

// Lerp returns the point a fraction t of the way from p to q.
func (p Point3) Lerp(q Point3, t float64) Point3 {
	return p.Add(q.Sub(p).Scale(t))
}

func (p Point3) String() string {
	return fmt.Sprintf("(%g, %g, %g)", p.X, p.Y, p.Z)
}

// ---------------------------------------------------------------------------
// Vector3
// ---------------------------------------------------------------------------

// Add returns v + w.
func (v Vector3) Add(w Vector3) Vector3 { return Vector3(v3.Vec(v).Add(v3.Vec(w))) }

// Sub returns v - w.
func (v Vector3) Sub(w Vector3) Vector3 { return Vector3(v3.Vec(v).Sub(v3.Vec(w))) }

// Scale returns v multiplied by k.
func (v Vector3) Scale(k float64) Vector3 { return Vector3(v3.Vec(v).MulScalar(k)) }

// Mul returns the component-wise product of v and w.
func (v Vector3) Mul(w Vector3) Vector3 { return Vector3(v3.Vec(v).Mul(v3.Vec(w))) }

// Neg returns -v.
func (v Vector3) Neg() Vector3 { return Vector3(v3.Vec(v).Neg()) }

// Dot returns the scalar product of v and w.
func (v Vector3) Dot(w Vector3) float64 { return v3.Vec(v).Dot(v3.Vec(w)) }

// Cross returns the vector product v × w.
func (v Vector3) Cross(w Vector3) Vector3 { return Vector3(v3.Vec(v).Cross(v3.Vec(w))) }

// Length returns |v|.
func (v Vector3) Length() float64 { return v3.Vec(v).Length() }

// IsFinite reports whether every component is finite.
func (v Vector3) IsFinite() bool {
	return scalar.AllFinite(v.X, v.Y, v.Z)
}

// IsZero reports whether |v| is within tol.Distance.
func (v Vector3) IsZero(tol Tol) bool {
	return v.Length() <= tol.Distance
}

// ApproxEqual reports whether v and w are within tol.Distance of each other.
func (v Vector3) ApproxEqual(w Vector3, tol Tol) bool {
	return v.Sub(w).Length() <= tol.Distance*math.Max(1, v.Length())
}

// Direction returns v normalized. It fails with ErrZeroVector when |v| is
// within tolerance of zero and ErrInvalidGeometry when v is not finite.
func (v Vector3) Direction(tol Tol) (Direction3, error) {
	return NewDirection3(v, tol)
}

// Component returns the i-th component (0 = X, 1 = Y, 2 = Z).
func (v Vector3) Component(i int) float64 {
	switch i {
	case 0:
		return v.X
	case 1:
		return v.Y
	case 2:
		return v.Z
	}
	panic(fmt.Sprintf("geom: vector component %d out of range", i))
}

func (v Vector3) String() string {
	return fmt.Sprintf("<%g, %g, %g>", v.X, v.Y, v.Z)
}

// Vec returns the sdfx representation of v.
func (v Vector3) Vec() v3.Vec { return v3.Vec(v) }

// Vec returns the sdfx representation of p.
func (p Point3) Vec() v3.Vec { return v3.Vec(p) }

// ---------------------------------------------------------------------------
// Direction3
// ---------------------------------------------------------------------------

// Direction3 is a unit-length vector used for axes and normals.
// The zero value is not a valid direction; build one with NewDirection3.
type Direction3 struct {
	v Vector3
}

// Principal directions.
var (
	UnitX = Direction3{v: Vector3{X: 1}}
	UnitY = Direction3{v: Vector3{Y: 1}}
	UnitZ = Direction3{v: Vector3{Z: 1}}
)

// NewDirection3 normalizes v.
func NewDirection3(v Vector3, tol Tol) (Direction3, error) {
	if !v.IsFinite() {
		return Direction3{}, Fail("direction", ErrInvalidGeometry, "vector %v is not finite", v)
	}
	l := v.Length()
	if l <= tol.Distance {
		return Direction3{}, Fail("direction", ErrZeroVector, "length %g is within tolerance of zero", l)
	}
	return Direction3{v: v.Scale(1 / l)}, nil
}

// MustDirection3 is like NewDirection3 but panics on failure. It is meant
// for literals known to be valid.
func MustDirection3(x, y, z float64) Direction3 {
	d, err := NewDirection3(V3(x, y, z), scalar.Default[float64]())
	if err != nil {
		panic(err)
	}
	return d
}

// Vector returns the unit vector.
func (d Direction3) Vector() Vector3 { return d.v }

// X returns the x component.
func (d Direction3) X() float64 { return d.v.X }

// Y returns the y component.
func (d Direction3) Y() float64 { return d.v.Y }

// Z returns the z component.
func (d Direction3) Z() float64 { return d.v.Z }

// IsValid reports whether d was built by a constructor.
func (d Direction3) IsValid() bool { return d.v != Vector3{} }

// Neg returns the opposite direction.
func (d Direction3) Neg() Direction3 { return Direction3{v: d.v.Neg()} }

// Dot returns the cosine of the angle between d and e.
func (d Direction3) Dot(e Direction3) float64 { return d.v.Dot(e.v) }

// Cross returns d × e (not normalized).
func (d Direction3) Cross(e Direction3) Vector3 { return d.v.Cross(e.v) }

// IsOrthogonal reports whether d and e are perpendicular within tol.Angle.
func (d Direction3) IsOrthogonal(e Direction3, tol Tol) bool {
	return math.Abs(d.Dot(e)) <= tol.Angle
}

// IsParallel reports whether d and e are parallel or anti-parallel.
func (d Direction3) IsParallel(e Direction3, tol Tol) bool {
	return d.Cross(e).Length() <= tol.Angle
}

// ApproxEqual reports whether d and e point the same way within tol.
func (d Direction3) ApproxEqual(e Direction3, tol Tol) bool {
	return d.v.Sub(e.v).Length() <= tol.Distance
}

// Perpendicular returns a direction orthogonal to d: the principal axis
// least aligned with d, with its component along d removed. Ties prefer X,
// then Y, so UnitZ maps to UnitX and UnitX maps to UnitY.
func (d Direction3) Perpendicular() Direction3 {
	a := UnitZ
	ax, ay, az := math.Abs(d.v.X), math.Abs(d.v.Y), math.Abs(d.v.Z)
	if ax <= ay && ax <= az {
		a = UnitX
	} else if ay <= az {
		a = UnitY
	}
	c := a.v.Sub(d.v.Scale(d.Dot(a)))
	return Direction3{v: c.Scale(1 / c.Length())}
}

func (d Direction3) String() string { return d.v.String() }
