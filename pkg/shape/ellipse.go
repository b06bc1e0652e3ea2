package shape

import (
	"fmt"
	"math"

	"github.com/chazu/kerf/pkg/geom"
	"github.com/chazu/kerf/pkg/scalar"
	"github.com/chazu/kerf/pkg/xform"
)

// Ellipse3 is an ellipse in space: semi-axis a along major, semi-axis b
// along normal × major, with a ≥ b.
type Ellipse3 struct {
	center geom.Point3
	normal geom.Direction3
	major  geom.Direction3
	a, b   float64
}

// NewEllipse3 builds an ellipse. majorDir must be perpendicular to normal
// and major ≥ minor > 0.
func NewEllipse3(center geom.Point3, normal, majorDir geom.Vector3, major, minor float64, tol geom.Tol) (Ellipse3, error) {
	const op = "ellipse"
	if err := xform.CheckPoint(op, "center", center); err != nil {
		return Ellipse3{}, err
	}
	n, err := xform.CheckAxis(op, "normal", normal, tol)
	if err != nil {
		return Ellipse3{}, err
	}
	u, err := xform.CheckAxis(op, "major axis", majorDir, tol)
	if err != nil {
		return Ellipse3{}, err
	}
	if err := xform.CheckOrthogonal(op, "normal and major axis", n, u, tol); err != nil {
		return Ellipse3{}, err
	}
	if err := checkSemiAxes(op, major, minor, tol); err != nil {
		return Ellipse3{}, err
	}
	return Ellipse3{center: center, normal: n, major: u, a: major, b: minor}, nil
}

func checkSemiAxes(op string, major, minor float64, tol geom.Tol) error {
	if err := xform.CheckRadius(op, "major radius", major, tol); err != nil {
		return err
	}
	if err := xform.CheckRadius(op, "minor radius", minor, tol); err != nil {
		return err
	}
	if major < minor && !tol.Equal(major, minor) {
		return geom.Fail(op, geom.ErrInvalidGeometry, "major radius %g is smaller than minor radius %g", major, minor)
	}
	return nil
}

func (Ellipse3) Kind() Kind { return KindEllipse }

func (e Ellipse3) Center() geom.Point3        { return e.center }
func (e Ellipse3) Normal() geom.Direction3    { return e.normal }
func (e Ellipse3) MajorAxis() geom.Direction3 { return e.major }
func (e Ellipse3) Major() float64             { return e.a }
func (e Ellipse3) Minor() float64             { return e.b }
func (e Ellipse3) Area() float64              { return math.Pi * e.a * e.b }

// MinorAxis returns normal × major.
func (e Ellipse3) MinorAxis() geom.Direction3 {
	d, _ := geom.NewDirection3(e.normal.Cross(e.major), scalar.Default[float64]())
	return d
}

// Eccentricity returns sqrt(1 − b²/a²).
func (e Ellipse3) Eccentricity() float64 {
	return math.Sqrt(math.Max(0, 1-(e.b*e.b)/(e.a*e.a)))
}

// PointAt returns center + a·cos t·major + b·sin t·minor.
func (e Ellipse3) PointAt(t float64) geom.Point3 {
	s, c := math.Sincos(t)
	v := e.normal.Cross(e.major)
	return e.center.Add(e.major.Vector().Scale(e.a * c).Add(v.Scale(e.b * s)))
}

// Bounds returns the exact extent: along axis i the half-width is
// sqrt((a·u_i)² + (b·v_i)²).
func (e Ellipse3) Bounds() BBox3 {
	u := e.major.Vector().Scale(e.a)
	v := e.normal.Cross(e.major).Scale(e.b)
	h := geom.V3(math.Hypot(u.X, v.X), math.Hypot(u.Y, v.Y), math.Hypot(u.Z, v.Z))
	return BBox3{min: e.center.Add(h.Neg()), max: e.center.Add(h)}
}

func (e Ellipse3) ApproxEqual(f Ellipse3, tol geom.Tol) bool {
	if !e.center.ApproxEqual(f.center, tol) || !tol.Equal(e.a, f.a) || !tol.Equal(e.b, f.b) {
		return false
	}
	if !e.normal.IsParallel(f.normal, tol) {
		return false
	}
	// A circle has no preferred major axis.
	return tol.Equal(e.a, e.b) || e.major.IsParallel(f.major, tol)
}

func (e Ellipse3) String() string {
	return fmt.Sprintf("ellipse(center=%v normal=%v major=%v a=%g b=%g)", e.center, e.normal, e.major, e.a, e.b)
}

// principalAxes returns the semi-axes of the ellipse x(t) = p·cos t +
// q·sin t, where p and q are conjugate semi-diameters. The first result
// is the longer one. When the image is a circle, or the two lengths tie,
// p keeps the major role.
func principalAxes(p, q geom.Vector3, tol geom.Tol) (major, minor geom.Vector3) {
	pp, qq, pq := p.Dot(p), q.Dot(q), p.Dot(q)
	eps := tol.Distance * math.Max(1, pp)
	t0 := 0.0
	if math.Abs(pp-qq) > eps || math.Abs(2*pq) > eps {
		t0 = 0.5 * math.Atan2(2*pq, pp-qq)
	}
	s, c := math.Sincos(t0)
	major = p.Scale(c).Add(q.Scale(s))
	minor = p.Scale(-s).Add(q.Scale(c))
	if lm, ln := major.Length(), minor.Length(); ln > lm && !tol.Equal(lm, ln) {
		major, minor = minor, major
	}
	return major, minor
}

func (e Ellipse3) apply(m mapping, tol geom.Tol) (Ellipse3, error) {
	op := "ellipse." + m.op
	if err := m.check(op); err != nil {
		return Ellipse3{}, err
	}
	center, err := m.mapPoint(op, e.center)
	if err != nil {
		return Ellipse3{}, err
	}
	p, err := m.mapVector(op, e.major.Vector().Scale(e.a))
	if err != nil {
		return Ellipse3{}, err
	}
	q, err := m.mapVector(op, e.normal.Cross(e.major).Scale(e.b))
	if err != nil {
		return Ellipse3{}, err
	}
	u, v := principalAxes(p, q, tol)
	a, b := u.Length(), v.Length()
	if err := checkSemiAxes(op, a, b, tol); err != nil {
		return Ellipse3{}, err
	}
	n := p.Cross(q)
	if m.flips {
		n = n.Neg()
	}
	normal, _, err := direction(op, n, tol)
	if err != nil {
		return Ellipse3{}, err
	}
	major, _, err := direction(op, u, tol)
	if err != nil {
		return Ellipse3{}, err
	}
	return Ellipse3{center: center, normal: normal, major: major, a: a, b: b}, nil
}

func (e Ellipse3) Translate(v geom.Vector3, tol geom.Tol) (Ellipse3, error) {
	return e.apply(translating(v), tol)
}

func (e Ellipse3) Rotate(axisPoint geom.Point3, axis geom.Vector3, angle float64, tol geom.Tol) (Ellipse3, error) {
	return e.apply(rotating(axisPoint, axis, angle, tol), tol)
}

func (e Ellipse3) Scale(center geom.Point3, f float64, tol geom.Tol) (Ellipse3, error) {
	return e.ScaleXYZ(center, f, f, f, tol)
}

// ScaleXYZ accepts non-uniform factors. The result is the exact image
// ellipse: its axes are re-derived from the scaled conjugate diameters and
// re-sorted so that major ≥ minor.
func (e Ellipse3) ScaleXYZ(center geom.Point3, fx, fy, fz float64, tol geom.Tol) (Ellipse3, error) {
	return e.apply(scaling(center, fx, fy, fz, tol), tol)
}

func (e Ellipse3) Reflect(planePoint geom.Point3, planeNormal geom.Vector3, tol geom.Tol) (Ellipse3, error) {
	return e.apply(reflecting(planePoint, planeNormal, tol), tol)
}

// Transform accepts any affine map that does not flatten the ellipse.
func (e Ellipse3) Transform(a xform.Affine, tol geom.Tol) (Ellipse3, error) {
	return e.apply(mapped(a, tol), tol)
}

// ---------------------------------------------------------------------------
// Ellipse2
// ---------------------------------------------------------------------------

// Ellipse2 is a planar ellipse: semi-axes a ≥ b, major axis at angle
// rotation ∈ [0, π) from the x axis.
type Ellipse2 struct {
	center   geom.Point2
	a, b     float64
	rotation float64
}

// NewEllipse2 builds a planar ellipse. The rotation is reduced modulo π.
func NewEllipse2(center geom.Point2, major, minor, rotation float64, tol geom.Tol) (Ellipse2, error) {
	const op = "ellipse2"
	if !center.IsFinite() {
		return Ellipse2{}, geom.Fail(op, geom.ErrInvalidGeometry, "center %v is not finite", center)
	}
	if !scalar.IsFinite(rotation) {
		return Ellipse2{}, geom.Fail(op, geom.ErrInvalidGeometry, "rotation %v is not finite", rotation)
	}
	if err := checkSemiAxes(op, major, minor, tol); err != nil {
		return Ellipse2{}, err
	}
	return Ellipse2{center: center, a: major, b: minor, rotation: halfTurn(rotation, tol)}, nil
}

// halfTurn reduces an axis angle to [0, π).
func halfTurn(a float64, tol geom.Tol) float64 {
	a = math.Mod(a, math.Pi)
	if a < 0 {
		a += math.Pi
	}
	if math.Pi-a <= tol.Angle {
		a = 0
	}
	return a
}

func (Ellipse2) Kind() Kind { return KindEllipse2 }

func (e Ellipse2) Center() geom.Point2 { return e.center }
func (e Ellipse2) Major() float64      { return e.a }
func (e Ellipse2) Minor() float64      { return e.b }
func (e Ellipse2) Rotation() float64   { return e.rotation }
func (e Ellipse2) Area() float64       { return math.Pi * e.a * e.b }

// PointAt returns the point at parameter t.
func (e Ellipse2) PointAt(t float64) geom.Point2 {
	s, c := math.Sincos(t)
	u := geom.DirectionAt(e.rotation).Vector()
	return e.center.Add(u.Scale(e.a * c).Add(u.Perp().Scale(e.b * s)))
}

// Bounds returns the exact planar extent.
func (e Ellipse2) Bounds() BBox2 {
	u := geom.DirectionAt(e.rotation).Vector()
	p, q := u.Scale(e.a), u.Perp().Scale(e.b)
	h := geom.V2(math.Hypot(p.X, q.X), math.Hypot(p.Y, q.Y))
	return BBox2{min: e.center.Add(h.Neg()), max: e.center.Add(h)}
}

func (e Ellipse2) ApproxEqual(f Ellipse2, tol geom.Tol) bool {
	if !e.center.ApproxEqual(f.center, tol) || !tol.Equal(e.a, f.a) || !tol.Equal(e.b, f.b) {
		return false
	}
	if tol.Equal(e.a, e.b) {
		return true
	}
	d := math.Abs(e.rotation - f.rotation)
	return d <= tol.Distance || math.Pi-d <= tol.Distance
}

func (e Ellipse2) String() string {
	return fmt.Sprintf("ellipse2(center=%v a=%g b=%g rot=%g°)", e.center, e.a, e.b, e.rotation*180/math.Pi)
}

func principalAxes2(p, q geom.Vector2, tol geom.Tol) (major, minor geom.Vector2) {
	pp, qq, pq := p.Dot(p), q.Dot(q), p.Dot(q)
	eps := tol.Distance * math.Max(1, pp)
	t0 := 0.0
	if math.Abs(pp-qq) > eps || math.Abs(2*pq) > eps {
		t0 = 0.5 * math.Atan2(2*pq, pp-qq)
	}
	s, c := math.Sincos(t0)
	major = p.Scale(c).Add(q.Scale(s))
	minor = p.Scale(-s).Add(q.Scale(c))
	if lm, ln := major.Length(), minor.Length(); ln > lm && !tol.Equal(lm, ln) {
		major, minor = minor, major
	}
	return major, minor
}

func (e Ellipse2) apply(m mapping2, tol geom.Tol) (Ellipse2, error) {
	op := "ellipse2." + m.op
	if err := m.check(op); err != nil {
		return Ellipse2{}, err
	}
	center, err := m.mapPoint(op, e.center)
	if err != nil {
		return Ellipse2{}, err
	}
	u := geom.DirectionAt(e.rotation).Vector()
	p, err := m.mapVector(op, u.Scale(e.a))
	if err != nil {
		return Ellipse2{}, err
	}
	q, err := m.mapVector(op, u.Perp().Scale(e.b))
	if err != nil {
		return Ellipse2{}, err
	}
	major, minor := principalAxes2(p, q, tol)
	a, b := major.Length(), minor.Length()
	if err := checkSemiAxes(op, a, b, tol); err != nil {
		return Ellipse2{}, err
	}
	return Ellipse2{center: center, a: a, b: b, rotation: halfTurn(major.Angle(), tol)}, nil
}

func (e Ellipse2) Translate(v geom.Vector2, tol geom.Tol) (Ellipse2, error) {
	return e.apply(translating2(v), tol)
}

// Rotate turns the ellipse counter-clockwise about center.
func (e Ellipse2) Rotate(center geom.Point2, angle float64, tol geom.Tol) (Ellipse2, error) {
	return e.apply(rotating2(center, angle), tol)
}

func (e Ellipse2) Scale(center geom.Point2, f float64, tol geom.Tol) (Ellipse2, error) {
	return e.ScaleXY(center, f, f, tol)
}

// ScaleXY accepts non-uniform factors; axes are re-derived and re-sorted,
// which turns the rotation by 90° when the minor axis overtakes the major.
func (e Ellipse2) ScaleXY(center geom.Point2, fx, fy float64, tol geom.Tol) (Ellipse2, error) {
	return e.apply(scaling2(center, fx, fy, tol), tol)
}

func (e Ellipse2) Reflect(linePoint geom.Point2, lineNormal geom.Vector2, tol geom.Tol) (Ellipse2, error) {
	return e.apply(reflecting2(linePoint, lineNormal, tol), tol)
}

func (e Ellipse2) Transform(a xform.Affine2, tol geom.Tol) (Ellipse2, error) {
	return e.apply(mapped2(a, tol), tol)
}
