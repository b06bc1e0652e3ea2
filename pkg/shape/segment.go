package shape

import (
	"fmt"

	"github.com/chazu/kerf/pkg/geom"
	"github.com/chazu/kerf/pkg/xform"
)

// Segment3 is a straight segment between two distinct points.
type Segment3 struct {
	a, b geom.Point3
}

// NewSegment3 fails with ErrZeroVector when the end points coincide.
func NewSegment3(a, b geom.Point3, tol geom.Tol) (Segment3, error) {
	const op = "segment"
	if err := xform.CheckPoint(op, "start", a); err != nil {
		return Segment3{}, err
	}
	if err := xform.CheckPoint(op, "end", b); err != nil {
		return Segment3{}, err
	}
	if err := checkLength(op, a.DistanceTo(b), tol); err != nil {
		return Segment3{}, err
	}
	return Segment3{a: a, b: b}, nil
}

func checkLength(op string, l float64, tol geom.Tol) error {
	if l <= tol.Distance {
		return geom.Fail(op, geom.ErrZeroVector, "length %g is within tolerance of zero", l)
	}
	return nil
}

func (Segment3) Kind() Kind { return KindSegment }

func (s Segment3) Start() geom.Point3            { return s.a }
func (s Segment3) End() geom.Point3              { return s.b }
func (s Segment3) Length() float64               { return s.a.DistanceTo(s.b) }
func (s Segment3) Midpoint() geom.Point3         { return s.a.Lerp(s.b, 0.5) }
func (s Segment3) PointAt(t float64) geom.Point3 { return s.a.Lerp(s.b, t) }

// Direction returns the unit vector from start to end.
func (s Segment3) Direction() geom.Direction3 {
	d, _, _ := direction("segment", s.b.Sub(s.a), geom.Tol{})
	return d
}

func (s Segment3) Bounds() BBox3 {
	return BBox3{min: s.a.Min(s.b), max: s.a.Max(s.b)}
}

func (s Segment3) ApproxEqual(t Segment3, tol geom.Tol) bool {
	return s.a.ApproxEqual(t.a, tol) && s.b.ApproxEqual(t.b, tol)
}

func (s Segment3) String() string {
	return fmt.Sprintf("segment(%v, %v)", s.a, s.b)
}

func (s Segment3) apply(m mapping, tol geom.Tol) (Segment3, error) {
	op := "segment." + m.op
	if err := m.check(op); err != nil {
		return Segment3{}, err
	}
	a, err := m.mapPoint(op, s.a)
	if err != nil {
		return Segment3{}, err
	}
	b, err := m.mapPoint(op, s.b)
	if err != nil {
		return Segment3{}, err
	}
	if err := checkLength(op, a.DistanceTo(b), tol); err != nil {
		return Segment3{}, err
	}
	return Segment3{a: a, b: b}, nil
}

func (s Segment3) Translate(v geom.Vector3, tol geom.Tol) (Segment3, error) {
	return s.apply(translating(v), tol)
}

func (s Segment3) Rotate(axisPoint geom.Point3, axis geom.Vector3, angle float64, tol geom.Tol) (Segment3, error) {
	return s.apply(rotating(axisPoint, axis, angle, tol), tol)
}

func (s Segment3) Scale(center geom.Point3, f float64, tol geom.Tol) (Segment3, error) {
	return s.ScaleXYZ(center, f, f, f, tol)
}

func (s Segment3) ScaleXYZ(center geom.Point3, fx, fy, fz float64, tol geom.Tol) (Segment3, error) {
	return s.apply(scaling(center, fx, fy, fz, tol), tol)
}

func (s Segment3) Reflect(planePoint geom.Point3, planeNormal geom.Vector3, tol geom.Tol) (Segment3, error) {
	return s.apply(reflecting(planePoint, planeNormal, tol), tol)
}

// Transform maps both end points. A projection that collapses the segment
// fails with ErrZeroVector.
func (s Segment3) Transform(a xform.Affine, tol geom.Tol) (Segment3, error) {
	return s.apply(mapped(a, tol), tol)
}

// ---------------------------------------------------------------------------
// Segment2
// ---------------------------------------------------------------------------

// Segment2 is a planar segment between two distinct points.
type Segment2 struct {
	a, b geom.Point2
}

// NewSegment2 fails with ErrZeroVector when the end points coincide.
func NewSegment2(a, b geom.Point2, tol geom.Tol) (Segment2, error) {
	const op = "segment2"
	if !a.IsFinite() || !b.IsFinite() {
		return Segment2{}, geom.Fail(op, geom.ErrInvalidGeometry, "end points %v, %v are not finite", a, b)
	}
	if err := checkLength(op, a.DistanceTo(b), tol); err != nil {
		return Segment2{}, err
	}
	return Segment2{a: a, b: b}, nil
}

func (Segment2) Kind() Kind { return KindSegment2 }

func (s Segment2) Start() geom.Point2 { return s.a }
func (s Segment2) End() geom.Point2   { return s.b }
func (s Segment2) Length() float64    { return s.a.DistanceTo(s.b) }

func (s Segment2) ApproxEqual(t Segment2, tol geom.Tol) bool {
	return s.a.ApproxEqual(t.a, tol) && s.b.ApproxEqual(t.b, tol)
}

func (s Segment2) String() string {
	return fmt.Sprintf("segment2(%v, %v)", s.a, s.b)
}

func (s Segment2) apply(m mapping2, tol geom.Tol) (Segment2, error) {
	op := "segment2." + m.op
	if err := m.check(op); err != nil {
		return Segment2{}, err
	}
	a, err := m.mapPoint(op, s.a)
	if err != nil {
		return Segment2{}, err
	}
	b, err := m.mapPoint(op, s.b)
	if err != nil {
		return Segment2{}, err
	}
	if err := checkLength(op, a.DistanceTo(b), tol); err != nil {
		return Segment2{}, err
	}
	return Segment2{a: a, b: b}, nil
}

func (s Segment2) Translate(v geom.Vector2, tol geom.Tol) (Segment2, error) {
	return s.apply(translating2(v), tol)
}

func (s Segment2) Rotate(center geom.Point2, angle float64, tol geom.Tol) (Segment2, error) {
	return s.apply(rotating2(center, angle), tol)
}

func (s Segment2) Scale(center geom.Point2, f float64, tol geom.Tol) (Segment2, error) {
	return s.ScaleXY(center, f, f, tol)
}

func (s Segment2) ScaleXY(center geom.Point2, fx, fy float64, tol geom.Tol) (Segment2, error) {
	return s.apply(scaling2(center, fx, fy, tol), tol)
}

func (s Segment2) Reflect(linePoint geom.Point2, lineNormal geom.Vector2, tol geom.Tol) (Segment2, error) {
	return s.apply(reflecting2(linePoint, lineNormal, tol), tol)
}

func (s Segment2) Transform(a xform.Affine2, tol geom.Tol) (Segment2, error) {
	return s.apply(mapped2(a, tol), tol)
}
