package shape

import (
	"fmt"
	"math"

	"github.com/chazu/kerf/pkg/geom"
	"github.com/chazu/kerf/pkg/scalar"
	"github.com/chazu/kerf/pkg/xform"
)

// Arc is the part of a circle swept counter-clockwise about the normal
// from angle start to angle end. Angles are measured from the reference
// direction ref, which lies in the circle's plane:
//
//	P(θ) = center + r·(cos θ·ref + sin θ·(normal × ref))
type Arc struct {
	center     geom.Point3
	normal     geom.Direction3
	ref        geom.Direction3
	radius     float64
	start, end float64
}

// NewArc builds an arc. ref must be perpendicular to normal and the sweep
// end − start must lie in (0, 2π].
func NewArc(center geom.Point3, normal, ref geom.Vector3, radius, start, end float64, tol geom.Tol) (Arc, error) {
	const op = "arc"
	if err := xform.CheckPoint(op, "center", center); err != nil {
		return Arc{}, err
	}
	n, err := xform.CheckAxis(op, "normal", normal, tol)
	if err != nil {
		return Arc{}, err
	}
	u, err := xform.CheckAxis(op, "reference direction", ref, tol)
	if err != nil {
		return Arc{}, err
	}
	if err := xform.CheckOrthogonal(op, "normal and reference direction", n, u, tol); err != nil {
		return Arc{}, err
	}
	if err := xform.CheckRadius(op, "radius", radius, tol); err != nil {
		return Arc{}, err
	}
	if err := checkSweep(op, start, end, tol); err != nil {
		return Arc{}, err
	}
	return Arc{center: center, normal: n, ref: u, radius: radius, start: start, end: end}, nil
}

// ArcOf returns the arc of c between two angles, measured from the
// reference direction c.Normal().Perpendicular().
func ArcOf(c Circle, start, end float64, tol geom.Tol) (Arc, error) {
	if err := checkSweep("arc", start, end, tol); err != nil {
		return Arc{}, err
	}
	return Arc{center: c.center, normal: c.normal, ref: c.normal.Perpendicular(), radius: c.radius, start: start, end: end}, nil
}

func checkSweep(op string, start, end float64, tol geom.Tol) error {
	if !scalar.AllFinite(start, end) {
		return geom.Fail(op, geom.ErrInvalidGeometry, "angles (%v, %v) are not finite", start, end)
	}
	sweep := end - start
	if sweep <= tol.Angle {
		return geom.Fail(op, geom.ErrDegenerateGeometry, "sweep %g is not positive", sweep)
	}
	if sweep > 2*math.Pi+tol.Angle {
		return geom.Fail(op, geom.ErrInvalidGeometry, "sweep %g exceeds a full turn", sweep)
	}
	return nil
}

func (Arc) Kind() Kind { return KindArc }

func (a Arc) Center() geom.Point3     { return a.center }
func (a Arc) Normal() geom.Direction3 { return a.normal }
func (a Arc) Ref() geom.Direction3    { return a.ref }
func (a Arc) Radius() float64         { return a.radius }
func (a Arc) Start() float64          { return a.start }
func (a Arc) End() float64            { return a.end }
func (a Arc) Sweep() float64          { return a.end - a.start }
func (a Arc) Length() float64         { return a.radius * a.Sweep() }

// Circle returns the full circle the arc lies on.
func (a Arc) Circle() Circle {
	return Circle{center: a.center, normal: a.normal, radius: a.radius}
}

// PointAt returns the point at angle theta.
func (a Arc) PointAt(theta float64) geom.Point3 {
	s, c := math.Sincos(theta)
	u := a.ref.Vector()
	v := a.normal.Cross(a.ref)
	return a.center.Add(u.Scale(a.radius * c).Add(v.Scale(a.radius * s)))
}

func (a Arc) StartPoint() geom.Point3 { return a.PointAt(a.start) }
func (a Arc) EndPoint() geom.Point3   { return a.PointAt(a.end) }
func (a Arc) Midpoint() geom.Point3   { return a.PointAt((a.start + a.end) / 2) }

// WithAngles returns the same arc retargeted to a new angle range. It is
// the only way an arc's angles change other than by reflection.
func (a Arc) WithAngles(start, end float64, tol geom.Tol) (Arc, error) {
	if err := checkSweep("arc.angles", start, end, tol); err != nil {
		return Arc{}, err
	}
	a.start, a.end = start, end
	return a, nil
}

// Bounds returns the exact extent of the swept part: the end points plus
// every axis extreme that falls inside the sweep.
func (a Arc) Bounds() BBox3 {
	b := BBox3{min: a.StartPoint(), max: a.StartPoint()}.include(a.EndPoint())
	u := a.ref.Vector()
	v := a.normal.Cross(a.ref)
	for i := 0; i < 3; i++ {
		t := math.Atan2(v.Component(i), u.Component(i))
		for _, theta := range []float64{t, t + math.Pi} {
			if a.contains(theta) {
				b = b.include(a.PointAt(theta))
			}
		}
	}
	return b
}

// contains reports whether angle theta, taken modulo 2π, is in the sweep.
func (a Arc) contains(theta float64) bool {
	d := xform.NormalizeAngle(theta - a.start)
	return d <= a.Sweep()
}

func (a Arc) String() string {
	return fmt.Sprintf("arc(center=%v normal=%v ref=%v r=%g θ=[%g, %g])",
		a.center, a.normal, a.ref, a.radius, a.start, a.end)
}

func (a Arc) apply(m mapping, tol geom.Tol) (Arc, error) {
	op := "arc." + m.op
	if err := m.checkSimilar(op); err != nil {
		return Arc{}, err
	}
	center, err := m.mapPoint(op, a.center)
	if err != nil {
		return Arc{}, err
	}
	normal, _, err := m.mapDirection(op, a.normal, tol)
	if err != nil {
		return Arc{}, err
	}
	ref, scale, err := m.mapDirection(op, a.ref, tol)
	if err != nil {
		return Arc{}, err
	}
	if err := xform.CheckOrthogonal(op, "normal and reference direction", normal, ref, tol); err != nil {
		return Arc{}, err
	}
	r := a.radius * scale
	if err := xform.CheckRadius(op, "radius", r, tol); err != nil {
		return Arc{}, err
	}
	start, end := a.start, a.end
	if m.flips {
		// The in-plane frame changes handedness: θ maps to −θ.
		start, end = -a.end, -a.start
	}
	return Arc{center: center, normal: normal, ref: ref, radius: r, start: start, end: end}, nil
}

// Translate moves the arc; the angle range is unchanged.
func (a Arc) Translate(v geom.Vector3, tol geom.Tol) (Arc, error) {
	return a.apply(translating(v), tol)
}

// Rotate turns the center, normal and reference direction together, so
// the angle range still describes the same part of the circle.
func (a Arc) Rotate(axisPoint geom.Point3, axis geom.Vector3, angle float64, tol geom.Tol) (Arc, error) {
	return a.apply(rotating(axisPoint, axis, angle, tol), tol)
}

func (a Arc) Scale(center geom.Point3, f float64, tol geom.Tol) (Arc, error) {
	return a.ScaleXYZ(center, f, f, f, tol)
}

func (a Arc) ScaleXYZ(center geom.Point3, fx, fy, fz float64, tol geom.Tol) (Arc, error) {
	return a.apply(scaling(center, fx, fy, fz, tol), tol)
}

// Reflect mirrors the arc. Reflection reverses orientation, so the range
// [start, end] becomes [−end, −start].
func (a Arc) Reflect(planePoint geom.Point3, planeNormal geom.Vector3, tol geom.Tol) (Arc, error) {
	return a.apply(reflecting(planePoint, planeNormal, tol), tol)
}

func (a Arc) Transform(m xform.Affine, tol geom.Tol) (Arc, error) {
	return a.apply(mapped(m, tol), tol)
}
