package shape

import (
	"fmt"
	"math"

	"github.com/chazu/kerf/pkg/geom"
	"github.com/chazu/kerf/pkg/xform"
)

// Sphere is a spherical surface. The axis and reference direction carry
// its parametrization and follow it through transforms.
type Sphere struct {
	frame
	radius float64
}

// NewSphere builds a sphere with an explicit frame.
func NewSphere(center geom.Point3, axis, ref geom.Vector3, radius float64, tol geom.Tol) (Sphere, error) {
	const op = "sphere"
	f, err := newFrame(op, center, axis, ref, tol)
	if err != nil {
		return Sphere{}, err
	}
	if err := xform.CheckRadius(op, "radius", radius, tol); err != nil {
		return Sphere{}, err
	}
	return Sphere{frame: f, radius: radius}, nil
}

// NewSphereAt builds a sphere with the standard frame.
func NewSphereAt(center geom.Point3, radius float64, tol geom.Tol) (Sphere, error) {
	return NewSphere(center, geom.UnitZ.Vector(), geom.UnitX.Vector(), radius, tol)
}

func (Sphere) Kind() Kind { return KindSphere }

func (s Sphere) Center() geom.Point3   { return s.origin }
func (s Sphere) Axis() geom.Direction3 { return s.axis }
func (s Sphere) Ref() geom.Direction3  { return s.ref }
func (s Sphere) Radius() float64       { return s.radius }
func (s Sphere) Area() float64         { return 4 * math.Pi * s.radius * s.radius }
func (s Sphere) Volume() float64       { return 4 * math.Pi * s.radius * s.radius * s.radius / 3 }

func (s Sphere) Bounds() BBox3 {
	r := geom.V3(s.radius, s.radius, s.radius)
	return BBox3{min: s.origin.Add(r.Neg()), max: s.origin.Add(r)}
}

func (s Sphere) ApproxEqual(t Sphere, tol geom.Tol) bool {
	return s.frame.approxEqual(t.frame, tol) && tol.Equal(s.radius, t.radius)
}

func (s Sphere) String() string {
	return fmt.Sprintf("sphere(%v r=%g)", s.frame, s.radius)
}

func (s Sphere) apply(m mapping, tol geom.Tol) (Sphere, error) {
	op := "sphere." + m.op
	if err := m.checkSimilar(op); err != nil {
		return Sphere{}, err
	}
	f, _, k, err := s.frame.apply(op, m, tol)
	if err != nil {
		return Sphere{}, err
	}
	r := s.radius * k
	if err := xform.CheckRadius(op, "radius", r, tol); err != nil {
		return Sphere{}, err
	}
	return Sphere{frame: f, radius: r}, nil
}

func (s Sphere) Translate(v geom.Vector3, tol geom.Tol) (Sphere, error) {
	return s.apply(translating(v), tol)
}

func (s Sphere) Rotate(axisPoint geom.Point3, axis geom.Vector3, angle float64, tol geom.Tol) (Sphere, error) {
	return s.apply(rotating(axisPoint, axis, angle, tol), tol)
}

func (s Sphere) Scale(center geom.Point3, f float64, tol geom.Tol) (Sphere, error) {
	return s.ScaleXYZ(center, f, f, f, tol)
}

// ScaleXYZ fails with ErrInvalidScaleFactor for unequal factors.
func (s Sphere) ScaleXYZ(center geom.Point3, fx, fy, fz float64, tol geom.Tol) (Sphere, error) {
	return s.apply(scaling(center, fx, fy, fz, tol), tol)
}

func (s Sphere) Reflect(planePoint geom.Point3, planeNormal geom.Vector3, tol geom.Tol) (Sphere, error) {
	return s.apply(reflecting(planePoint, planeNormal, tol), tol)
}

func (s Sphere) Transform(a xform.Affine, tol geom.Tol) (Sphere, error) {
	return s.apply(mapped(a, tol), tol)
}
