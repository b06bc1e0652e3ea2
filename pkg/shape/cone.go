package shape

import (
	"fmt"
	"math"

	"github.com/chazu/kerf/pkg/geom"
	"github.com/chazu/kerf/pkg/scalar"
	"github.com/chazu/kerf/pkg/xform"
)

// Cone is an infinite conical surface. At the origin its radius is
// refRadius; it widens by tan(semiAngle) per unit along the axis.
type Cone struct {
	frame
	refRadius float64
	semiAngle float64
}

// NewCone builds a cone. semiAngle must lie in (0, π/2).
func NewCone(origin geom.Point3, axis, ref geom.Vector3, refRadius, semiAngle float64, tol geom.Tol) (Cone, error) {
	const op = "cone"
	f, err := newFrame(op, origin, axis, ref, tol)
	if err != nil {
		return Cone{}, err
	}
	if err := xform.CheckRadius(op, "reference radius", refRadius, tol); err != nil {
		return Cone{}, err
	}
	if !scalar.IsFinite(semiAngle) || semiAngle <= tol.Angle || semiAngle >= math.Pi/2-tol.Angle {
		return Cone{}, geom.Fail(op, geom.ErrInvalidGeometry, "semi-angle %v must lie in (0, π/2)", semiAngle)
	}
	return Cone{frame: f, refRadius: refRadius, semiAngle: semiAngle}, nil
}

func (Cone) Kind() Kind { return KindCone }

func (c Cone) Origin() geom.Point3   { return c.origin }
func (c Cone) Axis() geom.Direction3 { return c.axis }
func (c Cone) Ref() geom.Direction3  { return c.ref }
func (c Cone) RefRadius() float64    { return c.refRadius }
func (c Cone) SemiAngle() float64    { return c.semiAngle }

// RadiusAt returns the radius at signed height h along the axis.
func (c Cone) RadiusAt(h float64) float64 {
	return c.refRadius + h*math.Tan(c.semiAngle)
}

// Apex returns the point where the radius reaches zero.
func (c Cone) Apex() geom.Point3 {
	return c.origin.Add(c.axis.Vector().Scale(-c.refRadius / math.Tan(c.semiAngle)))
}

func (c Cone) ApproxEqual(d Cone, tol geom.Tol) bool {
	return c.frame.approxEqual(d.frame, tol) &&
		tol.Equal(c.refRadius, d.refRadius) &&
		math.Abs(c.semiAngle-d.semiAngle) <= tol.Distance
}

func (c Cone) String() string {
	return fmt.Sprintf("cone(%v r=%g α=%g°)", c.frame, c.refRadius, c.semiAngle*180/math.Pi)
}

func (c Cone) apply(m mapping, tol geom.Tol) (Cone, error) {
	op := "cone." + m.op
	if err := m.checkSimilar(op); err != nil {
		return Cone{}, err
	}
	f, _, k, err := c.frame.apply(op, m, tol)
	if err != nil {
		return Cone{}, err
	}
	r := c.refRadius * k
	if err := xform.CheckRadius(op, "reference radius", r, tol); err != nil {
		return Cone{}, err
	}
	// The semi-angle is invariant under similarities.
	return Cone{frame: f, refRadius: r, semiAngle: c.semiAngle}, nil
}

func (c Cone) Translate(v geom.Vector3, tol geom.Tol) (Cone, error) {
	return c.apply(translating(v), tol)
}

func (c Cone) Rotate(axisPoint geom.Point3, axis geom.Vector3, angle float64, tol geom.Tol) (Cone, error) {
	return c.apply(rotating(axisPoint, axis, angle, tol), tol)
}

func (c Cone) Scale(center geom.Point3, f float64, tol geom.Tol) (Cone, error) {
	return c.ScaleXYZ(center, f, f, f, tol)
}

// ScaleXYZ fails with ErrInvalidScaleFactor for unequal factors.
func (c Cone) ScaleXYZ(center geom.Point3, fx, fy, fz float64, tol geom.Tol) (Cone, error) {
	return c.apply(scaling(center, fx, fy, fz, tol), tol)
}

func (c Cone) Reflect(planePoint geom.Point3, planeNormal geom.Vector3, tol geom.Tol) (Cone, error) {
	return c.apply(reflecting(planePoint, planeNormal, tol), tol)
}

func (c Cone) Transform(a xform.Affine, tol geom.Tol) (Cone, error) {
	return c.apply(mapped(a, tol), tol)
}
