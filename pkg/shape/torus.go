package shape

import (
	"fmt"
	"math"

	"github.com/chazu/kerf/pkg/geom"
	"github.com/chazu/kerf/pkg/xform"
)

// Torus is a ring torus: a tube of radius minor swept around the axis at
// distance major from the center, with major > minor.
type Torus struct {
	frame
	major, minor float64
}

// NewTorus builds a torus. major ≤ minor fails with ErrInvalidGeometry.
func NewTorus(center geom.Point3, axis, ref geom.Vector3, major, minor float64, tol geom.Tol) (Torus, error) {
	const op = "torus"
	f, err := newFrame(op, center, axis, ref, tol)
	if err != nil {
		return Torus{}, err
	}
	if err := checkTorusRadii(op, major, minor, tol); err != nil {
		return Torus{}, err
	}
	return Torus{frame: f, major: major, minor: minor}, nil
}

// NewTorusAt builds a torus with the standard frame.
func NewTorusAt(center geom.Point3, major, minor float64, tol geom.Tol) (Torus, error) {
	return NewTorus(center, geom.UnitZ.Vector(), geom.UnitX.Vector(), major, minor, tol)
}

func checkTorusRadii(op string, major, minor float64, tol geom.Tol) error {
	if err := xform.CheckRadius(op, "major radius", major, tol); err != nil {
		return err
	}
	if err := xform.CheckRadius(op, "minor radius", minor, tol); err != nil {
		return err
	}
	if major <= minor {
		return geom.Fail(op, geom.ErrInvalidGeometry, "major radius %g must exceed minor radius %g", major, minor)
	}
	return nil
}

func (Torus) Kind() Kind { return KindTorus }

func (t Torus) Center() geom.Point3   { return t.origin }
func (t Torus) Axis() geom.Direction3 { return t.axis }
func (t Torus) Ref() geom.Direction3  { return t.ref }
func (t Torus) Major() float64        { return t.major }
func (t Torus) Minor() float64        { return t.minor }
func (t Torus) Area() float64         { return 4 * math.Pi * math.Pi * t.major * t.minor }
func (t Torus) Volume() float64       { return 2 * math.Pi * math.Pi * t.major * t.minor * t.minor }

// Bounds returns the exact extent: the spine circle's box grown by the
// tube radius.
func (t Torus) Bounds() BBox3 {
	b := discBounds(t.origin, t.axis, t.major)
	g := geom.V3(t.minor, t.minor, t.minor)
	return BBox3{min: b.min.Add(g.Neg()), max: b.max.Add(g)}
}

func (t Torus) ApproxEqual(u Torus, tol geom.Tol) bool {
	return t.frame.approxEqual(u.frame, tol) && tol.Equal(t.major, u.major) && tol.Equal(t.minor, u.minor)
}

func (t Torus) String() string {
	return fmt.Sprintf("torus(%v R=%g r=%g)", t.frame, t.major, t.minor)
}

// ScaleRadii scales the two radii independently, keeping the frame. A
// result with major ≤ minor fails with ErrInvalidGeometry.
func (t Torus) ScaleRadii(majorFactor, minorFactor float64, tol geom.Tol) (Torus, error) {
	const op = "torus.scale_radii"
	if err := xform.CheckFactors(op, majorFactor, minorFactor); err != nil {
		return Torus{}, err
	}
	major, minor := t.major*majorFactor, t.minor*minorFactor
	if err := checkTorusRadii(op, major, minor, tol); err != nil {
		return Torus{}, err
	}
	return Torus{frame: t.frame, major: major, minor: minor}, nil
}

func (t Torus) apply(m mapping, tol geom.Tol) (Torus, error) {
	op := "torus." + m.op
	if err := m.checkSimilar(op); err != nil {
		return Torus{}, err
	}
	f, ka, kr, err := t.frame.apply(op, m, tol)
	if err != nil {
		return Torus{}, err
	}
	// The spine lies along ref; the tube cross-section spans the axis.
	major, minor := t.major*kr, t.minor*ka
	if err := checkTorusRadii(op, major, minor, tol); err != nil {
		return Torus{}, err
	}
	return Torus{frame: f, major: major, minor: minor}, nil
}

func (t Torus) Translate(v geom.Vector3, tol geom.Tol) (Torus, error) {
	return t.apply(translating(v), tol)
}

func (t Torus) Rotate(axisPoint geom.Point3, axis geom.Vector3, angle float64, tol geom.Tol) (Torus, error) {
	return t.apply(rotating(axisPoint, axis, angle, tol), tol)
}

func (t Torus) Scale(center geom.Point3, f float64, tol geom.Tol) (Torus, error) {
	return t.ScaleXYZ(center, f, f, f, tol)
}

// ScaleXYZ fails with ErrInvalidScaleFactor for unequal factors.
func (t Torus) ScaleXYZ(center geom.Point3, fx, fy, fz float64, tol geom.Tol) (Torus, error) {
	return t.apply(scaling(center, fx, fy, fz, tol), tol)
}

func (t Torus) Reflect(planePoint geom.Point3, planeNormal geom.Vector3, tol geom.Tol) (Torus, error) {
	return t.apply(reflecting(planePoint, planeNormal, tol), tol)
}

func (t Torus) Transform(a xform.Affine, tol geom.Tol) (Torus, error) {
	return t.apply(mapped(a, tol), tol)
}
