package shape

import (
	"fmt"
	"math"

	"github.com/chazu/kerf/pkg/geom"
	"github.com/chazu/kerf/pkg/xform"
)

// Circle is a full circle in space.
type Circle struct {
	center geom.Point3
	normal geom.Direction3
	radius float64
}

// NewCircle builds a circle in the plane through center with the given
// normal.
func NewCircle(center geom.Point3, normal geom.Vector3, radius float64, tol geom.Tol) (Circle, error) {
	const op = "circle"
	if err := xform.CheckPoint(op, "center", center); err != nil {
		return Circle{}, err
	}
	n, err := xform.CheckAxis(op, "normal", normal, tol)
	if err != nil {
		return Circle{}, err
	}
	if err := xform.CheckRadius(op, "radius", radius, tol); err != nil {
		return Circle{}, err
	}
	return Circle{center: center, normal: n, radius: radius}, nil
}

func (Circle) Kind() Kind { return KindCircle }

func (c Circle) Center() geom.Point3     { return c.center }
func (c Circle) Normal() geom.Direction3 { return c.normal }
func (c Circle) Radius() float64         { return c.radius }
func (c Circle) Area() float64           { return math.Pi * c.radius * c.radius }
func (c Circle) Circumference() float64  { return 2 * math.Pi * c.radius }

// ApproxEqual compares every defining quantity within tol.
func (c Circle) ApproxEqual(d Circle, tol geom.Tol) bool {
	return c.center.ApproxEqual(d.center, tol) &&
		c.normal.ApproxEqual(d.normal, tol) &&
		tol.Equal(c.radius, d.radius)
}

// Bounds returns the exact axis-aligned extent of the circle.
func (c Circle) Bounds() BBox3 {
	return discBounds(c.center, c.normal, c.radius)
}

// discBounds is the box around a circle: along each axis the extent is
// r·sqrt(1 − n_i²).
func discBounds(center geom.Point3, n geom.Direction3, r float64) BBox3 {
	e := geom.V3(
		r*math.Sqrt(math.Max(0, 1-n.X()*n.X())),
		r*math.Sqrt(math.Max(0, 1-n.Y()*n.Y())),
		r*math.Sqrt(math.Max(0, 1-n.Z()*n.Z())),
	)
	return BBox3{min: center.Add(e.Neg()), max: center.Add(e)}
}

func (c Circle) String() string {
	return fmt.Sprintf("circle(center=%v normal=%v r=%g)", c.center, c.normal, c.radius)
}

func (c Circle) apply(m mapping, tol geom.Tol) (Circle, error) {
	op := "circle." + m.op
	if err := m.checkSimilar(op); err != nil {
		return Circle{}, err
	}
	center, err := m.mapPoint(op, c.center)
	if err != nil {
		return Circle{}, err
	}
	normal, _, err := m.mapDirection(op, c.normal, tol)
	if err != nil {
		return Circle{}, err
	}
	// Radius from the image of an in-plane radius vector.
	_, scale, err := m.mapDirection(op, c.normal.Perpendicular(), tol)
	if err != nil {
		return Circle{}, err
	}
	r := c.radius * scale
	if err := xform.CheckRadius(op, "radius", r, tol); err != nil {
		return Circle{}, err
	}
	return Circle{center: center, normal: normal, radius: r}, nil
}

func (c Circle) Translate(v geom.Vector3, tol geom.Tol) (Circle, error) {
	return c.apply(translating(v), tol)
}

func (c Circle) Rotate(axisPoint geom.Point3, axis geom.Vector3, angle float64, tol geom.Tol) (Circle, error) {
	return c.apply(rotating(axisPoint, axis, angle, tol), tol)
}

// Scale scales about center. Circles only admit uniform factors.
func (c Circle) Scale(center geom.Point3, f float64, tol geom.Tol) (Circle, error) {
	return c.ScaleXYZ(center, f, f, f, tol)
}

// ScaleXYZ fails with ErrInvalidScaleFactor unless the factors are equal;
// a non-uniform image of a circle is an ellipse.
func (c Circle) ScaleXYZ(center geom.Point3, fx, fy, fz float64, tol geom.Tol) (Circle, error) {
	return c.apply(scaling(center, fx, fy, fz, tol), tol)
}

func (c Circle) Reflect(planePoint geom.Point3, planeNormal geom.Vector3, tol geom.Tol) (Circle, error) {
	return c.apply(reflecting(planePoint, planeNormal, tol), tol)
}

// Transform applies a composed matrix, which must be a similarity.
func (c Circle) Transform(a xform.Affine, tol geom.Tol) (Circle, error) {
	return c.apply(mapped(a, tol), tol)
}

// Ellipse returns c as an ellipse with equal axes, which can then take
// non-uniform scales.
func (c Circle) Ellipse() Ellipse3 {
	return Ellipse3{
		center: c.center,
		normal: c.normal,
		major:  c.normal.Perpendicular(),
		a:      c.radius,
		b:      c.radius,
	}
}
