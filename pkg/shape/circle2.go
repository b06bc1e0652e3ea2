package shape

import (
	"fmt"
	"math"

	"github.com/chazu/kerf/pkg/geom"
	"github.com/chazu/kerf/pkg/xform"
)

// Circle2 is a planar circle.
type Circle2 struct {
	center geom.Point2
	radius float64
}

func NewCircle2(center geom.Point2, radius float64, tol geom.Tol) (Circle2, error) {
	const op = "circle2"
	if !center.IsFinite() {
		return Circle2{}, geom.Fail(op, geom.ErrInvalidGeometry, "center %v is not finite", center)
	}
	if err := xform.CheckRadius(op, "radius", radius, tol); err != nil {
		return Circle2{}, err
	}
	return Circle2{center: center, radius: radius}, nil
}

func (Circle2) Kind() Kind { return KindCircle2 }

func (c Circle2) Center() geom.Point2 { return c.center }
func (c Circle2) Radius() float64     { return c.radius }
func (c Circle2) Area() float64       { return math.Pi * c.radius * c.radius }

func (c Circle2) Bounds() BBox2 {
	r := geom.V2(c.radius, c.radius)
	return BBox2{min: c.center.Add(r.Neg()), max: c.center.Add(r)}
}

func (c Circle2) ApproxEqual(d Circle2, tol geom.Tol) bool {
	return c.center.ApproxEqual(d.center, tol) && tol.Equal(c.radius, d.radius)
}

func (c Circle2) String() string {
	return fmt.Sprintf("circle2(center=%v r=%g)", c.center, c.radius)
}

func (c Circle2) apply(m mapping2, tol geom.Tol) (Circle2, error) {
	op := "circle2." + m.op
	if err := m.checkSimilar(op); err != nil {
		return Circle2{}, err
	}
	center, err := m.mapPoint(op, c.center)
	if err != nil {
		return Circle2{}, err
	}
	u, err := m.mapVector(op, geom.V2(c.radius, 0))
	if err != nil {
		return Circle2{}, err
	}
	r := u.Length()
	if err := xform.CheckRadius(op, "radius", r, tol); err != nil {
		return Circle2{}, err
	}
	return Circle2{center: center, radius: r}, nil
}

func (c Circle2) Translate(v geom.Vector2, tol geom.Tol) (Circle2, error) {
	return c.apply(translating2(v), tol)
}

func (c Circle2) Rotate(center geom.Point2, angle float64, tol geom.Tol) (Circle2, error) {
	return c.apply(rotating2(center, angle), tol)
}

func (c Circle2) Scale(center geom.Point2, f float64, tol geom.Tol) (Circle2, error) {
	return c.ScaleXY(center, f, f, tol)
}

// ScaleXY fails with ErrInvalidScaleFactor unless fx = fy.
func (c Circle2) ScaleXY(center geom.Point2, fx, fy float64, tol geom.Tol) (Circle2, error) {
	return c.apply(scaling2(center, fx, fy, tol), tol)
}

func (c Circle2) Reflect(linePoint geom.Point2, lineNormal geom.Vector2, tol geom.Tol) (Circle2, error) {
	return c.apply(reflecting2(linePoint, lineNormal, tol), tol)
}

func (c Circle2) Transform(a xform.Affine2, tol geom.Tol) (Circle2, error) {
	return c.apply(mapped2(a, tol), tol)
}
