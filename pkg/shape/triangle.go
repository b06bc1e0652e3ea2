package shape

import (
	"fmt"
	"math"

	"github.com/chazu/kerf/pkg/geom"
	"github.com/chazu/kerf/pkg/xform"
)

// Triangle is a non-degenerate triangle in space.
type Triangle struct {
	v [3]geom.Point3
}

// NewTriangle fails with ErrZeroVector when the vertices are collinear
// within tolerance.
func NewTriangle(a, b, c geom.Point3, tol geom.Tol) (Triangle, error) {
	const op = "triangle"
	for _, p := range []geom.Point3{a, b, c} {
		if err := xform.CheckPoint(op, "vertex", p); err != nil {
			return Triangle{}, err
		}
	}
	t := Triangle{v: [3]geom.Point3{a, b, c}}
	if err := t.checkArea(op, tol); err != nil {
		return Triangle{}, err
	}
	return t, nil
}

// checkArea rejects triangles whose smallest height is within the
// distance tolerance.
func (t Triangle) checkArea(op string, tol geom.Tol) error {
	e0 := t.v[1].Sub(t.v[0])
	e1 := t.v[2].Sub(t.v[0])
	e2 := t.v[2].Sub(t.v[1])
	longest := math.Max(e0.Length(), math.Max(e1.Length(), e2.Length()))
	twiceArea := e0.Cross(e1).Length()
	if longest <= tol.Distance || twiceArea <= tol.Distance*longest {
		return geom.Fail(op, geom.ErrZeroVector, "vertices are collinear (area %g)", twiceArea/2)
	}
	return nil
}

func (Triangle) Kind() Kind { return KindTriangle }

// Vertices returns the three vertices in order.
func (t Triangle) Vertices() [3]geom.Point3 { return t.v }

func (t Triangle) Area() float64 {
	return t.v[1].Sub(t.v[0]).Cross(t.v[2].Sub(t.v[0])).Length() / 2
}

// Normal returns the unit normal following the right-hand rule over the
// vertex order.
func (t Triangle) Normal() geom.Direction3 {
	d, _, _ := direction("triangle", t.v[1].Sub(t.v[0]).Cross(t.v[2].Sub(t.v[0])), geom.Tol{})
	return d
}

func (t Triangle) Centroid() geom.Point3 {
	s := t.v[0].Vector().Add(t.v[1].Vector()).Add(t.v[2].Vector())
	return geom.PointFromVector(s.Scale(1.0 / 3))
}

func (t Triangle) Bounds() BBox3 {
	return BBox3{min: t.v[0].Min(t.v[1]).Min(t.v[2]), max: t.v[0].Max(t.v[1]).Max(t.v[2])}
}

func (t Triangle) ApproxEqual(u Triangle, tol geom.Tol) bool {
	for i := range t.v {
		if !t.v[i].ApproxEqual(u.v[i], tol) {
			return false
		}
	}
	return true
}

func (t Triangle) String() string {
	return fmt.Sprintf("triangle(%v, %v, %v)", t.v[0], t.v[1], t.v[2])
}

func (t Triangle) apply(m mapping, tol geom.Tol) (Triangle, error) {
	op := "triangle." + m.op
	if err := m.check(op); err != nil {
		return Triangle{}, err
	}
	var out Triangle
	for i, p := range t.v {
		q, err := m.mapPoint(op, p)
		if err != nil {
			return Triangle{}, err
		}
		out.v[i] = q
	}
	if err := out.checkArea(op, tol); err != nil {
		return Triangle{}, err
	}
	return out, nil
}

func (t Triangle) Translate(v geom.Vector3, tol geom.Tol) (Triangle, error) {
	return t.apply(translating(v), tol)
}

func (t Triangle) Rotate(axisPoint geom.Point3, axis geom.Vector3, angle float64, tol geom.Tol) (Triangle, error) {
	return t.apply(rotating(axisPoint, axis, angle, tol), tol)
}

func (t Triangle) Scale(center geom.Point3, f float64, tol geom.Tol) (Triangle, error) {
	return t.ScaleXYZ(center, f, f, f, tol)
}

func (t Triangle) ScaleXYZ(center geom.Point3, fx, fy, fz float64, tol geom.Tol) (Triangle, error) {
	return t.apply(scaling(center, fx, fy, fz, tol), tol)
}

// Reflect mirrors the vertices. The vertex order is kept, so the normal
// flips with the orientation.
func (t Triangle) Reflect(planePoint geom.Point3, planeNormal geom.Vector3, tol geom.Tol) (Triangle, error) {
	return t.apply(reflecting(planePoint, planeNormal, tol), tol)
}

func (t Triangle) Transform(a xform.Affine, tol geom.Tol) (Triangle, error) {
	return t.apply(mapped(a, tol), tol)
}
