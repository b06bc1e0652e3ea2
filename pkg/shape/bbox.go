package shape

import (
	"fmt"

	"github.com/chazu/kerf/pkg/geom"
	"github.com/chazu/kerf/pkg/xform"
)

// BBox3 is an axis-aligned box with min ≤ max on every axis.
type BBox3 struct {
	min, max geom.Point3
}

// NewBBox3 builds the box spanned by two opposite corners in any order.
func NewBBox3(a, b geom.Point3) (BBox3, error) {
	const op = "bbox"
	if err := xform.CheckPoint(op, "corner", a); err != nil {
		return BBox3{}, err
	}
	if err := xform.CheckPoint(op, "corner", b); err != nil {
		return BBox3{}, err
	}
	return BBox3{min: a.Min(b), max: a.Max(b)}, nil
}

// BBox3Of returns the smallest box containing every point of ps.
func BBox3Of(ps ...geom.Point3) (BBox3, error) {
	const op = "bbox"
	if len(ps) == 0 {
		return BBox3{}, geom.Fail(op, geom.ErrInvalidGeometry, "no points")
	}
	b := BBox3{min: ps[0], max: ps[0]}
	for _, p := range ps {
		if err := xform.CheckPoint(op, "point", p); err != nil {
			return BBox3{}, err
		}
		b = b.include(p)
	}
	return b, nil
}

func (BBox3) Kind() Kind { return KindBBox }

func (b BBox3) Min() geom.Point3    { return b.min }
func (b BBox3) Max() geom.Point3    { return b.max }
func (b BBox3) Size() geom.Vector3  { return b.max.Sub(b.min) }
func (b BBox3) Center() geom.Point3 { return b.min.Lerp(b.max, 0.5) }

func (b BBox3) Volume() float64 {
	s := b.Size()
	return s.X * s.Y * s.Z
}

// Corners returns the eight corners; bit i of the index selects max on
// axis i.
func (b BBox3) Corners() [8]geom.Point3 {
	var out [8]geom.Point3
	for i := range out {
		p := b.min
		if i&1 != 0 {
			p.X = b.max.X
		}
		if i&2 != 0 {
			p.Y = b.max.Y
		}
		if i&4 != 0 {
			p.Z = b.max.Z
		}
		out[i] = p
	}
	return out
}

// Contains reports whether p lies inside or on the box.
func (b BBox3) Contains(p geom.Point3) bool {
	return p.X >= b.min.X && p.X <= b.max.X &&
		p.Y >= b.min.Y && p.Y <= b.max.Y &&
		p.Z >= b.min.Z && p.Z <= b.max.Z
}

// Union returns the smallest box containing b and c.
func (b BBox3) Union(c BBox3) BBox3 {
	return BBox3{min: b.min.Min(c.min), max: b.max.Max(c.max)}
}

func (b BBox3) include(p geom.Point3) BBox3 {
	return BBox3{min: b.min.Min(p), max: b.max.Max(p)}
}

func (b BBox3) Bounds() BBox3 { return b }

func (b BBox3) ApproxEqual(c BBox3, tol geom.Tol) bool {
	return b.min.ApproxEqual(c.min, tol) && b.max.ApproxEqual(c.max, tol)
}

func (b BBox3) String() string {
	return fmt.Sprintf("bbox(%v, %v)", b.min, b.max)
}

// corners maps all eight corners with one composed matrix and re-derives
// min and max; rotation and reflection do not keep boxes axis-aligned.
func (b BBox3) corners(op string, a xform.Affine) (BBox3, error) {
	cs := b.Corners()
	ps, err := a.ApplyPoints(cs[:])
	if err != nil {
		return BBox3{}, geom.Reop(op, err)
	}
	out := BBox3{min: ps[0], max: ps[0]}
	for _, p := range ps[1:] {
		out = out.include(p)
	}
	return out, nil
}

func (b BBox3) apply(m mapping) (BBox3, error) {
	op := "bbox." + m.op
	if err := m.check(op); err != nil {
		return BBox3{}, err
	}
	a, err := m.affine()
	if err != nil {
		return BBox3{}, geom.Reop(op, err)
	}
	return b.corners(op, a)
}

// Translate moves min and max directly.
func (b BBox3) Translate(v geom.Vector3, tol geom.Tol) (BBox3, error) {
	const op = "bbox.translate"
	lo, err := xform.Translate(b.min, v)
	if err != nil {
		return BBox3{}, geom.Reop(op, err)
	}
	hi, err := xform.Translate(b.max, v)
	if err != nil {
		return BBox3{}, geom.Reop(op, err)
	}
	return BBox3{min: lo, max: hi}, nil
}

// Rotate returns the box around the eight rotated corners.
func (b BBox3) Rotate(axisPoint geom.Point3, axis geom.Vector3, angle float64, tol geom.Tol) (BBox3, error) {
	return b.apply(rotating(axisPoint, axis, angle, tol))
}

func (b BBox3) Scale(center geom.Point3, f float64, tol geom.Tol) (BBox3, error) {
	return b.ScaleXYZ(center, f, f, f, tol)
}

func (b BBox3) ScaleXYZ(center geom.Point3, fx, fy, fz float64, tol geom.Tol) (BBox3, error) {
	return b.apply(scaling(center, fx, fy, fz, tol))
}

func (b BBox3) Reflect(planePoint geom.Point3, planeNormal geom.Vector3, tol geom.Tol) (BBox3, error) {
	return b.apply(reflecting(planePoint, planeNormal, tol))
}

func (b BBox3) Transform(a xform.Affine, tol geom.Tol) (BBox3, error) {
	return b.apply(mapped(a, tol))
}

// ---------------------------------------------------------------------------
// BBox2
// ---------------------------------------------------------------------------

// BBox2 is an axis-aligned rectangle with min ≤ max on both axes.
type BBox2 struct {
	min, max geom.Point2
}

// NewBBox2 builds the rectangle spanned by two opposite corners.
func NewBBox2(a, b geom.Point2) (BBox2, error) {
	if !a.IsFinite() || !b.IsFinite() {
		return BBox2{}, geom.Fail("bbox2", geom.ErrInvalidGeometry, "corners %v, %v are not finite", a, b)
	}
	return BBox2{min: a.Min(b), max: a.Max(b)}, nil
}

func (BBox2) Kind() Kind { return KindBBox2 }

func (b BBox2) Min() geom.Point2   { return b.min }
func (b BBox2) Max() geom.Point2   { return b.max }
func (b BBox2) Size() geom.Vector2 { return b.max.Sub(b.min) }

func (b BBox2) Area() float64 {
	s := b.Size()
	return s.X * s.Y
}

// Corners returns the four corners counter-clockwise from min.
func (b BBox2) Corners() [4]geom.Point2 {
	return [4]geom.Point2{
		b.min,
		geom.P2(b.max.X, b.min.Y),
		b.max,
		geom.P2(b.min.X, b.max.Y),
	}
}

func (b BBox2) Contains(p geom.Point2) bool {
	return p.X >= b.min.X && p.X <= b.max.X && p.Y >= b.min.Y && p.Y <= b.max.Y
}

func (b BBox2) Union(c BBox2) BBox2 {
	return BBox2{min: b.min.Min(c.min), max: b.max.Max(c.max)}
}

func (b BBox2) ApproxEqual(c BBox2, tol geom.Tol) bool {
	return b.min.ApproxEqual(c.min, tol) && b.max.ApproxEqual(c.max, tol)
}

func (b BBox2) String() string {
	return fmt.Sprintf("bbox2(%v, %v)", b.min, b.max)
}

func (b BBox2) apply(m mapping2) (BBox2, error) {
	op := "bbox2." + m.op
	if err := m.check(op); err != nil {
		return BBox2{}, err
	}
	a, err := m.affine()
	if err != nil {
		return BBox2{}, geom.Reop(op, err)
	}
	cs := b.Corners()
	ps, err := a.ApplyPoints(cs[:])
	if err != nil {
		return BBox2{}, geom.Reop(op, err)
	}
	out := BBox2{min: ps[0], max: ps[0]}
	for _, p := range ps[1:] {
		out = BBox2{min: out.min.Min(p), max: out.max.Max(p)}
	}
	return out, nil
}

func (b BBox2) Translate(v geom.Vector2, tol geom.Tol) (BBox2, error) {
	const op = "bbox2.translate"
	lo, err := xform.Translate2(b.min, v)
	if err != nil {
		return BBox2{}, geom.Reop(op, err)
	}
	hi, err := xform.Translate2(b.max, v)
	if err != nil {
		return BBox2{}, geom.Reop(op, err)
	}
	return BBox2{min: lo, max: hi}, nil
}

func (b BBox2) Rotate(center geom.Point2, angle float64, tol geom.Tol) (BBox2, error) {
	return b.apply(rotating2(center, angle))
}

func (b BBox2) Scale(center geom.Point2, f float64, tol geom.Tol) (BBox2, error) {
	return b.ScaleXY(center, f, f, tol)
}

func (b BBox2) ScaleXY(center geom.Point2, fx, fy float64, tol geom.Tol) (BBox2, error) {
	return b.apply(scaling2(center, fx, fy, tol))
}

func (b BBox2) Reflect(linePoint geom.Point2, lineNormal geom.Vector2, tol geom.Tol) (BBox2, error) {
	return b.apply(reflecting2(linePoint, lineNormal, tol))
}

func (b BBox2) Transform(a xform.Affine2, tol geom.Tol) (BBox2, error) {
	return b.apply(mapped2(a, tol))
}
