package shape

import (
	"fmt"

	"github.com/chazu/kerf/pkg/geom"
	"github.com/chazu/kerf/pkg/xform"
)

// Kind enumerates the primitive kinds.
type Kind int

const (
	KindCircle Kind = iota
	KindArc
	KindEllipse
	KindSphere
	KindCone
	KindEllipsoid
	KindTorus
	KindBBox
	KindSegment
	KindTriangle
	KindCircle2
	KindEllipse2
	KindBBox2
	KindSegment2
)

func (k Kind) String() string {
	switch k {
	case KindCircle:
		return "circle"
	case KindArc:
		return "arc"
	case KindEllipse:
		return "ellipse"
	case KindSphere:
		return "sphere"
	case KindCone:
		return "cone"
	case KindEllipsoid:
		return "ellipsoid"
	case KindTorus:
		return "torus"
	case KindBBox:
		return "bbox"
	case KindSegment:
		return "segment"
	case KindTriangle:
		return "triangle"
	case KindCircle2:
		return "circle2"
	case KindEllipse2:
		return "ellipse2"
	case KindBBox2:
		return "bbox2"
	case KindSegment2:
		return "segment2"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Planar reports whether shapes of kind k live in the plane.
func (k Kind) Planar() bool {
	return k >= KindCircle2
}

// Shape is implemented by every primitive in this package and by nothing
// else.
type Shape interface {
	Kind() Kind
	String() string
	shape()
}

// Bounded is implemented by shapes with a finite extent. Cones are the
// only unbounded kind.
type Bounded interface {
	Shape
	Bounds() BBox3
}

func (Circle) shape() {}
func (Arc) shape() {}
func (Ellipse3) shape() {}
func (Sphere) shape() {}
func (Cone) shape() {}
func (Ellipsoid) shape() {}
func (Torus) shape() {}
func (BBox3) shape() {}
func (Segment3) shape() {}
func (Triangle) shape() {}
func (Circle2) shape() {}
func (Ellipse2) shape() {}
func (BBox2) shape() {}
func (Segment2) shape() {}

func lift[S Shape](s S, err error) (Shape, error) {
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Transform applies a to any 3D shape. Planar shapes fail with
// ErrInvalidGeometry; use Transform2 for them.
func Transform(s Shape, a xform.Affine, tol geom.Tol) (Shape, error) {
	switch s := s.(type) {
	case Circle:
		return lift(s.Transform(a, tol))
	case Arc:
		return lift(s.Transform(a, tol))
	case Ellipse3:
		return lift(s.Transform(a, tol))
	case Sphere:
		return lift(s.Transform(a, tol))
	case Cone:
		return lift(s.Transform(a, tol))
	case Ellipsoid:
		return lift(s.Transform(a, tol))
	case Torus:
		return lift(s.Transform(a, tol))
	case BBox3:
		return lift(s.Transform(a, tol))
	case Segment3:
		return lift(s.Transform(a, tol))
	case Triangle:
		return lift(s.Transform(a, tol))
	case nil:
		return nil, geom.Fail("transform", geom.ErrInvalidGeometry, "shape is nil")
	default:
		return nil, geom.Fail(s.Kind().String()+".transform", geom.ErrInvalidGeometry, "planar shape needs a planar transform")
	}
}

// Transform2 applies a to any planar shape.
func Transform2(s Shape, a xform.Affine2, tol geom.Tol) (Shape, error) {
	switch s := s.(type) {
	case Circle2:
		return lift(s.Transform(a, tol))
	case Ellipse2:
		return lift(s.Transform(a, tol))
	case BBox2:
		return lift(s.Transform(a, tol))
	case Segment2:
		return lift(s.Transform(a, tol))
	case nil:
		return nil, geom.Fail("transform", geom.ErrInvalidGeometry, "shape is nil")
	default:
		return nil, geom.Fail(s.Kind().String()+".transform", geom.ErrInvalidGeometry, "spatial shape needs a spatial transform")
	}
}

// BoundsOf returns the bounding box of s, or false for unbounded and
// planar shapes.
func BoundsOf(s Shape) (BBox3, bool) {
	b, ok := s.(Bounded)
	if !ok {
		return BBox3{}, false
	}
	return b.Bounds(), true
}

// ScaleOrClamp is the explicit fallback for scale factors outside a
// shape's valid range. scale is tried with f first; only if that fails
// with ErrInvalidScaleFactor is f clamped to [lo, hi] and scale retried.
// The factor actually applied is returned.
//
//	c2, used, err := shape.ScaleOrClamp(func(f float64) (shape.Circle, error) {
//		return c.Scale(geom.Origin, f, tol)
//	}, -2, 0.1, 10)
func ScaleOrClamp[S Shape](scale func(float64) (S, error), f, lo, hi float64) (S, float64, error) {
	return xform.RetryClamped(scale, f, lo, hi)
}
