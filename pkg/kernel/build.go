package kernel

import (
	"errors"
	"fmt"

	"github.com/chazu/kerf/pkg/geom"
	"github.com/chazu/kerf/pkg/shape"
	"github.com/chazu/kerf/pkg/xform"
	"github.com/go-gl/mathgl/mgl64"
)

var (
	// ErrNotSolid: the shape is a curve or an open patch and encloses no
	// volume.
	ErrNotSolid = errors.New("shape does not enclose a volume")

	// ErrUnbounded: the shape extends to infinity.
	ErrUnbounded = errors.New("shape is unbounded")
)

// Frame is a rigid placement: the primitive's local +X goes to Ref, +Z to
// Axis, +Y to Axis × Ref and the local origin to Origin.
type Frame struct {
	Origin geom.Point3
	Axis   geom.Direction3
	Ref    geom.Direction3
}

// At is the frame that only translates to origin.
func At(origin geom.Point3) Frame {
	return Frame{Origin: origin, Axis: geom.UnitZ, Ref: geom.UnitX}
}

// Affine returns the local-to-world map of f.
func (f Frame) Affine() (xform.Affine, error) {
	x, z := f.Ref.Vector(), f.Axis.Vector()
	y := z.Cross(x)
	o := f.Origin
	return xform.FromMat4(mgl64.Mat4{
		x.X, x.Y, x.Z, 0,
		y.X, y.Y, y.Z, 0,
		z.X, z.Y, z.Z, 0,
		o.X, o.Y, o.Z, 1,
	})
}

// Build turns a placed shape into a kernel solid. Closed surfaces and
// boxes are supported; other shapes fail with ErrNotSolid, cones with
// ErrUnbounded.
func Build(k Kernel, s shape.Shape) (Solid, error) {
	var (
		solid Solid
		f     Frame
		err   error
	)
	switch v := s.(type) {
	case shape.Sphere:
		solid, err = k.Sphere(v.Radius())
		f = Frame{Origin: v.Center(), Axis: v.Axis(), Ref: v.Ref()}
	case shape.Torus:
		solid, err = k.Torus(v.Major(), v.Minor())
		f = Frame{Origin: v.Center(), Axis: v.Axis(), Ref: v.Ref()}
	case shape.Ellipsoid:
		solid, err = k.Ellipsoid(v.Radii())
		f = Frame{Origin: v.Center(), Axis: v.Axis(), Ref: v.Ref()}
	case shape.BBox3:
		solid, err = k.Box(v.Size())
		f = At(v.Center())
	case shape.Cone:
		return nil, fmt.Errorf("kernel: %s: %w", s.Kind(), ErrUnbounded)
	default:
		return nil, fmt.Errorf("kernel: %s: %w", s.Kind(), ErrNotSolid)
	}
	if err != nil {
		return nil, fmt.Errorf("kernel: %s: %w", s.Kind(), err)
	}
	return k.Place(solid, f)
}
