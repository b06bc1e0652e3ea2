// Package kernel defines the abstract geometry kernel interface.
// Implementations provide closed solids and their triangle meshes behind
// this interface; Build and Tessellate turn placed shapes into solids and
// meshes through it.
package kernel

import (
	"github.com/chazu/kerf/pkg/geom"
)

// Solid is an opaque handle to a geometry kernel solid.
// Implementations wrap their internal representation.
type Solid interface {
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() (min, max [3]float64)
}

// Kernel is the abstract geometry kernel interface. Primitives are
// modelled at the origin with their symmetry axis along +Z; Place moves
// them into the world.
type Kernel interface {
	// Primitives
	Sphere(radius float64) (Solid, error)
	Box(size geom.Vector3) (Solid, error) // centered on the origin
	Torus(major, minor float64) (Solid, error)
	Ellipsoid(rx, ry, rz float64) (Solid, error)

	// Boolean operations
	Union(a, b Solid) Solid

	// Placement
	Place(s Solid, f Frame) (Solid, error)

	// Mesh output
	ToMesh(s Solid) (*Mesh, error)
}
