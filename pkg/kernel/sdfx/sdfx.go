// Package sdfx implements the kernel.Kernel interface using the
// github.com/deadsy/sdfx SDF-based CAD library.
package sdfx

import (
	"fmt"
	"math"

	"github.com/chazu/kerf/pkg/geom"
	"github.com/chazu/kerf/pkg/kernel"
	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Compile-time interface check.
var _ kernel.Kernel = (*SdfxKernel)(nil)

// DefaultMeshCells controls marching cubes tessellation resolution.
const DefaultMeshCells = 200

// sdfxSolid wraps an sdf.SDF3 to implement kernel.Solid.
type sdfxSolid struct {
	s sdf.SDF3
}

// BoundingBox returns the axis-aligned bounding box.
func (s *sdfxSolid) BoundingBox() (min, max [3]float64) {
	bb := s.s.BoundingBox()
	min = [3]float64{bb.Min.X, bb.Min.Y, bb.Min.Z}
	max = [3]float64{bb.Max.X, bb.Max.Y, bb.Max.Z}
	return min, max
}

// SdfxKernel implements kernel.Kernel using sdfx.
type SdfxKernel struct {
	cells int
}

// New returns a new SdfxKernel that meshes with the given number of
// marching cubes cells along the longest side. Non-positive values select
// DefaultMeshCells.
func New(cells int) *SdfxKernel {
	if cells <= 0 {
		cells = DefaultMeshCells
	}
	return &SdfxKernel{cells: cells}
}

// unwrap extracts the underlying sdf.SDF3 from a kernel.Solid.
func unwrap(s kernel.Solid) sdf.SDF3 {
	return s.(*sdfxSolid).s
}

// wrap creates a kernel.Solid from an sdf.SDF3.
func wrap(s sdf.SDF3) kernel.Solid {
	return &sdfxSolid{s: s}
}

// Sphere creates a sphere centered on the origin.
func (k *SdfxKernel) Sphere(radius float64) (kernel.Solid, error) {
	s, err := sdf.Sphere3D(radius)
	if err != nil {
		return nil, fmt.Errorf("sdfx.Sphere3D: %w", err)
	}
	return wrap(s), nil
}

// Box creates a box with the given dimensions centered on the origin.
func (k *SdfxKernel) Box(size geom.Vector3) (kernel.Solid, error) {
	s, err := sdf.Box3D(size.Vec(), 0)
	if err != nil {
		return nil, fmt.Errorf("sdfx.Box3D: %w", err)
	}
	return wrap(s), nil
}

// Torus revolves a circle of radius minor, centered major away from the
// Z axis, around that axis.
func (k *SdfxKernel) Torus(major, minor float64) (kernel.Solid, error) {
	if !(minor > 0 && major > minor) {
		return nil, fmt.Errorf("sdfx: torus needs 0 < minor < major, got %g, %g", minor, major)
	}
	c, err := sdf.Circle2D(minor)
	if err != nil {
		return nil, fmt.Errorf("sdfx.Circle2D: %w", err)
	}
	profile := sdf.Transform2D(c, sdf.Translate2d(v2.Vec{X: major}))
	s, err := sdf.Revolve3D(profile)
	if err != nil {
		return nil, fmt.Errorf("sdfx.Revolve3D: %w", err)
	}
	return wrap(s), nil
}

// Ellipsoid stretches a unit sphere by rx, ry and rz along X, Y and Z.
func (k *SdfxKernel) Ellipsoid(rx, ry, rz float64) (kernel.Solid, error) {
	unit, err := sdf.Sphere3D(1)
	if err != nil {
		return nil, fmt.Errorf("sdfx.Sphere3D: %w", err)
	}
	if !(rx > 0 && ry > 0 && rz > 0) {
		return nil, fmt.Errorf("sdfx: ellipsoid needs positive radii, got %g, %g, %g", rx, ry, rz)
	}
	stretched := sdf.Transform3D(unit, sdf.Scale3d(v3.Vec{X: rx, Y: ry, Z: rz}))
	return wrap(&scaledSDF{SDF3: stretched, k: math.Min(rx, math.Min(ry, rz))}), nil
}

// Union returns the union of two solids.
func (k *SdfxKernel) Union(a, b kernel.Solid) kernel.Solid {
	return wrap(sdf.Union3D(unwrap(a), unwrap(b)))
}

// Place moves a solid modelled at the origin into frame f.
func (k *SdfxKernel) Place(s kernel.Solid, f kernel.Frame) (kernel.Solid, error) {
	m, err := frameMatrix(f)
	if err != nil {
		return nil, fmt.Errorf("sdfx: place: %w", err)
	}
	return wrap(sdf.Transform3D(unwrap(s), m)), nil
}

// frameMatrix returns the local-to-world map of f as a row-major sdfx
// matrix.
func frameMatrix(f kernel.Frame) (sdf.M44, error) {
	a, err := f.Affine()
	if err != nil {
		return sdf.M44{}, err
	}
	m := a.Mat4()
	var rows [16]float64
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			rows[4*r+c] = m.At(r, c)
		}
	}
	return sdf.NewM44(rows), nil
}

// ToMesh converts a solid to a triangle mesh using marching cubes.
func (k *SdfxKernel) ToMesh(s kernel.Solid) (*kernel.Mesh, error) {
	sdf3 := unwrap(s)

	renderer := render.NewMarchingCubesUniform(k.cells)
	triangles := render.ToTriangles(sdf3, renderer)

	numTri := len(triangles)
	numVerts := numTri * 3

	vertices := make([]float32, 0, numVerts*3)
	normals := make([]float32, 0, numVerts*3)
	indices := make([]uint32, 0, numVerts)

	for i, tri := range triangles {
		// Compute face normal.
		n := tri.Normal()
		nx := float32(n.X)
		ny := float32(n.Y)
		nz := float32(n.Z)

		for j := 0; j < 3; j++ {
			v := tri[j]
			vertices = append(vertices, float32(v.X), float32(v.Y), float32(v.Z))
			normals = append(normals, nx, ny, nz)
			indices = append(indices, uint32(i*3+j))
		}
	}

	return &kernel.Mesh{
		Vertices: vertices,
		Normals:  normals,
		Indices:  indices,
	}, nil
}

// scaledSDF corrects the distances of a non-uniformly scaled SDF3 by k,
// the smallest scale factor, so they never overestimate the true distance.
type scaledSDF struct {
	sdf.SDF3
	k float64
}

// Evaluate returns the corrected signed distance from p to the surface.
func (s *scaledSDF) Evaluate(p v3.Vec) float64 {
	return s.k * s.SDF3.Evaluate(p)
}
