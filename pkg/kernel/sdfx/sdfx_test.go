package sdfx

import (
	"math"
	"testing"

	"github.com/chazu/kerf/pkg/geom"
	"github.com/chazu/kerf/pkg/kernel"
	"github.com/chazu/kerf/pkg/scalar"
	"github.com/chazu/kerf/pkg/shape"
)

// testCells keeps marching cubes fast in tests.
const testCells = 40

var tol = scalar.Default[float64]()

func checkBounds(t *testing.T, s kernel.Solid, wantMin, wantMax [3]float64, slack float64) {
	t.Helper()
	min, max := s.BoundingBox()
	for i := 0; i < 3; i++ {
		if math.Abs(min[i]-wantMin[i]) > slack {
			t.Errorf("min[%d] = %f, expected ~%f", i, min[i], wantMin[i])
		}
		if math.Abs(max[i]-wantMax[i]) > slack {
			t.Errorf("max[%d] = %f, expected ~%f", i, max[i], wantMax[i])
		}
	}
}

func checkMesh(t *testing.T, k *SdfxKernel, s kernel.Solid) *kernel.Mesh {
	t.Helper()
	mesh, err := k.ToMesh(s)
	if err != nil {
		t.Fatalf("ToMesh failed: %v", err)
	}
	if mesh.IsEmpty() {
		t.Fatal("mesh is empty")
	}
	if len(mesh.Vertices) != len(mesh.Normals) {
		t.Fatalf("vertices length %d != normals length %d", len(mesh.Vertices), len(mesh.Normals))
	}
	if len(mesh.Indices) != mesh.TriangleCount()*3 {
		t.Fatalf("indices length %d != triCount*3 %d", len(mesh.Indices), mesh.TriangleCount()*3)
	}
	return mesh
}

func TestNewDefaultsCells(t *testing.T) {
	if k := New(0); k.cells != DefaultMeshCells {
		t.Errorf("cells = %d, want %d", k.cells, DefaultMeshCells)
	}
	if k := New(12); k.cells != 12 {
		t.Errorf("cells = %d, want 12", k.cells)
	}
}

func TestPrimitives(t *testing.T) {
	k := New(testCells)

	sphere, err := k.Sphere(5)
	if err != nil {
		t.Fatal(err)
	}
	box, err := k.Box(geom.V3(100, 50, 25))
	if err != nil {
		t.Fatal(err)
	}
	torus, err := k.Torus(10, 2)
	if err != nil {
		t.Fatal(err)
	}
	ellipsoid, err := k.Ellipsoid(3, 2, 1)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		solid    kernel.Solid
		min, max [3]float64
	}{
		{"sphere", sphere, [3]float64{-5, -5, -5}, [3]float64{5, 5, 5}},
		{"box", box, [3]float64{-50, -25, -12.5}, [3]float64{50, 25, 12.5}},
		{"torus", torus, [3]float64{-12, -12, -2}, [3]float64{12, 12, 2}},
		{"ellipsoid", ellipsoid, [3]float64{-3, -2, -1}, [3]float64{3, 2, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkBounds(t, tt.solid, tt.min, tt.max, 0.01)
			checkMesh(t, k, tt.solid)
		})
	}
}

func TestTorusRejectsBadRadii(t *testing.T) {
	k := New(testCells)
	for _, r := range [][2]float64{{2, 2}, {2, 3}, {5, 0}} {
		if _, err := k.Torus(r[0], r[1]); err == nil {
			t.Errorf("Torus(%g, %g): expected error", r[0], r[1])
		}
	}
}

func TestPlace(t *testing.T) {
	k := New(testCells)

	box, err := k.Box(geom.V3(100, 10, 10))
	if err != nil {
		t.Fatal(err)
	}

	// A long box along X placed with its local X on world Y.
	placed, err := k.Place(box, kernel.Frame{Origin: geom.P3(100, 200, 300), Axis: geom.UnitZ, Ref: geom.UnitY})
	if err != nil {
		t.Fatalf("Place failed: %v", err)
	}
	checkBounds(t, placed, [3]float64{95, 150, 295}, [3]float64{105, 250, 305}, 1e-6)

	mesh := checkMesh(t, k, placed)
	min, max, _ := mesh.Bounds()
	if min[1] < 149 || max[1] > 251 {
		t.Errorf("mesh Y extent %v..%v outside the placed box", min[1], max[1])
	}
}

func TestPlacePreservesDistance(t *testing.T) {
	k := New(testCells)
	sphere, _ := k.Sphere(2)
	placed, err := k.Place(sphere, kernel.At(geom.P3(10, 0, 0)))
	if err != nil {
		t.Fatal(err)
	}
	s := unwrap(placed)
	tests := []struct {
		p    geom.Point3
		want float64
	}{
		{geom.P3(10, 0, 0), -2},
		{geom.P3(15, 0, 0), 3},
		{geom.P3(10, 0, 2), 0},
	}
	for _, tt := range tests {
		if got := s.Evaluate(tt.p.Vec()); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Evaluate(%s) = %g, want %g", tt.p, got, tt.want)
		}
	}
}

func TestEllipsoidSurface(t *testing.T) {
	k := New(testCells)
	e, _ := k.Ellipsoid(3, 2, 1)
	s := unwrap(e)
	for _, p := range []geom.Point3{geom.P3(3, 0, 0), geom.P3(0, -2, 0), geom.P3(0, 0, 1)} {
		if got := s.Evaluate(p.Vec()); math.Abs(got) > 1e-9 {
			t.Errorf("Evaluate(%s) = %g, want 0 on the surface", p, got)
		}
	}
	if got := s.Evaluate(geom.P3(0, 0, 0).Vec()); got >= 0 {
		t.Errorf("center should be inside, got %g", got)
	}
}

func TestEllipsoidNeverOverestimates(t *testing.T) {
	k := New(testCells)
	e, err := k.Ellipsoid(3, 2, 1)
	if err != nil {
		t.Fatal(err)
	}
	s := unwrap(e)
	tests := []struct {
		p    geom.Point3
		dist float64
	}{
		{geom.P3(4, 0, 0), 1},
		{geom.P3(0, 5, 0), 3},
		{geom.P3(0, 0, 3), 2},
	}
	for _, tt := range tests {
		if got := s.Evaluate(tt.p.Vec()); got <= 0 || got > tt.dist+1e-9 {
			t.Errorf("Evaluate(%s) = %g, want in (0, %g]", tt.p, got, tt.dist)
		}
	}
	if _, err := k.Ellipsoid(3, 0, 1); err == nil {
		t.Error("expected error for a zero radius")
	}
}

func TestFrameMatrixMatchesAffine(t *testing.T) {
	f := kernel.Frame{Origin: geom.P3(1, 2, 3), Axis: geom.UnitX, Ref: geom.UnitY}
	m, err := frameMatrix(f)
	if err != nil {
		t.Fatal(err)
	}
	a, err := f.Affine()
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range []geom.Point3{geom.Origin, geom.P3(1, 0, 0), geom.P3(0, 1, 0), geom.P3(0, 0, 1), geom.P3(2, -1, 5)} {
		want, err := a.ApplyPoint(p)
		if err != nil {
			t.Fatal(err)
		}
		if got := geom.Point3(m.MulPosition(p.Vec())); !got.ApproxEqual(want, tol) {
			t.Errorf("frame maps %s to %s, want %s", p, got, want)
		}
	}
}

func TestUnion(t *testing.T) {
	k := New(testCells)
	box1, _ := k.Box(geom.V3(50, 50, 50))
	box2, _ := k.Box(geom.V3(50, 50, 50))
	box2, err := k.Place(box2, kernel.At(geom.P3(30, 0, 0)))
	if err != nil {
		t.Fatal(err)
	}
	u := k.Union(box1, box2)
	checkBounds(t, u, [3]float64{-25, -25, -25}, [3]float64{55, 25, 25}, 1e-6)
	checkMesh(t, k, u)
}

func TestBuildTransformedTorus(t *testing.T) {
	k := New(testCells)

	torus, err := shape.NewTorusAt(geom.Origin, 10, 2, tol)
	if err != nil {
		t.Fatal(err)
	}
	// Stand the ring up in the XZ plane and lift it.
	moved, err := torus.Rotate(geom.Origin, geom.V3(1, 0, 0), math.Pi/2, tol)
	if err != nil {
		t.Fatal(err)
	}
	moved, err = moved.Translate(geom.V3(0, 0, 20), tol)
	if err != nil {
		t.Fatal(err)
	}

	s, err := kernel.Build(k, moved)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	checkBounds(t, s, [3]float64{-12, -2, 8}, [3]float64{12, 2, 32}, 1e-6)
	checkMesh(t, k, s)
}
