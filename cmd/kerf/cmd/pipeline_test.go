package cmd

import (
	"context"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chazu/kerf/pkg/config"
	"github.com/chazu/kerf/pkg/geom"
)

func testPipeline() *Pipeline {
	cfg := config.Default()
	cfg.MeshCells = 24
	return NewPipeline(cfg)
}

func readExample(t *testing.T, name string) string {
	t.Helper()
	source, err := os.ReadFile(filepath.Join("..", "..", "..", "examples", name))
	if err != nil {
		t.Fatalf("failed to read %s: %v", name, err)
	}
	return string(source)
}

func requireNoErrors(t *testing.T, r Result) {
	t.Helper()
	if len(r.Errors) > 0 {
		for _, e := range r.Errors {
			t.Errorf("eval error (line %d): %s", e.Line, e.Message)
		}
		t.FailNow()
	}
}

// TestE2EWheelsExample exercises the full path: Lisp source → engine →
// scene → flatten → tessellate.
func TestE2EWheelsExample(t *testing.T) {
	result := testPipeline().Evaluate(context.Background(), readExample(t, "wheels.kerf"), MeshEach)
	requireNoErrors(t, result)

	if len(result.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", result.Warnings)
	}
	if len(result.Shapes) != 5 {
		t.Fatalf("expected 5 shapes, got %d", len(result.Shapes))
	}
	if len(result.Meshes) != 5 {
		t.Fatalf("expected 5 meshes, got %d", len(result.Meshes))
	}
	if len(result.Skipped) != 0 {
		t.Errorf("expected nothing skipped, got %v", result.Skipped)
	}

	counts := map[string]int{}
	colors := map[string]bool{}
	for _, m := range result.Meshes {
		counts[m.Name]++
		colors[m.Color] = true
		if m.IsEmpty() {
			t.Errorf("mesh %q: no vertices", m.Name)
		}
		if len(m.Normals) != len(m.Vertices) {
			t.Errorf("mesh %q: %d normals for %d vertices", m.Name, len(m.Normals), len(m.Vertices))
		}
	}
	if counts["body"] != 1 || counts["wheel"] != 4 {
		t.Errorf("mesh names = %v, want body x1 and wheel x4", counts)
	}
	if len(colors) != 5 {
		t.Errorf("expected 5 distinct colours, got %d", len(colors))
	}

	if result.Bounds == nil {
		t.Fatal("expected scene bounds")
	}
	tol := config.Default().Tol()
	if !result.Bounds.Min().ApproxEqual(geom.P3(-10, -7, -4), tol) {
		t.Errorf("bounds min = %s, want (-10, -7, -4)", result.Bounds.Min())
	}
	if !result.Bounds.Max().ApproxEqual(geom.P3(10, 7, 7), tol) {
		t.Errorf("bounds max = %s, want (10, 7, 7)", result.Bounds.Max())
	}
}

func TestE2EWheelsUnion(t *testing.T) {
	result := testPipeline().Evaluate(context.Background(), readExample(t, "wheels.kerf"), MeshUnion)
	requireNoErrors(t, result)

	if len(result.Shapes) != 5 {
		t.Fatalf("expected 5 shapes, got %d", len(result.Shapes))
	}
	if len(result.Meshes) != 1 {
		t.Fatalf("expected one merged mesh, got %d", len(result.Meshes))
	}
	m := result.Meshes[0]
	if m.Name != "car" {
		t.Errorf("mesh name = %q, want car", m.Name)
	}
	if m.IsEmpty() {
		t.Error("merged mesh has no vertices")
	}
	min, max, _ := m.Bounds()
	if min[1] > -6 || max[1] < 6 {
		t.Errorf("merged mesh Y extent %v..%v does not reach the wheels", min[1], max[1])
	}
	if len(result.Skipped) != 0 {
		t.Errorf("expected nothing skipped, got %v", result.Skipped)
	}
}

func TestE2EMirrorUnion(t *testing.T) {
	result := testPipeline().Evaluate(context.Background(), readExample(t, "mirror.kerf"), MeshUnion)
	requireNoErrors(t, result)

	if len(result.Meshes) != 1 || result.Meshes[0].Name != "mirror" {
		t.Fatalf("expected one mesh named mirror, got %d", len(result.Meshes))
	}
	if len(result.Skipped) != 6 {
		t.Errorf("expected 6 skipped shapes, got %v", result.Skipped)
	}
}

func TestE2EMirrorExample(t *testing.T) {
	result := testPipeline().Evaluate(context.Background(), readExample(t, "mirror.kerf"), MeshEach)
	requireNoErrors(t, result)

	if len(result.Shapes) != 7 {
		t.Fatalf("expected 7 shapes, got %d", len(result.Shapes))
	}
	if len(result.Meshes) != 1 {
		t.Fatalf("expected only the sphere to mesh, got %d meshes", len(result.Meshes))
	}
	if len(result.Skipped) != 6 {
		t.Errorf("expected 6 skipped shapes, got %v", result.Skipped)
	}

	min, max, ok := result.Meshes[0].Bounds()
	if !ok {
		t.Fatal("sphere mesh has no bounds")
	}
	// Scaled by 2 about (0, 0, 5): center (0, 0, 7), radius 2.
	if math.Abs(float64(min[2])-5) > 0.2 || math.Abs(float64(max[2])-9) > 0.2 {
		t.Errorf("sphere Z extent %v..%v, want ~5..9", min[2], max[2])
	}

	kinds := map[string]int{}
	for _, s := range result.Shapes {
		kinds[s.Kind]++
	}
	if kinds["circle"] != 2 {
		t.Errorf("expected 2 circles, got %v", kinds)
	}
}

func TestEvaluateWithoutMesh(t *testing.T) {
	result := testPipeline().Evaluate(context.Background(), readExample(t, "wheels.kerf"), MeshNone)
	requireNoErrors(t, result)
	if len(result.Shapes) != 5 {
		t.Errorf("expected 5 shapes, got %d", len(result.Shapes))
	}
	if result.Meshes != nil {
		t.Errorf("expected no meshes, got %d", len(result.Meshes))
	}
}

func TestEvaluateEmptySource(t *testing.T) {
	result := testPipeline().Evaluate(context.Background(), "", MeshEach)

	if len(result.Errors) != 0 || len(result.Shapes) != 0 || len(result.Meshes) != 0 {
		t.Errorf("expected an empty result, got %+v", result)
	}
	// Slices must encode as [] rather than null.
	data, err := json.Marshal(result)
	if err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{`"shapes":[]`, `"errors":[]`, `"warnings":[]`} {
		if !strings.Contains(string(data), key) {
			t.Errorf("JSON %s missing %s", data, key)
		}
	}
}

func TestEvaluateErrors(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{"syntax", "(+ 1 2)\n(group \"g\"", ""},
		{"bad radius", `(group "g" (sphere :radius -1))`, "radius"},
		{"non-uniform scale of a circle", `(group "g" (scale :by (vec3 1 2 1) (circle :radius 1)))`, "scale"},
		{"duplicate name", `(defshape "a" (sphere :radius 1)) (defshape "a" (sphere :radius 2))`, "already defined"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := testPipeline().Evaluate(context.Background(), tt.source, MeshEach)
			if len(result.Errors) == 0 {
				t.Fatal("expected an error")
			}
			if len(result.Meshes) != 0 {
				t.Errorf("expected no meshes, got %d", len(result.Meshes))
			}
			if msg := result.Errors[0].Message; !strings.Contains(msg, tt.want) {
				t.Errorf("message = %q, want containing %q", msg, tt.want)
			}
		})
	}
}

func TestOrphanIsWarning(t *testing.T) {
	source := `(defshape "spare" (sphere :radius 1)) (group "g" (sphere :radius 2))`
	result := testPipeline().Evaluate(context.Background(), source, MeshNone)
	requireNoErrors(t, result)
	if len(result.Warnings) != 1 || !strings.Contains(result.Warnings[0].Message, "spare") {
		t.Errorf("warnings = %v, want one naming the orphan", result.Warnings)
	}
	if len(result.Shapes) != 1 {
		t.Errorf("expected 1 shape, got %d", len(result.Shapes))
	}
}

func TestParsePoint(t *testing.T) {
	tests := []struct {
		in      string
		want    geom.Point3
		wantErr bool
	}{
		{"1,2,3", geom.P3(1, 2, 3), false},
		{" -1.5, 0 ,1e2", geom.P3(-1.5, 0, 100), false},
		{"1,2", geom.Point3{}, true},
		{"1,a,3", geom.Point3{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parsePoint(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}
