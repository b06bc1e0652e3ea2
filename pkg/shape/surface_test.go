package shape

import (
	"math"
	"testing"

	"github.com/chazu/kerf/pkg/geom"
	"github.com/chazu/kerf/pkg/xform"
	"github.com/go-gl/mathgl/mgl64"
)

// flatten returns the identity with axis i collapsed.
func flatten(i int) mgl64.Mat4 {
	m := mgl64.Ident4()
	m[i*4+i] = 0
	return m
}

// Scenario E.
func TestTorusScale(t *testing.T) {
	tor, err := NewTorusAt(geom.Origin, 5, 2, tol)
	if err != nil {
		t.Fatal(err)
	}

	got, err := tor.Scale(geom.Origin, 0.1, tol)
	if err != nil {
		t.Fatalf("Scale: %v", err)
	}
	if math.Abs(got.Major()-0.5) > 1e-12 || math.Abs(got.Minor()-0.2) > 1e-12 {
		t.Errorf("radii = %v, %v, want 0.5, 0.2", got.Major(), got.Minor())
	}

	_, err = tor.ScaleXYZ(geom.Origin, 2, 3, 1, tol)
	wantKind(t, err, geom.ErrInvalidScaleFactor)
}

func TestTorusScaleRadii(t *testing.T) {
	tor, err := NewTorusAt(geom.Origin, 5, 2, tol)
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		name         string
		major, minor float64
		kind         error
	}{
		{"keeps order", 2, 1, nil},
		{"equal radii", 0.4, 1, geom.ErrInvalidGeometry},
		{"minor overtakes", 1, 3, geom.ErrInvalidGeometry},
		{"zero factor", 0, 1, geom.ErrInvalidScaleFactor},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tor.ScaleRadii(tt.major, tt.minor, tol)
			if tt.kind != nil {
				wantKind(t, err, tt.kind)
				return
			}
			if err != nil {
				t.Fatalf("ScaleRadii: %v", err)
			}
			if got.Major() != 10 || got.Minor() != 2 {
				t.Errorf("radii = %v, %v", got.Major(), got.Minor())
			}
		})
	}
}

func TestTorusRotateCarriesFrame(t *testing.T) {
	tor, err := NewTorusAt(geom.P3(1, 0, 0), 3, 1, tol)
	if err != nil {
		t.Fatal(err)
	}
	got, err := tor.Rotate(geom.Origin, geom.V3(0, 1, 0), math.Pi/2, tol)
	if err != nil {
		t.Fatalf("Rotate: %v", err)
	}
	if !got.Center().ApproxEqual(geom.P3(0, 0, -1), tol) {
		t.Errorf("center = %v", got.Center())
	}
	if !got.Axis().ApproxEqual(geom.UnitX, tol) {
		t.Errorf("axis = %v", got.Axis())
	}
	if !got.Ref().ApproxEqual(geom.UnitZ.Neg(), tol) {
		t.Errorf("ref = %v", got.Ref())
	}
	if math.Abs(got.Major()-3) > 1e-12 {
		t.Errorf("major = %v", got.Major())
	}
}

func TestTorusBounds(t *testing.T) {
	tor, _ := NewTorusAt(geom.Origin, 3, 1, tol)
	want, _ := NewBBox3(geom.P3(-4, -4, -1), geom.P3(4, 4, 1))
	if got := tor.Bounds(); !got.ApproxEqual(want, tol) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestSphereUniformOnly(t *testing.T) {
	s, err := NewSphereAt(geom.P3(1, 1, 1), 2, tol)
	if err != nil {
		t.Fatal(err)
	}
	got, err := s.Scale(geom.Origin, 2, tol)
	if err != nil {
		t.Fatalf("Scale: %v", err)
	}
	if !got.Center().ApproxEqual(geom.P3(2, 2, 2), tol) || math.Abs(got.Radius()-4) > 1e-12 {
		t.Errorf("got %v", got)
	}
	_, err = s.ScaleXYZ(geom.Origin, 1, 1, 2, tol)
	wantKind(t, err, geom.ErrInvalidScaleFactor)
}

func TestConeSemiAngleInvariant(t *testing.T) {
	c, err := NewCone(geom.Origin, geom.V3(0, 0, 1), geom.V3(1, 0, 0), 2, math.Pi/6, tol)
	if err != nil {
		t.Fatal(err)
	}
	got, err := c.Scale(geom.P3(0, 0, -1), 3, tol)
	if err != nil {
		t.Fatalf("Scale: %v", err)
	}
	if got.SemiAngle() != c.SemiAngle() {
		t.Errorf("semi-angle changed: %v", got.SemiAngle())
	}
	if math.Abs(got.RefRadius()-6) > 1e-12 {
		t.Errorf("ref radius = %v", got.RefRadius())
	}
	if !got.Origin().ApproxEqual(geom.P3(0, 0, 2), tol) {
		t.Errorf("origin = %v", got.Origin())
	}
	// The apex scales with the cone.
	apex, _ := xform.ScaleUniform(c.Apex(), geom.P3(0, 0, -1), 3)
	if !got.Apex().ApproxEqual(apex, tol) {
		t.Errorf("apex = %v, want %v", got.Apex(), apex)
	}
}

func TestConeReflectFlipsAxis(t *testing.T) {
	c, err := NewCone(geom.P3(0, 0, 1), geom.V3(0, 0, 1), geom.V3(1, 0, 0), 1, 0.4, tol)
	if err != nil {
		t.Fatal(err)
	}
	got, err := c.Reflect(geom.Origin, geom.V3(0, 0, 1), tol)
	if err != nil {
		t.Fatalf("Reflect: %v", err)
	}
	if !got.Axis().ApproxEqual(geom.UnitZ.Neg(), tol) || !got.Origin().ApproxEqual(geom.P3(0, 0, -1), tol) {
		t.Errorf("got %v", got)
	}
}

func TestEllipsoidScale(t *testing.T) {
	aligned, err := NewEllipsoid(geom.Origin, geom.V3(0, 0, 1), geom.V3(1, 0, 0), 1, 2, 3, tol)
	if err != nil {
		t.Fatal(err)
	}
	got, err := aligned.ScaleXYZ(geom.Origin, 2, 3, 0.5, tol)
	if err != nil {
		t.Fatalf("ScaleXYZ: %v", err)
	}
	rx, ry, rz := got.Radii()
	if math.Abs(rx-2) > 1e-12 || math.Abs(ry-6) > 1e-12 || math.Abs(rz-1.5) > 1e-12 {
		t.Errorf("radii = %v, %v, %v", rx, ry, rz)
	}

	tilted, err := NewEllipsoid(geom.Origin, geom.V3(0, 0, 1), geom.V3(1, 1, 0), 1, 2, 3, tol)
	if err != nil {
		t.Fatal(err)
	}
	_, err = tilted.ScaleXYZ(geom.Origin, 2, 1, 1, tol)
	wantKind(t, err, geom.ErrInvalidScaleFactor)

	// Equal factors on the mixed axes keep the tilted frame valid.
	got, err = tilted.ScaleXYZ(geom.Origin, 2, 2, 5, tol)
	if err != nil {
		t.Fatalf("ScaleXYZ on matching axes: %v", err)
	}
	if _, _, rz := got.Radii(); math.Abs(rz-15) > 1e-12 {
		t.Errorf("rz = %v", rz)
	}
}

func TestEllipsoidSingular(t *testing.T) {
	e, _ := NewEllipsoid(geom.Origin, geom.V3(0, 0, 1), geom.V3(1, 0, 0), 1, 2, 3, tol)
	m, err := xform.FromMat4(flatten(2))
	if err != nil {
		t.Fatal(err)
	}
	_, err = e.Transform(m, tol)
	wantKind(t, err, geom.ErrDegenerateGeometry)
}

func TestArcRotateKeepsAngles(t *testing.T) {
	a, err := NewArc(geom.Origin, geom.V3(0, 0, 1), geom.V3(1, 0, 0), 2, 0, math.Pi/2, tol)
	if err != nil {
		t.Fatal(err)
	}
	got, err := a.Rotate(geom.Origin, geom.V3(0, 0, 1), math.Pi/2, tol)
	if err != nil {
		t.Fatalf("Rotate: %v", err)
	}
	if got.Start() != 0 || got.End() != math.Pi/2 {
		t.Errorf("angles = [%v, %v]", got.Start(), got.End())
	}
	if !got.StartPoint().ApproxEqual(geom.P3(0, 2, 0), tol) || !got.EndPoint().ApproxEqual(geom.P3(-2, 0, 0), tol) {
		t.Errorf("end points = %v, %v", got.StartPoint(), got.EndPoint())
	}
}

func TestArcReflect(t *testing.T) {
	a, err := NewArc(geom.Origin, geom.V3(0, 0, 1), geom.V3(1, 0, 0), 1, 0.2, 1.1, tol)
	if err != nil {
		t.Fatal(err)
	}
	got, err := a.Reflect(geom.Origin, geom.V3(0, 1, 0), tol)
	if err != nil {
		t.Fatalf("Reflect: %v", err)
	}
	if got.Start() != -1.1 || got.End() != -0.2 {
		t.Errorf("angles = [%v, %v], want [-1.1, -0.2]", got.Start(), got.End())
	}
	// The mirrored arc covers the mirror images of the original points.
	for _, theta := range []float64{0.2, 0.5, 1.1} {
		p := a.PointAt(theta)
		want := geom.P3(p.X, -p.Y, p.Z)
		if q := got.PointAt(-theta); !q.ApproxEqual(want, tol) {
			t.Errorf("θ=%v: got %v, want %v", theta, q, want)
		}
	}
}

func TestArcWithAngles(t *testing.T) {
	a, _ := NewArc(geom.Origin, geom.V3(0, 0, 1), geom.V3(1, 0, 0), 1, 0, 1, tol)
	b, err := a.WithAngles(1, 3, tol)
	if err != nil {
		t.Fatalf("WithAngles: %v", err)
	}
	if b.Start() != 1 || b.End() != 3 || a.End() != 1 {
		t.Errorf("a = %v, b = %v", a, b)
	}
	_, err = a.WithAngles(3, 1, tol)
	wantKind(t, err, geom.ErrDegenerateGeometry)
}

func TestArcBounds(t *testing.T) {
	a, _ := NewArc(geom.Origin, geom.V3(0, 0, 1), geom.V3(1, 0, 0), 1, -math.Pi/4, math.Pi/2, tol)
	got := a.Bounds()
	s := math.Sqrt2 / 2
	want, _ := NewBBox3(geom.P3(0, -s, 0), geom.P3(1, 1, 0))
	if !got.ApproxEqual(want, tol) {
		t.Errorf("got %v, want %v", got, want)
	}
}
