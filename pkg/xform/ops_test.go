package xform

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/chazu/kerf/pkg/geom"
	"github.com/chazu/kerf/pkg/scalar"
	"github.com/go-gl/mathgl/mgl64"
)

var tol = scalar.Default[float64]()

func near(a, b geom.Point3, eps float64) bool {
	return a.Sub(b).Length() <= eps*math.Max(1, a.Vector().Length())
}

func nearV(a, b geom.Vector3, eps float64) bool {
	return a.Sub(b).Length() <= eps*math.Max(1, a.Length())
}

func randPoint(r *rand.Rand, span float64) geom.Point3 {
	return geom.P3((r.Float64()*2-1)*span, (r.Float64()*2-1)*span, (r.Float64()*2-1)*span)
}

func randAxis(r *rand.Rand) geom.Vector3 {
	for {
		v := randPoint(r, 1).Vector()
		if v.Length() > 0.1 {
			return v
		}
	}
}

func wantKind(t *testing.T, err, kind error) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v, got nil", kind)
	}
	if !errors.Is(err, kind) {
		t.Fatalf("expected %v, got %v", kind, err)
	}
}

func TestTranslate(t *testing.T) {
	p := geom.P3(1, 2, 3)
	v := geom.V3(-4, 0.5, 10)

	q, err := Translate(p, v)
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if want := geom.P3(-3, 2.5, 13); q != want {
		t.Errorf("got %v, want %v", q, want)
	}

	back, err := Translate(q, v.Neg())
	if err != nil {
		t.Fatalf("Translate back: %v", err)
	}
	if !near(back, p, 1e-12) {
		t.Errorf("round trip: got %v, want %v", back, p)
	}
}

func TestTranslateNonFinite(t *testing.T) {
	tests := []struct {
		name string
		p    geom.Point3
		v    geom.Vector3
	}{
		{"nan offset", geom.P3(0, 0, 0), geom.V3(math.NaN(), 0, 0)},
		{"inf point", geom.P3(math.Inf(1), 0, 0), geom.V3(1, 0, 0)},
		{"overflow", geom.P3(math.MaxFloat64, 0, 0), geom.V3(math.MaxFloat64, 0, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Translate(tt.p, tt.v)
			wantKind(t, err, geom.ErrInvalidGeometry)
		})
	}
}

func TestRotateQuarterTurn(t *testing.T) {
	tests := []struct {
		name string
		p    geom.Point3
		axis geom.Vector3
		want geom.Point3
	}{
		{"x about z", geom.P3(1, 0, 0), geom.V3(0, 0, 1), geom.P3(0, 1, 0)},
		{"y about x", geom.P3(0, 1, 0), geom.V3(1, 0, 0), geom.P3(0, 0, 1)},
		{"z about y", geom.P3(0, 0, 1), geom.V3(0, 1, 0), geom.P3(1, 0, 0)},
		{"unnormalized axis", geom.P3(1, 0, 0), geom.V3(0, 0, 7), geom.P3(0, 1, 0)},
		{"point on axis", geom.P3(0, 0, 5), geom.V3(0, 0, 1), geom.P3(0, 0, 5)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Rotate(tt.p, geom.Origin, tt.axis, math.Pi/2, tol)
			if err != nil {
				t.Fatalf("Rotate: %v", err)
			}
			if !near(got, tt.want, 1e-12) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRotateAboutOffsetAxis(t *testing.T) {
	// Half turn about the vertical line through (1, 0, 0).
	got, err := Rotate(geom.P3(2, 0, 3), geom.P3(1, 0, 0), geom.V3(0, 0, 1), math.Pi, tol)
	if err != nil {
		t.Fatalf("Rotate: %v", err)
	}
	if want := geom.P3(0, 0, 3); !near(got, want, 1e-12) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestRotateZeroAxis(t *testing.T) {
	for _, angle := range []float64{0, 1, math.NaN()} {
		_, err := Rotate(geom.P3(1, 2, 3), geom.Origin, geom.V3(0, 0, 0), angle, tol)
		wantKind(t, err, geom.ErrZeroVector)
	}
	_, err := RotateVector(geom.V3(1, 0, 0), geom.V3(1e-12, 0, 0), 1, tol)
	wantKind(t, err, geom.ErrZeroVector)
}

func TestRotateNonFiniteAngle(t *testing.T) {
	for _, angle := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := Rotate(geom.P3(1, 0, 0), geom.Origin, geom.V3(0, 0, 1), angle, tol)
		wantKind(t, err, geom.ErrInvalidRotation)
	}
}

func TestRotateErrorNamesOperation(t *testing.T) {
	_, err := Rotate(geom.P3(1, 0, 0), geom.Origin, geom.V3(0, 0, 0), 1, tol)
	var e *geom.Error
	if !errors.As(err, &e) {
		t.Fatalf("expected *geom.Error, got %T", err)
	}
	if e.Op != "rotate" {
		t.Errorf("Op = %q, want rotate", e.Op)
	}
	if e.Check == "" {
		t.Error("Check is empty")
	}
}

func TestRotateMatchesMathgl(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for i := 0; i < 200; i++ {
		p := randPoint(r, 100)
		axis := randAxis(r)
		angle := (r.Float64()*2 - 1) * 4 * math.Pi

		got, err := Rotate(p, geom.Origin, axis, angle, tol)
		if err != nil {
			t.Fatalf("Rotate: %v", err)
		}
		n := mgl64.Vec3{axis.X, axis.Y, axis.Z}.Normalize()
		w := mgl64.HomogRotate3D(angle, n).Mul4x1(mgl64.Vec4{p.X, p.Y, p.Z, 1})
		if want := geom.P3(w[0], w[1], w[2]); !near(got, want, 1e-12) {
			t.Fatalf("case %d: got %v, mathgl %v", i, got, want)
		}
	}
}

func TestRotateRoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(11))
	for i := 0; i < 200; i++ {
		p := randPoint(r, 50)
		c := randPoint(r, 50)
		axis := randAxis(r)
		angle := r.Float64() * 2 * math.Pi

		q, err := Rotate(p, c, axis, angle, tol)
		if err != nil {
			t.Fatalf("Rotate: %v", err)
		}
		back, err := Rotate(q, c, axis, -angle, tol)
		if err != nil {
			t.Fatalf("Rotate back: %v", err)
		}
		if !near(back, p, 1e-12) {
			t.Fatalf("case %d: got %v, want %v", i, back, p)
		}
		if d0, d1 := p.DistanceTo(c), q.DistanceTo(c); math.Abs(d0-d1) > 1e-9 {
			t.Fatalf("case %d: distance to axis point changed %g -> %g", i, d0, d1)
		}
	}
}

func TestRotateDirectionStaysUnit(t *testing.T) {
	d := geom.MustDirection3(1, 2, 3)
	got, err := RotateDirection(d, geom.V3(-1, 0.5, 2), 1.234, tol)
	if err != nil {
		t.Fatalf("RotateDirection: %v", err)
	}
	if l := got.Vector().Length(); math.Abs(l-1) > 1e-15 {
		t.Errorf("length = %v", l)
	}
}

func TestScale(t *testing.T) {
	got, err := Scale(geom.P3(3, 3, 3), geom.P3(1, 1, 1), 2, 3, 0.5)
	if err != nil {
		t.Fatalf("Scale: %v", err)
	}
	if want := geom.P3(5, 7, 2); !near(got, want, 1e-15) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestScaleRoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	for i := 0; i < 100; i++ {
		p := randPoint(r, 20)
		c := randPoint(r, 20)
		f := 0.1 + r.Float64()*10

		q, err := ScaleUniform(p, c, f)
		if err != nil {
			t.Fatalf("ScaleUniform: %v", err)
		}
		back, err := ScaleUniform(q, c, 1/f)
		if err != nil {
			t.Fatalf("ScaleUniform back: %v", err)
		}
		if !near(back, p, 1e-12) {
			t.Fatalf("case %d: got %v, want %v", i, back, p)
		}
	}
}

func TestScaleInvalidFactor(t *testing.T) {
	tests := []struct {
		name       string
		fx, fy, fz float64
	}{
		{"zero", 0, 1, 1},
		{"negative", 1, -2, 1},
		{"nan", 1, 1, math.NaN()},
		{"inf", math.Inf(1), 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Scale(geom.P3(1, 1, 1), geom.Origin, tt.fx, tt.fy, tt.fz)
			wantKind(t, err, geom.ErrInvalidScaleFactor)
			_, err = ScaleVector(geom.V3(1, 1, 1), tt.fx, tt.fy, tt.fz)
			wantKind(t, err, geom.ErrInvalidScaleFactor)
		})
	}
}

func TestReflect(t *testing.T) {
	got, err := Reflect(geom.P3(1, 2, 5), geom.P3(0, 0, 2), geom.V3(0, 0, 3), tol)
	if err != nil {
		t.Fatalf("Reflect: %v", err)
	}
	if want := geom.P3(1, 2, -1); !near(got, want, 1e-15) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestReflectTwiceIsIdentity(t *testing.T) {
	r := rand.New(rand.NewSource(5))
	for i := 0; i < 100; i++ {
		p := randPoint(r, 100)
		q := randPoint(r, 100)
		n := randAxis(r)

		once, err := Reflect(p, q, n, tol)
		if err != nil {
			t.Fatalf("Reflect: %v", err)
		}
		twice, err := Reflect(once, q, n, tol)
		if err != nil {
			t.Fatalf("Reflect: %v", err)
		}
		if !near(twice, p, 1e-12) {
			t.Fatalf("case %d: got %v, want %v", i, twice, p)
		}
	}
}

func TestReflectZeroNormal(t *testing.T) {
	_, err := Reflect(geom.P3(1, 0, 0), geom.Origin, geom.V3(0, 0, 0), tol)
	wantKind(t, err, geom.ErrZeroVector)
	_, err = ReflectVector(geom.V3(1, 0, 0), geom.V3(0, 0, 0), tol)
	wantKind(t, err, geom.ErrZeroVector)
}

func TestReflectVectorIgnoresPosition(t *testing.T) {
	got, err := ReflectVector(geom.V3(1, 1, 1), geom.V3(1, 0, 0), tol)
	if err != nil {
		t.Fatalf("ReflectVector: %v", err)
	}
	if want := geom.V3(-1, 1, 1); !nearV(got, want, 1e-15) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestPlanarOps(t *testing.T) {
	t.Run("rotate", func(t *testing.T) {
		got, err := Rotate2(geom.P2(2, 1), geom.P2(1, 1), math.Pi/2)
		if err != nil {
			t.Fatalf("Rotate2: %v", err)
		}
		if want := geom.P2(1, 2); !got.ApproxEqual(want, tol) {
			t.Errorf("got %v, want %v", got, want)
		}
	})
	t.Run("rotate nan", func(t *testing.T) {
		_, err := Rotate2(geom.P2(2, 1), geom.P2(1, 1), math.NaN())
		wantKind(t, err, geom.ErrInvalidRotation)
	})
	t.Run("scale", func(t *testing.T) {
		got, err := Scale2(geom.P2(2, 2), geom.P2(1, 1), 3, 0.5)
		if err != nil {
			t.Fatalf("Scale2: %v", err)
		}
		if want := geom.P2(4, 1.5); !got.ApproxEqual(want, tol) {
			t.Errorf("got %v, want %v", got, want)
		}
	})
	t.Run("scale invalid", func(t *testing.T) {
		_, err := Scale2(geom.P2(2, 2), geom.P2(1, 1), 0, 1)
		wantKind(t, err, geom.ErrInvalidScaleFactor)
	})
	t.Run("reflect twice", func(t *testing.T) {
		p := geom.P2(3, -7)
		once, err := Reflect2(p, geom.P2(1, 2), geom.V2(1, 1), tol)
		if err != nil {
			t.Fatalf("Reflect2: %v", err)
		}
		twice, err := Reflect2(once, geom.P2(1, 2), geom.V2(1, 1), tol)
		if err != nil {
			t.Fatalf("Reflect2: %v", err)
		}
		if !twice.ApproxEqual(p, tol) {
			t.Errorf("got %v, want %v", twice, p)
		}
	})
	t.Run("reflect zero normal", func(t *testing.T) {
		_, err := Reflect2(geom.P2(3, -7), geom.P2(1, 2), geom.V2(0, 0), tol)
		wantKind(t, err, geom.ErrZeroVector)
	})
	t.Run("translate", func(t *testing.T) {
		got, err := Translate2(geom.P2(1, 1), geom.V2(-1, 2))
		if err != nil {
			t.Fatalf("Translate2: %v", err)
		}
		if want := geom.P2(0, 3); got != want {
			t.Errorf("got %v, want %v", got, want)
		}
	})
}

func TestNormalizeAngle(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{math.Pi, math.Pi},
		{-math.Pi / 2, 3 * math.Pi / 2},
		{5 * math.Pi, math.Pi},
	}
	for _, tt := range tests {
		if got := NormalizeAngle(tt.in); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("NormalizeAngle(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
