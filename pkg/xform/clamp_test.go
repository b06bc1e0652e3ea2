package xform

import (
	"math"
	"testing"

	"github.com/chazu/kerf/pkg/geom"
)

func TestClampFactor(t *testing.T) {
	tests := []struct {
		name    string
		f       float64
		want    float64
		wantErr bool
	}{
		{"inside", 2, 2, false},
		{"below", -3, 0.5, false},
		{"above", 40, 10, false},
		{"plus inf", math.Inf(1), 10, false},
		{"minus inf", math.Inf(-1), 0.5, false},
		{"nan", math.NaN(), 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ClampFactor(tt.f, 0.5, 10)
			if tt.wantErr {
				wantKind(t, err, geom.ErrInvalidScaleFactor)
				return
			}
			if err != nil {
				t.Fatalf("ClampFactor: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClampFactorBadRange(t *testing.T) {
	_, err := ClampFactor(1, 2, 1)
	wantKind(t, err, geom.ErrInvalidScaleFactor)
	_, err = ClampFactor(1, 0, 1)
	wantKind(t, err, geom.ErrInvalidScaleFactor)
}

func TestRetryClamped(t *testing.T) {
	scale := func(f float64) (geom.Point3, error) {
		return ScaleUniform(geom.P3(1, 0, 0), geom.Origin, f)
	}

	t.Run("valid factor is not clamped", func(t *testing.T) {
		p, used, err := RetryClamped(scale, 20, 0.5, 10)
		if err != nil {
			t.Fatal(err)
		}
		if used != 20 || p != geom.P3(20, 0, 0) {
			t.Errorf("got %v with factor %v", p, used)
		}
	})
	t.Run("negative factor clamps to lower bound", func(t *testing.T) {
		p, used, err := RetryClamped(scale, -1, 0.5, 10)
		if err != nil {
			t.Fatal(err)
		}
		if used != 0.5 || p != geom.P3(0.5, 0, 0) {
			t.Errorf("got %v with factor %v", p, used)
		}
	})
	t.Run("other failures are not retried", func(t *testing.T) {
		calls := 0
		_, _, err := RetryClamped(func(f float64) (geom.Point3, error) {
			calls++
			return Rotate(geom.Origin, geom.Origin, geom.V3(0, 0, 0), f, tol)
		}, 1, 0.5, 10)
		wantKind(t, err, geom.ErrZeroVector)
		if calls != 1 {
			t.Errorf("calls = %d, want 1", calls)
		}
	})
	t.Run("factor already in range keeps the error", func(t *testing.T) {
		calls := 0
		_, _, err := RetryClamped(func(f float64) (geom.Point3, error) {
			calls++
			return geom.Point3{}, geom.Fail("test", geom.ErrInvalidScaleFactor, "rejected")
		}, 2, 0.5, 10)
		wantKind(t, err, geom.ErrInvalidScaleFactor)
		if calls != 1 {
			t.Errorf("calls = %d, want 1", calls)
		}
	})
}
