package scalar

import (
	"math"
	"testing"
)

func TestIsFinite(t *testing.T) {
	tests := []struct {
		name string
		x    float64
		want bool
	}{
		{"zero", 0, true},
		{"negative", -12.5, true},
		{"max", math.MaxFloat64, true},
		{"nan", math.NaN(), false},
		{"+inf", math.Inf(1), false},
		{"-inf", math.Inf(-1), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsFinite(tt.x); got != tt.want {
				t.Errorf("IsFinite(%v) = %v, want %v", tt.x, got, tt.want)
			}
			if got := IsFinite(float32(tt.x)); tt.want && tt.name != "max" && got != tt.want {
				t.Errorf("IsFinite(float32(%v)) = %v, want %v", tt.x, got, tt.want)
			}
		})
	}
}

func TestIsFiniteFloat32Overflow(t *testing.T) {
	// MaxFloat64 overflows float32 to +Inf.
	if IsFinite(float32(math.MaxFloat64)) {
		t.Error("IsFinite(float32(MaxFloat64)) = true, want false")
	}
	if !IsFinite(float32(math.MaxFloat32)) {
		t.Error("IsFinite(MaxFloat32) = false, want true")
	}
}

func TestAllFinite(t *testing.T) {
	if !AllFinite(1.0, 2.0, 3.0) {
		t.Error("AllFinite(1,2,3) = false")
	}
	if AllFinite(1.0, math.NaN(), 3.0) {
		t.Error("AllFinite with NaN = true")
	}
	if !AllFinite[float64]() {
		t.Error("AllFinite() of nothing should be true")
	}
}

func TestDefault(t *testing.T) {
	t64 := Default[float64]()
	if t64.Distance != 1e-9 || t64.Angle != 1e-12 {
		t.Errorf("Default[float64]() = %+v", t64)
	}
	t32 := Default[float32]()
	if t32.Distance != 1e-5 || t32.Angle != 1e-6 {
		t.Errorf("Default[float32]() = %+v", t32)
	}
	if err := t64.Validate(); err != nil {
		t.Errorf("default float64 tolerance invalid: %v", err)
	}
	if err := t32.Validate(); err != nil {
		t.Errorf("default float32 tolerance invalid: %v", err)
	}
}

func TestToleranceValidate(t *testing.T) {
	tests := []struct {
		name string
		tol  Tolerance[float64]
		ok   bool
	}{
		{"ok", Tolerance[float64]{Distance: 1e-6, Angle: 1e-9}, true},
		{"zero distance", Tolerance[float64]{Distance: 0, Angle: 1e-9}, false},
		{"negative angle", Tolerance[float64]{Distance: 1e-6, Angle: -1}, false},
		{"nan distance", Tolerance[float64]{Distance: math.NaN(), Angle: 1e-9}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.tol.Validate()
			if (err == nil) != tt.ok {
				t.Errorf("Validate() error = %v, want ok=%v", err, tt.ok)
			}
		})
	}
}

func TestEqual(t *testing.T) {
	tol := Default[float64]()
	if !tol.Equal(1.0, 1.0+1e-12) {
		t.Error("1 and 1+1e-12 should be equal")
	}
	if tol.Equal(1.0, 1.0+1e-6) {
		t.Error("1 and 1+1e-6 should differ")
	}
	// Relative comparison for large magnitudes.
	if !tol.Equal(1e9, 1e9+0.1) {
		t.Error("1e9 and 1e9+0.1 should be equal relative to magnitude")
	}
	if !Equal(float32(2), float32(2.000001), float32(1e-5)) {
		t.Error("float32 Equal failed")
	}
}

func TestIsZero(t *testing.T) {
	tol := Tolerance[float64]{Distance: 1e-6, Angle: 1e-9}
	if !tol.IsZero(-5e-7) {
		t.Error("IsZero(-5e-7) = false")
	}
	if tol.IsZero(2e-6) {
		t.Error("IsZero(2e-6) = true")
	}
	if !tol.IsZeroAngle(1e-10) || tol.IsZeroAngle(1e-8) {
		t.Error("IsZeroAngle misbehaves")
	}
	if !IsZero(float32(1e-7), float32(1e-6)) {
		t.Error("generic IsZero failed")
	}
}

func TestAbsSqrt(t *testing.T) {
	if Abs(-3.5) != 3.5 || Abs(float32(-2)) != 2 {
		t.Error("Abs failed")
	}
	if Sqrt(16.0) != 4 || Sqrt(float32(9)) != 3 {
		t.Error("Sqrt failed")
	}
}
