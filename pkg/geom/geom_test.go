package geom

import (
	"errors"
	"math"
	"testing"

	"github.com/chazu/kerf/pkg/scalar"
)

var tol = scalar.Default[float64]()

func TestPointVectorArithmetic(t *testing.T) {
	p := P3(1, 2, 3)
	q := P3(4, 6, 3)

	if got := q.Sub(p); got != V3(3, 4, 0) {
		t.Errorf("Sub = %v", got)
	}
	if got := p.DistanceTo(q); got != 5 {
		t.Errorf("DistanceTo = %v", got)
	}
	if got := p.Add(V3(1, 1, 1)); got != P3(2, 3, 4) {
		t.Errorf("Add = %v", got)
	}
	if got := PointFromVector(p.Vector()); got != p {
		t.Errorf("PointFromVector(p.Vector()) = %v", got)
	}
	if got := p.Min(q); got != P3(1, 2, 3) {
		t.Errorf("Min = %v", got)
	}
	if got := p.Max(q); got != P3(4, 6, 3) {
		t.Errorf("Max = %v", got)
	}
	if got := p.Lerp(q, 0.5); got != P3(2.5, 4, 3) {
		t.Errorf("Lerp = %v", got)
	}
}

func TestVectorOps(t *testing.T) {
	x, y := V3(1, 0, 0), V3(0, 1, 0)
	if got := x.Cross(y); got != V3(0, 0, 1) {
		t.Errorf("Cross = %v", got)
	}
	if got := x.Dot(y); got != 0 {
		t.Errorf("Dot = %v", got)
	}
	if got := V3(1, 2, 3).Mul(V3(2, 3, 4)); got != V3(2, 6, 12) {
		t.Errorf("Mul = %v", got)
	}
	if got := V3(1, -2, 3).Neg(); got != V3(-1, 2, -3) {
		t.Errorf("Neg = %v", got)
	}
	for i, want := range []float64{7, 8, 9} {
		if got := V3(7, 8, 9).Component(i); got != want {
			t.Errorf("Component(%d) = %v", i, got)
		}
	}
}

func TestFinitePredicates(t *testing.T) {
	tests := []struct {
		name string
		v    Vector3
		want bool
	}{
		{"finite", V3(1, 2, 3), true},
		{"nan", V3(math.NaN(), 0, 0), false},
		{"inf", V3(0, math.Inf(-1), 0), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.IsFinite(); got != tt.want {
				t.Errorf("Vector IsFinite = %v", got)
			}
			if got := PointFromVector(tt.v).IsFinite(); got != tt.want {
				t.Errorf("Point IsFinite = %v", got)
			}
		})
	}
}

func TestNewDirection3(t *testing.T) {
	d, err := NewDirection3(V3(0, 3, 4), tol)
	if err != nil {
		t.Fatalf("NewDirection3: %v", err)
	}
	if !d.Vector().ApproxEqual(V3(0, 0.6, 0.8), tol) {
		t.Errorf("got %v", d)
	}

	_, err = NewDirection3(V3(0, 0, 1e-10), tol)
	if !errors.Is(err, ErrZeroVector) {
		t.Errorf("tiny vector: got %v, want ErrZeroVector", err)
	}
	_, err = NewDirection3(V3(math.NaN(), 1, 0), tol)
	if !errors.Is(err, ErrInvalidGeometry) {
		t.Errorf("nan vector: got %v, want ErrInvalidGeometry", err)
	}
	if (Direction3{}).IsValid() {
		t.Error("zero Direction3 reported valid")
	}
}

func TestDirectionRelations(t *testing.T) {
	if !UnitX.IsOrthogonal(UnitY, tol) {
		t.Error("x not orthogonal to y")
	}
	if !UnitZ.IsParallel(UnitZ.Neg(), tol) {
		t.Error("z not parallel to -z")
	}
	for _, d := range []Direction3{UnitX, UnitY, UnitZ, MustDirection3(1, 1, 1), MustDirection3(-3, 0.1, 2)} {
		p := d.Perpendicular()
		if !d.IsOrthogonal(p, tol) {
			t.Errorf("Perpendicular(%v) = %v, dot %g", d, p, d.Dot(p))
		}
		if l := p.Vector().Length(); math.Abs(l-1) > 1e-15 {
			t.Errorf("Perpendicular(%v) length %v", d, l)
		}
	}
}

func TestPerpendicularPrincipalAxes(t *testing.T) {
	tests := []struct {
		d, want Direction3
	}{
		{UnitZ, UnitX},
		{UnitZ.Neg(), UnitX},
		{UnitX, UnitY},
		{UnitY, UnitX},
		{MustDirection3(0, 1, 1), UnitX},
	}
	for _, tt := range tests {
		t.Run(tt.d.String(), func(t *testing.T) {
			if got := tt.d.Perpendicular(); !got.ApproxEqual(tt.want, tol) {
				t.Errorf("Perpendicular(%v) = %v, want %v", tt.d, got, tt.want)
			}
		})
	}
}

func TestPlanar(t *testing.T) {
	v := V2(3, 4)
	if v.Length() != 5 {
		t.Errorf("Length = %v", v.Length())
	}
	if got := V2(1, 0).Cross(V2(0, 1)); got != 1 {
		t.Errorf("Cross = %v", got)
	}
	if got := V2(1, 2).Perp(); got != V2(-2, 1) {
		t.Errorf("Perp = %v", got)
	}
	d, err := NewDirection2(v, tol)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(d.Angle()-math.Atan2(4, 3)) > 1e-15 {
		t.Errorf("Angle = %v", d.Angle())
	}
	if _, err := NewDirection2(V2(0, 0), tol); !errors.Is(err, ErrZeroVector) {
		t.Errorf("zero: got %v", err)
	}
	if got := DirectionAt(math.Pi / 2).Vector(); !got.ApproxEqual(V2(0, 1), tol) {
		t.Errorf("DirectionAt = %v", got)
	}
}

func TestErrorProtocol(t *testing.T) {
	err := Fail("circle.scale", ErrInvalidScaleFactor, "factor %g must be positive", -2.0)

	if !errors.Is(err, ErrInvalidScaleFactor) {
		t.Fatal("errors.Is failed")
	}
	if KindOf(err) != ErrInvalidScaleFactor {
		t.Errorf("KindOf = %v", KindOf(err))
	}
	if want := "circle.scale: invalid scale factor: factor -2 must be positive"; err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}

	re := Reop("sphere.scale", err)
	var e *Error
	if !errors.As(re, &e) || e.Op != "sphere.scale" || e.Err != ErrInvalidScaleFactor {
		t.Errorf("Reop = %#v", re)
	}

	plain := errors.New("other")
	if Reop("x", plain) != plain {
		t.Error("Reop changed a foreign error")
	}
	if KindOf(plain) != nil {
		t.Error("KindOf of a foreign error is not nil")
	}
}
