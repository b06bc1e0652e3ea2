// Package scalar is the numeric foundation of kerf. It provides finite and
// zero checks and tolerance-based equality that work over both float32 and
// float64, so geometry code can be written once for either precision.
package scalar

import (
	"fmt"
	"math"

	"github.com/chewxy/math32"
	"golang.org/x/exp/constraints"
)

// Float is the set of floating point types the foundation handles.
type Float interface {
	constraints.Float
}

// IsFinite reports whether x is neither NaN nor an infinity.
func IsFinite[T Float](x T) bool {
	switch v := any(x).(type) {
	case float32:
		return !math32.IsNaN(v) && !math32.IsInf(v, 0)
	default:
		f := float64(x)
		return !math.IsNaN(f) && !math.IsInf(f, 0)
	}
}

// AllFinite reports whether every value in xs is finite.
func AllFinite[T Float](xs ...T) bool {
	for _, x := range xs {
		if !IsFinite(x) {
			return false
		}
	}
	return true
}

// Abs returns the absolute value of x.
func Abs[T Float](x T) T {
	switch v := any(x).(type) {
	case float32:
		return T(math32.Abs(v))
	default:
		return T(math.Abs(float64(x)))
	}
}

// Sqrt returns the square root of x.
func Sqrt[T Float](x T) T {
	switch v := any(x).(type) {
	case float32:
		return T(math32.Sqrt(v))
	default:
		return T(math.Sqrt(float64(x)))
	}
}

// Tolerance bundles the smallest distance and angle treated as zero.
// It is always passed explicitly; nothing in kerf reads a global default.
type Tolerance[T Float] struct {
	Distance T // lengths at or below this are zero
	Angle    T // angles (radians) and cosines at or below this are zero
}

// Default returns the recommended tolerance for the precision of T.
func Default[T Float]() Tolerance[T] {
	var zero T
	if _, ok := any(zero).(float32); ok {
		return Tolerance[T]{Distance: T(1e-5), Angle: T(1e-6)}
	}
	return Tolerance[T]{Distance: T(1e-9), Angle: T(1e-12)}
}

// Validate checks that both tolerances are finite and strictly positive.
func (t Tolerance[T]) Validate() error {
	if !IsFinite(t.Distance) || t.Distance <= 0 {
		return fmt.Errorf("scalar: distance tolerance must be positive and finite, got %v", t.Distance)
	}
	if !IsFinite(t.Angle) || t.Angle <= 0 {
		return fmt.Errorf("scalar: angle tolerance must be positive and finite, got %v", t.Angle)
	}
	return nil
}

// IsZero reports whether |x| is within the distance tolerance.
func (t Tolerance[T]) IsZero(x T) bool {
	return Abs(x) <= t.Distance
}

// IsZeroAngle reports whether |a| is within the angle tolerance.
func (t Tolerance[T]) IsZeroAngle(a T) bool {
	return Abs(a) <= t.Angle
}

// Equal reports whether a and b differ by at most the distance tolerance,
// scaled by their magnitude once that exceeds one.
func (t Tolerance[T]) Equal(a, b T) bool {
	return Equal(a, b, t.Distance)
}

// Equal reports whether a and b are equal within eps. For magnitudes above
// one the comparison is relative.
func Equal[T Float](a, b, eps T) bool {
	if a == b {
		return true
	}
	diff := Abs(a - b)
	scale := max(Abs(a), Abs(b), 1)
	return diff <= eps*scale
}

// IsZero reports whether |x| <= eps.
func IsZero[T Float](x, eps T) bool {
	return Abs(x) <= eps
}
