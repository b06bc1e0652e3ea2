package xform

import (
	"errors"
	"math"

	"github.com/chazu/kerf/pkg/geom"
	"github.com/chazu/kerf/pkg/scalar"
)

// ClampFactor limits f to [lo, hi]. Infinities clamp to the nearer bound;
// NaN and an invalid range fail with ErrInvalidScaleFactor.
func ClampFactor(f, lo, hi float64) (float64, error) {
	const op = "clamp"
	if err := CheckFactors(op, lo, hi); err != nil {
		return 0, err
	}
	if lo > hi {
		return 0, geom.Fail(op, geom.ErrInvalidScaleFactor, "range [%g, %g] is empty", lo, hi)
	}
	if math.IsNaN(f) {
		return 0, geom.Fail(op, geom.ErrInvalidScaleFactor, "factor is NaN")
	}
	return math.Min(math.Max(f, lo), hi), nil
}

// RetryClamped calls apply with f. Only when that fails with
// ErrInvalidScaleFactor is f clamped to [lo, hi] and apply called again.
// The factor that was actually applied is returned alongside the result.
func RetryClamped[T any](apply func(float64) (T, error), f, lo, hi float64) (T, float64, error) {
	out, err := apply(f)
	if err == nil || !errors.Is(err, geom.ErrInvalidScaleFactor) {
		return out, f, err
	}
	g, cerr := ClampFactor(f, lo, hi)
	if cerr != nil {
		var zero T
		return zero, 0, errors.Join(err, cerr)
	}
	if scalar.IsFinite(f) && g == f {
		var zero T
		return zero, f, err
	}
	out, err = apply(g)
	if err != nil {
		var zero T
		return zero, 0, err
	}
	return out, g, nil
}
