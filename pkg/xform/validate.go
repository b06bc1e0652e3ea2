package xform

import (
	"math"

	"github.com/chazu/kerf/pkg/geom"
	"github.com/chazu/kerf/pkg/scalar"
)

// ---------------------------------------------------------------------------
// Entry checks
//
// Each helper returns a *geom.Error naming the operation and the argument
// that failed. They are exported so the shape adapters run exactly the
// same checks as the elementary operations.
// ---------------------------------------------------------------------------

// CheckPoint fails with ErrInvalidGeometry when p is not finite.
func CheckPoint(op, name string, p geom.Point3) error {
	if !p.IsFinite() {
		return geom.Fail(op, geom.ErrInvalidGeometry, "%s %v is not finite", name, p)
	}
	return nil
}

// CheckVector fails with ErrInvalidGeometry when v is not finite.
func CheckVector(op, name string, v geom.Vector3) error {
	if !v.IsFinite() {
		return geom.Fail(op, geom.ErrInvalidGeometry, "%s %v is not finite", name, v)
	}
	return nil
}

// CheckAxis validates an axis or normal and returns it normalized.
// A zero-length vector fails with ErrZeroVector.
func CheckAxis(op, name string, v geom.Vector3, tol geom.Tol) (geom.Direction3, error) {
	if err := CheckVector(op, name, v); err != nil {
		return geom.Direction3{}, err
	}
	d, err := geom.NewDirection3(v, tol)
	if err != nil {
		return geom.Direction3{}, geom.Fail(op, geom.ErrZeroVector, "%s has zero length", name)
	}
	return d, nil
}

// CheckAngle fails with ErrInvalidRotation when a is not finite.
func CheckAngle(op string, a float64) error {
	if !scalar.IsFinite(a) {
		return geom.Fail(op, geom.ErrInvalidRotation, "angle %v is not finite", a)
	}
	return nil
}

// CheckFactor fails with ErrInvalidScaleFactor unless f is finite and > 0.
func CheckFactor(op string, f float64) error {
	if !scalar.IsFinite(f) {
		return geom.Fail(op, geom.ErrInvalidScaleFactor, "factor %v is not finite", f)
	}
	if f <= 0 {
		return geom.Fail(op, geom.ErrInvalidScaleFactor, "factor %g must be positive", f)
	}
	return nil
}

// CheckFactors runs CheckFactor on each of fs.
func CheckFactors(op string, fs ...float64) error {
	for _, f := range fs {
		if err := CheckFactor(op, f); err != nil {
			return err
		}
	}
	return nil
}

// CheckUniform validates the factors and requires them to be equal within
// tolerance, returning the common factor. Primitives that cannot change
// shape (circles, spheres, tori, cones) scale through this check.
func CheckUniform(op string, fx, fy, fz float64, tol geom.Tol) (float64, error) {
	if err := CheckFactors(op, fx, fy, fz); err != nil {
		return 0, err
	}
	if !tol.Equal(fx, fy) || !tol.Equal(fx, fz) {
		return 0, geom.Fail(op, geom.ErrInvalidScaleFactor,
			"non-uniform factors (%g, %g, %g) are not supported", fx, fy, fz)
	}
	return fx, nil
}

// ---------------------------------------------------------------------------
// Exit checks
// ---------------------------------------------------------------------------

// CheckResult fails with ErrInvalidGeometry when a computed point is not
// finite.
func CheckResult(op string, p geom.Point3) error {
	if !p.IsFinite() {
		return geom.Fail(op, geom.ErrInvalidGeometry, "result %v is not finite", p)
	}
	return nil
}

// CheckResultVector is CheckResult for vectors.
func CheckResultVector(op string, v geom.Vector3) error {
	if !v.IsFinite() {
		return geom.Fail(op, geom.ErrInvalidGeometry, "result %v is not finite", v)
	}
	return nil
}

// CheckRadius validates a derived radius: finite, positive, and larger
// than the distance tolerance.
func CheckRadius(op, name string, r float64, tol geom.Tol) error {
	if !scalar.IsFinite(r) || r < 0 {
		return geom.Fail(op, geom.ErrInvalidGeometry, "%s %v must be finite and positive", name, r)
	}
	if r <= tol.Distance {
		return geom.Fail(op, geom.ErrDegenerateGeometry, "%s %g collapsed to zero", name, r)
	}
	return nil
}

// CheckOrthogonal fails with ErrInvalidGeometry when a and b are not
// perpendicular within tol.Angle.
func CheckOrthogonal(op, what string, a, b geom.Direction3, tol geom.Tol) error {
	if c := math.Abs(a.Dot(b)); c > tol.Angle {
		return geom.Fail(op, geom.ErrInvalidGeometry, "%s are not orthogonal (cos %g)", what, c)
	}
	return nil
}
