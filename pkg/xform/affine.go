package xform

import (
	"fmt"
	"math"

	"github.com/chazu/kerf/pkg/geom"
	"github.com/chazu/kerf/pkg/scalar"
	"github.com/go-gl/mathgl/mgl64"
)

// Affine is a 3D affine transform held as a homogeneous 4×4 matrix with
// bottom row (0, 0, 0, 1). The zero value is not valid; start from
// Identity or one of the builders.
type Affine struct {
	m mgl64.Mat4
}

// Identity returns the transform that leaves every point in place.
func Identity() Affine {
	return Affine{m: mgl64.Ident4()}
}

// FromMat4 wraps m after checking that it is finite and affine.
func FromMat4(m mgl64.Mat4) (Affine, error) {
	const op = "affine"
	for i, x := range m {
		if !scalar.IsFinite(x) {
			return Affine{}, geom.Fail(op, geom.ErrInvalidGeometry, "element %d is not finite", i)
		}
	}
	if m.At(3, 0) != 0 || m.At(3, 1) != 0 || m.At(3, 2) != 0 || m.At(3, 3) != 1 {
		return Affine{}, geom.Fail(op, geom.ErrInvalidGeometry, "bottom row is not (0, 0, 0, 1)")
	}
	return Affine{m: m}, nil
}

// Mat4 returns the homogeneous matrix.
func (a Affine) Mat4() mgl64.Mat4 { return a.m }

// ---------------------------------------------------------------------------
// Builders, derived from the elementary operations
// ---------------------------------------------------------------------------

// fromOps assembles a matrix from the image of the origin and the images
// of the three basis vectors under the linear part.
func fromOps(op string, origin func() (geom.Point3, error), linear func(geom.Vector3) (geom.Vector3, error)) (Affine, error) {
	o, err := origin()
	if err != nil {
		return Affine{}, geom.Reop(op, err)
	}
	var cols [3]mgl64.Vec4
	for i, e := range [3]geom.Vector3{geom.V3(1, 0, 0), geom.V3(0, 1, 0), geom.V3(0, 0, 1)} {
		c, err := linear(e)
		if err != nil {
			return Affine{}, geom.Reop(op, err)
		}
		cols[i] = mgl64.Vec4{c.X, c.Y, c.Z, 0}
	}
	return Affine{m: mgl64.Mat4FromCols(cols[0], cols[1], cols[2], mgl64.Vec4{o.X, o.Y, o.Z, 1})}, nil
}

// Translation returns the transform p ↦ p + v.
func Translation(v geom.Vector3) (Affine, error) {
	return fromOps("translation",
		func() (geom.Point3, error) { return Translate(geom.Origin, v) },
		func(e geom.Vector3) (geom.Vector3, error) { return e, nil },
	)
}

// Rotation returns the rotation by angle radians about the line through
// axisPoint along axis.
func Rotation(axisPoint geom.Point3, axis geom.Vector3, angle float64, tol geom.Tol) (Affine, error) {
	return fromOps("rotation",
		func() (geom.Point3, error) { return Rotate(geom.Origin, axisPoint, axis, angle, tol) },
		func(e geom.Vector3) (geom.Vector3, error) { return RotateVector(e, axis, angle, tol) },
	)
}

// Scaling returns the component-wise scale about center.
func Scaling(center geom.Point3, fx, fy, fz float64) (Affine, error) {
	return fromOps("scaling",
		func() (geom.Point3, error) { return Scale(geom.Origin, center, fx, fy, fz) },
		func(e geom.Vector3) (geom.Vector3, error) { return ScaleVector(e, fx, fy, fz) },
	)
}

// UniformScaling returns the scale by f about center.
func UniformScaling(center geom.Point3, f float64) (Affine, error) {
	return Scaling(center, f, f, f)
}

// Reflection returns the mirror across the plane through planePoint with
// normal planeNormal.
func Reflection(planePoint geom.Point3, planeNormal geom.Vector3, tol geom.Tol) (Affine, error) {
	return fromOps("reflection",
		func() (geom.Point3, error) { return Reflect(geom.Origin, planePoint, planeNormal, tol) },
		func(e geom.Vector3) (geom.Vector3, error) { return ReflectVector(e, planeNormal, tol) },
	)
}

// ScaleRotateTranslate composes the documented order in one call: scale by
// factor about center, then rotate about the line (axisPoint, axis), then
// translate by offset.
func ScaleRotateTranslate(center geom.Point3, factor float64, axisPoint geom.Point3, axis geom.Vector3, angle float64, offset geom.Vector3, tol geom.Tol) (Affine, error) {
	return NewChain(tol).
		Scale(center, factor).
		Rotate(axisPoint, axis, angle).
		Translate(offset).
		Affine()
}

// ---------------------------------------------------------------------------
// Composition
// ---------------------------------------------------------------------------

// Then returns the transform that applies a first and b second.
func (a Affine) Then(b Affine) Affine {
	return Affine{m: b.m.Mul4(a.m)}
}

// Compose folds steps into one transform; steps[0] is applied first.
func Compose(steps ...Affine) Affine {
	out := Identity()
	for _, s := range steps {
		out = out.Then(s)
	}
	return out
}

// Inverse returns the transform undoing a. A singular linear part fails
// with ErrDegenerateGeometry.
func (a Affine) Inverse(tol geom.Tol) (Affine, error) {
	if a.IsSingular(tol) {
		return Affine{}, geom.Fail("affine.inverse", geom.ErrDegenerateGeometry, "determinant %g is singular", a.Determinant())
	}
	inv := a.m.Inv()
	// Inv divides by the 4×4 determinant; force the exact affine bottom row.
	inv[3], inv[7], inv[11], inv[15] = 0, 0, 0, 1
	return FromMat4(inv)
}

// ---------------------------------------------------------------------------
// Application
// ---------------------------------------------------------------------------

// ApplyPoint maps p through a.
func (a Affine) ApplyPoint(p geom.Point3) (geom.Point3, error) {
	const op = "affine.apply"
	if err := CheckPoint(op, "point", p); err != nil {
		return geom.Point3{}, err
	}
	q := a.applyPoint(p)
	if err := CheckResult(op, q); err != nil {
		return geom.Point3{}, err
	}
	return q, nil
}

func (a Affine) applyPoint(p geom.Point3) geom.Point3 {
	r := a.m.Mul4x1(mgl64.Vec4{p.X, p.Y, p.Z, 1})
	return geom.P3(r[0], r[1], r[2])
}

// ApplyVector maps v through the linear part of a.
func (a Affine) ApplyVector(v geom.Vector3) (geom.Vector3, error) {
	const op = "affine.apply"
	if err := CheckVector(op, "vector", v); err != nil {
		return geom.Vector3{}, err
	}
	w := a.applyVector(v)
	if err := CheckResultVector(op, w); err != nil {
		return geom.Vector3{}, err
	}
	return w, nil
}

func (a Affine) applyVector(v geom.Vector3) geom.Vector3 {
	r := a.m.Mul4x1(mgl64.Vec4{v.X, v.Y, v.Z, 0})
	return geom.V3(r[0], r[1], r[2])
}

// ApplyDirection maps d through the linear part and re-normalizes. A
// direction collapsed by a singular transform fails with ErrZeroVector.
func (a Affine) ApplyDirection(d geom.Direction3, tol geom.Tol) (geom.Direction3, error) {
	v, err := a.ApplyVector(d.Vector())
	if err != nil {
		return geom.Direction3{}, err
	}
	return renormalize("affine.apply", v, tol)
}

// ApplyPoints maps every point of ps into a fresh slice. The first point
// that fails aborts the batch; ps is never modified.
func (a Affine) ApplyPoints(ps []geom.Point3) ([]geom.Point3, error) {
	out := make([]geom.Point3, len(ps))
	for i, p := range ps {
		q, err := a.ApplyPoint(p)
		if err != nil {
			return nil, fmt.Errorf("point %d: %w", i, err)
		}
		out[i] = q
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Inspection
// ---------------------------------------------------------------------------

// Linear returns the images of the three basis vectors.
func (a Affine) Linear() (x, y, z geom.Vector3) {
	c0, c1, c2, _ := a.m.Cols()
	return geom.V3(c0[0], c0[1], c0[2]), geom.V3(c1[0], c1[1], c1[2]), geom.V3(c2[0], c2[1], c2[2])
}

// Offset returns the image of the origin.
func (a Affine) Offset() geom.Vector3 {
	c := a.m.Col(3)
	return geom.V3(c[0], c[1], c[2])
}

// Determinant returns the determinant of the linear part. A negative value
// means the transform reverses orientation.
func (a Affine) Determinant() float64 {
	return a.m.Det()
}

// IsSingular reports whether the linear part collapses space onto a plane,
// a line or a point. The determinant is measured against the product of
// the column lengths so that small but regular scales are not flagged.
func (a Affine) IsSingular(tol geom.Tol) bool {
	x, y, z := a.Linear()
	lx, ly, lz := x.Length(), y.Length(), z.Length()
	if lx <= tol.Distance || ly <= tol.Distance || lz <= tol.Distance {
		return true
	}
	det := a.Determinant()
	return !scalar.IsFinite(det) || math.Abs(det) <= tol.Angle*lx*ly*lz
}

// IsReflecting reports whether a reverses orientation.
func (a Affine) IsReflecting() bool {
	return a.Determinant() < 0
}

// Similarity reports whether a is a rigid motion combined with a uniform
// scale, possibly reflecting, and returns the scale factor.
func (a Affine) Similarity(tol geom.Tol) (float64, bool) {
	x, y, z := a.Linear()
	lx, ly, lz := x.Length(), y.Length(), z.Length()
	if lx <= tol.Distance {
		return 0, false
	}
	if !tol.Equal(lx, ly) || !tol.Equal(lx, lz) {
		return 0, false
	}
	s2 := lx * lx
	if math.Abs(x.Dot(y)) > tol.Angle*s2 || math.Abs(y.Dot(z)) > tol.Angle*s2 || math.Abs(x.Dot(z)) > tol.Angle*s2 {
		return 0, false
	}
	return lx, true
}

// IsIdentity reports whether a is the identity within tol.Distance.
func (a Affine) IsIdentity(tol geom.Tol) bool {
	return a.ApproxEqual(Identity(), tol.Distance)
}

// ApproxEqual compares matrices element-wise, absolutely below magnitude
// one and relatively above.
func (a Affine) ApproxEqual(b Affine, eps float64) bool {
	for i := range a.m {
		if !scalar.Equal(a.m[i], b.m[i], eps) {
			return false
		}
	}
	return true
}

func (a Affine) String() string {
	x, y, z := a.Linear()
	return fmt.Sprintf("affine[x=%v y=%v z=%v t=%v]", x, y, z, a.Offset())
}
