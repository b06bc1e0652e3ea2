package xform

import (
	"fmt"
	"math"

	"github.com/chazu/kerf/pkg/geom"
	"github.com/chazu/kerf/pkg/scalar"
	"github.com/go-gl/mathgl/mgl64"
)

// Affine2 is a planar affine transform held as a homogeneous 3×3 matrix.
type Affine2 struct {
	m mgl64.Mat3
}

// Identity2 returns the planar identity.
func Identity2() Affine2 {
	return Affine2{m: mgl64.Ident3()}
}

// FromMat3 wraps m after checking that it is finite and affine.
func FromMat3(m mgl64.Mat3) (Affine2, error) {
	const op = "affine2"
	for i, x := range m {
		if !scalar.IsFinite(x) {
			return Affine2{}, geom.Fail(op, geom.ErrInvalidGeometry, "element %d is not finite", i)
		}
	}
	if m.At(2, 0) != 0 || m.At(2, 1) != 0 || m.At(2, 2) != 1 {
		return Affine2{}, geom.Fail(op, geom.ErrInvalidGeometry, "bottom row is not (0, 0, 1)")
	}
	return Affine2{m: m}, nil
}

// Mat3 returns the homogeneous matrix.
func (a Affine2) Mat3() mgl64.Mat3 { return a.m }

func fromOps2(op string, origin func() (geom.Point2, error), linear func(geom.Vector2) (geom.Vector2, error)) (Affine2, error) {
	o, err := origin()
	if err != nil {
		return Affine2{}, geom.Reop(op, err)
	}
	x, err := linear(geom.V2(1, 0))
	if err != nil {
		return Affine2{}, geom.Reop(op, err)
	}
	y, err := linear(geom.V2(0, 1))
	if err != nil {
		return Affine2{}, geom.Reop(op, err)
	}
	return Affine2{m: mgl64.Mat3FromCols(
		mgl64.Vec3{x.X, x.Y, 0},
		mgl64.Vec3{y.X, y.Y, 0},
		mgl64.Vec3{o.X, o.Y, 1},
	)}, nil
}

// Translation2 returns p ↦ p + v.
func Translation2(v geom.Vector2) (Affine2, error) {
	return fromOps2("translation",
		func() (geom.Point2, error) { return Translate2(geom.Point2{}, v) },
		func(e geom.Vector2) (geom.Vector2, error) { return e, nil },
	)
}

// Rotation2 returns the counter-clockwise rotation about center.
func Rotation2(center geom.Point2, angle float64) (Affine2, error) {
	return fromOps2("rotation",
		func() (geom.Point2, error) { return Rotate2(geom.Point2{}, center, angle) },
		func(e geom.Vector2) (geom.Vector2, error) { return RotateVector2(e, angle) },
	)
}

// Scaling2 returns the component-wise scale about center.
func Scaling2(center geom.Point2, fx, fy float64) (Affine2, error) {
	return fromOps2("scaling",
		func() (geom.Point2, error) { return Scale2(geom.Point2{}, center, fx, fy) },
		func(e geom.Vector2) (geom.Vector2, error) { return ScaleVector2(e, fx, fy) },
	)
}

// Reflection2 returns the mirror across the line through linePoint with
// normal lineNormal.
func Reflection2(linePoint geom.Point2, lineNormal geom.Vector2, tol geom.Tol) (Affine2, error) {
	return fromOps2("reflection",
		func() (geom.Point2, error) { return Reflect2(geom.Point2{}, linePoint, lineNormal, tol) },
		func(e geom.Vector2) (geom.Vector2, error) { return ReflectVector2(e, lineNormal, tol) },
	)
}

// Then returns the transform that applies a first and b second.
func (a Affine2) Then(b Affine2) Affine2 {
	return Affine2{m: b.m.Mul3(a.m)}
}

// Compose2 folds steps into one transform; steps[0] is applied first.
func Compose2(steps ...Affine2) Affine2 {
	out := Identity2()
	for _, s := range steps {
		out = out.Then(s)
	}
	return out
}

// Inverse returns the transform undoing a.
func (a Affine2) Inverse(tol geom.Tol) (Affine2, error) {
	if a.IsSingular(tol) {
		return Affine2{}, geom.Fail("affine2.inverse", geom.ErrDegenerateGeometry, "determinant %g is singular", a.Determinant())
	}
	inv := a.m.Inv()
	inv[2], inv[5], inv[8] = 0, 0, 1
	return FromMat3(inv)
}

// ApplyPoint maps p through a.
func (a Affine2) ApplyPoint(p geom.Point2) (geom.Point2, error) {
	const op = "affine2.apply"
	if err := checkPoint2(op, "point", p); err != nil {
		return geom.Point2{}, err
	}
	r := a.m.Mul3x1(mgl64.Vec3{p.X, p.Y, 1})
	q := geom.P2(r[0], r[1])
	if err := checkResult2(op, q); err != nil {
		return geom.Point2{}, err
	}
	return q, nil
}

// ApplyVector maps v through the linear part of a.
func (a Affine2) ApplyVector(v geom.Vector2) (geom.Vector2, error) {
	const op = "affine2.apply"
	if err := checkVector2(op, "vector", v); err != nil {
		return geom.Vector2{}, err
	}
	r := a.m.Mul3x1(mgl64.Vec3{v.X, v.Y, 0})
	w := geom.V2(r[0], r[1])
	if !w.IsFinite() {
		return geom.Vector2{}, geom.Fail(op, geom.ErrInvalidGeometry, "result %v is not finite", w)
	}
	return w, nil
}

// ApplyPoints maps every point of ps into a fresh slice.
func (a Affine2) ApplyPoints(ps []geom.Point2) ([]geom.Point2, error) {
	out := make([]geom.Point2, len(ps))
	for i, p := range ps {
		q, err := a.ApplyPoint(p)
		if err != nil {
			return nil, fmt.Errorf("point %d: %w", i, err)
		}
		out[i] = q
	}
	return out, nil
}

// Linear returns the images of the two basis vectors.
func (a Affine2) Linear() (x, y geom.Vector2) {
	c0, c1, _ := a.m.Cols()
	return geom.V2(c0[0], c0[1]), geom.V2(c1[0], c1[1])
}

// Offset returns the image of the origin.
func (a Affine2) Offset() geom.Vector2 {
	c := a.m.Col(2)
	return geom.V2(c[0], c[1])
}

// Determinant returns the determinant of the linear part.
func (a Affine2) Determinant() float64 {
	return a.m.Det()
}

// IsSingular reports whether the linear part collapses the plane onto a
// line or a point.
func (a Affine2) IsSingular(tol geom.Tol) bool {
	x, y := a.Linear()
	lx, ly := x.Length(), y.Length()
	if lx <= tol.Distance || ly <= tol.Distance {
		return true
	}
	det := a.Determinant()
	return !scalar.IsFinite(det) || math.Abs(det) <= tol.Angle*lx*ly
}

// Similarity reports whether a is a rigid motion with uniform scale and
// returns the factor.
func (a Affine2) Similarity(tol geom.Tol) (float64, bool) {
	x, y := a.Linear()
	lx, ly := x.Length(), y.Length()
	if lx <= tol.Distance || !tol.Equal(lx, ly) {
		return 0, false
	}
	if math.Abs(x.Dot(y)) > tol.Angle*lx*lx {
		return 0, false
	}
	return lx, true
}

// ApproxEqual compares matrices element-wise.
func (a Affine2) ApproxEqual(b Affine2, eps float64) bool {
	for i := range a.m {
		if !scalar.Equal(a.m[i], b.m[i], eps) {
			return false
		}
	}
	return true
}

func (a Affine2) String() string {
	x, y := a.Linear()
	return fmt.Sprintf("affine2[x=%v y=%v t=%v]", x, y, a.Offset())
}
