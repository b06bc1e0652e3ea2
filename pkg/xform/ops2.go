package xform

import (
	"math"

	"github.com/chazu/kerf/pkg/geom"
	"github.com/chazu/kerf/pkg/scalar"
)

// Planar counterparts of the elementary operations. Rotation in the plane
// is about a point; reflection is across the line through a point with a
// given normal.

func checkPoint2(op, name string, p geom.Point2) error {
	if !p.IsFinite() {
		return geom.Fail(op, geom.ErrInvalidGeometry, "%s %v is not finite", name, p)
	}
	return nil
}

func checkVector2(op, name string, v geom.Vector2) error {
	if !v.IsFinite() {
		return geom.Fail(op, geom.ErrInvalidGeometry, "%s %v is not finite", name, v)
	}
	return nil
}

func checkAxis2(op, name string, v geom.Vector2, tol geom.Tol) (geom.Direction2, error) {
	if err := checkVector2(op, name, v); err != nil {
		return geom.Direction2{}, err
	}
	d, err := geom.NewDirection2(v, tol)
	if err != nil {
		return geom.Direction2{}, geom.Fail(op, geom.ErrZeroVector, "%s has zero length", name)
	}
	return d, nil
}

func checkResult2(op string, p geom.Point2) error {
	if !p.IsFinite() {
		return geom.Fail(op, geom.ErrInvalidGeometry, "result %v is not finite", p)
	}
	return nil
}

// Translate2 returns p + v.
func Translate2(p geom.Point2, v geom.Vector2) (geom.Point2, error) {
	const op = "translate"
	if err := checkVector2(op, "offset", v); err != nil {
		return geom.Point2{}, err
	}
	if err := checkPoint2(op, "point", p); err != nil {
		return geom.Point2{}, err
	}
	q := p.Add(v)
	if err := checkResult2(op, q); err != nil {
		return geom.Point2{}, err
	}
	return q, nil
}

// Rotate2 turns p counter-clockwise by angle radians about center.
func Rotate2(p, center geom.Point2, angle float64) (geom.Point2, error) {
	const op = "rotate"
	if err := CheckAngle(op, angle); err != nil {
		return geom.Point2{}, err
	}
	if err := checkPoint2(op, "point", p); err != nil {
		return geom.Point2{}, err
	}
	if err := checkPoint2(op, "center", center); err != nil {
		return geom.Point2{}, err
	}
	q := center.Add(turn(p.Sub(center), angle))
	if err := checkResult2(op, q); err != nil {
		return geom.Point2{}, err
	}
	return q, nil
}

// RotateVector2 turns v counter-clockwise by angle radians.
func RotateVector2(v geom.Vector2, angle float64) (geom.Vector2, error) {
	const op = "rotate"
	if err := CheckAngle(op, angle); err != nil {
		return geom.Vector2{}, err
	}
	if err := checkVector2(op, "vector", v); err != nil {
		return geom.Vector2{}, err
	}
	r := turn(v, angle)
	if !r.IsFinite() {
		return geom.Vector2{}, geom.Fail(op, geom.ErrInvalidGeometry, "result %v is not finite", r)
	}
	return r, nil
}

func turn(v geom.Vector2, angle float64) geom.Vector2 {
	s, c := math.Sincos(angle)
	return geom.V2(v.X*c-v.Y*s, v.X*s+v.Y*c)
}

// Scale2 returns center + (p − center) scaled by (fx, fy).
func Scale2(p, center geom.Point2, fx, fy float64) (geom.Point2, error) {
	const op = "scale"
	if err := CheckFactors(op, fx, fy); err != nil {
		return geom.Point2{}, err
	}
	if err := checkPoint2(op, "point", p); err != nil {
		return geom.Point2{}, err
	}
	if err := checkPoint2(op, "center", center); err != nil {
		return geom.Point2{}, err
	}
	q := center.Add(p.Sub(center).Mul(geom.V2(fx, fy)))
	if err := checkResult2(op, q); err != nil {
		return geom.Point2{}, err
	}
	return q, nil
}

// ScaleVector2 scales v component-wise.
func ScaleVector2(v geom.Vector2, fx, fy float64) (geom.Vector2, error) {
	const op = "scale"
	if err := CheckFactors(op, fx, fy); err != nil {
		return geom.Vector2{}, err
	}
	if err := checkVector2(op, "vector", v); err != nil {
		return geom.Vector2{}, err
	}
	r := v.Mul(geom.V2(fx, fy))
	if !r.IsFinite() {
		return geom.Vector2{}, geom.Fail(op, geom.ErrInvalidGeometry, "result %v is not finite", r)
	}
	return r, nil
}

// Reflect2 mirrors p across the line through linePoint with normal
// lineNormal.
func Reflect2(p, linePoint geom.Point2, lineNormal geom.Vector2, tol geom.Tol) (geom.Point2, error) {
	const op = "reflect"
	n, err := checkAxis2(op, "line normal", lineNormal, tol)
	if err != nil {
		return geom.Point2{}, err
	}
	if err := checkPoint2(op, "point", p); err != nil {
		return geom.Point2{}, err
	}
	if err := checkPoint2(op, "line point", linePoint); err != nil {
		return geom.Point2{}, err
	}
	nv := n.Vector()
	d := p.Sub(linePoint).Dot(nv)
	q := p.Add(nv.Scale(-2 * d))
	if err := checkResult2(op, q); err != nil {
		return geom.Point2{}, err
	}
	return q, nil
}

// ReflectVector2 mirrors v across any line with normal lineNormal.
func ReflectVector2(v, lineNormal geom.Vector2, tol geom.Tol) (geom.Vector2, error) {
	const op = "reflect"
	n, err := checkAxis2(op, "line normal", lineNormal, tol)
	if err != nil {
		return geom.Vector2{}, err
	}
	if err := checkVector2(op, "vector", v); err != nil {
		return geom.Vector2{}, err
	}
	nv := n.Vector()
	r := v.Sub(nv.Scale(2 * v.Dot(nv)))
	if !r.IsFinite() {
		return geom.Vector2{}, geom.Fail(op, geom.ErrInvalidGeometry, "result %v is not finite", r)
	}
	return r, nil
}

// NormalizeAngle maps a to [0, 2π).
func NormalizeAngle(a float64) float64 {
	if !scalar.IsFinite(a) {
		return a
	}
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	if a >= 2*math.Pi {
		a = 0
	}
	return a
}
