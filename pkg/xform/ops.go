package xform

import (
	"math"

	"github.com/chazu/kerf/pkg/geom"
)

// ---------------------------------------------------------------------------
// Translate
// ---------------------------------------------------------------------------

// Translate returns p + v.
func Translate(p geom.Point3, v geom.Vector3) (geom.Point3, error) {
	const op = "translate"
	if err := CheckVector(op, "offset", v); err != nil {
		return geom.Point3{}, err
	}
	if err := CheckPoint(op, "point", p); err != nil {
		return geom.Point3{}, err
	}
	q := p.Add(v)
	if err := CheckResult(op, q); err != nil {
		return geom.Point3{}, err
	}
	return q, nil
}

// ---------------------------------------------------------------------------
// Rotate
// ---------------------------------------------------------------------------

// Rotate turns p by angle radians about the line through axisPoint along
// axis, right-handed, using Rodrigues' formula:
//
//	v' = v·cosθ + (k×v)·sinθ + k·(k·v)·(1−cosθ),  v = p − axisPoint
//
// A zero axis fails with ErrZeroVector whatever the angle; a non-finite
// angle fails with ErrInvalidRotation.
func Rotate(p, axisPoint geom.Point3, axis geom.Vector3, angle float64, tol geom.Tol) (geom.Point3, error) {
	const op = "rotate"
	k, err := CheckAxis(op, "axis", axis, tol)
	if err != nil {
		return geom.Point3{}, err
	}
	if err := CheckAngle(op, angle); err != nil {
		return geom.Point3{}, err
	}
	if err := CheckPoint(op, "point", p); err != nil {
		return geom.Point3{}, err
	}
	if err := CheckPoint(op, "axis point", axisPoint); err != nil {
		return geom.Point3{}, err
	}
	v := p.Sub(axisPoint)
	if err := CheckResultVector(op, v); err != nil {
		return geom.Point3{}, err
	}
	r := rodrigues(v, k, angle)
	if err := CheckResultVector(op, r); err != nil {
		return geom.Point3{}, err
	}
	q := axisPoint.Add(r)
	if err := CheckResult(op, q); err != nil {
		return geom.Point3{}, err
	}
	return q, nil
}

// RotateVector turns v by angle radians about axis. Vectors have no
// position, so only the axis direction matters.
func RotateVector(v, axis geom.Vector3, angle float64, tol geom.Tol) (geom.Vector3, error) {
	const op = "rotate"
	k, err := CheckAxis(op, "axis", axis, tol)
	if err != nil {
		return geom.Vector3{}, err
	}
	if err := CheckAngle(op, angle); err != nil {
		return geom.Vector3{}, err
	}
	if err := CheckVector(op, "vector", v); err != nil {
		return geom.Vector3{}, err
	}
	r := rodrigues(v, k, angle)
	if err := CheckResultVector(op, r); err != nil {
		return geom.Vector3{}, err
	}
	return r, nil
}

// RotateDirection turns d about axis and re-normalizes the result.
func RotateDirection(d geom.Direction3, axis geom.Vector3, angle float64, tol geom.Tol) (geom.Direction3, error) {
	v, err := RotateVector(d.Vector(), axis, angle, tol)
	if err != nil {
		return geom.Direction3{}, err
	}
	return renormalize("rotate", v, tol)
}

func rodrigues(v geom.Vector3, k geom.Direction3, angle float64) geom.Vector3 {
	s, c := math.Sincos(angle)
	kv := k.Vector()
	return v.Scale(c).
		Add(kv.Cross(v).Scale(s)).
		Add(kv.Scale(kv.Dot(v) * (1 - c)))
}

// ---------------------------------------------------------------------------
// Scale
// ---------------------------------------------------------------------------

// Scale returns center + (p − center) scaled component-wise by
// (fx, fy, fz). Every factor must be finite and strictly positive;
// mirroring is expressed with Reflect.
func Scale(p, center geom.Point3, fx, fy, fz float64) (geom.Point3, error) {
	const op = "scale"
	if err := CheckFactors(op, fx, fy, fz); err != nil {
		return geom.Point3{}, err
	}
	if err := CheckPoint(op, "point", p); err != nil {
		return geom.Point3{}, err
	}
	if err := CheckPoint(op, "center", center); err != nil {
		return geom.Point3{}, err
	}
	d := p.Sub(center).Mul(geom.V3(fx, fy, fz))
	q := center.Add(d)
	if err := CheckResult(op, q); err != nil {
		return geom.Point3{}, err
	}
	return q, nil
}

// ScaleUniform scales p about center by f on every axis.
func ScaleUniform(p, center geom.Point3, f float64) (geom.Point3, error) {
	return Scale(p, center, f, f, f)
}

// ScaleVector scales v component-wise.
func ScaleVector(v geom.Vector3, fx, fy, fz float64) (geom.Vector3, error) {
	const op = "scale"
	if err := CheckFactors(op, fx, fy, fz); err != nil {
		return geom.Vector3{}, err
	}
	if err := CheckVector(op, "vector", v); err != nil {
		return geom.Vector3{}, err
	}
	r := v.Mul(geom.V3(fx, fy, fz))
	if err := CheckResultVector(op, r); err != nil {
		return geom.Vector3{}, err
	}
	return r, nil
}

// ---------------------------------------------------------------------------
// Reflect
// ---------------------------------------------------------------------------

// Reflect mirrors p across the plane through planePoint with normal
// planeNormal:
//
//	p' = p − 2·((p − q)·n̂)·n̂
func Reflect(p, planePoint geom.Point3, planeNormal geom.Vector3, tol geom.Tol) (geom.Point3, error) {
	const op = "reflect"
	n, err := CheckAxis(op, "plane normal", planeNormal, tol)
	if err != nil {
		return geom.Point3{}, err
	}
	if err := CheckPoint(op, "point", p); err != nil {
		return geom.Point3{}, err
	}
	if err := CheckPoint(op, "plane point", planePoint); err != nil {
		return geom.Point3{}, err
	}
	nv := n.Vector()
	d := p.Sub(planePoint).Dot(nv)
	q := p.Add(nv.Scale(-2 * d))
	if err := CheckResult(op, q); err != nil {
		return geom.Point3{}, err
	}
	return q, nil
}

// ReflectVector mirrors v across any plane with normal planeNormal.
func ReflectVector(v, planeNormal geom.Vector3, tol geom.Tol) (geom.Vector3, error) {
	const op = "reflect"
	n, err := CheckAxis(op, "plane normal", planeNormal, tol)
	if err != nil {
		return geom.Vector3{}, err
	}
	if err := CheckVector(op, "vector", v); err != nil {
		return geom.Vector3{}, err
	}
	nv := n.Vector()
	r := v.Sub(nv.Scale(2 * v.Dot(nv)))
	if err := CheckResultVector(op, r); err != nil {
		return geom.Vector3{}, err
	}
	return r, nil
}

// ReflectDirection mirrors d and re-normalizes the result.
func ReflectDirection(d geom.Direction3, planeNormal geom.Vector3, tol geom.Tol) (geom.Direction3, error) {
	v, err := ReflectVector(d.Vector(), planeNormal, tol)
	if err != nil {
		return geom.Direction3{}, err
	}
	return renormalize("reflect", v, tol)
}

func renormalize(op string, v geom.Vector3, tol geom.Tol) (geom.Direction3, error) {
	d, err := geom.NewDirection3(v, tol)
	if err != nil {
		return geom.Direction3{}, geom.Reop(op, err)
	}
	return d, nil
}
