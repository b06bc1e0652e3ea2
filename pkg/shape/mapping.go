package shape

import (
	"github.com/chazu/kerf/pkg/geom"
	"github.com/chazu/kerf/pkg/xform"
)

// mapping is one spatial transform seen from an adapter: how it moves
// points and vectors, and what is known about its linear part. Entry
// validation happens when the mapping is built; err holds the failure.
type mapping struct {
	op     string
	point  func(geom.Point3) (geom.Point3, error)
	vector func(geom.Vector3) (geom.Vector3, error)
	affine func() (xform.Affine, error)

	uniform  bool    // linear part is a similarity
	factor   float64 // its scale factor when uniform
	flips    bool    // orientation reversing
	singular bool
	err      error
}

func same(v geom.Vector3) (geom.Vector3, error) { return v, nil }

func translating(v geom.Vector3) mapping {
	return mapping{
		op:      "translate",
		point:   func(p geom.Point3) (geom.Point3, error) { return xform.Translate(p, v) },
		vector:  same,
		affine:  func() (xform.Affine, error) { return xform.Translation(v) },
		uniform: true,
		factor:  1,
		err:     xform.CheckVector("translate", "offset", v),
	}
}

func rotating(axisPoint geom.Point3, axis geom.Vector3, angle float64, tol geom.Tol) mapping {
	m := mapping{
		op:      "rotate",
		point:   func(p geom.Point3) (geom.Point3, error) { return xform.Rotate(p, axisPoint, axis, angle, tol) },
		vector:  func(v geom.Vector3) (geom.Vector3, error) { return xform.RotateVector(v, axis, angle, tol) },
		affine:  func() (xform.Affine, error) { return xform.Rotation(axisPoint, axis, angle, tol) },
		uniform: true,
		factor:  1,
	}
	if _, err := xform.CheckAxis(m.op, "axis", axis, tol); err != nil {
		m.err = err
	} else if err := xform.CheckAngle(m.op, angle); err != nil {
		m.err = err
	} else {
		m.err = xform.CheckPoint(m.op, "axis point", axisPoint)
	}
	return m
}

func scaling(center geom.Point3, fx, fy, fz float64, tol geom.Tol) mapping {
	m := mapping{
		op:      "scale",
		point:   func(p geom.Point3) (geom.Point3, error) { return xform.Scale(p, center, fx, fy, fz) },
		vector:  func(v geom.Vector3) (geom.Vector3, error) { return xform.ScaleVector(v, fx, fy, fz) },
		affine:  func() (xform.Affine, error) { return xform.Scaling(center, fx, fy, fz) },
		uniform: tol.Equal(fx, fy) && tol.Equal(fx, fz),
		factor:  fx,
	}
	if err := xform.CheckFactors(m.op, fx, fy, fz); err != nil {
		m.err = err
	} else {
		m.err = xform.CheckPoint(m.op, "center", center)
	}
	return m
}

func reflecting(planePoint geom.Point3, planeNormal geom.Vector3, tol geom.Tol) mapping {
	m := mapping{
		op:      "reflect",
		point:   func(p geom.Point3) (geom.Point3, error) { return xform.Reflect(p, planePoint, planeNormal, tol) },
		vector:  func(v geom.Vector3) (geom.Vector3, error) { return xform.ReflectVector(v, planeNormal, tol) },
		affine:  func() (xform.Affine, error) { return xform.Reflection(planePoint, planeNormal, tol) },
		uniform: true,
		factor:  1,
		flips:   true,
	}
	if _, err := xform.CheckAxis(m.op, "plane normal", planeNormal, tol); err != nil {
		m.err = err
	} else {
		m.err = xform.CheckPoint(m.op, "plane point", planePoint)
	}
	return m
}

func mapped(a xform.Affine, tol geom.Tol) mapping {
	f, ok := a.Similarity(tol)
	return mapping{
		op:       "transform",
		point:    a.ApplyPoint,
		vector:   a.ApplyVector,
		affine:   func() (xform.Affine, error) { return a, nil },
		uniform:  ok,
		factor:   f,
		flips:    a.IsReflecting(),
		singular: a.IsSingular(tol),
	}
}

// check reports the entry failure, if any, under op.
func (m mapping) check(op string) error {
	if m.err != nil {
		return geom.Reop(op, m.err)
	}
	return nil
}

// checkSimilar additionally requires the mapping to keep shapes similar,
// for primitives that cannot change proportion.
func (m mapping) checkSimilar(op string) error {
	if err := m.check(op); err != nil {
		return err
	}
	if m.singular {
		return geom.Fail(op, geom.ErrDegenerateGeometry, "transform is singular")
	}
	if !m.uniform {
		return geom.Fail(op, geom.ErrInvalidScaleFactor, "non-uniform scale is not supported")
	}
	return nil
}

func (m mapping) mapPoint(op string, p geom.Point3) (geom.Point3, error) {
	q, err := m.point(p)
	if err != nil {
		return geom.Point3{}, geom.Reop(op, err)
	}
	return q, nil
}

func (m mapping) mapVector(op string, v geom.Vector3) (geom.Vector3, error) {
	w, err := m.vector(v)
	if err != nil {
		return geom.Vector3{}, geom.Reop(op, err)
	}
	return w, nil
}

// mapDirection maps d and re-normalizes. A direction collapsed by the
// transform fails with ErrDegenerateGeometry.
func (m mapping) mapDirection(op string, d geom.Direction3, tol geom.Tol) (geom.Direction3, float64, error) {
	w, err := m.mapVector(op, d.Vector())
	if err != nil {
		return geom.Direction3{}, 0, err
	}
	return direction(op, w, tol)
}

func direction(op string, w geom.Vector3, tol geom.Tol) (geom.Direction3, float64, error) {
	l := w.Length()
	if l <= tol.Distance {
		return geom.Direction3{}, 0, geom.Fail(op, geom.ErrDegenerateGeometry, "direction collapsed to zero length")
	}
	d, err := geom.NewDirection3(w, tol)
	if err != nil {
		return geom.Direction3{}, 0, geom.Reop(op, err)
	}
	return d, l, nil
}

// ---------------------------------------------------------------------------
// Planar mappings
// ---------------------------------------------------------------------------

type mapping2 struct {
	op     string
	point  func(geom.Point2) (geom.Point2, error)
	vector func(geom.Vector2) (geom.Vector2, error)
	affine func() (xform.Affine2, error)

	uniform  bool
	factor   float64
	flips    bool
	singular bool
	err      error
}

func translating2(v geom.Vector2) mapping2 {
	m := mapping2{
		op:      "translate",
		point:   func(p geom.Point2) (geom.Point2, error) { return xform.Translate2(p, v) },
		vector:  func(w geom.Vector2) (geom.Vector2, error) { return w, nil },
		affine:  func() (xform.Affine2, error) { return xform.Translation2(v) },
		uniform: true,
		factor:  1,
	}
	if !v.IsFinite() {
		m.err = geom.Fail(m.op, geom.ErrInvalidGeometry, "offset %v is not finite", v)
	}
	return m
}

func rotating2(center geom.Point2, angle float64) mapping2 {
	m := mapping2{
		op:      "rotate",
		point:   func(p geom.Point2) (geom.Point2, error) { return xform.Rotate2(p, center, angle) },
		vector:  func(w geom.Vector2) (geom.Vector2, error) { return xform.RotateVector2(w, angle) },
		affine:  func() (xform.Affine2, error) { return xform.Rotation2(center, angle) },
		uniform: true,
		factor:  1,
	}
	if err := xform.CheckAngle(m.op, angle); err != nil {
		m.err = err
	} else if !center.IsFinite() {
		m.err = geom.Fail(m.op, geom.ErrInvalidGeometry, "center %v is not finite", center)
	}
	return m
}

func scaling2(center geom.Point2, fx, fy float64, tol geom.Tol) mapping2 {
	m := mapping2{
		op:      "scale",
		point:   func(p geom.Point2) (geom.Point2, error) { return xform.Scale2(p, center, fx, fy) },
		vector:  func(w geom.Vector2) (geom.Vector2, error) { return xform.ScaleVector2(w, fx, fy) },
		affine:  func() (xform.Affine2, error) { return xform.Scaling2(center, fx, fy) },
		uniform: tol.Equal(fx, fy),
		factor:  fx,
	}
	if err := xform.CheckFactors(m.op, fx, fy); err != nil {
		m.err = err
	} else if !center.IsFinite() {
		m.err = geom.Fail(m.op, geom.ErrInvalidGeometry, "center %v is not finite", center)
	}
	return m
}

func reflecting2(linePoint geom.Point2, lineNormal geom.Vector2, tol geom.Tol) mapping2 {
	m := mapping2{
		op:      "reflect",
		point:   func(p geom.Point2) (geom.Point2, error) { return xform.Reflect2(p, linePoint, lineNormal, tol) },
		vector:  func(w geom.Vector2) (geom.Vector2, error) { return xform.ReflectVector2(w, lineNormal, tol) },
		affine:  func() (xform.Affine2, error) { return xform.Reflection2(linePoint, lineNormal, tol) },
		uniform: true,
		factor:  1,
		flips:   true,
	}
	// Probe the normal once so entry failures surface before any geometry.
	if _, err := xform.ReflectVector2(geom.V2(1, 0), lineNormal, tol); err != nil {
		m.err = err
	} else if !linePoint.IsFinite() {
		m.err = geom.Fail(m.op, geom.ErrInvalidGeometry, "line point %v is not finite", linePoint)
	}
	return m
}

func mapped2(a xform.Affine2, tol geom.Tol) mapping2 {
	f, ok := a.Similarity(tol)
	return mapping2{
		op:       "transform",
		point:    a.ApplyPoint,
		vector:   a.ApplyVector,
		affine:   func() (xform.Affine2, error) { return a, nil },
		uniform:  ok,
		factor:   f,
		flips:    a.Determinant() < 0,
		singular: a.IsSingular(tol),
	}
}

func (m mapping2) check(op string) error {
	if m.err != nil {
		return geom.Reop(op, m.err)
	}
	return nil
}

func (m mapping2) checkSimilar(op string) error {
	if err := m.check(op); err != nil {
		return err
	}
	if m.singular {
		return geom.Fail(op, geom.ErrDegenerateGeometry, "transform is singular")
	}
	if !m.uniform {
		return geom.Fail(op, geom.ErrInvalidScaleFactor, "non-uniform scale is not supported")
	}
	return nil
}

func (m mapping2) mapPoint(op string, p geom.Point2) (geom.Point2, error) {
	q, err := m.point(p)
	if err != nil {
		return geom.Point2{}, geom.Reop(op, err)
	}
	return q, nil
}

func (m mapping2) mapVector(op string, v geom.Vector2) (geom.Vector2, error) {
	w, err := m.vector(v)
	if err != nil {
		return geom.Vector2{}, geom.Reop(op, err)
	}
	return w, nil
}
