package shape

import (
	"fmt"

	"github.com/chazu/kerf/pkg/geom"
	"github.com/chazu/kerf/pkg/xform"
)

// frame places a surface: an origin, a symmetry axis, and a reference
// direction perpendicular to it. Sphere, cone, ellipsoid and torus share
// it.
type frame struct {
	origin geom.Point3
	axis   geom.Direction3
	ref    geom.Direction3
}

func newFrame(op string, origin geom.Point3, axis, ref geom.Vector3, tol geom.Tol) (frame, error) {
	if err := xform.CheckPoint(op, "origin", origin); err != nil {
		return frame{}, err
	}
	a, err := xform.CheckAxis(op, "axis", axis, tol)
	if err != nil {
		return frame{}, err
	}
	r, err := xform.CheckAxis(op, "reference direction", ref, tol)
	if err != nil {
		return frame{}, err
	}
	if err := xform.CheckOrthogonal(op, "axis and reference direction", a, r, tol); err != nil {
		return frame{}, err
	}
	return frame{origin: origin, axis: a, ref: r}, nil
}

// standardFrame has the axis along +Z and the reference along +X.
func standardFrame(origin geom.Point3) frame {
	return frame{origin: origin, axis: geom.UnitZ, ref: geom.UnitX}
}

// side returns axis × ref, the third direction of the frame.
func (f frame) side() geom.Vector3 {
	return f.axis.Cross(f.ref)
}

// apply maps the frame and reports how much the axis and reference
// directions were stretched.
func (f frame) apply(op string, m mapping, tol geom.Tol) (out frame, axisScale, refScale float64, err error) {
	if out.origin, err = m.mapPoint(op, f.origin); err != nil {
		return frame{}, 0, 0, err
	}
	if out.axis, axisScale, err = m.mapDirection(op, f.axis, tol); err != nil {
		return frame{}, 0, 0, err
	}
	if out.ref, refScale, err = m.mapDirection(op, f.ref, tol); err != nil {
		return frame{}, 0, 0, err
	}
	if err := xform.CheckOrthogonal(op, "axis and reference direction", out.axis, out.ref, tol); err != nil {
		return frame{}, 0, 0, err
	}
	return out, axisScale, refScale, nil
}

func (f frame) approxEqual(g frame, tol geom.Tol) bool {
	return f.origin.ApproxEqual(g.origin, tol) && f.axis.ApproxEqual(g.axis, tol) && f.ref.ApproxEqual(g.ref, tol)
}

func (f frame) String() string {
	return fmt.Sprintf("at=%v axis=%v ref=%v", f.origin, f.axis, f.ref)
}
