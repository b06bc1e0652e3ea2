package shape

import (
	"fmt"
	"math"

	"github.com/chazu/kerf/pkg/geom"
	"github.com/chazu/kerf/pkg/xform"
)

// Ellipsoid is an ellipsoidal surface with semi-axes rx along ref, ry
// along axis × ref, and rz along axis.
type Ellipsoid struct {
	frame
	rx, ry, rz float64
}

// NewEllipsoid builds an ellipsoid.
func NewEllipsoid(center geom.Point3, axis, ref geom.Vector3, rx, ry, rz float64, tol geom.Tol) (Ellipsoid, error) {
	const op = "ellipsoid"
	f, err := newFrame(op, center, axis, ref, tol)
	if err != nil {
		return Ellipsoid{}, err
	}
	for _, r := range []struct {
		name string
		v    float64
	}{{"x radius", rx}, {"y radius", ry}, {"z radius", rz}} {
		if err := xform.CheckRadius(op, r.name, r.v, tol); err != nil {
			return Ellipsoid{}, err
		}
	}
	return Ellipsoid{frame: f, rx: rx, ry: ry, rz: rz}, nil
}

func (Ellipsoid) Kind() Kind { return KindEllipsoid }

func (e Ellipsoid) Center() geom.Point3   { return e.origin }
func (e Ellipsoid) Axis() geom.Direction3 { return e.axis }
func (e Ellipsoid) Ref() geom.Direction3  { return e.ref }

// Radii returns the semi-axes along ref, axis × ref and axis.
func (e Ellipsoid) Radii() (rx, ry, rz float64) { return e.rx, e.ry, e.rz }

func (e Ellipsoid) Volume() float64 { return 4 * math.Pi * e.rx * e.ry * e.rz / 3 }

// semiAxes returns the three semi-axis vectors.
func (e Ellipsoid) semiAxes() [3]geom.Vector3 {
	return [3]geom.Vector3{
		e.ref.Vector().Scale(e.rx),
		e.side().Scale(e.ry),
		e.axis.Vector().Scale(e.rz),
	}
}

// Bounds returns the exact extent: along axis i the half-width is the
// norm of the i-th components of the three semi-axes.
func (e Ellipsoid) Bounds() BBox3 {
	s := e.semiAxes()
	var h [3]float64
	for i := range h {
		x, y, z := s[0].Component(i), s[1].Component(i), s[2].Component(i)
		h[i] = math.Sqrt(x*x + y*y + z*z)
	}
	d := geom.V3(h[0], h[1], h[2])
	return BBox3{min: e.origin.Add(d.Neg()), max: e.origin.Add(d)}
}

func (e Ellipsoid) ApproxEqual(f Ellipsoid, tol geom.Tol) bool {
	return e.frame.approxEqual(f.frame, tol) &&
		tol.Equal(e.rx, f.rx) && tol.Equal(e.ry, f.ry) && tol.Equal(e.rz, f.rz)
}

func (e Ellipsoid) String() string {
	return fmt.Sprintf("ellipsoid(%v r=(%g, %g, %g))", e.frame, e.rx, e.ry, e.rz)
}

// apply admits any map that sends the principal axes to mutually
// perpendicular directions; otherwise the image's principal frame differs
// from the mapped one and the map is rejected as a scale the ellipsoid
// cannot represent.
func (e Ellipsoid) apply(m mapping, tol geom.Tol) (Ellipsoid, error) {
	op := "ellipsoid." + m.op
	if err := m.check(op); err != nil {
		return Ellipsoid{}, err
	}
	if m.singular {
		return Ellipsoid{}, geom.Fail(op, geom.ErrDegenerateGeometry, "transform is singular")
	}
	center, err := m.mapPoint(op, e.origin)
	if err != nil {
		return Ellipsoid{}, err
	}
	var img [3]geom.Vector3
	for i, s := range e.semiAxes() {
		if img[i], err = m.mapVector(op, s); err != nil {
			return Ellipsoid{}, err
		}
	}
	for _, pair := range [][2]int{{0, 1}, {1, 2}, {0, 2}} {
		a, b := img[pair[0]], img[pair[1]]
		if math.Abs(a.Dot(b)) > tol.Angle*a.Length()*b.Length() {
			return Ellipsoid{}, geom.Fail(op, geom.ErrInvalidScaleFactor, "transform does not keep the principal axes perpendicular")
		}
	}
	rx, ry, rz := img[0].Length(), img[1].Length(), img[2].Length()
	for _, r := range []struct {
		name string
		v    float64
	}{{"x radius", rx}, {"y radius", ry}, {"z radius", rz}} {
		if err := xform.CheckRadius(op, r.name, r.v, tol); err != nil {
			return Ellipsoid{}, err
		}
	}
	ref, _, err := direction(op, img[0], tol)
	if err != nil {
		return Ellipsoid{}, err
	}
	axis, _, err := direction(op, img[2], tol)
	if err != nil {
		return Ellipsoid{}, err
	}
	return Ellipsoid{frame: frame{origin: center, axis: axis, ref: ref}, rx: rx, ry: ry, rz: rz}, nil
}

func (e Ellipsoid) Translate(v geom.Vector3, tol geom.Tol) (Ellipsoid, error) {
	return e.apply(translating(v), tol)
}

func (e Ellipsoid) Rotate(axisPoint geom.Point3, axis geom.Vector3, angle float64, tol geom.Tol) (Ellipsoid, error) {
	return e.apply(rotating(axisPoint, axis, angle, tol), tol)
}

func (e Ellipsoid) Scale(center geom.Point3, f float64, tol geom.Tol) (Ellipsoid, error) {
	return e.ScaleXYZ(center, f, f, f, tol)
}

// ScaleXYZ accepts non-uniform factors when the ellipsoid's principal axes
// are aligned with the coordinate axes (or the factors coincide on the
// axes they mix).
func (e Ellipsoid) ScaleXYZ(center geom.Point3, fx, fy, fz float64, tol geom.Tol) (Ellipsoid, error) {
	return e.apply(scaling(center, fx, fy, fz, tol), tol)
}

func (e Ellipsoid) Reflect(planePoint geom.Point3, planeNormal geom.Vector3, tol geom.Tol) (Ellipsoid, error) {
	return e.apply(reflecting(planePoint, planeNormal, tol), tol)
}

func (e Ellipsoid) Transform(a xform.Affine, tol geom.Tol) (Ellipsoid, error) {
	return e.apply(mapped(a, tol), tol)
}
