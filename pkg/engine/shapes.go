package engine

import (
	"errors"
	"fmt"

	"github.com/chazu/kerf/pkg/geom"
	"github.com/chazu/kerf/pkg/shape"
	zygo "github.com/glycerine/zygomys/zygo"
	"github.com/go-gl/mathgl/mgl64"
)

// shapeFn builds a primitive from parsed arguments.
type shapeFn func(b *builder, pa kwArgs) (shape.Shape, error)

// shapeBuiltins maps a builtin name to its constructor. Angles in user
// code are degrees.
var shapeBuiltins = map[string]shapeFn{
	"circle":    buildCircle,
	"arc":       buildArc,
	"ellipse":   buildEllipse,
	"sphere":    buildSphere,
	"cone":      buildCone,
	"torus":     buildTorus,
	"ellipsoid": buildEllipsoid,
	"bbox":      buildBBox,
	"segment":   buildSegment,
	"triangle":  buildTriangle,
}

func (b *builder) registerShapes(env *zygo.Zlisp) {

	// -----------------------------------------------------------------------
	// (vec3 1 2 3)
	// -----------------------------------------------------------------------
	env.AddFunction("vec3", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("vec3 requires exactly 3 arguments, got %d", len(args))
		}
		var c [3]float64
		for i, a := range args {
			f, err := toFloat64(a)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("vec3: argument %d: %w", i+1, err)
			}
			c[i] = f
		}
		return &sexpVec3{vec: geom.V3(c[0], c[1], c[2])}, nil
	})

	// -----------------------------------------------------------------------
	// (sphere :center (vec3 0 0 0) :radius 5), (torus ...), etc.
	// -----------------------------------------------------------------------
	for fn, build := range shapeBuiltins {
		env.AddFunction(fn, func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
			s, err := build(b, parseArgs(args))
			var ge *geom.Error
			if errors.As(err, &ge) {
				return zygo.SexpNull, err
			}
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: %w", fn, err)
			}
			return &sexpShape{shape: s}, nil
		})
	}
}

// refOr returns the :ref argument, or a direction perpendicular to axis
// when it is absent. A zero axis yields a zero ref so that the
// constructor reports the axis.
func (b *builder) refOr(pa kwArgs, axis geom.Vector3) (geom.Vector3, error) {
	if pa.has("ref") {
		return pa.vec("ref")
	}
	d, err := axis.Direction(b.tol)
	if err != nil {
		return geom.Vector3{}, nil
	}
	return d.Perpendicular().Vector(), nil
}

// (circle :center c :normal n :radius r)
func buildCircle(b *builder, pa kwArgs) (shape.Shape, error) {
	center, err := pa.pointOr("center", geom.Origin)
	if err != nil {
		return nil, err
	}
	normal, err := pa.vecOr("normal", geom.UnitZ.Vector())
	if err != nil {
		return nil, err
	}
	r, err := pa.num("radius")
	if err != nil {
		return nil, err
	}
	return shape.NewCircle(center, normal, r, b.tol)
}

// (arc :center c :normal n :ref d :radius r :start 0 :end 90)
func buildArc(b *builder, pa kwArgs) (shape.Shape, error) {
	center, err := pa.pointOr("center", geom.Origin)
	if err != nil {
		return nil, err
	}
	normal, err := pa.vecOr("normal", geom.UnitZ.Vector())
	if err != nil {
		return nil, err
	}
	ref, err := b.refOr(pa, normal)
	if err != nil {
		return nil, err
	}
	r, err := pa.num("radius")
	if err != nil {
		return nil, err
	}
	start, err := pa.numOr("start", 0)
	if err != nil {
		return nil, err
	}
	end, err := pa.num("end")
	if err != nil {
		return nil, err
	}
	return shape.NewArc(center, normal, ref, r, mgl64.DegToRad(start), mgl64.DegToRad(end), b.tol)
}

// (ellipse :center c :normal n :major-dir d :major 5 :minor 3)
func buildEllipse(b *builder, pa kwArgs) (shape.Shape, error) {
	center, err := pa.pointOr("center", geom.Origin)
	if err != nil {
		return nil, err
	}
	normal, err := pa.vecOr("normal", geom.UnitZ.Vector())
	if err != nil {
		return nil, err
	}
	var dir geom.Vector3
	if pa.has("major-dir") {
		dir, err = pa.vec("major-dir")
	} else {
		dir, err = b.refOr(pa, normal)
	}
	if err != nil {
		return nil, err
	}
	major, err := pa.num("major")
	if err != nil {
		return nil, err
	}
	minor, err := pa.num("minor")
	if err != nil {
		return nil, err
	}
	return shape.NewEllipse3(center, normal, dir, major, minor, b.tol)
}

// (sphere :center c :radius r [:axis a :ref d])
func buildSphere(b *builder, pa kwArgs) (shape.Shape, error) {
	center, err := pa.pointOr("center", geom.Origin)
	if err != nil {
		return nil, err
	}
	axis, err := pa.vecOr("axis", geom.UnitZ.Vector())
	if err != nil {
		return nil, err
	}
	ref, err := b.refOr(pa, axis)
	if err != nil {
		return nil, err
	}
	r, err := pa.num("radius")
	if err != nil {
		return nil, err
	}
	return shape.NewSphere(center, axis, ref, r, b.tol)
}

// (cone :origin o :axis a :radius r :angle 30)
func buildCone(b *builder, pa kwArgs) (shape.Shape, error) {
	origin, err := pa.pointOr("origin", geom.Origin)
	if err != nil {
		return nil, err
	}
	axis, err := pa.vecOr("axis", geom.UnitZ.Vector())
	if err != nil {
		return nil, err
	}
	ref, err := b.refOr(pa, axis)
	if err != nil {
		return nil, err
	}
	r, err := pa.num("radius")
	if err != nil {
		return nil, err
	}
	angle, err := pa.num("angle")
	if err != nil {
		return nil, err
	}
	return shape.NewCone(origin, axis, ref, r, mgl64.DegToRad(angle), b.tol)
}

// (torus :center c :axis a :major 5 :minor 2)
func buildTorus(b *builder, pa kwArgs) (shape.Shape, error) {
	center, err := pa.pointOr("center", geom.Origin)
	if err != nil {
		return nil, err
	}
	axis, err := pa.vecOr("axis", geom.UnitZ.Vector())
	if err != nil {
		return nil, err
	}
	ref, err := b.refOr(pa, axis)
	if err != nil {
		return nil, err
	}
	major, err := pa.num("major")
	if err != nil {
		return nil, err
	}
	minor, err := pa.num("minor")
	if err != nil {
		return nil, err
	}
	return shape.NewTorus(center, axis, ref, major, minor, b.tol)
}

// (ellipsoid :center c :axis a :ref d :radii (vec3 rx ry rz))
func buildEllipsoid(b *builder, pa kwArgs) (shape.Shape, error) {
	center, err := pa.pointOr("center", geom.Origin)
	if err != nil {
		return nil, err
	}
	axis, err := pa.vecOr("axis", geom.UnitZ.Vector())
	if err != nil {
		return nil, err
	}
	ref, err := b.refOr(pa, axis)
	if err != nil {
		return nil, err
	}
	radii, err := pa.vec("radii")
	if err != nil {
		return nil, err
	}
	return shape.NewEllipsoid(center, axis, ref, radii.X, radii.Y, radii.Z, b.tol)
}

// (bbox :min a :max b)
func buildBBox(b *builder, pa kwArgs) (shape.Shape, error) {
	lo, err := pa.vec("min")
	if err != nil {
		return nil, err
	}
	hi, err := pa.vec("max")
	if err != nil {
		return nil, err
	}
	return shape.NewBBox3(geom.PointFromVector(lo), geom.PointFromVector(hi))
}

// (segment a b)
func buildSegment(b *builder, pa kwArgs) (shape.Shape, error) {
	ps, err := points(pa, 2)
	if err != nil {
		return nil, err
	}
	return shape.NewSegment3(ps[0], ps[1], b.tol)
}

// (triangle a b c)
func buildTriangle(b *builder, pa kwArgs) (shape.Shape, error) {
	ps, err := points(pa, 3)
	if err != nil {
		return nil, err
	}
	return shape.NewTriangle(ps[0], ps[1], ps[2], b.tol)
}

// points reads exactly n positional vec3 arguments.
func points(pa kwArgs, n int) ([]geom.Point3, error) {
	if len(pa.positional) != n {
		return nil, fmt.Errorf("requires %d points, got %d", n, len(pa.positional))
	}
	ps := make([]geom.Point3, n)
	for i, a := range pa.positional {
		v, err := toVec3(a)
		if err != nil {
			return nil, fmt.Errorf("point %d: %w", i+1, err)
		}
		ps[i] = geom.PointFromVector(v)
	}
	return ps, nil
}
