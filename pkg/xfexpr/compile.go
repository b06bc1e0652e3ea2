package xfexpr

import (
	"fmt"
	"math"

	"github.com/chazu/kerf/pkg/geom"
	"github.com/chazu/kerf/pkg/xform"
)

// Compile parses src and builds the chain it describes.
func Compile(src string, tol geom.Tol) (*xform.Chain, error) {
	e, err := Parse(src)
	if err != nil {
		return nil, err
	}
	return e.Chain(tol)
}

// Chain builds the transform chain for e. Each step is validated as it is
// added; the first failure is reported at its operation.
func (e *Expr) Chain(tol geom.Tol) (*xform.Chain, error) {
	c := xform.NewChain(tol)
	for _, op := range e.Ops {
		if err := op.add(c); err != nil {
			return nil, err
		}
		if err := c.Err(); err != nil {
			return nil, &Error{Pos: op.Pos, Op: op.Name, Err: err}
		}
	}
	return c, nil
}

// args binds an op's positional and named arguments to parameter names.
type args struct {
	op     *Op
	values map[string]*Value
}

func (o *Op) bind(params ...string) (args, error) {
	a := args{op: o, values: make(map[string]*Value, len(o.Args))}
	known := make(map[string]bool, len(params))
	for _, p := range params {
		known[p] = true
	}
	pos := 0
	for _, arg := range o.Args {
		name := arg.Key
		if name == "" {
			if pos >= len(params) {
				return args{}, o.fail(arg, "too many arguments")
			}
			name = params[pos]
			pos++
		} else if !known[name] {
			return args{}, o.fail(arg, fmt.Sprintf("unknown argument %q", name))
		}
		if _, dup := a.values[name]; dup {
			return args{}, o.fail(arg, fmt.Sprintf("argument %q given twice", name))
		}
		a.values[name] = arg.Value
	}
	return a, nil
}

func (o *Op) fail(arg *Arg, msg string) *Error {
	pos := o.Pos
	if arg != nil {
		pos = arg.Pos
	}
	return &Error{Pos: pos, Op: o.Name, Msg: msg}
}

func (a args) has(name string) bool { return a.values[name] != nil }

func (a args) errorf(name, format string, v ...any) *Error {
	pos := a.op.Pos
	if val := a.values[name]; val != nil {
		pos = val.Pos
	}
	return &Error{Pos: pos, Op: a.op.Name, Msg: name + ": " + fmt.Sprintf(format, v...)}
}

func (a args) number(name string) (float64, error) {
	v := a.values[name]
	if v == nil {
		return 0, a.errorf(name, "missing")
	}
	if v.Number == nil {
		return 0, a.errorf(name, "expected a number, got %s", v)
	}
	return *v.Number, nil
}

func (a args) vector(name string) (geom.Vector3, error) {
	v := a.values[name]
	if v == nil {
		return geom.Vector3{}, a.errorf(name, "missing")
	}
	if v.Ident != nil {
		switch *v.Ident {
		case "x":
			return geom.UnitX.Vector(), nil
		case "y":
			return geom.UnitY.Vector(), nil
		case "z":
			return geom.UnitZ.Vector(), nil
		}
		return geom.Vector3{}, a.errorf(name, "unknown axis %q, expected x, y or z", *v.Ident)
	}
	if len(v.Tuple) != 3 {
		return geom.Vector3{}, a.errorf(name, "expected (x, y, z), got %s", v)
	}
	return geom.V3(v.Tuple[0], v.Tuple[1], v.Tuple[2]), nil
}

// point reads an optional point, defaulting to the origin.
func (a args) point(name string) (geom.Point3, error) {
	if !a.has(name) {
		return geom.Origin, nil
	}
	v, err := a.vector(name)
	if err != nil {
		return geom.Point3{}, err
	}
	return geom.PointFromVector(v), nil
}

// add appends the op's step to c. Argument errors are returned directly;
// geometry failures land in c.Err.
func (o *Op) add(c *xform.Chain) error {
	switch o.Name {
	case "translate":
		a, err := o.bind("by")
		if err != nil {
			return err
		}
		v, err := a.vector("by")
		if err != nil {
			return err
		}
		c.Translate(v)

	case "rotate":
		a, err := o.bind("axis", "deg", "about")
		if err != nil {
			return err
		}
		axis, err := a.vector("axis")
		if err != nil {
			return err
		}
		deg, err := a.number("deg")
		if err != nil {
			return err
		}
		about, err := a.point("about")
		if err != nil {
			return err
		}
		c.Rotate(about, axis, deg*math.Pi/180)

	case "scale":
		a, err := o.bind("by", "about")
		if err != nil {
			return err
		}
		about, err := a.point("about")
		if err != nil {
			return err
		}
		if v := a.values["by"]; v != nil && v.Number != nil {
			c.Scale(about, *v.Number)
			break
		}
		f, err := a.vector("by")
		if err != nil {
			return err
		}
		c.ScaleXYZ(about, f.X, f.Y, f.Z)

	case "reflect":
		a, err := o.bind("normal", "at")
		if err != nil {
			return err
		}
		n, err := a.vector("normal")
		if err != nil {
			return err
		}
		at, err := a.point("at")
		if err != nil {
			return err
		}
		c.Reflect(at, n)

	default:
		return o.fail(nil, fmt.Sprintf("unknown operation %q, expected translate, rotate, scale or reflect", o.Name))
	}
	return nil
}
