package engine

import (
	"fmt"

	"github.com/chazu/kerf/pkg/geom"
	"github.com/chazu/kerf/pkg/scene"
	"github.com/chazu/kerf/pkg/xfexpr"
	"github.com/chazu/kerf/pkg/xform"
	zygo "github.com/glycerine/zygomys/zygo"
	"github.com/go-gl/mathgl/mgl64"
)

// chainFn appends the operation described by pa to c.
type chainFn func(c *xform.Chain, pa kwArgs) error

// transformBuiltins maps a builtin name to the step it contributes.
var transformBuiltins = map[string]chainFn{
	"translate": chainTranslate,
	"rotate":    chainRotate,
	"scale":     chainScale,
	"reflect":   chainReflect,
}

func (b *builder) registerTransforms(env *zygo.Zlisp) {

	// -----------------------------------------------------------------------
	// (defshape "wheel" (torus :major 10 :minor 2))
	// -----------------------------------------------------------------------
	env.AddFunction("defshape", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("defshape requires a name and a shape expression")
		}
		shapeName, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("defshape: name: %w", err)
		}
		body, ok := args[1].(*sexpShape)
		if !ok {
			return zygo.SexpNull, fmt.Errorf("defshape: expected shape expression, got %T (%s)",
				args[1], args[1].SexpString(nil))
		}
		if err := b.claim(shapeName); err != nil {
			return zygo.SexpNull, fmt.Errorf("defshape: %w", err)
		}
		return b.addShape(scene.NewNodeID("shape/"+shapeName), shapeName, body.shape), nil
	})

	// -----------------------------------------------------------------------
	// (shape "wheel")
	// -----------------------------------------------------------------------
	env.AddFunction("shape", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("shape requires exactly one name argument")
		}
		shapeName, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("shape: %w", err)
		}
		n := b.scene.Lookup(shapeName)
		if n == nil {
			return zygo.SexpNull, fmt.Errorf("shape: undefined %q", shapeName)
		}
		return &sexpNodeRef{id: n.ID, name: shapeName}, nil
	})

	// -----------------------------------------------------------------------
	// (translate :by (vec3 0 0 5) child...), (rotate :axis :z :deg 90 child...)
	// -----------------------------------------------------------------------
	for fn, step := range transformBuiltins {
		env.AddFunction(fn, func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
			pa := parseArgs(args)
			c := xform.NewChain(b.tol)
			if err := step(c, pa); err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: %w", fn, err)
			}
			a, err := c.Affine()
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: %w", fn, err)
			}
			ref, err := b.addTransform(pa, scene.TransformData{Affine: a})
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: %w", fn, err)
			}
			return ref, nil
		})
	}

	// -----------------------------------------------------------------------
	// (xform "rotate(z, 90); translate((1, 0, 0))" child...)
	// -----------------------------------------------------------------------
	env.AddFunction("xform", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) == 0 {
			return zygo.SexpNull, fmt.Errorf("xform requires an expression string")
		}
		src, err := toString(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("xform: expression: %w", err)
		}
		chain, err := xfexpr.Compile(src, b.tol)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("xform: %w", err)
		}
		a, err := chain.Affine()
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("xform: %w", err)
		}
		pa.positional = pa.positional[1:]
		ref, err := b.addTransform(pa, scene.TransformData{Affine: a, Expr: src})
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("xform: %w", err)
		}
		return ref, nil
	})

	// -----------------------------------------------------------------------
	// (group "car" body (list wheel1 wheel2))
	// -----------------------------------------------------------------------
	env.AddFunction("group", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 1 {
			return zygo.SexpNull, fmt.Errorf("group requires a name argument")
		}
		groupName, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("group: name: %w", err)
		}
		if err := b.claim(groupName); err != nil {
			return zygo.SexpNull, fmt.Errorf("group: %w", err)
		}
		children, err := b.children(args[1:])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("group %q: %w", groupName, err)
		}

		id := scene.NewNodeID("group/" + groupName)
		b.scene.AddNode(&scene.Node{
			ID:       id,
			Kind:     scene.NodeGroup,
			Name:     groupName,
			Children: children,
			Data:     scene.GroupData{},
		})
		b.groups = append(b.groups, id)
		return &sexpNodeRef{id: id, name: groupName}, nil
	})
}

// claim fails when name is already bound to a node.
func (b *builder) claim(name string) error {
	if name == "" {
		return fmt.Errorf("name must not be empty")
	}
	if b.scene.Lookup(name) != nil {
		return fmt.Errorf("%q is already defined", name)
	}
	return nil
}

// children resolves child arguments, splicing lists and arrays in place.
func (b *builder) children(args []zygo.Sexp) ([]scene.NodeID, error) {
	var ids []scene.NodeID
	for i, a := range args {
		switch a.(type) {
		case *zygo.SexpPair, *zygo.SexpArray, *zygo.SexpSentinel:
			items, err := sexpListToSlice(a)
			if err != nil {
				return nil, fmt.Errorf("child %d: %w", i+1, err)
			}
			nested, err := b.children(items)
			if err != nil {
				return nil, err
			}
			ids = append(ids, nested...)
			continue
		}
		id, err := b.toChild(a)
		if err != nil {
			return nil, fmt.Errorf("child %d: %w", i+1, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// addTransform stores a transform node over the positional arguments of pa.
// An optional :name makes the node addressable.
func (b *builder) addTransform(pa kwArgs, data scene.TransformData) (*sexpNodeRef, error) {
	children, err := b.children(pa.positional)
	if err != nil {
		return nil, err
	}
	if len(children) == 0 {
		return nil, fmt.Errorf("requires at least one child")
	}

	var nodeName string
	id := b.next("transform")
	if v, ok := pa.kw["name"]; ok {
		if nodeName, err = toString(v); err != nil {
			return nil, fmt.Errorf("name: %w", err)
		}
		if err := b.claim(nodeName); err != nil {
			return nil, err
		}
		id = scene.NewNodeID("transform/" + nodeName)
	}

	b.scene.AddNode(&scene.Node{
		ID:       id,
		Kind:     scene.NodeTransform,
		Name:     nodeName,
		Children: children,
		Data:     data,
	})
	return &sexpNodeRef{id: id, name: nodeName}, nil
}

// (translate :by v child...)
func chainTranslate(c *xform.Chain, pa kwArgs) error {
	by, err := pa.vec("by")
	if err != nil {
		return err
	}
	c.Translate(by)
	return nil
}

// (rotate :axis :z :deg 90 :about p child...)
func chainRotate(c *xform.Chain, pa kwArgs) error {
	axis, err := pa.vecOr("axis", geom.UnitZ.Vector())
	if err != nil {
		return err
	}
	deg, err := pa.num("deg")
	if err != nil {
		return err
	}
	about, err := pa.pointOr("about", geom.Origin)
	if err != nil {
		return err
	}
	c.Rotate(about, axis, mgl64.DegToRad(deg))
	return nil
}

// (scale :by 2 :about p child...) or (scale :by (vec3 2 2 1) child...)
func chainScale(c *xform.Chain, pa kwArgs) error {
	about, err := pa.pointOr("about", geom.Origin)
	if err != nil {
		return err
	}
	v, ok := pa.kw["by"]
	if !ok {
		return fmt.Errorf("missing :by")
	}
	if f, err := toFloat64(v); err == nil {
		c.Scale(about, f)
		return nil
	}
	by, err := pa.vec("by")
	if err != nil {
		return err
	}
	c.ScaleXYZ(about, by.X, by.Y, by.Z)
	return nil
}

// (reflect :normal :x :at p child...)
func chainReflect(c *xform.Chain, pa kwArgs) error {
	normal, err := pa.vec("normal")
	if err != nil {
		return err
	}
	at, err := pa.pointOr("at", geom.Origin)
	if err != nil {
		return err
	}
	c.Reflect(at, normal)
	return nil
}
