package scene

import (
	"context"
	"fmt"
	"runtime"

	"github.com/chazu/kerf/pkg/geom"
	"github.com/chazu/kerf/pkg/shape"
	"github.com/chazu/kerf/pkg/xform"
	"golang.org/x/sync/errgroup"
)

// Placed is one shape moved into world coordinates.
type Placed struct {
	Node   NodeID
	Name   string
	Shape  shape.Shape
	Affine xform.Affine // world map applied to the node's shape
	Root   string       // label of the root the shape was reached from
}

// Label returns the shape node's name, or its short ID when unnamed.
func (p Placed) Label() string {
	if p.Name != "" {
		return p.Name
	}
	return p.Node.Short()
}

// leaf is a shape reached during the walk, with the composed map of every
// transform on its path.
type leaf struct {
	node *Node
	a    xform.Affine
	root string
}

// Flatten walks the scene from its roots and returns every shape placed
// in world coordinates, in depth-first order. Transforms compose outer ∘
// inner; the composed map is applied once per shape. Shapes are mapped in
// parallel. The first failure is returned, naming the node.
func Flatten(ctx context.Context, s *Scene, tol geom.Tol) ([]Placed, error) {
	if s == nil {
		return nil, nil
	}

	var leaves []leaf
	for _, rootID := range s.Roots {
		root := s.Get(rootID)
		if root == nil {
			return nil, fmt.Errorf("scene: root %s does not exist", rootID.Short())
		}
		start := len(leaves)
		var err error
		leaves, err = walk(s, root, xform.Identity(), map[NodeID]bool{}, leaves)
		if err != nil {
			return nil, fmt.Errorf("scene: walking root %s: %w", root.Label(), err)
		}
		for i := start; i < len(leaves); i++ {
			leaves[i].root = root.Label()
		}
	}

	out := make([]Placed, len(leaves))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, l := range leaves {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			p, err := place(l, tol)
			if err != nil {
				return err
			}
			out[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// walk recursively collects leaves below n. path holds the nodes on the
// current branch so a cycle fails instead of recursing forever.
func walk(s *Scene, n *Node, a xform.Affine, path map[NodeID]bool, acc []leaf) ([]leaf, error) {
	if path[n.ID] {
		return nil, fmt.Errorf("cycle through node %s", n.Label())
	}
	path[n.ID] = true
	defer delete(path, n.ID)

	switch n.Kind {
	case NodeShape:
		return append(acc, leaf{node: n, a: a}), nil

	case NodeTransform:
		td, ok := n.Data.(TransformData)
		if !ok {
			return nil, fmt.Errorf("transform node %s has unexpected data type %T", n.Label(), n.Data)
		}
		// The node's own map runs first; the enclosing ones follow.
		a = td.Affine.Then(a)

	case NodeGroup:
	default:
		return nil, fmt.Errorf("unknown node kind: %v", n.Kind)
	}

	var err error
	for _, child := range s.Children(n) {
		if acc, err = walk(s, child, a, path, acc); err != nil {
			return nil, err
		}
	}
	return acc, nil
}

func place(l leaf, tol geom.Tol) (Placed, error) {
	d, ok := l.node.Data.(ShapeData)
	if !ok || d.Shape == nil {
		return Placed{}, fmt.Errorf("scene: shape node %s has no shape", l.node.Label())
	}
	sh := d.Shape
	if !l.a.IsIdentity(tol) {
		var err error
		if sh, err = shape.Transform(sh, l.a, tol); err != nil {
			return Placed{}, fmt.Errorf("scene: node %s: %w", l.node.Label(), err)
		}
	}
	return Placed{Node: l.node.ID, Name: l.node.Name, Shape: sh, Affine: l.a, Root: l.root}, nil
}

// Bounds returns the union of the bounds of every bounded placed shape.
// ok is false when none of them has finite bounds.
func Bounds(placed []Placed) (b shape.BBox3, ok bool) {
	for _, p := range placed {
		pb, bounded := shape.BoundsOf(p.Shape)
		if !bounded {
			continue
		}
		if !ok {
			b, ok = pb, true
			continue
		}
		b = b.Union(pb)
	}
	return b, ok
}
