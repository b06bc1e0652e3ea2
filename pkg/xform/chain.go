package xform

import (
	"fmt"

	"github.com/chazu/kerf/pkg/geom"
)

// Chain accumulates transform steps and composes them into one Affine.
// Steps apply in the order they are added, so the conventional
//
//	NewChain(tol).Scale(c, 2).Rotate(o, axis, θ).Translate(v)
//
// scales first, then rotates, then translates. The first failing step is
// kept and every later call is a no-op.
type Chain struct {
	tol   geom.Tol
	steps []step
	err   error
}

type step struct {
	name  string
	a     Affine
	point func(geom.Point3) (geom.Point3, error)
}

// NewChain starts an empty chain.
func NewChain(tol geom.Tol) *Chain {
	return &Chain{tol: tol}
}

func (c *Chain) add(name string, a Affine, err error, point func(geom.Point3) (geom.Point3, error)) *Chain {
	if c.err != nil {
		return c
	}
	if err != nil {
		c.err = fmt.Errorf("step %d (%s): %w", len(c.steps)+1, name, err)
		return c
	}
	c.steps = append(c.steps, step{name: name, a: a, point: point})
	return c
}

// Translate appends p ↦ p + v.
func (c *Chain) Translate(v geom.Vector3) *Chain {
	a, err := Translation(v)
	return c.add("translate", a, err, func(p geom.Point3) (geom.Point3, error) {
		return Translate(p, v)
	})
}

// Rotate appends a rotation by angle radians about the line through
// axisPoint along axis.
func (c *Chain) Rotate(axisPoint geom.Point3, axis geom.Vector3, angle float64) *Chain {
	a, err := Rotation(axisPoint, axis, angle, c.tol)
	return c.add("rotate", a, err, func(p geom.Point3) (geom.Point3, error) {
		return Rotate(p, axisPoint, axis, angle, c.tol)
	})
}

// Scale appends a uniform scale about center.
func (c *Chain) Scale(center geom.Point3, f float64) *Chain {
	return c.ScaleXYZ(center, f, f, f)
}

// ScaleXYZ appends a component-wise scale about center.
func (c *Chain) ScaleXYZ(center geom.Point3, fx, fy, fz float64) *Chain {
	a, err := Scaling(center, fx, fy, fz)
	return c.add("scale", a, err, func(p geom.Point3) (geom.Point3, error) {
		return Scale(p, center, fx, fy, fz)
	})
}

// Reflect appends a mirror across the plane through planePoint with
// normal planeNormal.
func (c *Chain) Reflect(planePoint geom.Point3, planeNormal geom.Vector3) *Chain {
	a, err := Reflection(planePoint, planeNormal, c.tol)
	return c.add("reflect", a, err, func(p geom.Point3) (geom.Point3, error) {
		return Reflect(p, planePoint, planeNormal, c.tol)
	})
}

// Then appends an already composed transform.
func (c *Chain) Then(a Affine) *Chain {
	return c.add("affine", a, nil, a.ApplyPoint)
}

// Len returns the number of recorded steps.
func (c *Chain) Len() int { return len(c.steps) }

// Err returns the first step failure, if any.
func (c *Chain) Err() error { return c.err }

// Affine returns the composition of every step.
func (c *Chain) Affine() (Affine, error) {
	if c.err != nil {
		return Affine{}, c.err
	}
	out := Identity()
	for _, s := range c.steps {
		out = out.Then(s.a)
	}
	return out, nil
}

// ApplyStepwise runs p through each step's elementary operation in turn
// without composing matrices. It is the reference the composed matrix is
// measured against.
func (c *Chain) ApplyStepwise(p geom.Point3) (geom.Point3, error) {
	if c.err != nil {
		return geom.Point3{}, c.err
	}
	for i, s := range c.steps {
		var err error
		if p, err = s.point(p); err != nil {
			return geom.Point3{}, fmt.Errorf("step %d (%s): %w", i+1, s.name, err)
		}
	}
	return p, nil
}

// Names lists the recorded steps, for diagnostics.
func (c *Chain) Names() []string {
	names := make([]string, len(c.steps))
	for i, s := range c.steps {
		names[i] = s.name
	}
	return names
}
