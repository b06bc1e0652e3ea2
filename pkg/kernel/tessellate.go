package kernel

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"

	"github.com/chazu/kerf/pkg/scene"
	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/sync/errgroup"
)

// goldenAngle spreads successive hues around the colour wheel.
const goldenAngle = 137.50776405

// Color returns the display colour of the i-th placed shape. Colours are
// a function of position only, so a scene always renders the same way.
func Color(i int) string {
	hue := math.Mod(float64(i)*goldenAngle, 360)
	return colorful.Hsv(hue, 0.55, 0.9).Hex()
}

// Tessellate meshes every placed shape that encloses a volume, in the
// order given. Shapes that do not are returned in skipped. Meshes are
// named after their node and coloured by their index in placed.
func Tessellate(ctx context.Context, k Kernel, placed []scene.Placed) (meshes []*Mesh, skipped []scene.Placed, err error) {
	out := make([]*Mesh, len(placed))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, p := range placed {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			solid, err := Build(k, p.Shape)
			if errors.Is(err, ErrNotSolid) || errors.Is(err, ErrUnbounded) {
				return nil
			}
			if err != nil {
				return fmt.Errorf("tessellate: node %s: %w", p.Label(), err)
			}
			m, err := k.ToMesh(solid)
			if err != nil {
				return fmt.Errorf("tessellate: ToMesh failed for node %s: %w", p.Label(), err)
			}
			m.Name = p.Label()
			m.Color = Color(i)
			out[i] = m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	for i, m := range out {
		if m == nil {
			skipped = append(skipped, placed[i])
			continue
		}
		meshes = append(meshes, m)
	}
	return meshes, skipped, nil
}

// TessellateUnion merges the solids reached from each root into one mesh
// per root. Roots keep the order of their first shape in placed, and a
// root with no solid produces no mesh. Shapes that enclose no volume are
// returned in skipped.
func TessellateUnion(ctx context.Context, k Kernel, placed []scene.Placed) (meshes []*Mesh, skipped []scene.Placed, err error) {
	var roots [][]scene.Placed
	index := make(map[string]int)
	for _, p := range placed {
		i, ok := index[p.Root]
		if !ok {
			i = len(roots)
			index[p.Root] = i
			roots = append(roots, nil)
		}
		roots[i] = append(roots[i], p)
	}

	out := make([]*Mesh, len(roots))
	left := make([][]scene.Placed, len(roots))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, group := range roots {
		g.Go(func() error {
			var merged Solid
			for _, p := range group {
				if err := ctx.Err(); err != nil {
					return err
				}
				solid, err := Build(k, p.Shape)
				if errors.Is(err, ErrNotSolid) || errors.Is(err, ErrUnbounded) {
					left[i] = append(left[i], p)
					continue
				}
				if err != nil {
					return fmt.Errorf("tessellate: node %s: %w", p.Label(), err)
				}
				if merged == nil {
					merged = solid
				} else {
					merged = k.Union(merged, solid)
				}
			}
			if merged == nil {
				return nil
			}
			m, err := k.ToMesh(merged)
			if err != nil {
				return fmt.Errorf("tessellate: ToMesh failed for root %s: %w", group[0].Root, err)
			}
			m.Name = group[0].Root
			m.Color = Color(i)
			out[i] = m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	for i, m := range out {
		skipped = append(skipped, left[i]...)
		if m != nil {
			meshes = append(meshes, m)
		}
	}
	return meshes, skipped, nil
}
