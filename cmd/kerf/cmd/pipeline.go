package cmd

import (
	"context"
	"log"

	"github.com/chazu/kerf/pkg/config"
	"github.com/chazu/kerf/pkg/engine"
	"github.com/chazu/kerf/pkg/geom"
	"github.com/chazu/kerf/pkg/kernel"
	"github.com/chazu/kerf/pkg/kernel/sdfx"
	"github.com/chazu/kerf/pkg/scene"
	"github.com/chazu/kerf/pkg/shape"
)

// Pipeline runs a script through the engine, the scene flattener and,
// when asked, the mesh kernel.
type Pipeline struct {
	engine *engine.Engine
	kernel kernel.Kernel
	tol    geom.Tol
}

// MeshMode selects what Evaluate tessellates.
type MeshMode int

const (
	MeshNone  MeshMode = iota // list shapes only
	MeshEach                  // one mesh per closed shape
	MeshUnion                 // one merged mesh per root group
)

// ShapeData is one placed shape in JSON output.
type ShapeData struct {
	Name  string `json:"name"`
	Kind  string `json:"kind"`
	Shape string `json:"shape"`
}

// EvalErrorData is a JSON-serializable eval error.
type EvalErrorData struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
}

// Result is everything a run produced.
type Result struct {
	Shapes   []ShapeData     `json:"shapes"`
	Bounds   *shape.BBox3    `json:"-"`
	Meshes   []*kernel.Mesh  `json:"meshes,omitempty"`
	Skipped  []string        `json:"skipped,omitempty"`
	Errors   []EvalErrorData `json:"errors"`
	Warnings []EvalErrorData `json:"warnings"`
}

// NewPipeline creates a Pipeline from the given settings.
func NewPipeline(cfg *config.Config) *Pipeline {
	tol := cfg.Tol()
	return &Pipeline{
		engine: engine.NewEngine(engine.WithTolerance(tol), engine.WithTimeout(cfg.Timeout())),
		kernel: sdfx.New(cfg.MeshCells),
		tol:    tol,
	}
}

// Evaluate runs source and returns the placed shapes, tessellated as
// mode asks.
func (p *Pipeline) Evaluate(ctx context.Context, source string, mode MeshMode) Result {
	result := Result{
		Shapes:   []ShapeData{},
		Errors:   []EvalErrorData{},
		Warnings: []EvalErrorData{},
	}

	// Step 1: Evaluate the Lisp source into a scene.
	s, evalErrs, err := p.engine.Evaluate(source)
	if err != nil {
		// Fatal error (panic, timeout, etc.)
		debugf("evaluate fatal error: %v", err)
		result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
		return result
	}
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			result.Errors = append(result.Errors, EvalErrorData{
				Line:    e.Line,
				Col:     e.Col,
				Message: e.Message,
			})
		}
		return result
	}
	for _, f := range scene.Validate(s) {
		result.Warnings = append(result.Warnings, EvalErrorData{Message: f.Error()})
	}

	// Step 2: Flatten the scene into world-space shapes.
	placed, err := scene.Flatten(ctx, s, p.tol)
	if err != nil {
		result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
		return result
	}
	for _, pl := range placed {
		result.Shapes = append(result.Shapes, ShapeData{
			Name:  pl.Label(),
			Kind:  pl.Shape.Kind().String(),
			Shape: pl.Shape.String(),
		})
	}
	if b, ok := scene.Bounds(placed); ok {
		result.Bounds = &b
	}
	debugf("%d nodes, %d placed shapes", s.NodeCount(), len(placed))
	if mode == MeshNone {
		return result
	}

	// Step 3: Tessellate what encloses a volume.
	tessellate := kernel.Tessellate
	if mode == MeshUnion {
		tessellate = kernel.TessellateUnion
	}
	meshes, skipped, err := tessellate(ctx, p.kernel, placed)
	if err != nil {
		log.Printf("tessellate error: %v", err)
		result.Errors = append(result.Errors, EvalErrorData{Message: "tessellation failed: " + err.Error()})
		return result
	}
	result.Meshes = meshes
	for _, sk := range skipped {
		result.Skipped = append(result.Skipped, sk.Label())
	}
	return result
}
