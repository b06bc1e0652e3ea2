package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	jsonOutput bool
	unionMesh  bool
)

var evalCmd = &cobra.Command{
	Use:   "eval <script>",
	Short: "Evaluate a script and list the placed shapes",
	Long: `Evaluate a kerf script, flatten its scene and print every shape in
world coordinates, one per line, followed by the scene bounds.

Examples:
  kerf eval examples/wheels.kerf
  kerf eval --json examples/mirror.kerf`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context(), args[0], MeshNone)
	},
}

var meshCmd = &cobra.Command{
	Use:   "mesh <script>",
	Short: "Tessellate the closed shapes of a script",
	Long: `Evaluate a kerf script and mesh every placed shape that encloses a
volume. Curves, flat shapes and cones are listed as skipped. With
--union the solids of each root group are merged into a single mesh
named after the group.

Examples:
  kerf mesh examples/wheels.kerf
  kerf mesh --union examples/wheels.kerf
  kerf mesh --json examples/wheels.kerf > wheels.json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mode := MeshEach
		if unionMesh {
			mode = MeshUnion
		}
		return run(cmd.Context(), args[0], mode)
	},
}

func init() {
	rootCmd.AddCommand(evalCmd, meshCmd)

	evalCmd.Flags().BoolVar(&jsonOutput, "json", false, "print the result as JSON")
	meshCmd.Flags().BoolVar(&jsonOutput, "json", false, "print the result, meshes included, as JSON")
	meshCmd.Flags().BoolVar(&unionMesh, "union", false, "merge the solids of each root group into one mesh")
}

func run(ctx context.Context, filename string, mode MeshMode) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	source, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read script: %w", err)
	}
	debugf("evaluating %s", filename)

	result := NewPipeline(cfg).Evaluate(ctx, string(source), mode)
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return err
		}
	} else {
		printResult(result, mode)
	}
	if len(result.Errors) > 0 {
		if !jsonOutput {
			for _, e := range result.Errors {
				if e.Line > 0 {
					fmt.Fprintf(os.Stderr, "%s:%d: %s\n", filename, e.Line, e.Message)
				} else {
					fmt.Fprintf(os.Stderr, "%s: %s\n", filename, e.Message)
				}
			}
		}
		return errors.New("evaluation failed")
	}
	return nil
}

func printResult(r Result, mode MeshMode) {
	for _, w := range r.Warnings {
		fmt.Fprintln(os.Stderr, w.Message)
	}
	if len(r.Errors) > 0 {
		return
	}

	if mode == MeshNone {
		for _, s := range r.Shapes {
			fmt.Printf("%-16s %s\n", s.Name, s.Shape)
		}
		if r.Bounds != nil {
			fmt.Printf("\nBounds: %s\n", r.Bounds)
		}
		fmt.Printf("Shapes: %d\n", len(r.Shapes))
		return
	}

	total := 0
	for _, m := range r.Meshes {
		fmt.Printf("%-16s %s %8d triangles\n", m.Name, m.Color, m.TriangleCount())
		total += m.TriangleCount()
	}
	for _, name := range r.Skipped {
		fmt.Printf("%-16s skipped\n", name)
	}
	fmt.Printf("\nMeshes: %d (%d triangles), skipped: %d\n", len(r.Meshes), total, len(r.Skipped))
}
