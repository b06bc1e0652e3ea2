package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/chazu/kerf/pkg/geom"
	"github.com/chazu/kerf/pkg/xfexpr"
	"github.com/spf13/cobra"
)

var (
	xfExpr   string
	stepwise bool
)

var applyCmd = &cobra.Command{
	Use:   "apply <x,y,z>... --xf <expr>",
	Short: "Map points through a transform expression",
	Long: `Compile a transform expression into a single matrix and print where it
sends each point. Steps apply left to right.

Examples:
  kerf apply 1,0,0 --xf "rotate(z, 90)"
  kerf apply 0,0,0 1,1,1 --xf "scale(2, about=(1, 1, 1)); translate((0, 0, 5))"
  kerf apply 1,2,3 --xf "reflect(x, at=(4, 0, 0))" --stepwise`,
	Args: cobra.MinimumNArgs(1),
	RunE: runApply,
}

func init() {
	rootCmd.AddCommand(applyCmd)

	applyCmd.Flags().StringVar(&xfExpr, "xf", "", "transform expression")
	applyCmd.Flags().BoolVar(&stepwise, "stepwise", false,
		"also apply each step separately and print the difference")
	_ = applyCmd.MarkFlagRequired("xf")
}

func runApply(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	tol := cfg.Tol()

	points := make([]geom.Point3, len(args))
	for i, a := range args {
		if points[i], err = parsePoint(a); err != nil {
			return err
		}
	}

	chain, err := xfexpr.Compile(xfExpr, tol)
	if err != nil {
		return err
	}
	a, err := chain.Affine()
	if err != nil {
		return err
	}
	debugf("steps: %s", strings.Join(chain.Names(), ", "))
	debugf("matrix: %s", a)

	for _, p := range points {
		q, err := a.ApplyPoint(p)
		if err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
		if !stepwise {
			fmt.Printf("%s -> %s\n", p, q)
			continue
		}
		r, err := chain.ApplyStepwise(p)
		if err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
		fmt.Printf("%s -> %s (stepwise %s, off by %g)\n", p, q, r, q.DistanceTo(r))
	}
	return nil
}

// parsePoint reads "x,y,z".
func parsePoint(s string) (geom.Point3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return geom.Point3{}, fmt.Errorf("invalid point %q, expected x,y,z", s)
	}
	var c [3]float64
	for i, part := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return geom.Point3{}, fmt.Errorf("invalid point %q: %w", s, err)
		}
		c[i] = f
	}
	return geom.P3(c[0], c[1], c[2]), nil
}
