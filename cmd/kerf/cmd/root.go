package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/chazu/kerf/pkg/config"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "kerf",
	Short: "Tolerance-aware geometric transforms for 3D shapes",
	Long: `kerf moves circles, arcs, ellipses, spheres, cones, tori and other
shapes through translations, rotations, scalings and reflections, and
builds scenes of them from Lisp scripts.

Examples:
  kerf eval examples/wheels.kerf            # List the placed shapes
  kerf mesh --json examples/wheels.kerf     # Tessellate closed shapes
  kerf apply 1,0,0 --xf "rotate(z, 90)"     # Map points through a chain
  kerf config --write                       # Save the default settings`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	log.SetFlags(0)
	log.SetPrefix("kerf: ")

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default is the platform config dir)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// loadConfig reads the settings named by --config.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	debugf("tolerance distance=%g angle=%g, mesh cells %d", cfg.Tolerance.Distance, cfg.Tolerance.Angle, cfg.MeshCells)
	return cfg, nil
}

func debugf(format string, v ...any) {
	if verbose {
		log.Printf(format, v...)
	}
}
