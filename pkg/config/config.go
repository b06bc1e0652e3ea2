// Package config loads and saves kerf's persistent settings.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/chazu/kerf/pkg/engine"
	"github.com/chazu/kerf/pkg/kernel/sdfx"
	"github.com/chazu/kerf/pkg/scalar"
)

// MaxEvalTimeout bounds eval_timeout.
const MaxEvalTimeout = time.Hour

// Config stores persistent settings.
type Config struct {
	Tolerance   ToleranceConfig `json:"tolerance"`
	MeshCells   int             `json:"mesh_cells"`   // marching cubes cells along the longest side
	EvalTimeout float64         `json:"eval_timeout"` // seconds
}

// ToleranceConfig is the JSON form of scalar.Tolerance.
type ToleranceConfig struct {
	Distance float64 `json:"distance"`
	Angle    float64 `json:"angle"` // radians
}

// Default returns the settings used when no config file exists.
func Default() *Config {
	tol := scalar.Default[float64]()
	return &Config{
		Tolerance:   ToleranceConfig{Distance: tol.Distance, Angle: tol.Angle},
		MeshCells:   sdfx.DefaultMeshCells,
		EvalTimeout: engine.EvalTimeout.Seconds(),
	}
}

// DefaultPath returns the platform config file path.
func DefaultPath() (string, error) {
	if dir := os.Getenv("APPDATA"); dir != "" {
		// Windows: %APPDATA%\kerf
		return filepath.Join(dir, "kerf", "config.json"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	// Linux/macOS: ~/.config/kerf
	return filepath.Join(home, ".config", "kerf", "config.json"), nil
}

// LoadConfig reads the config at path, or at DefaultPath when path is
// empty. A missing file yields Default. Fields absent from the file keep
// their defaults.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		var err error
		if path, err = DefaultPath(); err != nil {
			return nil, err
		}
	}

	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// SaveConfig writes cfg to path, or to DefaultPath when path is empty,
// creating the directory if needed.
func SaveConfig(path string, cfg *Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if path == "" {
		var err error
		if path, err = DefaultPath(); err != nil {
			return err
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks every setting.
func (c *Config) Validate() error {
	if err := c.Tol().Validate(); err != nil {
		return err
	}
	if c.MeshCells < 0 {
		return fmt.Errorf("mesh_cells must not be negative, got %d", c.MeshCells)
	}
	if !scalar.IsFinite(c.EvalTimeout) || c.EvalTimeout < 0 {
		return fmt.Errorf("eval_timeout must be a non-negative number of seconds, got %v", c.EvalTimeout)
	}
	if c.EvalTimeout > MaxEvalTimeout.Seconds() {
		return fmt.Errorf("eval_timeout must be at most %v seconds, got %v", MaxEvalTimeout.Seconds(), c.EvalTimeout)
	}
	return nil
}

// Tol returns the configured tolerance.
func (c *Config) Tol() scalar.Tolerance[float64] {
	return scalar.Tolerance[float64]{Distance: c.Tolerance.Distance, Angle: c.Tolerance.Angle}
}

// Timeout returns the evaluation timeout. Zero selects the engine default.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.EvalTimeout * float64(time.Second))
}
