// SPDX-License-Identifier: MIT

// Package config loads the dcsolve configuration file.
//
// Config file locations (priority order):
//  1. $DCMESH_CONFIG
//  2. ./dcmesh.yaml
//  3. $XDG_CONFIG_HOME/dcmesh/config.yaml
//  4. ~/.config/dcmesh/config.yaml
//
// Missing fields take the circuit defaults.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/katalvlaran/dcmesh/circuit"
	"gopkg.in/yaml.v3"
)

// Log formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// DefaultStorePath is the SQLite file used when none is configured.
const DefaultStorePath = "./dcmesh.db"

// Config is the on-disk configuration.
type Config struct {
	Solver SolverConfig `yaml:"solver"`
	Log    LogConfig    `yaml:"log"`
	Store  StoreConfig  `yaml:"store"`
}

// SolverConfig mirrors circuit.Options. A nil field is unset and takes the
// circuit default, so an explicit zero survives loading.
type SolverConfig struct {
	Tolerance     *float64 `yaml:"tolerance,omitempty"`
	MaxIterations *int     `yaml:"max_iterations,omitempty"`
	PivotEpsilon  *float64 `yaml:"pivot_epsilon,omitempty"`
	StrictPivot   bool     `yaml:"strict_pivot"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
}

// StoreConfig locates the circuit database.
type StoreConfig struct {
	Path string `yaml:"path"`
}

// Load finds and loads the config file, or returns defaults if none found
func Load() (*Config, string, error) {
	path := FindConfigPath()
	if path == "" {
		return DefaultConfig(), "", nil
	}

	return LoadFromPath(path)
}

// LoadFromPath loads config from a specific path
func LoadFromPath(path string) (*Config, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, path, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, path, err
	}

	return &cfg, path, nil
}

// Save writes config to the specified path
func (c *Config) Save(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config dir: %w", err)
		}
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0o644)
}

// DefaultConfig returns the circuit defaults, info-level text logs and
// DefaultStorePath.
func DefaultConfig() *Config {
	return &Config{
		Solver: SolverConfig{
			Tolerance:     ptr(circuit.DefaultTolerance),
			MaxIterations: ptr(circuit.DefaultMaxIterations),
			PivotEpsilon:  ptr(circuit.DefaultPivotEpsilon),
		},
		Log:   LogConfig{Level: "info", Format: FormatText},
		Store: StoreConfig{Path: DefaultStorePath},
	}
}

// applyDefaults fills in missing values with defaults
func (c *Config) applyDefaults() {
	d := DefaultConfig()
	if c.Solver.Tolerance == nil {
		c.Solver.Tolerance = d.Solver.Tolerance
	}
	if c.Solver.MaxIterations == nil {
		c.Solver.MaxIterations = d.Solver.MaxIterations
	}
	if c.Solver.PivotEpsilon == nil {
		c.Solver.PivotEpsilon = d.Solver.PivotEpsilon
	}
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
	if c.Log.Format == "" {
		c.Log.Format = d.Log.Format
	}
	if c.Store.Path == "" {
		c.Store.Path = d.Store.Path
	}
}

// Validate rejects values the circuit options would panic on, and unknown
// log settings.
func (c *Config) Validate() error {
	s := c.Solver
	if s.Tolerance != nil && badFloat(*s.Tolerance) {
		return fmt.Errorf("invalid solver.tolerance %g", *s.Tolerance)
	}
	if s.MaxIterations != nil && *s.MaxIterations < 0 {
		return fmt.Errorf("invalid solver.max_iterations %d", *s.MaxIterations)
	}
	if s.PivotEpsilon != nil && badFloat(*s.PivotEpsilon) {
		return fmt.Errorf("invalid solver.pivot_epsilon %g", *s.PivotEpsilon)
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		return err
	}
	switch strings.ToLower(c.Log.Format) {
	case FormatText, FormatJSON:
	default:
		return fmt.Errorf("invalid log.format %q", c.Log.Format)
	}

	return nil
}

// Options returns the set solver fields as circuit options.
func (c *Config) Options() []circuit.Option {
	var opts []circuit.Option
	if c.Solver.Tolerance != nil {
		opts = append(opts, circuit.WithTolerance(*c.Solver.Tolerance))
	}
	if c.Solver.MaxIterations != nil {
		opts = append(opts, circuit.WithMaxIterations(*c.Solver.MaxIterations))
	}
	if c.Solver.PivotEpsilon != nil {
		opts = append(opts, circuit.WithPivotEpsilon(*c.Solver.PivotEpsilon))
	}
	if c.Solver.StrictPivot {
		opts = append(opts, circuit.WithStrictPivot())
	}

	return opts
}

// Logger builds a slog logger writing to w at the configured level and
// format. Invalid settings fall back to info and text.
func (c *Config) Logger(w io.Writer) *slog.Logger {
	level, err := parseLevel(c.Log.Level)
	if err != nil {
		level = slog.LevelInfo
	}
	ho := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(c.Log.Format, FormatJSON) {
		return slog.New(slog.NewJSONHandler(w, ho))
	}

	return slog.New(slog.NewTextHandler(w, ho))
}

func parseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return l, fmt.Errorf("invalid log.level %q: %w", s, err)
	}

	return l, nil
}

func badFloat(v float64) bool {
	return math.IsNaN(v) || math.IsInf(v, 0) || v < 0
}

func ptr[T any](v T) *T { return &v }
