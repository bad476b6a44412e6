package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/talgya/crowdsim/internal/space"
)

// Config holds the run parameters, loadable from a YAML file with flag
// overrides on top.
type Config struct {
	Seed   int64 `yaml:"seed"`
	Width  int   `yaml:"width"`
	Height int   `yaml:"height"`

	// Fill is the target fraction of cells populated at start, 0..1.
	Fill float64 `yaml:"fill"`
	// Restless is the probability a spawned walker moves every tick.
	Restless float64 `yaml:"restless"`

	Ticks int `yaml:"ticks"`
	// Cutoff is the density at which empty-cell sampling switches from
	// rejection to a linear scan.
	Cutoff float64 `yaml:"cutoff"`

	// DBPath is the SQLite run-log path; empty disables recording.
	DBPath string `yaml:"db_path"`
	// Listen is the observer address (e.g. ":8080"); empty disables it.
	Listen string `yaml:"listen"`
	// LogEvery is the tick interval between progress log lines.
	LogEvery int `yaml:"log_every"`
}

// DefaultConfig returns the baseline run parameters.
func DefaultConfig() Config {
	return Config{
		Seed:     42,
		Width:    40,
		Height:   30,
		Fill:     0.45,
		Restless: 0.3,
		Ticks:    500,
		Cutoff:   space.DefaultEmptyCutoff,
		DBPath:   "",
		Listen:   "",
		LogEvery: 50,
	}
}

// LoadConfig reads cfg from a YAML file over the defaults. An empty path
// returns the defaults unchanged.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("grid must be positive, got %dx%d", c.Width, c.Height)
	}
	if c.Fill < 0 || c.Fill > 1 {
		return fmt.Errorf("fill must be in 0..1, got %g", c.Fill)
	}
	if c.Restless < 0 || c.Restless > 1 {
		return fmt.Errorf("restless must be in 0..1, got %g", c.Restless)
	}
	if c.Ticks < 0 {
		return fmt.Errorf("ticks must be non-negative, got %d", c.Ticks)
	}
	if c.Cutoff < 0 || c.Cutoff > 1 {
		return fmt.Errorf("cutoff must be in 0..1, got %g", c.Cutoff)
	}
	return nil
}
