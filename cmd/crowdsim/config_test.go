package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig(\"\"): %v", err)
	}
	def := DefaultConfig()
	if cfg != def {
		t.Fatalf("LoadConfig(\"\") = %+v, want defaults %+v", cfg, def)
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	data := []byte("seed: 7\nwidth: 12\nheight: 8\nfill: 0.25\nticks: 10\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Seed != 7 || cfg.Width != 12 || cfg.Height != 8 || cfg.Ticks != 10 {
		t.Fatalf("config = %+v, want file values over defaults", cfg)
	}
	// Untouched keys keep defaults.
	if cfg.Restless != DefaultConfig().Restless {
		t.Fatalf("restless = %g, want default", cfg.Restless)
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	cases := map[string]string{
		"zero grid":    "width: 0\nheight: 5\n",
		"bad fill":     "fill: 1.5\n",
		"bad restless": "restless: -0.1\n",
		"bad cutoff":   "cutoff: 2\n",
	}
	for name, body := range cases {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatalf("%s: write config: %v", name, err)
		}
		if _, err := LoadConfig(path); err == nil {
			t.Errorf("%s: invalid config accepted", name)
		}
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("missing config file accepted")
	}
}
