package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/golang/geo/s1"

	"github.com/chazu/meshkit/pkg/predicates"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	if cfg.CreaseAngle() != 60*s1.Degree {
		t.Errorf("CreaseAngle() = %v, want 60 degrees", cfg.CreaseAngle())
	}
	k, err := cfg.PredicateKernel()
	if err != nil || k.Mode() != predicates.Inexact {
		t.Errorf("PredicateKernel() = (%v, %v), want inexact", k, err)
	}
}

func TestLoadOverlaysFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meshkit.yaml")
	src := `predicates:
  mode: exact
script:
  timeout: 250ms
`
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Predicates.Mode != "exact" || cfg.Script.Timeout != 250*time.Millisecond {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.Features.CreaseAngleDeg != 60 || cfg.Logging.Level != "info" {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("features:\n  crease_angle_deg: 400\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil || !strings.Contains(err.Error(), "crease_angle_deg") {
		t.Errorf("Load(out of range angle) err = %v", err)
	}
	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Load of a missing explicit path succeeded")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		want   string
	}{
		{"mode", func(c *Config) { c.Predicates.Mode = "fuzzy" }, "unknown mode"},
		{"negative angle", func(c *Config) { c.Features.CreaseAngleDeg = -1 }, "crease_angle_deg"},
		{"timeout", func(c *Config) { c.Script.Timeout = 0 }, "script.timeout"},
		{"level", func(c *Config) { c.Logging.Level = "chatty" }, "logger"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Validate() = %v, want mention of %q", err, tt.want)
			}
		})
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "meshkit.yaml")
	cfg := Default()
	cfg.Predicates.Mode = "exact"
	cfg.Script.Timeout = 2 * time.Second
	if err := cfg.SaveTo(path); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if *got != *cfg {
		t.Errorf("Load(SaveTo(cfg)) = %+v, want %+v", got, cfg)
	}
}
