// Package config loads meshkit settings from YAML.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang/geo/s1"

	"github.com/chazu/meshkit/internal/logger"
	"github.com/chazu/meshkit/pkg/predicates"
)

// Config holds all meshkit settings.
type Config struct {
	Predicates PredicatesConfig `yaml:"predicates"`
	Features   FeaturesConfig   `yaml:"features"`
	Script     ScriptConfig     `yaml:"script"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// PredicatesConfig selects the predicate arithmetic.
type PredicatesConfig struct {
	Mode string `yaml:"mode"` // exact or inexact
}

// FeaturesConfig holds feature detection settings.
type FeaturesConfig struct {
	CreaseAngleDeg float64 `yaml:"crease_angle_deg"`
}

// ScriptConfig holds script engine settings.
type ScriptConfig struct {
	Timeout time.Duration `yaml:"timeout"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with the default values.
func Default() *Config {
	return &Config{
		Predicates: PredicatesConfig{Mode: "inexact"},
		Features:   FeaturesConfig{CreaseAngleDeg: 60},
		Script:     ScriptConfig{Timeout: 5 * time.Second},
		Logging:    LoggingConfig{Level: "info"},
	}
}

// Validate reports every invalid setting.
func (c *Config) Validate() error {
	var errs []error
	if _, err := predicates.ParseMode(c.Predicates.Mode); err != nil {
		errs = append(errs, err)
	}
	if a := c.Features.CreaseAngleDeg; a < 0 || a > 180 {
		errs = append(errs, fmt.Errorf("features.crease_angle_deg %g outside [0, 180]", a))
	}
	if c.Script.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("script.timeout %s must be positive", c.Script.Timeout))
	}
	if _, err := logger.ParseLevel(c.Logging.Level); err != nil {
		errs = append(errs, err)
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// PredicateKernel returns the predicate kernel for the configured mode.
func (c *Config) PredicateKernel() (*predicates.Kernel, error) {
	mode, err := predicates.ParseMode(c.Predicates.Mode)
	if err != nil {
		return nil, err
	}
	return predicates.New(mode), nil
}

// CreaseAngle returns the crease threshold as an angle.
func (c *Config) CreaseAngle() s1.Angle {
	return s1.Angle(c.Features.CreaseAngleDeg) * s1.Degree
}
