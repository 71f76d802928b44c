package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"termagent/internal/status"
)

// Config is the on-disk configuration.
type Config struct {
	Agent        string        `yaml:"agent"`
	Prompt       string        `yaml:"prompt"`
	ExitKeywords []string      `yaml:"exit_keywords"`
	Banner       bool          `yaml:"banner"`
	Pace         float64       `yaml:"pace"`
	Spinner      SpinnerConfig `yaml:"spinner"`
	Status       StatusConfig  `yaml:"status"`
	Log          LogConfig     `yaml:"log"`
}

type SpinnerConfig struct {
	Style    string        `yaml:"style"`
	Interval time.Duration `yaml:"interval"`
}

type StatusConfig struct {
	ClearWidth int               `yaml:"clear_width"`
	Glyphs     map[string]string `yaml:"glyphs,omitempty"`
}

type LogConfig struct {
	File  string `yaml:"file"`
	Level string `yaml:"level"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Agent:        "task",
		Prompt:       "You> ",
		ExitKeywords: []string{"exit", "quit", "q"},
		Banner:       true,
		Pace:         1.0,
		Spinner: SpinnerConfig{
			Style:    status.DefaultSpinnerStyle,
			Interval: 100 * time.Millisecond,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads the configuration at path on top of the defaults. A missing
// file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Expand environment variables in the log path
	cfg.Log.File = expandEnvVars(cfg.Log.File)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Validate checks values that would otherwise fail later at startup.
func (c *Config) Validate() error {
	var errs []error
	if c.Pace < 0 {
		errs = append(errs, fmt.Errorf("pace must not be negative, got %v", c.Pace))
	}
	if c.Spinner.Interval < 0 {
		errs = append(errs, fmt.Errorf("spinner.interval must not be negative, got %s", c.Spinner.Interval))
	}
	if _, err := status.SpinnerStyle(c.Spinner.Style); err != nil {
		errs = append(errs, fmt.Errorf("spinner.style: %w", err))
	}
	if c.Status.ClearWidth < 0 {
		errs = append(errs, fmt.Errorf("status.clear_width must not be negative, got %d", c.Status.ClearWidth))
	}
	if _, err := c.Glyphs(); err != nil {
		errs = append(errs, fmt.Errorf("status.glyphs: %w", err))
	}
	if c.Log.Level != "" {
		if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
			errs = append(errs, fmt.Errorf("log.level: %w", err))
		}
	}
	return errors.Join(errs...)
}

// Glyphs returns the default glyph table with the configured overrides.
func (c *Config) Glyphs() (status.Glyphs, error) {
	return status.DefaultGlyphs().WithOverrides(c.Status.Glyphs)
}

// expandEnvVars expands environment variables in the format ${VAR_NAME}
func expandEnvVars(s string) string {
	if !strings.Contains(s, "${") {
		return s
	}

	return os.Expand(s, func(key string) string {
		return os.Getenv(key)
	})
}
