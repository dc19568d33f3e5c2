// Package config loads hui's optional YAML configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// DefaultTickInterval is how often the picker wakes up to re-rank when the
// query changed. Matches the original 250ms feel.
const DefaultTickInterval = 250 * time.Millisecond

// minTickInterval guards against configs that would spin the control loop.
const minTickInterval = 50 * time.Millisecond

// Config holds the optional settings from ~/.config/hui/config.yaml. Every
// key may be omitted; the zero value plus defaults is a valid configuration.
type Config struct {
	// Shell is the fallback shell selector when neither the -shell flag nor
	// HUI_TERM is set. Validated by shell.ParseKind at startup, not here.
	Shell string `yaml:"shell"`

	// TickMs is the re-rank tick interval in milliseconds.
	TickMs int `yaml:"tick_ms"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
}

// Load reads the config file at path. A missing file is not an error and
// yields the zero config; malformed YAML is a fatal configuration error.
func Load(path string) (Config, error) {
	var cfg Config

	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	return cfg, nil
}

// TickInterval returns the configured re-rank interval, defaulted and
// clamped to a sane floor.
func (c Config) TickInterval() time.Duration {
	if c.TickMs <= 0 {
		return DefaultTickInterval
	}
	interval := time.Duration(c.TickMs) * time.Millisecond
	if interval < minTickInterval {
		return minTickInterval
	}
	return interval
}

// ZapLevel maps the configured log level to a zap level, defaulting to
// info. Unknown values fall back to info rather than failing startup.
func (c Config) ZapLevel() zap.AtomicLevel {
	var level zapcore.Level
	switch c.LogLevel {
	case "debug":
		level = zap.DebugLevel
	case "warn":
		level = zap.WarnLevel
	case "error":
		level = zap.ErrorLevel
	default:
		level = zap.InfoLevel
	}
	return zap.NewAtomicLevelAt(level)
}
