// Package cliconfig loads the seqparse CLI's configuration, layering
// environment variables over a config file over defaults with viper,
// trimmed down to the handful of settings this CLI actually needs. No
// command-line flag is bound into this configuration.
package cliconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config is the seqparse CLI's full configuration.
type Config struct {
	Logging LoggingConfig `mapstructure:"logging"`
	Parse   ParseConfig   `mapstructure:"parse"`
}

// LoggingConfig controls the slog setup in package clog.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // text, json
	Output string `mapstructure:"output"` // stdout, stderr, or a file path
}

// ParseConfig controls the sequence driver's tunables and defaults for the
// parse command.
type ParseConfig struct {
	// MaxOccursBounds is the occurrence safety cap passed to
	// pstate.Tunables, independent of any one schema's declared bounds.
	MaxOccursBounds uint64 `mapstructure:"max_occurs_bounds"`

	// Concurrency is the maximum number of input files parsed at once when
	// the parse command is given more than one --input.
	Concurrency int `mapstructure:"concurrency"`
}

// Load reads configuration from SEQPARSE_* environment variables,
// configPath (if non-empty), and built-in defaults, in that order of
// decreasing precedence, mirroring dittofs's DITTOFS_ env-var convention.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
	v.SetDefault("logging.output", "stderr")
	v.SetDefault("parse.max_occurs_bounds", uint64(100000))
	v.SetDefault("parse.concurrency", 4)

	v.SetEnvPrefix("SEQPARSE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", configPath, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	return &cfg, nil
}

// DefaultConfigPath mirrors dittofs's XDG-based default config location.
func DefaultConfigPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "seqparse", "config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.yaml"
	}
	return filepath.Join(home, ".config", "seqparse", "config.yaml")
}
