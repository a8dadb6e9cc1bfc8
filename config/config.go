// Package config provides loading and parsing of objtrack.yaml
// configuration files. A configuration file describes how an application
// wants its identity registries constructed: naming, sizing, logging,
// and metrics.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"go.opentelemetry.io/otel"
	"gopkg.in/yaml.v3"

	"github.com/objtrack/objtrack"
)

// Config represents an objtrack.yaml configuration file.
type Config struct {
	// Name is the registry name used in log fields and metric attributes.
	Name string `yaml:"name,omitempty"`

	// InitialCapacity pre-sizes the registry maps for the expected
	// number of tracked objects.
	InitialCapacity int `yaml:"initial_capacity,omitempty"`

	// Logging configures structured logging for the registry.
	Logging *LoggingConfig `yaml:"logging,omitempty"`

	// Metrics configures OpenTelemetry metrics for the registry.
	Metrics *MetricsConfig `yaml:"metrics,omitempty"`
}

// LoggingConfig configures the registry's structured logging.
type LoggingConfig struct {
	// Enabled turns registry logging on.
	Enabled bool `yaml:"enabled"`

	// Level is the minimum log level: "debug", "info", "warn", or "error".
	// Default: "info"
	Level string `yaml:"level,omitempty"`
}

// GetLevel parses the configured log level.
// Returns the default level if not set or invalid.
func (l *LoggingConfig) GetLevel() slog.Level {
	if l == nil || l.Level == "" {
		return slog.LevelInfo
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// MetricsConfig configures OpenTelemetry metrics for the registry.
type MetricsConfig struct {
	// Enabled records registry metrics against the global meter provider.
	Enabled bool `yaml:"enabled"`
}

// Load reads and parses an objtrack.yaml file from the given path.
// If the path is a directory, it looks for objtrack.yaml or objtrack.yml
// in that directory.
func Load(path string) (*Config, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat path: %w", err)
	}

	var configPath string
	if info.IsDir() {
		// Try objtrack.yaml first, then objtrack.yml
		yamlPath := filepath.Join(path, "objtrack.yaml")
		if _, err := os.Stat(yamlPath); err == nil {
			configPath = yamlPath
		} else {
			ymlPath := filepath.Join(path, "objtrack.yml")
			if _, err := os.Stat(ymlPath); err == nil {
				configPath = ymlPath
			} else {
				return nil, fmt.Errorf("no objtrack.yaml or objtrack.yml found in %s", path)
			}
		}
	} else {
		configPath = path
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &config, nil
}

// LoadFromDir searches for objtrack.yaml starting from the given
// directory and walking up to parent directories until found or root is
// reached.
func LoadFromDir(dir string) (*Config, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}

	for {
		config, err := Load(absDir)
		if err == nil {
			return config, nil
		}

		// Move to parent directory
		parent := filepath.Dir(absDir)
		if parent == absDir {
			// Reached root
			return nil, fmt.Errorf("no objtrack.yaml found in %s or parent directories", dir)
		}
		absDir = parent
	}
}

// Options converts the configuration into registry construction options.
func (c *Config) Options() []objtrack.Option {
	var opts []objtrack.Option

	if c.Name != "" {
		opts = append(opts, objtrack.WithName(c.Name))
	}
	if c.InitialCapacity > 0 {
		opts = append(opts, objtrack.WithInitialCapacity(c.InitialCapacity))
	}
	if c.Logging != nil && c.Logging.Enabled {
		handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: c.Logging.GetLevel(),
		})
		opts = append(opts, objtrack.WithLogger(slog.New(handler)))
	}
	if c.Metrics != nil && c.Metrics.Enabled {
		opts = append(opts, objtrack.WithMeterProvider(otel.GetMeterProvider()))
	}

	return opts
}
