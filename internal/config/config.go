// Package config holds the service configuration loaded from YAML.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Config holds all settings of the cheryl binary.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Storage   StorageConfig   `yaml:"storage"`
	Generator GeneratorConfig `yaml:"generator"`
	Log       LogConfig       `yaml:"log"`
}

// ServerConfig configures the HTTP JSON API.
type ServerConfig struct {
	Addr              string        `yaml:"addr"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout"`
}

// StorageConfig selects where saved puzzles live.
type StorageConfig struct {
	// Backend is "fs" (one JSON file per puzzle) or "sqlite".
	Backend string `yaml:"backend"`
	// Path is the directory for fs and the database file for sqlite.
	Path string `yaml:"path"`
}

// GeneratorConfig bounds the puzzle search.
type GeneratorConfig struct {
	Tries          int `yaml:"tries"`
	Workers        int `yaml:"workers"`
	MaxSampleTries int `yaml:"max_sample_tries"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

const (
	BackendFS     = "fs"
	BackendSQLite = "sqlite"
)

// ValidBackends lists the supported storage backends.
var ValidBackends = []string{BackendFS, BackendSQLite}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:              ":8080",
			ReadHeaderTimeout: 5 * time.Second,
		},
		Storage: StorageConfig{
			Backend: BackendFS,
			Path:    "./data",
		},
		Generator: GeneratorConfig{
			Tries:          100,
			Workers:        4,
			MaxSampleTries: 100,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults. Environment overrides apply in both cases.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("CHERYL_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("CHERYL_STORAGE_BACKEND"); v != "" {
		c.Storage.Backend = strings.ToLower(v)
	}
	if v := os.Getenv("CHERYL_STORAGE_PATH"); v != "" {
		c.Storage.Path = v
	}
	if v := os.Getenv("CHERYL_LOG_LEVEL"); v != "" {
		c.Log.Level = strings.ToLower(v)
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if !slices.Contains(ValidBackends, c.Storage.Backend) {
		return fmt.Errorf("invalid storage backend: %s (valid: %v)", c.Storage.Backend, ValidBackends)
	}
	if c.Storage.Path == "" {
		return fmt.Errorf("storage path not configured")
	}
	if c.Generator.Tries < 1 {
		return fmt.Errorf("generator tries must be positive, got %d", c.Generator.Tries)
	}
	if c.Generator.Workers < 1 {
		return fmt.Errorf("generator workers must be positive, got %d", c.Generator.Workers)
	}
	if c.Generator.MaxSampleTries < 1 {
		return fmt.Errorf("generator max_sample_tries must be positive, got %d", c.Generator.MaxSampleTries)
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", c.Log.Level)
	}
	return nil
}
