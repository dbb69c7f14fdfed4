// Package config provides configuration management for bistro.
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the bistro configuration.
type Config struct {
	Dataset    DatasetConfig                 `yaml:"dataset"`
	Engine     EngineConfig                  `yaml:"engine"`
	Storage    StorageConfig                 `yaml:"storage"`
	Log        LogConfig                     `yaml:"log"`
	Strategies map[string]map[string]float64 `yaml:"strategies"` // custom strategy weight vectors
}

// DatasetConfig holds dataset loading settings.
type DatasetConfig struct {
	Path string `yaml:"path"` // Default CSV path used when --data is not given
}

// EngineConfig holds engine tuning settings.
type EngineConfig struct {
	VoteCap         int    `yaml:"vote_cap"`         // Votes at which the popularity signal saturates
	MaxResults      int    `yaml:"max_results"`      // Default top-N result limit
	DefaultStrategy string `yaml:"default_strategy"` // Strategy used when --strategy is not given
}

// StorageConfig holds persistence settings.
type StorageConfig struct {
	DBPath string `yaml:"db_path"` // SQLite path (empty = ~/.bistro/state.db)
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Dataset: DatasetConfig{
			Path: "",
		},
		Engine: EngineConfig{
			VoteCap:         1000,
			MaxResults:      10,
			DefaultStrategy: "rating-heavy",
		},
		Storage: StorageConfig{
			DBPath: "",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// DefaultConfigPath returns the default config file path
// (~/.bistro/config.yaml).
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".bistro", "config.yaml"), nil
}

// Load loads configuration from the default path.
func Load() (*Config, error) {
	path, err := DefaultConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFromFile(path)
}

// LoadFromFile loads configuration from the specified file.
// If the file doesn't exist, returns default configuration.
// Environment variable overrides are applied after file loading.
func LoadFromFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.ApplyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.ApplyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Save saves the configuration to the default path.
func (c *Config) Save() error {
	path, err := DefaultConfigPath()
	if err != nil {
		return err
	}
	return c.SaveToFile(path)
}

// SaveToFile saves the configuration to the specified file.
func (c *Config) SaveToFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ApplyEnvOverrides applies environment variable overrides.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("BISTRO_DATA"); v != "" {
		c.Dataset.Path = v
	}
	if v := os.Getenv("BISTRO_DB_PATH"); v != "" {
		c.Storage.DBPath = v
	}
	if v := os.Getenv("BISTRO_LOG_LEVEL"); v != "" {
		if isValidLogLevel(v) {
			c.Log.Level = v
		}
	}
	if v := os.Getenv("BISTRO_DEBUG"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil && b {
			c.Log.Level = "debug"
		}
	}
}

// Validate validates the configuration. Out-of-range engine values are
// fixed by falling back to defaults with a warning; validation never
// prevents startup for tunables.
func (c *Config) Validate() error {
	if !isValidLogLevel(c.Log.Level) {
		return fmt.Errorf("log.level must be debug, info, warn, or error (got: %s)", c.Log.Level)
	}

	defaults := DefaultConfig()

	if c.Engine.VoteCap < 1 {
		log.Printf("WARN config: engine.vote_cap must be >= 1, got %d; falling back to default %d",
			c.Engine.VoteCap, defaults.Engine.VoteCap)
		c.Engine.VoteCap = defaults.Engine.VoteCap
	}
	if c.Engine.MaxResults < 1 {
		log.Printf("WARN config: engine.max_results must be >= 1, got %d; falling back to default %d",
			c.Engine.MaxResults, defaults.Engine.MaxResults)
		c.Engine.MaxResults = defaults.Engine.MaxResults
	}
	if strings.TrimSpace(c.Engine.DefaultStrategy) == "" {
		c.Engine.DefaultStrategy = defaults.Engine.DefaultStrategy
	}

	return nil
}

// Get retrieves a configuration value by dot-separated key.
// For example: "engine.vote_cap" or "dataset.path".
func (c *Config) Get(key string) (string, error) {
	parts := strings.Split(key, ".")
	if len(parts) != 2 {
		return "", errors.New("key must be in format 'section.key'")
	}

	switch parts[0] + "." + parts[1] {
	case "dataset.path":
		return c.Dataset.Path, nil
	case "engine.vote_cap":
		return strconv.Itoa(c.Engine.VoteCap), nil
	case "engine.max_results":
		return strconv.Itoa(c.Engine.MaxResults), nil
	case "engine.default_strategy":
		return c.Engine.DefaultStrategy, nil
	case "storage.db_path":
		return c.Storage.DBPath, nil
	case "log.level":
		return c.Log.Level, nil
	default:
		return "", fmt.Errorf("unknown key: %s", key)
	}
}

// Set sets a configuration value by dot-separated key.
func (c *Config) Set(key, value string) error {
	parts := strings.Split(key, ".")
	if len(parts) != 2 {
		return errors.New("key must be in format 'section.key'")
	}

	switch parts[0] + "." + parts[1] {
	case "dataset.path":
		c.Dataset.Path = value
	case "engine.vote_cap":
		v, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid value for vote_cap: %w", err)
		}
		if v < 1 {
			return fmt.Errorf("invalid vote_cap: must be >= 1")
		}
		c.Engine.VoteCap = v
	case "engine.max_results":
		v, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid value for max_results: %w", err)
		}
		if v < 1 {
			return fmt.Errorf("invalid max_results: must be >= 1")
		}
		c.Engine.MaxResults = v
	case "engine.default_strategy":
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("invalid default_strategy: must not be empty")
		}
		c.Engine.DefaultStrategy = value
	case "storage.db_path":
		c.Storage.DBPath = value
	case "log.level":
		if !isValidLogLevel(value) {
			return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", value)
		}
		c.Log.Level = value
	default:
		return fmt.Errorf("unknown key: %s", key)
	}
	return nil
}

// ListKeys returns user-facing configuration keys.
func ListKeys() []string {
	return []string{
		"dataset.path",
		"engine.vote_cap",
		"engine.max_results",
		"engine.default_strategy",
		"storage.db_path",
		"log.level",
	}
}

func isValidLogLevel(level string) bool {
	switch level {
	case "debug", "info", "warn", "error":
		return true
	default:
		return false
	}
}
