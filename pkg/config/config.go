/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Config represents the wead configuration
type Config struct {
	DataFile  string    `yaml:"data_file"`
	Port      int       `yaml:"port"`
	Bind      string    `yaml:"bind"`
	Storage   Storage   `yaml:"storage"`
	Benchmark Benchmark `yaml:"benchmark"`
	Logging   Logging   `yaml:"logging"`
}

// Storage contains data file settings
type Storage struct {
	Sync          bool `yaml:"sync"`
	MaxRecordSize int  `yaml:"max_record_size"` // bytes, 0 means 1 MiB
}

// Benchmark contains defaults and limits for the pricing benchmark
type Benchmark struct {
	Iterations    int64 `yaml:"iterations"`
	Workers       int   `yaml:"workers"`
	MaxIterations int64 `yaml:"max_iterations"`
}

// Logging contains logging configuration
type Logging struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		DataFile: "./data/persons.csv",
		Port:     8080,
		Bind:     "127.0.0.1",
		Benchmark: Benchmark{
			Iterations:    1_000_000,
			Workers:       0,
			MaxIterations: 100_000_000,
		},
		Logging: Logging{
			Level:  "info",
			Format: "console",
		},
	}
}

// LoadConfig loads configuration from the specified path.
// Fields missing from the file keep their default values.
func LoadConfig(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	if !filepath.IsAbs(configPath) {
		absPath, err := filepath.Abs(configPath)
		if err != nil {
			return nil, fmt.Errorf("invalid config path: %w", err)
		}
		configPath = absPath
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveConfig saves the configuration to the specified path with secure permissions
func SaveConfig(config *Config, configPath string) error {
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// BootstrapConfig writes a default configuration to configPath, pointing at
// dataFile when it is not empty
func BootstrapConfig(configPath string, dataFile string) (*Config, error) {
	config := DefaultConfig()
	if dataFile != "" {
		config.DataFile = dataFile
	}

	if err := SaveConfig(config, configPath); err != nil {
		return nil, fmt.Errorf("failed to save bootstrap config: %w", err)
	}

	return config, nil
}

// Validate checks that the configuration can be used
func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.DataFile) == "" {
		errs = append(errs, errors.New("data_file cannot be empty"))
	}
	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port %d out of range", c.Port))
	}
	if c.Storage.MaxRecordSize < 0 {
		errs = append(errs, errors.New("storage.max_record_size cannot be negative"))
	}
	if c.Benchmark.Iterations < 0 {
		errs = append(errs, errors.New("benchmark.iterations cannot be negative"))
	}
	if c.Benchmark.Workers < 0 {
		errs = append(errs, errors.New("benchmark.workers cannot be negative"))
	}
	if c.Benchmark.MaxIterations <= 0 {
		errs = append(errs, errors.New("benchmark.max_iterations must be positive"))
	}
	if _, err := zapcore.ParseLevel(c.Logging.Level); err != nil {
		errs = append(errs, fmt.Errorf("logging.level: %w", err))
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		errs = append(errs, fmt.Errorf("logging.format %q must be json or console", c.Logging.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// GetDefaultConfigPath returns the default configuration path for the current platform
func GetDefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "./wead.yaml"
	}

	// For Linux/macOS, use ~/.config/wead/config.yaml
	configDir := filepath.Join(homeDir, ".config", "wead")
	return filepath.Join(configDir, "config.yaml")
}

// ConfigExists checks if a configuration file exists
func ConfigExists(configPath string) bool {
	_, err := os.Stat(configPath)
	return !os.IsNotExist(err)
}
