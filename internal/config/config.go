package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/mcncl/dynomarshal/internal/errors"
	"github.com/mcncl/dynomarshal/internal/marshaler"
)

// Config represents the complete configuration for dynomarshal
type Config struct {
	MaxNestingLevels int          `yaml:"max_nesting_levels"`
	Output           OutputConfig `yaml:"output"`
}

// OutputConfig controls how results are rendered
type OutputConfig struct {
	Pretty     bool `yaml:"pretty"`
	ShowLevels bool `yaml:"show_levels"`
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		MaxNestingLevels: marshaler.DefaultMaxNestingLevels,
		Output: OutputConfig{
			Pretty:     false,
			ShowLevels: false,
		},
	}
}

// Validate checks the configuration for out-of-range values
func (c *Config) Validate() error {
	if c.MaxNestingLevels < marshaler.MinNestingLevels || c.MaxNestingLevels > marshaler.MaxNestingLevelsLimit {
		return errors.NewConfigError(
			fmt.Sprintf("max_nesting_levels must be between %d and %d inclusive, got %d",
				marshaler.MinNestingLevels, marshaler.MaxNestingLevelsLimit, c.MaxNestingLevels),
			errors.ErrInvalidMaxNesting,
		)
	}
	return nil
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	// Read file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults
	cfg := NewConfig()

	// Parse YAML
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// FindConfigFile searches for a config file in current directory and parents
func FindConfigFile() string {
	configNames := []string{".dynomarshal.yml", ".dynomarshal.yaml", "dynomarshal.yml", "dynomarshal.yaml"}

	// Start from current directory
	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	// Search up the directory tree
	for {
		for _, name := range configNames {
			configPath := filepath.Join(currentDir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		// Move up one directory
		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root directory
			break
		}
		currentDir = parentDir
	}

	return ""
}

// LoadOrDefault loads the config at path if given, otherwise searches
// for one, otherwise returns defaults.
func LoadOrDefault(path string) (*Config, error) {
	if path != "" {
		return LoadConfig(path)
	}
	if found := FindConfigFile(); found != "" {
		return LoadConfig(found)
	}
	return NewConfig(), nil
}
