package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultHome       = "~/.vesselx"
	DefaultConfigName = "config.yaml"
	DatabaseName      = "vesselx.db"
)

// Home returns the data directory from VESSELX_HOME env var,
// falling back to DefaultHome.
func Home() string {
	if env := os.Getenv("VESSELX_HOME"); env != "" {
		return env
	}
	return DefaultHome
}

// Path returns the config file path from VESSELX_CONFIG env var,
// falling back to config.yaml inside Home.
func Path() string {
	if env := os.Getenv("VESSELX_CONFIG"); env != "" {
		return env
	}
	return filepath.Join(Home(), DefaultConfigName)
}

// ExpandHome replaces a leading ~ with the user's home directory
func ExpandHome(path string) string {
	if strings.HasPrefix(path, "~") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[1:])
	}
	return path
}

// Config holds the settings read from the YAML config file
type Config struct {
	Storage struct {
		// DataDir holds the session database
		DataDir string `yaml:"dataDir"`

		// ExportDir receives fiducial and matrix CSV files
		ExportDir string `yaml:"exportDir"`
	} `yaml:"storage"`

	Extractor struct {
		// Command is the program that runs the segmentation pipeline, e.g. a VMTK wrapper script
		Command string   `yaml:"command"`
		Args    []string `yaml:"args"`

		// Timeout bounds a single extraction; zero means no limit
		Timeout time.Duration `yaml:"timeout"`

		// Strategy is used when no strategy is given on the command line
		Strategy string `yaml:"strategy"`
	} `yaml:"extractor"`

	// Editor opens exported CSV files; empty falls back to $EDITOR
	Editor string `yaml:"editor"`

	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"` // console or json
	} `yaml:"log"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Storage.DataDir = Home()
	cfg.Storage.ExportDir = filepath.Join(Home(), "exports")

	cfg.Extractor.Command = "vesselx-extract"
	cfg.Extractor.Timeout = 10 * time.Minute
	cfg.Extractor.Strategy = "all-in-one"

	cfg.Log.Level = "info"
	cfg.Log.Format = "console"

	return cfg
}

// DatabasePath returns the SQLite session database path with ~ expanded
func (c *Config) DatabasePath() string {
	return filepath.Join(ExpandHome(c.Storage.DataDir), DatabaseName)
}

// ExportPath returns the export directory with ~ expanded
func (c *Config) ExportPath() string {
	return ExpandHome(c.Storage.ExportDir)
}

// LoadConfig loads configuration from a YAML file.
// If the file doesn't exist, it returns the default configuration.
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	configPath = ExpandHome(configPath)
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to a YAML file
func SaveConfig(cfg *Config, configPath string) error {
	configPath = ExpandHome(configPath)
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}
