// Package config loads CLI settings from an optional YAML file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DataFiles names the four CSV inputs
type DataFiles struct {
	Providers string `yaml:"providers"`
	Receivers string `yaml:"receivers"`
	Listings  string `yaml:"listings"`
	Claims    string `yaml:"claims"`
}

// StoreConfig selects the storage backend. Driver is "memory" or
// "sqlite"; Path is only used by sqlite.
type StoreConfig struct {
	Driver string `yaml:"driver"`
	Path   string `yaml:"path"`
}

// ReportConfig holds report defaults
type ReportConfig struct {
	Format     string `yaml:"format"`
	Limit      int    `yaml:"limit"`
	WindowDays int    `yaml:"window_days"`
}

// Config is the full file layout
type Config struct {
	Data   DataFiles    `yaml:"data"`
	Store  StoreConfig  `yaml:"store"`
	Report ReportConfig `yaml:"report"`
}

// Default returns the configuration used when no file is given
func Default() *Config {
	return &Config{
		Store:  StoreConfig{Driver: "memory"},
		Report: ReportConfig{Format: "text"},
	}
}

// Load reads a YAML config file, filling unset fields with defaults
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.Store.Driver == "" {
		cfg.Store.Driver = "memory"
	}
	if cfg.Report.Format == "" {
		cfg.Report.Format = "text"
	}
	return cfg, nil
}
