// Package config loads the host configuration from an HCL file.
package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Config is the host configuration surface.
type Config struct {
	// ScanPaths are directories searched for plugin modules, in addition
	// to the platform's standard locations.
	ScanPaths []string `hcl:"scan_paths,optional"`

	SampleRate float64 `hcl:"sample_rate,optional"`
	BlockSize  int32   `hcl:"block_size,optional"`

	// LogLevel is a logrus level name ("debug", "info", ...).
	LogLevel string `hcl:"log_level,optional"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		SampleRate: 48000,
		BlockSize:  512,
		LogLevel:   "info",
	}
}

// Load parses and decodes an HCL configuration file, layering it over the
// defaults.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse config file %s: %s", path, diags.Error())
	}

	cfg := Default()
	diags = gohcl.DecodeBody(file.Body, nil, cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode config file %s: %s", path, diags.Error())
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the engine cannot run with.
func (c *Config) Validate() error {
	if c.SampleRate <= 0 {
		return fmt.Errorf("sample_rate must be positive, got %v", c.SampleRate)
	}
	if c.BlockSize <= 0 {
		return fmt.Errorf("block_size must be positive, got %d", c.BlockSize)
	}
	return nil
}
