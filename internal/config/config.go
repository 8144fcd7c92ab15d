// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Paths
	Dataset string `json:"dataset,omitempty"` // Path to the IRS BMF CSV extract
	Profile string `json:"profile,omitempty"` // Path to the organization profile JSON

	// Run shape
	Stage          string `json:"stage,omitempty"`           // Cultivation stage to score at
	Workers        int    `json:"workers,omitempty"`         // Worker pool size (0 = GOMAXPROCS)
	TimeoutSeconds int    `json:"timeout_seconds,omitempty"` // Per-run wall-clock budget
	Limit          int    `json:"limit,omitempty"`           // Maximum candidates returned

	// Scoring overrides
	Weights     map[string]float64 `json:"weights,omitempty"`      // Dimension weight overrides
	BoostFactor float64            `json:"boost_factor,omitempty"` // Per-flag boost multiplier

	// Tier thresholds
	AutoQualified float64 `json:"auto_qualified,omitempty"`
	Review        float64 `json:"review,omitempty"`
	Consider      float64 `json:"consider,omitempty"`
	MinScore      float64 `json:"min_score,omitempty"`

	// Behavior
	Verbose     bool   `json:"verbose,omitempty"`      // Print detailed debug information
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("config error: 'workers' must be non-negative")
	}
	if c.TimeoutSeconds < 0 {
		return fmt.Errorf("config error: 'timeout_seconds' must be non-negative")
	}
	if c.Limit < 0 {
		return fmt.Errorf("config error: 'limit' must be non-negative")
	}
	if c.BoostFactor != 0 && c.BoostFactor < 1 {
		return fmt.Errorf("config error: 'boost_factor' must be at least 1.0")
	}

	for name, w := range c.Weights {
		if w < 0 || w > 1 {
			return fmt.Errorf("config error: weight for %q must be within [0, 1]", name)
		}
	}

	for _, cut := range []struct {
		name  string
		value float64
	}{
		{"auto_qualified", c.AutoQualified},
		{"review", c.Review},
		{"consider", c.Consider},
		{"min_score", c.MinScore},
	} {
		if cut.value < 0 || cut.value > 1 {
			return fmt.Errorf("config error: '%s' must be within [0, 1]", cut.name)
		}
	}

	// Validate file paths exist (if specified)
	if c.Dataset != "" {
		if _, err := os.Stat(c.Dataset); os.IsNotExist(err) {
			return fmt.Errorf("config error: dataset file not found: %s", c.Dataset)
		}
	}
	if c.Profile != "" {
		if _, err := os.Stat(c.Profile); os.IsNotExist(err) {
			return fmt.Errorf("config error: profile file not found: %s", c.Profile)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Dataset == "" {
		result.Dataset = defaults.Dataset
	}
	if result.Profile == "" {
		result.Profile = defaults.Profile
	}
	if result.Stage == "" {
		result.Stage = defaults.Stage
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}

	if result.Workers == 0 {
		result.Workers = defaults.Workers
	}
	if result.TimeoutSeconds == 0 {
		result.TimeoutSeconds = defaults.TimeoutSeconds
	}
	if result.Limit == 0 {
		result.Limit = defaults.Limit
	}
	if result.BoostFactor == 0 {
		result.BoostFactor = defaults.BoostFactor
	}

	if result.Weights == nil {
		result.Weights = defaults.Weights
	}

	if result.AutoQualified == 0 {
		result.AutoQualified = defaults.AutoQualified
	}
	if result.Review == 0 {
		result.Review = defaults.Review
	}
	if result.Consider == 0 {
		result.Consider = defaults.Consider
	}
	if result.MinScore == 0 {
		result.MinScore = defaults.MinScore
	}

	if !result.Verbose {
		result.Verbose = defaults.Verbose
	}

	return result
}
