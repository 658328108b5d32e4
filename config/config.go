// Package config provides CLI configuration management for the mintel command-line tool.
// It supports loading configuration from YAML files, environment variables, and command-line flags.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// OutputFormat defines the supported output formats for CLI results.
type OutputFormat string

const (
	// OutputFormatText is human-readable plain text output.
	OutputFormatText OutputFormat = "text"
	// OutputFormatJSON is JSON-formatted output for machine processing.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatYAML is YAML-formatted output for machine processing.
	OutputFormatYAML OutputFormat = "yaml"
)

// Default configuration values.
const (
	DefaultTimeout      = 30 * time.Second
	DefaultSearchLimit  = 20
	DefaultOutputFormat = OutputFormatText
	DefaultConfigDir    = ".mintel"
	DefaultConfigFile   = "config.yaml"
	DefaultSnapshotFile = "snapshot.json"
)

// AugmentConfig holds settings for the optional enrichment services.
// All endpoints are opt-in; an empty URL disables that capability.
type AugmentConfig struct {
	// CalendarURL is the endpoint of the upcoming-events calendar service.
	CalendarURL string `yaml:"calendar_url,omitempty"`

	// SimilarityURL is the endpoint of the related-meetings similarity service.
	SimilarityURL string `yaml:"similarity_url,omitempty"`

	// CategorizerURL is the endpoint of the meeting categorization service.
	CategorizerURL string `yaml:"categorizer_url,omitempty"`

	// Timeout is the per-request timeout for augmentation calls.
	Timeout time.Duration `yaml:"timeout,omitempty"`
}

// CLIConfig holds the CLI configuration settings.
type CLIConfig struct {
	// SnapshotPath is the path to the meeting snapshot export file.
	// Supports ~ for home directory expansion.
	SnapshotPath string `yaml:"snapshot_path"`

	// Timezone is the IANA zone used for temporal phrase resolution
	// (e.g. "Europe/London"). Empty means the system local zone.
	Timezone string `yaml:"timezone,omitempty"`

	// Timeout is the default timeout for commands.
	Timeout time.Duration `yaml:"timeout"`

	// OutputFormat specifies the default output format for commands.
	OutputFormat OutputFormat `yaml:"output_format"`

	// SearchLimit caps the number of results returned by search commands.
	SearchLimit int `yaml:"search_limit"`

	// Debug enables verbose debug logging.
	Debug bool `yaml:"debug,omitempty"`

	// Augment holds endpoints for the optional enrichment services.
	Augment AugmentConfig `yaml:"augment,omitempty"`
}

// DefaultConfig returns a CLIConfig with default values.
func DefaultConfig() *CLIConfig {
	return &CLIConfig{
		Timeout:      DefaultTimeout,
		OutputFormat: DefaultOutputFormat,
		SearchLimit:  DefaultSearchLimit,
	}
}

// ConfigDir returns the configuration directory path.
// Uses $MINTEL_CONFIG_DIR if set, otherwise ~/.mintel
func ConfigDir() (string, error) {
	if dir := os.Getenv("MINTEL_CONFIG_DIR"); dir != "" {
		return dir, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}

	return filepath.Join(home, DefaultConfigDir), nil
}

// ConfigPath returns the full path to the configuration file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, DefaultConfigFile), nil
}

// LoadConfig loads the CLI configuration from file and environment variables.
// Configuration is loaded in this order (later sources override earlier):
// 1. Default values
// 2. Config file (~/.mintel/config.yaml or $MINTEL_CONFIG_DIR/config.yaml)
// 3. Environment variables (MINTEL_SNAPSHOT_PATH, MINTEL_TIMEZONE, ...)
func LoadConfig() (*CLIConfig, error) {
	cfg := DefaultConfig()

	configPath, err := ConfigPath()
	if err != nil {
		return nil, fmt.Errorf("getting config path: %w", err)
	}

	if _, err := os.Stat(configPath); err == nil {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config file: %w", err)
		}
	}

	// Overlay environment variables.
	loadFromEnv(cfg)

	if cfg.SnapshotPath == "" {
		if dir, err := ConfigDir(); err == nil {
			cfg.SnapshotPath = filepath.Join(dir, DefaultSnapshotFile)
		}
	}
	cfg.SnapshotPath = expandPath(cfg.SnapshotPath)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads configuration from a YAML file.
func loadFromFile(cfg *CLIConfig, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}

	// We need a temp struct for unmarshaling durations as strings.
	type augmentFile struct {
		CalendarURL    string `yaml:"calendar_url"`
		SimilarityURL  string `yaml:"similarity_url"`
		CategorizerURL string `yaml:"categorizer_url"`
		Timeout        string `yaml:"timeout"`
	}
	type configFile struct {
		SnapshotPath string       `yaml:"snapshot_path"`
		Timezone     string       `yaml:"timezone"`
		Timeout      string       `yaml:"timeout"`
		OutputFormat OutputFormat `yaml:"output_format"`
		SearchLimit  int          `yaml:"search_limit"`
		Debug        bool         `yaml:"debug"`
		Augment      augmentFile  `yaml:"augment"`
	}

	var fileCfg configFile
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	if fileCfg.SnapshotPath != "" {
		cfg.SnapshotPath = fileCfg.SnapshotPath
	}
	if fileCfg.Timezone != "" {
		cfg.Timezone = fileCfg.Timezone
	}
	if fileCfg.Timeout != "" {
		timeout, err := time.ParseDuration(fileCfg.Timeout)
		if err != nil {
			return fmt.Errorf("parsing timeout: %w", err)
		}
		cfg.Timeout = timeout
	}
	if fileCfg.OutputFormat != "" {
		cfg.OutputFormat = fileCfg.OutputFormat
	}
	if fileCfg.SearchLimit > 0 {
		cfg.SearchLimit = fileCfg.SearchLimit
	}
	cfg.Debug = fileCfg.Debug

	if fileCfg.Augment.CalendarURL != "" {
		cfg.Augment.CalendarURL = fileCfg.Augment.CalendarURL
	}
	if fileCfg.Augment.SimilarityURL != "" {
		cfg.Augment.SimilarityURL = fileCfg.Augment.SimilarityURL
	}
	if fileCfg.Augment.CategorizerURL != "" {
		cfg.Augment.CategorizerURL = fileCfg.Augment.CategorizerURL
	}
	if fileCfg.Augment.Timeout != "" {
		timeout, err := time.ParseDuration(fileCfg.Augment.Timeout)
		if err != nil {
			return fmt.Errorf("parsing augment timeout: %w", err)
		}
		cfg.Augment.Timeout = timeout
	}

	return nil
}

// loadFromEnv overlays environment variables onto the configuration.
func loadFromEnv(cfg *CLIConfig) {
	if v := os.Getenv("MINTEL_SNAPSHOT_PATH"); v != "" {
		cfg.SnapshotPath = v
	}

	if v := os.Getenv("MINTEL_TIMEZONE"); v != "" {
		cfg.Timezone = v
	}

	if v := os.Getenv("MINTEL_TIMEOUT"); v != "" {
		if timeout, err := time.ParseDuration(v); err == nil {
			cfg.Timeout = timeout
		}
	}

	if v := os.Getenv("MINTEL_OUTPUT_FORMAT"); v != "" {
		cfg.OutputFormat = OutputFormat(v)
	}

	if v := os.Getenv("MINTEL_DEBUG"); v == "true" || v == "1" {
		cfg.Debug = true
	}

	if v := os.Getenv("MINTEL_CALENDAR_URL"); v != "" {
		cfg.Augment.CalendarURL = v
	}

	if v := os.Getenv("MINTEL_SIMILARITY_URL"); v != "" {
		cfg.Augment.SimilarityURL = v
	}

	if v := os.Getenv("MINTEL_CATEGORIZER_URL"); v != "" {
		cfg.Augment.CategorizerURL = v
	}
}

// Validate checks that the configuration is valid.
func (c *CLIConfig) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}

	if c.SearchLimit <= 0 {
		return fmt.Errorf("search_limit must be positive")
	}

	if !c.OutputFormat.IsValid() {
		return fmt.Errorf("invalid output_format: %q (must be text, json, or yaml)", c.OutputFormat)
	}

	if c.Timezone != "" {
		if _, err := time.LoadLocation(c.Timezone); err != nil {
			return fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
		}
	}

	return nil
}

// Location returns the time.Location for temporal resolution.
// Falls back to the system local zone when Timezone is unset or invalid
// (Validate catches invalid values at load time).
func (c *CLIConfig) Location() *time.Location {
	if c.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// IsValid checks if the output format is valid.
func (f OutputFormat) IsValid() bool {
	switch f {
	case OutputFormatText, OutputFormatJSON, OutputFormatYAML:
		return true
	default:
		return false
	}
}

// String returns the string representation of the output format.
func (f OutputFormat) String() string {
	return string(f)
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path // Return original if home dir lookup fails.
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// SaveConfig saves the configuration to the config file.
func SaveConfig(cfg *CLIConfig) error {
	configDir, err := ConfigDir()
	if err != nil {
		return fmt.Errorf("getting config directory: %w", err)
	}

	// Ensure config directory exists.
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	configPath := filepath.Join(configDir, DefaultConfigFile)

	// Convert to YAML-friendly format with durations as strings.
	type augmentFile struct {
		CalendarURL    string `yaml:"calendar_url,omitempty"`
		SimilarityURL  string `yaml:"similarity_url,omitempty"`
		CategorizerURL string `yaml:"categorizer_url,omitempty"`
		Timeout        string `yaml:"timeout,omitempty"`
	}
	type configFile struct {
		SnapshotPath string       `yaml:"snapshot_path,omitempty"`
		Timezone     string       `yaml:"timezone,omitempty"`
		Timeout      string       `yaml:"timeout"`
		OutputFormat OutputFormat `yaml:"output_format"`
		SearchLimit  int          `yaml:"search_limit"`
		Debug        bool         `yaml:"debug,omitempty"`
		Augment      augmentFile  `yaml:"augment,omitempty"`
	}

	fileCfg := configFile{
		SnapshotPath: cfg.SnapshotPath,
		Timezone:     cfg.Timezone,
		Timeout:      cfg.Timeout.String(),
		OutputFormat: cfg.OutputFormat,
		SearchLimit:  cfg.SearchLimit,
		Debug:        cfg.Debug,
	}
	if cfg.Augment != (AugmentConfig{}) {
		fileCfg.Augment = augmentFile{
			CalendarURL:    cfg.Augment.CalendarURL,
			SimilarityURL:  cfg.Augment.SimilarityURL,
			CategorizerURL: cfg.Augment.CategorizerURL,
		}
		if cfg.Augment.Timeout > 0 {
			fileCfg.Augment.Timeout = cfg.Augment.Timeout.String()
		}
	}

	data, err := yaml.Marshal(&fileCfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
