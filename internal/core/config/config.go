// Package config handles configuration loading and validation for freigabe.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/colonyops/freigabe/internal/core/styles"
	"github.com/colonyops/freigabe/internal/integration/airtable"
)

// Config holds the application configuration.
type Config struct {
	Airtable AirtableConfig `yaml:"airtable"`
	Review   ReviewConfig   `yaml:"review"`
	TUI      TUIConfig      `yaml:"tui"`
	Database DatabaseConfig `yaml:"database"`
	DataDir  string         `yaml:"-"` // set by caller, not from config file
}

// AirtableConfig locates the review table. Credentials are normally supplied
// through the environment rather than the file.
type AirtableConfig struct {
	APIKey  string                `yaml:"api_key"  env:"AIRTABLE_API_KEY"`
	BaseID  string                `yaml:"base_id"  env:"AIRTABLE_BASE_ID"`
	Table   string                `yaml:"table"    env:"AIRTABLE_TABLE_NAME"`
	BaseURL string                `yaml:"base_url" env:"AIRTABLE_BASE_URL"`
	Timeout time.Duration         `yaml:"timeout"`
	Fields  airtable.Fields       `yaml:"fields"`
	Status  airtable.StatusValues `yaml:"status"`
}

// ReviewConfig narrows which items are loaded into a session.
type ReviewConfig struct {
	Customer     string   `yaml:"customer" env:"FREIGABE_CUSTOMER"`
	IncludeTypes []string `yaml:"include_types"`
}

// TUIConfig holds terminal UI settings.
type TUIConfig struct {
	Theme     string        `yaml:"theme"`
	ToastTTL  time.Duration `yaml:"toast_ttl"`
	ErrorTTL  time.Duration `yaml:"error_ttl"`
	Celebrate *bool         `yaml:"celebrate"`
}

// CelebrateEnabled reports whether the completion animation runs.
func (t TUIConfig) CelebrateEnabled() bool {
	return t.Celebrate == nil || *t.Celebrate
}

// DatabaseConfig holds SQLite settings for the notification history.
type DatabaseConfig struct {
	MaxOpenConns int `yaml:"max_open_conns"`
	MaxIdleConns int `yaml:"max_idle_conns"`
	BusyTimeout  int `yaml:"busy_timeout"` // milliseconds
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Airtable: AirtableConfig{
			Table:   airtable.DefaultTable,
			BaseURL: airtable.DefaultBaseURL,
			Timeout: airtable.DefaultTimeout,
			Fields:  airtable.DefaultFields(),
			Status:  airtable.DefaultStatusValues(),
		},
		TUI: TUIConfig{
			Theme:    styles.DefaultTheme,
			ToastTTL: 3 * time.Second,
			ErrorTTL: 5 * time.Second,
		},
		Database: DatabaseConfig{
			MaxOpenConns: 2,
			MaxIdleConns: 2,
			BusyTimeout:  5000,
		},
	}
}

// Load reads configuration with Read and validates it. Missing Airtable
// credentials are not an error here; see AirtableConfig.Missing.
func Load(configPath, dataDir string) (*Config, error) {
	cfg, err := Read(configPath, dataDir)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Read parses the file at configPath, overlays the environment and sets the
// data directory without validating the result. A missing file yields
// defaults.
func Read(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	if err := ParseEnv(&cfg.Airtable); err != nil {
		return nil, err
	}
	if err := ParseEnv(&cfg.Review); err != nil {
		return nil, err
	}

	cfg.DataDir = dataDir
	cfg.applyDefaults()

	return &cfg, nil
}

// ParseEnv loads tagged fields of target from environment variables. Unset
// variables leave the field untouched.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()

	if c.Airtable.Table == "" {
		c.Airtable.Table = defaults.Airtable.Table
	}
	if c.Airtable.BaseURL == "" {
		c.Airtable.BaseURL = defaults.Airtable.BaseURL
	}
	if c.Airtable.Timeout == 0 {
		c.Airtable.Timeout = defaults.Airtable.Timeout
	}
	if c.TUI.Theme == "" {
		c.TUI.Theme = defaults.TUI.Theme
	}
	if c.TUI.ToastTTL == 0 {
		c.TUI.ToastTTL = defaults.TUI.ToastTTL
	}
	if c.TUI.ErrorTTL == 0 {
		c.TUI.ErrorTTL = defaults.TUI.ErrorTTL
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = defaults.Database.MaxOpenConns
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = defaults.Database.MaxIdleConns
	}
	if c.Database.BusyTimeout == 0 {
		c.Database.BusyTimeout = defaults.Database.BusyTimeout
	}
}

// Missing lists the Airtable settings required to start a review session.
func (a AirtableConfig) Missing() []string {
	return a.Gateway().Missing()
}

// Gateway converts the section into the gateway's configuration.
func (a AirtableConfig) Gateway() airtable.Config {
	return airtable.Config{
		APIKey:  a.APIKey,
		BaseID:  a.BaseID,
		Table:   a.Table,
		BaseURL: a.BaseURL,
		Timeout: a.Timeout,
		Fields:  a.Fields,
		Status:  a.Status,
	}
}

// DatabaseFile returns the path to the notification history database.
func (c *Config) DatabaseFile() string {
	return filepath.Join(c.DataDir, "freigabe.db")
}

// LogFile returns the default log file path.
func (c *Config) LogFile() string {
	return filepath.Join(c.DataDir, "freigabe.log")
}
