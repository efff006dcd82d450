package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hay-kot/criterio"

	"github.com/colonyops/freigabe/internal/core/styles"
)

// ValidationWarning represents a non-fatal configuration issue.
type ValidationWarning struct {
	Category string `json:"category"`
	Item     string `json:"item,omitempty"`
	Message  string `json:"message"`
}

// Validate checks the structure of the configuration.
func (c *Config) Validate() error {
	return criterio.ValidateStruct(
		criterio.Run("data_dir", c.DataDir, notEmpty),
		criterio.Run("airtable.base_url", c.Airtable.BaseURL, validBaseURL),
		positiveDuration("airtable.timeout", c.Airtable.Timeout),
		c.validateFields(),
		c.validateStatus(),
		c.validateIncludeTypes(),
		criterio.Run("tui.theme", c.TUI.Theme, knownTheme),
		positiveDuration("tui.toast_ttl", c.TUI.ToastTTL),
		positiveDuration("tui.error_ttl", c.TUI.ErrorTTL),
		c.validateDatabase(),
	)
}

// ValidateDeep performs Validate plus I/O checks on the config file and data
// directory. The configPath argument may be empty to skip the file check.
func (c *Config) ValidateDeep(configPath string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	return criterio.ValidateStruct(
		validateConfigFile(configPath),
		criterio.Run("data_dir", c.DataDir, isDirectoryOrNotExist),
	)
}

// Warnings returns non-fatal configuration issues.
func (c *Config) Warnings() []ValidationWarning {
	var warnings []ValidationWarning

	for _, name := range c.Airtable.Missing() {
		warnings = append(warnings, ValidationWarning{
			Category: "Airtable",
			Item:     name,
			Message:  "not set; the review screen will show a configuration error",
		})
	}

	if c.Airtable.APIKey != "" && !strings.HasPrefix(c.Airtable.APIKey, "pat") && !strings.HasPrefix(c.Airtable.APIKey, "key") {
		warnings = append(warnings, ValidationWarning{
			Category: "Airtable",
			Item:     "api_key",
			Message:  "does not look like an Airtable token",
		})
	}

	return warnings
}

func (c *Config) validateFields() error {
	f := c.Airtable.Fields
	var errs criterio.FieldErrorsBuilder

	seen := make(map[string]string)
	for _, col := range []struct{ key, value string }{
		{"title", f.Title},
		{"description", f.Description},
		{"attachments", f.Attachments},
		{"type", f.Type},
		{"customer", f.Customer},
		{"status", f.Status},
		{"question", f.Question},
		{"link", f.Link},
	} {
		if col.value == "" {
			continue
		}
		if other, ok := seen[col.value]; ok {
			errs = errs.Append("airtable.fields."+col.key, fmt.Errorf("column %q is already used by %s", col.value, other))
			continue
		}
		seen[col.value] = col.key
	}

	return errs.ToError()
}

func (c *Config) validateStatus() error {
	s := c.Airtable.Status
	values := map[string]string{}
	var errs criterio.FieldErrorsBuilder

	for _, v := range []struct{ key, value string }{
		{"approved", s.Approved},
		{"rejected", s.Rejected},
		{"questioned", s.Questioned},
	} {
		if v.value == "" {
			continue
		}
		if other, ok := values[v.value]; ok {
			errs = errs.Append("airtable.status."+v.key, fmt.Errorf("value %q is already used for %s", v.value, other))
			continue
		}
		values[v.value] = v.key
	}

	return errs.ToError()
}

func (c *Config) validateIncludeTypes() error {
	var errs criterio.FieldErrorsBuilder
	for i, p := range c.Review.IncludeTypes {
		if !doublestar.ValidatePattern(p) {
			errs = errs.Append(fmt.Sprintf("review.include_types[%d]", i), fmt.Errorf("invalid glob %q", p))
		}
	}
	return errs.ToError()
}

func notEmpty(s string) error {
	if s == "" {
		return errors.New("cannot be empty")
	}
	return nil
}

func positiveDuration(field string, d time.Duration) error {
	if d <= 0 {
		return criterio.NewFieldErrors(field, errors.New("must be greater than zero"))
	}
	return nil
}

func (c *Config) validateDatabase() error {
	var errs criterio.FieldErrorsBuilder
	if c.Database.BusyTimeout < 0 {
		errs = errs.Append("database.busy_timeout", errors.New("cannot be negative"))
	}
	if c.Database.MaxOpenConns < 1 {
		errs = errs.Append("database.max_open_conns", errors.New("must be at least 1"))
	}
	if c.Database.MaxIdleConns < 0 {
		errs = errs.Append("database.max_idle_conns", errors.New("cannot be negative"))
	}
	return errs.ToError()
}

func validBaseURL(s string) error {
	u, err := url.Parse(s)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return errors.New("host is required")
	}
	return nil
}

func knownTheme(name string) error {
	if _, ok := styles.GetPalette(name); !ok {
		return fmt.Errorf("unknown theme %q (available: %s)", name, strings.Join(styles.ThemeNames(), ", "))
	}
	return nil
}

func validateConfigFile(configPath string) error {
	if configPath == "" {
		return nil
	}

	info, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		return nil // not found is fine, using defaults
	}
	if err != nil {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("cannot access: %w", err))
	}
	if info.IsDir() {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("%s is a directory, not a file", configPath))
	}
	return nil
}

// isDirectoryOrNotExist validates that a path is a directory or doesn't exist.
func isDirectoryOrNotExist(path string) error {
	if path == "" {
		return nil
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil // will be created
	}
	if err != nil {
		return fmt.Errorf("cannot access: %w", err)
	}
	if !info.IsDir() {
		return errors.New("exists but is not a directory")
	}
	return nil
}
