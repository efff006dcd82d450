package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validConfig returns a Config with all required fields set for testing.
func validConfig(t *testing.T) *Config {
	t.Helper()
	cfg := DefaultConfig()
	cfg.DataDir = t.TempDir()
	cfg.Airtable.APIKey = "patABC"
	cfg.Airtable.BaseID = "appXYZ"
	return &cfg
}

func fieldNames(t *testing.T, err error) []string {
	t.Helper()
	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)

	names := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		names = append(names, fe.Field)
	}
	return names
}

func TestValidate_ValidConfig(t *testing.T) {
	assert.NoError(t, validConfig(t).ValidateDeep(""))
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		field  string
	}{
		{name: "empty data dir", mutate: func(c *Config) { c.DataDir = "" }, field: "data_dir"},
		{name: "bad base url scheme", mutate: func(c *Config) { c.Airtable.BaseURL = "ftp://airtable" }, field: "airtable.base_url"},
		{name: "base url without host", mutate: func(c *Config) { c.Airtable.BaseURL = "https://" }, field: "airtable.base_url"},
		{name: "zero timeout", mutate: func(c *Config) { c.Airtable.Timeout = 0 }, field: "airtable.timeout"},
		{name: "duplicate column", mutate: func(c *Config) { c.Airtable.Fields.Question = "Status" }, field: "airtable.fields.question"},
		{name: "duplicate status value", mutate: func(c *Config) { c.Airtable.Status.Rejected = "JA" }, field: "airtable.status.rejected"},
		{name: "bad glob", mutate: func(c *Config) { c.Review.IncludeTypes = []string{"ok", "[bad"} }, field: "review.include_types[1]"},
		{name: "unknown theme", mutate: func(c *Config) { c.TUI.Theme = "neon" }, field: "tui.theme"},
		{name: "negative busy timeout", mutate: func(c *Config) { c.Database.BusyTimeout = -1 }, field: "database.busy_timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig(t)
			tt.mutate(cfg)

			assert.Contains(t, fieldNames(t, cfg.Validate()), tt.field)
		})
	}
}

func TestValidateDeep_ConfigPathIsDirectory(t *testing.T) {
	cfg := validConfig(t)

	err := cfg.ValidateDeep(t.TempDir())
	assert.Contains(t, fieldNames(t, err), "config_file")
}

func TestValidateDeep_DataDirIsFile(t *testing.T) {
	cfg := validConfig(t)
	file := filepath.Join(t.TempDir(), "data")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))
	cfg.DataDir = file

	err := cfg.ValidateDeep("")
	assert.Contains(t, fieldNames(t, err), "data_dir")
}

func TestWarnings(t *testing.T) {
	cfg := validConfig(t)
	assert.Empty(t, cfg.Warnings())

	cfg.Airtable.APIKey = ""
	cfg.Airtable.BaseID = ""
	warnings := cfg.Warnings()
	require.Len(t, warnings, 2)
	assert.Equal(t, "api_key", warnings[0].Item)
	assert.Equal(t, "base_id", warnings[1].Item)

	cfg = validConfig(t)
	cfg.Airtable.APIKey = "sk-something"
	require.Len(t, cfg.Warnings(), 1)
}
