// Package airtable implements the item store gateway on top of the Airtable
// REST API: it loads the items awaiting review and writes decisions and
// description edits back to the same table.
package airtable

import (
	"time"

	"github.com/colonyops/freigabe/internal/core/review"
)

const (
	DefaultBaseURL = "https://api.airtable.com"
	DefaultTable   = "Items"
	DefaultTimeout = 15 * time.Second
	defaultPage    = 100
)

// Fields maps item attributes to Airtable column names.
type Fields struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Attachments string `yaml:"attachments"`
	Type        string `yaml:"type"`
	Customer    string `yaml:"customer"`
	Status      string `yaml:"status"`
	Question    string `yaml:"question"`
	Link        string `yaml:"link"`
}

// DefaultFields returns the column names of the review base.
func DefaultFields() Fields {
	return Fields{
		Title:       "Titel",
		Description: "Beschreibung",
		Attachments: "Anhang",
		Type:        "Type",
		Customer:    "Kunde",
		Status:      "Status",
		Question:    "Frage vom Kunden",
		Link:        "Link",
	}
}

// StatusValues are the cell values written to the status column.
type StatusValues struct {
	Approved   string `yaml:"approved"`
	Rejected   string `yaml:"rejected"`
	Questioned string `yaml:"questioned"`
}

// DefaultStatusValues returns JA / NEIN / ?.
func DefaultStatusValues() StatusValues {
	return StatusValues{
		Approved:   "JA",
		Rejected:   "NEIN",
		Questioned: "?",
	}
}

// For returns the cell value for d.
func (v StatusValues) For(d review.Decision) string {
	switch d {
	case review.DecisionApproved:
		return v.Approved
	case review.DecisionRejected:
		return v.Rejected
	case review.DecisionQuestioned:
		return v.Questioned
	}
	return ""
}

// Config is everything the gateway needs to reach one Airtable table.
type Config struct {
	APIKey  string
	BaseID  string
	Table   string
	BaseURL string
	Timeout time.Duration
	Fields  Fields
	Status  StatusValues
}

// Missing lists the required settings that are empty.
func (c Config) Missing() []string {
	var missing []string
	if c.APIKey == "" {
		missing = append(missing, "api_key")
	}
	if c.BaseID == "" {
		missing = append(missing, "base_id")
	}
	if c.Table == "" {
		missing = append(missing, "table")
	}
	return missing
}

func (c Config) withDefaults() Config {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}

	df := DefaultFields()
	fill := func(dst *string, def string) {
		if *dst == "" {
			*dst = def
		}
	}
	fill(&c.Fields.Title, df.Title)
	fill(&c.Fields.Description, df.Description)
	fill(&c.Fields.Attachments, df.Attachments)
	fill(&c.Fields.Type, df.Type)
	fill(&c.Fields.Customer, df.Customer)
	fill(&c.Fields.Status, df.Status)
	fill(&c.Fields.Question, df.Question)
	fill(&c.Fields.Link, df.Link)

	ds := DefaultStatusValues()
	fill(&c.Status.Approved, ds.Approved)
	fill(&c.Status.Rejected, ds.Rejected)
	fill(&c.Status.Questioned, ds.Questioned)

	return c
}
