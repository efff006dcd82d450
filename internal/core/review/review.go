// Package review holds the approval-review domain: the items a reviewer walks
// through, the decisions recorded against them, and the Session controller
// that sequences those decisions against a remote item store.
package review

import (
	"strings"
	"time"
)

// Decision is the reviewer's verdict on a single item.
type Decision string

const (
	DecisionApproved   Decision = "approved"
	DecisionRejected   Decision = "rejected"
	DecisionQuestioned Decision = "questioned"
)

// IsValid reports whether d is one of the known decisions.
func (d Decision) IsValid() bool {
	switch d {
	case DecisionApproved, DecisionRejected, DecisionQuestioned:
		return true
	}
	return false
}

// ParseDecision accepts the canonical names plus the short aliases used on
// the command line ("yes", "no", "ask").
func ParseDecision(s string) (Decision, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "approved", "approve", "yes", "y":
		return DecisionApproved, true
	case "rejected", "reject", "no", "n":
		return DecisionRejected, true
	case "questioned", "question", "ask", "?":
		return DecisionQuestioned, true
	}
	return "", false
}

// Attachment is a file linked to an item.
type Attachment struct {
	ID       string `json:"id"`
	URL      string `json:"url"`
	Filename string `json:"filename,omitempty"`
	MimeType string `json:"mime_type,omitempty"`
}

// Name returns the filename, falling back to the URL.
func (a Attachment) Name() string {
	if a.Filename != "" {
		return a.Filename
	}
	return a.URL
}

// Item is a unit of review content. Items are loaded once at session start
// and only the description of the current item may change afterwards.
type Item struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Type        string       `json:"type"`
	Description string       `json:"description"`
	Attachments []Attachment `json:"attachments,omitempty"`
	Link        string       `json:"link,omitempty"`
	Customer    string       `json:"customer,omitempty"`
}

// HasAttachments returns true if the item has at least one attachment with a URL.
func (i Item) HasAttachments() bool {
	for _, a := range i.Attachments {
		if a.URL != "" {
			return true
		}
	}
	return false
}

func (i Item) clone() Item {
	out := i
	if len(i.Attachments) > 0 {
		out.Attachments = make([]Attachment, len(i.Attachments))
		copy(out.Attachments, i.Attachments)
	}
	return out
}

// ProcessedItem records a confirmed decision. Question is only set for
// DecisionQuestioned.
type ProcessedItem struct {
	Item      Item      `json:"item"`
	Decision  Decision  `json:"decision"`
	Question  string    `json:"question,omitempty"`
	DecidedAt time.Time `json:"decided_at"`
}

// IsBlank reports whether s is empty after trimming whitespace.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
