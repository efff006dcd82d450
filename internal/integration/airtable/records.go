package airtable

import (
	"encoding/json"
	"strings"

	"golang.org/x/text/cases"

	"github.com/colonyops/freigabe/internal/core/review"
)

type listResponse struct {
	Records []record `json:"records"`
	Offset  string   `json:"offset"`
}

type record struct {
	ID     string                     `json:"id"`
	Fields map[string]json.RawMessage `json:"fields"`
}

type attachmentCell struct {
	ID       string `json:"id"`
	URL      string `json:"url"`
	Filename string `json:"filename"`
	Type     string `json:"type"`
}

type updateRequest struct {
	Fields map[string]any `json:"fields"`
}

// text reads a cell as a string. Multi-select and lookup cells arrive as
// arrays and are joined with ", ".
func (r record) text(field string) string {
	raw, ok := r.Fields[field]
	if !ok {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return strings.Join(list, ", ")
	}

	return ""
}

// attachments reads an attachment cell. Plain URL lists are accepted as well.
func (r record) attachments(field string) []review.Attachment {
	raw, ok := r.Fields[field]
	if !ok {
		return nil
	}

	var cells []attachmentCell
	if err := json.Unmarshal(raw, &cells); err == nil {
		out := make([]review.Attachment, 0, len(cells))
		for _, c := range cells {
			out = append(out, review.Attachment{
				ID:       c.ID,
				URL:      c.URL,
				Filename: c.Filename,
				MimeType: c.Type,
			})
		}
		return out
	}

	var urls []string
	if err := json.Unmarshal(raw, &urls); err == nil {
		out := make([]review.Attachment, 0, len(urls))
		for _, u := range urls {
			out = append(out, review.Attachment{ID: u, URL: u})
		}
		return out
	}

	return nil
}

func (r record) toItem(f Fields) review.Item {
	return review.Item{
		ID:          r.ID,
		Title:       r.text(f.Title),
		Type:        r.text(f.Type),
		Description: r.text(f.Description),
		Attachments: r.attachments(f.Attachments),
		Link:        r.text(f.Link),
		Customer:    r.text(f.Customer),
	}
}

// NormalizeCustomer folds case and collapses whitespace so customer tags
// compare equal regardless of how they were typed.
func NormalizeCustomer(s string) string {
	return cases.Fold().String(strings.Join(strings.Fields(s), " "))
}

// CustomerMatches reports whether an item's customer tag equals want after
// normalization.
func CustomerMatches(have, want string) bool {
	return NormalizeCustomer(have) == NormalizeCustomer(want)
}

func pendingFormula(statusField string) string {
	return "{" + statusField + "}=''"
}
