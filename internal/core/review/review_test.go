package review

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDecision(t *testing.T) {
	tests := []struct {
		in   string
		want Decision
		ok   bool
	}{
		{in: "approved", want: DecisionApproved, ok: true},
		{in: " YES ", want: DecisionApproved, ok: true},
		{in: "n", want: DecisionRejected, ok: true},
		{in: "reject", want: DecisionRejected, ok: true},
		{in: "?", want: DecisionQuestioned, ok: true},
		{in: "ask", want: DecisionQuestioned, ok: true},
		{in: "maybe", ok: false},
		{in: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseDecision(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestItem_HasAttachments(t *testing.T) {
	assert.False(t, Item{}.HasAttachments())
	assert.False(t, Item{Attachments: []Attachment{{ID: "a"}}}.HasAttachments())
	assert.True(t, Item{Attachments: []Attachment{{ID: "a", URL: "https://x"}}}.HasAttachments())
}

func TestAttachment_Name(t *testing.T) {
	assert.Equal(t, "logo.png", Attachment{URL: "https://x/1", Filename: "logo.png"}.Name())
	assert.Equal(t, "https://x/1", Attachment{URL: "https://x/1"}.Name())
}

func TestIsIgnored(t *testing.T) {
	assert.True(t, IsIgnored(ErrSubmitting))
	assert.True(t, IsIgnored(fmt.Errorf("approve: %w", ErrComplete)))
	assert.False(t, IsIgnored(&ValidationError{Field: "question", Reason: "must not be blank"}))
	assert.False(t, IsIgnored(errors.New("other")))
}

func TestMessage(t *testing.T) {
	gwErr := &GatewayError{Op: "set status", Status: 422, Message: "Unknown field name: \"Status\""}

	assert.Equal(t, "Unknown field name: \"Status\"", Message(gwErr))
	assert.Equal(t, "Unknown field name: \"Status\"", Message(fmt.Errorf("wrapped: %w", gwErr)))
	assert.Equal(t, "set status (422): Unknown field name: \"Status\"", gwErr.Error())
	assert.Equal(t, "question must not be blank", Message(&ValidationError{Field: "question", Reason: "must not be blank"}))
}

func TestGatewayError_RateLimited(t *testing.T) {
	assert.True(t, (&GatewayError{Status: 429}).RateLimited())
	assert.False(t, (&GatewayError{Status: 500}).RateLimited())
}

func TestConfigurationError(t *testing.T) {
	err := &ConfigurationError{Missing: []string{"airtable.api_key", "airtable.base_id"}}
	assert.Equal(t, "missing configuration: airtable.api_key, airtable.base_id", err.Error())
}
