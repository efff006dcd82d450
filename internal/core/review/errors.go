package review

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Sentinel errors returned when an action is ignored. They never reach the
// notifier: the action was not attempted.
var (
	ErrSubmitting = errors.New("a decision is already being submitted")
	ErrEditing    = errors.New("a description update is already in flight")
	ErrComplete   = errors.New("all items have been reviewed")
	ErrStale      = errors.New("submission does not belong to the current item")
)

// ValidationError is returned when input is rejected before any remote call.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

// GatewayError is a normalized failure from the remote item store.
// Status is the HTTP status code, or 0 when the request never completed.
type GatewayError struct {
	Op      string
	Status  int
	Message string
	Err     error
}

func (e *GatewayError) Error() string {
	var b strings.Builder
	b.WriteString(e.Op)
	if e.Status != 0 {
		fmt.Fprintf(&b, " (%d)", e.Status)
	}
	b.WriteString(": ")
	b.WriteString(e.Message)
	return b.String()
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

// RateLimited reports whether the store rejected the call for rate limiting.
func (e *GatewayError) RateLimited() bool {
	return e.Status == http.StatusTooManyRequests
}

// ConfigurationError reports required settings that are absent. The review
// program refuses to start a session and shows a static message instead.
type ConfigurationError struct {
	Missing []string
}

func (e *ConfigurationError) Error() string {
	return "missing configuration: " + strings.Join(e.Missing, ", ")
}

// IsIgnored reports whether err is one of the no-op sentinels.
func IsIgnored(err error) bool {
	return errors.Is(err, ErrSubmitting) ||
		errors.Is(err, ErrEditing) ||
		errors.Is(err, ErrComplete) ||
		errors.Is(err, ErrStale)
}

// Message returns the human readable part of err for notifications.
func Message(err error) string {
	var gwErr *GatewayError
	if errors.As(err, &gwErr) {
		return gwErr.Message
	}
	return err.Error()
}
