// Package notify defines the notification side channel: fire-and-forget
// messages shown to the reviewer as toasts and kept as history.
package notify

import (
	"context"
	"time"
)

// Level represents the kind of a notification.
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Notification represents a single notification event.
type Notification struct {
	ID        int64
	Level     Level
	Message   string
	Detail    string
	CreatedAt time.Time
}

// Store persists notifications to durable storage.
type Store interface {
	Save(ctx context.Context, n Notification) (int64, error)
	List(ctx context.Context) ([]Notification, error)
	Clear(ctx context.Context) error
	Count(ctx context.Context) (int64, error)
}
