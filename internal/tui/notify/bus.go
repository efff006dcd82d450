// Package notify delivers review notifications to the TUI and keeps a
// persisted history of them.
package notify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/colonyops/freigabe/internal/core/logging"
	"github.com/colonyops/freigabe/internal/core/notify"
	"github.com/colonyops/freigabe/internal/core/review"
)

const persistTimeout = 2 * time.Second

// Subscriber is a callback invoked when a notification is published.
type Subscriber func(notify.Notification)

// Bus is a synchronous in-process notification bus. It persists each
// notification to a Store and then dispatches it to subscribers inline.
// A failing store never prevents delivery.
type Bus struct {
	store       notify.Store
	log         zerolog.Logger
	now         func() time.Time
	subscribers []Subscriber
	mu          sync.Mutex
}

var _ review.Notifier = (*Bus)(nil)

// NewBus creates a notification bus backed by the given store.
// If store is nil, notifications are dispatched to subscribers but not persisted.
func NewBus(store notify.Store) *Bus {
	return &Bus{
		store: store,
		log:   logging.Component("notify"),
		now:   time.Now,
	}
}

// Subscribe registers a callback that will be invoked on every Publish.
func (b *Bus) Subscribe(fn Subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers = append(b.subscribers, fn)
}

// Publish persists a notification and dispatches it to all subscribers.
func (b *Bus) Publish(n notify.Notification) {
	if n.CreatedAt.IsZero() {
		n.CreatedAt = b.now()
	}

	// Persist first so subscribers see the stored ID.
	if b.store != nil {
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		id, err := b.store.Save(ctx, n)
		cancel()
		if err != nil {
			b.log.Error().Err(err).Str("message", n.Message).Msg("failed to persist notification")
		} else {
			n.ID = id
		}
	}

	b.mu.Lock()
	subs := make([]Subscriber, len(b.subscribers))
	copy(subs, b.subscribers)
	b.mu.Unlock()

	for _, fn := range subs {
		fn(n)
	}
}

// Notify implements review.Notifier.
func (b *Bus) Notify(level notify.Level, message, detail string) {
	b.Publish(notify.Notification{
		Level:   level,
		Message: message,
		Detail:  detail,
	})
}

// Warnf publishes a warning-level notification.
func (b *Bus) Warnf(format string, args ...any) {
	b.Notify(notify.LevelWarning, fmt.Sprintf(format, args...), "")
}

// History returns all persisted notifications, newest first.
// Returns nil if no store is configured.
func (b *Bus) History(ctx context.Context) ([]notify.Notification, error) {
	if b.store == nil {
		return nil, nil
	}
	return b.store.List(ctx)
}

// Clear deletes all persisted notifications.
func (b *Bus) Clear(ctx context.Context) error {
	if b.store == nil {
		return nil
	}
	return b.store.Clear(ctx)
}
