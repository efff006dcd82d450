package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/freigabe/internal/core/notify"
	"github.com/colonyops/freigabe/internal/core/review"
)

// memStore is an in-memory notify.Store for testing.
type memStore struct {
	items   []notify.Notification
	nextID  int64
	saveErr error
}

func (m *memStore) Save(_ context.Context, n notify.Notification) (int64, error) {
	if m.saveErr != nil {
		return 0, m.saveErr
	}
	m.nextID++
	n.ID = m.nextID
	m.items = append(m.items, n)
	return n.ID, nil
}

func (m *memStore) List(_ context.Context) ([]notify.Notification, error) {
	out := make([]notify.Notification, len(m.items))
	for i, n := range m.items {
		out[len(m.items)-1-i] = n
	}
	return out, nil
}

func (m *memStore) Clear(_ context.Context) error {
	m.items = nil
	return nil
}

func (m *memStore) Count(_ context.Context) (int64, error) {
	return int64(len(m.items)), nil
}

func collect(bus *Bus) *[]notify.Notification {
	var received []notify.Notification
	bus.Subscribe(func(n notify.Notification) {
		received = append(received, n)
	})
	return &received
}

func TestBus_Publish_dispatches_to_subscribers(t *testing.T) {
	bus := NewBus(&memStore{})
	received := collect(bus)

	bus.Notify(notify.LevelError, "Server error", "")
	bus.Notify(notify.LevelInfo, "info msg", "")
	bus.Warnf("warn msg: %d", 42)
	bus.Notify(notify.LevelSuccess, "Approved", "")

	require.Len(t, *received, 4)
	got := *received
	assert.Equal(t, notify.LevelError, got[0].Level)
	assert.Equal(t, notify.LevelInfo, got[1].Level)
	assert.Equal(t, notify.LevelWarning, got[2].Level)
	assert.Equal(t, "warn msg: 42", got[2].Message)
	assert.Equal(t, notify.LevelSuccess, got[3].Level)
}

func TestBus_Notify_carries_detail(t *testing.T) {
	store := &memStore{}
	bus := NewBus(store)
	received := collect(bus)

	var notifier review.Notifier = bus
	notifier.Notify(notify.LevelError, "rate limit exceeded", `"Post 1" was not updated. Please try again.`)

	require.Len(t, *received, 1)
	assert.Equal(t, `"Post 1" was not updated. Please try again.`, (*received)[0].Detail)
	require.Len(t, store.items, 1)
	assert.Equal(t, (*received)[0].Detail, store.items[0].Detail)
}

func TestBus_Publish_assigns_id_from_store(t *testing.T) {
	bus := NewBus(&memStore{})

	var received notify.Notification
	bus.Subscribe(func(n notify.Notification) {
		received = n
	})

	bus.Warnf("get id")

	assert.Equal(t, int64(1), received.ID)
	assert.False(t, received.CreatedAt.IsZero())
}

func TestBus_Publish_store_failure_still_delivers(t *testing.T) {
	bus := NewBus(&memStore{saveErr: errors.New("disk I/O error")})
	received := collect(bus)

	bus.Warnf("still shown")

	require.Len(t, *received, 1)
	assert.Zero(t, (*received)[0].ID)
}

func TestBus_History_and_Clear(t *testing.T) {
	bus := NewBus(&memStore{})

	bus.Warnf("first")
	bus.Warnf("second")
	bus.Warnf("third")

	history, err := bus.History(t.Context())
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, "third", history[0].Message)
	assert.Equal(t, "first", history[2].Message)

	require.NoError(t, bus.Clear(t.Context()))

	history, err = bus.History(t.Context())
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestBus_nil_store(t *testing.T) {
	bus := NewBus(nil)
	received := collect(bus)

	bus.Warnf("no store")

	require.Len(t, *received, 1)
	assert.Equal(t, "no store", (*received)[0].Message)

	history, err := bus.History(t.Context())
	require.NoError(t, err)
	assert.Nil(t, history)
	assert.NoError(t, bus.Clear(t.Context()))
}
