// Package stores implements core storage interfaces on top of SQLite.
package stores

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/colonyops/freigabe/internal/core/notify"
	"github.com/colonyops/freigabe/internal/data/db"
)

const notificationsTable = "notifications"

// NotifyStore implements notify.Store using SQLite.
type NotifyStore struct {
	db    *db.DB
	limit uint64
}

var _ notify.Store = (*NotifyStore)(nil)

// NewNotifyStore creates a new SQLite-backed notification store.
func NewNotifyStore(db *db.DB) *NotifyStore {
	return &NotifyStore{db: db}
}

// WithListLimit caps how many rows List returns. Zero means no limit.
func (s *NotifyStore) WithListLimit(n uint64) *NotifyStore {
	s.limit = n
	return s
}

// Save persists a notification and returns its auto-generated ID.
func (s *NotifyStore) Save(ctx context.Context, n notify.Notification) (int64, error) {
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}

	query, args, err := sq.Insert(notificationsTable).
		Columns("level", "message", "detail", "created_at").
		Values(string(n.Level), n.Message, n.Detail, n.CreatedAt.UnixNano()).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build insert: %w", err)
	}

	res, err := s.db.Conn().ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("insert notification: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert notification: %w", err)
	}
	return id, nil
}

// List returns notifications ordered by newest first.
func (s *NotifyStore) List(ctx context.Context) ([]notify.Notification, error) {
	builder := sq.Select("id", "level", "message", "detail", "created_at").
		From(notificationsTable).
		OrderBy("created_at DESC", "id DESC")
	if s.limit > 0 {
		builder = builder.Limit(s.limit)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	rows, err := s.db.Conn().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer func() { _ = rows.Close() }()

	result := make([]notify.Notification, 0)
	for rows.Next() {
		var (
			n         notify.Notification
			level     string
			createdAt int64
		)
		if err := rows.Scan(&n.ID, &level, &n.Message, &n.Detail, &createdAt); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		n.Level = notify.Level(level)
		n.CreatedAt = time.Unix(0, createdAt)
		result = append(result, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}

	return result, nil
}

// Clear deletes all notifications.
func (s *NotifyStore) Clear(ctx context.Context) error {
	query, args, err := sq.Delete(notificationsTable).ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	if _, err := s.db.Conn().ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("clear notifications: %w", err)
	}
	return nil
}

// Count returns the total number of notifications.
func (s *NotifyStore) Count(ctx context.Context) (int64, error) {
	query, args, err := sq.Select("COUNT(*)").From(notificationsTable).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count: %w", err)
	}

	var count int64
	if err := s.db.Conn().QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count notifications: %w", err)
	}
	return count, nil
}
