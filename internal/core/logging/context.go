package logging

import "context"

type contextKey string

const (
	reviewSessionKey contextKey = "review_session"
	itemIDKey        contextKey = "item_id"
)

// WithReviewSession adds a review session id to the context.
func WithReviewSession(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, reviewSessionKey, id)
}

// WithItemID adds the id of the item being acted on to the context.
func WithItemID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, itemIDKey, id)
}

// GetReviewSession retrieves the review session id from the context.
// Returns empty string if not present.
func GetReviewSession(ctx context.Context) string {
	if id, ok := ctx.Value(reviewSessionKey).(string); ok {
		return id
	}
	return ""
}

// GetItemID retrieves the item id from the context.
// Returns empty string if not present.
func GetItemID(ctx context.Context) string {
	if id, ok := ctx.Value(itemIDKey).(string); ok {
		return id
	}
	return ""
}
