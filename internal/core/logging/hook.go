package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// ContextHook extracts review_session and item_id from context and adds them to log events.
type ContextHook struct{}

// Run adds contextual fields to the zerolog event.
func (h ContextHook) Run(e *zerolog.Event, level zerolog.Level, msg string) {
	ctx := e.GetCtx()
	if ctx == context.Background() || ctx == nil {
		return
	}

	if id := GetReviewSession(ctx); id != "" {
		e.Str("review_session", id)
	}

	if id := GetItemID(ctx); id != "" {
		e.Str("item_id", id)
	}
}
