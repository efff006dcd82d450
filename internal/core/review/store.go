package review

import (
	"context"

	"github.com/colonyops/freigabe/internal/core/notify"
)

// Gateway applies reviewer intents to the remote item store. Implementations
// must not panic and must report every failure as an error, preferably a
// *GatewayError or *ValidationError.
type Gateway interface {
	// SetStatus records a decision. question is only sent for DecisionQuestioned.
	SetStatus(ctx context.Context, id string, d Decision, question string) error

	// SetDescription replaces the description of an item.
	SetDescription(ctx context.Context, id string, text string) error
}

// ItemSource loads the items still awaiting a decision. It is called once by
// whoever builds the Session, never by the Session itself.
type ItemSource interface {
	// FetchPendingItems returns undecided items, optionally restricted to a
	// customer tag.
	FetchPendingItems(ctx context.Context, customer string) ([]Item, error)
}

// Notifier receives fire-and-forget messages about action outcomes.
type Notifier interface {
	Notify(level notify.Level, message, detail string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(level notify.Level, message, detail string)

// Notify implements Notifier.
func (f NotifierFunc) Notify(level notify.Level, message, detail string) {
	f(level, message, detail)
}

type discardNotifier struct{}

func (discardNotifier) Notify(notify.Level, string, string) {}
