package review

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/colonyops/freigabe/internal/core/logging"
	"github.com/colonyops/freigabe/internal/core/notify"
)

// MaxDescriptionLength is the longest description the item store accepts, in runes.
const MaxDescriptionLength = 10000

// State is the decision state of a Session.
type State int

const (
	StateIdle State = iota
	StateSubmitting
	StateComplete
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSubmitting:
		return "submitting"
	case StateComplete:
		return "complete"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Session sequences exactly one decision per item against a Gateway.
//
// A Session is owned by a single goroutine (the Bubble Tea update loop or a
// CLI command). Remote calls are split into Begin, Run and Settle so that Run
// can execute elsewhere while Begin and Settle stay on the owning goroutine.
// The cursor only advances in Settle after the gateway confirmed the decision.
type Session struct {
	id       string
	gateway  Gateway
	notifier Notifier
	logger   zerolog.Logger
	now      func() time.Time

	pending   []Item
	cursor    int
	processed []ProcessedItem

	inFlight *Submission
	editing  *Edit

	onComplete    []func()
	completeFired bool
}

// Option configures a Session.
type Option func(*Session)

// WithNotifier sets where action outcomes are reported.
func WithNotifier(n Notifier) Option {
	return func(s *Session) {
		if n != nil {
			s.notifier = n
		}
	}
}

// WithLogger overrides the session logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// WithClock overrides the time source used for DecidedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithID sets the session correlation id. A random id is used otherwise.
func WithID(id string) Option {
	return func(s *Session) { s.id = id }
}

// NewSession creates a session over items in the given order. The slice is
// copied; later changes by the caller are not observed.
func NewSession(items []Item, gw Gateway, opts ...Option) *Session {
	s := &Session{
		gateway:  gw,
		notifier: discardNotifier{},
		logger:   logging.Component("review"),
		now:      time.Now,
		pending:  make([]Item, len(items)),
	}
	for i, item := range items {
		s.pending[i] = item.clone()
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.id == "" {
		s.id = uuid.NewString()
	}
	s.logger = s.logger.With().Str("review_session", s.id).Logger()

	s.logger.Debug().Int("items", len(s.pending)).Msg("review session started")
	return s
}

// ID returns the session correlation id.
func (s *Session) ID() string {
	return s.id
}

// Submission is a decision that has been accepted by the session and is
// waiting for the gateway. It carries a snapshot of everything Run needs.
type Submission struct {
	session  string
	gateway  Gateway
	item     Item
	index    int
	decision Decision
	question string
}

// Item returns the item the decision is for.
func (sub *Submission) Item() Item { return sub.item }

// Decision returns the submitted decision.
func (sub *Submission) Decision() Decision { return sub.decision }

// Question returns the question text for DecisionQuestioned.
func (sub *Submission) Question() string { return sub.question }

// Run performs the gateway call. It does not touch session state and is safe
// to call from any goroutine.
func (sub *Submission) Run(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &GatewayError{Op: "set status", Message: fmt.Sprintf("unexpected failure: %v", r)}
		}
	}()
	ctx = logging.WithItemID(logging.WithReviewSession(ctx, sub.session), sub.item.ID)
	return sub.gateway.SetStatus(ctx, sub.item.ID, sub.decision, sub.question)
}

// BeginDecision moves the session to StateSubmitting for the current item.
//
// It returns ErrComplete or ErrSubmitting without side effects when the
// session cannot accept a decision, and a *ValidationError (also sent to the
// notifier) when a question is blank.
func (s *Session) BeginDecision(d Decision, question string) (*Submission, error) {
	if s.IsComplete() {
		return nil, ErrComplete
	}
	if s.inFlight != nil {
		return nil, ErrSubmitting
	}

	if !d.IsValid() {
		return nil, s.rejectInput(&ValidationError{Field: "decision", Reason: fmt.Sprintf("%q is not a valid decision", d)})
	}

	if d == DecisionQuestioned {
		if IsBlank(question) {
			return nil, s.rejectInput(&ValidationError{Field: "question", Reason: "must not be blank"})
		}
		question = strings.TrimSpace(question)
	} else {
		question = ""
	}

	sub := &Submission{
		session:  s.id,
		gateway:  s.gateway,
		item:     s.pending[s.cursor].clone(),
		index:    s.cursor,
		decision: d,
		question: question,
	}
	s.inFlight = sub

	s.logger.Debug().
		Str("item_id", sub.item.ID).
		Str("decision", string(d)).
		Msg("submitting decision")

	return sub, nil
}

// Settle applies the gateway result of sub. On success the decision is
// appended and the cursor advances; on failure the session returns to idle
// on the same item and the failure is reported once.
func (s *Session) Settle(sub *Submission, err error) error {
	if sub == nil || sub != s.inFlight {
		return ErrStale
	}
	s.inFlight = nil

	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("item_id", sub.item.ID).
			Str("decision", string(sub.decision)).
			Msg("decision failed")
		s.notifier.Notify(notify.LevelError, Message(err), fmt.Sprintf("%q was not updated. Please try again.", sub.item.Title))
		return err
	}

	s.processed = append(s.processed, ProcessedItem{
		Item:      s.pending[sub.index].clone(),
		Decision:  sub.decision,
		Question:  sub.question,
		DecidedAt: s.now(),
	})
	s.cursor++

	s.logger.Debug().
		Str("item_id", sub.item.ID).
		Str("decision", string(sub.decision)).
		Int("cursor", s.cursor).
		Msg("decision committed")

	s.notifier.Notify(notify.LevelSuccess, successMessage(sub.decision), sub.item.Title)

	s.maybeComplete()
	return nil
}

func successMessage(d Decision) string {
	switch d {
	case DecisionApproved:
		return "Approved"
	case DecisionRejected:
		return "Rejected"
	default:
		return "Question sent"
	}
}

// Approve records DecisionApproved for the current item and waits for the gateway.
func (s *Session) Approve(ctx context.Context) error {
	return s.decide(ctx, DecisionApproved, "")
}

// Reject records DecisionRejected for the current item and waits for the gateway.
func (s *Session) Reject(ctx context.Context) error {
	return s.decide(ctx, DecisionRejected, "")
}

// Ask records DecisionQuestioned with question for the current item.
func (s *Session) Ask(ctx context.Context, question string) error {
	return s.decide(ctx, DecisionQuestioned, question)
}

// Decide dispatches to Approve, Reject or Ask.
func (s *Session) Decide(ctx context.Context, d Decision, question string) error {
	return s.decide(ctx, d, question)
}

func (s *Session) decide(ctx context.Context, d Decision, question string) error {
	sub, err := s.BeginDecision(d, question)
	if err != nil {
		return err
	}
	return s.Settle(sub, sub.Run(ctx))
}

// Edit is a description update accepted by the session.
type Edit struct {
	session string
	gateway Gateway
	itemID  string
	text    string
}

// ItemID returns the id of the edited item.
func (e *Edit) ItemID() string { return e.itemID }

// Text returns the new description.
func (e *Edit) Text() string { return e.text }

// Run performs the gateway call. Like Submission.Run it is goroutine safe.
func (e *Edit) Run(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &GatewayError{Op: "set description", Message: fmt.Sprintf("unexpected failure: %v", r)}
		}
	}()
	ctx = logging.WithItemID(logging.WithReviewSession(ctx, e.session), e.itemID)
	return e.gateway.SetDescription(ctx, e.itemID, e.text)
}

// BeginEdit validates text and starts a description update for the current
// item. Edits are tracked separately from decisions and never move the cursor.
func (s *Session) BeginEdit(text string) (*Edit, error) {
	if s.IsComplete() {
		return nil, ErrComplete
	}
	if s.editing != nil {
		return nil, ErrEditing
	}
	if err := ValidateDescription(text); err != nil {
		return nil, s.rejectInput(err)
	}

	e := &Edit{
		session: s.id,
		gateway: s.gateway,
		itemID:  s.pending[s.cursor].ID,
		text:    text,
	}
	s.editing = e

	s.logger.Debug().Str("item_id", e.itemID).Int("length", utf8.RuneCountInString(text)).Msg("updating description")
	return e, nil
}

// SettleEdit applies the gateway result of e. The in-memory description is
// replaced only when the edited item is still the current, undecided item.
func (s *Session) SettleEdit(e *Edit, err error) error {
	if e == nil || e != s.editing {
		return ErrStale
	}
	s.editing = nil

	if err != nil {
		s.logger.Warn().Err(err).Str("item_id", e.itemID).Msg("description update failed")
		s.notifier.Notify(notify.LevelError, Message(err), "The description was not changed.")
		return err
	}

	if !s.IsComplete() && s.pending[s.cursor].ID == e.itemID {
		s.pending[s.cursor].Description = e.text
	}

	s.notifier.Notify(notify.LevelSuccess, "Description updated", "")
	return nil
}

// EditDescription validates, sends and applies a description update.
func (s *Session) EditDescription(ctx context.Context, text string) error {
	e, err := s.BeginEdit(text)
	if err != nil {
		return err
	}
	return s.SettleEdit(e, e.Run(ctx))
}

// ValidateDescription checks the bounds the item store enforces.
func ValidateDescription(text string) error {
	if IsBlank(text) {
		return &ValidationError{Field: "description", Reason: "must not be blank"}
	}
	if n := utf8.RuneCountInString(text); n > MaxDescriptionLength {
		return &ValidationError{
			Field:  "description",
			Reason: fmt.Sprintf("must be at most %d characters (got %d)", MaxDescriptionLength, n),
		}
	}
	return nil
}

func (s *Session) rejectInput(err error) error {
	s.logger.Debug().Err(err).Msg("input rejected")
	s.notifier.Notify(notify.LevelError, err.Error(), "validation")
	return err
}

// OnComplete registers fn to run when every item has been decided. The
// completion event fires once per session; registering on a session that is
// already complete fires it immediately if it has not fired yet.
func (s *Session) OnComplete(fn func()) {
	s.onComplete = append(s.onComplete, fn)
	s.maybeComplete()
}

func (s *Session) maybeComplete() {
	if s.completeFired || !s.IsComplete() || len(s.onComplete) == 0 {
		return
	}
	s.completeFired = true

	s.logger.Info().
		Int("approved", len(s.Approved())).
		Int("rejected", len(s.Rejected())).
		Int("questioned", len(s.Questioned())).
		Msg("review session complete")

	for _, fn := range s.onComplete {
		fn()
	}
}

// Current returns the item awaiting a decision. ok is false once complete.
func (s *Session) Current() (Item, bool) {
	if s.IsComplete() {
		return Item{}, false
	}
	return s.pending[s.cursor].clone(), true
}

// Items returns a copy of the pending sequence, including edited descriptions.
func (s *Session) Items() []Item {
	out := make([]Item, len(s.pending))
	for i, item := range s.pending {
		out[i] = item.clone()
	}
	return out
}

// Cursor returns the index of the current item.
func (s *Session) Cursor() int { return s.cursor }

// Len returns the number of items in the session.
func (s *Session) Len() int { return len(s.pending) }

// Processed returns the confirmed decisions in commit order.
func (s *Session) Processed() []ProcessedItem {
	out := make([]ProcessedItem, len(s.processed))
	copy(out, s.processed)
	return out
}

// Approved returns approved items in decision order.
func (s *Session) Approved() []ProcessedItem { return s.filter(DecisionApproved) }

// Rejected returns rejected items in decision order.
func (s *Session) Rejected() []ProcessedItem { return s.filter(DecisionRejected) }

// Questioned returns questioned items in decision order.
func (s *Session) Questioned() []ProcessedItem { return s.filter(DecisionQuestioned) }

func (s *Session) filter(d Decision) []ProcessedItem {
	var out []ProcessedItem
	for _, p := range s.processed {
		if p.Decision == d {
			out = append(out, p)
		}
	}
	return out
}

// SelectProcessed looks up a confirmed decision by item id.
func (s *Session) SelectProcessed(id string) (ProcessedItem, bool) {
	for _, p := range s.processed {
		if p.Item.ID == id {
			return p, true
		}
	}
	return ProcessedItem{}, false
}

// ProgressPercent returns the rounded share of decided items, 100 for an
// empty session.
func (s *Session) ProgressPercent() int {
	if len(s.pending) == 0 {
		return 100
	}
	p := int(math.Round(100 * float64(len(s.processed)) / float64(len(s.pending))))
	return min(p, 100)
}

// IsComplete reports whether every item has a confirmed decision.
func (s *Session) IsComplete() bool {
	return len(s.processed) == len(s.pending)
}

// Submitting reports whether a decision is waiting for the gateway.
func (s *Session) Submitting() bool { return s.inFlight != nil }

// Editing reports whether a description update is waiting for the gateway.
func (s *Session) Editing() bool { return s.editing != nil }

// State returns the decision state.
func (s *Session) State() State {
	switch {
	case s.IsComplete():
		return StateComplete
	case s.inFlight != nil:
		return StateSubmitting
	default:
		return StateIdle
	}
}
