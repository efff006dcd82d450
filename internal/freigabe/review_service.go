package freigabe

import (
	"context"
	"fmt"
	"strings"

	"github.com/hay-kot/criterio"
	"github.com/rs/zerolog"

	"github.com/colonyops/freigabe/internal/core/config"
	"github.com/colonyops/freigabe/internal/core/logging"
	"github.com/colonyops/freigabe/internal/core/review"
	"github.com/colonyops/freigabe/internal/integration/airtable"
)

// ItemStore is the remote store a review session reads from and writes to.
type ItemStore interface {
	review.Gateway
	review.ItemSource
}

// StoreFactory builds the item store from configuration.
type StoreFactory func(cfg *config.Config) (ItemStore, error)

// AirtableStore is the production StoreFactory.
func AirtableStore(cfg *config.Config) (ItemStore, error) {
	gw, err := airtable.New(cfg.Airtable.Gateway(),
		airtable.WithTypeFilter(cfg.Review.IncludeTypes),
		airtable.WithLogger(logging.Component("airtable")),
	)
	if err != nil {
		return nil, err
	}
	return gw, nil
}

// ReviewService loads pending items and starts review sessions.
type ReviewService struct {
	cfg      *config.Config
	newStore StoreFactory
	log      zerolog.Logger
}

// NewReviewService creates the service. A nil factory uses AirtableStore.
func NewReviewService(cfg *config.Config, factory StoreFactory) *ReviewService {
	if factory == nil {
		factory = AirtableStore
	}
	return &ReviewService{
		cfg:      cfg,
		newStore: factory,
		log:      logging.Component("review-service"),
	}
}

// Customer returns the customer filter, preferring an explicit value over
// the configured one.
func (s *ReviewService) Customer(explicit string) string {
	if strings.TrimSpace(explicit) != "" {
		return explicit
	}
	return s.cfg.Review.Customer
}

// Store builds the item store. Missing credentials are reported as a
// *review.ConfigurationError before any request is made.
func (s *ReviewService) Store() (ItemStore, error) {
	if missing := s.cfg.Airtable.Missing(); len(missing) > 0 {
		return nil, &review.ConfigurationError{Missing: missing}
	}
	return s.newStore(s.cfg)
}

// Pending fetches the undecided items for customer.
func (s *ReviewService) Pending(ctx context.Context, customer string) ([]review.Item, error) {
	store, err := s.Store()
	if err != nil {
		return nil, err
	}
	return store.FetchPendingItems(ctx, s.Customer(customer))
}

// Start loads the pending items once and returns a session over them.
func (s *ReviewService) Start(ctx context.Context, customer string, notifier review.Notifier) (*review.Session, error) {
	store, err := s.Store()
	if err != nil {
		return nil, err
	}

	customer = s.Customer(customer)
	items, err := store.FetchPendingItems(ctx, customer)
	if err != nil {
		return nil, err
	}

	sess := review.NewSession(items, store, review.WithNotifier(notifier))
	s.log.Info().
		Str("review_session", sess.ID()).
		Str("customer", customer).
		Int("items", len(items)).
		Msg("review session started")
	return sess, nil
}

// DecisionInput is one entry of a headless decision file.
type DecisionInput struct {
	ID       string `json:"id"`
	Decision string `json:"decision"`
	Question string `json:"question,omitempty"`
}

// DecisionResult reports the outcome for one item.
type DecisionResult struct {
	ID       string          `json:"id"`
	Title    string          `json:"title"`
	Decision review.Decision `json:"decision"`
	Error    string          `json:"error,omitempty"`
}

type plannedDecision struct {
	decision review.Decision
	question string
}

// Apply records the given decisions through a review session. Items are
// decided in queue order regardless of input order; the first failure stops
// the run and leaves that item and all later ones pending.
func (s *ReviewService) Apply(ctx context.Context, customer string, inputs DecisionInputs, notifier review.Notifier) ([]DecisionResult, error) {
	plan, err := planDecisions(inputs)
	if err != nil {
		return nil, err
	}

	store, err := s.Store()
	if err != nil {
		return nil, err
	}

	pending, err := store.FetchPendingItems(ctx, s.Customer(customer))
	if err != nil {
		return nil, err
	}

	selected := make([]review.Item, 0, len(plan))
	found := make(map[string]bool, len(plan))
	for _, item := range pending {
		if _, ok := plan[item.ID]; ok {
			selected = append(selected, item)
			found[item.ID] = true
		}
	}

	var unknown []string
	for _, in := range inputs {
		if !found[in.ID] {
			unknown = append(unknown, in.ID)
		}
	}
	if len(unknown) > 0 {
		return nil, fmt.Errorf("items are not pending: %s", strings.Join(unknown, ", "))
	}

	sess := review.NewSession(selected, store, review.WithNotifier(notifier))
	results := make([]DecisionResult, 0, len(selected))

	for {
		item, ok := sess.Current()
		if !ok {
			break
		}

		p := plan[item.ID]
		res := DecisionResult{ID: item.ID, Title: item.Title, Decision: p.decision}
		if err := sess.Decide(ctx, p.decision, p.question); err != nil {
			res.Error = review.Message(err)
			results = append(results, res)
			return results, fmt.Errorf("decide %s: %w", item.ID, err)
		}
		results = append(results, res)
	}

	return results, nil
}

// DecisionInputs is the decoded content of a headless decision file.
type DecisionInputs []DecisionInput

// Validate reports every malformed entry at once.
func (in DecisionInputs) Validate() error {
	if len(in) == 0 {
		return criterio.NewFieldErrors("decisions", fmt.Errorf("array is empty"))
	}

	var errs criterio.FieldErrorsBuilder
	seen := make(map[string]bool, len(in))

	for i, d := range in {
		field := fmt.Sprintf("decisions[%d]", i)

		switch {
		case review.IsBlank(d.ID):
			errs = errs.Append(field+".id", fmt.Errorf("must not be blank"))
		case seen[d.ID]:
			errs = errs.Append(field+".id", fmt.Errorf("duplicate item %q", d.ID))
		default:
			seen[d.ID] = true
		}

		decision, ok := review.ParseDecision(d.Decision)
		if !ok {
			errs = errs.Append(field+".decision", fmt.Errorf("unknown decision %q", d.Decision))
			continue
		}
		if decision == review.DecisionQuestioned && review.IsBlank(d.Question) {
			errs = errs.Append(field+".question", fmt.Errorf("must not be blank"))
		}
	}

	return errs.ToError()
}

func planDecisions(inputs DecisionInputs) (map[string]plannedDecision, error) {
	if err := inputs.Validate(); err != nil {
		return nil, err
	}

	plan := make(map[string]plannedDecision, len(inputs))
	for _, in := range inputs {
		d, _ := review.ParseDecision(in.Decision)
		plan[in.ID] = plannedDecision{decision: d, question: in.Question}
	}
	return plan, nil
}
