package airtable

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"

	"github.com/colonyops/freigabe/internal/core/logging"
	"github.com/colonyops/freigabe/internal/core/review"
)

var (
	_ review.Gateway    = (*Gateway)(nil)
	_ review.ItemSource = (*Gateway)(nil)
)

// Gateway reads and updates review items in one Airtable table.
type Gateway struct {
	cfg       Config
	http      *http.Client
	log       zerolog.Logger
	typeGlobs []string
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithHTTPClient replaces the HTTP client. The configured timeout is not
// applied to a client supplied this way.
func WithHTTPClient(c *http.Client) Option {
	return func(g *Gateway) { g.http = c }
}

// WithLogger overrides the gateway logger.
func WithLogger(l zerolog.Logger) Option {
	return func(g *Gateway) { g.log = l }
}

// WithTypeFilter keeps only items whose type matches one of the glob
// patterns. An empty list keeps everything.
func WithTypeFilter(patterns []string) Option {
	return func(g *Gateway) { g.typeGlobs = patterns }
}

// New builds a gateway. It returns a *review.ConfigurationError when the
// credentials or table are missing.
func New(cfg Config, opts ...Option) (*Gateway, error) {
	if missing := cfg.Missing(); len(missing) > 0 {
		return nil, &review.ConfigurationError{Missing: missing}
	}
	cfg = cfg.withDefaults()

	g := &Gateway{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
		log:  logging.Component("airtable"),
	}
	for _, opt := range opts {
		opt(g)
	}

	for _, p := range g.typeGlobs {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid type pattern %q", p)
		}
	}

	return g, nil
}

// FetchPendingItems returns every undecided record, following pagination.
// customer restricts results to one customer tag when non-empty.
func (g *Gateway) FetchPendingItems(ctx context.Context, customer string) ([]review.Item, error) {
	var (
		items  []review.Item
		offset string
		pages  int
	)

	for {
		q := url.Values{}
		q.Set("filterByFormula", pendingFormula(g.cfg.Fields.Status))
		q.Set("pageSize", strconv.Itoa(defaultPage))
		if offset != "" {
			q.Set("offset", offset)
		}

		var resp listResponse
		if err := g.do(ctx, "fetch items", http.MethodGet, g.tableURL(q), nil, &resp); err != nil {
			return nil, err
		}
		pages++

		for _, rec := range resp.Records {
			if !review.IsBlank(rec.text(g.cfg.Fields.Status)) {
				continue
			}

			item := rec.toItem(g.cfg.Fields)
			if customer != "" && !CustomerMatches(item.Customer, customer) {
				continue
			}
			if !g.typeAllowed(item.Type) {
				continue
			}
			items = append(items, item)
		}

		if resp.Offset == "" {
			break
		}
		offset = resp.Offset
	}

	g.log.Info().Ctx(ctx).
		Int("items", len(items)).
		Int("pages", pages).
		Str("customer", customer).
		Msg("fetched pending items")

	return items, nil
}

func (g *Gateway) typeAllowed(typ string) bool {
	if len(g.typeGlobs) == 0 {
		return true
	}
	for _, p := range g.typeGlobs {
		if ok, _ := doublestar.Match(p, typ); ok {
			return true
		}
	}
	return false
}

// SetStatus writes the decision, and the question for DecisionQuestioned.
func (g *Gateway) SetStatus(ctx context.Context, id string, d review.Decision, question string) error {
	value := g.cfg.Status.For(d)
	if value == "" {
		return &review.ValidationError{Field: "decision", Reason: fmt.Sprintf("%q is not a valid decision", d)}
	}

	fields := map[string]any{g.cfg.Fields.Status: value}
	if d == review.DecisionQuestioned && question != "" {
		fields[g.cfg.Fields.Question] = question
	}

	return g.do(ctx, "set status", http.MethodPatch, g.recordURL(id), updateRequest{Fields: fields}, nil)
}

// SetDescription replaces the description of a record. Blank or oversized
// text is rejected without a request.
func (g *Gateway) SetDescription(ctx context.Context, id string, text string) error {
	if err := review.ValidateDescription(text); err != nil {
		return err
	}

	fields := map[string]any{g.cfg.Fields.Description: text}
	return g.do(ctx, "set description", http.MethodPatch, g.recordURL(id), updateRequest{Fields: fields}, nil)
}
