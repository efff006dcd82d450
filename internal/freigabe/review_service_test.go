package freigabe

import (
	"context"
	"errors"
	"testing"

	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/freigabe/internal/core/config"
	"github.com/colonyops/freigabe/internal/core/notify"
	"github.com/colonyops/freigabe/internal/core/review"
)

type statusCall struct {
	id       string
	decision review.Decision
	question string
}

type fakeStore struct {
	items     []review.Item
	customers []string
	calls     []statusCall
	failOn    string
	fetchErr  error
}

func (f *fakeStore) FetchPendingItems(_ context.Context, customer string) ([]review.Item, error) {
	f.customers = append(f.customers, customer)
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.items, nil
}

func (f *fakeStore) SetStatus(_ context.Context, id string, d review.Decision, question string) error {
	if id == f.failOn {
		return &review.GatewayError{Op: "set status", Status: 500, Message: "Server error"}
	}
	f.calls = append(f.calls, statusCall{id: id, decision: d, question: question})
	return nil
}

func (f *fakeStore) SetDescription(context.Context, string, string) error {
	return nil
}

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Airtable.APIKey = "key"
	cfg.Airtable.BaseID = "app123"
	cfg.Review.Customer = "acme"
	return &cfg
}

func serviceWith(cfg *config.Config, store *fakeStore) *ReviewService {
	return NewReviewService(cfg, func(*config.Config) (ItemStore, error) {
		return store, nil
	})
}

func threeItems() []review.Item {
	return []review.Item{
		{ID: "rec1", Title: "Spring banner"},
		{ID: "rec2", Title: "Newsletter"},
		{ID: "rec3", Title: "Landing page"},
	}
}

func TestReviewService_Customer(t *testing.T) {
	svc := serviceWith(testConfig(), &fakeStore{})

	assert.Equal(t, "acme", svc.Customer(""))
	assert.Equal(t, "acme", svc.Customer("   "))
	assert.Equal(t, "globex", svc.Customer("globex"))
}

func TestReviewService_StoreMissingCredentials(t *testing.T) {
	cfg := config.DefaultConfig()
	called := false
	svc := NewReviewService(&cfg, func(*config.Config) (ItemStore, error) {
		called = true
		return &fakeStore{}, nil
	})

	_, err := svc.Store()
	require.Error(t, err)

	var cfgErr *review.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Contains(t, cfgErr.Missing, "api_key")
	assert.False(t, called, "factory must not run without credentials")
}

func TestReviewService_Start(t *testing.T) {
	store := &fakeStore{items: threeItems()}
	svc := serviceWith(testConfig(), store)

	sess, err := svc.Start(context.Background(), "", nil)
	require.NoError(t, err)

	assert.Equal(t, 3, sess.Len())
	assert.Equal(t, []string{"acme"}, store.customers)

	item, ok := sess.Current()
	require.True(t, ok)
	assert.Equal(t, "rec1", item.ID)
}

func TestReviewService_StartFetchError(t *testing.T) {
	store := &fakeStore{fetchErr: &review.GatewayError{Op: "list items", Status: 401, Message: "Invalid API key"}}
	svc := serviceWith(testConfig(), store)

	_, err := svc.Start(context.Background(), "", nil)
	require.Error(t, err)
	assert.Equal(t, "Invalid API key", review.Message(err))
}

func TestReviewService_Apply(t *testing.T) {
	t.Run("decides in queue order", func(t *testing.T) {
		store := &fakeStore{items: threeItems()}
		svc := serviceWith(testConfig(), store)

		results, err := svc.Apply(context.Background(), "", []DecisionInput{
			{ID: "rec3", Decision: "reject"},
			{ID: "rec1", Decision: "approve"},
		}, nil)
		require.NoError(t, err)

		require.Len(t, results, 2)
		assert.Equal(t, "rec1", results[0].ID)
		assert.Equal(t, review.DecisionApproved, results[0].Decision)
		assert.Equal(t, "rec3", results[1].ID)
		assert.Equal(t, review.DecisionRejected, results[1].Decision)

		assert.Equal(t, []statusCall{
			{id: "rec1", decision: review.DecisionApproved},
			{id: "rec3", decision: review.DecisionRejected},
		}, store.calls)
	})

	t.Run("question is forwarded", func(t *testing.T) {
		store := &fakeStore{items: threeItems()}
		svc := serviceWith(testConfig(), store)

		_, err := svc.Apply(context.Background(), "", []DecisionInput{
			{ID: "rec2", Decision: "question", Question: "Which font?"},
		}, nil)
		require.NoError(t, err)

		require.Len(t, store.calls, 1)
		assert.Equal(t, "Which font?", store.calls[0].question)
	})

	t.Run("stops at first failure", func(t *testing.T) {
		store := &fakeStore{items: threeItems(), failOn: "rec2"}
		svc := serviceWith(testConfig(), store)

		var notes []string
		notifier := review.NotifierFunc(func(level notify.Level, message, _ string) {
			notes = append(notes, string(level)+":"+message)
		})

		results, err := svc.Apply(context.Background(), "", []DecisionInput{
			{ID: "rec1", Decision: "approve"},
			{ID: "rec2", Decision: "approve"},
			{ID: "rec3", Decision: "approve"},
		}, notifier)
		require.Error(t, err)

		var gwErr *review.GatewayError
		require.ErrorAs(t, err, &gwErr)

		require.Len(t, results, 2)
		assert.Empty(t, results[0].Error)
		assert.Equal(t, "Server error", results[1].Error)
		assert.Len(t, store.calls, 1)
		assert.Equal(t, []string{"success:Approved", "error:Server error"}, notes)
	})

	t.Run("unknown item", func(t *testing.T) {
		store := &fakeStore{items: threeItems()}
		svc := serviceWith(testConfig(), store)

		_, err := svc.Apply(context.Background(), "", []DecisionInput{
			{ID: "rec1", Decision: "approve"},
			{ID: "rec9", Decision: "approve"},
		}, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "rec9")
		assert.Empty(t, store.calls)
	})

	t.Run("invalid input is rejected before fetching", func(t *testing.T) {
		tests := []struct {
			name   string
			inputs []DecisionInput
			field  string
		}{
			{name: "empty", inputs: nil, field: "decisions"},
			{name: "blank id", inputs: []DecisionInput{{ID: " ", Decision: "approve"}}, field: "decisions[0].id"},
			{name: "duplicate", inputs: []DecisionInput{{ID: "rec1", Decision: "approve"}, {ID: "rec1", Decision: "reject"}}, field: "decisions[1].id"},
			{name: "unknown decision", inputs: []DecisionInput{{ID: "rec1", Decision: "maybe"}}, field: "decisions[0].decision"},
			{name: "blank question", inputs: []DecisionInput{{ID: "rec1", Decision: "ask"}}, field: "decisions[0].question"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				store := &fakeStore{items: threeItems()}
				svc := serviceWith(testConfig(), store)

				_, err := svc.Apply(context.Background(), "", tt.inputs, nil)

				var fieldErrs criterio.FieldErrors
				require.ErrorAs(t, err, &fieldErrs)
				require.Len(t, fieldErrs, 1)
				assert.Equal(t, tt.field, fieldErrs[0].Field)
				assert.Empty(t, store.customers)
			})
		}
	})

	t.Run("every bad entry is reported", func(t *testing.T) {
		store := &fakeStore{items: threeItems()}
		svc := serviceWith(testConfig(), store)

		_, err := svc.Apply(context.Background(), "", []DecisionInput{
			{ID: ""},
			{ID: "b", Decision: "maybe"},
		}, nil)

		var fieldErrs criterio.FieldErrors
		require.ErrorAs(t, err, &fieldErrs)

		fields := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			fields = append(fields, fe.Field)
		}
		assert.Equal(t, []string{"decisions[0].id", "decisions[0].decision", "decisions[1].decision"}, fields)
		assert.Empty(t, store.calls)
	})
}

func TestDecisionInputs_Validate(t *testing.T) {
	valid := DecisionInputs{
		{ID: "rec1", Decision: "approve"},
		{ID: "rec2", Decision: "ask", Question: "Which file?"},
	}
	require.NoError(t, valid.Validate())

	err := DecisionInputs{}.Validate()
	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Equal(t, "decisions", fieldErrs[0].Field)
}

func TestNewApp_WithoutDatabase(t *testing.T) {
	app := NewApp(testConfig(), nil, func(*config.Config) (ItemStore, error) {
		return &fakeStore{}, errors.New("unused")
	})

	require.NotNil(t, app.Bus)
	require.NotNil(t, app.Review)

	history, err := app.Bus.History(context.Background())
	require.NoError(t, err)
	assert.Empty(t, history)
}
