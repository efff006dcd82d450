package commands

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/freigabe/internal/core/config"
	"github.com/colonyops/freigabe/internal/core/notify"
	"github.com/colonyops/freigabe/internal/core/review"
	"github.com/colonyops/freigabe/internal/data/db"
	"github.com/colonyops/freigabe/internal/freigabe"
	"github.com/colonyops/freigabe/internal/printer"
)

type fakeStore struct {
	items  []review.Item
	calls  []string
	failOn string
}

func (f *fakeStore) FetchPendingItems(context.Context, string) ([]review.Item, error) {
	return f.items, nil
}

func (f *fakeStore) SetStatus(_ context.Context, id string, d review.Decision, _ string) error {
	if id == f.failOn {
		return &review.GatewayError{Op: "set status", Status: 422, Message: "Field \"Status\" cannot accept the provided value"}
	}
	f.calls = append(f.calls, id+"="+string(d))
	return nil
}

func (f *fakeStore) SetDescription(context.Context, string, string) error { return nil }

type harness struct {
	flags  *Flags
	app    *freigabe.App
	store  *fakeStore
	stdout bytes.Buffer
	stderr bytes.Buffer
}

func newHarness(t *testing.T, items ...review.Item) *harness {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.DataDir = t.TempDir()
	cfg.Airtable.APIKey = "patTEST"
	cfg.Airtable.BaseID = "appTEST"

	database, err := db.Open(cfg.DataDir, db.DefaultOpenOptions())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	h := &harness{
		flags: &Flags{Config: &cfg, DataDir: cfg.DataDir},
		store: &fakeStore{items: items},
	}
	h.app = freigabe.NewApp(&cfg, database, func(*config.Config) (freigabe.ItemStore, error) {
		return h.store, nil
	})
	return h
}

// run executes args against a root command holding only register's command.
func (h *harness) run(t *testing.T, register func(*cli.Command) *cli.Command, args ...string) error {
	t.Helper()

	root := &cli.Command{
		Name:           "freigabe",
		Writer:         &h.stdout,
		ErrWriter:      &h.stderr,
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
	}
	root = register(root)

	ctx := printer.NewContext(context.Background(), printer.New(&h.stderr))
	return root.Run(ctx, append([]string{"freigabe"}, args...))
}

func sampleItems() []review.Item {
	return []review.Item{
		{ID: "rec1", Title: "Spring banner", Type: "Banner", Attachments: []review.Attachment{{ID: "att1", URL: "https://dl.example/a.png"}}},
		{ID: "rec2", Title: "Newsletter", Type: "Mail"},
	}
}

func TestLsCmd(t *testing.T) {
	t.Run("table", func(t *testing.T) {
		h := newHarness(t, sampleItems()...)

		err := h.run(t, NewLsCmd(h.flags, h.app).Register, "ls")
		require.NoError(t, err)

		out := h.stdout.String()
		assert.Contains(t, out, "Spring banner")
		assert.Contains(t, out, "Newsletter")
		assert.Contains(t, out, "TITLE")
	})

	t.Run("json lines", func(t *testing.T) {
		h := newHarness(t, sampleItems()...)

		err := h.run(t, NewLsCmd(h.flags, h.app).Register, "ls", "--json")
		require.NoError(t, err)

		lines := strings.Split(strings.TrimSpace(h.stdout.String()), "\n")
		require.Len(t, lines, 2)
		assert.Contains(t, lines[0], `"id":"rec1"`)
		assert.Contains(t, lines[1], `"id":"rec2"`)
	})

	t.Run("empty", func(t *testing.T) {
		h := newHarness(t)

		err := h.run(t, NewLsCmd(h.flags, h.app).Register, "ls")
		require.NoError(t, err)

		assert.Empty(t, h.stdout.String())
		assert.Contains(t, h.stderr.String(), "No items awaiting review")
	})

	t.Run("missing credentials", func(t *testing.T) {
		h := newHarness(t, sampleItems()...)
		h.app.Config.Airtable.APIKey = ""

		err := h.run(t, NewLsCmd(h.flags, h.app).Register, "ls")

		var cfgErr *review.ConfigurationError
		require.ErrorAs(t, err, &cfgErr)
		assert.Equal(t, []string{"api_key"}, cfgErr.Missing)
	})
}

func TestDecideCmd(t *testing.T) {
	t.Run("applies decisions", func(t *testing.T) {
		h := newHarness(t, sampleItems()...)
		cmd := NewDecideCmd(h.flags, h.app)
		cmd.input.Stdin = strings.NewReader(`[{"id":"rec2","decision":"reject"},{"id":"rec1","decision":"approve"}]`)

		err := h.run(t, cmd.Register, "decide")
		require.NoError(t, err)

		assert.Equal(t, []string{"rec1=approved", "rec2=rejected"}, h.store.calls)
		assert.Contains(t, h.stderr.String(), "Spring banner: approved")
		assert.Contains(t, h.stderr.String(), "Newsletter: rejected")

		history, err := h.app.Bus.History(context.Background())
		require.NoError(t, err)
		assert.Len(t, history, 2)
	})

	t.Run("stops on failure", func(t *testing.T) {
		h := newHarness(t, sampleItems()...)
		h.store.failOn = "rec1"
		cmd := NewDecideCmd(h.flags, h.app)
		cmd.input.Stdin = strings.NewReader(`[{"id":"rec1","decision":"approve"},{"id":"rec2","decision":"approve"}]`)

		err := h.run(t, cmd.Register, "decide", "--json")
		require.Error(t, err)

		assert.Empty(t, h.store.calls)
		lines := strings.Split(strings.TrimSpace(h.stdout.String()), "\n")
		require.Len(t, lines, 1)
		assert.Contains(t, lines[0], `"id":"rec1"`)
		assert.Contains(t, lines[0], "cannot accept")
	})

	t.Run("rejects unknown fields", func(t *testing.T) {
		h := newHarness(t, sampleItems()...)
		cmd := NewDecideCmd(h.flags, h.app)
		cmd.input.Stdin = strings.NewReader(`[{"id":"rec1","verdict":"approve"}]`)

		err := h.run(t, cmd.Register, "decide")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "read decisions")
		assert.Empty(t, h.store.calls)
	})
}

func TestNotificationsCmd(t *testing.T) {
	seed := func(h *harness) {
		h.app.Bus.Notify(notify.LevelSuccess, "Approved", "Spring banner")
		h.app.Bus.Notify(notify.LevelError, "Server error", `"Newsletter" was not updated. Please try again.`)
	}

	t.Run("lists newest first", func(t *testing.T) {
		h := newHarness(t)
		seed(h)

		err := h.run(t, NewNotificationsCmd(h.flags, h.app).Register, "notifications", "--json")
		require.NoError(t, err)

		lines := strings.Split(strings.TrimSpace(h.stdout.String()), "\n")
		require.Len(t, lines, 2)
		assert.Contains(t, lines[0], `"message":"Server error"`)
		assert.Contains(t, lines[1], `"message":"Approved"`)
	})

	t.Run("limit keeps the newest", func(t *testing.T) {
		h := newHarness(t)
		seed(h)

		err := h.run(t, NewNotificationsCmd(h.flags, h.app).Register, "notifications", "--limit", "1", "--json")
		require.NoError(t, err)

		lines := strings.Split(strings.TrimSpace(h.stdout.String()), "\n")
		require.Len(t, lines, 1)
		assert.Contains(t, lines[0], `"message":"Server error"`)
	})

	t.Run("table", func(t *testing.T) {
		h := newHarness(t)
		seed(h)

		err := h.run(t, NewNotificationsCmd(h.flags, h.app).Register, "notifications")
		require.NoError(t, err)
		assert.Contains(t, h.stdout.String(), "Spring banner")
	})

	t.Run("clear with confirmation", func(t *testing.T) {
		h := newHarness(t)
		seed(h)

		cmd := NewNotificationsCmd(h.flags, h.app)
		var asked int64
		cmd.confirm = func(count int64) (bool, error) {
			asked = count
			return true, nil
		}

		err := h.run(t, cmd.Register, "notifications", "--clear")
		require.NoError(t, err)
		assert.Equal(t, int64(2), asked)

		history, err := h.app.Bus.History(context.Background())
		require.NoError(t, err)
		assert.Empty(t, history)
		assert.Contains(t, h.stderr.String(), "Cleared 2 notification(s)")
	})

	t.Run("clear declined", func(t *testing.T) {
		h := newHarness(t)
		seed(h)

		cmd := NewNotificationsCmd(h.flags, h.app)
		cmd.confirm = func(int64) (bool, error) { return false, nil }

		err := h.run(t, cmd.Register, "notifications", "--clear")
		require.NoError(t, err)

		history, err := h.app.Bus.History(context.Background())
		require.NoError(t, err)
		assert.Len(t, history, 2)
	})

	t.Run("clear with yes skips prompt", func(t *testing.T) {
		h := newHarness(t)
		seed(h)

		cmd := NewNotificationsCmd(h.flags, h.app)
		cmd.confirm = func(int64) (bool, error) {
			t.Fatal("confirm must not be called")
			return false, nil
		}

		err := h.run(t, cmd.Register, "notifications", "--clear", "--yes")
		require.NoError(t, err)
	})
}

func TestConfigValidateCmd(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		h := newHarness(t)

		err := h.run(t, NewConfigValidateCmd(h.flags).Register, "config", "validate", "--format", "json")
		require.NoError(t, err)
		assert.Contains(t, h.stdout.String(), `"valid": true`)
	})

	t.Run("invalid", func(t *testing.T) {
		h := newHarness(t)
		h.flags.Config.TUI.Theme = "neon"

		err := h.run(t, NewConfigValidateCmd(h.flags).Register, "config", "validate")
		require.Error(t, err)

		out := h.stderr.String()
		assert.Contains(t, out, "tui.theme")
		assert.Contains(t, out, "1 error(s) found")
	})

	t.Run("missing credentials warn", func(t *testing.T) {
		h := newHarness(t)
		h.flags.Config.Airtable.APIKey = ""

		err := h.run(t, NewConfigValidateCmd(h.flags).Register, "config", "validate")
		require.NoError(t, err)
		assert.Contains(t, h.stderr.String(), "api_key")
	})
}

func TestWarningLines(t *testing.T) {
	lines := warningLines([]config.ValidationWarning{
		{Category: "Airtable", Item: "api_key", Message: "does not look like an Airtable token"},
		{Category: "Review", Message: "no customer set"},
	})

	assert.Equal(t, []string{
		"Airtable: api_key does not look like an Airtable token",
		"Review: no customer set",
	}, lines)
}
