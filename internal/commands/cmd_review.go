package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/freigabe/internal/core/config"
	"github.com/colonyops/freigabe/internal/core/review"
	"github.com/colonyops/freigabe/internal/freigabe"
	"github.com/colonyops/freigabe/internal/printer"
	"github.com/colonyops/freigabe/internal/tui"
)

type ReviewCmd struct {
	flags *Flags
	app   *freigabe.App
}

// NewReviewCmd creates a new review command
func NewReviewCmd(flags *Flags, app *freigabe.App) *ReviewCmd {
	return &ReviewCmd{flags: flags, app: app}
}

// Register adds the review command to the application
func (cmd *ReviewCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "review",
		Usage:     "Review pending items interactively",
		UsageText: "freigabe review [--customer NAME]",
		Description: `Opens the review screen. Items awaiting a decision are loaded once and
shown one at a time. Approve, reject or ask a question; the next item appears
once the item store has confirmed the decision.

This is also what runs when freigabe is started without a subcommand.`,
		Action: cmd.run,
	})

	return app
}

// Run executes the review TUI. Exported for use as default command.
func (cmd *ReviewCmd) Run(ctx context.Context, c *cli.Command) error {
	return cmd.run(ctx, c)
}

func (cmd *ReviewCmd) run(ctx context.Context, _ *cli.Command) error {
	cfg := cmd.app.Config
	customer := cmd.app.Review.Customer(cmd.flags.Customer)

	sess, loadErr := cmd.app.Review.Start(ctx, customer, cmd.app.Bus)
	if loadErr != nil {
		var cfgErr *review.ConfigurationError
		if errors.As(loadErr, &cfgErr) {
			log.Warn().Strs("missing", cfgErr.Missing).Msg("review session not started")
		} else {
			log.Error().Err(loadErr).Msg("failed to load items")
		}
	}

	var warnings []string
	if loadErr == nil {
		warnings = warningLines(cfg.Warnings())
	}

	m := tui.New(ctx, tui.Options{
		Session:   sess,
		Bus:       cmd.app.Bus,
		ConfigErr: loadErr,
		Customer:  customer,
		ToastTTL:  cfg.TUI.ToastTTL,
		ErrorTTL:  cfg.TUI.ErrorTTL,
		Celebrate: cfg.TUI.CelebrateEnabled(),
		Warnings:  warnings,
	})

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("run tui: %w", err)
	}

	if sess != nil {
		printSummary(printer.Ctx(ctx), sess)
	}
	return nil
}

func warningLines(warnings []config.ValidationWarning) []string {
	lines := make([]string, 0, len(warnings))
	for _, w := range warnings {
		line := w.Category + ": "
		if w.Item != "" {
			line += w.Item + " "
		}
		lines = append(lines, line+w.Message)
	}
	return lines
}

func printSummary(p *printer.Printer, sess *review.Session) {
	processed := len(sess.Processed())
	if processed == 0 {
		return
	}

	parts := []string{
		fmt.Sprintf("%d approved", len(sess.Approved())),
		fmt.Sprintf("%d rejected", len(sess.Rejected())),
	}
	if q := len(sess.Questioned()); q > 0 {
		parts = append(parts, fmt.Sprintf("%d questioned", q))
	}

	p.Success(
		fmt.Sprintf("Reviewed %d of %d items", processed, sess.Len()),
		strings.Join(parts, ", "),
	)
}
