package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/colonyops/freigabe/internal/core/review"
)

// decisionSettledMsg carries the gateway result of a submission back to the
// update loop.
type decisionSettledMsg struct {
	sub *review.Submission
	err error
}

// editSettledMsg carries the gateway result of a description edit.
type editSettledMsg struct {
	edit *review.Edit
	err  error
}

type (
	toastTickMsg    time.Time
	confettiTickMsg time.Time
)

// swipeTickMsg advances the swipe started for generation gen. Ticks from an
// earlier swipe are dropped.
type swipeTickMsg struct {
	gen int
}

func runDecision(ctx context.Context, sub *review.Submission) tea.Cmd {
	return func() tea.Msg {
		return decisionSettledMsg{sub: sub, err: sub.Run(ctx)}
	}
}

func runEdit(ctx context.Context, edit *review.Edit) tea.Cmd {
	return func() tea.Msg {
		return editSettledMsg{edit: edit, err: edit.Run(ctx)}
	}
}
