package tui

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"

	"github.com/colonyops/freigabe/internal/core/review"
	"github.com/colonyops/freigabe/internal/core/styles"
)

func TestSwipe_FadesToForeground(t *testing.T) {
	s := newSwipe(review.DecisionApproved)
	first := s.Tint()

	frames := 1
	for s.Step() {
		frames++
	}

	assert.Equal(t, swipeFrames, frames)
	assert.NotEqual(t, first, s.Tint())
	assert.Equal(t, styles.Blend(styles.ColorSuccess, styles.ColorForeground, 1), s.Tint())
}

func TestDecisionColor(t *testing.T) {
	assert.Equal(t, styles.ColorSuccess, decisionColor(review.DecisionApproved))
	assert.Equal(t, styles.ColorError, decisionColor(review.DecisionRejected))
	assert.Equal(t, styles.ColorInfo, decisionColor(review.DecisionQuestioned))
}

func TestConfetti_ViewSize(t *testing.T) {
	c := newConfetti(20, 6, rand.New(rand.NewPCG(7, 7)))
	for range 10 {
		c.Step()
	}

	lines := strings.Split(c.View(), "\n")
	assert.Len(t, lines, 6)
	for _, line := range lines {
		assert.Equal(t, 20, ansi.StringWidth(line))
	}
}

func TestConfetti_Finishes(t *testing.T) {
	c := newConfetti(10, 5, rand.New(rand.NewPCG(1, 1)))
	steps := 0
	for c.Step() {
		steps++
	}
	assert.Equal(t, confettiFrames-1, steps)
}
