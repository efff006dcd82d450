package tui

import (
	"math/rand/v2"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/colonyops/freigabe/internal/core/review"
	"github.com/colonyops/freigabe/internal/core/styles"
)

const (
	animationInterval = 50 * time.Millisecond
	swipeFrames       = 8
	confettiFrames    = 40
	confettiPieces    = 60
)

func scheduleSwipeTick(gen int) tea.Cmd {
	return tea.Tick(animationInterval, func(time.Time) tea.Msg {
		return swipeTickMsg{gen: gen}
	})
}

func scheduleConfettiTick() tea.Cmd {
	return tea.Tick(animationInterval, func(t time.Time) tea.Msg {
		return confettiTickMsg(t)
	})
}

// swipe tints the card border after a committed decision and fades back to
// the normal border colour. It is presentation only.
type swipe struct {
	decision review.Decision
	frame    int
}

func newSwipe(d review.Decision) *swipe {
	return &swipe{decision: d}
}

// Step advances one frame and reports whether the animation is still running.
func (s *swipe) Step() bool {
	s.frame++
	return s.frame < swipeFrames
}

// Tint returns the border colour for the current frame.
func (s *swipe) Tint() lipgloss.Color {
	return styles.Blend(decisionColor(s.decision), styles.ColorForeground, float64(s.frame)/swipeFrames)
}

func decisionColor(d review.Decision) lipgloss.Color {
	switch d {
	case review.DecisionApproved:
		return styles.ColorSuccess
	case review.DecisionRejected:
		return styles.ColorError
	default:
		return styles.ColorInfo
	}
}

type particle struct {
	x, y  float64
	dx    float64
	dy    float64
	glyph string
	color lipgloss.Color
}

// confetti is the completion celebration: particles fall from the top of the
// screen and fade towards the background colour.
type confetti struct {
	width, height int
	frame         int
	pieces        []particle
}

func newConfetti(width, height int, rng *rand.Rand) *confetti {
	c := &confetti{width: max(width, 1), height: max(height, 1)}
	for range confettiPieces {
		c.pieces = append(c.pieces, particle{
			x:     rng.Float64() * float64(c.width),
			y:     -rng.Float64() * float64(c.height) / 2,
			dx:    rng.Float64() - 0.5,
			dy:    0.5 + rng.Float64(),
			glyph: styles.ConfettiGlyphs[rng.IntN(len(styles.ConfettiGlyphs))],
			color: styles.Blend(styles.ColorSuccess, styles.ColorPrimary, rng.Float64()),
		})
	}
	return c
}

// Step advances one frame and reports whether the animation is still running.
func (c *confetti) Step() bool {
	c.frame++
	for i := range c.pieces {
		c.pieces[i].x += c.pieces[i].dx
		c.pieces[i].y += c.pieces[i].dy
	}
	return c.frame < confettiFrames
}

// View renders the particle field as width x height cells.
func (c *confetti) View() string {
	grid := make([][]string, c.height)
	for y := range grid {
		grid[y] = make([]string, c.width)
		for x := range grid[y] {
			grid[y][x] = " "
		}
	}

	fade := float64(c.frame) / confettiFrames
	for _, p := range c.pieces {
		x, y := int(p.x), int(p.y)
		if x < 0 || y < 0 || x >= c.width || y >= c.height {
			continue
		}
		color := styles.Blend(p.color, styles.ColorBackground, fade)
		grid[y][x] = lipgloss.NewStyle().Foreground(color).Render(p.glyph)
	}

	lines := make([]string, c.height)
	for y, row := range grid {
		lines[y] = strings.Join(row, "")
	}
	return strings.Join(lines, "\n")
}
