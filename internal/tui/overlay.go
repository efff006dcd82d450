package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// overlayAt draws fg over bg with its top-left corner at column x, row y.
// bg is padded to height lines; cells right of fg are kept.
func overlayAt(bg, fg string, x, y, height int) string {
	bgLines := strings.Split(bg, "\n")
	for len(bgLines) < height {
		bgLines = append(bgLines, "")
	}

	for i, line := range strings.Split(fg, "\n") {
		row := y + i
		if row < 0 || row >= len(bgLines) {
			continue
		}

		left := ansi.Truncate(bgLines[row], x, "")
		if pad := x - ansi.StringWidth(left); pad > 0 {
			left += strings.Repeat(" ", pad)
		}
		right := ansi.TruncateLeft(bgLines[row], x+ansi.StringWidth(line), "")
		bgLines[row] = left + line + right
	}

	return strings.Join(bgLines, "\n")
}

// overlayCenter draws fg centred over a width x height bg.
func overlayCenter(bg, fg string, width, height int) string {
	x := max((width-lipgloss.Width(fg))/2, 0)
	y := max((height-lipgloss.Height(fg))/2, 0)
	return overlayAt(bg, fg, x, y, height)
}
