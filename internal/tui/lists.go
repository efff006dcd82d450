package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/colonyops/freigabe/internal/core/review"
	"github.com/colonyops/freigabe/internal/core/styles"
)

type listFocus int

const (
	focusCard listFocus = iota
	focusApproved
	focusRejected
)

// listState tracks keyboard focus and selection across the processed lists.
type listState struct {
	focus    listFocus
	approved int
	rejected int
}

// cycle moves focus card -> approved -> rejected -> card, skipping empty lists.
func (l listState) cycle(approved, rejected int) listState {
	for range 3 {
		l.focus = (l.focus + 1) % 3
		switch {
		case l.focus == focusCard,
			l.focus == focusApproved && approved > 0,
			l.focus == focusRejected && rejected > 0:
			return l
		}
	}
	return l
}

func (l listState) move(delta, approved, rejected int) listState {
	switch l.focus {
	case focusApproved:
		l.approved = clampIndex(l.approved+delta, approved)
	case focusRejected:
		l.rejected = clampIndex(l.rejected+delta, rejected)
	}
	return l
}

// selected returns the item id under the cursor of the focused list.
func (l listState) selected(approved, rejected []review.ProcessedItem) (string, bool) {
	switch l.focus {
	case focusApproved:
		if l.approved < len(approved) {
			return approved[l.approved].Item.ID, true
		}
	case focusRejected:
		if l.rejected < len(rejected) {
			return rejected[l.rejected].Item.ID, true
		}
	}
	return "", false
}

func clampIndex(i, n int) int {
	if n == 0 {
		return 0
	}
	return max(0, min(i, n-1))
}

// renderList draws one processed list. cursor is -1 when the list is not focused.
func renderList(title, icon string, iconStyle lipgloss.Style, items []review.ProcessedItem, cursor, width, height int) string {
	inner := max(width-styles.ListPanelStyle.GetHorizontalFrameSize(), 8)
	rows := max(height-styles.ListPanelStyle.GetVerticalFrameSize()-1, 1)

	lines := []string{styles.ListTitleStyle.Render(fmt.Sprintf("%s (%d)", title, len(items)))}
	if len(items) == 0 {
		lines = append(lines, styles.ListEmptyStyle.Render("none yet"))
	}

	start := 0
	if cursor >= rows {
		start = cursor - rows + 1
	}
	for i := start; i < len(items) && i-start < rows; i++ {
		text := ansi.Truncate(items[i].Item.Title, inner-4, "…")
		if i == cursor {
			lines = append(lines, styles.ListCursorStyle.Render("> "+text))
			continue
		}
		lines = append(lines, iconStyle.Render(icon)+" "+styles.ListItemStyle.Render(text))
	}

	panel := styles.ListPanelStyle.Width(inner)
	if cursor >= 0 {
		panel = panel.BorderForeground(styles.ColorPrimary)
	}
	return panel.Render(strings.Join(lines, "\n"))
}
