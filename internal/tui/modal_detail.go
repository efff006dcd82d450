package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/colonyops/freigabe/internal/core/review"
	"github.com/colonyops/freigabe/internal/core/styles"
)

const (
	modalMaxWidth  = 100
	modalMaxHeight = 30
	modalMargin    = 4
	modalChrome    = 9
)

// detailModal shows a processed item with its rendered description.
type detailModal struct {
	entry    review.ProcessedItem
	viewport viewport.Model
	width    int
}

func newDetailModal(entry review.ProcessedItem, md *markdown, width, height int) *detailModal {
	modalWidth := max(min(width-modalMargin, modalMaxWidth), 20)
	modalHeight := max(min(height-modalMargin, modalMaxHeight), modalChrome+3)
	inner := modalWidth - styles.ModalStyle.GetHorizontalFrameSize()

	vp := viewport.New(inner, modalHeight-modalChrome)
	vp.SetContent(detailBody(entry, md, inner))

	return &detailModal{entry: entry, viewport: vp, width: modalWidth}
}

func detailBody(entry review.ProcessedItem, md *markdown, width int) string {
	var b strings.Builder
	if entry.Item.Description != "" {
		b.WriteString(md.Render(entry.Item.Description, width))
	} else {
		b.WriteString(styles.ListEmptyStyle.Render("No description"))
	}

	if entry.Question != "" {
		b.WriteString("\n\n")
		b.WriteString(styles.InfoTextStyle.Render("Question: "))
		b.WriteString(entry.Question)
	}

	if atts := attachmentLines(entry.Item); len(atts) > 0 {
		b.WriteString("\n\n")
		b.WriteString(styles.ListTitleStyle.Render("Attachments"))
		for _, line := range atts {
			b.WriteString("\n")
			b.WriteString(line)
		}
	}
	return b.String()
}

// Update scrolls the viewport.
func (m *detailModal) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return cmd
}

// View renders the modal box.
func (m *detailModal) View() string {
	status := decisionLabel(m.entry.Decision)
	meta := status
	if m.entry.Item.Type != "" {
		meta += "  " + styles.TypeBadgeStyle.Render(m.entry.Item.Type)
	}
	if !m.entry.DecidedAt.IsZero() {
		meta += "  " + styles.MutedStyle.Render(m.entry.DecidedAt.Format("15:04:05"))
	}

	scroll := ""
	if m.viewport.TotalLineCount() > m.viewport.VisibleLineCount() {
		scroll = styles.MutedStyle.Render(fmt.Sprintf(" (%.0f%%)", m.viewport.ScrollPercent()*100))
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		styles.ModalTitleStyle.Render(m.entry.Item.Title)+scroll,
		meta,
		"",
		m.viewport.View(),
		styles.ModalHelpStyle.Render("[↑/↓] scroll  [esc] close"),
	)
	return styles.ModalStyle.Width(m.width - styles.ModalStyle.GetHorizontalBorderSize()).Render(content)
}

func decisionLabel(d review.Decision) string {
	switch d {
	case review.DecisionApproved:
		return styles.SuccessTextStyle.Render(styles.IconApproved + " Approved")
	case review.DecisionRejected:
		return styles.ErrorTextStyle.Render(styles.IconRejected + " Rejected")
	default:
		return styles.InfoTextStyle.Render(styles.IconQuestioned + " Question sent")
	}
}
