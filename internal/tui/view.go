package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/colonyops/freigabe/internal/core/styles"
)

const (
	listsColumnWidth = 34
	stackBelowWidth  = 90
)

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 {
		return "loading…"
	}
	if m.configErr != nil {
		return renderConfigError(m.configErr, m.width, m.height)
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.renderProgress(),
		"",
		m.renderBody(),
		m.help.View(m.keys),
	)

	switch m.modal {
	case modalForm:
		content = overlayCenter(content, m.form.View(), m.width, m.height)
	case modalDetail:
		content = overlayCenter(content, m.detail.View(), m.width, m.height)
	case modalAttachments:
		if item, ok := m.session.Current(); ok {
			content = overlayCenter(content, renderAttachmentsModal(item, m.width), m.width, m.height)
		}
	}

	if m.toastController.HasToasts() {
		content = m.toastView.Overlay(content, m.width, m.height)
	}
	return content
}

func (m Model) renderHeader() string {
	title := styles.CommandHeaderStyle.Render("freigabe")
	if m.customer != "" {
		title += styles.MutedStyle.Render(" · " + m.customer)
	}

	counter := fmt.Sprintf("%d / %d", min(m.session.Cursor()+1, m.session.Len()), m.session.Len())
	if m.session.IsComplete() {
		counter = fmt.Sprintf("%d / %d", m.session.Len(), m.session.Len())
	}

	gap := max(m.width-lipgloss.Width(title)-lipgloss.Width(counter), 1)
	return title + strings.Repeat(" ", gap) + styles.MutedStyle.Render(counter)
}

func (m Model) renderProgress() string {
	pct := m.session.ProgressPercent()
	label := styles.ProgressLabel.Render(fmt.Sprintf(" %3d%%", pct))
	return m.progress.ViewAs(float64(pct)/100) + label
}

func (m Model) renderBody() string {
	height := m.bodyHeight() - 1
	approved, rejected := m.session.Approved(), m.session.Rejected()
	questioned := len(m.session.Questioned())

	stacked := m.width < stackBelowWidth
	cardWidth := m.cardWidth()

	var card string
	if m.session.IsComplete() {
		summary := renderComplete(m.session.Len(), len(approved), len(rejected), questioned)
		if m.confetti != nil {
			card = overlayCenter(m.confetti.View(), summary, cardWidth, height)
		} else {
			card = lipgloss.Place(cardWidth, height, lipgloss.Center, lipgloss.Center, summary)
		}
	} else {
		item, _ := m.session.Current()
		st := cardState{
			submitting: m.session.Submitting(),
			editing:    m.session.Editing(),
		}
		if m.swipe != nil {
			st.tint = m.swipe.Tint()
		}
		card = renderCard(item, m.md, cardWidth, height, st)
	}

	approvedCursor, rejectedCursor := -1, -1
	switch m.lists.focus {
	case focusApproved:
		approvedCursor = m.lists.approved
	case focusRejected:
		rejectedCursor = m.lists.rejected
	}

	listHeight := max(height/2-1, 3)
	listWidth := listsColumnWidth
	if stacked {
		listWidth = m.width / 2
	}

	lists := []string{
		renderList("Approved", styles.IconApproved, styles.SuccessTextStyle, approved, approvedCursor, listWidth, listHeight),
		renderList("Rejected", styles.IconRejected, styles.ErrorTextStyle, rejected, rejectedCursor, listWidth, listHeight),
	}
	questionedLine := styles.InfoTextStyle.Render(fmt.Sprintf("%s %d questioned", styles.IconQuestioned, questioned))

	if stacked {
		return lipgloss.JoinVertical(lipgloss.Left,
			card,
			lipgloss.JoinHorizontal(lipgloss.Top, lists...),
			questionedLine,
		)
	}

	column := lipgloss.JoinVertical(lipgloss.Left, append(lists, questionedLine)...)
	return lipgloss.JoinHorizontal(lipgloss.Top, card, " ", column)
}

func (m Model) cardWidth() int {
	if m.width < stackBelowWidth {
		return m.width
	}
	return m.width - listsColumnWidth - 1
}
