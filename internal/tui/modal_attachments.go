package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/colonyops/freigabe/internal/core/review"
	"github.com/colonyops/freigabe/internal/core/styles"
)

// attachmentLines lists every attachment with a URL plus the item link.
func attachmentLines(item review.Item) []string {
	var lines []string
	for _, a := range item.Attachments {
		if a.URL == "" {
			continue
		}
		name := a.Name()
		if a.MimeType != "" {
			name += styles.MutedStyle.Render(fmt.Sprintf(" (%s)", a.MimeType))
		}
		lines = append(lines, styles.IconAttachment+" "+name, "  "+styles.MutedStyle.Render(a.URL))
	}
	if item.Link != "" {
		lines = append(lines, styles.IconLink+" "+item.Link)
	}
	return lines
}

// renderAttachmentsModal draws the attachment list of the current item.
func renderAttachmentsModal(item review.Item, width int) string {
	lines := attachmentLines(item)
	if len(lines) == 0 {
		lines = []string{styles.ListEmptyStyle.Render("This item has no attachments")}
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		styles.ModalTitleStyle.Render("Attachments: "+item.Title),
		"",
		lipgloss.JoinVertical(lipgloss.Left, lines...),
		styles.ModalHelpStyle.Render("[esc] close"),
	)
	modalWidth := max(min(width-modalMargin, modalMaxWidth), 20)
	return styles.ModalStyle.Width(modalWidth - styles.ModalStyle.GetHorizontalBorderSize()).Render(content)
}
