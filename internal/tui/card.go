package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/colonyops/freigabe/internal/core/review"
	"github.com/colonyops/freigabe/internal/core/styles"
)

const (
	cardMaxWidth   = 90
	cardChromeRows = 6
)

type cardState struct {
	submitting bool
	editing    bool
	tint       lipgloss.Color
}

// renderCard draws the current item.
func renderCard(item review.Item, md *markdown, width, height int, st cardState) string {
	width = min(width, cardMaxWidth)
	inner := max(width-styles.CardStyle.GetHorizontalFrameSize(), 10)

	header := styles.CardTitleStyle.Render(item.Title)
	if item.Type != "" {
		header = lipgloss.JoinHorizontal(lipgloss.Center, header, " ", styles.TypeBadgeStyle.Render(item.Type))
	}

	var meta []string
	if n := countAttachments(item); n > 0 {
		meta = append(meta, fmt.Sprintf("%s %d attachment(s) [o]", styles.IconAttachment, n))
	}
	if item.Link != "" {
		meta = append(meta, styles.IconLink+" "+item.Link)
	}

	body := md.Render(item.Description, inner)
	if item.Description == "" {
		body = styles.ListEmptyStyle.Render("No description")
	}
	bodyLines := strings.Split(body, "\n")
	if maxRows := height - cardChromeRows - len(meta); maxRows > 0 && len(bodyLines) > maxRows {
		bodyLines = append(bodyLines[:maxRows-1], styles.MutedStyle.Render("…"))
	}

	parts := []string{header, ""}
	parts = append(parts, bodyLines...)
	if len(meta) > 0 {
		parts = append(parts, "", styles.MutedStyle.Render(strings.Join(meta, "   ")))
	}

	switch {
	case st.submitting:
		parts = append(parts, "", styles.InfoTextStyle.Render(styles.IconSpinner+" Saving decision…"))
	case st.editing:
		parts = append(parts, "", styles.InfoTextStyle.Render(styles.IconSpinner+" Saving description…"))
	}

	style := styles.CardStyle.Width(inner)
	if st.tint != "" {
		style = style.BorderForeground(st.tint)
	}
	return style.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func countAttachments(item review.Item) int {
	n := 0
	for _, a := range item.Attachments {
		if a.URL != "" {
			n++
		}
	}
	return n
}

// renderComplete draws the summary shown once every item has been decided.
func renderComplete(total, approved, rejected, questioned int) string {
	var msg string
	if total == 0 {
		msg = "Nothing to review"
	} else {
		msg = "All items reviewed"
	}

	summary := fmt.Sprintf("%s %d approved   %s %d rejected   %s %d questioned",
		styles.SuccessTextStyle.Render(styles.IconApproved), approved,
		styles.ErrorTextStyle.Render(styles.IconRejected), rejected,
		styles.InfoTextStyle.Render(styles.IconQuestioned), questioned,
	)

	return lipgloss.JoinVertical(lipgloss.Center,
		styles.CardTitleStyle.Render(styles.IconDone+" "+msg),
		"",
		summary,
	)
}
