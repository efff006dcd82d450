package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/colonyops/freigabe/internal/core/review"
	"github.com/colonyops/freigabe/internal/core/styles"
)

var envNames = map[string]string{
	"api_key": "AIRTABLE_API_KEY",
	"base_id": "AIRTABLE_BASE_ID",
	"table":   "AIRTABLE_TABLE_NAME",
}

// renderConfigError replaces the whole review screen when the item store
// cannot be reached because settings are missing or items failed to load.
func renderConfigError(err error, width, height int) string {
	lines := []string{styles.ErrorTextStyle.Bold(true).Render("Configuration error"), ""}

	var cfgErr *review.ConfigurationError
	if errors.As(err, &cfgErr) {
		lines = append(lines, "The following settings are missing:")
		for _, name := range cfgErr.Missing {
			item := "  • airtable." + name
			if env, ok := envNames[name]; ok {
				item += styles.MutedStyle.Render(" (or " + env + ")")
			}
			lines = append(lines, item)
		}
		lines = append(lines, "", "Set them in the config file or the environment and restart.")
	} else {
		lines = append(lines, "Items could not be loaded:", "  "+review.Message(err))
	}

	lines = append(lines, "", styles.MutedStyle.Render("Run 'freigabe config validate' for details.  [q] quit"))

	box := styles.ConfigErrorStyle.Render(strings.Join(lines, "\n"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
