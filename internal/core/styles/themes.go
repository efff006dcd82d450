package styles

import (
	"sort"

	"github.com/charmbracelet/lipgloss"
)

// Palette defines a minimal semantic theme palette.
type Palette struct {
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Accent     lipgloss.Color
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Background lipgloss.Color
	Surface    lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
	Info       lipgloss.Color
}

// DefaultTheme is the name of the default theme.
const DefaultTheme = "freigabe"

// themes holds the built-in named palettes.
var themes = map[string]Palette{
	"freigabe": {
		Primary:    lipgloss.Color("#d8ff56"), // lime label
		Secondary:  lipgloss.Color("#dbeafe"), // pastel blue
		Accent:     lipgloss.Color("#d8ff56"),
		Foreground: lipgloss.Color("#f1f1f1"),
		Muted:      lipgloss.Color("#8a8a8a"),
		Background: lipgloss.Color("#111111"),
		Surface:    lipgloss.Color("#2b2b2b"),
		Success:    lipgloss.Color("#dcfce7"), // pastel green
		Warning:    lipgloss.Color("#fde68a"),
		Error:      lipgloss.Color("#fee2e2"), // pastel red
		Info:       lipgloss.Color("#dbeafe"),
	},
	"tokyo-night": {
		Primary:    lipgloss.Color("#7aa2f7"),
		Secondary:  lipgloss.Color("#7dcfff"),
		Accent:     lipgloss.Color("#bb9af7"),
		Foreground: lipgloss.Color("#c0caf5"),
		Muted:      lipgloss.Color("#565f89"),
		Background: lipgloss.Color("#1a1b26"),
		Surface:    lipgloss.Color("#3b4261"),
		Success:    lipgloss.Color("#9ece6a"),
		Warning:    lipgloss.Color("#e0af68"),
		Error:      lipgloss.Color("#f7768e"),
		Info:       lipgloss.Color("#7dcfff"),
	},
	"gruvbox": {
		Primary:    lipgloss.Color("#83a598"),
		Secondary:  lipgloss.Color("#8ec07c"),
		Accent:     lipgloss.Color("#d3869b"),
		Foreground: lipgloss.Color("#ebdbb2"),
		Muted:      lipgloss.Color("#665c54"),
		Background: lipgloss.Color("#282828"),
		Surface:    lipgloss.Color("#3c3836"),
		Success:    lipgloss.Color("#b8bb26"),
		Warning:    lipgloss.Color("#fabd2f"),
		Error:      lipgloss.Color("#fb4934"),
		Info:       lipgloss.Color("#83a598"),
	},
	"catppuccin": {
		Primary:    lipgloss.Color("#89b4fa"), // Blue
		Secondary:  lipgloss.Color("#94e2d5"), // Teal
		Accent:     lipgloss.Color("#cba6f7"), // Mauve
		Foreground: lipgloss.Color("#cdd6f4"), // Text
		Muted:      lipgloss.Color("#6c7086"), // Overlay0
		Background: lipgloss.Color("#1e1e2e"), // Base
		Surface:    lipgloss.Color("#313244"), // Surface0
		Success:    lipgloss.Color("#a6e3a1"), // Green
		Warning:    lipgloss.Color("#f9e2af"), // Yellow
		Error:      lipgloss.Color("#f38ba8"), // Red
		Info:       lipgloss.Color("#89dceb"), // Sky
	},
	"light": {
		Primary:    lipgloss.Color("#1f2937"),
		Secondary:  lipgloss.Color("#2563eb"),
		Accent:     lipgloss.Color("#65a30d"),
		Foreground: lipgloss.Color("#111827"),
		Muted:      lipgloss.Color("#6b7280"),
		Background: lipgloss.Color("#f1f1f1"),
		Surface:    lipgloss.Color("#d9d9d9"),
		Success:    lipgloss.Color("#15803d"),
		Warning:    lipgloss.Color("#b45309"),
		Error:      lipgloss.Color("#b91c1c"),
		Info:       lipgloss.Color("#1d4ed8"),
	},
}

// ThemeNames returns sorted names of all built-in themes.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetPalette returns the palette for the given theme name.
func GetPalette(name string) (Palette, bool) {
	p, ok := themes[name]
	return p, ok
}
