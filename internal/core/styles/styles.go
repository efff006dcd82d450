// Package styles provides shared lipgloss styles for CLI and TUI components.
package styles

import (
	"github.com/charmbracelet/glamour/ansi"
	glamourstyles "github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// CurrentPalette holds the active theme palette.
var CurrentPalette Palette

// Exported color aliases for convenience.
var (
	ColorPrimary    lipgloss.Color
	ColorSecondary  lipgloss.Color
	ColorAccent     lipgloss.Color
	ColorForeground lipgloss.Color
	ColorMuted      lipgloss.Color
	ColorBackground lipgloss.Color
	ColorSurface    lipgloss.Color
	ColorSuccess    lipgloss.Color
	ColorWarning    lipgloss.Color
	ColorError      lipgloss.Color
	ColorInfo       lipgloss.Color
)

// Style exports.
var (
	// CLI styles.
	CommandHeaderStyle lipgloss.Style
	DividerStyle       lipgloss.Style
	SuccessTextStyle   lipgloss.Style
	ErrorTextStyle     lipgloss.Style
	InfoTextStyle      lipgloss.Style
	WarnTextStyle      lipgloss.Style

	// TUI shared styles.
	HeaderStyle      lipgloss.Style
	CardStyle        lipgloss.Style
	CardTitleStyle   lipgloss.Style
	TypeBadgeStyle   lipgloss.Style
	DescriptionStyle lipgloss.Style
	ListPanelStyle   lipgloss.Style
	ListTitleStyle   lipgloss.Style
	ListItemStyle    lipgloss.Style
	ListCursorStyle  lipgloss.Style
	ListEmptyStyle   lipgloss.Style
	ProgressLabel    lipgloss.Style

	ModalStyle      lipgloss.Style
	ModalTitleStyle lipgloss.Style
	ModalHelpStyle  lipgloss.Style

	ConfigErrorStyle lipgloss.Style
	MutedStyle       lipgloss.Style

	ToastInfoStyle    lipgloss.Style
	ToastSuccessStyle lipgloss.Style
	ToastWarningStyle lipgloss.Style
	ToastErrorStyle   lipgloss.Style
)

// SetTheme sets the active palette and rebuilds all global styles.
func SetTheme(p Palette) {
	CurrentPalette = p

	ColorPrimary = p.Primary
	ColorSecondary = p.Secondary
	ColorAccent = p.Accent
	ColorForeground = p.Foreground
	ColorMuted = p.Muted
	ColorBackground = p.Background
	ColorSurface = p.Surface
	ColorSuccess = p.Success
	ColorWarning = p.Warning
	ColorError = p.Error
	ColorInfo = p.Info

	CommandHeaderStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
	DividerStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)
	SuccessTextStyle = lipgloss.NewStyle().Foreground(ColorSuccess)
	ErrorTextStyle = lipgloss.NewStyle().Foreground(ColorError)
	InfoTextStyle = lipgloss.NewStyle().Foreground(ColorInfo)
	WarnTextStyle = lipgloss.NewStyle().Foreground(ColorWarning)

	HeaderStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorForeground).
		MarginBottom(1)
	CardStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorForeground).
		Padding(1, 2)
	CardTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorForeground)
	TypeBadgeStyle = lipgloss.NewStyle().
		Background(ColorAccent).
		Foreground(lipgloss.Color("#000000")).
		Padding(0, 1)
	DescriptionStyle = lipgloss.NewStyle().
		Foreground(ColorForeground)

	ListPanelStyle = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(ColorSurface).
		Padding(0, 1)
	ListTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorForeground)
	ListItemStyle = lipgloss.NewStyle().
		Foreground(ColorForeground)
	ListCursorStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
	ListEmptyStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		Italic(true)
	ProgressLabel = lipgloss.NewStyle().
		Foreground(ColorForeground)

	ModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Padding(1, 2)
	ModalTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorForeground)
	ModalHelpStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		MarginTop(1)

	ConfigErrorStyle = lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(ColorError).
		Padding(1, 3)
	MutedStyle = lipgloss.NewStyle().Foreground(ColorMuted)

	toast := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)
	ToastInfoStyle = toast.BorderForeground(ColorInfo)
	ToastSuccessStyle = toast.BorderForeground(ColorSuccess)
	ToastWarningStyle = toast.BorderForeground(ColorWarning)
	ToastErrorStyle = toast.BorderForeground(ColorError)
}

// nolint:gochecknoinits // bootstrap default theme before any style is accessed.
func init() {
	SetTheme(themes[DefaultTheme])
}

// Blend mixes from and to in Lab space. t is clamped to [0, 1].
func Blend(from, to lipgloss.Color, t float64) lipgloss.Color {
	a, errA := colorful.Hex(string(from))
	b, errB := colorful.Hex(string(to))
	if errA != nil || errB != nil {
		return to
	}
	t = max(0, min(1, t))
	return lipgloss.Color(a.BlendLab(b, t).Clamped().Hex())
}

func colorHexPtr(c lipgloss.Color) *string {
	if c == "" {
		return nil
	}
	cc, err := colorful.Hex(string(c))
	if err != nil {
		return nil
	}
	hex := cc.Hex()
	return &hex
}

// GlamourStyle returns a Glamour style config derived from the active theme.
func GlamourStyle() ansi.StyleConfig {
	cfg := glamourstyles.DarkStyleConfig

	fg := colorHexPtr(ColorForeground)
	primary := colorHexPtr(ColorPrimary)
	secondary := colorHexPtr(ColorSecondary)
	muted := colorHexPtr(ColorMuted)

	cfg.Document.Color = fg
	cfg.Document.Margin = nil
	cfg.Paragraph.Color = fg

	cfg.Heading.Color = primary
	cfg.H1.Color = fg
	cfg.H2.Color = primary
	cfg.H3.Color = primary

	cfg.BlockQuote.Color = muted
	cfg.HorizontalRule.Color = muted

	cfg.Link.Color = secondary
	cfg.LinkText.Color = secondary

	cfg.Code.Color = secondary
	cfg.CodeBlock.Color = muted

	return cfg
}
