// Package printer writes styled status lines for the non-interactive
// commands. The TUI never uses it.
package printer

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/colonyops/freigabe/internal/core/styles"
)

type ctxKey struct{}

// Printer formats command output.
type Printer struct {
	out io.Writer
}

// New returns a Printer writing to w.
func New(w io.Writer) *Printer {
	return &Printer{out: w}
}

// NewContext returns a copy of ctx carrying p.
func NewContext(ctx context.Context, p *Printer) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// Ctx returns the Printer stored in ctx, or one writing to stderr.
func Ctx(ctx context.Context) *Printer {
	if p, ok := ctx.Value(ctxKey{}).(*Printer); ok && p != nil {
		return p
	}
	return New(os.Stderr)
}

func (p *Printer) line(icon string, style lipgloss.Style, format string, args ...any) {
	_, _ = fmt.Fprintf(p.out, "%s %s\n", style.Render(icon), fmt.Sprintf(format, args...))
}

// Successf prints a line prefixed with a check mark.
func (p *Printer) Successf(format string, args ...any) {
	p.line(styles.IconApproved, styles.SuccessTextStyle, format, args...)
}

// Errorf prints a line prefixed with a cross.
func (p *Printer) Errorf(format string, args ...any) {
	p.line(styles.IconRejected, styles.ErrorTextStyle, format, args...)
}

// Warnf prints a warning line.
func (p *Printer) Warnf(format string, args ...any) {
	p.line("!", styles.WarnTextStyle, format, args...)
}

// Infof prints an informational line.
func (p *Printer) Infof(format string, args ...any) {
	p.line("•", styles.InfoTextStyle, format, args...)
}

// Printf prints an unstyled line.
func (p *Printer) Printf(format string, args ...any) {
	_, _ = fmt.Fprintf(p.out, format+"\n", args...)
}

// Success prints a headline followed by a muted detail line.
func (p *Printer) Success(title, detail string) {
	p.Successf("%s", title)
	if detail != "" {
		_, _ = fmt.Fprintf(p.out, "  %s\n", styles.MutedStyle.Render(detail))
	}
}

// Section prints a command header and divider.
func (p *Printer) Section(title string) {
	_, _ = fmt.Fprintln(p.out, styles.CommandHeaderStyle.Render(title))
	_, _ = fmt.Fprintln(p.out, styles.DividerStyle.Render(strings.Repeat("─", lipgloss.Width(title)+2)))
}

// Table prints rows under the given headers.
func (p *Printer) Table(headers []string, rows [][]string) {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(styles.DividerStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return styles.CommandHeaderStyle.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
	_, _ = fmt.Fprintln(p.out, t.Render())
}
