package tui

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/rs/zerolog"

	"github.com/colonyops/freigabe/internal/core/logging"
	"github.com/colonyops/freigabe/internal/core/styles"
)

// markdown renders item descriptions with glamour. Renderers are rebuilt when
// the wrap width changes; output is cached per source text.
type markdown struct {
	log      zerolog.Logger
	width    int
	renderer *glamour.TermRenderer
	cache    map[string]string
}

func newMarkdown() *markdown {
	return &markdown{
		log:   logging.Component("tui.markdown"),
		cache: make(map[string]string),
	}
}

// Render returns text rendered for the given wrap width. Rendering errors
// fall back to the raw text.
func (md *markdown) Render(text string, width int) string {
	width = max(width, 10)
	if width != md.width || md.renderer == nil {
		r, err := glamour.NewTermRenderer(
			glamour.WithStyles(styles.GlamourStyle()),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			md.log.Debug().Err(err).Msg("failed to create markdown renderer, showing raw content")
			return text
		}
		md.renderer = r
		md.width = width
		clear(md.cache)
	}

	if out, ok := md.cache[text]; ok {
		return out
	}

	out, err := md.renderer.Render(text)
	if err != nil {
		md.log.Debug().Err(err).Msg("failed to render markdown, showing raw content")
		return text
	}

	out = strings.Trim(out, "\n")
	md.cache[text] = out
	return out
}
