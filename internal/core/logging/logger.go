package logging

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// SetGlobal installs l as the process logger with ContextHook attached.
// Loggers returned by Component derive from it, so any event logged with
// Ctx(ctx) carries the review session and item id found in ctx.
func SetGlobal(l zerolog.Logger) {
	log.Logger = l.Hook(ContextHook{})
}

// Component returns the process logger tagged with name under the "cmp" key.
// Call it after SetGlobal; the logger is a snapshot of the global one.
func Component(name string) zerolog.Logger {
	return log.With().Str("cmp", name).Logger()
}
