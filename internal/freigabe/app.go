// Package freigabe wires configuration, storage and the item store into the
// services the commands and the TUI consume.
package freigabe

import (
	"github.com/colonyops/freigabe/internal/core/config"
	"github.com/colonyops/freigabe/internal/data/db"
	"github.com/colonyops/freigabe/internal/data/stores"
	tuinotify "github.com/colonyops/freigabe/internal/tui/notify"
)

// App is the central entry point for all freigabe operations.
// Commands and TUI consume App instead of cherry-picking raw dependencies.
type App struct {
	Review *ReviewService
	Bus    *tuinotify.Bus

	Config *config.Config
	DB     *db.DB
}

// NewApp constructs an App from explicit dependencies. database may be nil,
// in which case notifications are not persisted.
func NewApp(cfg *config.Config, database *db.DB, factory StoreFactory) *App {
	var bus *tuinotify.Bus
	if database != nil {
		bus = tuinotify.NewBus(stores.NewNotifyStore(database))
	} else {
		bus = tuinotify.NewBus(nil)
	}

	return &App{
		Review: NewReviewService(cfg, factory),
		Bus:    bus,
		Config: cfg,
		DB:     database,
	}
}
