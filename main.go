package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/freigabe/internal/commands"
	"github.com/colonyops/freigabe/internal/core/config"
	"github.com/colonyops/freigabe/internal/core/logging"
	"github.com/colonyops/freigabe/internal/core/styles"
	"github.com/colonyops/freigabe/internal/data/db"
	"github.com/colonyops/freigabe/internal/data/stores"
	"github.com/colonyops/freigabe/internal/freigabe"
	"github.com/colonyops/freigabe/internal/printer"
	"github.com/colonyops/freigabe/pkg/logutils"
	"github.com/colonyops/freigabe/pkg/utils"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	// When installed via `go install module@version`, init() populates
	// these from runtime/debug.BuildInfo instead.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	v, c, d := version, commit, date

	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				switch s.Key {
				case "vcs.revision":
					c = s.Value
				case "vcs.time":
					d = s.Value
				}
			}
		}
	}

	short := c
	if len(c) > 7 {
		short = c[:7]
	}

	return fmt.Sprintf("%s (%s) %s", v, short, d)
}

func main() {
	ctx := context.Background()

	var (
		logCloser func()
		freiApp   = &freigabe.App{}
		database  *db.DB

		// Status lines are held while the review screen owns the terminal
		// and written to stderr once the command returns.
		heldOutput = &utils.DeferredWriter{}
	)

	flags := &commands.Flags{}

	app := &cli.Command{
		Name:      "freigabe",
		Usage:     "Review pending approval items from the terminal",
		UsageText: "freigabe [global options] command [command options]",
		Description: `freigabe walks a reviewer through the items of an Airtable approval table
one at a time. Every item gets exactly one decision: approve, reject, or a
question back to the author.

Run 'freigabe' with no arguments to open the review screen.
Run 'freigabe config validate' to check your setup.`,
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("FREIGABE_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (defaults to <data-dir>/freigabe.log)",
				Sources:     cli.EnvVars("FREIGABE_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("FREIGABE_CONFIG"),
				Value:       commands.DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "data-dir",
				Usage:       "path to data directory",
				Sources:     cli.EnvVars("FREIGABE_DATA_DIR"),
				Value:       commands.DefaultDataDir(),
				Destination: &flags.DataDir,
			},
			&cli.StringFlag{
				Name:        "customer",
				Usage:       "only review items tagged with this customer (overrides review.customer)",
				Destination: &flags.Customer,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			ctx = printer.NewContext(ctx, printer.New(heldOutput))

			logFile := flags.LogFile
			if logFile == "" {
				logFile = filepath.Join(flags.DataDir, "freigabe.log")
			}

			logger, closer, err := logutils.New(flags.LogLevel, logFile)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			logging.SetGlobal(logger)
			logCloser = closer

			cfg, err := config.Read(flags.ConfigPath, flags.DataDir)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}
			flags.Config = cfg

			// config validate reports problems itself and needs nothing else.
			if c.Args().First() == "config" {
				return ctx, nil
			}

			if err := cfg.Validate(); err != nil {
				return ctx, fmt.Errorf("invalid config: %w (run 'freigabe config validate' for details)", err)
			}

			// Apply configured theme (validation ensures name is valid)
			palette, _ := styles.GetPalette(cfg.TUI.Theme)
			styles.SetTheme(palette)

			if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
				return ctx, fmt.Errorf("create data dir: %w", err)
			}

			dbOpts := db.OpenOptions{
				MaxOpenConns: cfg.Database.MaxOpenConns,
				MaxIdleConns: cfg.Database.MaxIdleConns,
				BusyTimeout:  cfg.Database.BusyTimeout,
			}
			var backup string
			database, backup, err = stores.OpenWithRecovery(cfg.DataDir, dbOpts)
			if err != nil {
				return ctx, fmt.Errorf("open database: %w", err)
			}
			if backup != "" {
				log.Warn().Str("backup", backup).Msg("notification history was corrupted and has been reset")
				printer.Ctx(ctx).Warnf("Notification history was corrupted and has been reset (backup: %s)", backup)
			}

			// Populate the pre-allocated App struct (commands already hold a pointer to it)
			*freiApp = *freigabe.NewApp(cfg, database, freigabe.AirtableStore)

			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			var closeErr error
			if database != nil {
				if err := database.Close(); err != nil {
					log.Error().Err(err).Msg("failed to close database")
					closeErr = err
				}
			}

			if err := heldOutput.Release(os.Stderr); err != nil {
				log.Error().Err(err).Msg("failed to write held output")
			}

			if logCloser != nil {
				logCloser()
			}
			return closeErr
		},
	}

	reviewCmd := commands.NewReviewCmd(flags, freiApp)

	app = reviewCmd.Register(app)
	app = commands.NewLsCmd(flags, freiApp).Register(app)
	app = commands.NewDecideCmd(flags, freiApp).Register(app)
	app = commands.NewNotificationsCmd(flags, freiApp).Register(app)
	app = commands.NewConfigValidateCmd(flags).Register(app)

	// Set review as default action when no subcommand is provided
	app.Action = func(ctx context.Context, c *cli.Command) error {
		if c.Args().Len() > 0 {
			return fmt.Errorf("unknown command %q. Run 'freigabe --help' for usage", c.Args().First())
		}
		return reviewCmd.Run(ctx, c)
	}

	exitCode := 0
	runErr := app.Run(ctx, os.Args)
	if runErr != nil {
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, runErr.Error())
		exitCode = 1
	}

	os.Exit(exitCode)
}
