package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/freigabe/internal/core/notify"
	"github.com/colonyops/freigabe/internal/data/stores"
	"github.com/colonyops/freigabe/internal/freigabe"
	"github.com/colonyops/freigabe/internal/printer"
	"github.com/colonyops/freigabe/pkg/iojson"
)

type NotificationsCmd struct {
	flags *Flags
	app   *freigabe.App

	// flags
	clear      bool
	yes        bool
	jsonOutput bool
	limit      int

	// confirm asks before clearing; replaced in tests.
	confirm func(count int64) (bool, error)
}

// NewNotificationsCmd creates a new notifications command
func NewNotificationsCmd(flags *Flags, app *freigabe.App) *NotificationsCmd {
	return &NotificationsCmd{flags: flags, app: app, confirm: confirmClear}
}

// Register adds the notifications command to the application
func (cmd *NotificationsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "notifications",
		Aliases:   []string{"notes"},
		Usage:     "Show or clear the notification history",
		UsageText: "freigabe notifications [--limit N] [--json] | --clear [--yes]",
		Description: `Every toast shown during a review is also stored. This command lists the
history newest first, or deletes it with --clear.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "clear",
				Usage:       "delete all stored notifications",
				Destination: &cmd.clear,
			},
			&cli.BoolFlag{
				Name:        "yes",
				Aliases:     []string{"y"},
				Usage:       "skip the confirmation prompt",
				Destination: &cmd.yes,
			},
			&cli.IntFlag{
				Name:        "limit",
				Aliases:     []string{"n"},
				Usage:       "show at most N notifications (0 shows all)",
				Destination: &cmd.limit,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON lines",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *NotificationsCmd) run(ctx context.Context, c *cli.Command) error {
	if cmd.clear {
		return cmd.runClear(ctx)
	}

	history, err := cmd.history(ctx)
	if err != nil {
		return fmt.Errorf("load notifications: %w", err)
	}

	out := c.Root().Writer

	if cmd.jsonOutput {
		infos := make([]notificationInfo, 0, len(history))
		for _, n := range history {
			infos = append(infos, newNotificationInfo(n))
		}
		return iojson.WriteLines(out, infos)
	}

	if len(history) == 0 {
		printer.Ctx(ctx).Infof("No notifications")
		return nil
	}

	rows := make([][]string, 0, len(history))
	for _, n := range history {
		rows = append(rows, []string{
			n.CreatedAt.Local().Format(time.DateTime),
			string(n.Level),
			n.Message,
			n.Detail,
		})
	}
	printer.New(out).Table([]string{"TIME", "LEVEL", "MESSAGE", "DETAIL"}, rows)
	return nil
}

// history lists the newest notifications, capped by --limit.
func (cmd *NotificationsCmd) history(ctx context.Context) ([]notify.Notification, error) {
	if cmd.limit <= 0 || cmd.app.DB == nil {
		return cmd.app.Bus.History(ctx)
	}
	return stores.NewNotifyStore(cmd.app.DB).WithListLimit(uint64(cmd.limit)).List(ctx)
}

func (cmd *NotificationsCmd) runClear(ctx context.Context) error {
	p := printer.Ctx(ctx)

	history, err := cmd.app.Bus.History(ctx)
	if err != nil {
		return fmt.Errorf("load notifications: %w", err)
	}

	count := int64(len(history))
	if count == 0 {
		p.Infof("No notifications to clear")
		return nil
	}

	if !cmd.yes {
		ok, err := cmd.confirm(count)
		if err != nil {
			return err
		}
		if !ok {
			p.Infof("Aborted")
			return nil
		}
	}

	if err := cmd.app.Bus.Clear(ctx); err != nil {
		return fmt.Errorf("clear notifications: %w", err)
	}

	p.Successf("Cleared %d notification(s)", count)
	return nil
}

func confirmClear(count int64) (bool, error) {
	var ok bool
	err := huh.NewConfirm().
		Title(fmt.Sprintf("Delete %d notification(s)?", count)).
		Affirmative("Delete").
		Negative("Keep").
		Value(&ok).
		Run()
	if err != nil {
		return false, fmt.Errorf("confirm: %w", err)
	}
	return ok, nil
}

// notificationInfo is the JSON output format for freigabe notifications --json.
type notificationInfo struct {
	ID        int64        `json:"id"`
	Level     notify.Level `json:"level"`
	Message   string       `json:"message"`
	Detail    string       `json:"detail,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
}

func newNotificationInfo(n notify.Notification) notificationInfo {
	return notificationInfo{
		ID:        n.ID,
		Level:     n.Level,
		Message:   n.Message,
		Detail:    n.Detail,
		CreatedAt: n.CreatedAt,
	}
}
