package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/freigabe/internal/core/review"
	"github.com/colonyops/freigabe/internal/freigabe"
	"github.com/colonyops/freigabe/internal/printer"
	"github.com/colonyops/freigabe/pkg/iojson"
)

type LsCmd struct {
	flags *Flags
	app   *freigabe.App

	// flags
	jsonOutput bool
}

// NewLsCmd creates a new ls command
func NewLsCmd(flags *Flags, app *freigabe.App) *LsCmd {
	return &LsCmd{flags: flags, app: app}
}

// Register adds the ls command to the application
func (cmd *LsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "ls",
		Usage:     "List items awaiting review",
		UsageText: "freigabe ls [--customer NAME] [--json]",
		Description: `Displays the pending queue in review order with id, type, title and
attachment count.

Use --json for one JSON object per line, suitable for scripting the decide command.`,
		Flags: []cli.Flag{
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

func (cmd *LsCmd) run(ctx context.Context, c *cli.Command) error {
	items, err := cmd.app.Review.Pending(ctx, cmd.flags.Customer)
	if err != nil {
		return fmt.Errorf("list items: %w", err)
	}

	out := c.Root().Writer

	if cmd.jsonOutput {
		return iojson.WriteLines(out, items)
	}

	if len(items) == 0 {
		printer.Ctx(ctx).Infof("No items awaiting review")
		return nil
	}

	printer.New(out).Table([]string{"#", "ID", "TYPE", "TITLE", "FILES"}, itemRows(items))
	return nil
}

func itemRows(items []review.Item) [][]string {
	rows := make([][]string, 0, len(items))
	for i, item := range items {
		files := ""
		if n := len(item.Attachments); n > 0 {
			files = strconv.Itoa(n)
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			item.ID,
			item.Type,
			item.Title,
			files,
		})
	}
	return rows
}
