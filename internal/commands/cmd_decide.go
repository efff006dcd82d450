package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/freigabe/internal/freigabe"
	"github.com/colonyops/freigabe/internal/printer"
	"github.com/colonyops/freigabe/pkg/iojson"
)

type DecideCmd struct {
	flags *Flags
	app   *freigabe.App

	input      iojson.FileReader[freigabe.DecisionInputs]
	jsonOutput bool
}

// NewDecideCmd creates a new decide command
func NewDecideCmd(flags *Flags, app *freigabe.App) *DecideCmd {
	return &DecideCmd{flags: flags, app: app}
}

// Register adds the decide command to the application
func (cmd *DecideCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "decide",
		Usage:     "Record decisions without the review screen",
		UsageText: "freigabe decide [-f FILE] [--customer NAME] [--json]",
		Description: `Reads a JSON array of decisions from a file or stdin:

  [
    {"id": "rec123", "decision": "approve"},
    {"id": "rec456", "decision": "question", "question": "Which size?"}
  ]

Decisions are applied in queue order, one at a time. The first failure stops
the run; that item and every later one stay pending.`,
		Flags: []cli.Flag{
			cmd.input.Flag(),
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output results as JSON lines",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *DecideCmd) run(ctx context.Context, c *cli.Command) error {
	inputs, err := cmd.input.Read()
	if err != nil {
		return fmt.Errorf("read decisions: %w", err)
	}

	results, applyErr := cmd.app.Review.Apply(ctx, cmd.flags.Customer, inputs, cmd.app.Bus)

	if cmd.jsonOutput {
		if err := iojson.WriteLines(c.Root().Writer, results); err != nil {
			return err
		}
		return applyErr
	}

	p := printer.Ctx(ctx)
	for _, r := range results {
		if r.Error != "" {
			p.Errorf("%s: %s", r.Title, r.Error)
			continue
		}
		p.Successf("%s: %s", r.Title, r.Decision)
	}

	return applyErr
}
