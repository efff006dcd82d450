package commands

import (
	"context"
	"errors"

	"github.com/hay-kot/criterio"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/freigabe/internal/core/config"
	"github.com/colonyops/freigabe/internal/printer"
	"github.com/colonyops/freigabe/pkg/iojson"
)

type ConfigValidateCmd struct {
	flags  *Flags
	format string
}

// NewConfigValidateCmd creates a new config validate command.
func NewConfigValidateCmd(flags *Flags) *ConfigValidateCmd {
	return &ConfigValidateCmd{flags: flags}
}

// Register adds the config validate command to the application.
func (cmd *ConfigValidateCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "config",
		Usage: "Configuration management commands",
		Commands: []*cli.Command{
			{
				Name:        "validate",
				Usage:       "Validate configuration file",
				UsageText:   "freigabe config validate [options]",
				Description: "Validates the configuration file and environment: column mapping, status values, type filters, theme and data directory.",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "format",
						Usage:       "output format (text, json)",
						Value:       "text",
						Destination: &cmd.format,
					},
				},
				Action: cmd.run,
			},
		},
	})

	return app
}

type validationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type validationResult struct {
	Valid    bool                       `json:"valid"`
	Errors   []validationError          `json:"errors,omitempty"`
	Warnings []config.ValidationWarning `json:"warnings,omitempty"`
}

func (cmd *ConfigValidateCmd) run(ctx context.Context, c *cli.Command) error {
	result := cmd.validate()

	if cmd.format == "json" {
		if err := iojson.WriteWith(c.Root().Writer, c.Root().ErrWriter, result); err != nil {
			return err
		}
		if !result.Valid {
			return cli.Exit("", 1)
		}
		return nil
	}

	return cmd.outputText(printer.Ctx(ctx), result)
}

func (cmd *ConfigValidateCmd) validate() validationResult {
	cfg := cmd.flags.Config
	result := validationResult{Warnings: cfg.Warnings()}

	err := cfg.ValidateDeep(cmd.flags.ConfigPath)
	if err == nil {
		result.Valid = true
		return result
	}

	var fieldErrs criterio.FieldErrors
	if errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			result.Errors = append(result.Errors, validationError{Field: fe.Field, Message: fe.Err.Error()})
		}
	} else {
		result.Errors = append(result.Errors, validationError{Message: err.Error()})
	}

	return result
}

func (cmd *ConfigValidateCmd) outputText(p *printer.Printer, result validationResult) error {
	for _, warn := range result.Warnings {
		p.Warnf("%s: %s", warn.Category, warn.Message)
		if warn.Item != "" {
			p.Printf("  Item: %s", warn.Item)
		}
	}

	for _, err := range result.Errors {
		if err.Field == "" {
			p.Errorf("%s", err.Message)
			continue
		}
		p.Errorf("%s: %s", err.Field, err.Message)
	}

	p.Printf("")
	if result.Valid {
		p.Successf("Configuration is valid")
		return nil
	}

	p.Errorf("%d error(s) found", len(result.Errors))
	return cli.Exit("", 1)
}
