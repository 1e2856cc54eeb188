package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/hay-kot/criterio"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/colonyops/touchgate/internal/core/config"
	"github.com/colonyops/touchgate/internal/core/styles"
	"github.com/colonyops/touchgate/internal/printer"
	"github.com/colonyops/touchgate/pkg/iojson"
)

type ConfigCmd struct {
	flags  *Flags
	format string
	init   configInit
}

// NewConfigCmd creates a new config command.
func NewConfigCmd(flags *Flags) *ConfigCmd {
	return &ConfigCmd{flags: flags}
}

// Register adds the config command to the application.
func (cmd *ConfigCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "config",
		Usage: "Configuration management commands",
		Commands: []*cli.Command{
			{
				Name:        "validate",
				Usage:       "Validate configuration file",
				UsageText:   "touchgate config validate [options]",
				Description: "Validates the configuration file, checking display geometry, timings, labels, theme and the content path.",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "format",
						Usage:       "output format (text, json)",
						Value:       "text",
						Destination: &cmd.format,
					},
				},
				Action: cmd.runValidate,
			},
			{
				Name:      "show",
				Usage:     "Print the effective configuration",
				UsageText: "touchgate config show",
				Action:    cmd.runShow,
			},
			{
				Name:      "themes",
				Usage:     "List the available themes",
				UsageText: "touchgate config themes",
				Action:    cmd.runThemes,
			},
			cmd.initCommand(),
		},
	})

	return app
}

type validationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type validationOutput struct {
	Valid    bool                       `json:"valid"`
	Errors   []validationError          `json:"errors,omitempty"`
	Warnings []config.ValidationWarning `json:"warnings,omitempty"`
}

func (cmd *ConfigCmd) runValidate(ctx context.Context, c *cli.Command) error {
	cfg := cmd.flags.Config
	out := validationOutput{Warnings: cfg.Warnings()}

	if err := cfg.ValidateDeep(cmd.flags.ConfigPath); err != nil {
		var fieldErrs criterio.FieldErrors
		if errors.As(err, &fieldErrs) {
			for _, fe := range fieldErrs {
				out.Errors = append(out.Errors, validationError{Field: fe.Field, Message: fe.Err.Error()})
			}
		} else {
			out.Errors = append(out.Errors, validationError{Message: err.Error()})
		}
	}
	out.Valid = len(out.Errors) == 0

	if cmd.format == "json" {
		if err := iojson.WriteWith(c.Root().Writer, c.Root().ErrWriter, out); err != nil {
			return err
		}
	} else {
		outputValidation(printer.New(c.Root().Writer), out)
	}

	if !out.Valid {
		return cli.Exit("", 1)
	}
	return nil
}

func outputValidation(p *printer.Printer, out validationOutput) {
	for _, warn := range out.Warnings {
		p.Warnf("%s: %s", warn.Category, warn.Message)
		if warn.Item != "" {
			p.Printf("  Item: %s", warn.Item)
		}
	}

	for _, e := range out.Errors {
		if e.Field != "" {
			p.Errorf("%s: %s", e.Field, e.Message)
		} else {
			p.Errorf("%s", e.Message)
		}
	}

	p.Printf("")
	if out.Valid {
		p.Successf("Configuration is valid")
		return
	}
	p.Errorf("%d error(s) found", len(out.Errors))
}

func (cmd *ConfigCmd) runShow(ctx context.Context, c *cli.Command) error {
	data, err := yaml.Marshal(cmd.flags.Config)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	_, err = c.Root().Writer.Write(data)
	return err
}

func (cmd *ConfigCmd) runThemes(ctx context.Context, c *cli.Command) error {
	p := printer.New(c.Root().Writer)
	for _, name := range styles.ThemeNames() {
		if name == cmd.flags.Config.TUI.Theme {
			p.Successf("%s (active)", name)
			continue
		}
		p.Printf("  %s", name)
	}
	return nil
}
