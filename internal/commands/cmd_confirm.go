package commands

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/touchgate/internal/gate"
)

type ConfirmCmd struct {
	flags    *Flags
	input    dialogInput
	noCancel bool
}

// NewConfirmCmd creates a new confirm command.
func NewConfirmCmd(flags *Flags) *ConfirmCmd {
	return &ConfirmCmd{flags: flags}
}

// Register adds the confirm command to the application.
func (cmd *ConfirmCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "confirm",
		Usage:     "Ask for a tap on confirm or cancel",
		UsageText: "touchgate confirm [options]",
		Description: `Shows a dialog with a confirm button and, unless --no-cancel is set, a
cancel button beside it. A button only counts when the press starts and ends
inside it.

Exits 0 when confirmed and 1 when cancelled.`,
		Flags: append(cmd.input.flags(),
			&cli.BoolFlag{
				Name:        "no-cancel",
				Usage:       "show only the confirm button",
				Destination: &cmd.noCancel,
			},
		),
		Action: cmd.run,
	})

	return app
}

func (cmd *ConfirmCmd) run(ctx context.Context, c *cli.Command) error {
	return runDialog(ctx, c, cmd.flags, gate.Spec{
		Kind:     gate.KindConfirm,
		Label:    cmd.input.label,
		NoCancel: cmd.noCancel,
	}, &cmd.input)
}
