package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/touchgate/internal/gate"
)

type HoldCmd struct {
	flags     *Flags
	input     dialogInput
	threshold time.Duration
}

// NewHoldCmd creates a new hold command.
func NewHoldCmd(flags *Flags) *HoldCmd {
	return &HoldCmd{flags: flags}
}

// Register adds the hold command to the application.
func (cmd *HoldCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "hold",
		Usage:     "Ask for the confirm button to be held down",
		UsageText: "touchgate hold [options]",
		Description: `Shows a dialog that confirms once its button has been held for the hold
threshold. Releasing early resets the progress; the dialog stays open until
a hold completes or it is aborted with q.

Exits 0 when confirmed and 1 when aborted.`,
		Flags: append(cmd.input.flags(),
			&cli.DurationFlag{
				Name:        "threshold",
				Usage:       "hold duration, e.g. 1500ms (defaults to hold.threshold)",
				Destination: &cmd.threshold,
			},
		),
		Action: cmd.run,
	})

	return app
}

func (cmd *HoldCmd) run(ctx context.Context, c *cli.Command) error {
	if cmd.threshold < 0 {
		return fmt.Errorf("invalid --threshold: must be positive, got %s", cmd.threshold)
	}

	return runDialog(ctx, c, cmd.flags, gate.Spec{
		Kind:      gate.KindHold,
		Label:     cmd.input.label,
		Threshold: cmd.threshold,
	}, &cmd.input)
}
