package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hay-kot/criterio"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/touchgate/internal/core/journal"
	"github.com/colonyops/touchgate/internal/printer"
	"github.com/colonyops/touchgate/internal/replay"
	"github.com/colonyops/touchgate/pkg/iojson"
)

type ReplayCmd struct {
	flags  *Flags
	input  iojson.FileReader
	format string
	expect string
	screen bool
	record bool
}

// NewReplayCmd creates a new replay command.
func NewReplayCmd(flags *Flags) *ReplayCmd {
	return &ReplayCmd{flags: flags}
}

// Register adds the replay command to the application.
func (cmd *ReplayCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "replay",
		Usage:     "Run a dialog against a scripted touch session",
		UsageText: "touchgate replay [options] [script.yaml | 'glob/**/*.yaml' ...]",
		Description: `Replays a YAML script of timed touch events against a confirm or hold
dialog on a simulated clock and prints the transcript. Arguments may be
doublestar glob patterns; every matching script is replayed in order.

Example script:

  dialog: hold
  threshold: 1s
  events:
    - {at: 0s, kind: down, x: 24, y: 14}
    - {at: 400ms, kind: up, x: 24, y: 14}`,
		Flags: []cli.Flag{
			cmd.input.Flag(),
			&cli.StringFlag{
				Name:        "format",
				Usage:       "output format (text, json)",
				Value:       "text",
				Destination: &cmd.format,
			},
			&cli.StringFlag{
				Name:        "expect",
				Usage:       "fail unless the dialog resolves to this result (confirmed, cancelled, pending)",
				Destination: &cmd.expect,
			},
			&cli.BoolFlag{
				Name:        "screen",
				Usage:       "print the final screen in text output",
				Destination: &cmd.screen,
			},
			&cli.BoolFlag{
				Name:        "record",
				Usage:       "append each replay outcome to the history journal",
				Destination: &cmd.record,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ReplayCmd) run(ctx context.Context, c *cli.Command) error {
	paths, err := expandScripts(c.Args().Slice())
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return cmd.runOne(ctx, c)
	}

	var reports []*replay.Report
	var mismatched []string
	for _, path := range paths {
		cmd.input.SetFile(path)
		report, err := cmd.replay(ctx)
		if err != nil {
			return cmd.fail(c, err)
		}
		reports = append(reports, report)
		if !cmd.matches(report) {
			mismatched = append(mismatched, path)
		}
	}

	if cmd.format == "json" {
		var out any = reports
		if len(reports) == 1 {
			out = reports[0]
		}
		if err := iojson.WriteWith(c.Root().Writer, c.Root().ErrWriter, out); err != nil {
			return err
		}
	} else {
		p := printer.New(c.Root().Writer)
		for i, report := range reports {
			if len(reports) > 1 {
				if i > 0 {
					p.Printf("")
				}
				p.Infof("%s", paths[i])
			}
			cmd.outputText(p, report)
		}
	}

	if len(mismatched) > 0 {
		return cli.Exit(fmt.Sprintf("expected %s: %s", cmd.expect, strings.Join(mismatched, ", ")), 1)
	}
	return nil
}

// runOne replays the script named by -f or read from stdin.
func (cmd *ReplayCmd) runOne(ctx context.Context, c *cli.Command) error {
	report, err := cmd.replay(ctx)
	if err != nil {
		return cmd.fail(c, err)
	}

	if cmd.format == "json" {
		if err := iojson.WriteWith(c.Root().Writer, c.Root().ErrWriter, report); err != nil {
			return err
		}
	} else {
		cmd.outputText(printer.New(c.Root().Writer), report)
	}

	if !cmd.matches(report) {
		return cli.Exit(fmt.Sprintf("expected %s, got %s", cmd.expect, report.Result), 1)
	}
	return nil
}

func (cmd *ReplayCmd) replay(ctx context.Context) (*replay.Report, error) {
	data, err := cmd.input.Read()
	if err != nil {
		return nil, err
	}

	script, err := replay.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", cmd.input.Source(), err)
	}

	report, err := replay.NewRunner(cmd.flags.Config).Run(ctx, script)
	if err != nil {
		return nil, err
	}

	if cmd.record {
		recordOutcome(ctx, cmd.flags, journal.Outcome{
			DialogID: report.DialogID,
			Flow:     report.Dialog,
			Result:   report.Result,
			Source:   journal.SourceReplay,
			Message:  journal.Summarize(script.Message),
			Duration: time.Duration(report.AtMS) * time.Millisecond,
		})
	}
	return report, nil
}

// fail reports err. JSON output gets an error document on stderr so callers
// parsing the output never see plain text.
func (cmd *ReplayCmd) fail(c *cli.Command, err error) error {
	if cmd.format != "json" {
		return err
	}
	if werr := iojson.WriteError(c.Root().ErrWriter, err, fieldDetails(err)); werr != nil {
		return errors.Join(err, werr)
	}
	return cli.Exit("", 1)
}

// fieldDetails flattens criterio field errors for the JSON error document.
func fieldDetails(err error) map[string]string {
	var fieldErrs criterio.FieldErrors
	if !errors.As(err, &fieldErrs) {
		return nil
	}
	fields := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields[fe.Field] = fe.Err.Error()
	}
	return fields
}

func (cmd *ReplayCmd) matches(r *replay.Report) bool {
	return cmd.expect == "" || strings.EqualFold(cmd.expect, r.Result)
}

// expandScripts resolves each argument as a glob pattern. An argument that
// matches nothing is kept as a literal path so reading it reports the error.
func expandScripts(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		matches, err := doublestar.FilepathGlob(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", arg, err)
		}
		if len(matches) == 0 {
			paths = append(paths, arg)
			continue
		}
		paths = append(paths, matches...)
	}
	return paths, nil
}

func (cmd *ReplayCmd) outputText(p *printer.Printer, r *replay.Report) {
	for _, e := range r.Entries {
		p.Printf("%8s  %-7s %s", e.At(), e.Kind, e.Detail)
	}

	if cmd.screen {
		p.Printf("")
		for _, line := range strings.Split(r.Screen, "\n") {
			p.Printf("  %s", line)
		}
	}

	p.Printf("")
	switch {
	case r.TimedOut:
		p.Warnf("%s dialog %s unresolved after %dms", r.Dialog, r.DialogID, r.AtMS)
	case r.Result == "confirmed":
		p.Successf("%s dialog %s confirmed at %dms", r.Dialog, r.DialogID, r.AtMS)
	default:
		p.Infof("%s dialog %s %s at %dms", r.Dialog, r.DialogID, r.Result, r.AtMS)
	}
}
