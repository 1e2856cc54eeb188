package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/touchgate/internal/core/doctor"
	"github.com/colonyops/touchgate/internal/core/styles"
	"github.com/colonyops/touchgate/pkg/iojson"
)

type DoctorCmd struct {
	flags        *Flags
	format       string
	skipTerminal bool
}

func NewDoctorCmd(flags *Flags) *DoctorCmd {
	return &DoctorCmd{flags: flags}
}

func (cmd *DoctorCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:        "doctor",
		Usage:       "Run health checks on your touchgate setup",
		UsageText:   "touchgate doctor [options]",
		Description: "Runs diagnostic checks on configuration, the terminal and the history journal, then replays canned touch sessions against the configured dialogs.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "format",
				Usage:       "output format (text, json)",
				Value:       "text",
				Destination: &cmd.format,
			},
			&cli.BoolFlag{
				Name:        "skip-terminal",
				Usage:       "skip the terminal checks, e.g. in CI",
				Destination: &cmd.skipTerminal,
			},
		},
		Action: cmd.run,
	})
	return app
}

func (cmd *DoctorCmd) checks() []doctor.Check {
	cfg := cmd.flags.Config
	checks := []doctor.Check{doctor.NewConfigCheck(cfg, cmd.flags.ConfigPath)}
	if !cmd.skipTerminal {
		checks = append(checks, doctor.NewTerminalCheck(cfg.Display.Width, cfg.Display.Height))
	}
	return append(checks,
		doctor.NewHistoryCheck(cfg.History.IsEnabled(), cmd.flags.historyDir()),
		doctor.NewSelfTestCheck(cfg),
	)
}

func (cmd *DoctorCmd) run(ctx context.Context, c *cli.Command) error {
	results := doctor.RunAll(ctx, cmd.checks())
	_, _, failed := doctor.Summary(results)

	var err error
	if cmd.format == "json" {
		err = cmd.outputJSON(c, results)
	} else {
		cmd.outputText(c.Root().Writer, results)
	}
	if err != nil {
		return err
	}

	if failed > 0 {
		return cli.Exit("", 1)
	}
	return nil
}

type summaryJSON struct {
	Passed int `json:"passed"`
	Warned int `json:"warned"`
	Failed int `json:"failed"`
}

func (cmd *DoctorCmd) outputJSON(c *cli.Command, results []doctor.Result) error {
	passed, warned, failed := doctor.Summary(results)

	out := struct {
		Healthy bool            `json:"healthy"`
		Summary summaryJSON     `json:"summary"`
		Checks  []doctor.Result `json:"checks"`
	}{
		Healthy: failed == 0,
		Summary: summaryJSON{Passed: passed, Warned: warned, Failed: failed},
		Checks:  results,
	}

	return iojson.WriteWith(c.Root().Writer, c.Root().ErrWriter, out)
}

func (cmd *DoctorCmd) outputText(w io.Writer, results []doctor.Result) {
	var (
		p       = styles.CurrentPalette
		muted   = lipgloss.NewStyle().Foreground(p.Dim)
		bold    = lipgloss.NewStyle().Foreground(p.Text).Bold(true)
		success = lipgloss.NewStyle().Foreground(p.Confirm)
		warning = lipgloss.NewStyle().Foreground(p.Caution)
		divider = muted.Render(strings.Repeat("─", 40))
	)

	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, styles.ResultStyle.Render("touchgate doctor"))
	_, _ = fmt.Fprintln(w, divider)
	_, _ = fmt.Fprintln(w)

	for _, result := range results {
		heading := bold
		switch result.Worst() {
		case doctor.StatusWarn:
			heading = heading.Foreground(p.Caution)
		case doctor.StatusFail:
			heading = heading.Foreground(p.Danger)
		}
		_, _ = fmt.Fprintln(w, heading.Render(result.Name))

		for _, item := range result.Items {
			var detail string
			if item.Detail != "" {
				detail = " " + muted.Render(item.Detail)
			}

			var icon string
			switch item.Status {
			case doctor.StatusPass:
				icon = success.Render("✔")
			case doctor.StatusWarn:
				icon = warning.Render("●")
			case doctor.StatusFail:
				icon = styles.ErrorStyle.Render("✘")
			}

			_, _ = fmt.Fprintf(w, "  %s %s%s\n", icon, item.Label, detail)
		}

		_, _ = fmt.Fprintln(w)
	}

	passed, warned, failed := doctor.Summary(results)
	_, _ = fmt.Fprintf(w, "%s  %s  %s\n",
		success.Render(fmt.Sprintf("%d passed", passed)),
		warning.Render(fmt.Sprintf("%d warnings", warned)),
		styles.ErrorStyle.Render(fmt.Sprintf("%d failed", failed)),
	)
}
