package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/colonyops/touchgate/internal/content"
	"github.com/colonyops/touchgate/internal/core/config"
	"github.com/colonyops/touchgate/internal/core/dialog"
	"github.com/colonyops/touchgate/internal/core/journal"
	"github.com/colonyops/touchgate/internal/core/logging"
	"github.com/colonyops/touchgate/internal/gate"
	"github.com/colonyops/touchgate/internal/tui"
)

// Exit codes for dialog commands.
const (
	ExitCancelled  = 1
	ExitUnresolved = 2
)

// ErrNoTerminal is returned when a dialog is started without a terminal.
var ErrNoTerminal = errors.New("an interactive terminal is required to show a dialog")

// dialogInput holds the flags shared by the interactive dialog commands.
type dialogInput struct {
	message     string
	title       string
	label       string
	contentPath string
	print       bool
}

func (in *dialogInput) flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "message",
			Aliases:     []string{"m"},
			Usage:       "dialog body (markdown)",
			Destination: &in.message,
		},
		&cli.StringFlag{
			Name:        "title",
			Aliases:     []string{"t"},
			Usage:       "title shown above the dialog",
			Destination: &in.title,
		},
		&cli.StringFlag{
			Name:        "label",
			Usage:       "confirm button label (defaults to the configured label)",
			Destination: &in.label,
		},
		&cli.StringFlag{
			Name:        "content",
			Usage:       "file to show as the dialog body; reloaded when it changes",
			Destination: &in.contentPath,
		},
		&cli.BoolFlag{
			Name:        "print",
			Usage:       "print the result to stdout",
			Destination: &in.print,
		},
	}
}

// openContent returns the dialog body: the watched content file when one is
// configured, the message otherwise.
func (in *dialogInput) openContent(ctx context.Context, cfg *config.Config) (*content.Stream, error) {
	path := in.contentPath
	if path == "" {
		path = cfg.Content.Path
	}
	if path == "" {
		return content.NewStream(in.message), nil
	}
	return content.Watch(ctx, path)
}

// runDialog shows one dialog in the terminal and maps its result to an exit
// status: nil when confirmed, ExitCancelled when cancelled.
func runDialog(ctx context.Context, c *cli.Command, flags *Flags, spec gate.Spec, in *dialogInput) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return ErrNoTerminal
	}
	cfg := flags.Config

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	body, err := in.openContent(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open content: %w", err)
	}

	status := &tui.Status{}
	spec.OnSignal = status.Observe

	flow, err := gate.Build(cfg, body, spec)
	if err != nil {
		return err
	}

	ctx = logging.WithDialog(ctx, logging.DialogFields{
		Flow:   string(spec.Kind),
		ID:     flow.ID(),
		Source: string(journal.SourceTerminal),
	})

	m := tui.New(flow, tui.Options{
		Title:         in.title,
		Layout:        cfg.Display.Layout(),
		FrameInterval: cfg.Scheduler.FrameInterval,
		Markdown:      cfg.TUI.MarkdownEnabled(),
		Status:        status,
	})

	p := tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	if flags.Console != nil {
		flags.Console.Hold()
	}
	started := time.Now()
	_, runErr := p.Run()
	if flags.Console != nil {
		_ = flags.Console.Release()
	}
	if runErr != nil {
		return fmt.Errorf("run dialog: %w", runErr)
	}

	result := m.Result()
	log.Info().Ctx(ctx).Stringer("result", result).Int("holds", status.Holds()).Msg("dialog finished")

	recordOutcome(ctx, flags, journal.Outcome{
		DialogID:  flow.ID(),
		Flow:      string(spec.Kind),
		Result:    result.String(),
		Source:    journal.SourceTerminal,
		Message:   journal.Summarize(body.Body()),
		StartedAt: started,
		Duration:  time.Since(started),
	})

	if in.print {
		_, _ = fmt.Fprintln(c.Root().Writer, result)
	}
	return exitFor(result)
}

func exitFor(r dialog.Result) error {
	switch r {
	case dialog.Confirmed:
		return nil
	case dialog.Cancelled:
		return cli.Exit("", ExitCancelled)
	default:
		return cli.Exit("", ExitUnresolved)
	}
}
