package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/touchgate/internal/core/journal"
	"github.com/colonyops/touchgate/internal/data/stores"
	"github.com/colonyops/touchgate/internal/printer"
	"github.com/colonyops/touchgate/pkg/iojson"
)

type HistoryCmd struct {
	flags     *Flags
	format    string
	limit     int
	flow      string
	result    string
	olderThan time.Duration
}

// NewHistoryCmd creates a new history command.
func NewHistoryCmd(flags *Flags) *HistoryCmd {
	return &HistoryCmd{flags: flags}
}

// Register adds the history command to the application.
func (cmd *HistoryCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:        "history",
		Usage:       "Show recorded dialog outcomes",
		UsageText:   "touchgate history [options]",
		Description: "Lists outcomes from the journal, newest first. Dialogs are recorded when history.enabled is true.",
		Flags: []cli.Flag{
			cmd.formatFlag(),
			&cli.IntFlag{
				Name:        "limit",
				Aliases:     []string{"n"},
				Usage:       "maximum number of outcomes to show (0 for all)",
				Value:       20,
				Destination: &cmd.limit,
			},
			&cli.StringFlag{
				Name:        "flow",
				Usage:       "only show this dialog kind (confirm, hold)",
				Destination: &cmd.flow,
			},
			&cli.StringFlag{
				Name:        "result",
				Usage:       "only show this result (confirmed, cancelled, pending)",
				Destination: &cmd.result,
			},
		},
		Action: cmd.runList,
		Commands: []*cli.Command{
			{
				Name:      "stats",
				Usage:     "Count outcomes by dialog kind and result",
				UsageText: "touchgate history stats [options]",
				Flags:     []cli.Flag{cmd.formatFlag()},
				Action:    cmd.runStats,
			},
			{
				Name:      "prune",
				Usage:     "Delete old outcomes",
				UsageText: "touchgate history prune --older-than 720h",
				Flags: []cli.Flag{
					&cli.DurationFlag{
						Name:        "older-than",
						Usage:       "delete outcomes started longer ago than this",
						Required:    true,
						Destination: &cmd.olderThan,
					},
				},
				Action: cmd.runPrune,
			},
		},
	})

	return app
}

func (cmd *HistoryCmd) formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:        "format",
		Usage:       "output format (text, json)",
		Value:       "text",
		Destination: &cmd.format,
	}
}

func (cmd *HistoryCmd) open() (*stores.OutcomeStore, func() error, error) {
	store, closeFn, err := stores.OpenOutcomes(cmd.flags.historyDir())
	if err != nil {
		return nil, nil, fmt.Errorf("open journal: %w", err)
	}
	return store, closeFn, nil
}

func (cmd *HistoryCmd) runList(ctx context.Context, c *cli.Command) error {
	store, closeFn, err := cmd.open()
	if err != nil {
		return err
	}
	defer func() { _ = closeFn() }()

	outcomes, err := store.List(ctx, journal.Filter{Flow: cmd.flow, Result: cmd.result, Limit: cmd.limit})
	if err != nil {
		return err
	}

	if cmd.format == "json" {
		if outcomes == nil {
			outcomes = []journal.Outcome{}
		}
		return iojson.WriteWith(c.Root().Writer, c.Root().ErrWriter, outcomes)
	}

	p := printer.New(c.Root().Writer)
	if len(outcomes) == 0 {
		p.Infof("No outcomes recorded")
		return nil
	}
	for _, o := range outcomes {
		p.Printf("%s  %-7s  %-9s  %7s  %-8s  %s",
			o.StartedAt.Local().Format(time.DateTime),
			o.Flow,
			o.Result,
			o.Duration.Round(10*time.Millisecond),
			o.Source,
			o.Message,
		)
	}
	return nil
}

func (cmd *HistoryCmd) runStats(ctx context.Context, c *cli.Command) error {
	store, closeFn, err := cmd.open()
	if err != nil {
		return err
	}
	defer func() { _ = closeFn() }()

	stats, err := store.Stats(ctx)
	if err != nil {
		return err
	}

	if cmd.format == "json" {
		if stats == nil {
			stats = []journal.Stat{}
		}
		return iojson.WriteWith(c.Root().Writer, c.Root().ErrWriter, stats)
	}

	p := printer.New(c.Root().Writer)
	var total int64
	for _, st := range stats {
		p.Printf("%-7s  %-9s  %d", st.Flow, st.Result, st.Count)
		total += st.Count
	}
	p.Printf("")
	p.Infof("%d outcome(s)", total)
	return nil
}

func (cmd *HistoryCmd) runPrune(ctx context.Context, c *cli.Command) error {
	if cmd.olderThan <= 0 {
		return errors.New("--older-than must be positive")
	}

	store, closeFn, err := cmd.open()
	if err != nil {
		return err
	}
	defer func() { _ = closeFn() }()

	n, err := store.Prune(ctx, time.Now().Add(-cmd.olderThan))
	if err != nil {
		return err
	}

	printer.New(c.Root().Writer).Successf("Pruned %d outcome(s)", n)
	return nil
}
