package replay

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/colonyops/touchgate/internal/content"
	"github.com/colonyops/touchgate/internal/core/config"
	"github.com/colonyops/touchgate/internal/core/dialog"
	"github.com/colonyops/touchgate/internal/core/journal"
	"github.com/colonyops/touchgate/internal/core/logging"
	"github.com/colonyops/touchgate/internal/core/loop"
	"github.com/colonyops/touchgate/internal/core/touch"
	"github.com/colonyops/touchgate/internal/display"
	"github.com/colonyops/touchgate/internal/gate"
)

// EntryKind classifies a transcript entry.
type EntryKind string

const (
	EntryTouch   EntryKind = "touch"
	EntryContent EntryKind = "content"
	EntrySignal  EntryKind = "signal"
	EntryResult  EntryKind = "result"
)

// Entry is one line of a replay transcript.
type Entry struct {
	AtMS   int64     `json:"at_ms"`
	Kind   EntryKind `json:"kind"`
	Detail string    `json:"detail"`
}

// At returns the entry offset.
func (e Entry) At() time.Duration {
	return time.Duration(e.AtMS) * time.Millisecond
}

// Report is the outcome of a replay.
type Report struct {
	DialogID string  `json:"dialog_id"`
	Dialog   string  `json:"dialog"`
	Result   string  `json:"result"`
	TimedOut bool    `json:"timed_out"`
	AtMS     int64   `json:"at_ms"`
	Frames   int     `json:"frames"`
	Entries  []Entry `json:"entries"`
	Screen   string  `json:"screen"`
}

// Resolved reports whether the dialog reached a terminal result.
func (r *Report) Resolved() bool {
	return r.Result == dialog.Confirmed.String() || r.Result == dialog.Cancelled.String()
}

// Runner replays scripts against dialogs built from a configuration.
type Runner struct {
	cfg *config.Config
	log zerolog.Logger
}

// NewRunner creates a runner using cfg for layout, labels and timing.
func NewRunner(cfg *config.Config) *Runner {
	return &Runner{cfg: cfg, log: logging.Component("replay")}
}

// Run replays s. Simulated time starts at zero and advances one frame per
// scheduler pass. Every pass drains the queued touch events, so a release
// scripted at the same offset as its press is still seen as a separate event.
func (r *Runner) Run(ctx context.Context, s *Script) (*Report, error) {
	kind, err := gate.ParseKind(s.Dialog)
	if err != nil {
		return nil, err
	}

	var (
		clock  = clockwork.NewFakeClock()
		start  = clock.Now()
		canvas = display.NewCanvas(r.cfg.Display.Layout(), display.WithMarkdown(false))
		stream = content.NewStream(s.Message)
		report = &Report{Dialog: string(kind)}
	)

	now := func() time.Duration { return clock.Since(start) }
	record := func(k EntryKind, detail string) {
		report.Entries = append(report.Entries, Entry{AtMS: now().Milliseconds(), Kind: k, Detail: detail})
	}

	flow, err := gate.Build(r.cfg, stream, gate.Spec{
		Kind:      kind,
		Label:     s.Label,
		NoCancel:  s.NoCancel,
		Threshold: s.Threshold,
		Clock:     clock,
		Surface:   canvas,
		OnSignal:  func(res dialog.Result) { record(EntrySignal, res.String()) },
	})
	if err != nil {
		return nil, fmt.Errorf("build dialog: %w", err)
	}
	report.DialogID = flow.ID()

	ctx = logging.WithDialog(ctx, logging.DialogFields{
		Flow:   string(kind),
		ID:     flow.ID(),
		Source: string(journal.SourceReplay),
	})
	r.log.Debug().Ctx(ctx).Int("events", len(s.Events)).Msg("replay started")

	var (
		result   dialog.Result
		done     bool
		sched    = loop.NewScheduler(loop.WithSchedulerClock(clock))
		events   = s.Events
		updates  = s.Updates
		deadline = s.End() + s.Timeout
	)

	sched.Spawn("dialog", loop.TaskFunc(func() bool {
		res, ok := flow.Poll()
		if ok {
			result, done = res, true
		}
		return ok
	}))

	for !done {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		t := now()
		for len(updates) > 0 && updates[0].At <= t {
			stream.Update(updates[0].Body)
			record(EntryContent, updates[0].Body)
			updates = updates[1:]
		}
		for len(events) > 0 && events[0].At <= t {
			e, err := toTouch(events[0])
			if err != nil {
				return nil, err
			}
			flow.Input().Push(e)
			record(EntryTouch, e.String())
			events = events[1:]
		}

		for {
			sched.Step()
			if done || flow.Input().Len() == 0 {
				break
			}
		}

		if done {
			break
		}
		if t >= deadline {
			report.TimedOut = true
			r.log.Warn().Ctx(ctx).Dur("at", t).Msg("replay timed out without a result")
			break
		}
		clock.Advance(s.Frame)
	}

	report.Result = result.String()
	report.AtMS = now().Milliseconds()
	report.Frames = flow.Frames()
	report.Screen = screen(canvas)
	if done {
		record(EntryResult, report.Result)
	}

	r.log.Debug().Ctx(ctx).Str("result", report.Result).Int64("at_ms", report.AtMS).Msg("replay finished")
	return report, nil
}

func toTouch(e Event) (touch.Event, error) {
	kind, err := touch.ParseKind(e.Kind)
	if err != nil {
		return touch.Event{}, err
	}
	return touch.At(kind, e.X, e.Y), nil
}

func screen(c *display.Canvas) string {
	lines := strings.Split(ansi.Strip(c.String()), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " ")
	}
	return strings.TrimRight(strings.Join(lines, "\n"), "\n")
}
