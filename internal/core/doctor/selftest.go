package doctor

import (
	"context"
	"fmt"
	"time"

	"github.com/colonyops/touchgate/internal/core/config"
	"github.com/colonyops/touchgate/internal/core/geom"
	"github.com/colonyops/touchgate/internal/replay"
)

// SelfTestCheck replays canned touch sessions against the configured dialogs
// and checks each resolves as expected.
type SelfTestCheck struct {
	cfg *config.Config
}

// NewSelfTestCheck creates a self-test for cfg.
func NewSelfTestCheck(cfg *config.Config) *SelfTestCheck {
	return &SelfTestCheck{cfg: cfg}
}

func (c *SelfTestCheck) Name() string {
	return "Self-test"
}

type selfTestCase struct {
	label  string
	script *replay.Script
	want   string
}

func (c *SelfTestCheck) cases() []selfTestCase {
	bar := c.cfg.Display.Layout().ActionBar()
	cancel, confirm := bar.SplitH()
	threshold := c.cfg.Hold.Threshold

	tap := func(p geom.Point) []replay.Event {
		return []replay.Event{
			{At: 0, Kind: "down", X: p.X, Y: p.Y},
			{At: 50 * time.Millisecond, Kind: "up", X: p.X, Y: p.Y},
		}
	}

	return []selfTestCase{
		{
			label:  "tap confirm",
			script: newScript("confirm", threshold, tap(center(confirm))),
			want:   "confirmed",
		},
		{
			label:  "tap cancel",
			script: newScript("confirm", threshold, tap(center(cancel))),
			want:   "cancelled",
		},
		{
			label: "hold to threshold",
			script: newScript("hold", threshold, []replay.Event{
				{At: 0, Kind: "down", X: center(bar).X, Y: center(bar).Y},
			}),
			want: "confirmed",
		},
		{
			label: "early release",
			script: newScript("hold", threshold, []replay.Event{
				{At: 0, Kind: "down", X: center(bar).X, Y: center(bar).Y},
				{At: threshold / 2, Kind: "up", X: center(bar).X, Y: center(bar).Y},
			}),
			want: "pending",
		},
	}
}

func (c *SelfTestCheck) Run(ctx context.Context) Result {
	result := Result{Name: c.Name()}
	runner := replay.NewRunner(c.cfg)

	for _, tc := range c.cases() {
		report, err := runner.Run(ctx, tc.script)
		switch {
		case err != nil:
			result.add(tc.label, StatusFail, err.Error())
		case report.Result != tc.want:
			result.add(tc.label, StatusFail, fmt.Sprintf("got %s, want %s", report.Result, tc.want))
		default:
			result.add(tc.label, StatusPass, fmt.Sprintf("%s at %dms", report.Result, report.AtMS))
		}
	}

	return result
}

func newScript(dialog string, threshold time.Duration, events []replay.Event) *replay.Script {
	return &replay.Script{
		Dialog:  dialog,
		Message: "self-test",
		Frame:   replay.DefaultFrame,
		Timeout: threshold + time.Second,
		Events:  events,
	}
}

func center(r geom.Rect) geom.Point {
	return geom.Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
}
