// Package loader implements the hold timer behind hold-to-confirm gestures.
//
// A Loader measures how long a press has been held against a threshold.
// While the hold is short of the threshold the loader is active and acts as a
// tick source so the owner can repaint progress. Once the threshold is reached
// the loader stops being active on its own, without waiting for a release.
package loader

import (
	"errors"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/colonyops/touchgate/internal/core/geom"
	"github.com/colonyops/touchgate/internal/core/paint"
)

// ErrInvalidThreshold is returned by New for a threshold that is not positive.
var ErrInvalidThreshold = errors.New("hold threshold must be positive")

// DefaultTickInterval is the repaint interval used when none is configured.
const DefaultTickInterval = 30 * time.Millisecond

// Loader is a hold timer. The zero value is not usable; use New.
type Loader struct {
	clock     clockwork.Clock
	threshold time.Duration
	interval  time.Duration
	styles    paint.StylePair
	area      geom.Rect

	running  bool
	start    time.Time
	lastTick time.Time
}

// Option configures a Loader.
type Option func(*Loader)

// WithClock sets the time source. Defaults to the real clock.
func WithClock(c clockwork.Clock) Option {
	return func(l *Loader) {
		if c != nil {
			l.clock = c
		}
	}
}

// WithTickInterval sets the minimum interval between progress ticks.
func WithTickInterval(d time.Duration) Option {
	return func(l *Loader) {
		if d > 0 {
			l.interval = d
		}
	}
}

// WithStyles sets the styles used to paint progress.
func WithStyles(s paint.StylePair) Option {
	return func(l *Loader) {
		l.styles = s
	}
}

// WithArea sets the region the progress bar is painted in.
func WithArea(r geom.Rect) Option {
	return func(l *Loader) {
		l.area = r
	}
}

// New creates an idle loader confirming holds of at least threshold.
func New(threshold time.Duration, opts ...Option) (*Loader, error) {
	if threshold <= 0 {
		return nil, fmt.Errorf("%w: got %s", ErrInvalidThreshold, threshold)
	}

	l := &Loader{
		clock:     clockwork.NewRealClock(),
		threshold: threshold,
		interval:  DefaultTickInterval,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// Threshold returns the configured hold threshold.
func (l *Loader) Threshold() time.Duration {
	return l.threshold
}

// Start records the start of a hold. It does nothing if a hold is running.
func (l *Loader) Start() {
	if l.running {
		return
	}
	now := l.clock.Now()
	l.running = true
	l.start = now
	l.lastTick = now
}

// Stop ends the running hold and reports whether it lasted at least the
// threshold. Stop on an idle loader returns false.
func (l *Loader) Stop() bool {
	if !l.running {
		return false
	}
	elapsed := l.clock.Since(l.start)
	l.running = false
	l.start = time.Time{}
	l.lastTick = time.Time{}
	return elapsed >= l.threshold
}

// Running reports whether a hold has been started and not stopped.
func (l *Loader) Running() bool {
	return l.running
}

// IsActive reports whether a hold is running and still short of the
// threshold.
func (l *Loader) IsActive() bool {
	return l.running && l.elapsed() < l.threshold
}

// Expired reports whether a running hold has reached the threshold.
func (l *Loader) Expired() bool {
	return l.running && l.elapsed() >= l.threshold
}

// Elapsed returns how long the current hold has lasted, or zero when idle.
func (l *Loader) Elapsed() time.Duration {
	if !l.running {
		return 0
	}
	return l.elapsed()
}

// Progress returns the elapsed fraction of the threshold in [0, 1].
func (l *Loader) Progress() float64 {
	if !l.running {
		return 0
	}
	f := float64(l.elapsed()) / float64(l.threshold)
	return min(max(f, 0), 1)
}

// Poll is the tick source used while the loader is active. It produces the
// current progress at most once per tick interval and is pending otherwise.
func (l *Loader) Poll() (float64, bool) {
	if !l.IsActive() {
		return 0, false
	}
	now := l.clock.Now()
	if now.Sub(l.lastTick) < l.interval {
		return 0, false
	}
	l.lastTick = now
	return l.Progress(), true
}

// Render paints the progress bar.
func (l *Loader) Render(p paint.Painter) {
	p.Progress(l.area, l.Progress(), l.styles.Pick(l.running))
}

func (l *Loader) elapsed() time.Duration {
	return l.clock.Since(l.start)
}
