package dialog

import (
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/colonyops/touchgate/internal/core/button"
	"github.com/colonyops/touchgate/internal/core/loader"
	"github.com/colonyops/touchgate/internal/core/logging"
	"github.com/colonyops/touchgate/internal/core/loop"
	"github.com/colonyops/touchgate/internal/core/paint"
	"github.com/colonyops/touchgate/internal/core/touch"
	"github.com/colonyops/touchgate/pkg/randid"
)

// HoldOptions configures a HoldToConfirm dialog.
type HoldOptions struct {
	ID     string
	Layout Layout

	Label paint.Label
	Style paint.StylePair

	Threshold     time.Duration
	TickInterval  time.Duration
	ProgressStyle paint.StylePair
	Clock         clockwork.Clock

	Surface paint.Painter

	// OnSignal, when set, is called with every Started and Stopped signal.
	// These never leave the dialog through Poll.
	OnSignal func(Result)
}

// HoldToConfirm is a dialog confirmed by pressing and holding its button
// for at least the hold threshold.
type HoldToConfirm struct {
	id      string
	content Content
	button  *button.Button
	loader  *loader.Loader
	input   *touch.Queue
	surface surface
	log     zerolog.Logger

	onSignal func(Result)

	touchSrc   loop.Source[Result]
	contentSrc loop.Source[Result]
	timerSrc   loop.Source[Result]
	awaiting   which
	result     Result
}

// NewHoldToConfirm creates a hold-to-confirm dialog over content. It fails
// when the threshold is not positive.
func NewHoldToConfirm(content Content, opts HoldOptions) (*HoldToConfirm, error) {
	if opts.ID == "" {
		opts.ID = randid.DialogID()
	}

	l, err := loader.New(opts.Threshold,
		loader.WithClock(opts.Clock),
		loader.WithTickInterval(opts.TickInterval),
		loader.WithStyles(opts.ProgressStyle),
		loader.WithArea(opts.Layout.ProgressArea()),
	)
	if err != nil {
		return nil, fmt.Errorf("create hold dialog: %w", err)
	}

	d := &HoldToConfirm{
		id:       opts.ID,
		content:  content,
		button:   button.New(opts.Layout.ActionBar(), opts.Label, opts.Style),
		loader:   l,
		input:    touch.NewQueue(),
		surface:  surface{painter: opts.Surface},
		log:      logging.Dialog("hold", opts.ID),
		onSignal: opts.OnSignal,
		awaiting: fromContent,
	}

	d.touchSrc = touchLoop(d.input, d.Touch, d.repaint)
	d.contentSrc = updates[struct{}](content)
	d.timerSrc = updates[float64](l)

	d.log.Debug().Dur("threshold", opts.Threshold).Msg("dialog created")
	return d, nil
}

// ID returns the dialog identifier.
func (d *HoldToConfirm) ID() string {
	return d.id
}

// Input returns the queue the host pushes touch events onto.
func (d *HoldToConfirm) Input() *touch.Queue {
	return d.input
}

// Content returns the borrowed content handle.
func (d *HoldToConfirm) Content() Content {
	return d.content
}

// Button returns the hold button.
func (d *HoldToConfirm) Button() *button.Button {
	return d.button
}

// Loader returns the hold timer.
func (d *HoldToConfirm) Loader() *loader.Loader {
	return d.loader
}

// Progress returns the elapsed fraction of the current hold.
func (d *HoldToConfirm) Progress() float64 {
	return d.loader.Progress()
}

// Frames returns how many times the dialog repainted itself.
func (d *HoldToConfirm) Frames() int {
	return d.surface.frames
}

// Result returns Confirmed once the hold completed, Pending before.
func (d *HoldToConfirm) Result() Result {
	return d.result
}

// Touch forwards one event to the button and translates press edges into
// hold signals: a press starting returns Started, a press ending returns
// Confirmed when the hold reached the threshold and Stopped when it did not.
func (d *HoldToConfirm) Touch(e touch.Event) Result {
	wasPressed := d.button.Pressed()
	d.button.Touch(e)
	isPressed := d.button.Pressed()

	switch {
	case isPressed && !wasPressed:
		d.loader.Start()
		return Started
	case wasPressed && !isPressed:
		if d.loader.Stop() {
			return Confirmed
		}
		return Stopped
	}
	return Pending
}

// Render paints the button and the hold progress. The caller paints the
// content.
func (d *HoldToConfirm) Render(p paint.Painter) {
	d.button.Render(p)
	d.loader.Render(p)
}

// Poll advances the dialog by one wait. While a hold is active the touch
// loop races the progress ticks, otherwise it races content updates. Once a
// held press reaches the threshold the dialog confirms without waiting for
// the release. Only Confirmed is terminal; a released hold leaves the dialog
// open for another press.
func (d *HoldToConfirm) Poll() (Result, bool) {
	if d.result == Confirmed {
		return d.result, true
	}

	if d.loader.Expired() {
		d.button.Reset()
		d.loader.Stop()
		d.repaint()
		return d.resolve(fromTimer), true
	}

	second := d.contentSrc
	d.awaiting = fromContent
	if d.loader.IsActive() {
		second = d.timerSrc
		d.awaiting = fromTimer
	}

	idx, r, ok := loop.Wait(d.touchSrc, second)
	if !ok {
		return Pending, false
	}
	if idx == 1 {
		d.repaint()
		return Pending, false
	}

	switch r {
	case Confirmed:
		return d.resolve(fromTouch), true
	case Started, Stopped:
		d.log.Debug().Stringer("signal", r).Dur("elapsed", d.loader.Elapsed()).Msg("hold signal")
		if d.onSignal != nil {
			d.onSignal(r)
		}
	}
	return Pending, false
}

func (d *HoldToConfirm) resolve(src which) Result {
	d.result = Confirmed
	d.log.Info().Stringer("result", d.result).Stringer("source", src).Msg("dialog resolved")
	return d.result
}

func (d *HoldToConfirm) repaint() {
	d.surface.paint(func(p paint.Painter) {
		if d.content != nil {
			d.content.Render(p)
		}
		d.Render(p)
	})
}
