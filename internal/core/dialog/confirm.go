package dialog

import (
	"github.com/rs/zerolog"

	"github.com/colonyops/touchgate/internal/core/button"
	"github.com/colonyops/touchgate/internal/core/logging"
	"github.com/colonyops/touchgate/internal/core/loop"
	"github.com/colonyops/touchgate/internal/core/paint"
	"github.com/colonyops/touchgate/internal/core/touch"
	"github.com/colonyops/touchgate/pkg/randid"
)

// ConfirmOptions configures a Confirm dialog. Defaults for labels and styles
// are resolved by the caller.
type ConfirmOptions struct {
	ID     string
	Layout Layout

	ConfirmLabel paint.Label
	ConfirmStyle paint.StylePair

	// CancelLabel is nil for a dialog without a cancel button; the confirm
	// button then takes the whole action bar.
	CancelLabel *paint.Label
	CancelStyle paint.StylePair

	// Surface, when set, is repainted by the dialog after every touch event
	// and content update.
	Surface paint.Painter
}

// Confirm is a binary confirm/cancel dialog.
type Confirm struct {
	id      string
	content Content
	confirm *button.Button
	cancel  *button.Button
	input   *touch.Queue
	surface surface
	log     zerolog.Logger

	touchSrc   loop.Source[Result]
	contentSrc loop.Source[Result]
	last       which
	result     Result
}

// NewConfirm creates a confirm dialog over content. Buttons must not overlap;
// this is a precondition of the layout and is not checked.
func NewConfirm(content Content, opts ConfirmOptions) *Confirm {
	if opts.ID == "" {
		opts.ID = randid.DialogID()
	}

	bar := opts.Layout.ActionBar()
	d := &Confirm{
		id:      opts.ID,
		content: content,
		input:   touch.NewQueue(),
		surface: surface{painter: opts.Surface},
		log:     logging.Dialog("confirm", opts.ID),
	}

	if opts.CancelLabel != nil {
		left, right := bar.SplitH()
		d.cancel = button.New(left, *opts.CancelLabel, opts.CancelStyle)
		d.confirm = button.New(right, opts.ConfirmLabel, opts.ConfirmStyle)
	} else {
		d.confirm = button.New(bar, opts.ConfirmLabel, opts.ConfirmStyle)
	}

	d.touchSrc = touchLoop(d.input, d.Touch, d.repaint)
	d.contentSrc = updates[struct{}](content)

	d.log.Debug().Bool("cancel", d.cancel != nil).Msg("dialog created")
	return d
}

// ID returns the dialog identifier.
func (d *Confirm) ID() string {
	return d.id
}

// Input returns the queue the host pushes touch events onto.
func (d *Confirm) Input() *touch.Queue {
	return d.input
}

// Content returns the borrowed content handle.
func (d *Confirm) Content() Content {
	return d.content
}

// ConfirmButton returns the confirm button.
func (d *Confirm) ConfirmButton() *button.Button {
	return d.confirm
}

// CancelButton returns the cancel button, or nil if the dialog has none.
func (d *Confirm) CancelButton() *button.Button {
	return d.cancel
}

// Touch forwards one event to the confirm button, then to the cancel button.
// It returns Confirmed or Cancelled on a click, Pending otherwise.
func (d *Confirm) Touch(e touch.Event) Result {
	if d.confirm.Touch(e) {
		return Confirmed
	}
	if d.cancel != nil && d.cancel.Touch(e) {
		return Cancelled
	}
	return Pending
}

// Render paints the buttons. The caller paints the content.
func (d *Confirm) Render(p paint.Painter) {
	d.confirm.Render(p)
	if d.cancel != nil {
		d.cancel.Render(p)
	}
}

// Frames returns how many times the dialog repainted itself.
func (d *Confirm) Frames() int {
	return d.surface.frames
}

// Result returns the terminal result, or Pending while the dialog is open.
func (d *Confirm) Result() Result {
	return d.result
}

// Poll advances the dialog by one wait. Touch input is checked before
// content updates. It returns the terminal result and true once the user
// clicked a button, and false while the dialog is still open.
func (d *Confirm) Poll() (Result, bool) {
	if d.result.Terminal() {
		return d.result, true
	}

	idx, r, ok := loop.Wait(d.touchSrc, d.contentSrc)
	if !ok {
		return Pending, false
	}

	switch idx {
	case 0:
		d.last = fromTouch
	case 1:
		d.last = fromContent
		d.repaint()
	}

	if r.Terminal() {
		d.result = r
		d.log.Info().Stringer("result", r).Stringer("source", d.last).Msg("dialog resolved")
		return r, true
	}
	return Pending, false
}

func (d *Confirm) repaint() {
	d.surface.paint(func(p paint.Painter) {
		if d.content != nil {
			d.content.Render(p)
		}
		d.Render(p)
	})
}
