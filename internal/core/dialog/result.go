// Package dialog implements the touch confirmation flows: a binary
// confirm/cancel dialog and a hold-to-confirm dialog.
//
// Both dialogs are driven by polling. A host pushes raw touch events onto the
// dialog's input queue and calls Poll from a cooperative task; Poll yields
// (returns false) until the flow reaches a terminal Result. Poll only ever
// resolves to Confirmed or Cancelled; the other Result values stay inside the
// flow as loop signals.
package dialog

import (
	"github.com/colonyops/touchgate/internal/core/geom"
	"github.com/colonyops/touchgate/internal/core/loop"
	"github.com/colonyops/touchgate/internal/core/paint"
)

// Result is the outcome of feeding a touch event to a dialog.
type Result int

const (
	// Pending means nothing happened; keep looping.
	Pending Result = iota
	// Started signals that a hold began.
	Started
	// Stopped signals that a hold was released before the threshold.
	Stopped
	Confirmed
	Cancelled
)

func (r Result) String() string {
	switch r {
	case Pending:
		return "pending"
	case Started:
		return "started"
	case Stopped:
		return "stopped"
	case Confirmed:
		return "confirmed"
	case Cancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Terminal reports whether the dialog is finished after this result.
func (r Result) Terminal() bool {
	return r == Confirmed || r == Cancelled
}

// Content is the externally owned body of a dialog. Poll reports when new
// data is available to show; the dialog never starts, stops or mutates it.
type Content interface {
	loop.Source[struct{}]
	Render(p paint.Painter)
}

// Layout describes the screen the dialog occupies.
type Layout struct {
	Width  int
	Height int
	// BarHeight is the height of the action bar along the bottom edge.
	BarHeight int
	// ProgressHeight is the height of the hold progress strip drawn directly
	// above the action bar.
	ProgressHeight int
}

// ActionBar returns the region holding the dialog buttons.
func (l Layout) ActionBar() geom.Rect {
	return geom.Rect{X: 0, Y: l.Height - l.BarHeight, W: l.Width, H: l.BarHeight}
}

// ProgressArea returns the region the hold progress is drawn in.
func (l Layout) ProgressArea() geom.Rect {
	return geom.Rect{X: 0, Y: l.Height - l.BarHeight - l.ProgressHeight, W: l.Width, H: l.ProgressHeight}
}

// BodyArea returns the region above the action bar available to content.
func (l Layout) BodyArea() geom.Rect {
	return geom.Rect{X: 0, Y: 0, W: l.Width, H: l.Height - l.BarHeight}
}

// DefaultLayout matches a 240x240 touch display with a 48px action bar.
func DefaultLayout() Layout {
	return Layout{Width: 240, Height: 240, BarHeight: 48, ProgressHeight: 8}
}
