// Package button implements the press lifecycle of a single tappable region.
package button

import (
	"github.com/colonyops/touchgate/internal/core/geom"
	"github.com/colonyops/touchgate/internal/core/paint"
	"github.com/colonyops/touchgate/internal/core/touch"
)

// State is the press state of a button.
type State int

const (
	Idle State = iota
	Pressed
	// Clicked is reported by LastRelease after an Up inside the bounds.
	Clicked
	// ReleasedOutside is reported by LastRelease after an Up outside the
	// bounds, or after Reset abandoned the press.
	ReleasedOutside
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Pressed:
		return "pressed"
	case Clicked:
		return "clicked"
	case ReleasedOutside:
		return "released-outside"
	default:
		return "unknown"
	}
}

// Button tracks the press lifecycle of one rectangular region. A Down inside
// the bounds captures the button; the location of the following Up decides
// between a click and an abandoned press. Movement never changes the state.
type Button struct {
	area   geom.Rect
	label  paint.Label
	styles paint.StylePair

	state State
	last  State
}

// New creates an idle button.
func New(area geom.Rect, label paint.Label, styles paint.StylePair) *Button {
	return &Button{
		area:   area,
		label:  label,
		styles: styles,
		state:  Idle,
		last:   Idle,
	}
}

// Touch consumes one raw event and reports whether a click edge fired.
func (b *Button) Touch(e touch.Event) bool {
	inside := b.area.Contains(e.Pos)

	switch b.state {
	case Idle:
		if e.Kind == touch.Down && inside {
			b.state = Pressed
		}
		return false
	case Pressed:
		if e.Kind != touch.Up {
			return false
		}
		b.state = Idle
		if inside {
			b.last = Clicked
			return true
		}
		b.last = ReleasedOutside
		return false
	}
	return false
}

// Reset abandons an in-flight press without emitting a click.
func (b *Button) Reset() {
	if b.state == Pressed {
		b.state = Idle
		b.last = ReleasedOutside
	}
}

// Pressed reports whether a press is in flight.
func (b *Button) Pressed() bool {
	return b.state == Pressed
}

// State returns the current press state, Idle or Pressed.
func (b *Button) State() State {
	return b.state
}

// LastRelease returns how the most recent press ended: Clicked,
// ReleasedOutside, or Idle when no press has completed yet.
func (b *Button) LastRelease() State {
	return b.last
}

// Area returns the bounding rectangle.
func (b *Button) Area() geom.Rect {
	return b.area
}

// Label returns the label handle.
func (b *Button) Label() paint.Label {
	return b.label
}

// Render draws the button with the active style while pressed.
func (b *Button) Render(p paint.Painter) {
	p.Button(b.area, b.label, b.styles.Pick(b.Pressed()))
}
