// Package painttest provides a recording Painter for widget tests.
package painttest

import (
	"github.com/colonyops/touchgate/internal/core/geom"
	"github.com/colonyops/touchgate/internal/core/paint"
)

// Op identifies the kind of a recorded draw call.
type Op string

const (
	OpButton   Op = "button"
	OpProgress Op = "progress"
	OpBody     Op = "body"
)

// Call is one recorded draw call.
type Call struct {
	Op       Op
	Area     geom.Rect
	Label    paint.Label
	Style    paint.StyleID
	Fraction float64
	Text     string
}

// Recorder captures draw calls in order.
type Recorder struct {
	Calls []Call
}

var _ paint.Painter = (*Recorder)(nil)

func (r *Recorder) Button(area geom.Rect, label paint.Label, style paint.StyleID) {
	r.Calls = append(r.Calls, Call{Op: OpButton, Area: area, Label: label, Style: style})
}

func (r *Recorder) Progress(area geom.Rect, fraction float64, style paint.StyleID) {
	r.Calls = append(r.Calls, Call{Op: OpProgress, Area: area, Fraction: fraction, Style: style})
}

func (r *Recorder) Body(text string) {
	r.Calls = append(r.Calls, Call{Op: OpBody, Text: text})
}

// Reset discards all recorded calls.
func (r *Recorder) Reset() {
	r.Calls = r.Calls[:0]
}

// Styles returns the style of every recorded button call, in order.
func (r *Recorder) Styles() []paint.StyleID {
	var out []paint.StyleID
	for _, c := range r.Calls {
		if c.Op == OpButton {
			out = append(out, c.Style)
		}
	}
	return out
}
