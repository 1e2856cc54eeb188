// Package content provides the content handles shown in a dialog body.
package content

import (
	"github.com/colonyops/touchgate/internal/core/dialog"
	"github.com/colonyops/touchgate/internal/core/paint"
)

// Stream is a content handle whose body is replaced by a producer. Update may
// be called from any goroutine; Poll and Render belong to the task driving the
// dialog. When updates arrive faster than they are polled, the latest body
// wins.
type Stream struct {
	updates chan string
	body    string
	fresh   bool
}

var _ dialog.Content = (*Stream)(nil)

// NewStream creates a stream showing initial. The first Poll reports it as
// an update so the dialog paints once.
func NewStream(initial string) *Stream {
	return &Stream{
		updates: make(chan string, 1),
		body:    initial,
		fresh:   true,
	}
}

// Static creates content that never changes after the first paint.
func Static(body string) *Stream {
	return NewStream(body)
}

// Update replaces the body. It never blocks.
func (s *Stream) Update(body string) {
	for {
		select {
		case s.updates <- body:
			return
		default:
		}
		// Drop the stale body nobody has polled yet.
		select {
		case <-s.updates:
		default:
		}
	}
}

// Poll reports whether a new body is available and takes it.
func (s *Stream) Poll() (struct{}, bool) {
	select {
	case body := <-s.updates:
		s.body = body
		s.fresh = false
		return struct{}{}, true
	default:
	}
	if s.fresh {
		s.fresh = false
		return struct{}{}, true
	}
	return struct{}{}, false
}

// Body returns the body taken by the most recent Poll.
func (s *Stream) Body() string {
	return s.body
}

// Render paints the body.
func (s *Stream) Render(p paint.Painter) {
	p.Body(s.body)
}
