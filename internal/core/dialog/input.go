package dialog

import (
	"github.com/colonyops/touchgate/internal/core/loop"
	"github.com/colonyops/touchgate/internal/core/paint"
	"github.com/colonyops/touchgate/internal/core/touch"
)

// which identifies the source a dialog resolved its last wait on.
type which int

const (
	fromNone which = iota
	fromTouch
	fromContent
	fromTimer
)

func (w which) String() string {
	switch w {
	case fromTouch:
		return "touch"
	case fromContent:
		return "content"
	case fromTimer:
		return "timer"
	default:
		return "none"
	}
}

// touchLoop drains queued touch events through handle in arrival order and
// repaints after each one. It produces the first non-Pending result and
// leaves any later events queued for the next poll.
func touchLoop(q *touch.Queue, handle func(touch.Event) Result, repaint func()) loop.Source[Result] {
	return loop.SourceFunc[Result](func() (Result, bool) {
		for {
			e, ok := q.Pop()
			if !ok {
				return Pending, false
			}
			r := handle(e)
			repaint()
			if r != Pending {
				return r, true
			}
		}
	})
}

// updates maps a source of any value onto a Pending result so it can race
// against the touch loop.
func updates[T any](src loop.Source[T]) loop.Source[Result] {
	if src == nil {
		return loop.Never[Result]()
	}
	return loop.Map(src, func(T) Result { return Pending })
}

// surface owns the optional painter a dialog repaints into from its own loop.
type surface struct {
	painter paint.Painter
	frames  int
}

func (s *surface) paint(draw func(paint.Painter)) {
	s.frames++
	if s.painter != nil {
		draw(s.painter)
	}
}
