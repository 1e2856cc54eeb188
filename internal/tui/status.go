package tui

import "github.com/colonyops/touchgate/internal/core/dialog"

// Status tracks hold signals for the footer. Pass Observe as the dialog's
// OnSignal hook.
type Status struct {
	last  dialog.Result
	holds int
}

// Observe records a Started or Stopped signal.
func (s *Status) Observe(r dialog.Result) {
	s.last = r
	if r == dialog.Started {
		s.holds++
	}
}

// Holds returns how many holds were started.
func (s *Status) Holds() int {
	if s == nil {
		return 0
	}
	return s.holds
}

// Text returns the footer message for the last signal.
func (s *Status) Text() string {
	if s == nil {
		return ""
	}
	switch s.last {
	case dialog.Started:
		return "holding…"
	case dialog.Stopped:
		return "released too early, hold again"
	default:
		return ""
	}
}
