// Package journal defines the record kept for every resolved or abandoned
// dialog and the store interface that persists it.
package journal

import (
	"context"
	"strings"
	"time"
)

// Source identifies what drove a dialog.
type Source string

const (
	SourceTerminal Source = "terminal"
	SourceReplay   Source = "replay"
)

// Outcome is one dialog run.
type Outcome struct {
	ID        string        `json:"id"`
	DialogID  string        `json:"dialog_id"`
	Flow      string        `json:"flow"`
	Result    string        `json:"result"`
	Source    Source        `json:"source"`
	Message   string        `json:"message,omitempty"`
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration"`
}

// Filter narrows List results. Zero values match everything.
type Filter struct {
	Flow   string
	Result string
	Limit  int
}

// Stat is the number of outcomes for one flow and result.
type Stat struct {
	Flow   string `json:"flow"`
	Result string `json:"result"`
	Count  int64  `json:"count"`
}

// Store persists outcomes to durable storage.
type Store interface {
	Record(ctx context.Context, o Outcome) error
	List(ctx context.Context, f Filter) ([]Outcome, error)
	Stats(ctx context.Context) ([]Stat, error)
	Prune(ctx context.Context, before time.Time) (int64, error)
}

// maxMessage bounds the stored message summary.
const maxMessage = 120

// Summarize returns the first non-blank line of body, cut to a fixed length.
func Summarize(body string) string {
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "#>*- "))
		if line == "" {
			continue
		}
		if r := []rune(line); len(r) > maxMessage {
			return string(r[:maxMessage-1]) + "…"
		}
		return line
	}
	return ""
}
