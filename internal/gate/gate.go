// Package gate builds configured confirmation dialogs.
package gate

import (
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/colonyops/touchgate/internal/core/config"
	"github.com/colonyops/touchgate/internal/core/dialog"
	"github.com/colonyops/touchgate/internal/core/loop"
	"github.com/colonyops/touchgate/internal/core/paint"
	"github.com/colonyops/touchgate/internal/core/styles"
	"github.com/colonyops/touchgate/internal/core/touch"
)

// Kind selects the dialog flow.
type Kind string

const (
	KindConfirm Kind = "confirm"
	KindHold    Kind = "hold"
)

// ParseKind parses a dialog kind name.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindConfirm, KindHold:
		return Kind(s), nil
	}
	return "", fmt.Errorf("unknown dialog kind %q (want confirm or hold)", s)
}

// Flow is a built dialog.
type Flow interface {
	loop.Source[dialog.Result]
	ID() string
	Input() *touch.Queue
	Content() dialog.Content
	Render(p paint.Painter)
	Frames() int
}

var (
	_ Flow = (*dialog.Confirm)(nil)
	_ Flow = (*dialog.HoldToConfirm)(nil)
)

// Spec describes one dialog. Zero values fall back to the configuration.
type Spec struct {
	Kind Kind
	ID   string

	// Label overrides the confirm or hold button text.
	Label string
	// NoCancel omits the cancel button of a confirm dialog.
	NoCancel  bool
	Threshold time.Duration

	Clock    clockwork.Clock
	Surface  paint.Painter
	OnSignal func(dialog.Result)
}

// Build creates the dialog described by spec over c.
func Build(cfg *config.Config, c dialog.Content, spec Spec) (Flow, error) {
	layout := cfg.Display.Layout()

	switch spec.Kind {
	case KindConfirm, "":
		opts := dialog.ConfirmOptions{
			ID:     spec.ID,
			Layout: layout,
			ConfirmLabel: paint.Label{
				Text: orDefault(spec.Label, cfg.Labels.Confirm),
				Icon: cfg.Labels.ConfirmIcon,
			},
			ConfirmStyle: styles.ConfirmPair,
			CancelStyle:  styles.CancelPair,
			Surface:      spec.Surface,
		}
		if !spec.NoCancel {
			opts.CancelLabel = &paint.Label{Text: cfg.Labels.Cancel, Icon: cfg.Labels.CancelIcon}
		}
		return dialog.NewConfirm(c, opts), nil

	case KindHold:
		threshold := spec.Threshold
		if threshold == 0 {
			threshold = cfg.Hold.Threshold
		}
		return dialog.NewHoldToConfirm(c, dialog.HoldOptions{
			ID:            spec.ID,
			Layout:        layout,
			Label:         paint.Label{Text: orDefault(spec.Label, cfg.Labels.Hold), Icon: styles.IconHandleHold},
			Style:         styles.ConfirmPair,
			Threshold:     threshold,
			TickInterval:  cfg.Hold.TickInterval,
			ProgressStyle: styles.ProgressPair,
			Clock:         spec.Clock,
			Surface:       spec.Surface,
			OnSignal:      spec.OnSignal,
		})
	}

	return nil, fmt.Errorf("unknown dialog kind %q", spec.Kind)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
