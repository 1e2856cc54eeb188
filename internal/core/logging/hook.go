package logging

import "github.com/rs/zerolog"

// ContextHook copies the DialogFields of an event's context onto the event.
// Install it on the root logger and log with .Ctx(ctx).
type ContextHook struct{}

func (ContextHook) Run(e *zerolog.Event, _ zerolog.Level, _ string) {
	f, ok := DialogFrom(e.GetCtx())
	if !ok {
		return
	}
	if f.ID != "" {
		e.Str("dialog_id", f.ID)
	}
	if f.Flow != "" {
		e.Str("flow", f.Flow)
	}
	if f.Source != "" {
		e.Str("source", f.Source)
	}
}
