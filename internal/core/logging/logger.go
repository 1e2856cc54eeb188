// Package logging holds the zerolog conventions shared by touchgate components.
package logging

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Component creates a new logger with a component identifier.
// Uses the "cmp" key for consistency with zerolog conventions.
func Component(name string) zerolog.Logger {
	return log.With().Str("cmp", name).Logger()
}

// Dialog creates a component logger for one dialog instance.
func Dialog(flow, dialogID string) zerolog.Logger {
	return log.With().
		Str("cmp", "dialog").
		Str("flow", flow).
		Str("dialog_id", dialogID).
		Logger()
}
