package commands

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/colonyops/touchgate/internal/core/journal"
	"github.com/colonyops/touchgate/internal/data/stores"
)

// recordOutcome appends o to the journal when history is enabled and prunes
// entries past the retention window. Failures are logged; a dialog result is
// never lost because the journal is unavailable.
func recordOutcome(ctx context.Context, flags *Flags, o journal.Outcome) {
	cfg := flags.Config
	if cfg == nil || !cfg.History.IsEnabled() {
		return
	}

	store, closeFn, err := stores.OpenOutcomes(flags.historyDir())
	if err != nil {
		log.Warn().Ctx(ctx).Err(err).Msg("open journal")
		return
	}
	defer func() { _ = closeFn() }()

	if err := store.Record(ctx, o); err != nil {
		log.Warn().Ctx(ctx).Err(err).Msg("record outcome")
		return
	}

	if cfg.History.Retention > 0 {
		n, err := store.Prune(ctx, time.Now().Add(-cfg.History.Retention))
		if err != nil {
			log.Warn().Ctx(ctx).Err(err).Msg("prune journal")
			return
		}
		if n > 0 {
			log.Debug().Ctx(ctx).Int64("pruned", n).Msg("journal pruned")
		}
	}
}
