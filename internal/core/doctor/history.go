package doctor

import (
	"context"
	"fmt"

	"github.com/colonyops/touchgate/internal/data/stores"
)

// HistoryCheck verifies the outcome journal can be opened and read.
type HistoryCheck struct {
	enabled bool
	dir     string
}

// NewHistoryCheck creates a journal check for the database in dir.
func NewHistoryCheck(enabled bool, dir string) *HistoryCheck {
	return &HistoryCheck{enabled: enabled, dir: dir}
}

func (c *HistoryCheck) Name() string {
	return "History"
}

func (c *HistoryCheck) Run(ctx context.Context) Result {
	result := Result{Name: c.Name()}
	if !c.enabled {
		result.add("journal", StatusPass, "disabled")
		return result
	}

	store, closeFn, err := stores.OpenOutcomes(c.dir)
	if err != nil {
		result.add("journal", StatusFail, err.Error())
		return result
	}
	defer func() { _ = closeFn() }()

	stats, err := store.Stats(ctx)
	if err != nil {
		result.add("journal", StatusFail, err.Error())
		return result
	}

	var total int64
	for _, st := range stats {
		total += st.Count
	}
	result.add("journal", StatusPass, fmt.Sprintf("%s (%d outcomes)", c.dir, total))
	return result
}
