package stores

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/colonyops/touchgate/internal/core/journal"
	"github.com/colonyops/touchgate/internal/data/db"
)

const (
	busyRetries = 3
	busyWait    = 50 * time.Millisecond
)

// OutcomeStore implements journal.Store using SQLite.
type OutcomeStore struct {
	db  *db.DB
	now func() time.Time
}

var _ journal.Store = (*OutcomeStore)(nil)

// NewOutcomeStore creates a new SQLite-backed outcome store.
func NewOutcomeStore(db *db.DB) *OutcomeStore {
	return &OutcomeStore{db: db, now: time.Now}
}

// Record inserts o. An empty ID is filled with a random UUID and a zero
// StartedAt with the current time.
func (s *OutcomeStore) Record(ctx context.Context, o journal.Outcome) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	if o.StartedAt.IsZero() {
		o.StartedAt = s.now()
	}

	var err error
	for attempt := range busyRetries {
		_, err = s.db.Conn().ExecContext(ctx, `
			INSERT INTO outcomes (id, dialog_id, flow, result, source, message, started_at, duration_ns)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			o.ID, o.DialogID, o.Flow, o.Result, string(o.Source), o.Message,
			o.StartedAt.UnixNano(), int64(o.Duration),
		)
		if !IsBusyError(err) || attempt == busyRetries-1 {
			break
		}
		time.Sleep(busyWait)
	}
	if err != nil {
		return fmt.Errorf("insert outcome: %w", err)
	}
	return nil
}

// List returns outcomes matching f, newest first.
func (s *OutcomeStore) List(ctx context.Context, f journal.Filter) ([]journal.Outcome, error) {
	var (
		where []string
		args  []any
	)
	if f.Flow != "" {
		where = append(where, "flow = ?")
		args = append(args, f.Flow)
	}
	if f.Result != "" {
		where = append(where, "result = ?")
		args = append(args, f.Result)
	}

	query := "SELECT id, dialog_id, flow, result, source, message, started_at, duration_ns FROM outcomes"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY started_at DESC, rowid DESC"
	if f.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, f.Limit)
	}

	rows, err := s.db.Conn().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list outcomes: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var result []journal.Outcome
	for rows.Next() {
		o, err := scanOutcome(rows)
		if err != nil {
			return nil, fmt.Errorf("scan outcome: %w", err)
		}
		result = append(result, o)
	}
	return result, rows.Err()
}

// Stats counts outcomes per flow and result.
func (s *OutcomeStore) Stats(ctx context.Context) ([]journal.Stat, error) {
	rows, err := s.db.Conn().QueryContext(ctx, `
		SELECT flow, result, COUNT(*) FROM outcomes
		GROUP BY flow, result
		ORDER BY flow, result`)
	if err != nil {
		return nil, fmt.Errorf("outcome stats: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var stats []journal.Stat
	for rows.Next() {
		var st journal.Stat
		if err := rows.Scan(&st.Flow, &st.Result, &st.Count); err != nil {
			return nil, fmt.Errorf("scan stat: %w", err)
		}
		stats = append(stats, st)
	}
	return stats, rows.Err()
}

// Prune deletes outcomes started before the cutoff and reports how many
// were removed.
func (s *OutcomeStore) Prune(ctx context.Context, before time.Time) (int64, error) {
	var n int64
	err := s.db.WithTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, "DELETE FROM outcomes WHERE started_at < ?", before.UnixNano())
		if err != nil {
			return fmt.Errorf("prune outcomes: %w", err)
		}
		n, err = res.RowsAffected()
		return err
	})
	return n, err
}

func scanOutcome(rows *sql.Rows) (journal.Outcome, error) {
	var (
		o         journal.Outcome
		source    string
		startedAt int64
		duration  int64
	)
	err := rows.Scan(&o.ID, &o.DialogID, &o.Flow, &o.Result, &source, &o.Message, &startedAt, &duration)
	if err != nil {
		return journal.Outcome{}, err
	}

	o.Source = journal.Source(source)
	o.StartedAt = time.Unix(0, startedAt)
	o.Duration = time.Duration(duration)
	return o, nil
}
