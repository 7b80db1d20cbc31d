package store

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"sync"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// sequenceCounter manages the global monotonic sequence number shared across
// the paint and diagnostic tables. Per-table auto-increment IDs can't order
// a diagnostic relative to the paint pass that raised it; the shared
// counter can.
//
// The mutex serializes within the process; the RETURNING clause makes the
// increment atomic at the database level.
type sequenceCounter struct {
	mu sync.Mutex
	db *sql.DB
}

// newSequenceCounter creates a counter and ensures the tracking table exists.
func newSequenceCounter(db *sql.DB) (*sequenceCounter, error) {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS global_sequence (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		next_val INTEGER NOT NULL DEFAULT 1
	)`)
	if err != nil {
		return nil, fmt.Errorf("create sequence table: %w", err)
	}

	_, err = db.Exec(`INSERT OR IGNORE INTO global_sequence (id, next_val) VALUES (1, 1)`)
	if err != nil {
		return nil, fmt.Errorf("seed sequence: %w", err)
	}

	return &sequenceCounter{db: db}, nil
}

// Next atomically returns the next sequence number and increments the counter.
func (sc *sequenceCounter) Next(ctx context.Context) (int64, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	var seq int64
	err := sc.db.QueryRowContext(ctx,
		`UPDATE global_sequence SET next_val = next_val + 1 WHERE id = 1 RETURNING next_val - 1`,
	).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return seq, nil
}

// eventRepo implements EventRepo with ent's SQL builder over database/sql.
type eventRepo struct {
	db      *sql.DB
	dialect string
	seq     *sequenceCounter
}

func (r *eventRepo) builder() *entsql.DialectBuilder {
	return entsql.Dialect(r.dialect)
}

func (r *eventRepo) QueryEvents(ctx context.Context, opts QueryOpts) ([]EventRecord, error) {
	paints, err := r.queryPaints(ctx, opts)
	if err != nil {
		return nil, err
	}
	diags, err := r.queryDiagnostics(ctx, opts)
	if err != nil {
		return nil, err
	}

	events := append(paints, diags...)
	sort.Slice(events, func(i, j int) bool {
		return events[i].Sequence > events[j].Sequence
	})
	if opts.Limit > 0 && len(events) > opts.Limit {
		events = events[:opts.Limit]
	}
	return events, nil
}

func (r *eventRepo) GetEvent(ctx context.Context, sequence int64) (*EventRecord, error) {
	opts := QueryOpts{After: sequence - 1, Before: sequence + 1, Limit: 1}
	events, err := r.QueryEvents(ctx, opts)
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, nil
	}
	return &events[0], nil
}

func (r *eventRepo) Prune(ctx context.Context, keep int) (int64, error) {
	if keep < 0 {
		keep = 0
	}

	// The keep-th newest event across both tables is the threshold.
	events, err := r.QueryEvents(ctx, QueryOpts{Limit: keep + 1})
	if err != nil {
		return 0, fmt.Errorf("query events for prune: %w", err)
	}
	if len(events) <= keep {
		return 0, nil // fewer than keep events exist
	}
	threshold := events[keep].Sequence

	var deleted int64
	for _, table := range []string{"paint_events", "diagnostic_events"} {
		query, args := r.builder().Delete(table).
			Where(entsql.LTE("sequence", threshold)).
			Query()
		res, err := r.db.ExecContext(ctx, query, args...)
		if err != nil {
			return deleted, fmt.Errorf("prune %s: %w", table, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return deleted, fmt.Errorf("prune %s: %w", table, err)
		}
		deleted += n
	}
	return deleted, nil
}

// applyOpts adds the shared filters to a selector over table t.
func applyOpts(sel *entsql.Selector, t *entsql.SelectTable, opts QueryOpts) {
	if opts.After > 0 {
		sel.Where(entsql.GT(t.C("sequence"), opts.After))
	}
	if opts.Before > 0 {
		sel.Where(entsql.LT(t.C("sequence"), opts.Before))
	}
	if opts.MapType != "" {
		sel.Where(entsql.EQ(t.C("map_type"), opts.MapType))
	}
	if opts.RunID != "" {
		sel.Where(entsql.EQ(t.C("run_id"), opts.RunID))
	}
	sel.OrderBy(entsql.Desc(t.C("sequence")))
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}
}

func fromNanos(ns int64) time.Time {
	return time.Unix(0, ns).UTC()
}
