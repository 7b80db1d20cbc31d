package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

func (r *eventRepo) AppendDiagnostic(ctx context.Context, data DiagnosticEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := r.builder().Insert("diagnostic_events").
		Columns("sequence", "timestamp_ns", "run_id", "kind", "map_type", "detail").
		Values(seqNum, time.Now().UTC().UnixNano(), data.RunID, data.Kind, data.MapType, data.Detail).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save diagnostic event: %w", err)
	}
	return nil
}

func (r *eventRepo) queryDiagnostics(ctx context.Context, opts QueryOpts) ([]EventRecord, error) {
	t := entsql.Table("diagnostic_events")
	sel := r.builder().Select(
		t.C("sequence"), t.C("timestamp_ns"), t.C("run_id"), t.C("kind"), t.C("map_type"), t.C("detail"),
	).From(t)
	applyOpts(sel, t, opts)

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query diagnostic events: %w", err)
	}
	defer rows.Close()

	var events []EventRecord
	for rows.Next() {
		var (
			e  EventRecord
			ns int64
		)
		if err := rows.Scan(&e.Sequence, &ns, &e.RunID, &e.Kind, &e.MapType, &e.Detail); err != nil {
			return nil, fmt.Errorf("scan diagnostic event: %w", err)
		}
		e.Timestamp = fromNanos(ns)
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventRepo) DiagnosticCounts(ctx context.Context) (map[string]int, error) {
	t := entsql.Table("diagnostic_events")
	query, args := r.builder().Select(t.C("kind"), entsql.Count("*")).
		From(t).
		GroupBy(t.C("kind")).
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query diagnostic counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var (
			kind string
			n    int
		)
		if err := rows.Scan(&kind, &n); err != nil {
			return nil, fmt.Errorf("scan diagnostic count: %w", err)
		}
		counts[kind] = n
	}
	return counts, rows.Err()
}
