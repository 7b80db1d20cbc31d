package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

func (r *eventRepo) AppendPaint(ctx context.Context, data PaintEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := r.builder().Insert("paint_events").
		Columns("sequence", "timestamp_ns", "run_id", "map_type",
			"reset_count", "marked", "baseline", "skipped", "duration_us").
		Values(seqNum, time.Now().UTC().UnixNano(), data.RunID, data.MapType,
			data.Reset, data.Marked, data.Baseline, data.Skipped, data.DurationUs).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save paint event: %w", err)
	}
	return nil
}

func (r *eventRepo) queryPaints(ctx context.Context, opts QueryOpts) ([]EventRecord, error) {
	t := entsql.Table("paint_events")
	sel := r.builder().Select(
		t.C("sequence"), t.C("timestamp_ns"), t.C("run_id"), t.C("map_type"),
		t.C("reset_count"), t.C("marked"), t.C("baseline"), t.C("skipped"), t.C("duration_us"),
	).From(t)
	applyOpts(sel, t, opts)

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query paint events: %w", err)
	}
	defer rows.Close()

	var events []EventRecord
	for rows.Next() {
		var (
			e  EventRecord
			ns int64
		)
		if err := rows.Scan(&e.Sequence, &ns, &e.RunID, &e.MapType,
			&e.Reset, &e.Marked, &e.Baseline, &e.Skipped, &e.DurationUs); err != nil {
			return nil, fmt.Errorf("scan paint event: %w", err)
		}
		e.Timestamp = fromNanos(ns)
		e.Kind = KindPaint
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventRepo) PaintStatsByMap(ctx context.Context) ([]MapPaintStats, error) {
	t := entsql.Table("paint_events")
	query, args := r.builder().Select(
		t.C("map_type"),
		entsql.Count("*"),
		entsql.Sum(t.C("marked")),
		entsql.Sum(t.C("skipped")),
		entsql.Avg(t.C("duration_us")),
	).From(t).
		GroupBy(t.C("map_type")).
		OrderBy(t.C("map_type")).
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query paint stats: %w", err)
	}
	defer rows.Close()

	var stats []MapPaintStats
	for rows.Next() {
		var (
			s   MapPaintStats
			avg float64
		)
		if err := rows.Scan(&s.MapType, &s.Passes, &s.TotalMarked, &s.TotalSkipped, &avg); err != nil {
			return nil, fmt.Errorf("scan paint stats: %w", err)
		}
		s.AvgDurationUs = int64(avg)
		stats = append(stats, s)
	}
	return stats, rows.Err()
}
