package store

import (
	"context"
	"strings"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	s, err := Open("file:" + name + "?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil database handle")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so we skip journal_mode here.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestSequenceIsSharedAcrossTables(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	if err := repo.AppendPaint(ctx, PaintEventData{RunID: "r1", MapType: "europe", Marked: 2}); err != nil {
		t.Fatalf("append paint: %v", err)
	}
	if err := repo.AppendDiagnostic(ctx, DiagnosticEventData{RunID: "r1", Kind: "unknown_map_type", MapType: "atlantis"}); err != nil {
		t.Fatalf("append diagnostic: %v", err)
	}
	if err := repo.AppendPaint(ctx, PaintEventData{RunID: "r1", MapType: "americus", Skipped: 1}); err != nil {
		t.Fatalf("append paint: %v", err)
	}

	events, err := repo.QueryEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}

	wantKinds := []string{KindPaint, "unknown_map_type", KindPaint}
	wantMaps := []string{"americus", "atlantis", "europe"}
	for i, e := range events {
		if e.Kind != wantKinds[i] || e.MapType != wantMaps[i] {
			t.Errorf("event %d = %s/%s, want %s/%s", i, e.Kind, e.MapType, wantKinds[i], wantMaps[i])
		}
		if i > 0 && e.Sequence >= events[i-1].Sequence {
			t.Errorf("events not ordered newest first: %d after %d", e.Sequence, events[i-1].Sequence)
		}
		if e.Timestamp.IsZero() {
			t.Errorf("event %d has zero timestamp", i)
		}
	}
}

func TestQueryFilters(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for _, m := range []string{"europe", "americus", "europe", "zipangu"} {
		if err := repo.AppendPaint(ctx, PaintEventData{RunID: "run-" + m, MapType: m}); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	events, err := repo.QueryEvents(ctx, QueryOpts{MapType: "europe"})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 2 {
		t.Errorf("expected 2 europe events, got %d", len(events))
	}

	events, err = repo.QueryEvents(ctx, QueryOpts{Limit: 1})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 1 || events[0].MapType != "zipangu" {
		t.Errorf("limit 1 returned %+v", events)
	}

	events, err = repo.QueryEvents(ctx, QueryOpts{RunID: "run-americus"})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 1 {
		t.Errorf("expected 1 event for run, got %d", len(events))
	}
}

func TestGetEvent(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	if err := repo.AppendDiagnostic(ctx, DiagnosticEventData{RunID: "r", Kind: "malformed_input", Detail: "not an array"}); err != nil {
		t.Fatalf("append: %v", err)
	}
	events, err := repo.QueryEvents(ctx, QueryOpts{})
	if err != nil || len(events) != 1 {
		t.Fatalf("query: %v (%d events)", err, len(events))
	}

	got, err := repo.GetEvent(ctx, events[0].Sequence)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil || got.Detail != "not an array" {
		t.Fatalf("GetEvent = %+v", got)
	}

	missing, err := repo.GetEvent(ctx, events[0].Sequence+100)
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for missing event, got %+v", missing)
	}
}

func TestPaintStatsByMap(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	data := []PaintEventData{
		{MapType: "europe", Marked: 2, Skipped: 1, DurationUs: 100},
		{MapType: "europe", Marked: 4, Skipped: 0, DurationUs: 300},
		{MapType: "americus", Marked: 1, DurationUs: 50},
	}
	for _, d := range data {
		if err := repo.AppendPaint(ctx, d); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	stats, err := repo.PaintStatsByMap(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(stats))
	}
	// Ordered by map type.
	eu := stats[1]
	if eu.MapType != "europe" || eu.Passes != 2 || eu.TotalMarked != 6 || eu.TotalSkipped != 1 || eu.AvgDurationUs != 200 {
		t.Errorf("europe stats = %+v", eu)
	}
}

func TestDiagnosticCounts(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for _, k := range []string{"missing_element", "missing_element", "malformed_input"} {
		if err := repo.AppendDiagnostic(ctx, DiagnosticEventData{Kind: k}); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	counts, err := repo.DiagnosticCounts(ctx)
	if err != nil {
		t.Fatalf("counts: %v", err)
	}
	if counts["missing_element"] != 2 || counts["malformed_input"] != 1 {
		t.Errorf("counts = %v", counts)
	}
}

func TestPrune(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := repo.AppendPaint(ctx, PaintEventData{MapType: "europe"}); err != nil {
			t.Fatalf("append: %v", err)
		}
		if err := repo.AppendDiagnostic(ctx, DiagnosticEventData{Kind: "missing_element"}); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	deleted, err := repo.Prune(ctx, 2)
	if err != nil {
		t.Fatalf("prune: %v", err)
	}
	if deleted != 4 {
		t.Errorf("deleted = %d, want 4", deleted)
	}

	events, err := repo.QueryEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events after prune, got %d", len(events))
	}

	// Pruning with fewer events than keep is a no-op.
	deleted, err = repo.Prune(ctx, 10)
	if err != nil {
		t.Fatalf("prune: %v", err)
	}
	if deleted != 0 {
		t.Errorf("deleted = %d, want 0", deleted)
	}
}
