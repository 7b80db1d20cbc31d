package recorder

import (
	"context"
	"errors"
	"testing"

	"github.com/abhisek/questmap/internal/report"
	"github.com/abhisek/questmap/internal/store"
)

func TestRecorderWritesEvents(t *testing.T) {
	s, err := store.Open("file:report_recorder?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	rec := New(s.EventRepo())
	rec.Diagnose(report.Diagnostic{Kind: report.KindUnknownMapType, MapType: "atlantis", Err: errors.New("no container")})
	rec.Painted(report.PaintPass{MapType: "europe", Marked: 4, Skipped: 1})

	events, err := s.EventRepo().QueryEvents(context.Background(), store.QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	for _, e := range events {
		if e.RunID != rec.RunID() {
			t.Errorf("event %d run id = %q, want %q", e.Sequence, e.RunID, rec.RunID())
		}
	}
	// Newest first.
	if events[0].Kind != store.KindPaint || events[0].Marked != 4 {
		t.Errorf("unexpected newest event: %+v", events[0])
	}
	if events[1].Kind != string(report.KindUnknownMapType) || events[1].Detail != "no container" {
		t.Errorf("unexpected diagnostic event: %+v", events[1])
	}
}
