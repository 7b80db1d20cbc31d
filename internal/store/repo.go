package store

import (
	"context"
	"time"
)

// KindPaint is the EventRecord kind of paint passes. Diagnostic records
// carry their diagnostic kind instead.
const KindPaint = "paint"

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int    // max results (0 = unlimited)
	After   int64  // sequence > After
	Before  int64  // sequence < Before
	MapType string // exact map type match ("" = any)
	RunID   string // exact run match ("" = any)
}

// PaintEventData captures one paint pass over a map document.
type PaintEventData struct {
	RunID      string
	MapType    string
	Reset      int
	Marked     int
	Baseline   int
	Skipped    int
	DurationUs int64
}

// DiagnosticEventData captures one recovered condition.
type DiagnosticEventData struct {
	RunID   string
	Kind    string
	MapType string
	Detail  string
}

// EventRecord is a stored event of either type, as read back.
type EventRecord struct {
	Sequence   int64
	Timestamp  time.Time
	RunID      string
	Kind       string
	MapType    string
	Detail     string
	Reset      int
	Marked     int
	Baseline   int
	Skipped    int
	DurationUs int64
}

// MapPaintStats aggregates paint passes for one map type.
type MapPaintStats struct {
	MapType       string
	Passes        int
	TotalMarked   int
	TotalSkipped  int
	AvgDurationUs int64
}

// EventRepo provides append and query access to paint and diagnostic events.
type EventRepo interface {
	// AppendPaint records a paint pass.
	AppendPaint(ctx context.Context, data PaintEventData) error

	// AppendDiagnostic records a recovered condition.
	AppendDiagnostic(ctx context.Context, data DiagnosticEventData) error

	// QueryEvents returns events of both types, newest first.
	QueryEvents(ctx context.Context, opts QueryOpts) ([]EventRecord, error)

	// GetEvent returns the event with the given sequence, or nil if none exists.
	GetEvent(ctx context.Context, sequence int64) (*EventRecord, error)

	// PaintStatsByMap aggregates paint passes per map type.
	PaintStatsByMap(ctx context.Context) ([]MapPaintStats, error)

	// DiagnosticCounts returns the number of diagnostics per kind.
	DiagnosticCounts(ctx context.Context) (map[string]int, error)

	// Prune deletes all but the keep most recent events and returns how
	// many were deleted.
	Prune(ctx context.Context, keep int) (int64, error)
}
