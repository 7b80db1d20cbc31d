// Package recorder writes paint reports to the event log. It is kept apart
// from report so hosts without sqlite can still use the engine.
package recorder

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/questmap/internal/report"
	"github.com/abhisek/questmap/internal/store"
)

const recordTimeout = 2 * time.Second

var _ report.Reporter = (*Recorder)(nil)

// Recorder writes every report to the event log. A failed write only
// produces a warning; painting never waits on or fails because of storage.
type Recorder struct {
	repo  store.EventRepo
	runID string
}

// New creates a Recorder that tags its events with a fresh run id.
func New(repo store.EventRepo) *Recorder {
	return &Recorder{repo: repo, runID: uuid.NewString()}
}

// RunID returns the id shared by every event this recorder writes.
func (r *Recorder) RunID() string {
	return r.runID
}

func (r *Recorder) Diagnose(d report.Diagnostic) {
	ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
	defer cancel()

	detail := d.Detail
	if d.Err != nil {
		if detail != "" {
			detail += ": "
		}
		detail += d.Err.Error()
	}

	err := r.repo.AppendDiagnostic(ctx, store.DiagnosticEventData{
		RunID:   r.runID,
		Kind:    string(d.Kind),
		MapType: d.MapType,
		Detail:  detail,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to record diagnostic: %v\n", err)
	}
}

func (r *Recorder) Painted(p report.PaintPass) {
	ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
	defer cancel()

	err := r.repo.AppendPaint(ctx, store.PaintEventData{
		RunID:      r.runID,
		MapType:    p.MapType,
		Reset:      p.Reset,
		Marked:     p.Marked,
		Baseline:   p.Baseline,
		Skipped:    p.Skipped,
		DurationUs: p.Duration.Microseconds(),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to record paint pass: %v\n", err)
	}
}
