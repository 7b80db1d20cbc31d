package report

import (
	"fmt"
	"io"
	"time"
)

// Kind classifies a recoverable condition observed while painting.
type Kind string

const (
	KindMalformedInput Kind = "malformed_input"
	KindMissingElement Kind = "missing_element"
	KindUnknownMapType Kind = "unknown_map_type"
	KindLoadFailed     Kind = "load_failed"
)

// Diagnostic describes a condition that was recovered locally. Diagnostics
// never interrupt the caller; they are only reported.
type Diagnostic struct {
	Kind    Kind
	MapType string
	Detail  string
	Err     error
}

func (d Diagnostic) String() string {
	msg := string(d.Kind)
	if d.MapType != "" {
		msg += " [" + d.MapType + "]"
	}
	if d.Detail != "" {
		msg += ": " + d.Detail
	}
	if d.Err != nil {
		msg += ": " + d.Err.Error()
	}
	return msg
}

// PaintPass summarizes one reconciliation of a map document.
type PaintPass struct {
	MapType  string
	Reset    int // markable elements returned to baseline
	Marked   int // elements that received a tier treatment
	Baseline int // entries found on the map that classified as baseline
	Skipped  int // entries whose quest has no element in the document
	Duration time.Duration
}

// Reporter is the observability sink for the paint engine.
type Reporter interface {
	Diagnose(d Diagnostic)
	Painted(p PaintPass)
}

// Discard drops everything.
var Discard Reporter = discard{}

type discard struct{}

func (discard) Diagnose(Diagnostic) {}
func (discard) Painted(PaintPass)   {}

// Writer prints diagnostics as warning lines. Paint passes are printed only
// when Verbose is set.
type Writer struct {
	W       io.Writer
	Verbose bool
}

func (w *Writer) Diagnose(d Diagnostic) {
	fmt.Fprintf(w.W, "warning: %s\n", d)
}

func (w *Writer) Painted(p PaintPass) {
	if !w.Verbose {
		return
	}
	fmt.Fprintf(w.W, "painted %s: %d marked, %d baseline, %d skipped (%d reset) in %s\n",
		p.MapType, p.Marked, p.Baseline, p.Skipped, p.Reset, p.Duration)
}

// Multi fans every report out to all reporters in order.
func Multi(reporters ...Reporter) Reporter {
	return multi(reporters)
}

type multi []Reporter

func (m multi) Diagnose(d Diagnostic) {
	for _, r := range m {
		r.Diagnose(d)
	}
}

func (m multi) Painted(p PaintPass) {
	for _, r := range m {
		r.Painted(p)
	}
}

// Collector keeps reports in memory, newest last.
type Collector struct {
	Diagnostics []Diagnostic
	Passes      []PaintPass
}

func (c *Collector) Diagnose(d Diagnostic) { c.Diagnostics = append(c.Diagnostics, d) }
func (c *Collector) Painted(p PaintPass)   { c.Passes = append(c.Passes, p) }

// LastPass returns the most recent pass for mapType.
func (c *Collector) LastPass(mapType string) (PaintPass, bool) {
	for i := len(c.Passes) - 1; i >= 0; i-- {
		if c.Passes[i].MapType == mapType {
			return c.Passes[i], true
		}
	}
	return PaintPass{}, false
}

// Count returns how many diagnostics of kind were collected.
func (c *Collector) Count(kind Kind) int {
	n := 0
	for _, d := range c.Diagnostics {
		if d.Kind == kind {
			n++
		}
	}
	return n
}
