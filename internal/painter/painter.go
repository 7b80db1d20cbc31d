// Package painter reconciles a map document with the progress snapshot:
// every pass first returns all markable elements to baseline and then
// applies one tier treatment per progress entry, so repeated passes over
// the same document always converge on the same state.
package painter

import (
	"time"

	"github.com/abhisek/questmap/internal/dom"
	"github.com/abhisek/questmap/internal/gate"
	"github.com/abhisek/questmap/internal/progress"
	"github.com/abhisek/questmap/internal/report"
	"github.com/abhisek/questmap/internal/tier"
)

// Result summarizes one paint pass.
type Result struct {
	MapType  progress.MapType
	Reset    int
	Marked   int
	Baseline int
	Skipped  int
}

// Painter paints progress onto map documents delivered by a gate.
type Painter struct {
	snapshot progress.Snapshot
	palette  tier.Palette
	gate     *gate.Gate
	reporter report.Reporter

	resetClasses []string
	resetProps   []string
	now          func() time.Time
}

// New creates a Painter. A nil reporter discards reports. g may be nil when
// documents are only painted through PaintDocument.
func New(snapshot progress.Snapshot, palette tier.Palette, g *gate.Gate, r report.Reporter) *Painter {
	if r == nil {
		r = report.Discard
	}
	return &Painter{
		snapshot:     snapshot,
		palette:      palette,
		gate:         g,
		reporter:     r,
		resetClasses: append([]string{tier.MarkerClass}, palette.Classes()...),
		resetProps:   palette.StyleProperties(),
		now:          time.Now,
	}
}

// Paint paints mapType's document now if it is complete, and again every
// time it finishes loading. Maps without a container or resource are left
// alone.
func (p *Painter) Paint(mapType progress.MapType) {
	if p.gate == nil {
		return
	}
	p.gate.OnReady(string(mapType), func(doc dom.Document) {
		p.PaintDocument(mapType, doc)
	})
}

// PaintDocument runs one reset-and-apply pass over doc.
func (p *Painter) PaintDocument(mapType progress.MapType, doc dom.Document) Result {
	start := p.now()
	res := Result{MapType: mapType}

	for _, el := range doc.MarkableElements() {
		p.reset(el)
		res.Reset++
	}
	// Entries may target non-markable elements (a <g> region); clear
	// whatever marking is left on those.
	for _, c := range p.resetClasses {
		for _, el := range doc.ElementsWithClass(c) {
			p.reset(el)
			res.Reset++
		}
	}

	for _, e := range p.snapshot.ForMap(mapType) {
		el, ok := doc.ElementByID(e.QuestID)
		if !ok {
			res.Skipped++
			continue
		}
		// a duplicate entry overrides whatever an earlier one applied
		p.reset(el)

		t := tier.Classify(e.Attempts)
		if t == tier.Baseline {
			res.Baseline++
			continue
		}
		p.apply(el, p.palette.Treatment(t))
		res.Marked++
	}

	p.reporter.Painted(report.PaintPass{
		MapType:  string(mapType),
		Reset:    res.Reset,
		Marked:   res.Marked,
		Baseline: res.Baseline,
		Skipped:  res.Skipped,
		Duration: p.now().Sub(start),
	})
	return res
}

func (p *Painter) reset(el dom.Element) {
	dom.RemoveClass(el, p.resetClasses...)
	dom.RemoveStyle(el, p.resetProps...)
}

func (p *Painter) apply(el dom.Element, t tier.Treatment) {
	dom.AddClass(el, t.Class, tier.MarkerClass)
	if t.Fill != "" {
		dom.SetStyle(el, "fill", t.Fill)
	}
	if t.Stroke != "" {
		dom.SetStyle(el, "stroke", t.Stroke)
	}
}
