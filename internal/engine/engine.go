// Package engine assembles the paint engine for a host page: progress
// snapshot, gate, painter and map switch controller. Every host (the render
// command, the terminal viewer and the browser binding) drives the same
// Engine from a single goroutine.
package engine

import (
	"github.com/abhisek/questmap/internal/config"
	"github.com/abhisek/questmap/internal/dom"
	"github.com/abhisek/questmap/internal/gate"
	"github.com/abhisek/questmap/internal/loader"
	"github.com/abhisek/questmap/internal/mapswitch"
	"github.com/abhisek/questmap/internal/painter"
	"github.com/abhisek/questmap/internal/progress"
	"github.com/abhisek/questmap/internal/report"
)

// Host is a page whose map resources are delivered by a loader.
type Host interface {
	dom.Page
	Attach(mapType string, doc dom.Document) bool
}

// Engine is the wired paint engine for one page.
type Engine struct {
	Page       dom.Page
	Snapshot   progress.Snapshot
	Gate       *gate.Gate
	Painter    *painter.Painter
	Controller *mapswitch.Controller

	reporter report.Reporter
}

// New wires an engine over page. payload and present describe the embedded
// progress payload; a missing or malformed payload paints nothing.
func New(page dom.Page, payload string, present bool, cfg config.Config, r report.Reporter) *Engine {
	if r == nil {
		r = report.Discard
	}
	snap := progress.Load(payload, present, r)
	g := gate.New(page)
	p := painter.New(snap, cfg.Palette, g, r)
	return &Engine{
		Page:       page,
		Snapshot:   snap,
		Gate:       g,
		Painter:    p,
		Controller: mapswitch.New(page, p, cfg.Backgrounds, r),
		reporter:   r,
	}
}

// Start activates the initial map and registers every map for repaints.
func (e *Engine) Start(initial progress.MapType) {
	e.Controller.Start(initial)
}

// SwitchTo activates mapType.
func (e *Engine) SwitchTo(mapType progress.MapType) {
	e.Controller.SwitchTo(mapType)
}

// Deliver attaches a loaded document to host and signals the gate. Failed
// loads are reported and leave the map unpainted.
func (e *Engine) Deliver(host Host, ev loader.Event) {
	if ev.Err != nil {
		e.reporter.Diagnose(report.Diagnostic{
			Kind:    report.KindLoadFailed,
			MapType: ev.MapType,
			Err:     ev.Err,
		})
		return
	}
	if !host.Attach(ev.MapType, ev.Doc) {
		e.reporter.Diagnose(report.Diagnostic{
			Kind:    report.KindMissingElement,
			MapType: ev.MapType,
			Detail:  "loaded document has no container on the page",
		})
		return
	}
	e.Gate.Loaded(ev.MapType)
}

// MapTypes returns the map types of every container on the page, in page
// order.
func (e *Engine) MapTypes() []progress.MapType {
	var out []progress.MapType
	for _, c := range e.Page.Containers() {
		if m := dom.ContainerMapType(c); m != "" {
			out = append(out, progress.MapType(m))
		}
	}
	return out
}
