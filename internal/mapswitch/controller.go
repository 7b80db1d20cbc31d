// Package mapswitch owns the active map and mediates every map switch:
// container visibility, selector state, the ambient background and the
// repaint of the newly active map.
package mapswitch

import (
	"github.com/abhisek/questmap/internal/dom"
	"github.com/abhisek/questmap/internal/progress"
	"github.com/abhisek/questmap/internal/report"
)

// Selector control classes.
const (
	ControlActiveClass   = "active"
	ControlPrimaryClass  = "btn-primary"
	ControlInactiveClass = "btn-secondary"
)

// Painter repaints a map from the progress snapshot.
type Painter interface {
	Paint(mapType progress.MapType)
}

// ViewState is the transient view state. Exactly one map is active.
type ViewState struct {
	Active progress.MapType
}

// Controller switches the active map. It is not safe for concurrent use.
type Controller struct {
	page        dom.Page
	painter     Painter
	backgrounds Backgrounds
	reporter    report.Reporter
	state       ViewState
}

// New creates a Controller. A nil reporter discards diagnostics.
func New(page dom.Page, p Painter, backgrounds Backgrounds, r report.Reporter) *Controller {
	if r == nil {
		r = report.Discard
	}
	return &Controller{page: page, painter: p, backgrounds: backgrounds, reporter: r}
}

// Start activates the initial map, then registers the painter for every
// other map on the page so their reloads are repainted too.
func (c *Controller) Start(initial progress.MapType) {
	c.SwitchTo(initial)
	for _, ct := range c.page.Containers() {
		m := progress.MapType(dom.ContainerMapType(ct))
		if m == "" || m == initial {
			continue
		}
		if _, ok := ct.Resource(); !ok {
			c.reporter.Diagnose(report.Diagnostic{
				Kind:    report.KindMissingElement,
				MapType: string(m),
				Detail:  "map container has no embedded document",
			})
			continue
		}
		c.painter.Paint(m)
	}
}

// SwitchTo makes mapType the active map and repaints it. Parts that cannot
// be resolved are skipped; the rest still apply.
func (c *Controller) SwitchTo(mapType progress.MapType) {
	c.state.Active = mapType

	found := false
	for _, ct := range c.page.Containers() {
		if progress.MapType(dom.ContainerMapType(ct)) == mapType {
			dom.AddClass(ct, dom.ActiveClass)
			found = true
			continue
		}
		dom.RemoveClass(ct, dom.ActiveClass)
	}
	if !found {
		c.reporter.Diagnose(report.Diagnostic{
			Kind:    report.KindUnknownMapType,
			MapType: string(mapType),
			Detail:  "no map container",
		})
	}

	for _, ctl := range c.page.Controls() {
		if progress.MapType(dom.ControlMapType(ctl)) == mapType {
			dom.RemoveClass(ctl, ControlInactiveClass)
			dom.AddClass(ctl, ControlActiveClass, ControlPrimaryClass)
			continue
		}
		dom.RemoveClass(ctl, ControlActiveClass, ControlPrimaryClass)
		dom.AddClass(ctl, ControlInactiveClass)
	}

	c.applyBackground(mapType)
	c.painter.Paint(mapType)
}

func (c *Controller) applyBackground(mapType progress.MapType) {
	bg, ok := c.page.Backdrop()
	if !ok {
		return
	}
	p, _ := c.backgrounds.Lookup(mapType)
	dom.SetStyle(bg, "background-image", p.Image)
	dom.SetStyle(bg, "background-color", p.Color)
}

// State returns a copy of the view state.
func (c *Controller) State() ViewState {
	return c.state
}

// Active returns the active map type.
func (c *Controller) Active() progress.MapType {
	return c.state.Active
}
