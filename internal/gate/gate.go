// Package gate resolves when a map's vector document is ready to be
// painted. A document that is already complete is delivered at once;
// otherwise delivery waits for the resource's load event, and every later
// load (including a cache-restored one) delivers the new document again.
package gate

import "github.com/abhisek/questmap/internal/dom"

// Gate tracks one ready listener per map. It is not safe for concurrent
// use; all calls must come from the goroutine that owns the page.
type Gate struct {
	page      dom.Page
	listeners map[string]func(dom.Document)
}

// New creates a Gate over page.
func New(page dom.Page) *Gate {
	return &Gate{
		page:      page,
		listeners: make(map[string]func(dom.Document)),
	}
}

// OnReady makes fn mapType's load listener and, if the map's document is
// already complete, runs fn with it immediately. A later registration for
// the same map replaces fn. Maps without a container or resource are
// ignored.
func (g *Gate) OnReady(mapType string, fn func(dom.Document)) {
	res, ok := g.resource(mapType)
	if !ok {
		return
	}
	g.listeners[mapType] = fn
	if doc, ok := res.Document(); ok {
		fn(doc)
	}
}

// Loaded signals that mapType's resource finished loading and runs its
// listener with the loaded document.
func (g *Gate) Loaded(mapType string) {
	fn, ok := g.listeners[mapType]
	if !ok {
		return
	}
	if doc, ok := g.Document(mapType); ok {
		fn(doc)
	}
}

// Document returns mapType's document if it has completed loading.
func (g *Gate) Document(mapType string) (dom.Document, bool) {
	res, ok := g.resource(mapType)
	if !ok {
		return nil, false
	}
	return res.Document()
}

// Listening reports whether mapType has a registered listener.
func (g *Gate) Listening(mapType string) bool {
	_, ok := g.listeners[mapType]
	return ok
}

func (g *Gate) resource(mapType string) (dom.Resource, bool) {
	c, ok := g.page.MapContainer(mapType)
	if !ok {
		return nil, false
	}
	return c.Resource()
}
