// Package domtest provides an in-memory dom.Page for exercising the paint
// engine without a rendering environment.
package domtest

import (
	"sort"
	"strconv"

	"github.com/abhisek/questmap/internal/dom"
)

// Element is an in-memory dom.Element.
type Element struct {
	Tag   string
	attrs map[string]string
}

var _ dom.Element = (*Element)(nil)

// NewElement creates an element with the given tag and id.
func NewElement(tag, id string) *Element {
	e := &Element{Tag: tag, attrs: make(map[string]string)}
	if id != "" {
		e.attrs["id"] = id
	}
	return e
}

func (e *Element) ID() string { return e.attrs["id"] }

func (e *Element) Attr(name string) (string, bool) {
	v, ok := e.attrs[name]
	return v, ok
}

func (e *Element) SetAttr(name, value string) { e.attrs[name] = value }
func (e *Element) RemoveAttr(name string)     { delete(e.attrs, name) }

// Attrs returns a copy of the element's attributes.
func (e *Element) Attrs() map[string]string {
	cp := make(map[string]string, len(e.attrs))
	for k, v := range e.attrs {
		cp[k] = v
	}
	return cp
}

// Document is an in-memory dom.Document. Every element is markable.
type Document struct {
	elements []*Element
}

var _ dom.Document = (*Document)(nil)

// NewDocument creates a document with one <path> per id.
func NewDocument(ids ...string) *Document {
	d := &Document{}
	for _, id := range ids {
		d.Add(NewElement("path", id))
	}
	return d
}

// Add appends an element to the document.
func (d *Document) Add(e *Element) *Element {
	d.elements = append(d.elements, e)
	return e
}

func (d *Document) MarkableElements() []dom.Element {
	out := make([]dom.Element, len(d.elements))
	for i, e := range d.elements {
		out[i] = e
	}
	return out
}

func (d *Document) ElementByID(id string) (dom.Element, bool) {
	for _, e := range d.elements {
		if e.ID() == id {
			return e, true
		}
	}
	return nil, false
}

func (d *Document) ElementsWithClass(class string) []dom.Element {
	var out []dom.Element
	for _, e := range d.elements {
		if dom.HasClass(e, class) {
			out = append(out, e)
		}
	}
	return out
}

// Element returns the concrete element with id, or nil.
func (d *Document) Element(id string) *Element {
	for _, e := range d.elements {
		if e.ID() == id {
			return e
		}
	}
	return nil
}

// Snapshot returns the attributes of every element keyed by id, for
// comparing document states.
func (d *Document) Snapshot() map[string]map[string]string {
	out := make(map[string]map[string]string, len(d.elements))
	for i, e := range d.elements {
		key := e.ID()
		if key == "" {
			key = "#" + strconv.Itoa(i)
		}
		out[key] = e.Attrs()
	}
	return out
}

// Resource is an embedded resource whose document can be swapped to
// simulate loads and cache restores.
type Resource struct {
	doc      *Document
	complete bool
}

var _ dom.Resource = (*Resource)(nil)

func (r *Resource) Document() (dom.Document, bool) {
	if !r.complete || r.doc == nil {
		return nil, false
	}
	return r.doc, true
}

// Complete marks the resource loaded with doc.
func (r *Resource) Complete(doc *Document) {
	r.doc = doc
	r.complete = true
}

// Unload returns the resource to the loading state.
func (r *Resource) Unload() {
	r.doc = nil
	r.complete = false
}

// Container is an in-memory map container.
type Container struct {
	*Element
	resource *Resource
}

var _ dom.Container = (*Container)(nil)

func (c *Container) Resource() (dom.Resource, bool) {
	if c.resource == nil {
		return nil, false
	}
	return c.resource, true
}

// Res returns the concrete resource, or nil for a container without one.
func (c *Container) Res() *Resource {
	return c.resource
}

// Page is an in-memory dom.Page.
type Page struct {
	containers []*Container
	controls   []*Element
	body       *Element
}

var _ dom.Page = (*Page)(nil)

// NewPage creates an empty page with a body backdrop.
func NewPage() *Page {
	return &Page{body: NewElement("body", "")}
}

// AddMap adds a container with a resource for mapType. A nil doc leaves the
// resource loading.
func (p *Page) AddMap(mapType string, doc *Document) *Container {
	c := &Container{
		Element:  NewElement("div", dom.ContainerID(mapType)),
		resource: &Resource{},
	}
	c.SetAttr("class", "map")
	if doc != nil {
		c.resource.Complete(doc)
	}
	p.containers = append(p.containers, c)
	return c
}

// AddEmptyMap adds a container that holds no resource.
func (p *Page) AddEmptyMap(mapType string) *Container {
	c := &Container{Element: NewElement("div", dom.ContainerID(mapType))}
	c.SetAttr("class", "map")
	p.containers = append(p.containers, c)
	return c
}

// AddControl adds a selector button for mapType.
func (p *Page) AddControl(mapType string) *Element {
	b := NewElement("button", "")
	b.SetAttr(dom.MapTypeAttr, mapType)
	b.SetAttr("class", "btn btn-secondary")
	p.controls = append(p.controls, b)
	return b
}

// RemoveBackdrop simulates a page without a backdrop element.
func (p *Page) RemoveBackdrop() {
	p.body = nil
}

// Container returns the concrete container for mapType, or nil.
func (p *Page) Container(mapType string) *Container {
	for _, c := range p.containers {
		if c.ID() == dom.ContainerID(mapType) {
			return c
		}
	}
	return nil
}

// Body returns the backdrop element.
func (p *Page) Body() *Element {
	return p.body
}

// ActiveContainers returns the map types of containers carrying the active
// class, sorted.
func (p *Page) ActiveContainers() []string {
	var out []string
	for _, c := range p.containers {
		if dom.HasClass(c, dom.ActiveClass) {
			out = append(out, dom.ContainerMapType(c))
		}
	}
	sort.Strings(out)
	return out
}

func (p *Page) MapContainer(mapType string) (dom.Container, bool) {
	if c := p.Container(mapType); c != nil {
		return c, true
	}
	return nil, false
}

func (p *Page) Containers() []dom.Container {
	out := make([]dom.Container, len(p.containers))
	for i, c := range p.containers {
		out[i] = c
	}
	return out
}

func (p *Page) Controls() []dom.Element {
	out := make([]dom.Element, len(p.controls))
	for i, c := range p.controls {
		out[i] = c
	}
	return out
}

func (p *Page) Backdrop() (dom.Element, bool) {
	if p.body == nil {
		return nil, false
	}
	return p.body, true
}
