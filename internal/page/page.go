// Package page parses the server-rendered dashboard page and exposes it as a
// dom.Page. Map resources are attached by the host once their documents
// have loaded.
package page

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/abhisek/questmap/internal/dom"
)

// Page markers written by the dashboard template.
const (
	PayloadID     = "conquered-data"
	PayloadAttr   = "data-conquered"
	TemplateAttr  = "data-page"
	MapClass      = "map"
	SelectorClass = "map-selector"
)

// Page is a parsed host page.
type Page struct {
	root       *html.Node
	body       *html.Node
	payload    *html.Node
	containers []*container
	controls   []*html.Node
}

var _ dom.Page = (*Page)(nil)

// Parse reads an HTML page.
func Parse(r io.Reader) (*Page, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}
	p := &Page{root: root}
	p.scan(root, false)
	return p, nil
}

func (p *Page) scan(n *html.Node, inSelector bool) {
	if n.Type == html.ElementNode {
		id := attr(n, "id")
		switch {
		case n.DataAtom == atom.Body && p.body == nil:
			p.body = n
		case id == PayloadID && p.payload == nil:
			p.payload = n
		case strings.HasPrefix(id, dom.ContainerIDPrefix) && hasClass(n, MapClass):
			p.containers = append(p.containers, &container{node: n, resource: findObject(n)})
		case inSelector && n.DataAtom == atom.Button && hasAttr(n, dom.MapTypeAttr):
			p.controls = append(p.controls, n)
		}
		if hasClass(n, SelectorClass) {
			inSelector = true
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		p.scan(c, inSelector)
	}
}

func findObject(n *html.Node) *resource {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		if c.DataAtom == atom.Object {
			return &resource{node: c}
		}
		if r := findObject(c); r != nil {
			return r
		}
	}
	return nil
}

// Payload returns the raw progress payload and whether the payload element
// exists.
func (p *Page) Payload() (string, bool) {
	if p.payload == nil {
		return "", false
	}
	for _, a := range p.payload.Attr {
		if a.Key == PayloadAttr {
			return a.Val, true
		}
	}
	return "", false
}

// Template returns the page template tag carried by <body data-page>.
func (p *Page) Template() string {
	if p.body == nil {
		return ""
	}
	return attr(p.body, TemplateAttr)
}

// ResourceRef identifies a map resource declared by the page.
type ResourceRef struct {
	MapType string
	Source  string
}

// Resources lists every map container holding an <object> with a source.
func (p *Page) Resources() []ResourceRef {
	var out []ResourceRef
	for _, c := range p.containers {
		if c.resource == nil {
			continue
		}
		src := attr(c.resource.node, "data")
		if src == "" {
			continue
		}
		out = append(out, ResourceRef{MapType: dom.ContainerMapType(c), Source: src})
	}
	return out
}

// SetSource rewrites the source of mapType's resource.
func (p *Page) SetSource(mapType, src string) bool {
	c := p.container(mapType)
	if c == nil || c.resource == nil {
		return false
	}
	setAttr(c.resource.node, "data", src)
	return true
}

// Attach marks mapType's resource as loaded with doc. It reports false when
// the page has no resource for mapType.
func (p *Page) Attach(mapType string, doc dom.Document) bool {
	c := p.container(mapType)
	if c == nil || c.resource == nil {
		return false
	}
	c.resource.doc = doc
	return true
}

// Detach returns mapType's resource to the loading state.
func (p *Page) Detach(mapType string) {
	if c := p.container(mapType); c != nil && c.resource != nil {
		c.resource.doc = nil
	}
}

// Form returns the <form> element with the given id.
func (p *Page) Form(id string) (*html.Node, bool) {
	var found *html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if found != nil {
			return
		}
		if n.Type == html.ElementNode && n.DataAtom == atom.Form && attr(n, "id") == id {
			found = n
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(p.root)
	return found, found != nil
}

// Render writes the page, including every class and style change made
// through the dom interface.
func (p *Page) Render(w io.Writer) error {
	return html.Render(w, p.root)
}

func (p *Page) container(mapType string) *container {
	id := dom.ContainerID(mapType)
	for _, c := range p.containers {
		if attr(c.node, "id") == id {
			return c
		}
	}
	return nil
}

func (p *Page) MapContainer(mapType string) (dom.Container, bool) {
	if c := p.container(mapType); c != nil {
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
	for i, n := range p.controls {
		out[i] = element{n}
	}
	return out
}

func (p *Page) Backdrop() (dom.Element, bool) {
	if p.body == nil {
		return nil, false
	}
	return element{p.body}, true
}

type container struct {
	node     *html.Node
	resource *resource
}

func (c *container) ID() string                      { return element{c.node}.ID() }
func (c *container) Attr(name string) (string, bool) { return element{c.node}.Attr(name) }
func (c *container) SetAttr(name, value string)      { setAttr(c.node, name, value) }
func (c *container) RemoveAttr(name string)          { removeAttr(c.node, name) }

func (c *container) Resource() (dom.Resource, bool) {
	if c.resource == nil {
		return nil, false
	}
	return c.resource, true
}

type resource struct {
	node *html.Node
	doc  dom.Document
}

func (r *resource) Document() (dom.Document, bool) {
	if r.doc == nil {
		return nil, false
	}
	return r.doc, true
}

type element struct {
	n *html.Node
}

func (e element) ID() string { return attr(e.n, "id") }

func (e element) Attr(name string) (string, bool) {
	for _, a := range e.n.Attr {
		if a.Namespace == "" && a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

func (e element) SetAttr(name, value string) { setAttr(e.n, name, value) }
func (e element) RemoveAttr(name string)     { removeAttr(e.n, name) }

func attr(n *html.Node, key string) string {
	v, _ := element{n}.Attr(key)
	return v
}

func hasAttr(n *html.Node, key string) bool {
	_, ok := element{n}.Attr(key)
	return ok
}

func hasClass(n *html.Node, class string) bool {
	return dom.HasClass(element{n}, class)
}

func setAttr(n *html.Node, key, val string) {
	for i := range n.Attr {
		if n.Attr[i].Namespace == "" && n.Attr[i].Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

func removeAttr(n *html.Node, key string) {
	kept := n.Attr[:0]
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			continue
		}
		kept = append(kept, a)
	}
	n.Attr = kept
}
