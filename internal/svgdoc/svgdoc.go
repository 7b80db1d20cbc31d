// Package svgdoc loads SVG map documents into a dom.Document backed by an
// etree XML tree.
package svgdoc

import (
	"fmt"
	"io"

	"github.com/beevik/etree"

	"github.com/abhisek/questmap/internal/dom"
)

// DefaultMarkable lists the SVG tags that can carry a tier marking.
var DefaultMarkable = []string{"path", "rect", "circle", "polygon", "ellipse"}

// Option configures Parse.
type Option func(*Document)

// WithMarkable replaces the set of markable tag names. An empty list keeps
// the default.
func WithMarkable(tags ...string) Option {
	return func(d *Document) {
		if len(tags) == 0 {
			return
		}
		d.markable = make(map[string]bool, len(tags))
		for _, t := range tags {
			d.markable[t] = true
		}
	}
}

// Document is a parsed SVG document.
type Document struct {
	tree     *etree.Document
	markable map[string]bool
	byID     map[string]*etree.Element
	elements []*etree.Element
}

var _ dom.Document = (*Document)(nil)

// Parse reads an SVG document.
func Parse(b []byte, opts ...Option) (*Document, error) {
	tree := etree.NewDocument()
	if err := tree.ReadFromBytes(b); err != nil {
		return nil, fmt.Errorf("parse svg: %w", err)
	}
	root := tree.Root()
	if root == nil {
		return nil, fmt.Errorf("parse svg: no root element")
	}
	if root.Tag != "svg" {
		return nil, fmt.Errorf("parse svg: root element is <%s>, want <svg>", root.Tag)
	}

	d := &Document{tree: tree, byID: make(map[string]*etree.Element)}
	WithMarkable(DefaultMarkable...)(d)
	for _, opt := range opts {
		opt(d)
	}
	d.index(root)
	return d, nil
}

func (d *Document) index(el *etree.Element) {
	if id := el.SelectAttrValue("id", ""); id != "" {
		if _, dup := d.byID[id]; !dup {
			d.byID[id] = el
		}
	}
	if d.markable[el.Tag] {
		d.elements = append(d.elements, el)
	}
	for _, child := range el.ChildElements() {
		d.index(child)
	}
}

// MarkableElements returns the markable elements in document order.
func (d *Document) MarkableElements() []dom.Element {
	out := make([]dom.Element, len(d.elements))
	for i, el := range d.elements {
		out[i] = element{el}
	}
	return out
}

// ElementByID returns the first element carrying id.
func (d *Document) ElementByID(id string) (dom.Element, bool) {
	el, ok := d.byID[id]
	if !ok {
		return nil, false
	}
	return element{el}, true
}

// ElementsWithClass returns every element carrying class, in document order.
func (d *Document) ElementsWithClass(class string) []dom.Element {
	var out []dom.Element
	var walk func(*etree.Element)
	walk = func(e *etree.Element) {
		if dom.HasClass(element{e}, class) {
			out = append(out, element{e})
		}
		for _, child := range e.ChildElements() {
			walk(child)
		}
	}
	walk(d.tree.Root())
	return out
}

// Len returns the number of markable elements.
func (d *Document) Len() int {
	return len(d.elements)
}

// WriteTo serializes the document.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	return d.tree.WriteTo(w)
}

// Bytes serializes the document.
func (d *Document) Bytes() ([]byte, error) {
	return d.tree.WriteToBytes()
}

type element struct {
	e *etree.Element
}

func (el element) ID() string {
	return el.e.SelectAttrValue("id", "")
}

func (el element) Attr(name string) (string, bool) {
	a := el.e.SelectAttr(name)
	if a == nil {
		return "", false
	}
	return a.Value, true
}

func (el element) SetAttr(name, value string) {
	el.e.CreateAttr(name, value)
}

func (el element) RemoveAttr(name string) {
	el.e.RemoveAttr(name)
}
