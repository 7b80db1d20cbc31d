//go:build js && wasm

// Package jsdom binds the paint engine to the browser DOM through
// syscall/js. Every callback runs on the browser's event loop, so the
// engine keeps its single-goroutine contract.
package jsdom

import (
	"strings"
	"syscall/js"

	"github.com/abhisek/questmap/internal/dom"
	"github.com/abhisek/questmap/internal/page"
)

// Page is the live browser page.
type Page struct {
	doc      js.Value
	markable string
	funcs    []js.Func
}

var _ dom.Page = (*Page)(nil)

// NewPage wraps the global document. markable lists the SVG tags that can
// carry a tier marking.
func NewPage(markable []string) *Page {
	return &Page{
		doc:      js.Global().Get("document"),
		markable: strings.Join(markable, ","),
	}
}

// Payload returns the embedded progress payload.
func (p *Page) Payload() (string, bool) {
	el := p.doc.Call("getElementById", page.PayloadID)
	if !present(el) {
		return "", false
	}
	return attr(el, page.PayloadAttr)
}

// Template returns the page template tag.
func (p *Page) Template() string {
	body := p.doc.Get("body")
	if !present(body) {
		return ""
	}
	v, _ := attr(body, page.TemplateAttr)
	return v
}

func (p *Page) MapContainer(mapType string) (dom.Container, bool) {
	el := p.doc.Call("getElementById", dom.ContainerID(mapType))
	if !present(el) {
		return nil, false
	}
	return &container{element: element{el}, markable: p.markable}, true
}

func (p *Page) Containers() []dom.Container {
	var out []dom.Container
	for _, el := range all(p.doc, "."+page.MapClass) {
		if !strings.HasPrefix(el.Get("id").String(), dom.ContainerIDPrefix) {
			continue
		}
		out = append(out, &container{element: element{el}, markable: p.markable})
	}
	return out
}

func (p *Page) Controls() []dom.Element {
	var out []dom.Element
	for _, el := range all(p.doc, "."+page.SelectorClass+" ["+dom.MapTypeAttr+"]") {
		out = append(out, element{el})
	}
	return out
}

func (p *Page) Backdrop() (dom.Element, bool) {
	body := p.doc.Get("body")
	if !present(body) {
		return nil, false
	}
	return element{body}, true
}

// OnLoad calls fn with the map type every time a map resource fires its
// load event, including loads restored from the browser cache.
func (p *Page) OnLoad(fn func(mapType string)) {
	for _, c := range p.Containers() {
		mapType := dom.ContainerMapType(c)
		obj := c.(*container).object()
		if !present(obj) {
			continue
		}
		p.listen(obj, "load", func(js.Value) { fn(mapType) })
	}
}

// OnSelect calls fn with the map type of every selector control clicked.
func (p *Page) OnSelect(fn func(mapType string)) {
	for _, ctl := range p.Controls() {
		mapType := dom.ControlMapType(ctl)
		p.listen(ctl.(element).v, "click", func(ev js.Value) {
			ev.Call("preventDefault")
			fn(mapType)
		})
	}
}

// Release frees every registered callback.
func (p *Page) Release() {
	for _, f := range p.funcs {
		f.Release()
	}
	p.funcs = nil
}

func (p *Page) listen(target js.Value, event string, fn func(ev js.Value)) {
	f := js.FuncOf(func(this js.Value, args []js.Value) any {
		ev := js.Undefined()
		if len(args) > 0 {
			ev = args[0]
		}
		fn(ev)
		return nil
	})
	p.funcs = append(p.funcs, f)
	target.Call("addEventListener", event, f)
}

type container struct {
	element
	markable string
}

func (c *container) object() js.Value {
	return c.v.Call("querySelector", "object")
}

func (c *container) Resource() (dom.Resource, bool) {
	obj := c.object()
	if !present(obj) {
		return nil, false
	}
	return resource{obj: obj, markable: c.markable}, true
}

type resource struct {
	obj      js.Value
	markable string
}

// Document returns the embedded document once its readyState is complete.
func (r resource) Document() (dom.Document, bool) {
	doc := r.obj.Get("contentDocument")
	if !present(doc) || doc.Get("readyState").String() != "complete" {
		return nil, false
	}
	if !present(doc.Get("documentElement")) {
		return nil, false
	}
	return document{doc: doc, markable: r.markable}, true
}

type document struct {
	doc      js.Value
	markable string
}

func (d document) MarkableElements() []dom.Element {
	var out []dom.Element
	for _, el := range all(d.doc, d.markable) {
		out = append(out, element{el})
	}
	return out
}

func (d document) ElementsWithClass(class string) []dom.Element {
	var out []dom.Element
	for _, el := range all(d.doc, `[class~="`+class+`"]`) {
		out = append(out, element{el})
	}
	return out
}

func (d document) ElementByID(id string) (dom.Element, bool) {
	el := d.doc.Call("getElementById", id)
	if !present(el) {
		return nil, false
	}
	return element{el}, true
}

type element struct {
	v js.Value
}

func (e element) ID() string {
	v, _ := attr(e.v, "id")
	return v
}

func (e element) Attr(name string) (string, bool) { return attr(e.v, name) }
func (e element) SetAttr(name, value string)      { e.v.Call("setAttribute", name, value) }
func (e element) RemoveAttr(name string)          { e.v.Call("removeAttribute", name) }

func attr(v js.Value, name string) (string, bool) {
	if !v.Call("hasAttribute", name).Bool() {
		return "", false
	}
	return v.Call("getAttribute", name).String(), true
}

func present(v js.Value) bool {
	return !v.IsNull() && !v.IsUndefined()
}

func all(root js.Value, selector string) []js.Value {
	if selector == "" {
		return nil
	}
	list := root.Call("querySelectorAll", selector)
	n := list.Get("length").Int()
	out := make([]js.Value, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, list.Index(i))
	}
	return out
}
