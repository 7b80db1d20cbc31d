//go:build js && wasm

package jsdom

import (
	"strings"
	"syscall/js"

	"golang.org/x/net/html"

	"github.com/abhisek/questmap/internal/questform"
)

// GuardForm blocks submission of the quest-run form while a radio question
// is unanswered and alerts the learner. It reports false when the page is
// not a quest-run page or has no such form.
func (p *Page) GuardForm() bool {
	if !questform.Applies(p.Template()) {
		return false
	}
	form := p.doc.Call("getElementById", questform.FormID)
	if !present(form) {
		return false
	}
	p.listen(form, "submit", func(ev js.Value) {
		if err := checkForm(form); err != nil {
			ev.Call("preventDefault")
			js.Global().Call("alert", questform.Message)
		}
	})
	return true
}

// checkForm validates the form's current selections. The form markup is
// reparsed so the browser and the command line share one rule.
func checkForm(form js.Value) error {
	nodes, err := html.ParseFragment(strings.NewReader(form.Get("outerHTML").String()), nil)
	if err != nil || len(nodes) == 0 {
		return nil
	}
	root := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		root.AppendChild(n)
	}

	// Checked state lives in the radio's property, not its markup.
	answers := make(map[string]string)
	for _, in := range all(form, `input[type="radio"]`) {
		if in.Get("checked").Bool() {
			answers[in.Get("name").String()] = in.Get("value").String()
		}
	}
	return questform.Validate(root, answers)
}
