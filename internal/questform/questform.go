// Package questform checks that a quest-run form has an answer for every
// radio question before it is submitted.
package questform

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// FormID is the id of the quest-run form.
const FormID = "quest-form"

// Template is the page tag of pages carrying the quest-run form.
const Template = "quest_run"

// Applies reports whether a page with the given template tag gets the form
// check.
func Applies(template string) bool {
	return template == Template
}

// Message is shown to the learner when a question is unanswered.
const Message = "すべての問題に答えてください。"

// ErrUnanswered lists the radio groups without a selection.
type ErrUnanswered struct {
	Groups []string
}

func (e *ErrUnanswered) Error() string {
	return fmt.Sprintf("%s (unanswered: %s)", Message, strings.Join(e.Groups, ", "))
}

// Group is one radio question in the form.
type Group struct {
	Name       string
	Options    []string
	Checked    string // value of the pre-checked option
	HasChecked bool
}

// Groups returns the radio groups of form in document order.
func Groups(form *html.Node) []Group {
	var groups []Group
	index := make(map[string]int)

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == atom.Input && strings.EqualFold(attr(n, "type"), "radio") {
			name := attr(n, "name")
			i, ok := index[name]
			if !ok {
				i = len(groups)
				index[name] = i
				groups = append(groups, Group{Name: name})
			}
			value := attr(n, "value")
			groups[i].Options = append(groups[i].Options, value)
			if hasAttr(n, "checked") && !groups[i].HasChecked {
				groups[i].Checked = value
				groups[i].HasChecked = true
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(form)
	return groups
}

// Validate reports an *ErrUnanswered when a radio group has neither a
// pre-checked option nor an answer in answers. Answers are keyed by group
// name; an answer must name one of the group's options.
func Validate(form *html.Node, answers map[string]string) error {
	var missing []string
	for _, g := range Groups(form) {
		if g.HasChecked {
			continue
		}
		if v, ok := answers[g.Name]; ok && contains(g.Options, v) {
			continue
		}
		missing = append(missing, g.Name)
	}
	if len(missing) > 0 {
		return &ErrUnanswered{Groups: missing}
	}
	return nil
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasAttr(n *html.Node, key string) bool {
	for _, a := range n.Attr {
		if a.Key == key {
			return true
		}
	}
	return false
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
