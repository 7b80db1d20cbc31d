package dom

import "strings"

type declaration struct {
	prop  string
	value string
}

// parseStyle splits an inline style attribute into ordered declarations.
// Property names are lower-cased; empty or valueless declarations are
// dropped.
func parseStyle(s string) []declaration {
	var decls []declaration
	for _, part := range strings.Split(s, ";") {
		prop, value, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		prop = strings.ToLower(strings.TrimSpace(prop))
		value = strings.TrimSpace(value)
		if prop == "" || value == "" {
			continue
		}
		decls = append(decls, declaration{prop: prop, value: value})
	}
	return decls
}

func formatStyle(decls []declaration) string {
	parts := make([]string, len(decls))
	for i, d := range decls {
		parts[i] = d.prop + ": " + d.value
	}
	return strings.Join(parts, "; ")
}

func writeStyle(el Element, decls []declaration) {
	if len(decls) == 0 {
		el.RemoveAttr("style")
		return
	}
	el.SetAttr("style", formatStyle(decls))
}

// Style returns the inline value of prop on el.
func Style(el Element, prop string) (string, bool) {
	v, _ := el.Attr("style")
	prop = strings.ToLower(prop)
	for _, d := range parseStyle(v) {
		if d.prop == prop {
			return d.value, true
		}
	}
	return "", false
}

// SetStyle sets an inline style property, replacing it in place if present.
// An empty value removes the property.
func SetStyle(el Element, prop, value string) {
	if value == "" {
		RemoveStyle(el, prop)
		return
	}
	v, _ := el.Attr("style")
	decls := parseStyle(v)
	prop = strings.ToLower(prop)
	for i := range decls {
		if decls[i].prop == prop {
			if decls[i].value == value {
				return
			}
			decls[i].value = value
			writeStyle(el, decls)
			return
		}
	}
	writeStyle(el, append(decls, declaration{prop: prop, value: value}))
}

// RemoveStyle removes the given inline style properties. The attribute is
// dropped once no declarations remain.
func RemoveStyle(el Element, props ...string) {
	v, ok := el.Attr("style")
	if !ok {
		return
	}
	drop := make(map[string]bool, len(props))
	for _, p := range props {
		drop[strings.ToLower(p)] = true
	}
	decls := parseStyle(v)
	kept := decls[:0:0]
	for _, d := range decls {
		if !drop[d.prop] {
			kept = append(kept, d)
		}
	}
	if len(kept) == len(decls) {
		return
	}
	writeStyle(el, kept)
}
