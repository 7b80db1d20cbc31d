package dom

import "strings"

// Classes returns el's class list.
func Classes(el Element) []string {
	v, _ := el.Attr("class")
	return strings.Fields(v)
}

// HasClass reports whether el carries class c.
func HasClass(el Element, c string) bool {
	for _, have := range Classes(el) {
		if have == c {
			return true
		}
	}
	return false
}

// AddClass appends each class el does not already carry.
func AddClass(el Element, classes ...string) {
	list := Classes(el)
	changed := false
	for _, c := range classes {
		if c == "" || contains(list, c) {
			continue
		}
		list = append(list, c)
		changed = true
	}
	if changed {
		setClasses(el, list)
	}
}

// RemoveClass removes every occurrence of each class. The attribute is
// dropped once the list is empty.
func RemoveClass(el Element, classes ...string) {
	list := Classes(el)
	kept := list[:0:0]
	for _, c := range list {
		if !contains(classes, c) {
			kept = append(kept, c)
		}
	}
	if len(kept) == len(list) {
		return
	}
	setClasses(el, kept)
}

func setClasses(el Element, list []string) {
	if len(list) == 0 {
		el.RemoveAttr("class")
		return
	}
	el.SetAttr("class", strings.Join(list, " "))
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
