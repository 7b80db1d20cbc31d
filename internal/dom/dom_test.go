package dom_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abhisek/questmap/internal/dom"
	"github.com/abhisek/questmap/internal/dom/domtest"
)

func TestContainerMapType(t *testing.T) {
	tests := []struct {
		id   string
		want string
	}{
		{"map-europe", "europe"},
		{"map-", ""},
		{"europe", ""},
		{"", ""},
	}
	for _, tt := range tests {
		el := domtest.NewElement("div", tt.id)
		assert.Equal(t, tt.want, dom.ContainerMapType(el), "id %q", tt.id)
	}
	assert.Equal(t, "map-zipangu", dom.ContainerID("zipangu"))
}

func TestControlMapType(t *testing.T) {
	b := domtest.NewElement("button", "")
	assert.Equal(t, "", dom.ControlMapType(b))
	b.SetAttr(dom.MapTypeAttr, " americus ")
	assert.Equal(t, "americus", dom.ControlMapType(b))
}

func TestClasses(t *testing.T) {
	el := domtest.NewElement("path", "q1")

	dom.AddClass(el, "tier-1", "conquered", "tier-1", "")
	v, _ := el.Attr("class")
	assert.Equal(t, "tier-1 conquered", v)
	assert.True(t, dom.HasClass(el, "conquered"))
	assert.False(t, dom.HasClass(el, "tier-2"))

	dom.RemoveClass(el, "tier-2")
	v, _ = el.Attr("class")
	assert.Equal(t, "tier-1 conquered", v)

	dom.RemoveClass(el, "tier-1", "conquered")
	_, ok := el.Attr("class")
	assert.False(t, ok, "class attribute should be dropped when empty")
}

func TestRemoveClassKeepsForeignClasses(t *testing.T) {
	el := domtest.NewElement("path", "q1")
	el.SetAttr("class", "region  tier-3 region conquered")

	dom.RemoveClass(el, "tier-3", "conquered")
	v, _ := el.Attr("class")
	assert.Equal(t, "region region", v)
}

func TestStyle(t *testing.T) {
	el := domtest.NewElement("path", "q1")
	el.SetAttr("style", "stroke:#000;FILL: red ;;junk")

	fill, ok := dom.Style(el, "fill")
	assert.True(t, ok)
	assert.Equal(t, "red", fill)

	dom.SetStyle(el, "fill", "#22C55E")
	v, _ := el.Attr("style")
	assert.Equal(t, "stroke: #000; fill: #22C55E", v)

	dom.SetStyle(el, "opacity", "0.5")
	v, _ = el.Attr("style")
	assert.Equal(t, "stroke: #000; fill: #22C55E; opacity: 0.5", v)

	dom.SetStyle(el, "opacity", "")
	_, ok = dom.Style(el, "opacity")
	assert.False(t, ok)

	dom.RemoveStyle(el, "fill", "stroke")
	_, ok = el.Attr("style")
	assert.False(t, ok, "style attribute should be dropped when empty")
}

func TestRemoveStyleNoop(t *testing.T) {
	el := domtest.NewElement("path", "q1")
	dom.RemoveStyle(el, "fill")
	_, ok := el.Attr("style")
	assert.False(t, ok)

	el.SetAttr("style", "stroke:#000")
	dom.RemoveStyle(el, "fill")
	v, _ := el.Attr("style")
	assert.Equal(t, "stroke:#000", v, "untouched style keeps its original text")
}
