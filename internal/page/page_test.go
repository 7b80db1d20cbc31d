package page

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/questmap/internal/dom"
	"github.com/abhisek/questmap/internal/dom/domtest"
)

const dashboard = `<!DOCTYPE html>
<html>
<head><title>Dashboard</title></head>
<body data-page="dashboard">
  <div id="conquered-data" data-conquered='[{"quest_id": 1, "attempts": 2, "map_type": "europe"}]'></div>
  <div class="map-selector">
    <button class="btn btn-primary active" data-map-type="europe">Europe</button>
    <button class="btn btn-secondary" data-map-type="americus">Americus</button>
  </div>
  <button data-map-type="zipangu">outside the selector</button>
  <div class="map active" id="map-europe"><object data="/static/maps/europe.svg" type="image/svg+xml"></object></div>
  <div class="map" id="map-americus"><div class="frame"><object data="/static/maps/americus.svg"></object></div></div>
  <div class="map" id="map-zipangu"></div>
  <div id="map-legend"></div>
</body>
</html>`

func parse(t *testing.T, src string) *Page {
	t.Helper()
	p, err := Parse(strings.NewReader(src))
	require.NoError(t, err)
	return p
}

func TestParseDashboard(t *testing.T) {
	p := parse(t, dashboard)

	raw, ok := p.Payload()
	require.True(t, ok)
	assert.Contains(t, raw, `"quest_id": 1`)
	assert.Equal(t, "dashboard", p.Template())

	assert.Len(t, p.Containers(), 3, "only .map elements with a map- id are containers")
	assert.Len(t, p.Controls(), 2, "only buttons inside the selector are controls")

	assert.Equal(t, []ResourceRef{
		{MapType: "europe", Source: "/static/maps/europe.svg"},
		{MapType: "americus", Source: "/static/maps/americus.svg"},
	}, p.Resources())

	_, ok = p.Backdrop()
	assert.True(t, ok)
}

func TestPayloadMissing(t *testing.T) {
	p := parse(t, `<html><body><div id="conquered-data"></div></body></html>`)
	_, ok := p.Payload()
	assert.False(t, ok)

	p = parse(t, `<html><body></body></html>`)
	_, ok = p.Payload()
	assert.False(t, ok)
	assert.Equal(t, "", p.Template())
}

func TestAttachDetach(t *testing.T) {
	p := parse(t, dashboard)

	c, ok := p.MapContainer("europe")
	require.True(t, ok)
	res, ok := c.Resource()
	require.True(t, ok)
	_, ok = res.Document()
	assert.False(t, ok, "resources start out loading")

	doc := domtest.NewDocument("1")
	assert.True(t, p.Attach("europe", doc))
	got, ok := res.Document()
	require.True(t, ok)
	assert.Same(t, doc, got)

	p.Detach("europe")
	_, ok = res.Document()
	assert.False(t, ok)

	assert.False(t, p.Attach("zipangu", doc), "container without an object")
	assert.False(t, p.Attach("atlantis", doc))

	c, ok = p.MapContainer("zipangu")
	require.True(t, ok)
	_, ok = c.Resource()
	assert.False(t, ok)
}

func TestRenderReflectsChanges(t *testing.T) {
	p := parse(t, dashboard)

	c, _ := p.MapContainer("americus")
	dom.AddClass(c, dom.ActiveClass)
	body, _ := p.Backdrop()
	dom.SetStyle(body, "background-color", "#0F172A")
	require.True(t, p.SetSource("americus", "americus.painted.svg"))

	var buf bytes.Buffer
	require.NoError(t, p.Render(&buf))
	out := buf.String()

	assert.Contains(t, out, `class="map active" id="map-americus"`)
	assert.Contains(t, out, `style="background-color: #0F172A"`)
	assert.Contains(t, out, `data="americus.painted.svg"`)
}

func TestForm(t *testing.T) {
	p := parse(t, `<html><body data-page="quest_run"><form id="quest-form"></form></body></html>`)
	f, ok := p.Form("quest-form")
	require.True(t, ok)
	assert.Equal(t, "form", f.Data)

	_, ok = p.Form("other")
	assert.False(t, ok)
}
