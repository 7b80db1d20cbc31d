package painter

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/questmap/internal/dom"
	"github.com/abhisek/questmap/internal/dom/domtest"
	"github.com/abhisek/questmap/internal/gate"
	"github.com/abhisek/questmap/internal/progress"
	"github.com/abhisek/questmap/internal/report"
	"github.com/abhisek/questmap/internal/svgdoc"
	"github.com/abhisek/questmap/internal/tier"
)

func newPainter(page dom.Page, entries []progress.Entry, r report.Reporter) *Painter {
	return New(progress.NewSnapshot(entries), tier.DefaultPalette(), gate.New(page), r)
}

func entry(id string, m progress.MapType, attempts int) progress.Entry {
	return progress.Entry{QuestID: id, MapType: m, Attempts: attempts}
}

func TestPaintScenario(t *testing.T) {
	page := domtest.NewPage()
	europe := domtest.NewDocument("q1", "q2", "q3")
	americus := domtest.NewDocument("q3")
	page.AddMap("europe", europe)
	page.AddMap("americus", americus)

	var c report.Collector
	p := newPainter(page, []progress.Entry{
		entry("q1", progress.Europe, 0),
		entry("q2", progress.Europe, 4),
		entry("q3", progress.Americus, 9),
	}, &c)

	p.Paint(progress.Europe)

	q1 := europe.Element("q1")
	assert.False(t, dom.HasClass(q1, tier.MarkerClass), "baseline quests carry no marker")
	_, ok := q1.Attr("style")
	assert.False(t, ok)

	q2 := europe.Element("q2")
	assert.True(t, dom.HasClass(q2, tier.MarkerClass))
	assert.True(t, dom.HasClass(q2, "tier-2"))
	fill, _ := dom.Style(q2, "fill")
	assert.Equal(t, "#14B8A6", fill)

	assert.Empty(t, europe.Element("q3").Attrs()["class"], "americus entry leaked onto europe")
	assert.Empty(t, americus.Element("q3").Attrs()["class"], "americus was never painted")

	pass, ok := c.LastPass("europe")
	require.True(t, ok)
	assert.Equal(t, report.PaintPass{MapType: "europe", Reset: 3, Marked: 1, Baseline: 1, Duration: pass.Duration}, pass)
}

func TestPaintIdempotent(t *testing.T) {
	page := domtest.NewPage()
	doc := domtest.NewDocument("1", "2", "3", "4")
	doc.Element("4").SetAttr("class", "region")
	page.AddMap("europe", doc)

	p := newPainter(page, []progress.Entry{
		entry("1", progress.Europe, 1),
		entry("2", progress.Europe, 5),
		entry("4", progress.Europe, 12),
		entry("9", progress.Europe, 3),
	}, nil)

	p.PaintDocument(progress.Europe, doc)
	once := doc.Snapshot()
	p.PaintDocument(progress.Europe, doc)

	if diff := cmp.Diff(once, doc.Snapshot()); diff != "" {
		t.Errorf("second paint changed the document (-once +twice):\n%s", diff)
	}
	assert.Equal(t, "region tier-4 conquered", once["4"]["class"])
}

func TestPaintDoubleLoad(t *testing.T) {
	page := domtest.NewPage()
	c := page.AddMap("europe", nil)
	entries := []progress.Entry{entry("1", progress.Europe, 7), entry("2", progress.Europe, 2)}

	var col report.Collector
	p := newPainter(page, entries, &col)
	g := p.gate

	p.Paint(progress.Europe)
	assert.Empty(t, col.Passes, "nothing to paint before load")

	doc := domtest.NewDocument("1", "2")
	c.Res().Complete(doc)
	g.Loaded("europe")
	first := doc.Snapshot()

	g.Loaded("europe")
	assert.Len(t, col.Passes, 2)
	if diff := cmp.Diff(first, doc.Snapshot()); diff != "" {
		t.Errorf("re-fired load changed the document:\n%s", diff)
	}
}

func TestResetBeforeApply(t *testing.T) {
	page := domtest.NewPage()
	doc := domtest.NewDocument("A")
	page.AddMap("europe", doc)

	newPainter(page, []progress.Entry{entry("A", progress.Europe, 8)}, nil).PaintDocument(progress.Europe, doc)
	require.True(t, dom.HasClass(doc.Element("A"), "tier-4"))

	newPainter(page, nil, nil).PaintDocument(progress.Europe, doc)

	if diff := cmp.Diff(map[string]string{"id": "A"}, doc.Element("A").Attrs()); diff != "" {
		t.Errorf("element A not back at baseline:\n%s", diff)
	}
}

func TestResetClearsNonMarkableRegions(t *testing.T) {
	doc, err := svgdoc.Parse([]byte(`<svg><g id="A"><path/></g><path id="B"/></svg>`))
	require.NoError(t, err)

	first := New(progress.NewSnapshot([]progress.Entry{
		entry("A", progress.Europe, 8),
		entry("B", progress.Europe, 2),
	}), tier.DefaultPalette(), nil, nil)
	res := first.PaintDocument(progress.Europe, doc)
	require.Equal(t, 2, res.Marked)

	a, _ := doc.ElementByID("A")
	require.True(t, dom.HasClass(a, "tier-4"))

	New(progress.NewSnapshot(nil), tier.DefaultPalette(), nil, nil).PaintDocument(progress.Europe, doc)

	for _, id := range []string{"A", "B"} {
		el, _ := doc.ElementByID(id)
		class, hasClass := el.Attr("class")
		style, hasStyle := el.Attr("style")
		assert.False(t, hasClass, "%s kept class %q", id, class)
		assert.False(t, hasStyle, "%s kept style %q", id, style)
	}
}

func TestResetKeepsForeignState(t *testing.T) {
	page := domtest.NewPage()
	doc := domtest.NewDocument("A")
	a := doc.Element("A")
	a.SetAttr("class", "coast tier-3 conquered")
	a.SetAttr("style", "stroke-width: 2; fill: #F97316")
	page.AddMap("europe", doc)

	res := newPainter(page, nil, nil).PaintDocument(progress.Europe, doc)

	assert.Equal(t, 1, res.Reset)
	assert.Equal(t, map[string]string{"id": "A", "class": "coast", "style": "stroke-width: 2"}, a.Attrs())
}

func TestPaintDuplicatesLastWins(t *testing.T) {
	page := domtest.NewPage()
	doc := domtest.NewDocument("1", "2")
	page.AddMap("europe", doc)

	p := newPainter(page, []progress.Entry{
		entry("1", progress.Europe, 8),
		entry("1", progress.Europe, 1),
		entry("2", progress.Europe, 3),
		entry("2", progress.Europe, 0),
	}, nil)
	p.PaintDocument(progress.Europe, doc)

	one := doc.Element("1")
	assert.True(t, dom.HasClass(one, "tier-1"))
	assert.False(t, dom.HasClass(one, "tier-4"))
	fill, _ := dom.Style(one, "fill")
	assert.Equal(t, "#22C55E", fill)

	assert.Equal(t, map[string]string{"id": "2"}, doc.Element("2").Attrs())
}

func TestPaintMissing(t *testing.T) {
	page := domtest.NewPage()
	page.AddEmptyMap("zipangu")
	doc := domtest.NewDocument("1")
	page.AddMap("europe", doc)

	var c report.Collector
	p := newPainter(page, []progress.Entry{
		entry("404", progress.Europe, 3),
		entry("1", progress.Europe, 3),
		entry("5", progress.Zipangu, 3),
	}, &c)

	p.Paint(progress.Zipangu)
	p.Paint("atlantis")
	assert.Empty(t, c.Passes, "unresolvable maps are skipped")

	p.Paint(progress.Europe)
	pass, ok := c.LastPass("europe")
	require.True(t, ok)
	assert.Equal(t, 1, pass.Skipped)
	assert.Equal(t, 1, pass.Marked)
	assert.Empty(t, c.Diagnostics, "missing elements are silent")
}

func TestPaintCustomPalette(t *testing.T) {
	page := domtest.NewPage()
	doc := domtest.NewDocument("1")
	page.AddMap("europe", doc)

	pal := tier.DefaultPalette().Override(map[tier.Tier]tier.Treatment{
		tier.Tier2: {Class: "steady", Stroke: "#000000"},
	})
	p := New(progress.NewSnapshot([]progress.Entry{entry("1", progress.Europe, 3)}), pal, gate.New(page), nil)
	p.PaintDocument(progress.Europe, doc)

	el := doc.Element("1")
	assert.Equal(t, "steady conquered", el.Attrs()["class"])
	assert.Equal(t, "fill: #14B8A6; stroke: #000000", el.Attrs()["style"])

	p = New(progress.Snapshot{}, pal, gate.New(page), nil)
	p.PaintDocument(progress.Europe, doc)
	assert.Equal(t, map[string]string{"id": "1"}, el.Attrs())
}
