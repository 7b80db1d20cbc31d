package gate

import (
	"testing"

	"github.com/abhisek/questmap/internal/dom"
	"github.com/abhisek/questmap/internal/dom/domtest"
)

type recorder struct {
	docs []dom.Document
}

func (r *recorder) fn(doc dom.Document) { r.docs = append(r.docs, doc) }

func TestOnReadyComplete(t *testing.T) {
	page := domtest.NewPage()
	doc := domtest.NewDocument("1")
	page.AddMap("europe", doc)

	g := New(page)
	var r recorder
	g.OnReady("europe", r.fn)

	if len(r.docs) != 1 || r.docs[0] != dom.Document(doc) {
		t.Fatalf("expected synchronous delivery of the complete document, got %v", r.docs)
	}
}

func TestOnReadyWaitsForLoad(t *testing.T) {
	page := domtest.NewPage()
	c := page.AddMap("americus", nil)

	g := New(page)
	var r recorder
	g.OnReady("americus", r.fn)
	if len(r.docs) != 0 {
		t.Fatalf("listener ran before load: %v", r.docs)
	}

	g.Loaded("americus")
	if len(r.docs) != 0 {
		t.Fatal("listener ran for a load event without a complete document")
	}

	doc := domtest.NewDocument("7")
	c.Res().Complete(doc)
	g.Loaded("americus")
	if len(r.docs) != 1 || r.docs[0] != dom.Document(doc) {
		t.Fatalf("expected delivery after load, got %v", r.docs)
	}
}

func TestDoubleLoad(t *testing.T) {
	page := domtest.NewPage()
	first := domtest.NewDocument("1")
	c := page.AddMap("europe", first)

	g := New(page)
	var r recorder
	g.OnReady("europe", r.fn)

	// cache-restored reload replaces the document
	second := domtest.NewDocument("1")
	c.Res().Unload()
	c.Res().Complete(second)
	g.Loaded("europe")

	if len(r.docs) != 2 {
		t.Fatalf("expected two deliveries, got %d", len(r.docs))
	}
	if r.docs[0] != dom.Document(first) || r.docs[1] != dom.Document(second) {
		t.Error("deliveries out of load order")
	}
}

func TestOnReadyReplacesListener(t *testing.T) {
	page := domtest.NewPage()
	page.AddMap("europe", domtest.NewDocument("1"))

	g := New(page)
	var a, b recorder
	g.OnReady("europe", a.fn)
	g.OnReady("europe", b.fn)
	g.Loaded("europe")

	if len(a.docs) != 1 {
		t.Errorf("replaced listener ran %d times, want 1", len(a.docs))
	}
	if len(b.docs) != 2 {
		t.Errorf("current listener ran %d times, want 2", len(b.docs))
	}
}

func TestMissingContainerOrResource(t *testing.T) {
	page := domtest.NewPage()
	page.AddEmptyMap("zipangu")

	g := New(page)
	var r recorder
	g.OnReady("zipangu", r.fn)
	g.OnReady("atlantis", r.fn)
	g.Loaded("zipangu")
	g.Loaded("atlantis")

	if len(r.docs) != 0 {
		t.Errorf("listener ran for an unresolvable map: %v", r.docs)
	}
	if g.Listening("zipangu") || g.Listening("atlantis") {
		t.Error("unresolvable maps should not keep a listener")
	}
	if _, ok := g.Document("atlantis"); ok {
		t.Error("Document() for an absent container")
	}
}
