package tier

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		attempts int
		want     Tier
	}{
		{-5, Baseline},
		{-1, Baseline},
		{0, Baseline},
		{1, Tier1},
		{2, Tier1},
		{3, Tier2},
		{4, Tier2},
		{5, Tier3},
		{6, Tier3},
		{7, Tier4},
		{8, Tier4},
		{100, Tier4},
	}

	for _, tt := range tests {
		got := Classify(tt.attempts)
		if got != tt.want {
			t.Errorf("Classify(%d) = %s, want %s", tt.attempts, got, tt.want)
		}
	}
}

func TestClassifyMonotonic(t *testing.T) {
	prev := Classify(0)
	if prev != Baseline {
		t.Fatalf("Classify(0) = %s, want baseline", prev)
	}
	for a := 1; a <= 50; a++ {
		cur := Classify(a)
		if cur.Severity() < prev.Severity() {
			t.Errorf("Classify(%d) = %s is less severe than Classify(%d) = %s", a, cur, a-1, prev)
		}
		prev = cur
	}
}

func TestParseRoundTrip(t *testing.T) {
	for _, tr := range All() {
		got, err := Parse(tr.String())
		if err != nil {
			t.Fatalf("Parse(%q): %v", tr.String(), err)
		}
		if got != tr {
			t.Errorf("Parse(%q) = %s, want %s", tr.String(), got, tr)
		}
	}
	if _, err := Parse("tier9"); err == nil {
		t.Error("expected error for unknown tier")
	}
}

func TestAll(t *testing.T) {
	tiers := All()
	if len(tiers) != 5 {
		t.Fatalf("expected 5 tiers, got %d", len(tiers))
	}
	if tiers[0] != Baseline || tiers[4] != Tier4 {
		t.Errorf("unexpected order: %v", tiers)
	}
	if Tier(9).Valid() || Tier(-1).Valid() {
		t.Error("out of range tiers reported valid")
	}
}

func TestDefaultPalette(t *testing.T) {
	p := DefaultPalette()

	base := p.Treatment(Baseline)
	if base.Class != "" || base.Fill != "" {
		t.Errorf("baseline treatment should not mark anything: %+v", base)
	}

	classes := map[string]bool{}
	for _, tr := range All()[1:] {
		treat := p.Treatment(tr)
		if treat.Class == "" || treat.Fill == "" {
			t.Errorf("%s treatment incomplete: %+v", tr, treat)
		}
		if classes[treat.Class] {
			t.Errorf("duplicate class %q", treat.Class)
		}
		classes[treat.Class] = true
	}

	if got := p.Treatment(Tier(42)); got != base {
		t.Errorf("undefined tier treatment = %+v, want baseline", got)
	}
}

func TestPaletteOverride(t *testing.T) {
	base := DefaultPalette()
	p := base.Override(map[Tier]Treatment{
		Tier4:    {Fill: "#000000", Stroke: "#FFFFFF"},
		Tier(7):  {Class: "ignored"},
		Baseline: {Label: "Uncharted"},
	})

	if got := p.Treatment(Tier4); got.Fill != "#000000" || got.Stroke != "#FFFFFF" || got.Class != "tier-4" {
		t.Errorf("tier4 override = %+v", got)
	}
	if got := p.Treatment(Baseline).Label; got != "Uncharted" {
		t.Errorf("baseline label = %q", got)
	}
	if base.Treatment(Tier4).Fill != "#F43F5E" {
		t.Error("Override mutated the receiver")
	}

	props := p.StyleProperties()
	if len(props) != 2 || props[0] != "fill" || props[1] != "stroke" {
		t.Errorf("StyleProperties() = %v", props)
	}
	if len(base.StyleProperties()) != 1 {
		t.Errorf("default StyleProperties() = %v", base.StyleProperties())
	}
	if len(p.Classes()) != 4 {
		t.Errorf("Classes() = %v", p.Classes())
	}
}
