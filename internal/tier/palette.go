package tier

// MarkerClass marks an element whose quest has recorded progress.
const MarkerClass = "conquered"

// Treatment is the visual marking applied to a quest element.
type Treatment struct {
	Label  string // legend label
	Class  string // class added to the element
	Fill   string // inline fill color, empty to leave unset
	Stroke string // inline stroke color, empty to leave unset
}

// Palette assigns exactly one Treatment to every tier. It is configuration,
// not logic: Classify never consults it.
type Palette struct {
	treatments [tierCount]Treatment
}

// DefaultPalette returns the built-in palette. Colors follow the UI theme,
// from green for quick conquests to rose for grueling ones.
func DefaultPalette() Palette {
	return Palette{treatments: [tierCount]Treatment{
		Baseline: {Label: Baseline.Label()},
		Tier1:    {Label: Tier1.Label(), Class: "tier-1", Fill: "#22C55E"},
		Tier2:    {Label: Tier2.Label(), Class: "tier-2", Fill: "#14B8A6"},
		Tier3:    {Label: Tier3.Label(), Class: "tier-3", Fill: "#F97316"},
		Tier4:    {Label: Tier4.Label(), Class: "tier-4", Fill: "#F43F5E"},
	}}
}

// Treatment returns the treatment for t. Undefined tiers get the baseline
// treatment.
func (p Palette) Treatment(t Tier) Treatment {
	if !t.Valid() {
		return p.treatments[Baseline]
	}
	return p.treatments[t]
}

// Override returns a copy of p with the non-empty fields of each override
// replacing the existing ones.
func (p Palette) Override(overrides map[Tier]Treatment) Palette {
	out := p
	for t, o := range overrides {
		if !t.Valid() {
			continue
		}
		cur := out.treatments[t]
		if o.Label != "" {
			cur.Label = o.Label
		}
		if o.Class != "" {
			cur.Class = o.Class
		}
		if o.Fill != "" {
			cur.Fill = o.Fill
		}
		if o.Stroke != "" {
			cur.Stroke = o.Stroke
		}
		out.treatments[t] = cur
	}
	return out
}

// Classes returns every distinct class a treatment in p can add.
func (p Palette) Classes() []string {
	seen := make(map[string]bool)
	var out []string
	for _, tr := range p.treatments {
		if tr.Class != "" && !seen[tr.Class] {
			seen[tr.Class] = true
			out = append(out, tr.Class)
		}
	}
	return out
}

// StyleProperties returns every inline style property a treatment in p can
// set.
func (p Palette) StyleProperties() []string {
	var fill, stroke bool
	for _, tr := range p.treatments {
		fill = fill || tr.Fill != ""
		stroke = stroke || tr.Stroke != ""
	}
	var out []string
	if fill {
		out = append(out, "fill")
	}
	if stroke {
		out = append(out, "stroke")
	}
	return out
}
