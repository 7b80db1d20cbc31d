package mapswitch

import (
	"github.com/abhisek/questmap/internal/progress"
)

// Presentation is the ambient background shown behind the active map.
type Presentation struct {
	Image string `yaml:"image" json:"image,omitempty"`
	Color string `yaml:"color" json:"color,omitempty"`
}

// Backgrounds is the static map type to presentation lookup.
type Backgrounds struct {
	ByMap   map[progress.MapType]Presentation
	Default Presentation
}

// DefaultBackgrounds returns the built-in presentations.
func DefaultBackgrounds() Backgrounds {
	return Backgrounds{
		ByMap: map[progress.MapType]Presentation{
			progress.Europe:   {Image: "url('/static/img/europe-bg.jpg')", Color: "#1E293B"},
			progress.Americus: {Image: "url('/static/img/americus-bg.jpg')", Color: "#1C2A1E"},
			progress.Zipangu:  {Image: "url('/static/img/zipangu-bg.jpg')", Color: "#2A1B1B"},
		},
		Default: Presentation{Color: "#0F172A"},
	}
}

// Lookup returns the presentation for mapType, falling back to the default.
// The boolean reports whether mapType had its own entry.
func (b Backgrounds) Lookup(mapType progress.MapType) (Presentation, bool) {
	if p, ok := b.ByMap[mapType]; ok {
		return p, true
	}
	return b.Default, false
}

// Merge returns b with every non-empty presentation in o laid over it.
func (b Backgrounds) Merge(o Backgrounds) Backgrounds {
	out := Backgrounds{
		ByMap:   make(map[progress.MapType]Presentation, len(b.ByMap)+len(o.ByMap)),
		Default: merge(b.Default, o.Default),
	}
	for m, p := range b.ByMap {
		out.ByMap[m] = p
	}
	for m, p := range o.ByMap {
		out.ByMap[m] = merge(out.ByMap[m], p)
	}
	return out
}

func merge(base, over Presentation) Presentation {
	if over.Image != "" {
		base.Image = over.Image
	}
	if over.Color != "" {
		base.Color = over.Color
	}
	return base
}
