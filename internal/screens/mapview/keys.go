package mapview

import (
	"charm.land/bubbles/v2/key"

	"github.com/abhisek/questmap/internal/ui/layout"
)

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Prev   key.Binding
	Next   key.Binding
	Jump   key.Binding
	Select key.Binding
	Reload key.Binding
	Quit   key.Binding
}

var keys = keyMap{
	Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑↓", "Navigate")),
	Down:   key.NewBinding(key.WithKeys("down", "j")),
	Prev:   key.NewBinding(key.WithKeys("left", "h", "shift+tab"), key.WithHelp("←→", "Switch map")),
	Next:   key.NewBinding(key.WithKeys("right", "l", "tab")),
	Jump:   key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"), key.WithHelp("1-9", "Map")),
	Select: key.NewBinding(key.WithKeys("enter"), key.WithHelp("Enter", "Details")),
	Reload: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "Reload")),
	Quit:   key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "Quit")),
}

// hints turns the bindings that carry help text into footer hints.
func (k keyMap) hints() []layout.KeyHint {
	var out []layout.KeyHint
	for _, b := range []key.Binding{k.Up, k.Prev, k.Jump, k.Select, k.Reload, k.Quit} {
		h := b.Help()
		if h.Key == "" {
			continue
		}
		out = append(out, layout.KeyHint{Key: h.Key, Description: h.Desc})
	}
	return out
}
