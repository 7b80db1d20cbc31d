package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/questmap/internal/tier"
	"github.com/abhisek/questmap/internal/ui/theme"
)

// TierBar displays how a map's quests split across tiers as one stacked
// horizontal bar.
type TierBar struct {
	Palette tier.Palette
	Counts  map[tier.Tier]int
	Width   int
}

// NewTierBar creates a new tier bar.
func NewTierBar(palette tier.Palette, counts map[tier.Tier]int, width int) TierBar {
	return TierBar{
		Palette: palette,
		Counts:  counts,
		Width:   width,
	}
}

// Total returns the number of quests counted.
func (b TierBar) Total() int {
	n := 0
	for _, c := range b.Counts {
		n += c
	}
	return n
}

// Segments returns the cell width of each tier, in severity order. Widths
// sum to the bar width whenever anything was counted.
func (b TierBar) Segments(width int) []int {
	tiers := tier.All()
	out := make([]int, len(tiers))
	total := b.Total()
	if total == 0 || width <= 0 {
		return out
	}

	used := 0
	largest := 0
	for i, t := range tiers {
		out[i] = b.Counts[t] * width / total
		if b.Counts[t] > 0 && out[i] == 0 && used < width {
			out[i] = 1
		}
		used += out[i]
		if out[i] > out[largest] {
			largest = i
		}
	}
	// rounding slack goes to the widest segment
	out[largest] += width - used
	if out[largest] < 0 {
		out[largest] = 0
	}
	return out
}

// View renders the bar followed by a count summary.
func (b TierBar) View() string {
	summary := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("  %d quests", b.Total()))

	barWidth := b.Width - lipgloss.Width(summary)
	if barWidth < 4 {
		barWidth = 4
	}

	if b.Total() == 0 {
		return lipgloss.NewStyle().
			Background(theme.Border).
			Render(strings.Repeat(" ", barWidth)) + summary
	}

	var sb strings.Builder
	for i, w := range b.Segments(barWidth) {
		if w == 0 {
			continue
		}
		t := tier.All()[i]
		bg := theme.TierColor(b.Palette.Treatment(t))
		if t == tier.Baseline {
			bg = theme.Border
		}
		sb.WriteString(lipgloss.NewStyle().Background(bg).Render(strings.Repeat(" ", w)))
	}
	return sb.String() + summary
}
