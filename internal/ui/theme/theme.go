package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/questmap/internal/tier"
)

// Color palette, dark map-table background with bright region inks
var (
	Primary   = lipgloss.Color("#8B5CF6") // Vivid Purple
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Accent    = lipgloss.Color("#F97316") // Orange
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgDark    = lipgloss.Color("#0F172A") // Deep Navy
	BgCard    = lipgloss.Color("#1E293B") // Dark Slate
	Border    = lipgloss.Color("#334155") // Slate
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// Selector buttons
var (
	ButtonActive = lipgloss.NewStyle().
			Background(Primary).
			Foreground(Text).
			Bold(true).
			Padding(0, 2)

	ButtonInactive = lipgloss.NewStyle().
			Foreground(TextDim).
			Padding(0, 2)
)

// Selection
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)
)

// TierColor returns the terminal ink for a tier treatment. Treatments
// without a fill are drawn dim.
func TierColor(t tier.Treatment) color.Color {
	if t.Fill == "" {
		return TextDim
	}
	return lipgloss.Color(t.Fill)
}

// TierStyle returns a foreground style for a tier treatment.
func TierStyle(t tier.Treatment) lipgloss.Style {
	s := lipgloss.NewStyle().Foreground(TierColor(t))
	if t.Fill != "" {
		s = s.Bold(true)
	}
	return s
}

// TierSwatch renders a small filled block in the tier's color.
func TierSwatch(t tier.Treatment) string {
	if t.Fill == "" {
		return lipgloss.NewStyle().Foreground(Border).Render("░░")
	}
	return lipgloss.NewStyle().Background(lipgloss.Color(t.Fill)).Render("  ")
}
