package mapview

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/questmap/internal/dom"
	"github.com/abhisek/questmap/internal/progress"
	"github.com/abhisek/questmap/internal/screen"
	"github.com/abhisek/questmap/internal/tier"
	"github.com/abhisek/questmap/internal/ui/layout"
	"github.com/abhisek/questmap/internal/ui/theme"
)

// QuestDetailScreen shows one quest region and the marking painted on it.
type QuestDetailScreen struct {
	mapType progress.MapType
	quest   quest
	class   string
	style   string
	palette tier.Palette
}

var _ screen.Screen = (*QuestDetailScreen)(nil)
var _ screen.KeyHintProvider = (*QuestDetailScreen)(nil)

func newQuestDetail(mapType progress.MapType, q quest, el dom.Element, palette tier.Palette) *QuestDetailScreen {
	d := &QuestDetailScreen{mapType: mapType, quest: q, palette: palette}
	if el != nil {
		d.class, _ = el.Attr("class")
		d.style, _ = el.Attr("style")
	}
	return d
}

func (d *QuestDetailScreen) Init() tea.Cmd { return nil }
func (d *QuestDetailScreen) Title() string { return "Quest " + d.quest.id }

func (d *QuestDetailScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	return d, nil
}

func (d *QuestDetailScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
	}
}

func (d *QuestDetailScreen) View(width, height int) string {
	q := d.quest
	tr := d.palette.Treatment(q.tier)

	var b strings.Builder

	b.WriteString(theme.TierStyle(tr).Render(fmt.Sprintf("  %s  Quest %s", theme.TierSwatch(tr), q.id)))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("  %s on %s", tr.Label, d.mapType.DisplayName())))
	b.WriteString("\n\n")

	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
	valStyle := lipgloss.NewStyle().Foreground(theme.Text)

	attempts := "none recorded"
	if q.entries > 0 {
		attempts = fmt.Sprintf("%d", q.attempts)
	}
	b.WriteString(dimStyle.Render("  Attempts:  ") + valStyle.Render(attempts) + "\n")
	b.WriteString(dimStyle.Render("  Tier:      ") + valStyle.Render(fmt.Sprintf("%s (%s attempts)", q.tier, q.tier.Range())) + "\n")
	if q.entries > 1 {
		b.WriteString(dimStyle.Render("  Records:   ") +
			lipgloss.NewStyle().Foreground(theme.Accent).Render(fmt.Sprintf("%d, the last one is painted", q.entries)) + "\n")
	}
	b.WriteString("\n")

	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render("  Painted Marking"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  class:  ") + valStyle.Render(orDash(d.class)) + "\n")
	b.WriteString(dimStyle.Render("  style:  ") + valStyle.Render(orDash(d.style)) + "\n")

	return lipgloss.Place(width, height, lipgloss.Left, lipgloss.Top,
		"\n"+b.String())
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}
