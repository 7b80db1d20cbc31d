package mapview

import (
	"context"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/questmap/internal/dom"
	"github.com/abhisek/questmap/internal/engine"
	"github.com/abhisek/questmap/internal/loader"
	"github.com/abhisek/questmap/internal/progress"
	"github.com/abhisek/questmap/internal/report"
	"github.com/abhisek/questmap/internal/router"
	"github.com/abhisek/questmap/internal/screen"
	"github.com/abhisek/questmap/internal/tier"
	"github.com/abhisek/questmap/internal/ui/components"
	"github.com/abhisek/questmap/internal/ui/layout"
	"github.com/abhisek/questmap/internal/ui/theme"
)

// Deps are the collaborators the map view drives.
type Deps struct {
	Engine  *engine.Engine
	Host    engine.Host
	Loader  *loader.Loader
	Sources []loader.Source
	Palette tier.Palette
	Stats   *report.Collector
	Initial progress.MapType
}

// loadStartedMsg carries the event channel of a batch of loads.
type loadStartedMsg struct {
	events <-chan loader.Event
}

// loadMsg delivers one load event. done is set once the batch is drained.
type loadMsg struct {
	ev     loader.Event
	events <-chan loader.Event
	done   bool
}

// Loads keep flowing while a detail screen covers the map view.
func (loadStartedMsg) Background() {}
func (loadMsg) Background()        {}

// quest is one markable region of the active map.
type quest struct {
	id       string
	tier     tier.Tier
	attempts int
	entries  int
}

// MapViewScreen shows the active map's quests and switches maps.
type MapViewScreen struct {
	deps Deps
	maps []progress.MapType

	started bool
	loading int
	cursor  int
	offset  int
}

var _ screen.Screen = (*MapViewScreen)(nil)
var _ screen.KeyHintProvider = (*MapViewScreen)(nil)

// New creates a MapViewScreen.
func New(deps Deps) *MapViewScreen {
	if deps.Stats == nil {
		deps.Stats = &report.Collector{}
	}
	return &MapViewScreen{
		deps: deps,
		maps: deps.Engine.MapTypes(),
	}
}

func (s *MapViewScreen) Init() tea.Cmd {
	if !s.started {
		s.started = true
		s.deps.Engine.Start(s.deps.Initial)
	}
	return s.startLoads()
}

func (s *MapViewScreen) startLoads() tea.Cmd {
	if s.deps.Loader == nil || len(s.deps.Sources) == 0 {
		return nil
	}
	s.loading += len(s.deps.Sources)
	l, srcs := s.deps.Loader, s.deps.Sources
	return func() tea.Msg {
		return loadStartedMsg{events: l.LoadAll(context.Background(), srcs)}
	}
}

// waitForLoad blocks on the next load event of a batch.
func waitForLoad(events <-chan loader.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return loadMsg{done: true}
		}
		return loadMsg{ev: ev, events: events}
	}
}

func (s *MapViewScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadStartedMsg:
		return s, waitForLoad(msg.events)

	case loadMsg:
		if msg.done {
			return s, nil
		}
		if s.loading > 0 {
			s.loading--
		}
		s.deps.Engine.Deliver(s.deps.Host, msg.ev)
		s.clampCursor()
		return s, waitForLoad(msg.events)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			s.moveCursor(-1)
		case key.Matches(msg, keys.Down):
			s.moveCursor(1)
		case key.Matches(msg, keys.Prev):
			s.cycle(-1)
		case key.Matches(msg, keys.Next):
			s.cycle(1)
		case key.Matches(msg, keys.Jump):
			s.jump(int(msg.String()[0] - '1'))
		case key.Matches(msg, keys.Reload):
			return s, s.startLoads()
		case key.Matches(msg, keys.Select):
			return s, s.selectQuest()
		case key.Matches(msg, keys.Quit):
			return s, tea.Quit
		}
	}
	return s, nil
}

func (s *MapViewScreen) Title() string {
	return "Map: " + s.active().DisplayName()
}

func (s *MapViewScreen) KeyHints() []layout.KeyHint {
	return keys.hints()
}

// HeaderStats summarizes progress for the header bar.
func (s *MapViewScreen) HeaderStats() layout.HeaderStats {
	conquered := map[string]bool{}
	for _, e := range s.deps.Engine.Snapshot.Entries() {
		if tier.Classify(e.Attempts) != tier.Baseline {
			conquered[string(e.MapType)+"/"+e.QuestID] = true
		}
	}
	return layout.HeaderStats{
		Conquered: len(conquered),
		Maps:      len(s.maps),
		Warnings:  len(s.deps.Stats.Diagnostics),
	}
}

func (s *MapViewScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n  " + s.renderSelector() + "\n\n")

	quests, loaded := s.quests()
	switch {
	case !s.hasMap(s.active()):
		b.WriteString(theme.Hint.Render(fmt.Sprintf("  No map for %q on this page", s.active())))
		return b.String()
	case !loaded && s.loading > 0:
		b.WriteString(theme.Hint.Render("  Loading map…"))
		return b.String()
	case !loaded:
		b.WriteString(theme.Hint.Render("  Map document unavailable"))
		return b.String()
	}

	counts := map[tier.Tier]int{}
	for _, q := range quests {
		counts[q.tier]++
	}
	compactWidth := layout.IsCompactWidth(width)
	b.WriteString("  " + components.NewTierBar(s.deps.Palette, counts, width-4).View() + "\n")
	listHeight := height - 5
	if !layout.IsCompactHeight(height) {
		b.WriteString("  " + s.renderLegend(compactWidth) + "\n")
		listHeight -= 2
	}
	b.WriteString("\n")

	if listHeight < 1 {
		listHeight = 1
	}
	s.adjustScroll(listHeight)
	var lines []string
	for i := s.offset; i < len(quests) && i < s.offset+listHeight; i++ {
		lines = append(lines, s.renderQuestRow(quests[i], i == s.cursor, width, compactWidth))
	}
	if len(lines) == 0 {
		lines = append(lines, theme.Hint.Render("  This map has no quest regions"))
	}
	b.WriteString(strings.Join(lines, "\n"))
	return b.String()
}

func (s *MapViewScreen) active() progress.MapType {
	return s.deps.Engine.Controller.Active()
}

func (s *MapViewScreen) hasMap(m progress.MapType) bool {
	for _, have := range s.maps {
		if have == m {
			return true
		}
	}
	return false
}

func (s *MapViewScreen) cycle(delta int) {
	if len(s.maps) == 0 {
		return
	}
	i := 0
	for j, m := range s.maps {
		if m == s.active() {
			i = j
			break
		}
	}
	i = (i + delta + len(s.maps)) % len(s.maps)
	s.switchTo(s.maps[i])
}

func (s *MapViewScreen) jump(i int) {
	if i < 0 || i >= len(s.maps) {
		return
	}
	s.switchTo(s.maps[i])
}

func (s *MapViewScreen) switchTo(m progress.MapType) {
	s.deps.Engine.SwitchTo(m)
	s.cursor = 0
	s.offset = 0
}

func (s *MapViewScreen) moveCursor(delta int) {
	s.cursor += delta
	s.clampCursor()
}

func (s *MapViewScreen) clampCursor() {
	quests, _ := s.quests()
	if s.cursor >= len(quests) {
		s.cursor = len(quests) - 1
	}
	if s.cursor < 0 {
		s.cursor = 0
	}
}

func (s *MapViewScreen) adjustScroll(height int) {
	if s.cursor < s.offset {
		s.offset = s.cursor
	}
	if s.cursor >= s.offset+height {
		s.offset = s.cursor - height + 1
	}
}

// quests reads the active document's regions back from the DOM, so the
// list shows exactly what the painter left behind.
func (s *MapViewScreen) quests() ([]quest, bool) {
	doc, ok := s.deps.Engine.Gate.Document(string(s.active()))
	if !ok {
		return nil, false
	}

	attempts := map[string]int{}
	entries := map[string]int{}
	for _, e := range s.deps.Engine.Snapshot.ForMap(s.active()) {
		attempts[e.QuestID] = e.Attempts
		entries[e.QuestID]++
	}

	var out []quest
	for _, el := range doc.MarkableElements() {
		id := el.ID()
		if id == "" {
			continue
		}
		out = append(out, quest{
			id:       id,
			tier:     s.paintedTier(el),
			attempts: attempts[id],
			entries:  entries[id],
		})
	}
	return out, true
}

func (s *MapViewScreen) paintedTier(el dom.Element) tier.Tier {
	if !dom.HasClass(el, tier.MarkerClass) {
		return tier.Baseline
	}
	for _, t := range tier.All() {
		if c := s.deps.Palette.Treatment(t).Class; c != "" && dom.HasClass(el, c) {
			return t
		}
	}
	return tier.Baseline
}

func (s *MapViewScreen) selectQuest() tea.Cmd {
	quests, ok := s.quests()
	if !ok || s.cursor >= len(quests) {
		return nil
	}
	q := quests[s.cursor]
	doc, _ := s.deps.Engine.Gate.Document(string(s.active()))
	el, _ := doc.ElementByID(q.id)
	detail := newQuestDetail(s.active(), q, el, s.deps.Palette)
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: detail}
	}
}

func (s *MapViewScreen) renderSelector() string {
	var buttons []components.Button
	for _, ctl := range s.deps.Engine.Page.Controls() {
		m := progress.MapType(dom.ControlMapType(ctl))
		buttons = append(buttons, components.NewButton(m.DisplayName(), dom.HasClass(ctl, "active")))
	}
	if len(buttons) == 0 {
		for _, m := range s.maps {
			buttons = append(buttons, components.NewButton(m.DisplayName(), m == s.active()))
		}
	}
	return components.ButtonRow(buttons)
}

func (s *MapViewScreen) renderLegend(compact bool) string {
	var parts []string
	for _, t := range tier.All() {
		tr := s.deps.Palette.Treatment(t)
		label := fmt.Sprintf("%s (%s)", tr.Label, t.Range())
		if compact {
			label = t.Range()
		}
		parts = append(parts, theme.TierSwatch(tr)+" "+
			lipgloss.NewStyle().Foreground(theme.TextDim).Render(label))
	}
	return strings.Join(parts, "  ")
}

func (s *MapViewScreen) renderQuestRow(q quest, selected bool, width int, compact bool) string {
	tr := s.deps.Palette.Treatment(q.tier)

	nameWidth := width - 40
	if compact {
		nameWidth = width - 30
	}
	if nameWidth < 10 {
		nameWidth = 10
	}
	name := "Quest " + q.id
	if len(name) > nameWidth {
		name = name[:nameWidth-1] + "…"
	}

	cursor := "  "
	nameStyle := theme.Unselected
	if selected {
		cursor = "▸ "
		nameStyle = theme.Selected
	}

	attempts := ""
	if q.entries > 0 {
		attempts = fmt.Sprintf("%d attempts", q.attempts)
		if compact {
			attempts = fmt.Sprintf("×%d", q.attempts)
		}
	}

	return fmt.Sprintf("  %s%s %s  %s  %s",
		cursor,
		theme.TierSwatch(tr),
		nameStyle.Render(fmt.Sprintf("%-*s", nameWidth, name)),
		theme.TierStyle(tr).Render(fmt.Sprintf("%-12s", tr.Label)),
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(attempts),
	)
}
