// Package history lists the learner's recent activity from the event log.
package history

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/spinlab/internal/engine"
	"github.com/abhisek/spinlab/internal/profiles"
	"github.com/abhisek/spinlab/internal/router"
	"github.com/abhisek/spinlab/internal/screen"
	"github.com/abhisek/spinlab/internal/ui/layout"
	"github.com/abhisek/spinlab/internal/ui/theme"
)

const historyLimit = 100

type historyLoadedMsg struct {
	Entries []profiles.Activity
	Err     error
}

// Screen displays recent progress, XP and badge events.
type Screen struct {
	source   screen.HistorySource
	entries  []profiles.Activity
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

// New creates a history screen over source.
func New(source screen.HistorySource) *Screen {
	return &Screen{
		source:   source,
		expanded: make(map[int]bool),
	}
}

func (s *Screen) load() tea.Msg {
	entries, err := s.source.History(historyLimit)
	return historyLoadedMsg{Entries: entries, Err: err}
}

func (s *Screen) Init() tea.Cmd {
	return s.load
}

func (s *Screen) Title() string {
	return "History"
}

func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.entries = msg.Entries
		}
		s.loaded = true
		return s, nil

	case screen.RefreshMsg:
		return s, s.load

	case tea.KeyPressMsg:
		switch msg.String() {
		case "q":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.entries)-1 {
				s.selected++
			}
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
		}
	}
	return s, nil
}

// Summary returns a one-line description of an activity.
func Summary(a profiles.Activity) string {
	switch a.Kind {
	case engine.EventTransition:
		return fmt.Sprintf("%s: %s → %s", a.ItemID, humanize(a.From), humanize(a.To))
	case engine.EventXP:
		return fmt.Sprintf("+%d XP (%s)", a.Amount, a.Source)
	case engine.EventBadge:
		return fmt.Sprintf("Badge earned: %s", a.BadgeName)
	default:
		return string(a.Kind)
	}
}

func humanize(status string) string {
	return strings.ReplaceAll(strings.TrimPrefix(status, "in_progress_"), "_", " ")
}

func icon(a profiles.Activity) string {
	switch a.Kind {
	case engine.EventTransition:
		return "🪀"
	case engine.EventXP:
		return "✨"
	case engine.EventBadge:
		return "🏅"
	default:
		return "·"
	}
}

func details(a profiles.Activity) string {
	switch a.Kind {
	case engine.EventTransition:
		return "trigger: " + a.Trigger
	case engine.EventXP:
		if a.Reason != "" {
			return "reason: " + a.Reason
		}
		return "source: " + a.Source
	case engine.EventBadge:
		return fmt.Sprintf("%s badge, +%d XP", a.Rarity, a.Amount)
	}
	return ""
}

func (s *Screen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.entries) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  Nothing here yet. Go throw a sleeper!")
	}

	lines := []string{""}
	first := 0
	if s.selected >= height-2 {
		first = s.selected - (height - 3)
	}
	for i := first; i < len(s.entries) && len(lines) < height; i++ {
		a := s.entries[i]
		prefix := "  "
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			prefix = "> "
			style = style.Foreground(theme.Primary).Bold(true)
		}
		line := fmt.Sprintf("%s%s  %s %s", prefix, a.Timestamp.Local().Format("Jan 02 15:04"), icon(a), Summary(a))
		if a.Kind == engine.EventBadge {
			style = style.Foreground(theme.RarityColor(a.Rarity))
		}
		lines = append(lines, style.Render(line))

		if s.expanded[i] {
			lines = append(lines, theme.Hint.Render("      "+details(a)))
		}
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(lines, "\n"))
}
