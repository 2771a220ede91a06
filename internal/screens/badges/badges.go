// Package badges shows earned badges and progress toward the rest.
package badges

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/spinlab/internal/achievements"
	"github.com/abhisek/spinlab/internal/engine"
	"github.com/abhisek/spinlab/internal/router"
	"github.com/abhisek/spinlab/internal/screen"
	"github.com/abhisek/spinlab/internal/ui/components"
	"github.com/abhisek/spinlab/internal/ui/layout"
	"github.com/abhisek/spinlab/internal/ui/theme"
)

type tab int

const (
	tabEarned tab = iota
	tabNext
)

var tabNames = []string{"Earned", "Up next"}

// Screen is the badge cabinet.
type Screen struct {
	backend      screen.Backend
	earned       []achievements.Badge
	pending      map[string]bool
	next         []achievements.Candidate
	selected     tab
	scrollOffset int
	err          error
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

// New creates the badge screen and loads its data.
func New(backend screen.Backend) *Screen {
	s := &Screen{backend: backend}
	s.reload()
	return s
}

func (s *Screen) reload() {
	s.err = s.backend.View(func(e *engine.Engine) error {
		s.earned = e.Badges()
		s.next = e.NextBadges(0)
		s.pending = make(map[string]bool)
		for _, b := range e.PendingBadges() {
			s.pending[b.ID] = true
		}
		return nil
	})
}

// acknowledgeAll clears the notification queue.
func (s *Screen) acknowledgeAll() tea.Cmd {
	if len(s.pending) == 0 {
		return nil
	}
	s.err = s.backend.Do(func(e *engine.Engine) error {
		for _, b := range e.PendingBadges() {
			if err := e.AcknowledgeBadge(b.ID); err != nil {
				return err
			}
		}
		return nil
	})
	s.reload()
	return func() tea.Msg { return screen.RefreshMsg{} }
}

func (s *Screen) Init() tea.Cmd {
	return nil
}

func (s *Screen) Title() string {
	return "Badges"
}

func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Switch list"},
		{Key: "↑↓", Description: "Scroll"},
		{Key: "a", Description: "Mark seen"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *Screen) rows() int {
	if s.selected == tabEarned {
		return len(s.earned)
	}
	return len(s.next)
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case screen.RefreshMsg:
		s.reload()
	case tea.KeyPressMsg:
		switch msg.String() {
		case "q":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "tab", "shift+tab":
			s.selected = (s.selected + 1) % tab(len(tabNames))
			s.scrollOffset = 0
		case "up", "k":
			if s.scrollOffset > 0 {
				s.scrollOffset--
			}
		case "down", "j":
			if s.scrollOffset < s.rows()-1 {
				s.scrollOffset++
			}
		case "a":
			return s, s.acknowledgeAll()
		}
	}
	return s, nil
}

func (s *Screen) View(width, height int) string {
	if s.err != nil {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.err))
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().
		Width(width).Align(lipgloss.Center).Foreground(theme.Text).
		Render(fmt.Sprintf("\n%d earned  ·  %d to go\n", len(s.earned), len(s.next))))
	b.WriteString("\n")

	var tabs []string
	for i, name := range tabNames {
		style := lipgloss.NewStyle().Foreground(theme.TextDim)
		if tab(i) == s.selected {
			style = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
		}
		tabs = append(tabs, style.Render(name))
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(tabs, "     ")))
	b.WriteString("\n\n")

	cw := min(width-8, 64)
	var lines []string
	if s.selected == tabEarned {
		lines = s.earnedLines()
	} else {
		lines = s.nextLines(cw)
	}
	if len(lines) == 0 {
		msg := "No badges yet. Master a trick to earn your first!"
		if s.selected == tabNext {
			msg = "Every badge earned. Legendary!"
		}
		lines = []string{theme.Hint.Render(msg)}
	}

	visible := max(height-6, 1)
	end := min(s.scrollOffset+visible, len(lines))
	start := min(s.scrollOffset, end)
	list := lipgloss.NewStyle().Width(cw).Render(strings.Join(lines[start:end], "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, list))
	return b.String()
}

func (s *Screen) earnedLines() []string {
	var lines []string
	for _, badge := range s.earned {
		name := lipgloss.NewStyle().
			Foreground(theme.RarityColor(string(badge.Rarity))).
			Bold(true).
			Render(badge.Rarity.Icon() + " " + badge.Name)
		meta := theme.Locked.Render(fmt.Sprintf("  %s  +%d XP  %s",
			badge.Rarity.DisplayName(), badge.XPAwarded, badge.EarnedAt.Format("Jan 2")))
		line := name + meta
		if s.pending[badge.ID] {
			line += "  " + lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render("NEW")
		}
		lines = append(lines, line)
	}
	return lines
}

func (s *Screen) nextLines(cw int) []string {
	var lines []string
	for _, c := range s.next {
		d := c.Definition
		label := fmt.Sprintf("%s %-24s", d.Rarity.Icon(), d.Name)
		bar := components.NewProgressBar(label, c.Percent(), true, cw).View()
		lines = append(lines, bar)
		if d.Description != "" {
			lines = append(lines, theme.Locked.Render("   "+d.Description))
		}
	}
	return lines
}
