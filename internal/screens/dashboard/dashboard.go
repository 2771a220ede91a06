// Package dashboard is the home screen: level, streak, path completion and
// the main menu.
package dashboard

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/spinlab/internal/engine"
	"github.com/abhisek/spinlab/internal/router"
	"github.com/abhisek/spinlab/internal/screen"
	"github.com/abhisek/spinlab/internal/screens/badges"
	"github.com/abhisek/spinlab/internal/screens/history"
	"github.com/abhisek/spinlab/internal/screens/onboarding"
	"github.com/abhisek/spinlab/internal/screens/tricks"
	"github.com/abhisek/spinlab/internal/ui/components"
	"github.com/abhisek/spinlab/internal/ui/theme"
)

// Screen is the learner's home screen.
type Screen struct {
	backend screen.Backend
	menu    components.Menu
	dash    engine.Dashboard
	err     error
}

var _ screen.Screen = (*Screen)(nil)

// New creates the dashboard and loads its data.
func New(backend screen.Backend) *Screen {
	s := &Screen{backend: backend}
	s.reload()
	return s
}

func (s *Screen) reload() {
	s.err = s.backend.View(func(e *engine.Engine) error {
		s.dash = e.Dashboard()
		return nil
	})
	s.menu = components.NewMenu(s.menuItems())
}

func push(sc screen.Screen) tea.Cmd {
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: sc}
	}
}

func (s *Screen) menuItems() []components.MenuItem {
	var badgeHint string
	if n := len(s.dash.Pending); n > 0 {
		badgeHint = fmt.Sprintf("%d new!", n)
	}
	src, hasHistory := s.backend.(screen.HistorySource)
	onboardHint := "finish setup"
	if s.dash.Onboarding.Completed {
		onboardHint = "done"
	}

	return []components.MenuItem{
		{Label: "TRICKS", Hint: s.continueHint(), Action: func() tea.Cmd {
			return push(tricks.New(s.backend))
		}},
		{Label: "BADGES", Hint: badgeHint, Action: func() tea.Cmd {
			return push(badges.New(s.backend))
		}},
		{Label: "HISTORY", Disabled: !hasHistory, Action: func() tea.Cmd {
			return push(history.New(src))
		}},
		{Label: "ONBOARDING", Hint: onboardHint, Action: func() tea.Cmd {
			return push(onboarding.NewWizard(s.backend, nil))
		}},
		{Label: "QUIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}
}

func (s *Screen) continueHint() string {
	if len(s.dash.Continue) == 0 {
		return ""
	}
	return "next: " + s.dash.Continue[0].Name
}

func (s *Screen) Init() tea.Cmd {
	return nil
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if _, ok := msg.(screen.RefreshMsg); ok {
		selected := s.menu.Selected
		s.reload()
		s.menu.Selected = selected
		return s, nil
	}
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *Screen) View(width, height int) string {
	if s.err != nil {
		return theme.Hint.Render("  could not load progress: " + s.err.Error())
	}
	compact := height < 24
	cw := components.ContentWidth(width)

	var sections []string
	if !compact {
		sections = append(sections, lipgloss.NewStyle().
			Width(cw).
			Align(lipgloss.Center).
			Render(RenderMascot(mascotFor(s.dash))))
	}
	sections = append(sections, components.Card("", s.renderStats(cw-4, compact), cw))
	if len(s.dash.Pending) > 0 {
		sections = append(sections, s.renderPending(cw))
	}
	sections = append(sections, s.menu.View())

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		strings.Join(sections, "\n"))
}

func (s *Screen) renderStats(w int, compact bool) string {
	lv := s.dash.Level
	lines := []string{
		components.NewProgressBar(fmt.Sprintf("Level %-3d", lv.Level.Level), lv.PercentNow, true, w).View(),
		components.NewProgressBar(fmt.Sprintf("%-9s", "Overall"), s.dash.Overall.Percentage, true, w).View(),
	}

	if !compact {
		for _, p := range s.dash.Paths {
			name := p.Path.Name
			if len([]rune(name)) > 9 {
				name = string([]rune(name)[:9])
			}
			lines = append(lines,
				components.NewProgressBar(fmt.Sprintf("%-9s", name), p.Completion.Percentage, true, w).View())
		}
	}

	streak := s.dash.Streak
	streakLine := fmt.Sprintf("🔥 %d day streak  ·  best %d  ·  %d XP", streak.Current, streak.Longest, lv.LifetimeXP)
	if streak.Current > 0 && !streak.ActiveToday {
		streakLine += "  ·  practice today to keep it"
	} else if streak.NextMilestone > 0 {
		streakLine += fmt.Sprintf("  ·  next milestone %d", streak.NextMilestone)
	}
	lines = append(lines, lipgloss.NewStyle().Foreground(theme.Accent).Render(streakLine))
	return strings.Join(lines, "\n")
}

func (s *Screen) renderPending(cw int) string {
	var names []string
	for _, b := range s.dash.Pending {
		names = append(names, lipgloss.NewStyle().
			Foreground(theme.RarityColor(string(b.Rarity))).
			Bold(true).
			Render(b.Rarity.Icon()+" "+b.Name))
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render("New badges: " + strings.Join(names, "  "))
}

func (s *Screen) Title() string {
	return "Dashboard"
}
