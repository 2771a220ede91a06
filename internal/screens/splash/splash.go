// Package splash shows the animated start screen.
package splash

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/spinlab/internal/router"
	"github.com/abhisek/spinlab/internal/screen"
	"github.com/abhisek/spinlab/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	phase1End    = 500 * time.Millisecond
	phase2End    = 1200 * time.Millisecond
	totalDur     = 3000 * time.Millisecond
)

const tagline = "Every trick starts with a sleeper."

// spinFrames animate the yo-yo at the end of the string.
var spinFrames = []string{"◐", "◓", "◑", "◒"}

const handArt = `  ╭───╮
  │ ✋ │
  ╰─┬─╯`

type tickMsg time.Time

// Screen is the splash animation. Any key moves on to the screen produced
// by next.
type Screen struct {
	next         func() screen.Screen
	elapsed      time.Duration
	tickCount    int
	transitioned bool
}

var _ screen.Screen = (*Screen)(nil)

// New creates a splash screen that replaces itself with next().
func New(next func() screen.Screen) *Screen {
	return &Screen{next: next}
}

func (s *Screen) Title() string {
	return ""
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (s *Screen) Init() tea.Cmd {
	return tick()
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if s.elapsed < totalDur {
			s.elapsed += tickInterval
		}
		s.tickCount++
		return s, tick()

	case tea.KeyPressMsg:
		return s, s.transition()
	}
	return s, nil
}

func (s *Screen) transition() tea.Cmd {
	if s.transitioned {
		return nil
	}
	s.transitioned = true
	next := s.next()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

// stringLength returns how far the yo-yo has dropped.
func (s *Screen) stringLength() int {
	const maxDrop = 4
	n := int(s.elapsed / (phase1End / maxDrop))
	return min(n, maxDrop)
}

func (s *Screen) View(width, height int) string {
	var sections []string

	yoyo := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).
		Render(spinFrames[s.tickCount%len(spinFrames)])
	str := lipgloss.NewStyle().Foreground(theme.TextDim).Render("    │")

	lines := []string{lipgloss.NewStyle().Foreground(theme.Primary).Render(handArt)}
	for range s.stringLength() {
		lines = append(lines, str)
	}
	lines = append(lines, "    "+yoyo)
	sections = append(sections, strings.Join(lines, "\n"))

	if s.elapsed >= phase2End {
		sections = append(sections, "", RenderBanner(width), "")
		sections = append(sections, lipgloss.NewStyle().
			Foreground(theme.Text).
			Bold(true).
			Render(tagline))
		sections = append(sections, "", lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Italic(true).
			Render("press any key to continue"))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		strings.Join(sections, "\n"))
}
