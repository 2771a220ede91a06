// Package app wires the terminal UI to a learner's progress.
package app

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/spinlab/internal/engine"
	"github.com/abhisek/spinlab/internal/profiles"
	"github.com/abhisek/spinlab/internal/router"
	"github.com/abhisek/spinlab/internal/screen"
	"github.com/abhisek/spinlab/internal/screens/dashboard"
	"github.com/abhisek/spinlab/internal/screens/onboarding"
	"github.com/abhisek/spinlab/internal/screens/splash"
	"github.com/abhisek/spinlab/internal/ui/layout"
)

// managerBackend binds a profile manager to one learner.
type managerBackend struct {
	ctx    context.Context
	m      *profiles.Manager
	userID string
}

func (b managerBackend) Do(fn func(*engine.Engine) error) error {
	return b.m.Do(b.ctx, b.userID, fn)
}

func (b managerBackend) View(fn func(*engine.Engine) error) error {
	return b.m.View(b.ctx, b.userID, fn)
}

func (b managerBackend) History(limit int) ([]profiles.Activity, error) {
	return b.m.History(b.ctx, b.userID, limit)
}

// NewBackend returns a screen backend for userID.
func NewBackend(ctx context.Context, m *profiles.Manager, userID string) screen.Backend {
	return managerBackend{ctx: ctx, m: m, userID: userID}
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router  *router.Router
	backend screen.Backend
	stats   layout.HeaderStats
	width   int
	height  int
}

// homeScreen returns the onboarding wizard until it is finished, then the
// dashboard.
func homeScreen(b screen.Backend) screen.Screen {
	var done bool
	_ = b.View(func(e *engine.Engine) error {
		done = e.Onboarding().Completed
		return nil
	})
	if done {
		return dashboard.New(b)
	}
	return onboarding.NewWizard(b, func() screen.Screen {
		return dashboard.New(b)
	})
}

// newAppModel creates the root model, optionally starting on the splash.
func newAppModel(b screen.Backend, showSplash bool) AppModel {
	var initial screen.Screen
	if showSplash {
		initial = splash.New(func() screen.Screen { return homeScreen(b) })
	} else {
		initial = homeScreen(b)
	}
	m := AppModel{router: router.New(initial), backend: b}
	m.refreshStats()
	return m
}

func (m *AppModel) refreshStats() {
	_ = m.backend.View(func(e *engine.Engine) error {
		st := e.Streak()
		m.stats = layout.HeaderStats{
			Level:       e.Level().Level.Level,
			Streak:      st.Current,
			ActiveToday: st.ActiveToday,
			NewBadges:   len(e.PendingBadges()),
		}
		return nil
	})
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		case "home":
			return m, func() tea.Msg { return router.PopToRootMsg{} }
		}
	}

	cmd := m.router.Update(msg)
	switch msg.(type) {
	case tea.KeyPressMsg, screen.RefreshMsg:
		m.refreshStats()
	}
	return m, cmd
}

func (m AppModel) footerHints() []layout.KeyHint {
	if p, ok := m.router.Active().(screen.KeyHintProvider); ok {
		return append(p.KeyHints(), layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Home", Description: "Dashboard"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	header := layout.RenderHeader(m.router.Breadcrumb(" › "), m.stats, m.width)
	footer := layout.RenderFooter(m.footerHints(), m.width)

	contentHeight := m.height - lipgloss.Height(header) - lipgloss.Height(footer)
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

// Options configures Run.
type Options struct {
	Manager *profiles.Manager
	UserID  string
	Splash  bool
}

// Run starts the Bubble Tea program for one learner.
func Run(ctx context.Context, opts Options) error {
	b := NewBackend(ctx, opts.Manager, opts.UserID)
	p := tea.NewProgram(newAppModel(b, opts.Splash), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
