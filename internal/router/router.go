// Package router keeps the TUI's screen stack. The bottom screen is the
// dashboard (or the onboarding wizard before it); every screen opened from
// it is pushed on top and popped with Esc.
package router

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/spinlab/internal/screen"
)

// PushScreenMsg opens Screen on top of the active one.
type PushScreenMsg struct {
	Screen screen.Screen
}

// PopScreenMsg closes the active screen.
type PopScreenMsg struct{}

// PopToRootMsg closes every screen above the bottom one.
type PopToRootMsg struct{}

// ReplaceScreenMsg swaps the active screen for Screen without growing the
// stack, e.g. splash to wizard or wizard to dashboard.
type ReplaceScreenMsg struct {
	Screen screen.Screen
}

// Router is a stack of screens. It is never empty.
type Router struct {
	stack []screen.Screen
}

// New creates a router whose bottom screen is root.
func New(root screen.Screen) *Router {
	return &Router{stack: []screen.Screen{root}}
}

func (r *Router) top() int { return len(r.stack) - 1 }

// Active returns the screen receiving input.
func (r *Router) Active() screen.Screen {
	return r.stack[r.top()]
}

// Depth returns the number of open screens.
func (r *Router) Depth() int {
	return len(r.stack)
}

// Breadcrumb joins the titles of every open screen, bottom first, skipping
// untitled ones.
func (r *Router) Breadcrumb(sep string) string {
	titles := make([]string, 0, len(r.stack))
	for _, s := range r.stack {
		if t := s.Title(); t != "" {
			titles = append(titles, t)
		}
	}
	return strings.Join(titles, sep)
}

// Push opens s and runs its Init.
func (r *Router) Push(s screen.Screen) tea.Cmd {
	r.stack = append(r.stack, s)
	return s.Init()
}

// Replace swaps the active screen for s and runs its Init.
func (r *Router) Replace(s screen.Screen) tea.Cmd {
	r.stack[r.top()] = s
	return s.Init()
}

// Pop closes the active screen unless it is the bottom one. The uncovered
// screen is sent a RefreshMsg because commands run above it may have
// changed the learner's state.
func (r *Router) Pop() tea.Cmd {
	return r.popTo(r.top() - 1)
}

// PopToRoot closes everything above the bottom screen.
func (r *Router) PopToRoot() tea.Cmd {
	return r.popTo(0)
}

func (r *Router) popTo(i int) tea.Cmd {
	if i < 0 || i >= r.top() {
		return nil
	}
	r.stack = r.stack[:i+1]
	return refresh
}

func refresh() tea.Msg { return screen.RefreshMsg{} }

// Update applies navigation messages and forwards everything else to the
// active screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PushScreenMsg:
		return r.Push(msg.Screen)
	case ReplaceScreenMsg:
		return r.Replace(msg.Screen)
	case PopScreenMsg:
		return r.Pop()
	case PopToRootMsg:
		return r.PopToRoot()
	}
	next, cmd := r.Active().Update(msg)
	r.stack[r.top()] = next
	return cmd
}

// View renders the active screen into width x height cells.
func (r *Router) View(width, height int) string {
	return r.Active().View(width, height)
}
