// Package screen defines what the router needs from a TUI screen and how
// screens reach the learner's engine.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/spinlab/internal/engine"
	"github.com/abhisek/spinlab/internal/profiles"
	"github.com/abhisek/spinlab/internal/ui/layout"
)

// Screen is one page of the TUI. View draws only the body; the frame adds
// the header and footer.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)
	View(width, height int) string
	Title() string
}

// KeyHintProvider lets a screen replace the default footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Backend runs fn against the current learner's engine. Do persists what fn
// changed; View is read-only.
type Backend interface {
	Do(fn func(*engine.Engine) error) error
	View(fn func(*engine.Engine) error) error
}

// HistorySource is implemented by backends that keep an event log.
type HistorySource interface {
	History(limit int) ([]profiles.Activity, error)
}

// RefreshMsg tells a screen to reload because state may have changed
// underneath it.
type RefreshMsg struct{}
