package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/spinlab/internal/ui/theme"
)

// Option is one selectable value.
type Option struct {
	Value string
	Label string
}

// ToggleMsg reports that the option under the cursor was chosen. For a
// multi-select list the caller toggles it; for a single-select list the
// caller replaces the selection.
type ToggleMsg struct {
	Value string
}

// MultiChoice is a cursor over options, rendered as radio buttons or
// checkboxes. It does not own the selection: the caller passes the chosen
// values to View.
type MultiChoice struct {
	Options []Option
	Multi   bool
	Cursor  int
}

// NewMultiChoice creates a choice list.
func NewMultiChoice(options []Option, multi bool) MultiChoice {
	return MultiChoice{Options: options, Multi: multi}
}

// Update moves the cursor; space or enter emits a ToggleMsg.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok || len(m.Options) == 0 {
		return m, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.Options)-1 {
			m.Cursor++
		}
	case "space", " ", "x":
		v := m.Options[m.Cursor].Value
		return m, func() tea.Msg { return ToggleMsg{Value: v} }
	}
	return m, nil
}

// View renders the options with chosen values marked.
func (m MultiChoice) View(chosen []string) string {
	set := make(map[string]bool, len(chosen))
	for _, c := range chosen {
		set[c] = true
	}

	var b strings.Builder
	for i, opt := range m.Options {
		mark := "( )"
		if m.Multi {
			mark = "[ ]"
		}
		if set[opt.Value] {
			mark = "(•)"
			if m.Multi {
				mark = "[x]"
			}
		}
		prefix := "  "
		style := theme.Unselected
		if i == m.Cursor {
			prefix = "▸ "
			style = theme.Selected
		}
		b.WriteString(style.Render(prefix+mark+" "+opt.Label) + "\n")
	}
	return b.String()
}
