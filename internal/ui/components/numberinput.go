package components

import (
	"strconv"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/spinlab/internal/ui/theme"
)

// NumberInput is a focused single-line input that accepts digits only.
type NumberInput struct {
	Label string
	model textinput.Model
}

// NewNumberInput creates a focused input for a non-negative integer of at
// most maxDigits digits.
func NewNumberInput(label, placeholder string, maxDigits int) NumberInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	if maxDigits > 0 {
		ti.CharLimit = maxDigits
	}
	ti.Focus()
	return NumberInput{Label: label, model: ti}
}

// Init returns the cursor blink command.
func (n NumberInput) Init() tea.Cmd {
	return n.model.Focus()
}

// Update forwards msg to the input, dropping printable non-digit keys.
func (n NumberInput) Update(msg tea.Msg) (NumberInput, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		if s := kmsg.String(); len(s) == 1 && (s[0] < '0' || s[0] > '9') {
			return n, nil
		}
	}
	var cmd tea.Cmd
	n.model, cmd = n.model.Update(msg)
	return n, cmd
}

// Value returns the parsed number. ok is false when the input is empty.
func (n NumberInput) Value() (v int, ok bool) {
	raw := n.model.Value()
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	return v, err == nil
}

// View renders the label and the input.
func (n NumberInput) View() string {
	label := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(n.Label + ": ")
	return label + n.model.View()
}
