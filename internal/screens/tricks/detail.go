package tricks

import (
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/spinlab/internal/engine"
	"github.com/abhisek/spinlab/internal/errs"
	"github.com/abhisek/spinlab/internal/screen"
	"github.com/abhisek/spinlab/internal/ui/components"
	"github.com/abhisek/spinlab/internal/ui/layout"
	"github.com/abhisek/spinlab/internal/ui/theme"
)

// DetailScreen shows one trick and records activity on it.
type DetailScreen struct {
	backend screen.Backend
	itemID  string
	view    engine.ItemView
	input   *components.NumberInput // watch time entry, nil when closed
	message string
	err     error
}

var _ screen.Screen = (*DetailScreen)(nil)
var _ screen.KeyHintProvider = (*DetailScreen)(nil)

func newDetail(backend screen.Backend, itemID string) *DetailScreen {
	d := &DetailScreen{backend: backend, itemID: itemID}
	d.reload()
	return d
}

func (d *DetailScreen) reload() {
	d.err = d.backend.View(func(e *engine.Engine) error {
		v, err := e.ItemState(d.itemID)
		d.view = v
		return err
	})
}

func (d *DetailScreen) Init() tea.Cmd { return nil }
func (d *DetailScreen) Title() string { return d.view.Item.Name }

func (d *DetailScreen) KeyHints() []layout.KeyHint {
	if d.input != nil {
		return []layout.KeyHint{
			{Key: "0-9", Description: "Seconds"},
			{Key: "Enter", Description: "Save (empty cancels)"},
		}
	}
	return []layout.KeyHint{
		{Key: "w", Description: "Watch"},
		{Key: "p", Description: "Practice"},
		{Key: "m", Description: "Mastered"},
		{Key: "t", Description: "Log watch time"},
		{Key: "Esc", Description: "Back"},
	}
}

func (d *DetailScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if d.input != nil {
		return d.updateInput(msg)
	}
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return d, nil
	}
	var run func(e *engine.Engine) (engine.Outcome, error)
	switch kmsg.String() {
	case "t":
		in := components.NewNumberInput("Seconds watched", "e.g. 120", 5)
		d.input = &in
		d.message = ""
		return d, in.Init()
	case "w":
		run = func(e *engine.Engine) (engine.Outcome, error) { return e.StartWatching(d.itemID) }
	case "p":
		run = func(e *engine.Engine) (engine.Outcome, error) { return e.StartPracticing(d.itemID) }
	case "m":
		run = func(e *engine.Engine) (engine.Outcome, error) { return e.MarkMastered(d.itemID) }
	default:
		return d, nil
	}
	d.apply(run)
	return d, nil
}

func (d *DetailScreen) updateInput(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok && kmsg.String() == "enter" {
		secs, ok := d.input.Value()
		d.input = nil
		if !ok {
			return d, nil
		}
		err := d.apply(func(e *engine.Engine) (engine.Outcome, error) {
			return e.AddWatchTime(d.itemID, secs)
		})
		if err == nil && d.message == "Nothing changed" {
			d.message = fmt.Sprintf("Logged %ds of watch time", secs)
		}
		return d, nil
	}
	in, cmd := d.input.Update(msg)
	d.input = &in
	return d, cmd
}

// apply runs a persisted command and shows its result.
func (d *DetailScreen) apply(run func(e *engine.Engine) (engine.Outcome, error)) error {
	var out engine.Outcome
	err := d.backend.Do(func(e *engine.Engine) error {
		var err error
		out, err = run(e)
		return err
	})
	d.message = describe(out, err)
	d.reload()
	return err
}

// describe turns a command result into a one-line status message.
func describe(out engine.Outcome, err error) string {
	var pre *errs.PrerequisiteNotMetError
	switch {
	case errors.As(err, &pre):
		return "Locked: master " + strings.Join(pre.Missing, ", ") + " first"
	case err != nil:
		return "Error: " + err.Error()
	}

	var parts []string
	if out.Transition != nil {
		parts = append(parts, fmt.Sprintf("%s → %s", out.Transition.From, out.Transition.To))
	}
	if out.XPAwarded > 0 {
		parts = append(parts, fmt.Sprintf("+%d XP", out.XPAwarded))
	}
	for _, b := range out.NewBadges {
		parts = append(parts, "badge: "+b.Name)
	}
	if out.LevelUp != nil {
		parts = append(parts, fmt.Sprintf("level %d!", out.LevelUp.To))
	}
	if len(parts) == 0 {
		return "Nothing changed"
	}
	return strings.Join(parts, "  ·  ")
}

func (d *DetailScreen) View(width, height int) string {
	if d.err != nil {
		return theme.Hint.Render("  " + d.err.Error())
	}
	it := d.view.Item
	cw := width - 8
	if cw > 70 {
		cw = 70
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render(fmt.Sprintf("  %s  %s", d.view.State.Icon(), it.Name)))
	b.WriteString("\n")
	b.WriteString(theme.StateStyle(string(d.view.State)).Render("  " + d.view.State.Label()))
	b.WriteString("\n\n")

	if it.Description != "" {
		b.WriteString(lipgloss.NewStyle().Width(cw).PaddingLeft(2).Foreground(theme.Text).Render(it.Description))
		b.WriteString("\n\n")
	}

	field := func(label, value string) {
		b.WriteString(theme.Locked.Render(fmt.Sprintf("  %-14s", label)))
		b.WriteString(theme.Body.Render(value))
		b.WriteString("\n")
	}
	field("Style", it.Genre.DisplayName())
	field("Tier", it.Tier.Label())
	field("XP reward", fmt.Sprintf("%d", it.XPReward))
	field("Watched", fmt.Sprintf("%ds", d.view.Record.WatchTimeSeconds))
	if len(it.Prerequisites) > 0 {
		field("Requires", strings.Join(it.Prerequisites, ", "))
	}
	if len(d.view.Missing) > 0 {
		field("Missing", strings.Join(d.view.Missing, ", "))
	}

	if d.input != nil {
		b.WriteString("\n  ")
		b.WriteString(d.input.View())
		b.WriteString("\n")
	}
	if d.message != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render("  " + d.message))
	}
	return b.String()
}
