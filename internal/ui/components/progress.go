package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/spinlab/internal/ui/theme"
)

// ProgressBar is a one-line labeled bar for level, path and badge progress.
// A full bar turns green.
type ProgressBar struct {
	Label       string
	Percent     int // clamped to [0, 100] when drawn
	ShowPercent bool
	Width       int // total width including label and percentage
}

// NewProgressBar creates a bar of the given total width.
func NewProgressBar(label string, percent int, showPercent bool, width int) ProgressBar {
	return ProgressBar{Label: label, Percent: percent, ShowPercent: showPercent, Width: width}
}

func (p ProgressBar) clamped() int {
	return min(max(p.Percent, 0), 100)
}

// Filled returns how many of cells are filled.
func (p ProgressBar) Filled(cells int) int {
	return cells * p.clamped() / 100
}

// View renders the bar.
func (p ProgressBar) View() string {
	var label, pct string
	if p.Label != "" {
		label = lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}
	if p.ShowPercent {
		pct = lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf(" %4d%%", p.clamped()))
	}

	cells := max(p.Width-lipgloss.Width(label)-lipgloss.Width(pct), 4)
	filled := p.Filled(cells)
	fill := theme.Secondary
	if p.clamped() == 100 {
		fill = theme.Success
	}
	bar := lipgloss.NewStyle().Foreground(fill).Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("░", cells-filled))
	return label + bar + pct
}
