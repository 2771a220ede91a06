// Package layout draws the frame around every screen: a header with the
// learner's level and streak, the screen body and a footer of key hints.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/spinlab/internal/ui/theme"
)

// Smallest terminal the frame is drawn in.
const (
	MinWidth  = 72
	MinHeight = 22
)

// KeyHint is one key binding shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// HeaderStats is the learner summary shown on the right of the header.
type HeaderStats struct {
	Level       int
	Streak      int
	ActiveToday bool
	NewBadges   int
}

// chips renders the stats as short colored labels.
func (s HeaderStats) chips() string {
	parts := []string{
		lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(fmt.Sprintf("Lv %d", s.Level)),
	}
	streak := lipgloss.NewStyle().Foreground(theme.TextDim)
	if s.ActiveToday {
		streak = streak.Foreground(theme.Accent)
	}
	parts = append(parts, streak.Render(fmt.Sprintf("🔥 %d", s.Streak)))
	if s.NewBadges > 0 {
		parts = append(parts, lipgloss.NewStyle().Foreground(theme.RarityLegendary).Render(fmt.Sprintf("🏅 %d new", s.NewBadges)))
	}
	return strings.Join(parts, "  ")
}

var box = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(theme.Border)

// IsTooSmall reports whether the terminal is below MinWidth x MinHeight.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage asks the user to enlarge the terminal.
func RenderMinSizeMessage(width, height int) string {
	msg := fmt.Sprintf("Terminal too small\n\nResize to at least %d x %d\n(currently %d x %d)",
		MinWidth, MinHeight, width, height)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.Text).Align(lipgloss.Center).Render(msg))
}

// RenderHeader draws the brand, the centered title and the learner stats.
// The title is shortened from the left when space runs out so the active
// screen stays visible.
func RenderHeader(title string, stats HeaderStats, width int) string {
	inner := width - 4
	brand := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("🪀 spinlab")
	right := stats.chips()

	room := inner - lipgloss.Width(brand) - lipgloss.Width(right) - 2
	if room < 0 {
		room = 0
	}
	mid := lipgloss.PlaceHorizontal(room, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.Text).Render(TruncateLeft(title, room)))

	return box.Width(width).Padding(0, 1).Render(brand + " " + mid + " " + right)
}

// RenderFooter draws as many key hints as fit in width.
func RenderFooter(hints []KeyHint, width int) string {
	keyStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	room := width - 6
	var b strings.Builder
	for i, h := range hints {
		part := keyStyle.Render(h.Key) + " " + descStyle.Render(h.Description)
		if i > 0 {
			part = "   " + part
		}
		if lipgloss.Width(b.String())+lipgloss.Width(part) > room {
			b.WriteString(descStyle.Render(" …"))
			break
		}
		b.WriteString(part)
	}
	return box.Width(width).Padding(0, 1).Render(b.String())
}

// RenderFrame stacks header, body and footer, giving the body whatever
// height is left.
func RenderFrame(header, content, footer string, width, height int) string {
	bodyHeight := height - lipgloss.Height(header) - lipgloss.Height(footer)
	if bodyHeight < 0 {
		bodyHeight = 0
	}
	body := lipgloss.NewStyle().Width(width).Height(bodyHeight).MaxHeight(bodyHeight).Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

// TruncateLeft keeps the last n cells of s, marking the cut with "…".
func TruncateLeft(s string, n int) string {
	if lipgloss.Width(s) <= n {
		return s
	}
	if n <= 1 {
		return strings.Repeat("…", n)
	}
	r := []rune(s)
	for len(r) > 0 && lipgloss.Width(string(r))+1 > n {
		r = r[1:]
	}
	return "…" + string(r)
}
