// Package theme holds the spinlab palette and shared lipgloss styles.
package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Palette. Primary is the classic butterfly yo-yo red, Secondary the
// string-blue used for progress.
var (
	Primary   = lipgloss.Color("#EF4444")
	Secondary = lipgloss.Color("#0EA5E9")
	Accent    = lipgloss.Color("#F59E0B")
	Success   = lipgloss.Color("#22C55E")
	Error     = lipgloss.Color("#F43F5E")
	Text      = lipgloss.Color("#F8FAFC")
	TextDim   = lipgloss.Color("#94A3B8")
	Border    = lipgloss.Color("#334155")
)

// Badge rarity colors.
var (
	RarityCommon    = lipgloss.Color("#CBD5E1")
	RarityRare      = lipgloss.Color("#38BDF8")
	RarityEpic      = lipgloss.Color("#A855F7")
	RarityLegendary = lipgloss.Color("#FACC15")
)

var (
	Body = lipgloss.NewStyle().Foreground(Text)
	Hint = lipgloss.NewStyle().Foreground(TextDim).Italic(true)

	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 2)

	Selected   = lipgloss.NewStyle().Foreground(Primary).Bold(true)
	Unselected = lipgloss.NewStyle().Foreground(Text)
)

// Trick display states.
var (
	Locked     = lipgloss.NewStyle().Foreground(TextDim)
	InProgress = lipgloss.NewStyle().Foreground(Accent)
	Mastered   = lipgloss.NewStyle().Foreground(Success).Bold(true)
)

var rarityColors = map[string]color.Color{
	"common":    RarityCommon,
	"rare":      RarityRare,
	"epic":      RarityEpic,
	"legendary": RarityLegendary,
}

// RarityColor returns the color of a badge rarity, common when unknown.
func RarityColor(rarity string) color.Color {
	if c, ok := rarityColors[rarity]; ok {
		return c
	}
	return RarityCommon
}

var stateStyles = map[string]lipgloss.Style{
	"locked":      Locked,
	"in_progress": InProgress,
	"mastered":    Mastered,
}

// StateStyle returns the style of a trick display state.
func StateStyle(state string) lipgloss.Style {
	if s, ok := stateStyles[state]; ok {
		return s
	}
	return Unselected
}
