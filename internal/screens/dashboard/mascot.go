package dashboard

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/spinlab/internal/engine"
	"github.com/abhisek/spinlab/internal/ui/theme"
)

// MascotVariant selects which mascot art to display.
type MascotVariant int

const (
	MascotIdle        MascotVariant = iota
	MascotCelebrating               // unseen badges waiting
	MascotAlert                     // streak not yet extended today
)

const mascotIdle = ` ╭───╮
 │◉ ◉│
 ╰─┬─╯
   │
   ◎`

const mascotCelebrating = ` ╭───╮
 │★ ★│
 ╰─┬─╯
  ╱
 ◎`

const mascotAlert = ` ╭───╮
 │◉ ◉│ !
 ╰─┬─╯
   │
   ◎`

// mascotFor picks the mascot mood for a dashboard.
func mascotFor(d engine.Dashboard) MascotVariant {
	switch {
	case len(d.Pending) > 0:
		return MascotCelebrating
	case d.Streak.Current > 0 && !d.Streak.ActiveToday:
		return MascotAlert
	default:
		return MascotIdle
	}
}

// RenderMascot returns the mascot art for the given variant.
func RenderMascot(v MascotVariant) string {
	art := mascotIdle
	fg := theme.Primary

	switch v {
	case MascotCelebrating:
		art = mascotCelebrating
		fg = theme.RarityLegendary
	case MascotAlert:
		art = mascotAlert
		fg = theme.Accent
	}

	return lipgloss.NewStyle().
		Foreground(fg).
		Render(art)
}
