package splash

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/spinlab/internal/ui/theme"
)

const bannerArt = `
 ███████╗██████╗ ██╗███╗   ██╗██╗      █████╗ ██████╗
 ██╔════╝██╔══██╗██║████╗  ██║██║     ██╔══██╗██╔══██╗
 ███████╗██████╔╝██║██╔██╗ ██║██║     ███████║██████╔╝
 ╚════██║██╔═══╝ ██║██║╚██╗██║██║     ██╔══██║██╔══██╗
 ███████║██║     ██║██║ ╚████║███████╗██║  ██║██████╔╝
 ╚══════╝╚═╝     ╚═╝╚═╝  ╚═══╝╚══════╝╚═╝  ╚═╝╚═════╝`

const bannerCompact = "S P I N L A B"

// bannerWidth is the widest line of bannerArt.
const bannerWidth = 54

// RenderBanner returns the spinlab banner styled in the primary color.
// Uses a compact fallback for narrow areas.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < bannerWidth {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
