package components

import (
	"github.com/abhisek/spinlab/internal/ui/theme"
)

// ContentWidth returns the inner width of stacked cards for a body of
// frameWidth cells, kept between 20 and 72.
func ContentWidth(frameWidth int) int {
	return min(max(frameWidth-6, 20), 72)
}

// Card wraps content in the card style, with an optional highlighted title
// line.
func Card(title, content string, cw int) string {
	if title != "" {
		content = theme.Selected.Render(title) + "\n" + content
	}
	return theme.Card.Width(cw).Render(content)
}
