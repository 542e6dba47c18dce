package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/skillpath/internal/ui/theme"
)

// ContentWidth returns the inner width shared by stacked cards so they line
// up, clamped to [20, 72].
func ContentWidth(frameWidth int) int {
	return max(20, min(frameWidth-6, 72))
}

// Card wraps content in a rounded-border box of the given content width.
func Card(content string, cw int, accent bool) string {
	border := theme.Border
	if accent {
		border = theme.Primary
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Width(cw).
		Padding(1, 2).
		Render(content)
}

// Centered places content in the middle of a width x height area.
func Centered(content string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
