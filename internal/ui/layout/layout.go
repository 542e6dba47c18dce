// Package layout draws the chrome around every screen: the header bar with
// lifetime XP, the key-hint footer and the too-small fallback.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/skillpath/internal/ui/theme"
)

const (
	MinWidth  = 80
	MinHeight = 24

	// Content areas narrower or shorter than these get the compact layout.
	compactWidth  = 100
	compactHeight = 24
)

// KeyHint represents a key binding hint shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// IsCompact reports whether a content area of this size should use the
// condensed layout.
func IsCompact(width, contentHeight int) bool {
	return width < compactWidth || contentHeight < compactHeight
}

// IsTooSmall returns true if the terminal is below minimum size.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage asks the user to enlarge the terminal.
func RenderMinSizeMessage(width, height int) string {
	return lipgloss.NewStyle().
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Width(width).
		Height(height).
		Render(fmt.Sprintf("Terminal too small (%dx%d)\n\nSkillPath needs at least %dx%d.",
			width, height, MinWidth, MinHeight))
}

// RenderHeader shows the app name, the active screen title and lifetime XP
// with the learner's rank.
func RenderHeader(title string, xp int, rank string, width int) string {
	left := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("  SkillPath")
	center := lipgloss.NewStyle().Foreground(theme.Text).Render(title)

	right := lipgloss.NewStyle().Foreground(theme.Accent).Render(fmt.Sprintf("✦ %d XP", xp))
	if rank != "" {
		right += lipgloss.NewStyle().Foreground(theme.TextDim).Render("   " + rank)
	}

	// Center the title in the bar, then push the XP to the right edge.
	inner := max(0, width-4)
	lw, cw, rw := lipgloss.Width(left), lipgloss.Width(center), lipgloss.Width(right)
	gapL := max(1, (inner-cw)/2-lw)
	gapR := max(1, inner-lw-gapL-cw-rw)

	return bar(left+strings.Repeat(" ", gapL)+center+strings.Repeat(" ", gapR)+right, width)
}

// RenderFooter lists the key hints for the active screen.
func RenderFooter(hints []KeyHint, width int) string {
	keyStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = keyStyle.Render(h.Key) + " " + descStyle.Render(h.Description)
	}
	return bar("  "+strings.Join(parts, "   "), width)
}

// RenderFrame stacks header, content and footer, padding the content to
// fill whatever height the bars leave.
func RenderFrame(header, content, footer string, width, height int) string {
	body := lipgloss.NewStyle().
		Width(width).
		Height(max(0, height-lipgloss.Height(header)-lipgloss.Height(footer))).
		Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func bar(content string, width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Render(content)
}
