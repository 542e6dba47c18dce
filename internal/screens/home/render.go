package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/skillpath/internal/ui/theme"
)

const titleFull = `╔═╗╦╔═╦╦  ╦  ╔═╗╔═╗╔╦╗╦ ╦
╚═╗╠╩╗║║  ║  ╠═╝╠═╣ ║ ╠═╣
╚═╝╩ ╩╩╩═╝╩═╝╩  ╩ ╩ ╩ ╩ ╩`

const titleCompact = "S · K · I · L · L · P · A · T · H"

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 24

// renderTitle returns the styled title block or compact fallback.
func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	text := titleFull
	if compact {
		text = titleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(text))
}

// renderStatsBar renders XP, rank and step counts in a bordered box.
func renderStatsBar(st stats, cw int, compact bool) string {
	xpStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	rankStyle := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	doneStyle := lipgloss.NewStyle().Foreground(theme.Success).Bold(true)

	var line string
	if compact {
		line = fmt.Sprintf("%s %s %s",
			xpStyle.Render(fmt.Sprintf("✦%d", st.xp)),
			rankStyle.Render(st.rank),
			doneStyle.Render(fmt.Sprintf("★%d/%d", st.masteredSkills, st.skills)),
		)
	} else {
		line = fmt.Sprintf("%s  %s  %s",
			xpStyle.Render(fmt.Sprintf("✦ %d XP", st.xp)),
			rankStyle.Render(strings.ToUpper(st.rank)),
			doneStyle.Render(fmt.Sprintf("★ %d/%d SKILLS MASTERED", st.masteredSkills, st.skills)),
		)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(line)
}

// renderNext renders the suggested next step, if any.
func renderNext(next string, cw int) string {
	if next == "" {
		return lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Width(cw).
			Align(lipgloss.Center).
			Render("Every step is mastered. Nice work!")
	}
	return lipgloss.NewStyle().
		Foreground(theme.Text).
		Width(cw).
		Align(lipgloss.Center).
		Render("Up next: " + lipgloss.NewStyle().Foreground(theme.Secondary).Render(next))
}

// renderMenu renders each menu item as a fixed-width button.
func renderMenu(items []string, selected int, cw int, disabled map[int]bool) string {
	base := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)

	selectedBtn := base.
		Bold(true).
		Foreground(theme.Text).
		Background(theme.Primary).
		BorderForeground(theme.Primary)
	normalBtn := base.
		Foreground(theme.Text).
		BorderForeground(theme.Border)
	disabledBtn := base.
		Foreground(theme.TextDim).
		BorderForeground(theme.Border)

	var buttons []string
	for i, label := range items {
		switch {
		case disabled[i]:
			buttons = append(buttons, disabledBtn.Render(label))
		case i == selected:
			buttons = append(buttons, selectedBtn.Render("▸ "+label))
		default:
			buttons = append(buttons, normalBtn.Render(label))
		}
	}

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(buttons, "\n"))
}

// renderMenuCompact renders menu items as plain lines for short terminals
// where bordered buttons would overflow.
func renderMenuCompact(items []string, selected int, cw int, disabled map[int]bool) string {
	var lines []string
	for i, label := range items {
		var line string
		switch {
		case disabled[i]:
			line = lipgloss.NewStyle().Foreground(theme.TextDim).Render("   " + label)
		case i == selected:
			line = lipgloss.NewStyle().
				Foreground(theme.Text).
				Background(theme.Primary).
				Bold(true).
				Render(" ▸ " + label + " ")
		default:
			line = lipgloss.NewStyle().Foreground(theme.Text).Render("   " + label)
		}
		lines = append(lines, line)
	}

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(lines, "\n"))
}

// renderFrame wraps content in a double-border frame, centered vertically
// and horizontally within the given dimensions.
func renderFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width - 2).
		Height(height - 2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}
