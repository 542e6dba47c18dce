package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/skillpath/internal/ui/theme"
)

// MultiChoice is a multiple-choice selector. It only tracks the cursor and
// renders; grading belongs to the caller, which reveals the result with
// Reveal.
type MultiChoice struct {
	Question string
	Options  []string
	Cursor   int

	revealed bool
	chosen   int
	correct  int
}

// NewMultiChoice creates a new multiple-choice component.
func NewMultiChoice(question string, options []string) MultiChoice {
	return MultiChoice{
		Question: question,
		Options:  options,
		chosen:   -1,
		correct:  -1,
	}
}

// Update handles arrow and number-key navigation. Number keys 1-9 jump to
// the matching option.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.revealed {
		return m, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.Options)-1 {
			m.Cursor++
		}
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			if i := int(key[0] - '1'); i < len(m.Options) {
				m.Cursor = i
			}
		}
	}
	return m, nil
}

// Reveal marks the chosen and correct options for feedback rendering.
func (m *MultiChoice) Reveal(chosen, correct int) {
	m.revealed = true
	m.chosen = chosen
	m.correct = correct
}

// Reset clears a reveal and moves the cursor back to the first option.
func (m *MultiChoice) Reset() {
	m.revealed = false
	m.chosen = -1
	m.correct = -1
	m.Cursor = 0
}

// Revealed reports whether feedback is being shown.
func (m MultiChoice) Revealed() bool {
	return m.revealed
}

// View renders the question and its options.
func (m MultiChoice) View() string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(m.Question))
	b.WriteString("\n\n")

	for i, opt := range m.Options {
		prefix := "  "
		if i == m.Cursor && !m.revealed {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%c)  %s", prefix, 'A'+rune(i), opt)

		var style lipgloss.Style
		switch {
		case m.revealed && i == m.correct:
			style = theme.Correct
		case m.revealed && i == m.chosen:
			style = theme.Incorrect
		case m.revealed:
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		case i == m.Cursor:
			style = theme.Selected
		default:
			style = theme.Unselected
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}
