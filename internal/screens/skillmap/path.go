package skillmap

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/skillpath/internal/catalog"
	"github.com/abhisek/skillpath/internal/router"
	"github.com/abhisek/skillpath/internal/screen"
	sessionscreen "github.com/abhisek/skillpath/internal/screens/session"
	sess "github.com/abhisek/skillpath/internal/session"
	"github.com/abhisek/skillpath/internal/ui/components"
	"github.com/abhisek/skillpath/internal/ui/layout"
	"github.com/abhisek/skillpath/internal/ui/theme"
	"github.com/abhisek/skillpath/internal/unlock"
)

// PathScreen shows one skill's steps grouped by unit, with their unlock
// status, and opens sessions for playable steps.
type PathScreen struct {
	deps   Deps
	skill  catalog.SkillMaster
	steps  []unlock.StepStatus
	cursor int
	notice string
}

var _ screen.Screen = (*PathScreen)(nil)
var _ screen.KeyHintProvider = (*PathScreen)(nil)

// NewPath creates a path screen for skill. The cursor starts on the next
// available step.
func NewPath(deps Deps, skill catalog.SkillMaster) *PathScreen {
	p := &PathScreen{deps: deps, skill: skill}
	p.refresh()
	for i, st := range p.steps {
		if st.Status == unlock.StatusAvailable {
			p.cursor = i
			break
		}
	}
	return p
}

// refresh recomputes every status from the progress store.
func (p *PathScreen) refresh() {
	done := p.deps.Progress.Get(context.Background(), p.skill.ID).CompletedSet()
	p.steps = unlock.ResolvePath(p.skill, done)
	if p.cursor >= len(p.steps) {
		p.cursor = max(0, len(p.steps)-1)
	}
}

func (p *PathScreen) Init() tea.Cmd { return nil }
func (p *PathScreen) Title() string { return p.skill.Title }

func (p *PathScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Play step"},
		{Key: "Esc", Description: "Back"},
	}
}

func (p *PathScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case router.ResumedMsg:
		p.notice = ""
		p.refresh()
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if p.cursor > 0 {
				p.cursor--
			}
			p.notice = ""
		case "down", "j":
			if p.cursor < len(p.steps)-1 {
				p.cursor++
			}
			p.notice = ""
		case "enter":
			return p, p.open()
		}
	}
	return p, nil
}

// open starts a session for the step under the cursor.
func (p *PathScreen) open() tea.Cmd {
	if len(p.steps) == 0 {
		return nil
	}
	st := p.steps[p.cursor]
	if !st.Status.Playable() {
		p.notice = "Locked"
		if prev, ok := p.deps.Catalog.Predecessor(p.skill.ID, st.Step.ID); ok {
			p.notice = fmt.Sprintf("Locked: complete %q first", prev.Title)
		}
		return nil
	}

	rt, err := sess.New(p.skill.ID, st.Step, p.deps.Progress,
		sess.WithBus(p.deps.Bus),
		sess.WithLogger(p.deps.Log),
	)
	if err != nil {
		if errors.Is(err, sess.ErrUnsupportedQuestion) {
			p.notice = "This step uses a question format the terminal cannot play yet"
		} else {
			p.notice = err.Error()
		}
		return nil
	}

	next := sessionscreen.New(p.skill, rt, p.deps.Log)
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: next}
	}
}

func (p *PathScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	var b strings.Builder
	b.WriteString("\n")
	if p.skill.Description != "" {
		b.WriteString(lipgloss.NewStyle().
			Width(cw).
			Foreground(theme.Text).
			PaddingLeft(2).
			Render(p.skill.Description))
		b.WriteString("\n\n")
	}

	statuses := make(map[string]unlock.Status, len(p.steps))
	for _, st := range p.steps {
		statuses[st.Step.ID] = st.Status
	}
	sum := unlock.Summarize(statuses)
	percent := 0.0
	if sum.Total > 0 {
		percent = 100 * float64(sum.Completed) / float64(sum.Total)
	}
	bar := components.NewProgressBar(fmt.Sprintf("  %d/%d mastered", sum.Completed, sum.Total), percent, true, cw)
	b.WriteString(bar.View())
	b.WriteString("\n")

	unitTitles := make(map[string]string, len(p.skill.Units))
	for _, u := range p.skill.Units {
		unitTitles[u.ID] = u.Title
	}

	lastUnit := ""
	for i, st := range p.steps {
		if st.UnitID != lastUnit {
			lastUnit = st.UnitID
			b.WriteString(lipgloss.NewStyle().
				Foreground(theme.Secondary).
				Bold(true).
				Padding(1, 0, 0, 2).
				Render(strings.ToUpper(unitTitles[st.UnitID])))
			b.WriteString("\n")
		}
		b.WriteString(renderStepRow(st, i == p.cursor, cw))
		b.WriteString("\n")
	}

	if p.notice != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).PaddingLeft(2).Render(p.notice))
		b.WriteString("\n")
	} else if len(p.steps) > 0 {
		if teaser := p.steps[p.cursor].Step.Teaser; teaser != "" {
			b.WriteString("\n")
			b.WriteString(dimStyle.Italic(true).PaddingLeft(2).Width(cw).Render(teaser))
			b.WriteString("\n")
		}
	}

	return lipgloss.Place(width, height, lipgloss.Left, lipgloss.Top, b.String())
}

func renderStepRow(st unlock.StepStatus, selected bool, cw int) string {
	var style lipgloss.Style
	switch {
	case selected:
		style = theme.Selected
	case st.Status == unlock.StatusCompleted:
		style = theme.Completed
	case st.Status == unlock.StatusAvailable:
		style = theme.Available
	default:
		style = theme.Locked
	}

	cursor := "  "
	if selected {
		cursor = "▸ "
	}

	xp := ""
	if st.Step.XPReward > 0 {
		xp = fmt.Sprintf("%d XP", st.Step.XPReward)
	}
	titleWidth := max(10, cw-24)
	title := st.Step.Title
	if len([]rune(title)) > titleWidth {
		title = string([]rune(title)[:titleWidth-1]) + "…"
	}

	return fmt.Sprintf("  %s%s %s %s",
		cursor,
		st.Status.Icon(),
		style.Render(fmt.Sprintf("%-*s", titleWidth, title)),
		lipgloss.NewStyle().Foreground(theme.Accent).Render(fmt.Sprintf("%7s", xp)),
	)
}
