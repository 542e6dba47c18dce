package skillmap

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/skillpath/internal/catalog"
	"github.com/abhisek/skillpath/internal/event"
	"github.com/abhisek/skillpath/internal/logger"
	"github.com/abhisek/skillpath/internal/progress"
	"github.com/abhisek/skillpath/internal/router"
	"github.com/abhisek/skillpath/internal/screen"
	"github.com/abhisek/skillpath/internal/ui/layout"
	"github.com/abhisek/skillpath/internal/ui/theme"
	"github.com/abhisek/skillpath/internal/unlock"
)

// Deps are the services shared by the skill map and path screens.
type Deps struct {
	Catalog  *catalog.Index
	Progress progress.Store
	Bus      *event.Bus
	Log      *logger.Logger
}

type rowKind int

const (
	rowCategoryHeader rowKind = iota
	rowSkill
)

type row struct {
	kind     rowKind
	category catalog.Category
	skill    *catalog.SkillMaster
	summary  unlock.Summary
}

// SkillMapScreen lists the catalog's skills grouped by category.
type SkillMapScreen struct {
	deps         Deps
	rows         []row
	cursor       int
	scrollOffset int
}

var _ screen.Screen = (*SkillMapScreen)(nil)
var _ screen.KeyHintProvider = (*SkillMapScreen)(nil)

// New creates a new SkillMapScreen.
func New(deps Deps) *SkillMapScreen {
	s := &SkillMapScreen{deps: deps}
	s.rows = s.buildRows()

	// Set cursor to first skill row
	for i, r := range s.rows {
		if r.kind == rowSkill {
			s.cursor = i
			break
		}
	}
	return s
}

func (s *SkillMapScreen) buildRows() []row {
	ctx := context.Background()
	skills := s.deps.Catalog.Skills("")

	var rows []row
	for _, cat := range catalog.AllCategories() {
		var group []row
		for i := range skills {
			if skills[i].Category != cat {
				continue
			}
			sk := &skills[i]
			done := s.deps.Progress.Get(ctx, sk.ID).CompletedSet()
			group = append(group, row{
				kind:     rowSkill,
				category: cat,
				skill:    sk,
				summary:  unlock.Summarize(unlock.Resolve(catalog.FlattenSteps(*sk), done)),
			})
		}
		if len(group) == 0 {
			continue
		}
		rows = append(rows, row{kind: rowCategoryHeader, category: cat})
		rows = append(rows, group...)
	}
	return rows
}

func (s *SkillMapScreen) Init() tea.Cmd {
	return nil
}

func (s *SkillMapScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case router.ResumedMsg:
		s.rows = s.buildRows()
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			s.moveCursor(-1)
		case "down", "j":
			s.moveCursor(1)
		case "enter":
			return s, s.selectSkill()
		case "q":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *SkillMapScreen) View(width, height int) string {
	if len(s.rows) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\nThe catalog has no skills yet")
	}

	s.adjustScroll(height)

	var lines []string
	visible := 0
	for i, r := range s.rows {
		if i < s.scrollOffset {
			continue
		}
		if visible >= height {
			break
		}

		switch r.kind {
		case rowCategoryHeader:
			lines = append(lines, renderCategoryHeader(r.category, width))
		case rowSkill:
			lines = append(lines, renderSkillRow(r, i == s.cursor, width))
		}
		visible++
	}

	return strings.Join(lines, "\n")
}

func (s *SkillMapScreen) Title() string {
	return "Skills"
}

// KeyHints returns the key binding hints for the footer.
func (s *SkillMapScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Open path"},
		{Key: "Esc", Description: "Back"},
	}
}

// moveCursor moves the cursor by delta, skipping category headers.
func (s *SkillMapScreen) moveCursor(delta int) {
	next := s.cursor + delta
	for next >= 0 && next < len(s.rows) {
		if s.rows[next].kind == rowSkill {
			s.cursor = next
			return
		}
		next += delta
	}
}

// adjustScroll ensures the cursor is visible within the viewport.
func (s *SkillMapScreen) adjustScroll(height int) {
	if height <= 0 {
		return
	}
	headerRow := s.cursor
	for headerRow > 0 && s.rows[headerRow-1].kind == rowCategoryHeader {
		headerRow--
	}

	if headerRow < s.scrollOffset {
		s.scrollOffset = headerRow
	}
	if s.cursor >= s.scrollOffset+height {
		s.scrollOffset = s.cursor - height + 1
	}
}

// selectSkill opens the path of the skill under the cursor.
func (s *SkillMapScreen) selectSkill() tea.Cmd {
	if s.cursor >= len(s.rows) {
		return nil
	}
	r := s.rows[s.cursor]
	if r.kind != rowSkill || r.skill == nil {
		return nil
	}
	path := NewPath(s.deps, *r.skill)
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: path}
	}
}

func renderCategoryHeader(cat catalog.Category, width int) string {
	return lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Width(width).
		Padding(1, 0, 0, 2).
		Render(strings.ToUpper(cat.DisplayName()))
}

func renderSkillRow(r row, selected bool, width int) string {
	if r.skill == nil {
		return ""
	}

	count := fmt.Sprintf("%d/%d steps", r.summary.Completed, r.summary.Total)
	mastered := r.summary.Total > 0 && r.summary.Completed == r.summary.Total

	countWidth := 12
	nameWidth := max(10, width-8-countWidth)

	name := r.skill.Title
	if len([]rune(name)) > nameWidth {
		name = string([]rune(name)[:nameWidth-1]) + "…"
	}

	var nameStyle, countStyle lipgloss.Style
	switch {
	case selected:
		nameStyle = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
		countStyle = lipgloss.NewStyle().Foreground(theme.Primary)
	case mastered:
		nameStyle = theme.Completed
		countStyle = theme.Completed
	default:
		nameStyle = lipgloss.NewStyle().Foreground(theme.Text)
		countStyle = lipgloss.NewStyle().Foreground(theme.TextDim)
	}

	cursor := "  "
	if selected {
		cursor = "▸ "
	}

	return fmt.Sprintf("  %s%s  %s",
		cursor,
		nameStyle.Render(fmt.Sprintf("%-*s", nameWidth, name)),
		countStyle.Render(fmt.Sprintf("%*s", countWidth, count)),
	)
}
