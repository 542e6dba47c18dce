package rewards

import (
	"context"
	"fmt"
	"sort"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/skillpath/internal/catalog"
	"github.com/abhisek/skillpath/internal/rewards"
	"github.com/abhisek/skillpath/internal/router"
	"github.com/abhisek/skillpath/internal/screen"
	"github.com/abhisek/skillpath/internal/store"
	"github.com/abhisek/skillpath/internal/ui/components"
	"github.com/abhisek/skillpath/internal/ui/layout"
	"github.com/abhisek/skillpath/internal/ui/theme"
)

// recentLimit caps the award log shown on screen.
const recentLimit = 50

type rewardsLoadedMsg struct {
	Totals store.RewardTotals
	Recent []store.RewardEventRecord
	Err    error
}

// RewardsScreen displays lifetime XP, rank and the award log.
type RewardsScreen struct {
	service      *rewards.Service
	catalog      *catalog.Index
	totals       store.RewardTotals
	recent       []store.RewardEventRecord
	scrollOffset int
	loaded       bool
	errMsg       string
}

var _ screen.Screen = (*RewardsScreen)(nil)
var _ screen.KeyHintProvider = (*RewardsScreen)(nil)

// New creates a new RewardsScreen. The catalog resolves skill titles and
// may be nil.
func New(service *rewards.Service, idx *catalog.Index) *RewardsScreen {
	return &RewardsScreen{service: service, catalog: idx}
}

func (s *RewardsScreen) Init() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		totals, err := s.service.Totals(ctx)
		if err != nil {
			return rewardsLoadedMsg{Err: err}
		}
		recent, err := s.service.Recent(ctx, recentLimit)
		return rewardsLoadedMsg{Totals: totals, Recent: recent, Err: err}
	}
}

func (s *RewardsScreen) Title() string {
	return "Rewards"
}

func (s *RewardsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *RewardsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case rewardsLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.totals = msg.Totals
			s.recent = msg.Recent
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.scrollOffset > 0 {
				s.scrollOffset--
			}
		case "down", "j":
			if s.scrollOffset < len(s.recent)-1 {
				s.scrollOffset++
			}
		}
	}
	return s, nil
}

func (s *RewardsScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading rewards...")
	}

	cw := components.ContentWidth(width)
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.renderRank(cw)))
	b.WriteString("\n\n")

	if len(s.totals.BySkill) > 0 {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.renderBySkill(cw)))
		b.WriteString("\n\n")
	}

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", cw))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	if len(s.recent) == 0 {
		b.WriteString(lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("No XP earned yet. Complete a step to get started"))
		return b.String()
	}

	maxVisible := max(3, height-lipgloss.Height(b.String())-2)
	start := s.scrollOffset
	end := min(start+maxVisible, len(s.recent))

	for i := start; i < end; i++ {
		rec := s.recent[i]
		line := fmt.Sprintf("  %-28s %-12s %s",
			s.skillTitle(rec.SkillID),
			fmt.Sprintf("+%d XP", rec.XP),
			rec.Timestamp.Format("Jan 02, 2006"))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Text).Render(line)))
		b.WriteString("\n")
	}

	if end < len(s.recent) {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render(fmt.Sprintf("... %d more", len(s.recent)-end)))
	}

	return b.String()
}

// renderRank renders the XP total and the distance to the next rank.
func (s *RewardsScreen) renderRank(cw int) string {
	xp := s.totals.TotalXP
	rank := rewards.RankForXP(xp)

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).
		Render(fmt.Sprintf("✦ %d XP", xp)))
	b.WriteString("   ")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(rank.DisplayName()))
	b.WriteString("\n\n")

	if next, ok := rewards.NextRank(rank); ok {
		span := next.Threshold() - rank.Threshold()
		percent := 100 * float64(xp-rank.Threshold()) / float64(span)
		label := fmt.Sprintf("%d XP to %s", next.Threshold()-xp, next.DisplayName())
		b.WriteString(components.NewProgressBar("", percent, false, cw-4).View())
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(label))
	} else {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render("Top rank reached"))
	}
	return components.Card(b.String(), cw, true)
}

// renderBySkill lists lifetime XP per skill, highest first.
func (s *RewardsScreen) renderBySkill(cw int) string {
	ids := make([]string, 0, len(s.totals.BySkill))
	for id := range s.totals.BySkill {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, b := s.totals.BySkill[ids[i]], s.totals.BySkill[ids[j]]
		if a != b {
			return a > b
		}
		return ids[i] < ids[j]
	})

	var lines []string
	for _, id := range ids {
		lines = append(lines, fmt.Sprintf("%-30s %6d XP", s.skillTitle(id), s.totals.BySkill[id]))
	}
	return lipgloss.NewStyle().Width(cw).Foreground(theme.Text).Render(strings.Join(lines, "\n"))
}

func (s *RewardsScreen) skillTitle(id string) string {
	if s.catalog != nil {
		if sk, ok := s.catalog.SkillByID(id); ok {
			return sk.Title
		}
	}
	return id
}
