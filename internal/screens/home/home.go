package home

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/skillpath/internal/catalog"
	"github.com/abhisek/skillpath/internal/rewards"
	"github.com/abhisek/skillpath/internal/router"
	"github.com/abhisek/skillpath/internal/screen"
	rewardsscreen "github.com/abhisek/skillpath/internal/screens/rewards"
	"github.com/abhisek/skillpath/internal/screens/skillmap"
	"github.com/abhisek/skillpath/internal/ui/components"
	"github.com/abhisek/skillpath/internal/ui/layout"
	"github.com/abhisek/skillpath/internal/unlock"
)

const (
	itemContinue = iota
	itemSkills
	itemRewards
	itemExit
)

// stats is the dashboard summary shown above the menu.
type stats struct {
	xp             int
	rank           string
	skills         int
	masteredSkills int
}

// HomeScreen is the main home screen of the application.
type HomeScreen struct {
	deps      skillmap.Deps
	rewards   *rewards.Service
	menu      components.Menu
	labels    []string
	stats     stats
	next      string
	nextSkill *catalog.SkillMaster
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(deps skillmap.Deps, svc *rewards.Service) *HomeScreen {
	h := &HomeScreen{
		deps:    deps,
		rewards: svc,
		labels:  []string{"CONTINUE", "BROWSE SKILLS", "REWARDS", "EXIT"},
	}
	h.refresh()
	return h
}

// refresh recomputes the dashboard and the menu from current progress.
func (h *HomeScreen) refresh() {
	ctx := context.Background()

	h.stats = stats{rank: rewards.RankNovice.DisplayName()}
	if h.rewards != nil {
		if totals, err := h.rewards.Totals(ctx); err == nil {
			h.stats.xp = totals.TotalXP
			h.stats.rank = rewards.RankForXP(totals.TotalXP).DisplayName()
		}
	}

	h.next, h.nextSkill = "", nil
	skills := h.deps.Catalog.Skills("")
	h.stats.skills = len(skills)
	for i := range skills {
		steps := catalog.FlattenSteps(skills[i])
		done := h.deps.Progress.Get(ctx, skills[i].ID).CompletedSet()
		sum := unlock.Summarize(unlock.Resolve(steps, done))
		if sum.Total > 0 && sum.Completed == sum.Total {
			h.stats.masteredSkills++
			continue
		}
		if h.nextSkill == nil {
			if st, ok := unlock.NextAvailable(steps, done); ok {
				h.nextSkill = &skills[i]
				h.next = skills[i].Title + " · " + st.Title
			}
		}
	}

	selected := h.menu.Selected
	items := []components.MenuItem{
		{Label: h.labels[itemContinue], Disabled: h.nextSkill == nil, Action: h.openPath},
		{Label: h.labels[itemSkills], Action: func() tea.Cmd {
			next := skillmap.New(h.deps)
			return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
		}},
		{Label: h.labels[itemRewards], Disabled: h.rewards == nil, Action: func() tea.Cmd {
			next := rewardsscreen.New(h.rewards, h.deps.Catalog)
			return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
		}},
		{Label: h.labels[itemExit], Action: func() tea.Cmd { return tea.Quit }},
	}
	h.menu = components.NewMenu(items)
	if selected > 0 && selected < len(items) && !items[selected].Disabled {
		h.menu.Selected = selected
	}
}

func (h *HomeScreen) openPath() tea.Cmd {
	if h.nextSkill == nil {
		return nil
	}
	next := skillmap.NewPath(h.deps, *h.nextSkill)
	return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if _, ok := msg.(router.ResumedMsg); ok {
		h.refresh()
		return h, nil
	}
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	compact := layout.IsCompact(width, height)

	cw := components.ContentWidth(width)

	disabled := make(map[int]bool)
	for i, item := range h.menu.Items {
		disabled[i] = item.Disabled
	}

	sections := []string{
		renderTitle(cw, compact),
		renderStatsBar(h.stats, cw, compact),
		renderNext(h.next, cw),
	}
	if compact {
		sections = append(sections, renderMenuCompact(h.labels, h.menu.Selected, cw, disabled))
	} else {
		sections = append(sections, renderMenu(h.labels, h.menu.Selected, cw, disabled))
	}

	return renderFrame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
