package app

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/skillpath/internal/catalog"
	"github.com/abhisek/skillpath/internal/event"
	"github.com/abhisek/skillpath/internal/logger"
	"github.com/abhisek/skillpath/internal/progress"
	"github.com/abhisek/skillpath/internal/rewards"
	"github.com/abhisek/skillpath/internal/router"
	"github.com/abhisek/skillpath/internal/screen"
	"github.com/abhisek/skillpath/internal/screens/home"
	"github.com/abhisek/skillpath/internal/screens/skillmap"
	"github.com/abhisek/skillpath/internal/ui/layout"
)

// Options holds the services the TUI runs against.
type Options struct {
	Catalog  *catalog.Index
	Progress progress.Store
	Rewards  *rewards.Service
	Bus      *event.Bus
	Log      *logger.Logger

	// Initial, when set, replaces the home screen as the first screen.
	Initial screen.Screen
}

// Deps returns the screen dependencies derived from o.
func (o Options) Deps() skillmap.Deps {
	return skillmap.Deps{
		Catalog:  o.Catalog,
		Progress: o.Progress,
		Bus:      o.Bus,
		Log:      o.Log,
	}
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router  *router.Router
	rewards *rewards.Service
	width   int
	height  int
}

// newAppModel creates a new AppModel starting at the home screen.
func newAppModel(opts Options) AppModel {
	initial := opts.Initial
	if initial == nil {
		initial = home.New(opts.Deps(), opts.Rewards)
	}
	return AppModel{
		router:  router.New(initial),
		rewards: opts.Rewards,
	}
}

func (m AppModel) Init() tea.Cmd {
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if c, ok := m.router.Active().(screen.EscapeCapturer); ok && c.CapturesEscape() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}
	v.SetContent(m.render())
	return v
}

// render draws the full frame for the current terminal size.
func (m AppModel) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	xp, rank := m.headerStats()
	header := layout.RenderHeader(title, xp, rank, m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := max(0, m.height-headerHeight-footerHeight)

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// headerStats returns lifetime XP and rank for the header.
func (m AppModel) headerStats() (int, string) {
	if m.rewards == nil {
		return 0, ""
	}
	totals, err := m.rewards.Totals(context.Background())
	if err != nil {
		return 0, ""
	}
	return totals.TotalXP, rewards.RankForXP(totals.TotalXP).DisplayName()
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if p, ok := active.(screen.KeyHintProvider); ok {
		if hints := p.KeyHints(); len(hints) > 0 {
			return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
		}
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
