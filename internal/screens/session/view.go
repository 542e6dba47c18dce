package session

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/skillpath/internal/catalog"
	sess "github.com/abhisek/skillpath/internal/session"
	"github.com/abhisek/skillpath/internal/ui/components"
	"github.com/abhisek/skillpath/internal/ui/theme"
)

// renderInfoLine renders the step title, lives and progress bar above the body.
func (s *SessionScreen) renderInfoLine(width int) string {
	st := s.rt.State()
	step := s.rt.Step()

	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  %s", step.Title))

	infoRight := renderHearts(st.Lives)

	infoLine := infoLeft
	rightPad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4
	if rightPad > 0 {
		infoLine += strings.Repeat(" ", rightPad) + infoRight
	}

	bar := components.NewProgressBar("", st.Percent, true, min(width-8, 60))

	var b strings.Builder
	b.WriteString(infoLine)
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(0, width-4))))
	b.WriteString("\n\n")
	return b.String()
}

func renderHearts(lives int) string {
	return lipgloss.NewStyle().Foreground(theme.Heart).Render(strings.Repeat("♥", lives)) +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf(" %d", lives))
}

// renderSlide renders the current teaching slide.
func (s *SessionScreen) renderSlide(width, height int) string {
	slide, ok := s.rt.CurrentSlide()
	if !ok {
		return renderLoading(width, height)
	}
	st := s.rt.State()
	cw := components.ContentWidth(width)

	var body strings.Builder
	if slide.Title != "" {
		body.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(slide.Title))
		body.WriteString("\n\n")
	}
	body.WriteString(renderBlock(slide, cw))

	counter := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Slide %d of %d", st.SlideIndex+1, len(s.rt.Step().Slides)))

	var b strings.Builder
	b.WriteString(s.renderInfoLine(width))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, components.Card(body.String(), cw, false)))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, counter))
	return b.String()
}

// renderBlock renders a content block. Media blocks show their URL since the
// terminal cannot display them inline.
func renderBlock(block catalog.ContentBlock, cw int) string {
	text := lipgloss.NewStyle().Width(cw).Foreground(theme.Text)
	if block.Type == catalog.BlockText || block.Type == "" {
		return text.Render(block.Content)
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Render(fmt.Sprintf("[%s] ", block.Type)))
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Underline(true).Render(block.Content))
	if block.Description != "" {
		b.WriteString("\n\n")
		b.WriteString(text.Render(block.Description))
	}
	return b.String()
}

// renderQuiz renders the current question, with feedback once checked.
func (s *SessionScreen) renderQuiz(width, height int) string {
	st := s.rt.State()
	q, ok := s.rt.CurrentQuestion()
	if !ok {
		return renderLoading(width, height)
	}

	var b strings.Builder
	b.WriteString(s.renderInfoLine(width))

	counter := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Question %d of %d", st.QuestionIndex+1, len(s.rt.Step().Questions)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, counter))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.choice.View()))

	if st.Phase == sess.PhaseFeedback {
		b.WriteString("\n")
		b.WriteString(renderFeedback(st.Outcome, q, width))
	}
	return b.String()
}

// renderFeedback renders the outcome banner and explanation.
func renderFeedback(outcome sess.Outcome, q catalog.SkillQuestion, width int) string {
	var b strings.Builder

	if outcome == sess.OutcomeCorrect {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Success).
			Bold(true).
			Render("Correct!"))
	} else {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Bold(true).
			Render("Not quite, try again"))
	}
	b.WriteString("\n\n")

	if q.Explanation != "" {
		exp := lipgloss.NewStyle().
			Width(min(width-8, 70)).
			Foreground(theme.Text).
			Render(q.Explanation)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, exp))
		b.WriteString("\n")
	}
	return b.String()
}

// renderComplete renders the completion banner.
func (s *SessionScreen) renderComplete(width, height int) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.Success).
		Bold(true).
		Render("Step complete!"))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render(s.rt.Step().Title))
	b.WriteString("\n\n")

	switch {
	case s.done != nil && s.done.Replay:
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render("Already mastered, no new XP"))
	case s.done != nil && s.done.XPReward > 0:
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).
			Render(fmt.Sprintf("+%d XP", s.done.XPReward)))
	}
	if st := s.rt.State(); st.Attempts > 0 {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).
			Render(fmt.Sprintf("%d answers, %d mistakes", st.Attempts, st.Mistakes)))
	}

	card := components.Card(b.String(), min(components.ContentWidth(width), 40), true)
	return components.Centered(card, width, height)
}

func renderLoading(width, height int) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("\n\n  Preparing step...")
}

func renderError(width, height int, msg string, retryable bool) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Bold(true).Render("Something went wrong"))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Width(min(width-8, 60)).Foreground(theme.Text).Render(msg))
	if retryable {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render("Your progress was not saved. Press Enter to retry."))
	}
	return components.Centered(b.String(), width, height)
}

func renderQuitConfirm(width, height int) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render("Leave this step?"))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render("Progress inside an unfinished step is not kept."))
	b.WriteString("\n\n")
	b.WriteString(components.NewButton("Y  Leave", false).View())
	b.WriteString("  ")
	b.WriteString(components.NewButton("N  Keep going", true).View())
	return components.Centered(b.String(), width, height)
}
