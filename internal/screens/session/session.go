package session

import (
	"context"
	"errors"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/skillpath/internal/catalog"
	"github.com/abhisek/skillpath/internal/event"
	"github.com/abhisek/skillpath/internal/logger"
	"github.com/abhisek/skillpath/internal/router"
	"github.com/abhisek/skillpath/internal/screen"
	sess "github.com/abhisek/skillpath/internal/session"
	"github.com/abhisek/skillpath/internal/ui/components"
	"github.com/abhisek/skillpath/internal/ui/layout"
)

// SessionScreen plays one step: teaching slides, the quiz, then the
// completion banner.
type SessionScreen struct {
	skill catalog.SkillMaster
	rt    *sess.Runtime
	log   *logger.Logger

	// subID is the completion subscription, empty once released.
	subID string

	choice   components.MultiChoice
	question int // index the choice component was built for, -1 if none

	showingQuitConfirm bool
	retryable          bool
	errMsg             string
	done               *sess.CompletedEvent
}

var _ screen.Screen = (*SessionScreen)(nil)
var _ screen.KeyHintProvider = (*SessionScreen)(nil)
var _ screen.EscapeCapturer = (*SessionScreen)(nil)

// New creates a screen driving rt. The runtime must not have been started.
// log may be nil.
func New(skill catalog.SkillMaster, rt *sess.Runtime, log *logger.Logger) *SessionScreen {
	s := &SessionScreen{
		skill:    skill,
		rt:       rt,
		log:      logger.OrNop(log),
		question: -1,
	}
	// The bus may be shared, so only this runtime's completion counts.
	s.subID = rt.Subscribe(sess.EventCompleted, func(e event.Event) {
		if done, ok := e.(sess.CompletedEvent); ok && done.SessionID == rt.ID() {
			s.done = &done
		}
	})
	return s
}

// release drops the completion subscription once the runtime is terminal.
func (s *SessionScreen) release() {
	if s.subID == "" || !s.rt.Phase().Terminal() {
		return
	}
	s.rt.Unsubscribe(s.subID)
	s.subID = ""
}

func (s *SessionScreen) Init() tea.Cmd {
	return func() tea.Msg { return startMsg{} }
}

func (s *SessionScreen) Title() string {
	return s.skill.Title
}

// CapturesEscape keeps Esc on this screen until the session is over so an
// unfinished step is abandoned only after confirmation.
func (s *SessionScreen) CapturesEscape() bool {
	return !s.rt.Phase().Terminal()
}

func (s *SessionScreen) KeyHints() []layout.KeyHint {
	if s.showingQuitConfirm {
		return []layout.KeyHint{
			{Key: "Y", Description: "Leave step"},
			{Key: "N", Description: "Keep going"},
		}
	}
	if s.retryable {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Retry"},
			{Key: "Esc", Description: "Quit"},
		}
	}
	switch s.rt.Phase() {
	case sess.PhaseTeaching:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Next"},
			{Key: "Esc", Description: "Quit"},
		}
	case sess.PhaseQuestion:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Choose"},
			{Key: "1-9", Description: "Jump"},
			{Key: "Enter", Description: "Check"},
			{Key: "Esc", Description: "Quit"},
		}
	case sess.PhaseFeedback:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Continue"},
		}
	case sess.PhaseComplete:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Back to path"},
		}
	}
	return nil
}

func (s *SessionScreen) View(width, height int) string {
	if s.showingQuitConfirm {
		return renderQuitConfirm(width, height)
	}
	if s.errMsg != "" {
		return renderError(width, height, s.errMsg, s.retryable)
	}
	switch s.rt.Phase() {
	case sess.PhaseTeaching:
		return s.renderSlide(width, height)
	case sess.PhaseQuestion, sess.PhaseFeedback:
		return s.renderQuiz(width, height)
	case sess.PhaseComplete:
		return s.renderComplete(width, height)
	}
	return renderLoading(width, height)
}

func (s *SessionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case startMsg:
		return s.advance()
	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *SessionScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.showingQuitConfirm {
		switch key {
		case "y", "Y":
			s.showingQuitConfirm = false
			if err := s.rt.Cancel(); err != nil {
				s.log.Warn("cancel session failed", "session_id", s.rt.ID(), "error", err)
			}
			s.release()
			return s, popCmd
		case "n", "N", "esc":
			s.showingQuitConfirm = false
		}
		return s, nil
	}

	if key == "esc" {
		if s.rt.Phase().Terminal() {
			return s, popCmd
		}
		s.showingQuitConfirm = true
		return s, nil
	}

	switch s.rt.Phase() {
	case sess.PhaseQuestion:
		if key == "enter" {
			return s.advance()
		}
		s.choice, _ = s.choice.Update(msg)
		return s, nil
	case sess.PhaseTeaching, sess.PhaseFeedback, sess.PhaseComplete, sess.PhaseIdle:
		switch key {
		case "enter", " ", "space", "right", "l":
			return s.advance()
		}
	}
	return s, nil
}

// advance performs the forward action of the current phase. A failed
// completion leaves the runtime where it was, so the same action retries it.
func (s *SessionScreen) advance() (screen.Screen, tea.Cmd) {
	ctx := context.Background()

	var err error
	switch s.rt.Phase() {
	case sess.PhaseIdle:
		err = s.rt.Start(ctx)
	case sess.PhaseTeaching:
		err = s.rt.AdvanceSlide(ctx)
	case sess.PhaseQuestion:
		err = s.check()
	case sess.PhaseFeedback:
		err = s.rt.Continue(ctx)
	case sess.PhaseComplete, sess.PhaseCancelled:
		return s, popCmd
	}

	s.errMsg, s.retryable = "", false
	if err != nil {
		var cerr *sess.CompletionError
		s.retryable = errors.As(err, &cerr)
		s.errMsg = err.Error()
	}
	s.release()
	s.syncChoice()
	return s, nil
}

func (s *SessionScreen) check() error {
	if err := s.rt.SelectIndex(s.choice.Cursor); err != nil {
		return err
	}
	if err := s.rt.CheckAnswer(); err != nil {
		return err
	}
	q, _ := s.rt.CurrentQuestion()
	s.choice.Reveal(s.choice.Cursor, q.CorrectIndex())
	return nil
}

// syncChoice rebuilds the option list whenever a question is (re)presented.
func (s *SessionScreen) syncChoice() {
	if s.rt.Phase() != sess.PhaseQuestion {
		return
	}
	st := s.rt.State()
	if st.QuestionIndex == s.question && !s.choice.Revealed() {
		return
	}
	q, _ := s.rt.CurrentQuestion()
	s.choice = components.NewMultiChoice(q.Question, q.Options)
	s.question = st.QuestionIndex
}

func popCmd() tea.Msg {
	return router.PopScreenMsg{}
}
