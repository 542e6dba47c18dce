package session

import "github.com/abhisek/skillpath/internal/event"

// Event types published by the runtime.
const (
	EventStarted           = "session.started"
	EventSlideAdvanced     = "session.slide_advanced"
	EventQuestionPresented = "session.question_presented"
	EventAnswerChecked     = "session.answer_checked"
	EventCompleted         = "session.completed"
	EventCancelled         = "session.cancelled"
)

// Ref identifies the session an event belongs to.
type Ref struct {
	SessionID string
	SkillID   string
	StepID    string
}

// StartedEvent is emitted when Start enters the first phase.
type StartedEvent struct {
	event.Base
	Ref
	Slides    int
	Questions int
}

// SlideAdvancedEvent is emitted when the learner moves to another slide.
type SlideAdvancedEvent struct {
	event.Base
	Ref
	SlideIndex int
	Percent    float64
}

// QuestionPresentedEvent is emitted whenever a question is (re)shown,
// including retries after a wrong answer.
type QuestionPresentedEvent struct {
	event.Base
	Ref
	QuestionIndex int
	Retry         bool
	Percent       float64
}

// AnswerCheckedEvent carries quiz feedback.
type AnswerCheckedEvent struct {
	event.Base
	Ref
	QuestionIndex int
	Selection     string
	Outcome       Outcome
	CorrectAnswer string
	Explanation   string
	Lives         int
}

// CompletedEvent is emitted after the step has been persisted. XPReward is
// the step's declared reward. Replay is true when the step had already been
// completed before this session.
type CompletedEvent struct {
	event.Base
	Ref
	XPReward int
	Replay   bool
}

// CancelledEvent is emitted when the learner abandons the session.
type CancelledEvent struct {
	event.Base
	Ref
	Phase Phase
}
