package session

import (
	"errors"
	"fmt"

	"github.com/abhisek/skillpath/internal/catalog"
)

var (
	// ErrInvalidTransition is returned when an operation is not allowed in
	// the current phase. The state is left untouched.
	ErrInvalidTransition = errors.New("invalid session transition")

	// ErrSessionClosed matches transition errors raised after the session
	// reached a terminal phase.
	ErrSessionClosed = errors.New("session closed")

	// ErrNoSelection is returned by CheckAnswer before an option is selected.
	ErrNoSelection = errors.New("no option selected")

	// ErrUnknownOption is returned when selecting a value that is not one of
	// the question's options.
	ErrUnknownOption = errors.New("unknown option")

	// ErrUnsupportedQuestion is wrapped by UnsupportedQuestionError.
	ErrUnsupportedQuestion = errors.New("unsupported question type")

	// ErrUnanswerableQuestion is returned for questions whose correct answer
	// is not among the options.
	ErrUnanswerableQuestion = errors.New("question cannot be answered")
)

// TransitionError reports an operation attempted in the wrong phase.
type TransitionError struct {
	Op    string
	Phase Phase
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s: not allowed in phase %s", e.Op, e.Phase)
}

func (e *TransitionError) Unwrap() error { return ErrInvalidTransition }

// Is lets errors.Is(err, ErrSessionClosed) match transitions refused
// because the session already ended.
func (e *TransitionError) Is(target error) bool {
	return target == ErrSessionClosed && e.Phase.Terminal()
}

// UnsupportedQuestionError is returned by New for steps containing a
// question type the runtime cannot run.
type UnsupportedQuestionError struct {
	StepID     string
	QuestionID string
	Type       catalog.QuestionType
}

func (e *UnsupportedQuestionError) Error() string {
	return fmt.Sprintf("step %q question %q: %s %q", e.StepID, e.QuestionID, ErrUnsupportedQuestion, e.Type)
}

func (e *UnsupportedQuestionError) Unwrap() error { return ErrUnsupportedQuestion }

// CompletionError reports that the step could not be persisted. The session
// stays in the phase it was in, so the triggering call can be retried.
type CompletionError struct {
	SkillID string
	StepID  string
	Err     error
}

func (e *CompletionError) Error() string {
	return fmt.Sprintf("complete step %q of skill %q: %v", e.StepID, e.SkillID, e.Err)
}

func (e *CompletionError) Unwrap() error { return e.Err }
