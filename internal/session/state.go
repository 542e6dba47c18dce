package session

// DefaultLives is the number of lives a session starts with.
const DefaultLives = 5

// Phase represents the current phase of the session.
type Phase int

const (
	PhaseIdle      Phase = iota // Constructed, Start not yet called
	PhaseTeaching               // Showing slide SlideIndex
	PhaseQuestion               // Waiting for an answer to QuestionIndex
	PhaseFeedback               // Showing the outcome for QuestionIndex
	PhaseComplete               // Step persisted as completed
	PhaseCancelled              // Discarded by the learner
)

// String returns the phase name used in logs and errors.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseTeaching:
		return "teaching"
	case PhaseQuestion:
		return "quiz_question"
	case PhaseFeedback:
		return "quiz_feedback"
	case PhaseComplete:
		return "complete"
	case PhaseCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transitions are possible.
func (p Phase) Terminal() bool {
	return p == PhaseComplete || p == PhaseCancelled
}

// Outcome is the result of checking an answer.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeCorrect
	OutcomeWrong
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCorrect:
		return "correct"
	case OutcomeWrong:
		return "wrong"
	default:
		return "none"
	}
}

// State is a point-in-time copy of the runtime, safe to hand to renderers.
type State struct {
	Phase Phase

	// SlideIndex is meaningful in PhaseTeaching.
	SlideIndex int

	// QuestionIndex is meaningful in PhaseQuestion and PhaseFeedback.
	QuestionIndex int

	// Selection is the pending option; empty when HasSelection is false.
	Selection    string
	HasSelection bool

	// Outcome is set in PhaseFeedback only.
	Outcome Outcome

	Lives    int
	Attempts int
	Mistakes int

	// Percent is the progress indicator in [0, 100].
	Percent float64
}
