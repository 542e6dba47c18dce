// Package session runs one learner through one step: teaching slides, then
// a multiple-choice quiz with feedback, then completion.
//
// All transitions are synchronous and caller driven. The only side effect is
// on completion, where the step is written to the progress store before the
// session is considered complete; a failed write leaves the session where it
// was so the caller can retry.
package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/abhisek/skillpath/internal/catalog"
	"github.com/abhisek/skillpath/internal/event"
	"github.com/abhisek/skillpath/internal/logger"
	"github.com/abhisek/skillpath/internal/progress"
)

// Runtime is the teach→quiz→feedback→complete state machine for one step.
// It is not safe for concurrent use.
type Runtime struct {
	id      string
	skillID string
	step    catalog.SkillStep
	store   progress.Store
	bus     *event.Bus
	log     *logger.Logger

	phase     Phase
	slide     int
	question  int
	selection string
	selected  bool
	outcome   Outcome

	// Lives are cosmetic: reaching zero never ends or fails the session.
	lives    int
	attempts int
	mistakes int
}

// Option configures a Runtime.
type Option func(*Runtime)

// WithBus publishes events on a shared bus instead of a private one.
func WithBus(b *event.Bus) Option {
	return func(r *Runtime) { r.bus = b }
}

// WithLogger sets the logger.
func WithLogger(l *logger.Logger) Option {
	return func(r *Runtime) { r.log = l }
}

// WithLives overrides DefaultLives.
func WithLives(n int) Option {
	return func(r *Runtime) {
		if n >= 0 {
			r.lives = n
		}
	}
}

// WithID overrides the generated session ID.
func WithID(id string) Option {
	return func(r *Runtime) { r.id = id }
}

// New builds a runtime for step within skillID. It rejects steps with
// question types other than multiple choice, and questions whose correct
// answer is not one of the options.
func New(skillID string, step catalog.SkillStep, store progress.Store, opts ...Option) (*Runtime, error) {
	if skillID == "" {
		return nil, errors.New("new session: skill ID is required")
	}
	if store == nil {
		return nil, errors.New("new session: progress store is required")
	}
	for _, q := range step.Questions {
		if q.Type != catalog.QuestionMultipleChoice {
			return nil, &UnsupportedQuestionError{StepID: step.ID, QuestionID: q.ID, Type: q.Type}
		}
		if q.CorrectIndex() < 0 {
			return nil, fmt.Errorf("step %q question %q: %w", step.ID, q.ID, ErrUnanswerableQuestion)
		}
	}

	r := &Runtime{
		id:      uuid.New().String(),
		skillID: skillID,
		step:    step,
		store:   store,
		lives:   DefaultLives,
		phase:   PhaseIdle,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.bus == nil {
		r.bus = event.NewBus(r.log)
	}
	r.log = logger.OrNop(r.log).With("session_id", r.id, "skill_id", skillID, "step_id", step.ID)
	return r, nil
}

// ID returns the session ID.
func (r *Runtime) ID() string { return r.id }

// SkillID returns the skill the step belongs to.
func (r *Runtime) SkillID() string { return r.skillID }

// Step returns the step being run.
func (r *Runtime) Step() catalog.SkillStep { return r.step }

// Phase returns the current phase.
func (r *Runtime) Phase() Phase { return r.phase }

// Lives returns the remaining lives.
func (r *Runtime) Lives() int { return r.lives }

// Subscribe registers a handler for one event type.
func (r *Runtime) Subscribe(eventType string, h event.Handler) string {
	return r.bus.Subscribe(eventType, h)
}

// SubscribeAll registers a handler for every event the runtime publishes.
func (r *Runtime) SubscribeAll(h event.Handler) string {
	return r.bus.SubscribeAll(h)
}

// Unsubscribe removes a handler registered with Subscribe or SubscribeAll.
func (r *Runtime) Unsubscribe(id string) bool {
	return r.bus.Unsubscribe(id)
}

// Start enters the first phase: the first slide, or the first question when
// there are no slides. A step with neither is completed immediately.
func (r *Runtime) Start(ctx context.Context) error {
	if r.phase != PhaseIdle {
		return r.refuse("start")
	}

	switch {
	case len(r.step.Slides) > 0:
		r.phase = PhaseTeaching
		r.slide = 0
		r.log.Debug("session started", "phase", r.phase)
		r.publishStarted()
		return nil
	case len(r.step.Questions) > 0:
		r.publishStarted()
		r.presentQuestion(0, false)
		return nil
	default:
		r.log.Debug("step has no content, completing on entry")
		added, err := r.persist(ctx)
		if err != nil {
			return err
		}
		r.publishStarted()
		r.finish(added)
		return nil
	}
}

func (r *Runtime) publishStarted() {
	r.bus.Publish(StartedEvent{
		Base:      event.NewBase(EventStarted),
		Ref:       r.ref(),
		Slides:    len(r.step.Slides),
		Questions: len(r.step.Questions),
	})
}

// AdvanceSlide moves to the next slide, or to the first question after the
// last slide. A step without questions completes after its last slide.
func (r *Runtime) AdvanceSlide(ctx context.Context) error {
	if r.phase != PhaseTeaching {
		return r.refuse("advance slide")
	}

	if r.slide < len(r.step.Slides)-1 {
		r.slide++
		r.bus.Publish(SlideAdvancedEvent{
			Base:       event.NewBase(EventSlideAdvanced),
			Ref:        r.ref(),
			SlideIndex: r.slide,
			Percent:    r.percent(),
		})
		return nil
	}

	if len(r.step.Questions) == 0 {
		return r.complete(ctx)
	}
	r.presentQuestion(0, false)
	return nil
}

// SelectOption records opt as the pending answer. It may be called again to
// change the selection before CheckAnswer.
func (r *Runtime) SelectOption(opt string) error {
	if r.phase != PhaseQuestion {
		return r.refuse("select option")
	}
	q := r.step.Questions[r.question]
	for _, o := range q.Options {
		if o == opt {
			r.selection = opt
			r.selected = true
			return nil
		}
	}
	return fmt.Errorf("select option %q: %w", opt, ErrUnknownOption)
}

// SelectIndex selects the option at position i of the current question.
func (r *Runtime) SelectIndex(i int) error {
	if r.phase != PhaseQuestion {
		return r.refuse("select option")
	}
	opts := r.step.Questions[r.question].Options
	if i < 0 || i >= len(opts) {
		return fmt.Errorf("select option %d: %w", i, ErrUnknownOption)
	}
	return r.SelectOption(opts[i])
}

// CheckAnswer grades the pending selection. A wrong answer costs one life,
// floored at zero.
func (r *Runtime) CheckAnswer() error {
	if r.phase != PhaseQuestion {
		return r.refuse("check answer")
	}
	if !r.selected {
		return ErrNoSelection
	}

	q := r.step.Questions[r.question]
	r.attempts++
	if r.selection == q.CorrectAnswer {
		r.outcome = OutcomeCorrect
	} else {
		r.outcome = OutcomeWrong
		r.mistakes++
		r.lives = max(0, r.lives-1)
	}
	r.phase = PhaseFeedback

	r.log.Debug("answer checked", "question_index", r.question, "outcome", r.outcome, "lives", r.lives)
	r.bus.Publish(AnswerCheckedEvent{
		Base:          event.NewBase(EventAnswerChecked),
		Ref:           r.ref(),
		QuestionIndex: r.question,
		Selection:     r.selection,
		Outcome:       r.outcome,
		CorrectAnswer: q.CorrectAnswer,
		Explanation:   q.Explanation,
		Lives:         r.lives,
	})
	return nil
}

// Continue leaves the feedback phase: a correct answer on the last question
// completes the step, a correct answer otherwise moves to the next question,
// and a wrong answer retries the same question with the selection cleared.
func (r *Runtime) Continue(ctx context.Context) error {
	if r.phase != PhaseFeedback {
		return r.refuse("continue")
	}

	switch {
	case r.outcome == OutcomeCorrect && r.question == len(r.step.Questions)-1:
		return r.complete(ctx)
	case r.outcome == OutcomeCorrect:
		r.presentQuestion(r.question+1, false)
	default:
		r.presentQuestion(r.question, true)
	}
	return nil
}

// Cancel discards the session without touching the progress store.
func (r *Runtime) Cancel() error {
	if r.phase.Terminal() {
		return r.refuse("cancel")
	}
	from := r.phase
	r.phase = PhaseCancelled
	r.clearAnswer()
	r.log.Debug("session cancelled", "from", from)
	r.bus.Publish(CancelledEvent{
		Base:  event.NewBase(EventCancelled),
		Ref:   r.ref(),
		Phase: from,
	})
	return nil
}

// CurrentSlide returns the slide on screen while teaching.
func (r *Runtime) CurrentSlide() (catalog.ContentBlock, bool) {
	if r.phase != PhaseTeaching {
		return catalog.ContentBlock{}, false
	}
	return r.step.Slides[r.slide], true
}

// CurrentQuestion returns the question on screen during the quiz.
func (r *Runtime) CurrentQuestion() (catalog.SkillQuestion, bool) {
	if r.phase != PhaseQuestion && r.phase != PhaseFeedback {
		return catalog.SkillQuestion{}, false
	}
	return r.step.Questions[r.question], true
}

// Progress returns the progress indicator in [0, 100].
func (r *Runtime) Progress() float64 {
	return r.percent()
}

// State returns a copy of the current state.
func (r *Runtime) State() State {
	return State{
		Phase:         r.phase,
		SlideIndex:    r.slide,
		QuestionIndex: r.question,
		Selection:     r.selection,
		HasSelection:  r.selected,
		Outcome:       r.outcome,
		Lives:         r.lives,
		Attempts:      r.attempts,
		Mistakes:      r.mistakes,
		Percent:       r.percent(),
	}
}

// percent is 100 * position / (slides + questions), where position is the
// slide index while teaching and slides + question index during the quiz.
// A wrong-answer retry keeps the question index, so the value never drops.
func (r *Runtime) percent() float64 {
	total := len(r.step.Slides) + len(r.step.Questions)
	switch {
	case r.phase == PhaseComplete:
		return 100
	case total == 0:
		return 0
	}

	var position int
	switch r.phase {
	case PhaseTeaching:
		position = r.slide
	case PhaseQuestion, PhaseFeedback:
		position = len(r.step.Slides) + r.question
	default:
		return 0
	}
	return 100 * float64(position) / float64(total)
}

func (r *Runtime) presentQuestion(i int, retry bool) {
	r.phase = PhaseQuestion
	r.question = i
	r.clearAnswer()
	r.bus.Publish(QuestionPresentedEvent{
		Base:          event.NewBase(EventQuestionPresented),
		Ref:           r.ref(),
		QuestionIndex: i,
		Retry:         retry,
		Percent:       r.percent(),
	})
}

// complete persists the step, then enters PhaseComplete and publishes the
// reward. On a failed write nothing changes.
func (r *Runtime) complete(ctx context.Context) error {
	added, err := r.persist(ctx)
	if err != nil {
		return err
	}
	r.finish(added)
	return nil
}

func (r *Runtime) persist(ctx context.Context) (bool, error) {
	added, err := r.store.CompleteStep(ctx, r.skillID, r.step.ID)
	if err != nil {
		r.log.Warn("step completion not persisted", "error", err)
		return false, &CompletionError{SkillID: r.skillID, StepID: r.step.ID, Err: err}
	}
	return added, nil
}

func (r *Runtime) finish(added bool) {
	r.phase = PhaseComplete
	r.clearAnswer()
	r.log.Info("step completed", "xp_reward", r.step.XPReward, "replay", !added)
	r.bus.Publish(CompletedEvent{
		Base:     event.NewBase(EventCompleted),
		Ref:      r.ref(),
		XPReward: r.step.XPReward,
		Replay:   !added,
	})
}

func (r *Runtime) clearAnswer() {
	r.selection = ""
	r.selected = false
	r.outcome = OutcomeNone
}

func (r *Runtime) refuse(op string) error {
	return &TransitionError{Op: op, Phase: r.phase}
}

func (r *Runtime) ref() Ref {
	return Ref{SessionID: r.id, SkillID: r.skillID, StepID: r.step.ID}
}
