package quiz

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/alta-drill/alta/internal/bank"
)

// Phase is the position of a session in its state machine.
type Phase int

const (
	PhaseNotStarted Phase = iota // No quiz set drawn yet
	PhaseQuestion                // Current question shown, not yet answered
	PhaseAnswered                // Current question answered, result shown
	PhaseFinished                // Every question in the set has been advanced past
)

func (p Phase) String() string {
	switch p {
	case PhaseNotStarted:
		return "not-started"
	case PhaseQuestion:
		return "question"
	case PhaseAnswered:
		return "answered"
	case PhaseFinished:
		return "finished"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

var (
	ErrEmptyBank         = errors.New("question bank is empty")
	ErrInvalidTransition = errors.New("invalid transition")
	ErrOptionOutOfRange  = errors.New("option index out of range")
	ErrRetryDisabled     = errors.New("retrying wrong answers is disabled")
	ErrNothingToRetry    = errors.New("no wrong answers to retry")
)

// Result describes the outcome of a submitted answer.
type Result struct {
	Correct  bool
	Selected string
	Answer   string
	Message  string
}

// Session is one learner's quiz state. It is not safe for concurrent use;
// callers serving several users keep one Session per user.
type Session struct {
	config Config
	rng    *rand.Rand
	now    func() time.Time

	bank *bank.Bank

	id        string
	pass      int
	startedAt time.Time
	set       []bank.Question
	idx       int
	score     int
	wrong     []bank.Question
	phase     Phase
	selected  int
	last      *Result
}

// Option customizes a Session.
type Option func(*Session)

// WithRand sets the random source used for sampling.
func WithRand(rng *rand.Rand) Option {
	return func(s *Session) { s.rng = rng }
}

// WithClock sets the time source used for pass timing.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// NewSession creates a session in PhaseNotStarted.
func NewSession(cfg Config, opts ...Option) *Session {
	s := &Session{
		config: cfg,
		now:    time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return s
}

// Start draws a quiz set from b and resets all counters.
// An empty bank leaves the session not started and returns ErrEmptyBank.
func (s *Session) Start(b *bank.Bank) error {
	s.bank = b
	if b == nil || b.Len() == 0 {
		s.reset(nil)
		s.phase = PhaseNotStarted
		return ErrEmptyBank
	}
	set := Sample(b.Questions(), s.config, s.rng)
	if len(set) == 0 {
		s.reset(nil)
		s.phase = PhaseNotStarted
		return ErrEmptyBank
	}
	s.id = uuid.NewString()
	s.pass = 1
	s.reset(set)
	return nil
}

// Restart re-runs Start with the bank from the previous Start.
func (s *Session) Restart() error {
	return s.Start(s.bank)
}

// RetryWrong replaces the quiz set with the questions missed in the
// finished pass.
func (s *Session) RetryWrong() error {
	if s.phase != PhaseFinished {
		return fmt.Errorf("%w: retry from %s", ErrInvalidTransition, s.phase)
	}
	if !s.config.Retry {
		return ErrRetryDisabled
	}
	if len(s.wrong) == 0 {
		return ErrNothingToRetry
	}
	set := s.wrong
	s.pass++
	s.reset(set)
	return nil
}

func (s *Session) reset(set []bank.Question) {
	s.set = set
	s.idx = 0
	s.score = 0
	s.wrong = nil
	s.selected = 0
	s.last = nil
	s.startedAt = s.now()
	s.phase = PhaseQuestion
	if len(set) == 0 {
		s.phase = PhaseFinished
	}
}

// Select moves the pending selection for the two-step flow.
func (s *Session) Select(i int) error {
	if s.phase != PhaseQuestion {
		return fmt.Errorf("%w: select in %s", ErrInvalidTransition, s.phase)
	}
	if i < 0 || i >= len(s.set[s.idx].Options) {
		return ErrOptionOutOfRange
	}
	s.selected = i
	return nil
}

// Check submits the pending selection.
func (s *Session) Check() (Result, error) {
	if s.phase != PhaseQuestion {
		return Result{}, fmt.Errorf("%w: check in %s", ErrInvalidTransition, s.phase)
	}
	return s.Submit(s.set[s.idx].Options[s.selected])
}

// SubmitIndex submits the option at index i.
func (s *Session) SubmitIndex(i int) (Result, error) {
	if s.phase != PhaseQuestion {
		return Result{}, fmt.Errorf("%w: submit in %s", ErrInvalidTransition, s.phase)
	}
	opts := s.set[s.idx].Options
	if i < 0 || i >= len(opts) {
		return Result{}, ErrOptionOutOfRange
	}
	s.selected = i
	return s.Submit(opts[i])
}

// Submit grades option against the current question by exact string match.
// A miss appends the question to the wrong list.
func (s *Session) Submit(option string) (Result, error) {
	if s.phase != PhaseQuestion {
		return Result{}, fmt.Errorf("%w: submit in %s", ErrInvalidTransition, s.phase)
	}
	q := s.set[s.idx]
	r := Result{
		Correct:  q.IsCorrect(option),
		Selected: option,
		Answer:   q.Answer,
	}
	if r.Correct {
		s.score++
		r.Message = "Correct!"
	} else {
		s.wrong = append(s.wrong, q)
		r.Message = fmt.Sprintf("Incorrect (answer: %s)", q.Answer)
	}
	s.last = &r
	s.phase = PhaseAnswered
	return r, nil
}

// Advance moves past an answered question. Leaving the last question
// finishes the pass.
func (s *Session) Advance() error {
	if s.phase != PhaseAnswered {
		return fmt.Errorf("%w: advance in %s", ErrInvalidTransition, s.phase)
	}
	s.idx++
	s.selected = 0
	s.last = nil
	if s.idx >= len(s.set) {
		s.phase = PhaseFinished
		return nil
	}
	s.phase = PhaseQuestion
	return nil
}

// ID returns the identifier assigned at the last Start.
func (s *Session) ID() string { return s.id }

// Config returns the session configuration.
func (s *Session) Config() Config { return s.config }

// Phase returns the current phase.
func (s *Session) Phase() Phase { return s.phase }

// Answered reports whether the current question has been answered.
func (s *Session) Answered() bool { return s.phase == PhaseAnswered }

// GameOver reports whether the pass is finished.
func (s *Session) GameOver() bool { return s.phase == PhaseFinished }

// Pass returns 1 for the first pass and increments on every retry.
func (s *Session) Pass() int { return s.pass }

// Index returns the position of the current question.
func (s *Session) Index() int { return s.idx }

// Len returns the size of the current quiz set.
func (s *Session) Len() int { return len(s.set) }

// Score returns the number of correct answers in this pass.
func (s *Session) Score() int { return s.score }

// Selected returns the pending option index.
func (s *Session) Selected() int { return s.selected }

// Current returns the question at the current index.
func (s *Session) Current() (bank.Question, bool) {
	if s.phase != PhaseQuestion && s.phase != PhaseAnswered {
		return bank.Question{}, false
	}
	return s.set[s.idx], true
}

// LastResult returns the result of the current question once answered.
func (s *Session) LastResult() (Result, bool) {
	if s.last == nil {
		return Result{}, false
	}
	return *s.last, true
}

// Set returns a copy of the current quiz set.
func (s *Session) Set() []bank.Question {
	out := make([]bank.Question, len(s.set))
	copy(out, s.set)
	return out
}

// Wrong returns a copy of the questions missed in this pass.
func (s *Session) Wrong() []bank.Question {
	out := make([]bank.Question, len(s.wrong))
	copy(out, s.wrong)
	return out
}

// CanRetry reports whether RetryWrong would succeed.
func (s *Session) CanRetry() bool {
	return s.phase == PhaseFinished && s.config.Retry && len(s.wrong) > 0
}

// Progress returns the fraction of the set reached, counting the question on
// screen. It is 1 once the pass is finished.
func (s *Session) Progress() float64 {
	switch s.phase {
	case PhaseFinished:
		return 1
	case PhaseQuestion, PhaseAnswered:
		return float64(s.idx+1) / float64(len(s.set))
	default:
		return 0
	}
}

// Percent returns score / len(set) * 100, or 0 for an empty set.
func (s *Session) Percent() float64 {
	if len(s.set) == 0 {
		return 0
	}
	return float64(s.score*100) / float64(len(s.set))
}

// Elapsed returns the time since the current pass began.
func (s *Session) Elapsed() time.Duration {
	if s.startedAt.IsZero() {
		return 0
	}
	return s.now().Sub(s.startedAt)
}
