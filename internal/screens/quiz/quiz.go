package quiz

import (
	"context"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/alta-drill/alta/internal/bank"
	qz "github.com/alta-drill/alta/internal/quiz"
	"github.com/alta-drill/alta/internal/results"
	"github.com/alta-drill/alta/internal/router"
	"github.com/alta-drill/alta/internal/screen"
	"github.com/alta-drill/alta/internal/screens/summary"
	"github.com/alta-drill/alta/internal/ui/layout"
)

// QuizScreen runs one quiz session: questions, feedback and the hand-off to
// the summary screen.
type QuizScreen struct {
	session     *qz.Session
	recorder    *results.Recorder
	now         func() time.Time
	asked       time.Time
	errMsg      string
	warn        string
	confirmQuit bool
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.BackHandler = (*QuizScreen)(nil)

// New starts a session over b. A failed start is shown as an error instead
// of a question.
func New(b *bank.Bank, cfg qz.Config, rec *results.Recorder, opts ...qz.Option) *QuizScreen {
	s := &QuizScreen{
		session:  qz.NewSession(cfg, opts...),
		recorder: rec,
		now:      time.Now,
	}
	if err := s.session.Start(b); err != nil {
		s.errMsg = err.Error()
	}
	s.asked = s.now()
	return s
}

func (s *QuizScreen) Init() tea.Cmd {
	return nil
}

func (s *QuizScreen) Title() string {
	title := "Full quiz"
	if s.session.Config().Sampling == qz.SamplingBalanced {
		title = fmt.Sprintf("Balanced quiz (chapter %s)", s.session.Config().FocusChapter)
	}
	if p := s.session.Pass(); p > 1 {
		title += fmt.Sprintf(" - retry %d", p-1)
	}
	return title
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	if s.errMsg != "" {
		return []layout.KeyHint{{Key: "any key", Description: "Back"}}
	}
	if s.confirmQuit {
		return []layout.KeyHint{
			{Key: "Y", Description: "End quiz"},
			{Key: "N", Description: "Keep going"},
		}
	}
	switch s.session.Phase() {
	case qz.PhaseQuestion:
		if s.session.Config().Flow == qz.FlowTwoStep {
			return []layout.KeyHint{
				{Key: "↑↓/1-9", Description: "Select"},
				{Key: "Enter", Description: "Check"},
				{Key: "Esc", Description: "Quit"},
			}
		}
		return []layout.KeyHint{
			{Key: "1-9", Description: "Answer"},
			{Key: "↑↓ Enter", Description: "Pick"},
			{Key: "Esc", Description: "Quit"},
		}
	case qz.PhaseAnswered:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Next"},
			{Key: "Esc", Description: "Quit"},
		}
	default:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Results"},
			{Key: "Esc", Description: "Home"},
		}
	}
}

// Back asks for confirmation while questions remain and leaves otherwise.
func (s *QuizScreen) Back() tea.Cmd {
	if s.errMsg != "" || s.session.GameOver() {
		return router.Pop
	}
	s.confirmQuit = !s.confirmQuit
	return nil
}

// Session exposes the running session.
func (s *QuizScreen) Session() *qz.Session {
	return s.session
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case savedMsg:
		if msg.Err != nil {
			s.warn = "Result not saved: " + msg.Err.Error()
		}
		return s, nil

	case summary.RetryMsg:
		if err := s.session.RetryWrong(); err != nil {
			s.warn = err.Error()
			return s, nil
		}
		s.asked = s.now()
		return s, nil

	case summary.RestartMsg:
		if err := s.session.Restart(); err != nil {
			s.errMsg = err.Error()
			return s, nil
		}
		s.asked = s.now()
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg.String())
	}
	return s, nil
}

func (s *QuizScreen) handleKey(key string) (screen.Screen, tea.Cmd) {
	if s.errMsg != "" {
		return s, router.Pop
	}

	if s.confirmQuit {
		switch key {
		case "y", "Y":
			return s, router.Pop
		case "n", "N", "esc":
			s.confirmQuit = false
		}
		return s, nil
	}

	if key == "esc" {
		return s, s.Back()
	}

	switch s.session.Phase() {
	case qz.PhaseQuestion:
		return s.handleQuestionKey(key)
	case qz.PhaseAnswered:
		if key == "enter" || key == "space" {
			return s.advance()
		}
	case qz.PhaseFinished:
		if key == "enter" {
			return s, router.Push(summary.New(s.session.Summary()))
		}
	}
	return s, nil
}

func (s *QuizScreen) handleQuestionKey(key string) (screen.Screen, tea.Cmd) {
	sel := s.session.Selected()
	switch key {
	case "up", "k":
		_ = s.session.Select(sel - 1)
		return s, nil
	case "down", "j":
		_ = s.session.Select(sel + 1)
		return s, nil
	case "enter":
		q, _ := s.session.Current()
		r, err := s.session.Check()
		if err != nil {
			return s, nil
		}
		return s, s.recordAnswer(q, r)
	}

	if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
		i := int(key[0] - '1')
		if s.session.Config().Flow == qz.FlowTwoStep {
			_ = s.session.Select(i)
			return s, nil
		}
		q, _ := s.session.Current()
		r, err := s.session.SubmitIndex(i)
		if err != nil {
			return s, nil
		}
		return s, s.recordAnswer(q, r)
	}
	return s, nil
}

func (s *QuizScreen) advance() (screen.Screen, tea.Cmd) {
	if err := s.session.Advance(); err != nil {
		return s, nil
	}
	s.asked = s.now()
	if !s.session.GameOver() {
		return s, nil
	}
	return s, tea.Batch(
		s.recordPass(),
		router.Push(summary.New(s.session.Summary())),
	)
}

// recordAnswer snapshots the event now; the write runs as a command.
func (s *QuizScreen) recordAnswer(q bank.Question, r qz.Result) tea.Cmd {
	if !s.recorder.Enabled() {
		return nil
	}
	data := results.AnswerEvent(s.session, q, r, s.now().Sub(s.asked))
	rec := s.recorder
	return func() tea.Msg {
		return savedMsg{Err: rec.RecordAnswer(context.Background(), data)}
	}
}

func (s *QuizScreen) recordPass() tea.Cmd {
	if !s.recorder.Enabled() {
		return nil
	}
	data := results.PassEvent(s.session)
	rec := s.recorder
	return func() tea.Msg {
		return savedMsg{Err: rec.RecordPass(context.Background(), data)}
	}
}
