package quiz

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/alta-drill/alta/internal/bank"
	qz "github.com/alta-drill/alta/internal/quiz"
	"github.com/alta-drill/alta/internal/results"
	"github.com/alta-drill/alta/internal/router"
	"github.com/alta-drill/alta/internal/screen"
	"github.com/alta-drill/alta/internal/screens/summary"
	"github.com/alta-drill/alta/internal/store"
)

// mockEventRepo records appended events. Query methods are not used by the
// quiz screen and panic through the nil embedded interface.
type mockEventRepo struct {
	store.EventRepo
	answers []store.AnswerEventData
	passes  []store.PassEventData
	err     error
}

func (m *mockEventRepo) AppendAnswerEvent(_ context.Context, data store.AnswerEventData) error {
	if m.err != nil {
		return m.err
	}
	m.answers = append(m.answers, data)
	return nil
}

func (m *mockEventRepo) AppendPassEvent(_ context.Context, data store.PassEventData) error {
	if m.err != nil {
		return m.err
	}
	m.passes = append(m.passes, data)
	return nil
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func testBank() *bank.Bank {
	return bank.New([]bank.Question{
		{Chapter: "1", Text: "First?", Options: []string{"a", "b", "c"}, Answer: "a", Explanation: "a is right"},
		{Chapter: "2", Text: "Second?", Options: []string{"a", "b", "c"}, Answer: "b", Explanation: "b is right"},
		{Chapter: "3", Text: "Third?", Options: []string{"a", "b", "c"}, Answer: "c", Explanation: "c is right"},
	})
}

func testScreen(flow qz.Flow) (*QuizScreen, *mockEventRepo) {
	cfg := qz.DefaultConfig()
	cfg.Sampling = qz.SamplingFull
	cfg.Shuffle = false
	cfg.Flow = flow
	repo := &mockEventRepo{}
	return New(testBank(), cfg, results.NewRecorder(repo, results.SurfaceTUI)), repo
}

func update(t *testing.T, s *QuizScreen, msg tea.Msg) (*QuizScreen, tea.Cmd) {
	t.Helper()
	var scr screen.Screen = s
	scr, cmd := scr.Update(msg)
	return scr.(*QuizScreen), cmd
}

// runCmd executes cmd and flattens batches into their messages.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, runCmd(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func TestQuizScreen_Title(t *testing.T) {
	s, _ := testScreen(qz.FlowOneStep)
	if s.Title() != "Full quiz" {
		t.Errorf("Title = %q", s.Title())
	}
}

func TestQuizScreen_View_Question(t *testing.T) {
	s, _ := testScreen(qz.FlowOneStep)
	view := s.View(80, 24)
	for _, want := range []string{"Chapter 1 | Question 1 / 3", "First?", "1)  a", "3)  c"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestQuizScreen_OneStepNumberKey(t *testing.T) {
	s, repo := testScreen(qz.FlowOneStep)

	s, cmd := update(t, s, keyPress('1'))
	if !s.Session().Answered() {
		t.Fatal("expected question to be answered")
	}
	if cmd == nil {
		t.Fatal("expected a save command")
	}
	s, _ = update(t, s, cmd())

	if len(repo.answers) != 1 {
		t.Fatalf("answer events = %d, want 1", len(repo.answers))
	}
	if ev := repo.answers[0]; !ev.Correct || ev.Surface != results.SurfaceTUI || ev.Chapter != "1" {
		t.Errorf("answer event = %+v", ev)
	}

	view := s.View(80, 24)
	if !strings.Contains(view, "Correct!") || !strings.Contains(view, "a is right") {
		t.Errorf("feedback missing from view:\n%s", view)
	}

	s, _ = update(t, s, specialKey(tea.KeyEnter))
	if s.Session().Index() != 1 || s.Session().Answered() {
		t.Errorf("enter should advance: index=%d phase=%s", s.Session().Index(), s.Session().Phase())
	}
}

func TestQuizScreen_OneStepArrowsAndEnter(t *testing.T) {
	s, _ := testScreen(qz.FlowOneStep)

	s, _ = update(t, s, specialKey(tea.KeyDown))
	s, _ = update(t, s, specialKey(tea.KeyDown))
	s, _ = update(t, s, specialKey(tea.KeyEnter))

	r, ok := s.Session().LastResult()
	if !ok {
		t.Fatal("expected a result")
	}
	if r.Correct || r.Selected != "c" {
		t.Errorf("result = %+v", r)
	}
	if !strings.Contains(s.View(80, 24), "Incorrect (answer: a)") {
		t.Error("expected incorrect message")
	}
}

func TestQuizScreen_TwoStep(t *testing.T) {
	s, _ := testScreen(qz.FlowTwoStep)

	s, cmd := update(t, s, keyPress('2'))
	if s.Session().Answered() {
		t.Fatal("number key should only select in two-step flow")
	}
	if cmd != nil {
		t.Error("selection should not save anything")
	}
	if s.Session().Selected() != 1 {
		t.Errorf("selected = %d, want 1", s.Session().Selected())
	}
	if !strings.Contains(s.View(80, 24), "(•) 2)  b") {
		t.Error("expected radio marker on the selection")
	}

	s, _ = update(t, s, keyPress('1'))
	s, _ = update(t, s, specialKey(tea.KeyEnter))
	r, _ := s.Session().LastResult()
	if !r.Correct {
		t.Errorf("result = %+v, want correct", r)
	}
}

func TestQuizScreen_OutOfRangeKeyIgnored(t *testing.T) {
	s, _ := testScreen(qz.FlowOneStep)
	s, cmd := update(t, s, keyPress('9'))
	if s.Session().Answered() || cmd != nil {
		t.Error("key beyond the options should be ignored")
	}
}

func TestQuizScreen_FinishPushesSummary(t *testing.T) {
	s, repo := testScreen(qz.FlowOneStep)

	var cmd tea.Cmd
	for _, k := range []rune{'1', '1', '3'} {
		s, _ = update(t, s, keyPress(k))
		s, cmd = update(t, s, specialKey(tea.KeyEnter))
	}
	if !s.Session().GameOver() {
		t.Fatal("expected the pass to be finished")
	}

	var pushed bool
	for _, msg := range runCmd(cmd) {
		if p, ok := msg.(router.PushScreenMsg); ok {
			if _, ok := p.Screen.(*summary.SummaryScreen); ok {
				pushed = true
			}
		}
	}
	if !pushed {
		t.Error("expected the summary screen to be pushed")
	}
	if len(repo.passes) != 1 {
		t.Fatalf("pass events = %d, want 1", len(repo.passes))
	}
	if p := repo.passes[0]; p.Score != 2 || p.Wrong != 1 || p.Total != 3 {
		t.Errorf("pass event = %+v", p)
	}
}

func TestQuizScreen_RetryAndRestart(t *testing.T) {
	s, _ := testScreen(qz.FlowOneStep)
	for _, k := range []rune{'2', '1', '3'} {
		s, _ = update(t, s, keyPress(k))
		s, _ = update(t, s, specialKey(tea.KeyEnter))
	}
	id := s.Session().ID()

	s, _ = update(t, s, summary.RetryMsg{})
	if s.Session().Pass() != 2 || s.Session().Len() != 2 {
		t.Fatalf("retry: pass=%d len=%d, want 2 and 2", s.Session().Pass(), s.Session().Len())
	}
	if s.Session().ID() != id {
		t.Error("retry should keep the session id")
	}
	if !strings.Contains(s.Title(), "retry 1") {
		t.Errorf("Title = %q", s.Title())
	}

	s, _ = update(t, s, summary.RestartMsg{})
	if s.Session().Pass() != 1 || s.Session().Len() != 3 {
		t.Errorf("restart: pass=%d len=%d", s.Session().Pass(), s.Session().Len())
	}
	if s.Session().ID() == id {
		t.Error("restart should assign a new session id")
	}
}

func TestQuizScreen_EmptyBank(t *testing.T) {
	s := New(bank.New(nil), qz.DefaultConfig(), nil)
	if !strings.Contains(s.View(80, 24), "Error:") {
		t.Error("expected error view")
	}
	_, cmd := update(t, s, keyPress('x'))
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("any key should go back")
	}
}

func TestQuizScreen_QuitConfirm(t *testing.T) {
	s, _ := testScreen(qz.FlowOneStep)

	if cmd := s.Back(); cmd != nil {
		t.Error("Back mid-quiz should ask first")
	}
	if !strings.Contains(s.View(80, 24), "End quiz early?") {
		t.Error("expected quit confirmation")
	}

	s, _ = update(t, s, keyPress('n'))
	if s.confirmQuit {
		t.Error("N should dismiss the dialog")
	}

	s.Back()
	_, cmd := update(t, s, keyPress('y'))
	if cmd == nil {
		t.Fatal("expected a command after Y")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("Y should leave the quiz")
	}
}

func TestQuizScreen_SaveFailureWarns(t *testing.T) {
	s, repo := testScreen(qz.FlowOneStep)
	repo.err = errors.New("disk full")

	s, cmd := update(t, s, keyPress('1'))
	s, _ = update(t, s, cmd())

	if !strings.Contains(s.View(80, 24), "Result not saved: disk full") {
		t.Error("expected save warning in view")
	}
	if !s.Session().Answered() {
		t.Error("a failed save must not undo the answer")
	}
}

func TestQuizScreen_NoRecorder(t *testing.T) {
	cfg := qz.DefaultConfig()
	cfg.Sampling = qz.SamplingFull
	s := New(testBank(), cfg, nil)

	_, cmd := update(t, s, keyPress('1'))
	if cmd != nil {
		t.Error("no recorder should mean no save command")
	}
}

func TestQuizScreen_KeyHints(t *testing.T) {
	s, _ := testScreen(qz.FlowTwoStep)
	hints := s.KeyHints()
	if len(hints) == 0 || hints[1].Description != "Check" {
		t.Errorf("two-step hints = %+v", hints)
	}
}
