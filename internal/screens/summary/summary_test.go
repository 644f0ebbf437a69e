package summary

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/alta-drill/alta/internal/bank"
	"github.com/alta-drill/alta/internal/quiz"
	"github.com/alta-drill/alta/internal/router"
)

func testSummary() *quiz.Summary {
	return &quiz.Summary{
		SessionID: "s-1",
		Pass:      1,
		Total:     5,
		Score:     2,
		Percent:   40,
		Duration:  90 * time.Second,
		CanRetry:  true,
		Wrong: []bank.Question{
			{Chapter: "3", Text: "Which technique uses pairs?", Answer: "Pairwise testing"},
		},
	}
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func TestSummaryScreen_Title(t *testing.T) {
	s := New(testSummary())
	if s.Title() != "Results" {
		t.Errorf("Title = %q, want %q", s.Title(), "Results")
	}
}

func TestSummaryScreen_Display(t *testing.T) {
	s := New(testSummary())
	view := s.View(80, 24)
	for _, want := range []string{"Score: 2 / 5 (40.0%)", "Which technique uses pairs?", "Pairwise testing", "1:30"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestSummaryScreen_RetryPassTitle(t *testing.T) {
	sum := testSummary()
	sum.Pass = 2
	view := New(sum).View(80, 24)
	if !strings.Contains(view, "Retry pass 1 complete!") {
		t.Error("expected retry pass title")
	}
}

func TestSummaryScreen_Perfect(t *testing.T) {
	sum := testSummary()
	sum.Score, sum.Percent, sum.Wrong, sum.CanRetry = 5, 100, nil, false
	view := New(sum).View(80, 24)
	if !strings.Contains(view, "No mistakes") {
		t.Error("expected perfect-score message")
	}
}

func TestSummaryScreen_Retry(t *testing.T) {
	s := New(testSummary())
	_, cmd := s.Update(keyPress('r'))
	if cmd == nil {
		t.Fatal("expected a command on r")
	}
}

func TestSummaryScreen_RetryDisabled(t *testing.T) {
	sum := testSummary()
	sum.CanRetry = false
	s := New(sum)
	if _, cmd := s.Update(keyPress('r')); cmd != nil {
		t.Error("r should do nothing when retry is unavailable")
	}
	for _, h := range s.KeyHints() {
		if h.Key == "R" {
			t.Error("retry hint shown although retry is unavailable")
		}
	}
}

func TestSummaryScreen_Restart(t *testing.T) {
	s := New(testSummary())
	_, cmd := s.Update(keyPress('n'))
	if cmd == nil {
		t.Fatal("expected a command on n")
	}
}

func TestSummaryScreen_Esc(t *testing.T) {
	s := New(testSummary())
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected a command on Esc")
	}
	if _, ok := cmd().(router.PopToRootMsg); !ok {
		t.Error("Esc should return to the home screen")
	}
}

func TestSummaryScreen_KeyHints(t *testing.T) {
	s := New(testSummary())
	if got := len(s.KeyHints()); got != 3 {
		t.Errorf("KeyHints length = %d, want 3", got)
	}
}
