package history

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/alta-drill/alta/internal/screen"
	"github.com/alta-drill/alta/internal/store"
)

func seededRepo(t *testing.T) store.EventRepo {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "alta.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	repo := st.EventRepo()
	ctx := context.Background()

	answers := []store.AnswerEventData{
		{SessionID: "s1", Pass: 1, Chapter: "3", QuestionText: "Missed one?", CorrectAnswer: "b", LearnerAnswer: "a"},
		{SessionID: "s1", Pass: 1, Chapter: "1", QuestionText: "Got it?", CorrectAnswer: "a", LearnerAnswer: "a", Correct: true},
	}
	for _, a := range answers {
		if err := repo.AppendAnswerEvent(ctx, a); err != nil {
			t.Fatal(err)
		}
	}
	err = repo.AppendPassEvent(ctx, store.PassEventData{
		SessionID: "s1", Pass: 1, Sampling: "balanced", Total: 2, Score: 1, Wrong: 1, DurationSecs: 75, Surface: "tui",
	})
	if err != nil {
		t.Fatal(err)
	}
	return repo
}

func drive(t *testing.T, s screen.Screen, cmd tea.Cmd) screen.Screen {
	t.Helper()
	if cmd == nil {
		return s
	}
	s, _ = s.Update(cmd())
	return s
}

func TestHistoryScreen_LoadsPasses(t *testing.T) {
	h := New(seededRepo(t))
	if !strings.Contains(h.View(80, 24), "Loading") {
		t.Error("expected loading view before data arrives")
	}

	var s screen.Screen = h
	s = drive(t, s, h.Init())

	view := s.View(100, 24)
	if !strings.Contains(view, "balanced") || !strings.Contains(view, "50.0%") || !strings.Contains(view, "1:15") {
		t.Errorf("view missing pass row:\n%s", view)
	}
}

func TestHistoryScreen_ExpandShowsMissed(t *testing.T) {
	h := New(seededRepo(t))
	var s screen.Screen = h
	s = drive(t, s, h.Init())

	s, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected answers to be loaded on expand")
	}
	s = drive(t, s, cmd)

	view := s.View(120, 24)
	if !strings.Contains(view, "Missed one?") {
		t.Errorf("expected missed question:\n%s", view)
	}
	if strings.Contains(view, "Got it?") {
		t.Error("correct answers should not be listed")
	}
}

func TestHistoryScreen_Empty(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "alta.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()

	h := New(st.EventRepo())
	var s screen.Screen = h
	s = drive(t, s, h.Init())
	if !strings.Contains(s.View(80, 24), "No finished quizzes yet") {
		t.Error("expected empty-state message")
	}
}

func TestHistoryScreen_Esc(t *testing.T) {
	h := New(nil)
	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Error("expected pop command on Esc")
	}
}
