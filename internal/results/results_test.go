package results

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/alta-drill/alta/internal/bank"
	"github.com/alta-drill/alta/internal/quiz"
	"github.com/alta-drill/alta/internal/store"
)

func openRepo(t *testing.T) store.EventRepo {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "alta.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st.EventRepo()
}

func finishedSession(t *testing.T) *quiz.Session {
	t.Helper()
	b := bank.New([]bank.Question{
		{Chapter: "1", Text: "Q1", Options: []string{"a", "b"}, Answer: "a", Explanation: "e"},
		{Chapter: "2", Text: "Q2", Options: []string{"a", "b"}, Answer: "b", Explanation: "e"},
	})
	cfg := quiz.DefaultConfig()
	cfg.Sampling = quiz.SamplingFull
	cfg.Shuffle = false
	s := quiz.NewSession(cfg)
	if err := s.Start(b); err != nil {
		t.Fatal(err)
	}
	return s
}

func TestRecorderWritesEvents(t *testing.T) {
	repo := openRepo(t)
	rec := NewRecorder(repo, SurfaceTUI)
	ctx := context.Background()
	s := finishedSession(t)

	for !s.GameOver() {
		q, _ := s.Current()
		r, err := s.SubmitIndex(0)
		if err != nil {
			t.Fatal(err)
		}
		if err := rec.RecordAnswer(ctx, AnswerEvent(s, q, r, 1500*time.Millisecond)); err != nil {
			t.Fatalf("RecordAnswer: %v", err)
		}
		if err := s.Advance(); err != nil {
			t.Fatal(err)
		}
	}
	if err := rec.RecordPass(ctx, PassEvent(s)); err != nil {
		t.Fatalf("RecordPass: %v", err)
	}

	answers, err := repo.QueryAnswerEvents(ctx, s.ID())
	if err != nil {
		t.Fatal(err)
	}
	if len(answers) != 2 {
		t.Fatalf("answers = %d, want 2", len(answers))
	}
	if answers[0].Surface != SurfaceTUI || answers[0].TimeMs != 1500 || !answers[0].Correct {
		t.Errorf("first answer = %+v", answers[0].AnswerEventData)
	}
	if answers[1].Correct || answers[1].LearnerAnswer != "a" || answers[1].CorrectAnswer != "b" {
		t.Errorf("second answer = %+v", answers[1].AnswerEventData)
	}

	passes, err := repo.QueryPassEvents(ctx, store.QueryOpts{})
	if err != nil {
		t.Fatal(err)
	}
	if len(passes) != 1 {
		t.Fatalf("passes = %d, want 1", len(passes))
	}
	p := passes[0]
	if p.Total != 2 || p.Score != 1 || p.Wrong != 1 || p.Sampling != "full" || p.Pass != 1 {
		t.Errorf("pass = %+v", p.PassEventData)
	}
}

func TestNilRepoRecorder(t *testing.T) {
	rec := NewRecorder(nil, SurfaceWeb)
	if rec.Enabled() {
		t.Error("recorder without repo should be disabled")
	}
	if err := rec.RecordPass(context.Background(), store.PassEventData{}); err != nil {
		t.Errorf("RecordPass = %v, want nil", err)
	}

	var none *Recorder
	if none.Enabled() || none.Repo() != nil {
		t.Error("nil recorder should be disabled")
	}
}
