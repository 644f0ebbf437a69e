// Package results turns quiz progress into result-log events.
package results

import (
	"context"
	"time"

	"github.com/alta-drill/alta/internal/bank"
	"github.com/alta-drill/alta/internal/quiz"
	"github.com/alta-drill/alta/internal/store"
)

// Surfaces that write to the result log.
const (
	SurfaceTUI = "tui"
	SurfaceWeb = "web"
)

// AnswerEvent describes the grading of q in the current pass of s.
func AnswerEvent(s *quiz.Session, q bank.Question, r quiz.Result, took time.Duration) store.AnswerEventData {
	return store.AnswerEventData{
		SessionID:     s.ID(),
		Pass:          s.Pass(),
		Chapter:       q.Chapter.String(),
		QuestionText:  q.Text,
		CorrectAnswer: q.Answer,
		LearnerAnswer: r.Selected,
		Correct:       r.Correct,
		TimeMs:        took.Milliseconds(),
	}
}

// PassEvent describes the finished pass of s.
func PassEvent(s *quiz.Session) store.PassEventData {
	return store.PassEventData{
		SessionID:    s.ID(),
		Pass:         s.Pass(),
		Sampling:     string(s.Config().Sampling),
		Total:        s.Len(),
		Score:        s.Score(),
		Wrong:        len(s.Wrong()),
		DurationSecs: int(s.Elapsed().Seconds()),
	}
}

// Recorder appends events for one surface. A Recorder without a repo
// drops everything.
type Recorder struct {
	repo    store.EventRepo
	surface string
}

// NewRecorder creates a Recorder. repo may be nil.
func NewRecorder(repo store.EventRepo, surface string) *Recorder {
	return &Recorder{repo: repo, surface: surface}
}

// Enabled reports whether events are persisted.
func (r *Recorder) Enabled() bool {
	return r != nil && r.repo != nil
}

// Repo returns the underlying repo, or nil.
func (r *Recorder) Repo() store.EventRepo {
	if r == nil {
		return nil
	}
	return r.repo
}

// RecordAnswer appends an answer event.
func (r *Recorder) RecordAnswer(ctx context.Context, data store.AnswerEventData) error {
	if !r.Enabled() {
		return nil
	}
	data.Surface = r.surface
	return r.repo.AppendAnswerEvent(ctx, data)
}

// RecordPass appends a pass event.
func (r *Recorder) RecordPass(ctx context.Context, data store.PassEventData) error {
	if !r.Enabled() {
		return nil
	}
	data.Surface = r.surface
	return r.repo.AppendPassEvent(ctx, data)
}
