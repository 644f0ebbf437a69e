package web

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/alta-drill/alta/internal/bank"
	"github.com/alta-drill/alta/internal/quiz"
)

// pageData is everything page.html renders. Exactly one of Fatal,
// Question or Summary drives the main panel.
type pageData struct {
	Fatal string

	Title    string
	Question *questionView
	Result   *quiz.Result
	Summary  *quiz.Summary
	CanRetry bool
	Warn     string

	Chapters []bank.ChapterCount
	Config   quiz.Config
}

type questionView struct {
	Chapter     bank.Chapter
	Number      int
	Total       int
	Score       int
	Progress    int
	Text        string
	Options     []optionView
	Explanation string
	TwoStep     bool
	Answered    bool
}

type optionView struct {
	Index    int
	Label    string
	Selected bool
	Correct  bool
	Picked   bool
}

var templateFuncs = template.FuncMap{
	"inc":      func(i int) int { return i + 1 },
	"percent":  func(p float64) string { return fmt.Sprintf("%.1f%%", p) },
	"duration": formatDuration,
}

func formatDuration(d time.Duration) string {
	secs := int(d.Round(time.Second) / time.Second)
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

func (s *Server) pageFor(e *entry) pageData {
	sess := e.session
	cfg := sess.Config()
	data := pageData{
		Title:  title(sess),
		Warn:   e.warn,
		Config: cfg,
	}
	if s.bank != nil {
		data.Chapters = s.bank.Chapters()
	}

	switch sess.Phase() {
	case quiz.PhaseNotStarted:
		data.Fatal = quiz.ErrEmptyBank.Error()
	case quiz.PhaseFinished:
		data.Summary = sess.Summary()
		data.CanRetry = sess.CanRetry()
	default:
		q, _ := sess.Current()
		qv := &questionView{
			Chapter:  q.Chapter,
			Number:   sess.Index() + 1,
			Total:    sess.Len(),
			Score:    sess.Score(),
			Progress: int(sess.Progress() * 100),
			Text:     q.Text,
			TwoStep:  cfg.Flow == quiz.FlowTwoStep,
			Answered: sess.Answered(),
		}
		answer := q.AnswerIndex()
		for i, o := range q.Options {
			qv.Options = append(qv.Options, optionView{
				Index:    i,
				Label:    o,
				Selected: i == sess.Selected(),
				Correct:  qv.Answered && i == answer,
				Picked:   qv.Answered && i == sess.Selected(),
			})
		}
		if r, ok := sess.LastResult(); ok {
			data.Result = &r
			qv.Explanation = q.Explanation
		}
		data.Question = qv
	}
	return data
}

func title(sess *quiz.Session) string {
	cfg := sess.Config()
	t := "Full quiz"
	if cfg.Sampling == quiz.SamplingBalanced {
		t = fmt.Sprintf("Balanced quiz (chapter %s)", cfg.FocusChapter)
	}
	if sess.Pass() > 1 {
		t += fmt.Sprintf(" - retry %d", sess.Pass()-1)
	}
	return t
}

// render executes page.html into a buffer first so a template error can
// still produce a clean 500.
func (s *Server) render(w http.ResponseWriter, status int, data pageData) {
	var buf bytes.Buffer
	if err := s.tmpl.ExecuteTemplate(&buf, "page.html", data); err != nil {
		logError("render page: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
