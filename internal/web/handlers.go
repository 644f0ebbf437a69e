package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/alta-drill/alta/internal/bank"
	"github.com/alta-drill/alta/internal/quiz"
	"github.com/alta-drill/alta/internal/results"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status, code := "ok", http.StatusOK
	questions := 0
	if s.bankErr != nil {
		status, code = "bank unavailable", http.StatusServiceUnavailable
	} else {
		questions = s.bank.Len()
	}
	writeJSON(w, code, map[string]any{
		"status":    status,
		"questions": questions,
		"sessions":  s.registry.Len(),
	})
}

// handleIndex renders the current state, starting a quiz on first visit.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	e, ok := s.lookup(r)
	if !ok {
		sess := quiz.NewSession(s.config, s.opts...)
		if err := sess.Start(s.bank); err != nil {
			s.render(w, http.StatusInternalServerError, pageData{Fatal: err.Error()})
			return
		}
		var id string
		id, e = s.registry.Create(sess)
		http.SetCookie(w, &http.Cookie{
			Name:     CookieName,
			Value:    id,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}

	e.mu.Lock()
	data := s.pageFor(e)
	e.warn = ""
	e.mu.Unlock()

	s.render(w, http.StatusOK, data)
}

func (s *Server) handleAnswer(w http.ResponseWriter, r *http.Request) {
	s.withEntry(w, r, func(e *entry) error {
		i, err := optionIndex(r)
		if err != nil {
			return err
		}
		q, _ := e.session.Current()
		res, err := e.session.SubmitIndex(i)
		if err != nil {
			return err
		}
		s.recordAnswer(r, e, q, res)
		return nil
	})
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	s.withEntry(w, r, func(e *entry) error {
		i, err := optionIndex(r)
		if err != nil {
			return err
		}
		return e.session.Select(i)
	})
}

func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	s.withEntry(w, r, func(e *entry) error {
		// The check form posts the chosen radio along with it.
		if r.FormValue("option") != "" {
			i, err := optionIndex(r)
			if err != nil {
				return err
			}
			if err := e.session.Select(i); err != nil {
				return err
			}
		}
		q, _ := e.session.Current()
		res, err := e.session.Check()
		if err != nil {
			return err
		}
		s.recordAnswer(r, e, q, res)
		return nil
	})
}

func (s *Server) handleNext(w http.ResponseWriter, r *http.Request) {
	s.withEntry(w, r, func(e *entry) error {
		if err := e.session.Advance(); err != nil {
			return err
		}
		e.asked = s.now()
		if e.session.GameOver() {
			if err := s.recorder.RecordPass(r.Context(), results.PassEvent(e.session)); err != nil {
				logError("record pass: %v", err)
				e.warn = "Result not saved: " + err.Error()
			}
		}
		return nil
	})
}

func (s *Server) handleRetry(w http.ResponseWriter, r *http.Request) {
	s.withEntry(w, r, func(e *entry) error {
		if err := e.session.RetryWrong(); err != nil {
			return err
		}
		e.asked = s.now()
		return nil
	})
}

// handleRestart draws a new quiz set. Optional form fields "sampling" and
// "chapter" switch the mode for the new set.
func (s *Server) handleRestart(w http.ResponseWriter, r *http.Request) {
	s.withEntry(w, r, func(e *entry) error {
		cfg := e.session.Config()
		if v := r.FormValue("sampling"); v != "" {
			cfg.Sampling = quiz.Sampling(v)
		}
		if v := strings.TrimSpace(r.FormValue("chapter")); v != "" {
			cfg.FocusChapter = bank.Chapter(v)
		}
		if err := cfg.Validate(); err != nil {
			return badRequest{err}
		}

		if cfg != e.session.Config() {
			e.session = quiz.NewSession(cfg, s.opts...)
			if err := e.session.Start(s.bank); err != nil {
				return err
			}
		} else if err := e.session.Restart(); err != nil {
			return err
		}
		e.asked = s.now()
		return nil
	})
}

// withEntry runs fn under the browser's session lock and redirects to the
// index. A request without a live session just lands on the index, which
// starts one.
func (s *Server) withEntry(w http.ResponseWriter, r *http.Request, fn func(e *entry) error) {
	e, ok := s.lookup(r)
	if !ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	e.mu.Lock()
	err := fn(e)
	e.mu.Unlock()

	if err != nil {
		var bad badRequest
		switch {
		case errors.As(err, &bad), errors.Is(err, quiz.ErrOptionOutOfRange):
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		case errors.Is(err, quiz.ErrEmptyBank):
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		// Out-of-order actions (double submits, stale tabs) are ignored;
		// the index shows the real state.
		logHTTP("ignored %s: %v", r.URL.Path, err)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) lookup(r *http.Request) (*entry, bool) {
	c, err := r.Cookie(CookieName)
	if err != nil || c.Value == "" {
		return nil, false
	}
	return s.registry.Get(c.Value)
}

func (s *Server) recordAnswer(r *http.Request, e *entry, q bank.Question, res quiz.Result) {
	data := results.AnswerEvent(e.session, q, res, s.now().Sub(e.asked))
	if err := s.recorder.RecordAnswer(r.Context(), data); err != nil {
		logError("record answer: %v", err)
		e.warn = "Result not saved: " + err.Error()
	}
}

type badRequest struct{ err error }

func (b badRequest) Error() string { return b.err.Error() }

func optionIndex(r *http.Request) (int, error) {
	v := r.FormValue("option")
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, badRequest{errors.New("option must be an integer index")}
	}
	return i, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
