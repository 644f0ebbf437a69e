// Package web serves the quiz as server-rendered HTML pages, one session
// per browser.
package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/alta-drill/alta/internal/bank"
	"github.com/alta-drill/alta/internal/quiz"
	"github.com/alta-drill/alta/internal/results"
	"github.com/alta-drill/alta/internal/store"
)

// CookieName holds the browser's session id.
const CookieName = "alta_sid"

// Defaults for Options.
const (
	DefaultAddr       = ":8501"
	DefaultSessionTTL = 2 * time.Hour
	janitorInterval   = 5 * time.Minute
	shutdownTimeout   = 10 * time.Second
)

//go:embed templates/*.html
var templateFS embed.FS

// Options configures a Server.
type Options struct {
	// Bank is the loaded bank. BankErr, when set, makes every page render
	// the load error with status 500.
	Bank    *bank.Bank
	BankErr error

	Config quiz.Config

	// EventRepo is the result log; nil disables recording.
	EventRepo store.EventRepo

	// SessionTTL expires idle browser sessions. Zero means DefaultSessionTTL.
	SessionTTL time.Duration

	// SessionOptions are passed to every new quiz.Session.
	SessionOptions []quiz.Option
}

// Server is the web surface.
type Server struct {
	bank     *bank.Bank
	bankErr  error
	config   quiz.Config
	opts     []quiz.Option
	recorder *results.Recorder
	registry *Registry
	tmpl     *template.Template
	router   *mux.Router
	now      func() time.Time
}

// New creates a Server and registers its routes.
func New(opts Options) (*Server, error) {
	tmpl, err := template.New("").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	ttl := opts.SessionTTL
	if ttl == 0 {
		ttl = DefaultSessionTTL
	}

	s := &Server{
		bank:     opts.Bank,
		bankErr:  opts.BankErr,
		config:   opts.Config,
		opts:     opts.SessionOptions,
		recorder: results.NewRecorder(opts.EventRepo, results.SurfaceWeb),
		registry: NewRegistry(ttl),
		tmpl:     tmpl,
		now:      time.Now,
	}
	if s.bankErr == nil && s.bank == nil {
		s.bankErr = errors.New("no question bank loaded")
	}
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	r := mux.NewRouter()
	r.Use(logRequests)

	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)

	pages := r.NewRoute().Subrouter()
	pages.Use(s.requireBank)
	pages.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)
	pages.HandleFunc("/answer", s.handleAnswer).Methods(http.MethodPost)
	pages.HandleFunc("/select", s.handleSelect).Methods(http.MethodPost)
	pages.HandleFunc("/check", s.handleCheck).Methods(http.MethodPost)
	pages.HandleFunc("/next", s.handleNext).Methods(http.MethodPost)
	pages.HandleFunc("/retry", s.handleRetry).Methods(http.MethodPost)
	pages.HandleFunc("/restart", s.handleRestart).Methods(http.MethodPost)

	s.router = r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Registry exposes the session registry.
func (s *Server) Registry() *Registry {
	return s.registry
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	janitorCtx, stopJanitor := context.WithCancel(ctx)
	defer stopJanitor()
	go s.registry.RunJanitor(janitorCtx, janitorInterval)

	errCh := make(chan error, 1)
	go func() {
		logStartup("Server ready to accept connections at http://localhost%s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen on %s: %w", addr, err)
	case <-ctx.Done():
	}

	logShutdown("Received shutdown signal, draining connections...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logShutdown("Server stopped")
	return nil
}

// requireBank renders the load error instead of any page while the bank
// is unavailable.
func (s *Server) requireBank(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.bankErr != nil {
			s.render(w, http.StatusInternalServerError, pageData{Fatal: s.bankErr.Error()})
			return
		}
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logHTTP("%s %s %d %s", r.Method, r.URL.Path, rec.status, time.Since(start).Round(time.Microsecond))
	})
}
