package web

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/alta-drill/alta/internal/quiz"
)

// entry is one browser's quiz. mu serializes requests of that browser.
type entry struct {
	mu       sync.Mutex
	session  *quiz.Session
	asked    time.Time // when the current question was first shown
	warn     string    // shown once on the next render
	lastSeen time.Time
}

// Registry maps session cookies to quizzes and forgets idle ones.
type Registry struct {
	mu      sync.Mutex
	entries map[string]*entry
	ttl     time.Duration
	now     func() time.Time
}

// NewRegistry creates a Registry. A ttl of 0 keeps sessions forever.
func NewRegistry(ttl time.Duration) *Registry {
	return &Registry{
		entries: make(map[string]*entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get returns the entry for id and marks it as used.
func (r *Registry) Get(id string) (*entry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[id]
	if !ok {
		return nil, false
	}
	if r.expired(e) {
		delete(r.entries, id)
		return nil, false
	}
	e.lastSeen = r.now()
	return e, true
}

// Create stores s under a fresh id.
func (r *Registry) Create(s *quiz.Session) (string, *entry) {
	id := uuid.NewString()
	now := r.now()
	e := &entry{session: s, asked: now, lastSeen: now}

	r.mu.Lock()
	r.entries[id] = e
	r.mu.Unlock()
	return id, e
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// CleanupExpired drops sessions idle for longer than the ttl.
func (r *Registry) CleanupExpired() int {
	if r.ttl == 0 {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for id, e := range r.entries {
		if r.expired(e) {
			delete(r.entries, id)
			n++
		}
	}
	return n
}

func (r *Registry) expired(e *entry) bool {
	return r.ttl > 0 && r.now().Sub(e.lastSeen) > r.ttl
}

// RunJanitor calls CleanupExpired every interval until ctx is done.
func (r *Registry) RunJanitor(ctx context.Context, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := r.CleanupExpired(); n > 0 {
				logHTTP("expired %d idle sessions", n)
			}
		}
	}
}
