// Package viewsession keeps one set of mounted views per browser so the
// product list's query, in-flight fetch and delete banner, and a dashboard
// fetch that outlives its first render, survive across page loads. Idle
// sessions are unmounted by a reaper.
package viewsession

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/atikurraha/admin-frontend/internal/ui/dashboard"
	"github.com/atikurraha/admin-frontend/internal/ui/productlist"
)

// Views are the unmounted views a new session starts with.
type Views struct {
	Products  *productlist.View
	Dashboard *dashboard.View
}

type Factory func() Views

// Session is one browser's views. The product list stays mounted for the
// life of the session; the dashboard is mounted per visit.
type Session struct {
	ID        string
	Products  *productlist.View
	Dashboard *dashboard.View

	base     context.Context
	lastSeen time.Time
}

// OpenDashboard mounts the dashboard unless it already is, so a reload
// while its fetch is still running reads the same fetch.
func (s *Session) OpenDashboard() { s.Dashboard.Mount(s.base) }

// CloseDashboard ends the visit; the next OpenDashboard fetches again.
func (s *Session) CloseDashboard() { s.Dashboard.Unmount() }

func (s *Session) unmount() {
	s.Products.Unmount()
	s.Dashboard.Unmount()
}

type Registry struct {
	base    context.Context
	factory Factory
	ttl     time.Duration
	logger  *slog.Logger
	now     func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
	closed   bool
}

// New returns a registry whose views fetch under base, so a fetch is not
// tied to the request that triggered it.
func New(base context.Context, ttl time.Duration, factory Factory, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		base:     base,
		factory:  factory,
		ttl:      ttl,
		logger:   logger.With(slog.String("component", "view_sessions")),
		now:      time.Now,
		sessions: make(map[string]*Session),
	}
}

func (r *Registry) TTL() time.Duration { return r.ttl }

// Acquire returns the session for id, creating one under a new id when id
// is unknown, malformed or expired. A session is mounted before any other
// request can see it.
func (r *Registry) Acquire(id string) (string, *Session) {
	r.mu.Lock()
	now := r.now()
	s, ok := r.sessions[id]
	if ok && now.Sub(s.lastSeen) <= r.ttl {
		s.lastSeen = now
		r.mu.Unlock()
		return id, s
	}
	if ok {
		delete(r.sessions, id)
	}
	r.mu.Unlock()

	if ok {
		s.unmount()
	}
	if _, err := uuid.Parse(id); err != nil || id == "" {
		id = uuid.NewString()
	}

	views := r.factory()
	fresh := &Session{ID: id, Products: views.Products, Dashboard: views.Dashboard, base: r.base, lastSeen: now}
	fresh.Products.Mount(r.base)

	r.mu.Lock()
	if cur, ok := r.sessions[id]; ok {
		// another request for the same cookie got here first
		cur.lastSeen = now
		r.mu.Unlock()
		fresh.unmount()
		return id, cur
	}
	if !r.closed {
		r.sessions[id] = fresh
	}
	r.mu.Unlock()

	r.logger.Debug("view_session_created", slog.String("view_id", id))
	return id, fresh
}

// Lookup returns the live session for id without creating one.
func (r *Registry) Lookup(id string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	return s, ok
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Reap unmounts and forgets every session idle for longer than the TTL.
func (r *Registry) Reap() int {
	r.mu.Lock()
	now := r.now()
	var idle []*Session
	for id, s := range r.sessions {
		if now.Sub(s.lastSeen) > r.ttl {
			idle = append(idle, s)
			delete(r.sessions, id)
		}
	}
	r.mu.Unlock()

	for _, s := range idle {
		s.unmount()
	}
	if len(idle) > 0 {
		r.logger.Info("view_sessions_reaped", slog.Int("count", len(idle)))
	}
	return len(idle)
}

// Run reaps every interval until ctx is done, then closes the registry.
func (r *Registry) Run(ctx context.Context, interval time.Duration) error {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			r.Close()
			return nil
		case <-t.C:
			r.Reap()
		}
	}
}

// Close unmounts every session. Sessions acquired afterwards are not
// retained.
func (r *Registry) Close() {
	r.mu.Lock()
	all := make([]*Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		all = append(all, s)
	}
	r.sessions = make(map[string]*Session)
	r.closed = true
	r.mu.Unlock()

	for _, s := range all {
		s.unmount()
	}
}
