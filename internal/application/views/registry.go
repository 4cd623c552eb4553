package views

import (
	"log/slog"
	"sync"
	"time"

	csmap "github.com/mhmtszr/concurrent-swiss-map"
)

// searchTimeout caps each debounced upstream search query. Searches run
// detached from the request that typed the keystroke, so they need
// their own deadline.
const searchTimeout = 10 * time.Second

// SessionViews bundles the stateful page engines for one staff session.
// Dashboard, trainers, and plans are stateless loads and live outside.
type SessionViews struct {
	Members    *MembersView
	Attendance *AttendanceView
}

// Registry maps session IDs to their page engines. Engines are created
// lazily on first use and torn down when the session ends.
type Registry struct {
	api      API
	pageSize int
	interval time.Duration

	views *csmap.CsMap[string, *SessionViews]
	mu    sync.Mutex // serializes lazy creation only
}

// NewRegistry builds the registry.
// PRE: pageSize > 0, interval > 0
func NewRegistry(api API, pageSize int, interval time.Duration) *Registry {
	return &Registry{
		api:      api,
		pageSize: pageSize,
		interval: interval,
		views:    csmap.Create[string, *SessionViews](csmap.WithSize[string, *SessionViews](64)),
	}
}

// For returns the page engines for the given session, creating them on
// first use.
// PRE: sessionID identifies an authenticated session
func (r *Registry) For(sessionID string) *SessionViews {
	if sv, ok := r.views.Load(sessionID); ok {
		return sv
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if sv, ok := r.views.Load(sessionID); ok {
		return sv
	}
	sv := &SessionViews{
		Members:    NewMembersView(r.api, r.pageSize, r.interval, searchTimeout),
		Attendance: NewAttendanceView(r.api, r.pageSize, r.interval, searchTimeout),
	}
	r.views.Store(sessionID, sv)
	slog.Debug("session_views_created", "session_count", r.views.Count())
	return sv
}

// Evict tears down the engines for a session that ended, stopping any
// pending debounce timers.
func (r *Registry) Evict(sessionID string) {
	sv, ok := r.views.Load(sessionID)
	if !ok {
		return
	}
	r.views.Delete(sessionID)
	sv.Members.Stop()
	sv.Attendance.Stop()
	slog.Debug("session_views_evicted", "session_count", r.views.Count())
}

// Count returns the number of live session view sets.
func (r *Registry) Count() int {
	return r.views.Count()
}
