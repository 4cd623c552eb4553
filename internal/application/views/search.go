package views

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/revanth2426/gym-frontend-new/internal/adapters/gymapi"
	"github.com/revanth2426/gym-frontend-new/internal/application/debounce"
	"github.com/revanth2426/gym-frontend-new/internal/domain/member"
)

// searchFunc runs the upstream free-text member search.
type searchFunc func(ctx context.Context, query string) ([]member.Member, error)

// memberSearch is the debounced member lookup shared by the members page
// and the attendance check-in box. Results carry the generation of the
// keystroke that produced them; a superseded result is discarded instead
// of clobbering a newer one.
type memberSearch struct {
	deb     *debounce.Debouncer
	run     searchFunc
	timeout time.Duration

	mu         sync.Mutex
	lastText   string
	candidates []member.Member
	pending    bool
	errMsg     string
}

// newMemberSearch builds the search component. interval is the quiet
// period; timeout caps each upstream query, which runs detached from any
// request context because it fires after the keystroke's request ended.
func newMemberSearch(run searchFunc, interval, timeout time.Duration) *memberSearch {
	s := &memberSearch{run: run, timeout: timeout}
	s.deb = debounce.New(interval, s.query)
	return s
}

// Type registers one keystroke. Blank input clears candidates without an
// upstream call; anything else schedules a query for after the quiet
// period.
//
// Repeating the text already registered is a poll, not typing: the page
// re-sends the current query while it waits for results. Registering it
// again would bump the generation, reset the quiet period, and hold
// pending true forever, so polls leave the debouncer untouched. A repeat
// after a failed query does re-register, as a retry.
func (s *memberSearch) Type(text string) debounce.Outcome {
	trimmed := strings.TrimSpace(text)

	s.mu.Lock()
	if trimmed != "" && trimmed == s.lastText && s.errMsg == "" {
		s.mu.Unlock()
		return debounce.Unchanged
	}
	s.lastText = trimmed
	s.mu.Unlock()

	_, outcome := s.deb.Type(text)

	s.mu.Lock()
	defer s.mu.Unlock()
	if outcome == debounce.Cleared {
		s.candidates = nil
		s.pending = false
		s.errMsg = ""
		return outcome
	}
	s.pending = true
	return outcome
}

// Results returns the current candidate list and whether a query is
// still pending. The slice is a copy.
func (s *memberSearch) Results() (candidates []member.Member, pending bool, errMsg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.candidates) > 0 {
		candidates = make([]member.Member, len(s.candidates))
		copy(candidates, s.candidates)
	}
	return candidates, s.pending, s.errMsg
}

// Stop cancels any scheduled query. Called on session eviction.
func (s *memberSearch) Stop() {
	s.deb.Stop()
}

// query runs on the debounce timer goroutine once the quiet period
// elapses.
func (s *memberSearch) query(text string, gen uint64) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	found, err := s.run(ctx, text)

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.deb.IsCurrent(gen) {
		// A newer keystroke won while this query was in flight.
		slog.Debug("member_search_superseded", "query", text)
		return
	}
	s.pending = false
	if err != nil {
		s.errMsg = gymapi.UserMessage(err)
		slog.Warn("member_search_failed", "query", text, "error", err.Error())
		return
	}
	s.candidates = found
	s.errMsg = ""
}
