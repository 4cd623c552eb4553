// Package debounce coalesces search keystrokes into at most one upstream
// query per quiet period. Every keystroke gets a generation; results are
// only valid while their generation is still the latest, so an out-of-order
// response can never replace a newer result set.
package debounce

import (
	"strings"
	"sync"
	"time"
)

// Outcome reports what a keystroke did.
type Outcome int

const (
	// Scheduled: the query will run once the quiet period elapses.
	Scheduled Outcome = iota
	// Cleared: blank input; any pending query was cancelled and no
	// upstream call will be made.
	Cleared
	// Unchanged: the input repeats the text already registered, so
	// nothing was rescheduled. Reported by callers that poll for
	// results with the same text; the debouncer itself never returns it.
	Unchanged
)

// Debouncer runs a search function after a quiet period. Safe for
// concurrent use.
type Debouncer struct {
	mu       sync.Mutex
	interval time.Duration
	run      func(text string, gen uint64)
	timer    *time.Timer
	gen      uint64
}

// New creates a debouncer that invokes run on a timer goroutine once the
// quiet period passes without further keystrokes.
// PRE: interval > 0; run is non-nil and tolerates concurrent invocation
func New(interval time.Duration, run func(text string, gen uint64)) *Debouncer {
	return &Debouncer{interval: interval, run: run}
}

// Type registers a keystroke. A pending query for an older keystroke is
// cancelled; blank input short-circuits without scheduling anything.
// POST: Returns the keystroke's generation and whether a query is pending
func (d *Debouncer) Type(text string) (uint64, Outcome) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.gen++
	gen := d.gen
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}

	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return gen, Cleared
	}

	d.timer = time.AfterFunc(d.interval, func() { d.fire(gen, trimmed) })
	return gen, Scheduled
}

// IsCurrent reports whether gen is still the latest keystroke. Views call
// this before installing results; a false answer means discard.
func (d *Debouncer) IsCurrent(gen uint64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return gen == d.gen
}

// Stop cancels any pending query. Used when a page view is evicted.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// fire runs the query unless a newer keystroke superseded it while the
// timer was firing.
func (d *Debouncer) fire(gen uint64, text string) {
	d.mu.Lock()
	current := gen == d.gen
	d.mu.Unlock()
	if !current {
		return
	}
	d.run(text, gen)
}
