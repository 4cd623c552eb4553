// Package listview holds the state container behind every paginated page
// of the console. One upstream request per load, explicit commit and
// rollback for optimistic edits, and generation counters so a slow
// response can never overwrite a newer one.
package listview

import (
	"sync"

	"github.com/revanth2426/gym-frontend-new/internal/domain/paging"
)

// State is an immutable snapshot of a list for rendering. Items holds the
// rows of the current page, including any provisional optimistic rows.
type State[T any] struct {
	Items         []T
	PageIndex     int // 0-based, mirrors the gym API envelope
	PageSize      int
	TotalPages    int
	TotalElements int
	Loading       bool
	Err           string
}

// Snapshot captures the full list state before an optimistic mutation so a
// failed upstream call can restore it exactly.
type Snapshot[T any] struct {
	state State[T]
}

// Store serializes every state transition for one list. All methods are
// safe for concurrent use; handler goroutines are the only mutators.
type Store[T any] struct {
	mu  sync.Mutex
	st  State[T]
	gen uint64 // latest issued load generation
}

// NewStore creates a list store for the given page size.
// PRE: pageSize > 0
func NewStore[T any](pageSize int) *Store[T] {
	return &Store[T]{st: State[T]{PageSize: pageSize}}
}

// State returns a copy of the current state. The Items slice is copied so
// renderers never alias the store's backing array.
func (s *Store[T]) State() State[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.copy()
}

// BeginLoad starts a new load and returns its generation. Every upstream
// request gets exactly one generation; the response must present it back.
// POST: Loading is true, Err is cleared, a fresh generation is issued
func (s *Store[T]) BeginLoad() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.st.Loading = true
	s.st.Err = ""
	return s.gen
}

// CompleteLoad installs a fetched page if gen is still the latest request.
// A superseded response is discarded without touching state.
// POST: Returns true when the page was installed
func (s *Store[T]) CompleteLoad(gen uint64, page paging.Page[T]) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return false
	}
	s.st.Items = page.Content
	s.st.PageIndex = page.Number
	if page.Size > 0 {
		s.st.PageSize = page.Size
	}
	s.st.TotalPages = page.TotalPages
	s.st.TotalElements = page.TotalElements
	s.st.Loading = false
	s.st.Err = ""
	return true
}

// FailLoad records a load failure if gen is still the latest request. The
// previous rows stay on screen next to the error message.
// POST: Returns true when the failure was recorded
func (s *Store[T]) FailLoad(gen uint64, msg string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return false
	}
	s.st.Loading = false
	s.st.Err = msg
	return true
}

// Snapshot captures the current state for later rollback.
func (s *Store[T]) Snapshot() Snapshot[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot[T]{state: s.st.copy()}
}

// Restore puts the state back exactly as the snapshot recorded it.
// POST: Items, page position, and totals all match the snapshot
func (s *Store[T]) Restore(snap Snapshot[T]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st = snap.state.copy()
}

// OnFirstPage returns true when the first page is showing. Lists sort
// newest first, so a created record is visible only there.
func (s *Store[T]) OnFirstPage() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.PageIndex == 0
}

// OptimisticPrepend inserts a provisional row at the top and grows the
// totals, recomputing the page count from the new element count. A row
// pushed past the page size falls off the bottom, exactly as it would
// once the server re-serves the page.
// POST: len(Items) <= PageSize; TotalElements and TotalPages updated
func (s *Store[T]) OptimisticPrepend(item T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]T, 0, len(s.st.Items)+1)
	items = append(items, item)
	items = append(items, s.st.Items...)
	if s.st.PageSize > 0 && len(items) > s.st.PageSize {
		items = items[:s.st.PageSize]
	}
	s.st.Items = items
	s.st.TotalElements++
	s.st.TotalPages = pageCount(s.st.TotalElements, s.st.PageSize)
}

// CommitPrepend replaces the provisional row with the record the server
// stored, matched by position zero.
// PRE: OptimisticPrepend was the last mutation
// POST: Items[0] is the server's record
func (s *Store[T]) CommitPrepend(item T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.st.Items) == 0 {
		s.st.Items = []T{item}
		return
	}
	s.st.Items[0] = item
}

// OptimisticReplace swaps the first row matching the predicate.
// POST: Returns true when a row was replaced
func (s *Store[T]) OptimisticReplace(match func(T) bool, item T) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.st.Items {
		if match(s.st.Items[i]) {
			s.st.Items[i] = item
			return true
		}
	}
	return false
}

// OptimisticRemove deletes the first row matching the predicate and
// shrinks the totals.
// POST: Returns true when a row was removed; totals updated
func (s *Store[T]) OptimisticRemove(match func(T) bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.st.Items {
		if match(s.st.Items[i]) {
			s.st.Items = append(s.st.Items[:i:i], s.st.Items[i+1:]...)
			if s.st.TotalElements > 0 {
				s.st.TotalElements--
			}
			s.st.TotalPages = pageCount(s.st.TotalElements, s.st.PageSize)
			return true
		}
	}
	return false
}

// Empty returns true when the current page shows no rows.
func (s *Store[T]) Empty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.st.Items) == 0
}

// PageIndex returns the current 0-based page index.
func (s *Store[T]) PageIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.PageIndex
}

// PageSize returns the current page size.
func (s *Store[T]) PageSize() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.PageSize
}

func (st State[T]) copy() State[T] {
	out := st
	if st.Items != nil {
		out.Items = make([]T, len(st.Items))
		copy(out.Items, st.Items)
	}
	return out
}

// pageCount is ceil(total/size). An empty list has zero pages, matching
// the gym API's envelope for empty results.
func pageCount(total, size int) int {
	if size < 1 || total < 1 {
		return 0
	}
	return (total + size - 1) / size
}
