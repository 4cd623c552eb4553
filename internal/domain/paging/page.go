package paging

// Page mirrors the gym API's pagination envelope. Number is the 0-based
// page index exactly as the API serves it.
type Page[T any] struct {
	Content       []T
	Number        int
	Size          int
	TotalPages    int
	TotalElements int
}

// IsEmpty returns true when the page holds no rows.
// INVARIANT: page fields are not mutated
func (p Page[T]) IsEmpty() bool {
	return len(p.Content) == 0
}

// HasPrev returns true when a previous page exists.
func (p Page[T]) HasPrev() bool {
	return p.Number > 0
}

// HasNext returns true when a following page exists.
func (p Page[T]) HasNext() bool {
	return p.Number < p.TotalPages-1
}

// Map converts a page's content with f while preserving the envelope.
func Map[T, U any](p Page[T], f func(T) U) Page[U] {
	out := Page[U]{
		Number:        p.Number,
		Size:          p.Size,
		TotalPages:    p.TotalPages,
		TotalElements: p.TotalElements,
	}
	if len(p.Content) > 0 {
		out.Content = make([]U, len(p.Content))
		for i, v := range p.Content {
			out.Content[i] = f(v)
		}
	}
	return out
}
