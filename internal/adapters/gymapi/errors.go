package gymapi

import (
	"errors"
	"fmt"
)

// Kind classifies what went wrong with an upstream call. Pages and views
// branch on the kind, never on raw status codes.
type Kind string

const (
	// KindNetwork: the request never produced an HTTP response.
	KindNetwork Kind = "network"
	// KindStatus: the server answered with a non-2xx status.
	KindStatus Kind = "status"
	// KindNotFound: a referenced identifier does not exist upstream.
	KindNotFound Kind = "not_found"
	// KindDecode: the response body did not match the expected shape.
	KindDecode Kind = "decode"
)

// ErrNotFound matches any 404 from the gym API via errors.Is.
var ErrNotFound = errors.New("gym api: resource not found")

// Error is the typed failure for every gym API call.
type Error struct {
	Kind       Kind
	Op         string // e.g. "GET /users"
	HTTPStatus int    // set for status and not_found kinds
	Message    string // server-provided message when the body carried one
	Err        error  // underlying cause, if any
}

// Error renders the failure for logs and flash messages.
func (e *Error) Error() string {
	switch e.Kind {
	case KindNetwork:
		return fmt.Sprintf("gym api: %s: cannot reach server: %v", e.Op, e.Err)
	case KindNotFound:
		if e.Message != "" {
			return fmt.Sprintf("gym api: %s: not found: %s", e.Op, e.Message)
		}
		return fmt.Sprintf("gym api: %s: not found", e.Op)
	case KindStatus:
		if e.Message != "" {
			return fmt.Sprintf("gym api: %s: server returned %d: %s", e.Op, e.HTTPStatus, e.Message)
		}
		return fmt.Sprintf("gym api: %s: server returned %d", e.Op, e.HTTPStatus)
	case KindDecode:
		return fmt.Sprintf("gym api: %s: unexpected response: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("gym api: %s: %v", e.Op, e.Err)
}

// Unwrap exposes the underlying cause to errors.Is/As chains.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrNotFound) match 404 failures.
func (e *Error) Is(target error) bool {
	return target == ErrNotFound && e.Kind == KindNotFound
}

// UserMessage returns a string suitable for flash toasts and inline page
// errors: the server's own message when present, a plain fallback otherwise.
func (e *Error) UserMessage() string {
	switch e.Kind {
	case KindNetwork:
		return "The gym server is unreachable. Check your connection and try again."
	case KindNotFound:
		if e.Message != "" {
			return e.Message
		}
		return "That record no longer exists."
	case KindStatus:
		if e.Message != "" {
			return e.Message
		}
		return fmt.Sprintf("The gym server rejected the request (status %d).", e.HTTPStatus)
	case KindDecode:
		return "The gym server sent an unexpected response."
	}
	return "Something went wrong talking to the gym server."
}

// UserMessage extracts a display message from any error, using the typed
// form when available.
func UserMessage(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.UserMessage()
	}
	return err.Error()
}
