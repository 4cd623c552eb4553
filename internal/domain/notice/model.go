package notice

import (
	"errors"
	"time"
)

// Notice statuses
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

// ValidStatuses contains all valid notice statuses.
var ValidStatuses = []string{StatusDraft, StatusPublished}

// Domain errors
var (
	ErrEmptyTitle       = errors.New("notice title cannot be empty")
	ErrEmptyContent     = errors.New("notice content cannot be empty")
	ErrInvalidStatus    = errors.New("notice status must be one of: draft, published")
	ErrAlreadyPinned    = errors.New("notice is already pinned")
	ErrNotPinned        = errors.New("notice is not pinned")
	ErrAlreadyPublished = errors.New("notice is already published")
)

// Notice is a staff noticeboard entry: shift handover notes, upcoming
// maintenance, front-desk reminders. Content supports Markdown formatting.
// Published notices appear on the dashboard; pinned ones sort first.
type Notice struct {
	ID          string
	Status      string // draft, published
	Title       string
	Content     string // Markdown content
	CreatedBy   string // AccountID of creator
	AuthorName  string // Display name of the author
	Pinned      bool
	PinnedAt    time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
	PublishedAt time.Time
}

// Validate checks if the Notice has valid data.
// PRE: Notice struct is populated
// POST: Returns nil if valid, error otherwise
func (n *Notice) Validate() error {
	if n.Title == "" {
		return ErrEmptyTitle
	}
	if n.Content == "" {
		return ErrEmptyContent
	}
	if !isValidStatus(n.Status) {
		return ErrInvalidStatus
	}
	return nil
}

// Pin marks the notice as pinned.
// PRE: Notice is not already pinned
// POST: Pinned is true, PinnedAt is set
func (n *Notice) Pin(now time.Time) error {
	if n.Pinned {
		return ErrAlreadyPinned
	}
	n.Pinned = true
	n.PinnedAt = now
	return nil
}

// Unpin removes the pinned status.
// PRE: Notice is pinned
// POST: Pinned is false, PinnedAt is zeroed
func (n *Notice) Unpin() error {
	if !n.Pinned {
		return ErrNotPinned
	}
	n.Pinned = false
	n.PinnedAt = time.Time{}
	return nil
}

// IsDraft returns true if the notice is in draft state.
// INVARIANT: Status field is not mutated
func (n *Notice) IsDraft() bool {
	return n.Status == StatusDraft
}

// IsPublished returns true if the notice has been published.
// INVARIANT: Status field is not mutated
func (n *Notice) IsPublished() bool {
	return n.Status == StatusPublished
}

// Publish moves the notice from draft to published.
// PRE: Notice is in draft state
// POST: Status is published, PublishedAt is set
func (n *Notice) Publish(now time.Time) error {
	if n.IsPublished() {
		return ErrAlreadyPublished
	}
	n.Status = StatusPublished
	n.PublishedAt = now
	return nil
}

func isValidStatus(s string) bool {
	for _, v := range ValidStatuses {
		if v == s {
			return true
		}
	}
	return false
}
