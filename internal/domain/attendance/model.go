package attendance

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

// Domain errors
var (
	ErrNoMemberSelected = errors.New("select a member or enter a member ID")
	ErrNotNumericID     = errors.New("free-text check-in input must be a numeric member ID")
)

// Record is one check-in event as served by the gym API. MemberName is
// denormalized by the server so the attendance list renders without
// per-row member lookups.
type Record struct {
	ID          int64
	MemberID    int64
	MemberName  string
	CheckInTime time.Time
}

// ResolveCheckInTarget decides which member a check-in submission refers to.
// A picked search candidate wins; otherwise the raw search text is accepted
// when it parses as a numeric member ID.
// PRE: selectedID is 0 when no candidate was picked
// POST: Returns the member ID to check in, or a validation error
func ResolveCheckInTarget(selectedID int64, freeText string) (int64, error) {
	if selectedID != 0 {
		return selectedID, nil
	}
	text := strings.TrimSpace(freeText)
	if text == "" {
		return 0, ErrNoMemberSelected
	}
	id, err := strconv.ParseInt(text, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrNotNumericID
	}
	return id, nil
}
