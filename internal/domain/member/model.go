package member

import (
	"errors"
	"strings"
)

// Max length constants for user-editable fields.
const (
	MaxNameLength    = 100
	MaxContactLength = 20
)

// Membership status constants as the gym API reports them.
const (
	StatusActive   = "Active"
	StatusInactive = "Inactive"
	StatusExpired  = "Expired"
)

// Gender constants accepted by the registration form.
const (
	GenderMale   = "Male"
	GenderFemale = "Female"
	GenderOther  = "Other"
)

// ValidStatuses contains all membership status values.
var ValidStatuses = []string{StatusActive, StatusInactive, StatusExpired}

// ValidGenders contains all accepted gender values.
var ValidGenders = []string{GenderMale, GenderFemale, GenderOther}

// Domain errors
var (
	ErrEmptyName      = errors.New("member name cannot be empty")
	ErrNameTooLong    = errors.New("member name cannot exceed 100 characters")
	ErrInvalidAge     = errors.New("member age must be between 1 and 120")
	ErrInvalidGender  = errors.New("gender must be one of: Male, Female, Other")
	ErrEmptyContact   = errors.New("contact number cannot be empty")
	ErrContactTooLong = errors.New("contact number cannot exceed 20 characters")
	ErrInvalidStatus  = errors.New("membership status must be one of: Active, Inactive, Expired")
)

// Member is the console's copy of a gym member as served by the gym API.
// It is a page-scoped display record: fetched per page view, never persisted
// locally, and discarded when the view resets.
type Member struct {
	ID               int64
	Name             string
	Age              int
	Gender           string
	ContactNumber    string
	MembershipStatus string
	JoiningDate      string // YYYY-MM-DD format
	PlanAssignments  []PlanAssignment
}

// PlanAssignment links a member to a membership plan for a date range.
type PlanAssignment struct {
	ID        int64
	PlanID    int64
	PlanName  string
	StartDate string // YYYY-MM-DD format
	EndDate   string // YYYY-MM-DD format
	Active    bool
}

// Draft carries user-entered fields for creating or updating a member.
// PlanID is optional; zero means no plan assignment is requested.
type Draft struct {
	Name             string
	Age              int
	Gender           string
	ContactNumber    string
	MembershipStatus string
	PlanID           int64
}

// Validate checks if the Draft has valid data before it is sent upstream.
// PRE: Draft struct is populated from form input
// POST: Returns error if validation fails, nil otherwise
// INVARIANT: failing drafts never reach the gym API
func (d *Draft) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return ErrEmptyName
	}
	if len(d.Name) > MaxNameLength {
		return ErrNameTooLong
	}
	if d.Age < 1 || d.Age > 120 {
		return ErrInvalidAge
	}
	if !contains(ValidGenders, d.Gender) {
		return ErrInvalidGender
	}
	if strings.TrimSpace(d.ContactNumber) == "" {
		return ErrEmptyContact
	}
	if len(d.ContactNumber) > MaxContactLength {
		return ErrContactTooLong
	}
	if !contains(ValidStatuses, d.MembershipStatus) {
		return ErrInvalidStatus
	}
	return nil
}

// IsActive returns true if the member's membership is currently active.
// INVARIANT: Member fields are not mutated
func (m *Member) IsActive() bool {
	return m.MembershipStatus == StatusActive
}

// ActiveAssignment returns the active plan assignment with the latest start
// date, or nil when the member has none. The gym API may briefly hold more
// than one active assignment for a member; picking the latest start keeps
// the edit form pre-fill deterministic.
// INVARIANT: Member fields are not mutated
func (m *Member) ActiveAssignment() *PlanAssignment {
	var latest *PlanAssignment
	for i := range m.PlanAssignments {
		a := &m.PlanAssignments[i]
		if !a.Active {
			continue
		}
		if latest == nil || a.StartDate > latest.StartDate {
			latest = a
		}
	}
	return latest
}

// EditDraft builds a Draft pre-filled from the member's current state.
// PRE: Member was fetched from the gym API
// POST: Returns a Draft whose PlanID reflects the active assignment, if any
func (m *Member) EditDraft() Draft {
	d := Draft{
		Name:             m.Name,
		Age:              m.Age,
		Gender:           m.Gender,
		ContactNumber:    m.ContactNumber,
		MembershipStatus: m.MembershipStatus,
	}
	if a := m.ActiveAssignment(); a != nil {
		d.PlanID = a.PlanID
	}
	return d
}

func contains(valid []string, v string) bool {
	for _, s := range valid {
		if s == v {
			return true
		}
	}
	return false
}
