package member_test

import (
	"strings"
	"testing"

	"github.com/revanth2426/gym-frontend-new/internal/domain/member"
)

// TestDraftValidation tests validation of member drafts before submission.
func TestDraftValidation(t *testing.T) {
	valid := member.Draft{
		Name:             "John Doe",
		Age:              30,
		Gender:           member.GenderMale,
		ContactNumber:    "0211234567",
		MembershipStatus: member.StatusActive,
	}

	tests := []struct {
		name    string
		mutate  func(d *member.Draft)
		wantErr error
	}{
		{"valid draft", func(d *member.Draft) {}, nil},
		{"empty name", func(d *member.Draft) { d.Name = "  " }, member.ErrEmptyName},
		{"name too long", func(d *member.Draft) { d.Name = strings.Repeat("a", 101) }, member.ErrNameTooLong},
		{"zero age", func(d *member.Draft) { d.Age = 0 }, member.ErrInvalidAge},
		{"negative age", func(d *member.Draft) { d.Age = -5 }, member.ErrInvalidAge},
		{"age too high", func(d *member.Draft) { d.Age = 121 }, member.ErrInvalidAge},
		{"invalid gender", func(d *member.Draft) { d.Gender = "unknown" }, member.ErrInvalidGender},
		{"empty contact", func(d *member.Draft) { d.ContactNumber = "" }, member.ErrEmptyContact},
		{"invalid status", func(d *member.Draft) { d.MembershipStatus = "Suspended" }, member.ErrInvalidStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := valid
			tt.mutate(&d)
			err := d.Validate()
			if err != tt.wantErr {
				t.Errorf("Draft.Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// TestMemberIsActive tests the IsActive method on Member.
func TestMemberIsActive(t *testing.T) {
	tests := []struct {
		name   string
		status string
		want   bool
	}{
		{"active member", member.StatusActive, true},
		{"inactive member", member.StatusInactive, false},
		{"expired member", member.StatusExpired, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := member.Member{MembershipStatus: tt.status}
			if got := m.IsActive(); got != tt.want {
				t.Errorf("Member.IsActive() = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestActiveAssignment tests selecting the active assignment for edit pre-fill.
func TestActiveAssignment(t *testing.T) {
	t.Run("no assignments", func(t *testing.T) {
		m := member.Member{}
		if got := m.ActiveAssignment(); got != nil {
			t.Errorf("ActiveAssignment() = %v, want nil", got)
		}
	})

	t.Run("only inactive assignments", func(t *testing.T) {
		m := member.Member{PlanAssignments: []member.PlanAssignment{
			{ID: 1, PlanID: 10, Active: false},
			{ID: 2, PlanID: 20, Active: false},
		}}
		if got := m.ActiveAssignment(); got != nil {
			t.Errorf("ActiveAssignment() = %v, want nil", got)
		}
	})

	t.Run("single active assignment", func(t *testing.T) {
		m := member.Member{PlanAssignments: []member.PlanAssignment{
			{ID: 1, PlanID: 10, Active: false, StartDate: "2025-01-01"},
			{ID: 2, PlanID: 20, Active: true, StartDate: "2025-03-01"},
		}}
		got := m.ActiveAssignment()
		if got == nil || got.ID != 2 {
			t.Errorf("ActiveAssignment() = %v, want assignment 2", got)
		}
	})

	t.Run("multiple active picks latest start", func(t *testing.T) {
		m := member.Member{PlanAssignments: []member.PlanAssignment{
			{ID: 1, PlanID: 10, Active: true, StartDate: "2025-01-01"},
			{ID: 3, PlanID: 30, Active: true, StartDate: "2025-06-01"},
			{ID: 2, PlanID: 20, Active: true, StartDate: "2025-03-01"},
		}}
		got := m.ActiveAssignment()
		if got == nil || got.ID != 3 {
			t.Errorf("ActiveAssignment() = %v, want assignment 3", got)
		}
	})
}

// TestEditDraft tests building a pre-filled draft from a fetched member.
func TestEditDraft(t *testing.T) {
	m := member.Member{
		ID:               7,
		Name:             "Jane Smith",
		Age:              28,
		Gender:           member.GenderFemale,
		ContactNumber:    "0219876543",
		MembershipStatus: member.StatusActive,
		PlanAssignments: []member.PlanAssignment{
			{ID: 1, PlanID: 10, Active: false, StartDate: "2024-01-01"},
			{ID: 2, PlanID: 20, Active: true, StartDate: "2025-02-01"},
		},
	}

	d := m.EditDraft()
	if d.Name != m.Name || d.Age != m.Age || d.Gender != m.Gender {
		t.Errorf("EditDraft() = %+v, want fields copied from member", d)
	}
	if d.PlanID != 20 {
		t.Errorf("EditDraft().PlanID = %d, want 20", d.PlanID)
	}

	t.Run("no active assignment leaves plan unset", func(t *testing.T) {
		m := member.Member{Name: "X", Age: 20, Gender: member.GenderOther, ContactNumber: "1", MembershipStatus: member.StatusInactive}
		if d := m.EditDraft(); d.PlanID != 0 {
			t.Errorf("EditDraft().PlanID = %d, want 0", d.PlanID)
		}
	})
}
