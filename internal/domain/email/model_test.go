package email

import (
	"strings"
	"testing"
)

// TestReminder_Validate_Valid tests that a well-formed reminder passes validation.
func TestReminder_Validate_Valid(t *testing.T) {
	r := Reminder{
		MemberID:   12,
		MemberName: "John Doe",
		To:         "john@example.com",
		PlanName:   "Premium",
		EndDate:    "2026-09-01",
		DaysLeft:   9,
	}
	if err := r.Validate(); err != nil {
		t.Errorf("expected valid reminder, got: %v", err)
	}
}

// TestReminder_Validate_MissingRecipient tests that empty recipient is rejected.
func TestReminder_Validate_MissingRecipient(t *testing.T) {
	r := Reminder{MemberName: "John", EndDate: "2026-09-01"}
	if err := r.Validate(); err != ErrEmptyRecipient {
		t.Errorf("expected ErrEmptyRecipient, got: %v", err)
	}
}

// TestReminder_Validate_BadRecipient tests that a malformed address is rejected.
func TestReminder_Validate_BadRecipient(t *testing.T) {
	r := Reminder{To: "not-an-address", MemberName: "John", EndDate: "2026-09-01"}
	if err := r.Validate(); err != ErrInvalidRecipient {
		t.Errorf("expected ErrInvalidRecipient, got: %v", err)
	}
}

// TestReminder_Validate_MissingName tests that empty member name is rejected.
func TestReminder_Validate_MissingName(t *testing.T) {
	r := Reminder{To: "a@b.c", EndDate: "2026-09-01"}
	if err := r.Validate(); err != ErrEmptyMemberName {
		t.Errorf("expected ErrEmptyMemberName, got: %v", err)
	}
}

// TestReminder_Validate_MissingEndDate tests that empty end date is rejected.
func TestReminder_Validate_MissingEndDate(t *testing.T) {
	r := Reminder{To: "a@b.c", MemberName: "John"}
	if err := r.Validate(); err != ErrEmptyEndDate {
		t.Errorf("expected ErrEmptyEndDate, got: %v", err)
	}
}

// TestReminder_Subject tests the subject line.
func TestReminder_Subject(t *testing.T) {
	r := Reminder{PlanName: "Premium", EndDate: "2026-09-01"}
	got := r.Subject()
	want := "Your Premium membership expires on 2026-09-01"
	if got != want {
		t.Errorf("Subject() = %q, want %q", got, want)
	}
}

// TestReminder_HTMLBody tests body rendering and escaping.
func TestReminder_HTMLBody(t *testing.T) {
	t.Run("plural days", func(t *testing.T) {
		r := Reminder{MemberName: "John", PlanName: "Premium", EndDate: "2026-09-01", DaysLeft: 9, GymName: "Iron Works"}
		body := r.HTMLBody()
		if !strings.Contains(body, "expires in 9 days, on 2026-09-01") {
			t.Errorf("HTMLBody() missing expiry sentence: %s", body)
		}
		if !strings.Contains(body, "Iron Works") {
			t.Errorf("HTMLBody() missing gym name: %s", body)
		}
	})

	t.Run("single day", func(t *testing.T) {
		r := Reminder{MemberName: "John", PlanName: "Basic", EndDate: "2026-09-01", DaysLeft: 1}
		if !strings.Contains(r.HTMLBody(), "expires tomorrow") {
			t.Errorf("HTMLBody() should mention tomorrow for one day left")
		}
	})

	t.Run("member name is escaped", func(t *testing.T) {
		r := Reminder{MemberName: "<script>x</script>", PlanName: "Basic", EndDate: "2026-09-01", DaysLeft: 3}
		body := r.HTMLBody()
		if strings.Contains(body, "<script>") {
			t.Errorf("HTMLBody() must escape member name: %s", body)
		}
	})

	t.Run("missing gym name falls back", func(t *testing.T) {
		r := Reminder{MemberName: "John", PlanName: "Basic", EndDate: "2026-09-01", DaysLeft: 3}
		if !strings.Contains(r.HTMLBody(), "the gym") {
			t.Errorf("HTMLBody() should fall back to a generic sign-off")
		}
	})
}
