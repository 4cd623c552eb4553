package attendance_test

import (
	"testing"

	"github.com/revanth2426/gym-frontend-new/internal/domain/attendance"
)

// TestResolveCheckInTarget tests member resolution for check-in submissions.
func TestResolveCheckInTarget(t *testing.T) {
	tests := []struct {
		name       string
		selectedID int64
		freeText   string
		wantID     int64
		wantErr    error
	}{
		{"picked candidate wins", 42, "999", 42, nil},
		{"picked candidate with empty text", 42, "", 42, nil},
		{"numeric free text", 0, "123", 123, nil},
		{"numeric free text with spaces", 0, "  123  ", 123, nil},
		{"empty input", 0, "", 0, attendance.ErrNoMemberSelected},
		{"whitespace input", 0, "   ", 0, attendance.ErrNoMemberSelected},
		{"non-numeric free text", 0, "john", 0, attendance.ErrNotNumericID},
		{"mixed free text", 0, "12a", 0, attendance.ErrNotNumericID},
		{"negative id", 0, "-3", 0, attendance.ErrNotNumericID},
		{"zero id", 0, "0", 0, attendance.ErrNotNumericID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := attendance.ResolveCheckInTarget(tt.selectedID, tt.freeText)
			if id != tt.wantID {
				t.Errorf("ResolveCheckInTarget() id = %d, want %d", id, tt.wantID)
			}
			if err != tt.wantErr {
				t.Errorf("ResolveCheckInTarget() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
