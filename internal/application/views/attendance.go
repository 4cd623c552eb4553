package views

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/revanth2426/gym-frontend-new/internal/adapters/gymapi"
	"github.com/revanth2426/gym-frontend-new/internal/application/debounce"
	"github.com/revanth2426/gym-frontend-new/internal/application/listview"
	"github.com/revanth2426/gym-frontend-new/internal/domain/attendance"
	"github.com/revanth2426/gym-frontend-new/internal/domain/member"
)

// AttendanceView is the state engine behind the attendance page: the
// paginated check-in log plus the debounced member lookup that feeds the
// check-in box.
type AttendanceView struct {
	api    AttendanceAPI
	list   *listview.Store[attendance.Record]
	search *memberSearch
}

// NewAttendanceView builds the engine.
// PRE: pageSize > 0, interval > 0
func NewAttendanceView(api AttendanceAPI, pageSize int, interval, searchTimeout time.Duration) *AttendanceView {
	return &AttendanceView{
		api:    api,
		list:   listview.NewStore[attendance.Record](pageSize),
		search: newMemberSearch(api.SearchMembers, interval, searchTimeout),
	}
}

// State returns the current list state for rendering.
func (v *AttendanceView) State() listview.State[attendance.Record] {
	return v.list.State()
}

// Load fetches one page of the check-in log, newest first.
// PRE: pageIndex >= 0
func (v *AttendanceView) Load(ctx context.Context, pageIndex int) listview.State[attendance.Record] {
	gen := v.list.BeginLoad()
	page, err := v.api.ListAttendance(ctx, pageIndex, v.list.PageSize())
	if err != nil {
		v.list.FailLoad(gen, gymapi.UserMessage(err))
		slog.Warn("attendance_load_failed", "page", pageIndex, "error", err.Error())
		return v.list.State()
	}
	v.list.CompleteLoad(gen, page)
	return v.list.State()
}

// TypeSearch registers a keystroke in the check-in member lookup.
func (v *AttendanceView) TypeSearch(text string) debounce.Outcome {
	return v.search.Type(text)
}

// SearchResults returns the current lookup candidates.
func (v *AttendanceView) SearchResults() ([]member.Member, bool, string) {
	return v.search.Results()
}

// CheckIn records a check-in for the member the submission refers to: a
// picked candidate, or the raw text when it is a numeric member ID. The
// log re-fetches page 0 afterwards so the new entry shows at the top.
// POST: Returns the flash message, or an error for the toast
func (v *AttendanceView) CheckIn(ctx context.Context, selectedID int64, freeText string) (string, error) {
	memberID, err := attendance.ResolveCheckInTarget(selectedID, freeText)
	if err != nil {
		return "", err
	}

	rec, err := v.api.CheckIn(ctx, memberID)
	if err != nil {
		slog.Warn("check_in_failed", "member_id", memberID, "error", err.Error())
		return "", fmt.Errorf("check in member %d: %w", memberID, err)
	}

	// Clear the lookup box and show the fresh log.
	v.search.Type("")
	v.Load(ctx, 0)
	slog.Info("member_checked_in", "member_id", rec.MemberID, "record_id", rec.ID)

	if rec.MemberName != "" {
		return fmt.Sprintf("Checked in %s.", rec.MemberName), nil
	}
	return fmt.Sprintf("Checked in member %d.", rec.MemberID), nil
}

// Stop releases timer resources. Called on session eviction.
func (v *AttendanceView) Stop() {
	v.search.Stop()
}
