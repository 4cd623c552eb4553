package dashboard

import "time"

// Summary carries the headline counts for the dashboard cards.
type Summary struct {
	TotalMembers  int
	ActiveMembers int
	TotalTrainers int
	TotalPlans    int
	TodayCheckIns int
}

// PlanShare is one slice of the plan distribution chart.
type PlanShare struct {
	PlanName    string
	MemberCount int
}

// DailyAttendancePoint is one day of the attendance chart.
type DailyAttendancePoint struct {
	Date  string // YYYY-MM-DD format
	Count int
}

// ExpiringMembership is one row of the expiring-memberships widget.
type ExpiringMembership struct {
	MemberID   int64
	MemberName string
	PlanName   string
	EndDate    string // YYYY-MM-DD format
	DaysLeft   int
}

// Urgent returns true when the membership expires within a week.
// INVARIANT: fields are not mutated
func (e *ExpiringMembership) Urgent() bool {
	return e.DaysLeft <= 7
}

// ChartRange is the date window for the daily attendance chart.
type ChartRange struct {
	Start time.Time
	End   time.Time
}

// DefaultChartRange returns the trailing seven-day window ending today.
// POST: Start is six days before End; both are date-truncated
func DefaultChartRange(now time.Time) ChartRange {
	end := now.Truncate(24 * time.Hour)
	return ChartRange{Start: end.AddDate(0, 0, -6), End: end}
}

// StartDate returns the range start formatted for the gym API query.
func (r ChartRange) StartDate() string { return r.Start.Format("2006-01-02") }

// EndDate returns the range end formatted for the gym API query.
func (r ChartRange) EndDate() string { return r.End.Format("2006-01-02") }
