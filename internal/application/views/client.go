// Package views holds the per-page engines behind the console's screens.
// Each engine owns the transient view state for one page (list position,
// optimistic rows, search candidates) and talks to the gym API through a
// narrow interface. Engines live per staff session in a Registry.
package views

import (
	"context"

	"github.com/revanth2426/gym-frontend-new/internal/domain/attendance"
	"github.com/revanth2426/gym-frontend-new/internal/domain/dashboard"
	"github.com/revanth2426/gym-frontend-new/internal/domain/member"
	"github.com/revanth2426/gym-frontend-new/internal/domain/paging"
	"github.com/revanth2426/gym-frontend-new/internal/domain/plan"
	"github.com/revanth2426/gym-frontend-new/internal/domain/trainer"
)

// MemberAPI is the slice of the gym API the members page needs.
type MemberAPI interface {
	ListMembers(ctx context.Context, page, size int) (paging.Page[member.Member], error)
	SearchMembers(ctx context.Context, query string) ([]member.Member, error)
	CreateMember(ctx context.Context, d member.Draft) (member.Member, error)
	UpdateMember(ctx context.Context, id int64, d member.Draft) (member.Member, error)
	DeleteMember(ctx context.Context, id int64) error
	DeletePlanAssignment(ctx context.Context, assignmentID int64) error
	ListPlans(ctx context.Context) ([]plan.MembershipPlan, error)
}

// AttendanceAPI is the slice of the gym API the attendance page needs.
type AttendanceAPI interface {
	ListAttendance(ctx context.Context, page, size int) (paging.Page[attendance.Record], error)
	CheckIn(ctx context.Context, memberID int64) (attendance.Record, error)
	SearchMembers(ctx context.Context, query string) ([]member.Member, error)
}

// CatalogAPI serves the read-only trainer and plan listings.
type CatalogAPI interface {
	ListTrainers(ctx context.Context) ([]trainer.Trainer, error)
	ListPlans(ctx context.Context) ([]plan.MembershipPlan, error)
}

// DashboardAPI is the slice of the gym API the dashboard needs.
type DashboardAPI interface {
	DashboardSummary(ctx context.Context) (dashboard.Summary, error)
	PlanDistribution(ctx context.Context) ([]dashboard.PlanShare, error)
	DailyAttendance(ctx context.Context, startDate, endDate string) ([]dashboard.DailyAttendancePoint, error)
	ExpiringMemberships(ctx context.Context, days int) ([]dashboard.ExpiringMembership, error)
}

// API is the full gym API surface the registry wires into page engines.
// *gymapi.Client satisfies it.
type API interface {
	MemberAPI
	AttendanceAPI
	CatalogAPI
	DashboardAPI
}
