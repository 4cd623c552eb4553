package views

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/revanth2426/gym-frontend-new/internal/adapters/gymapi"
	"github.com/revanth2426/gym-frontend-new/internal/domain/dashboard"
)

// DashboardData is everything the dashboard page renders. Each widget
// carries its own error message so one failed upstream call degrades
// only its card, never the whole page.
type DashboardData struct {
	Summary    dashboard.Summary
	SummaryErr string

	PlanShares    []dashboard.PlanShare
	PlanSharesErr string

	Daily    []dashboard.DailyAttendancePoint
	DailyErr string

	Expiring    []dashboard.ExpiringMembership
	ExpiringErr string
}

// LoadDashboard fetches the four dashboard widgets concurrently. The
// returned data is always renderable; failures surface per widget.
// PRE: expiryDays > 0
func LoadDashboard(ctx context.Context, api DashboardAPI, rng dashboard.ChartRange, expiryDays int) DashboardData {
	var data DashboardData
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s, err := api.DashboardSummary(ctx)
		if err != nil {
			data.SummaryErr = gymapi.UserMessage(err)
			slog.Warn("dashboard_summary_failed", "error", err.Error())
			return nil
		}
		data.Summary = s
		return nil
	})
	g.Go(func() error {
		shares, err := api.PlanDistribution(ctx)
		if err != nil {
			data.PlanSharesErr = gymapi.UserMessage(err)
			slog.Warn("dashboard_plan_distribution_failed", "error", err.Error())
			return nil
		}
		data.PlanShares = shares
		return nil
	})
	g.Go(func() error {
		daily, err := api.DailyAttendance(ctx, rng.StartDate(), rng.EndDate())
		if err != nil {
			data.DailyErr = gymapi.UserMessage(err)
			slog.Warn("dashboard_daily_attendance_failed", "error", err.Error())
			return nil
		}
		data.Daily = daily
		return nil
	})
	g.Go(func() error {
		exp, err := api.ExpiringMemberships(ctx, expiryDays)
		if err != nil {
			data.ExpiringErr = gymapi.UserMessage(err)
			slog.Warn("dashboard_expiring_failed", "error", err.Error())
			return nil
		}
		data.Expiring = exp
		return nil
	})

	// Widget failures never propagate; every goroutine returns nil.
	_ = g.Wait()
	return data
}

// Degraded returns true when at least one widget failed to load.
func (d *DashboardData) Degraded() bool {
	return d.SummaryErr != "" || d.PlanSharesErr != "" || d.DailyErr != "" || d.ExpiringErr != ""
}
