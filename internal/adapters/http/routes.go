package web

import (
	"net/http"

	"github.com/revanth2426/gym-frontend-new/internal/adapters/http/middleware"
)

// registerRoutes binds every handler onto the mux. Auth is enforced per
// route: the login page is open, the admin pages check the role in the
// handler via requireAdmin, and everything else needs a session.
func registerRoutes(mux *http.ServeMux) {
	authed := func(h http.HandlerFunc) http.Handler {
		return middleware.RequireAuth(h)
	}

	mux.HandleFunc("/", handleIndex)
	mux.HandleFunc("/healthz", handleHealthz)
	mux.HandleFunc("/login", handleLogin)
	mux.Handle("/logout", authed(handleLogout))
	mux.Handle("/change-password", authed(handleChangePassword))

	mux.Handle("/dashboard", authed(handleDashboard))
	mux.Handle("/api/dashboard/daily-attendance", authed(handleDailyAttendance))

	mux.Handle("/members", authed(handleMembers))
	mux.Handle("/members/create", authed(handleMemberCreate))
	mux.Handle("/members/update", authed(handleMemberUpdate))
	mux.Handle("/members/delete", authed(handleMemberDelete))
	mux.Handle("/members/remind", authed(handleMemberRemind))
	mux.Handle("/plan-assignments/delete", authed(handleAssignmentDelete))
	mux.Handle("/api/members/search", authed(handleMemberSearch))

	mux.Handle("/attendance", authed(handleAttendance))
	mux.Handle("/attendance/checkin", authed(handleCheckIn))

	mux.Handle("/trainers", authed(handleTrainers))
	mux.Handle("/plans", authed(handlePlans))

	mux.Handle("/notices", authed(handleNotices))
	mux.Handle("/notices/create", authed(handleNoticeCreate))
	mux.Handle("/notices/edit", authed(handleNoticeEdit))
	mux.Handle("/notices/publish", authed(handleNoticePublish))
	mux.Handle("/notices/pin", authed(handleNoticePin))
	mux.Handle("/notices/delete", authed(handleNoticeDelete))

	mux.Handle("/admin/accounts", authed(handleAdminAccounts))
	mux.Handle("/admin/audit", authed(handleAdminAuditTrail))
	mux.Handle("/admin/outbox", authed(handleAdminOutbox))
	mux.Handle("/admin/outbox/", authed(handleAdminOutboxAction))
	mux.Handle("/admin/status", authed(handleAdminStatus))
}
