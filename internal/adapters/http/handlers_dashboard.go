package web

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/revanth2426/gym-frontend-new/internal/application/projections"
	"github.com/revanth2426/gym-frontend-new/internal/application/views"
	"github.com/revanth2426/gym-frontend-new/internal/domain/dashboard"
)

// handleDashboard renders the landing page: headline counts, plan
// distribution, the daily attendance chart, expiring memberships, and the
// published staff notices. Each widget degrades independently when the
// gym API misbehaves.
func handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	rng := chartRangeFromQuery(r)
	data := views.LoadDashboard(r.Context(), gymAPI, rng, expiringDays)

	noticesResult, err := projections.QueryGetPublishedNotices(r.Context(), projections.GetNoticeboardDeps{
		NoticeStore: stores.NoticeStore,
	})
	if err != nil {
		internalError(w, err)
		return
	}

	renderTemplate(w, r, "dashboard.html", map[string]any{
		"Data":       data,
		"Degraded":   data.Degraded(),
		"Notices":    noticesResult.Notices,
		"ChartStart": rng.StartDate(),
		"ChartEnd":   rng.EndDate(),
		"Flash":      popFlash(w, r),
	})
}

type dailyAttendanceResponse struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// handleDailyAttendance serves the attendance chart as JSON so the page
// can redraw the chart for a new date window without a full reload.
func handleDailyAttendance(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	rng := chartRangeFromQuery(r)
	points, err := gymAPI.DailyAttendance(r.Context(), rng.StartDate(), rng.EndDate())
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadGateway)
		json.NewEncoder(w).Encode(map[string]string{"error": "gym API unavailable"})
		return
	}

	rows := make([]dailyAttendanceResponse, 0, len(points))
	for _, p := range points {
		rows = append(rows, dailyAttendanceResponse{Date: p.Date, Count: p.Count})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"start":  rng.StartDate(),
		"end":    rng.EndDate(),
		"points": rows,
	})
}

// chartRangeFromQuery reads the optional start/end date parameters for the
// attendance chart, falling back to the trailing week.
func chartRangeFromQuery(r *http.Request) dashboard.ChartRange {
	rng := dashboard.DefaultChartRange(timeNow())
	q := r.URL.Query()
	if s := q.Get("start"); s != "" {
		if t, err := time.Parse("2006-01-02", s); err == nil {
			rng.Start = t
		}
	}
	if e := q.Get("end"); e != "" {
		if t, err := time.Parse("2006-01-02", e); err == nil {
			rng.End = t
		}
	}
	if rng.End.Before(rng.Start) {
		rng = dashboard.DefaultChartRange(timeNow())
	}
	return rng
}
