package web

import (
	"net/http"
	"strconv"

	"github.com/gorilla/csrf"

	"github.com/revanth2426/gym-frontend-new/internal/domain/audit"
)

// handleAttendance renders the check-in log with the member lookup box.
func handleAttendance(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	v := viewsFor(r).Attendance
	pageIndex := v.State().PageIndex
	if p := r.URL.Query().Get("page"); p != "" {
		if n, err := strconv.Atoi(p); err == nil && n >= 0 {
			pageIndex = n
		}
	}
	state := v.Load(r.Context(), pageIndex)
	candidates, searching, searchErr := v.SearchResults()

	renderTemplate(w, r, "attendance.html", map[string]any{
		"State":      state,
		"Candidates": candidates,
		"Searching":  searching,
		"SearchErr":  searchErr,
		"Flash":      popFlash(w, r),
		"CSRFToken":  csrf.Token(r),
	})
}

// handleCheckIn records a member check-in. The form carries either a
// picked candidate ID or the raw lookup text.
func handleCheckIn(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	selectedID, _ := strconv.ParseInt(r.FormValue("member_id"), 10, 64)
	freeText := r.FormValue("q")

	flash, err := viewsFor(r).Attendance.CheckIn(r.Context(), selectedID, freeText)
	if err != nil {
		setFlash(w, err.Error())
		http.Redirect(w, r, "/attendance", http.StatusSeeOther)
		return
	}

	recordAudit(r, audit.CategoryAttendance, audit.ActionCheckIn, func(e audit.Event) audit.Event {
		return e.WithDescription(flash)
	})
	setFlash(w, flash)
	http.Redirect(w, r, "/attendance", http.StatusSeeOther)
}
