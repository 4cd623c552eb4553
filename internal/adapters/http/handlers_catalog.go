package web

import (
	"net/http"

	"github.com/revanth2426/gym-frontend-new/internal/application/views"
)

// handleTrainers renders the read-only trainer roster. The gym API serves
// trainers unpaginated; paging is applied here.
func handleTrainers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	page, err := views.LoadTrainers(r.Context(), gymAPI, r.URL.Query())
	data := map[string]any{
		"Page":  page,
		"Flash": popFlash(w, r),
	}
	if err != nil {
		data["Error"] = "Trainer list is unavailable. Check the gym API connection."
	}
	renderTemplate(w, r, "trainers.html", data)
}

// handlePlans renders the read-only membership plan catalogue.
func handlePlans(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	plans, err := views.LoadPlans(r.Context(), gymAPI)
	data := map[string]any{
		"Plans": plans,
		"Flash": popFlash(w, r),
	}
	if err != nil {
		data["Error"] = "Plan catalogue is unavailable. Check the gym API connection."
	}
	renderTemplate(w, r, "plans.html", data)
}
