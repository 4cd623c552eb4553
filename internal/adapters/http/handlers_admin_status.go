package web

import (
	"net/http"
	"strconv"
	"time"
)

// handleAdminStatus renders the operational status page: request
// percentiles, the slowest routes, local queries, and upstream gym API
// calls from the perf collector, plus live session counts.
// Default window is the last hour; ?window=15m style values adjust it.
func handleAdminStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if _, ok := requireAdmin(w, r); !ok {
		return
	}

	window := time.Hour
	if v := r.URL.Query().Get("window"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 && d <= 24*time.Hour {
			window = d
		}
	}

	topN := 10
	if v := r.URL.Query().Get("top"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 50 {
			topN = n
		}
	}

	snap := perfCollector.Snapshot(timeNow().Add(-window), topN)

	renderTemplate(w, r, "admin_status.html", map[string]any{
		"Snapshot":     snap,
		"Window":       window.String(),
		"LiveSessions": viewRegistry.Count(),
		"Version":      serverVersion,
	})
}
