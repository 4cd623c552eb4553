package web

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/csrf"

	"github.com/revanth2426/gym-frontend-new/internal/domain/audit"
	"github.com/revanth2426/gym-frontend-new/internal/domain/outbox"
)

// handleAdminOutbox lists outbox entries (GET /admin/outbox). The page
// shows failed entries by default; ?status=pending or ?status=all widens
// the view. JSON clients get the raw entries.
func handleAdminOutbox(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if _, ok := requireAdmin(w, r); !ok {
		return
	}
	ctx := r.Context()

	limit := 50
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if n, err := strconv.Atoi(limitStr); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}

	status := r.URL.Query().Get("status")
	if status == "" {
		status = outbox.StatusFailed
	}

	var entries []outbox.Entry
	var err error
	switch status {
	case outbox.StatusPending, "all":
		entries, err = stores.OutboxStore.ListPending(ctx, limit)
	default:
		entries, err = stores.OutboxStore.ListFailed(ctx, limit)
	}
	if err != nil {
		internalError(w, err)
		return
	}

	if !isHTMLRequest(r) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(entries)
		return
	}

	renderTemplate(w, r, "admin_outbox.html", map[string]any{
		"Entries":   entries,
		"Status":    status,
		"Flash":     popFlash(w, r),
		"CSRFToken": csrf.Token(r),
	})
}

// handleAdminOutboxAction retries or abandons one entry.
// Routes: POST /admin/outbox/:id/retry, POST /admin/outbox/:id/abandon
func handleAdminOutboxAction(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if _, ok := requireAdmin(w, r); !ok {
		return
	}
	ctx := r.Context()

	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(parts) != 4 || parts[0] != "admin" || parts[1] != "outbox" {
		http.Error(w, "invalid path", http.StatusBadRequest)
		return
	}
	entryID := parts[2]
	action := parts[3]

	switch action {
	case "retry":
		if err := outboxProcessor.ProcessSingle(ctx, entryID); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		recordAudit(r, audit.CategorySystem, audit.ActionUpdate, func(e audit.Event) audit.Event {
			return e.WithResource("outbox_entry", entryID).WithDescription("manual outbox retry")
		})
		outboxActionResponse(w, r, "retry triggered")

	case "abandon":
		if err := outboxProcessor.AbandonEntry(ctx, entryID); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		recordAudit(r, audit.CategorySystem, audit.ActionUpdate, func(e audit.Event) audit.Event {
			return e.WithSeverity(audit.SeverityWarning).
				WithResource("outbox_entry", entryID).WithDescription("outbox entry abandoned")
		})
		outboxActionResponse(w, r, "abandoned")

	default:
		http.Error(w, "unknown action", http.StatusBadRequest)
	}
}

func outboxActionResponse(w http.ResponseWriter, r *http.Request, status string) {
	if isHTMLRequest(r) {
		setFlash(w, "Outbox entry "+status+".")
		http.Redirect(w, r, "/admin/outbox", http.StatusSeeOther)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": status})
}
