package web

import (
	"net/http"
	"strconv"

	"github.com/revanth2426/gym-frontend-new/internal/application/projections"
)

// handleAdminAuditTrail renders the audit trail page (GET /admin/audit).
// PRE: User must be authenticated as admin
// POST: Renders the trail with optional filters applied
func handleAdminAuditTrail(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if _, ok := requireAdmin(w, r); !ok {
		return
	}

	q := r.URL.Query()
	query := projections.GetAuditTrailQuery{
		Category:   q.Get("category"),
		Action:     q.Get("action"),
		ActorID:    q.Get("actor_id"),
		Severity:   q.Get("severity"),
		ResourceID: q.Get("resource_id"),
		FromDate:   q.Get("from"),
		ToDate:     q.Get("to"),
	}
	query.Limit = projections.DefaultAuditTrailLimit
	if limitStr := q.Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 1000 {
			query.Limit = l
		}
	}

	result, err := projections.QueryGetAuditTrail(r.Context(), query, projections.GetAuditTrailDeps{
		AuditStore: stores.AuditStore,
	})
	if err != nil {
		internalError(w, err)
		return
	}

	renderTemplate(w, r, "admin_audit_trail.html", map[string]any{
		"Events": result.Events,
		"Query":  query,
		"Limit":  query.Limit,
	})
}
