package projections

import (
	"context"

	auditstore "github.com/revanth2426/gym-frontend-new/internal/adapters/storage/audit"
	domainAudit "github.com/revanth2426/gym-frontend-new/internal/domain/audit"
)

// DefaultAuditTrailLimit caps the audit page when no limit is given.
const DefaultAuditTrailLimit = 100

// GetAuditTrailQuery carries query parameters. Empty fields are not filtered.
type GetAuditTrailQuery struct {
	Category   string
	Action     string
	ActorID    string
	Severity   string
	ResourceID string
	FromDate   string // inclusive, RFC 3339 or date-only prefix
	ToDate     string // inclusive
	Limit      int
}

// GetAuditTrailResult carries the query result.
type GetAuditTrailResult struct {
	Events []domainAudit.Event
}

// GetAuditTrailDeps holds dependencies for GetAuditTrail.
type GetAuditTrailDeps struct {
	AuditStore AuditStore
}

// QueryGetAuditTrail retrieves audit events for the admin trail page.
// PRE: Valid query parameters
// POST: Returns matching events ordered by timestamp desc
func QueryGetAuditTrail(ctx context.Context, query GetAuditTrailQuery, deps GetAuditTrailDeps) (GetAuditTrailResult, error) {
	filter := auditstore.Filter{}

	if query.Category != "" {
		c := domainAudit.Category(query.Category)
		filter.Category = &c
	}
	if query.Action != "" {
		a := domainAudit.Action(query.Action)
		filter.Action = &a
	}
	if query.ActorID != "" {
		filter.ActorID = &query.ActorID
	}
	if query.Severity != "" {
		s := domainAudit.Severity(query.Severity)
		filter.Severity = &s
	}
	if query.ResourceID != "" {
		filter.ResourceID = &query.ResourceID
	}
	if query.FromDate != "" {
		filter.FromDate = &query.FromDate
	}
	if query.ToDate != "" {
		filter.ToDate = &query.ToDate
	}

	limit := query.Limit
	if limit <= 0 {
		limit = DefaultAuditTrailLimit
	}

	events, err := deps.AuditStore.List(ctx, filter, limit)
	if err != nil {
		return GetAuditTrailResult{}, err
	}
	return GetAuditTrailResult{Events: events}, nil
}
