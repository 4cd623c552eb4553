package projections

import (
	"context"

	auditstore "github.com/revanth2426/gym-frontend-new/internal/adapters/storage/audit"
	noticestore "github.com/revanth2426/gym-frontend-new/internal/adapters/storage/notice"
	domainAudit "github.com/revanth2426/gym-frontend-new/internal/domain/audit"
	domainNotice "github.com/revanth2426/gym-frontend-new/internal/domain/notice"
)

// NoticeStore interface for noticeboard queries.
type NoticeStore interface {
	List(ctx context.Context, filter noticestore.ListFilter) ([]domainNotice.Notice, error)
	ListPublished(ctx context.Context) ([]domainNotice.Notice, error)
}

// AuditStore interface for audit trail queries.
type AuditStore interface {
	List(ctx context.Context, filter auditstore.Filter, limit int) ([]domainAudit.Event, error)
}
