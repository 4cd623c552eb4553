package projections

import (
	"context"

	noticestore "github.com/revanth2426/gym-frontend-new/internal/adapters/storage/notice"
	domainNotice "github.com/revanth2426/gym-frontend-new/internal/domain/notice"
)

// GetNoticeboardQuery carries query parameters.
type GetNoticeboardQuery struct {
	Status string // Optional: draft or published; empty means all
}

// GetNoticeboardResult carries the query result.
type GetNoticeboardResult struct {
	Notices []domainNotice.Notice
}

// GetNoticeboardDeps holds dependencies for GetNoticeboard.
type GetNoticeboardDeps struct {
	NoticeStore NoticeStore
}

// QueryGetNoticeboard retrieves notices for the management page, pinned
// entries first.
// PRE: Valid query parameters
// POST: Returns matching notices ordered pinned-first, newest-first
func QueryGetNoticeboard(ctx context.Context, query GetNoticeboardQuery, deps GetNoticeboardDeps) (GetNoticeboardResult, error) {
	notices, err := deps.NoticeStore.List(ctx, noticestore.ListFilter{
		Status: query.Status,
	})
	if err != nil {
		return GetNoticeboardResult{}, err
	}
	return GetNoticeboardResult{Notices: notices}, nil
}

// GetPublishedNoticesResult carries the dashboard noticeboard.
type GetPublishedNoticesResult struct {
	Notices []domainNotice.Notice
}

// QueryGetPublishedNotices retrieves the published notices shown on the
// dashboard, pinned entries first.
// PRE: none
// POST: Returns published notices ordered pinned-first, newest-published-first
func QueryGetPublishedNotices(ctx context.Context, deps GetNoticeboardDeps) (GetPublishedNoticesResult, error) {
	notices, err := deps.NoticeStore.ListPublished(ctx)
	if err != nil {
		return GetPublishedNoticesResult{}, err
	}
	return GetPublishedNoticesResult{Notices: notices}, nil
}
