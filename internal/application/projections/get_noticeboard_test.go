package projections

import (
	"context"
	"errors"
	"testing"
	"time"

	noticestore "github.com/revanth2426/gym-frontend-new/internal/adapters/storage/notice"
	domainNotice "github.com/revanth2426/gym-frontend-new/internal/domain/notice"
)

type mockNoticeboardStore struct {
	notices   []domainNotice.Notice
	published []domainNotice.Notice
	listErr   error

	lastFilter noticestore.ListFilter
}

// List returns the seeded notices and records the filter used.
// PRE: filter is valid
// POST: Returns all seeded notices
func (m *mockNoticeboardStore) List(_ context.Context, filter noticestore.ListFilter) ([]domainNotice.Notice, error) {
	m.lastFilter = filter
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.notices, nil
}

// ListPublished returns the seeded published notices.
// PRE: none
// POST: Returns the seeded published notices
func (m *mockNoticeboardStore) ListPublished(_ context.Context) ([]domainNotice.Notice, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.published, nil
}

// TestQueryGetNoticeboard_PassesStatusFilter verifies the status filter reaches the store.
func TestQueryGetNoticeboard_PassesStatusFilter(t *testing.T) {
	store := &mockNoticeboardStore{notices: []domainNotice.Notice{
		{ID: "n1", Status: domainNotice.StatusDraft, Title: "Draft note", Content: "x", CreatedAt: time.Now()},
	}}

	res, err := QueryGetNoticeboard(context.Background(), GetNoticeboardQuery{Status: domainNotice.StatusDraft}, GetNoticeboardDeps{NoticeStore: store})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Notices) != 1 {
		t.Fatalf("notices=%d want 1", len(res.Notices))
	}
	if store.lastFilter.Status != domainNotice.StatusDraft {
		t.Errorf("filter status=%q want draft", store.lastFilter.Status)
	}
}

// TestQueryGetNoticeboard_StoreError verifies errors propagate.
func TestQueryGetNoticeboard_StoreError(t *testing.T) {
	store := &mockNoticeboardStore{listErr: errors.New("disk gone")}

	_, err := QueryGetNoticeboard(context.Background(), GetNoticeboardQuery{}, GetNoticeboardDeps{NoticeStore: store})
	if err == nil {
		t.Fatal("expected error from failing store")
	}
}

// TestQueryGetPublishedNotices verifies the dashboard list comes from ListPublished.
func TestQueryGetPublishedNotices(t *testing.T) {
	store := &mockNoticeboardStore{published: []domainNotice.Notice{
		{ID: "n2", Status: domainNotice.StatusPublished, Title: "Pinned", Content: "x", Pinned: true},
		{ID: "n3", Status: domainNotice.StatusPublished, Title: "Plain", Content: "y"},
	}}

	res, err := QueryGetPublishedNotices(context.Background(), GetNoticeboardDeps{NoticeStore: store})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Notices) != 2 {
		t.Fatalf("notices=%d want 2", len(res.Notices))
	}
	if !res.Notices[0].Pinned {
		t.Error("expected pinned notice first, in store order")
	}
}
