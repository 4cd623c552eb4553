package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/revanth2426/gym-frontend-new/internal/domain/notice"
)

// NoticeStoreForOrchestrator defines the store interface needed by notice orchestrators.
type NoticeStoreForOrchestrator interface {
	GetByID(ctx context.Context, id string) (notice.Notice, error)
	Save(ctx context.Context, n notice.Notice) error
	Delete(ctx context.Context, id string) error
}

// --- Create Notice ---

// CreateNoticeInput carries input for the create notice orchestrator.
type CreateNoticeInput struct {
	Title      string
	Content    string
	AuthorName string
	CreatedBy  string // AccountID of creator
}

// CreateNoticeDeps holds dependencies for CreateNotice.
type CreateNoticeDeps struct {
	NoticeStore NoticeStoreForOrchestrator
	GenerateID  func() string
	Now         func() time.Time
}

// ExecuteCreateNotice creates a new notice in draft status.
// PRE: Title and Content must be non-empty; CreatedBy must be non-empty
// POST: Notice created in draft status with generated ID
func ExecuteCreateNotice(ctx context.Context, input CreateNoticeInput, deps CreateNoticeDeps) (notice.Notice, error) {
	if input.CreatedBy == "" {
		return notice.Notice{}, errors.New("creator account ID is required")
	}

	n := notice.Notice{
		ID:         deps.GenerateID(),
		Status:     notice.StatusDraft,
		Title:      input.Title,
		Content:    input.Content,
		CreatedBy:  input.CreatedBy,
		AuthorName: input.AuthorName,
		CreatedAt:  deps.Now(),
	}

	if err := n.Validate(); err != nil {
		return notice.Notice{}, err
	}

	if err := deps.NoticeStore.Save(ctx, n); err != nil {
		return notice.Notice{}, err
	}

	slog.Info("notice_event", "event", "notice_created", "notice_id", n.ID, "created_by", input.CreatedBy)
	return n, nil
}

// --- Edit Notice ---

// EditNoticeInput carries input for the edit notice orchestrator.
type EditNoticeInput struct {
	NoticeID   string
	Title      string
	Content    string
	AuthorName string
}

// EditNoticeDeps holds dependencies for EditNotice.
type EditNoticeDeps struct {
	NoticeStore NoticeStoreForOrchestrator
	Now         func() time.Time
}

// ExecuteEditNotice updates fields on an existing notice.
// Partial-update semantics: Title and Content are only updated when the
// input value is non-empty (cannot be cleared); AuthorName is always
// overwritten.
// PRE: NoticeID must be non-empty; notice must exist
// POST: Notice fields updated, UpdatedAt set
func ExecuteEditNotice(ctx context.Context, input EditNoticeInput, deps EditNoticeDeps) (notice.Notice, error) {
	if input.NoticeID == "" {
		return notice.Notice{}, errors.New("notice ID is required")
	}

	n, err := deps.NoticeStore.GetByID(ctx, input.NoticeID)
	if err != nil {
		return notice.Notice{}, err
	}

	if input.Title != "" {
		n.Title = input.Title
	}
	if input.Content != "" {
		n.Content = input.Content
	}
	n.AuthorName = input.AuthorName
	n.UpdatedAt = deps.Now()

	if err := n.Validate(); err != nil {
		return notice.Notice{}, err
	}

	if err := deps.NoticeStore.Save(ctx, n); err != nil {
		return notice.Notice{}, err
	}

	slog.Info("notice_event", "event", "notice_edited", "notice_id", n.ID, "title", n.Title)
	return n, nil
}

// --- Publish Notice ---

// PublishNoticeInput carries input for the publish notice orchestrator.
type PublishNoticeInput struct {
	NoticeID string
}

// PublishNoticeDeps holds dependencies for PublishNotice.
type PublishNoticeDeps struct {
	NoticeStore NoticeStoreForOrchestrator
	Now         func() time.Time
}

// ExecutePublishNotice publishes a draft notice.
// PRE: NoticeID must be non-empty; notice must exist and be in draft status
// POST: Notice status set to published, PublishedAt set
func ExecutePublishNotice(ctx context.Context, input PublishNoticeInput, deps PublishNoticeDeps) (notice.Notice, error) {
	if input.NoticeID == "" {
		return notice.Notice{}, errors.New("notice ID is required")
	}

	n, err := deps.NoticeStore.GetByID(ctx, input.NoticeID)
	if err != nil {
		return notice.Notice{}, err
	}

	if err := n.Publish(deps.Now()); err != nil {
		return notice.Notice{}, err
	}

	if err := deps.NoticeStore.Save(ctx, n); err != nil {
		return notice.Notice{}, err
	}

	slog.Info("notice_event", "event", "notice_published", "notice_id", n.ID)
	return n, nil
}

// --- Pin/Unpin Notice ---

// PinNoticeInput carries input for the pin/unpin notice orchestrator.
type PinNoticeInput struct {
	NoticeID string
	Pinned   bool // true = pin, false = unpin
}

// PinNoticeDeps holds dependencies for PinNotice.
type PinNoticeDeps struct {
	NoticeStore NoticeStoreForOrchestrator
	Now         func() time.Time
}

// ExecutePinNotice pins or unpins a notice.
// PRE: NoticeID must be non-empty; notice must exist
// POST: Pinned/PinnedAt updated, UpdatedAt set
func ExecutePinNotice(ctx context.Context, input PinNoticeInput, deps PinNoticeDeps) (notice.Notice, error) {
	if input.NoticeID == "" {
		return notice.Notice{}, errors.New("notice ID is required")
	}

	n, err := deps.NoticeStore.GetByID(ctx, input.NoticeID)
	if err != nil {
		return notice.Notice{}, err
	}

	if input.Pinned {
		if err := n.Pin(deps.Now()); err != nil {
			return notice.Notice{}, err
		}
	} else {
		if err := n.Unpin(); err != nil {
			return notice.Notice{}, err
		}
	}
	n.UpdatedAt = deps.Now()

	if err := deps.NoticeStore.Save(ctx, n); err != nil {
		return notice.Notice{}, err
	}

	action := "notice_pinned"
	if !input.Pinned {
		action = "notice_unpinned"
	}
	slog.Info("notice_event", "event", action, "notice_id", n.ID)
	return n, nil
}

// --- Delete Notice ---

// DeleteNoticeDeps holds dependencies for DeleteNotice.
type DeleteNoticeDeps struct {
	NoticeStore NoticeStoreForOrchestrator
}

// ExecuteDeleteNotice removes a notice.
// PRE: noticeID must be non-empty
// POST: Notice is removed from the store
func ExecuteDeleteNotice(ctx context.Context, noticeID string, deps DeleteNoticeDeps) error {
	if noticeID == "" {
		return errors.New("notice ID is required")
	}
	if err := deps.NoticeStore.Delete(ctx, noticeID); err != nil {
		return err
	}
	slog.Info("notice_event", "event", "notice_deleted", "notice_id", noticeID)
	return nil
}
