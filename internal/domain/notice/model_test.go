package notice_test

import (
	"testing"
	"time"

	"github.com/revanth2426/gym-frontend-new/internal/domain/notice"
)

// TestNotice_Validate tests validation of Notice.
func TestNotice_Validate(t *testing.T) {
	tests := []struct {
		name    string
		notice  notice.Notice
		wantErr bool
	}{
		{
			name: "valid draft notice",
			notice: notice.Notice{
				ID: "1", Status: notice.StatusDraft,
				Title: "Pool closed Friday", Content: "Maintenance from 9am.", CreatedBy: "acct-1", CreatedAt: time.Now(),
			},
			wantErr: false,
		},
		{
			name: "valid published notice",
			notice: notice.Notice{
				ID: "2", Status: notice.StatusPublished,
				Title: "New card readers", Content: "Swipe **twice** at the gate.", CreatedBy: "acct-1", CreatedAt: time.Now(),
			},
			wantErr: false,
		},
		{
			name:    "empty title",
			notice:  notice.Notice{ID: "3", Status: notice.StatusDraft, Content: "content"},
			wantErr: true,
		},
		{
			name:    "empty content",
			notice:  notice.Notice{ID: "4", Status: notice.StatusDraft, Title: "title"},
			wantErr: true,
		},
		{
			name:    "invalid status",
			notice:  notice.Notice{ID: "5", Status: "bogus", Title: "t", Content: "c"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.notice.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Notice.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// TestNotice_Publish tests the draft to published transition.
func TestNotice_Publish(t *testing.T) {
	t.Run("publish draft", func(t *testing.T) {
		n := notice.Notice{Status: notice.StatusDraft, Title: "t", Content: "c"}
		now := time.Now()
		if err := n.Publish(now); err != nil {
			t.Errorf("Publish() unexpected error: %v", err)
		}
		if !n.IsPublished() {
			t.Error("notice should be published")
		}
		if !n.PublishedAt.Equal(now) {
			t.Errorf("PublishedAt = %v, want %v", n.PublishedAt, now)
		}
	})

	t.Run("publish already published", func(t *testing.T) {
		n := notice.Notice{Status: notice.StatusPublished}
		if err := n.Publish(time.Now()); err != notice.ErrAlreadyPublished {
			t.Errorf("Publish() error = %v, want %v", err, notice.ErrAlreadyPublished)
		}
	})
}

// TestNotice_PinUnpin tests pin state transitions.
func TestNotice_PinUnpin(t *testing.T) {
	now := time.Now()

	t.Run("pin unpinned notice", func(t *testing.T) {
		n := notice.Notice{}
		if err := n.Pin(now); err != nil {
			t.Errorf("Pin() unexpected error: %v", err)
		}
		if !n.Pinned || n.PinnedAt.IsZero() {
			t.Error("Pin() should set Pinned and PinnedAt")
		}
	})

	t.Run("pin already pinned", func(t *testing.T) {
		n := notice.Notice{Pinned: true}
		if err := n.Pin(now); err != notice.ErrAlreadyPinned {
			t.Errorf("Pin() error = %v, want %v", err, notice.ErrAlreadyPinned)
		}
	})

	t.Run("unpin pinned notice", func(t *testing.T) {
		n := notice.Notice{Pinned: true, PinnedAt: now}
		if err := n.Unpin(); err != nil {
			t.Errorf("Unpin() unexpected error: %v", err)
		}
		if n.Pinned || !n.PinnedAt.IsZero() {
			t.Error("Unpin() should clear Pinned and PinnedAt")
		}
	})

	t.Run("unpin unpinned notice", func(t *testing.T) {
		n := notice.Notice{}
		if err := n.Unpin(); err != notice.ErrNotPinned {
			t.Errorf("Unpin() error = %v, want %v", err, notice.ErrNotPinned)
		}
	})
}

// TestNotice_StatusChecks tests IsDraft and IsPublished.
func TestNotice_StatusChecks(t *testing.T) {
	draft := notice.Notice{Status: notice.StatusDraft}
	if !draft.IsDraft() || draft.IsPublished() {
		t.Error("draft notice misreported")
	}
	pub := notice.Notice{Status: notice.StatusPublished}
	if pub.IsDraft() || !pub.IsPublished() {
		t.Error("published notice misreported")
	}
}
