package orchestrators

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	emailadapter "github.com/revanth2426/gym-frontend-new/internal/adapters/email"
	emaildomain "github.com/revanth2426/gym-frontend-new/internal/domain/email"
	"github.com/revanth2426/gym-frontend-new/internal/domain/outbox"
)

// OutboxStoreForRemind defines the store interface needed to queue a
// reminder that could not be sent immediately.
type OutboxStoreForRemind interface {
	Save(ctx context.Context, e outbox.Entry) error
}

// RemindMemberDeps holds dependencies for RemindMember.
type RemindMemberDeps struct {
	Sender      emailadapter.Sender
	OutboxStore OutboxStoreForRemind
	ReplyTo     string // reply-to address for outgoing reminders
	GenerateID  func() string
	Now         func() time.Time
}

// RemindResult reports how the reminder left the building.
type RemindResult struct {
	MessageID string // set when the provider accepted the email
	Queued    bool   // true when the send failed and the reminder was queued for retry
}

// ReminderPayload is the outbox JSON for a queued reminder email. The
// reply-to rides along so a retry sends the email the original would have.
type ReminderPayload struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
	ReplyTo string `json:"reply_to,omitempty"`
}

// ExecuteRemindMember sends a renewal reminder email. A provider failure
// does not lose the reminder: the rendered email is queued in the outbox
// and the background worker retries it with backoff.
// PRE: Reminder validates; deps are wired
// POST: Email sent, or an outbox entry exists for it
func ExecuteRemindMember(ctx context.Context, r emaildomain.Reminder, deps RemindMemberDeps) (RemindResult, error) {
	if err := r.Validate(); err != nil {
		return RemindResult{}, err
	}

	req := emailadapter.SendRequest{
		To:      []string{r.To},
		Subject: r.Subject(),
		HTML:    r.HTMLBody(),
		ReplyTo: deps.ReplyTo,
	}

	res, err := deps.Sender.Send(ctx, req)
	if err == nil {
		slog.Info("reminder_event", "event", "reminder_sent", "member_id", r.MemberID, "message_id", res.MessageID)
		return RemindResult{MessageID: res.MessageID}, nil
	}

	slog.Warn("reminder_event", "event", "reminder_send_failed", "member_id", r.MemberID, "error", err.Error())

	payload, marshalErr := json.Marshal(ReminderPayload{
		To:      r.To,
		Subject: req.Subject,
		HTML:    req.HTML,
		ReplyTo: req.ReplyTo,
	})
	if marshalErr != nil {
		return RemindResult{}, fmt.Errorf("marshal reminder payload: %w", marshalErr)
	}

	entry := outbox.Entry{
		ID:          deps.GenerateID(),
		ActionType:  outbox.ActionTypeReminderEmail,
		Payload:     string(payload),
		Status:      outbox.StatusPending,
		MaxAttempts: 5,
		CreatedAt:   deps.Now(),
	}
	if err := deps.OutboxStore.Save(ctx, entry); err != nil {
		return RemindResult{}, fmt.Errorf("queue reminder after failed send: %w", err)
	}

	slog.Info("reminder_event", "event", "reminder_queued", "member_id", r.MemberID, "entry_id", entry.ID)
	return RemindResult{Queued: true}, nil
}
