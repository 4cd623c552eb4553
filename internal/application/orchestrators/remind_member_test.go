package orchestrators

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	emailadapter "github.com/revanth2426/gym-frontend-new/internal/adapters/email"
	emaildomain "github.com/revanth2426/gym-frontend-new/internal/domain/email"
	"github.com/revanth2426/gym-frontend-new/internal/domain/outbox"
)

// mockSender implements email.Sender for testing.
type mockSender struct {
	sent    []emailadapter.SendRequest
	sendErr error
}

func (m *mockSender) Send(_ context.Context, req emailadapter.SendRequest) (emailadapter.SendResult, error) {
	if m.sendErr != nil {
		return emailadapter.SendResult{}, m.sendErr
	}
	m.sent = append(m.sent, req)
	return emailadapter.SendResult{MessageID: "msg-001"}, nil
}

func (m *mockSender) SendBatch(ctx context.Context, reqs []emailadapter.SendRequest) ([]emailadapter.SendResult, error) {
	var out []emailadapter.SendResult
	for _, req := range reqs {
		res, err := m.Send(ctx, req)
		if err != nil {
			return out, err
		}
		out = append(out, res)
	}
	return out, nil
}

// mockOutboxStore implements the outbox store interfaces for testing.
type mockOutboxStore struct {
	entries map[string]outbox.Entry
}

func newMockOutboxStore() *mockOutboxStore {
	return &mockOutboxStore{entries: make(map[string]outbox.Entry)}
}

func (m *mockOutboxStore) Save(_ context.Context, e outbox.Entry) error {
	m.entries[e.ID] = e
	return nil
}

func (m *mockOutboxStore) GetByID(_ context.Context, id string) (outbox.Entry, error) {
	e, ok := m.entries[id]
	if !ok {
		return outbox.Entry{}, errors.New("not found")
	}
	return e, nil
}

func (m *mockOutboxStore) ListPending(_ context.Context, limit int) ([]outbox.Entry, error) {
	var out []outbox.Entry
	for _, e := range m.entries {
		if e.CanRetry() && len(out) < limit {
			out = append(out, e)
		}
	}
	return out, nil
}

func validReminder() emaildomain.Reminder {
	return emaildomain.Reminder{
		MemberID:   7,
		MemberName: "Jordan Reyes",
		To:         "jordan@example.com",
		PlanName:   "Gold",
		EndDate:    "2026-09-01",
		DaysLeft:   8,
		GymName:    "Ironworks Gym",
	}
}

// TestExecuteRemindMember_Sends tests the direct-send path.
func TestExecuteRemindMember_Sends(t *testing.T) {
	sender := &mockSender{}
	store := newMockOutboxStore()

	res, err := ExecuteRemindMember(context.Background(), validReminder(), RemindMemberDeps{
		Sender: sender, OutboxStore: store, ReplyTo: "reception@gym.example", GenerateID: fixedID, Now: fixedNow,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.MessageID != "msg-001" || res.Queued {
		t.Errorf("expected sent result, got %+v", res)
	}
	if len(sender.sent) != 1 {
		t.Fatalf("expected 1 send, got %d", len(sender.sent))
	}
	if !strings.Contains(sender.sent[0].Subject, "Gold") {
		t.Errorf("subject = %q, want the plan name", sender.sent[0].Subject)
	}
	if sender.sent[0].ReplyTo != "reception@gym.example" {
		t.Errorf("reply-to = %q, want the configured address", sender.sent[0].ReplyTo)
	}
	if len(store.entries) != 0 {
		t.Error("successful send must not queue an outbox entry")
	}
}

// TestExecuteRemindMember_QueuesOnFailure tests the outbox fallback.
func TestExecuteRemindMember_QueuesOnFailure(t *testing.T) {
	sender := &mockSender{sendErr: errors.New("provider down")}
	store := newMockOutboxStore()

	res, err := ExecuteRemindMember(context.Background(), validReminder(), RemindMemberDeps{
		Sender: sender, OutboxStore: store, ReplyTo: "reception@gym.example", GenerateID: fixedID, Now: fixedNow,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Queued {
		t.Error("expected Queued=true after a failed send")
	}

	entry, ok := store.entries["test-id-001"]
	if !ok {
		t.Fatal("expected an outbox entry")
	}
	if entry.ActionType != outbox.ActionTypeReminderEmail || entry.Status != outbox.StatusPending {
		t.Errorf("entry = %+v, want pending reminder_email", entry)
	}

	var p ReminderPayload
	if err := json.Unmarshal([]byte(entry.Payload), &p); err != nil {
		t.Fatalf("payload is not valid JSON: %v", err)
	}
	if p.To != "jordan@example.com" || p.Subject == "" || p.HTML == "" {
		t.Errorf("payload = %+v, want the full rendered email", p)
	}
	if p.ReplyTo != "reception@gym.example" {
		t.Errorf("payload reply-to = %q, a retry must send the same email", p.ReplyTo)
	}
}

// TestExecuteRemindMember_InvalidReminder tests validation.
func TestExecuteRemindMember_InvalidReminder(t *testing.T) {
	sender := &mockSender{}
	store := newMockOutboxStore()

	r := validReminder()
	r.To = "no-at-sign"
	_, err := ExecuteRemindMember(context.Background(), r, RemindMemberDeps{
		Sender: sender, OutboxStore: store, GenerateID: fixedID, Now: fixedNow,
	})
	if !errors.Is(err, emaildomain.ErrInvalidRecipient) {
		t.Errorf("expected ErrInvalidRecipient, got %v", err)
	}
	if len(sender.sent) != 0 {
		t.Error("invalid reminder must not be sent")
	}
}
