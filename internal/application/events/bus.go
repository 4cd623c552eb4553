// Package events carries domain events between the write paths and
// passive subscribers. Mutations publish here; the audit recorder listens
// so the request path never blocks on trail writes.
package events

import (
	"context"
	"log/slog"

	"github.com/asaskevich/EventBus"

	"github.com/revanth2426/gym-frontend-new/internal/domain/audit"
)

// Topic names. One topic per event shape.
const (
	TopicAudit = "audit:event"
)

// AuditSaver persists audit events. Satisfied by the audit store.
type AuditSaver interface {
	Save(ctx context.Context, event audit.Event) error
}

// Bus wraps the process-wide event bus with typed publish/subscribe
// methods so callers never touch raw topics or interface{} arguments.
type Bus struct {
	bus EventBus.Bus
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{bus: EventBus.New()}
}

// PublishAudit emits an audit event to all subscribers. Fire-and-forget:
// the caller never learns whether a subscriber failed.
func (b *Bus) PublishAudit(e audit.Event) {
	b.bus.Publish(TopicAudit, e)
}

// SubscribeAudit registers fn for every audit event. Handlers run on the
// bus's worker goroutine, serialized in publish order.
func (b *Bus) SubscribeAudit(fn func(audit.Event)) error {
	return b.bus.SubscribeAsync(TopicAudit, fn, true)
}

// WaitAsync blocks until queued async handlers have drained. Tests use
// this to assert on recorder side effects.
func (b *Bus) WaitAsync() {
	b.bus.WaitAsync()
}

// StartAuditRecorder subscribes a recorder that persists every published
// audit event. A failed save is logged and dropped; the trail is an
// operational aid, not a ledger.
func StartAuditRecorder(b *Bus, store AuditSaver) error {
	return b.SubscribeAudit(func(e audit.Event) {
		if err := store.Save(context.Background(), e); err != nil {
			slog.Error("audit_record_failed", "event_id", e.ID, "action", string(e.Action), "error", err.Error())
		}
	})
}
