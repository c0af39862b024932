package ports

import (
	"context"

	"aidmatch/internal/core/domain/model/audit"
	"aidmatch/internal/core/domain/model/event"
	"aidmatch/internal/core/domain/model/notification"
)

// EventPublisher hands committed events to the side-effect dispatcher. It
// must not block the caller.
type EventPublisher interface {
	Publish(ctx context.Context, events ...event.Event)
}

// PushSender delivers a notification to a recipient's live session.
type PushSender interface {
	Push(ctx context.Context, n notification.Notification) error
}

// EmailSender sends a plain message to one address.
type EmailSender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// EventStream publishes committed transitions to downstream consumers.
type EventStream interface {
	Publish(ctx context.Context, e audit.StatusEvent) error
}
