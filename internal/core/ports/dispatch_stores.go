package ports

import (
	"context"

	"aidmatch/internal/core/domain/model/audit"
	"aidmatch/internal/core/domain/model/kernel"
	"aidmatch/internal/core/domain/model/notification"
)

// NotificationRepository stores in-app notifications. Only the side-effect
// dispatcher writes to it.
type NotificationRepository interface {
	Add(ctx context.Context, n notification.Notification) error
	ListByRecipient(ctx context.Context, recipientID kernel.UUID, limit int) ([]notification.Notification, error)
}

// StatusEventRepository is the append-only audit log.
type StatusEventRepository interface {
	// Append stores the event unless one with the same key exists. It reports
	// whether a row was written.
	Append(ctx context.Context, e audit.StatusEvent) (bool, error)

	// ListByEntity returns an entity's events in occurrence order.
	ListByEntity(ctx context.Context, entityID kernel.UUID) ([]audit.StatusEvent, error)
}
