package memory

import (
	"context"
	"slices"

	"aidmatch/internal/core/domain/model/audit"
	"aidmatch/internal/core/domain/model/kernel"
	"aidmatch/internal/core/domain/model/notification"
	"aidmatch/internal/core/ports"
)

// Notifications returns the notification store.
func (s *Store) Notifications() ports.NotificationRepository {
	return notificationStore{s: s}
}

// StatusEvents returns the audit log.
func (s *Store) StatusEvents() ports.StatusEventRepository {
	return statusEventStore{s: s}
}

type notificationStore struct {
	s *Store
}

func (n notificationStore) Add(_ context.Context, rec notification.Notification) error {
	if err := rec.RecipientID.Validate(); err != nil {
		return err
	}
	n.s.mu.Lock()
	n.s.notifications = append(n.s.notifications, rec)
	n.s.mu.Unlock()
	return nil
}

// ListByRecipient returns the newest notifications first.
func (n notificationStore) ListByRecipient(
	_ context.Context,
	recipientID kernel.UUID,
	limit int,
) ([]notification.Notification, error) {
	n.s.mu.RLock()
	defer n.s.mu.RUnlock()

	result := make([]notification.Notification, 0)
	for i := len(n.s.notifications) - 1; i >= 0; i-- {
		rec := n.s.notifications[i]
		if !rec.RecipientID.IsEqual(recipientID) {
			continue
		}
		result = append(result, rec)
		if limit > 0 && len(result) == limit {
			break
		}
	}
	return result, nil
}

type statusEventStore struct {
	s *Store
}

func (a statusEventStore) Append(_ context.Context, e audit.StatusEvent) (bool, error) {
	if err := e.EntityID.Validate(); err != nil {
		return false, err
	}
	key := e.Key()

	a.s.mu.Lock()
	defer a.s.mu.Unlock()
	if _, exists := a.s.auditKeys[key]; exists {
		return false, nil
	}
	a.s.auditKeys[key] = struct{}{}
	a.s.statusEvents = append(a.s.statusEvents, e)
	return true, nil
}

func (a statusEventStore) ListByEntity(_ context.Context, entityID kernel.UUID) ([]audit.StatusEvent, error) {
	a.s.mu.RLock()
	result := make([]audit.StatusEvent, 0)
	for _, e := range a.s.statusEvents {
		if e.EntityID.IsEqual(entityID) {
			result = append(result, e)
		}
	}
	a.s.mu.RUnlock()

	slices.SortStableFunc(result, func(x, y audit.StatusEvent) int {
		return x.OccurredAt.Compare(y.OccurredAt)
	})
	return result, nil
}
