package queries

import (
	"context"

	"aidmatch/internal/core/domain/model/notification"
	"aidmatch/internal/core/ports"
)

type GetNotificationsQueryHandler struct {
	notifications ports.NotificationRepository
}

func NewGetNotificationsQueryHandler(notifications ports.NotificationRepository) GetNotificationsQueryHandler {
	return GetNotificationsQueryHandler{notifications: notifications}
}

func (h GetNotificationsQueryHandler) Handle(
	ctx context.Context,
	query GetNotificationsQuery,
) ([]notification.Notification, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	result, err := h.notifications.ListByRecipient(ctx, query.RecipientID(), query.Limit())
	if err != nil {
		return nil, err
	}
	if result == nil {
		result = []notification.Notification{}
	}
	return result, nil
}
