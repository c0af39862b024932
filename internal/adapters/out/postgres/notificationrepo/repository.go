// Package notificationrepo stores in-app notifications.
package notificationrepo

import (
	"context"
	"time"

	"aidmatch/internal/core/domain/model/kernel"
	"aidmatch/internal/core/domain/model/notification"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type NotificationDTO struct {
	ID          uuid.UUID         `gorm:"type:uuid;primaryKey"`
	RecipientID uuid.UUID         `gorm:"type:uuid;not null;index:idx_notifications_recipient_created,priority:1"`
	Type        string            `gorm:"not null"`
	Title       string            `gorm:"not null"`
	Message     string
	Data        datatypes.JSONMap `gorm:"type:jsonb"`
	Read        bool              `gorm:"not null;default:false"`
	CreatedAt   time.Time         `gorm:"not null;autoCreateTime:false;index:idx_notifications_recipient_created,priority:2"`
}

func (NotificationDTO) TableName() string {
	return "notifications"
}

// GormNotificationRepository implements ports.NotificationRepository.
type GormNotificationRepository struct {
	db *gorm.DB
}

func NewGormNotificationRepository(db *gorm.DB) *GormNotificationRepository {
	return &GormNotificationRepository{db: db}
}

func (r *GormNotificationRepository) Add(ctx context.Context, n notification.Notification) error {
	dto := NotificationDTO{
		ID:          n.ID.Bytes(),
		RecipientID: n.RecipientID.Bytes(),
		Type:        string(n.Type),
		Title:       n.Title,
		Message:     n.Message,
		Data:        datatypes.JSONMap(n.Data),
		Read:        n.Read,
		CreatedAt:   n.CreatedAt,
	}
	return r.db.WithContext(ctx).Create(&dto).Error
}

// ListByRecipient returns the newest notifications first.
func (r *GormNotificationRepository) ListByRecipient(
	ctx context.Context,
	recipientID kernel.UUID,
	limit int,
) ([]notification.Notification, error) {
	var dtos []NotificationDTO
	err := r.db.WithContext(ctx).
		Where("recipient_id = ?", recipientID.Bytes()).
		Order("created_at DESC").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	out := make([]notification.Notification, 0, len(dtos))
	for _, dto := range dtos {
		id, err := kernel.UUIDFromBytes(dto.ID[:])
		if err != nil {
			return nil, err
		}
		recipient, err := kernel.UUIDFromBytes(dto.RecipientID[:])
		if err != nil {
			return nil, err
		}
		data := map[string]any(dto.Data)
		if data == nil {
			data = map[string]any{}
		}
		out = append(out, notification.Notification{
			ID:          id,
			RecipientID: recipient,
			Type:        notification.Type(dto.Type),
			Title:       dto.Title,
			Message:     dto.Message,
			Data:        data,
			CreatedAt:   dto.CreatedAt.UTC(),
			Read:        dto.Read,
		})
	}
	return out, nil
}
