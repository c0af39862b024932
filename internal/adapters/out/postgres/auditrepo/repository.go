// Package auditrepo is the append-only status event log.
package auditrepo

import (
	"context"
	"time"

	"aidmatch/internal/core/domain/model/audit"
	"aidmatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StatusEventDTO is one committed transition. The unique index over the audit
// key turns a replayed append into a no-op.
type StatusEventDTO struct {
	ID         uint              `gorm:"primaryKey"`
	EntityID   uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:idx_status_events_key,priority:1"`
	EntityType string            `gorm:"not null"`
	FromStatus string            `gorm:"not null;uniqueIndex:idx_status_events_key,priority:2"`
	ToStatus   string            `gorm:"not null;uniqueIndex:idx_status_events_key,priority:3"`
	ActorID    uuid.UUID         `gorm:"type:uuid;not null"`
	OccurredAt time.Time         `gorm:"not null;uniqueIndex:idx_status_events_key,priority:4"`
	Extra      datatypes.JSONMap `gorm:"type:jsonb"`
}

func (StatusEventDTO) TableName() string {
	return "status_events"
}

// GormStatusEventRepository implements ports.StatusEventRepository.
type GormStatusEventRepository struct {
	db *gorm.DB
}

func NewGormStatusEventRepository(db *gorm.DB) *GormStatusEventRepository {
	return &GormStatusEventRepository{db: db}
}

func (r *GormStatusEventRepository) Append(ctx context.Context, e audit.StatusEvent) (bool, error) {
	dto := StatusEventDTO{
		EntityID:   e.EntityID.Bytes(),
		EntityType: e.EntityType.String(),
		FromStatus: e.FromStatus,
		ToStatus:   e.ToStatus,
		ActorID:    e.ActorID.Bytes(),
		OccurredAt: e.OccurredAt.UTC(),
		Extra:      datatypes.JSONMap(e.Extra),
	}
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&dto)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// ListByEntity returns events in occurrence order, ties broken by insertion.
func (r *GormStatusEventRepository) ListByEntity(ctx context.Context, entityID kernel.UUID) ([]audit.StatusEvent, error) {
	var dtos []StatusEventDTO
	err := r.db.WithContext(ctx).
		Where("entity_id = ?", entityID.Bytes()).
		Order("occurred_at, id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	out := make([]audit.StatusEvent, 0, len(dtos))
	for _, dto := range dtos {
		id, err := kernel.UUIDFromBytes(dto.EntityID[:])
		if err != nil {
			return nil, err
		}
		actorID, err := kernel.UUIDFromBytes(dto.ActorID[:])
		if err != nil {
			return nil, err
		}
		entityType, err := kernel.ParseEntityType(dto.EntityType)
		if err != nil {
			return nil, err
		}
		extra := map[string]any(dto.Extra)
		if extra == nil {
			extra = map[string]any{}
		}
		out = append(out, audit.StatusEvent{
			EntityID:   id,
			EntityType: entityType,
			FromStatus: dto.FromStatus,
			ToStatus:   dto.ToStatus,
			ActorID:    actorID,
			OccurredAt: dto.OccurredAt.UTC(),
			Extra:      extra,
		})
	}
	return out, nil
}
