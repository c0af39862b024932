// Package assignmentrepo stores per-volunteer assignment history, one row per
// (entity, volunteer) with the statuses reached as a text array.
package assignmentrepo

import (
	"time"

	"aidmatch/internal/core/domain/model/assignment"
	"aidmatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type AssignmentDTO struct {
	EntityType  string         `gorm:"primaryKey"`
	EntityID    uuid.UUID      `gorm:"type:uuid;primaryKey"`
	VolunteerID uuid.UUID      `gorm:"type:uuid;primaryKey;index"`
	Statuses    pq.StringArray `gorm:"type:text[];not null"`
	CreatedAt   time.Time      `gorm:"not null;autoCreateTime:false"`
	UpdatedAt   time.Time      `gorm:"not null;autoUpdateTime:false"`
}

func (AssignmentDTO) TableName() string {
	return "volunteer_assignments"
}

func fromDomain(r *assignment.Record) AssignmentDTO {
	k := r.Key()
	return AssignmentDTO{
		EntityType:  k.EntityType.String(),
		EntityID:    k.EntityID.Bytes(),
		VolunteerID: k.VolunteerID.Bytes(),
		Statuses:    pq.StringArray(r.Statuses()),
		CreatedAt:   r.CreatedAt(),
		UpdatedAt:   r.UpdatedAt(),
	}
}

func toDomain(dto AssignmentDTO) (*assignment.Record, error) {
	entityType, err := kernel.ParseEntityType(dto.EntityType)
	if err != nil {
		return nil, err
	}
	entityID, err := kernel.UUIDFromBytes(dto.EntityID[:])
	if err != nil {
		return nil, err
	}
	volunteerID, err := kernel.UUIDFromBytes(dto.VolunteerID[:])
	if err != nil {
		return nil, err
	}
	key := assignment.Key{EntityType: entityType, EntityID: entityID, VolunteerID: volunteerID}
	return assignment.RestoreRecord(key, []string(dto.Statuses), dto.CreatedAt.UTC(), dto.UpdatedAt.UTC())
}
