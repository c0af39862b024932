package assignmentrepo

import (
	"context"
	"errors"

	"aidmatch/internal/core/domain/model/assignment"
	"aidmatch/internal/core/domain/model/kernel"
	"aidmatch/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormAssignmentRepository implements ports.AssignmentRepository using GORM.
type GormAssignmentRepository struct {
	db *gorm.DB
}

func NewGormAssignmentRepository(db *gorm.DB) *GormAssignmentRepository {
	return &GormAssignmentRepository{db: db}
}

func (r *GormAssignmentRepository) Get(ctx context.Context, key assignment.Key) (*assignment.Record, error) {
	if err := key.Validate(); err != nil {
		return nil, err
	}

	var dto AssignmentDTO
	err := r.db.WithContext(ctx).
		Where("entity_type = ? AND entity_id = ? AND volunteer_id = ?",
			key.EntityType.String(), key.EntityID.Bytes(), key.VolunteerID.Bytes()).
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("assignment", key.EntityID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// Upsert replaces the statuses and update time of an existing row.
func (r *GormAssignmentRepository) Upsert(ctx context.Context, record *assignment.Record) error {
	if err := record.Validate(); err != nil {
		return err
	}

	dto := fromDomain(record)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "entity_type"}, {Name: "entity_id"}, {Name: "volunteer_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"statuses", "updated_at"}),
		}).
		Create(&dto).Error
}

func (r *GormAssignmentRepository) ListByVolunteer(
	ctx context.Context,
	volunteerID kernel.UUID,
) ([]*assignment.Record, error) {
	if err := volunteerID.Validate(); err != nil {
		return nil, err
	}

	var dtos []AssignmentDTO
	err := r.db.WithContext(ctx).
		Where("volunteer_id = ?", volunteerID.Bytes()).
		Order("updated_at DESC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	records := make([]*assignment.Record, 0, len(dtos))
	for _, dto := range dtos {
		rec, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}
