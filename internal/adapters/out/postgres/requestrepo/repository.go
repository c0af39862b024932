package requestrepo

import (
	"context"
	"errors"
	"time"

	"aidmatch/internal/core/domain/model/kernel"
	"aidmatch/internal/core/domain/model/request"
	"aidmatch/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormRequestRepository implements ports.RequestRepository using GORM.
type GormRequestRepository struct {
	db *gorm.DB
}

// NewGormRequestRepository creates a repository bound to db, which is either
// the pool or the unit of work's transaction.
func NewGormRequestRepository(db *gorm.DB) *GormRequestRepository {
	return &GormRequestRepository{db: db}
}

// Add saves a new request to the database.
func (r *GormRequestRepository) Add(ctx context.Context, aggregate *request.Request) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update writes every column, zero values included.
func (r *GormRequestRepository) Update(ctx context.Context, aggregate *request.Request) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&RequestDTO{}).Where("id = ?", dto.ID).Select("*").Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("requestID", aggregate.ID().String())
	}

	return nil
}

// Get retrieves a request by ID.
func (r *GormRequestRepository) Get(ctx context.Context, id kernel.UUID) (*request.Request, error) {
	return r.get(r.db.WithContext(ctx), id)
}

// GetForUpdate retrieves a request with SELECT ... FOR UPDATE. Outside a
// transaction the lock is released immediately.
func (r *GormRequestRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*request.Request, error) {
	return r.get(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormRequestRepository) get(db *gorm.DB, id kernel.UUID) (*request.Request, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto RequestDTO
	if err := db.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("requestID", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// ListPendingCreatedBetween returns the oldest pending requests first.
func (r *GormRequestRepository) ListPendingCreatedBetween(
	ctx context.Context,
	from, to time.Time,
	limit int,
) ([]*request.Request, error) {
	query := r.db.WithContext(ctx).
		Where("status = ? AND created_at < ?", request.Pending.String(), to)
	if !from.IsZero() {
		query = query.Where("created_at >= ?", from)
	}

	var dtos []RequestDTO
	err := query.
		Order("created_at").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	requests := make([]*request.Request, 0, len(dtos))
	for _, dto := range dtos {
		req, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}

	return requests, nil
}
