package donationrepo

import (
	"context"
	"errors"

	"aidmatch/internal/core/domain/model/donation"
	"aidmatch/internal/core/domain/model/kernel"
	"aidmatch/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormDonationRepository implements ports.DonationRepository using GORM.
type GormDonationRepository struct {
	db *gorm.DB
}

func NewGormDonationRepository(db *gorm.DB) *GormDonationRepository {
	return &GormDonationRepository{db: db}
}

// Add inserts a donation. A second donation for the same linked request
// violates the unique index and fails.
func (r *GormDonationRepository) Add(ctx context.Context, aggregate *donation.Donation) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

func (r *GormDonationRepository) Update(ctx context.Context, aggregate *donation.Donation) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&DonationDTO{}).Where("id = ?", dto.ID).Select("*").Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("donationID", aggregate.ID().String())
	}

	return nil
}

func (r *GormDonationRepository) Get(ctx context.Context, id kernel.UUID) (*donation.Donation, error) {
	return r.get(r.db.WithContext(ctx), id)
}

// GetForUpdate locks the row until the surrounding transaction ends.
func (r *GormDonationRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*donation.Donation, error) {
	return r.get(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormDonationRepository) get(db *gorm.DB, id kernel.UUID) (*donation.Donation, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto DonationDTO
	if err := db.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("donationID", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
