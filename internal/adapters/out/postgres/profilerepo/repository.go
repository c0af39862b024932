package profilerepo

import (
	"context"
	"errors"

	"aidmatch/internal/core/domain/model/kernel"
	"aidmatch/internal/core/domain/model/profile"
	"aidmatch/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormProfileRepository implements ports.ProfileRepository using GORM.
type GormProfileRepository struct {
	db *gorm.DB
}

func NewGormProfileRepository(db *gorm.DB) *GormProfileRepository {
	return &GormProfileRepository{db: db}
}

// Save inserts the profile or overwrites the stored one.
func (r *GormProfileRepository) Save(ctx context.Context, p *profile.Profile) error {
	if err := p.Validate(); err != nil {
		return err
	}

	dto := fromDomain(p)
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&dto).Error
}

func (r *GormProfileRepository) Get(ctx context.Context, id kernel.UUID) (*profile.Profile, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ProfileDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("profileID", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// ListVolunteersByCity filters on the stored normalized city, approved or not.
func (r *GormProfileRepository) ListVolunteersByCity(
	ctx context.Context,
	normalizedCity string,
) ([]*profile.Profile, error) {
	var dtos []ProfileDTO
	err := r.db.WithContext(ctx).
		Where("role = ? AND normalized_city = ?", kernel.RoleVolunteer.String(), normalizedCity).
		Order("name").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	profiles := make([]*profile.Profile, 0, len(dtos))
	for _, dto := range dtos {
		p, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}

	return profiles, nil
}
