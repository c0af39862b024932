// Package profilerepo reads user profiles. Profiles are owned by the identity
// service; Save exists for seeding and tests.
package profilerepo

import (
	"aidmatch/internal/core/domain/model/kernel"
	"aidmatch/internal/core/domain/model/profile"

	"github.com/google/uuid"
)

type ProfileDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Role           string    `gorm:"not null;index:idx_profiles_role_city,priority:1"`
	Name           string
	Email          string
	Contact        string
	City           string `gorm:"not null"`
	NormalizedCity string `gorm:"not null;index:idx_profiles_role_city,priority:2"`
	Approved       bool   `gorm:"not null;default:false"`
}

func (ProfileDTO) TableName() string {
	return "profiles"
}

func fromDomain(p *profile.Profile) ProfileDTO {
	s := p.Snapshot()
	return ProfileDTO{
		ID:             s.ID.Bytes(),
		Role:           s.Role.String(),
		Name:           s.Name,
		Email:          s.Email,
		Contact:        s.Contact,
		City:           s.City.Name(),
		NormalizedCity: s.City.Normalized(),
		Approved:       s.Approved,
	}
}

func toDomain(dto ProfileDTO) (*profile.Profile, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	role, err := kernel.ParseRole(dto.Role)
	if err != nil {
		return nil, err
	}
	city, err := kernel.NewCity(dto.City)
	if err != nil {
		return nil, err
	}
	return profile.RestoreProfile(profile.State{
		ID:       id,
		Role:     role,
		Name:     dto.Name,
		Email:    dto.Email,
		Contact:  dto.Contact,
		City:     city,
		Approved: dto.Approved,
	})
}
