// Package donationrepo persists donations, both standalone pledges and the
// ones spawned by a donor claim.
package donationrepo

import (
	"time"

	"aidmatch/internal/core/domain/model/donation"
	"aidmatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DonationDTO is the "donations" row. At most one donation may point at a
// request.
type DonationDTO struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey"`
	DonorID          uuid.UUID  `gorm:"type:uuid;not null;index"`
	Initiative       string     `gorm:"not null"`
	City             string     `gorm:"not null"`
	NormalizedCity   string     `gorm:"not null;index"`
	Description      string
	DonorAddress     string     `gorm:"not null"`
	DonorContact     string
	Status           string     `gorm:"not null;index"`
	VolunteerID      *uuid.UUID `gorm:"type:uuid;index"`
	VolunteerName    string
	VolunteerContact string
	LinkedRequestID  *uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	Feedback         string
	CreatedAt        time.Time  `gorm:"not null;autoCreateTime:false"`
	UpdatedAt        time.Time  `gorm:"not null;autoUpdateTime:false"`
	AcceptedAt       *time.Time
	PickedAt         *time.Time
	DeliveredAt      *time.Time
	CompletedAt      *time.Time
}

func (DonationDTO) TableName() string {
	return "donations"
}

func fromDomain(d *donation.Donation) DonationDTO {
	s := d.Snapshot()
	dto := DonationDTO{
		ID:              s.ID.Bytes(),
		DonorID:         s.DonorID.Bytes(),
		Initiative:      s.Details.Initiative.String(),
		City:            s.Details.City.Name(),
		NormalizedCity:  s.Details.City.Normalized(),
		Description:     s.Details.Description,
		DonorAddress:    s.Details.DonorAddress,
		DonorContact:    s.Details.DonorContact,
		Status:          s.Status.String(),
		LinkedRequestID: kernel.PtrBytes(s.LinkedRequestID),
		Feedback:        s.Feedback,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
		AcceptedAt:      s.AcceptedAt,
		PickedAt:        s.PickedAt,
		DeliveredAt:     s.DeliveredAt,
		CompletedAt:     s.CompletedAt,
	}
	if v := s.Volunteer; v != nil {
		dto.VolunteerID = kernel.PtrBytes(&v.ID)
		dto.VolunteerName = v.Name
		dto.VolunteerContact = v.Contact
	}
	return dto
}

func toDomain(dto DonationDTO) (*donation.Donation, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	donorID, err := kernel.UUIDFromBytes(dto.DonorID[:])
	if err != nil {
		return nil, err
	}
	volunteerID, err := kernel.UUIDPtrFromBytes(dto.VolunteerID)
	if err != nil {
		return nil, err
	}
	linkedRequestID, err := kernel.UUIDPtrFromBytes(dto.LinkedRequestID)
	if err != nil {
		return nil, err
	}
	initiative, err := kernel.ParseInitiative(dto.Initiative)
	if err != nil {
		return nil, err
	}
	city, err := kernel.NewCity(dto.City)
	if err != nil {
		return nil, err
	}
	status, err := donation.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	var volunteer *kernel.ProfileSnapshot
	if volunteerID != nil {
		volunteer = &kernel.ProfileSnapshot{ID: *volunteerID, Name: dto.VolunteerName, Contact: dto.VolunteerContact}
	}

	return donation.RestoreDonation(donation.State{
		ID:      id,
		DonorID: donorID,
		Details: donation.Details{
			Initiative:   initiative,
			City:         city,
			Description:  dto.Description,
			DonorAddress: dto.DonorAddress,
			DonorContact: dto.DonorContact,
		},
		Status:          status,
		Volunteer:       volunteer,
		LinkedRequestID: linkedRequestID,
		Feedback:        dto.Feedback,
		CreatedAt:       dto.CreatedAt.UTC(),
		UpdatedAt:       dto.UpdatedAt.UTC(),
		AcceptedAt:      utc(dto.AcceptedAt),
		PickedAt:        utc(dto.PickedAt),
		DeliveredAt:     utc(dto.DeliveredAt),
		CompletedAt:     utc(dto.CompletedAt),
	})
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
