// Package requestrepo persists community requests. Each row holds the whole
// aggregate, including the volunteer snapshot taken at acceptance.
package requestrepo

import (
	"time"

	"aidmatch/internal/core/domain/model/kernel"
	"aidmatch/internal/core/domain/model/request"

	"github.com/google/uuid"
)

// RequestDTO is the "requests" row. Timestamps are written by the domain,
// never by GORM.
type RequestDTO struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primaryKey"`
	RequesterID        uuid.UUID  `gorm:"type:uuid;not null;index"`
	Initiative         string     `gorm:"not null"`
	City               string     `gorm:"not null"`
	NormalizedCity     string     `gorm:"not null;index"`
	Address            string     `gorm:"not null"`
	BeneficiaryName    string     `gorm:"not null"`
	BeneficiaryContact string
	Description        string
	Urgency            string     `gorm:"not null"`
	Status             string     `gorm:"not null;index:idx_requests_status_created,priority:1"`
	VolunteerID        *uuid.UUID `gorm:"type:uuid;index"`
	VolunteerName      string
	VolunteerContact   string
	DonorID            *uuid.UUID `gorm:"type:uuid;index"`
	DonorAddress       string
	DonorContact       string
	DecisionNotes      string
	DenialReason       string
	CreatedAt          time.Time  `gorm:"not null;autoCreateTime:false;index:idx_requests_status_created,priority:2"`
	UpdatedAt          time.Time  `gorm:"not null;autoUpdateTime:false"`
	AcceptedAt         *time.Time
	ReachedAt          *time.Time
	DecisionAt         *time.Time
	ClaimedAt          *time.Time
}

func (RequestDTO) TableName() string {
	return "requests"
}

func fromDomain(r *request.Request) RequestDTO {
	s := r.Snapshot()
	dto := RequestDTO{
		ID:                 s.ID.Bytes(),
		RequesterID:        s.RequesterID.Bytes(),
		Initiative:         s.Details.Initiative.String(),
		City:               s.Details.City.Name(),
		NormalizedCity:     s.Details.City.Normalized(),
		Address:            s.Details.Address,
		BeneficiaryName:    s.Details.BeneficiaryName,
		BeneficiaryContact: s.Details.BeneficiaryContact,
		Description:        s.Details.Description,
		Urgency:            s.Details.Urgency.String(),
		Status:             s.Status.String(),
		DonorID:            kernel.PtrBytes(s.DonorID),
		DonorAddress:       s.DonorAddress,
		DonorContact:       s.DonorContact,
		DecisionNotes:      s.DecisionNotes,
		DenialReason:       s.DenialReason,
		CreatedAt:          s.CreatedAt,
		UpdatedAt:          s.UpdatedAt,
		AcceptedAt:         s.AcceptedAt,
		ReachedAt:          s.ReachedAt,
		DecisionAt:         s.DecisionAt,
		ClaimedAt:          s.ClaimedAt,
	}
	if v := s.Volunteer; v != nil {
		dto.VolunteerID = kernel.PtrBytes(&v.ID)
		dto.VolunteerName = v.Name
		dto.VolunteerContact = v.Contact
	}
	return dto
}

func toDomain(dto RequestDTO) (*request.Request, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	requesterID, err := kernel.UUIDFromBytes(dto.RequesterID[:])
	if err != nil {
		return nil, err
	}
	donorID, err := kernel.UUIDPtrFromBytes(dto.DonorID)
	if err != nil {
		return nil, err
	}
	volunteerID, err := kernel.UUIDPtrFromBytes(dto.VolunteerID)
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
	urgency, err := request.ParseUrgency(dto.Urgency)
	if err != nil {
		return nil, err
	}
	status, err := request.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	var volunteer *kernel.ProfileSnapshot
	if volunteerID != nil {
		volunteer = &kernel.ProfileSnapshot{ID: *volunteerID, Name: dto.VolunteerName, Contact: dto.VolunteerContact}
	}

	return request.RestoreRequest(request.State{
		ID:          id,
		RequesterID: requesterID,
		Details: request.Details{
			Initiative:         initiative,
			City:               city,
			Address:            dto.Address,
			BeneficiaryName:    dto.BeneficiaryName,
			BeneficiaryContact: dto.BeneficiaryContact,
			Description:        dto.Description,
			Urgency:            urgency,
		},
		Status:        status,
		Volunteer:     volunteer,
		DonorID:       donorID,
		DonorAddress:  dto.DonorAddress,
		DonorContact:  dto.DonorContact,
		DecisionNotes: dto.DecisionNotes,
		DenialReason:  dto.DenialReason,
		CreatedAt:     dto.CreatedAt.UTC(),
		UpdatedAt:     dto.UpdatedAt.UTC(),
		AcceptedAt:    utc(dto.AcceptedAt),
		ReachedAt:     utc(dto.ReachedAt),
		DecisionAt:    utc(dto.DecisionAt),
		ClaimedAt:     utc(dto.ClaimedAt),
	})
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
