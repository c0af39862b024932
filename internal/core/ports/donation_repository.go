package ports

import (
	"context"

	"aidmatch/internal/core/domain/model/donation"
	"aidmatch/internal/core/domain/model/kernel"
)

// DonationRepository defines the persistence contract for donations.
type DonationRepository interface {
	Add(ctx context.Context, aggregate *donation.Donation) error
	Update(ctx context.Context, aggregate *donation.Donation) error

	// Get returns ObjectNotFoundError when the id is unknown.
	Get(ctx context.Context, id kernel.UUID) (*donation.Donation, error)

	// GetForUpdate retrieves a donation under an exclusive row lock.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*donation.Donation, error)
}
