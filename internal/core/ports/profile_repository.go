package ports

import (
	"context"

	"aidmatch/internal/core/domain/model/kernel"
	"aidmatch/internal/core/domain/model/profile"
)

// ProfileRepository reads user profiles. The core never writes them.
type ProfileRepository interface {
	// Get returns ObjectNotFoundError when the id is unknown.
	Get(ctx context.Context, id kernel.UUID) (*profile.Profile, error)

	// ListVolunteersByCity returns every volunteer, approved or not, whose
	// normalized city equals normalizedCity.
	ListVolunteersByCity(ctx context.Context, normalizedCity string) ([]*profile.Profile, error)
}
