package queries

import (
	"context"

	"aidmatch/internal/core/domain/services"
	"aidmatch/internal/core/ports"
)

// FindVolunteersQueryHandler is the location matcher's read path: the
// repository narrows profiles to the normalized city and the matcher applies
// the role, approval and fallback rules.
type FindVolunteersQueryHandler struct {
	profiles ports.ProfileRepository
	matcher  services.VolunteerMatcher
}

func NewFindVolunteersQueryHandler(
	profiles ports.ProfileRepository,
	matcher services.VolunteerMatcher,
) FindVolunteersQueryHandler {
	return FindVolunteersQueryHandler{profiles: profiles, matcher: matcher}
}

// Handle returns the matching volunteers ordered by name. An unknown city
// yields an empty, non-nil slice.
func (h FindVolunteersQueryHandler) Handle(
	ctx context.Context,
	query FindVolunteersQuery,
) ([]FindVolunteersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	candidates, err := h.profiles.ListVolunteersByCity(ctx, query.NormalizedCity())
	if err != nil {
		return nil, err
	}

	refs := h.matcher.Match(candidates, query.City(), query.RequireApproved())
	volunteers := make([]FindVolunteersQueryResponse, 0, len(refs))
	for _, ref := range refs {
		volunteers = append(volunteers, FindVolunteersQueryResponse(ref))
	}
	return volunteers, nil
}
