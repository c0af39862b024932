package memory

import (
	"context"
	"slices"
	"strings"

	"aidmatch/internal/core/domain/model/kernel"
	"aidmatch/internal/core/domain/model/profile"
	"aidmatch/internal/pkg/errs"
)

type profileRepository struct {
	uow *UnitOfWork
}

func (r *profileRepository) Get(_ context.Context, id kernel.UUID) (*profile.Profile, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	s := r.uow.store
	s.mu.RLock()
	st, ok := s.profiles[id.Bytes()]
	s.mu.RUnlock()
	if !ok {
		return nil, errs.NewObjectNotFoundError("profile", id.String())
	}
	return profile.RestoreProfile(st)
}

func (r *profileRepository) ListVolunteersByCity(_ context.Context, normalizedCity string) ([]*profile.Profile, error) {
	s := r.uow.store
	s.mu.RLock()
	states := make([]profile.State, 0)
	for _, st := range s.profiles {
		if st.Role == kernel.RoleVolunteer && st.City.Normalized() == normalizedCity {
			states = append(states, st)
		}
	}
	s.mu.RUnlock()

	slices.SortFunc(states, func(a, b profile.State) int {
		return strings.Compare(a.Name, b.Name)
	})

	result := make([]*profile.Profile, 0, len(states))
	for _, st := range states {
		p, err := profile.RestoreProfile(st)
		if err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, nil
}
