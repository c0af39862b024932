package services

import (
	"slices"
	"strings"

	"aidmatch/internal/core/domain/model/kernel"
	"aidmatch/internal/core/domain/model/profile"
)

// VolunteerMatcher selects volunteers by exact normalized city.
//
// Business rules:
//   - Only profiles with the volunteer role are returned
//   - City comparison is trim plus lowercase, then exact equality
//   - When approval is required and no approved volunteer matches, the
//     unapproved volunteers of that city are returned instead, but only when
//     FallbackToUnapproved is set
//
// Example usage:
//
//	matcher := NewVolunteerMatcher(true)
//	refs := matcher.Match(candidates, "  GUNTUR ", true)
type VolunteerMatcher struct {
	fallbackToUnapproved bool
}

// NewVolunteerMatcher creates a matcher with the given fallback policy.
func NewVolunteerMatcher(fallbackToUnapproved bool) VolunteerMatcher {
	return VolunteerMatcher{fallbackToUnapproved: fallbackToUnapproved}
}

// FallbackToUnapproved reports the configured fallback policy.
func (m VolunteerMatcher) FallbackToUnapproved() bool {
	return m.fallbackToUnapproved
}

// Match filters candidates down to the volunteers of city. Candidates may
// include other roles and cities; they are ignored. The result is ordered by
// name for stable output.
func (m VolunteerMatcher) Match(candidates []*profile.Profile, city string, requireApproved bool) []profile.VolunteerRef {
	normalized := kernel.NormalizeCity(city)
	if normalized == "" {
		return []profile.VolunteerRef{}
	}

	var approved, unapproved []profile.VolunteerRef
	for _, p := range candidates {
		if p.Validate() != nil || !p.IsVolunteer() || p.City().Normalized() != normalized {
			continue
		}
		if p.Approved() {
			approved = append(approved, p.Ref())
		} else {
			unapproved = append(unapproved, p.Ref())
		}
	}

	var result []profile.VolunteerRef
	switch {
	case !requireApproved:
		result = append(approved, unapproved...)
	case len(approved) > 0:
		result = approved
	case m.fallbackToUnapproved:
		result = unapproved
	}
	if result == nil {
		return []profile.VolunteerRef{}
	}

	slices.SortStableFunc(result, func(a, b profile.VolunteerRef) int {
		return strings.Compare(a.Name, b.Name)
	})
	return result
}
