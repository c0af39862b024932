package services_test

import (
	"testing"

	"aidmatch/internal/core/domain/model/kernel"
	"aidmatch/internal/core/domain/model/profile"
	"aidmatch/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProfile(t *testing.T, name, city string, role kernel.Role, approved bool) *profile.Profile {
	t.Helper()
	c, err := kernel.NewCity(city)
	require.NoError(t, err)
	p, err := profile.RestoreProfile(profile.State{
		ID:       kernel.NewUUID(),
		Role:     role,
		Name:     name,
		City:     c,
		Approved: approved,
	})
	require.NoError(t, err)
	return p
}

func names(refs []profile.VolunteerRef) []string {
	out := make([]string, 0, len(refs))
	for _, r := range refs {
		out = append(out, r.Name)
	}
	return out
}

func TestVolunteerMatcher_Match(t *testing.T) {
	candidates := []*profile.Profile{
		newProfile(t, "Chitra", "Guntur", kernel.RoleVolunteer, true),
		newProfile(t, "Asha", "guntur ", kernel.RoleVolunteer, true),
		newProfile(t, "Bala", "GUNTUR", kernel.RoleVolunteer, false),
		newProfile(t, "Dev", "Guntur", kernel.RoleDonor, true),
		newProfile(t, "Esha", "Guntur East", kernel.RoleVolunteer, true),
		newProfile(t, "Farah", "Vijayawada", kernel.RoleVolunteer, false),
	}

	tests := []struct {
		name            string
		fallback        bool
		city            string
		requireApproved bool
		expected        []string
	}{
		{"approved only, case and space insensitive", true, "  gUNTUR ", true, []string{"Asha", "Chitra"}},
		{"approval not required", true, "Guntur", false, []string{"Asha", "Bala", "Chitra"}},
		{"falls back to unapproved", true, "vijayawada", true, []string{"Farah"}},
		{"fallback disabled", false, "vijayawada", true, []string{}},
		{"no partial match", true, "Gunt", true, []string{}},
		{"blank city", true, "   ", false, []string{}},
		{"unknown city", true, "Nellore", true, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matcher := services.NewVolunteerMatcher(tt.fallback)

			refs := matcher.Match(candidates, tt.city, tt.requireApproved)

			assert.Equal(t, tt.expected, names(refs))
		})
	}
}

func TestVolunteerMatcher_SkipsUnconstructedProfiles(t *testing.T) {
	matcher := services.NewVolunteerMatcher(true)

	refs := matcher.Match([]*profile.Profile{nil, {}}, "Guntur", false)

	assert.Empty(t, refs)
}

// Documented deviation. The service ships with MATCHER_FALLBACK_TO_UNAPPROVED
// on, so an approval-required lookup in a city with no approved volunteers
// returns the unapproved ones. The intended rule, still pending product-owner
// confirmation, is an empty result. Both are pinned here so flipping the
// default is a deliberate change.
func TestVolunteerMatcher_IntendedBehaviourWithoutFallback(t *testing.T) {
	candidates := []*profile.Profile{
		newProfile(t, "Kiran", "Vijayawada", kernel.RoleVolunteer, false),
		newProfile(t, "Ravi", "Guntur", kernel.RoleVolunteer, true),
	}

	t.Run("intended: approval required means approved only", func(t *testing.T) {
		refs := services.NewVolunteerMatcher(false).Match(candidates, "vijayawada", true)

		assert.NotNil(t, refs)
		assert.Empty(t, refs)
	})

	t.Run("shipped default: falls back to unapproved", func(t *testing.T) {
		refs := services.NewVolunteerMatcher(true).Match(candidates, "vijayawada", true)

		require.Len(t, refs, 1)
		assert.Equal(t, "Kiran", refs[0].Name)
		assert.False(t, refs[0].Approved)
	})
}
