package request_test

import (
	"testing"

	"aidmatch/internal/core/domain/model/request"
	"aidmatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_TransitionTable(t *testing.T) {
	legal := map[request.Status][]request.Status{
		request.Pending:             {request.VolunteerAccepted, request.RejectedByVolunteer},
		request.VolunteerAccepted:   {request.ReachedCommunity},
		request.ReachedCommunity:    {request.ApprovedByVolunteer, request.RejectedByVolunteer},
		request.ApprovedByVolunteer: {request.DonorClaimed},
	}

	for _, from := range request.AllStatuses() {
		for _, to := range request.AllStatuses() {
			expected := false
			for _, next := range legal[from] {
				if next == to {
					expected = true
				}
			}

			t.Run(from.String()+"->"+to.String(), func(t *testing.T) {
				assert.Equal(t, expected, from.CanTransitionTo(to))

				got, err := from.TransitionTo(to)
				if expected {
					require.NoError(t, err)
					assert.Equal(t, to, got)
					return
				}
				require.ErrorIs(t, err, errs.ErrInvalidTransition)
				assert.Empty(t, got)
			})
		}
	}
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.True(t, request.DonorClaimed.IsTerminal())
	assert.True(t, request.RejectedByVolunteer.IsTerminal())
	assert.False(t, request.Pending.IsTerminal())
	assert.False(t, request.Status("bogus").IsTerminal())
}

func TestParseStatus(t *testing.T) {
	s, err := request.ParseStatus("VOLUNTEER_ACCEPTED")
	require.NoError(t, err)
	assert.Equal(t, request.VolunteerAccepted, s)

	_, err = request.ParseStatus("volunteer_accepted")
	require.Error(t, err)
	assert.True(t, errs.IsValidation(err))
}

func TestStatus_ValidateCanHaveVolunteer(t *testing.T) {
	require.NoError(t, request.Pending.ValidateCanHaveVolunteer(false))
	require.Error(t, request.Pending.ValidateCanHaveVolunteer(true))
	require.Error(t, request.ReachedCommunity.ValidateCanHaveVolunteer(false))
	require.NoError(t, request.RejectedByVolunteer.ValidateCanHaveVolunteer(true))
	require.NoError(t, request.RejectedByVolunteer.ValidateCanHaveVolunteer(false))
}

func TestParseUrgency(t *testing.T) {
	u, err := request.ParseUrgency("")
	require.NoError(t, err)
	assert.Equal(t, request.UrgencyMedium, u)

	u, err = request.ParseUrgency("high")
	require.NoError(t, err)
	assert.Equal(t, request.UrgencyHigh, u)

	_, err = request.ParseUrgency("critical")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
