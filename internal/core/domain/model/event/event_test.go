package event_test

import (
	"testing"
	"time"

	"aidmatch/internal/core/domain/model/event"
	"aidmatch/internal/core/domain/model/kernel"
	"aidmatch/internal/core/domain/model/request"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForRequest(t *testing.T) {
	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	actorID := kernel.NewUUID()

	tests := []struct {
		name   string
		from   request.Status
		to     request.Status
		expect event.Event
	}{
		{"created", "", request.Pending, event.RequestCreated{}},
		{"accepted", request.Pending, request.VolunteerAccepted, event.RequestAccepted{}},
		{"denied", request.Pending, request.RejectedByVolunteer, event.RequestDenied{}},
		{"reached", request.VolunteerAccepted, request.ReachedCommunity, event.RequestReached{}},
		{"approved", request.ReachedCommunity, request.ApprovedByVolunteer, event.RequestApproved{}},
		{"rejected", request.ReachedCommunity, request.RejectedByVolunteer, event.RequestRejected{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := request.State{ID: kernel.NewUUID(), Status: tt.to, UpdatedAt: at}

			ev := event.ForRequest(tt.from, actorID, state)

			require.NotNil(t, ev)
			assert.IsType(t, tt.expect, ev)
			h := ev.Header()
			assert.Equal(t, kernel.EntityRequest, h.EntityType)
			assert.Equal(t, tt.from.String(), h.From)
			assert.Equal(t, tt.to.String(), h.To)
			assert.Equal(t, at, h.OccurredAt)
			assert.True(t, h.IsTransition())
		})
	}

	t.Run("claim has its own constructor", func(t *testing.T) {
		state := request.State{ID: kernel.NewUUID(), Status: request.DonorClaimed}
		assert.Nil(t, event.ForRequest(request.ApprovedByVolunteer, actorID, state))
	})
}

func TestNewRequestReminder(t *testing.T) {
	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	state := request.State{ID: kernel.NewUUID(), Status: request.Pending, CreatedAt: created}

	ev := event.NewRequestReminder(state, created.Add(48*time.Hour))

	assert.Equal(t, 48*time.Hour, ev.Age)
	assert.False(t, ev.Header().IsTransition())
}
