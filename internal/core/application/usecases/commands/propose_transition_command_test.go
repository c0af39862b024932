package commands_test

import (
	"testing"

	"aidmatch/internal/core/application/usecases/commands"
	"aidmatch/internal/core/domain/model/kernel"
	"aidmatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func volunteerActor(t *testing.T) kernel.Actor {
	t.Helper()
	a, err := kernel.NewActor(kernel.NewUUID(), kernel.RoleVolunteer)
	require.NoError(t, err)
	return a
}

func TestNewProposeTransitionCommand(t *testing.T) {
	v := volunteerActor(t)

	t.Run("should accept known target", func(t *testing.T) {
		id := kernel.NewUUID()

		cmd, err := commands.NewProposeTransitionCommand(
			kernel.EntityRequest, id, "VOLUNTEER_ACCEPTED", v, commands.AcceptPayload{},
		)

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.Equal(t, kernel.EntityRequest, cmd.EntityType())
		assert.True(t, cmd.EntityID().IsEqual(id))
		assert.Equal(t, "VOLUNTEER_ACCEPTED", cmd.Target())
		assert.Equal(t, commands.AcceptPayload{}, cmd.Payload())
	})

	t.Run("should reject target of the other entity", func(t *testing.T) {
		_, err := commands.NewProposeTransitionCommand(
			kernel.EntityDonation, kernel.NewUUID(), "VOLUNTEER_ACCEPTED", v, commands.AcceptPayload{},
		)

		require.True(t, errs.IsValidation(err))
	})

	t.Run("should reject unknown entity type", func(t *testing.T) {
		_, err := commands.NewProposeTransitionCommand(
			kernel.EntityType("pledge"), kernel.NewUUID(), "accepted", v, commands.AcceptPayload{},
		)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should join every field error", func(t *testing.T) {
		_, err := commands.NewProposeTransitionCommand(
			kernel.EntityRequest, kernel.UUID{}, "SOMEWHERE", kernel.Actor{}, nil,
		)

		require.Error(t, err)
		require.True(t, errs.IsValidation(err))
	})

	t.Run("zero value command is not constructed", func(t *testing.T) {
		var cmd commands.ProposeTransitionCommand

		require.ErrorIs(t, cmd.Validate(), commands.ErrProposeTransitionCommandIsNotConstructed)
	})
}

func TestTransitionCommandConstructors(t *testing.T) {
	v := volunteerActor(t)
	id := kernel.NewUUID()

	t.Run("decide maps verdict to target", func(t *testing.T) {
		approve, err := commands.NewDecideCommand(id, v, true, "ok", "")
		require.NoError(t, err)
		reject, err := commands.NewDecideCommand(id, v, false, "", "duplicate")
		require.NoError(t, err)

		assert.Equal(t, "APPROVED_BY_VOLUNTEER", approve.Target())
		assert.Equal(t, "REJECTED_BY_VOLUNTEER", reject.Target())
		assert.Equal(t, commands.DecisionPayload{Approve: false, Reason: "duplicate"}, reject.Payload())
	})

	t.Run("deny targets rejection with deny payload", func(t *testing.T) {
		cmd, err := commands.NewDenyRequestCommand(id, v, "too far")
		require.NoError(t, err)

		assert.Equal(t, "REJECTED_BY_VOLUNTEER", cmd.Target())
		assert.Equal(t, commands.DenyPayload{Reason: "too far"}, cmd.Payload())
	})

	t.Run("donation accept without feedback uses accept payload", func(t *testing.T) {
		cmd, err := commands.NewUpdateDonationStatusCommand(id, v, "accepted", "")
		require.NoError(t, err)

		assert.Equal(t, commands.AcceptPayload{}, cmd.Payload())
		assert.Equal(t, kernel.EntityDonation, cmd.EntityType())
	})

	t.Run("donation later stage uses stage payload", func(t *testing.T) {
		cmd, err := commands.NewUpdateDonationStatusCommand(id, v, "completed", "thanks")
		require.NoError(t, err)

		assert.Equal(t, commands.DonationStagePayload{Feedback: "thanks"}, cmd.Payload())
	})

	t.Run("unknown donation status", func(t *testing.T) {
		_, err := commands.NewUpdateDonationStatusCommand(id, v, "lost", "")

		require.True(t, errs.IsValidation(err))
	})
}
