package commands_test

import (
	"errors"
	"testing"

	"aidmatch/internal/core/application/usecases/commands"
	"aidmatch/internal/core/domain/model/assignment"
	"aidmatch/internal/core/domain/model/event"
	"aidmatch/internal/core/domain/model/kernel"
	"aidmatch/internal/core/domain/model/profile"
	"aidmatch/internal/core/domain/model/request"
	"aidmatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func pendingRequest(t *testing.T) *request.Request {
	t.Helper()
	city, err := kernel.NewCity("Guntur")
	require.NoError(t, err)
	r, err := request.NewRequest(kernel.NewUUID(), communityActor(t), request.Details{
		Initiative:      kernel.InitiativeFood,
		City:            city,
		Address:         "4 Station Road",
		BeneficiaryName: "Lakshmi",
	}, fixedClock()())
	require.NoError(t, err)
	return r
}

func volunteerProfile(t *testing.T, v kernel.Actor) *profile.Profile {
	t.Helper()
	city, err := kernel.NewCity("Guntur")
	require.NoError(t, err)
	p, err := profile.RestoreProfile(profile.State{
		ID: v.ID(), Role: kernel.RoleVolunteer, Name: "Ravi", Contact: "98480 11111", City: city, Approved: true,
	})
	require.NoError(t, err)
	return p
}

func TestProposeTransitionCommandHandler_Handle_AcceptSuccess(t *testing.T) {
	ctx := t.Context()
	v := volunteerActor(t)
	req := pendingRequest(t)
	cmd, err := commands.NewAcceptRequestCommand(req.ID(), v)
	require.NoError(t, err)

	requestRepo := new(MockRequestRepository)
	profileRepo := new(MockProfileRepository)
	assignmentRepo := new(MockAssignmentRepository)
	uow := new(MockUoW)
	publisher := new(MockPublisher)

	key := assignment.Key{EntityType: kernel.EntityRequest, EntityID: req.ID(), VolunteerID: v.ID()}

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("RequestRepository").Return(requestRepo).Once(),
		requestRepo.On("GetForUpdate", ctx, req.ID()).Return(req, nil).Once(),
		uow.On("ProfileRepository").Return(profileRepo).Once(),
		profileRepo.On("Get", ctx, v.ID()).Return(volunteerProfile(t, v), nil).Once(),
		requestRepo.On("Update", ctx, req).Return(nil).Once(),
		uow.On("AssignmentRepository").Return(assignmentRepo).Once(),
		assignmentRepo.On("Get", ctx, key).Return(nil, errs.NewObjectNotFoundError("assignment", key)).Once(),
		assignmentRepo.On("Upsert", ctx, mock.MatchedBy(func(rec *assignment.Record) bool {
			return rec.Key() == key && rec.Latest() == "VOLUNTEER_ACCEPTED"
		})).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		publisher.On("Publish", ctx, mock.MatchedBy(func(events []event.Event) bool {
			if len(events) != 1 {
				return false
			}
			accepted, ok := events[0].(event.RequestAccepted)
			return ok && accepted.From == "pending" && accepted.To == "VOLUNTEER_ACCEPTED"
		})).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewProposeTransitionCommandHandler(factory, publisher, fixedClock())
	result, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, "pending", result.PreviousStatus)
	assert.Equal(t, "VOLUNTEER_ACCEPTED", result.NewStatus)
	assert.Nil(t, result.SpawnedDonationID)
	assert.Equal(t, "98480 11111", req.Volunteer().Contact)

	factory.AssertExpectations(t)
	uow.AssertExpectations(t)
	requestRepo.AssertExpectations(t)
	profileRepo.AssertExpectations(t)
	assignmentRepo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestProposeTransitionCommandHandler_Handle_Errors(t *testing.T) {
	t.Run("not found aborts before any write", func(t *testing.T) {
		ctx := t.Context()
		id := kernel.NewUUID()
		cmd, err := commands.NewAcceptRequestCommand(id, volunteerActor(t))
		require.NoError(t, err)

		requestRepo := new(MockRequestRepository)
		uow := new(MockUoW)
		publisher := new(MockPublisher)
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("RequestRepository").Return(requestRepo).Once()
		requestRepo.On("GetForUpdate", ctx, id).Return(nil, errs.NewObjectNotFoundError("requestID", id)).Once()
		uow.On("Rollback", ctx).Return(nil).Once()
		factory := new(MockUoWFactory)
		factory.On("Create").Return(uow).Once()

		handler := commands.NewProposeTransitionCommandHandler(factory, publisher, fixedClock())
		_, err = handler.Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
		requestRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		uow.AssertNotCalled(t, "Commit", ctx)
		publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})

	t.Run("payload mismatch is a validation error", func(t *testing.T) {
		ctx := t.Context()
		req := pendingRequest(t)
		cmd, err := commands.NewProposeTransitionCommand(
			kernel.EntityRequest, req.ID(), "REACHED_COMMUNITY", volunteerActor(t), commands.AcceptPayload{},
		)
		require.NoError(t, err)

		requestRepo := new(MockRequestRepository)
		uow := new(MockUoW)
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("RequestRepository").Return(requestRepo).Once()
		requestRepo.On("GetForUpdate", ctx, req.ID()).Return(req, nil).Once()
		uow.On("Rollback", ctx).Return(nil).Once()
		factory := new(MockUoWFactory)
		factory.On("Create").Return(uow).Once()

		handler := commands.NewProposeTransitionCommandHandler(factory, new(MockPublisher), fixedClock())
		_, err = handler.Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Equal(t, request.Pending, req.Status())
	})

	t.Run("commit failure publishes nothing", func(t *testing.T) {
		ctx := t.Context()
		v := volunteerActor(t)
		req := pendingRequest(t)
		cmd, err := commands.NewDenyRequestCommand(req.ID(), v, "")
		require.NoError(t, err)

		commitErr := errors.New("commit failed")
		requestRepo := new(MockRequestRepository)
		uow := new(MockUoW)
		publisher := new(MockPublisher)
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("RequestRepository").Return(requestRepo).Once()
		requestRepo.On("GetForUpdate", ctx, req.ID()).Return(req, nil).Once()
		requestRepo.On("Update", ctx, req).Return(nil).Once()
		uow.On("Commit", ctx).Return(commitErr).Once()
		uow.On("Rollback", ctx).Return(nil).Once()
		factory := new(MockUoWFactory)
		factory.On("Create").Return(uow).Once()

		handler := commands.NewProposeTransitionCommandHandler(factory, publisher, fixedClock())
		_, err = handler.Handle(ctx, cmd)

		require.ErrorIs(t, err, commitErr)
		publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
		uow.AssertExpectations(t)
	})

	t.Run("begin failure", func(t *testing.T) {
		ctx := t.Context()
		cmd, err := commands.NewAcceptRequestCommand(kernel.NewUUID(), volunteerActor(t))
		require.NoError(t, err)

		beginErr := errors.New("no connection")
		uow := new(MockUoW)
		uow.On("Begin", ctx).Return(beginErr).Once()
		factory := new(MockUoWFactory)
		factory.On("Create").Return(uow).Once()

		handler := commands.NewProposeTransitionCommandHandler(factory, new(MockPublisher), nil)
		_, err = handler.Handle(ctx, cmd)

		require.ErrorIs(t, err, beginErr)
	})
}
