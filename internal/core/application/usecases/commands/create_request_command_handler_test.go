package commands_test

import (
	"errors"
	"testing"
	"time"

	"aidmatch/internal/core/application/usecases/commands"
	"aidmatch/internal/core/domain/model/event"
	"aidmatch/internal/core/domain/model/kernel"
	"aidmatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func fixedClock() commands.Clock {
	at := time.Date(2026, 3, 1, 10, 0, 0, 123456789, time.UTC)
	return func() time.Time { return at }
}

func TestCreateRequestCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	requester := communityActor(t)
	cmd, err := commands.NewCreateRequestCommand(kernel.NewUUID(), requester, validRequestInput())
	require.NoError(t, err)

	requestRepo := new(MockRequestRepository)
	uow := new(MockUoW)
	publisher := new(MockPublisher)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("RequestRepository").Return(requestRepo).Once(),
		requestRepo.On("Add", ctx, mock.AnythingOfType("*request.Request")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		publisher.On("Publish", ctx, mock.MatchedBy(func(events []event.Event) bool {
			if len(events) != 1 {
				return false
			}
			created, ok := events[0].(event.RequestCreated)
			return ok && created.From == "" && created.To == "pending" &&
				created.ActorID.IsEqual(requester.ID()) &&
				created.OccurredAt.Nanosecond() == 123456000
		})).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockRequestUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCreateRequestCommandHandler(factory, publisher, fixedClock())
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	factory.AssertExpectations(t)
	uow.AssertExpectations(t)
	requestRepo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestCreateRequestCommandHandler_Handle_Errors(t *testing.T) {
	t.Run("non-community requester is rejected before any transaction", func(t *testing.T) {
		donor, err := kernel.NewActor(kernel.NewUUID(), kernel.RoleDonor)
		require.NoError(t, err)
		cmd, err := commands.NewCreateRequestCommand(kernel.NewUUID(), donor, validRequestInput())
		require.NoError(t, err)

		factory := new(MockRequestUoWFactory)
		publisher := new(MockPublisher)
		handler := commands.NewCreateRequestCommandHandler(factory, publisher, fixedClock())

		err = handler.Handle(t.Context(), cmd)

		require.ErrorIs(t, err, errs.ErrUnauthorized)
		factory.AssertNotCalled(t, "Create")
		publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})

	t.Run("insert failure rolls back without publishing", func(t *testing.T) {
		ctx := t.Context()
		cmd, err := commands.NewCreateRequestCommand(kernel.NewUUID(), communityActor(t), validRequestInput())
		require.NoError(t, err)

		insertErr := errors.New("insert failed")
		requestRepo := new(MockRequestRepository)
		uow := new(MockUoW)
		publisher := new(MockPublisher)
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("RequestRepository").Return(requestRepo).Once()
		requestRepo.On("Add", ctx, mock.Anything).Return(insertErr).Once()
		uow.On("Rollback", ctx).Return(nil).Once()

		factory := new(MockRequestUoWFactory)
		factory.On("Create").Return(uow).Once()

		handler := commands.NewCreateRequestCommandHandler(factory, publisher, fixedClock())
		err = handler.Handle(ctx, cmd)

		require.ErrorIs(t, err, insertErr)
		uow.AssertNotCalled(t, "Commit", ctx)
		publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})

	t.Run("zero value command", func(t *testing.T) {
		handler := commands.NewCreateRequestCommandHandler(new(MockRequestUoWFactory), new(MockPublisher), nil)

		err := handler.Handle(t.Context(), commands.CreateRequestCommand{})

		require.ErrorIs(t, err, commands.ErrCreateRequestCommandIsNotConstructed)
	})
}

func TestCreateDonationCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	donor, err := kernel.NewActor(kernel.NewUUID(), kernel.RoleDonor)
	require.NoError(t, err)
	cmd, err := commands.NewCreateDonationCommand(kernel.NewUUID(), donor, commands.CreateDonationInput{
		Initiative:   "clothing",
		City:         "Vijayawada",
		Description:  "winter jackets",
		DonorAddress: "7 Canal Road",
	})
	require.NoError(t, err)

	donationRepo := new(MockDonationRepository)
	uow := new(MockUoW)
	publisher := new(MockPublisher)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DonationRepository").Return(donationRepo).Once(),
		donationRepo.On("Add", ctx, mock.AnythingOfType("*donation.Donation")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		publisher.On("Publish", ctx, mock.MatchedBy(func(events []event.Event) bool {
			if len(events) != 1 {
				return false
			}
			_, ok := events[0].(event.DonationCreated)
			return ok
		})).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockDonationUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCreateDonationCommandHandler(factory, publisher, fixedClock())
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	uow.AssertExpectations(t)
	donationRepo.AssertExpectations(t)
	publisher.AssertExpectations(t)
	assert.True(t, cmd.Donor().ID().IsEqual(donor.ID()))
}
