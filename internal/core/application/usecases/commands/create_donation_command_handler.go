package commands

import (
	"context"

	"aidmatch/internal/core/domain/model/donation"
	"aidmatch/internal/core/domain/model/event"
	"aidmatch/internal/core/ports"
)

// CreateDonationCommandHandler persists a new pending donation and publishes
// DonationCreated after commit.
type CreateDonationCommandHandler struct {
	uowFactory DonationUoWFactory
	publisher  ports.EventPublisher
	clock      Clock
}

// NewCreateDonationCommandHandler creates a handler for direct donations.
func NewCreateDonationCommandHandler(
	uowFactory DonationUoWFactory,
	publisher ports.EventPublisher,
	clock Clock,
) CreateDonationCommandHandler {
	return CreateDonationCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		clock:      clock,
	}
}

// Handle creates the donation. The actor must hold the donor role.
func (h *CreateDonationCommandHandler) Handle(ctx context.Context, cmd CreateDonationCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	d, err := donation.NewDonation(cmd.DonationID(), cmd.Donor(), cmd.Details(), h.clock.now())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.DonationRepository().Add(ctx, d); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.Publish(ctx, event.NewDonationCreated(cmd.Donor().ID(), d.Snapshot()))
	return nil
}
