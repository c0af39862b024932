package commands

import (
	"context"

	"aidmatch/internal/core/domain/model/event"
	"aidmatch/internal/core/domain/model/request"
	"aidmatch/internal/core/ports"
)

// CreateRequestCommandHandler persists a new pending request and, after
// commit, publishes RequestCreated so city volunteers get notified.
type CreateRequestCommandHandler struct {
	uowFactory RequestUoWFactory
	publisher  ports.EventPublisher
	clock      Clock
}

// NewCreateRequestCommandHandler creates a handler for request creation.
func NewCreateRequestCommandHandler(
	uowFactory RequestUoWFactory,
	publisher ports.EventPublisher,
	clock Clock,
) CreateRequestCommandHandler {
	return CreateRequestCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		clock:      clock,
	}
}

// Handle creates the request. The requester must hold the community role.
func (h *CreateRequestCommandHandler) Handle(ctx context.Context, cmd CreateRequestCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	req, err := request.NewRequest(cmd.RequestID(), cmd.Requester(), cmd.Details(), h.clock.now())
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

	if err = uow.RequestRepository().Add(ctx, req); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.Publish(ctx, event.ForRequest("", cmd.Requester().ID(), req.Snapshot()))
	return nil
}
