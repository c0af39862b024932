package commands

import (
	"context"
	"time"

	"aidmatch/internal/core/domain/model/event"
	"aidmatch/internal/core/ports"
)

// RemindPendingRequestsResult reports one reminder pass. Through is the Since
// value for the next pass.
type RemindPendingRequestsResult struct {
	Sent    int
	Through time.Time
}

// RemindPendingRequestsCommandHandler publishes a RequestReminder for every
// request still pending past the cutoff. It never changes request state.
type RemindPendingRequestsCommandHandler struct {
	uowFactory RequestUoWFactory
	publisher  ports.EventPublisher
	clock      Clock
}

func NewRemindPendingRequestsCommandHandler(
	uowFactory RequestUoWFactory,
	publisher ports.EventPublisher,
	clock Clock,
) RemindPendingRequestsCommandHandler {
	return RemindPendingRequestsCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		clock:      clock,
	}
}

func (h *RemindPendingRequestsCommandHandler) Handle(
	ctx context.Context,
	cmd RemindPendingRequestsCommand,
) (RemindPendingRequestsResult, error) {
	if err := cmd.Validate(); err != nil {
		return RemindPendingRequestsResult{}, err
	}

	now := h.clock.now()
	var from time.Time
	if !cmd.Since().IsZero() {
		from = cmd.Since().Add(-cmd.OlderThan())
	}

	uow := h.uowFactory.Create()
	stale, err := uow.RequestRepository().ListPendingCreatedBetween(ctx, from, now.Add(-cmd.OlderThan()), cmd.Limit())
	if err != nil {
		return RemindPendingRequestsResult{}, err
	}

	events := make([]event.Event, 0, len(stale))
	for _, req := range stale {
		events = append(events, event.NewRequestReminder(req.Snapshot(), now))
	}
	if len(events) > 0 {
		h.publisher.Publish(ctx, events...)
	}

	// A full batch may have left requests behind; resume right after the last
	// one reminded. Stored timestamps have microsecond precision.
	through := now
	if len(stale) == cmd.Limit() {
		through = stale[len(stale)-1].CreatedAt().Add(cmd.OlderThan() + time.Microsecond)
	}

	return RemindPendingRequestsResult{Sent: len(events), Through: through}, nil
}
