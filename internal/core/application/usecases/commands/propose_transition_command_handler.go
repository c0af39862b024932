package commands

import (
	"context"
	"errors"
	"time"

	"aidmatch/internal/core/domain/model/assignment"
	"aidmatch/internal/core/domain/model/donation"
	"aidmatch/internal/core/domain/model/event"
	"aidmatch/internal/core/domain/model/kernel"
	"aidmatch/internal/core/domain/model/request"
	"aidmatch/internal/core/ports"
	"aidmatch/internal/pkg/errs"
)

// Clock returns the current time. Handlers truncate it to microseconds so an
// instant survives a round trip through the database unchanged.
type Clock func() time.Time

func (c Clock) now() time.Time {
	if c == nil {
		return time.Now().UTC().Truncate(time.Microsecond)
	}
	return c().UTC().Truncate(time.Microsecond)
}

// ProposeTransitionCommandHandler is the transition engine. Each call runs in
// one unit of work and reads the entity under an exclusive row lock, so
// concurrent calls on the same entity are applied one after another and the
// later call sees the earlier one's committed state.
//
// Checks run in this order, and the first failure aborts the transaction:
//
//  1. the entity exists (ObjectNotFoundError)
//  2. the payload variant belongs to the target (ValueIsInvalidError)
//  3. the actor's role suits the target (UnauthorizedError)
//  4. a single-assignment slot is not held by another actor (ConflictError)
//  5. the target is a successor of the current status (InvalidTransitionError)
//  6. the actor owns the entity for this step (UnauthorizedError)
//
// Events are published only after a successful commit.
//
// Example:
//
//	handler := NewProposeTransitionCommandHandler(uowFactory, dispatcher, nil)
//	cmd, _ := NewAcceptRequestCommand(requestID, volunteer)
//
//	result, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, errs.ErrConflict) {
//	    // another volunteer accepted first
//	}
type ProposeTransitionCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.EventPublisher
	clock      Clock
}

// NewProposeTransitionCommandHandler creates the engine. A nil clock uses
// time.Now.
func NewProposeTransitionCommandHandler(
	uowFactory UoWFactory,
	publisher ports.EventPublisher,
	clock Clock,
) ProposeTransitionCommandHandler {
	return ProposeTransitionCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		clock:      clock,
	}
}

// Handle applies the transition and returns the status change.
func (h *ProposeTransitionCommandHandler) Handle(
	ctx context.Context,
	cmd ProposeTransitionCommand,
) (TransitionResult, error) {
	if err := cmd.Validate(); err != nil {
		return TransitionResult{}, err
	}

	at := h.clock.now()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return TransitionResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	var (
		result TransitionResult
		events []event.Event
		err    error
	)
	switch cmd.EntityType() {
	case kernel.EntityRequest:
		result, events, err = h.transitionRequest(ctx, uow, cmd, at)
	case kernel.EntityDonation:
		result, events, err = h.transitionDonation(ctx, uow, cmd, at)
	default:
		err = errs.NewValueIsInvalidError("entityType")
	}
	if err != nil {
		return TransitionResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return TransitionResult{}, err
	}

	h.publisher.Publish(ctx, events...)
	return result, nil
}

func (h *ProposeTransitionCommandHandler) transitionRequest(
	ctx context.Context,
	uow UoW,
	cmd ProposeTransitionCommand,
	at time.Time,
) (TransitionResult, []event.Event, error) {
	requestRepo := uow.RequestRepository()
	req, err := requestRepo.GetForUpdate(ctx, cmd.EntityID())
	if err != nil {
		return TransitionResult{}, nil, err
	}

	target := request.Status(cmd.Target())
	if err = payloadFits(kernel.EntityRequest, cmd.Target(), cmd.Payload()); err != nil {
		return TransitionResult{}, nil, err
	}

	actor := cmd.Actor()
	from := req.Status()
	var spawned *donation.Donation

	switch target {
	case request.VolunteerAccepted:
		snapshot, snapErr := h.assigneeSnapshot(ctx, uow, actor, req.VolunteerID() == nil && from == request.Pending)
		if snapErr != nil {
			return TransitionResult{}, nil, snapErr
		}
		err = req.Accept(actor, snapshot, at)
	case request.ReachedCommunity:
		err = req.MarkReached(actor, at)
	case request.ApprovedByVolunteer:
		p, _ := cmd.Payload().(DecisionPayload)
		err = req.Approve(actor, p.Notes, at)
	case request.RejectedByVolunteer:
		switch p := cmd.Payload().(type) {
		case DenyPayload:
			err = req.Deny(actor, p.Reason, at)
		case DecisionPayload:
			err = req.Reject(actor, p.Notes, p.Reason, at)
		}
	case request.DonorClaimed:
		p, _ := cmd.Payload().(ClaimPayload)
		if err = req.Claim(actor, p.Address, p.Contact, at); err != nil {
			break
		}
		spawned, err = donation.NewLinkedDonation(kernel.NewUUID(), req, at)
	case request.Pending:
		err = errs.NewInvalidTransitionError(kernel.EntityRequest.String(), from.String(), target.String())
	}
	if err != nil {
		return TransitionResult{}, nil, err
	}

	if err = requestRepo.Update(ctx, req); err != nil {
		return TransitionResult{}, nil, err
	}
	if spawned != nil {
		if err = uow.DonationRepository().Add(ctx, spawned); err != nil {
			return TransitionResult{}, nil, err
		}
	}
	if volunteerID := req.VolunteerID(); volunteerID != nil {
		key := assignment.Key{EntityType: kernel.EntityRequest, EntityID: req.ID(), VolunteerID: *volunteerID}
		if err = recordAssignment(ctx, uow.AssignmentRepository(), key, req.Status().String(), at); err != nil {
			return TransitionResult{}, nil, err
		}
	}

	result := TransitionResult{PreviousStatus: from.String(), NewStatus: req.Status().String()}
	var events []event.Event
	if spawned != nil {
		donationID := spawned.ID()
		result.SpawnedDonationID = &donationID
		events = append(events,
			event.NewRequestClaimed(actor.ID(), req.Snapshot(), donationID),
			event.NewDonationCreated(actor.ID(), spawned.Snapshot()),
		)
	} else if ev := event.ForRequest(from, actor.ID(), req.Snapshot()); ev != nil {
		events = append(events, ev)
	}

	return result, events, nil
}

func (h *ProposeTransitionCommandHandler) transitionDonation(
	ctx context.Context,
	uow UoW,
	cmd ProposeTransitionCommand,
	at time.Time,
) (TransitionResult, []event.Event, error) {
	donationRepo := uow.DonationRepository()
	d, err := donationRepo.GetForUpdate(ctx, cmd.EntityID())
	if err != nil {
		return TransitionResult{}, nil, err
	}

	target := donation.Status(cmd.Target())
	if err = payloadFits(kernel.EntityDonation, cmd.Target(), cmd.Payload()); err != nil {
		return TransitionResult{}, nil, err
	}

	actor := cmd.Actor()
	from := d.Status()

	switch target {
	case donation.Accepted:
		snapshot, snapErr := h.assigneeSnapshot(ctx, uow, actor, d.AssignedVolunteerID() == nil && from == donation.Pending)
		if snapErr != nil {
			return TransitionResult{}, nil, snapErr
		}
		err = d.Accept(actor, snapshot, at)
	case donation.Picked:
		err = d.Pick(actor, at)
	case donation.Delivered:
		err = d.Deliver(actor, at)
	case donation.Completed:
		p, _ := cmd.Payload().(DonationStagePayload)
		err = d.Complete(actor, p.Feedback, at)
	case donation.Pending:
		err = errs.NewInvalidTransitionError(kernel.EntityDonation.String(), from.String(), target.String())
	}
	if err != nil {
		return TransitionResult{}, nil, err
	}

	if err = donationRepo.Update(ctx, d); err != nil {
		return TransitionResult{}, nil, err
	}
	if volunteerID := d.AssignedVolunteerID(); volunteerID != nil {
		key := assignment.Key{EntityType: kernel.EntityDonation, EntityID: d.ID(), VolunteerID: *volunteerID}
		if err = recordAssignment(ctx, uow.AssignmentRepository(), key, d.Status().String(), at); err != nil {
			return TransitionResult{}, nil, err
		}
	}

	var linkedRequesterID *kernel.UUID
	if linkedID := d.LinkedRequestID(); linkedID != nil {
		linked, getErr := uow.RequestRepository().Get(ctx, *linkedID)
		if getErr != nil {
			return TransitionResult{}, nil, getErr
		}
		requesterID := linked.RequesterID()
		linkedRequesterID = &requesterID
	}

	result := TransitionResult{PreviousStatus: from.String(), NewStatus: d.Status().String()}
	events := []event.Event{
		event.NewDonationStatusChanged(from, actor.ID(), d.Snapshot(), linkedRequesterID),
	}
	return result, events, nil
}

// assigneeSnapshot loads the actor's profile for the display fields copied at
// assignment. The profile is only read when the assignment can actually
// happen; otherwise the aggregate rejects the call and the snapshot is unused.
func (h *ProposeTransitionCommandHandler) assigneeSnapshot(
	ctx context.Context,
	uow UoW,
	actor kernel.Actor,
	assignable bool,
) (kernel.ProfileSnapshot, error) {
	if !assignable || !actor.Is(kernel.RoleVolunteer) {
		return kernel.ProfileSnapshot{ID: actor.ID()}, nil
	}

	p, err := uow.ProfileRepository().Get(ctx, actor.ID())
	if err != nil {
		return kernel.ProfileSnapshot{}, err
	}
	return p.Assignee(), nil
}

// recordAssignment appends status to the volunteer's record for the entity,
// creating the record on first use.
func recordAssignment(
	ctx context.Context,
	repo ports.AssignmentRepository,
	key assignment.Key,
	status string,
	at time.Time,
) error {
	record, err := repo.Get(ctx, key)
	switch {
	case err == nil:
		record.Append(status, at)
	case errors.Is(err, errs.ErrObjectNotFound):
		record, err = assignment.NewRecord(key, status, at)
		if err != nil {
			return err
		}
	default:
		return err
	}

	return repo.Upsert(ctx, record)
}
