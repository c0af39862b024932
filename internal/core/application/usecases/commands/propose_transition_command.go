package commands

import (
	"errors"

	"aidmatch/internal/core/domain/model/donation"
	"aidmatch/internal/core/domain/model/kernel"
	"aidmatch/internal/core/domain/model/request"
	"aidmatch/internal/pkg/errs"
	"aidmatch/internal/pkg/guard"
)

var (
	ErrProposeTransitionCommandIsNotConstructed = errors.New(
		"ProposeTransitionCommand must be created via NewProposeTransitionCommand constructor",
	)
)

// ProposeTransitionCommand asks the transition engine to move one request or
// donation to a target status on behalf of an actor.
//
// Example:
//
//	cmd, err := NewProposeTransitionCommand(
//	    kernel.EntityRequest, requestID, request.VolunteerAccepted.String(), actor, AcceptPayload{},
//	)
//	if err != nil {
//	    return err
//	}
//	result, err := handler.Handle(ctx, cmd)
type ProposeTransitionCommand struct { //nolint:recvcheck //using for validation
	entityType kernel.EntityType
	entityID   kernel.UUID
	target     string
	actor      kernel.Actor
	payload    Payload

	guard guard.ConstructorGuard
}

// NewProposeTransitionCommand validates the entity type, identifier, target
// token and actor. Whether the payload fits the target is checked by the
// handler once the entity is loaded.
func NewProposeTransitionCommand(
	entityType kernel.EntityType,
	entityID kernel.UUID,
	target string,
	actor kernel.Actor,
	payload Payload,
) (ProposeTransitionCommand, error) {
	cmd := ProposeTransitionCommand{
		payload: payload,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setEntity(entityType, target),
		cmd.setEntityID(entityID),
		cmd.setActor(actor),
	); err != nil {
		return ProposeTransitionCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ProposeTransitionCommand) Validate() error {
	return c.guard.Validate(ErrProposeTransitionCommandIsNotConstructed)
}

func (c ProposeTransitionCommand) EntityType() kernel.EntityType {
	return c.entityType
}

func (c ProposeTransitionCommand) EntityID() kernel.UUID {
	return c.entityID
}

// Target returns the requested status token.
func (c ProposeTransitionCommand) Target() string {
	return c.target
}

func (c ProposeTransitionCommand) Actor() kernel.Actor {
	return c.actor
}

func (c ProposeTransitionCommand) Payload() Payload {
	return c.payload
}

func (c *ProposeTransitionCommand) setEntity(entityType kernel.EntityType, target string) error {
	switch entityType {
	case kernel.EntityRequest:
		if _, err := request.ParseStatus(target); err != nil {
			return err
		}
	case kernel.EntityDonation:
		if _, err := donation.ParseStatus(target); err != nil {
			return err
		}
	default:
		return errs.NewValueIsInvalidError("entityType")
	}

	c.entityType = entityType
	c.target = target
	return nil
}

func (c *ProposeTransitionCommand) setEntityID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.entityID = id
	return nil
}

func (c *ProposeTransitionCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}

// TransitionResult reports the status change a successful command made.
// SpawnedDonationID is set when a claim created a linked donation.
type TransitionResult struct {
	PreviousStatus    string
	NewStatus         string
	SpawnedDonationID *kernel.UUID
}
