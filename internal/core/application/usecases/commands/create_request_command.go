package commands

import (
	"errors"

	"aidmatch/internal/core/domain/model/kernel"
	"aidmatch/internal/core/domain/model/request"
	"aidmatch/internal/pkg/guard"
	"aidmatch/internal/pkg/validation"
)

var (
	ErrCreateRequestCommandIsNotConstructed = errors.New(
		"CreateRequestCommand must be created via NewCreateRequestCommand constructor",
	)
)

// CreateRequestInput is the raw form a community member submits.
type CreateRequestInput struct {
	Initiative         string `json:"initiative" validate:"required,oneof=food education shelter healthcare clothing other"`
	City               string `json:"city" validate:"required,max=120"`
	Address            string `json:"address" validate:"required,max=500"`
	BeneficiaryName    string `json:"beneficiaryName" validate:"required,max=200"`
	BeneficiaryContact string `json:"beneficiaryContact" validate:"max=200"`
	Description        string `json:"description" validate:"max=4000"`
	Urgency            string `json:"urgency" validate:"omitempty,oneof=low medium high"`
}

// CreateRequestCommand represents a community member raising a new request.
//
// Example:
//
//	cmd, err := NewCreateRequestCommand(kernel.NewUUID(), requester, CreateRequestInput{
//	    Initiative: "food", City: "Guntur", Address: "4 Station Road",
//	    BeneficiaryName: "Lakshmi", Urgency: "high",
//	})
//	if err != nil {
//	    return fmt.Errorf("invalid request data: %w", err)
//	}
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create request: %w", err)
//	}
type CreateRequestCommand struct { //nolint:recvcheck //using for validation
	requestID kernel.UUID
	requester kernel.Actor
	details   request.Details

	guard guard.ConstructorGuard
}

// NewCreateRequestCommand validates the input tags first, then parses each
// field into its domain type.
func NewCreateRequestCommand(
	requestID kernel.UUID,
	requester kernel.Actor,
	input CreateRequestInput,
) (CreateRequestCommand, error) {
	cmd := CreateRequestCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := validation.Struct(input); err != nil {
		return CreateRequestCommand{}, err
	}

	if err := errors.Join(
		cmd.setRequestID(requestID),
		cmd.setRequester(requester),
		cmd.setDetails(input),
	); err != nil {
		return CreateRequestCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateRequestCommand) Validate() error {
	return c.guard.Validate(ErrCreateRequestCommandIsNotConstructed)
}

func (c CreateRequestCommand) RequestID() kernel.UUID {
	return c.requestID
}

func (c CreateRequestCommand) Requester() kernel.Actor {
	return c.requester
}

func (c CreateRequestCommand) Details() request.Details {
	return c.details
}

func (c *CreateRequestCommand) setRequestID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.requestID = id
	return nil
}

func (c *CreateRequestCommand) setRequester(requester kernel.Actor) error {
	if err := requester.Validate(); err != nil {
		return err
	}
	c.requester = requester
	return nil
}

func (c *CreateRequestCommand) setDetails(input CreateRequestInput) error {
	initiative, initiativeErr := kernel.ParseInitiative(input.Initiative)
	city, cityErr := kernel.NewCity(input.City)
	urgency, urgencyErr := request.ParseUrgency(input.Urgency)
	if err := errors.Join(initiativeErr, cityErr, urgencyErr); err != nil {
		return err
	}

	c.details = request.Details{
		Initiative:         initiative,
		City:               city,
		Address:            input.Address,
		BeneficiaryName:    input.BeneficiaryName,
		BeneficiaryContact: input.BeneficiaryContact,
		Description:        input.Description,
		Urgency:            urgency,
	}
	return nil
}
