package commands

import (
	"errors"

	"aidmatch/internal/core/domain/model/donation"
	"aidmatch/internal/core/domain/model/kernel"
	"aidmatch/internal/pkg/guard"
	"aidmatch/internal/pkg/validation"
)

var (
	ErrCreateDonationCommandIsNotConstructed = errors.New(
		"CreateDonationCommand must be created via NewCreateDonationCommand constructor",
	)
)

// CreateDonationInput is the raw form a donor submits.
type CreateDonationInput struct {
	Initiative   string `json:"initiative" validate:"required,oneof=food education shelter healthcare clothing other"`
	City         string `json:"city" validate:"required,max=120"`
	Description  string `json:"description" validate:"max=4000"`
	DonorAddress string `json:"donorAddress" validate:"required,max=500"`
	DonorContact string `json:"donorContact" validate:"max=200"`
}

// CreateDonationCommand represents a donor pledging a donation directly.
type CreateDonationCommand struct { //nolint:recvcheck //using for validation
	donationID kernel.UUID
	donor      kernel.Actor
	details    donation.Details

	guard guard.ConstructorGuard
}

// NewCreateDonationCommand validates the input and parses it into domain types.
func NewCreateDonationCommand(
	donationID kernel.UUID,
	donor kernel.Actor,
	input CreateDonationInput,
) (CreateDonationCommand, error) {
	cmd := CreateDonationCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := validation.Struct(input); err != nil {
		return CreateDonationCommand{}, err
	}

	if err := errors.Join(
		cmd.setDonationID(donationID),
		cmd.setDonor(donor),
		cmd.setDetails(input),
	); err != nil {
		return CreateDonationCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateDonationCommand) Validate() error {
	return c.guard.Validate(ErrCreateDonationCommandIsNotConstructed)
}

func (c CreateDonationCommand) DonationID() kernel.UUID {
	return c.donationID
}

func (c CreateDonationCommand) Donor() kernel.Actor {
	return c.donor
}

func (c CreateDonationCommand) Details() donation.Details {
	return c.details
}

func (c *CreateDonationCommand) setDonationID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.donationID = id
	return nil
}

func (c *CreateDonationCommand) setDonor(donor kernel.Actor) error {
	if err := donor.Validate(); err != nil {
		return err
	}
	c.donor = donor
	return nil
}

func (c *CreateDonationCommand) setDetails(input CreateDonationInput) error {
	initiative, initiativeErr := kernel.ParseInitiative(input.Initiative)
	city, cityErr := kernel.NewCity(input.City)
	if err := errors.Join(initiativeErr, cityErr); err != nil {
		return err
	}

	c.details = donation.Details{
		Initiative:   initiative,
		City:         city,
		Description:  input.Description,
		DonorAddress: input.DonorAddress,
		DonorContact: input.DonorContact,
	}
	return nil
}
