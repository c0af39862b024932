package donation

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"aidmatch/internal/core/domain/model/kernel"
	"aidmatch/internal/core/domain/model/request"
	"aidmatch/internal/pkg/errs"
)

var (
	// ErrDonationIsNotConstructed is returned when a Donation instance was not
	// created through one of the constructors.
	ErrDonationIsNotConstructed = errors.New("donation must be created via NewDonation constructor")
)

// Details holds what the donor pledges and where to collect it.
type Details struct {
	Initiative   kernel.Initiative
	City         kernel.City
	Description  string
	DonorAddress string
	DonorContact string
}

// Donation is the aggregate root for a donor's pledge.
//
// Donation follows these invariants:
//   - assignedVolunteer is set exactly once, on the move into Accepted
//   - linkedRequestID, when present, points at a request that was claimed in
//     the same transaction that created this donation
//   - Completed donations never change again
type Donation struct {
	id      kernel.UUID
	donorID kernel.UUID
	details Details
	status  Status

	// volunteer is the snapshot taken at acceptance (nil while pending)
	volunteer *kernel.ProfileSnapshot

	linkedRequestID *kernel.UUID
	feedback        string

	createdAt   time.Time
	updatedAt   time.Time
	acceptedAt  *time.Time
	pickedAt    *time.Time
	deliveredAt *time.Time
	completedAt *time.Time

	isConstructed bool
}

// NewDonation creates a pending donation pledged directly by a donor.
//
// Returns:
//   - *Donation in Pending status with no volunteer
//   - UnauthorizedError if the actor is not a donor
//   - Validation errors joined together for every invalid field
func NewDonation(id kernel.UUID, donor kernel.Actor, details Details, at time.Time) (*Donation, error) {
	if err := donor.Validate(); err != nil {
		return nil, err
	}
	if err := donor.Require("create donation", kernel.RoleDonor); err != nil {
		return nil, err
	}

	d := &Donation{
		donorID:       donor.ID(),
		status:        Pending,
		createdAt:     at,
		updatedAt:     at,
		isConstructed: true,
	}

	if err := errors.Join(
		d.setID(id),
		d.setDetails(details),
	); err != nil {
		return nil, err
	}

	return d, nil
}

// NewLinkedDonation spawns the pending donation for a request that has just
// been claimed. The donor, pickup address and contact come from the claim;
// initiative, city and description come from the request.
func NewLinkedDonation(id kernel.UUID, claimed *request.Request, at time.Time) (*Donation, error) {
	if err := claimed.Validate(); err != nil {
		return nil, err
	}
	if claimed.Status() != request.DonorClaimed || claimed.DonorID() == nil {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"linkedRequest",
			fmt.Errorf("request %s is %s, not %s", claimed.ID(), claimed.Status(), request.DonorClaimed),
		)
	}

	reqDetails := claimed.Details()
	requestID := claimed.ID()
	d := &Donation{
		donorID:         *claimed.DonorID(),
		status:          Pending,
		linkedRequestID: &requestID,
		createdAt:       at,
		updatedAt:       at,
		isConstructed:   true,
	}

	if err := errors.Join(
		d.setID(id),
		d.setDetails(Details{
			Initiative:   reqDetails.Initiative,
			City:         reqDetails.City,
			Description:  reqDetails.Description,
			DonorAddress: claimed.DonorAddress(),
			DonorContact: claimed.DonorContact(),
		}),
	); err != nil {
		return nil, err
	}

	return d, nil
}

// State is the full persisted shape of a donation.
type State struct {
	ID              kernel.UUID
	DonorID         kernel.UUID
	Details         Details
	Status          Status
	Volunteer       *kernel.ProfileSnapshot
	LinkedRequestID *kernel.UUID
	Feedback        string
	CreatedAt       time.Time
	UpdatedAt       time.Time
	AcceptedAt      *time.Time
	PickedAt        *time.Time
	DeliveredAt     *time.Time
	CompletedAt     *time.Time
}

// RestoreDonation rebuilds a donation from persisted state.
func RestoreDonation(s State) (*Donation, error) {
	d := &Donation{
		donorID:         s.DonorID,
		status:          s.Status,
		volunteer:       s.Volunteer,
		linkedRequestID: s.LinkedRequestID,
		feedback:        s.Feedback,
		createdAt:       s.CreatedAt,
		updatedAt:       s.UpdatedAt,
		acceptedAt:      s.AcceptedAt,
		pickedAt:        s.PickedAt,
		deliveredAt:     s.DeliveredAt,
		completedAt:     s.CompletedAt,
		isConstructed:   true,
	}

	if err := errors.Join(
		d.setID(s.ID),
		s.DonorID.Validate(),
		d.setDetails(s.Details),
		s.Status.Validate(),
	); err != nil {
		return nil, err
	}
	if err := s.Status.ValidateCanHaveVolunteer(s.Volunteer != nil); err != nil {
		return nil, err
	}

	return d, nil
}

func (d *Donation) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDonationIsNotConstructed
	}
	return nil
}

// Snapshot returns a copy of the current state.
func (d *Donation) Snapshot() State {
	return State{
		ID:              d.id,
		DonorID:         d.donorID,
		Details:         d.details,
		Status:          d.status,
		Volunteer:       clonePtr(d.volunteer),
		LinkedRequestID: clonePtr(d.linkedRequestID),
		Feedback:        d.feedback,
		CreatedAt:       d.createdAt,
		UpdatedAt:       d.updatedAt,
		AcceptedAt:      clonePtr(d.acceptedAt),
		PickedAt:        clonePtr(d.pickedAt),
		DeliveredAt:     clonePtr(d.deliveredAt),
		CompletedAt:     clonePtr(d.completedAt),
	}
}

func (d *Donation) ID() kernel.UUID {
	return d.id
}

func (d *Donation) DonorID() kernel.UUID {
	return d.donorID
}

func (d *Donation) Details() Details {
	return d.details
}

func (d *Donation) Status() Status {
	return d.status
}

// AssignedVolunteerID returns the accepting volunteer, or nil while pending.
func (d *Donation) AssignedVolunteerID() *kernel.UUID {
	if d.volunteer == nil {
		return nil
	}
	id := d.volunteer.ID
	return &id
}

func (d *Donation) Volunteer() *kernel.ProfileSnapshot {
	return clonePtr(d.volunteer)
}

// LinkedRequestID returns the claimed request this donation was spawned
// from, or nil for a direct donation.
func (d *Donation) LinkedRequestID() *kernel.UUID {
	return clonePtr(d.linkedRequestID)
}

func (d *Donation) Feedback() string {
	return d.feedback
}

func (d *Donation) CreatedAt() time.Time {
	return d.createdAt
}

func (d *Donation) UpdatedAt() time.Time {
	return d.updatedAt
}

// Accept assigns the calling volunteer to the donation.
//
// This method enforces the following business rules:
//   - The actor must be a volunteer
//   - A donation already held by another volunteer fails with ConflictError
//   - Only a pending donation can be accepted
func (d *Donation) Accept(actor kernel.Actor, snapshot kernel.ProfileSnapshot, at time.Time) error {
	if err := actor.Require("accept donation", kernel.RoleVolunteer); err != nil {
		return err
	}
	if d.volunteer != nil && !d.volunteer.ID.IsEqual(actor.ID()) {
		return errs.NewConflictError("assignedVolunteer", d.id, d.volunteer.ID.String())
	}

	next, err := d.status.TransitionTo(Accepted)
	if err != nil {
		return err
	}
	if !snapshot.ID.IsEqual(actor.ID()) {
		return errs.NewValueIsInvalidErrorWithCause("volunteer", fmt.Errorf("snapshot %s does not belong to %s", snapshot.ID, actor.ID()))
	}

	d.status = next
	d.volunteer = &snapshot
	d.acceptedAt = &at
	d.updatedAt = at
	return nil
}

// Pick records that the goods were collected from the donor.
func (d *Donation) Pick(actor kernel.Actor, at time.Time) error {
	if err := d.advance(actor, Picked, "mark donation picked"); err != nil {
		return err
	}
	d.pickedAt = &at
	d.updatedAt = at
	return nil
}

// Deliver records that the goods reached the beneficiary.
func (d *Donation) Deliver(actor kernel.Actor, at time.Time) error {
	if err := d.advance(actor, Delivered, "mark donation delivered"); err != nil {
		return err
	}
	d.deliveredAt = &at
	d.updatedAt = at
	return nil
}

// Complete closes the donation, optionally with feedback for the donor.
func (d *Donation) Complete(actor kernel.Actor, feedback string, at time.Time) error {
	if err := d.advance(actor, Completed, "complete donation"); err != nil {
		return err
	}
	d.feedback = strings.TrimSpace(feedback)
	d.completedAt = &at
	d.updatedAt = at
	return nil
}

// advance moves the donation to a post-acceptance stage. The assigned
// volunteer or an admin may do so.
func (d *Donation) advance(actor kernel.Actor, target Status, action string) error {
	if err := actor.Require(action, kernel.RoleVolunteer, kernel.RoleAdmin); err != nil {
		return err
	}

	next, err := d.status.TransitionTo(target)
	if err != nil {
		return err
	}
	if !actor.Is(kernel.RoleAdmin) && (d.volunteer == nil || !d.volunteer.ID.IsEqual(actor.ID())) {
		return errs.NewUnauthorizedError(actor.ID().String(), action, "only the assigned volunteer or an admin may do this")
	}

	d.status = next
	return nil
}

func (d *Donation) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

// setDetails validates and sets pledge details. The pickup address is
// required.
func (d *Donation) setDetails(details Details) error {
	details.Description = strings.TrimSpace(details.Description)
	details.DonorAddress = strings.TrimSpace(details.DonorAddress)
	details.DonorContact = strings.TrimSpace(details.DonorContact)

	var addressErr error
	if details.DonorAddress == "" {
		addressErr = errs.NewValueIsRequiredError("donorAddress")
	}
	_, initiativeErr := kernel.ParseInitiative(details.Initiative.String())

	if err := errors.Join(
		details.City.Validate(),
		initiativeErr,
		addressErr,
	); err != nil {
		return err
	}

	d.details = details
	return nil
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
