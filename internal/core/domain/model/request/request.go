package request

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"aidmatch/internal/core/domain/model/kernel"
	"aidmatch/internal/pkg/errs"
)

var (
	// ErrRequestIsNotConstructed is returned when a Request instance was not
	// created through NewRequest or RestoreRequest.
	ErrRequestIsNotConstructed = errors.New("request must be created via NewRequest constructor")
)

// Details holds the fields a community member supplies when raising a request.
// They do not change after creation.
type Details struct {
	Initiative         kernel.Initiative
	City               kernel.City
	Address            string
	BeneficiaryName    string
	BeneficiaryContact string
	Description        string
	Urgency            Urgency
}

// Request is the CommunityRequest aggregate root. Every status change goes
// through one of its transition methods, each of which checks, in order:
//
//  1. the actor's role
//  2. that the single-assignment slot is not held by someone else
//  3. that the move is legal for the current status
//  4. that the actor owns the request for this step
//
// A failing check leaves the request untouched.
//
// Request follows these invariants:
//   - volunteerID is set exactly once, on acceptance, and never reassigned
//   - donorID is set exactly once, on the move into DonorClaimed
//   - Terminal requests never change again
type Request struct {
	id          kernel.UUID
	requesterID kernel.UUID
	details     Details

	status Status

	// volunteer is the snapshot taken at acceptance (nil while unassigned)
	volunteer *kernel.ProfileSnapshot

	// donor fields are only set by Claim
	donorID      *kernel.UUID
	donorAddress string
	donorContact string

	decisionNotes string
	denialReason  string

	createdAt  time.Time
	updatedAt  time.Time
	acceptedAt *time.Time
	reachedAt  *time.Time
	decisionAt *time.Time
	claimedAt  *time.Time

	isConstructed bool
}

// NewRequest creates a pending request raised by a community member.
//
// Parameters:
//   - id: Unique identifier for the request
//   - requester: The calling actor; must hold the community role
//   - details: Request details; address and beneficiary name are required
//   - at: Creation instant
//
// Returns:
//   - *Request in Pending status with no volunteer or donor
//   - UnauthorizedError if the requester is not a community member
//   - Validation errors joined together for every invalid field
func NewRequest(id kernel.UUID, requester kernel.Actor, details Details, at time.Time) (*Request, error) {
	if err := requester.Validate(); err != nil {
		return nil, err
	}
	if err := requester.Require("create request", kernel.RoleCommunity); err != nil {
		return nil, err
	}

	r := &Request{
		status:        Pending,
		requesterID:   requester.ID(),
		createdAt:     at,
		updatedAt:     at,
		isConstructed: true,
	}

	if err := errors.Join(
		r.setID(id),
		r.setDetails(details),
	); err != nil {
		return nil, err
	}

	return r, nil
}

// State is the full persisted shape of a request. Repositories use it to
// restore an aggregate and the dispatcher uses it as the rendering snapshot.
type State struct {
	ID            kernel.UUID
	RequesterID   kernel.UUID
	Details       Details
	Status        Status
	Volunteer     *kernel.ProfileSnapshot
	DonorID       *kernel.UUID
	DonorAddress  string
	DonorContact  string
	DecisionNotes string
	DenialReason  string
	CreatedAt     time.Time
	UpdatedAt     time.Time
	AcceptedAt    *time.Time
	ReachedAt     *time.Time
	DecisionAt    *time.Time
	ClaimedAt     *time.Time
}

// RestoreRequest rebuilds a request from persisted state, checking that the
// status agrees with the assigned volunteer and donor.
func RestoreRequest(s State) (*Request, error) {
	r := &Request{
		status:        s.Status,
		volunteer:     s.Volunteer,
		donorID:       s.DonorID,
		donorAddress:  s.DonorAddress,
		donorContact:  s.DonorContact,
		decisionNotes: s.DecisionNotes,
		denialReason:  s.DenialReason,
		createdAt:     s.CreatedAt,
		updatedAt:     s.UpdatedAt,
		acceptedAt:    s.AcceptedAt,
		reachedAt:     s.ReachedAt,
		decisionAt:    s.DecisionAt,
		claimedAt:     s.ClaimedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		r.setID(s.ID),
		s.RequesterID.Validate(),
		r.setDetails(s.Details),
		s.Status.Validate(),
	); err != nil {
		return nil, err
	}
	if err := errors.Join(
		s.Status.ValidateCanHaveVolunteer(s.Volunteer != nil),
		s.Status.ValidateCanHaveDonor(s.DonorID != nil),
	); err != nil {
		return nil, err
	}
	r.requesterID = s.RequesterID

	return r, nil
}

// Validate ensures the Request was created via NewRequest or RestoreRequest.
func (r *Request) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRequestIsNotConstructed
	}
	return nil
}

// Snapshot returns a copy of the current state.
func (r *Request) Snapshot() State {
	return State{
		ID:            r.id,
		RequesterID:   r.requesterID,
		Details:       r.details,
		Status:        r.status,
		Volunteer:     clonePtr(r.volunteer),
		DonorID:       clonePtr(r.donorID),
		DonorAddress:  r.donorAddress,
		DonorContact:  r.donorContact,
		DecisionNotes: r.decisionNotes,
		DenialReason:  r.denialReason,
		CreatedAt:     r.createdAt,
		UpdatedAt:     r.updatedAt,
		AcceptedAt:    clonePtr(r.acceptedAt),
		ReachedAt:     clonePtr(r.reachedAt),
		DecisionAt:    clonePtr(r.decisionAt),
		ClaimedAt:     clonePtr(r.claimedAt),
	}
}

func (r *Request) ID() kernel.UUID {
	return r.id
}

func (r *Request) RequesterID() kernel.UUID {
	return r.requesterID
}

func (r *Request) Details() Details {
	return r.details
}

func (r *Request) Status() Status {
	return r.status
}

// VolunteerID returns the assigned volunteer, or nil while unassigned.
func (r *Request) VolunteerID() *kernel.UUID {
	if r.volunteer == nil {
		return nil
	}
	id := r.volunteer.ID
	return &id
}

// Volunteer returns the volunteer snapshot taken at acceptance.
func (r *Request) Volunteer() *kernel.ProfileSnapshot {
	return clonePtr(r.volunteer)
}

// DonorID returns the claiming donor, or nil until claimed.
func (r *Request) DonorID() *kernel.UUID {
	return clonePtr(r.donorID)
}

func (r *Request) DonorAddress() string {
	return r.donorAddress
}

func (r *Request) DonorContact() string {
	return r.donorContact
}

func (r *Request) DecisionNotes() string {
	return r.decisionNotes
}

func (r *Request) DenialReason() string {
	return r.denialReason
}

func (r *Request) CreatedAt() time.Time {
	return r.createdAt
}

func (r *Request) UpdatedAt() time.Time {
	return r.updatedAt
}

// Accept assigns the calling volunteer and moves the request to
// VolunteerAccepted.
//
// This method enforces the following business rules:
//   - The actor must be a volunteer
//   - A request already held by another volunteer fails with ConflictError
//   - Only a pending request can be accepted
//
// Parameters:
//   - actor: The accepting volunteer
//   - snapshot: The volunteer's name and contact at this instant
//   - at: Transition instant, recorded as acceptedAt
//
// Example:
//
//	err := req.Accept(volunteer, kernel.ProfileSnapshot{ID: volunteer.ID(), Name: "Ravi"}, now)
//	if errors.Is(err, errs.ErrConflict) {
//	    // someone else got there first
//	}
func (r *Request) Accept(actor kernel.Actor, snapshot kernel.ProfileSnapshot, at time.Time) error {
	if err := actor.Require("accept request", kernel.RoleVolunteer); err != nil {
		return err
	}
	if r.volunteer != nil && !r.volunteer.ID.IsEqual(actor.ID()) {
		return errs.NewConflictError("volunteer", r.id, r.volunteer.ID.String())
	}

	next, err := r.status.TransitionTo(VolunteerAccepted)
	if err != nil {
		return err
	}
	if !snapshot.ID.IsEqual(actor.ID()) {
		return errs.NewValueIsInvalidErrorWithCause("volunteer", fmt.Errorf("snapshot %s does not belong to %s", snapshot.ID, actor.ID()))
	}

	r.status = next
	r.volunteer = &snapshot
	r.acceptedAt = &at
	r.updatedAt = at
	return nil
}

// Deny rejects a request without taking it on. While the request is still
// pending any volunteer may deny it; otherwise only the assigned volunteer
// may.
func (r *Request) Deny(actor kernel.Actor, reason string, at time.Time) error {
	if err := actor.Require("deny request", kernel.RoleVolunteer); err != nil {
		return err
	}

	next, err := r.status.TransitionTo(RejectedByVolunteer)
	if err != nil {
		return err
	}
	if r.status != Pending {
		if err := r.requireAssigned(actor, "deny request"); err != nil {
			return err
		}
	}

	r.status = next
	r.denialReason = strings.TrimSpace(reason)
	r.decisionAt = &at
	r.updatedAt = at
	return nil
}

// MarkReached records that the assigned volunteer visited the community.
func (r *Request) MarkReached(actor kernel.Actor, at time.Time) error {
	if err := actor.Require("mark request reached", kernel.RoleVolunteer); err != nil {
		return err
	}

	next, err := r.status.TransitionTo(ReachedCommunity)
	if err != nil {
		return err
	}
	if err := r.requireAssigned(actor, "mark request reached"); err != nil {
		return err
	}

	r.status = next
	r.reachedAt = &at
	r.updatedAt = at
	return nil
}

// Approve records a positive decision by the assigned volunteer, opening the
// request to donors.
func (r *Request) Approve(actor kernel.Actor, notes string, at time.Time) error {
	return r.decide(actor, ApprovedByVolunteer, notes, "", at)
}

// Reject records a negative decision by the assigned volunteer after the
// visit. The request becomes terminal.
func (r *Request) Reject(actor kernel.Actor, notes, reason string, at time.Time) error {
	return r.decide(actor, RejectedByVolunteer, notes, reason, at)
}

// Claim records the donor who will fulfil an approved request.
//
// This method enforces the following business rules:
//   - The actor must be a donor
//   - A request already claimed by another donor fails with ConflictError
//   - Only an approved request can be claimed
//   - The donor address is required; it becomes the pickup address
//
// The caller is responsible for creating the linked donation in the same
// transaction (see donation.NewLinkedDonation).
func (r *Request) Claim(actor kernel.Actor, address, contact string, at time.Time) error {
	if err := actor.Require("claim request", kernel.RoleDonor); err != nil {
		return err
	}
	if r.donorID != nil && !r.donorID.IsEqual(actor.ID()) {
		return errs.NewConflictError("donor", r.id, r.donorID.String())
	}

	next, err := r.status.TransitionTo(DonorClaimed)
	if err != nil {
		return err
	}
	address = strings.TrimSpace(address)
	if address == "" {
		return errs.NewValueIsRequiredError("donorAddress")
	}

	donorID := actor.ID()
	r.status = next
	r.donorID = &donorID
	r.donorAddress = address
	r.donorContact = strings.TrimSpace(contact)
	r.claimedAt = &at
	r.updatedAt = at
	return nil
}

func (r *Request) decide(actor kernel.Actor, target Status, notes, reason string, at time.Time) error {
	action := "decide on request"
	if err := actor.Require(action, kernel.RoleVolunteer); err != nil {
		return err
	}

	// a decision is only legal after the visit
	if r.status != ReachedCommunity {
		return errs.NewInvalidTransitionError(kernel.EntityRequest.String(), r.status.String(), target.String())
	}
	next, err := r.status.TransitionTo(target)
	if err != nil {
		return err
	}
	if err := r.requireAssigned(actor, action); err != nil {
		return err
	}

	r.status = next
	r.decisionNotes = strings.TrimSpace(notes)
	if reason != "" {
		r.denialReason = strings.TrimSpace(reason)
	}
	r.decisionAt = &at
	r.updatedAt = at
	return nil
}

func (r *Request) requireAssigned(actor kernel.Actor, action string) error {
	if r.volunteer == nil || !r.volunteer.ID.IsEqual(actor.ID()) {
		return errs.NewUnauthorizedError(actor.ID().String(), action, "only the assigned volunteer may do this")
	}
	return nil
}

// setID validates and sets the request identifier.
func (r *Request) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

// setDetails validates and sets the creation details. An empty urgency
// defaults to medium.
func (r *Request) setDetails(d Details) error {
	if d.Urgency == "" {
		d.Urgency = UrgencyMedium
	}
	d.Address = strings.TrimSpace(d.Address)
	d.BeneficiaryName = strings.TrimSpace(d.BeneficiaryName)
	d.BeneficiaryContact = strings.TrimSpace(d.BeneficiaryContact)
	d.Description = strings.TrimSpace(d.Description)

	var required []error
	if d.Address == "" {
		required = append(required, errs.NewValueIsRequiredError("address"))
	}
	if d.BeneficiaryName == "" {
		required = append(required, errs.NewValueIsRequiredError("beneficiaryName"))
	}
	_, initiativeErr := kernel.ParseInitiative(d.Initiative.String())
	_, urgencyErr := ParseUrgency(d.Urgency.String())

	if err := errors.Join(
		d.City.Validate(),
		initiativeErr,
		urgencyErr,
		errors.Join(required...),
	); err != nil {
		return err
	}

	r.details = d
	return nil
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
