package commands

import (
	"aidmatch/internal/core/domain/model/donation"
	"aidmatch/internal/core/domain/model/kernel"
	"aidmatch/internal/core/domain/model/request"
)

// The constructors below build ProposeTransitionCommand for each boundary
// operation so callers never pair a target with the wrong payload.

// NewAcceptRequestCommand assigns the volunteer to a pending request.
func NewAcceptRequestCommand(requestID kernel.UUID, volunteer kernel.Actor) (ProposeTransitionCommand, error) {
	return NewProposeTransitionCommand(
		kernel.EntityRequest, requestID, request.VolunteerAccepted.String(), volunteer, AcceptPayload{},
	)
}

// NewDenyRequestCommand declines a pending request.
func NewDenyRequestCommand(requestID kernel.UUID, volunteer kernel.Actor, reason string) (ProposeTransitionCommand, error) {
	return NewProposeTransitionCommand(
		kernel.EntityRequest, requestID, request.RejectedByVolunteer.String(), volunteer, DenyPayload{Reason: reason},
	)
}

// NewMarkReachedCommand records the assigned volunteer's visit.
func NewMarkReachedCommand(requestID kernel.UUID, volunteer kernel.Actor) (ProposeTransitionCommand, error) {
	return NewProposeTransitionCommand(
		kernel.EntityRequest, requestID, request.ReachedCommunity.String(), volunteer, ReachedPayload{},
	)
}

// NewDecideCommand approves or rejects a visited request.
func NewDecideCommand(
	requestID kernel.UUID,
	volunteer kernel.Actor,
	approve bool,
	notes, reason string,
) (ProposeTransitionCommand, error) {
	target := request.RejectedByVolunteer
	if approve {
		target = request.ApprovedByVolunteer
	}
	return NewProposeTransitionCommand(
		kernel.EntityRequest, requestID, target.String(), volunteer,
		DecisionPayload{Approve: approve, Notes: notes, Reason: reason},
	)
}

// NewDonorClaimCommand claims an approved request and spawns its donation.
func NewDonorClaimCommand(
	requestID kernel.UUID,
	donor kernel.Actor,
	address, contact string,
) (ProposeTransitionCommand, error) {
	return NewProposeTransitionCommand(
		kernel.EntityRequest, requestID, request.DonorClaimed.String(), donor,
		ClaimPayload{Address: address, Contact: contact},
	)
}

// NewUpdateDonationStatusCommand moves a donation one stage forward. Accepting
// takes no feedback; every later stage goes through DonationStagePayload.
func NewUpdateDonationStatusCommand(
	donationID kernel.UUID,
	actor kernel.Actor,
	target string,
	feedback string,
) (ProposeTransitionCommand, error) {
	var payload Payload = DonationStagePayload{Feedback: feedback}
	if donation.Status(target) == donation.Accepted && feedback == "" {
		payload = AcceptPayload{}
	}
	return NewProposeTransitionCommand(kernel.EntityDonation, donationID, target, actor, payload)
}
