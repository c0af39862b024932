package commands

import (
	"fmt"

	"aidmatch/internal/core/domain/model/donation"
	"aidmatch/internal/core/domain/model/kernel"
	"aidmatch/internal/core/domain/model/request"
	"aidmatch/internal/pkg/errs"
)

// Payload carries the fields specific to one kind of transition. The set of
// variants is closed; each target status accepts exactly the variants listed
// in payloadFits.
type Payload interface {
	kind() string
}

// AcceptPayload accepts a pending request or donation. It has no fields.
type AcceptPayload struct{}

// DenyPayload declines a pending request without taking it on.
type DenyPayload struct {
	Reason string
}

// ReachedPayload records the volunteer's visit. It has no fields.
type ReachedPayload struct{}

// DecisionPayload records the assigned volunteer's verdict after the visit.
type DecisionPayload struct {
	Approve bool
	Notes   string
	Reason  string
}

// ClaimPayload carries the donor's pickup address and contact.
type ClaimPayload struct {
	Address string
	Contact string
}

// DonationStagePayload advances a donation. Feedback is only accepted when
// completing.
type DonationStagePayload struct {
	Feedback string
}

func (AcceptPayload) kind() string { return "accept" }
func (DenyPayload) kind() string { return "deny" }
func (ReachedPayload) kind() string { return "reached" }
func (DecisionPayload) kind() string { return "decision" }
func (ClaimPayload) kind() string { return "claim" }
func (DonationStagePayload) kind() string { return "donation_stage" }

func payloadKind(p Payload) string {
	if p == nil {
		return "none"
	}
	return p.kind()
}

func payloadMismatch(target string, p Payload) error {
	return errs.NewValueIsInvalidErrorWithCause(
		"payload",
		fmt.Errorf("%s payload does not apply to target %s", payloadKind(p), target),
	)
}

// payloadFits checks that the payload variant belongs to the target status.
// Targets nothing can move into (the initial statuses) accept any payload and
// are rejected later as invalid transitions.
func payloadFits(entityType kernel.EntityType, target string, p Payload) error {
	switch entityType {
	case kernel.EntityRequest:
		return requestPayloadFits(request.Status(target), p)
	case kernel.EntityDonation:
		return donationPayloadFits(donation.Status(target), p)
	default:
		return errs.NewValueIsInvalidError("entityType")
	}
}

func requestPayloadFits(target request.Status, p Payload) error {
	ok := false
	switch target {
	case request.Pending:
		return nil
	case request.VolunteerAccepted:
		_, ok = p.(AcceptPayload)
	case request.ReachedCommunity:
		_, ok = p.(ReachedPayload)
	case request.ApprovedByVolunteer:
		d, isDecision := p.(DecisionPayload)
		ok = isDecision && d.Approve
	case request.RejectedByVolunteer:
		switch v := p.(type) {
		case DenyPayload:
			ok = true
		case DecisionPayload:
			ok = !v.Approve
		}
	case request.DonorClaimed:
		_, ok = p.(ClaimPayload)
	}
	if !ok {
		return payloadMismatch(target.String(), p)
	}
	return nil
}

func donationPayloadFits(target donation.Status, p Payload) error {
	ok := false
	switch target {
	case donation.Pending:
		return nil
	case donation.Accepted:
		_, ok = p.(AcceptPayload)
	case donation.Picked, donation.Delivered:
		s, isStage := p.(DonationStagePayload)
		ok = isStage && s.Feedback == ""
	case donation.Completed:
		_, ok = p.(DonationStagePayload)
	}
	if !ok {
		return payloadMismatch(target.String(), p)
	}
	return nil
}
