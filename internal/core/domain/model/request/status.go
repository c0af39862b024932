package request

import (
	"fmt"
	"slices"

	"aidmatch/internal/core/domain/model/kernel"
	"aidmatch/internal/pkg/errs"
)

// Status is the lifecycle state of a community request. The string values
// are a stable wire contract and are case-sensitive.
//
// State transitions:
//
//	pending ──> VOLUNTEER_ACCEPTED ──> REACHED_COMMUNITY ──> APPROVED_BY_VOLUNTEER ──> DONOR_CLAIMED
//	   │                                      │
//	   └──────────> REJECTED_BY_VOLUNTEER <───┘
type Status string

const (
	Pending             Status = "pending"
	VolunteerAccepted   Status = "VOLUNTEER_ACCEPTED"
	ReachedCommunity    Status = "REACHED_COMMUNITY"
	ApprovedByVolunteer Status = "APPROVED_BY_VOLUNTEER"
	DonorClaimed        Status = "DONOR_CLAIMED"
	RejectedByVolunteer Status = "REJECTED_BY_VOLUNTEER"
)

// transitions is the complete table of legal moves. A pair that is not
// listed here is illegal.
var transitions = map[Status][]Status{
	Pending:             {VolunteerAccepted, RejectedByVolunteer},
	VolunteerAccepted:   {ReachedCommunity},
	ReachedCommunity:    {ApprovedByVolunteer, RejectedByVolunteer},
	ApprovedByVolunteer: {DonorClaimed},
	DonorClaimed:        {},
	RejectedByVolunteer: {},
}

// AllStatuses lists every valid status in lifecycle order.
func AllStatuses() []Status {
	return []Status{Pending, VolunteerAccepted, ReachedCommunity, ApprovedByVolunteer, DonorClaimed, RejectedByVolunteer}
}

// ParseStatus validates a wire token.
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if err := status.Validate(); err != nil {
		return "", err
	}
	return status, nil
}

// Validate rejects tokens that are not part of the state machine.
func (s Status) Validate() error {
	if _, ok := transitions[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid request status", string(s)))
	}
	return nil
}

func (s Status) String() string {
	return string(s)
}

// Successors returns the statuses reachable in one step.
func (s Status) Successors() []Status {
	return slices.Clone(transitions[s])
}

// CanTransitionTo reports whether target is a legal next status.
func (s Status) CanTransitionTo(target Status) bool {
	return slices.Contains(transitions[s], target)
}

// IsTerminal reports whether no transition leaves s.
func (s Status) IsTerminal() bool {
	next, ok := transitions[s]
	return ok && len(next) == 0
}

// TransitionTo returns target when the move is legal and an
// InvalidTransitionError otherwise.
func (s Status) TransitionTo(target Status) (Status, error) {
	if !s.CanTransitionTo(target) {
		return "", errs.NewInvalidTransitionError(kernel.EntityRequest.String(), s.String(), target.String())
	}
	return target, nil
}

// ValidateCanHaveVolunteer checks the status against the presence of an
// assigned volunteer. A request rejected straight from pending never had one;
// a request rejected after the visit keeps its volunteer.
func (s Status) ValidateCanHaveVolunteer(hasVolunteer bool) error {
	switch s {
	case Pending:
		if hasVolunteer {
			return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%s request cannot have a volunteer", s))
		}
	case VolunteerAccepted, ReachedCommunity, ApprovedByVolunteer, DonorClaimed:
		if !hasVolunteer {
			return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%s request must have a volunteer", s))
		}
	case RejectedByVolunteer:
	}
	return nil
}

// ValidateCanHaveDonor checks that only a claimed request carries a donor.
func (s Status) ValidateCanHaveDonor(hasDonor bool) error {
	if hasDonor != (s == DonorClaimed) {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%s request has inconsistent donor", s))
	}
	return nil
}
