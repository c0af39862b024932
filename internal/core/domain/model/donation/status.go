package donation

import (
	"fmt"
	"slices"

	"aidmatch/internal/core/domain/model/kernel"
	"aidmatch/internal/pkg/errs"
)

// Status is the lifecycle state of a donation.
//
// State transitions:
//
//	pending ──> accepted ──> picked ──> delivered ──> completed
type Status string

const (
	Pending   Status = "pending"
	Accepted  Status = "accepted"
	Picked    Status = "picked"
	Delivered Status = "delivered"
	Completed Status = "completed"
)

var transitions = map[Status][]Status{
	Pending:   {Accepted},
	Accepted:  {Picked},
	Picked:    {Delivered},
	Delivered: {Completed},
	Completed: {},
}

// AllStatuses lists every valid status in lifecycle order.
func AllStatuses() []Status {
	return []Status{Pending, Accepted, Picked, Delivered, Completed}
}

// ParseStatus validates a wire token.
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if err := status.Validate(); err != nil {
		return "", err
	}
	return status, nil
}

func (s Status) Validate() error {
	if _, ok := transitions[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid donation status", string(s)))
	}
	return nil
}

func (s Status) String() string {
	return string(s)
}

func (s Status) CanTransitionTo(target Status) bool {
	return slices.Contains(transitions[s], target)
}

func (s Status) IsTerminal() bool {
	next, ok := transitions[s]
	return ok && len(next) == 0
}

func (s Status) TransitionTo(target Status) (Status, error) {
	if !s.CanTransitionTo(target) {
		return "", errs.NewInvalidTransitionError(kernel.EntityDonation.String(), s.String(), target.String())
	}
	return target, nil
}

// ValidateCanHaveVolunteer checks that every status past pending carries an
// assigned volunteer and pending carries none.
func (s Status) ValidateCanHaveVolunteer(hasVolunteer bool) error {
	if hasVolunteer == (s == Pending) {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%s donation has inconsistent volunteer", s))
	}
	return nil
}
