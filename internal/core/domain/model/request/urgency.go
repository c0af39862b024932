package request

import (
	"fmt"

	"aidmatch/internal/pkg/errs"
)

// Urgency ranks how soon a request needs attention.
type Urgency string

const (
	UrgencyLow    Urgency = "low"
	UrgencyMedium Urgency = "medium"
	UrgencyHigh   Urgency = "high"
)

// ParseUrgency validates a wire token. An empty token means medium.
func ParseUrgency(s string) (Urgency, error) {
	switch u := Urgency(s); u {
	case UrgencyLow, UrgencyMedium, UrgencyHigh:
		return u, nil
	case "":
		return UrgencyMedium, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("urgency", fmt.Errorf("%q is not one of low, medium, high", s))
	}
}

func (u Urgency) String() string {
	return string(u)
}
