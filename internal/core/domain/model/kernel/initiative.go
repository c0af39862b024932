package kernel

import (
	"fmt"

	"aidmatch/internal/pkg/errs"
)

// Initiative tags the kind of aid a request or donation is about.
type Initiative string

const (
	InitiativeFood       Initiative = "food"
	InitiativeEducation  Initiative = "education"
	InitiativeShelter    Initiative = "shelter"
	InitiativeHealthcare Initiative = "healthcare"
	InitiativeClothing   Initiative = "clothing"
	InitiativeOther      Initiative = "other"
)

// ParseInitiative validates a wire token.
func ParseInitiative(s string) (Initiative, error) {
	i := Initiative(s)
	switch i {
	case InitiativeFood, InitiativeEducation, InitiativeShelter,
		InitiativeHealthcare, InitiativeClothing, InitiativeOther:
		return i, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("initiative", fmt.Errorf("%q is not a known initiative", s))
	}
}

func (i Initiative) String() string {
	return string(i)
}
