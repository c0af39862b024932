package kernel

import (
	"fmt"

	"aidmatch/internal/pkg/errs"
)

// EntityType names the aggregate a transition or status event refers to.
type EntityType string

const (
	EntityRequest  EntityType = "request"
	EntityDonation EntityType = "donation"
)

// ParseEntityType validates a wire token.
func ParseEntityType(s string) (EntityType, error) {
	switch t := EntityType(s); t {
	case EntityRequest, EntityDonation:
		return t, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("entityType", fmt.Errorf("%q is not request or donation", s))
	}
}

func (t EntityType) String() string {
	return string(t)
}
