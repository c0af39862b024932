package kernel

import (
	"fmt"

	"aidmatch/internal/pkg/errs"
	"aidmatch/internal/pkg/guard"
)

// Role is the account role an actor acts under. Values are the literal
// tokens used on the wire.
type Role string

const (
	RoleCommunity Role = "community"
	RoleVolunteer Role = "volunteer"
	RoleDonor     Role = "donor"
	RoleAdmin     Role = "admin"
)

// ParseRole validates a wire token.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if err := r.Validate(); err != nil {
		return "", err
	}
	return r, nil
}

// Validate rejects unknown role tokens.
func (r Role) Validate() error {
	switch r {
	case RoleCommunity, RoleVolunteer, RoleDonor, RoleAdmin:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a known role", string(r)))
	}
}

func (r Role) String() string {
	return string(r)
}

// ErrActorIsNotConstructed is returned when a zero-value Actor is used.
var ErrActorIsNotConstructed = errs.NewValueIsRequiredError("actor must be created via NewActor")

// Actor is the caller of an operation as asserted by the upstream gateway.
// Token verification happens before the core is reached.
type Actor struct { //nolint:recvcheck //using for validation
	id    UUID
	role  Role
	guard guard.ConstructorGuard
}

// NewActor validates the identifier and role.
func NewActor(id UUID, role Role) (Actor, error) {
	if err := id.Validate(); err != nil {
		return Actor{}, err
	}
	if err := role.Validate(); err != nil {
		return Actor{}, err
	}
	return Actor{id: id, role: role, guard: guard.NewConstructorGuard()}, nil
}

// Validate returns ErrActorIsNotConstructed for the zero value.
func (a Actor) Validate() error {
	return a.guard.Validate(ErrActorIsNotConstructed)
}

func (a Actor) ID() UUID {
	return a.id
}

func (a Actor) Role() Role {
	return a.role
}

// Is reports whether the actor holds role.
func (a Actor) Is(role Role) bool {
	return a.role == role
}

// Require returns an UnauthorizedError naming action unless the actor holds
// one of roles.
func (a Actor) Require(action string, roles ...Role) error {
	for _, r := range roles {
		if a.role == r {
			return nil
		}
	}
	return errs.NewUnauthorizedError(a.id.String(), action, fmt.Sprintf("role %s is not permitted", a.role))
}

// ProfileSnapshot copies a profile's display fields at the instant of an
// assignment. Later profile edits do not change it.
type ProfileSnapshot struct {
	ID      UUID
	Name    string
	Contact string
}
