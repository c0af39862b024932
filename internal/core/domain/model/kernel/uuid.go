package kernel

import (
	"fmt"

	"aidmatch/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrUUIDIsNotConstructed indicates a zero-value UUID.
var ErrUUIDIsNotConstructed = errs.NewValueIsRequiredError("UUID must be created via NewUUID, UUIDFromString, or UUIDFromBytes")

// UUID identifies requests, donations, profiles and records. It wraps
// github.com/google/uuid so the zero value can be told apart from a real
// identifier.
//
// Example:
//
//	requestID := kernel.NewUUID()
//	actorID, err := kernel.UUIDFromString(c.Request().Header.Get("X-Actor-ID"))
//	if err != nil {
//	    return err
//	}
type UUID struct {
	id uuid.UUID
}

// NewUUID generates a new random (version 4) identifier.
func NewUUID() UUID {
	return UUID{id: uuid.New()}
}

// UUIDFromString parses the canonical textual form. The nil UUID is rejected
// because it can never identify an entity.
func UUIDFromString(s string) (UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, errs.NewValueIsInvalidErrorWithCause("UUID", fmt.Errorf("invalid UUID format: %w", err))
	}
	parsed := UUID{id: id}
	if err = parsed.Validate(); err != nil {
		return UUID{}, err
	}
	return parsed, nil
}

// UUIDFromBytes builds a UUID from its 16-byte form, as stored by the
// postgres repositories.
func UUIDFromBytes(b []byte) (UUID, error) {
	id, err := uuid.FromBytes(b)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	newID := UUID{id: id}
	if err = newID.Validate(); err != nil {
		return UUID{}, err
	}

	return newID, nil
}

// UUIDPtrFromBytes converts an optional stored identifier.
func UUIDPtrFromBytes(raw *uuid.UUID) (*UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := UUIDFromBytes(raw[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// String returns the canonical "xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx" form.
func (u UUID) String() string {
	return u.id.String()
}

// Bytes returns the underlying uuid.UUID value for persistence adapters.
func (u UUID) Bytes() uuid.UUID {
	return u.id
}

// IsEqual compares two identifiers by value.
func (u UUID) IsEqual(other UUID) bool {
	return u.id == other.id
}

// Validate returns ErrUUIDIsNotConstructed for the zero value.
func (u UUID) Validate() error {
	if u.id == uuid.Nil {
		return ErrUUIDIsNotConstructed
	}
	return nil
}

// PtrBytes converts an optional identifier for persistence.
func PtrBytes(u *UUID) *uuid.UUID {
	if u == nil {
		return nil
	}
	raw := u.Bytes()
	return &raw
}

// PtrEqual reports whether the optional identifier is set to other.
func PtrEqual(u *UUID, other UUID) bool {
	return u != nil && u.IsEqual(other)
}
