package queries

import (
	"errors"

	"aidmatch/internal/core/domain/model/kernel"
	"aidmatch/internal/pkg/errs"
	"aidmatch/internal/pkg/guard"
)

const (
	DefaultNotificationsLimit = 50
	MaxNotificationsLimit     = 200
)

var (
	ErrGetNotificationsQueryIsNotConstructed = errors.New(
		"GetNotificationsQuery must be created via NewGetNotificationsQuery constructor",
	)
)

// GetNotificationsQuery reads a recipient's inbox, newest first.
type GetNotificationsQuery struct {
	recipientID kernel.UUID
	limit       int

	guard guard.ConstructorGuard
}

// NewGetNotificationsQuery uses DefaultNotificationsLimit when limit is zero.
func NewGetNotificationsQuery(recipientID kernel.UUID, limit int) (GetNotificationsQuery, error) {
	if limit == 0 {
		limit = DefaultNotificationsLimit
	}
	if err := errors.Join(
		recipientID.Validate(),
		validateLimit(limit),
	); err != nil {
		return GetNotificationsQuery{}, err
	}
	return GetNotificationsQuery{recipientID: recipientID, limit: limit, guard: guard.NewConstructorGuard()}, nil
}

func validateLimit(limit int) error {
	if limit < 1 || limit > MaxNotificationsLimit {
		return errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxNotificationsLimit)
	}
	return nil
}

func (q GetNotificationsQuery) Validate() error {
	return q.guard.Validate(ErrGetNotificationsQueryIsNotConstructed)
}

func (q GetNotificationsQuery) RecipientID() kernel.UUID {
	return q.recipientID
}

func (q GetNotificationsQuery) Limit() int {
	return q.limit
}
