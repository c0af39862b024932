package queries

import (
	"errors"
	"time"

	"aidmatch/internal/core/domain/model/kernel"
	"aidmatch/internal/pkg/guard"
)

var (
	ErrGetStatusHistoryQueryIsNotConstructed = errors.New(
		"GetStatusHistoryQuery must be created via NewGetStatusHistoryQuery constructor",
	)
)

// GetStatusHistoryQuery reads the audit trail of one request or donation.
type GetStatusHistoryQuery struct {
	entityID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetStatusHistoryQuery(entityID kernel.UUID) (GetStatusHistoryQuery, error) {
	if err := entityID.Validate(); err != nil {
		return GetStatusHistoryQuery{}, err
	}
	return GetStatusHistoryQuery{entityID: entityID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetStatusHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetStatusHistoryQueryIsNotConstructed)
}

func (q GetStatusHistoryQuery) EntityID() kernel.UUID {
	return q.entityID
}

// GetStatusHistoryQueryResponse is one audited transition.
type GetStatusHistoryQueryResponse struct {
	EntityType kernel.EntityType
	FromStatus string
	ToStatus   string
	ActorID    kernel.UUID
	OccurredAt time.Time
	Extra      map[string]any
}
