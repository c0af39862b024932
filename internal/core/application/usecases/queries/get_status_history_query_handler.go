package queries

import (
	"context"

	"aidmatch/internal/core/ports"
)

type GetStatusHistoryQueryHandler struct {
	events ports.StatusEventRepository
}

func NewGetStatusHistoryQueryHandler(events ports.StatusEventRepository) GetStatusHistoryQueryHandler {
	return GetStatusHistoryQueryHandler{events: events}
}

// Handle returns the entity's transitions in occurrence order. An entity with
// no audited transitions yields an empty slice rather than NotFound, since
// audit writes trail the commit.
func (h GetStatusHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetStatusHistoryQuery,
) ([]GetStatusHistoryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	events, err := h.events.ListByEntity(ctx, query.EntityID())
	if err != nil {
		return nil, err
	}

	history := make([]GetStatusHistoryQueryResponse, 0, len(events))
	for _, e := range events {
		history = append(history, GetStatusHistoryQueryResponse{
			EntityType: e.EntityType,
			FromStatus: e.FromStatus,
			ToStatus:   e.ToStatus,
			ActorID:    e.ActorID,
			OccurredAt: e.OccurredAt,
			Extra:      e.Extra,
		})
	}
	return history, nil
}
