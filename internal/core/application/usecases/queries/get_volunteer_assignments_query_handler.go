package queries

import (
	"context"

	"aidmatch/internal/core/ports"
)

type GetVolunteerAssignmentsQueryHandler struct {
	assignments ports.AssignmentRepository
}

func NewGetVolunteerAssignmentsQueryHandler(assignments ports.AssignmentRepository) GetVolunteerAssignmentsQueryHandler {
	return GetVolunteerAssignmentsQueryHandler{assignments: assignments}
}

// Handle returns the records most recently updated first.
func (h GetVolunteerAssignmentsQueryHandler) Handle(
	ctx context.Context,
	query GetVolunteerAssignmentsQuery,
) ([]GetVolunteerAssignmentsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	records, err := h.assignments.ListByVolunteer(ctx, query.VolunteerID())
	if err != nil {
		return nil, err
	}

	result := make([]GetVolunteerAssignmentsQueryResponse, 0, len(records))
	for _, rec := range records {
		key := rec.Key()
		result = append(result, GetVolunteerAssignmentsQueryResponse{
			EntityType: key.EntityType,
			EntityID:   key.EntityID,
			Statuses:   rec.Statuses(),
			Latest:     rec.Latest(),
			CreatedAt:  rec.CreatedAt(),
			UpdatedAt:  rec.UpdatedAt(),
		})
	}
	return result, nil
}
