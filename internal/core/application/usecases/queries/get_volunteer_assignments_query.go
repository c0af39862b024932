package queries

import (
	"errors"
	"time"

	"aidmatch/internal/core/domain/model/kernel"
	"aidmatch/internal/pkg/guard"
)

var (
	ErrGetVolunteerAssignmentsQueryIsNotConstructed = errors.New(
		"GetVolunteerAssignmentsQuery must be created via NewGetVolunteerAssignmentsQuery constructor",
	)
)

// GetVolunteerAssignmentsQuery lists every request and donation a volunteer
// has been assigned, with the statuses each went through while assigned.
type GetVolunteerAssignmentsQuery struct {
	volunteerID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetVolunteerAssignmentsQuery(volunteerID kernel.UUID) (GetVolunteerAssignmentsQuery, error) {
	if err := volunteerID.Validate(); err != nil {
		return GetVolunteerAssignmentsQuery{}, err
	}
	return GetVolunteerAssignmentsQuery{volunteerID: volunteerID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetVolunteerAssignmentsQuery) Validate() error {
	return q.guard.Validate(ErrGetVolunteerAssignmentsQueryIsNotConstructed)
}

func (q GetVolunteerAssignmentsQuery) VolunteerID() kernel.UUID {
	return q.volunteerID
}

// GetVolunteerAssignmentsQueryResponse is one assignment record.
type GetVolunteerAssignmentsQueryResponse struct {
	EntityType kernel.EntityType
	EntityID   kernel.UUID
	Statuses   []string
	Latest     string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
