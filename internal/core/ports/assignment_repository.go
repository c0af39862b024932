package ports

import (
	"context"

	"aidmatch/internal/core/domain/model/assignment"
	"aidmatch/internal/core/domain/model/kernel"
)

// AssignmentRepository stores volunteer assignment history.
type AssignmentRepository interface {
	// Get returns ObjectNotFoundError when no record exists for key.
	Get(ctx context.Context, key assignment.Key) (*assignment.Record, error)

	// Upsert inserts the record or replaces the one stored under its key.
	Upsert(ctx context.Context, record *assignment.Record) error

	// ListByVolunteer returns a volunteer's records, most recently updated first.
	ListByVolunteer(ctx context.Context, volunteerID kernel.UUID) ([]*assignment.Record, error)
}
