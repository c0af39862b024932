package memory

import (
	"context"
	"slices"

	"aidmatch/internal/core/domain/model/assignment"
	"aidmatch/internal/core/domain/model/kernel"
	"aidmatch/internal/pkg/errs"
)

type assignmentRepository struct {
	uow *UnitOfWork
}

func (r *assignmentRepository) Get(_ context.Context, key assignment.Key) (*assignment.Record, error) {
	if err := key.Validate(); err != nil {
		return nil, err
	}
	if rec, ok := r.uow.assignments[key]; ok {
		return cloneRecord(rec)
	}

	s := r.uow.store
	s.mu.RLock()
	rec, ok := s.assignments[key]
	s.mu.RUnlock()
	if !ok {
		return nil, errs.NewObjectNotFoundError("assignment", key.EntityID.String())
	}
	return cloneRecord(rec)
}

func (r *assignmentRepository) Upsert(_ context.Context, record *assignment.Record) error {
	if err := record.Validate(); err != nil {
		return err
	}
	stored, err := cloneRecord(record)
	if err != nil {
		return err
	}
	if r.uow.active {
		r.uow.assignments[record.Key()] = stored
		return nil
	}
	s := r.uow.store
	s.mu.Lock()
	s.assignments[record.Key()] = stored
	s.mu.Unlock()
	return nil
}

func (r *assignmentRepository) ListByVolunteer(_ context.Context, volunteerID kernel.UUID) ([]*assignment.Record, error) {
	if err := volunteerID.Validate(); err != nil {
		return nil, err
	}

	s := r.uow.store
	s.mu.RLock()
	result := make([]*assignment.Record, 0)
	for key, rec := range s.assignments {
		if !key.VolunteerID.IsEqual(volunteerID) {
			continue
		}
		c, err := cloneRecord(rec)
		if err != nil {
			s.mu.RUnlock()
			return nil, err
		}
		result = append(result, c)
	}
	s.mu.RUnlock()

	slices.SortFunc(result, func(a, b *assignment.Record) int {
		return b.UpdatedAt().Compare(a.UpdatedAt())
	})
	return result, nil
}

func cloneRecord(rec *assignment.Record) (*assignment.Record, error) {
	return assignment.RestoreRecord(rec.Key(), rec.Statuses(), rec.CreatedAt(), rec.UpdatedAt())
}
