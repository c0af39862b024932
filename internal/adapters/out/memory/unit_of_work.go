package memory

import (
	"context"
	"errors"

	"aidmatch/internal/core/domain/model/assignment"
	"aidmatch/internal/core/domain/model/donation"
	"aidmatch/internal/core/domain/model/request"
	"aidmatch/internal/core/ports"

	"github.com/google/uuid"
)

// ErrNoTransaction is returned by Commit and Rollback outside a transaction.
var ErrNoTransaction = errors.New("memory: no active transaction")

// UnitOfWorkFactory creates units of work over one Store.
type UnitOfWorkFactory struct {
	store *Store
}

func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return f.newUnitOfWork()
}

func (f *UnitOfWorkFactory) newUnitOfWork() *UnitOfWork {
	return &UnitOfWork{store: f.store}
}

// UnitOfWork stages writes while a transaction is active. Without an active
// transaction every write is applied immediately.
type UnitOfWork struct {
	store  *Store
	active bool
	locked []uuid.UUID

	requests    map[uuid.UUID]request.State
	donations   map[uuid.UUID]donation.State
	assignments map[assignment.Key]*assignment.Record
}

func (u *UnitOfWork) Begin(_ context.Context) error {
	if u.active {
		return nil
	}
	u.active = true
	u.requests = map[uuid.UUID]request.State{}
	u.donations = map[uuid.UUID]donation.State{}
	u.assignments = map[assignment.Key]*assignment.Record{}
	return nil
}

func (u *UnitOfWork) Commit(_ context.Context) error {
	if !u.active {
		return ErrNoTransaction
	}

	s := u.store
	s.mu.Lock()
	for id, st := range u.requests {
		s.requests[id] = st
	}
	for id, st := range u.donations {
		s.donations[id] = st
	}
	for key, rec := range u.assignments {
		s.assignments[key] = rec
	}
	s.mu.Unlock()

	u.end()
	return nil
}

func (u *UnitOfWork) Rollback(_ context.Context) error {
	if !u.active {
		return ErrNoTransaction
	}
	u.end()
	return nil
}

func (u *UnitOfWork) end() {
	for _, id := range u.locked {
		u.store.unlockRow(id)
	}
	u.locked = nil
	u.active = false
	u.requests = nil
	u.donations = nil
	u.assignments = nil
}

// lock takes the row lock for id once per transaction. Outside a transaction
// it does nothing.
func (u *UnitOfWork) lock(ctx context.Context, id uuid.UUID) error {
	if !u.active {
		return nil
	}
	for _, held := range u.locked {
		if held == id {
			return nil
		}
	}
	if err := u.store.lockRow(ctx, id); err != nil {
		return err
	}
	u.locked = append(u.locked, id)
	return nil
}

func (u *UnitOfWork) RequestRepository() ports.RequestRepository {
	return &requestRepository{uow: u}
}

func (u *UnitOfWork) DonationRepository() ports.DonationRepository {
	return &donationRepository{uow: u}
}

func (u *UnitOfWork) ProfileRepository() ports.ProfileRepository {
	return &profileRepository{uow: u}
}

func (u *UnitOfWork) AssignmentRepository() ports.AssignmentRepository {
	return &assignmentRepository{uow: u}
}
