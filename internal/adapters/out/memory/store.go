// Package memory provides an in-process implementation of the store ports.
//
// Transactions stage their writes and apply them on Commit. GetForUpdate
// takes a per-entity lock held until the unit of work ends, which gives the
// same serialization on a single request or donation as a database row lock
// without any store-wide lock around business logic.
package memory

import (
	"context"
	"sync"

	"aidmatch/internal/core/domain/model/assignment"
	"aidmatch/internal/core/domain/model/audit"
	"aidmatch/internal/core/domain/model/donation"
	"aidmatch/internal/core/domain/model/notification"
	"aidmatch/internal/core/domain/model/profile"
	"aidmatch/internal/core/domain/model/request"
	"aidmatch/internal/core/ports"

	"github.com/google/uuid"
)

// Store holds every collection. The zero value is not usable; call NewStore.
type Store struct {
	mu sync.RWMutex

	requests    map[uuid.UUID]request.State
	donations   map[uuid.UUID]donation.State
	profiles    map[uuid.UUID]profile.State
	assignments map[assignment.Key]*assignment.Record

	notifications []notification.Notification
	statusEvents  []audit.StatusEvent
	auditKeys     map[audit.Key]struct{}

	rowsMu sync.Mutex
	rows   map[uuid.UUID]chan struct{}
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		requests:    map[uuid.UUID]request.State{},
		donations:   map[uuid.UUID]donation.State{},
		profiles:    map[uuid.UUID]profile.State{},
		assignments: map[assignment.Key]*assignment.Record{},
		auditKeys:   map[audit.Key]struct{}{},
		rows:        map[uuid.UUID]chan struct{}{},
	}
}

// SaveProfile inserts or replaces a profile. Profiles are owned by the user
// service; this is how they reach the in-process store.
func (s *Store) SaveProfile(p *profile.Profile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[p.ID().Bytes()] = p.Snapshot()
	return nil
}

// UnitOfWorkFactory returns a factory whose units of work share this store.
func (s *Store) UnitOfWorkFactory() *UnitOfWorkFactory {
	return &UnitOfWorkFactory{store: s}
}

// Profiles returns a profile repository reading committed state.
func (s *Store) Profiles() ports.ProfileRepository {
	return &profileRepository{uow: s.UnitOfWorkFactory().newUnitOfWork()}
}

// Requests returns a request repository reading committed state.
func (s *Store) Requests() ports.RequestRepository {
	return &requestRepository{uow: s.UnitOfWorkFactory().newUnitOfWork()}
}

// Donations returns a donation repository reading committed state.
func (s *Store) Donations() ports.DonationRepository {
	return &donationRepository{uow: s.UnitOfWorkFactory().newUnitOfWork()}
}

// Assignments returns an assignment repository reading committed state.
func (s *Store) Assignments() ports.AssignmentRepository {
	return &assignmentRepository{uow: s.UnitOfWorkFactory().newUnitOfWork()}
}

// lockRow blocks until the caller holds the row lock for id or ctx ends.
func (s *Store) lockRow(ctx context.Context, id uuid.UUID) error {
	s.rowsMu.Lock()
	sem, ok := s.rows[id]
	if !ok {
		sem = make(chan struct{}, 1)
		s.rows[id] = sem
	}
	s.rowsMu.Unlock()

	select {
	case sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Store) unlockRow(id uuid.UUID) {
	s.rowsMu.Lock()
	sem := s.rows[id]
	s.rowsMu.Unlock()
	<-sem
}
