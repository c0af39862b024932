package memory

import (
	"context"
	"fmt"

	"aidmatch/internal/core/domain/model/donation"
	"aidmatch/internal/core/domain/model/kernel"
	"aidmatch/internal/pkg/errs"
)

type donationRepository struct {
	uow *UnitOfWork
}

func (r *donationRepository) Add(ctx context.Context, aggregate *donation.Donation) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if _, err := r.Get(ctx, aggregate.ID()); err == nil {
		return fmt.Errorf("memory: donation %s already exists", aggregate.ID())
	}
	r.put(aggregate.Snapshot())
	return nil
}

func (r *donationRepository) Update(ctx context.Context, aggregate *donation.Donation) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if _, err := r.Get(ctx, aggregate.ID()); err != nil {
		return err
	}
	r.put(aggregate.Snapshot())
	return nil
}

func (r *donationRepository) put(st donation.State) {
	if r.uow.active {
		r.uow.donations[st.ID.Bytes()] = st
		return
	}
	s := r.uow.store
	s.mu.Lock()
	s.donations[st.ID.Bytes()] = st
	s.mu.Unlock()
}

func (r *donationRepository) Get(_ context.Context, id kernel.UUID) (*donation.Donation, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if st, ok := r.uow.donations[id.Bytes()]; ok {
		return donation.RestoreDonation(st)
	}

	s := r.uow.store
	s.mu.RLock()
	st, ok := s.donations[id.Bytes()]
	s.mu.RUnlock()
	if !ok {
		return nil, errs.NewObjectNotFoundError("donation", id.String())
	}
	return donation.RestoreDonation(st)
}

func (r *donationRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*donation.Donation, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := r.uow.lock(ctx, id.Bytes()); err != nil {
		return nil, err
	}
	return r.Get(ctx, id)
}
