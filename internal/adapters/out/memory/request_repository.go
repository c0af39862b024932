package memory

import (
	"context"
	"fmt"
	"slices"
	"time"

	"aidmatch/internal/core/domain/model/kernel"
	"aidmatch/internal/core/domain/model/request"
	"aidmatch/internal/pkg/errs"
)

type requestRepository struct {
	uow *UnitOfWork
}

func (r *requestRepository) Add(ctx context.Context, aggregate *request.Request) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if _, err := r.Get(ctx, aggregate.ID()); err == nil {
		return fmt.Errorf("memory: request %s already exists", aggregate.ID())
	}
	r.put(aggregate.Snapshot())
	return nil
}

func (r *requestRepository) Update(ctx context.Context, aggregate *request.Request) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if _, err := r.Get(ctx, aggregate.ID()); err != nil {
		return err
	}
	r.put(aggregate.Snapshot())
	return nil
}

func (r *requestRepository) put(st request.State) {
	if r.uow.active {
		r.uow.requests[st.ID.Bytes()] = st
		return
	}
	s := r.uow.store
	s.mu.Lock()
	s.requests[st.ID.Bytes()] = st
	s.mu.Unlock()
}

func (r *requestRepository) Get(_ context.Context, id kernel.UUID) (*request.Request, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if st, ok := r.uow.requests[id.Bytes()]; ok {
		return request.RestoreRequest(st)
	}

	s := r.uow.store
	s.mu.RLock()
	st, ok := s.requests[id.Bytes()]
	s.mu.RUnlock()
	if !ok {
		return nil, errs.NewObjectNotFoundError("request", id.String())
	}
	return request.RestoreRequest(st)
}

func (r *requestRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*request.Request, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := r.uow.lock(ctx, id.Bytes()); err != nil {
		return nil, err
	}
	return r.Get(ctx, id)
}

func (r *requestRepository) ListPendingCreatedBetween(
	_ context.Context,
	from, to time.Time,
	limit int,
) ([]*request.Request, error) {
	s := r.uow.store
	s.mu.RLock()
	states := make([]request.State, 0)
	for _, st := range s.requests {
		if st.Status != request.Pending || !st.CreatedAt.Before(to) {
			continue
		}
		if from.IsZero() || !st.CreatedAt.Before(from) {
			states = append(states, st)
		}
	}
	s.mu.RUnlock()

	slices.SortFunc(states, func(a, b request.State) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	if limit > 0 && len(states) > limit {
		states = states[:limit]
	}

	result := make([]*request.Request, 0, len(states))
	for _, st := range states {
		req, err := request.RestoreRequest(st)
		if err != nil {
			return nil, err
		}
		result = append(result, req)
	}
	return result, nil
}
