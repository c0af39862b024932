package ports

import (
	"context"
	"time"

	"aidmatch/internal/core/domain/model/kernel"
	"aidmatch/internal/core/domain/model/request"
)

// RequestRepository defines the persistence contract for community requests.
type RequestRepository interface {
	// Add persists a new request.
	Add(ctx context.Context, aggregate *request.Request) error

	// Update persists changes to an existing request.
	Update(ctx context.Context, aggregate *request.Request) error

	// Get retrieves a request without locking it.
	// Returns ObjectNotFoundError when the id is unknown.
	Get(ctx context.Context, id kernel.UUID) (*request.Request, error)

	// GetForUpdate retrieves a request and holds an exclusive lock on it until
	// the surrounding transaction ends. Concurrent callers for the same id
	// block and then observe the committed state.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*request.Request, error)

	// ListPendingCreatedBetween returns up to limit pending requests with
	// from <= created_at < to, oldest first. A zero from leaves the range
	// open below.
	ListPendingCreatedBetween(ctx context.Context, from, to time.Time, limit int) ([]*request.Request, error)
}
