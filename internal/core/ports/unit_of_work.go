// Package ports defines the contracts between the core and its adapters:
// transactional repositories for the aggregates, the stores the dispatcher
// writes to, and the outbound notification channels.
package ports

import (
	"context"
)

// UnitOfWorkFactory creates a fresh UnitOfWork for each command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a business transaction boundary. Repositories obtained after
// Begin run inside the transaction; nothing they write is visible to other
// units of work until Commit.
type UnitOfWork interface {
	// Begin starts a new transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// RequestRepository returns a RequestRepository bound to the current transaction.
	RequestRepository() RequestRepository

	// DonationRepository returns a DonationRepository bound to the current transaction.
	DonationRepository() DonationRepository

	// ProfileRepository returns a ProfileRepository bound to the current transaction.
	ProfileRepository() ProfileRepository

	// AssignmentRepository returns an AssignmentRepository bound to the current transaction.
	AssignmentRepository() AssignmentRepository
}
