// Package commands contains business operations that modify system state.
// All commands follow a consistent pattern: validation, transaction management,
// persistence, and publication of committed events.
package commands

import (
	"context"

	"aidmatch/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// RequestRepoFactory provides access to the request repository within a transaction.
	RequestRepoFactory interface {
		RequestRepository() ports.RequestRepository
	}

	// DonationRepoFactory provides access to the donation repository within a transaction.
	DonationRepoFactory interface {
		DonationRepository() ports.DonationRepository
	}

	// ProfileRepoFactory provides access to the profile repository within a transaction.
	ProfileRepoFactory interface {
		ProfileRepository() ports.ProfileRepository
	}

	// AssignmentRepoFactory provides access to the assignment repository within a transaction.
	AssignmentRepoFactory interface {
		AssignmentRepository() ports.AssignmentRepository
	}

	// RequestUoW manages transactions for request-only operations.
	RequestUoW interface {
		TxManager
		RequestRepoFactory
	}

	// RequestUoWFactory creates new request unit of work instances.
	RequestUoWFactory interface {
		Create() RequestUoW
	}

	// DonationUoW manages transactions for donation-only operations.
	DonationUoW interface {
		TxManager
		DonationRepoFactory
	}

	// DonationUoWFactory creates new donation unit of work instances.
	DonationUoWFactory interface {
		Create() DonationUoW
	}

	// UoW manages transactions across every aggregate the transition engine
	// touches.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   req, err := uow.RequestRepository().GetForUpdate(ctx, id)
	//   // ... mutate, then Update, Add the spawned donation
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		RequestRepoFactory
		DonationRepoFactory
		ProfileRepoFactory
		AssignmentRepoFactory
	}

	// UoWFactory creates new unit of work instances for cross-aggregate operations.
	UoWFactory interface {
		Create() UoW
	}
)
