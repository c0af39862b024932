// Package postgres provides the GORM-based Unit of Work for the request and
// donation aggregates. Repositories obtained from a unit of work after Begin
// share its transaction, so a claim's request update and the donation it
// spawns commit or roll back together.
//
// Usage:
//
//	factory := NewGormUnitOfWorkFactory(db)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() {
//	    _ = uow.Rollback(ctx)
//	}()
//
//	req, err := uow.RequestRepository().GetForUpdate(ctx, id)
//	if err != nil {
//	    return err
//	}
//	// mutate req
//	if err := uow.RequestRepository().Update(ctx, req); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Concurrency Considerations:
//   - Each UnitOfWork instance holds its own transaction; do not share one
//     between goroutines
//   - GetForUpdate takes a row lock, so concurrent transitions on the same
//     entity are serialized by PostgreSQL
package postgres

import (
	"context"

	"aidmatch/internal/adapters/out/postgres/assignmentrepo"
	"aidmatch/internal/adapters/out/postgres/auditrepo"
	"aidmatch/internal/adapters/out/postgres/donationrepo"
	"aidmatch/internal/adapters/out/postgres/notificationrepo"
	"aidmatch/internal/adapters/out/postgres/profilerepo"
	"aidmatch/internal/adapters/out/postgres/requestrepo"
	"aidmatch/internal/core/ports"

	"gorm.io/gorm"
)

// Migrate creates or updates every table the adapter owns.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&requestrepo.RequestDTO{},
		&donationrepo.DonationDTO{},
		&profilerepo.ProfileDTO{},
		&assignmentrepo.AssignmentDTO{},
		&notificationrepo.NotificationDTO{},
		&auditrepo.StatusEventDTO{},
	)
}

// GormUnitOfWorkFactory creates UnitOfWork instances over one connection pool.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work instances.
//
// Example:
//
//	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
//	if err != nil {
//	    return err
//	}
//	factory := NewGormUnitOfWorkFactory(db)
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a new UnitOfWork with no active transaction.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{db: f.db}
}

// GormUnitOfWork coordinates one database transaction.
type GormUnitOfWork struct {
	db *gorm.DB
	tx *gorm.DB
}

// Begin starts a transaction. Calling it again while one is active is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

// Commit finalizes the transaction. Returns gorm.ErrInvalidTransaction when
// none is active.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards the transaction. Returns gorm.ErrInvalidTransaction when
// none is active, which makes a deferred Rollback after Commit harmless.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

// RequestRepository runs inside the current transaction if one is active,
// otherwise against the pool.
func (uow *GormUnitOfWork) RequestRepository() ports.RequestRepository {
	return requestrepo.NewGormRequestRepository(uow.conn())
}

// DonationRepository runs inside the current transaction if one is active,
// otherwise against the pool.
func (uow *GormUnitOfWork) DonationRepository() ports.DonationRepository {
	return donationrepo.NewGormDonationRepository(uow.conn())
}

func (uow *GormUnitOfWork) ProfileRepository() ports.ProfileRepository {
	return profilerepo.NewGormProfileRepository(uow.conn())
}

func (uow *GormUnitOfWork) AssignmentRepository() ports.AssignmentRepository {
	return assignmentrepo.NewGormAssignmentRepository(uow.conn())
}
