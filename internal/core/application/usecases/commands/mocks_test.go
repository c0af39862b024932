package commands_test

import (
	"context"
	"time"

	"aidmatch/internal/core/application/usecases/commands"
	"aidmatch/internal/core/domain/model/assignment"
	"aidmatch/internal/core/domain/model/donation"
	"aidmatch/internal/core/domain/model/event"
	"aidmatch/internal/core/domain/model/kernel"
	"aidmatch/internal/core/domain/model/profile"
	"aidmatch/internal/core/domain/model/request"
	"aidmatch/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockRequestRepository struct{ mock.Mock }

func (m *MockRequestRepository) Add(ctx context.Context, r *request.Request) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRequestRepository) Update(ctx context.Context, r *request.Request) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRequestRepository) Get(ctx context.Context, id kernel.UUID) (*request.Request, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*request.Request), args.Error(1)
}

func (m *MockRequestRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*request.Request, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*request.Request), args.Error(1)
}

func (m *MockRequestRepository) ListPendingCreatedBetween(
	ctx context.Context,
	from, to time.Time,
	limit int,
) ([]*request.Request, error) {
	args := m.Called(ctx, from, to, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*request.Request), args.Error(1)
}

type MockDonationRepository struct{ mock.Mock }

func (m *MockDonationRepository) Add(ctx context.Context, d *donation.Donation) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDonationRepository) Update(ctx context.Context, d *donation.Donation) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDonationRepository) Get(ctx context.Context, id kernel.UUID) (*donation.Donation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*donation.Donation), args.Error(1)
}

func (m *MockDonationRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*donation.Donation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*donation.Donation), args.Error(1)
}

type MockProfileRepository struct{ mock.Mock }

func (m *MockProfileRepository) Get(ctx context.Context, id kernel.UUID) (*profile.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*profile.Profile), args.Error(1)
}

func (m *MockProfileRepository) ListVolunteersByCity(ctx context.Context, city string) ([]*profile.Profile, error) {
	args := m.Called(ctx, city)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*profile.Profile), args.Error(1)
}

type MockAssignmentRepository struct{ mock.Mock }

func (m *MockAssignmentRepository) Get(ctx context.Context, key assignment.Key) (*assignment.Record, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*assignment.Record), args.Error(1)
}

func (m *MockAssignmentRepository) Upsert(ctx context.Context, record *assignment.Record) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockAssignmentRepository) ListByVolunteer(ctx context.Context, id kernel.UUID) ([]*assignment.Record, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*assignment.Record), args.Error(1)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) RequestRepository() ports.RequestRepository {
	args := m.Called()
	return args.Get(0).(ports.RequestRepository)
}

func (m *MockUoW) DonationRepository() ports.DonationRepository {
	args := m.Called()
	return args.Get(0).(ports.DonationRepository)
}

func (m *MockUoW) ProfileRepository() ports.ProfileRepository {
	args := m.Called()
	return args.Get(0).(ports.ProfileRepository)
}

func (m *MockUoW) AssignmentRepository() ports.AssignmentRepository {
	args := m.Called()
	return args.Get(0).(ports.AssignmentRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockRequestUoWFactory struct{ mock.Mock }

func (m *MockRequestUoWFactory) Create() commands.RequestUoW {
	args := m.Called()
	return args.Get(0).(commands.RequestUoW)
}

type MockDonationUoWFactory struct{ mock.Mock }

func (m *MockDonationUoWFactory) Create() commands.DonationUoW {
	args := m.Called()
	return args.Get(0).(commands.DonationUoW)
}

type MockPublisher struct{ mock.Mock }

func (m *MockPublisher) Publish(ctx context.Context, events ...event.Event) {
	m.Called(ctx, events)
}
