package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	httpin "aidmatch/internal/adapters/in/http"
	"aidmatch/internal/adapters/out/kafkastream"
	"aidmatch/internal/adapters/out/memory"
	"aidmatch/internal/adapters/out/postgres"
	"aidmatch/internal/adapters/out/postgres/assignmentrepo"
	"aidmatch/internal/adapters/out/postgres/auditrepo"
	"aidmatch/internal/adapters/out/postgres/notificationrepo"
	"aidmatch/internal/adapters/out/postgres/profilerepo"
	"aidmatch/internal/adapters/out/redispush"
	"aidmatch/internal/adapters/out/smtpmail"
	"aidmatch/internal/core/application/dispatcher"
	"aidmatch/internal/core/application/usecases/commands"
	"aidmatch/internal/core/application/usecases/queries"
	"aidmatch/internal/core/domain/model/profile"
	"aidmatch/internal/core/domain/services"
	"aidmatch/internal/core/ports"
	"aidmatch/internal/jobs"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// CompositionRoot wires adapters into the use cases. It is built once at
// start-up; every Create method returns a ready handler.
type CompositionRoot struct {
	cfg    Config
	logger *slog.Logger

	uowFactory    ports.UnitOfWorkFactory
	profiles      ports.ProfileRepository
	assignments   ports.AssignmentRepository
	notifications ports.NotificationRepository
	statusEvents  ports.StatusEventRepository
	saveProfile   func(ctx context.Context, p *profile.Profile) error

	dispatcher *dispatcher.Dispatcher
	closers    []func() error
}

// NewCompositionRoot builds the root on PostgreSQL when gormDB is set and on
// the in-process store otherwise.
func NewCompositionRoot(cfg Config, gormDB *gorm.DB, logger *slog.Logger) *CompositionRoot {
	c := &CompositionRoot{cfg: cfg, logger: logger}

	if gormDB != nil {
		profiles := profilerepo.NewGormProfileRepository(gormDB)
		c.uowFactory = postgres.NewGormUnitOfWorkFactory(gormDB)
		c.profiles = profiles
		c.saveProfile = profiles.Save
		c.assignments = assignmentrepo.NewGormAssignmentRepository(gormDB)
		c.notifications = notificationrepo.NewGormNotificationRepository(gormDB)
		c.statusEvents = auditrepo.NewGormStatusEventRepository(gormDB)
	} else {
		store := memory.NewStore()
		c.uowFactory = store.UnitOfWorkFactory()
		c.profiles = store.Profiles()
		c.saveProfile = func(_ context.Context, p *profile.Profile) error {
			return store.SaveProfile(p)
		}
		c.assignments = store.Assignments()
		c.notifications = store.Notifications()
		c.statusEvents = store.StatusEvents()
	}

	c.dispatcher = dispatcher.New(
		dispatcher.Config{
			Workers:             cfg.DispatchWorkers,
			QueueSize:           cfg.DispatchQueueSize,
			EmailAttempts:       cfg.EmailAttempts,
			EmailRetryBackoff:   cfg.EmailRetryBackoff,
			EmailAttemptTimeout: cfg.EmailAttemptTimeout,
			PushTimeout:         cfg.PushTimeout,
		},
		c.CreateFindVolunteersQueryHandler(),
		c.profiles,
		c.sinks(),
		logger,
	)
	return c
}

func (c *CompositionRoot) sinks() dispatcher.Sinks {
	sinks := dispatcher.Sinks{
		Notifications: c.notifications,
		StatusEvents:  c.statusEvents,
	}

	if c.cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: c.cfg.RedisAddr})
		c.closers = append(c.closers, client.Close)
		sinks.Push = redispush.NewPublisher(client)
	} else {
		c.logger.Warn("REDIS_ADDR not set, live push disabled")
	}

	if c.cfg.SMTPHost != "" {
		sinks.Email = smtpmail.NewSender(smtpmail.Config{
			Host:     c.cfg.SMTPHost,
			Port:     c.cfg.SMTPPort,
			Username: c.cfg.SMTPUsername,
			Password: c.cfg.SMTPPassword,
			From:     c.cfg.SMTPFrom,
		})
	} else {
		c.logger.Warn("SMTP_HOST not set, email disabled")
	}

	if len(c.cfg.KafkaBrokers) > 0 {
		stream := kafkastream.NewStream(kafkastream.Config{
			Brokers: c.cfg.KafkaBrokers,
			Topic:   c.cfg.KafkaStatusTopic,
		})
		c.closers = append(c.closers, stream.Close)
		sinks.Stream = stream
	} else {
		c.logger.Warn("KAFKA_BROKERS not set, status stream disabled")
	}

	return sinks
}

// SeedProfiles writes every profile in PROFILE_SEED_FILE to the profile store
// and returns how many were written. Profiles are otherwise owned by the
// external identity service, so the in-process store starts empty without a
// seed.
func (c *CompositionRoot) SeedProfiles(ctx context.Context) (int, error) {
	if c.cfg.ProfileSeedFile == "" {
		return 0, nil
	}

	profiles, err := LoadProfileSeed(c.cfg.ProfileSeedFile)
	if err != nil {
		return 0, err
	}
	for _, p := range profiles {
		if err := c.saveProfile(ctx, p); err != nil {
			return 0, fmt.Errorf("seed profile %s: %w", p.ID(), err)
		}
	}
	return len(profiles), nil
}

// Dispatcher returns the side-effect dispatcher every command publishes to.
func (c *CompositionRoot) Dispatcher() *dispatcher.Dispatcher {
	return c.dispatcher
}

func (c *CompositionRoot) CreateCreateRequestCommandHandler() *commands.CreateRequestCommandHandler {
	var f commands.RequestUoWFactory = FuncRequestUoWFactory(func() commands.RequestUoW {
		return c.uowFactory.Create()
	})
	h := commands.NewCreateRequestCommandHandler(f, c.dispatcher, nil)
	return &h
}

func (c *CompositionRoot) CreateCreateDonationCommandHandler() *commands.CreateDonationCommandHandler {
	var f commands.DonationUoWFactory = FuncDonationUoWFactory(func() commands.DonationUoW {
		return c.uowFactory.Create()
	})
	h := commands.NewCreateDonationCommandHandler(f, c.dispatcher, nil)
	return &h
}

func (c *CompositionRoot) CreateProposeTransitionCommandHandler() *commands.ProposeTransitionCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	h := commands.NewProposeTransitionCommandHandler(f, c.dispatcher, nil)
	return &h
}

func (c *CompositionRoot) CreateRemindPendingRequestsCommandHandler() *commands.RemindPendingRequestsCommandHandler {
	var f commands.RequestUoWFactory = FuncRequestUoWFactory(func() commands.RequestUoW {
		return c.uowFactory.Create()
	})
	h := commands.NewRemindPendingRequestsCommandHandler(f, c.dispatcher, nil)
	return &h
}

func (c *CompositionRoot) CreateFindVolunteersQueryHandler() queries.FindVolunteersQueryHandler {
	return queries.NewFindVolunteersQueryHandler(
		c.profiles,
		services.NewVolunteerMatcher(c.cfg.MatcherFallbackToUnapproved),
	)
}

func (c *CompositionRoot) CreateGetVolunteerAssignmentsQueryHandler() queries.GetVolunteerAssignmentsQueryHandler {
	return queries.NewGetVolunteerAssignmentsQueryHandler(c.assignments)
}

func (c *CompositionRoot) CreateGetStatusHistoryQueryHandler() queries.GetStatusHistoryQueryHandler {
	return queries.NewGetStatusHistoryQueryHandler(c.statusEvents)
}

func (c *CompositionRoot) CreateGetNotificationsQueryHandler() queries.GetNotificationsQueryHandler {
	return queries.NewGetNotificationsQueryHandler(c.notifications)
}

// CreateHTTPServer wires every use case into the HTTP adapter.
func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(httpin.Handlers{
		CreateRequest:        c.CreateCreateRequestCommandHandler(),
		CreateDonation:       c.CreateCreateDonationCommandHandler(),
		Transition:           c.CreateProposeTransitionCommandHandler(),
		FindVolunteers:       c.CreateFindVolunteersQueryHandler(),
		VolunteerAssignments: c.CreateGetVolunteerAssignmentsQueryHandler(),
		StatusHistory:        c.CreateGetStatusHistoryQueryHandler(),
		Notifications:        c.CreateGetNotificationsQueryHandler(),
	}, c.logger)
}

// CreateJobManager wires the scheduled jobs.
func (c *CompositionRoot) CreateJobManager() (*jobs.JobManager, error) {
	reminder, err := jobs.NewPendingRequestReminderJob(
		c.CreateRemindPendingRequestsCommandHandler(),
		c.cfg.ReminderSchedule,
		c.cfg.ReminderAfter,
		c.logger,
	)
	if err != nil {
		return nil, err
	}
	return jobs.NewJobManager(reminder), nil
}

// Close releases the outbound clients. Call it after the dispatcher has
// drained.
func (c *CompositionRoot) Close() error {
	var errList []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		errList = append(errList, c.closers[i]())
	}
	c.closers = nil
	return errors.Join(errList...)
}

type FuncRequestUoWFactory func() commands.RequestUoW

func (f FuncRequestUoWFactory) Create() commands.RequestUoW {
	return f()
}

type FuncDonationUoWFactory func() commands.DonationUoW

func (f FuncDonationUoWFactory) Create() commands.DonationUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
