package jobs

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"aidmatch/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultReminderSchedule runs the reminder at the top of every hour.
const DefaultReminderSchedule = "0 0 * * * *"

// ReminderHandler is the part of RemindPendingRequestsCommandHandler the job uses.
type ReminderHandler interface {
	Handle(
		ctx context.Context,
		cmd commands.RemindPendingRequestsCommand,
	) (commands.RemindPendingRequestsResult, error)
}

// PendingRequestReminderJob re-announces requests nobody has picked up yet.
// Each pending request is reminded once, on the first pass after it has
// waited longer than after. The first pass after start covers every stale
// request.
type PendingRequestReminderJob struct {
	handler  ReminderHandler
	schedule string
	after    time.Duration
	cron     *cron.Cron
	logger   *slog.Logger

	mu    sync.Mutex
	since time.Time
}

// NewPendingRequestReminderJob creates the job. schedule is a six-field cron
// expression; at most MaxReminderBatch requests are reminded per run.
func NewPendingRequestReminderJob(
	handler ReminderHandler,
	schedule string,
	after time.Duration,
	logger *slog.Logger,
) (*PendingRequestReminderJob, error) {
	if _, err := commands.NewRemindPendingRequestsCommand(after, time.Time{}, commands.MaxReminderBatch); err != nil {
		return nil, err
	}
	if schedule == "" {
		schedule = DefaultReminderSchedule
	}

	return &PendingRequestReminderJob{
		handler:  handler,
		schedule: schedule,
		after:    after,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "pending_request_reminder_job"),
	}, nil
}

// Start registers the schedule and starts the cron runner.
func (j *PendingRequestReminderJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.Run); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Pending request reminder job started",
		"schedule", j.schedule, "after", j.after)
	return nil
}

// Run performs one reminder pass. Start calls it on every tick.
func (j *PendingRequestReminderJob) Run() {
	ctx := context.Background()
	j.mu.Lock()
	defer j.mu.Unlock()

	cmd, err := commands.NewRemindPendingRequestsCommand(j.after, j.since, commands.MaxReminderBatch)
	if err != nil {
		j.logger.ErrorContext(ctx, "Pending request reminder job failed", "error", err)
		return
	}

	result, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Pending request reminder job failed", "error", err)
		return
	}
	j.since = result.Through
	if result.Sent > 0 {
		j.logger.InfoContext(ctx, "Reminded volunteers about pending requests", "count", result.Sent)
	}
}

// Stop stops the cron runner and waits for a running pass to finish.
func (j *PendingRequestReminderJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Pending request reminder job stopped")
}
