package commands

import (
	"errors"
	"time"

	"aidmatch/internal/pkg/errs"
	"aidmatch/internal/pkg/guard"
)

var (
	ErrRemindPendingRequestsCommandIsNotConstructed = errors.New(
		"RemindPendingRequestsCommand must be created via NewRemindPendingRequestsCommand constructor",
	)
)

// MaxReminderBatch caps how many requests one reminder run touches.
const MaxReminderBatch = 500

// RemindPendingRequestsCommand asks for reminders on requests that have been
// pending for longer than OlderThan. With a non-zero Since only requests whose
// age crossed OlderThan at or after Since are reminded, so consecutive runs
// chained through RemindPendingRequestsResult.Through remind each request once.
type RemindPendingRequestsCommand struct { //nolint:recvcheck //using for validation
	olderThan time.Duration
	since     time.Time
	limit     int

	guard guard.ConstructorGuard
}

func NewRemindPendingRequestsCommand(
	olderThan time.Duration,
	since time.Time,
	limit int,
) (RemindPendingRequestsCommand, error) {
	if olderThan <= 0 {
		return RemindPendingRequestsCommand{}, errs.NewValueIsOutOfRangeError("olderThan", olderThan, time.Nanosecond, "unbounded")
	}
	if limit < 1 || limit > MaxReminderBatch {
		return RemindPendingRequestsCommand{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxReminderBatch)
	}

	return RemindPendingRequestsCommand{
		olderThan: olderThan,
		since:     since,
		limit:     limit,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c RemindPendingRequestsCommand) Validate() error {
	return c.guard.Validate(ErrRemindPendingRequestsCommandIsNotConstructed)
}

func (c RemindPendingRequestsCommand) OlderThan() time.Duration {
	return c.olderThan
}

func (c RemindPendingRequestsCommand) Since() time.Time {
	return c.since
}

func (c RemindPendingRequestsCommand) Limit() int {
	return c.limit
}
