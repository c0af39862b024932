package dispatcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"aidmatch/internal/core/domain/model/notification"
	"aidmatch/internal/pkg/errs"

	"github.com/cenkalti/backoff/v4"
)

// notify stores the notification, then pushes and emails it. The stored
// record is the source of truth; push and email are attempted even when
// storing fails.
func (d *Dispatcher) notify(ctx context.Context, logger *slog.Logger, r recipient, msg message, at time.Time) {
	n, err := notification.New(r.id, msg.typ, msg.title, msg.body, msg.data, at)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to build notification", "recipient_id", r.id.String(), "error", err)
		return
	}
	logger = logger.With("recipient_id", r.id.String(), "notification_type", string(msg.typ))

	if d.sinks.Notifications != nil {
		if err = d.sinks.Notifications.Add(ctx, n); err != nil {
			logger.ErrorContext(ctx, "Failed to store notification", "error", err)
		}
	}

	d.push(ctx, logger, n)
	d.email(ctx, logger, r, msg)
}

func (d *Dispatcher) push(ctx context.Context, logger *slog.Logger, n notification.Notification) {
	if d.sinks.Push == nil {
		return
	}

	d.pushes.Add(1)
	go func() {
		defer d.pushes.Done()
		pushCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.cfg.PushTimeout)
		defer cancel()
		if err := d.sinks.Push.Push(pushCtx, n); err != nil {
			logger.WarnContext(pushCtx, "Push failed", "error", err)
		}
	}()
}

func (d *Dispatcher) email(ctx context.Context, logger *slog.Logger, r recipient, msg message) {
	if d.sinks.Email == nil {
		return
	}

	to := r.email
	if !r.resolved {
		p, err := d.profiles.Get(ctx, r.id)
		switch {
		case errors.Is(err, errs.ErrObjectNotFound):
			logger.DebugContext(ctx, "No profile for email recipient")
			return
		case err != nil:
			logger.ErrorContext(ctx, "Failed to load email recipient", "error", err)
			return
		}
		to = p.Email()
	}
	if to == "" {
		return
	}

	attempt := 0
	operation := func() error {
		attempt++
		err := d.sendWithTimeout(ctx, to, msg.title, msg.body)
		if err != nil {
			logger.WarnContext(ctx, "Email attempt failed", "attempt", attempt, "error", err)
		}
		return err
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(d.cfg.EmailRetryBackoff), uint64(d.cfg.EmailAttempts-1)),
		ctx,
	)
	if err := backoff.Retry(operation, policy); err != nil {
		logger.ErrorContext(ctx, "Email not delivered", "attempts", attempt, "error", err)
	}
}

// sendWithTimeout bounds one attempt even when the sender ignores its
// context.
func (d *Dispatcher) sendWithTimeout(ctx context.Context, to, subject, body string) error {
	attemptCtx, cancel := context.WithTimeout(ctx, d.cfg.EmailAttemptTimeout)
	defer cancel()

	result := make(chan error, 1)
	go func() {
		result <- d.sinks.Email.Send(attemptCtx, to, subject, body)
	}()

	select {
	case err := <-result:
		return err
	case <-attemptCtx.Done():
		return fmt.Errorf("email attempt: %w", attemptCtx.Err())
	}
}
