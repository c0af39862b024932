package dispatcher

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"aidmatch/internal/core/application/usecases/queries"
	"aidmatch/internal/core/domain/model/audit"
	"aidmatch/internal/core/domain/model/event"
	"aidmatch/internal/core/ports"
)

// VolunteerFinder resolves the volunteers of a city.
type VolunteerFinder interface {
	Handle(ctx context.Context, query queries.FindVolunteersQuery) ([]queries.FindVolunteersQueryResponse, error)
}

// Config controls queueing and delivery.
type Config struct {
	Workers             int
	QueueSize           int
	EmailAttempts       int
	EmailRetryBackoff   time.Duration
	EmailAttemptTimeout time.Duration
	PushTimeout         time.Duration
	DrainTimeout        time.Duration
}

func (c Config) withDefaults() Config {
	if c.Workers < 1 {
		c.Workers = 4
	}
	if c.QueueSize < 1 {
		c.QueueSize = 256
	}
	if c.EmailAttempts < 1 {
		c.EmailAttempts = 2
	}
	if c.EmailRetryBackoff <= 0 {
		c.EmailRetryBackoff = 2 * time.Second
	}
	if c.EmailAttemptTimeout <= 0 {
		c.EmailAttemptTimeout = 10 * time.Second
	}
	if c.PushTimeout <= 0 {
		c.PushTimeout = 5 * time.Second
	}
	if c.DrainTimeout <= 0 {
		c.DrainTimeout = 30 * time.Second
	}
	return c
}

// Sinks are the outbound channels. Push, Email and Stream may be nil, in
// which case that channel is skipped.
type Sinks struct {
	Notifications ports.NotificationRepository
	StatusEvents  ports.StatusEventRepository
	Push          ports.PushSender
	Email         ports.EmailSender
	Stream        ports.EventStream
}

// Dispatcher implements ports.EventPublisher.
type Dispatcher struct {
	cfg      Config
	finder   VolunteerFinder
	profiles ports.ProfileRepository
	sinks    Sinks
	logger   *slog.Logger

	queue    chan event.Event
	done     chan struct{}
	stopOnce sync.Once
	handoffs sync.WaitGroup
	pushes   sync.WaitGroup
}

// New creates a dispatcher. Call Run to start consuming.
func New(
	cfg Config,
	finder VolunteerFinder,
	profiles ports.ProfileRepository,
	sinks Sinks,
	logger *slog.Logger,
) *Dispatcher {
	cfg = cfg.withDefaults()
	return &Dispatcher{
		cfg:      cfg,
		finder:   finder,
		profiles: profiles,
		sinks:    sinks,
		logger:   logger.With("component", "dispatcher"),
		queue:    make(chan event.Event, cfg.QueueSize),
		done:     make(chan struct{}),
	}
}

// Publish enqueues committed events. When the queue is full the event is
// handed to a goroutine that waits for room, so the caller never blocks.
// Events published after shutdown are dropped with a warning.
func (d *Dispatcher) Publish(ctx context.Context, events ...event.Event) {
	for _, ev := range events {
		if ev == nil {
			continue
		}
		select {
		case <-d.done:
			d.logger.WarnContext(ctx, "Dispatcher stopped, dropping event", "event", describe(ev))
			continue
		default:
		}

		select {
		case d.queue <- ev:
		default:
			d.handoffs.Add(1)
			go func() {
				defer d.handoffs.Done()
				select {
				case d.queue <- ev:
				case <-d.done:
					d.logger.Warn("Dispatcher stopped before queueing event", "event", describe(ev))
				}
			}()
		}
	}
}

// Run starts the workers and blocks until ctx ends. Events already queued
// are then processed within the drain timeout.
func (d *Dispatcher) Run(ctx context.Context) error {
	var workers sync.WaitGroup
	for range d.cfg.Workers {
		workers.Add(1)
		go func() {
			defer workers.Done()
			d.work(ctx)
		}()
	}
	d.logger.InfoContext(ctx, "Dispatcher started", "workers", d.cfg.Workers, "queue_size", d.cfg.QueueSize)

	<-ctx.Done()
	workers.Wait()

	drainCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.cfg.DrainTimeout)
	defer cancel()
	d.drain(drainCtx)
	d.stop()
	d.drain(drainCtx)
	d.pushes.Wait()

	d.logger.InfoContext(drainCtx, "Dispatcher stopped")
	if errors.Is(ctx.Err(), context.Canceled) {
		return nil
	}
	return ctx.Err()
}

func (d *Dispatcher) stop() {
	d.stopOnce.Do(func() { close(d.done) })
	d.handoffs.Wait()
}

func (d *Dispatcher) work(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-d.queue:
			d.OnCommitted(context.WithoutCancel(ctx), ev)
		}
	}
}

func (d *Dispatcher) drain(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			d.logger.WarnContext(ctx, "Drain timed out", "remaining", len(d.queue))
			return
		}
		select {
		case ev := <-d.queue:
			d.OnCommitted(ctx, ev)
		default:
			return
		}
	}
}

// OnCommitted runs every side effect of one event. It never fails; errors
// are logged.
func (d *Dispatcher) OnCommitted(ctx context.Context, ev event.Event) {
	logger := d.logger.With("event", describe(ev), "entity_id", ev.Header().EntityID.String())

	d.audit(ctx, logger, ev)

	recipients, err := d.recipients(ctx, ev)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to resolve recipients", "error", err)
		return
	}
	msg := compose(ev)
	for _, r := range recipients {
		d.notify(ctx, logger, r, msg, ev.Header().OccurredAt)
	}
}

// audit appends the status event and publishes it to the stream. A
// duplicate append means the transition was already dispatched, so the
// stream is skipped too.
func (d *Dispatcher) audit(ctx context.Context, logger *slog.Logger, ev event.Event) {
	if !ev.Header().IsTransition() {
		return
	}
	entry := audit.FromEvent(ev, auditExtra(ev))

	duplicate := false
	if d.sinks.StatusEvents != nil {
		inserted, err := d.sinks.StatusEvents.Append(ctx, entry)
		switch {
		case err != nil:
			logger.ErrorContext(ctx, "Failed to append status event", "error", err)
		case !inserted:
			duplicate = true
			logger.DebugContext(ctx, "Status event already recorded", "key", entry.Key().String())
		}
	}

	if d.sinks.Stream != nil && !duplicate {
		if err := d.sinks.Stream.Publish(ctx, entry); err != nil {
			logger.ErrorContext(ctx, "Failed to publish status event", "error", err)
		}
	}
}
