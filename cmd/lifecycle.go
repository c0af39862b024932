package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
)

// DefaultShutdownTimeout bounds how long in-flight HTTP requests may take to
// finish once shutdown begins.
const DefaultShutdownTimeout = 15 * time.Second

// HTTPServer is the part of *echo.Echo the lifecycle drives.
type HTTPServer interface {
	Start(address string) error
	Shutdown(ctx context.Context) error
}

// EventRunner is the part of *dispatcher.Dispatcher the lifecycle drives.
type EventRunner interface {
	Run(ctx context.Context) error
}

// Scheduler is the part of *jobs.JobManager the lifecycle drives.
type Scheduler interface {
	StartAll() error
	StopAll()
}

// Lifecycle runs the service components and stops them in dependency order:
// the HTTP server and the jobs first, the event dispatcher last. Handlers
// still running during shutdown publish into a live dispatcher, and its drain
// covers their events.
type Lifecycle struct {
	Addr            string
	ShutdownTimeout time.Duration

	Server     HTTPServer
	Jobs       Scheduler
	Dispatcher EventRunner
	Logger     *slog.Logger
}

// Run blocks until ctx is cancelled or a component fails, then shuts down.
func (l Lifecycle) Run(ctx context.Context) error {
	timeout := l.ShutdownTimeout
	if timeout <= 0 {
		timeout = DefaultShutdownTimeout
	}

	dispatchCtx, stopDispatch := context.WithCancel(context.WithoutCancel(ctx))
	defer stopDispatch()

	var dispatchErr error
	dispatchDone := make(chan struct{})
	go func() {
		defer close(dispatchDone)
		dispatchErr = l.Dispatcher.Run(dispatchCtx)
	}()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		select {
		case <-dispatchDone:
			if dispatchErr != nil {
				return fmt.Errorf("event dispatcher: %w", dispatchErr)
			}
			return errors.New("event dispatcher stopped before shutdown")
		case <-gctx.Done():
			return nil
		}
	})

	g.Go(func() error {
		l.Logger.InfoContext(gctx, "HTTP server listening", "addr", l.Addr)
		if err := l.Server.Start(l.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		if err := l.Jobs.StartAll(); err != nil {
			return err
		}
		<-gctx.Done()
		l.Jobs.StopAll()
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), timeout)
		defer cancel()
		return l.Server.Shutdown(shutdownCtx)
	})

	err := g.Wait()

	stopDispatch()
	<-dispatchDone
	l.Logger.InfoContext(ctx, "Event dispatcher drained")

	if err != nil {
		return err
	}
	return dispatchErr
}
