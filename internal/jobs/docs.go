// Package jobs provides scheduled background tasks for the aid matching
// service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. PendingRequestReminderJob - Publishes a RequestReminder once for every
// request still pending after REMINDER_AFTER, so the volunteers of its city
// are notified again. Each pass resumes where the previous one ended; the
// first pass after a restart covers every stale request. It never changes
// request state.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	reminder, err := jobs.NewPendingRequestReminderJob(handler, cfg.ReminderSchedule, cfg.ReminderAfter, logger)
//	if err != nil {
//		return err
//	}
//	jobManager := jobs.NewJobManager(reminder)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Schedules are six-field cron expressions (seconds first). The reminder
// defaults to "0 0 * * * *", once an hour.
//
// # Error Handling
//
// - Reminder failures are logged and the same range is retried on the next tick
// - Failed job starts will stop any already running jobs
package jobs
