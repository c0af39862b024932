package jobs

import (
	"fmt"
)

// Job is a scheduled background task.
type Job interface {
	Start() error
	Stop()
}

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	jobs    []namedJob
	started []Job
}

type namedJob struct {
	name string
	job  Job
}

// NewJobManager creates a job manager for the reminder job.
func NewJobManager(reminder *PendingRequestReminderJob) *JobManager {
	jm := &JobManager{}
	jm.Register("pending request reminder", reminder)
	return jm
}

// Register adds a job to be started by StartAll.
func (jm *JobManager) Register(name string, job Job) {
	jm.jobs = append(jm.jobs, namedJob{name: name, job: job})
}

// StartAll starts all scheduled jobs in registration order.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	for _, nj := range jm.jobs {
		if err := nj.job.Start(); err != nil {
			// Stop already started jobs if this one fails
			jm.StopAll()
			return fmt.Errorf("failed to start %s job: %w", nj.name, err)
		}
		jm.started = append(jm.started, nj.job)
	}

	return nil
}

// StopAll stops the started jobs in reverse order.
func (jm *JobManager) StopAll() {
	for i := len(jm.started) - 1; i >= 0; i-- {
		jm.started[i].Stop()
	}
	jm.started = nil
}
