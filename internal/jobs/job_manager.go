package jobs

import (
	"fmt"
	"log/slog"

	"ecommerce/internal/core/application/events"
	"ecommerce/internal/core/ports"
)

// JobManager coordinates the application's scheduled jobs.
type JobManager struct {
	outboxRelayJob *OutboxRelayJob
}

// NewJobManager creates a manager with all background jobs wired.
func NewJobManager(outbox ports.OutboxRepository, router *events.Router, logger *slog.Logger) *JobManager {
	return &JobManager{
		outboxRelayJob: NewOutboxRelayJob(outbox, router, logger),
	}
}

// StartAll starts every scheduled job.
func (jm *JobManager) StartAll() error {
	if err := jm.outboxRelayJob.Start(); err != nil {
		return fmt.Errorf("failed to start outbox relay job: %w", err)
	}
	return nil
}

// StopAll stops every scheduled job.
func (jm *JobManager) StopAll() {
	jm.outboxRelayJob.Stop()
}
