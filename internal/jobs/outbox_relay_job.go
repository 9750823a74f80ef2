// Package jobs provides scheduled background tasks.
//
// The outbox relay re-dispatches domain events whose outbox rows were
// committed but never marked sent. That happens when the process dies between
// a transaction commit and the synchronous post-commit dispatch. The relay
// only picks up rows older than a grace period, so it never races the
// synchronous path, and delivery of side effects stays at-least-once.
package jobs

import (
	"context"
	"log/slog"
	"time"

	"ecommerce/internal/core/application/events"
	"ecommerce/internal/core/domain/model/kernel"
	"ecommerce/internal/core/ports"

	"github.com/robfig/cron/v3"
)

const (
	// relaySchedule runs the relay twice a minute.
	relaySchedule = "*/30 * * * * *"

	// relayGracePeriod is how old an unsent row must be before the relay
	// touches it. Younger rows are still owned by the synchronous dispatch.
	relayGracePeriod = time.Minute

	// relayBatchSize bounds one relay pass.
	relayBatchSize = 100
)

// OutboxRelayJob periodically drains unsent outbox rows through the event
// router.
type OutboxRelayJob struct {
	outbox ports.OutboxRepository
	router *events.Router
	cron   *cron.Cron
	logger *slog.Logger
}

// NewOutboxRelayJob creates the relay over the given outbox and router.
func NewOutboxRelayJob(outbox ports.OutboxRepository, router *events.Router, logger *slog.Logger) *OutboxRelayJob {
	return &OutboxRelayJob{
		outbox: outbox,
		router: router,
		cron:   cron.New(cron.WithSeconds()),
		logger: logger.With("component", "outbox_relay_job"),
	}
}

// Start schedules the relay.
func (j *OutboxRelayJob) Start() error {
	_, err := j.cron.AddFunc(relaySchedule, func() {
		ctx := context.Background()
		if err := j.relayOnce(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Outbox relay pass failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Outbox relay job started")
	return nil
}

// Stop stops the relay.
func (j *OutboxRelayJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Outbox relay job stopped")
}

func (j *OutboxRelayJob) relayOnce(ctx context.Context) error {
	cutoff := time.Now().Add(-relayGracePeriod)
	messages, err := j.outbox.FetchUnsent(ctx, cutoff, relayBatchSize)
	if err != nil {
		return err
	}

	for _, message := range messages {
		event, decodeErr := events.Decode(message.Name, message.Payload)
		if decodeErr != nil {
			// A row the codec cannot read would be retried forever. Stamp it
			// sent and keep the failure visible in the log.
			j.logger.ErrorContext(ctx, "Dropping undecodable outbox message",
				"id", message.ID,
				"event", message.Name,
				"error", decodeErr)
			if markErr := j.outbox.MarkSent(ctx, message.ID); markErr != nil {
				return markErr
			}
			continue
		}

		j.router.Dispatch(ctx, []kernel.DomainEvent{event})

		if markErr := j.outbox.MarkSent(ctx, message.ID); markErr != nil {
			return markErr
		}

		j.logger.InfoContext(ctx, "Relayed outbox message",
			"id", message.ID,
			"event", message.Name,
			"event_id", message.EventID.String())
	}

	return nil
}
