package ports

import (
	"context"
	"time"

	"ecommerce/internal/core/domain/model/kernel"
)

// OutboxMessage is a serialized domain event persisted in the same
// transaction as the state change that raised it. Unsent messages are
// re-dispatched by the relay job, giving at-least-once delivery of side
// effects even when the process dies between commit and dispatch.
type OutboxMessage struct {
	ID        int64
	EventID   kernel.UUID
	Name      string
	Payload   []byte
	CreatedAt time.Time
	SentAt    *time.Time
}

// OutboxRepository defines the persistence contract for the event outbox.
type OutboxRepository interface {
	// Add persists outbox messages. Called by the unit of work inside the
	// committing transaction.
	Add(ctx context.Context, messages []OutboxMessage) error

	// FetchUnsent retrieves up to limit messages that have no sent timestamp
	// and were created before cutoff, oldest first. The cutoff keeps the
	// relay from racing the synchronous post-commit dispatch.
	FetchUnsent(ctx context.Context, cutoff time.Time, limit int) ([]OutboxMessage, error)

	// MarkSent stamps a message as dispatched.
	MarkSent(ctx context.Context, id int64) error

	// MarkSentByEventID stamps the message carrying the given event as
	// dispatched. Used after the synchronous post-commit dispatch so the
	// relay does not deliver the same event a second time.
	MarkSentByEventID(ctx context.Context, eventID kernel.UUID) error
}
