package events

import (
	"context"
	"log/slog"

	"ecommerce/internal/core/domain/model/kernel"
	"ecommerce/internal/core/ports"
)

// OutboxDispatcher is the dispatcher command handlers use after commit. It
// runs the router synchronously, then stamps each event's outbox row as sent
// so the relay job does not deliver it again. A failed stamp is logged only;
// the relay re-dispatching an already-handled event is the accepted cost of
// at-least-once delivery.
type OutboxDispatcher struct {
	router *Router
	outbox ports.OutboxRepository
	log    *slog.Logger
}

// NewOutboxDispatcher creates a dispatcher backed by the router and the
// outbox table.
func NewOutboxDispatcher(router *Router, outbox ports.OutboxRepository, log *slog.Logger) OutboxDispatcher {
	return OutboxDispatcher{
		router: router,
		outbox: outbox,
		log:    log.With("component", "outbox_dispatcher"),
	}
}

// Dispatch fans the events out and marks them sent.
func (d OutboxDispatcher) Dispatch(ctx context.Context, events []kernel.DomainEvent) {
	d.router.Dispatch(ctx, events)

	for _, event := range events {
		if err := d.outbox.MarkSentByEventID(ctx, event.EventID()); err != nil {
			d.log.Error("failed to mark outbox message sent",
				"event", event.EventName(),
				"event_id", event.EventID().String(),
				"error", err)
		}
	}
}
