// Package events implements the synchronous event router: an explicit,
// ordered registry of effect handlers keyed by event name. Commands dispatch
// their committed domain events here; each handler runs in registration
// order, and a handler failure is logged and skipped, never propagated back
// into the command that produced the event.
package events

import (
	"context"
	"log/slog"

	"ecommerce/internal/core/domain/model/kernel"
)

// Handler is one side effect triggered by an event. Name identifies the
// handler in logs.
type Handler interface {
	Name() string
	Handle(ctx context.Context, event kernel.DomainEvent) error
}

// Router fans events out to their registered handlers.
type Router struct {
	log      *slog.Logger
	handlers map[string][]Handler
}

// NewRouter creates an empty router.
func NewRouter(log *slog.Logger) *Router {
	return &Router{
		log:      log.With("component", "event_router"),
		handlers: make(map[string][]Handler),
	}
}

// Register appends a handler to the route for eventName. Handlers run in the
// order they were registered.
func (r *Router) Register(eventName string, handler Handler) {
	r.handlers[eventName] = append(r.handlers[eventName], handler)
}

// Dispatch runs every registered handler for each event, in order. An event
// with no route is silently ignored. A failing handler does not stop later
// handlers for the same event.
func (r *Router) Dispatch(ctx context.Context, events []kernel.DomainEvent) {
	for _, event := range events {
		for _, handler := range r.handlers[event.EventName()] {
			if err := handler.Handle(ctx, event); err != nil {
				r.log.Error("event handler failed",
					"event", event.EventName(),
					"event_id", event.EventID().String(),
					"handler", handler.Name(),
					"error", err)
			}
		}
	}
}
