package kernel

// DomainEvent is raised by an aggregate when something business-relevant
// happened to it. Events are collected by the unit of work during a
// transaction, written to the outbox table on commit, and fanned out to their
// effect handlers by the event router after the commit succeeds.
//
// Events exist only for actual transitions: saving an aggregate whose state
// did not change produces no events, which is what keeps side effects from
// firing twice for the same transition.
type DomainEvent interface {
	// EventID uniquely identifies this occurrence of the event.
	EventID() UUID

	// EventName returns the routing key, e.g. "order.created".
	EventName() string
}
