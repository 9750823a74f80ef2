package order

import (
	"fmt"

	"ecommerce/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// State transitions are strictly forward-only:
//
//	pending ──> confirmed ──> shipped ──> delivered
//	   │            │
//	   └────────────┴──> cancelled
//
// Backward and skipped moves are rejected. Saving an order with its current
// status is a no-op, not a transition.
type Status string

const (
	// StatusPending is the initial status of every new order.
	StatusPending Status = "pending"

	// StatusConfirmed means the order was accepted; confirmation triggers
	// delivery assignment.
	StatusConfirmed Status = "confirmed"

	// StatusShipped means the order left the warehouse.
	StatusShipped Status = "shipped"

	// StatusDelivered is a final status: the customer received the order.
	StatusDelivered Status = "delivered"

	// StatusCancelled is a final status reachable from pending or confirmed.
	StatusCancelled Status = "cancelled"
)

func validTransitions() map[Status][]Status {
	return map[Status][]Status{
		StatusPending:   {StatusConfirmed, StatusCancelled},
		StatusConfirmed: {StatusShipped, StatusCancelled},
		StatusShipped:   {StatusDelivered},
		StatusDelivered: {},
		StatusCancelled: {},
	}
}

// StatusFromString parses and validates a status name.
func StatusFromString(s string) (Status, error) {
	status := Status(s)
	if err := status.Validate(); err != nil {
		return "", err
	}
	return status, nil
}

// Validate checks that the status is one of the defined values.
func (s Status) Validate() error {
	if _, ok := validTransitions()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%q is not a valid order status", string(s)))
	}
	return nil
}

// String returns the status name as persisted and exposed over HTTP.
func (s Status) String() string {
	return string(s)
}

// CanTransitionTo reports whether next is a legal forward transition from s.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range validTransitions()[s] {
		if next == allowed {
			return true
		}
	}
	return false
}
