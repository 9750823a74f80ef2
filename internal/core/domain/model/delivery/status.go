package delivery

import (
	"fmt"

	"ecommerce/internal/pkg/errs"
)

// Status represents the lifecycle state of a delivery.
//
// State transitions are strictly forward-only:
//
//	assigned ──> picked ──> in_transit ──> delivered
type Status string

const (
	// StatusAssigned is the initial status: a delivery person was picked.
	StatusAssigned Status = "assigned"

	// StatusPicked means the delivery person collected the package.
	StatusPicked Status = "picked"

	// StatusInTransit means the package is on its way.
	StatusInTransit Status = "in_transit"

	// StatusDelivered is the final status; entering it stamps delivered_at.
	StatusDelivered Status = "delivered"
)

func validTransitions() map[Status][]Status {
	return map[Status][]Status{
		StatusAssigned:  {StatusPicked},
		StatusPicked:    {StatusInTransit},
		StatusInTransit: {StatusDelivered},
		StatusDelivered: {},
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
			fmt.Errorf("%q is not a valid delivery status", string(s)))
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
