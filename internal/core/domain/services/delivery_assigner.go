package services

import (
	"errors"
	"fmt"
	"time"

	"ecommerce/internal/core/domain/model/delivery"
	"ecommerce/internal/core/domain/model/kernel"
	"ecommerce/internal/core/domain/model/order"
	"ecommerce/internal/core/domain/model/user"
	"ecommerce/internal/pkg/errs"
)

var (
	// ErrNoDeliveryPersonAvailable is returned when no active user with the
	// delivery role exists to take the order.
	ErrNoDeliveryPersonAvailable = errors.New("no delivery person available")

	// ErrOrderNotConfirmed is returned when assignment is attempted for an
	// order outside confirmed status.
	ErrOrderNotConfirmed = errors.New("order is not confirmed")
)

// DeliveryAssigner is the domain service that creates a Delivery for a
// confirmed order.
//
// Candidate selection is intentionally the simplest possible policy: the
// first active delivery-role candidate wins. There is no load balancing
// across delivery personnel; all selection logic is isolated in pickCandidate
// so a smarter policy can replace it without touching callers.
type DeliveryAssigner struct{}

// NewDeliveryAssigner creates a new DeliveryAssigner instance.
func NewDeliveryAssigner() DeliveryAssigner {
	return DeliveryAssigner{}
}

// Assign creates a Delivery for the order, assigned to the first suitable
// candidate.
//
// Returns ErrOrderNotConfirmed when the order is not in confirmed status and
// ErrNoDeliveryPersonAvailable when no candidate is an active delivery-role
// user. The caller decides whether either case is an error or a silent no-op.
func (a DeliveryAssigner) Assign(o *order.Order, candidates []*user.User, now time.Time) (*delivery.Delivery, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}

	if o.Status() != order.StatusConfirmed {
		return nil, fmt.Errorf("%w: order %s is %s", ErrOrderNotConfirmed, o.ID(), o.Status())
	}

	person, err := a.pickCandidate(candidates)
	if err != nil {
		return nil, err
	}

	return delivery.NewDelivery(kernel.NewUUID(), o.ID(), person.ID(), now)
}

// pickCandidate returns the first active delivery-role user.
func (a DeliveryAssigner) pickCandidate(candidates []*user.User) (*user.User, error) {
	for _, candidate := range candidates {
		if err := candidate.Validate(); err != nil {
			return nil, err
		}

		if candidate.Role() != user.RoleDelivery {
			return nil, errs.NewValueIsInvalidErrorWithCause("candidate",
				fmt.Errorf("user %s has role %s, not %s", candidate.ID(), candidate.Role(), user.RoleDelivery))
		}

		if candidate.IsActive() {
			return candidate, nil
		}
	}

	return nil, ErrNoDeliveryPersonAvailable
}
