package ports

import (
	"context"

	"ecommerce/internal/core/domain/model/delivery"
	"ecommerce/internal/core/domain/model/kernel"
)

// DeliveryRepository defines the persistence contract for delivery aggregates.
//
// The deliveries table carries a unique index on the order reference; Add
// translates a uniqueness violation into delivery.ErrDeliveryAlreadyExists so
// the one-delivery-per-order invariant holds even when two transactions race
// past an existence check.
type DeliveryRepository interface {
	// Add persists a new delivery aggregate. Returns
	// delivery.ErrDeliveryAlreadyExists when a delivery for the same order
	// is already stored.
	Add(ctx context.Context, aggregate *delivery.Delivery) error

	// Update persists changes to an existing delivery aggregate.
	Update(ctx context.Context, aggregate *delivery.Delivery) error

	// Get retrieves a delivery by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error)

	// GetByOrderID retrieves the delivery for an order, or an
	// errs.ObjectNotFoundError when the order has none yet.
	GetByOrderID(ctx context.Context, orderID kernel.UUID) (*delivery.Delivery, error)
}
