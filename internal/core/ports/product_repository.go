// Package ports defines the persistence and outbound contracts between the
// application core and its adapters, enabling dependency inversion and
// testability.
package ports

import (
	"context"

	"ecommerce/internal/core/domain/model/kernel"
	"ecommerce/internal/core/domain/model/product"
)

// ProductRepository defines the persistence contract for product aggregates.
// Stock mutations go through the aggregate; the repository only loads and
// saves it.
type ProductRepository interface {
	// Add persists a new product aggregate.
	Add(ctx context.Context, aggregate *product.Product) error

	// Update persists changes to an existing product aggregate.
	Update(ctx context.Context, aggregate *product.Product) error

	// Get retrieves a product by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*product.Product, error)

	// GetForUpdate retrieves a product with a row-level lock, so stock
	// reservations racing on the same product serialize inside the
	// transaction. Must be called within an active unit of work.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*product.Product, error)
}
