package ports

import (
	"context"

	"ecommerce/internal/core/domain/model/kernel"
	"ecommerce/internal/core/domain/model/user"
)

// UserRepository defines the persistence contract for user entities.
type UserRepository interface {
	// Add persists a new user.
	Add(ctx context.Context, entity *user.User) error

	// Get retrieves a user by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*user.User, error)

	// GetAllActiveByRole retrieves all active users with the given role,
	// ordered by username for deterministic assignment. Used by the delivery
	// assignment engine to find candidates.
	GetAllActiveByRole(ctx context.Context, role user.Role) ([]*user.User, error)
}
