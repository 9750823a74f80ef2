package queries

import (
	"errors"
	"time"

	"ecommerce/internal/core/domain/model/kernel"
	"ecommerce/internal/core/domain/model/user"
	"ecommerce/internal/pkg/guard"
)

var ErrGetDeliveriesQueryIsNotConstructed = errors.New(
	"GetDeliveriesQuery must be created via NewGetDeliveriesQuery constructor",
)

// GetDeliveriesQuery retrieves deliveries visible to the requesting user:
// admins see every delivery, delivery personnel only their own assignments.
type GetDeliveriesQuery struct { //nolint:recvcheck //using for validation
	userID kernel.UUID
	role   user.Role

	guard guard.ConstructorGuard
}

// NewGetDeliveriesQuery creates a query scoped to the given user and role.
func NewGetDeliveriesQuery(userID kernel.UUID, role user.Role) (GetDeliveriesQuery, error) {
	q := GetDeliveriesQuery{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		q.setUserID(userID),
		q.setRole(role),
	); err != nil {
		return GetDeliveriesQuery{}, err
	}

	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q GetDeliveriesQuery) Validate() error {
	return q.guard.Validate(ErrGetDeliveriesQueryIsNotConstructed)
}

// UserID returns the requesting user.
func (q GetDeliveriesQuery) UserID() kernel.UUID {
	return q.userID
}

// Role returns the requesting user's role.
func (q GetDeliveriesQuery) Role() user.Role {
	return q.role
}

func (q *GetDeliveriesQuery) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}
	q.userID = userID
	return nil
}

func (q *GetDeliveriesQuery) setRole(role user.Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	q.role = role
	return nil
}

// GetDeliveriesQueryResponse is the delivery read model returned to the
// transport layer.
type GetDeliveriesQueryResponse struct {
	ID               kernel.UUID
	OrderID          kernel.UUID
	DeliveryPersonID kernel.UUID
	Status           string
	AssignedAt       time.Time
	DeliveredAt      *time.Time
}
