// Package queries contains read-side operations in the CQRS architecture.
// Query handlers bypass the domain model and read directly from the database
// with raw SQL, returning flat response models shaped for the transport layer.
package queries

import (
	"errors"
	"time"

	"ecommerce/internal/core/domain/model/kernel"
	"ecommerce/internal/core/domain/model/user"
	"ecommerce/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetOrdersQueryIsNotConstructed = errors.New(
	"GetOrdersQuery must be created via NewGetOrdersQuery constructor",
)

// GetOrdersQuery retrieves orders visible to the requesting user: admins see
// every order, customers only their own.
type GetOrdersQuery struct { //nolint:recvcheck //using for validation
	userID kernel.UUID
	role   user.Role

	guard guard.ConstructorGuard
}

// NewGetOrdersQuery creates a query scoped to the given user and role.
func NewGetOrdersQuery(userID kernel.UUID, role user.Role) (GetOrdersQuery, error) {
	q := GetOrdersQuery{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		q.setUserID(userID),
		q.setRole(role),
	); err != nil {
		return GetOrdersQuery{}, err
	}

	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersQueryIsNotConstructed)
}

// UserID returns the requesting user.
func (q GetOrdersQuery) UserID() kernel.UUID {
	return q.userID
}

// Role returns the requesting user's role.
func (q GetOrdersQuery) Role() user.Role {
	return q.role
}

func (q *GetOrdersQuery) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}
	q.userID = userID
	return nil
}

func (q *GetOrdersQuery) setRole(role user.Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	q.role = role
	return nil
}

// GetOrdersQueryItemResponse is one line of an order read model.
type GetOrdersQueryItemResponse struct {
	ID        kernel.UUID
	ProductID kernel.UUID
	Quantity  int
	Price     decimal.Decimal
}

// GetOrdersQueryResponse is the order read model returned to the transport
// layer.
type GetOrdersQueryResponse struct {
	ID         kernel.UUID
	CustomerID kernel.UUID
	Status     string
	TotalPrice decimal.Decimal
	CreatedAt  time.Time
	Items      []GetOrdersQueryItemResponse
}
