package user

import (
	"fmt"

	"ecommerce/internal/pkg/errs"
)

// Role determines what a user can do in the system. Roles are assigned at
// registration and drive both HTTP-level permission checks and delivery
// assignment (only active users with RoleDelivery receive deliveries).
type Role string

const (
	// RoleAdmin can see everything and use privileged paths such as manual
	// delivery assignment.
	RoleAdmin Role = "admin"

	// RoleSupplier owns products and their stock.
	RoleSupplier Role = "supplier"

	// RoleCustomer places orders and receives order/delivery notifications.
	RoleCustomer Role = "customer"

	// RoleDelivery fulfills deliveries assigned to them.
	RoleDelivery Role = "delivery"
)

func validRoles() map[Role]struct{} {
	return map[Role]struct{}{
		RoleAdmin:    {},
		RoleSupplier: {},
		RoleCustomer: {},
		RoleDelivery: {},
	}
}

// RoleFromString parses and validates a role name.
func RoleFromString(s string) (Role, error) {
	role := Role(s)
	if err := role.Validate(); err != nil {
		return "", err
	}
	return role, nil
}

// Validate checks that the role is one of the defined values.
func (r Role) Validate() error {
	if _, ok := validRoles()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("role",
			fmt.Errorf("%q is not a valid role", string(r)))
	}
	return nil
}

// String returns the role name as persisted and exposed over HTTP.
func (r Role) String() string {
	return string(r)
}
