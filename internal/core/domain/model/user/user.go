// Package user contains the User entity shared by every role in the system:
// customers placing orders, suppliers owning products, delivery personnel
// fulfilling orders, and admins.
package user

import (
	"errors"

	"ecommerce/internal/core/domain/model/kernel"
	"ecommerce/internal/pkg/errs"
)

// ErrUserIsNotConstructed is returned when a User instance was not created
// through the NewUser or RestoreUser factory functions.
var ErrUserIsNotConstructed = errors.New("User must be created via NewUser constructor")

// User represents an account in the system. Authentication and token issuance
// live outside this service; the entity carries only what the fulfillment
// core needs: identity, contact address for emails, a role, and an active
// flag that gates delivery assignment.
type User struct {
	id       kernel.UUID
	username string
	email    string
	role     Role
	isActive bool

	isConstructed bool
}

// NewUser creates an active user with the given role.
func NewUser(id kernel.UUID, username, email string, role Role) (*User, error) {
	u := &User{
		isActive:      true,
		isConstructed: true,
	}

	if err := errors.Join(
		u.setID(id),
		u.setUsername(username),
		u.setEmail(email),
		u.setRole(role),
	); err != nil {
		return nil, err
	}

	return u, nil
}

// RestoreUser reconstructs a user from persistence, including its active flag.
func RestoreUser(id kernel.UUID, username, email string, role Role, isActive bool) (*User, error) {
	u, err := NewUser(id, username, email, role)
	if err != nil {
		return nil, err
	}

	u.isActive = isActive
	return u, nil
}

// Validate ensures the user was created through a factory function.
func (u *User) Validate() error {
	if u == nil || !u.isConstructed {
		return ErrUserIsNotConstructed
	}
	return nil
}

// ID returns the user's unique identifier.
func (u *User) ID() kernel.UUID {
	return u.id
}

// Username returns the display name used in notification and email texts.
func (u *User) Username() string {
	return u.username
}

// Email returns the address outbound emails are sent to.
func (u *User) Email() string {
	return u.email
}

// Role returns the user's role.
func (u *User) Role() Role {
	return u.role
}

// IsActive reports whether the account is active. Inactive delivery personnel
// are never picked for assignment.
func (u *User) IsActive() bool {
	return u.isActive
}

// Deactivate disables the account.
func (u *User) Deactivate() {
	u.isActive = false
}

func (u *User) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	u.id = id
	return nil
}

func (u *User) setUsername(username string) error {
	if username == "" {
		return errs.NewValueIsRequiredError("username")
	}
	u.username = username
	return nil
}

func (u *User) setEmail(email string) error {
	if email == "" {
		return errs.NewValueIsRequiredError("email")
	}
	u.email = email
	return nil
}

func (u *User) setRole(role Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	u.role = role
	return nil
}
