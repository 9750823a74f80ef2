// Package notification contains the in-app Notification entity created by the
// dispatcher on lifecycle events. Notifications belong to exactly one user and
// are only ever read or marked read by that user.
package notification

import (
	"errors"
	"fmt"
	"time"

	"ecommerce/internal/core/domain/model/kernel"
	"ecommerce/internal/pkg/errs"
)

// ErrNotificationIsNotConstructed is returned when a Notification instance was
// not created through the NewNotification or RestoreNotification factory
// functions.
var ErrNotificationIsNotConstructed = errors.New(
	"Notification must be created via NewNotification constructor")

// Kind is a free-form tag classifying a notification.
type Kind string

const (
	KindOrder    Kind = "order"
	KindDelivery Kind = "delivery"
	KindGeneral  Kind = "general"
)

func validKinds() map[Kind]struct{} {
	return map[Kind]struct{}{
		KindOrder:    {},
		KindDelivery: {},
		KindGeneral:  {},
	}
}

// Validate checks that the kind is one of the defined tags.
func (k Kind) Validate() error {
	if _, ok := validKinds()[k]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("kind",
			fmt.Errorf("%q is not a valid notification kind", string(k)))
	}
	return nil
}

// String returns the kind tag as persisted.
func (k Kind) String() string {
	return string(k)
}

// Notification is an in-app message for one user.
type Notification struct {
	id        kernel.UUID
	userID    kernel.UUID
	message   string
	kind      Kind
	isRead    bool
	createdAt time.Time

	isConstructed bool
}

// NewNotification creates an unread notification.
func NewNotification(id, userID kernel.UUID, message string, kind Kind, createdAt time.Time) (*Notification, error) {
	n := &Notification{
		createdAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		n.setID(id),
		n.setUserID(userID),
		n.setMessage(message),
		n.setKind(kind),
	); err != nil {
		return nil, err
	}

	return n, nil
}

// RestoreNotification reconstructs a notification from persistence.
func RestoreNotification(id, userID kernel.UUID, message string, kind Kind, isRead bool, createdAt time.Time) (*Notification, error) {
	n, err := NewNotification(id, userID, message, kind, createdAt)
	if err != nil {
		return nil, err
	}

	n.isRead = isRead
	return n, nil
}

// Validate ensures the notification was created through a factory function.
func (n *Notification) Validate() error {
	if n == nil || !n.isConstructed {
		return ErrNotificationIsNotConstructed
	}
	return nil
}

// ID returns the notification's unique identifier.
func (n *Notification) ID() kernel.UUID {
	return n.id
}

// UserID returns the owning user.
func (n *Notification) UserID() kernel.UUID {
	return n.userID
}

// Message returns the notification text.
func (n *Notification) Message() string {
	return n.message
}

// Kind returns the classification tag.
func (n *Notification) Kind() Kind {
	return n.kind
}

// IsRead reports whether the owning user marked the notification read.
func (n *Notification) IsRead() bool {
	return n.isRead
}

// CreatedAt returns the creation timestamp.
func (n *Notification) CreatedAt() time.Time {
	return n.createdAt
}

// MarkRead marks the notification as read. Idempotent.
func (n *Notification) MarkRead() {
	n.isRead = true
}

func (n *Notification) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	n.id = id
	return nil
}

func (n *Notification) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}
	n.userID = userID
	return nil
}

func (n *Notification) setMessage(message string) error {
	if message == "" {
		return errs.NewValueIsRequiredError("message")
	}
	n.message = message
	return nil
}

func (n *Notification) setKind(kind Kind) error {
	if err := kind.Validate(); err != nil {
		return err
	}
	n.kind = kind
	return nil
}
