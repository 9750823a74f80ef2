package queries

import (
	"errors"
	"time"

	"ecommerce/internal/core/domain/model/kernel"
	"ecommerce/internal/pkg/guard"
)

var ErrGetNotificationsQueryIsNotConstructed = errors.New(
	"GetNotificationsQuery must be created via NewGetNotificationsQuery constructor",
)

// GetNotificationsQuery retrieves the requesting user's notifications, newest
// first. Notifications are strictly private: there is no admin override.
type GetNotificationsQuery struct { //nolint:recvcheck //using for validation
	userID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetNotificationsQuery creates a query for the given user's notifications.
func NewGetNotificationsQuery(userID kernel.UUID) (GetNotificationsQuery, error) {
	q := GetNotificationsQuery{guard: guard.NewConstructorGuard()}

	if err := q.setUserID(userID); err != nil {
		return GetNotificationsQuery{}, err
	}

	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q GetNotificationsQuery) Validate() error {
	return q.guard.Validate(ErrGetNotificationsQueryIsNotConstructed)
}

// UserID returns the requesting user.
func (q GetNotificationsQuery) UserID() kernel.UUID {
	return q.userID
}

func (q *GetNotificationsQuery) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}
	q.userID = userID
	return nil
}

// GetNotificationsQueryResponse is the notification read model returned to
// the transport layer.
type GetNotificationsQueryResponse struct {
	ID        kernel.UUID
	Message   string
	Kind      string
	IsRead    bool
	CreatedAt time.Time
}
