// Package dispatch contains the notification dispatcher: the small service
// that persists in-app notifications on behalf of event handlers. Each
// notification is written in its own short transaction so a failed side
// effect never touches the state change that triggered it.
package dispatch

import (
	"context"
	"time"

	"ecommerce/internal/core/application/usecases/commands"
	"ecommerce/internal/core/domain/model/kernel"
	"ecommerce/internal/core/domain/model/notification"
)

// Dispatcher persists notifications through the notification unit of work.
type Dispatcher struct {
	uowFactory commands.NotificationUoWFactory
}

// NewDispatcher creates a notification dispatcher.
func NewDispatcher(uowFactory commands.NotificationUoWFactory) Dispatcher {
	return Dispatcher{uowFactory: uowFactory}
}

// Notify stores an unread notification for the user.
func (d Dispatcher) Notify(ctx context.Context, userID kernel.UUID, message string, kind notification.Kind) error {
	entity, err := notification.NewNotification(kernel.NewUUID(), userID, message, kind, time.Now())
	if err != nil {
		return err
	}

	uow := d.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.NotificationRepository().Add(ctx, entity); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
