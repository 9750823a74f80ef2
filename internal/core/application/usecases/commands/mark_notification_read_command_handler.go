package commands

import (
	"context"

	"ecommerce/internal/core/domain/model/notification"
	"ecommerce/internal/pkg/errs"
)

// MarkNotificationReadCommandHandler marks a notification as read on behalf
// of its owner. Marking an already-read notification is a harmless no-op.
type MarkNotificationReadCommandHandler struct {
	uowFactory NotificationUoWFactory
}

// NewMarkNotificationReadCommandHandler creates a handler for marking
// notifications read.
func NewMarkNotificationReadCommandHandler(uowFactory NotificationUoWFactory) MarkNotificationReadCommandHandler {
	return MarkNotificationReadCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle marks the notification read and returns it. A notification owned by
// a different user is reported as not found, so callers cannot distinguish
// other users' notifications from nonexistent ones.
func (h MarkNotificationReadCommandHandler) Handle(ctx context.Context, cmd MarkNotificationReadCommand) (*notification.Notification, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	notificationRepo := uow.NotificationRepository()

	entity, err := notificationRepo.Get(ctx, cmd.NotificationID())
	if err != nil {
		return nil, err
	}

	if !entity.UserID().IsEqual(cmd.UserID()) {
		return nil, errs.NewObjectNotFoundError("notification_id", cmd.NotificationID())
	}

	entity.MarkRead()

	if err = notificationRepo.Update(ctx, entity); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return entity, nil
}
