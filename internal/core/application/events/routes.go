package events

import (
	"ecommerce/internal/core/application/usecases/commands"
	"ecommerce/internal/core/domain/model/delivery"
	"ecommerce/internal/core/domain/model/order"
	"ecommerce/internal/core/ports"
)

// RegisterDefaultRoutes wires the full event table:
//
//	order.created            -> customer notification, confirmation email
//	order.status_changed     -> delivery assignment (on confirmed)
//	delivery.created         -> delivery person notification
//	delivery.status_changed  -> customer progress notification, update email
func RegisterDefaultRoutes(
	r *Router,
	notifier Notifier,
	users UserReader,
	orders OrderReader,
	mailer ports.Mailer,
	assign commands.AssignDeliveryCommandHandler,
) {
	r.Register(order.EventOrderCreated, NewOrderPlacedNotificationHandler(notifier))
	r.Register(order.EventOrderCreated, NewOrderConfirmationEmailHandler(users, mailer))
	r.Register(order.EventOrderStatusChanged, NewDeliveryAssignmentHandler(assign))
	r.Register(delivery.EventDeliveryCreated, NewDeliveryAssignedNotificationHandler(notifier))
	r.Register(delivery.EventDeliveryStatusChanged, NewDeliveryProgressNotificationHandler(orders, notifier))
	r.Register(delivery.EventDeliveryStatusChanged, NewOrderUpdateEmailHandler(orders, users, mailer))
}
