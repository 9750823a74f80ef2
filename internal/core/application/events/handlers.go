package events

import (
	"context"
	"fmt"
	"strings"

	"ecommerce/internal/core/application/usecases/commands"
	"ecommerce/internal/core/domain/model/delivery"
	"ecommerce/internal/core/domain/model/kernel"
	"ecommerce/internal/core/domain/model/notification"
	"ecommerce/internal/core/domain/model/order"
	"ecommerce/internal/core/domain/model/user"
	"ecommerce/internal/core/ports"
)

// Notifier persists an in-app notification for a user.
type Notifier interface {
	Notify(ctx context.Context, userID kernel.UUID, message string, kind notification.Kind) error
}

// UserReader loads a user outside any transaction, for resolving email
// recipients.
type UserReader interface {
	Get(ctx context.Context, id kernel.UUID) (*user.User, error)
}

// OrderReader loads an order outside any transaction, for resolving the
// customer behind a delivery event.
type OrderReader interface {
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)
}

// OrderPlacedNotificationHandler creates the customer's in-app notification
// when an order is placed.
type OrderPlacedNotificationHandler struct {
	notifier Notifier
}

func NewOrderPlacedNotificationHandler(notifier Notifier) OrderPlacedNotificationHandler {
	return OrderPlacedNotificationHandler{notifier: notifier}
}

func (h OrderPlacedNotificationHandler) Name() string {
	return "order_placed_notification"
}

func (h OrderPlacedNotificationHandler) Handle(ctx context.Context, event kernel.DomainEvent) error {
	e, ok := event.(order.OrderCreated)
	if !ok {
		return fmt.Errorf("unexpected event type %T", event)
	}

	message := fmt.Sprintf("Your order #%s has been placed successfully.", e.OrderID)
	return h.notifier.Notify(ctx, e.CustomerID, message, notification.KindOrder)
}

// OrderConfirmationEmailHandler sends the order confirmation email to the
// customer when an order is placed.
type OrderConfirmationEmailHandler struct {
	users  UserReader
	mailer ports.Mailer
}

func NewOrderConfirmationEmailHandler(users UserReader, mailer ports.Mailer) OrderConfirmationEmailHandler {
	return OrderConfirmationEmailHandler{users: users, mailer: mailer}
}

func (h OrderConfirmationEmailHandler) Name() string {
	return "order_confirmation_email"
}

func (h OrderConfirmationEmailHandler) Handle(ctx context.Context, event kernel.DomainEvent) error {
	e, ok := event.(order.OrderCreated)
	if !ok {
		return fmt.Errorf("unexpected event type %T", event)
	}

	customer, err := h.users.Get(ctx, e.CustomerID)
	if err != nil {
		return err
	}

	body := fmt.Sprintf("Your order #%s has been placed successfully.", e.OrderID)
	return h.mailer.Send(ctx, customer.Email(), "Order Confirmation", body)
}

// DeliveryAssignmentHandler triggers automatic delivery assignment when an
// order transitions into confirmed. Any other target status is ignored.
type DeliveryAssignmentHandler struct {
	assign commands.AssignDeliveryCommandHandler
}

func NewDeliveryAssignmentHandler(assign commands.AssignDeliveryCommandHandler) DeliveryAssignmentHandler {
	return DeliveryAssignmentHandler{assign: assign}
}

func (h DeliveryAssignmentHandler) Name() string {
	return "delivery_assignment"
}

func (h DeliveryAssignmentHandler) Handle(ctx context.Context, event kernel.DomainEvent) error {
	e, ok := event.(order.OrderStatusChanged)
	if !ok {
		return fmt.Errorf("unexpected event type %T", event)
	}

	if e.To != order.StatusConfirmed {
		return nil
	}

	cmd, err := commands.NewAssignDeliveryCommand(e.OrderID)
	if err != nil {
		return err
	}

	_, err = h.assign.Handle(ctx, cmd)
	return err
}

// DeliveryAssignedNotificationHandler notifies the delivery person when a
// delivery is created for them.
type DeliveryAssignedNotificationHandler struct {
	notifier Notifier
}

func NewDeliveryAssignedNotificationHandler(notifier Notifier) DeliveryAssignedNotificationHandler {
	return DeliveryAssignedNotificationHandler{notifier: notifier}
}

func (h DeliveryAssignedNotificationHandler) Name() string {
	return "delivery_assigned_notification"
}

func (h DeliveryAssignedNotificationHandler) Handle(ctx context.Context, event kernel.DomainEvent) error {
	e, ok := event.(delivery.DeliveryCreated)
	if !ok {
		return fmt.Errorf("unexpected event type %T", event)
	}

	message := fmt.Sprintf("New delivery assigned: Order #%s", e.OrderID)
	return h.notifier.Notify(ctx, e.DeliveryPersonID, message, notification.KindDelivery)
}

// DeliveryProgressNotificationHandler notifies the customer as their delivery
// moves through picked, in_transit and delivered.
type DeliveryProgressNotificationHandler struct {
	orders   OrderReader
	notifier Notifier
}

func NewDeliveryProgressNotificationHandler(orders OrderReader, notifier Notifier) DeliveryProgressNotificationHandler {
	return DeliveryProgressNotificationHandler{orders: orders, notifier: notifier}
}

func (h DeliveryProgressNotificationHandler) Name() string {
	return "delivery_progress_notification"
}

func (h DeliveryProgressNotificationHandler) Handle(ctx context.Context, event kernel.DomainEvent) error {
	e, ok := event.(delivery.DeliveryStatusChanged)
	if !ok {
		return fmt.Errorf("unexpected event type %T", event)
	}

	switch e.To {
	case delivery.StatusPicked, delivery.StatusInTransit, delivery.StatusDelivered:
	default:
		return nil
	}

	aggregate, err := h.orders.Get(ctx, e.OrderID)
	if err != nil {
		return err
	}

	message := fmt.Sprintf("Your order #%s is now %s.", e.OrderID, e.To)
	return h.notifier.Notify(ctx, aggregate.CustomerID(), message, notification.KindDelivery)
}

// orderUpdateEmailStatuses is the status set that triggers a customer email.
// "shipped" is not a delivery status, so only "delivered" ever matches; the
// set is kept as-is for compatibility with the long-standing behavior.
var orderUpdateEmailStatuses = map[string]struct{}{
	"shipped":   {},
	"delivered": {},
}

// OrderUpdateEmailHandler emails the customer on select delivery status
// changes.
type OrderUpdateEmailHandler struct {
	orders OrderReader
	users  UserReader
	mailer ports.Mailer
}

func NewOrderUpdateEmailHandler(orders OrderReader, users UserReader, mailer ports.Mailer) OrderUpdateEmailHandler {
	return OrderUpdateEmailHandler{orders: orders, users: users, mailer: mailer}
}

func (h OrderUpdateEmailHandler) Name() string {
	return "order_update_email"
}

func (h OrderUpdateEmailHandler) Handle(ctx context.Context, event kernel.DomainEvent) error {
	e, ok := event.(delivery.DeliveryStatusChanged)
	if !ok {
		return fmt.Errorf("unexpected event type %T", event)
	}

	if _, send := orderUpdateEmailStatuses[e.To.String()]; !send {
		return nil
	}

	aggregate, err := h.orders.Get(ctx, e.OrderID)
	if err != nil {
		return err
	}

	customer, err := h.users.Get(ctx, aggregate.CustomerID())
	if err != nil {
		return err
	}

	subject := fmt.Sprintf("Order Update: %s", title(e.To.String()))
	body := fmt.Sprintf("Your order #%s is now %s.", e.OrderID, e.To)
	return h.mailer.Send(ctx, customer.Email(), subject, body)
}

func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
