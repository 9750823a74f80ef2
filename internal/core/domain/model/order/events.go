package order

import "ecommerce/internal/core/domain/model/kernel"

// Event names used as routing keys by the event router and the outbox.
const (
	EventOrderCreated       = "order.created"
	EventOrderStatusChanged = "order.status_changed"
)

// OrderCreated is raised once when an order is successfully created.
type OrderCreated struct {
	ID         kernel.UUID
	OrderID    kernel.UUID
	CustomerID kernel.UUID
}

// NewOrderCreated builds the event with a fresh event ID.
func NewOrderCreated(orderID, customerID kernel.UUID) OrderCreated {
	return OrderCreated{
		ID:         kernel.NewUUID(),
		OrderID:    orderID,
		CustomerID: customerID,
	}
}

// EventID returns the unique identifier of this occurrence.
func (e OrderCreated) EventID() kernel.UUID {
	return e.ID
}

// EventName returns the routing key for OrderCreated events.
func (e OrderCreated) EventName() string {
	return EventOrderCreated
}

// OrderStatusChanged is raised once per actual status transition. It carries
// both sides of the transition so handlers can match on the target status.
type OrderStatusChanged struct {
	ID         kernel.UUID
	OrderID    kernel.UUID
	CustomerID kernel.UUID
	From       Status
	To         Status
}

// NewOrderStatusChanged builds the event with a fresh event ID.
func NewOrderStatusChanged(orderID, customerID kernel.UUID, from, to Status) OrderStatusChanged {
	return OrderStatusChanged{
		ID:         kernel.NewUUID(),
		OrderID:    orderID,
		CustomerID: customerID,
		From:       from,
		To:         to,
	}
}

// EventID returns the unique identifier of this occurrence.
func (e OrderStatusChanged) EventID() kernel.UUID {
	return e.ID
}

// EventName returns the routing key for OrderStatusChanged events.
func (e OrderStatusChanged) EventName() string {
	return EventOrderStatusChanged
}
