package delivery

import "ecommerce/internal/core/domain/model/kernel"

// Event names used as routing keys by the event router and the outbox.
const (
	EventDeliveryCreated       = "delivery.created"
	EventDeliveryStatusChanged = "delivery.status_changed"
)

// DeliveryCreated is raised once when a delivery is created, whether by the
// automatic assignment on order confirmation or by the admin manual path.
type DeliveryCreated struct {
	ID               kernel.UUID
	DeliveryID       kernel.UUID
	OrderID          kernel.UUID
	DeliveryPersonID kernel.UUID
}

// NewDeliveryCreated builds the event with a fresh event ID.
func NewDeliveryCreated(deliveryID, orderID, deliveryPersonID kernel.UUID) DeliveryCreated {
	return DeliveryCreated{
		ID:               kernel.NewUUID(),
		DeliveryID:       deliveryID,
		OrderID:          orderID,
		DeliveryPersonID: deliveryPersonID,
	}
}

// EventID returns the unique identifier of this occurrence.
func (e DeliveryCreated) EventID() kernel.UUID {
	return e.ID
}

// EventName returns the routing key for DeliveryCreated events.
func (e DeliveryCreated) EventName() string {
	return EventDeliveryCreated
}

// DeliveryStatusChanged is raised once per actual status transition.
type DeliveryStatusChanged struct {
	ID               kernel.UUID
	DeliveryID       kernel.UUID
	OrderID          kernel.UUID
	DeliveryPersonID kernel.UUID
	From             Status
	To               Status
}

// NewDeliveryStatusChanged builds the event with a fresh event ID.
func NewDeliveryStatusChanged(deliveryID, orderID, deliveryPersonID kernel.UUID, from, to Status) DeliveryStatusChanged {
	return DeliveryStatusChanged{
		ID:               kernel.NewUUID(),
		DeliveryID:       deliveryID,
		OrderID:          orderID,
		DeliveryPersonID: deliveryPersonID,
		From:             from,
		To:               to,
	}
}

// EventID returns the unique identifier of this occurrence.
func (e DeliveryStatusChanged) EventID() kernel.UUID {
	return e.ID
}

// EventName returns the routing key for DeliveryStatusChanged events.
func (e DeliveryStatusChanged) EventName() string {
	return EventDeliveryStatusChanged
}
