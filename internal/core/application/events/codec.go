package events

import (
	"encoding/json"
	"fmt"

	"ecommerce/internal/core/domain/model/delivery"
	"ecommerce/internal/core/domain/model/kernel"
	"ecommerce/internal/core/domain/model/order"
)

type orderCreatedPayload struct {
	EventID    string `json:"event_id"`
	OrderID    string `json:"order_id"`
	CustomerID string `json:"customer_id"`
}

type orderStatusChangedPayload struct {
	EventID    string `json:"event_id"`
	OrderID    string `json:"order_id"`
	CustomerID string `json:"customer_id"`
	From       string `json:"from"`
	To         string `json:"to"`
}

type deliveryCreatedPayload struct {
	EventID          string `json:"event_id"`
	DeliveryID       string `json:"delivery_id"`
	OrderID          string `json:"order_id"`
	DeliveryPersonID string `json:"delivery_person_id"`
}

type deliveryStatusChangedPayload struct {
	EventID          string `json:"event_id"`
	DeliveryID       string `json:"delivery_id"`
	OrderID          string `json:"order_id"`
	DeliveryPersonID string `json:"delivery_person_id"`
	From             string `json:"from"`
	To               string `json:"to"`
}

// Encode serializes a domain event into its outbox representation: the
// routing key and a JSON payload.
func Encode(event kernel.DomainEvent) (string, []byte, error) {
	var payload any

	switch e := event.(type) {
	case order.OrderCreated:
		payload = orderCreatedPayload{
			EventID:    e.ID.String(),
			OrderID:    e.OrderID.String(),
			CustomerID: e.CustomerID.String(),
		}
	case order.OrderStatusChanged:
		payload = orderStatusChangedPayload{
			EventID:    e.ID.String(),
			OrderID:    e.OrderID.String(),
			CustomerID: e.CustomerID.String(),
			From:       e.From.String(),
			To:         e.To.String(),
		}
	case delivery.DeliveryCreated:
		payload = deliveryCreatedPayload{
			EventID:          e.ID.String(),
			DeliveryID:       e.DeliveryID.String(),
			OrderID:          e.OrderID.String(),
			DeliveryPersonID: e.DeliveryPersonID.String(),
		}
	case delivery.DeliveryStatusChanged:
		payload = deliveryStatusChangedPayload{
			EventID:          e.ID.String(),
			DeliveryID:       e.DeliveryID.String(),
			OrderID:          e.OrderID.String(),
			DeliveryPersonID: e.DeliveryPersonID.String(),
			From:             e.From.String(),
			To:               e.To.String(),
		}
	default:
		return "", nil, fmt.Errorf("unknown event type %T", event)
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return "", nil, err
	}

	return event.EventName(), data, nil
}

// Decode deserializes an outbox row back into the domain event it was
// encoded from. Used by the relay job to re-dispatch events whose post-commit
// dispatch did not complete.
func Decode(name string, data []byte) (kernel.DomainEvent, error) {
	switch name {
	case order.EventOrderCreated:
		var p orderCreatedPayload
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, err
		}
		return decodeOrderCreated(p)

	case order.EventOrderStatusChanged:
		var p orderStatusChangedPayload
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, err
		}
		return decodeOrderStatusChanged(p)

	case delivery.EventDeliveryCreated:
		var p deliveryCreatedPayload
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, err
		}
		return decodeDeliveryCreated(p)

	case delivery.EventDeliveryStatusChanged:
		var p deliveryStatusChangedPayload
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, err
		}
		return decodeDeliveryStatusChanged(p)

	default:
		return nil, fmt.Errorf("unknown event name %q", name)
	}
}

func decodeOrderCreated(p orderCreatedPayload) (kernel.DomainEvent, error) {
	eventID, err := kernel.UUIDFromString(p.EventID)
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromString(p.OrderID)
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromString(p.CustomerID)
	if err != nil {
		return nil, err
	}

	return order.OrderCreated{
		ID:         eventID,
		OrderID:    orderID,
		CustomerID: customerID,
	}, nil
}

func decodeOrderStatusChanged(p orderStatusChangedPayload) (kernel.DomainEvent, error) {
	eventID, err := kernel.UUIDFromString(p.EventID)
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromString(p.OrderID)
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromString(p.CustomerID)
	if err != nil {
		return nil, err
	}
	from, err := order.StatusFromString(p.From)
	if err != nil {
		return nil, err
	}
	to, err := order.StatusFromString(p.To)
	if err != nil {
		return nil, err
	}

	return order.OrderStatusChanged{
		ID:         eventID,
		OrderID:    orderID,
		CustomerID: customerID,
		From:       from,
		To:         to,
	}, nil
}

func decodeDeliveryCreated(p deliveryCreatedPayload) (kernel.DomainEvent, error) {
	eventID, err := kernel.UUIDFromString(p.EventID)
	if err != nil {
		return nil, err
	}
	deliveryID, err := kernel.UUIDFromString(p.DeliveryID)
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromString(p.OrderID)
	if err != nil {
		return nil, err
	}
	personID, err := kernel.UUIDFromString(p.DeliveryPersonID)
	if err != nil {
		return nil, err
	}

	return delivery.DeliveryCreated{
		ID:               eventID,
		DeliveryID:       deliveryID,
		OrderID:          orderID,
		DeliveryPersonID: personID,
	}, nil
}

func decodeDeliveryStatusChanged(p deliveryStatusChangedPayload) (kernel.DomainEvent, error) {
	eventID, err := kernel.UUIDFromString(p.EventID)
	if err != nil {
		return nil, err
	}
	deliveryID, err := kernel.UUIDFromString(p.DeliveryID)
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromString(p.OrderID)
	if err != nil {
		return nil, err
	}
	personID, err := kernel.UUIDFromString(p.DeliveryPersonID)
	if err != nil {
		return nil, err
	}
	from, err := delivery.StatusFromString(p.From)
	if err != nil {
		return nil, err
	}
	to, err := delivery.StatusFromString(p.To)
	if err != nil {
		return nil, err
	}

	return delivery.DeliveryStatusChanged{
		ID:               eventID,
		DeliveryID:       deliveryID,
		OrderID:          orderID,
		DeliveryPersonID: personID,
		From:             from,
		To:               to,
	}, nil
}
