// Package delivery contains the Delivery aggregate: the fulfillment record
// created when a confirmed order is assigned to a delivery person. At most one
// delivery exists per order; the storage layer enforces this with a unique
// index on the order reference.
package delivery

import (
	"errors"
	"fmt"
	"time"

	"ecommerce/internal/core/domain/model/kernel"
	"ecommerce/internal/pkg/errs"
)

var (
	// ErrDeliveryIsNotConstructed is returned when a Delivery instance was not
	// created through the NewDelivery or RestoreDelivery factory functions.
	ErrDeliveryIsNotConstructed = errors.New("Delivery must be created via NewDelivery constructor")

	// ErrDeliveryAlreadyExists is returned when persisting a delivery for an
	// order that already has one. Backed by the unique index on the order
	// reference, so it holds under concurrent assignment as well.
	ErrDeliveryAlreadyExists = errors.New("a delivery for this order already exists")
)

// Delivery tracks the fulfillment of one order by one delivery person.
//
// Invariants:
//   - exactly one order reference, unique across all deliveries
//   - status moves forward-only (see Status)
//   - delivered_at is set exactly once, on the transition into delivered,
//     and is never earlier than assigned_at
type Delivery struct {
	id               kernel.UUID
	orderID          kernel.UUID
	deliveryPersonID kernel.UUID
	status           Status
	assignedAt       time.Time
	deliveredAt      *time.Time

	events        []kernel.DomainEvent
	isConstructed bool
}

// NewDelivery creates a delivery in assigned status and raises
// DeliveryCreated.
func NewDelivery(id, orderID, deliveryPersonID kernel.UUID, assignedAt time.Time) (*Delivery, error) {
	d := &Delivery{
		status:        StatusAssigned,
		assignedAt:    assignedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		d.setID(id),
		d.setOrderID(orderID),
		d.setDeliveryPersonID(deliveryPersonID),
	); err != nil {
		return nil, err
	}

	d.raise(NewDeliveryCreated(d.id, d.orderID, d.deliveryPersonID))
	return d, nil
}

// RestoreDelivery reconstructs a delivery from persistence. No events are
// raised.
func RestoreDelivery(id, orderID, deliveryPersonID kernel.UUID, status Status, assignedAt time.Time, deliveredAt *time.Time) (*Delivery, error) {
	d := &Delivery{
		assignedAt:    assignedAt,
		deliveredAt:   deliveredAt,
		isConstructed: true,
	}

	if err := errors.Join(
		d.setID(id),
		d.setOrderID(orderID),
		d.setDeliveryPersonID(deliveryPersonID),
		d.setStatus(status),
	); err != nil {
		return nil, err
	}

	return d, nil
}

// Validate ensures the delivery was created through a factory function.
func (d *Delivery) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDeliveryIsNotConstructed
	}
	return nil
}

// ID returns the delivery's unique identifier.
func (d *Delivery) ID() kernel.UUID {
	return d.id
}

// OrderID returns the fulfilled order.
func (d *Delivery) OrderID() kernel.UUID {
	return d.orderID
}

// DeliveryPersonID returns the assigned delivery person.
func (d *Delivery) DeliveryPersonID() kernel.UUID {
	return d.deliveryPersonID
}

// Status returns the current lifecycle status.
func (d *Delivery) Status() Status {
	return d.status
}

// AssignedAt returns the assignment timestamp.
func (d *Delivery) AssignedAt() time.Time {
	return d.assignedAt
}

// DeliveredAt returns the delivery completion timestamp, or nil while the
// delivery is not yet in delivered status.
func (d *Delivery) DeliveredAt() *time.Time {
	return d.deliveredAt
}

// ChangeStatus moves the delivery to next and raises DeliveryStatusChanged.
// The transition into delivered stamps delivered_at with now; no other
// transition touches it. Changing to the current status is a no-op without
// events. Any move that is not a legal forward transition is rejected.
func (d *Delivery) ChangeStatus(next Status, now time.Time) error {
	if err := next.Validate(); err != nil {
		return err
	}

	if next == d.status {
		return nil
	}

	if !d.status.CanTransitionTo(next) {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("cannot transition delivery from %s to %s", d.status, next))
	}

	from := d.status
	d.status = next
	if next == StatusDelivered {
		d.deliveredAt = &now
	}

	d.raise(NewDeliveryStatusChanged(d.id, d.orderID, d.deliveryPersonID, from, next))
	return nil
}

// DomainEvents returns the events raised since construction or the last
// ClearDomainEvents call.
func (d *Delivery) DomainEvents() []kernel.DomainEvent {
	return d.events
}

// ClearDomainEvents drops collected events. Called by the unit of work after
// it has taken ownership of them.
func (d *Delivery) ClearDomainEvents() {
	d.events = nil
}

func (d *Delivery) raise(event kernel.DomainEvent) {
	d.events = append(d.events, event)
}

func (d *Delivery) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *Delivery) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	d.orderID = orderID
	return nil
}

func (d *Delivery) setDeliveryPersonID(deliveryPersonID kernel.UUID) error {
	if err := deliveryPersonID.Validate(); err != nil {
		return err
	}
	d.deliveryPersonID = deliveryPersonID
	return nil
}

func (d *Delivery) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	d.status = status
	return nil
}
