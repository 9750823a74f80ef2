// Package order contains the Order aggregate: the root of the fulfillment
// lifecycle. An order owns its items, freezes its total at creation, and
// raises domain events for every real transition so side effects fire exactly
// once per transition.
package order

import (
	"errors"
	"fmt"
	"time"

	"ecommerce/internal/core/domain/model/kernel"
	"ecommerce/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrOrderIsNotConstructed is returned when an Order instance was not created
// through the NewOrder or RestoreOrder factory functions.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

// Order is the aggregate root for the order lifecycle.
//
// Invariants:
//   - at least one item, all items constructed through their factories
//   - total price equals the sum of the item line prices and never changes
//     after creation
//   - status moves forward-only (see Status)
//   - every actual transition raises exactly one domain event
type Order struct {
	id         kernel.UUID
	customerID kernel.UUID
	status     Status
	totalPrice decimal.Decimal
	createdAt  time.Time
	items      []Item

	events        []kernel.DomainEvent
	isConstructed bool
}

// NewOrder creates a pending order from validated items, computes the frozen
// total price, and raises OrderCreated.
func NewOrder(id, customerID kernel.UUID, items []Item, createdAt time.Time) (*Order, error) {
	o := &Order{
		status:        StatusPending,
		createdAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setItems(items),
	); err != nil {
		return nil, err
	}

	total := decimal.Zero
	for _, item := range o.items {
		total = total.Add(item.Price())
	}
	o.totalPrice = total

	o.raise(NewOrderCreated(o.id, o.customerID))
	return o, nil
}

// RestoreOrder reconstructs an order from persistence. No events are raised:
// reloading an aggregate is not a transition.
func RestoreOrder(id, customerID kernel.UUID, status Status, totalPrice decimal.Decimal, createdAt time.Time, items []Item) (*Order, error) {
	o := &Order{
		totalPrice:    totalPrice,
		createdAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setStatus(status),
		o.setItems(items),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the order was created through a factory function.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// CustomerID returns the customer who placed the order.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// TotalPrice returns the frozen order total.
func (o *Order) TotalPrice() decimal.Decimal {
	return o.totalPrice
}

// CreatedAt returns the creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// Items returns the order lines.
func (o *Order) Items() []Item {
	return o.items
}

// ChangeStatus moves the order to next and raises OrderStatusChanged.
// Changing to the current status is a no-op: nothing is persisted differently
// and no event is raised, so idempotent re-saves never re-fire side effects.
// Any move that is not a legal forward transition is rejected.
func (o *Order) ChangeStatus(next Status) error {
	if err := next.Validate(); err != nil {
		return err
	}

	if next == o.status {
		return nil
	}

	if !o.status.CanTransitionTo(next) {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("cannot transition order from %s to %s", o.status, next))
	}

	from := o.status
	o.status = next
	o.raise(NewOrderStatusChanged(o.id, o.customerID, from, next))
	return nil
}

// DomainEvents returns the events raised since construction or the last
// ClearDomainEvents call.
func (o *Order) DomainEvents() []kernel.DomainEvent {
	return o.events
}

// ClearDomainEvents drops collected events. Called by the unit of work after
// it has taken ownership of them.
func (o *Order) ClearDomainEvents() {
	o.events = nil
}

func (o *Order) raise(event kernel.DomainEvent) {
	o.events = append(o.events, event)
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	o.customerID = customerID
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}

	o.items = items
	return nil
}
