package commands

import (
	"context"
	"errors"
	"time"

	"ecommerce/internal/core/domain/model/delivery"
	"ecommerce/internal/core/domain/model/order"
	"ecommerce/internal/core/domain/model/user"
	"ecommerce/internal/core/domain/services"
	"ecommerce/internal/pkg/errs"
)

// AssignDeliveryCommandHandler creates a delivery for a confirmed order as a
// side effect of the confirmation event.
//
// Because the trigger is re-deliverable (the outbox relay may replay it), the
// handler is idempotent: an order that is no longer confirmed, already has a
// delivery, or has no available delivery person results in a silent no-op,
// not an error. A concurrent assignment losing the race on the unique order
// index is swallowed the same way.
type AssignDeliveryCommandHandler struct {
	uowFactory DeliveryUoWFactory
	assigner   services.DeliveryAssigner
	dispatcher EventDispatcher
}

// NewAssignDeliveryCommandHandler creates a handler for automatic delivery
// assignment.
func NewAssignDeliveryCommandHandler(
	uowFactory DeliveryUoWFactory,
	assigner services.DeliveryAssigner,
	dispatcher EventDispatcher,
) AssignDeliveryCommandHandler {
	return AssignDeliveryCommandHandler{
		uowFactory: uowFactory,
		assigner:   assigner,
		dispatcher: dispatcher,
	}
}

// Handle assigns a delivery person to the order. Returns the created delivery,
// or (nil, nil) when assignment was skipped.
func (h AssignDeliveryCommandHandler) Handle(ctx context.Context, cmd AssignDeliveryCommand) (*delivery.Delivery, error) {
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

	aggregate, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if aggregate.Status() != order.StatusConfirmed {
		return nil, nil
	}

	_, err = uow.DeliveryRepository().GetByOrderID(ctx, cmd.OrderID())
	if err == nil {
		return nil, nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, err
	}

	candidates, err := uow.UserRepository().GetAllActiveByRole(ctx, user.RoleDelivery)
	if err != nil {
		return nil, err
	}

	newDelivery, err := h.assigner.Assign(aggregate, candidates, time.Now())
	if err != nil {
		if errors.Is(err, services.ErrNoDeliveryPersonAvailable) {
			return nil, nil
		}
		return nil, err
	}

	if err = uow.DeliveryRepository().Add(ctx, newDelivery); err != nil {
		if errors.Is(err, delivery.ErrDeliveryAlreadyExists) {
			return nil, nil
		}
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.dispatcher.Dispatch(ctx, uow.Events())
	return newDelivery, nil
}
