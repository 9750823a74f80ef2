package commands

import (
	"context"
	"fmt"
	"time"

	"ecommerce/internal/core/domain/model/delivery"
	"ecommerce/internal/core/domain/model/kernel"
	"ecommerce/internal/core/domain/model/user"
	"ecommerce/internal/pkg/errs"
)

// CreateDeliveryCommandHandler handles manual delivery assignment by an
// admin. Unlike the automatic assignment on order confirmation, a duplicate
// here is an error the caller sees: delivery.ErrDeliveryAlreadyExists.
type CreateDeliveryCommandHandler struct {
	uowFactory DeliveryUoWFactory
	dispatcher EventDispatcher
}

// NewCreateDeliveryCommandHandler creates a handler for manual delivery
// assignment.
func NewCreateDeliveryCommandHandler(uowFactory DeliveryUoWFactory, dispatcher EventDispatcher) CreateDeliveryCommandHandler {
	return CreateDeliveryCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
	}
}

// Handle creates the delivery and returns it. The order and delivery person
// must exist, and the person must hold the delivery role. On success the
// committed DeliveryCreated event is dispatched to the router.
func (h CreateDeliveryCommandHandler) Handle(ctx context.Context, cmd CreateDeliveryCommand) (*delivery.Delivery, error) {
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

	person, err := uow.UserRepository().Get(ctx, cmd.DeliveryPersonID())
	if err != nil {
		return nil, err
	}

	if person.Role() != user.RoleDelivery {
		return nil, errs.NewValueIsInvalidErrorWithCause("delivery_person",
			fmt.Errorf("user %s has role %s, not %s", person.ID(), person.Role(), user.RoleDelivery))
	}

	newDelivery, err := delivery.NewDelivery(kernel.NewUUID(), aggregate.ID(), person.ID(), time.Now())
	if err != nil {
		return nil, err
	}

	if err = uow.DeliveryRepository().Add(ctx, newDelivery); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.dispatcher.Dispatch(ctx, uow.Events())
	return newDelivery, nil
}
