package commands

import (
	"context"
	"time"

	"ecommerce/internal/core/domain/model/delivery"
)

// ChangeDeliveryStatusCommandHandler transitions a delivery and dispatches the
// resulting DeliveryStatusChanged event post-commit. The transition into
// delivered stamps the completion timestamp inside the aggregate.
type ChangeDeliveryStatusCommandHandler struct {
	uowFactory DeliveryUoWFactory
	dispatcher EventDispatcher
}

// NewChangeDeliveryStatusCommandHandler creates a handler for delivery status
// transitions.
func NewChangeDeliveryStatusCommandHandler(uowFactory DeliveryUoWFactory, dispatcher EventDispatcher) ChangeDeliveryStatusCommandHandler {
	return ChangeDeliveryStatusCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
	}
}

// Handle processes the status change and returns the updated delivery.
// A request for the delivery's current status commits no change and dispatches
// no events.
func (h ChangeDeliveryStatusCommandHandler) Handle(ctx context.Context, cmd ChangeDeliveryStatusCommand) (*delivery.Delivery, error) {
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

	deliveryRepo := uow.DeliveryRepository()

	aggregate, err := deliveryRepo.Get(ctx, cmd.DeliveryID())
	if err != nil {
		return nil, err
	}

	if err = aggregate.ChangeStatus(cmd.Status(), time.Now()); err != nil {
		return nil, err
	}

	if err = deliveryRepo.Update(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.dispatcher.Dispatch(ctx, uow.Events())
	return aggregate, nil
}
