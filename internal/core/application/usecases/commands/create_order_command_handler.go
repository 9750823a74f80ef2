package commands

import (
	"context"
	"time"

	"ecommerce/internal/core/domain/model/kernel"
	"ecommerce/internal/core/domain/model/order"
)

// CreateOrderCommandHandler handles the business logic for order creation:
// reserving product stock, snapshotting item prices, and persisting the order
// with its items in one transaction.
//
// All items reserve or none do. Products are loaded with row locks so two
// orders racing over the same product serialize on the stock check, and any
// failure rolls back every reservation made earlier in the same request.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	dispatcher EventDispatcher
}

// NewCreateOrderCommandHandler creates a handler for order creation.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory, dispatcher EventDispatcher) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
	}
}

// Handle processes the order creation command and returns the created order.
//
// Inventory errors surface as product.InsufficientStockError; in that case no
// order, no items, and no stock mutation survive the rollback. On success the
// committed OrderCreated event is dispatched to the router.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
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

	productRepo := uow.ProductRepository()
	orderRepo := uow.OrderRepository()

	items := make([]order.Item, 0, len(cmd.Lines()))
	for _, line := range cmd.Lines() {
		prod, err := productRepo.GetForUpdate(ctx, line.ProductID)
		if err != nil {
			return nil, err
		}

		if err = prod.Reserve(line.Quantity); err != nil {
			return nil, err
		}

		item, err := order.NewItem(kernel.NewUUID(), prod.ID(), line.Quantity, prod.Price())
		if err != nil {
			return nil, err
		}
		items = append(items, item)

		if err = productRepo.Update(ctx, prod); err != nil {
			return nil, err
		}
	}

	newOrder, err := order.NewOrder(cmd.OrderID(), cmd.CustomerID(), items, time.Now())
	if err != nil {
		return nil, err
	}

	if err = orderRepo.Add(ctx, newOrder); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.dispatcher.Dispatch(ctx, uow.Events())
	return newOrder, nil
}
