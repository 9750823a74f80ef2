package order_test

import (
	"testing"
	"time"

	"ecommerce/internal/core/domain/model/kernel"
	"ecommerce/internal/core/domain/model/order"
	"ecommerce/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestItem(t *testing.T, quantity int, unitPrice string) order.Item {
	t.Helper()

	price, err := decimal.NewFromString(unitPrice)
	require.NoError(t, err)

	item, err := order.NewItem(kernel.NewUUID(), kernel.NewUUID(), quantity, price)
	require.NoError(t, err)
	return item
}

func newTestOrder(t *testing.T, items ...order.Item) *order.Order {
	t.Helper()

	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), items, time.Now())
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	t.Run("computes total from item snapshots", func(t *testing.T) {
		o := newTestOrder(t,
			newTestItem(t, 2, "19.99"), // 39.98
			newTestItem(t, 3, "5.00"),  // 15.00
		)

		assert.Equal(t, order.StatusPending, o.Status())
		assert.True(t, o.TotalPrice().Equal(decimal.RequireFromString("54.98")),
			"got %s", o.TotalPrice())
	})

	t.Run("raises OrderCreated exactly once", func(t *testing.T) {
		o := newTestOrder(t, newTestItem(t, 1, "10.00"))

		events := o.DomainEvents()
		require.Len(t, events, 1)

		created, ok := events[0].(order.OrderCreated)
		require.True(t, ok)
		assert.True(t, created.OrderID.IsEqual(o.ID()))
		assert.True(t, created.CustomerID.IsEqual(o.CustomerID()))
		assert.Equal(t, order.EventOrderCreated, created.EventName())
	})

	t.Run("rejects empty items", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), nil, time.Now())

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejects unconstructed item", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), []order.Item{{}}, time.Now())

		require.Error(t, err)
		assert.ErrorIs(t, err, order.ErrItemIsNotConstructed)
	})
}

func TestNewItem(t *testing.T) {
	t.Run("freezes line total", func(t *testing.T) {
		item := newTestItem(t, 4, "2.50")

		assert.True(t, item.Price().Equal(decimal.RequireFromString("10.00")))
		assert.Equal(t, 4, item.Quantity())
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		_, err := order.NewItem(kernel.NewUUID(), kernel.NewUUID(), 0, decimal.NewFromInt(1))

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestOrder_ChangeStatus(t *testing.T) {
	t.Run("forward transitions raise events", func(t *testing.T) {
		o := newTestOrder(t, newTestItem(t, 1, "10.00"))
		o.ClearDomainEvents()

		require.NoError(t, o.ChangeStatus(order.StatusConfirmed))
		require.NoError(t, o.ChangeStatus(order.StatusShipped))
		require.NoError(t, o.ChangeStatus(order.StatusDelivered))

		events := o.DomainEvents()
		require.Len(t, events, 3)

		first, ok := events[0].(order.OrderStatusChanged)
		require.True(t, ok)
		assert.Equal(t, order.StatusPending, first.From)
		assert.Equal(t, order.StatusConfirmed, first.To)
	})

	t.Run("same status is a no-op without events", func(t *testing.T) {
		o := newTestOrder(t, newTestItem(t, 1, "10.00"))
		o.ClearDomainEvents()
		require.NoError(t, o.ChangeStatus(order.StatusConfirmed))
		o.ClearDomainEvents()

		require.NoError(t, o.ChangeStatus(order.StatusConfirmed))

		assert.Empty(t, o.DomainEvents())
		assert.Equal(t, order.StatusConfirmed, o.Status())
	})

	t.Run("backward transition rejected", func(t *testing.T) {
		o := newTestOrder(t, newTestItem(t, 1, "10.00"))
		require.NoError(t, o.ChangeStatus(order.StatusConfirmed))
		o.ClearDomainEvents()

		err := o.ChangeStatus(order.StatusPending)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Empty(t, o.DomainEvents())
	})

	t.Run("skipped transition rejected", func(t *testing.T) {
		o := newTestOrder(t, newTestItem(t, 1, "10.00"))

		err := o.ChangeStatus(order.StatusDelivered)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Equal(t, order.StatusPending, o.Status())
	})

	t.Run("cancelled reachable from pending and confirmed only", func(t *testing.T) {
		o := newTestOrder(t, newTestItem(t, 1, "10.00"))
		require.NoError(t, o.ChangeStatus(order.StatusCancelled))

		o2 := newTestOrder(t, newTestItem(t, 1, "10.00"))
		require.NoError(t, o2.ChangeStatus(order.StatusConfirmed))
		require.NoError(t, o2.ChangeStatus(order.StatusCancelled))

		o3 := newTestOrder(t, newTestItem(t, 1, "10.00"))
		require.NoError(t, o3.ChangeStatus(order.StatusConfirmed))
		require.NoError(t, o3.ChangeStatus(order.StatusShipped))
		assert.Error(t, o3.ChangeStatus(order.StatusCancelled))
	})

	t.Run("invalid status rejected", func(t *testing.T) {
		o := newTestOrder(t, newTestItem(t, 1, "10.00"))

		err := o.ChangeStatus(order.Status("archived"))

		require.Error(t, err)
	})
}

func TestRestoreOrder_RaisesNoEvents(t *testing.T) {
	item, err := order.RestoreItem(kernel.NewUUID(), kernel.NewUUID(), 2, decimal.RequireFromString("39.98"))
	require.NoError(t, err)

	o, err := order.RestoreOrder(kernel.NewUUID(), kernel.NewUUID(), order.StatusConfirmed,
		decimal.RequireFromString("39.98"), time.Now(), []order.Item{item})

	require.NoError(t, err)
	assert.Empty(t, o.DomainEvents())
	assert.Equal(t, order.StatusConfirmed, o.Status())
}

func TestStatusFromString(t *testing.T) {
	status, err := order.StatusFromString("confirmed")
	require.NoError(t, err)
	assert.Equal(t, order.StatusConfirmed, status)

	_, err = order.StatusFromString("unknown")
	require.Error(t, err)
}
