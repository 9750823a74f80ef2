package events_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"ecommerce/internal/core/application/events"
	"ecommerce/internal/core/application/usecases/commands"
	"ecommerce/internal/core/domain/model/delivery"
	"ecommerce/internal/core/domain/model/kernel"
	"ecommerce/internal/core/domain/model/notification"
	"ecommerce/internal/core/domain/model/order"
	"ecommerce/internal/core/domain/model/user"
	"ecommerce/internal/core/domain/services"
	"ecommerce/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockNotifier struct{ mock.Mock }

func (m *mockNotifier) Notify(ctx context.Context, userID kernel.UUID, message string, kind notification.Kind) error {
	args := m.Called(ctx, userID, message, kind)
	return args.Error(0)
}

type mockUserReader struct{ mock.Mock }

func (m *mockUserReader) Get(ctx context.Context, id kernel.UUID) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

type mockOrderReader struct{ mock.Mock }

func (m *mockOrderReader) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type mockMailer struct{ mock.Mock }

func (m *mockMailer) Send(ctx context.Context, to, subject, body string) error {
	args := m.Called(ctx, to, subject, body)
	return args.Error(0)
}

func restoreOrderForCustomer(t *testing.T, customerID kernel.UUID) *order.Order {
	t.Helper()

	item, err := order.NewItem(kernel.NewUUID(), kernel.NewUUID(), 1, decimal.NewFromInt(25))
	require.NoError(t, err)

	o, err := order.RestoreOrder(kernel.NewUUID(), customerID, order.StatusConfirmed,
		decimal.NewFromInt(25), time.Now(), []order.Item{item})
	require.NoError(t, err)
	return o
}

func TestOrderPlacedNotificationHandler(t *testing.T) {
	ctx := t.Context()
	event := order.NewOrderCreated(kernel.NewUUID(), kernel.NewUUID())

	notifier := new(mockNotifier)
	notifier.On("Notify", ctx, event.CustomerID,
		"Your order #"+event.OrderID.String()+" has been placed successfully.",
		notification.KindOrder).Return(nil).Once()

	h := events.NewOrderPlacedNotificationHandler(notifier)
	require.NoError(t, h.Handle(ctx, event))
	notifier.AssertExpectations(t)
}

func TestOrderConfirmationEmailHandler(t *testing.T) {
	ctx := t.Context()
	customer, err := user.RestoreUser(kernel.NewUUID(), "alice", "alice@example.com", user.RoleCustomer, true)
	require.NoError(t, err)

	event := order.NewOrderCreated(kernel.NewUUID(), customer.ID())

	users := new(mockUserReader)
	users.On("Get", ctx, customer.ID()).Return(customer, nil).Once()

	mailer := new(mockMailer)
	mailer.On("Send", ctx, "alice@example.com", "Order Confirmation",
		"Your order #"+event.OrderID.String()+" has been placed successfully.").Return(nil).Once()

	h := events.NewOrderConfirmationEmailHandler(users, mailer)
	require.NoError(t, h.Handle(ctx, event))
	users.AssertExpectations(t)
	mailer.AssertExpectations(t)
}

func TestDeliveryAssignmentHandler_IgnoresNonConfirmedTransitions(t *testing.T) {
	ctx := t.Context()
	event := order.NewOrderStatusChanged(kernel.NewUUID(), kernel.NewUUID(),
		order.StatusConfirmed, order.StatusShipped)

	// The zero-value assign handler would fail if invoked; a nil error proves
	// the transition was filtered out before assignment.
	h := events.NewDeliveryAssignmentHandler(commands.AssignDeliveryCommandHandler{})
	require.NoError(t, h.Handle(ctx, event))
}

type failingDeliveryUoW struct{}

func (failingDeliveryUoW) Begin(context.Context) error       { return errors.New("begin failed") }
func (failingDeliveryUoW) Commit(context.Context) error      { return nil }
func (failingDeliveryUoW) Rollback(context.Context) error    { return nil }
func (failingDeliveryUoW) Events() []kernel.DomainEvent      { return nil }
func (failingDeliveryUoW) DeliveryRepository() ports.DeliveryRepository {
	return nil
}
func (failingDeliveryUoW) OrderRepository() ports.OrderRepository { return nil }
func (failingDeliveryUoW) UserRepository() ports.UserRepository   { return nil }

type failingDeliveryUoWFactory struct{}

func (failingDeliveryUoWFactory) Create() commands.DeliveryUoW { return failingDeliveryUoW{} }

func TestDeliveryAssignmentHandler_InvokesAssignmentOnConfirmed(t *testing.T) {
	ctx := t.Context()
	event := order.NewOrderStatusChanged(kernel.NewUUID(), kernel.NewUUID(),
		order.StatusPending, order.StatusConfirmed)

	assign := commands.NewAssignDeliveryCommandHandler(
		failingDeliveryUoWFactory{}, services.NewDeliveryAssigner(), new(MockDispatcherStub))

	h := events.NewDeliveryAssignmentHandler(assign)
	err := h.Handle(ctx, event)
	require.ErrorContains(t, err, "begin failed")
}

type MockDispatcherStub struct{}

func (*MockDispatcherStub) Dispatch(context.Context, []kernel.DomainEvent) {}

func TestDeliveryAssignedNotificationHandler(t *testing.T) {
	ctx := t.Context()
	event := delivery.NewDeliveryCreated(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID())

	notifier := new(mockNotifier)
	notifier.On("Notify", ctx, event.DeliveryPersonID,
		"New delivery assigned: Order #"+event.OrderID.String(),
		notification.KindDelivery).Return(nil).Once()

	h := events.NewDeliveryAssignedNotificationHandler(notifier)
	require.NoError(t, h.Handle(ctx, event))
	notifier.AssertExpectations(t)
}

func TestDeliveryProgressNotificationHandler_NotifiesCustomer(t *testing.T) {
	ctx := t.Context()
	customerID := kernel.NewUUID()
	aggregate := restoreOrderForCustomer(t, customerID)

	event := delivery.NewDeliveryStatusChanged(kernel.NewUUID(), aggregate.ID(), kernel.NewUUID(),
		delivery.StatusAssigned, delivery.StatusPicked)

	orders := new(mockOrderReader)
	orders.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once()

	notifier := new(mockNotifier)
	notifier.On("Notify", ctx, customerID,
		"Your order #"+aggregate.ID().String()+" is now picked.",
		notification.KindDelivery).Return(nil).Once()

	h := events.NewDeliveryProgressNotificationHandler(orders, notifier)
	require.NoError(t, h.Handle(ctx, event))
	notifier.AssertExpectations(t)
}

func TestOrderUpdateEmailHandler_SendsOnDelivered(t *testing.T) {
	ctx := t.Context()
	customer, err := user.RestoreUser(kernel.NewUUID(), "bob", "bob@example.com", user.RoleCustomer, true)
	require.NoError(t, err)
	aggregate := restoreOrderForCustomer(t, customer.ID())

	event := delivery.NewDeliveryStatusChanged(kernel.NewUUID(), aggregate.ID(), kernel.NewUUID(),
		delivery.StatusInTransit, delivery.StatusDelivered)

	orders := new(mockOrderReader)
	orders.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once()

	users := new(mockUserReader)
	users.On("Get", ctx, customer.ID()).Return(customer, nil).Once()

	mailer := new(mockMailer)
	mailer.On("Send", ctx, "bob@example.com", "Order Update: Delivered",
		"Your order #"+aggregate.ID().String()+" is now delivered.").Return(nil).Once()

	h := events.NewOrderUpdateEmailHandler(orders, users, mailer)
	require.NoError(t, h.Handle(ctx, event))
	mailer.AssertExpectations(t)
}

func TestOrderUpdateEmailHandler_SkipsIntermediateStatuses(t *testing.T) {
	ctx := t.Context()
	event := delivery.NewDeliveryStatusChanged(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		delivery.StatusAssigned, delivery.StatusPicked)

	orders := new(mockOrderReader)
	users := new(mockUserReader)
	mailer := new(mockMailer)

	h := events.NewOrderUpdateEmailHandler(orders, users, mailer)
	require.NoError(t, h.Handle(ctx, event))
	mailer.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	orders.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}
