package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"ecommerce/internal/adapters/out/postgres/orderrepo"
	"ecommerce/internal/core/domain/model/kernel"
	"ecommerce/internal/core/domain/model/order"
	"ecommerce/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type stubEventTracker struct {
	events []kernel.DomainEvent
}

func (t *stubEventTracker) TrackEvents(events []kernel.DomainEvent) {
	t.events = append(t.events, events...)
}

type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *stubEventTracker
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.OrderItemDTO{}))
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders, order_items").Error)

	suite.tracker = new(stubEventTracker)
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) newOrder() *order.Order {
	first, err := order.NewItem(kernel.NewUUID(), kernel.NewUUID(), 2, decimal.RequireFromString("49.90"))
	suite.Require().NoError(err)
	second, err := order.NewItem(kernel.NewUUID(), kernel.NewUUID(), 1, decimal.RequireFromString("199.00"))
	suite.Require().NoError(err)

	aggregate, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(),
		[]order.Item{first, second}, time.Now().UTC().Truncate(time.Microsecond))
	suite.Require().NoError(err)
	return aggregate
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAddAndGet() {
	ctx := context.Background()
	aggregate := suite.newOrder()

	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	loaded, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.True(loaded.ID().IsEqual(aggregate.ID()))
	suite.True(loaded.CustomerID().IsEqual(aggregate.CustomerID()))
	suite.Equal(order.StatusPending, loaded.Status())
	suite.True(loaded.TotalPrice().Equal(decimal.RequireFromString("298.80")))
	suite.Require().Len(loaded.Items(), 2)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_TracksCreatedEvent() {
	ctx := context.Background()
	aggregate := suite.newOrder()

	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	suite.Require().Len(suite.tracker.events, 1)
	suite.Equal(order.EventOrderCreated, suite.tracker.events[0].EventName())
	suite.Empty(aggregate.DomainEvents())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_PersistsStatusOnly() {
	ctx := context.Background()
	aggregate := suite.newOrder()
	suite.Require().NoError(suite.repository.Add(ctx, aggregate))
	suite.tracker.events = nil

	suite.Require().NoError(aggregate.ChangeStatus(order.StatusConfirmed))
	suite.Require().NoError(suite.repository.Update(ctx, aggregate))

	loaded, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.Equal(order.StatusConfirmed, loaded.Status())
	suite.True(loaded.TotalPrice().Equal(aggregate.TotalPrice()))
	suite.Require().Len(loaded.Items(), 2)

	suite.Require().Len(suite.tracker.events, 1)
	suite.Equal(order.EventOrderStatusChanged, suite.tracker.events[0].EventName())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_MissingOrder() {
	aggregate := suite.newOrder()
	aggregate.ClearDomainEvents()

	err := suite.repository.Update(context.Background(), aggregate)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NotFound() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
