package postgres_test

import (
	"context"
	"testing"
	"time"

	"ecommerce/internal/adapters/out/postgres"
	"ecommerce/internal/adapters/out/postgres/orderrepo"
	"ecommerce/internal/adapters/out/postgres/outboxrepo"
	"ecommerce/internal/core/domain/model/kernel"
	"ecommerce/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *tcpostgres.PostgresContainer
	db        *gorm.DB
	factory   *postgres.GormUnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:15-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("testpass"),
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

	suite.Require().NoError(db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.OrderItemDTO{},
		&outboxrepo.OutboxMessageDTO{},
	))
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders, order_items, outbox_messages").Error)

	suite.factory = postgres.NewGormUnitOfWorkFactory(suite.db)
}

func (suite *UnitOfWorkIntegrationTestSuite) newOrder() *order.Order {
	item, err := order.NewItem(kernel.NewUUID(), kernel.NewUUID(), 1, decimal.RequireFromString("49.90"))
	suite.Require().NoError(err)

	aggregate, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(),
		[]order.Item{item}, time.Now().UTC().Truncate(time.Microsecond))
	suite.Require().NoError(err)
	return aggregate
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_WritesOutboxRowForTrackedEvent() {
	ctx := context.Background()
	aggregate := suite.newOrder()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, aggregate))
	suite.Require().Len(uow.Events(), 1)
	suite.Require().NoError(uow.Commit(ctx))

	messages, err := outboxrepo.NewGormOutboxRepository(suite.db).
		FetchUnsent(ctx, time.Now().Add(time.Minute), 10)
	suite.Require().NoError(err)
	suite.Require().Len(messages, 1)
	suite.Equal(order.EventOrderCreated, messages[0].Name)
	suite.True(messages[0].EventID.IsEqual(uow.Events()[0].EventID()))
	suite.Nil(messages[0].SentAt)

	loaded, err := orderrepo.NewGormOrderRepository(suite.db, &noopTracker{}).Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.Equal(order.StatusPending, loaded.Status())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsChangesAndEvents() {
	ctx := context.Background()
	aggregate := suite.newOrder()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, aggregate))
	suite.Require().NoError(uow.Rollback(ctx))

	suite.Empty(uow.Events())

	var orderCount, outboxCount int64
	suite.Require().NoError(suite.db.Model(&orderrepo.OrderDTO{}).Count(&orderCount).Error)
	suite.Require().NoError(suite.db.Model(&outboxrepo.OutboxMessageDTO{}).Count(&outboxCount).Error)
	suite.Zero(orderCount)
	suite.Zero(outboxCount)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollbackAfterCommit_IsSafe() {
	ctx := context.Background()
	aggregate := suite.newOrder()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, aggregate))
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction)

	var orderCount int64
	suite.Require().NoError(suite.db.Model(&orderrepo.OrderDTO{}).Count(&orderCount).Error)
	suite.EqualValues(1, orderCount)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_NoEventsWritesNoOutboxRows() {
	ctx := context.Background()
	aggregate := suite.newOrder()
	aggregate.ClearDomainEvents()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, aggregate))
	suite.Require().NoError(uow.Commit(ctx))

	var outboxCount int64
	suite.Require().NoError(suite.db.Model(&outboxrepo.OutboxMessageDTO{}).Count(&outboxCount).Error)
	suite.Zero(outboxCount)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestMarkSentByEventID() {
	ctx := context.Background()
	aggregate := suite.newOrder()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, aggregate))
	eventID := uow.Events()[0].EventID()
	suite.Require().NoError(uow.Commit(ctx))

	outbox := outboxrepo.NewGormOutboxRepository(suite.db)
	suite.Require().NoError(outbox.MarkSentByEventID(ctx, eventID))

	messages, err := outbox.FetchUnsent(ctx, time.Now().Add(time.Minute), 10)
	suite.Require().NoError(err)
	suite.Empty(messages)
}

type noopTracker struct{}

func (t *noopTracker) TrackEvents(_ []kernel.DomainEvent) {}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
