package deliveryrepo_test

import (
	"context"
	"testing"
	"time"

	"ecommerce/internal/adapters/out/postgres/deliveryrepo"
	"ecommerce/internal/core/domain/model/delivery"
	"ecommerce/internal/core/domain/model/kernel"
	"ecommerce/internal/pkg/errs"

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

type DeliveryRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *deliveryrepo.GormDeliveryRepository
	tracker    *stubEventTracker
}

func (suite *DeliveryRepositoryIntegrationTestSuite) SetupSuite() {
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

	suite.Require().NoError(db.AutoMigrate(&deliveryrepo.DeliveryDTO{}))
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *DeliveryRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE deliveries").Error)

	suite.tracker = new(stubEventTracker)
	suite.repository = deliveryrepo.NewGormDeliveryRepository(suite.db, suite.tracker)
}

func (suite *DeliveryRepositoryIntegrationTestSuite) newDelivery() *delivery.Delivery {
	d, err := delivery.NewDelivery(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		time.Now().UTC().Truncate(time.Microsecond))
	suite.Require().NoError(err)
	return d
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestAddAndGet() {
	ctx := context.Background()
	d := suite.newDelivery()

	suite.Require().NoError(suite.repository.Add(ctx, d))

	loaded, err := suite.repository.Get(ctx, d.ID())
	suite.Require().NoError(err)
	suite.True(loaded.ID().IsEqual(d.ID()))
	suite.True(loaded.OrderID().IsEqual(d.OrderID()))
	suite.True(loaded.DeliveryPersonID().IsEqual(d.DeliveryPersonID()))
	suite.Equal(delivery.StatusAssigned, loaded.Status())
	suite.Nil(loaded.DeliveredAt())
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestAdd_TracksCreatedEvent() {
	ctx := context.Background()
	d := suite.newDelivery()

	suite.Require().NoError(suite.repository.Add(ctx, d))

	suite.Require().Len(suite.tracker.events, 1)
	suite.Equal(delivery.EventDeliveryCreated, suite.tracker.events[0].EventName())
	suite.Empty(d.DomainEvents())
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestAdd_SecondDeliveryForSameOrderRejected() {
	ctx := context.Background()
	first := suite.newDelivery()
	suite.Require().NoError(suite.repository.Add(ctx, first))

	second, err := delivery.NewDelivery(kernel.NewUUID(), first.OrderID(), kernel.NewUUID(), time.Now())
	suite.Require().NoError(err)

	err = suite.repository.Add(ctx, second)
	suite.Require().ErrorIs(err, delivery.ErrDeliveryAlreadyExists)
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestGetByOrderID() {
	ctx := context.Background()
	d := suite.newDelivery()
	suite.Require().NoError(suite.repository.Add(ctx, d))

	loaded, err := suite.repository.GetByOrderID(ctx, d.OrderID())
	suite.Require().NoError(err)
	suite.True(loaded.ID().IsEqual(d.ID()))

	_, err = suite.repository.GetByOrderID(ctx, kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestUpdate_PersistsStatusAndDeliveredAt() {
	ctx := context.Background()
	d := suite.newDelivery()
	suite.Require().NoError(suite.repository.Add(ctx, d))

	now := time.Now().UTC().Truncate(time.Microsecond)
	suite.Require().NoError(d.ChangeStatus(delivery.StatusPicked, now))
	suite.Require().NoError(d.ChangeStatus(delivery.StatusInTransit, now))
	suite.Require().NoError(d.ChangeStatus(delivery.StatusDelivered, now))
	suite.Require().NoError(suite.repository.Update(ctx, d))

	loaded, err := suite.repository.Get(ctx, d.ID())
	suite.Require().NoError(err)
	suite.Equal(delivery.StatusDelivered, loaded.Status())
	suite.Require().NotNil(loaded.DeliveredAt())
	suite.WithinDuration(now, *loaded.DeliveredAt(), time.Second)
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestGet_NotFound() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func TestDeliveryRepositoryIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(DeliveryRepositoryIntegrationTestSuite))
}
