package cmd

import (
	"log/slog"
	"os"

	httpadapter "ecommerce/internal/adapters/in/http"
	"ecommerce/internal/adapters/out/mail"
	"ecommerce/internal/adapters/out/postgres"
	"ecommerce/internal/adapters/out/postgres/deliveryrepo"
	"ecommerce/internal/adapters/out/postgres/orderrepo"
	"ecommerce/internal/adapters/out/postgres/outboxrepo"
	"ecommerce/internal/adapters/out/postgres/userrepo"
	"ecommerce/internal/core/application/dispatch"
	"ecommerce/internal/core/application/events"
	"ecommerce/internal/core/application/usecases/commands"
	"ecommerce/internal/core/application/usecases/queries"
	"ecommerce/internal/core/domain/model/kernel"
	"ecommerce/internal/core/domain/services"
	"ecommerce/internal/core/ports"
	"ecommerce/internal/jobs"

	"gorm.io/gorm"
)

// CompositionRoot wires the application object graph: the unit of work
// factory, the event router with its effect handlers, the post-commit
// dispatcher, and every command and query handler the HTTP adapter needs.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	logger     *slog.Logger
	outbox     ports.OutboxRepository
	router     *events.Router
	dispatcher events.OutboxDispatcher
	mailer     ports.Mailer
}

func NewCompositionRoot(config Config, gormDB *gorm.DB) *CompositionRoot {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	root := &CompositionRoot{
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		logger:     logger,
		outbox:     outboxrepo.NewGormOutboxRepository(gormDB),
		router:     events.NewRouter(logger),
		mailer:     createMailer(config, logger),
	}
	root.dispatcher = events.NewOutboxDispatcher(root.router, root.outbox, logger)

	// Effect handlers read outside any command transaction.
	notifier := dispatch.NewDispatcher(root.notificationUoWFactory())
	userReader := userrepo.NewGormUserRepository(gormDB)
	orderReader := orderrepo.NewGormOrderRepository(gormDB, noopEventTracker{})

	events.RegisterDefaultRoutes(
		root.router,
		notifier,
		userReader,
		orderReader,
		root.mailer,
		root.CreateAssignDeliveryCommandHandler(),
	)

	return root
}

func createMailer(config Config, logger *slog.Logger) ports.Mailer {
	if config.SMTPHost == "" {
		return mail.NewLogMailer(logger)
	}
	return mail.NewSMTPMailer(mail.SMTPConfig{
		Host:     config.SMTPHost,
		Port:     config.SMTPPort,
		Username: config.SMTPUser,
		Password: config.SMTPPassword,
		From:     config.SMTPFrom,
	})
}

// Logger returns the process-wide structured logger.
func (c *CompositionRoot) Logger() *slog.Logger {
	return c.logger
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) deliveryUoWFactory() commands.DeliveryUoWFactory {
	return FuncDeliveryUoWFactory(func() commands.DeliveryUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) notificationUoWFactory() commands.NotificationUoWFactory {
	return FuncNotificationUoWFactory(func() commands.NotificationUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), c.dispatcher)
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() commands.ChangeOrderStatusCommandHandler {
	return commands.NewChangeOrderStatusCommandHandler(c.orderUoWFactory(), c.dispatcher)
}

func (c *CompositionRoot) CreateCreateDeliveryCommandHandler() commands.CreateDeliveryCommandHandler {
	return commands.NewCreateDeliveryCommandHandler(c.deliveryUoWFactory(), c.dispatcher)
}

func (c *CompositionRoot) CreateChangeDeliveryStatusCommandHandler() commands.ChangeDeliveryStatusCommandHandler {
	return commands.NewChangeDeliveryStatusCommandHandler(c.deliveryUoWFactory(), c.dispatcher)
}

func (c *CompositionRoot) CreateAssignDeliveryCommandHandler() commands.AssignDeliveryCommandHandler {
	return commands.NewAssignDeliveryCommandHandler(
		c.deliveryUoWFactory(),
		services.NewDeliveryAssigner(),
		c.dispatcher,
	)
}

func (c *CompositionRoot) CreateMarkNotificationReadCommandHandler() commands.MarkNotificationReadCommandHandler {
	return commands.NewMarkNotificationReadCommandHandler(c.notificationUoWFactory())
}

func (c *CompositionRoot) CreateGetOrdersQueryHandler() queries.GetOrdersQueryHandler {
	return queries.NewGetOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetDeliveriesQueryHandler() queries.GetDeliveriesQueryHandler {
	return queries.NewGetDeliveriesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetNotificationsQueryHandler() queries.GetNotificationsQueryHandler {
	return queries.NewGetNotificationsQueryHandler(c.gormDB)
}

// CreateHTTPServer builds the inbound HTTP adapter over the handlers above.
func (c *CompositionRoot) CreateHTTPServer() *httpadapter.Server {
	return httpadapter.NewServer(
		userrepo.NewGormUserRepository(c.gormDB),
		deliveryrepo.NewGormDeliveryRepository(c.gormDB, noopEventTracker{}),
		c.CreateCreateOrderCommandHandler(),
		c.CreateChangeOrderStatusCommandHandler(),
		c.CreateCreateDeliveryCommandHandler(),
		c.CreateChangeDeliveryStatusCommandHandler(),
		c.CreateMarkNotificationReadCommandHandler(),
		c.CreateGetOrdersQueryHandler(),
		c.CreateGetDeliveriesQueryHandler(),
		c.CreateGetNotificationsQueryHandler(),
	)
}

// CreateJobManager builds the background jobs over the shared router and
// outbox.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.outbox, c.router, c.logger)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncDeliveryUoWFactory func() commands.DeliveryUoW

func (f FuncDeliveryUoWFactory) Create() commands.DeliveryUoW {
	return f()
}

type FuncNotificationUoWFactory func() commands.NotificationUoW

func (f FuncNotificationUoWFactory) Create() commands.NotificationUoW {
	return f()
}

// noopEventTracker backs repositories used for reads outside a unit of work.
// Read paths never raise domain events.
type noopEventTracker struct{}

func (noopEventTracker) TrackEvents(_ []kernel.DomainEvent) {}
