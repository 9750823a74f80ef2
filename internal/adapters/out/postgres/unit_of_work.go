// Package postgres provides the GORM-based Unit of Work and repository
// factories. A unit of work owns one database transaction, hands out
// transaction-bound repositories, and collects the domain events raised by
// aggregates saved through them. Commit serializes the collected events into
// the outbox table inside the same transaction, so a state change and its
// pending side effects become durable atomically.
package postgres

import (
	"context"
	"time"

	"ecommerce/internal/adapters/out/postgres/deliveryrepo"
	"ecommerce/internal/adapters/out/postgres/notificationrepo"
	"ecommerce/internal/adapters/out/postgres/orderrepo"
	"ecommerce/internal/adapters/out/postgres/outboxrepo"
	"ecommerce/internal/adapters/out/postgres/productrepo"
	"ecommerce/internal/adapters/out/postgres/userrepo"
	"ecommerce/internal/core/application/events"
	"ecommerce/internal/core/domain/model/kernel"
	"ecommerce/internal/core/ports"

	"gorm.io/gorm"
)

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one database
// connection. Each business operation gets a fresh instance with its own
// transaction state.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory over the given connection.
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a new UnitOfWork ready for one business transaction.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{db: f.db}
}

// GormUnitOfWork coordinates a database transaction and the domain events
// raised within it.
type GormUnitOfWork struct {
	db     *gorm.DB
	tx     *gorm.DB
	events []kernel.DomainEvent
}

// Begin starts a transaction. Calling Begin on an already-open unit of work
// is a no-op rather than a nested transaction.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		return uow.tx.Error
	}

	return nil
}

// Commit writes the collected events to the outbox inside the transaction,
// then commits. Returns gorm.ErrInvalidTransaction when no transaction is
// active.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	if len(uow.events) > 0 {
		messages := make([]ports.OutboxMessage, 0, len(uow.events))
		now := time.Now()
		for _, event := range uow.events {
			name, payload, err := events.Encode(event)
			if err != nil {
				return err
			}
			messages = append(messages, ports.OutboxMessage{
				EventID:   event.EventID(),
				Name:      name,
				Payload:   payload,
				CreatedAt: now,
			})
		}

		if err := outboxrepo.NewGormOutboxRepository(uow.tx).Add(ctx, messages); err != nil {
			return err
		}
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards the transaction and the collected events. Returns
// gorm.ErrInvalidTransaction when no transaction is active, which lets
// callers run it unconditionally in a defer after a successful commit.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.events = nil
	return err
}

// Events returns the domain events collected during this unit of work.
func (uow *GormUnitOfWork) Events() []kernel.DomainEvent {
	return uow.events
}

// TrackEvents registers events raised by an aggregate saved through one of
// this unit of work's repositories.
func (uow *GormUnitOfWork) TrackEvents(events []kernel.DomainEvent) {
	uow.events = append(uow.events, events...)
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

// ProductRepository returns a product repository bound to the current
// transaction.
func (uow *GormUnitOfWork) ProductRepository() ports.ProductRepository {
	return productrepo.NewGormProductRepository(uow.conn())
}

// OrderRepository returns an order repository bound to the current
// transaction.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

// DeliveryRepository returns a delivery repository bound to the current
// transaction.
func (uow *GormUnitOfWork) DeliveryRepository() ports.DeliveryRepository {
	return deliveryrepo.NewGormDeliveryRepository(uow.conn(), uow)
}

// UserRepository returns a user repository bound to the current transaction.
func (uow *GormUnitOfWork) UserRepository() ports.UserRepository {
	return userrepo.NewGormUserRepository(uow.conn())
}

// NotificationRepository returns a notification repository bound to the
// current transaction.
func (uow *GormUnitOfWork) NotificationRepository() ports.NotificationRepository {
	return notificationrepo.NewGormNotificationRepository(uow.conn())
}
