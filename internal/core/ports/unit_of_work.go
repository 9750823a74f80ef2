package ports

import (
	"context"

	"ecommerce/internal/core/domain/model/kernel"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary. It provides
// transaction control, transaction-bound repositories, and collects the
// domain events raised by aggregates saved through those repositories.
//
// Commit writes the collected events to the outbox table inside the same
// transaction before committing, so a state change and its pending side
// effects become durable together. After a successful commit the caller
// hands Events() to the event router for synchronous dispatch.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit persists collected events to the outbox and commits the
	// transaction. Returns an error if no transaction is active or the
	// commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction, discarding state changes
	// and collected events alike.
	Rollback(ctx context.Context) error

	// Events returns the domain events collected during this unit of work.
	// Meaningful after Commit; the router dispatches them post-commit.
	Events() []kernel.DomainEvent

	// ProductRepository returns a ProductRepository bound to the current
	// transaction.
	ProductRepository() ProductRepository

	// OrderRepository returns an OrderRepository bound to the current
	// transaction.
	OrderRepository() OrderRepository

	// DeliveryRepository returns a DeliveryRepository bound to the current
	// transaction.
	DeliveryRepository() DeliveryRepository

	// UserRepository returns a UserRepository bound to the current
	// transaction.
	UserRepository() UserRepository

	// NotificationRepository returns a NotificationRepository bound to the
	// current transaction.
	NotificationRepository() NotificationRepository
}
