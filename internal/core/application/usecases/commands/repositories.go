// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS
// architecture. All commands follow a consistent shape: validation,
// transaction management, persistence, and post-commit event dispatch.
package commands

import (
	"context"

	"ecommerce/internal/core/domain/model/kernel"
	"ecommerce/internal/core/ports"
)

// EventDispatcher fans committed domain events out to their effect handlers.
// Dispatch never returns an error: side-effect failures are logged by the
// router and must not surface into the command that triggered them.
type EventDispatcher interface {
	Dispatch(ctx context.Context, events []kernel.DomainEvent)
}

// Unit of Work interfaces provide transaction management for command
// handlers. Each command depends on the narrowest composition it needs.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// EventCollector exposes the domain events collected during the unit of
	// work, for post-commit dispatch.
	EventCollector interface {
		Events() []kernel.DomainEvent
	}

	// ProductRepoFactory provides access to the product repository within a
	// transaction.
	ProductRepoFactory interface {
		ProductRepository() ports.ProductRepository
	}

	// OrderRepoFactory provides access to the order repository within a
	// transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// DeliveryRepoFactory provides access to the delivery repository within a
	// transaction.
	DeliveryRepoFactory interface {
		DeliveryRepository() ports.DeliveryRepository
	}

	// UserRepoFactory provides access to the user repository within a
	// transaction.
	UserRepoFactory interface {
		UserRepository() ports.UserRepository
	}

	// NotificationRepoFactory provides access to the notification repository
	// within a transaction.
	NotificationRepoFactory interface {
		NotificationRepository() ports.NotificationRepository
	}

	// OrderUoW manages transactions for order creation and lifecycle
	// operations, which touch orders and product stock together.
	OrderUoW interface {
		TxManager
		EventCollector
		OrderRepoFactory
		ProductRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// DeliveryUoW manages transactions for delivery operations, which read
	// orders and users and write deliveries.
	DeliveryUoW interface {
		TxManager
		EventCollector
		DeliveryRepoFactory
		OrderRepoFactory
		UserRepoFactory
	}

	// DeliveryUoWFactory creates new delivery unit of work instances.
	DeliveryUoWFactory interface {
		Create() DeliveryUoW
	}

	// NotificationUoW manages transactions for notification operations.
	NotificationUoW interface {
		TxManager
		NotificationRepoFactory
	}

	// NotificationUoWFactory creates new notification unit of work instances.
	NotificationUoWFactory interface {
		Create() NotificationUoW
	}
)
