// Package deliveryrepo implements delivery persistence with GORM. The
// deliveries table carries a unique index on order_id; this is the storage
// half of the one-delivery-per-order invariant and holds under concurrent
// assignment where an application-level existence check alone would not.
package deliveryrepo

import (
	"time"

	"ecommerce/internal/core/domain/model/delivery"
	"ecommerce/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DeliveryDTO represents the database structure for persisting deliveries.
type DeliveryDTO struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderID          uuid.UUID  `gorm:"type:uuid;uniqueIndex;not null"`
	DeliveryPersonID uuid.UUID  `gorm:"type:uuid;index;not null"`
	Status           string     `gorm:"type:varchar(20);index;not null"`
	AssignedAt       time.Time  `gorm:"not null"`
	DeliveredAt      *time.Time `gorm:""`
}

// TableName overrides GORM's default naming to use "deliveries".
func (DeliveryDTO) TableName() string {
	return "deliveries"
}

func fromDomain(aggregate *delivery.Delivery) DeliveryDTO {
	return DeliveryDTO{
		ID:               aggregate.ID().Bytes(),
		OrderID:          aggregate.OrderID().Bytes(),
		DeliveryPersonID: aggregate.DeliveryPersonID().Bytes(),
		Status:           aggregate.Status().String(),
		AssignedAt:       aggregate.AssignedAt(),
		DeliveredAt:      aggregate.DeliveredAt(),
	}
}

func toDomain(dto DeliveryDTO) (*delivery.Delivery, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	personID, err := kernel.UUIDFromBytes(dto.DeliveryPersonID[:])
	if err != nil {
		return nil, err
	}

	status, err := delivery.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	return delivery.RestoreDelivery(id, orderID, personID, status, dto.AssignedAt, dto.DeliveredAt)
}
