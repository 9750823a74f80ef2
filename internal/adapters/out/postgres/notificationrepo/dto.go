// Package notificationrepo implements notification persistence with GORM.
package notificationrepo

import (
	"time"

	"ecommerce/internal/core/domain/model/kernel"
	"ecommerce/internal/core/domain/model/notification"

	"github.com/google/uuid"
)

// NotificationDTO represents the database structure for persisting
// notifications.
type NotificationDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;index;not null"`
	Message   string    `gorm:"type:text;not null"`
	Kind      string    `gorm:"type:varchar(20);not null"`
	IsRead    bool      `gorm:"not null;default:false"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName overrides GORM's default naming to use "notifications".
func (NotificationDTO) TableName() string {
	return "notifications"
}

func fromDomain(entity *notification.Notification) NotificationDTO {
	return NotificationDTO{
		ID:        entity.ID().Bytes(),
		UserID:    entity.UserID().Bytes(),
		Message:   entity.Message(),
		Kind:      entity.Kind().String(),
		IsRead:    entity.IsRead(),
		CreatedAt: entity.CreatedAt(),
	}
}

func toDomain(dto NotificationDTO) (*notification.Notification, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}

	return notification.RestoreNotification(id, userID, dto.Message,
		notification.Kind(dto.Kind), dto.IsRead, dto.CreatedAt)
}
