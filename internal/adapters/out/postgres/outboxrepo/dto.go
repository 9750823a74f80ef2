// Package outboxrepo implements the event outbox table with GORM. Rows are
// written by the unit of work inside the committing transaction and consumed
// by the relay job.
package outboxrepo

import (
	"time"

	"ecommerce/internal/core/domain/model/kernel"
	"ecommerce/internal/core/ports"

	"github.com/google/uuid"
)

// OutboxMessageDTO represents the database structure for outbox rows.
type OutboxMessageDTO struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	EventID   uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	Name      string    `gorm:"type:varchar(64);not null"`
	Payload   []byte    `gorm:"type:jsonb;not null"`
	CreatedAt time.Time `gorm:"index;not null"`
	SentAt    *time.Time
}

// TableName overrides GORM's default naming to use "outbox_messages".
func (OutboxMessageDTO) TableName() string {
	return "outbox_messages"
}

func fromPort(message ports.OutboxMessage) OutboxMessageDTO {
	return OutboxMessageDTO{
		ID:        message.ID,
		EventID:   message.EventID.Bytes(),
		Name:      message.Name,
		Payload:   message.Payload,
		CreatedAt: message.CreatedAt,
		SentAt:    message.SentAt,
	}
}

func toPort(dto OutboxMessageDTO) (ports.OutboxMessage, error) {
	eventID, err := kernel.UUIDFromBytes(dto.EventID[:])
	if err != nil {
		return ports.OutboxMessage{}, err
	}

	return ports.OutboxMessage{
		ID:        dto.ID,
		EventID:   eventID,
		Name:      dto.Name,
		Payload:   dto.Payload,
		CreatedAt: dto.CreatedAt,
		SentAt:    dto.SentAt,
	}, nil
}
