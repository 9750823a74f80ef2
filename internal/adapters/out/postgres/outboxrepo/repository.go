package outboxrepo

import (
	"context"
	"time"

	"ecommerce/internal/core/domain/model/kernel"
	"ecommerce/internal/core/ports"
	"ecommerce/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOutboxRepository implements OutboxRepository using GORM.
type GormOutboxRepository struct {
	db *gorm.DB
}

// NewGormOutboxRepository creates a new GORM outbox repository.
func NewGormOutboxRepository(db *gorm.DB) *GormOutboxRepository {
	return &GormOutboxRepository{db: db}
}

// Add persists outbox messages.
func (r *GormOutboxRepository) Add(ctx context.Context, messages []ports.OutboxMessage) error {
	if len(messages) == 0 {
		return nil
	}

	dtos := make([]OutboxMessageDTO, 0, len(messages))
	for _, message := range messages {
		dtos = append(dtos, fromPort(message))
	}

	return r.db.WithContext(ctx).Create(&dtos).Error
}

// FetchUnsent retrieves up to limit unsent messages created before cutoff,
// oldest first.
func (r *GormOutboxRepository) FetchUnsent(ctx context.Context, cutoff time.Time, limit int) ([]ports.OutboxMessage, error) {
	var dtos []OutboxMessageDTO
	err := r.db.WithContext(ctx).
		Where("sent_at IS NULL AND created_at < ?", cutoff).
		Order("created_at, id").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	messages := make([]ports.OutboxMessage, 0, len(dtos))
	for _, dto := range dtos {
		message, convErr := toPort(dto)
		if convErr != nil {
			return nil, convErr
		}
		messages = append(messages, message)
	}

	return messages, nil
}

// MarkSent stamps a message as dispatched.
func (r *GormOutboxRepository) MarkSent(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Model(&OutboxMessageDTO{}).
		Where("id = ?", id).
		Update("sent_at", time.Now())
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("outbox_message", id)
	}

	return nil
}

// MarkSentByEventID stamps the message carrying the given event as
// dispatched.
func (r *GormOutboxRepository) MarkSentByEventID(ctx context.Context, eventID kernel.UUID) error {
	result := r.db.WithContext(ctx).Model(&OutboxMessageDTO{}).
		Where("event_id = ?", eventID.Bytes()).
		Update("sent_at", time.Now())
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("outbox_message", eventID.String())
	}

	return nil
}
