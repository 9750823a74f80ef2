package queries

import (
	"context"
	"time"

	"ecommerce/internal/core/domain/model/kernel"
	"ecommerce/internal/core/domain/model/user"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetDeliveriesQueryHandler reads delivery list data straight from the
// database, newest assignments first.
type GetDeliveriesQueryHandler struct {
	db *gorm.DB
}

// NewGetDeliveriesQueryHandler creates a handler for delivery list queries.
func NewGetDeliveriesQueryHandler(db *gorm.DB) GetDeliveriesQueryHandler {
	return GetDeliveriesQueryHandler{db: db}
}

// Handle executes the query. Admins get every delivery; any other role is
// scoped to deliveries assigned to the requester.
func (h GetDeliveriesQueryHandler) Handle(
	ctx context.Context,
	query GetDeliveriesQuery,
) ([]GetDeliveriesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sql := `
		SELECT
			id,
			order_id,
			delivery_person_id,
			status,
			assigned_at,
			delivered_at
		FROM deliveries
	`
	args := make([]any, 0, 1)
	if query.Role() != user.RoleAdmin {
		sql += ` WHERE delivery_person_id = ?`
		args = append(args, query.UserID().String())
	}
	sql += ` ORDER BY assigned_at DESC, id`

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	deliveries := make([]GetDeliveriesQueryResponse, 0)

	for rows.Next() {
		var (
			id          uuid.UUID
			orderID     uuid.UUID
			personID    uuid.UUID
			status      string
			assignedAt  time.Time
			deliveredAt *time.Time
		)

		err = rows.Scan(
			&id,
			&orderID,
			&personID,
			&status,
			&assignedAt,
			&deliveredAt,
		)
		if err != nil {
			return nil, err
		}

		deliveryID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		oID, oErr := kernel.UUIDFromBytes(orderID[:])
		if oErr != nil {
			return nil, oErr
		}
		pID, pErr := kernel.UUIDFromBytes(personID[:])
		if pErr != nil {
			return nil, pErr
		}

		deliveries = append(deliveries, GetDeliveriesQueryResponse{
			ID:               deliveryID,
			OrderID:          oID,
			DeliveryPersonID: pID,
			Status:           status,
			AssignedAt:       assignedAt,
			DeliveredAt:      deliveredAt,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return deliveries, nil
}
