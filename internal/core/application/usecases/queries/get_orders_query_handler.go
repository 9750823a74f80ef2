package queries

import (
	"context"
	"time"

	"ecommerce/internal/core/domain/model/kernel"
	"ecommerce/internal/core/domain/model/user"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetOrdersQueryHandler reads order list data straight from the database.
// Orders and their items are fetched with one joined query and grouped in
// memory, newest orders first.
type GetOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetOrdersQueryHandler creates a handler for order list queries.
func NewGetOrdersQueryHandler(db *gorm.DB) GetOrdersQueryHandler {
	return GetOrdersQueryHandler{db: db}
}

// Handle executes the query. Admins get every order; any other role is scoped
// to orders where the requester is the customer.
func (h GetOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetOrdersQuery,
) ([]GetOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sql := `
		SELECT
			o.id,
			o.customer_id,
			o.status,
			o.total_price,
			o.created_at,
			i.id,
			i.product_id,
			i.quantity,
			i.price
		FROM orders o
		LEFT JOIN order_items i ON i.order_id = o.id
	`
	args := make([]any, 0, 1)
	if query.Role() != user.RoleAdmin {
		sql += ` WHERE o.customer_id = ?`
		args = append(args, query.UserID().String())
	}
	sql += ` ORDER BY o.created_at DESC, o.id, i.id`

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]GetOrdersQueryResponse, 0)
	index := make(map[kernel.UUID]int)

	for rows.Next() {
		var (
			orderID    uuid.UUID
			customerID uuid.UUID
			status     string
			totalPrice decimal.Decimal
			createdAt  time.Time
			itemID     *uuid.UUID
			productID  *uuid.UUID
			quantity   *int
			price      decimal.NullDecimal
		)

		err = rows.Scan(
			&orderID,
			&customerID,
			&status,
			&totalPrice,
			&createdAt,
			&itemID,
			&productID,
			&quantity,
			&price,
		)
		if err != nil {
			return nil, err
		}

		id, idErr := kernel.UUIDFromBytes(orderID[:])
		if idErr != nil {
			return nil, idErr
		}

		pos, seen := index[id]
		if !seen {
			cID, cErr := kernel.UUIDFromBytes(customerID[:])
			if cErr != nil {
				return nil, cErr
			}

			orders = append(orders, GetOrdersQueryResponse{
				ID:         id,
				CustomerID: cID,
				Status:     status,
				TotalPrice: totalPrice,
				CreatedAt:  createdAt,
				Items:      make([]GetOrdersQueryItemResponse, 0),
			})
			pos = len(orders) - 1
			index[id] = pos
		}

		if itemID == nil {
			continue
		}

		iID, iErr := kernel.UUIDFromBytes((*itemID)[:])
		if iErr != nil {
			return nil, iErr
		}
		pID, pErr := kernel.UUIDFromBytes((*productID)[:])
		if pErr != nil {
			return nil, pErr
		}

		orders[pos].Items = append(orders[pos].Items, GetOrdersQueryItemResponse{
			ID:        iID,
			ProductID: pID,
			Quantity:  *quantity,
			Price:     price.Decimal,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
