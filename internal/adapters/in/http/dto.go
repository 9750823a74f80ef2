package http

import (
	"time"

	"ecommerce/internal/core/application/usecases/queries"
	"ecommerce/internal/core/domain/model/delivery"
	"ecommerce/internal/core/domain/model/notification"
	"ecommerce/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// CreateOrderRequest is the body of POST /orders/.
type CreateOrderRequest struct {
	Items []OrderLineRequest `json:"items" validate:"required,min=1,dive"`
}

// OrderLineRequest is one requested product/quantity pair.
type OrderLineRequest struct {
	Product  string `json:"product" validate:"required,uuid"`
	Quantity int    `json:"quantity" validate:"required,gt=0"`
}

// ChangeOrderStatusRequest is the body of PATCH /orders/{id}/.
type ChangeOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// CreateDeliveryRequest is the body of POST /delivery/create/.
type CreateDeliveryRequest struct {
	Order          string `json:"order" validate:"required,uuid"`
	DeliveryPerson string `json:"delivery_person" validate:"required,uuid"`
}

// ChangeDeliveryStatusRequest is the body of PATCH /delivery/{id}/.
type ChangeDeliveryStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// OrderItemResponse is one order line in an order body.
type OrderItemResponse struct {
	ID       string          `json:"id"`
	Product  string          `json:"product"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// OrderResponse is the order body returned by order endpoints.
type OrderResponse struct {
	ID         string              `json:"id"`
	Customer   string              `json:"customer"`
	Status     string              `json:"status"`
	TotalPrice decimal.Decimal     `json:"total_price"`
	CreatedAt  time.Time           `json:"created_at"`
	Items      []OrderItemResponse `json:"items"`
}

// DeliveryResponse is the delivery body returned by delivery endpoints.
type DeliveryResponse struct {
	ID             string     `json:"id"`
	Order          string     `json:"order"`
	DeliveryPerson string     `json:"delivery_person"`
	Status         string     `json:"status"`
	AssignedAt     time.Time  `json:"assigned_at"`
	DeliveredAt    *time.Time `json:"delivered_at"`
}

// NotificationResponse is the notification body returned by notification
// endpoints.
type NotificationResponse struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Kind      string    `json:"kind"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

func orderToResponse(aggregate *order.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, OrderItemResponse{
			ID:       item.ID().String(),
			Product:  item.ProductID().String(),
			Quantity: item.Quantity(),
			Price:    item.Price(),
		})
	}

	return OrderResponse{
		ID:         aggregate.ID().String(),
		Customer:   aggregate.CustomerID().String(),
		Status:     aggregate.Status().String(),
		TotalPrice: aggregate.TotalPrice(),
		CreatedAt:  aggregate.CreatedAt(),
		Items:      items,
	}
}

func orderQueryToResponse(row queries.GetOrdersQueryResponse) OrderResponse {
	items := make([]OrderItemResponse, 0, len(row.Items))
	for _, item := range row.Items {
		items = append(items, OrderItemResponse{
			ID:       item.ID.String(),
			Product:  item.ProductID.String(),
			Quantity: item.Quantity,
			Price:    item.Price,
		})
	}

	return OrderResponse{
		ID:         row.ID.String(),
		Customer:   row.CustomerID.String(),
		Status:     row.Status,
		TotalPrice: row.TotalPrice,
		CreatedAt:  row.CreatedAt,
		Items:      items,
	}
}

func deliveryToResponse(aggregate *delivery.Delivery) DeliveryResponse {
	return DeliveryResponse{
		ID:             aggregate.ID().String(),
		Order:          aggregate.OrderID().String(),
		DeliveryPerson: aggregate.DeliveryPersonID().String(),
		Status:         aggregate.Status().String(),
		AssignedAt:     aggregate.AssignedAt(),
		DeliveredAt:    aggregate.DeliveredAt(),
	}
}

func deliveryQueryToResponse(row queries.GetDeliveriesQueryResponse) DeliveryResponse {
	return DeliveryResponse{
		ID:             row.ID.String(),
		Order:          row.OrderID.String(),
		DeliveryPerson: row.DeliveryPersonID.String(),
		Status:         row.Status,
		AssignedAt:     row.AssignedAt,
		DeliveredAt:    row.DeliveredAt,
	}
}

func notificationToResponse(entity *notification.Notification) NotificationResponse {
	return NotificationResponse{
		ID:        entity.ID().String(),
		Message:   entity.Message(),
		Kind:      entity.Kind().String(),
		IsRead:    entity.IsRead(),
		CreatedAt: entity.CreatedAt(),
	}
}

func notificationQueryToResponse(row queries.GetNotificationsQueryResponse) NotificationResponse {
	return NotificationResponse{
		ID:        row.ID.String(),
		Message:   row.Message,
		Kind:      row.Kind,
		IsRead:    row.IsRead,
		CreatedAt: row.CreatedAt,
	}
}
