// Package http implements the inbound HTTP adapter on echo. Callers identify
// themselves with the X-User-Id header, which the identity middleware
// resolves against the users table; token issuance and real authentication
// live outside this service.
package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"ecommerce/internal/core/application/usecases/commands"
	"ecommerce/internal/core/application/usecases/queries"
	"ecommerce/internal/core/domain/model/delivery"
	"ecommerce/internal/core/domain/model/kernel"
	"ecommerce/internal/core/domain/model/order"
	"ecommerce/internal/core/domain/model/product"
	"ecommerce/internal/core/domain/model/user"
	"ecommerce/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const userContextKey = "authenticated_user"

// userReader resolves caller identity.
type userReader interface {
	Get(ctx context.Context, id kernel.UUID) (*user.User, error)
}

// deliveryReader loads deliveries for ownership checks before status updates.
type deliveryReader interface {
	Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error)
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	users      userReader
	deliveries deliveryReader

	// Command handlers
	createOrderHandler          commands.CreateOrderCommandHandler
	changeOrderStatusHandler    commands.ChangeOrderStatusCommandHandler
	createDeliveryHandler       commands.CreateDeliveryCommandHandler
	changeDeliveryStatusHandler commands.ChangeDeliveryStatusCommandHandler
	markNotificationReadHandler commands.MarkNotificationReadCommandHandler

	// Query handlers
	getOrdersHandler        queries.GetOrdersQueryHandler
	getDeliveriesHandler    queries.GetDeliveriesQueryHandler
	getNotificationsHandler queries.GetNotificationsQueryHandler
}

// NewServer creates the HTTP server with the required command and query
// handlers.
func NewServer(
	users userReader,
	deliveries deliveryReader,
	createOrderHandler commands.CreateOrderCommandHandler,
	changeOrderStatusHandler commands.ChangeOrderStatusCommandHandler,
	createDeliveryHandler commands.CreateDeliveryCommandHandler,
	changeDeliveryStatusHandler commands.ChangeDeliveryStatusCommandHandler,
	markNotificationReadHandler commands.MarkNotificationReadCommandHandler,
	getOrdersHandler queries.GetOrdersQueryHandler,
	getDeliveriesHandler queries.GetDeliveriesQueryHandler,
	getNotificationsHandler queries.GetNotificationsQueryHandler,
) *Server {
	return &Server{
		users:                       users,
		deliveries:                  deliveries,
		createOrderHandler:          createOrderHandler,
		changeOrderStatusHandler:    changeOrderStatusHandler,
		createDeliveryHandler:       createDeliveryHandler,
		changeDeliveryStatusHandler: changeDeliveryStatusHandler,
		markNotificationReadHandler: markNotificationReadHandler,
		getOrdersHandler:            getOrdersHandler,
		getDeliveriesHandler:        getDeliveriesHandler,
		getNotificationsHandler:     getNotificationsHandler,
	}
}

// RegisterRoutes wires middleware and all endpoints onto the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.Validator = NewRequestValidator()
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.GET("/health", s.Health)

	authenticated := e.Group("", s.identity)
	authenticated.POST("/orders/", s.CreateOrder)
	authenticated.GET("/orders/", s.GetOrders)
	authenticated.PATCH("/orders/:id/", s.ChangeOrderStatus)
	authenticated.POST("/delivery/create/", s.CreateDelivery)
	authenticated.GET("/delivery/", s.GetDeliveries)
	authenticated.PATCH("/delivery/:id/", s.ChangeDeliveryStatus)
	authenticated.GET("/notifications/", s.GetNotifications)
	authenticated.PATCH("/notifications/:id/read/", s.MarkNotificationRead)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

// identity resolves the X-User-Id header to a user and stores it in the
// request context.
func (s *Server) identity(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		header := ctx.Request().Header.Get("X-User-Id")
		if header == "" {
			return ctx.JSON(http.StatusUnauthorized, detail("Authentication credentials were not provided."))
		}

		userID, err := kernel.UUIDFromString(header)
		if err != nil {
			return ctx.JSON(http.StatusUnauthorized, detail("Invalid user."))
		}

		caller, err := s.users.Get(ctx.Request().Context(), userID)
		if err != nil {
			if errors.Is(err, errs.ErrObjectNotFound) {
				return ctx.JSON(http.StatusUnauthorized, detail("Invalid user."))
			}
			return s.respondError(ctx, err)
		}

		if !caller.IsActive() {
			return ctx.JSON(http.StatusForbidden, detail("User inactive or deleted."))
		}

		ctx.Set(userContextKey, caller)
		return next(ctx)
	}
}

func currentUser(ctx echo.Context) *user.User {
	return ctx.Get(userContextKey).(*user.User)
}

// CreateOrder handles POST /orders/ - places an order for the caller.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var request CreateOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, detail("Invalid request body."))
	}
	if err := ctx.Validate(&request); err != nil {
		return err
	}

	lines := make([]commands.OrderLine, 0, len(request.Items))
	for _, item := range request.Items {
		productID, err := kernel.UUIDFromString(item.Product)
		if err != nil {
			return s.respondError(ctx, err)
		}
		lines = append(lines, commands.OrderLine{ProductID: productID, Quantity: item.Quantity})
	}

	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), currentUser(ctx).ID(), lines)
	if err != nil {
		return s.respondError(ctx, err)
	}

	aggregate, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, orderToResponse(aggregate))
}

// GetOrders handles GET /orders/ - customers see their own orders, admins see
// all of them.
func (s *Server) GetOrders(ctx echo.Context) error {
	caller := currentUser(ctx)

	query, err := queries.NewGetOrdersQuery(caller.ID(), caller.Role())
	if err != nil {
		return s.respondError(ctx, err)
	}

	rows, err := s.getOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.respondError(ctx, err)
	}

	response := make([]OrderResponse, 0, len(rows))
	for _, row := range rows {
		response = append(response, orderQueryToResponse(row))
	}

	return ctx.JSON(http.StatusOK, response)
}

// ChangeOrderStatus handles PATCH /orders/:id/ - moves an order through its
// lifecycle. Only admins and delivery personnel may drive order status.
func (s *Server) ChangeOrderStatus(ctx echo.Context) error {
	caller := currentUser(ctx)
	if caller.Role() != user.RoleAdmin && caller.Role() != user.RoleDelivery {
		return ctx.JSON(http.StatusForbidden, detail("You do not have permission to perform this action."))
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return ctx.JSON(http.StatusNotFound, detail("Not found."))
	}

	var request ChangeOrderStatusRequest
	if err = ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, detail("Invalid request body."))
	}
	if err = ctx.Validate(&request); err != nil {
		return err
	}

	status, err := order.StatusFromString(request.Status)
	if err != nil {
		return s.respondError(ctx, err)
	}

	cmd, err := commands.NewChangeOrderStatusCommand(orderID, status)
	if err != nil {
		return s.respondError(ctx, err)
	}

	aggregate, err := s.changeOrderStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderToResponse(aggregate))
}

// CreateDelivery handles POST /delivery/create/ - manual delivery assignment,
// admin only.
func (s *Server) CreateDelivery(ctx echo.Context) error {
	if currentUser(ctx).Role() != user.RoleAdmin {
		return ctx.JSON(http.StatusForbidden, detail("You do not have permission to perform this action."))
	}

	var request CreateDeliveryRequest
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, detail("Invalid request body."))
	}
	if err := ctx.Validate(&request); err != nil {
		return err
	}

	orderID, err := kernel.UUIDFromString(request.Order)
	if err != nil {
		return s.respondError(ctx, err)
	}
	personID, err := kernel.UUIDFromString(request.DeliveryPerson)
	if err != nil {
		return s.respondError(ctx, err)
	}

	cmd, err := commands.NewCreateDeliveryCommand(orderID, personID)
	if err != nil {
		return s.respondError(ctx, err)
	}

	aggregate, err := s.createDeliveryHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, deliveryToResponse(aggregate))
}

// GetDeliveries handles GET /delivery/ - delivery personnel see their own
// assignments, admins see all of them.
func (s *Server) GetDeliveries(ctx echo.Context) error {
	caller := currentUser(ctx)
	if caller.Role() != user.RoleAdmin && caller.Role() != user.RoleDelivery {
		return ctx.JSON(http.StatusForbidden, detail("You do not have permission to perform this action."))
	}

	query, err := queries.NewGetDeliveriesQuery(caller.ID(), caller.Role())
	if err != nil {
		return s.respondError(ctx, err)
	}

	rows, err := s.getDeliveriesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.respondError(ctx, err)
	}

	response := make([]DeliveryResponse, 0, len(rows))
	for _, row := range rows {
		response = append(response, deliveryQueryToResponse(row))
	}

	return ctx.JSON(http.StatusOK, response)
}

// ChangeDeliveryStatus handles PATCH /delivery/:id/ - the assigned delivery
// person or an admin moves a delivery through its lifecycle. Deliveries
// belonging to someone else are hidden, not forbidden.
func (s *Server) ChangeDeliveryStatus(ctx echo.Context) error {
	caller := currentUser(ctx)
	if caller.Role() != user.RoleAdmin && caller.Role() != user.RoleDelivery {
		return ctx.JSON(http.StatusForbidden, detail("You do not have permission to perform this action."))
	}

	deliveryID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return ctx.JSON(http.StatusNotFound, detail("Not found."))
	}

	existing, err := s.deliveries.Get(ctx.Request().Context(), deliveryID)
	if err != nil {
		return s.respondError(ctx, err)
	}
	if caller.Role() != user.RoleAdmin && !existing.DeliveryPersonID().IsEqual(caller.ID()) {
		return ctx.JSON(http.StatusNotFound, detail("Not found."))
	}

	var request ChangeDeliveryStatusRequest
	if err = ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, detail("Invalid request body."))
	}
	if err = ctx.Validate(&request); err != nil {
		return err
	}

	status, err := delivery.StatusFromString(request.Status)
	if err != nil {
		return s.respondError(ctx, err)
	}

	cmd, err := commands.NewChangeDeliveryStatusCommand(deliveryID, status)
	if err != nil {
		return s.respondError(ctx, err)
	}

	aggregate, err := s.changeDeliveryStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, deliveryToResponse(aggregate))
}

// GetNotifications handles GET /notifications/ - the caller's notifications,
// newest first.
func (s *Server) GetNotifications(ctx echo.Context) error {
	query, err := queries.NewGetNotificationsQuery(currentUser(ctx).ID())
	if err != nil {
		return s.respondError(ctx, err)
	}

	rows, err := s.getNotificationsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.respondError(ctx, err)
	}

	response := make([]NotificationResponse, 0, len(rows))
	for _, row := range rows {
		response = append(response, notificationQueryToResponse(row))
	}

	return ctx.JSON(http.StatusOK, response)
}

// MarkNotificationRead handles PATCH /notifications/:id/read/ - marks one of
// the caller's notifications as read.
func (s *Server) MarkNotificationRead(ctx echo.Context) error {
	notificationID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return ctx.JSON(http.StatusNotFound, detail("Not found."))
	}

	cmd, err := commands.NewMarkNotificationReadCommand(notificationID, currentUser(ctx).ID())
	if err != nil {
		return s.respondError(ctx, err)
	}

	entity, err := s.markNotificationReadHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, notificationToResponse(entity))
}

// respondError translates domain and application errors into the HTTP error
// taxonomy: validation 400, hidden or missing 404, duplicate delivery 400
// with the field-keyed body, everything else 500.
func (s *Server) respondError(ctx echo.Context, err error) error {
	var stockErr *product.InsufficientStockError
	if errors.As(err, &stockErr) {
		return ctx.JSON(http.StatusBadRequest,
			detail(fmt.Sprintf("Insufficient stock for product: %s", stockErr.ProductName)))
	}

	if errors.Is(err, delivery.ErrDeliveryAlreadyExists) {
		return ctx.JSON(http.StatusBadRequest, map[string][]string{
			"order": {"A delivery for this order already exists."},
		})
	}

	if errors.Is(err, errs.ErrObjectNotFound) {
		return ctx.JSON(http.StatusNotFound, detail("Not found."))
	}

	if errors.Is(err, errs.ErrValueIsInvalid) ||
		errors.Is(err, errs.ErrValueIsRequired) ||
		errors.Is(err, errs.ErrValueIsOutOfRange) {
		return ctx.JSON(http.StatusBadRequest, detail(err.Error()))
	}

	return ctx.JSON(http.StatusInternalServerError, detail("Internal server error."))
}

func detail(message string) map[string]string {
	return map[string]string{"detail": message}
}
