package handlers

import (
	"fmt"
	"time"

	"lavka/internal/middleware"
	"lavka/internal/models"
	"lavka/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	orderService *services.OrderService
	validate     *validator.Validate
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(orderService *services.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		validate:     validator.New(),
	}
}

// RegisterRoutes registers the order routes. Every order route requires
// authentication; status changes, deletion and the per-user listing are
// further restricted to managers and administrators.
func (h *OrderHandler) RegisterRoutes(router fiber.Router, authRequired fiber.Handler) {
	orders := router.Group("/orders", authRequired)
	managerOrAdmin := middleware.RequireRoles(middleware.ManagerOrAdmin...)

	orders.Get("/", h.HandleList)
	orders.Get("/user/:user_id", managerOrAdmin, h.HandleListForUser)
	orders.Post("/", h.HandleCreate)
	orders.Get("/:id", h.HandleGet)
	orders.Patch("/:id/status", managerOrAdmin, h.HandleUpdateStatus)
	orders.Delete("/:id", managerOrAdmin, h.HandleDelete)
}

// OrderItemResponse is one serialized order line; product name is a
// read-time projection.
type OrderItemResponse struct {
	ProductID    string          `json:"product_id"`
	ProductName  string          `json:"product_name"`
	Quantity     int             `json:"quantity"`
	PriceAtOrder decimal.Decimal `json:"price_at_order"`
}

// OrderResponse is the serialized order view.
type OrderResponse struct {
	ID        string              `json:"id"`
	UserID    string              `json:"user_id"`
	Status    models.OrderStatus  `json:"status"`
	Amount    decimal.Decimal     `json:"amount"`
	Items     []OrderItemResponse `json:"items"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

func toOrderResponse(o *models.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for i := range o.Items {
		item := &o.Items[i]
		items = append(items, OrderItemResponse{
			ProductID:    item.ProductID,
			ProductName:  item.ProductName(),
			Quantity:     item.Quantity,
			PriceAtOrder: item.PriceAtOrder,
		})
	}
	return OrderResponse{
		ID:        o.ID,
		UserID:    o.UserID,
		Status:    o.Status,
		Amount:    o.Amount,
		Items:     items,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}

func toOrderResponses(orders []models.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, toOrderResponse(&orders[i]))
	}
	return out
}

func paginationParams(c *fiber.Ctx) (skip, limit int, err error) {
	skip = c.QueryInt("skip", 0)
	limit = c.QueryInt("limit", 100)
	if skip < 0 {
		return 0, 0, fmt.Errorf("skip must not be negative: %w", services.ErrValidation)
	}
	if limit < 1 {
		return 0, 0, fmt.Errorf("limit must be at least 1: %w", services.ErrValidation)
	}
	return skip, limit, nil
}

// HandleList returns the caller's own orders, or all orders when the caller
// is a manager or administrator.
func (h *OrderHandler) HandleList(c *fiber.Ctx) error {
	skip, limit, err := paginationParams(c)
	if err != nil {
		return respondError(c, err)
	}
	orders, err := h.orderService.List(middleware.CurrentUser(c), skip, limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toOrderResponses(orders))
}

// HandleListForUser returns any user's orders.
func (h *OrderHandler) HandleListForUser(c *fiber.Ctx) error {
	skip, limit, err := paginationParams(c)
	if err != nil {
		return respondError(c, err)
	}
	orders, err := h.orderService.ListForUser(c.Params("user_id"), skip, limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toOrderResponses(orders))
}

// CreateOrderRequest represents the request body for order creation.
type CreateOrderRequest struct {
	Items []struct {
		ProductID string `json:"product_id" validate:"required,uuid"`
		Quantity  int    `json:"quantity" validate:"required,gt=0"`
	} `json:"items" validate:"required,min=1,dive"`
}

// HandleCreate places an order for the authenticated caller.
func (h *OrderHandler) HandleCreate(c *fiber.Ctx) error {
	var req CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return respondInvalidBody(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	lines := make([]services.OrderLine, 0, len(req.Items))
	for _, item := range req.Items {
		lines = append(lines, services.OrderLine{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}
	order, err := h.orderService.Create(middleware.CurrentUser(c).ID, lines)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toOrderResponse(order))
}

// HandleGet returns one order, subject to the ownership check.
func (h *OrderHandler) HandleGet(c *fiber.Ctx) error {
	order, err := h.orderService.Get(c.Params("id"), middleware.CurrentUser(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toOrderResponse(order))
}

// UpdateOrderStatusRequest represents the request body for a status change.
type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" validate:"required,oneof=pending processing shipped delivered cancelled"`
}

// HandleUpdateStatus overwrites an order's status.
func (h *OrderHandler) HandleUpdateStatus(c *fiber.Ctx) error {
	var req UpdateOrderStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return respondInvalidBody(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	order, err := h.orderService.UpdateStatus(c.Params("id"), req.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toOrderResponse(order))
}

// HandleDelete removes an order and, by cascade, its items.
func (h *OrderHandler) HandleDelete(c *fiber.Ctx) error {
	if err := h.orderService.Delete(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Order deleted"})
}
