package services

import (
	"encoding/json"
	"fmt"
	"log"

	"lavka/internal/models"
	"lavka/internal/repositories"

	"github.com/shopspring/decimal"
)

// EventPublisher publishes order lifecycle events. Publishing is best
// effort: a broker failure is logged, never surfaced to the HTTP caller.
type EventPublisher interface {
	Publish(routingKey string, body []byte) error
}

// OrderLine is one requested line of a new order.
type OrderLine struct {
	ProductID string
	Quantity  int
}

// OrderService assembles orders: it snapshots current product prices into
// order items, fixes the total at creation time and manages the flat status
// field.
type OrderService struct {
	orderRepo   repositories.OrderRepository
	productRepo repositories.ProductRepository
	publisher   EventPublisher
}

// NewOrderService creates a new OrderService.
func NewOrderService(orderRepo repositories.OrderRepository, productRepo repositories.ProductRepository, publisher EventPublisher) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		publisher:   publisher,
	}
}

// Create builds and persists an order for the user. Every line must carry a
// positive quantity and reference an existing product; any violation fails
// the whole operation before anything is written. The order and its items
// are persisted in one transaction with amount = Σ price_at_order × quantity.
func (s *OrderService) Create(userID string, lines []OrderLine) (*models.Order, error) {
	if len(lines) == 0 {
		return nil, fmt.Errorf("order needs at least one item: %w", ErrValidation)
	}

	amount := decimal.Zero
	items := make([]models.OrderItem, 0, len(lines))
	for _, line := range lines {
		if line.Quantity <= 0 {
			return nil, fmt.Errorf("quantity for product %s must be positive: %w", line.ProductID, ErrValidation)
		}
		product, err := s.productRepo.GetByID(line.ProductID)
		if err != nil {
			return nil, err
		}
		items = append(items, models.OrderItem{
			ProductID:    product.ID,
			Quantity:     line.Quantity,
			PriceAtOrder: product.Price,
		})
		amount = amount.Add(product.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	order := &models.Order{
		UserID: userID,
		Status: models.OrderPending,
		Amount: amount,
		Items:  items,
	}
	if err := s.orderRepo.Create(order); err != nil {
		return nil, err
	}

	s.publishEvent("order.created", order)
	return s.orderRepo.GetByID(order.ID)
}

// Get retrieves an order, enforcing ownership: buyers see only their own
// orders, managers and administrators see all.
func (s *OrderService) Get(id string, caller *models.User) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !caller.CanAccess(order.UserID) {
		return nil, ErrForbidden
	}
	return order, nil
}

// List returns the caller's own orders, or all orders for privileged
// callers.
func (s *OrderService) List(caller *models.User, skip, limit int) ([]models.Order, error) {
	if caller.IsPrivileged() {
		return s.orderRepo.GetAll("", skip, limit)
	}
	return s.orderRepo.GetAll(caller.ID, skip, limit)
}

// ListForUser returns one user's orders. Route-level role checks restrict
// it to managers and administrators.
func (s *OrderService) ListForUser(userID string, skip, limit int) ([]models.Order, error) {
	return s.orderRepo.GetAll(userID, skip, limit)
}

// UpdateStatus overwrites the order status. The status field is flat: any
// known status may replace any other, there is no transition graph.
func (s *OrderService) UpdateStatus(id string, status models.OrderStatus) (*models.Order, error) {
	if !models.ValidOrderStatus(status) {
		return nil, fmt.Errorf("unknown order status %q: %w", status, ErrValidation)
	}
	order, err := s.orderRepo.UpdateStatus(id, status)
	if err != nil {
		return nil, err
	}
	s.publishEvent("order.status_changed", order)
	return order, nil
}

// Delete removes an order; the store cascade removes its items.
func (s *OrderService) Delete(id string) error {
	return s.orderRepo.Delete(id)
}

func (s *OrderService) publishEvent(routingKey string, order *models.Order) {
	if s.publisher == nil {
		return
	}
	body, err := json.Marshal(map[string]interface{}{
		"order_id": order.ID,
		"user_id":  order.UserID,
		"status":   order.Status,
		"amount":   order.Amount,
	})
	if err != nil {
		log.Printf("failed to marshal %s event for order %s: %v", routingKey, order.ID, err)
		return
	}
	if err := s.publisher.Publish(routingKey, body); err != nil {
		log.Printf("failed to publish %s event for order %s: %v", routingKey, order.ID, err)
	}
}
