package repositories

import "lavka/internal/models"

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	// Create persists the order and all of its items atomically: either
	// every row lands or none do.
	Create(order *models.Order) error
	GetByID(id string) (*models.Order, error)
	// GetAll lists orders, scoped to one user when userID is non-empty.
	GetAll(userID string, skip, limit int) ([]models.Order, error)
	UpdateStatus(id string, status models.OrderStatus) (*models.Order, error)
	Delete(id string) error
}
