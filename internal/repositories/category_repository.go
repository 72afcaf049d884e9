package repositories

import "lavka/internal/models"

// CategoryRepository defines the interface for category data access.
type CategoryRepository interface {
	Create(category *models.Category) error
	GetByID(id string) (*models.Category, error)
	GetAll(skip, limit int) ([]models.Category, error)
	Update(id string, fields map[string]interface{}) (*models.Category, error)
	Delete(id string) error
}
