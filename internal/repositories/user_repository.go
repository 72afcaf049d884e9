package repositories

import "lavka/internal/models"

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetAll(skip, limit int) ([]models.User, error)
	Update(id string, fields map[string]interface{}) (*models.User, error)
	Delete(id string) error
}
