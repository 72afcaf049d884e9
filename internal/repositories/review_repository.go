package repositories

import "lavka/internal/models"

// ReviewFilter narrows a review listing. A nil Status means no status
// constraint (privileged callers); empty ID fields are ignored.
type ReviewFilter struct {
	ProductID string
	UserID    string
	Status    *models.ReviewStatus
	Skip      int
	Limit     int
}

// ReviewRepository defines the interface for review data access.
type ReviewRepository interface {
	Create(review *models.Review) error
	GetByID(id string) (*models.Review, error)
	List(filter ReviewFilter) ([]models.Review, error)
	Update(id string, fields map[string]interface{}) (*models.Review, error)
	Delete(id string) error
}
