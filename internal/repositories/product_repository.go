package repositories

import (
	"lavka/internal/models"

	"github.com/shopspring/decimal"
)

// ProductFilter narrows and orders a product listing. Nil pointer fields
// leave the corresponding constraint unapplied.
type ProductFilter struct {
	Name      string // case-insensitive substring
	Category  string // exact category name
	MinPrice  *decimal.Decimal
	MaxPrice  *decimal.Decimal
	InStock   bool // only stock > 0
	SortBy    string
	SortOrder string
	Page      int
	Limit     int
}

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	Create(product *models.Product) error
	GetByID(id string) (*models.Product, error)
	List(filter ProductFilter) (items []models.Product, total int64, err error)
	Update(id string, fields map[string]interface{}) (*models.Product, error)
	Delete(id string) error
	// ApprovedRatingStats returns the sum and count of approved review
	// ratings for a product, the store-side half of rating aggregation.
	ApprovedRatingStats(productID string) (sum, count int64, err error)
}
