package repositories

import (
	"errors"
	"fmt"
	"strings"

	"lavka/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{db: db}
}

// Create inserts a new product.
func (r *GORMProductRepository) Create(product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	if err := r.db.Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// GetByID retrieves a product with its category preloaded.
func (r *GORMProductRepository) GetByID(id string) (*models.Product, error) {
	var product models.Product
	if err := r.db.Preload("Category").First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get product %s: %w", id, err)
	}
	return &product, nil
}

// ratingSubquery computes the average approved rating per product row. It is
// the SQL counterpart of models.Product.Rating.
const ratingSubquery = "(SELECT COALESCE(AVG(rating), 0) FROM reviews" +
	" WHERE reviews.product_id = products.id AND reviews.status = 'approved')"

// List applies the filter, counts the full result set and returns one page
// with categories and reviews preloaded.
func (r *GORMProductRepository) List(filter ProductFilter) ([]models.Product, int64, error) {
	query := r.db.Model(&models.Product{})

	if filter.Name != "" {
		query = query.Where("LOWER(products.name) LIKE ?", "%"+strings.ToLower(filter.Name)+"%")
	}
	if filter.Category != "" {
		query = query.Joins("JOIN categories ON categories.id = products.category_id").
			Where("categories.name = ?", filter.Category)
	}
	if filter.MinPrice != nil {
		query = query.Where("products.price >= ?", filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("products.price <= ?", filter.MaxPrice)
	}
	if filter.InStock {
		query = query.Where("products.stock > 0")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	var column string
	switch filter.SortBy {
	case "name":
		column = "products.name"
	case "price":
		column = "products.price"
	case "rating":
		column = ratingSubquery
	}
	if column != "" {
		direction := "ASC"
		if strings.EqualFold(filter.SortOrder, "desc") {
			direction = "DESC"
		}
		query = query.Order(column + " " + direction)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * filter.Limit

	var products []models.Product
	if err := query.Preload("Category").Preload("Reviews").
		Offset(offset).Limit(filter.Limit).Find(&products).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}
	return products, total, nil
}

// Update applies only the supplied fields and returns the updated row.
func (r *GORMProductRepository) Update(id string, fields map[string]interface{}) (*models.Product, error) {
	res := r.db.Model(&models.Product{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update product %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("product %s: %w", id, ErrNotFound)
	}
	return r.GetByID(id)
}

// Delete removes a product together with its order items and reviews.
func (r *GORMProductRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&models.OrderItem{}).Error; err != nil {
			return fmt.Errorf("failed to delete order items of product %s: %w", id, err)
		}
		if err := tx.Where("product_id = ?", id).Delete(&models.Review{}).Error; err != nil {
			return fmt.Errorf("failed to delete reviews of product %s: %w", id, err)
		}
		res := tx.Delete(&models.Product{}, "id = ?", id)
		if res.Error != nil {
			return fmt.Errorf("failed to delete product %s: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("product %s: %w", id, ErrNotFound)
		}
		return nil
	})
}

// ApprovedRatingStats aggregates approved review ratings in the store.
// SUM and COUNT over integers are exact, so dividing them with
// models.RatingFromStats yields the same value as the in-memory fold.
func (r *GORMProductRepository) ApprovedRatingStats(productID string) (int64, int64, error) {
	var stats struct {
		Sum   int64
		Count int64
	}
	err := r.db.Model(&models.Review{}).
		Select("COALESCE(SUM(rating), 0) AS sum, COUNT(*) AS count").
		Where("product_id = ? AND status = ?", productID, models.ReviewApproved).
		Scan(&stats).Error
	if err != nil {
		return 0, 0, fmt.Errorf("failed to aggregate ratings for product %s: %w", productID, err)
	}
	return stats.Sum, stats.Count, nil
}
