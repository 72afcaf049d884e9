package services

import (
	"fmt"

	"lavka/internal/models"
	"lavka/internal/repositories"

	"github.com/shopspring/decimal"
)

// ProductInput carries the fields of a product create request.
type ProductInput struct {
	Name        string
	Price       decimal.Decimal
	CategoryID  string
	Description string
	Stock       int
}

// ProductUpdate carries a partial update; nil fields keep their prior value.
type ProductUpdate struct {
	Name        *string
	Price       *decimal.Decimal
	CategoryID  *string
	Description *string
	Stock       *int
}

// ProductPage is one page of a filtered product listing.
type ProductPage struct {
	Items []models.Product
	Total int64
	Page  int
	Limit int
	Pages int64
}

// ProductService handles business logic related to products, including
// rating aggregation.
type ProductService struct {
	repo         repositories.ProductRepository
	categoryRepo repositories.CategoryRepository
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository, categoryRepo repositories.CategoryRepository) *ProductService {
	return &ProductService{repo: repo, categoryRepo: categoryRepo}
}

// Create adds a new product after checking its category exists.
func (s *ProductService) Create(input ProductInput) (*models.Product, error) {
	if _, err := s.categoryRepo.GetByID(input.CategoryID); err != nil {
		return nil, err
	}
	product := &models.Product{
		Name:        input.Name,
		Price:       input.Price,
		CategoryID:  input.CategoryID,
		Description: input.Description,
		Stock:       input.Stock,
	}
	if err := s.repo.Create(product); err != nil {
		return nil, err
	}
	return s.repo.GetByID(product.ID)
}

// Get retrieves a product by id.
func (s *ProductService) Get(id string) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// Rating computes the product's display rating from the store-side
// aggregate over its approved reviews.
func (s *ProductService) Rating(productID string) (decimal.Decimal, error) {
	sum, count, err := s.repo.ApprovedRatingStats(productID)
	if err != nil {
		return decimal.Zero, err
	}
	return models.RatingFromStats(sum, count), nil
}

// List returns one page of products matching the filter together with the
// total and page counts. An inverted price range is a validation failure.
func (s *ProductService) List(filter repositories.ProductFilter) (*ProductPage, error) {
	if filter.MinPrice != nil && filter.MaxPrice != nil && filter.MinPrice.GreaterThan(*filter.MaxPrice) {
		return nil, fmt.Errorf("minimum price cannot be higher than the maximum: %w", ErrValidation)
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 10
	}

	items, total, err := s.repo.List(filter)
	if err != nil {
		return nil, err
	}
	limit := int64(filter.Limit)
	return &ProductPage{
		Items: items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
		Pages: (total + limit - 1) / limit,
	}, nil
}

// Update mutates only the supplied fields.
func (s *ProductService) Update(id string, update ProductUpdate) (*models.Product, error) {
	fields := map[string]interface{}{}
	if update.Name != nil {
		fields["name"] = *update.Name
	}
	if update.Price != nil {
		fields["price"] = *update.Price
	}
	if update.CategoryID != nil {
		if _, err := s.categoryRepo.GetByID(*update.CategoryID); err != nil {
			return nil, err
		}
		fields["category_id"] = *update.CategoryID
	}
	if update.Description != nil {
		fields["description"] = *update.Description
	}
	if update.Stock != nil {
		fields["stock"] = *update.Stock
	}
	if len(fields) == 0 {
		return s.repo.GetByID(id)
	}
	return s.repo.Update(id, fields)
}

// Delete removes a product; the store cascade removes its order items and
// reviews.
func (s *ProductService) Delete(id string) error {
	return s.repo.Delete(id)
}
