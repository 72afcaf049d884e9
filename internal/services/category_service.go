package services

import (
	"lavka/internal/models"
	"lavka/internal/repositories"
)

// CategoryService handles business logic related to categories.
type CategoryService struct {
	repo repositories.CategoryRepository
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(repo repositories.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

// Create adds a new category.
func (s *CategoryService) Create(name string) (*models.Category, error) {
	category := &models.Category{Name: name}
	if err := s.repo.Create(category); err != nil {
		return nil, err
	}
	return category, nil
}

// Get retrieves a category with its products.
func (s *CategoryService) Get(id string) (*models.Category, error) {
	return s.repo.GetByID(id)
}

// List retrieves categories with skip/limit pagination.
func (s *CategoryService) List(skip, limit int) ([]models.Category, error) {
	return s.repo.GetAll(skip, limit)
}

// Update renames a category when a new name is supplied.
func (s *CategoryService) Update(id string, name *string) (*models.Category, error) {
	fields := map[string]interface{}{}
	if name != nil {
		fields["name"] = *name
	}
	if len(fields) == 0 {
		return s.repo.GetByID(id)
	}
	return s.repo.Update(id, fields)
}

// Delete removes a category; the store cascade removes its products.
func (s *CategoryService) Delete(id string) error {
	return s.repo.Delete(id)
}
