package handlers

import (
	"lavka/internal/middleware"
	"lavka/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CategoryHandler handles HTTP requests for categories.
type CategoryHandler struct {
	categoryService *services.CategoryService
	validate        *validator.Validate
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(categoryService *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
		validate:        validator.New(),
	}
}

// RegisterRoutes registers the category routes. Reads are public, writes
// are restricted to administrators.
func (h *CategoryHandler) RegisterRoutes(router fiber.Router, authRequired fiber.Handler) {
	categories := router.Group("/categories")
	categories.Get("/", h.HandleList)
	categories.Get("/:id", h.HandleGet)

	admin := middleware.RequireRoles(middleware.AdminOnly...)
	categories.Post("/", authRequired, admin, h.HandleCreate)
	categories.Put("/:id", authRequired, admin, h.HandleUpdate)
	categories.Delete("/:id", authRequired, admin, h.HandleDelete)
}

// HandleList lists categories with skip/limit pagination.
func (h *CategoryHandler) HandleList(c *fiber.Ctx) error {
	skip := c.QueryInt("skip", 0)
	limit := c.QueryInt("limit", 100)
	categories, err := h.categoryService.List(skip, limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(categories)
}

// HandleGet returns one category together with its products.
func (h *CategoryHandler) HandleGet(c *fiber.Ctx) error {
	category, err := h.categoryService.Get(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(category)
}

// CategoryRequest represents the request body for category creation.
type CategoryRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

// HandleCreate adds a new category.
func (h *CategoryHandler) HandleCreate(c *fiber.Ctx) error {
	var req CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return respondInvalidBody(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	category, err := h.categoryService.Create(req.Name)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

// UpdateCategoryRequest represents a partial category update.
type UpdateCategoryRequest struct {
	Name *string `json:"name" validate:"omitempty,min=1,max=100"`
}

// HandleUpdate renames a category.
func (h *CategoryHandler) HandleUpdate(c *fiber.Ctx) error {
	var req UpdateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return respondInvalidBody(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	category, err := h.categoryService.Update(c.Params("id"), req.Name)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(category)
}

// HandleDelete removes a category and, by cascade, its products.
func (h *CategoryHandler) HandleDelete(c *fiber.Ctx) error {
	if err := h.categoryService.Delete(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Category deleted"})
}
