package handlers

import (
	"fmt"
	"time"

	"lavka/internal/middleware"
	"lavka/internal/models"
	"lavka/internal/repositories"
	"lavka/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	productService *services.ProductService
	validate       *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(productService *services.ProductService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		validate:       validator.New(),
	}
}

// RegisterRoutes registers the product routes. Reads are public, writes are
// restricted to managers and administrators.
func (h *ProductHandler) RegisterRoutes(router fiber.Router, authRequired fiber.Handler) {
	products := router.Group("/products")
	products.Get("/", h.HandleList)
	products.Get("/:id", h.HandleGet)

	managerOrAdmin := middleware.RequireRoles(middleware.ManagerOrAdmin...)
	products.Post("/", authRequired, managerOrAdmin, h.HandleCreate)
	products.Put("/:id", authRequired, managerOrAdmin, h.HandleUpdate)
	products.Delete("/:id", authRequired, managerOrAdmin, h.HandleDelete)
}

// ProductResponse is the serialized product view: category name and rating
// are read-time projections over the owning aggregate, never stored fields.
type ProductResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	CategoryID   string          `json:"category_id"`
	CategoryName string          `json:"category_name"`
	Description  string          `json:"description"`
	Stock        int             `json:"stock"`
	Rating       decimal.Decimal `json:"rating"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

func toProductResponse(p *models.Product, rating decimal.Decimal) ProductResponse {
	return ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		Price:        p.Price,
		CategoryID:   p.CategoryID,
		CategoryName: p.CategoryName(),
		Description:  p.Description,
		Stock:        p.Stock,
		Rating:       rating,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

// ProductPageResponse is one page of a product listing.
type ProductPageResponse struct {
	Items []ProductResponse `json:"items"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
	Pages int64             `json:"pages"`
}

// HandleList lists products with filtering, sorting and page/limit
// pagination.
func (h *ProductHandler) HandleList(c *fiber.Ctx) error {
	filter := repositories.ProductFilter{
		Name:      c.Query("name"),
		Category:  c.Query("category"),
		InStock:   c.QueryBool("in_stock", false),
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order", "asc"),
		Page:      c.QueryInt("page", 1),
		Limit:     c.QueryInt("limit", 10),
	}

	for param, dest := range map[string]**decimal.Decimal{
		"min_price": &filter.MinPrice,
		"max_price": &filter.MaxPrice,
	} {
		raw := c.Query(param)
		if raw == "" {
			continue
		}
		value, err := decimal.NewFromString(raw)
		if err != nil {
			return respondError(c, fmt.Errorf("%s must be a decimal number: %w", param, services.ErrValidation))
		}
		*dest = &value
	}

	switch filter.SortBy {
	case "", "name", "price", "rating":
	default:
		return respondError(c, fmt.Errorf("unknown sort_by %q: %w", filter.SortBy, services.ErrValidation))
	}

	page, err := h.productService.List(filter)
	if err != nil {
		return respondError(c, err)
	}

	items := make([]ProductResponse, 0, len(page.Items))
	for i := range page.Items {
		p := &page.Items[i]
		items = append(items, toProductResponse(p, p.Rating()))
	}
	return c.JSON(ProductPageResponse{
		Items: items,
		Total: page.Total,
		Page:  page.Page,
		Limit: page.Limit,
		Pages: page.Pages,
	})
}

// HandleGet returns one product; its rating comes from the store-side
// aggregate over approved reviews.
func (h *ProductHandler) HandleGet(c *fiber.Ctx) error {
	product, err := h.productService.Get(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	rating, err := h.productService.Rating(product.ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toProductResponse(product, rating))
}

// ProductRequest represents the request body for product creation.
type ProductRequest struct {
	Name        string          `json:"name" validate:"required,min=1,max=250"`
	Price       decimal.Decimal `json:"price" validate:"required"`
	CategoryID  string          `json:"category_id" validate:"required,uuid"`
	Description string          `json:"description" validate:"max=500"`
	Stock       int             `json:"stock" validate:"gte=0"`
}

// HandleCreate adds a new product.
func (h *ProductHandler) HandleCreate(c *fiber.Ctx) error {
	var req ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return respondInvalidBody(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}
	if !req.Price.IsPositive() {
		return respondError(c, fmt.Errorf("price must be positive: %w", services.ErrValidation))
	}

	product, err := h.productService.Create(services.ProductInput{
		Name:        req.Name,
		Price:       req.Price,
		CategoryID:  req.CategoryID,
		Description: req.Description,
		Stock:       req.Stock,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toProductResponse(product, decimal.Zero))
}

// UpdateProductRequest represents a partial product update. Absent fields
// keep their prior value.
type UpdateProductRequest struct {
	Name        *string          `json:"name" validate:"omitempty,min=1,max=250"`
	Price       *decimal.Decimal `json:"price"`
	CategoryID  *string          `json:"category_id" validate:"omitempty,uuid"`
	Description *string          `json:"description" validate:"omitempty,max=500"`
	Stock       *int             `json:"stock" validate:"omitempty,gte=0"`
}

// HandleUpdate applies a partial update to a product.
func (h *ProductHandler) HandleUpdate(c *fiber.Ctx) error {
	var req UpdateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return respondInvalidBody(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}
	if req.Price != nil && !req.Price.IsPositive() {
		return respondError(c, fmt.Errorf("price must be positive: %w", services.ErrValidation))
	}

	product, err := h.productService.Update(c.Params("id"), services.ProductUpdate{
		Name:        req.Name,
		Price:       req.Price,
		CategoryID:  req.CategoryID,
		Description: req.Description,
		Stock:       req.Stock,
	})
	if err != nil {
		return respondError(c, err)
	}
	rating, err := h.productService.Rating(product.ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toProductResponse(product, rating))
}

// HandleDelete removes a product and, by cascade, its order items and
// reviews.
func (h *ProductHandler) HandleDelete(c *fiber.Ctx) error {
	if err := h.productService.Delete(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Product deleted"})
}
