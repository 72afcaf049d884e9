package handlers

import (
	"time"

	"lavka/internal/middleware"
	"lavka/internal/models"
	"lavka/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ReviewHandler handles HTTP requests for reviews.
type ReviewHandler struct {
	reviewService *services.ReviewService
	validate      *validator.Validate
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(reviewService *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
		validate:      validator.New(),
	}
}

// RegisterRoutes registers the review routes. Listing and reading vary by
// caller (anonymous and buyer callers see only approved reviews), writing
// requires authentication, moderation requires manager or administrator.
func (h *ReviewHandler) RegisterRoutes(router fiber.Router, authRequired, authOptional fiber.Handler) {
	reviews := router.Group("/reviews")
	managerOrAdmin := middleware.RequireRoles(middleware.ManagerOrAdmin...)

	reviews.Get("/", authOptional, h.HandleList)
	reviews.Post("/products/:product_id", authRequired, h.HandleCreate)
	reviews.Get("/:id", authOptional, h.HandleGet)
	reviews.Put("/:id", authRequired, h.HandleUpdate)
	reviews.Patch("/:id/status", authRequired, managerOrAdmin, h.HandleUpdateStatus)
	reviews.Delete("/:id", authRequired, h.HandleDelete)
}

// ReviewResponse is the serialized review view; product and user names are
// read-time projections.
type ReviewResponse struct {
	ID          string              `json:"id"`
	ProductID   string              `json:"product_id"`
	ProductName string              `json:"product_name"`
	UserID      string              `json:"user_id"`
	UserName    string              `json:"user_name"`
	Rating      int                 `json:"rating"`
	Text        string              `json:"text"`
	Status      models.ReviewStatus `json:"status"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

func toReviewResponse(r *models.Review) ReviewResponse {
	resp := ReviewResponse{
		ID:        r.ID,
		ProductID: r.ProductID,
		UserID:    r.UserID,
		Rating:    r.Rating,
		Text:      r.Text,
		Status:    r.Status,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	if r.Product != nil {
		resp.ProductName = r.Product.Name
	}
	if r.User != nil {
		resp.UserName = r.User.Username
	}
	return resp
}

// HandleList lists reviews, optionally filtered by product or author.
func (h *ReviewHandler) HandleList(c *fiber.Ctx) error {
	skip, limit, err := paginationParams(c)
	if err != nil {
		return respondError(c, err)
	}
	reviews, err := h.reviewService.List(
		middleware.CurrentUser(c),
		c.Query("product_id"),
		c.Query("user_id"),
		skip, limit,
	)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]ReviewResponse, 0, len(reviews))
	for i := range reviews {
		out = append(out, toReviewResponse(&reviews[i]))
	}
	return c.JSON(out)
}

// ReviewRequest represents the request body for review creation.
type ReviewRequest struct {
	Rating int    `json:"rating" validate:"required,gte=1,lte=5"`
	Text   string `json:"text" validate:"required,min=10,max=1000"`
}

// HandleCreate submits a review for a product on behalf of the caller.
func (h *ReviewHandler) HandleCreate(c *fiber.Ctx) error {
	var req ReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return respondInvalidBody(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	review, err := h.reviewService.Create(
		c.Params("product_id"),
		middleware.CurrentUser(c),
		req.Rating,
		req.Text,
	)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toReviewResponse(review))
}

// HandleGet returns one review, subject to the visibility rule.
func (h *ReviewHandler) HandleGet(c *fiber.Ctx) error {
	review, err := h.reviewService.Get(c.Params("id"), middleware.CurrentUser(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toReviewResponse(review))
}

// UpdateReviewRequest represents a partial review update.
type UpdateReviewRequest struct {
	Rating *int    `json:"rating" validate:"omitempty,gte=1,lte=5"`
	Text   *string `json:"text" validate:"omitempty,min=10,max=1000"`
}

// HandleUpdate edits a review's content, subject to the ownership check.
func (h *ReviewHandler) HandleUpdate(c *fiber.Ctx) error {
	var req UpdateReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return respondInvalidBody(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	review, err := h.reviewService.Update(c.Params("id"), middleware.CurrentUser(c), services.ReviewUpdate{
		Rating: req.Rating,
		Text:   req.Text,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toReviewResponse(review))
}

// UpdateReviewStatusRequest represents the request body for moderation.
type UpdateReviewStatusRequest struct {
	Status models.ReviewStatus `json:"status" validate:"required,oneof=pending approved rejected"`
}

// HandleUpdateStatus moderates a review.
func (h *ReviewHandler) HandleUpdateStatus(c *fiber.Ctx) error {
	var req UpdateReviewStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return respondInvalidBody(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	review, err := h.reviewService.UpdateStatus(c.Params("id"), req.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toReviewResponse(review))
}

// HandleDelete removes a review, subject to the ownership check.
func (h *ReviewHandler) HandleDelete(c *fiber.Ctx) error {
	if err := h.reviewService.Delete(c.Params("id"), middleware.CurrentUser(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Review deleted"})
}
