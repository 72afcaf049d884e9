package services

import (
	"fmt"

	"lavka/internal/models"
	"lavka/internal/repositories"
)

// ReviewUpdate carries a partial update of a review's own content. Status
// is changed only through UpdateStatus.
type ReviewUpdate struct {
	Rating *int
	Text   *string
}

// ReviewService handles business logic related to reviews, including the
// visibility rule: non-approved reviews exist only for their author and for
// privileged callers.
type ReviewService struct {
	repo        repositories.ReviewRepository
	productRepo repositories.ProductRepository
}

// NewReviewService creates a new ReviewService.
func NewReviewService(repo repositories.ReviewRepository, productRepo repositories.ProductRepository) *ReviewService {
	return &ReviewService{repo: repo, productRepo: productRepo}
}

// Create submits a review for a product. New reviews always start pending
// and do not influence the product rating until approved.
func (s *ReviewService) Create(productID string, author *models.User, rating int, text string) (*models.Review, error) {
	if _, err := s.productRepo.GetByID(productID); err != nil {
		return nil, err
	}
	review := &models.Review{
		ProductID: productID,
		UserID:    author.ID,
		Rating:    rating,
		Text:      text,
		Status:    models.ReviewPending,
	}
	if err := s.repo.Create(review); err != nil {
		return nil, err
	}
	return s.repo.GetByID(review.ID)
}

// Get retrieves a review. A non-approved review is reported as not found to
// anonymous callers and to buyers who are not its author, so its existence
// is not leaked.
func (s *ReviewService) Get(id string, caller *models.User) (*models.Review, error) {
	review, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if review.Status != models.ReviewApproved {
		if caller == nil || !caller.CanAccess(review.UserID) {
			return nil, fmt.Errorf("review %s: %w", id, repositories.ErrNotFound)
		}
	}
	return review, nil
}

// List returns reviews matching the filters. Anonymous callers and buyers
// see only approved reviews; managers and administrators see every status.
func (s *ReviewService) List(caller *models.User, productID, userID string, skip, limit int) ([]models.Review, error) {
	filter := repositories.ReviewFilter{
		ProductID: productID,
		UserID:    userID,
		Skip:      skip,
		Limit:     limit,
	}
	if caller == nil || !caller.IsPrivileged() {
		approved := models.ReviewApproved
		filter.Status = &approved
	}
	return s.repo.List(filter)
}

// Update mutates a review's content; only the author or a privileged caller
// may do so. An edit by the author sends the review back to pending for
// re-moderation.
func (s *ReviewService) Update(id string, caller *models.User, update ReviewUpdate) (*models.Review, error) {
	review, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !caller.CanAccess(review.UserID) {
		return nil, ErrForbidden
	}
	fields := map[string]interface{}{}
	if update.Rating != nil {
		fields["rating"] = *update.Rating
	}
	if update.Text != nil {
		fields["text"] = *update.Text
	}
	if len(fields) == 0 {
		return review, nil
	}
	if !caller.IsPrivileged() {
		fields["status"] = models.ReviewPending
	}
	return s.repo.Update(id, fields)
}

// UpdateStatus moderates a review. Route-level role checks restrict it to
// managers and administrators.
func (s *ReviewService) UpdateStatus(id string, status models.ReviewStatus) (*models.Review, error) {
	if !models.ValidReviewStatus(status) {
		return nil, fmt.Errorf("unknown review status %q: %w", status, ErrValidation)
	}
	return s.repo.Update(id, map[string]interface{}{"status": status})
}

// Delete removes a review; only the author or a privileged caller may do so.
func (s *ReviewService) Delete(id string, caller *models.User) error {
	review, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if !caller.CanAccess(review.UserID) {
		return ErrForbidden
	}
	return s.repo.Delete(id)
}
