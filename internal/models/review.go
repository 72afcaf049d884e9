package models

import "time"

// ReviewStatus gates review visibility: only approved reviews are shown to
// buyers and anonymous callers, and only they count toward product ratings.
type ReviewStatus string

const (
	ReviewPending  ReviewStatus = "pending"
	ReviewApproved ReviewStatus = "approved"
	ReviewRejected ReviewStatus = "rejected"
)

// ValidReviewStatus reports whether s is one of the known statuses.
func ValidReviewStatus(s ReviewStatus) bool {
	switch s {
	case ReviewPending, ReviewApproved, ReviewRejected:
		return true
	}
	return false
}

// Review is a user's rating of a product. Rating is constrained to [1,5]
// at the request boundary.
type Review struct {
	ID        string       `json:"id" gorm:"primaryKey;type:varchar(36)"`
	ProductID string       `json:"product_id" gorm:"type:varchar(36);not null;index"`
	UserID    string       `json:"user_id" gorm:"type:varchar(36);not null;index"`
	Rating    int          `json:"rating" gorm:"not null"`
	Text      string       `json:"text" gorm:"type:varchar(1000);not null"`
	Status    ReviewStatus `json:"status" gorm:"type:varchar(20);not null;default:pending"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`

	Product *Product `json:"-"`
	User    *User    `json:"-"`
}
