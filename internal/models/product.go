package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is an item for sale, always attached to exactly one category.
type Product struct {
	ID          string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name        string          `json:"name" gorm:"index;type:varchar(250);not null"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(12,2);not null"`
	CategoryID  string          `json:"category_id" gorm:"type:varchar(36);not null"`
	Description string          `json:"description" gorm:"type:varchar(500)"`
	Stock       int             `json:"stock" gorm:"not null;default:0"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	Category   *Category   `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	OrderItems []OrderItem `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Reviews    []Review    `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}

// CategoryName is a read-time projection, not a stored column.
func (p *Product) CategoryName() string {
	if p.Category == nil {
		return ""
	}
	return p.Category.Name
}

// Rating is the mean rating over the product's approved reviews, 0 when it
// has none. It folds the materialized Reviews slice; the repository exposes
// the equivalent store-side aggregate, and both share RatingFromStats so the
// two paths cannot drift.
func (p *Product) Rating() decimal.Decimal {
	var sum, count int64
	for _, r := range p.Reviews {
		if r.Status == ReviewApproved {
			sum += int64(r.Rating)
			count++
		}
	}
	return RatingFromStats(sum, count)
}

// RatingFromStats divides a sum of integer ratings by their count, rounded
// to two decimal places. Both the in-memory fold and the SQL SUM/COUNT
// aggregate feed their exact integer stats through this one division.
func RatingFromStats(sum, count int64) decimal.Decimal {
	if count == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(sum).DivRound(decimal.NewFromInt(count), 2)
}
