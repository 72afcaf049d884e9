package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is a flat status field. Managers and administrators may set
// any status from any status; no transition graph is enforced.
type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

// ValidOrderStatus reports whether s is one of the known statuses.
func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderPending, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

// Order is a customer order. Amount is fixed at creation time as the sum of
// item price snapshots and is never recomputed from current product prices.
type Order struct {
	ID        string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID    string          `json:"user_id" gorm:"type:varchar(36);not null;index"`
	Status    OrderStatus     `json:"status" gorm:"type:varchar(20);not null;default:pending"`
	Amount    decimal.Decimal `json:"amount" gorm:"type:decimal(12,2);not null"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`

	Items []OrderItem `json:"items" gorm:"constraint:OnDelete:CASCADE"`
}

// OrderItem is one order line. The composite primary key (order_id,
// product_id) allows at most one line per product per order. PriceAtOrder
// snapshots the product price at order creation, protecting historical
// orders from later price changes.
type OrderItem struct {
	OrderID      string          `json:"order_id" gorm:"primaryKey;type:varchar(36)"`
	ProductID    string          `json:"product_id" gorm:"primaryKey;type:varchar(36)"`
	Quantity     int             `json:"quantity" gorm:"not null;default:1"`
	PriceAtOrder decimal.Decimal `json:"price_at_order" gorm:"type:decimal(12,2);not null"`

	Product *Product `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}

// ProductName projects the current product name onto the line.
func (i *OrderItem) ProductName() string {
	if i.Product == nil {
		return ""
	}
	return i.Product.Name
}
