package models

import "time"

// UserRole controls every authorization decision in the API.
type UserRole string

const (
	RoleBuyer   UserRole = "buyer"
	RoleManager UserRole = "manager"
	RoleAdmin   UserRole = "admin"
)

// User represents an account of the store.
type User struct {
	ID             string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Username       string    `json:"username" gorm:"type:varchar(100);not null"`
	Email          string    `json:"email" gorm:"uniqueIndex;type:varchar(255);not null"`
	HashedPassword string    `json:"-" gorm:"type:varchar(255);not null"` // never serialized
	Role           UserRole  `json:"role" gorm:"type:varchar(20);not null;default:buyer"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	Orders  []Order  `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Reviews []Review `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}

// IsPrivileged reports whether the user bypasses ownership checks.
func (u *User) IsPrivileged() bool {
	return u.Role == RoleManager || u.Role == RoleAdmin
}

// CanAccess reports whether the user may read or mutate a resource owned
// by ownerID: managers and administrators always, everyone else only their
// own resources.
func (u *User) CanAccess(ownerID string) bool {
	return u.IsPrivileged() || u.ID == ownerID
}
