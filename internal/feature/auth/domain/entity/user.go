// Package entity defines the domain entities for the auth feature.
package entity

import (
	"fmt"
	"time"

	itementity "mono_backend/internal/feature/items/domain/entity"
)

// User represents a registered user in the system.
// It contains authentication credentials and metadata for user management.
type User struct {
	// ID is the unique identifier for the user.
	ID uint `gorm:"primaryKey"`

	// Name is the user's login name.
	// It must be unique across all users.
	Name string `gorm:"uniqueIndex;size:255;not null"`

	// Password is the hashed password for the user.
	// This should never store plaintext passwords.
	Password string `gorm:"size:255;not null"`

	// Items are the inventory entries owned by this user.
	Items []itementity.Item `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`

	// CreatedAt is the timestamp when the user was created.
	CreatedAt time.Time

	// UpdatedAt is the timestamp when the user was last updated.
	UpdatedAt time.Time
}

// TableName returns the table name for GORM.
func (User) TableName() string {
	return "users"
}

func (u *User) String() string {
	return fmt.Sprintf("<User id=%d name=%q>", u.ID, u.Name)
}
