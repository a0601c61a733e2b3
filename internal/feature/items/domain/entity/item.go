// Package entity defines the domain entities for the items feature.
package entity

import (
	"fmt"
	"time"
)

// Item status values. The UI offers these three; the server stores the
// status string as-is without further validation.
const (
	StatusPossession  = "possession"
	StatusConsidering = "considering"
	StatusDisposed    = "disposed"
)

// Item represents a single inventory entry owned by a user.
type Item struct {
	// ID is the unique identifier for the item.
	ID uint `gorm:"primaryKey"`

	// UserID references the owning user. Set from the session user at
	// creation time and never changed afterwards.
	UserID uint `gorm:"index;not null"`

	// Name is the item's display name.
	Name string `gorm:"size:255"`

	// Description is free text about the item.
	Description string `gorm:"type:text"`

	// URL is a reference link for the item (shop page, manual, ...).
	URL string `gorm:"size:255"`

	// Category is a free-text grouping label.
	Category string `gorm:"size:255"`

	// Status is one of possession / considering / disposed.
	Status string `gorm:"size:32;index"`

	// CreatedOn is set once by storage at insertion.
	CreatedOn time.Time `gorm:"autoCreateTime"`

	// UpdatedOn is refreshed by storage on every update.
	UpdatedOn time.Time `gorm:"autoUpdateTime"`
}

// TableName returns the table name for GORM.
func (Item) TableName() string {
	return "items"
}

func (i *Item) String() string {
	return fmt.Sprintf("<Item id=%d name=%q>", i.ID, i.Name)
}
