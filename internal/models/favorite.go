package models

import "time"

// Favorite is a saved listing for a user. One row per (user, property) pair.
type Favorite struct {
	ID         uint64    `gorm:"primarykey" json:"id"`
	UserID     uint64    `gorm:"not null;uniqueIndex:idx_favorites_user_property" json:"user_id"`
	PropertyID uint64    `gorm:"not null;uniqueIndex:idx_favorites_user_property" json:"property_id"`
	SavedAt    time.Time `gorm:"autoCreateTime" json:"saved_at"`

	// Relations
	User     User     `gorm:"foreignKey:UserID" json:"-"`
	Property Property `gorm:"foreignKey:PropertyID" json:"-"`
}
