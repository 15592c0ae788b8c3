package models

import "time"

// PropertyImage is one entry in a listing's ordered gallery. At most one row
// per property carries IsPrimary.
type PropertyImage struct {
	ID         uint64    `gorm:"primarykey" json:"id"`
	PropertyID uint64    `gorm:"not null;index" json:"propertyId"`
	URL        string    `gorm:"type:varchar(512);not null" json:"url"`
	IsPrimary  bool      `gorm:"not null;default:false" json:"isPrimary"`
	OrderIndex int       `gorm:"not null;default:0" json:"orderIndex"`
	CreatedAt  time.Time `json:"createdAt"`

	// Relations
	Property Property `gorm:"foreignKey:PropertyID" json:"-"`
}
