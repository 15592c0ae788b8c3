package models

import (
	"strconv"
	"time"
)

// PropertyType is the dwelling category of a listing.
type PropertyType int

const (
	TypeHouse     PropertyType = 0
	TypeApartment PropertyType = 1
	TypeTownhouse PropertyType = 2
	TypeVilla     PropertyType = 3
)

func (t PropertyType) IsValid() bool {
	return t >= TypeHouse && t <= TypeVilla
}

// ParsePropertyType normalizes a filter value to a type code. Clients send
// either symbolic names or numeric codes; both are accepted.
func ParsePropertyType(s string) (PropertyType, bool) {
	switch s {
	case "house":
		return TypeHouse, true
	case "apartment":
		return TypeApartment, true
	case "townhouse":
		return TypeTownhouse, true
	case "villa":
		return TypeVilla, true
	}
	if n, err := strconv.Atoi(s); err == nil {
		t := PropertyType(n)
		if t.IsValid() {
			return t, true
		}
	}
	return 0, false
}

// PropertyStatus is the listing lifecycle state. Removed listings keep their
// row; a second delete by an admin removes it for good.
type PropertyStatus int

const (
	StatusAvailable PropertyStatus = 0
	StatusRented    PropertyStatus = 1
	StatusRemoved   PropertyStatus = 2
)

func (s PropertyStatus) IsValid() bool {
	return s >= StatusAvailable && s <= StatusRemoved
}

type Property struct {
	ID             uint64         `gorm:"primarykey" json:"id"`
	OwnerID        uint64         `gorm:"not null;index" json:"owner_id"`
	Title          string         `gorm:"type:varchar(255);not null" json:"title"`
	Price          float64        `gorm:"not null" json:"price"`
	Bedrooms       int            `gorm:"not null" json:"bedrooms"`
	Bathrooms      int            `gorm:"not null" json:"bathrooms"`
	Garages        int            `json:"garages"`
	Aircon         bool           `json:"aircon"`
	Balcony        bool           `json:"balcony"`
	PetsConsidered bool           `json:"petsConsidered"`
	Furnished      bool           `json:"furnished"`
	Type           PropertyType   `gorm:"not null;default:0" json:"type"`
	Status         PropertyStatus `gorm:"not null;default:0;index" json:"status"`
	Lat            float64        `json:"lat"`
	Lng            float64        `json:"lng"`
	Address        string         `gorm:"type:varchar(512)" json:"address"`
	// ImageURL is the legacy single-image field, kept as the last fallback
	// when a listing has no PropertyImage rows.
	ImageURL  string    `gorm:"type:varchar(512)" json:"-"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`

	// Relations
	Owner  User            `gorm:"foreignKey:OwnerID" json:"-"`
	Images []PropertyImage `gorm:"foreignKey:PropertyID" json:"-"`
}

// PrimaryImageURL resolves the representative image: the row flagged primary,
// else the row with the lowest order index, else the legacy field.
func (p *Property) PrimaryImageURL() string {
	var best *PropertyImage
	for i := range p.Images {
		img := &p.Images[i]
		if img.IsPrimary {
			return img.URL
		}
		if best == nil || img.OrderIndex < best.OrderIndex {
			best = img
		}
	}
	if best != nil {
		return best.URL
	}
	return p.ImageURL
}
