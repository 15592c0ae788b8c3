package dto

import (
	"time"

	"github.com/rentspot/rentspot-api/internal/models"
)

// BookingDTO represents a booking in API responses, joined with the property
// summary and landlord contact when preloaded.
type BookingDTO struct {
	ID         uint64               `json:"id"`
	UserID     uint64               `json:"user_id"`
	PropertyID uint64               `json:"property_id"`
	Datetime   time.Time            `json:"datetime"`
	Status     models.BookingStatus `json:"status"`
	CreatedAt  time.Time            `json:"created_at"`
	Title      string               `json:"title,omitempty"`
	Address    string               `json:"address,omitempty"`
	Lat        float64              `json:"lat,omitempty"`
	Lng        float64              `json:"lng,omitempty"`
	Image      string               `json:"image,omitempty"`
	Owner      *OwnerDTO            `json:"owner,omitempty"`
	Renter     *RenterDTO           `json:"renter,omitempty"`
}

// RenterDTO is the requesting user's contact block on landlord-facing
// booking lists.
type RenterDTO struct {
	Name  string `json:"user_name"`
	Email string `json:"user_email"`
	Phone string `json:"user_phone"`
}

// ToBookingDTO converts a Booking model to BookingDTO
func ToBookingDTO(booking models.Booking) BookingDTO {
	dto := BookingDTO{
		ID:         booking.ID,
		UserID:     booking.UserID,
		PropertyID: booking.PropertyID,
		Datetime:   booking.Datetime,
		Status:     booking.Status,
		CreatedAt:  booking.CreatedAt,
	}

	// Include property summary if preloaded
	if booking.Property.ID != 0 {
		dto.Title = booking.Property.Title
		dto.Address = booking.Property.Address
		dto.Lat = booking.Property.Lat
		dto.Lng = booking.Property.Lng
		dto.Image = booking.Property.PrimaryImageURL()

		if booking.Property.Owner.ID != 0 {
			dto.Owner = &OwnerDTO{
				Name:  booking.Property.Owner.Name,
				Email: booking.Property.Owner.Email,
				Phone: booking.Property.Owner.Phone,
			}
		}
	}

	// Include renter contact if preloaded
	if booking.User.ID != 0 {
		dto.Renter = &RenterDTO{
			Name:  booking.User.Name,
			Email: booking.User.Email,
			Phone: booking.User.Phone,
		}
	}

	return dto
}

// ToBookingDTOs converts a slice of bookings
func ToBookingDTOs(bookings []models.Booking) []BookingDTO {
	items := make([]BookingDTO, len(bookings))
	for i, booking := range bookings {
		items[i] = ToBookingDTO(booking)
	}
	return items
}

// FavoriteDTO represents a saved listing in API responses
type FavoriteDTO struct {
	ID       uint64      `json:"favorite_id"`
	SavedAt  time.Time   `json:"saved_at"`
	Property PropertyDTO `json:"property"`
}

// ToFavoriteDTO converts a Favorite model to FavoriteDTO
func ToFavoriteDTO(favorite models.Favorite) FavoriteDTO {
	return FavoriteDTO{
		ID:       favorite.ID,
		SavedAt:  favorite.SavedAt,
		Property: ToPropertyDTO(favorite.Property, false),
	}
}
