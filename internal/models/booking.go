package models

import "time"

// BookingStatus is the inspection appointment state. Cancelled and completed
// are terminal; rows are never physically deleted.
type BookingStatus int

const (
	BookingPending   BookingStatus = 0
	BookingConfirmed BookingStatus = 1
	BookingCancelled BookingStatus = 2
	BookingCompleted BookingStatus = 3
)

func (s BookingStatus) IsValid() bool {
	return s >= BookingPending && s <= BookingCompleted
}

// IsActive reports whether the booking still blocks a new booking for the
// same user and property.
func (s BookingStatus) IsActive() bool {
	return s == BookingPending || s == BookingConfirmed
}

func (s BookingStatus) String() string {
	switch s {
	case BookingPending:
		return "pending"
	case BookingConfirmed:
		return "confirmed"
	case BookingCancelled:
		return "cancelled"
	case BookingCompleted:
		return "completed"
	}
	return "unknown"
}

type Booking struct {
	ID         uint64        `gorm:"primarykey" json:"id"`
	UserID     uint64        `gorm:"not null;index" json:"user_id"`
	PropertyID uint64        `gorm:"not null;index" json:"property_id"`
	Datetime   time.Time     `gorm:"not null" json:"datetime"`
	Status     BookingStatus `gorm:"not null;default:1" json:"status"`
	CreatedAt  time.Time     `json:"created_at"`

	// Relations
	User     User     `gorm:"foreignKey:UserID" json:"-"`
	Property Property `gorm:"foreignKey:PropertyID" json:"-"`
}
