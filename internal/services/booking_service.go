package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/rentspot/rentspot-api/internal/constants"
	"github.com/rentspot/rentspot-api/internal/models"
	"github.com/rentspot/rentspot-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrBookingNotFound      = errors.New("booking not found")
	ErrDatetimeRequired     = errors.New("property ID and datetime are required")
	ErrBookingLeadTime      = errors.New("booking must be at least 4 hours in advance")
	ErrCancelLeadTime       = errors.New("cannot cancel booking less than 4 hours before inspection time")
	ErrDuplicateBooking     = errors.New("you already have an active booking for this property")
	ErrInvalidBookingStatus = errors.New("invalid status value")
	ErrBookingForbidden     = errors.New("not authorized for this booking")
)

// BookingService enforces inspection-booking timing rules, the status state
// machine, and per-booking authorization.
type BookingService struct {
	bookingRepo  repository.BookingRepository
	propertyRepo repository.PropertyRepository
}

// NewBookingService creates a new BookingService
func NewBookingService(bookingRepo repository.BookingRepository, propertyRepo repository.PropertyRepository) *BookingService {
	return &BookingService{
		bookingRepo:  bookingRepo,
		propertyRepo: propertyRepo,
	}
}

// CreateBookingInput represents a booking request.
type CreateBookingInput struct {
	UserID     uint64
	PropertyID uint64
	Datetime   time.Time
}

// Create books an inspection. The scheduled time must be at least the lead
// time in the future, measured from now at the moment of the request.
// Bookings are auto-confirmed; there is no landlord approval step.
func (s *BookingService) Create(input CreateBookingInput) (*models.Booking, error) {
	if input.PropertyID == 0 || input.Datetime.IsZero() {
		return nil, ErrDatetimeRequired
	}

	if input.Datetime.Before(time.Now().Add(constants.BookingLeadTime)) {
		return nil, ErrBookingLeadTime
	}

	if _, err := s.propertyRepo.FindByID(input.PropertyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPropertyNotFound
		}
		return nil, fmt.Errorf("failed to find property: %w", err)
	}

	booking := &models.Booking{
		UserID:     input.UserID,
		PropertyID: input.PropertyID,
		Datetime:   input.Datetime,
		Status:     models.BookingConfirmed,
	}

	if err := s.bookingRepo.CreateIfNoActive(booking); err != nil {
		if errors.Is(err, repository.ErrActiveBookingExists) {
			return nil, ErrDuplicateBooking
		}
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	return booking, nil
}

// ListForUser returns the renter's bookings with property details.
func (s *BookingService) ListForUser(userID uint64) ([]models.Booking, error) {
	return s.bookingRepo.ListByUser(userID)
}

// ListForProperty returns a property's bookings. Only the owning landlord or
// an admin may view them.
func (s *BookingService) ListForProperty(propertyID, actorID uint64, actorRole models.UserRole) ([]models.Booking, error) {
	property, err := s.propertyRepo.FindByID(propertyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPropertyNotFound
		}
		return nil, fmt.Errorf("failed to find property: %w", err)
	}

	if property.OwnerID != actorID && actorRole != models.RoleAdmin {
		return nil, ErrBookingForbidden
	}

	return s.bookingRepo.ListByProperty(propertyID)
}

// UpdateStatus transitions a booking. Permitted for the booking's renter, the
// property's owning landlord, or an admin.
func (s *BookingService) UpdateStatus(bookingID uint64, status models.BookingStatus, actorID uint64, actorRole models.UserRole) (*models.Booking, error) {
	if !status.IsValid() {
		return nil, ErrInvalidBookingStatus
	}

	booking, err := s.bookingRepo.FindByID(bookingID, "Property")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to find booking: %w", err)
	}

	isRenter := booking.UserID == actorID
	isLandlord := booking.Property.OwnerID == actorID
	isAdmin := actorRole == models.RoleAdmin

	if !isRenter && !isLandlord && !isAdmin {
		return nil, ErrBookingForbidden
	}

	if err := s.bookingRepo.UpdateStatus(bookingID, status); err != nil {
		return nil, fmt.Errorf("failed to update booking status: %w", err)
	}

	booking.Status = status
	return booking, nil
}

// Cancel soft-cancels a booking. Allowed for the booking's renter or an
// admin, and only while the scheduled time is still at least the lead time
// away. The row is never physically deleted.
func (s *BookingService) Cancel(bookingID, actorID uint64, actorRole models.UserRole) error {
	booking, err := s.bookingRepo.FindByID(bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBookingNotFound
		}
		return fmt.Errorf("failed to find booking: %w", err)
	}

	if booking.UserID != actorID && actorRole != models.RoleAdmin {
		return ErrBookingForbidden
	}

	// Same lead time as creation, applied to the stored inspection time.
	if booking.Datetime.Before(time.Now().Add(constants.BookingLeadTime)) {
		return ErrCancelLeadTime
	}

	if err := s.bookingRepo.UpdateStatus(bookingID, models.BookingCancelled); err != nil {
		return fmt.Errorf("failed to cancel booking: %w", err)
	}

	return nil
}

// InspectionSlot is one bookable inspection window.
type InspectionSlot struct {
	Datetime  time.Time `json:"datetime"`
	Type      string    `json:"type"`
	Available bool      `json:"available"`
}

// AvailableSlots returns two fixed daily slots (10:00 and 14:00 local) for
// each of the next 7 days. The template is static: it does not consult
// existing bookings, which is a known product limitation.
func (s *BookingService) AvailableSlots(propertyID uint64) ([]InspectionSlot, error) {
	if _, err := s.propertyRepo.FindByID(propertyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPropertyNotFound
		}
		return nil, fmt.Errorf("failed to find property: %w", err)
	}

	now := time.Now()
	slots := make([]InspectionSlot, 0, constants.SlotTemplateDays*2)

	for i := 1; i <= constants.SlotTemplateDays; i++ {
		day := now.AddDate(0, 0, i)

		morning := time.Date(day.Year(), day.Month(), day.Day(),
			constants.MorningSlotHour, 0, 0, 0, day.Location())
		slots = append(slots, InspectionSlot{Datetime: morning, Type: "morning", Available: true})

		afternoon := time.Date(day.Year(), day.Month(), day.Day(),
			constants.AfternoonSlotHour, 0, 0, 0, day.Location())
		slots = append(slots, InspectionSlot{Datetime: afternoon, Type: "afternoon", Available: true})
	}

	return slots, nil
}

// LandlordStats aggregates booking counts over the landlord's properties.
func (s *BookingService) LandlordStats(landlordID uint64) (*repository.LandlordStats, error) {
	return s.bookingRepo.LandlordStats(landlordID)
}
