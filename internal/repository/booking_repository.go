package repository

import (
	"errors"

	"github.com/rentspot/rentspot-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrActiveBookingExists is returned when the user already holds a pending or
// confirmed booking for the property.
var ErrActiveBookingExists = errors.New("booking repository: active booking exists for this user and property")

// GormBookingRepository is a GORM implementation of BookingRepository
type GormBookingRepository struct {
	db *gorm.DB
}

// NewBookingRepository creates a new BookingRepository
func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &GormBookingRepository{db: db}
}

// CreateIfNoActive inserts the booking unless an active one exists for the
// same (user, property) pair. The existence check and the insert run inside
// one transaction with the matching rows locked, so two concurrent requests
// for the same pair cannot both pass the check.
func (r *GormBookingRepository) CreateIfNoActive(booking *models.Booking) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.Model(&models.Booking{}).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND property_id = ? AND status IN ?",
				booking.UserID,
				booking.PropertyID,
				[]models.BookingStatus{models.BookingPending, models.BookingConfirmed}).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			return ErrActiveBookingExists
		}

		return tx.Create(booking).Error
	})
}

// FindByID finds a booking by ID with optional preloading
func (r *GormBookingRepository) FindByID(id uint64, preload ...string) (*models.Booking, error) {
	var booking models.Booking
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&booking, id).Error; err != nil {
		return nil, err
	}

	return &booking, nil
}

// ListByUser retrieves a renter's bookings, latest inspection first, with the
// property, its gallery, and the owning landlord preloaded for the response
func (r *GormBookingRepository) ListByUser(userID uint64) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.
		Where("user_id = ?", userID).
		Order("datetime DESC").
		Preload("Property").
		Preload("Property.Images").
		Preload("Property.Owner").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

// ListByProperty retrieves a property's bookings in inspection order with the
// requesting renter preloaded
func (r *GormBookingRepository) ListByProperty(propertyID uint64) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.
		Where("property_id = ?", propertyID).
		Order("datetime ASC").
		Preload("User").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

// UpdateStatus sets the booking status
func (r *GormBookingRepository) UpdateStatus(id uint64, status models.BookingStatus) error {
	return r.db.Model(&models.Booking{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// LandlordStats aggregates booking counts over all properties owned by the
// landlord
func (r *GormBookingRepository) LandlordStats(landlordID uint64) (*LandlordStats, error) {
	var stats LandlordStats
	err := r.db.Raw(`
		SELECT
			COUNT(DISTINCT b.id) AS total_bookings,
			COUNT(DISTINCT CASE WHEN b.status = ? THEN b.id END) AS confirmed_bookings,
			COUNT(DISTINCT CASE WHEN b.status = ? THEN b.id END) AS completed_bookings,
			COUNT(DISTINCT b.property_id) AS properties_with_bookings
		FROM bookings b
		JOIN properties p ON b.property_id = p.id
		WHERE p.owner_id = ?
	`, models.BookingConfirmed, models.BookingCompleted, landlordID).
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// Count counts all bookings
func (r *GormBookingRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Booking{}).Count(&count).Error
	return count, err
}
