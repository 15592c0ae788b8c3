package repository

import (
	"github.com/rentspot/rentspot-api/internal/models"
	"github.com/rentspot/rentspot-api/internal/utils"
)

// PropertyFilter holds filtering options for the property search. All set
// filters are combined with AND.
type PropertyFilter struct {
	Keyword   string
	MinPrice  *float64
	MaxPrice  *float64
	Bedrooms  *int
	Bathrooms *int
	Types     []models.PropertyType
	Status    *models.PropertyStatus
	Page      int
	Limit     int
}

// LandlordStats aggregates bookings over all properties owned by a landlord.
type LandlordStats struct {
	TotalBookings          int64 `json:"total_bookings"`
	ConfirmedBookings      int64 `json:"confirmed_bookings"`
	CompletedBookings      int64 `json:"completed_bookings"`
	PropertiesWithBookings int64 `json:"properties_with_bookings"`
}

// UserBreakdown is the per-role user count for the admin dashboard.
type UserBreakdown struct {
	TotalUsers int64 `json:"total_users"`
	Renters    int64 `json:"renters"`
	Landlords  int64 `json:"landlords"`
	Admins     int64 `json:"admins"`
}

// PropertyRepository defines the interface for property data access
type PropertyRepository interface {
	// Create creates a new property
	Create(property *models.Property) error

	// FindByID finds a property by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Property, error)

	// List retrieves properties matching the filter, newest first, with the
	// total count over the same predicate set
	List(filter PropertyFilter) ([]models.Property, int64, error)

	// ListByOwner retrieves a landlord's properties with galleries preloaded
	ListByOwner(ownerID uint64) ([]models.Property, error)

	// Update updates a property
	Update(property *models.Property) error

	// HardDelete removes a property and its images permanently
	HardDelete(id uint64) error

	// CountActiveByOwner counts an owner's properties not in the removed state
	CountActiveByOwner(ownerID uint64) (int64, error)

	// Count counts all properties
	Count() (int64, error)
}

// PropertyImageRepository defines the interface for gallery data access
type PropertyImageRepository interface {
	// ListByProperty retrieves a property's images ordered by index
	ListByProperty(propertyID uint64) ([]models.PropertyImage, error)

	// AddBatch appends images in order; the first becomes primary only when
	// the property has no images yet
	AddBatch(propertyID uint64, urls []string) ([]models.PropertyImage, error)

	// ReplaceAll swaps the whole gallery atomically
	ReplaceAll(propertyID uint64, urls []string) ([]models.PropertyImage, error)

	// Delete removes one image, promoting the next by order index when the
	// removed image was primary
	Delete(id uint64) error

	// DeleteByPropertyID removes all images of a property
	DeleteByPropertyID(propertyID uint64) error
}

// BookingRepository defines the interface for booking data access
type BookingRepository interface {
	// CreateIfNoActive inserts the booking unless the user already holds a
	// pending or confirmed booking for the same property. The check and the
	// insert run in one transaction.
	CreateIfNoActive(booking *models.Booking) error

	// FindByID finds a booking by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Booking, error)

	// ListByUser retrieves a renter's bookings, latest inspection first
	ListByUser(userID uint64) ([]models.Booking, error)

	// ListByProperty retrieves a property's bookings in inspection order
	ListByProperty(propertyID uint64) ([]models.Booking, error)

	// UpdateStatus sets the booking status
	UpdateStatus(id uint64, status models.BookingStatus) error

	// LandlordStats aggregates booking counts over a landlord's properties
	LandlordStats(landlordID uint64) (*LandlordStats, error)

	// Count counts all bookings
	Count() (int64, error)
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// Update updates a user
	Update(user *models.User) error

	// UpdateRole sets a user's role
	UpdateRole(id uint64, role models.UserRole) error

	// UpdatePassword sets a user's password hash
	UpdatePassword(id uint64, passwordHash string) error

	// List retrieves users newest-registration-first with a total count
	List(params utils.PaginationParams) ([]models.User, int64, error)

	// Breakdown aggregates user counts per role
	Breakdown() (*UserBreakdown, error)
}

// FavoriteRepository defines the interface for saved-listing data access
type FavoriteRepository interface {
	// Find finds the favorite row for a (user, property) pair
	Find(userID, propertyID uint64) (*models.Favorite, error)

	// Create saves a listing for a user
	Create(favorite *models.Favorite) error

	// Delete removes a saved listing; reports whether a row existed
	Delete(userID, propertyID uint64) (bool, error)

	// ListByUser retrieves a user's saved listings, newest save first
	ListByUser(userID uint64) ([]models.Favorite, error)
}
