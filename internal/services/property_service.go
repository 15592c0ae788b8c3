package services

import (
	"errors"
	"fmt"

	"github.com/rentspot/rentspot-api/internal/models"
	"github.com/rentspot/rentspot-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrPropertyNotFound      = errors.New("property not found")
	ErrPropertyForbidden     = errors.New("not authorized for this property")
	ErrMissingPropertyFields = errors.New("missing required fields")
	ErrFavoriteNotFound      = errors.New("favorite not found")
)

// PropertyService handles listing lifecycle, search, galleries, and saved
// listings.
type PropertyService struct {
	propertyRepo repository.PropertyRepository
	imageRepo    repository.PropertyImageRepository
	favoriteRepo repository.FavoriteRepository
}

// NewPropertyService creates a new PropertyService
func NewPropertyService(
	propertyRepo repository.PropertyRepository,
	imageRepo repository.PropertyImageRepository,
	favoriteRepo repository.FavoriteRepository,
) *PropertyService {
	return &PropertyService{
		propertyRepo: propertyRepo,
		imageRepo:    imageRepo,
		favoriteRepo: favoriteRepo,
	}
}

// Search returns properties matching the filter together with the total
// match count over the same predicates.
func (s *PropertyService) Search(filter repository.PropertyFilter) ([]models.Property, int64, error) {
	return s.propertyRepo.List(filter)
}

// Get returns one property with its owner and gallery loaded.
func (s *PropertyService) Get(id uint64) (*models.Property, error) {
	property, err := s.propertyRepo.FindByID(id, "Owner", "Images")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPropertyNotFound
		}
		return nil, fmt.Errorf("failed to find property: %w", err)
	}
	return property, nil
}

// ListForOwner returns a landlord's own listings with galleries.
func (s *PropertyService) ListForOwner(ownerID uint64) ([]models.Property, error) {
	return s.propertyRepo.ListByOwner(ownerID)
}

// CreatePropertyInput represents a new listing.
type CreatePropertyInput struct {
	OwnerID        uint64
	Title          string
	Price          float64
	Bedrooms       int
	Bathrooms      int
	Garages        int
	Aircon         bool
	Balcony        bool
	PetsConsidered bool
	Furnished      bool
	Type           models.PropertyType
	Status         models.PropertyStatus
	Lat            float64
	Lng            float64
	Address        string
	ImageURL       string
	Images         []string
}

// Create validates required fields and persists the listing, including its
// initial gallery when one is supplied.
func (s *PropertyService) Create(input CreatePropertyInput) (*models.Property, error) {
	if input.Title == "" || input.Price == 0 || input.Bedrooms == 0 ||
		input.Bathrooms == 0 || input.Lat == 0 || input.Lng == 0 || input.Address == "" {
		return nil, ErrMissingPropertyFields
	}

	property := &models.Property{
		OwnerID:        input.OwnerID,
		Title:          input.Title,
		Price:          input.Price,
		Bedrooms:       input.Bedrooms,
		Bathrooms:      input.Bathrooms,
		Garages:        input.Garages,
		Aircon:         input.Aircon,
		Balcony:        input.Balcony,
		PetsConsidered: input.PetsConsidered,
		Furnished:      input.Furnished,
		Type:           input.Type,
		Status:         input.Status,
		Lat:            input.Lat,
		Lng:            input.Lng,
		Address:        input.Address,
		ImageURL:       input.ImageURL,
	}

	if err := s.propertyRepo.Create(property); err != nil {
		return nil, fmt.Errorf("failed to create property: %w", err)
	}

	if len(input.Images) > 0 {
		images, err := s.imageRepo.AddBatch(property.ID, input.Images)
		if err != nil {
			return nil, fmt.Errorf("failed to save property images: %w", err)
		}
		property.Images = images
	}

	return property, nil
}

// UpdatePropertyInput represents a partial listing update. Nil fields keep
// their current value.
type UpdatePropertyInput struct {
	Title           *string
	Price           *float64
	Bedrooms        *int
	Bathrooms       *int
	Garages         *int
	Aircon          *bool
	Balcony         *bool
	PetsConsidered  *bool
	Furnished       *bool
	Type            *models.PropertyType
	Status          *models.PropertyStatus
	Lat             *float64
	Lng             *float64
	Address         *string
	Images          []string
	ReplaceAllImage bool
}

// Update applies a partial update. Only the owner or an admin may mutate a
// listing.
func (s *PropertyService) Update(id uint64, input UpdatePropertyInput, actorID uint64, actorRole models.UserRole) (*models.Property, error) {
	property, err := s.propertyRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPropertyNotFound
		}
		return nil, fmt.Errorf("failed to find property: %w", err)
	}

	if property.OwnerID != actorID && actorRole != models.RoleAdmin {
		return nil, ErrPropertyForbidden
	}

	if input.Title != nil {
		property.Title = *input.Title
	}
	if input.Price != nil {
		property.Price = *input.Price
	}
	if input.Bedrooms != nil {
		property.Bedrooms = *input.Bedrooms
	}
	if input.Bathrooms != nil {
		property.Bathrooms = *input.Bathrooms
	}
	if input.Garages != nil {
		property.Garages = *input.Garages
	}
	if input.Aircon != nil {
		property.Aircon = *input.Aircon
	}
	if input.Balcony != nil {
		property.Balcony = *input.Balcony
	}
	if input.PetsConsidered != nil {
		property.PetsConsidered = *input.PetsConsidered
	}
	if input.Furnished != nil {
		property.Furnished = *input.Furnished
	}
	if input.Type != nil {
		if !input.Type.IsValid() {
			return nil, ErrMissingPropertyFields
		}
		property.Type = *input.Type
	}
	if input.Status != nil {
		if !input.Status.IsValid() {
			return nil, ErrMissingPropertyFields
		}
		property.Status = *input.Status
	}
	if input.Lat != nil {
		property.Lat = *input.Lat
	}
	if input.Lng != nil {
		property.Lng = *input.Lng
	}
	if input.Address != nil {
		property.Address = *input.Address
	}

	if err := s.propertyRepo.Update(property); err != nil {
		return nil, fmt.Errorf("failed to update property: %w", err)
	}

	if input.Images != nil {
		var images []models.PropertyImage
		if input.ReplaceAllImage {
			images, err = s.imageRepo.ReplaceAll(id, input.Images)
		} else {
			images, err = s.imageRepo.AddBatch(id, input.Images)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to update property images: %w", err)
		}
		property.Images = images
	} else {
		images, err := s.imageRepo.ListByProperty(id)
		if err != nil {
			return nil, fmt.Errorf("failed to load property images: %w", err)
		}
		property.Images = images
	}

	return property, nil
}

// DeleteResult reports which delete path ran.
type DeleteResult struct {
	Hard bool
}

// Delete removes a listing. The first delete is a soft transition to the
// removed status, allowed for the owner or an admin. Deleting an
// already-removed listing destroys the row and its gallery for good, and is
// restricted to admins.
func (s *PropertyService) Delete(id uint64, actorID uint64, actorRole models.UserRole) (*DeleteResult, error) {
	property, err := s.propertyRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPropertyNotFound
		}
		return nil, fmt.Errorf("failed to find property: %w", err)
	}

	if property.OwnerID != actorID && actorRole != models.RoleAdmin {
		return nil, ErrPropertyForbidden
	}

	if property.Status == models.StatusRemoved {
		if actorRole != models.RoleAdmin {
			return nil, ErrPropertyForbidden
		}
		if err := s.propertyRepo.HardDelete(id); err != nil {
			return nil, fmt.Errorf("failed to delete property: %w", err)
		}
		return &DeleteResult{Hard: true}, nil
	}

	property.Status = models.StatusRemoved
	if err := s.propertyRepo.Update(property); err != nil {
		return nil, fmt.Errorf("failed to remove property: %w", err)
	}
	return &DeleteResult{Hard: false}, nil
}

// AddImages appends uploaded images to a listing's gallery. Owner or admin
// only. When the listing's legacy image field is empty, it is backfilled with
// the first saved image.
func (s *PropertyService) AddImages(id uint64, urls []string, actorID uint64, actorRole models.UserRole) ([]models.PropertyImage, error) {
	property, err := s.propertyRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPropertyNotFound
		}
		return nil, fmt.Errorf("failed to find property: %w", err)
	}

	if property.OwnerID != actorID && actorRole != models.RoleAdmin {
		return nil, ErrPropertyForbidden
	}

	images, err := s.imageRepo.AddBatch(id, urls)
	if err != nil {
		return nil, fmt.Errorf("failed to save property images: %w", err)
	}

	if property.ImageURL == "" && len(images) > 0 {
		property.ImageURL = images[0].URL
		if err := s.propertyRepo.Update(property); err != nil {
			return nil, fmt.Errorf("failed to update property image: %w", err)
		}
	}

	return images, nil
}

// FavoriteStatus reports whether the user has saved the listing.
func (s *PropertyService) FavoriteStatus(propertyID, userID uint64) (bool, error) {
	if _, err := s.favoriteRepo.Find(userID, propertyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check favorite: %w", err)
	}
	return true, nil
}

// AddFavorite saves a listing for the user. Saving an already-saved listing
// is a no-op.
func (s *PropertyService) AddFavorite(propertyID, userID uint64) error {
	if _, err := s.propertyRepo.FindByID(propertyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPropertyNotFound
		}
		return fmt.Errorf("failed to find property: %w", err)
	}

	if _, err := s.favoriteRepo.Find(userID, propertyID); err == nil {
		return nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check favorite: %w", err)
	}

	favorite := &models.Favorite{
		UserID:     userID,
		PropertyID: propertyID,
	}
	if err := s.favoriteRepo.Create(favorite); err != nil {
		return fmt.Errorf("failed to save favorite: %w", err)
	}
	return nil
}

// RemoveFavorite unsaves a listing.
func (s *PropertyService) RemoveFavorite(propertyID, userID uint64) error {
	deleted, err := s.favoriteRepo.Delete(userID, propertyID)
	if err != nil {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}
	if !deleted {
		return ErrFavoriteNotFound
	}
	return nil
}
