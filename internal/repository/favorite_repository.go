package repository

import (
	"github.com/rentspot/rentspot-api/internal/models"
	"gorm.io/gorm"
)

// GormFavoriteRepository is a GORM implementation of FavoriteRepository
type GormFavoriteRepository struct {
	db *gorm.DB
}

// NewFavoriteRepository creates a new FavoriteRepository
func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &GormFavoriteRepository{db: db}
}

// Find finds the favorite row for a (user, property) pair
func (r *GormFavoriteRepository) Find(userID, propertyID uint64) (*models.Favorite, error) {
	var favorite models.Favorite
	err := r.db.Where("user_id = ? AND property_id = ?", userID, propertyID).
		First(&favorite).Error
	if err != nil {
		return nil, err
	}
	return &favorite, nil
}

// Create saves a listing for a user
func (r *GormFavoriteRepository) Create(favorite *models.Favorite) error {
	return r.db.Create(favorite).Error
}

// Delete removes a saved listing; reports whether a row existed
func (r *GormFavoriteRepository) Delete(userID, propertyID uint64) (bool, error) {
	result := r.db.Where("user_id = ? AND property_id = ?", userID, propertyID).
		Delete(&models.Favorite{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ListByUser retrieves a user's saved listings, newest save first, with the
// property and its gallery preloaded
func (r *GormFavoriteRepository) ListByUser(userID uint64) ([]models.Favorite, error) {
	var favorites []models.Favorite
	err := r.db.
		Where("user_id = ?", userID).
		Order("saved_at DESC").
		Preload("Property").
		Preload("Property.Images").
		Find(&favorites).Error
	if err != nil {
		return nil, err
	}
	return favorites, nil
}
