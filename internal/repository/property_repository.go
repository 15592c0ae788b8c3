package repository

import (
	"github.com/rentspot/rentspot-api/internal/models"
	"gorm.io/gorm"
)

// GormPropertyRepository is a GORM implementation of PropertyRepository
type GormPropertyRepository struct {
	db *gorm.DB
}

// NewPropertyRepository creates a new PropertyRepository
func NewPropertyRepository(db *gorm.DB) PropertyRepository {
	return &GormPropertyRepository{db: db}
}

// Create creates a new property
func (r *GormPropertyRepository) Create(property *models.Property) error {
	return r.db.Create(property).Error
}

// FindByID finds a property by ID with optional preloading
func (r *GormPropertyRepository) FindByID(id uint64, preload ...string) (*models.Property, error) {
	var property models.Property
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&property, id).Error; err != nil {
		return nil, err
	}

	return &property, nil
}

// List retrieves properties matching the filter. The count query runs over
// the same predicate set before pagination is applied, so pages stays
// consistent with total.
func (r *GormPropertyRepository) List(filter PropertyFilter) ([]models.Property, int64, error) {
	var properties []models.Property

	query := r.db.Model(&models.Property{})

	if filter.Keyword != "" {
		pattern := "%" + filter.Keyword + "%"
		query = query.Where("title LIKE ? OR address LIKE ?", pattern, pattern)
	}
	if filter.MinPrice != nil {
		query = query.Where("price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("price <= ?", *filter.MaxPrice)
	}
	if filter.Bedrooms != nil {
		query = query.Where("bedrooms >= ?", *filter.Bedrooms)
	}
	if filter.Bathrooms != nil {
		query = query.Where("bathrooms >= ?", *filter.Bathrooms)
	}
	if len(filter.Types) > 0 {
		query = query.Where("type IN ?", filter.Types)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("id DESC")
	if filter.Page > 0 && filter.Limit > 0 {
		offset := (filter.Page - 1) * filter.Limit
		listQuery = listQuery.Offset(offset).Limit(filter.Limit)
	}

	if err := listQuery.Preload("Images").Find(&properties).Error; err != nil {
		return nil, 0, err
	}

	return properties, total, nil
}

// ListByOwner retrieves a landlord's properties with galleries preloaded
func (r *GormPropertyRepository) ListByOwner(ownerID uint64) ([]models.Property, error) {
	var properties []models.Property
	err := r.db.
		Where("owner_id = ?", ownerID).
		Order("id DESC").
		Preload("Images").
		Find(&properties).Error
	if err != nil {
		return nil, err
	}
	return properties, nil
}

// Update updates a property
func (r *GormPropertyRepository) Update(property *models.Property) error {
	return r.db.Save(property).Error
}

// HardDelete removes a property and its images permanently
func (r *GormPropertyRepository) HardDelete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("property_id = ?", id).Delete(&models.PropertyImage{}).Error; err != nil {
			return err
		}
		if err := tx.Where("property_id = ?", id).Delete(&models.Favorite{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Property{}, id).Error
	})
}

// CountActiveByOwner counts an owner's properties not in the removed state
func (r *GormPropertyRepository) CountActiveByOwner(ownerID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&models.Property{}).
		Where("owner_id = ? AND status <> ?", ownerID, models.StatusRemoved).
		Count(&count).Error
	return count, err
}

// Count counts all properties
func (r *GormPropertyRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Property{}).Count(&count).Error
	return count, err
}
