package repository

import (
	"github.com/rentspot/rentspot-api/internal/models"
	"gorm.io/gorm"
)

// GormPropertyImageRepository is a GORM implementation of PropertyImageRepository
type GormPropertyImageRepository struct {
	db *gorm.DB
}

// NewPropertyImageRepository creates a new PropertyImageRepository
func NewPropertyImageRepository(db *gorm.DB) PropertyImageRepository {
	return &GormPropertyImageRepository{db: db}
}

// ListByProperty retrieves a property's images ordered by index
func (r *GormPropertyImageRepository) ListByProperty(propertyID uint64) ([]models.PropertyImage, error) {
	var images []models.PropertyImage
	err := r.db.
		Where("property_id = ?", propertyID).
		Order("order_index ASC, created_at ASC").
		Find(&images).Error
	if err != nil {
		return nil, err
	}
	return images, nil
}

// AddBatch appends images in array order. The first image becomes primary
// only when the property has no images yet, keeping the at-most-one-primary
// invariant. Check and insert share one transaction.
func (r *GormPropertyImageRepository) AddBatch(propertyID uint64, urls []string) ([]models.PropertyImage, error) {
	if len(urls) == 0 {
		return []models.PropertyImage{}, nil
	}

	var images []models.PropertyImage
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&models.PropertyImage{}).
			Where("property_id = ?", propertyID).
			Count(&existing).Error; err != nil {
			return err
		}

		images = make([]models.PropertyImage, len(urls))
		for i, url := range urls {
			images[i] = models.PropertyImage{
				PropertyID: propertyID,
				URL:        url,
				IsPrimary:  i == 0 && existing == 0,
				OrderIndex: int(existing) + i,
			}
		}

		return tx.Create(&images).Error
	})
	if err != nil {
		return nil, err
	}
	return images, nil
}

// ReplaceAll swaps the whole gallery in one transaction, so a failure leaves
// the old gallery intact
func (r *GormPropertyImageRepository) ReplaceAll(propertyID uint64, urls []string) ([]models.PropertyImage, error) {
	var images []models.PropertyImage
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("property_id = ?", propertyID).Delete(&models.PropertyImage{}).Error; err != nil {
			return err
		}

		if len(urls) == 0 {
			images = []models.PropertyImage{}
			return nil
		}

		images = make([]models.PropertyImage, len(urls))
		for i, url := range urls {
			images[i] = models.PropertyImage{
				PropertyID: propertyID,
				URL:        url,
				IsPrimary:  i == 0,
				OrderIndex: i,
			}
		}

		return tx.Create(&images).Error
	})
	if err != nil {
		return nil, err
	}
	return images, nil
}

// Delete removes one image. When the removed image was primary, the next
// image by order index is promoted so the property keeps a primary image.
func (r *GormPropertyImageRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var image models.PropertyImage
		if err := tx.First(&image, id).Error; err != nil {
			return err
		}

		if err := tx.Delete(&models.PropertyImage{}, id).Error; err != nil {
			return err
		}

		if !image.IsPrimary {
			return nil
		}

		var next models.PropertyImage
		err := tx.Where("property_id = ?", image.PropertyID).
			Order("order_index ASC, created_at ASC").
			First(&next).Error
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil
			}
			return err
		}

		return tx.Model(&models.PropertyImage{}).
			Where("id = ?", next.ID).
			Update("is_primary", true).Error
	})
}

// DeleteByPropertyID removes all images of a property
func (r *GormPropertyImageRepository) DeleteByPropertyID(propertyID uint64) error {
	return r.db.Where("property_id = ?", propertyID).Delete(&models.PropertyImage{}).Error
}
