package repository

import (
	"testing"

	"github.com/rentspot/rentspot-api/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupImageRepoTest(t *testing.T) (*gorm.DB, PropertyImageRepository, uint64) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Property{},
		&models.PropertyImage{},
	))

	owner := models.User{Name: "Owner", Email: "owner@example.com", Role: models.RoleLandlord}
	require.NoError(t, db.Create(&owner).Error)

	property := models.Property{
		OwnerID:   owner.ID,
		Title:     "Gallery test",
		Price:     500,
		Bedrooms:  2,
		Bathrooms: 1,
		Lat:       -33.86,
		Lng:       151.2,
		Address:   "1 Test St",
	}
	require.NoError(t, db.Create(&property).Error)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return db, NewPropertyImageRepository(db), property.ID
}

func TestPropertyImageRepository_AddBatch_FirstIsPrimary(t *testing.T) {
	_, repo, propertyID := setupImageRepoTest(t)

	images, err := repo.AddBatch(propertyID, []string{"/uploads/a.jpg", "/uploads/b.jpg", "/uploads/c.jpg"})
	require.NoError(t, err)
	require.Len(t, images, 3)

	require.True(t, images[0].IsPrimary)
	require.False(t, images[1].IsPrimary)
	require.False(t, images[2].IsPrimary)
	require.Equal(t, 0, images[0].OrderIndex)
	require.Equal(t, 2, images[2].OrderIndex)
}

func TestPropertyImageRepository_AddBatch_KeepsExistingPrimary(t *testing.T) {
	db, repo, propertyID := setupImageRepoTest(t)

	_, err := repo.AddBatch(propertyID, []string{"/uploads/a.jpg"})
	require.NoError(t, err)

	added, err := repo.AddBatch(propertyID, []string{"/uploads/b.jpg", "/uploads/c.jpg"})
	require.NoError(t, err)

	// Appending never steals the primary flag and continues the ordering.
	require.False(t, added[0].IsPrimary)
	require.Equal(t, 1, added[0].OrderIndex)
	require.Equal(t, 2, added[1].OrderIndex)

	var primaries int64
	db.Model(&models.PropertyImage{}).
		Where("property_id = ? AND is_primary = ?", propertyID, true).
		Count(&primaries)
	require.Equal(t, int64(1), primaries)
}

func TestPropertyImageRepository_ReplaceAll(t *testing.T) {
	db, repo, propertyID := setupImageRepoTest(t)

	_, err := repo.AddBatch(propertyID, []string{"/uploads/old1.jpg", "/uploads/old2.jpg"})
	require.NoError(t, err)

	images, err := repo.ReplaceAll(propertyID, []string{"/uploads/new1.jpg", "/uploads/new2.jpg", "/uploads/new3.jpg"})
	require.NoError(t, err)
	require.Len(t, images, 3)
	require.True(t, images[0].IsPrimary)

	var urls []string
	db.Model(&models.PropertyImage{}).
		Where("property_id = ?", propertyID).
		Order("order_index").
		Pluck("url", &urls)
	require.Equal(t, []string{"/uploads/new1.jpg", "/uploads/new2.jpg", "/uploads/new3.jpg"}, urls)
}

func TestPropertyImageRepository_Delete_PromotesNext(t *testing.T) {
	db, repo, propertyID := setupImageRepoTest(t)

	images, err := repo.AddBatch(propertyID, []string{"/uploads/a.jpg", "/uploads/b.jpg", "/uploads/c.jpg"})
	require.NoError(t, err)

	// Deleting the primary image promotes the next one by gallery order.
	require.NoError(t, repo.Delete(images[0].ID))

	var promoted models.PropertyImage
	require.NoError(t, db.Where("property_id = ? AND is_primary = ?", propertyID, true).First(&promoted).Error)
	require.Equal(t, "/uploads/b.jpg", promoted.URL)

	// Deleting a non-primary image leaves the primary untouched.
	var c models.PropertyImage
	require.NoError(t, db.Where("url = ?", "/uploads/c.jpg").First(&c).Error)
	require.NoError(t, repo.Delete(c.ID))

	var primaries int64
	db.Model(&models.PropertyImage{}).
		Where("property_id = ? AND is_primary = ?", propertyID, true).
		Count(&primaries)
	require.Equal(t, int64(1), primaries)
}

func TestPropertyImageRepository_Delete_LastImage(t *testing.T) {
	db, repo, propertyID := setupImageRepoTest(t)

	images, err := repo.AddBatch(propertyID, []string{"/uploads/only.jpg"})
	require.NoError(t, err)

	require.NoError(t, repo.Delete(images[0].ID))

	var count int64
	db.Model(&models.PropertyImage{}).Where("property_id = ?", propertyID).Count(&count)
	require.Equal(t, int64(0), count)
}
