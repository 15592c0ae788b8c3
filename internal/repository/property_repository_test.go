package repository

import (
	"fmt"
	"testing"

	"github.com/rentspot/rentspot-api/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupPropertyRepoTest(t *testing.T) (*gorm.DB, PropertyRepository, uint64) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Property{},
		&models.PropertyImage{},
		&models.Favorite{},
	))

	owner := models.User{Name: "Owner", Email: "owner@example.com", Role: models.RoleLandlord}
	require.NoError(t, db.Create(&owner).Error)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return db, NewPropertyRepository(db), owner.ID
}

func seedProperty(t *testing.T, db *gorm.DB, ownerID uint64, title string, price float64, propertyType models.PropertyType) *models.Property {
	t.Helper()

	property := &models.Property{
		OwnerID:   ownerID,
		Title:     title,
		Price:     price,
		Bedrooms:  3,
		Bathrooms: 2,
		Type:      propertyType,
		Lat:       -33.86,
		Lng:       151.2,
		Address:   "1 Test St",
	}
	require.NoError(t, db.Create(property).Error)
	return property
}

func TestPropertyRepository_List_TotalMatchesFilter(t *testing.T) {
	db, repo, ownerID := setupPropertyRepoTest(t)

	for i := 0; i < 8; i++ {
		seedProperty(t, db, ownerID, fmt.Sprintf("House %d", i), 400, models.TypeHouse)
	}
	for i := 0; i < 5; i++ {
		seedProperty(t, db, ownerID, fmt.Sprintf("Flat %d", i), 800, models.TypeApartment)
	}

	properties, total, err := repo.List(PropertyFilter{
		Types: []models.PropertyType{models.TypeHouse},
		Page:  1,
		Limit: 5,
	})
	require.NoError(t, err)
	require.Len(t, properties, 5)
	// The total reflects the filtered set, not the whole table.
	require.Equal(t, int64(8), total)
}

func TestPropertyRepository_List_PriceRange(t *testing.T) {
	db, repo, ownerID := setupPropertyRepoTest(t)

	seedProperty(t, db, ownerID, "Budget", 300, models.TypeHouse)
	seedProperty(t, db, ownerID, "Mid", 600, models.TypeHouse)
	seedProperty(t, db, ownerID, "Premium", 1200, models.TypeHouse)

	min, max := 400.0, 1000.0
	properties, total, err := repo.List(PropertyFilter{MinPrice: &min, MaxPrice: &max})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Equal(t, "Mid", properties[0].Title)
}

func TestPropertyRepository_List_NewestFirst(t *testing.T) {
	db, repo, ownerID := setupPropertyRepoTest(t)

	seedProperty(t, db, ownerID, "Older", 400, models.TypeHouse)
	newer := seedProperty(t, db, ownerID, "Newer", 500, models.TypeHouse)

	properties, _, err := repo.List(PropertyFilter{})
	require.NoError(t, err)
	require.Equal(t, newer.ID, properties[0].ID)
}

func TestPropertyRepository_HardDelete_Cascades(t *testing.T) {
	db, repo, ownerID := setupPropertyRepoTest(t)

	property := seedProperty(t, db, ownerID, "Doomed", 400, models.TypeHouse)
	require.NoError(t, db.Create(&models.PropertyImage{PropertyID: property.ID, URL: "/uploads/a.jpg", IsPrimary: true}).Error)
	require.NoError(t, db.Create(&models.Favorite{UserID: ownerID, PropertyID: property.ID}).Error)

	require.NoError(t, repo.HardDelete(property.ID))

	var count int64
	db.Model(&models.Property{}).Where("id = ?", property.ID).Count(&count)
	require.Equal(t, int64(0), count)
	db.Model(&models.PropertyImage{}).Where("property_id = ?", property.ID).Count(&count)
	require.Equal(t, int64(0), count)
	db.Model(&models.Favorite{}).Where("property_id = ?", property.ID).Count(&count)
	require.Equal(t, int64(0), count)
}

func TestPropertyRepository_CountActiveByOwner(t *testing.T) {
	db, repo, ownerID := setupPropertyRepoTest(t)

	seedProperty(t, db, ownerID, "Available", 400, models.TypeHouse)
	rented := seedProperty(t, db, ownerID, "Rented", 500, models.TypeHouse)
	removed := seedProperty(t, db, ownerID, "Removed", 600, models.TypeHouse)

	require.NoError(t, db.Model(rented).Update("status", models.StatusRented).Error)
	require.NoError(t, db.Model(removed).Update("status", models.StatusRemoved).Error)

	// Rented listings still count as active; only removed ones drop out.
	count, err := repo.CountActiveByOwner(ownerID)
	require.NoError(t, err)
	require.Equal(t, int64(2), count)
}
