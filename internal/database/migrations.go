package database

import (
	"fmt"

	"gorm.io/gorm"
)

// AddIndexes adds performance-critical indexes beyond what AutoMigrate creates.
// The existence check reads pg_indexes, so this only runs on Postgres; other
// dialects rely on the indexes AutoMigrate declares from model tags.
func AddIndexes(db *gorm.DB) error {
	if db.Dialector.Name() != "postgres" {
		return nil
	}

	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Property search filters and the newest-first sort
		{"properties", "idx_properties_price", "price"},
		{"properties", "idx_properties_type", "type"},
		{"properties", "idx_properties_owner_status", "owner_id, status"},

		// Booking lookups by renter and the duplicate-booking check
		{"bookings", "idx_bookings_user_property_status", "user_id, property_id, status"},
		{"bookings", "idx_bookings_property_datetime", "property_id, datetime"},

		// Favorites listing, newest saves first
		{"favorites", "idx_favorites_user_saved_at", "user_id, saved_at"},
	}

	for _, idx := range indexes {
		// Check if index already exists
		var count int64
		err := db.Raw(`
			SELECT COUNT(*)
			FROM pg_indexes
			WHERE tablename = ? AND indexname = ?
		`, idx.table, idx.name).Count(&count).Error

		if err != nil {
			return fmt.Errorf("failed to check index %s: %w", idx.name, err)
		}

		if count > 0 {
			fmt.Printf("Index %s already exists, skipping\n", idx.name)
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		fmt.Printf("Created index %s on %s(%s)\n", idx.name, idx.table, idx.columns)
	}

	return nil
}

// MigrateDatabase runs all database migrations
func MigrateDatabase(db *gorm.DB) error {
	if err := AddIndexes(db); err != nil {
		return fmt.Errorf("failed to add indexes: %w", err)
	}

	return nil
}
