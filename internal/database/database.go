package database

import (
	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"wastex-backend/internal/models"
)

// Open opens a GORM DB from a Postgres DSN. PreferSimpleProtocol disables
// prepared statement caching to avoid 42P05 ("prepared statement already
// exists") behind connection poolers (PgBouncer, Supabase, Render).
func Open(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
}

// OpenSQLite opens the embedded store, used for local development and tests.
func OpenSQLite(path string) (*gorm.DB, error) {
	return gorm.Open(sqlite.Open(path), &gorm.Config{})
}

// AutoMigrate runs migrations for all marketplace tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Listing{},
		&models.ListingImage{},
		&models.Bid{},
		&models.Notification{},
		&models.KYCDocument{},
		&models.Report{},
		&models.SavedListing{},
	)
}
