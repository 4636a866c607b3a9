package store

import (
	"fmt"

	"github.com/benadictjacob/Inav-backend/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// New opens the database and returns the handle. The handle is constructed
// once at startup and passed to the services that need it; there is no
// package-level connection.
//
// TranslateError is on so driver errors arrive as gorm's structural
// categories (duplicated key, record not found) and can be mapped by apperr.
func New(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: false,
	}), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	return db, nil
}

// Migrate creates or updates the customer and payment tables. Uniqueness on
// account_number and transaction_id comes from the model tags.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Customer{}, &models.Payment{}); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}
