package database

import (
	"fmt"

	"gallery-app/config"
	"gallery-app/internal/domain/catalog"
	"gallery-app/internal/domain/exhibitions"
	"gallery-app/internal/domain/transactions"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Connect opens the configured database and migrates the schema. The
// default is a local sqlite file next to the binary; postgres is
// available for shared installs.
func Connect() (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch config.DB_TYPE {
	case "sqlite":
		dialector = sqlite.Open(config.DB_PATH)
	case "postgres":
		dialector = postgres.Open(config.DB_URL)
	default:
		return nil, fmt.Errorf("unsupported DB_TYPE: %s", config.DB_TYPE)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate applies the schema for all domain models.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		// catalog
		&catalog.Artist{},
		&catalog.Artwork{},
		&catalog.ArtworkArtist{},

		// transactions
		&transactions.Transaction{},
		&transactions.TransactionItem{},

		// exhibitions
		&exhibitions.Exhibition{},
		&exhibitions.Participation{},
	)
	if err != nil {
		return fmt.Errorf("AutoMigrate error: %w", err)
	}
	return nil
}
