package database

import (
	"github.com/futureapi/server/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

// Initialize opens the database and runs migrations. Callers must not start
// serving requests until it has returned successfully.
func Initialize(dbPath string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Invite{},
	); err != nil {
		return nil, err
	}

	return db, nil
}
