package db

import (
	"gorm.io/gorm"

	"github.com/localkart/core-api/models"
)

// Migrate applies the schema for every persisted record type.
func Migrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		&models.User{},
		&models.Provider{},
		&models.Booking{},
		&models.Message{},
	)
}
