package database

import (
	"fmt"

	"github.com/yukikurage/printflow/internal/models"
	"gorm.io/gorm"
)

// Migrate creates or updates the orders and chat tables.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Order{},
		&models.ChatMessage{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
