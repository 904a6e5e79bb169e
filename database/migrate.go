package database

import (
	"github.com/yeremiapane/kitchenlog/models"
	"github.com/yeremiapane/kitchenlog/utils"
	"gorm.io/gorm"
)

// Migrate creates or updates the tasks and temp_records tables and their
// timestamp indexes.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.CleaningTask{},
		&models.TemperatureRecord{},
	)
	if err != nil {
		utils.ErrorLogger.Printf("Failed to AutoMigrate: %v", err)
		return err
	}
	utils.InfoLogger.WithField("schema_version", models.SchemaVersion).Info("AutoMigrate completed.")
	return nil
}
