package db

import (
	"fmt"
	"log"

	"complaint_flow_app_go/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// complaintModels is the full schema of the complaint store, in dependency
// order: identities first, then jurisdiction master data, then the complaint
// aggregate and its children.
var complaintModels = []interface{}{
	&models.User{},
	&models.Session{},
	&models.Commissionerate{},
	&models.DCPZone{},
	&models.MunicipalZone{},
	&models.ACPDivision{},
	&models.Complaint{},
	&models.FIR{},
	&models.Comment{},
	&models.ComplaintAttachment{},
	&models.AuditLog{},
}

// Initialize opens the complaint store and migrates its schema. WAL mode
// keeps concurrent reads open while a notice approval or status update
// writes the complaint row.
func Initialize(dbPath string, environment string) error {
	logLevel := logger.Info
	if environment == "production" {
		logLevel = logger.Warn
	}

	dsn := dbPath + "?_journal_mode=WAL"

	var err error
	DB, err = gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return fmt.Errorf("failed to open complaint store: %w", err)
	}

	if err := DB.AutoMigrate(complaintModels...); err != nil {
		return fmt.Errorf("failed to migrate complaint store: %w", err)
	}

	log.Printf("Complaint store ready at %s (WAL, %d models migrated)", dbPath, len(complaintModels))
	return nil
}

// Close closes the database connection
func Close() error {
	if DB == nil {
		return nil
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	return sqlDB.Close()
}
