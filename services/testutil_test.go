package services

import (
	"fmt"
	"testing"

	"complaint_flow_app_go/models"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB opens a fresh in-memory database with the full schema.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:mem_%s?mode=memory&cache=shared", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if Storage == nil {
		Storage = NewLocalStorage("tmp/test_uploads")
	}
	err = db.AutoMigrate(
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
	)
	if err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}
	return db
}

// createTestUser inserts an active user with the given role.
func createTestUser(t *testing.T, db *gorm.DB, role string) *models.User {
	t.Helper()
	user := &models.User{
		Name:     fmt.Sprintf("Test %s", role),
		Email:    fmt.Sprintf("%s_%s@example.com", role, uuid.New().String()[:8]),
		Password: "hashed-password",
		Role:     role,
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// createTestCommissionerate inserts one commissionerate for jurisdiction checks.
func createTestCommissionerate(t *testing.T, db *gorm.DB) *models.Commissionerate {
	t.Helper()
	c := &models.Commissionerate{Name: "Test City Police", Code: "TST"}
	if err := db.Create(c).Error; err != nil {
		t.Fatalf("failed to create commissionerate: %v", err)
	}
	return c
}

// createTestComplaint registers a minimal complaint created by the given user.
func createTestComplaint(t *testing.T, db *gorm.DB, creator *models.User, commissionerateID uint) *models.Complaint {
	t.Helper()
	complaint, err := CreateComplaint(db, ComplaintInput{
		Nature:            "Illegal construction",
		Place:             "Sector 12",
		ComplainantName:   "R. Sharma",
		BriefDetails:      "Unauthorized structure on public land.",
		CommissionerateID: commissionerateID,
	}, nil, creator)
	if err != nil {
		t.Fatalf("failed to create test complaint: %v", err)
	}
	return complaint
}
