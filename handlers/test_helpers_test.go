package handlers

import (
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"complaint_flow_app_go/config"
	"complaint_flow_app_go/db"
	"complaint_flow_app_go/middleware"
	"complaint_flow_app_go/models"
	"complaint_flow_app_go/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	// Unique shared memory name isolates tests while keeping the cache shared
	// for the async audit writer
	dbName := "mem_" + uuid.New().String()
	testDB, err := gorm.Open(sqlite.Open("file:"+dbName+"?mode=memory&cache=shared&_busy_timeout=5000"), &gorm.Config{})
	assert.NoError(t, err)

	if services.Storage == nil {
		services.Storage = services.NewLocalStorage("tmp/test_uploads")
	}

	err = testDB.AutoMigrate(
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
	assert.NoError(t, err)

	db.DB = testDB
	return testDB
}

func setupEcho(method, path string, body io.Reader) (*echo.Echo, echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, path, body)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	c.Set("config", &config.Config{
		Environment:   "test",
		AppURL:        "http://localhost:8080",
		EmailTestMode: true,
	})

	return e, c, rec
}

func createUser(t *testing.T, database *gorm.DB, role, password string) *models.User {
	hashed, err := services.HashPassword(password)
	assert.NoError(t, err)
	user := &models.User{
		Name:     "Test " + role,
		Email:    fmt.Sprintf("%s-%s@test.gov.in", role, uuid.New().String()[:8]),
		Password: hashed,
		Role:     role,
		IsActive: true,
	}
	assert.NoError(t, database.Create(user).Error)
	return user
}

// actAs marks the request as authenticated for handlers that read the
// current user and audit context from the echo context.
func actAs(c echo.Context, user *models.User) {
	c.Set(middleware.ContextKeyUser, user)
	c.Set(middleware.ContextKeyAuditContext, services.AuditContext{
		UserID:   user.ID,
		UserName: user.Name,
		UserRole: user.Role,
	})
}

func createComplaintFixture(t *testing.T, database *gorm.DB, creator *models.User) *models.Complaint {
	comm := &models.Commissionerate{Name: "Test City Police", Code: "TST"}
	assert.NoError(t, database.Create(comm).Error)

	complaint, err := services.CreateComplaint(database, services.ComplaintInput{
		Nature:            "Illegal construction",
		Place:             "Sector 12",
		ComplainantName:   "R. Sharma",
		BriefDetails:      "Unauthorized structure on public land",
		CommissionerateID: comm.ID,
	}, nil, creator)
	assert.NoError(t, err)
	return complaint
}

func httpCode(t *testing.T, err error) int {
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError, got %T: %v", err, err)
	}
	return he.Code
}
