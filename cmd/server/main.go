package main

import (
	"log"
	"time"

	"complaint_flow_app_go/config"
	"complaint_flow_app_go/db"
	"complaint_flow_app_go/handlers"
	"complaint_flow_app_go/middleware"
	"complaint_flow_app_go/models"
	"complaint_flow_app_go/services"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

func main() {
	cfg := config.Load()

	if err := db.Initialize(cfg.DBPath, cfg.Environment); err != nil {
		log.Fatalf("Failed to initialize complaint store: %v", err)
	}
	defer db.Close()

	if cfg.SeedMasterData {
		if err := services.SeedJurisdictions(db.DB); err != nil {
			log.Fatalf("Failed to seed jurisdiction master data: %v", err)
		}
	}

	services.InitializeStorage(cfg)

	e := echo.New()

	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowCredentials: true,
	}))

	// Make config available to handlers
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("config", cfg)
			return next(c)
		}
	})

	// Public routes
	e.POST("/api/login", handlers.Login, middleware.LoginRateLimiter.Middleware())

	// Authenticated routes
	api := e.Group("/api")
	api.Use(middleware.RequireAuth())
	api.Use(middleware.AuditContext())
	{
		api.POST("/logout", handlers.Logout)
		api.GET("/me", handlers.Me)

		// Complaints
		api.GET("/complaints", handlers.ListComplaints)
		api.POST("/complaints", handlers.CreateComplaint)
		api.GET("/complaints/:id", handlers.GetComplaint)
		api.PATCH("/complaints/:id", handlers.UpdateComplaint)
		api.POST("/complaints/:id/forward", handlers.ForwardComplaint)
		api.DELETE("/complaints/:id", handlers.DeleteComplaint,
			middleware.RequireRole(models.RoleSuperAdmin))

		// Notice workflow
		api.POST("/complaints/:id/notices", handlers.IssueNotice)
		api.PUT("/complaints/:id/notices", handlers.DecideNoticeStage,
			middleware.RequireRole(models.RoleDCP, models.RoleACP, models.RoleCommissioner, models.RoleSuperAdmin))
		api.GET("/complaints/:id/notices/pdf", handlers.NoticePDF)

		// FIRs
		api.GET("/complaints/:id/firs", handlers.ListFIRs)
		api.POST("/complaints/:id/firs", handlers.CreateFIR)
		api.PATCH("/firs/:firId", handlers.UpdateFIR)
		api.DELETE("/firs/:firId", handlers.DeleteFIR,
			middleware.RequireRole(models.RoleSuperAdmin))

		// Comments
		api.GET("/complaints/:id/comments", handlers.ListComments)
		api.POST("/complaints/:id/comments", handlers.CreateComment,
			middleware.RequireRole(models.RoleDCP, models.RoleACP, models.RoleCommissioner, models.RoleSuperAdmin))
		api.PATCH("/comments/:commentId", handlers.EditComment)
		api.DELETE("/comments/:commentId", handlers.DeleteComment)

		// Jurisdiction master data
		api.GET("/master/commissionerates", handlers.ListCommissionerates)
		api.GET("/master/dcp-zones", handlers.ListDCPZones)
		api.GET("/master/municipal-zones", handlers.ListMunicipalZones)
		api.GET("/master/acp-divisions", handlers.ListACPDivisions)

		adminRoutes := api.Group("/master")
		adminRoutes.Use(middleware.RequireRole(models.RoleSuperAdmin))
		{
			adminRoutes.POST("/commissionerates", handlers.CreateCommissionerate)
			adminRoutes.POST("/dcp-zones", handlers.CreateDCPZone)
			adminRoutes.POST("/municipal-zones", handlers.CreateMunicipalZone)
			adminRoutes.POST("/acp-divisions", handlers.CreateACPDivision)
		}

		// Reports
		api.GET("/reports/enquiry-register", handlers.EnquiryRegister,
			middleware.RequireRole(models.RoleDCP, models.RoleACP, models.RoleCommissioner, models.RoleSuperAdmin))

		// Audit trail
		auditRoutes := api.Group("/audit")
		auditRoutes.Use(middleware.RequireRole(models.RoleSuperAdmin))
		{
			auditRoutes.GET("/logs", handlers.ListAuditLogs)
			auditRoutes.GET("/:resourceType/:resourceId", handlers.ResourceAuditHistory)
		}
	}

	// Expired session cleanup, hourly
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()

		for range ticker.C {
			if err := services.CleanupExpiredSessions(db.DB); err != nil {
				log.Printf("Error cleaning up expired sessions: %v", err)
			}
		}
	}()

	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := e.Start(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
