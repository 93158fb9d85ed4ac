package handlers

import (
	"net/http"
	"strconv"
	"time"

	"complaint_flow_app_go/db"
	"complaint_flow_app_go/services"

	"github.com/labstack/echo/v4"
)

// ResourceAuditHistory returns the audit trail for one resource.
func ResourceAuditHistory(c echo.Context) error {
	resourceType := c.Param("resourceType")
	resourceID := c.Param("resourceId")

	logs, err := services.GetResourceAuditHistory(db.DB, resourceType, resourceID)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, logs)
}

// ListAuditLogs returns paginated audit logs with optional filters.
func ListAuditLogs(c echo.Context) error {
	filters := services.AuditLogFilters{
		UserID:       c.QueryParam("user_id"),
		ResourceType: c.QueryParam("resource_type"),
		Action:       c.QueryParam("action"),
		SearchQuery:  c.QueryParam("q"),
	}
	if raw := c.QueryParam("from"); raw != "" {
		if t, err := time.Parse("2006-01-02", raw); err == nil {
			filters.DateFrom = t
		}
	}
	if raw := c.QueryParam("to"); raw != "" {
		if t, err := time.Parse("2006-01-02", raw); err == nil {
			filters.DateTo = t.Add(24*time.Hour - time.Nanosecond)
		}
	}

	page := 1
	if raw := c.QueryParam("page"); raw != "" {
		if p, err := strconv.Atoi(raw); err == nil && p > 0 {
			page = p
		}
	}
	pageSize := 50
	if raw := c.QueryParam("page_size"); raw != "" {
		if s, err := strconv.Atoi(raw); err == nil && s > 0 && s <= 200 {
			pageSize = s
		}
	}

	logs, total, err := services.GetAuditLogs(db.DB, filters, page, pageSize)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"logs":  logs,
		"total": total,
		"page":  page,
	})
}
