package handlers

import (
	"net/http"
	"strconv"

	"complaint_flow_app_go/db"
	"complaint_flow_app_go/middleware"
	"complaint_flow_app_go/models"
	"complaint_flow_app_go/services"

	"github.com/labstack/echo/v4"
)

// ListFIRs returns the FIRs registered against a complaint.
func ListFIRs(c echo.Context) error {
	id, err := complaintID(c)
	if err != nil {
		return err
	}

	firs, err := services.ListFIRs(db.DB, id)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, firs)
}

// CreateFIR registers a new FIR against a complaint.
func CreateFIR(c echo.Context) error {
	id, err := complaintID(c)
	if err != nil {
		return err
	}
	user := middleware.GetCurrentUser(c)

	var input services.FIRInput
	if err := c.Bind(&input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	fir, err := services.CreateFIR(db.DB, id, input, user)
	if err != nil {
		return serviceError(err)
	}

	auditCtx := middleware.GetAuditContext(c)
	services.LogAuditEvent(db.DB, auditCtx, models.AuditActionCreate, "FIR",
		strconv.FormatUint(uint64(fir.ID), 10), fir.FIRNumber,
		"FIR registered", nil, fir)

	return c.JSON(http.StatusCreated, fir)
}

// UpdateFIR applies a partial update to a FIR.
func UpdateFIR(c echo.Context) error {
	firID, err := firID(c)
	if err != nil {
		return err
	}
	user := middleware.GetCurrentUser(c)

	var patch services.FIRPatch
	if err := c.Bind(&patch); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	before, err := services.GetFIR(db.DB, firID)
	if err != nil {
		return serviceError(err)
	}

	fir, err := services.UpdateFIR(db.DB, firID, patch, user)
	if err != nil {
		return serviceError(err)
	}

	auditCtx := middleware.GetAuditContext(c)
	services.LogAuditEvent(db.DB, auditCtx, models.AuditActionUpdate, "FIR",
		strconv.FormatUint(uint64(fir.ID), 10), fir.FIRNumber,
		"FIR updated", before, fir)

	return c.JSON(http.StatusOK, fir)
}

// DeleteFIR permanently removes a FIR.
func DeleteFIR(c echo.Context) error {
	firID, err := firID(c)
	if err != nil {
		return err
	}
	user := middleware.GetCurrentUser(c)

	before, err := services.GetFIR(db.DB, firID)
	if err != nil {
		return serviceError(err)
	}

	if err := services.DeleteFIR(db.DB, firID, user); err != nil {
		return serviceError(err)
	}

	auditCtx := middleware.GetAuditContext(c)
	services.LogAuditEvent(db.DB, auditCtx, models.AuditActionDelete, "FIR",
		strconv.FormatUint(uint64(firID), 10), before.FIRNumber,
		"FIR deleted", before, nil)

	return c.NoContent(http.StatusNoContent)
}

// firID parses the :firId route parameter.
func firID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("firId"), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid fir id")
	}
	return uint(id), nil
}
