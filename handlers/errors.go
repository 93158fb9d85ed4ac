package handlers

import (
	"errors"
	"net/http"

	"complaint_flow_app_go/services"

	"github.com/labstack/echo/v4"
)

// serviceError maps service layer sentinel errors onto HTTP statuses. Errors
// with no mapping bubble up as a 500.
func serviceError(err error) error {
	switch {
	case errors.Is(err, services.ErrPermissionDenied):
		return echo.NewHTTPError(http.StatusForbidden, "Insufficient permissions")
	case errors.Is(err, services.ErrComplaintNotFound),
		errors.Is(err, services.ErrFIRNotFound),
		errors.Is(err, services.ErrCommentNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrDuplicateFIRNumber):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrComplaintValidation),
		errors.Is(err, services.ErrNoticeValidation),
		errors.Is(err, services.ErrFIRValidation),
		errors.Is(err, services.ErrCommentValidation),
		errors.Is(err, services.ErrInvalidParentComment),
		errors.Is(err, services.ErrRejectionReasonRequired),
		errors.Is(err, services.ErrInvalidJurisdiction):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return err
}
