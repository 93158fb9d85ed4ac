package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"complaint_flow_app_go/db"
	"complaint_flow_app_go/services"

	"github.com/labstack/echo/v4"
)

// EnquiryRegister streams the enquiry register workbook. Optional query
// parameters: from, to (YYYY-MM-DD), status, commissionerate_id.
func EnquiryRegister(c echo.Context) error {
	var filter services.EnquiryReportFilter

	if raw := c.QueryParam("from"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid from date")
		}
		filter.From = t
	}
	if raw := c.QueryParam("to"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid to date")
		}
		// Include the whole day
		filter.To = t.Add(24*time.Hour - time.Nanosecond)
	}
	filter.Status = c.QueryParam("status")
	if raw := c.QueryParam("commissionerate_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid commissionerate_id")
		}
		filter.CommissionerateID = uint(id)
	}

	buf, err := services.GenerateEnquiryRegister(db.DB, filter)
	if err != nil {
		return serviceError(err)
	}

	filename := fmt.Sprintf("enquiry_register_%s.xlsx", time.Now().Format("2006-01-02"))
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Blob(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		buf.Bytes())
}
