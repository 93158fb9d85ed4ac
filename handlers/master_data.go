package handlers

import (
	"net/http"
	"strconv"

	"complaint_flow_app_go/db"
	"complaint_flow_app_go/services"

	"github.com/labstack/echo/v4"
)

type masterDataRequest struct {
	Name     string `json:"name"`
	Code     string `json:"code"`
	ParentID uint   `json:"parent_id"`
}

// ListCommissionerates returns all commissionerates.
func ListCommissionerates(c echo.Context) error {
	items, err := services.GetCommissionerates(db.DB)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, items)
}

// ListDCPZones returns DCP zones, optionally scoped to a commissionerate.
func ListDCPZones(c echo.Context) error {
	parent, err := optionalParentID(c, "commissionerate_id")
	if err != nil {
		return err
	}
	items, err := services.GetDCPZones(db.DB, parent)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, items)
}

// ListMunicipalZones returns municipal zones, optionally scoped to a DCP zone.
func ListMunicipalZones(c echo.Context) error {
	parent, err := optionalParentID(c, "dcp_zone_id")
	if err != nil {
		return err
	}
	items, err := services.GetMunicipalZones(db.DB, parent)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, items)
}

// ListACPDivisions returns ACP divisions, optionally scoped to a municipal zone.
func ListACPDivisions(c echo.Context) error {
	parent, err := optionalParentID(c, "municipal_zone_id")
	if err != nil {
		return err
	}
	items, err := services.GetACPDivisions(db.DB, parent)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, items)
}

// CreateCommissionerate adds a commissionerate to the master data.
func CreateCommissionerate(c echo.Context) error {
	var req masterDataRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	item, err := services.CreateCommissionerate(db.DB, req.Name, req.Code)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusCreated, item)
}

// CreateDCPZone adds a DCP zone under a commissionerate.
func CreateDCPZone(c echo.Context) error {
	var req masterDataRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	item, err := services.CreateDCPZone(db.DB, req.Name, req.Code, req.ParentID)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusCreated, item)
}

// CreateMunicipalZone adds a municipal zone under a DCP zone.
func CreateMunicipalZone(c echo.Context) error {
	var req masterDataRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	item, err := services.CreateMunicipalZone(db.DB, req.Name, req.Code, req.ParentID)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusCreated, item)
}

// CreateACPDivision adds an ACP division under a municipal zone.
func CreateACPDivision(c echo.Context) error {
	var req masterDataRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	item, err := services.CreateACPDivision(db.DB, req.Name, req.Code, req.ParentID)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusCreated, item)
}

// optionalParentID parses an optional numeric query parameter.
func optionalParentID(c echo.Context, name string) (*uint, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "Invalid "+name)
	}
	parsed := uint(id)
	return &parsed, nil
}
