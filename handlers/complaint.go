package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"complaint_flow_app_go/config"
	"complaint_flow_app_go/db"
	"complaint_flow_app_go/middleware"
	"complaint_flow_app_go/models"
	"complaint_flow_app_go/services"

	"github.com/labstack/echo/v4"
)

// maxAttachmentSize caps each uploaded file at 10 MB.
const maxAttachmentSize = 10 << 20

// ListComplaints returns the complaints visible to the authenticated user.
func ListComplaints(c echo.Context) error {
	user := middleware.GetCurrentUser(c)

	complaints, err := services.ListComplaints(db.DB, user)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, complaints)
}

// CreateComplaint registers a new complaint. The request is either a plain
// JSON body or a multipart form with a "data" JSON field and any number of
// "attachments" files.
func CreateComplaint(c echo.Context) error {
	user := middleware.GetCurrentUser(c)

	var input services.ComplaintInput
	var attachments []services.AttachmentUpload

	contentType := c.Request().Header.Get(echo.HeaderContentType)
	if strings.HasPrefix(contentType, echo.MIMEMultipartForm) {
		data := c.FormValue("data")
		if data == "" {
			return echo.NewHTTPError(http.StatusBadRequest, "Missing data field")
		}
		if err := json.Unmarshal([]byte(data), &input); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid data field")
		}

		form, err := c.MultipartForm()
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid multipart form")
		}
		for _, fh := range form.File["attachments"] {
			if fh.Size > maxAttachmentSize {
				return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Attachment %s exceeds the size limit", fh.Filename))
			}
			src, err := fh.Open()
			if err != nil {
				return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Failed to read attachment %s", fh.Filename))
			}
			data, err := io.ReadAll(src)
			src.Close()
			if err != nil {
				return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Failed to read attachment %s", fh.Filename))
			}
			attachments = append(attachments, services.AttachmentUpload{
				Filename:    fh.Filename,
				ContentType: fh.Header.Get("Content-Type"),
				Size:        fh.Size,
				Data:        data,
			})
		}
	} else {
		if err := c.Bind(&input); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
		}
	}

	complaint, err := services.CreateComplaint(db.DB, input, attachments, user)
	if err != nil {
		return serviceError(err)
	}

	auditCtx := middleware.GetAuditContext(c)
	services.LogAuditEvent(db.DB, auditCtx, models.AuditActionCreate, "Complaint",
		strconv.FormatUint(uint64(complaint.ID), 10), complaint.ComplaintCode,
		"Complaint registered", nil, complaint)

	return c.JSON(http.StatusCreated, complaint)
}

// GetComplaint returns one complaint with all relations.
func GetComplaint(c echo.Context) error {
	id, err := complaintID(c)
	if err != nil {
		return err
	}

	complaint, err := services.GetComplaint(db.DB, id)
	if err != nil {
		return serviceError(err)
	}

	user := middleware.GetCurrentUser(c)
	switch user.Role {
	case models.RoleFieldOfficer, models.RoleComplainant:
		if complaint.CreatedByID != user.ID {
			return echo.NewHTTPError(http.StatusForbidden, "Insufficient permissions")
		}
	}

	return c.JSON(http.StatusOK, complaint)
}

// UpdateComplaint applies a partial update; the actor's role must be allowed
// to act on the complaint's current status.
func UpdateComplaint(c echo.Context) error {
	id, err := complaintID(c)
	if err != nil {
		return err
	}
	user := middleware.GetCurrentUser(c)

	var patch services.ComplaintPatch
	if err := c.Bind(&patch); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	before, err := services.GetComplaint(db.DB, id)
	if err != nil {
		return serviceError(err)
	}

	complaint, err := services.UpdateComplaint(db.DB, id, user, patch)
	if err != nil {
		return serviceError(err)
	}

	auditCtx := middleware.GetAuditContext(c)
	services.LogAuditEvent(db.DB, auditCtx, models.AuditActionUpdate, "Complaint",
		strconv.FormatUint(uint64(complaint.ID), 10), complaint.ComplaintCode,
		"Complaint updated", before, complaint)

	return c.JSON(http.StatusOK, complaint)
}

// ForwardComplaint advances a complaint to the next review tier for the
// actor's role and assigns it to a user carrying the next tier's role.
func ForwardComplaint(c echo.Context) error {
	id, err := complaintID(c)
	if err != nil {
		return err
	}
	user := middleware.GetCurrentUser(c)

	nextStatus := services.NextComplaintStatus(user.Role)
	if nextStatus == "" {
		return echo.NewHTTPError(http.StatusForbidden, "Insufficient permissions")
	}
	nextRole := services.NextAssigneeRole(user.Role)

	patch := services.ComplaintPatch{FinalStatus: &nextStatus}
	if nextRole != "" {
		patch.AssignedToRole = &nextRole
	}

	complaint, err := services.UpdateComplaint(db.DB, id, user, patch)
	if err != nil {
		return serviceError(err)
	}

	auditCtx := middleware.GetAuditContext(c)
	services.LogAuditEvent(db.DB, auditCtx, models.AuditActionUpdate, "Complaint",
		strconv.FormatUint(uint64(complaint.ID), 10), complaint.ComplaintCode,
		fmt.Sprintf("Complaint forwarded to %s", nextStatus), nil, complaint)

	if complaint.AssignedTo != nil {
		cfg := c.Get("config").(*config.Config)
		email := services.BuildComplaintAssignedEmail(complaint.AssignedTo.Email, services.ComplaintAssignedEmailData{
			AssigneeName:  complaint.AssignedTo.Name,
			ComplaintCode: complaint.ComplaintCode,
			Nature:        complaint.Nature,
			Status:        complaint.FinalStatus,
			ComplaintURL:  fmt.Sprintf("%s/complaints/%d", cfg.AppURL, complaint.ID),
		})
		services.SendEmailAsync(cfg, email)
	}

	return c.JSON(http.StatusOK, complaint)
}

// DeleteComplaint permanently removes a complaint and everything under it.
func DeleteComplaint(c echo.Context) error {
	id, err := complaintID(c)
	if err != nil {
		return err
	}
	user := middleware.GetCurrentUser(c)

	before, err := services.GetComplaint(db.DB, id)
	if err != nil {
		return serviceError(err)
	}

	if err := services.DeleteComplaint(db.DB, id, user); err != nil {
		return serviceError(err)
	}

	auditCtx := middleware.GetAuditContext(c)
	services.LogAuditEvent(db.DB, auditCtx, models.AuditActionDelete, "Complaint",
		strconv.FormatUint(uint64(id), 10), before.ComplaintCode,
		"Complaint deleted", before, nil)

	return c.NoContent(http.StatusNoContent)
}

// complaintID parses the :id route parameter.
func complaintID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid complaint id")
	}
	return uint(id), nil
}
