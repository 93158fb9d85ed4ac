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

// ListComments returns the comment threads of a complaint, filtered for the
// viewer's role.
func ListComments(c echo.Context) error {
	id, err := complaintID(c)
	if err != nil {
		return err
	}
	user := middleware.GetCurrentUser(c)

	comments, err := services.ListComments(db.DB, id, user)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, comments)
}

// CreateComment posts a comment or reply on a complaint.
func CreateComment(c echo.Context) error {
	id, err := complaintID(c)
	if err != nil {
		return err
	}
	user := middleware.GetCurrentUser(c)

	var input services.CommentInput
	if err := c.Bind(&input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	comment, err := services.CreateComment(db.DB, id, input, user)
	if err != nil {
		return serviceError(err)
	}

	auditCtx := middleware.GetAuditContext(c)
	services.LogAuditEvent(db.DB, auditCtx, models.AuditActionCreate, "Comment",
		strconv.FormatUint(uint64(comment.ID), 10), "",
		"Comment posted", nil, comment)

	return c.JSON(http.StatusCreated, comment)
}

type editCommentRequest struct {
	Content string `json:"content"`
}

// EditComment updates the content of a comment.
func EditComment(c echo.Context) error {
	commentID, err := commentID(c)
	if err != nil {
		return err
	}
	user := middleware.GetCurrentUser(c)

	var req editCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	comment, err := services.EditComment(db.DB, commentID, req.Content, user)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, comment)
}

// DeleteComment removes a comment and its reply subtree.
func DeleteComment(c echo.Context) error {
	commentID, err := commentID(c)
	if err != nil {
		return err
	}
	user := middleware.GetCurrentUser(c)

	if err := services.DeleteComment(db.DB, commentID, user); err != nil {
		return serviceError(err)
	}

	auditCtx := middleware.GetAuditContext(c)
	services.LogAuditEvent(db.DB, auditCtx, models.AuditActionDelete, "Comment",
		strconv.FormatUint(uint64(commentID), 10), "",
		"Comment thread deleted", nil, nil)

	return c.NoContent(http.StatusNoContent)
}

// commentID parses the :commentId route parameter.
func commentID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("commentId"), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid comment id")
	}
	return uint(id), nil
}
