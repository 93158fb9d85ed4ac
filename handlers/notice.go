package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"complaint_flow_app_go/config"
	"complaint_flow_app_go/db"
	"complaint_flow_app_go/middleware"
	"complaint_flow_app_go/models"
	"complaint_flow_app_go/services"

	"github.com/labstack/echo/v4"
)

type issueNoticeRequest struct {
	Slot         string     `json:"slot"`
	NoticeNumber string     `json:"notice_number"`
	NoticeDate   *time.Time `json:"notice_date"`
}

type noticeDecisionRequest struct {
	Slot            string `json:"slot"`
	Stage           string `json:"stage"`
	Action          string `json:"action"` // approve or reject
	RejectionReason string `json:"rejection_reason"`
}

// IssueNotice generates or regenerates a notice on one slot of a complaint.
func IssueNotice(c echo.Context) error {
	id, err := complaintID(c)
	if err != nil {
		return err
	}
	user := middleware.GetCurrentUser(c)

	var req issueNoticeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	slot, ok := models.ParseNoticeSlot(req.Slot)
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid notice slot")
	}

	issuedAt := time.Now()
	if req.NoticeDate != nil {
		issuedAt = *req.NoticeDate
	}

	complaint, err := services.IssueNotice(db.DB, id, slot, req.NoticeNumber, issuedAt, user)
	if err != nil {
		return serviceError(err)
	}

	auditCtx := middleware.GetAuditContext(c)
	services.LogAuditEvent(db.DB, auditCtx, models.AuditActionUpdate, "Complaint",
		strconv.FormatUint(uint64(complaint.ID), 10), complaint.ComplaintCode,
		fmt.Sprintf("Notice issued on %s slot", slot), nil, complaint.Notice(slot))

	return c.JSON(http.StatusOK, complaint)
}

// DecideNoticeStage approves or rejects one stage of a notice workflow.
func DecideNoticeStage(c echo.Context) error {
	id, err := complaintID(c)
	if err != nil {
		return err
	}
	user := middleware.GetCurrentUser(c)

	var req noticeDecisionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	slot, ok := models.ParseNoticeSlot(req.Slot)
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid notice slot")
	}
	stage, ok := models.ParseNoticeStage(req.Stage)
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid notice stage")
	}

	var complaint *models.Complaint
	var action models.AuditAction
	var verb string
	switch req.Action {
	case "approve":
		action = models.AuditActionApprove
		verb = "approved"
		complaint, err = services.ApproveNoticeStage(db.DB, id, slot, stage, user)
	case "reject":
		action = models.AuditActionReject
		verb = "rejected"
		complaint, err = services.RejectNoticeStage(db.DB, id, slot, stage, req.RejectionReason, user)
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "Action must be approve or reject")
	}
	if err != nil {
		return serviceError(err)
	}

	auditCtx := middleware.GetAuditContext(c)
	services.LogAuditEvent(db.DB, auditCtx, action, "Complaint",
		strconv.FormatUint(uint64(complaint.ID), 10), complaint.ComplaintCode,
		fmt.Sprintf("Notice %s stage %s on %s slot", stage, verb, slot), nil, complaint.Notice(slot))

	notifyNoticeDecision(c, complaint, slot, stage, req, user)

	return c.JSON(http.StatusOK, complaint)
}

// notifyNoticeDecision emails the complaint creator about the stage decision.
func notifyNoticeDecision(c echo.Context, complaint *models.Complaint, slot models.NoticeSlot, stage models.NoticeStage, req noticeDecisionRequest, actor *models.User) {
	if complaint.CreatedBy == nil {
		return
	}

	notice := complaint.Notice(slot)
	number := ""
	if notice.Number != nil {
		number = *notice.Number
	}

	decision := "approved"
	if req.Action == "reject" {
		decision = "rejected"
	}

	cfg := c.Get("config").(*config.Config)
	email := services.BuildNoticeDecisionEmail(complaint.CreatedBy.Email, services.NoticeDecisionEmailData{
		RecipientName: complaint.CreatedBy.Name,
		NoticeNumber:  number,
		ComplaintCode: complaint.ComplaintCode,
		Decision:      decision,
		Stage:         string(stage),
		DecidedBy:     actor.Name,
		Reason:        req.RejectionReason,
		ComplaintURL:  fmt.Sprintf("%s/complaints/%d", cfg.AppURL, complaint.ID),
	})
	services.SendEmailAsync(cfg, email)
}

// NoticePDF streams a rendered PDF of one notice slot.
func NoticePDF(c echo.Context) error {
	id, err := complaintID(c)
	if err != nil {
		return err
	}

	slot, ok := models.ParseNoticeSlot(c.QueryParam("slot"))
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid notice slot")
	}

	pdf, err := services.GenerateNoticePDF(db.DB, id, slot)
	if err != nil {
		return serviceError(err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="notice_%d_%s.pdf"`, id, slot))
	return c.Blob(http.StatusOK, "application/pdf", pdf)
}
