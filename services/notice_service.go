package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"complaint_flow_app_go/models"

	"gorm.io/gorm"
)

// Notice workflow errors
var (
	ErrNoticeValidation        = errors.New("notice validation failed")
	ErrRejectionReasonRequired = errors.New("rejection reason is required")
)

// noticeStageRank orders the approval tiers for the rejection rule: a stage
// may be rejected by its own tier or any tier above it.
func noticeStageRank(role string) int {
	switch role {
	case models.RoleDCP:
		return 1
	case models.RoleACP:
		return 2
	case models.RoleCommissioner:
		return 3
	}
	return 0
}

// CanRejectNoticeStage reports whether a role may reject the given stage.
// Unlike approval, which belongs to exactly one tier, a rejection may come
// from the stage's own tier or any tier above it.
func CanRejectNoticeStage(role string, stage models.NoticeStage) bool {
	if role == models.RoleSuperAdmin {
		return true
	}
	var required int
	switch stage {
	case models.NoticeStageDCP:
		required = 1
	case models.NoticeStageACP:
		required = 2
	case models.NoticeStageCommissioner:
		required = 3
	default:
		return false
	}
	return noticeStageRank(role) >= required
}

// IssueNotice generates (or regenerates) a notice for one slot. Reissuing
// resets every stage approval, the rejection fields and the overall status
// back to PENDING, restarting the workflow from scratch.
func IssueNotice(db *gorm.DB, complaintID uint, slot models.NoticeSlot, number string, issuedAt time.Time, actor *models.User) (*models.Complaint, error) {
	if !CanIssueNotice(actor.Role) {
		return nil, ErrPermissionDenied
	}
	if strings.TrimSpace(number) == "" {
		return nil, fmt.Errorf("%w: notice number is required", ErrNoticeValidation)
	}
	if issuedAt.IsZero() {
		return nil, fmt.Errorf("%w: notice date is required", ErrNoticeValidation)
	}

	unlock := lockComplaint(complaintID)
	defer unlock()

	var complaint models.Complaint
	if err := db.First(&complaint, "id = ?", complaintID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrComplaintNotFound
		}
		return nil, err
	}

	complaint.Notice(slot).Reset(strings.TrimSpace(number), issuedAt)
	now := time.Now()
	complaint.UpdatedAt = now
	complaint.UpdatedByID = &actor.ID

	if err := db.Save(&complaint).Error; err != nil {
		return nil, err
	}

	return GetComplaint(db, complaintID)
}

// ApproveNoticeStage records a stage approval on one notice slot. Stages
// complete strictly in order (dcp, acp, commissioner); the overall status
// flips to APPROVED only when the commissioner stage approves.
func ApproveNoticeStage(db *gorm.DB, complaintID uint, slot models.NoticeSlot, stage models.NoticeStage, actor *models.User) (*models.Complaint, error) {
	if !CanApproveNoticeStage(actor.Role, stage) {
		return nil, ErrPermissionDenied
	}

	unlock := lockComplaint(complaintID)
	defer unlock()

	var complaint models.Complaint
	if err := db.First(&complaint, "id = ?", complaintID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrComplaintNotFound
		}
		return nil, err
	}

	notice := complaint.Notice(slot)
	if !notice.Issued() {
		return nil, fmt.Errorf("%w: notice has not been issued", ErrNoticeValidation)
	}
	if notice.IsRejected() {
		return nil, fmt.Errorf("%w: notice was rejected; reissue it to restart the workflow", ErrNoticeValidation)
	}
	if notice.IsApproved() {
		return nil, fmt.Errorf("%w: notice is already fully approved", ErrNoticeValidation)
	}
	if approvedBy, _ := notice.StageApproval(stage); approvedBy != nil {
		return nil, fmt.Errorf("%w: %s stage is already approved", ErrNoticeValidation, stage)
	}
	if !notice.PriorStagesApproved(stage) {
		return nil, fmt.Errorf("%w: earlier approval stages are still pending", ErrNoticeValidation)
	}

	now := time.Now()
	notice.RecordStageApproval(stage, actor.ID, now)
	if stage == models.NoticeStageCommissioner {
		notice.ApprovalStatus = models.NoticeApprovalApproved
	}
	complaint.UpdatedAt = now
	complaint.UpdatedByID = &actor.ID

	if err := db.Save(&complaint).Error; err != nil {
		return nil, err
	}

	return GetComplaint(db, complaintID)
}

// RejectNoticeStage rejects one notice slot at the given stage. The reason is
// mandatory; rejection is terminal for the notice instance until it is
// reissued. Stage fields after the rejected stage stay unset.
func RejectNoticeStage(db *gorm.DB, complaintID uint, slot models.NoticeSlot, stage models.NoticeStage, reason string, actor *models.User) (*models.Complaint, error) {
	if !CanRejectNoticeStage(actor.Role, stage) {
		return nil, ErrPermissionDenied
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, ErrRejectionReasonRequired
	}

	unlock := lockComplaint(complaintID)
	defer unlock()

	var complaint models.Complaint
	if err := db.First(&complaint, "id = ?", complaintID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrComplaintNotFound
		}
		return nil, err
	}

	notice := complaint.Notice(slot)
	if !notice.Issued() {
		return nil, fmt.Errorf("%w: notice has not been issued", ErrNoticeValidation)
	}
	if notice.IsRejected() {
		return nil, fmt.Errorf("%w: notice is already rejected", ErrNoticeValidation)
	}
	if notice.IsApproved() {
		return nil, fmt.Errorf("%w: notice is already fully approved", ErrNoticeValidation)
	}

	now := time.Now()
	notice.ApprovalStatus = models.NoticeApprovalRejected
	notice.RejectedByID = &actor.ID
	notice.RejectedAt = &now
	notice.RejectionReason = &reason
	complaint.UpdatedAt = now
	complaint.UpdatedByID = &actor.ID

	if err := db.Save(&complaint).Error; err != nil {
		return nil, err
	}

	return GetComplaint(db, complaintID)
}
