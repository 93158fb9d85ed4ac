package models

import (
	"time"
)

// NoticeSlot identifies one of the two notice slots on a complaint.
type NoticeSlot string

const (
	NoticeSlotFirst  NoticeSlot = "first"
	NoticeSlotSecond NoticeSlot = "second"
)

// ParseNoticeSlot validates a slot string from the wire.
func ParseNoticeSlot(s string) (NoticeSlot, bool) {
	switch NoticeSlot(s) {
	case NoticeSlotFirst, NoticeSlotSecond:
		return NoticeSlot(s), true
	}
	return "", false
}

// NoticeStage identifies one stage of the sequential approval workflow.
type NoticeStage string

const (
	NoticeStageDCP          NoticeStage = "dcp"
	NoticeStageACP          NoticeStage = "acp"
	NoticeStageCommissioner NoticeStage = "commissioner"
)

// ParseNoticeStage validates a stage string from the wire.
func ParseNoticeStage(s string) (NoticeStage, bool) {
	switch NoticeStage(s) {
	case NoticeStageDCP, NoticeStageACP, NoticeStageCommissioner:
		return NoticeStage(s), true
	}
	return "", false
}

// Notice approval status constants
const (
	NoticeApprovalPending  = "PENDING"
	NoticeApprovalApproved = "APPROVED"
	NoticeApprovalRejected = "REJECTED"
)

// NoticeWorkflow is the per-slot approval state, embedded in Complaint with a
// notice1_/notice2_ column prefix. Stage fields are addressed through explicit
// accessors keyed by NoticeStage, never by constructed column names.
type NoticeWorkflow struct {
	Number   *string    `gorm:"size:100" json:"number,omitempty"`
	IssuedAt *time.Time `json:"issued_at,omitempty"`

	DCPApprovedByID          *string    `gorm:"type:uuid" json:"dcp_approved_by_id,omitempty"`
	DCPApprovedAt            *time.Time `json:"dcp_approved_at,omitempty"`
	ACPApprovedByID          *string    `gorm:"type:uuid" json:"acp_approved_by_id,omitempty"`
	ACPApprovedAt            *time.Time `json:"acp_approved_at,omitempty"`
	CommissionerApprovedByID *string    `gorm:"type:uuid" json:"commissioner_approved_by_id,omitempty"`
	CommissionerApprovedAt   *time.Time `json:"commissioner_approved_at,omitempty"`

	ApprovalStatus string `gorm:"size:20;not null;default:PENDING" json:"approval_status"`

	RejectedByID    *string    `gorm:"type:uuid" json:"rejected_by_id,omitempty"`
	RejectedAt      *time.Time `json:"rejected_at,omitempty"`
	RejectionReason *string    `gorm:"type:text" json:"rejection_reason,omitempty"`
}

// Issued reports whether a notice has been generated for this slot.
func (n *NoticeWorkflow) Issued() bool {
	return n.Number != nil && *n.Number != ""
}

// IsRejected reports whether the workflow is terminally rejected.
func (n *NoticeWorkflow) IsRejected() bool {
	return n.ApprovalStatus == NoticeApprovalRejected
}

// IsApproved reports whether the workflow completed all three stages.
func (n *NoticeWorkflow) IsApproved() bool {
	return n.ApprovalStatus == NoticeApprovalApproved
}

// StageApproval returns the approver id and timestamp recorded for a stage.
func (n *NoticeWorkflow) StageApproval(stage NoticeStage) (approvedBy *string, approvedAt *time.Time) {
	switch stage {
	case NoticeStageACP:
		return n.ACPApprovedByID, n.ACPApprovedAt
	case NoticeStageCommissioner:
		return n.CommissionerApprovedByID, n.CommissionerApprovedAt
	default:
		return n.DCPApprovedByID, n.DCPApprovedAt
	}
}

// RecordStageApproval stamps a stage with the approver and timestamp.
func (n *NoticeWorkflow) RecordStageApproval(stage NoticeStage, userID string, at time.Time) {
	switch stage {
	case NoticeStageACP:
		n.ACPApprovedByID = &userID
		n.ACPApprovedAt = &at
	case NoticeStageCommissioner:
		n.CommissionerApprovedByID = &userID
		n.CommissionerApprovedAt = &at
	default:
		n.DCPApprovedByID = &userID
		n.DCPApprovedAt = &at
	}
}

// PriorStagesApproved reports whether every stage before the given one has an
// approval recorded. DCP has no prior stage.
func (n *NoticeWorkflow) PriorStagesApproved(stage NoticeStage) bool {
	switch stage {
	case NoticeStageACP:
		return n.DCPApprovedAt != nil
	case NoticeStageCommissioner:
		return n.DCPApprovedAt != nil && n.ACPApprovedAt != nil
	default:
		return true
	}
}

// Reset clears all approval and rejection state and restarts the workflow
// with a fresh notice number and issue date.
func (n *NoticeWorkflow) Reset(number string, issuedAt time.Time) {
	*n = NoticeWorkflow{
		Number:         &number,
		IssuedAt:       &issuedAt,
		ApprovalStatus: NoticeApprovalPending,
	}
}
