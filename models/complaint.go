package models

import (
	"time"

	"gorm.io/gorm"
)

// Complaint status constants, ordered by review tier
const (
	ComplaintStatusPending                 = "PENDING"
	ComplaintStatusUnderReviewDCP          = "UNDER_REVIEW_DCP"
	ComplaintStatusUnderReviewACP          = "UNDER_REVIEW_ACP"
	ComplaintStatusUnderReviewCommissioner = "UNDER_REVIEW_COMMISSIONER"
	ComplaintStatusInvestigation           = "INVESTIGATION_IN_PROGRESS"
	ComplaintStatusLegalReview             = "LEGAL_REVIEW"
	ComplaintStatusResolved                = "RESOLVED"
	ComplaintStatusRejected                = "REJECTED"
	ComplaintStatusClosed                  = "CLOSED"
)

// Complaint priority constants
const (
	PriorityLow    = "LOW"
	PriorityNormal = "NORMAL"
	PriorityHigh   = "HIGH"
	PriorityUrgent = "URGENT"
)

// Complaint is the root entity binding the review status, the two notice
// workflows and the child collections (FIRs, comments, attachments).
type Complaint struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Identification
	ComplaintCode string `gorm:"not null;uniqueIndex" json:"complaint_code"`
	UniqueCode    string `gorm:"not null;uniqueIndex" json:"unique_code"`

	// Intake details
	DateReceived       time.Time `gorm:"not null" json:"date_received"`
	Nature             string    `gorm:"not null" json:"nature"`
	Place              string    `gorm:"not null" json:"place"`
	PlaceAddress       *string   `gorm:"type:text" json:"place_address,omitempty"`
	ComplainantName    string    `gorm:"not null" json:"complainant_name"`
	ComplainantPhone   *string   `gorm:"size:20" json:"complainant_phone,omitempty"`
	ComplainantAddress *string   `gorm:"type:text" json:"complainant_address,omitempty"`
	BriefDetails       string    `gorm:"type:text;not null" json:"brief_details"`
	RespondentDetails  *string   `gorm:"type:text" json:"respondent_details,omitempty"`
	Priority           string    `gorm:"not null;default:NORMAL" json:"priority"`
	Source             *string   `json:"source,omitempty"`
	Mode               *string   `json:"mode,omitempty"`

	// Review lifecycle
	FinalStatus string `gorm:"not null;default:PENDING;index" json:"final_status"`

	// Jurisdiction chain (commissionerate mandatory, lower levels optional)
	CommissionerateID uint             `gorm:"not null;index" json:"commissionerate_id"`
	Commissionerate   *Commissionerate `gorm:"foreignKey:CommissionerateID" json:"commissionerate,omitempty"`
	DCPZoneID         *uint            `gorm:"index" json:"dcp_zone_id,omitempty"`
	DCPZone           *DCPZone         `gorm:"foreignKey:DCPZoneID" json:"dcp_zone,omitempty"`
	MunicipalZoneID   *uint            `gorm:"index" json:"municipal_zone_id,omitempty"`
	MunicipalZone     *MunicipalZone   `gorm:"foreignKey:MunicipalZoneID" json:"municipal_zone,omitempty"`
	ACPDivisionID     *uint            `gorm:"index" json:"acp_division_id,omitempty"`
	ACPDivision       *ACPDivision     `gorm:"foreignKey:ACPDivisionID" json:"acp_division,omitempty"`

	// Ownership
	CreatedByID  string  `gorm:"type:uuid;not null;index" json:"created_by_id"`
	CreatedBy    *User   `gorm:"foreignKey:CreatedByID" json:"created_by,omitempty"`
	UpdatedByID  *string `gorm:"type:uuid" json:"updated_by_id,omitempty"`
	UpdatedBy    *User   `gorm:"foreignKey:UpdatedByID" json:"updated_by,omitempty"`
	AssignedToID *string `gorm:"type:uuid;index" json:"assigned_to_id,omitempty"`
	AssignedTo   *User   `gorm:"foreignKey:AssignedToID" json:"assigned_to,omitempty"`

	// Notice workflows, one per slot, flattened onto the complaint row
	Notice1 NoticeWorkflow `gorm:"embedded;embeddedPrefix:notice1_" json:"notice1"`
	Notice2 NoticeWorkflow `gorm:"embedded;embeddedPrefix:notice2_" json:"notice2"`

	// Child collections
	FIRs        []FIR                 `gorm:"foreignKey:ComplaintID" json:"firs,omitempty"`
	Comments    []Comment             `gorm:"foreignKey:ComplaintID" json:"comments,omitempty"`
	Attachments []ComplaintAttachment `gorm:"foreignKey:ComplaintID" json:"attachments,omitempty"`
}

// TableName specifies the table name for Complaint model
func (Complaint) TableName() string {
	return "complaints"
}

// Notice returns the workflow for the given slot.
func (c *Complaint) Notice(slot NoticeSlot) *NoticeWorkflow {
	if slot == NoticeSlotSecond {
		return &c.Notice2
	}
	return &c.Notice1
}

// IsTerminal reports whether the complaint reached a terminal status.
func (c *Complaint) IsTerminal() bool {
	switch c.FinalStatus {
	case ComplaintStatusResolved, ComplaintStatusRejected, ComplaintStatusClosed:
		return true
	}
	return false
}

// IsValidComplaintStatus checks if the status is valid
func IsValidComplaintStatus(status string) bool {
	switch status {
	case ComplaintStatusPending,
		ComplaintStatusUnderReviewDCP,
		ComplaintStatusUnderReviewACP,
		ComplaintStatusUnderReviewCommissioner,
		ComplaintStatusInvestigation,
		ComplaintStatusLegalReview,
		ComplaintStatusResolved,
		ComplaintStatusRejected,
		ComplaintStatusClosed:
		return true
	}
	return false
}

// IsValidPriority checks if the priority is valid
func IsValidPriority(priority string) bool {
	switch priority {
	case PriorityLow, PriorityNormal, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}
