package models

import (
	"time"

	"gorm.io/gorm"
)

// FIR status constants
const (
	FIRStatusRegistered         = "REGISTERED"
	FIRStatusUnderInvestigation = "UNDER_INVESTIGATION"
	FIRStatusChargesheetFiled   = "CHARGESHEET_FILED"
	FIRStatusCourtProceedings   = "COURT_PROCEEDINGS"
	FIRStatusClosed             = "CLOSED"
	FIRStatusWithdrawn          = "WITHDRAWN"
)

// FIR is a First Information Report registered against a complaint.
// The firNumber is unique across the whole system, not per complaint.
type FIR struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	ComplaintID uint       `gorm:"not null;index" json:"complaint_id"`
	Complaint   *Complaint `gorm:"foreignKey:ComplaintID" json:"-"`

	FIRNumber                   string    `gorm:"not null;uniqueIndex" json:"fir_number"`
	DateOfRegistration          time.Time `gorm:"not null" json:"date_of_registration"`
	PoliceStation               string    `gorm:"not null" json:"police_station"`
	InvestigatingOfficer        *string   `json:"investigating_officer,omitempty"`
	InvestigatingOfficerContact *string   `gorm:"size:20" json:"investigating_officer_contact,omitempty"`
	SectionsApplied             *string   `gorm:"type:text" json:"sections_applied,omitempty"`
	Status                      string    `gorm:"not null;default:REGISTERED" json:"status"`
	Details                     *string   `gorm:"type:text" json:"details,omitempty"`
	Remarks                     *string   `gorm:"type:text" json:"remarks,omitempty"`

	CreatedByID string  `gorm:"type:uuid;not null" json:"created_by_id"`
	CreatedBy   *User   `gorm:"foreignKey:CreatedByID" json:"created_by,omitempty"`
	UpdatedByID *string `gorm:"type:uuid" json:"updated_by_id,omitempty"`
	UpdatedBy   *User   `gorm:"foreignKey:UpdatedByID" json:"updated_by,omitempty"`
}

// TableName specifies the table name for FIR model
func (FIR) TableName() string {
	return "firs"
}

// IsValidFIRStatus checks if the status is valid
func IsValidFIRStatus(status string) bool {
	switch status {
	case FIRStatusRegistered,
		FIRStatusUnderInvestigation,
		FIRStatusChargesheetFiled,
		FIRStatusCourtProceedings,
		FIRStatusClosed,
		FIRStatusWithdrawn:
		return true
	}
	return false
}
