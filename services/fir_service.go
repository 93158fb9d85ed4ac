package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"complaint_flow_app_go/models"

	"gorm.io/gorm"
)

// FIR errors
var (
	ErrFIRNotFound        = errors.New("fir not found")
	ErrFIRValidation      = errors.New("fir validation failed")
	ErrDuplicateFIRNumber = errors.New("fir number already registered")
)

// FIRInput carries the fields accepted when registering a FIR.
type FIRInput struct {
	FIRNumber                   string     `json:"fir_number"`
	DateOfRegistration          time.Time  `json:"date_of_registration"`
	PoliceStation               string     `json:"police_station"`
	InvestigatingOfficer        *string    `json:"investigating_officer"`
	InvestigatingOfficerContact *string    `json:"investigating_officer_contact"`
	SectionsApplied             *string    `json:"sections_applied"`
	Status                      string     `json:"status"`
	Details                     *string    `json:"details"`
	Remarks                     *string    `json:"remarks"`
}

// FIRPatch carries the partial update fields for a FIR. Nil means unchanged.
type FIRPatch struct {
	PoliceStation               *string    `json:"police_station"`
	DateOfRegistration          *time.Time `json:"date_of_registration"`
	InvestigatingOfficer        *string    `json:"investigating_officer"`
	InvestigatingOfficerContact *string    `json:"investigating_officer_contact"`
	SectionsApplied             *string    `json:"sections_applied"`
	Status                      *string    `json:"status"`
	Details                     *string    `json:"details"`
	Remarks                     *string    `json:"remarks"`
}

// CreateFIR registers a new FIR against a complaint. FIR numbers are unique
// across the whole system, not per complaint.
func CreateFIR(db *gorm.DB, complaintID uint, input FIRInput, actor *models.User) (*models.FIR, error) {
	if !CanCreateFIR(actor.Role) {
		return nil, ErrPermissionDenied
	}

	firNumber := strings.TrimSpace(input.FIRNumber)
	if firNumber == "" {
		return nil, fmt.Errorf("%w: fir number is required", ErrFIRValidation)
	}
	if input.DateOfRegistration.IsZero() {
		return nil, fmt.Errorf("%w: date of registration is required", ErrFIRValidation)
	}
	if strings.TrimSpace(input.PoliceStation) == "" {
		return nil, fmt.Errorf("%w: police station is required", ErrFIRValidation)
	}
	status := input.Status
	if status == "" {
		status = models.FIRStatusRegistered
	}
	if !models.IsValidFIRStatus(status) {
		return nil, fmt.Errorf("%w: invalid status %q", ErrFIRValidation, input.Status)
	}

	var complaint models.Complaint
	if err := db.Select("id").First(&complaint, "id = ?", complaintID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrComplaintNotFound
		}
		return nil, err
	}

	var existing int64
	if err := db.Model(&models.FIR{}).Where("fir_number = ?", firNumber).Count(&existing).Error; err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, ErrDuplicateFIRNumber
	}

	fir := &models.FIR{
		ComplaintID:                 complaintID,
		FIRNumber:                   firNumber,
		DateOfRegistration:          input.DateOfRegistration,
		PoliceStation:               strings.TrimSpace(input.PoliceStation),
		InvestigatingOfficer:        input.InvestigatingOfficer,
		InvestigatingOfficerContact: input.InvestigatingOfficerContact,
		SectionsApplied:             input.SectionsApplied,
		Status:                      status,
		Details:                     input.Details,
		Remarks:                     input.Remarks,
		CreatedByID:                 actor.ID,
	}

	if err := db.Create(fir).Error; err != nil {
		return nil, err
	}

	return GetFIR(db, fir.ID)
}

// GetFIR fetches one FIR with its author relations.
func GetFIR(db *gorm.DB, firID uint) (*models.FIR, error) {
	var fir models.FIR
	err := db.
		Preload("CreatedBy").
		Preload("UpdatedBy").
		First(&fir, "id = ?", firID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFIRNotFound
		}
		return nil, err
	}
	return &fir, nil
}

// ListFIRs returns the FIRs registered against one complaint, newest first.
func ListFIRs(db *gorm.DB, complaintID uint) ([]models.FIR, error) {
	var firs []models.FIR
	err := db.
		Preload("CreatedBy").
		Where("complaint_id = ?", complaintID).
		Order("date_of_registration DESC").
		Find(&firs).Error
	if err != nil {
		return nil, err
	}
	return firs, nil
}

// UpdateFIR applies a partial update to a FIR. The FIR number itself is
// immutable once registered.
func UpdateFIR(db *gorm.DB, firID uint, patch FIRPatch, actor *models.User) (*models.FIR, error) {
	if !CanManageFIR(actor.Role) {
		return nil, ErrPermissionDenied
	}

	var fir models.FIR
	if err := db.First(&fir, "id = ?", firID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFIRNotFound
		}
		return nil, err
	}

	updates := map[string]interface{}{
		"updated_by_id": actor.ID,
		"updated_at":    time.Now(),
	}
	if patch.PoliceStation != nil {
		if strings.TrimSpace(*patch.PoliceStation) == "" {
			return nil, fmt.Errorf("%w: police station is required", ErrFIRValidation)
		}
		updates["police_station"] = strings.TrimSpace(*patch.PoliceStation)
	}
	if patch.DateOfRegistration != nil {
		updates["date_of_registration"] = *patch.DateOfRegistration
	}
	if patch.InvestigatingOfficer != nil {
		updates["investigating_officer"] = *patch.InvestigatingOfficer
	}
	if patch.InvestigatingOfficerContact != nil {
		updates["investigating_officer_contact"] = *patch.InvestigatingOfficerContact
	}
	if patch.SectionsApplied != nil {
		updates["sections_applied"] = *patch.SectionsApplied
	}
	if patch.Status != nil {
		if !models.IsValidFIRStatus(*patch.Status) {
			return nil, fmt.Errorf("%w: invalid status %q", ErrFIRValidation, *patch.Status)
		}
		updates["status"] = *patch.Status
	}
	if patch.Details != nil {
		updates["details"] = *patch.Details
	}
	if patch.Remarks != nil {
		updates["remarks"] = *patch.Remarks
	}

	if err := db.Model(&fir).Updates(updates).Error; err != nil {
		return nil, err
	}

	return GetFIR(db, firID)
}

// DeleteFIR permanently removes a FIR, freeing its number for reuse.
func DeleteFIR(db *gorm.DB, firID uint, actor *models.User) error {
	if !CanDeleteFIR(actor.Role) {
		return ErrPermissionDenied
	}

	var fir models.FIR
	if err := db.First(&fir, "id = ?", firID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrFIRNotFound
		}
		return err
	}

	return db.Unscoped().Delete(&fir).Error
}
