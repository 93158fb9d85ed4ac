package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"complaint_flow_app_go/models"

	"gorm.io/gorm"
)

// Complaint-related errors
var (
	ErrComplaintNotFound   = errors.New("complaint not found")
	ErrPermissionDenied    = errors.New("permission denied")
	ErrComplaintValidation = errors.New("complaint validation failed")
)

// ComplaintInput carries the fields accepted when registering a complaint.
type ComplaintInput struct {
	Nature             string  `json:"nature"`
	Place              string  `json:"place"`
	PlaceAddress       *string `json:"place_address"`
	ComplainantName    string  `json:"complainant_name"`
	ComplainantPhone   *string `json:"complainant_phone"`
	ComplainantAddress *string `json:"complainant_address"`
	BriefDetails       string  `json:"brief_details"`
	RespondentDetails  *string `json:"respondent_details"`
	Priority           string  `json:"priority"`
	Source             *string `json:"source"`
	Mode               *string `json:"mode"`
	CommissionerateID  uint    `json:"commissionerate_id"`
	DCPZoneID          *uint   `json:"dcp_zone_id"`
	MunicipalZoneID    *uint   `json:"municipal_zone_id"`
	ACPDivisionID      *uint   `json:"acp_division_id"`
}

// ComplaintPatch carries the mutable fields of an update request. Nil fields
// are left untouched.
type ComplaintPatch struct {
	Nature             *string `json:"nature"`
	Place              *string `json:"place"`
	PlaceAddress       *string `json:"place_address"`
	ComplainantName    *string `json:"complainant_name"`
	ComplainantPhone   *string `json:"complainant_phone"`
	ComplainantAddress *string `json:"complainant_address"`
	BriefDetails       *string `json:"brief_details"`
	RespondentDetails  *string `json:"respondent_details"`
	Priority           *string `json:"priority"`
	Source             *string `json:"source"`
	Mode               *string `json:"mode"`
	FinalStatus        *string `json:"final_status"`
	AssignedToRole     *string `json:"assigned_to_role"`
}

// AttachmentUpload is one file submitted alongside a new complaint.
type AttachmentUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Data        []byte
}

// generateComplaintCode builds the human-readable complaint code.
func generateComplaintCode() string {
	suffix := make([]byte, 5)
	if _, err := rand.Read(suffix); err != nil {
		suffix = []byte(fmt.Sprintf("%05d", time.Now().Nanosecond()%100000))
	}
	return fmt.Sprintf("CMP-%d-%s", time.Now().UnixMilli(), strings.ToUpper(hex.EncodeToString(suffix))[:9])
}

// CreateComplaint registers a new complaint with status PENDING. Attachments
// are stored first and their rows created in the same transaction as the
// complaint; if the transaction fails the stored files are removed again.
func CreateComplaint(db *gorm.DB, input ComplaintInput, attachments []AttachmentUpload, actor *models.User) (*models.Complaint, error) {
	if strings.TrimSpace(input.Nature) == "" {
		return nil, fmt.Errorf("%w: nature of complaint is required", ErrComplaintValidation)
	}
	if strings.TrimSpace(input.Place) == "" {
		return nil, fmt.Errorf("%w: place of complaint is required", ErrComplaintValidation)
	}
	if strings.TrimSpace(input.ComplainantName) == "" {
		return nil, fmt.Errorf("%w: complainant name is required", ErrComplaintValidation)
	}
	if strings.TrimSpace(input.BriefDetails) == "" {
		return nil, fmt.Errorf("%w: brief details are required", ErrComplaintValidation)
	}

	priority := input.Priority
	if priority == "" {
		priority = models.PriorityNormal
	}
	if !models.IsValidPriority(priority) {
		return nil, fmt.Errorf("%w: invalid priority %q", ErrComplaintValidation, input.Priority)
	}

	if err := ValidateJurisdictionChain(db, input.CommissionerateID, input.DCPZoneID, input.MunicipalZoneID, input.ACPDivisionID); err != nil {
		return nil, err
	}

	code := generateComplaintCode()
	complaint := &models.Complaint{
		ComplaintCode:      code,
		UniqueCode:         "UNIQUE-" + code,
		DateReceived:       time.Now(),
		Nature:             input.Nature,
		Place:              input.Place,
		PlaceAddress:       input.PlaceAddress,
		ComplainantName:    input.ComplainantName,
		ComplainantPhone:   input.ComplainantPhone,
		ComplainantAddress: input.ComplainantAddress,
		BriefDetails:       input.BriefDetails,
		RespondentDetails:  input.RespondentDetails,
		Priority:           priority,
		Source:             input.Source,
		Mode:               input.Mode,
		FinalStatus:        models.ComplaintStatusPending,
		CommissionerateID:  input.CommissionerateID,
		DCPZoneID:          input.DCPZoneID,
		MunicipalZoneID:    input.MunicipalZoneID,
		ACPDivisionID:      input.ACPDivisionID,
		CreatedByID:        actor.ID,
		Notice1:            models.NoticeWorkflow{ApprovalStatus: models.NoticeApprovalPending},
		Notice2:            models.NoticeWorkflow{ApprovalStatus: models.NoticeApprovalPending},
	}

	// Store attachment files before opening the transaction so a storage
	// failure never leaves a half-created complaint behind.
	stored := make([]models.ComplaintAttachment, 0, len(attachments))
	for _, upload := range attachments {
		result, err := StoreComplaintAttachment(context.Background(), upload)
		if err != nil {
			removeStoredAttachments(stored)
			return nil, fmt.Errorf("failed to store attachment %s: %w", upload.Filename, err)
		}
		record := models.ComplaintAttachment{
			Filename:   result.FileOriginalName,
			StorageKey: result.Key,
			URL:        result.URL,
		}
		if result.MimeType != "" {
			mime := result.MimeType
			record.MimeType = &mime
		}
		if result.FileSize > 0 {
			size := result.FileSize
			record.Size = &size
		}
		stored = append(stored, record)
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(complaint).Error; err != nil {
			return err
		}
		for i := range stored {
			stored[i].ComplaintID = complaint.ID
			if err := tx.Create(&stored[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		removeStoredAttachments(stored)
		return nil, err
	}

	return GetComplaint(db, complaint.ID)
}

// removeStoredAttachments best-effort deletes files that were stored for a
// transaction that did not commit.
func removeStoredAttachments(attachments []models.ComplaintAttachment) {
	for _, a := range attachments {
		if err := Storage.Delete(context.Background(), a.StorageKey); err != nil {
			log.Printf("Failed to remove orphaned attachment %s: %v", a.StorageKey, err)
		}
	}
}

// GetComplaint fetches a complaint with its relations
func GetComplaint(db *gorm.DB, id uint) (*models.Complaint, error) {
	var complaint models.Complaint
	err := db.
		Preload("CreatedBy").
		Preload("UpdatedBy").
		Preload("AssignedTo").
		Preload("Commissionerate").
		Preload("DCPZone").
		Preload("MunicipalZone").
		Preload("ACPDivision").
		Preload("Attachments").
		Preload("FIRs", func(tx *gorm.DB) *gorm.DB { return tx.Order("created_at DESC") }).
		Preload("FIRs.CreatedBy").
		Preload("FIRs.UpdatedBy").
		First(&complaint, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrComplaintNotFound
		}
		return nil, err
	}
	return &complaint, nil
}

// ListComplaints returns the complaints visible to the actor. Field officers
// and complainants see only complaints they created; review tiers and the
// super admin see everything.
func ListComplaints(db *gorm.DB, actor *models.User) ([]models.Complaint, error) {
	query := db.
		Preload("CreatedBy").
		Preload("UpdatedBy").
		Preload("AssignedTo").
		Preload("Commissionerate").
		Preload("DCPZone").
		Preload("MunicipalZone").
		Preload("ACPDivision").
		Preload("Attachments").
		Preload("FIRs", func(tx *gorm.DB) *gorm.DB { return tx.Order("created_at DESC") }).
		Order("created_at DESC")

	switch actor.Role {
	case models.RoleFieldOfficer, models.RoleComplainant:
		query = query.Where("created_by_id = ?", actor.ID)
	}

	var complaints []models.Complaint
	err := query.Find(&complaints).Error
	return complaints, err
}

// UpdateComplaint applies a patch to a complaint on behalf of an actor. The
// actor's role must be allowed to act on the complaint's current status. A
// status change with a target assignee role additionally resolves the first
// user carrying that role; when no such user exists the assignment is left
// unset while the status still advances.
func UpdateComplaint(db *gorm.DB, id uint, actor *models.User, patch ComplaintPatch) (*models.Complaint, error) {
	unlock := lockComplaint(id)
	defer unlock()

	var complaint models.Complaint
	if err := db.First(&complaint, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrComplaintNotFound
		}
		return nil, err
	}

	if !CanTransitionComplaint(actor.Role, complaint.FinalStatus) {
		return nil, ErrPermissionDenied
	}

	updates := map[string]interface{}{
		"updated_by_id": actor.ID,
		"updated_at":    time.Now(),
	}

	setIfPresent := func(column string, value *string) {
		if value != nil {
			updates[column] = *value
		}
	}
	setIfPresent("nature", patch.Nature)
	setIfPresent("place", patch.Place)
	setIfPresent("place_address", patch.PlaceAddress)
	setIfPresent("complainant_name", patch.ComplainantName)
	setIfPresent("complainant_phone", patch.ComplainantPhone)
	setIfPresent("complainant_address", patch.ComplainantAddress)
	setIfPresent("brief_details", patch.BriefDetails)
	setIfPresent("respondent_details", patch.RespondentDetails)
	setIfPresent("source", patch.Source)
	setIfPresent("mode", patch.Mode)

	if patch.Priority != nil {
		if !models.IsValidPriority(*patch.Priority) {
			return nil, fmt.Errorf("%w: invalid priority %q", ErrComplaintValidation, *patch.Priority)
		}
		updates["priority"] = *patch.Priority
	}

	if patch.FinalStatus != nil {
		if !models.IsValidComplaintStatus(*patch.FinalStatus) {
			return nil, fmt.Errorf("%w: invalid status %q", ErrComplaintValidation, *patch.FinalStatus)
		}
		updates["final_status"] = *patch.FinalStatus
	}

	if patch.AssignedToRole != nil && *patch.AssignedToRole != "" {
		if assigneeID := resolveAssignee(db, *patch.AssignedToRole); assigneeID != nil {
			updates["assigned_to_id"] = *assigneeID
		}
	}

	if err := db.Model(&complaint).Updates(updates).Error; err != nil {
		return nil, err
	}

	return GetComplaint(db, id)
}

// resolveAssignee finds the first active user carrying the given role.
// Returns nil when no such user exists (the assignment stays unset).
func resolveAssignee(db *gorm.DB, role string) *string {
	var user models.User
	err := db.Where("role = ? AND is_active = ?", role, true).Order("created_at ASC").First(&user).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("Failed to resolve assignee for role %s: %v", role, err)
		}
		return nil
	}
	return &user.ID
}

// DeleteComplaint removes a complaint together with its FIRs, comment trees
// and attachments. Attachment files are released from storage after the rows
// are gone.
func DeleteComplaint(db *gorm.DB, id uint, actor *models.User) error {
	if !CanDeleteComplaint(actor.Role) {
		return ErrPermissionDenied
	}

	unlock := lockComplaint(id)
	defer unlock()

	var complaint models.Complaint
	if err := db.Preload("Attachments").First(&complaint, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrComplaintNotFound
		}
		return err
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("complaint_id = ?", id).Delete(&models.FIR{}).Error; err != nil {
			return err
		}
		if err := tx.Where("complaint_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("complaint_id = ?", id).Delete(&models.ComplaintAttachment{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&complaint).Error
	})
	if err != nil {
		return err
	}

	// Release the stored files once the rows are gone.
	removeStoredAttachments(complaint.Attachments)
	return nil
}
