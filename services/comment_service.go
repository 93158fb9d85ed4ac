package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"complaint_flow_app_go/models"

	"gorm.io/gorm"
)

// Comment errors
var (
	ErrCommentNotFound      = errors.New("comment not found")
	ErrCommentValidation    = errors.New("comment validation failed")
	ErrInvalidParentComment = errors.New("parent comment not found on this complaint")
)

// CommentInput carries the fields accepted when posting a comment.
type CommentInput struct {
	Content    string `json:"content"`
	IsInternal bool   `json:"is_internal"`
	ParentID   *uint  `json:"parent_id"`
}

// CreateComment posts a comment or reply on a complaint. A reply's parent
// must exist and belong to the same complaint.
func CreateComment(db *gorm.DB, complaintID uint, input CommentInput, actor *models.User) (*models.Comment, error) {
	if !CanComment(actor.Role) {
		return nil, ErrPermissionDenied
	}
	content := strings.TrimSpace(input.Content)
	if content == "" {
		return nil, fmt.Errorf("%w: content is required", ErrCommentValidation)
	}

	var complaint models.Complaint
	if err := db.Select("id").First(&complaint, "id = ?", complaintID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrComplaintNotFound
		}
		return nil, err
	}

	if input.ParentID != nil {
		var parent models.Comment
		err := db.Select("id", "complaint_id").First(&parent, "id = ?", *input.ParentID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrInvalidParentComment
			}
			return nil, err
		}
		if parent.ComplaintID != complaintID {
			return nil, ErrInvalidParentComment
		}
	}

	comment := &models.Comment{
		ComplaintID: complaintID,
		ParentID:    input.ParentID,
		Content:     content,
		IsInternal:  input.IsInternal,
		CreatedByID: actor.ID,
	}
	if err := db.Create(comment).Error; err != nil {
		return nil, err
	}

	return GetComment(db, comment.ID)
}

// GetComment fetches one comment with its author relations.
func GetComment(db *gorm.DB, commentID uint) (*models.Comment, error) {
	var comment models.Comment
	err := db.
		Preload("CreatedBy").
		Preload("UpdatedBy").
		First(&comment, "id = ?", commentID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	return &comment, nil
}

// ListComments returns the comment threads of a complaint. Roots are ordered
// newest first, replies within a thread oldest first. Internal comments are
// filtered out for roles that may not see them; their replies disappear with
// them.
func ListComments(db *gorm.DB, complaintID uint, viewer *models.User) ([]*models.Comment, error) {
	query := db.
		Preload("CreatedBy").
		Preload("UpdatedBy").
		Where("complaint_id = ?", complaintID)
	if !CanSeeInternalComments(viewer.Role) {
		query = query.Where("is_internal = ?", false)
	}

	var flat []*models.Comment
	if err := query.Order("created_at ASC").Find(&flat).Error; err != nil {
		return nil, err
	}

	// Assemble the tree from the flat result set. A reply whose parent was
	// filtered out (internal, not visible to the viewer) is dropped too.
	byID := make(map[uint]*models.Comment, len(flat))
	for _, c := range flat {
		byID[c.ID] = c
	}

	var roots []*models.Comment
	for _, c := range flat {
		if c.ParentID == nil {
			roots = append(roots, c)
			continue
		}
		if parent, ok := byID[*c.ParentID]; ok {
			parent.Replies = append(parent.Replies, c)
		}
	}

	sort.SliceStable(roots, func(i, j int) bool {
		return roots[i].CreatedAt.After(roots[j].CreatedAt)
	})

	return roots, nil
}

// EditComment updates the content of a comment. Only the author or a super
// admin may edit.
func EditComment(db *gorm.DB, commentID uint, content string, actor *models.User) (*models.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: content is required", ErrCommentValidation)
	}

	var comment models.Comment
	if err := db.First(&comment, "id = ?", commentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}

	if comment.CreatedByID != actor.ID && actor.Role != models.RoleSuperAdmin {
		return nil, ErrPermissionDenied
	}

	updates := map[string]interface{}{
		"content":       content,
		"updated_by_id": actor.ID,
		"updated_at":    time.Now(),
	}
	if err := db.Model(&comment).Updates(updates).Error; err != nil {
		return nil, err
	}

	return GetComment(db, commentID)
}

// DeleteComment removes a comment and its entire reply subtree, however deep.
// Only the author or a super admin may delete.
func DeleteComment(db *gorm.DB, commentID uint, actor *models.User) error {
	var comment models.Comment
	if err := db.First(&comment, "id = ?", commentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCommentNotFound
		}
		return err
	}

	if comment.CreatedByID != actor.ID && actor.Role != models.RoleSuperAdmin {
		return ErrPermissionDenied
	}

	// Collect the subtree by walking the complaint's parent links.
	var siblings []models.Comment
	err := db.Select("id", "parent_id").
		Where("complaint_id = ?", comment.ComplaintID).
		Find(&siblings).Error
	if err != nil {
		return err
	}

	children := make(map[uint][]uint, len(siblings))
	for _, c := range siblings {
		if c.ParentID != nil {
			children[*c.ParentID] = append(children[*c.ParentID], c.ID)
		}
	}

	doomed := []uint{commentID}
	for i := 0; i < len(doomed); i++ {
		doomed = append(doomed, children[doomed[i]]...)
	}

	return db.Where("id IN ?", doomed).Delete(&models.Comment{}).Error
}
