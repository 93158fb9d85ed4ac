package models

import (
	"time"
)

// Comment is one node of the discussion thread on a complaint. Replies
// reference their parent comment; the parent must belong to the same
// complaint. Internal comments are hidden from field officers.
type Comment struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ComplaintID uint       `gorm:"not null;index" json:"complaint_id"`
	Complaint   *Complaint `gorm:"foreignKey:ComplaintID" json:"-"`

	ParentID *uint    `gorm:"index" json:"parent_id,omitempty"`
	Parent   *Comment `gorm:"foreignKey:ParentID" json:"-"`

	Content    string `gorm:"type:text;not null" json:"content"`
	IsInternal bool   `gorm:"not null;default:false" json:"is_internal"`

	CreatedByID string  `gorm:"type:uuid;not null" json:"created_by_id"`
	CreatedBy   *User   `gorm:"foreignKey:CreatedByID" json:"created_by,omitempty"`
	UpdatedByID *string `gorm:"type:uuid" json:"updated_by_id,omitempty"`
	UpdatedBy   *User   `gorm:"foreignKey:UpdatedByID" json:"updated_by,omitempty"`

	// Populated by the comment service when listing; not a GORM relation so
	// the tree can be assembled arena-style from a flat query.
	Replies []*Comment `gorm:"-" json:"replies,omitempty"`
}

// TableName specifies the table name for Comment model
func (Comment) TableName() string {
	return "comments"
}

// IsRoot reports whether the comment starts a thread.
func (c *Comment) IsRoot() bool {
	return c.ParentID == nil
}
