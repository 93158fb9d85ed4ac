package models

import (
	"time"
)

// ComplaintAttachment is an uploaded file linked to a complaint. Attachments
// are immutable once uploaded; deleting the complaint removes both the row
// and the stored file.
type ComplaintAttachment struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	ComplaintID uint       `gorm:"not null;index" json:"complaint_id"`
	Complaint   *Complaint `gorm:"foreignKey:ComplaintID" json:"-"`

	Filename   string  `gorm:"not null" json:"filename"`
	StorageKey string  `gorm:"not null;uniqueIndex" json:"-"`
	URL        string  `gorm:"not null" json:"url"`
	MimeType   *string `gorm:"size:100" json:"mime_type,omitempty"`
	Size       *int64  `json:"size,omitempty"`
}

// TableName specifies the table name for ComplaintAttachment model
func (ComplaintAttachment) TableName() string {
	return "complaint_attachments"
}
