package models

import (
	"time"

	"gorm.io/gorm"
)

// Attachment owner kinds. Owner types outside this list are rejected at the
// boundary; the type string is never trusted outright.
const (
	AttachJobCard  = "job_card"
	AttachVehicle  = "vehicle"
	AttachCustomer = "customer"
	AttachInvoice  = "invoice"
)

// Attachment is a file stored in S3 and linked to one owning record via a
// discriminated (owner_type, owner_id) pair.
type Attachment struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	TenantID    string         `gorm:"type:uuid;not null;index" json:"tenant_id"`
	OwnerType   string         `gorm:"not null;index:idx_attachments_owner" json:"owner_type"`
	OwnerID     uint           `gorm:"not null;index:idx_attachments_owner" json:"owner_id"`
	FileName    string         `gorm:"not null" json:"file_name"`
	S3Key       string         `gorm:"not null" json:"s3_key"`
	ContentType string         `json:"content_type"`
	Size        int64          `json:"size"`
	URL         string         `gorm:"-" json:"url,omitempty"` // computed, presigned
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Attachment model
func (Attachment) TableName() string {
	return "attachments"
}

// GetTenantID returns the owning tenant
func (a *Attachment) GetTenantID() string { return a.TenantID }

// SetTenantID stamps the owning tenant
func (a *Attachment) SetTenantID(id string) { a.TenantID = id }

// ValidAttachmentOwner reports whether t is on the owner-type allow-list
func ValidAttachmentOwner(t string) bool {
	switch t {
	case AttachJobCard, AttachVehicle, AttachCustomer, AttachInvoice:
		return true
	}
	return false
}
