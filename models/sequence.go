package models

import (
	"time"
)

// DocumentSequence holds the last issued number for one (tenant, prefix,
// period) partition. The sequencer locks this row while issuing, so two
// concurrent writers can never be handed the same number. A new period gets
// a fresh row and numbering restarts at 1.
type DocumentSequence struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	TenantID   string    `gorm:"type:uuid;not null;uniqueIndex:idx_sequences_partition" json:"tenant_id"`
	Prefix     string    `gorm:"not null;uniqueIndex:idx_sequences_partition" json:"prefix"` // "JOB", "INV"
	Period     string    `gorm:"not null;uniqueIndex:idx_sequences_partition" json:"period"` // "202506"
	LastNumber int       `gorm:"not null;default:0" json:"last_number"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableName specifies the table name for the DocumentSequence model
func (DocumentSequence) TableName() string {
	return "document_sequences"
}

// GetTenantID returns the owning tenant
func (s *DocumentSequence) GetTenantID() string { return s.TenantID }

// SetTenantID stamps the owning tenant
func (s *DocumentSequence) SetTenantID(id string) { s.TenantID = id }
