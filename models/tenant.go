package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tenant subscription statuses
const (
	TenantActive    = "active"
	TenantSuspended = "suspended"
	TenantCancelled = "cancelled"
)

// Tenant represents one isolated workshop organization. All tenant-scoped
// rows carry its ID and keep it for life.
type Tenant struct {
	ID                 string         `gorm:"type:uuid;primaryKey" json:"id"`
	Name               string         `gorm:"not null" json:"name"`
	Domain             string         `gorm:"uniqueIndex;not null" json:"domain"`
	Subdomain          *string        `gorm:"uniqueIndex" json:"subdomain,omitempty"`
	SubscriptionStatus string         `gorm:"not null;default:'active'" json:"subscription_status"` // active, suspended, cancelled
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"` // cancellation soft-deletes, never purges
}

// TableName specifies the table name for the Tenant model
func (Tenant) TableName() string {
	return "tenants"
}

// BeforeCreate assigns a UUID when none was supplied
func (t *Tenant) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// IsActive reports whether the tenant may serve requests
func (t *Tenant) IsActive() bool {
	return t.SubscriptionStatus == TenantActive
}
