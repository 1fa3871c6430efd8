package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a staff account inside one tenant. The same email may
// exist independently in several tenants, so uniqueness is per tenant.
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	TenantID  string         `gorm:"type:uuid;not null;index;uniqueIndex:idx_users_tenant_email;uniqueIndex:idx_users_tenant_auth" json:"tenant_id"`
	AuthID    string         `gorm:"not null;uniqueIndex:idx_users_tenant_auth" json:"auth_id"` // identity provider subject ('sub' claim)
	Name      string         `gorm:"not null" json:"name"`
	Email     string         `gorm:"not null;uniqueIndex:idx_users_tenant_email" json:"email"`
	Role      string         `gorm:"not null;default:'advisor'" json:"role"` // "advisor", "mechanic", "manager"
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}

// GetTenantID returns the owning tenant
func (u *User) GetTenantID() string { return u.TenantID }

// SetTenantID stamps the owning tenant
func (u *User) SetTenantID(id string) { u.TenantID = id }
