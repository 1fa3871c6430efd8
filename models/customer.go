package models

import (
	"time"

	"gorm.io/gorm"
)

// Customer represents a workshop customer within a tenant
type Customer struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	TenantID  string         `gorm:"type:uuid;not null;index" json:"tenant_id"`
	Name      string         `gorm:"not null" json:"name"`
	Phone     string         `json:"phone"`
	Email     string         `json:"email"`
	Address   string         `gorm:"type:text" json:"address"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Customer model
func (Customer) TableName() string {
	return "customers"
}

// GetTenantID returns the owning tenant
func (c *Customer) GetTenantID() string { return c.TenantID }

// SetTenantID stamps the owning tenant
func (c *Customer) SetTenantID(id string) { c.TenantID = id }
