package models

import (
	"time"

	"gorm.io/gorm"
)

// Vehicle represents a customer's vehicle within a tenant
type Vehicle struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	TenantID     string         `gorm:"type:uuid;not null;index" json:"tenant_id"`
	CustomerID   uint           `gorm:"not null;index" json:"customer_id"` // must belong to the same tenant
	Customer     Customer       `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Make         string         `gorm:"not null" json:"make"`
	Model        string         `gorm:"not null" json:"model"`
	Year         int            `json:"year"`
	Registration string         `gorm:"index" json:"registration"`
	VIN          string         `json:"vin"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Vehicle model
func (Vehicle) TableName() string {
	return "vehicles"
}

// GetTenantID returns the owning tenant
func (v *Vehicle) GetTenantID() string { return v.TenantID }

// SetTenantID stamps the owning tenant
func (v *Vehicle) SetTenantID(id string) { v.TenantID = id }
