package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/garagehub/garagehub-api/money"
)

// Job card item types
const (
	ItemTypePart    = "part"
	ItemTypeService = "service"
)

// JobCardItem is one line on a job card: a part or a service. LineTotal is
// derived as (quantity × unit price) + line tax − line discount, rounded to
// currency precision per line. Every item mutation triggers a job card
// recalculation.
type JobCardItem struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	TenantID    string          `gorm:"type:uuid;not null;index" json:"tenant_id"`
	JobCardID   uint            `gorm:"not null;index" json:"job_card_id"`
	ItemType    string          `gorm:"not null" json:"item_type"` // "part" or "service"
	ProductID   *uint           `gorm:"index" json:"product_id,omitempty"`
	Description string          `gorm:"not null" json:"description"`
	Quantity    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"quantity"` // fractional, e.g. 2.5 hours
	UnitPrice   money.Amount    `gorm:"type:decimal(15,2);not null" json:"unit_price"`
	TaxRate     decimal.Decimal `gorm:"type:decimal(5,2);default:0" json:"tax_rate"` // percentage; zero means untaxed
	Discount    money.Amount    `gorm:"type:decimal(15,2);default:0" json:"discount"` // absolute currency amount
	LineTotal   money.Amount    `gorm:"type:decimal(15,2);default:0" json:"line_total"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `gorm:"index" json:"-"`
}

// TableName specifies the table name for the JobCardItem model
func (JobCardItem) TableName() string {
	return "job_card_items"
}

// GetTenantID returns the owning tenant
func (i *JobCardItem) GetTenantID() string { return i.TenantID }

// SetTenantID stamps the owning tenant
func (i *JobCardItem) SetTenantID(id string) { i.TenantID = id }

// ValidItemType reports whether t is a known line item type
func ValidItemType(t string) bool {
	return t == ItemTypePart || t == ItemTypeService
}
