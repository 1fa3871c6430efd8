package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/garagehub/garagehub-api/money"
)

// Product represents a stocked part that job card lines can reference
type Product struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	TenantID      string          `gorm:"type:uuid;not null;index;uniqueIndex:idx_products_tenant_sku" json:"tenant_id"`
	Name          string          `gorm:"not null" json:"name"`
	SKU           string          `gorm:"not null;uniqueIndex:idx_products_tenant_sku" json:"sku"`
	UnitPrice     money.Amount    `gorm:"type:decimal(15,2);default:0" json:"unit_price"`
	StockQuantity decimal.Decimal `gorm:"type:decimal(10,2);default:0" json:"stock_quantity"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	DeletedAt     gorm.DeletedAt  `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// GetTenantID returns the owning tenant
func (p *Product) GetTenantID() string { return p.TenantID }

// SetTenantID stamps the owning tenant
func (p *Product) SetTenantID(id string) { p.TenantID = id }
