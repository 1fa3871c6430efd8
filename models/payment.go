package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/garagehub/garagehub-api/money"
)

// Payment is one payment applied to exactly one invoice. Creating, updating
// or deleting a payment adjusts the invoice's paid amount in the same
// transaction; the invoice is never updated by a trigger.
type Payment struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	TenantID    string         `gorm:"type:uuid;not null;index" json:"tenant_id"`
	InvoiceID   uint           `gorm:"not null;index" json:"invoice_id"`
	Amount      money.Amount   `gorm:"type:decimal(15,2);not null" json:"amount"`
	PaymentDate time.Time      `gorm:"not null" json:"payment_date"`
	Method      string         `gorm:"not null" json:"payment_method"` // cash, card, bank_transfer, ...
	Reference   string         `json:"reference"`                      // optional gateway/bank reference
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Payment model
func (Payment) TableName() string {
	return "payments"
}

// GetTenantID returns the owning tenant
func (p *Payment) GetTenantID() string { return p.TenantID }

// SetTenantID stamps the owning tenant
func (p *Payment) SetTenantID(id string) { p.TenantID = id }
