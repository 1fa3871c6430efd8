package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/garagehub/garagehub-api/money"
)

// Invoice statuses. Status is derived from paid_amount vs total_amount for
// the payment-driven states; draft→sent and cancelled are explicit.
const (
	InvoiceDraft         = "draft"
	InvoiceSent          = "sent"
	InvoicePartiallyPaid = "partially_paid"
	InvoicePaid          = "paid"
	InvoiceOverdue       = "overdue"
	InvoiceCancelled     = "cancelled"
)

// Invoice is a billing document, optionally derived from a job card.
// Balance always equals TotalAmount − PaidAmount.
type Invoice struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	TenantID       string         `gorm:"type:uuid;not null;index;uniqueIndex:idx_invoices_tenant_number" json:"tenant_id"`
	InvoiceNumber  string         `gorm:"not null;uniqueIndex:idx_invoices_tenant_number" json:"invoice_number"` // e.g. INV-202506-0001
	CustomerID     uint           `gorm:"not null;index" json:"customer_id"`
	Customer       Customer       `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	JobCardID      *uint          `gorm:"index" json:"job_card_id,omitempty"`
	Subtotal       money.Amount   `gorm:"type:decimal(15,2);default:0" json:"subtotal"`
	TaxAmount      money.Amount   `gorm:"type:decimal(15,2);default:0" json:"tax_amount"`
	DiscountAmount money.Amount   `gorm:"type:decimal(15,2);default:0" json:"discount_amount"`
	TotalAmount    money.Amount   `gorm:"type:decimal(15,2);default:0" json:"total_amount"`
	PaidAmount     money.Amount   `gorm:"type:decimal(15,2);default:0" json:"paid_amount"`
	Balance        money.Amount   `gorm:"type:decimal(15,2);default:0" json:"balance"`
	Status         string         `gorm:"not null;default:'draft'" json:"status"`
	IssuedDate     time.Time      `json:"issued_date"`
	DueDate        *time.Time     `json:"due_date,omitempty"`
	Payments       []Payment      `gorm:"foreignKey:InvoiceID" json:"payments,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Invoice model
func (Invoice) TableName() string {
	return "invoices"
}

// GetTenantID returns the owning tenant
func (i *Invoice) GetTenantID() string { return i.TenantID }

// SetTenantID stamps the owning tenant
func (i *Invoice) SetTenantID(id string) { i.TenantID = id }
