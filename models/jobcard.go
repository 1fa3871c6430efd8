package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/garagehub/garagehub-api/money"
)

// Job card workflow statuses. The workflow is ordered but not strictly
// linear; on_hold and cancelled can be entered from any open status.
const (
	JobStatusPending   = "pending"
	JobStatusDiagnosis = "diagnosis"
	JobStatusApproval  = "approval"
	JobStatusWorking   = "working"
	JobStatusQC        = "qc"
	JobStatusReady     = "ready"
	JobStatusDelivered = "delivered"
	JobStatusOnHold    = "on_hold"
	JobStatusCancelled = "cancelled"
)

// Job card priorities
const (
	JobPriorityLow    = "low"
	JobPriorityNormal = "normal"
	JobPriorityHigh   = "high"
	JobPriorityUrgent = "urgent"
)

// JobCard represents a repair order. Subtotal, TaxAmount and TotalAmount are
// derived from the item set plus DiscountAmount and are never user-set.
type JobCard struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	TenantID       string         `gorm:"type:uuid;not null;index;uniqueIndex:idx_job_cards_tenant_number" json:"tenant_id"`
	JobNumber      string         `gorm:"not null;uniqueIndex:idx_job_cards_tenant_number" json:"job_number"` // e.g. JOB-202506-0001
	CustomerID     uint           `gorm:"not null;index" json:"customer_id"`
	Customer       Customer       `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	VehicleID      uint           `gorm:"not null;index" json:"vehicle_id"`
	Vehicle        Vehicle        `gorm:"foreignKey:VehicleID" json:"vehicle,omitempty"`
	Status         string         `gorm:"not null;default:'pending'" json:"status"`
	Priority       string         `gorm:"not null;default:'normal'" json:"priority"`
	Description    string         `gorm:"type:text" json:"description"`
	Subtotal       money.Amount   `gorm:"type:decimal(15,2);default:0" json:"subtotal"`
	TaxAmount      money.Amount   `gorm:"type:decimal(15,2);default:0" json:"tax_amount"`
	DiscountAmount money.Amount   `gorm:"type:decimal(15,2);default:0" json:"discount_amount"` // job-level discount, absolute
	TotalAmount    money.Amount   `gorm:"type:decimal(15,2);default:0" json:"total_amount"`
	Items          []JobCardItem  `gorm:"foreignKey:JobCardID" json:"items,omitempty"`
	StartedAt      *time.Time     `json:"started_at"`
	CompletedAt    *time.Time     `json:"completed_at"`
	DeliveredAt    *time.Time     `json:"delivered_at"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the JobCard model
func (JobCard) TableName() string {
	return "job_cards"
}

// GetTenantID returns the owning tenant
func (j *JobCard) GetTenantID() string { return j.TenantID }

// SetTenantID stamps the owning tenant
func (j *JobCard) SetTenantID(id string) { j.TenantID = id }

// ValidJobStatus reports whether s is a known workflow status
func ValidJobStatus(s string) bool {
	switch s {
	case JobStatusPending, JobStatusDiagnosis, JobStatusApproval, JobStatusWorking,
		JobStatusQC, JobStatusReady, JobStatusDelivered, JobStatusOnHold, JobStatusCancelled:
		return true
	}
	return false
}

// ValidJobPriority reports whether p is a known priority
func ValidJobPriority(p string) bool {
	switch p {
	case JobPriorityLow, JobPriorityNormal, JobPriorityHigh, JobPriorityUrgent:
		return true
	}
	return false
}

// IsTerminal reports whether the job card can no longer change status
func (j *JobCard) IsTerminal() bool {
	return j.Status == JobStatusDelivered || j.Status == JobStatusCancelled
}
