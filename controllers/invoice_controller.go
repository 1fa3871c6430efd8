package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/garagehub/garagehub-api/middleware"
	"github.com/garagehub/garagehub-api/models"
	"github.com/garagehub/garagehub-api/money"
	"github.com/garagehub/garagehub-api/services"
	"github.com/garagehub/garagehub-api/utils"
)

// CreateInvoiceRequest represents the request body for raising an invoice.
// With a job_card_id the money fields are copied from the job card and any
// submitted amounts are ignored; without one the caller supplies them.
type CreateInvoiceRequest struct {
	CustomerID     uint         `json:"customer_id"`
	JobCardID      *uint        `json:"job_card_id"`
	Subtotal       money.Amount `json:"subtotal"`
	TaxAmount      money.Amount `json:"tax_amount"`
	DiscountAmount money.Amount `json:"discount_amount"`
	DueDate        *time.Time   `json:"due_date"`
}

// ListInvoices handles GET /api/v1/invoices
func ListInvoices(c *gin.Context) {
	s := middleware.TenantScope(c).Preload("Customer")
	page, perPage := utils.Pagination(c)

	var invoices []models.Invoice
	var total int64
	if err := s.ListInTenantPage(&invoices, &models.Invoice{}, page, perPage, &total); err != nil {
		utils.RespondScopeError(c, err)
		return
	}

	utils.RespondList(c, invoices, page, perPage, total)
}

// CreateInvoice handles POST /api/v1/invoices. The invoice number is issued
// by the sequencer and the invoice always starts as a draft with a balance
// equal to its total.
func CreateInvoice(c *gin.Context) {
	var req CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationError(c, err)
		return
	}

	s := middleware.TenantScope(c)
	now := time.Now()

	invoice := models.Invoice{
		Status:     models.InvoiceDraft,
		IssuedDate: now,
		DueDate:    req.DueDate,
	}

	if req.JobCardID != nil {
		var job models.JobCard
		if err := s.FindInTenant(&job, *req.JobCardID); err != nil {
			utils.RespondScopeError(c, err)
			return
		}
		invoice.JobCardID = &job.ID
		invoice.CustomerID = job.CustomerID
		invoice.Subtotal = job.Subtotal
		invoice.TaxAmount = job.TaxAmount
		invoice.DiscountAmount = job.DiscountAmount
		invoice.TotalAmount = job.TotalAmount
	} else {
		if req.CustomerID == 0 {
			utils.RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Either customer_id or job_card_id is required")
			return
		}
		if req.Subtotal.IsNegative() || req.TaxAmount.IsNegative() || req.DiscountAmount.IsNegative() {
			utils.RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Amounts cannot be negative")
			return
		}
		if err := s.CheckRef(&models.Customer{}, req.CustomerID); err != nil {
			utils.RespondScopeError(c, err)
			return
		}
		invoice.CustomerID = req.CustomerID
		invoice.Subtotal = req.Subtotal
		invoice.TaxAmount = req.TaxAmount
		invoice.DiscountAmount = req.DiscountAmount
		invoice.TotalAmount = money.SubClampZero(req.Subtotal+req.TaxAmount, req.DiscountAmount)
	}
	invoice.Balance = invoice.TotalAmount

	number, err := services.GetSequencer().Next(s, services.PrefixInvoice, now)
	if err != nil {
		utils.RespondScopeError(c, err)
		return
	}
	invoice.InvoiceNumber = number

	if err := s.CreateInTenant(&invoice); err != nil {
		utils.RespondScopeError(c, err)
		return
	}

	utils.RespondData(c, http.StatusCreated, invoice)
}

// GetInvoice handles GET /api/v1/invoices/:id
func GetInvoice(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var invoice models.Invoice
	s := middleware.TenantScope(c).Preload("Customer").Preload("Payments")
	if err := s.FindInTenant(&invoice, id); err != nil {
		utils.RespondScopeError(c, err)
		return
	}

	utils.RespondData(c, http.StatusOK, invoice)
}

// SendInvoice handles POST /api/v1/invoices/:id/send
func SendInvoice(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	invoice, err := services.SendInvoice(middleware.TenantScope(c), id, time.Now())
	if err != nil {
		respondLedgerError(c, err)
		return
	}

	utils.RespondData(c, http.StatusOK, invoice)
}

// CancelInvoice handles POST /api/v1/invoices/:id/cancel
func CancelInvoice(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	invoice, err := services.CancelInvoice(middleware.TenantScope(c), id)
	if err != nil {
		respondLedgerError(c, err)
		return
	}

	utils.RespondData(c, http.StatusOK, invoice)
}

// respondLedgerError maps ledger errors onto the response envelope
func respondLedgerError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvoiceCancelled):
		utils.RespondError(c, http.StatusConflict, "INVOICE_CANCELLED", "The invoice is cancelled")
	case errors.Is(err, services.ErrInvalidTransition):
		utils.RespondError(c, http.StatusConflict, "INVALID_TRANSITION", "The invoice status does not allow this transition")
	default:
		utils.RespondScopeError(c, err)
	}
}
