package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/garagehub/garagehub-api/middleware"
	"github.com/garagehub/garagehub-api/models"
	"github.com/garagehub/garagehub-api/money"
	"github.com/garagehub/garagehub-api/services"
	"github.com/garagehub/garagehub-api/utils"
)

// CreatePaymentRequest represents the request body for recording a payment
type CreatePaymentRequest struct {
	InvoiceID   uint         `json:"invoice_id" binding:"required"`
	Amount      money.Amount `json:"amount"`
	PaymentDate *time.Time   `json:"payment_date"`
	Method      string       `json:"payment_method" binding:"required"`
	Reference   string       `json:"reference"`
}

// UpdatePaymentRequest represents the request body for correcting a payment
type UpdatePaymentRequest struct {
	Amount money.Amount `json:"amount"`
}

// ListPayments handles GET /api/v1/payments. An invoice_id query filters to
// one invoice's ledger.
func ListPayments(c *gin.Context) {
	s := middleware.TenantScope(c)

	var payments []models.Payment
	var err error
	if invoiceID := c.Query("invoice_id"); invoiceID != "" {
		err = s.ListInTenant(&payments, "invoice_id = ?", invoiceID)
	} else {
		err = s.ListInTenant(&payments)
	}
	if err != nil {
		utils.RespondScopeError(c, err)
		return
	}

	utils.RespondData(c, http.StatusOK, payments)
}

// CreatePayment handles POST /api/v1/payments. The payment row and its
// effect on the invoice commit together.
func CreatePayment(c *gin.Context) {
	var req CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationError(c, err)
		return
	}
	if req.Amount <= 0 {
		utils.RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Payment amount must be positive")
		return
	}

	paymentDate := time.Now()
	if req.PaymentDate != nil {
		paymentDate = *req.PaymentDate
	}

	payment, invoice, err := services.RecordPayment(middleware.TenantScope(c), services.PaymentInput{
		InvoiceID:   req.InvoiceID,
		Amount:      req.Amount,
		PaymentDate: paymentDate,
		Method:      req.Method,
		Reference:   req.Reference,
	})
	if err != nil {
		respondLedgerError(c, err)
		return
	}

	utils.RespondData(c, http.StatusCreated, gin.H{"payment": payment, "invoice": invoice})
}

// UpdatePayment handles PUT /api/v1/payments/:id. Correcting the amount
// shifts the invoice ledger by the difference in one step.
func UpdatePayment(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req UpdatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationError(c, err)
		return
	}
	if req.Amount <= 0 {
		utils.RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Payment amount must be positive")
		return
	}

	payment, invoice, err := services.AdjustPayment(middleware.TenantScope(c), id, req.Amount, time.Now())
	if err != nil {
		respondLedgerError(c, err)
		return
	}

	utils.RespondData(c, http.StatusOK, gin.H{"payment": payment, "invoice": invoice})
}

// DeletePayment handles DELETE /api/v1/payments/:id. The reversal removes
// the payment's amount from the invoice in the same transaction.
func DeletePayment(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	invoice, err := services.ReversePayment(middleware.TenantScope(c), id, time.Now())
	if err != nil {
		respondLedgerError(c, err)
		return
	}

	utils.RespondData(c, http.StatusOK, gin.H{"invoice": invoice})
}
