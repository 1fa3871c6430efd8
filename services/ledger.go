package services

import (
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/garagehub/garagehub-api/logger"
	"github.com/garagehub/garagehub-api/models"
	"github.com/garagehub/garagehub-api/money"
	"github.com/garagehub/garagehub-api/scope"
)

// ErrInvoiceCancelled is returned when a payment event targets a cancelled
// invoice. Cancellation is terminal and the ledger never reverses it.
var ErrInvoiceCancelled = errors.New("invoice is cancelled")

// ErrInvalidTransition is returned for explicit transitions the invoice's
// current status does not allow.
var ErrInvalidTransition = errors.New("invalid invoice status transition")

// PaymentInput carries the fields for recording one payment.
type PaymentInput struct {
	InvoiceID   uint
	Amount      money.Amount
	PaymentDate time.Time
	Method      string
	Reference   string
}

// DeriveInvoiceStatus computes the payment-driven invoice status from the
// paid/total relationship. Cancelled is terminal and never derived; draft
// stays draft until explicitly sent. A sent invoice past its due date with
// an outstanding balance derives to overdue.
func DeriveInvoiceStatus(current string, total, paid money.Amount, dueDate *time.Time, now time.Time) string {
	if current == models.InvoiceCancelled {
		return models.InvoiceCancelled
	}
	switch {
	case total > 0 && paid >= total:
		return models.InvoicePaid
	case paid > 0:
		return models.InvoicePartiallyPaid
	}
	// No payments on record
	if current == models.InvoiceDraft {
		return models.InvoiceDraft
	}
	if dueDate != nil && now.After(*dueDate) {
		return models.InvoiceOverdue
	}
	return models.InvoiceSent
}

// applyPaymentDelta shifts the invoice's paid amount by delta and recomputes
// balance and status. Caller holds the invoice row lock inside tx. Balance
// is the exact difference, never clamped, so an overpayment shows as a
// negative balance on a paid invoice.
func applyPaymentDelta(tx *scope.TenantDB, invoice *models.Invoice, delta money.Amount, now time.Time) error {
	newPaid := invoice.PaidAmount + delta
	if newPaid.IsNegative() {
		// Reversing more than was ever recorded: ledger state is corrupt
		logger.Get().Error("invoice paid amount would go negative",
			zap.Uint("invoice_id", invoice.ID),
			zap.String("paid", invoice.PaidAmount.String()),
			zap.String("delta", delta.String()),
		)
		return scope.ErrInvariant
	}

	invoice.PaidAmount = newPaid
	invoice.Balance = invoice.TotalAmount - newPaid
	invoice.Status = DeriveInvoiceStatus(invoice.Status, invoice.TotalAmount, newPaid, invoice.DueDate, now)
	return tx.SaveInTenant(invoice)
}

// RecordPayment creates the payment row and applies its amount to the
// invoice in one transaction: a payment never exists without its effect on
// the invoice, and vice versa.
func RecordPayment(s *scope.TenantDB, in PaymentInput) (*models.Payment, *models.Invoice, error) {
	var payment models.Payment
	var invoice models.Invoice
	err := scope.WithRetry(func() error {
		return s.Transaction(func(tx *scope.TenantDB) error {
			if err := tx.FindInTenantForUpdate(&invoice, in.InvoiceID); err != nil {
				return err
			}
			if invoice.Status == models.InvoiceCancelled {
				return ErrInvoiceCancelled
			}

			payment = models.Payment{
				InvoiceID:   invoice.ID,
				Amount:      in.Amount,
				PaymentDate: in.PaymentDate,
				Method:      in.Method,
				Reference:   in.Reference,
			}
			if err := tx.CreateInTenant(&payment); err != nil {
				return err
			}
			return applyPaymentDelta(tx, &invoice, in.Amount, in.PaymentDate)
		})
	})
	if err != nil {
		return nil, nil, err
	}
	return &payment, &invoice, nil
}

// AdjustPayment changes a payment's amount, applying the difference to the
// invoice as a single delta so no transient reverse-then-reapply state is
// ever visible to concurrent readers.
func AdjustPayment(s *scope.TenantDB, paymentID uint, newAmount money.Amount, now time.Time) (*models.Payment, *models.Invoice, error) {
	var payment models.Payment
	var invoice models.Invoice
	err := scope.WithRetry(func() error {
		return s.Transaction(func(tx *scope.TenantDB) error {
			if err := tx.FindInTenant(&payment, paymentID); err != nil {
				return err
			}
			if err := tx.FindInTenantForUpdate(&invoice, payment.InvoiceID); err != nil {
				return err
			}
			if invoice.Status == models.InvoiceCancelled {
				return ErrInvoiceCancelled
			}

			delta := newAmount - payment.Amount
			payment.Amount = newAmount
			if err := tx.SaveInTenant(&payment); err != nil {
				return err
			}
			return applyPaymentDelta(tx, &invoice, delta, now)
		})
	})
	if err != nil {
		return nil, nil, err
	}
	return &payment, &invoice, nil
}

// ReversePayment deletes a payment and removes its amount from the invoice
// in the same transaction. Status recomputes downward: a paid invoice
// reverts toward partially_paid or sent.
func ReversePayment(s *scope.TenantDB, paymentID uint, now time.Time) (*models.Invoice, error) {
	var invoice models.Invoice
	err := scope.WithRetry(func() error {
		return s.Transaction(func(tx *scope.TenantDB) error {
			var payment models.Payment
			if err := tx.FindInTenant(&payment, paymentID); err != nil {
				return err
			}
			if err := tx.FindInTenantForUpdate(&invoice, payment.InvoiceID); err != nil {
				return err
			}
			if err := tx.DeleteInTenant(&models.Payment{}, payment.ID); err != nil {
				return err
			}
			return applyPaymentDelta(tx, &invoice, -payment.Amount, now)
		})
	})
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

// SendInvoice performs the explicit draft→sent transition.
func SendInvoice(s *scope.TenantDB, invoiceID uint, now time.Time) (*models.Invoice, error) {
	var invoice models.Invoice
	err := s.Transaction(func(tx *scope.TenantDB) error {
		if err := tx.FindInTenantForUpdate(&invoice, invoiceID); err != nil {
			return err
		}
		if invoice.Status != models.InvoiceDraft {
			return ErrInvalidTransition
		}
		invoice.Status = DeriveInvoiceStatus(models.InvoiceSent, invoice.TotalAmount, invoice.PaidAmount, invoice.DueDate, now)
		return tx.SaveInTenant(&invoice)
	})
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

// CancelInvoice performs the explicit transition into the terminal cancelled
// status. The ledger never derives its way back out.
func CancelInvoice(s *scope.TenantDB, invoiceID uint) (*models.Invoice, error) {
	var invoice models.Invoice
	err := s.Transaction(func(tx *scope.TenantDB) error {
		if err := tx.FindInTenantForUpdate(&invoice, invoiceID); err != nil {
			return err
		}
		if invoice.Status == models.InvoicePaid {
			return ErrInvalidTransition
		}
		invoice.Status = models.InvoiceCancelled
		return tx.SaveInTenant(&invoice)
	})
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}
