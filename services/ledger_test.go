package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/garagehub/garagehub-api/models"
	"github.com/garagehub/garagehub-api/money"
	"github.com/garagehub/garagehub-api/scope"
)

func newInvoiceFixture(t *testing.T, db *gorm.DB, total money.Amount, status string) (*scope.TenantDB, *models.Invoice) {
	t.Helper()

	tenant := models.Tenant{Name: "Test Garage", Domain: "test.example.com"}
	require.NoError(t, db.Create(&tenant).Error)

	customer := models.Customer{TenantID: tenant.ID, Name: "Jo Driver"}
	require.NoError(t, db.Create(&customer).Error)

	invoice := models.Invoice{
		TenantID:      tenant.ID,
		InvoiceNumber: "INV-202506-0001",
		CustomerID:    customer.ID,
		Subtotal:      total,
		TotalAmount:   total,
		Balance:       total,
		Status:        status,
		IssuedDate:    time.Now(),
	}
	require.NoError(t, db.Create(&invoice).Error)

	return scope.New(db, tenant.ID), &invoice
}

func TestRecordPaymentPartialThenFull(t *testing.T) {
	db := setupServiceTestDB(t)
	s, invoice := newInvoiceFixture(t, db, money.Amount(100000), models.InvoiceSent)

	now := time.Now()

	// Partial payment of 400.00 against 1000.00
	payment, updated, err := RecordPayment(s, PaymentInput{
		InvoiceID: invoice.ID, Amount: money.Amount(40000), PaymentDate: now, Method: "cash",
	})
	require.NoError(t, err)
	assert.Equal(t, "400.00", payment.Amount.String())
	assert.Equal(t, models.InvoicePartiallyPaid, updated.Status)
	assert.Equal(t, "600.00", updated.Balance.String())

	// Second payment of 600.00 settles the invoice
	_, updated, err = RecordPayment(s, PaymentInput{
		InvoiceID: invoice.ID, Amount: money.Amount(60000), PaymentDate: now, Method: "card",
	})
	require.NoError(t, err)
	assert.Equal(t, models.InvoicePaid, updated.Status)
	assert.Equal(t, money.Zero, updated.Balance)
	assert.Equal(t, "1000.00", updated.PaidAmount.String())
}

func TestOverpaymentShowsNegativeBalance(t *testing.T) {
	db := setupServiceTestDB(t)
	s, invoice := newInvoiceFixture(t, db, money.Amount(10000), models.InvoiceSent)

	_, updated, err := RecordPayment(s, PaymentInput{
		InvoiceID: invoice.ID, Amount: money.Amount(12000), PaymentDate: time.Now(), Method: "cash",
	})
	require.NoError(t, err)
	assert.Equal(t, models.InvoicePaid, updated.Status)
	assert.Equal(t, "-20.00", updated.Balance.String())
}

func TestRecordPaymentRejectsCancelledInvoice(t *testing.T) {
	db := setupServiceTestDB(t)
	s, invoice := newInvoiceFixture(t, db, money.Amount(10000), models.InvoiceCancelled)

	_, _, err := RecordPayment(s, PaymentInput{
		InvoiceID: invoice.ID, Amount: money.Amount(5000), PaymentDate: time.Now(), Method: "cash",
	})
	assert.ErrorIs(t, err, ErrInvoiceCancelled)
}

func TestRecordPaymentRejectsOtherTenantsInvoice(t *testing.T) {
	db := setupServiceTestDB(t)
	_, invoice := newInvoiceFixture(t, db, money.Amount(10000), models.InvoiceSent)

	other := models.Tenant{Name: "Other Garage", Domain: "other.example.com"}
	require.NoError(t, db.Create(&other).Error)

	_, _, err := RecordPayment(scope.New(db, other.ID), PaymentInput{
		InvoiceID: invoice.ID, Amount: money.Amount(5000), PaymentDate: time.Now(), Method: "cash",
	})
	assert.ErrorIs(t, err, scope.ErrNotFound)

	// The scoped attempt left no payment row behind
	var count int64
	require.NoError(t, db.Model(&models.Payment{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestAdjustPaymentAppliesSingleDelta(t *testing.T) {
	db := setupServiceTestDB(t)
	s, invoice := newInvoiceFixture(t, db, money.Amount(100000), models.InvoiceSent)

	now := time.Now()
	payment, _, err := RecordPayment(s, PaymentInput{
		InvoiceID: invoice.ID, Amount: money.Amount(40000), PaymentDate: now, Method: "cash",
	})
	require.NoError(t, err)

	adjusted, updated, err := AdjustPayment(s, payment.ID, money.Amount(100000), now)
	require.NoError(t, err)
	assert.Equal(t, "1000.00", adjusted.Amount.String())
	assert.Equal(t, models.InvoicePaid, updated.Status)
	assert.Equal(t, money.Zero, updated.Balance)
}

func TestReversePaymentRevertsStatus(t *testing.T) {
	db := setupServiceTestDB(t)
	s, invoice := newInvoiceFixture(t, db, money.Amount(100000), models.InvoiceSent)

	now := time.Now()
	first, _, err := RecordPayment(s, PaymentInput{
		InvoiceID: invoice.ID, Amount: money.Amount(40000), PaymentDate: now, Method: "cash",
	})
	require.NoError(t, err)
	second, updated, err := RecordPayment(s, PaymentInput{
		InvoiceID: invoice.ID, Amount: money.Amount(60000), PaymentDate: now, Method: "card",
	})
	require.NoError(t, err)
	require.Equal(t, models.InvoicePaid, updated.Status)

	updated, err = ReversePayment(s, second.ID, now)
	require.NoError(t, err)
	assert.Equal(t, models.InvoicePartiallyPaid, updated.Status)
	assert.Equal(t, "600.00", updated.Balance.String())

	updated, err = ReversePayment(s, first.ID, now)
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceSent, updated.Status)
	assert.Equal(t, "1000.00", updated.Balance.String())
	assert.Equal(t, money.Zero, updated.PaidAmount)
}

func TestSendInvoiceTransitions(t *testing.T) {
	db := setupServiceTestDB(t)
	s, invoice := newInvoiceFixture(t, db, money.Amount(10000), models.InvoiceDraft)

	updated, err := SendInvoice(s, invoice.ID, time.Now())
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceSent, updated.Status)

	// Only draft invoices can be sent
	_, err = SendInvoice(s, invoice.ID, time.Now())
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestSendPastDueInvoiceDerivesOverdue(t *testing.T) {
	db := setupServiceTestDB(t)
	s, invoice := newInvoiceFixture(t, db, money.Amount(10000), models.InvoiceDraft)

	due := time.Now().Add(-48 * time.Hour)
	require.NoError(t, db.Model(invoice).Update("due_date", &due).Error)

	updated, err := SendInvoice(s, invoice.ID, time.Now())
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceOverdue, updated.Status)
}

func TestCancelInvoice(t *testing.T) {
	db := setupServiceTestDB(t)
	s, invoice := newInvoiceFixture(t, db, money.Amount(10000), models.InvoiceSent)

	updated, err := CancelInvoice(s, invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceCancelled, updated.Status)
}

func TestCancelRejectsPaidInvoice(t *testing.T) {
	db := setupServiceTestDB(t)
	s, invoice := newInvoiceFixture(t, db, money.Amount(10000), models.InvoiceSent)

	_, _, err := RecordPayment(s, PaymentInput{
		InvoiceID: invoice.ID, Amount: money.Amount(10000), PaymentDate: time.Now(), Method: "cash",
	})
	require.NoError(t, err)

	_, err = CancelInvoice(s, invoice.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestDeriveInvoiceStatus(t *testing.T) {
	due := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	beforeDue := due.Add(-24 * time.Hour)
	afterDue := due.Add(24 * time.Hour)

	tests := []struct {
		name    string
		current string
		total   money.Amount
		paid    money.Amount
		dueDate *time.Time
		now     time.Time
		want    string
	}{
		{"cancelled is terminal", models.InvoiceCancelled, 10000, 10000, nil, afterDue, models.InvoiceCancelled},
		{"fully paid", models.InvoiceSent, 10000, 10000, nil, beforeDue, models.InvoicePaid},
		{"overpaid", models.InvoiceSent, 10000, 12000, nil, beforeDue, models.InvoicePaid},
		{"zero total never paid", models.InvoiceSent, 0, 0, nil, beforeDue, models.InvoiceSent},
		{"partial", models.InvoiceSent, 10000, 4000, nil, beforeDue, models.InvoicePartiallyPaid},
		{"partial beats overdue", models.InvoiceSent, 10000, 4000, &due, afterDue, models.InvoicePartiallyPaid},
		{"draft stays draft", models.InvoiceDraft, 10000, 0, &due, afterDue, models.InvoiceDraft},
		{"sent past due goes overdue", models.InvoiceSent, 10000, 0, &due, afterDue, models.InvoiceOverdue},
		{"sent before due stays sent", models.InvoiceSent, 10000, 0, &due, beforeDue, models.InvoiceSent},
		{"sent with no due date stays sent", models.InvoiceSent, 10000, 0, nil, afterDue, models.InvoiceSent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveInvoiceStatus(tt.current, tt.total, tt.paid, tt.dueDate, tt.now)
			assert.Equal(t, tt.want, got)
		})
	}
}
