package services

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/garagehub/garagehub-api/logger"
	"github.com/garagehub/garagehub-api/models"
	"github.com/garagehub/garagehub-api/money"
	"github.com/garagehub/garagehub-api/scope"
)

// ErrTerminalStatus is returned when a mutation targets a delivered or
// cancelled job card.
var ErrTerminalStatus = errors.New("job card is in a terminal status")

// ItemInput carries the financial inputs for one job card line.
type ItemInput struct {
	ItemType    string
	ProductID   *uint
	Description string
	Quantity    decimal.Decimal
	UnitPrice   money.Amount
	TaxRate     decimal.Decimal
	Discount    money.Amount
}

// lineTotals computes one line's money fields: subtotal = quantity × price,
// tax = subtotal × rate/100, total = subtotal + tax − discount. Each value
// is rounded to currency precision at the point of computation, not deferred
// to accumulation.
func lineTotals(quantity decimal.Decimal, unitPrice money.Amount, taxRate decimal.Decimal, discount money.Amount) (sub, tax, total money.Amount) {
	sub = money.MultiplyQuantityPrice(quantity, unitPrice)
	if taxRate.IsPositive() {
		tax = money.ApplyPercentage(sub, taxRate)
	}
	total = money.SubClampZero(sub+tax, discount)
	return sub, tax, total
}

// recalculateLocked recomputes the job card's derived money fields from its
// current item set plus the job-level discount. The caller must hold the row
// lock on the job card inside tx. Idempotent: with no item changes, running
// it again produces identical output.
func recalculateLocked(tx *scope.TenantDB, job *models.JobCard) error {
	var items []models.JobCardItem
	if err := tx.ListInTenant(&items, "job_card_id = ?", job.ID); err != nil {
		return err
	}

	var subtotal, taxTotal, itemTotal money.Amount
	for _, item := range items {
		sub, tax, total := lineTotals(item.Quantity, item.UnitPrice, item.TaxRate, item.Discount)
		subtotal += sub
		taxTotal += tax
		itemTotal += total
	}

	grandTotal := money.SubClampZero(itemTotal, job.DiscountAmount)
	if grandTotal.IsNegative() || subtotal.IsNegative() {
		// Clamping makes this unreachable; a hit means the engine is broken
		logger.Get().Error("job card totals failed invariant check",
			zap.Uint("job_card_id", job.ID),
			zap.String("subtotal", subtotal.String()),
			zap.String("total", grandTotal.String()),
		)
		return scope.ErrInvariant
	}

	job.Subtotal = subtotal
	job.TaxAmount = taxTotal
	job.TotalAmount = grandTotal
	return tx.SaveInTenant(job)
}

// RecalculateJobCard recomputes and persists the job card's derived totals
// in a single transaction under a row lock.
func RecalculateJobCard(s *scope.TenantDB, jobCardID uint) (*models.JobCard, error) {
	var job models.JobCard
	err := scope.WithRetry(func() error {
		return s.Transaction(func(tx *scope.TenantDB) error {
			if err := tx.FindInTenantForUpdate(&job, jobCardID); err != nil {
				return err
			}
			return recalculateLocked(tx, &job)
		})
	})
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// AddJobCardItem creates a line on the job card and recalculates its totals
// atomically. A part line referencing a product is validated against the
// active tenant first.
func AddJobCardItem(s *scope.TenantDB, jobCardID uint, in ItemInput) (*models.JobCard, *models.JobCardItem, error) {
	var job models.JobCard
	var item models.JobCardItem
	err := scope.WithRetry(func() error {
		return s.Transaction(func(tx *scope.TenantDB) error {
			if err := tx.FindInTenantForUpdate(&job, jobCardID); err != nil {
				return err
			}
			if job.IsTerminal() {
				return ErrTerminalStatus
			}
			if in.ProductID != nil {
				if err := tx.CheckRef(&models.Product{}, *in.ProductID); err != nil {
					return err
				}
			}

			_, _, total := lineTotals(in.Quantity, in.UnitPrice, in.TaxRate, in.Discount)
			item = models.JobCardItem{
				JobCardID:   job.ID,
				ItemType:    in.ItemType,
				ProductID:   in.ProductID,
				Description: in.Description,
				Quantity:    in.Quantity,
				UnitPrice:   in.UnitPrice,
				TaxRate:     in.TaxRate,
				Discount:    in.Discount,
				LineTotal:   total,
			}
			if err := tx.CreateInTenant(&item); err != nil {
				return err
			}
			return recalculateLocked(tx, &job)
		})
	})
	if err != nil {
		return nil, nil, err
	}
	return &job, &item, nil
}

// UpdateJobCardItem edits a line's financial inputs and recalculates the job
// card atomically.
func UpdateJobCardItem(s *scope.TenantDB, jobCardID, itemID uint, in ItemInput) (*models.JobCard, *models.JobCardItem, error) {
	var job models.JobCard
	var item models.JobCardItem
	err := scope.WithRetry(func() error {
		return s.Transaction(func(tx *scope.TenantDB) error {
			if err := tx.FindInTenantForUpdate(&job, jobCardID); err != nil {
				return err
			}
			if job.IsTerminal() {
				return ErrTerminalStatus
			}
			if err := tx.FirstInTenant(&item, "id = ? AND job_card_id = ?", itemID, jobCardID); err != nil {
				return err
			}
			if in.ProductID != nil {
				if err := tx.CheckRef(&models.Product{}, *in.ProductID); err != nil {
					return err
				}
			}

			_, _, total := lineTotals(in.Quantity, in.UnitPrice, in.TaxRate, in.Discount)
			item.ItemType = in.ItemType
			item.ProductID = in.ProductID
			item.Description = in.Description
			item.Quantity = in.Quantity
			item.UnitPrice = in.UnitPrice
			item.TaxRate = in.TaxRate
			item.Discount = in.Discount
			item.LineTotal = total
			if err := tx.SaveInTenant(&item); err != nil {
				return err
			}
			return recalculateLocked(tx, &job)
		})
	})
	if err != nil {
		return nil, nil, err
	}
	return &job, &item, nil
}

// RemoveJobCardItem deletes a line and recalculates the job card atomically.
func RemoveJobCardItem(s *scope.TenantDB, jobCardID, itemID uint) (*models.JobCard, error) {
	var job models.JobCard
	err := scope.WithRetry(func() error {
		return s.Transaction(func(tx *scope.TenantDB) error {
			if err := tx.FindInTenantForUpdate(&job, jobCardID); err != nil {
				return err
			}
			if job.IsTerminal() {
				return ErrTerminalStatus
			}
			var item models.JobCardItem
			if err := tx.FirstInTenant(&item, "id = ? AND job_card_id = ?", itemID, jobCardID); err != nil {
				return err
			}
			if err := tx.DeleteInTenant(&models.JobCardItem{}, item.ID); err != nil {
				return err
			}
			return recalculateLocked(tx, &job)
		})
	})
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// SetJobCardDiscount changes the job-level discount and recalculates. This
// is the only derived-money field a caller may set directly.
func SetJobCardDiscount(s *scope.TenantDB, jobCardID uint, discount money.Amount) (*models.JobCard, error) {
	var job models.JobCard
	err := scope.WithRetry(func() error {
		return s.Transaction(func(tx *scope.TenantDB) error {
			if err := tx.FindInTenantForUpdate(&job, jobCardID); err != nil {
				return err
			}
			if job.IsTerminal() {
				return ErrTerminalStatus
			}
			job.DiscountAmount = discount
			return recalculateLocked(tx, &job)
		})
	})
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// UpdateJobCardStatus moves the job card through its workflow and stamps the
// lifecycle timestamps on specific transitions. Status edits never trigger a
// financial recalculation.
func UpdateJobCardStatus(s *scope.TenantDB, jobCardID uint, status string, now time.Time) (*models.JobCard, error) {
	var job models.JobCard
	err := s.Transaction(func(tx *scope.TenantDB) error {
		if err := tx.FindInTenantForUpdate(&job, jobCardID); err != nil {
			return err
		}
		if job.IsTerminal() {
			return ErrTerminalStatus
		}

		job.Status = status
		switch status {
		case models.JobStatusWorking:
			if job.StartedAt == nil {
				job.StartedAt = &now
			}
		case models.JobStatusReady:
			if job.CompletedAt == nil {
				job.CompletedAt = &now
			}
		case models.JobStatusDelivered:
			if job.DeliveredAt == nil {
				job.DeliveredAt = &now
			}
		}
		return tx.SaveInTenant(&job)
	})
	if err != nil {
		return nil, err
	}
	return &job, nil
}
