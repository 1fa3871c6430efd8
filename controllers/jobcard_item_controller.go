package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/garagehub/garagehub-api/middleware"
	"github.com/garagehub/garagehub-api/models"
	"github.com/garagehub/garagehub-api/money"
	"github.com/garagehub/garagehub-api/services"
	"github.com/garagehub/garagehub-api/utils"
)

// JobCardItemRequest represents the request body for a job card line. The
// line total is derived server-side and never accepted from the caller.
type JobCardItemRequest struct {
	ItemType    string          `json:"item_type" binding:"required"`
	ProductID   *uint           `json:"product_id"`
	Description string          `json:"description" binding:"required"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice   money.Amount    `json:"unit_price"`
	TaxRate     decimal.Decimal `json:"tax_rate"`
	Discount    money.Amount    `json:"discount"`
}

func (r *JobCardItemRequest) validate(c *gin.Context) (services.ItemInput, bool) {
	if !models.ValidItemType(r.ItemType) {
		utils.RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Item type must be part or service")
		return services.ItemInput{}, false
	}
	if !r.Quantity.IsPositive() {
		utils.RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Quantity must be positive")
		return services.ItemInput{}, false
	}
	if r.UnitPrice.IsNegative() || r.Discount.IsNegative() || r.TaxRate.IsNegative() {
		utils.RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Price, discount and tax rate cannot be negative")
		return services.ItemInput{}, false
	}
	return services.ItemInput{
		ItemType:    r.ItemType,
		ProductID:   r.ProductID,
		Description: r.Description,
		Quantity:    r.Quantity,
		UnitPrice:   r.UnitPrice,
		TaxRate:     r.TaxRate,
		Discount:    r.Discount,
	}, true
}

// AddJobCardItem handles POST /api/v1/job-cards/:id/items. The response
// carries the recalculated job card with the new line attached.
func AddJobCardItem(c *gin.Context) {
	jobID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req JobCardItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationError(c, err)
		return
	}
	input, ok := req.validate(c)
	if !ok {
		return
	}

	job, item, err := services.AddJobCardItem(middleware.TenantScope(c), jobID, input)
	if err != nil {
		respondJobCardError(c, err)
		return
	}

	utils.RespondData(c, http.StatusCreated, gin.H{"job_card": job, "item": item})
}

// UpdateJobCardItem handles PUT /api/v1/job-cards/:id/items/:itemID
func UpdateJobCardItem(c *gin.Context) {
	jobID, ok := paramID(c, "id")
	if !ok {
		return
	}
	itemID, ok := paramID(c, "itemID")
	if !ok {
		return
	}

	var req JobCardItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationError(c, err)
		return
	}
	input, ok := req.validate(c)
	if !ok {
		return
	}

	job, item, err := services.UpdateJobCardItem(middleware.TenantScope(c), jobID, itemID, input)
	if err != nil {
		respondJobCardError(c, err)
		return
	}

	utils.RespondData(c, http.StatusOK, gin.H{"job_card": job, "item": item})
}

// RemoveJobCardItem handles DELETE /api/v1/job-cards/:id/items/:itemID
func RemoveJobCardItem(c *gin.Context) {
	jobID, ok := paramID(c, "id")
	if !ok {
		return
	}
	itemID, ok := paramID(c, "itemID")
	if !ok {
		return
	}

	job, err := services.RemoveJobCardItem(middleware.TenantScope(c), jobID, itemID)
	if err != nil {
		respondJobCardError(c, err)
		return
	}

	utils.RespondData(c, http.StatusOK, job)
}
