package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/garagehub/garagehub-api/middleware"
	"github.com/garagehub/garagehub-api/models"
	"github.com/garagehub/garagehub-api/money"
	"github.com/garagehub/garagehub-api/utils"
)

// ProductRequest represents the request body for creating a product
type ProductRequest struct {
	Name          string          `json:"name" binding:"required"`
	SKU           string          `json:"sku" binding:"required"`
	UnitPrice     money.Amount    `json:"unit_price"`
	StockQuantity decimal.Decimal `json:"stock_quantity"`
}

// ListProducts handles GET /api/v1/products
func ListProducts(c *gin.Context) {
	s := middleware.TenantScope(c)
	page, perPage := utils.Pagination(c)

	var products []models.Product
	var total int64
	if err := s.ListInTenantPage(&products, &models.Product{}, page, perPage, &total); err != nil {
		utils.RespondScopeError(c, err)
		return
	}

	utils.RespondList(c, products, page, perPage, total)
}

// CreateProduct handles POST /api/v1/products. The SKU is unique per tenant;
// a duplicate surfaces as a conflict.
func CreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationError(c, err)
		return
	}
	if req.UnitPrice.IsNegative() {
		utils.RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Unit price cannot be negative")
		return
	}

	product := models.Product{
		Name:          req.Name,
		SKU:           req.SKU,
		UnitPrice:     req.UnitPrice,
		StockQuantity: req.StockQuantity,
	}
	if err := middleware.TenantScope(c).CreateInTenant(&product); err != nil {
		utils.RespondScopeError(c, err)
		return
	}

	utils.RespondData(c, http.StatusCreated, product)
}

// GetProduct handles GET /api/v1/products/:id
func GetProduct(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var product models.Product
	if err := middleware.TenantScope(c).FindInTenant(&product, id); err != nil {
		utils.RespondScopeError(c, err)
		return
	}

	utils.RespondData(c, http.StatusOK, product)
}
