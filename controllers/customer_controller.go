package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/garagehub/garagehub-api/middleware"
	"github.com/garagehub/garagehub-api/models"
	"github.com/garagehub/garagehub-api/utils"
)

// CustomerRequest represents the request body for creating or updating a customer
type CustomerRequest struct {
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone"`
	Email   string `json:"email" binding:"omitempty,email"`
	Address string `json:"address"`
}

// ListCustomers handles GET /api/v1/customers
func ListCustomers(c *gin.Context) {
	s := middleware.TenantScope(c)
	page, perPage := utils.Pagination(c)

	var customers []models.Customer
	var total int64
	if err := s.ListInTenantPage(&customers, &models.Customer{}, page, perPage, &total); err != nil {
		utils.RespondScopeError(c, err)
		return
	}

	utils.RespondList(c, customers, page, perPage, total)
}

// CreateCustomer handles POST /api/v1/customers
func CreateCustomer(c *gin.Context) {
	var req CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationError(c, err)
		return
	}

	customer := models.Customer{
		Name:    req.Name,
		Phone:   req.Phone,
		Email:   req.Email,
		Address: req.Address,
	}
	if err := middleware.TenantScope(c).CreateInTenant(&customer); err != nil {
		utils.RespondScopeError(c, err)
		return
	}

	utils.RespondData(c, http.StatusCreated, customer)
}

// GetCustomer handles GET /api/v1/customers/:id
func GetCustomer(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var customer models.Customer
	if err := middleware.TenantScope(c).FindInTenant(&customer, id); err != nil {
		utils.RespondScopeError(c, err)
		return
	}

	utils.RespondData(c, http.StatusOK, customer)
}

// UpdateCustomer handles PUT /api/v1/customers/:id
func UpdateCustomer(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationError(c, err)
		return
	}

	s := middleware.TenantScope(c)
	var customer models.Customer
	if err := s.FindInTenant(&customer, id); err != nil {
		utils.RespondScopeError(c, err)
		return
	}

	customer.Name = req.Name
	customer.Phone = req.Phone
	customer.Email = req.Email
	customer.Address = req.Address
	if err := s.SaveInTenant(&customer); err != nil {
		utils.RespondScopeError(c, err)
		return
	}

	utils.RespondData(c, http.StatusOK, customer)
}

// DeleteCustomer handles DELETE /api/v1/customers/:id
func DeleteCustomer(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := middleware.TenantScope(c).DeleteInTenant(&models.Customer{}, id); err != nil {
		utils.RespondScopeError(c, err)
		return
	}

	utils.RespondMessage(c, http.StatusOK, "Customer deleted")
}
