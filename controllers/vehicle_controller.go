package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/garagehub/garagehub-api/middleware"
	"github.com/garagehub/garagehub-api/models"
	"github.com/garagehub/garagehub-api/utils"
)

// VehicleRequest represents the request body for creating or updating a vehicle
type VehicleRequest struct {
	CustomerID   uint   `json:"customer_id" binding:"required"`
	Make         string `json:"make" binding:"required"`
	Model        string `json:"model" binding:"required"`
	Year         int    `json:"year"`
	Registration string `json:"registration"`
	VIN          string `json:"vin"`
}

// ListVehicles handles GET /api/v1/vehicles
func ListVehicles(c *gin.Context) {
	s := middleware.TenantScope(c).Preload("Customer")
	page, perPage := utils.Pagination(c)

	var vehicles []models.Vehicle
	var total int64
	if err := s.ListInTenantPage(&vehicles, &models.Vehicle{}, page, perPage, &total); err != nil {
		utils.RespondScopeError(c, err)
		return
	}

	utils.RespondList(c, vehicles, page, perPage, total)
}

// CreateVehicle handles POST /api/v1/vehicles. The owning customer must
// exist in the active tenant.
func CreateVehicle(c *gin.Context) {
	var req VehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationError(c, err)
		return
	}

	s := middleware.TenantScope(c)
	if err := s.CheckRef(&models.Customer{}, req.CustomerID); err != nil {
		utils.RespondScopeError(c, err)
		return
	}

	vehicle := models.Vehicle{
		CustomerID:   req.CustomerID,
		Make:         req.Make,
		Model:        req.Model,
		Year:         req.Year,
		Registration: req.Registration,
		VIN:          req.VIN,
	}
	if err := s.CreateInTenant(&vehicle); err != nil {
		utils.RespondScopeError(c, err)
		return
	}

	utils.RespondData(c, http.StatusCreated, vehicle)
}

// GetVehicle handles GET /api/v1/vehicles/:id
func GetVehicle(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var vehicle models.Vehicle
	if err := middleware.TenantScope(c).Preload("Customer").FindInTenant(&vehicle, id); err != nil {
		utils.RespondScopeError(c, err)
		return
	}

	utils.RespondData(c, http.StatusOK, vehicle)
}

// UpdateVehicle handles PUT /api/v1/vehicles/:id
func UpdateVehicle(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req VehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationError(c, err)
		return
	}

	s := middleware.TenantScope(c)
	var vehicle models.Vehicle
	if err := s.FindInTenant(&vehicle, id); err != nil {
		utils.RespondScopeError(c, err)
		return
	}
	if err := s.CheckRef(&models.Customer{}, req.CustomerID); err != nil {
		utils.RespondScopeError(c, err)
		return
	}

	vehicle.CustomerID = req.CustomerID
	vehicle.Make = req.Make
	vehicle.Model = req.Model
	vehicle.Year = req.Year
	vehicle.Registration = req.Registration
	vehicle.VIN = req.VIN
	if err := s.SaveInTenant(&vehicle); err != nil {
		utils.RespondScopeError(c, err)
		return
	}

	utils.RespondData(c, http.StatusOK, vehicle)
}

// DeleteVehicle handles DELETE /api/v1/vehicles/:id
func DeleteVehicle(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := middleware.TenantScope(c).DeleteInTenant(&models.Vehicle{}, id); err != nil {
		utils.RespondScopeError(c, err)
		return
	}

	utils.RespondMessage(c, http.StatusOK, "Vehicle deleted")
}
