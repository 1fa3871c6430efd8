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

// CreateJobCardRequest represents the request body for opening a job card.
// The job number is issued by the sequencer, never supplied by the caller.
type CreateJobCardRequest struct {
	CustomerID  uint   `json:"customer_id" binding:"required"`
	VehicleID   uint   `json:"vehicle_id" binding:"required"`
	Priority    string `json:"priority"`
	Description string `json:"description"`
}

// JobCardStatusRequest represents the request body for a workflow transition
type JobCardStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// JobCardDiscountRequest represents the request body for the job-level discount
type JobCardDiscountRequest struct {
	DiscountAmount money.Amount `json:"discount_amount"`
}

// ListJobCards handles GET /api/v1/job-cards
func ListJobCards(c *gin.Context) {
	s := middleware.TenantScope(c).Preload("Customer").Preload("Vehicle")
	page, perPage := utils.Pagination(c)

	var jobs []models.JobCard
	var total int64
	if err := s.ListInTenantPage(&jobs, &models.JobCard{}, page, perPage, &total); err != nil {
		utils.RespondScopeError(c, err)
		return
	}

	utils.RespondList(c, jobs, page, perPage, total)
}

// CreateJobCard handles POST /api/v1/job-cards. The customer and vehicle
// must both exist in the active tenant, and the vehicle must belong to the
// named customer.
func CreateJobCard(c *gin.Context) {
	var req CreateJobCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationError(c, err)
		return
	}

	priority := req.Priority
	if priority == "" {
		priority = models.JobPriorityNormal
	}
	if !models.ValidJobPriority(priority) {
		utils.RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Unknown priority: "+priority)
		return
	}

	s := middleware.TenantScope(c)
	if err := s.CheckRef(&models.Customer{}, req.CustomerID); err != nil {
		utils.RespondScopeError(c, err)
		return
	}
	var vehicle models.Vehicle
	if err := s.FindInTenant(&vehicle, req.VehicleID); err != nil {
		utils.RespondScopeError(c, err)
		return
	}
	if vehicle.CustomerID != req.CustomerID {
		utils.RespondError(c, http.StatusUnprocessableEntity, "REFERENTIAL_MISMATCH", "Vehicle does not belong to the named customer")
		return
	}

	jobNumber, err := services.GetSequencer().Next(s, services.PrefixJobCard, time.Now())
	if err != nil {
		utils.RespondScopeError(c, err)
		return
	}

	job := models.JobCard{
		JobNumber:   jobNumber,
		CustomerID:  req.CustomerID,
		VehicleID:   req.VehicleID,
		Status:      models.JobStatusPending,
		Priority:    priority,
		Description: req.Description,
	}
	if err := s.CreateInTenant(&job); err != nil {
		utils.RespondScopeError(c, err)
		return
	}

	utils.RespondData(c, http.StatusCreated, job)
}

// GetJobCard handles GET /api/v1/job-cards/:id
func GetJobCard(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var job models.JobCard
	s := middleware.TenantScope(c).Preload("Customer").Preload("Vehicle").Preload("Items")
	if err := s.FindInTenant(&job, id); err != nil {
		utils.RespondScopeError(c, err)
		return
	}

	utils.RespondData(c, http.StatusOK, job)
}

// UpdateJobCardStatus handles PATCH /api/v1/job-cards/:id/status
func UpdateJobCardStatus(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req JobCardStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationError(c, err)
		return
	}
	if !models.ValidJobStatus(req.Status) {
		utils.RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Unknown status: "+req.Status)
		return
	}

	job, err := services.UpdateJobCardStatus(middleware.TenantScope(c), id, req.Status, time.Now())
	if err != nil {
		respondJobCardError(c, err)
		return
	}

	utils.RespondData(c, http.StatusOK, job)
}

// SetJobCardDiscount handles PATCH /api/v1/job-cards/:id/discount
func SetJobCardDiscount(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req JobCardDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationError(c, err)
		return
	}
	if req.DiscountAmount.IsNegative() {
		utils.RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Discount cannot be negative")
		return
	}

	job, err := services.SetJobCardDiscount(middleware.TenantScope(c), id, req.DiscountAmount)
	if err != nil {
		respondJobCardError(c, err)
		return
	}

	utils.RespondData(c, http.StatusOK, job)
}

// respondJobCardError maps calculator errors onto the response envelope
func respondJobCardError(c *gin.Context, err error) {
	if errors.Is(err, services.ErrTerminalStatus) {
		utils.RespondError(c, http.StatusConflict, "TERMINAL_STATUS", "Job card is delivered or cancelled and can no longer change")
		return
	}
	utils.RespondScopeError(c, err)
}
