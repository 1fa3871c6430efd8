package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/garagehub/garagehub-api/config"
	"github.com/garagehub/garagehub-api/middleware"
	"github.com/garagehub/garagehub-api/models"
	"github.com/garagehub/garagehub-api/scope"
	"github.com/garagehub/garagehub-api/utils"
)

// CreateProfileRequest represents the request body for creating a staff profile
type CreateProfileRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
	Role  string `json:"role"`
}

// GetMe handles GET /api/v1/me. The authenticated subject is resolved to
// the staff account inside the active tenant.
func GetMe(c *gin.Context) {
	authID, err := middleware.GetAuthID(c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Could not extract user information")
		return
	}

	lookup := scope.NewUserLookup(config.GetDB())
	user, err := lookup.FindByAuthID(middleware.GetTenantID(c), authID)
	if err != nil {
		utils.RespondScopeError(c, err)
		return
	}

	utils.RespondData(c, http.StatusOK, user)
}

// CreateMe handles POST /api/v1/me. It creates the staff profile for the
// authenticated subject inside the active tenant.
func CreateMe(c *gin.Context) {
	authID, err := middleware.GetAuthID(c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Could not extract user information")
		return
	}

	var req CreateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationError(c, err)
		return
	}

	role := req.Role
	if role == "" {
		role = "advisor"
	}

	s := middleware.TenantScope(c)
	lookup := scope.NewUserLookup(config.GetDB())
	if _, err := lookup.FindByAuthID(s.TenantID(), authID); err == nil {
		utils.RespondError(c, http.StatusConflict, "PROFILE_EXISTS", "A profile already exists for this account")
		return
	}

	user := models.User{
		AuthID: authID,
		Name:   req.Name,
		Email:  req.Email,
		Role:   role,
	}
	if err := s.CreateInTenant(&user); err != nil {
		utils.RespondScopeError(c, err)
		return
	}

	utils.RespondData(c, http.StatusCreated, user)
}
