package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/garagehub/garagehub-api/middleware"
	"github.com/garagehub/garagehub-api/services"
	"github.com/garagehub/garagehub-api/utils"
)

// CreateAttachment handles POST /api/v1/attachments. The request is
// multipart form data with owner_type, owner_id and file fields; the owner
// must exist in the active tenant.
func CreateAttachment(c *gin.Context) {
	ownerType := c.PostForm("owner_type")
	if ownerType == "" {
		utils.RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "owner_type is required")
		return
	}

	ownerID, err := strconv.ParseUint(c.PostForm("owner_id"), 10, 32)
	if err != nil || ownerID == 0 {
		utils.RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "owner_id must be a positive integer")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "file is required")
		return
	}

	attachment, err := services.StoreAttachment(middleware.TenantScope(c), ownerType, uint(ownerID), fileHeader)
	if err != nil {
		var uploadErr *utils.FileUploadError
		if errors.As(err, &uploadErr) {
			utils.RespondError(c, http.StatusBadRequest, uploadErr.Code, uploadErr.Message)
			return
		}
		utils.RespondScopeError(c, err)
		return
	}

	utils.RespondData(c, http.StatusCreated, attachment)
}

// GetAttachment handles GET /api/v1/attachments/:id. The response carries a
// short-lived presigned download URL.
func GetAttachment(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	attachment, err := services.GetAttachment(middleware.TenantScope(c), id)
	if err != nil {
		utils.RespondScopeError(c, err)
		return
	}

	utils.RespondData(c, http.StatusOK, attachment)
}

// DeleteAttachment handles DELETE /api/v1/attachments/:id
func DeleteAttachment(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := services.DeleteAttachment(middleware.TenantScope(c), id); err != nil {
		utils.RespondScopeError(c, err)
		return
	}

	utils.RespondMessage(c, http.StatusOK, "Attachment deleted")
}
