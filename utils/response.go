package utils

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/garagehub/garagehub-api/scope"
)

// RespondData writes the standard success envelope
func RespondData(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{
		"success": true,
		"data":    data,
	})
}

// RespondMessage writes a success envelope with a message and no data
func RespondMessage(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"success": true,
		"message": message,
	})
}

// RespondError writes the standard error envelope
func RespondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

// RespondValidationError writes a 400 with the binding failure details
func RespondValidationError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "VALIDATION_ERROR",
			"message": "Invalid request data",
			"details": err.Error(),
		},
	})
}

// RespondList writes a paginated success envelope with meta and links
func RespondList(c *gin.Context, data interface{}, page, perPage int, total int64) {
	lastPage := int((total + int64(perPage) - 1) / int64(perPage))
	if lastPage < 1 {
		lastPage = 1
	}

	basePath := c.Request.URL.Path
	pageLink := func(p int) string {
		return fmt.Sprintf("%s?page=%d&per_page=%d", basePath, p, perPage)
	}

	links := gin.H{
		"first": pageLink(1),
		"last":  pageLink(lastPage),
		"prev":  nil,
		"next":  nil,
	}
	if page > 1 {
		links["prev"] = pageLink(page - 1)
	}
	if page < lastPage {
		links["next"] = pageLink(page + 1)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
		"meta": gin.H{
			"page":     page,
			"per_page": perPage,
			"total":    total,
		},
		"links": links,
	})
}

// RespondScopeError maps the data-access error taxonomy onto HTTP responses.
// Cross-tenant access surfaces as NOT_FOUND: the caller learns nothing about
// rows it cannot see. Conflicts have already been retried by the time they
// reach here.
func RespondScopeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, scope.ErrNotFound):
		RespondError(c, http.StatusNotFound, "NOT_FOUND", "The requested resource was not found")
	case errors.Is(err, scope.ErrReferentialMismatch):
		RespondError(c, http.StatusUnprocessableEntity, "REFERENTIAL_MISMATCH", "A referenced record does not exist")
	case errors.Is(err, scope.ErrConflict):
		RespondError(c, http.StatusConflict, "CONFLICT", "The resource was modified concurrently, please retry")
	case errors.Is(err, scope.ErrInvariant):
		RespondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal consistency check failed")
	default:
		RespondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "The operation could not be completed")
	}
}

// Pagination extracts page/per_page query parameters with sane bounds
func Pagination(c *gin.Context) (page, perPage int) {
	page = queryInt(c, "page", 1)
	perPage = queryInt(c, "per_page", 25)
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 25
	}
	return page, perPage
}

func queryInt(c *gin.Context, key string, fallback int) int {
	value := c.Query(key)
	if value == "" {
		return fallback
	}
	var n int
	if _, err := fmt.Sscanf(value, "%d", &n); err != nil {
		return fallback
	}
	return n
}
