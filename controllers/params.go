package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/garagehub/garagehub-api/utils"
)

// paramID parses a numeric path parameter. On failure it writes the error
// response and returns false; handlers just return.
func paramID(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		utils.RespondError(c, 400, "INVALID_ID", "Invalid "+name+" parameter")
		return 0, false
	}
	return uint(id), true
}
