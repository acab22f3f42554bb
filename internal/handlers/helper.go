package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ParseUintIDParam parses a numeric path parameter, responding with 400 and
// returning ok=false when it is not a positive integer.
func ParseUintIDParam(c *gin.Context, param string) (uint, bool) {
	idStr := c.Param(param)
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid " + param,
			Details: "must be a positive integer",
		})
		return 0, false
	}
	return uint(id), true
}

// adminFlag reads the administrative override from the query string.
func adminFlag(c *gin.Context) bool {
	return c.Query("admin") == "true"
}
