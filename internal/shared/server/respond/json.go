// Package respond holds the JSON response helpers shared by all handlers.
package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// JSON writes payload as JSON with the given status.
func JSON(c *gin.Context, status int, payload any) {
	c.JSON(status, payload)
}

// OK writes payload as a 200 response. Handlers use it for every success
// body, including degraded ones that carry an empty report_id.
func OK(c *gin.Context, payload any) {
	JSON(c, http.StatusOK, payload)
}
