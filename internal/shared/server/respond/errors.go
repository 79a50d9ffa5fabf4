package respond

import (
	"github.com/gin-gonic/gin"

	"medreport-backend/internal/shared/telemetry"
)

// ErrorResponse is the uniform error body: {"error": <message>}.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Error sends the uniform error body and aborts the request.
func Error(c *gin.Context, status int, message string) {
	fields := map[string]any{
		"status":     status,
		"message":    message,
		"path":       c.Request.URL.Path,
		"method":     c.Request.Method,
		"request_id": c.GetString("requestId"),
	}
	if userID := c.GetString("userId"); userID != "" {
		fields["user_id"] = userID
	}
	telemetry.Error("http.error", fields)

	c.AbortWithStatusJSON(status, ErrorResponse{Error: message})
}
