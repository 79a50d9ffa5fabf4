package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"medreport-backend/internal/identity"
	"medreport-backend/internal/shared/server/respond"
)

const userIDKey = "userId"

// Auth verifies the bearer credential on every request and stores the
// resolved user ID in the request context.
func Auth(verifier identity.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			respond.Error(c, http.StatusUnauthorized, "Missing or invalid Authorization header")
			return
		}

		idToken := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if idToken == "" {
			respond.Error(c, http.StatusUnauthorized, "Missing or invalid Authorization header")
			return
		}

		uid, err := verifier.Verify(c.Request.Context(), idToken)
		if err != nil {
			if errors.Is(err, identity.ErrTokenRevoked) {
				respond.Error(c, http.StatusUnauthorized, "Token has been revoked")
				return
			}
			respond.Error(c, http.StatusUnauthorized, "Invalid authentication token")
			return
		}

		c.Set(userIDKey, uid)
		c.Next()
	}
}

// UserIDFromContext fetches the user ID set by the auth middleware.
func UserIDFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(userIDKey)
	if id, ok := val.(string); ok {
		return id
	}
	return ""
}
