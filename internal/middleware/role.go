package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"facilityhub/internal/domain"
	"facilityhub/internal/pkg/response"
)

// RequireRole aborts unless the authenticated user's role is in the given
// set. Must run after Auth.
func RequireRole(roles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := UserRole(c)
		if role == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Role not found in token")
			c.Abort()
			return
		}

		if !role.In(roles...) {
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Access denied: insufficient permissions")
			c.Abort()
			return
		}

		c.Next()
	}
}
