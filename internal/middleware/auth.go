package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"facilityhub/internal/domain"
	"facilityhub/internal/pkg/jwt"
	"facilityhub/internal/pkg/response"
)

const (
	CtxUserID = "user_id"
	CtxRole   = "role"
)

// Auth validates the Bearer token and stores user_id and role on the context.
func Auth(jwtService *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if !strings.HasPrefix(h, "Bearer ") {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Missing or invalid Authorization header")
			c.Abort()
			return
		}

		tokenStr := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
		claims, err := jwtService.ValidateToken(tokenStr)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid token")
			c.Abort()
			return
		}

		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxRole, claims.Role)
		c.Next()
	}
}

// UserID returns the authenticated user id set by Auth.
func UserID(c *gin.Context) int64 {
	return c.GetInt64(CtxUserID)
}

// UserRole returns the authenticated role set by Auth.
func UserRole(c *gin.Context) domain.Role {
	if v, ok := c.Get(CtxRole); ok {
		if r, ok := v.(domain.Role); ok {
			return r
		}
	}
	return ""
}
