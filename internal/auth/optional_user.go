package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// OptionalUser identifies the caller from headers without verifying anything.
// X-User-Id falls back to "demo-user"; X-User-Role defaults to "user".
// Use this ONLY for development/testing.
func OptionalUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := strings.TrimSpace(c.GetHeader("X-User-Id"))
		if uid == "" {
			uid = DemoUser
		}
		role := strings.ToLower(strings.TrimSpace(c.GetHeader("X-User-Role")))
		if role != RoleAdmin {
			role = RoleUser
		}

		c.Set(CtxUserID, uid)
		c.Set(CtxUserRole, role)
		if email := c.GetHeader("X-User-Email"); email != "" {
			c.Set(CtxEmail, email)
		}
		c.Next()
	}
}

// RequireRole rejects callers whose role differs from role.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if UserRole(c) != role {
			c.JSON(http.StatusForbidden, gin.H{"ok": false, "error": "forbidden"})
			c.Abort()
			return
		}
		c.Next()
	}
}
