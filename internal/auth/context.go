package auth

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	CtxUserID   = "user_id"
	CtxUserRole = "user_role"
	CtxUserDBID = "user_db_id"
	CtxEmail    = "email"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"

	DemoUser = "demo-user"
)

// UserID returns the authenticated user's id (Firebase UID or dev header value).
func UserID(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxUserID))
}

func UserRole(c *gin.Context) string {
	if r := c.GetString(CtxUserRole); r != "" {
		return r
	}
	return RoleUser
}

// UserDBID is the users table id, empty when no database is configured.
func UserDBID(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxUserDBID))
}
