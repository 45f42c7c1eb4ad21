package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/benefitsnav/benefits-backend/internal/auth"
	"github.com/benefitsnav/benefits-backend/internal/users"
)

// Accounts is the users table as seen by the account endpoints.
type Accounts interface {
	EnsureUser(ctx context.Context, u users.UpsertUser) (string, error)
	GetByFirebaseUID(ctx context.Context, firebaseUID string) (users.User, error)
}

type Handler struct {
	accounts Accounts
}

// New returns a handler; accounts may be nil when no database is configured.
func New(accounts Accounts) *Handler {
	return &Handler{accounts: accounts}
}

func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/me", h.Me)
	rg.POST("/sync", h.Sync)
}

// Me returns the caller's identity, plus the stored account when one exists.
func (h *Handler) Me(c *gin.Context) {
	resp := gin.H{
		"ok":      true,
		"user_id": auth.UserID(c),
		"role":    auth.UserRole(c),
	}
	if h.accounts == nil {
		c.JSON(http.StatusOK, resp)
		return
	}

	u, err := h.accounts.GetByFirebaseUID(c.Request.Context(), auth.UserID(c))
	switch {
	case errors.Is(err, users.ErrUserNotFound):
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to load account"})
		return
	default:
		resp["account"] = u
	}
	c.JSON(http.StatusOK, resp)
}

// Sync creates or refreshes the caller's account row. The body is optional.
func (h *Handler) Sync(c *gin.Context) {
	if h.accounts == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"ok": false, "error": "remote database not configured"})
		return
	}

	var body struct {
		Email       string `json:"email"`
		DisplayName string `json:"display_name"`
	}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid JSON body"})
			return
		}
	}
	email := body.Email
	if email == "" {
		email = c.GetString(auth.CtxEmail)
	}

	id, err := h.accounts.EnsureUser(c.Request.Context(), users.UpsertUser{
		FirebaseUID: auth.UserID(c),
		Email:       email,
		DisplayName: body.DisplayName,
		Role:        auth.UserRole(c),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to sync account"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "id": id})
}
