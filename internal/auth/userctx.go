package auth

import (
	"context"
	"net/http"

	"github.com/benefitsnav/benefits-backend/internal/users"
	"github.com/gin-gonic/gin"
)

// UserEnsurer creates or refreshes the users row for a caller.
type UserEnsurer interface {
	EnsureUser(ctx context.Context, u users.UpsertUser) (string, error)
}

// WithUser ensures a users row for the identified caller. It must run after
// OptionalUser or the Firebase middleware. A nil ensurer skips the database.
func WithUser(ensurer UserEnsurer) gin.HandlerFunc {
	return func(c *gin.Context) {
		if ensurer == nil {
			c.Next()
			return
		}

		uid, err := ensurer.EnsureUser(c.Request.Context(), users.UpsertUser{
			FirebaseUID: UserID(c),
			Email:       c.GetString(CtxEmail),
			DisplayName: c.GetHeader("X-User-Name"),
			Role:        UserRole(c),
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "ensure user: " + err.Error()})
			c.Abort()
			return
		}

		c.Set(CtxUserDBID, uid)
		c.Next()
	}
}
