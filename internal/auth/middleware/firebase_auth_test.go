package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/benefitsnav/benefits-backend/internal/auth"
)

type fakeVerifier map[string]*fbauth.Token

func (f fakeVerifier) VerifyIDToken(_ context.Context, token string) (*fbauth.Token, error) {
	if t, ok := f[token]; ok {
		return t, nil
	}
	return nil, errors.New("bad token")
}

func TestFirebaseAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	verifier := fakeVerifier{
		"user-token":  {UID: "uid-1", Claims: map[string]interface{}{"email": "a@example.org"}},
		"admin-token": {UID: "uid-2", Claims: map[string]interface{}{"admin": true}},
	}

	r := gin.New()
	r.Use(FirebaseAuthMiddleware(verifier))
	r.GET("/who", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": auth.UserID(c), "role": auth.UserRole(c), "email": c.GetString(auth.CtxEmail)})
	})

	tests := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{"missing token", "", http.StatusUnauthorized, ""},
		{"malformed header", "Token abc", http.StatusUnauthorized, ""},
		{"invalid token", "Bearer nope", http.StatusUnauthorized, ""},
		{"user", "Bearer user-token", http.StatusOK, `{"id":"uid-1","role":"user","email":"a@example.org"}`},
		{"admin claim", "Bearer admin-token", http.StatusOK, `{"id":"uid-2","role":"admin","email":""}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/who", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.status, w.Code)
			if tt.body != "" {
				assert.JSONEq(t, tt.body, w.Body.String())
			}
		})
	}
}
