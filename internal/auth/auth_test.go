package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/benefitsnav/benefits-backend/internal/users"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeEnsurer struct {
	got users.UpsertUser
	err error
}

func (f *fakeEnsurer) EnsureUser(_ context.Context, u users.UpsertUser) (string, error) {
	f.got = u
	return "db-1", f.err
}

func newRouter(mw ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(mw...)
	r.GET("/who", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": UserID(c), "role": UserRole(c), "db": UserDBID(c)})
	})
	return r
}

func TestOptionalUser(t *testing.T) {
	r := newRouter(OptionalUser())

	tests := []struct {
		name, id, role string
		want           string
	}{
		{"defaults to demo user", "", "", `{"db":"","id":"demo-user","role":"user"}`},
		{"reads headers", "u-1", "admin", `{"db":"","id":"u-1","role":"admin"}`},
		{"unknown role is user", "u-2", "root", `{"db":"","id":"u-2","role":"user"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/who", nil)
			if tt.id != "" {
				req.Header.Set("X-User-Id", tt.id)
			}
			if tt.role != "" {
				req.Header.Set("X-User-Role", tt.role)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, http.StatusOK, w.Code)
			assert.JSONEq(t, tt.want, w.Body.String())
		})
	}
}

func TestRequireRole(t *testing.T) {
	r := newRouter(OptionalUser(), RequireRole(RoleAdmin))

	req := httptest.NewRequest(http.MethodGet, "/who", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/who", nil)
	req.Header.Set("X-User-Role", "admin")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestWithUser(t *testing.T) {
	t.Run("nil ensurer skips the database", func(t *testing.T) {
		r := newRouter(OptionalUser(), WithUser(nil))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/who", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("stores the row id", func(t *testing.T) {
		e := &fakeEnsurer{}
		r := newRouter(OptionalUser(), WithUser(e))
		req := httptest.NewRequest(http.MethodGet, "/who", nil)
		req.Header.Set("X-User-Id", "u-9")
		req.Header.Set("X-User-Email", "u9@example.org")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"db":"db-1"`)
		assert.Equal(t, "u-9", e.got.FirebaseUID)
		assert.Equal(t, "u9@example.org", e.got.Email)
	})

	t.Run("database failure aborts", func(t *testing.T) {
		r := newRouter(OptionalUser(), WithUser(&fakeEnsurer{err: errors.New("down")}))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/who", nil))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
