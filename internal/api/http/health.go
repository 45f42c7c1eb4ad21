package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger is any dependency that can report its reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Service   string            `json:"service"`
	Version   string            `json:"version"`
	Deps      map[string]string `json:"deps"`
}

type HealthHandler struct {
	serviceName string
	version     string
	redis       Pinger
	db          Pinger
}

// NewHealthHandler builds the handler. Redis is required for the service to
// be healthy; db may be nil when no PostgreSQL mirror is configured.
func NewHealthHandler(serviceName, version string, redis, db Pinger) *HealthHandler {
	return &HealthHandler{
		serviceName: serviceName,
		version:     version,
		redis:       redis,
		db:          db,
	}
}

func ping(ctx context.Context, p Pinger) string {
	if p == nil {
		return "disabled"
	}
	pingCtx, cancel := context.WithTimeout(ctx, 1*time.Second)
	defer cancel()
	if err := p.Ping(pingCtx); err != nil {
		return "down"
	}
	return "up"
}

func (h *HealthHandler) HealthCheck(c *gin.Context) {
	deps := map[string]string{
		"redis": ping(c.Request.Context(), h.redis),
		"db":    ping(c.Request.Context(), h.db),
	}

	status, code := "healthy", http.StatusOK
	switch {
	case deps["redis"] != "up":
		status, code = "unhealthy", http.StatusServiceUnavailable
	case deps["db"] == "down":
		// writes still succeed locally and queue for the mirror
		status = "degraded"
	}

	c.JSON(code, HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC(),
		Service:   h.serviceName,
		Version:   h.version,
		Deps:      deps,
	})
}

func (h *HealthHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/health", h.HealthCheck)
	r.GET("/healthz", h.HealthCheck)
}
