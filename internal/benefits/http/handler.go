package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/benefitsnav/benefits-backend/internal/auth"
	"github.com/benefitsnav/benefits-backend/internal/benefits/domain"
	"github.com/benefitsnav/benefits-backend/internal/benefits/service"
	"github.com/benefitsnav/benefits-backend/internal/govapi"
	"github.com/benefitsnav/benefits-backend/internal/logger"
	"github.com/benefitsnav/benefits-backend/internal/offline"
)

type Handler struct {
	svc     *service.Services
	offline *offline.Cache
	log     *zap.Logger
}

func NewHandler(svc *service.Services, cache *offline.Cache, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{svc: svc, offline: cache, log: log.Named("http")}
}

func ok(c *gin.Context, code int, body gin.H) {
	if body == nil {
		body = gin.H{}
	}
	body["ok"] = true
	c.JSON(code, body)
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": msg})
}

// fail maps a service error to a status code and writes the error body.
func (h *Handler) fail(c *gin.Context, err error) {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrProfileNotFound),
		errors.Is(err, domain.ErrProgramNotFound),
		errors.Is(err, domain.ErrApplicationNotFound),
		errors.Is(err, domain.ErrTodoNotFound),
		errors.Is(err, domain.ErrNotificationNotFound),
		errors.Is(err, domain.ErrAdminProgramNotFound),
		errors.Is(err, domain.ErrIntegrationNotFound),
		errors.Is(err, domain.ErrRecordNotFound):
		code = http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, domain.ErrInvalidCategory),
		errors.Is(err, govapi.ErrUnknownState):
		code = http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrStepOutOfOrder),
		errors.Is(err, domain.ErrFunnelIncomplete),
		errors.Is(err, domain.ErrConflict):
		code = http.StatusConflict
	case errors.Is(err, service.ErrRemoteDisabled):
		code = http.StatusServiceUnavailable
	}

	msg := err.Error()
	if code >= http.StatusInternalServerError {
		logger.FromContext(c.Request.Context(), h.log).Error("request failed",
			zap.String("path", c.FullPath()), zap.Error(err))
		if code == http.StatusInternalServerError {
			msg = "internal error"
		}
	}
	c.JSON(code, gin.H{"ok": false, "error": msg})
}

func userID(c *gin.Context) string {
	if id := auth.UserID(c); id != "" {
		return id
	}
	return auth.DemoUser
}
