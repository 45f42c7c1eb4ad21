package bootstrap

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	httpapi "github.com/benefitsnav/benefits-backend/internal/api/http"
	"github.com/benefitsnav/benefits-backend/internal/api/http/middleware"
	"github.com/benefitsnav/benefits-backend/internal/auth"
	authhttp "github.com/benefitsnav/benefits-backend/internal/auth/http"
	authmw "github.com/benefitsnav/benefits-backend/internal/auth/middleware"
	benefitshttp "github.com/benefitsnav/benefits-backend/internal/benefits/http"
	"github.com/benefitsnav/benefits-backend/internal/benefits/service"
	"github.com/benefitsnav/benefits-backend/internal/offline"
)

type RouterDeps struct {
	ServiceName    string
	Version        string
	AllowedOrigins []string
	Log            *zap.Logger

	Redis httpapi.Pinger
	// DB is nil when no PostgreSQL mirror is configured.
	DB httpapi.Pinger

	Services *service.Services
	Offline  *offline.Cache

	// Verifier enables Firebase token auth; nil falls back to header identity.
	Verifier authmw.TokenVerifier
	// Accounts is nil when no PostgreSQL users table is available.
	Accounts authhttp.Accounts
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestIDMiddleware(dep.Log))
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     dep.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.HeaderRequestID, "X-User-Id", "X-User-Role", "X-User-Email"},
		ExposeHeaders:    []string{middleware.HeaderRequestID},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.Redis, dep.DB)
	healthHandler.RegisterRoutes(r)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")
	if dep.Verifier != nil {
		api.Use(authmw.FirebaseAuthMiddleware(dep.Verifier))
	} else {
		api.Use(auth.OptionalUser())
	}

	var ensurer auth.UserEnsurer
	if dep.Accounts != nil {
		ensurer = dep.Accounts
	}
	api.Use(auth.WithUser(ensurer))

	authhttp.New(dep.Accounts).Register(api.Group("/account"))
	benefitshttp.NewHandler(dep.Services, dep.Offline, dep.Log).Register(api)

	return r
}
