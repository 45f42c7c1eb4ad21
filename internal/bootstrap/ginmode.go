package bootstrap

import "github.com/gin-gonic/gin"

// SetGinMode selects gin's mode from APP_ENV.
func SetGinMode(env string) {
	switch env {
	case "production":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}
}
