package http

import (
	"github.com/gin-gonic/gin"

	"github.com/benefitsnav/benefits-backend/internal/auth"
)

// Register mounts the user routes on rg. Admin routes are mounted under
// /admin and require the admin role.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/profile", h.GetProfile)
	rg.PUT("/profile", h.PutProfile)

	rg.GET("/funnel", h.GetFunnel)
	rg.DELETE("/funnel", h.ResetFunnel)
	rg.POST("/funnel/steps/:step", h.SubmitStep)
	rg.POST("/funnel/back", h.FunnelBack)
	rg.POST("/funnel/complete", h.CompleteFunnel)

	rg.GET("/programs", h.ListPrograms)
	rg.GET("/programs/categories", h.Categories)
	rg.GET("/programs/matches", h.Matches)
	rg.GET("/programs/:id", h.GetProgram)

	rg.GET("/sources/federal", h.FederalSource)
	rg.GET("/sources/states/:state", h.StateSource)
	rg.GET("/sources/programs/:id/eligibility", h.Eligibility)

	rg.GET("/favorites", h.ListFavorites)
	rg.POST("/favorites/:programId/toggle", h.ToggleFavorite)

	rg.GET("/applications", h.ListApplications)
	rg.POST("/applications", h.CreateApplication)
	rg.GET("/applications/:id", h.GetApplication)
	rg.POST("/applications/:id/submit", h.SubmitApplication)

	rg.GET("/todos", h.ListTodos)
	rg.POST("/todos", h.CreateTodo)
	rg.PUT("/todos/:id", h.UpdateTodo)
	rg.DELETE("/todos/:id", h.DeleteTodo)
	rg.POST("/todos/:id/toggle", h.ToggleTodo)

	rg.GET("/notifications", h.ListNotifications)
	rg.POST("/notifications/read-all", h.MarkAllNotificationsRead)
	rg.POST("/notifications/:id/read", h.MarkNotificationRead)
	rg.DELETE("/notifications/:id", h.DeleteNotification)

	rg.GET("/offline", h.OfflineStats)
	rg.GET("/offline/stats", h.OfflineStats)
	rg.DELETE("/offline", h.ClearOffline)
	rg.GET("/offline/programs", h.CachedPrograms)
	rg.POST("/offline/programs/sync", h.SyncOfflinePrograms)
	rg.GET("/offline/searches", h.RecentSearches)
	rg.GET("/offline/queue", h.PendingQueue)
	rg.POST("/offline/queue/process", h.ProcessQueue)

	admin := rg.Group("/admin", auth.RequireRole(auth.RoleAdmin))
	admin.GET("/programs", h.AdminListPrograms)
	admin.POST("/programs", h.AdminCreateProgram)
	admin.GET("/programs/:id", h.AdminGetProgram)
	admin.PUT("/programs/:id", h.AdminUpdateProgram)
	admin.DELETE("/programs/:id", h.AdminDeleteProgram)
	admin.PATCH("/applications/:userId/:id/status", h.AdminUpdateApplicationStatus)
	admin.POST("/applications/:userId/:id/simulate", h.AdminSimulateApplication)
	admin.GET("/integrations", h.AdminIntegrations)
	admin.POST("/integrations/:id/test", h.AdminTestIntegration)
	admin.DELETE("/integrations/cache", h.AdminClearIntegrationCache)
	admin.GET("/security/audits", h.AdminSecurityAudits)
	admin.GET("/security/encryption", h.AdminEncryption)
}
