package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/benefitsnav/benefits-backend/internal/benefits/domain"
)

func (h *Handler) ListFavorites(c *gin.Context) {
	programs, err := h.svc.Favorites.List(c.Request.Context(), userID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"programs": programs, "count": len(programs)})
}

func (h *Handler) ToggleFavorite(c *gin.Context) {
	programID := c.Param("programId")
	on, sync, err := h.svc.Favorites.Toggle(c.Request.Context(), userID(c), programID)
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"program_id": programID, "favorite": on, "sync": sync})
}

func (h *Handler) ListApplications(c *gin.Context) {
	apps, err := h.svc.Applications.List(c.Request.Context(), userID(c), c.Query("status"))
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"applications": apps, "count": len(apps)})
}

func (h *Handler) CreateApplication(c *gin.Context) {
	var body createApplicationRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, "program_id is required")
		return
	}
	app, sync, err := h.svc.Applications.Create(c.Request.Context(), userID(c), domain.CreateApplicationRequest{
		ProgramID: body.ProgramID,
		Notes:     body.Notes,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, http.StatusCreated, gin.H{"application": app, "sync": sync})
}

func (h *Handler) GetApplication(c *gin.Context) {
	app, err := h.svc.Applications.Get(c.Request.Context(), userID(c), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"application": app})
}

func (h *Handler) SubmitApplication(c *gin.Context) {
	app, sync, err := h.svc.Applications.Submit(c.Request.Context(), userID(c), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"application": app, "sync": sync})
}

func (h *Handler) ListTodos(c *gin.Context) {
	todos, err := h.svc.Todos.List(c.Request.Context(), userID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"todos": todos, "count": len(todos)})
}

func (b todoRequest) toDomain() domain.TodoRequest {
	return domain.TodoRequest{
		Title:         b.Title,
		Description:   b.Description,
		Category:      b.Category,
		DueDate:       b.DueDate,
		ApplicationID: b.ApplicationID,
		ProgramID:     b.ProgramID,
	}
}

func (h *Handler) CreateTodo(c *gin.Context) {
	var body todoRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	todo, err := h.svc.Todos.Create(c.Request.Context(), userID(c), body.toDomain())
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, http.StatusCreated, gin.H{"todo": todo})
}

func (h *Handler) UpdateTodo(c *gin.Context) {
	var body todoRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	todo, err := h.svc.Todos.Update(c.Request.Context(), userID(c), c.Param("id"), body.toDomain())
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"todo": todo})
}

func (h *Handler) ToggleTodo(c *gin.Context) {
	todo, err := h.svc.Todos.Toggle(c.Request.Context(), userID(c), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"todo": todo})
}

func (h *Handler) DeleteTodo(c *gin.Context) {
	if err := h.svc.Todos.Delete(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"deleted": c.Param("id")})
}

func (h *Handler) ListNotifications(c *gin.Context) {
	list, err := h.svc.Notifications.List(c.Request.Context(), userID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"notifications": list.Notifications, "unread": list.Unread})
}

func (h *Handler) MarkNotificationRead(c *gin.Context) {
	n, err := h.svc.Notifications.MarkRead(c.Request.Context(), userID(c), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"notification": n})
}

func (h *Handler) MarkAllNotificationsRead(c *gin.Context) {
	n, err := h.svc.Notifications.MarkAllRead(c.Request.Context(), userID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"marked": n})
}

func (h *Handler) DeleteNotification(c *gin.Context) {
	if err := h.svc.Notifications.Delete(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"deleted": c.Param("id")})
}
