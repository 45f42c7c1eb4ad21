package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/benefitsnav/benefits-backend/internal/benefits/domain"
)

func (b adminProgramRequest) toDomain() domain.AdminProgramRequest {
	return domain.AdminProgramRequest{
		Name:        b.Name,
		Category:    b.Category,
		Description: b.Description,
		Status:      b.Status,
	}
}

func (h *Handler) AdminListPrograms(c *gin.Context) {
	programs, err := h.svc.Admin.ListPrograms(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"programs": programs, "count": len(programs)})
}

func (h *Handler) AdminGetProgram(c *gin.Context) {
	p, err := h.svc.Admin.GetProgram(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"program": p})
}

func (h *Handler) AdminCreateProgram(c *gin.Context) {
	var body adminProgramRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	p, err := h.svc.Admin.CreateProgram(c.Request.Context(), body.toDomain())
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, http.StatusCreated, gin.H{"program": p})
}

func (h *Handler) AdminUpdateProgram(c *gin.Context) {
	var body adminProgramRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	p, err := h.svc.Admin.UpdateProgram(c.Request.Context(), c.Param("id"), body.toDomain())
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"program": p})
}

func (h *Handler) AdminDeleteProgram(c *gin.Context) {
	if err := h.svc.Admin.DeleteProgram(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"deleted": c.Param("id")})
}

func (h *Handler) AdminUpdateApplicationStatus(c *gin.Context) {
	var body statusRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, "status is required")
		return
	}
	app, sync, err := h.svc.Applications.UpdateStatus(c.Request.Context(), c.Param("userId"), c.Param("id"),
		domain.UpdateApplicationStatusRequest{Status: body.Status, Notes: body.Notes})
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"application": app, "sync": sync})
}

// AdminSimulateApplication drives an application to a random decision.
func (h *Handler) AdminSimulateApplication(c *gin.Context) {
	app, sync, err := h.svc.Applications.Simulate(c.Request.Context(), c.Param("userId"), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"application": app, "sync": sync})
}

func (h *Handler) AdminIntegrations(c *gin.Context) {
	items, err := h.svc.Admin.Integrations(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"integrations": items, "count": len(items)})
}

func (h *Handler) AdminTestIntegration(c *gin.Context) {
	item, probe, err := h.svc.Admin.TestIntegration(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"integration": item, "probe": probe})
}

func (h *Handler) AdminClearIntegrationCache(c *gin.Context) {
	ok(c, http.StatusOK, gin.H{"cleared": h.svc.Admin.ClearRemoteCache()})
}

func (h *Handler) AdminSecurityAudits(c *gin.Context) {
	items, err := h.svc.Admin.SecurityAudits(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"audits": items, "count": len(items)})
}

func (h *Handler) AdminEncryption(c *gin.Context) {
	items, err := h.svc.Admin.Encryption(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"encryption": items})
}
