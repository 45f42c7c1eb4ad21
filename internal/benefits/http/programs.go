package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/benefitsnav/benefits-backend/internal/catalog"
)

func (h *Handler) ListPrograms(c *gin.Context) {
	q := catalog.Query{
		Category:     c.Query("category"),
		State:        c.Query("state"),
		AudienceTier: c.Query("audience"),
		Search:       c.Query("q"),
	}
	programs := h.svc.Programs.Browse(c.Request.Context(), userID(c), q)
	ok(c, http.StatusOK, gin.H{"programs": programs, "count": len(programs)})
}

func (h *Handler) Categories(c *gin.Context) {
	ok(c, http.StatusOK, gin.H{"categories": h.svc.Programs.Categories()})
}

func (h *Handler) Matches(c *gin.Context) {
	programs, err := h.svc.Programs.Matches(c.Request.Context(), userID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"programs": programs, "count": len(programs)})
}

func (h *Handler) GetProgram(c *gin.Context) {
	p, err := h.svc.Programs.Get(c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"program": p})
}

func (h *Handler) FederalSource(c *gin.Context) {
	res, err := h.svc.Programs.FederalSource(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"result": res})
}

func (h *Handler) StateSource(c *gin.Context) {
	res, err := h.svc.Programs.StateSource(c.Request.Context(), c.Param("state"))
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"result": res})
}

func (h *Handler) Eligibility(c *gin.Context) {
	res, err := h.svc.Programs.Eligibility(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"result": res})
}
