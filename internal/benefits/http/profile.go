package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/benefitsnav/benefits-backend/internal/benefits/domain"
)

func (h *Handler) GetProfile(c *gin.Context) {
	p, err := h.svc.Profiles.Get(c.Request.Context(), userID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"profile": p})
}

func (h *Handler) PutProfile(c *gin.Context) {
	var body profileRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	p, err := h.svc.Profiles.Put(c.Request.Context(), userID(c), body.toProfile())
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"profile": p})
}

func (b profileRequest) toProfile() domain.UserProfile {
	return domain.UserProfile{
		HouseholdSize: b.HouseholdSize,
		HouseholdType: b.HouseholdType,
		IncomeBracket: b.IncomeBracket,
		ZipCode:       b.ZipCode,
		State:         b.State,
		Needs:         b.Needs,
		Language:      b.Language,
		AudienceTier:  b.AudienceTier,
	}
}

func (b profileRequest) toAnswers() domain.FunnelAnswers {
	return domain.FunnelAnswers{
		HouseholdSize: b.HouseholdSize,
		HouseholdType: b.HouseholdType,
		IncomeBracket: b.IncomeBracket,
		ZipCode:       b.ZipCode,
		State:         b.State,
		Needs:         b.Needs,
		Language:      b.Language,
		AudienceTier:  b.AudienceTier,
	}
}

func funnelView(st domain.FunnelState) gin.H {
	return gin.H{
		"funnel":       st,
		"current_step": st.CurrentStep(),
		"steps":        domain.FunnelSteps,
	}
}

func (h *Handler) GetFunnel(c *gin.Context) {
	st, err := h.svc.Funnel.State(c.Request.Context(), userID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, http.StatusOK, funnelView(st))
}

// SubmitStep accepts the answer for one step; the body carries only that step's fields.
func (h *Handler) SubmitStep(c *gin.Context) {
	var body profileRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	st, err := h.svc.Funnel.Submit(c.Request.Context(), userID(c), c.Param("step"), body.toAnswers())
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, http.StatusOK, funnelView(st))
}

func (h *Handler) FunnelBack(c *gin.Context) {
	st, err := h.svc.Funnel.Back(c.Request.Context(), userID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, http.StatusOK, funnelView(st))
}

func (h *Handler) CompleteFunnel(c *gin.Context) {
	res, err := h.svc.Funnel.Complete(c.Request.Context(), userID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{
		"profile":              res.Profile,
		"matches":              res.Matches,
		"notifications_seeded": res.Notifications,
	})
}

func (h *Handler) ResetFunnel(c *gin.Context) {
	st, err := h.svc.Funnel.Reset(c.Request.Context(), userID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, http.StatusOK, funnelView(st))
}
