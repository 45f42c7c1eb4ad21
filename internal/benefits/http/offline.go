package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/benefitsnav/benefits-backend/internal/benefits/service"
	"github.com/benefitsnav/benefits-backend/internal/offline"
)

const defaultSearchLimit = 10

func (h *Handler) OfflineStats(c *gin.Context) {
	st, err := h.offline.Stats(c.Request.Context(), userID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"stats": st})
}

func (h *Handler) ClearOffline(c *gin.Context) {
	if err := h.offline.Clear(c.Request.Context(), userID(c)); err != nil {
		h.fail(c, err)
		return
	}
	ok(c, http.StatusOK, nil)
}

// CachedPrograms reads the offline snapshot. max_age is a Go duration string (e.g. "24h").
func (h *Handler) CachedPrograms(c *gin.Context) {
	f := offline.ProgramFilter{
		Category: c.Query("category"),
		State:    c.Query("state"),
	}
	if raw := c.Query("max_age"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			badRequest(c, "max_age must be a positive duration")
			return
		}
		f.MaxAge = d
	}

	programs, err := h.offline.CachedPrograms(c.Request.Context(), userID(c), f)
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"programs": programs, "count": len(programs)})
}

// SyncOfflinePrograms refreshes the user's offline snapshot: matched programs,
// favorites and applications.
func (h *Handler) SyncOfflinePrograms(c *gin.Context) {
	ctx := c.Request.Context()
	uid := userID(c)

	n, err := h.svc.Programs.SyncOffline(ctx, uid)
	if err != nil {
		h.fail(c, err)
		return
	}
	favs, err := h.svc.Favorites.IDs(ctx, uid)
	if err != nil {
		h.fail(c, err)
		return
	}
	if err := h.offline.CacheFavorites(ctx, uid, favs); err != nil {
		h.fail(c, err)
		return
	}
	apps, err := h.svc.Applications.List(ctx, uid, "")
	if err != nil {
		h.fail(c, err)
		return
	}
	if err := h.offline.CacheApplications(ctx, uid, apps); err != nil {
		h.fail(c, err)
		return
	}

	ok(c, http.StatusOK, gin.H{
		"programs":     n,
		"favorites":    len(favs),
		"applications": len(apps),
	})
}

func (h *Handler) RecentSearches(c *gin.Context) {
	limit := defaultSearchLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			badRequest(c, "limit must be a positive integer")
			return
		}
		limit = n
	}
	searches, err := h.offline.RecentSearches(c.Request.Context(), userID(c), limit)
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"searches": searches, "count": len(searches)})
}

func (h *Handler) PendingQueue(c *gin.Context) {
	pending, err := h.offline.Pending(c.Request.Context(), userID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"mutations": pending, "count": len(pending)})
}

// ProcessQueue replays the user's pending mutations against the remote database.
func (h *Handler) ProcessQueue(c *gin.Context) {
	if !h.svc.Replayer.Enabled() {
		h.fail(c, service.ErrRemoteDisabled)
		return
	}
	report, err := h.offline.ProcessQueue(c.Request.Context(), userID(c), h.svc.Replayer)
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"report": report})
}
