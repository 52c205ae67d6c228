package handlers

import (
	nethttp "net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mverdi/insurance-crm/internal/transport/http/response"
)

func (h *Handler) recentAudit(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	feed := h.audit.Recent(c.Request.Context(), limit)
	response.RespondOK(c, nethttp.StatusOK, feed.Entries, &response.Meta{
		Count:    len(feed.Entries),
		Degraded: feed.Degraded,
	})
}

func (h *Handler) allAudit(c *gin.Context) {
	feed := h.audit.All(c.Request.Context())
	response.RespondOK(c, nethttp.StatusOK, feed.Entries, &response.Meta{
		Count:    len(feed.Entries),
		Degraded: feed.Degraded,
	})
}

func (h *Handler) changes(c *gin.Context) {
	feed := h.audit.Changes(c.Request.Context())
	response.RespondOK(c, nethttp.StatusOK, feed.Events, &response.Meta{
		Count:    len(feed.Events),
		Degraded: feed.Degraded,
	})
}
