package handlers

import (
	nethttp "net/http"

	"github.com/gin-gonic/gin"

	"github.com/mverdi/insurance-crm/internal/domain/repository"
	"github.com/mverdi/insurance-crm/internal/domain/service"
	"github.com/mverdi/insurance-crm/internal/transport/http/response"
)

type Handler struct {
	customers service.CustomerService
	audit     service.AuditService
	notes     service.NoteService
	store     repository.Store
}

func NewHandler(customers service.CustomerService, audit service.AuditService, notes service.NoteService, store repository.Store) *Handler {
	return &Handler{
		customers: customers,
		audit:     audit,
		notes:     notes,
		store:     store,
	}
}

func (h *Handler) RegisterRoutes(engine *gin.Engine) {
	engine.GET("/healthz", h.health)

	api := engine.Group("/api")
	api.GET("/me", h.me)

	customers := api.Group("/customers")
	customers.GET("", h.listCustomers)
	customers.GET("/filters", h.filterValues)
	customers.GET("/:id", h.getCustomer)
	customers.PATCH("/:id", h.updateCustomer)

	audit := api.Group("/audit")
	audit.GET("", h.allAudit)
	audit.GET("/recent", h.recentAudit)

	api.GET("/changes", h.changes)

	notes := api.Group("/notes")
	notes.POST("", h.saveNote)
	notes.GET("/latest", h.latestNote)
}

func (h *Handler) health(c *gin.Context) {
	if err := h.store.Ping(c.Request.Context()); err != nil {
		response.RespondOK(c, nethttp.StatusServiceUnavailable, gin.H{"status": "down"}, nil)
		return
	}
	response.RespondOK(c, nethttp.StatusOK, gin.H{"status": "ok"}, nil)
}
