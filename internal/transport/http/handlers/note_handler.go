package handlers

import (
	nethttp "net/http"

	"github.com/gin-gonic/gin"

	"github.com/mverdi/insurance-crm/internal/transport/http/middleware"
	"github.com/mverdi/insurance-crm/internal/transport/http/response"
)

type saveNoteRequest struct {
	Table string `json:"table_name" binding:"required"`
	Text  string `json:"note_text" binding:"required"`
}

func (h *Handler) saveNote(c *gin.Context) {
	var req saveNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, nethttp.StatusBadRequest, err.Error())
		return
	}

	user := c.GetString(middleware.ActingUserKey)
	note, err := h.notes.Save(c.Request.Context(), req.Table, req.Text, user)
	if err != nil {
		response.RespondError(c, nethttp.StatusInternalServerError, "save note failed")
		return
	}
	response.RespondOK(c, nethttp.StatusCreated, note, nil)
}

func (h *Handler) latestNote(c *gin.Context) {
	table := c.Query("table")
	if table == "" {
		response.RespondError(c, nethttp.StatusBadRequest, "table is required")
		return
	}

	note, err := h.notes.GetLatest(c.Request.Context(), table)
	if err != nil {
		response.RespondError(c, nethttp.StatusInternalServerError, "latest note failed")
		return
	}
	if note == nil {
		response.RespondOK(c, nethttp.StatusOK, nil, nil)
		return
	}
	response.RespondOK(c, nethttp.StatusOK, note, nil)
}
