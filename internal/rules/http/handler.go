package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/AndrewCorlett/yacht-charter-backend/internal/pkg/response"
	"github.com/AndrewCorlett/yacht-charter-backend/internal/rules"
)

type Handler struct {
	service rules.Service
}

func NewHandler(service rules.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateBlackoutRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	b := &rules.Blackout{
		YachtID:   body.YachtID,
		StartTime: body.StartTime.UTC(),
		EndTime:   body.EndTime.UTC(),
		Reason:    body.Reason,
	}
	if err := h.service.CreateBlackout(c.Request.Context(), b); err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewBlackoutResponse(b))
}

func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	if err := h.service.DeleteBlackout(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) List(c *gin.Context) {
	yachtID := c.Query("yacht_id")
	if yachtID != "" {
		if _, err := uuid.Parse(yachtID); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid yacht_id"})
			return
		}
	}

	blackouts, err := h.service.ListBlackouts(c.Request.Context(), yachtID)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]BlackoutResponse, len(blackouts))
	for i := range blackouts {
		items[i] = NewBlackoutResponse(&blackouts[i])
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}
