package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/AndrewCorlett/yacht-charter-backend/internal/pkg/response"
	"github.com/AndrewCorlett/yacht-charter-backend/internal/pricing"
)

type Handler struct {
	service pricing.Service
}

func NewHandler(service pricing.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) CreateRate(c *gin.Context) {
	var body CreateRateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	rate, err := h.service.CreateRate(c.Request.Context(), pricing.CreateRateRequest{
		YachtID:   body.YachtID,
		Name:      body.Name,
		StartDate: body.StartDate,
		EndDate:   body.EndDate,
		DailyRate: body.DailyRate,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewRateResponse(rate))
}

func (h *Handler) DeleteRate(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	if err := h.service.DeleteRate(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) ListRates(c *gin.Context) {
	yachtID := c.Query("yacht_id")
	if _, err := uuid.Parse(yachtID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid yacht_id"})
		return
	}

	rates, err := h.service.ListRates(c.Request.Context(), yachtID)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]RateResponse, len(rates))
	for i := range rates {
		items[i] = NewRateResponse(&rates[i])
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *Handler) Quote(c *gin.Context) {
	yachtID := c.Param("id")
	if _, err := uuid.Parse(yachtID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	start, err := time.Parse(time.RFC3339, c.Query("start"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start must be RFC3339"})
		return
	}
	end, err := time.Parse(time.RFC3339, c.Query("end"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end must be RFC3339"})
		return
	}

	quote, err := h.service.Quote(c.Request.Context(), yachtID, start, end)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, quote)
}
