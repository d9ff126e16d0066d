package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/AndrewCorlett/yacht-charter-backend/internal/charter"
	"github.com/AndrewCorlett/yacht-charter-backend/internal/pkg/response"
)

const (
	defaultSlotDurationHours = 24
	defaultSitrepHorizonDays = 7
)

type Handler struct {
	service charter.Service
}

func NewHandler(service charter.Service) *Handler {
	return &Handler{service: service}
}

// renderServiceError maps charter service errors to responses. Validation
// and conflict outcomes carry structured payloads; everything else goes
// through the shared error renderer.
func renderServiceError(c *gin.Context, err error) {
	var vErr *charter.ValidationError
	if errors.As(err, &vErr) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":  "booking failed validation",
			"fields": vErr.Result.Errors,
		})
		return
	}

	var cErr *charter.ConflictError
	if errors.As(err, &cErr) {
		c.JSON(http.StatusConflict, gin.H{
			"error":  "requested period conflicts with an existing booking",
			"report": cErr.Report,
		})
		return
	}

	response.Error(c, err)
}

func (h *Handler) List(c *gin.Context) {
	var req ListBookingsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	filter := charter.Filter{
		YachtID:   req.YachtID,
		Status:    req.Status,
		StartTime: req.From,
		EndTime:   req.To,
		Page:      req.Page,
		PageSize:  req.PageSize,
		SortBy:    req.SortBy,
		SortOrder: req.SortOrder,
	}

	bookings, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = NewBookingResponse(b)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, filter.Page, filter.PageSize, total))
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateBookingRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	b, err := h.service.Create(c.Request.Context(), charter.CreateRequest{
		YachtID:       body.YachtID,
		CustomerName:  body.CustomerName,
		CustomerEmail: body.CustomerEmail,
		CustomerPhone: body.CustomerPhone,
		StartTime:     body.StartTime,
		EndTime:       body.EndTime,
		GuestCount:    body.GuestCount,
		TotalValue:    body.TotalValue,
		DepositAmount: body.DepositAmount,
		Notes:         body.Notes,
	})
	if err != nil {
		renderServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewBookingResponse(b))
}

func (h *Handler) Get(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) Update(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body UpdateBookingRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := body.Validate(); err != nil {
		response.Error(c, err)
		return
	}

	b, err := h.service.Update(c.Request.Context(), id, charter.UpdateRequest{
		CustomerName:  body.CustomerName,
		CustomerEmail: body.CustomerEmail,
		CustomerPhone: body.CustomerPhone,
		StartTime:     body.StartTime,
		EndTime:       body.EndTime,
		Status:        body.Status,
		GuestCount:    body.GuestCount,
		TotalValue:    body.TotalValue,
		DepositAmount: body.DepositAmount,
		Notes:         body.Notes,
	})
	if err != nil {
		renderServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) Move(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body MoveBookingRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	b, err := h.service.Move(c.Request.Context(), id, body.YachtID)
	if err != nil {
		renderServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) Cancel(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	b, err := h.service.Cancel(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) Check(c *gin.Context) {
	var req CheckRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	report, err := h.service.Check(c.Request.Context(), req.YachtID, req.StartTime, req.EndTime, req.ExcludeID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

func (h *Handler) AvailabilityForDate(c *gin.Context) {
	yachtID := c.Query("yacht_id")
	if _, err := uuid.Parse(yachtID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid yacht_id"})
		return
	}

	date, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}

	day, err := h.service.AvailabilityForDate(c.Request.Context(), yachtID, date)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewDayAvailabilityResponse(day))
}

func (h *Handler) FindSlots(c *gin.Context) {
	yachtID := c.Query("yacht_id")
	if _, err := uuid.Parse(yachtID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid yacht_id"})
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

	durationHours, err := strconv.Atoi(c.DefaultQuery("min_duration_hours", strconv.Itoa(defaultSlotDurationHours)))
	if err != nil || durationHours < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "min_duration_hours must be a positive integer"})
		return
	}

	slots, err := h.service.FindSlots(c.Request.Context(), yachtID, start, end, time.Duration(durationHours)*time.Hour)
	if err != nil {
		response.Error(c, err)
		return
	}

	if slots == nil {
		slots = []charter.Slot{}
	}
	c.JSON(http.StatusOK, gin.H{"slots": slots})
}

func (h *Handler) Suggest(c *gin.Context) {
	yachtID := c.Query("yacht_id")
	if _, err := uuid.Parse(yachtID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid yacht_id"})
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

	max, err := strconv.Atoi(c.DefaultQuery("max", strconv.Itoa(charter.DefaultMaxSuggestions)))
	if err != nil || max < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "max must be a positive integer"})
		return
	}

	suggestions, err := h.service.Suggest(c.Request.Context(), yachtID, start, end, max)
	if err != nil {
		response.Error(c, err)
		return
	}

	if suggestions == nil {
		suggestions = []charter.Slot{}
	}
	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}

func (h *Handler) Sitrep(c *gin.Context) {
	horizonDays, err := strconv.Atoi(c.DefaultQuery("horizon_days", strconv.Itoa(defaultSitrepHorizonDays)))
	if err != nil || horizonDays < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "horizon_days must be a positive integer"})
		return
	}

	sitrep, err := h.service.Sitrep(c.Request.Context(), time.Duration(horizonDays)*24*time.Hour)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewSitrepResponse(sitrep))
}
