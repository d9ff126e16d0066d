package http

import (
	"time"

	"github.com/AndrewCorlett/yacht-charter-backend/internal/pricing"
)

type CreateRateRequest struct {
	YachtID   string    `json:"yacht_id" binding:"required,uuid"`
	Name      string    `json:"name" binding:"required"`
	StartDate time.Time `json:"start_date" binding:"required"`
	EndDate   time.Time `json:"end_date" binding:"required"`
	DailyRate int64     `json:"daily_rate" binding:"required,min=0"`
}

type RateResponse struct {
	ID        string    `json:"id"`
	YachtID   string    `json:"yacht_id"`
	Name      string    `json:"name"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	DailyRate int64     `json:"daily_rate"`
	CreatedAt time.Time `json:"created_at"`
}

func NewRateResponse(r *pricing.SeasonalRate) RateResponse {
	return RateResponse{
		ID:        r.ID,
		YachtID:   r.YachtID,
		Name:      r.Name,
		StartDate: r.StartDate,
		EndDate:   r.EndDate,
		DailyRate: r.DailyRate,
		CreatedAt: r.CreatedAt,
	}
}
