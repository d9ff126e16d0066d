package http

import (
	"time"

	"github.com/AndrewCorlett/yacht-charter-backend/internal/pkg/request"
	"github.com/AndrewCorlett/yacht-charter-backend/internal/yacht"
)

// ListYachtsRequest defines query parameters for listing yachts.
type ListYachtsRequest struct {
	request.ListParams
	HomePort   string `form:"home_port"`
	ActiveOnly bool   `form:"active_only"`
}

type CreateYachtRequest struct {
	Name          string `json:"name" binding:"required"`
	Capacity      int    `json:"capacity" binding:"required,min=1"`
	HomePort      string `json:"home_port"`
	BaseDailyRate int64  `json:"base_daily_rate" binding:"omitempty,min=0"`
}

type UpdateYachtRequest struct {
	Name          *string `json:"name"`
	Capacity      *int    `json:"capacity" binding:"omitempty,min=1"`
	HomePort      *string `json:"home_port"`
	BaseDailyRate *int64  `json:"base_daily_rate" binding:"omitempty,min=0"`
	IsActive      *bool   `json:"is_active"`
}

type YachtResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Capacity      int       `json:"capacity"`
	HomePort      string    `json:"home_port"`
	BaseDailyRate int64     `json:"base_daily_rate"`
	PhotoPath     *string   `json:"photo_path,omitempty"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
}

func NewYachtResponse(y *yacht.Yacht) YachtResponse {
	return YachtResponse{
		ID:            y.ID,
		Name:          y.Name,
		Capacity:      y.Capacity,
		HomePort:      y.HomePort,
		BaseDailyRate: y.BaseDailyRate,
		PhotoPath:     y.PhotoPath,
		IsActive:      y.IsActive,
		CreatedAt:     y.CreatedAt,
	}
}

// YachtTag is the minimal yacht reference embedded in other responses.
type YachtTag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
