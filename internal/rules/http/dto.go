package http

import (
	"time"

	"github.com/AndrewCorlett/yacht-charter-backend/internal/rules"
)

type CreateBlackoutRequest struct {
	YachtID   string    `json:"yacht_id" binding:"required,uuid"`
	StartTime time.Time `json:"start_time" binding:"required"`
	EndTime   time.Time `json:"end_time" binding:"required"`
	Reason    string    `json:"reason" binding:"required"`
}

type BlackoutResponse struct {
	ID        string    `json:"id"`
	YachtID   string    `json:"yacht_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"created_at"`
}

func NewBlackoutResponse(b *rules.Blackout) BlackoutResponse {
	return BlackoutResponse{
		ID:        b.ID,
		YachtID:   b.YachtID,
		StartTime: b.StartTime,
		EndTime:   b.EndTime,
		Reason:    b.Reason,
		CreatedAt: b.CreatedAt,
	}
}
