package http

import (
	"time"

	"github.com/AndrewCorlett/yacht-charter-backend/internal/charter"
	"github.com/AndrewCorlett/yacht-charter-backend/internal/pkg/request"
	yachtHttp "github.com/AndrewCorlett/yacht-charter-backend/internal/yacht/http"
)

// ListBookingsRequest defines query parameters for listing bookings.
type ListBookingsRequest struct {
	request.ListParams
	YachtID   string     `form:"yacht_id" binding:"omitempty,uuid"`
	Status    string     `form:"status" binding:"omitempty,oneof=pending confirmed cancelled completed"`
	From      *time.Time `form:"from" time_format:"2006-01-02T15:04:05Z07:00"`
	To        *time.Time `form:"to" time_format:"2006-01-02T15:04:05Z07:00"`
	SortBy    string     `form:"sort_by" binding:"omitempty,oneof=start_time end_time created_at status"`
	SortOrder string     `form:"sort_order" binding:"omitempty,oneof=asc desc"`
}

type BookingResponse struct {
	ID            string              `json:"id"`
	Yacht         yachtHttp.YachtTag  `json:"yacht"`
	CustomerName  string              `json:"customer_name"`
	CustomerEmail string              `json:"customer_email,omitempty"`
	CustomerPhone string              `json:"customer_phone,omitempty"`
	StartTime     time.Time           `json:"start_time"`
	EndTime       time.Time           `json:"end_time"`
	Status        string              `json:"status"`
	GuestCount    int                 `json:"guest_count"`
	TotalValue    int64               `json:"total_value"`
	DepositAmount int64               `json:"deposit_amount"`
	Notes         string              `json:"notes,omitempty"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

func NewBookingResponse(b *charter.Booking) BookingResponse {
	return BookingResponse{
		ID:            b.ID,
		Yacht:         yachtHttp.YachtTag{ID: b.YachtID, Name: b.YachtName},
		CustomerName:  b.CustomerName,
		CustomerEmail: b.CustomerEmail,
		CustomerPhone: b.CustomerPhone,
		StartTime:     b.StartTime,
		EndTime:       b.EndTime,
		Status:        string(b.Status),
		GuestCount:    b.GuestCount,
		TotalValue:    b.TotalValue,
		DepositAmount: b.DepositAmount,
		Notes:         b.Notes,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

type CreateBookingRequest struct {
	YachtID       string    `json:"yacht_id" binding:"required,uuid"`
	CustomerName  string    `json:"customer_name" binding:"required"`
	CustomerEmail string    `json:"customer_email"`
	CustomerPhone string    `json:"customer_phone"`
	StartTime     time.Time `json:"start_time" binding:"required"`
	EndTime       time.Time `json:"end_time" binding:"required"`
	GuestCount    int       `json:"guest_count" binding:"required,min=1"`
	TotalValue    int64     `json:"total_value" binding:"omitempty,min=0"`
	DepositAmount int64     `json:"deposit_amount" binding:"omitempty,min=0"`
	Notes         string    `json:"notes"`
}

type UpdateBookingRequest struct {
	CustomerName  *string    `json:"customer_name"`
	CustomerEmail *string    `json:"customer_email"`
	CustomerPhone *string    `json:"customer_phone"`
	StartTime     *time.Time `json:"start_time"`
	EndTime       *time.Time `json:"end_time"`
	Status        *string    `json:"status" binding:"omitempty,oneof=pending confirmed cancelled completed"`
	GuestCount    *int       `json:"guest_count" binding:"omitempty,min=1"`
	TotalValue    *int64     `json:"total_value" binding:"omitempty,min=0"`
	DepositAmount *int64     `json:"deposit_amount" binding:"omitempty,min=0"`
	Notes         *string    `json:"notes"`
}

// Validate performs custom validation for UpdateBookingRequest.
func (r *UpdateBookingRequest) Validate() error {
	if r.StartTime != nil && r.EndTime != nil {
		if !r.EndTime.After(*r.StartTime) {
			return charter.ErrInvalidTimeRange
		}
	}
	return nil
}

type MoveBookingRequest struct {
	YachtID string `json:"yacht_id" binding:"required,uuid"`
}

// CheckRequest defines query parameters for the dry-run conflict check.
type CheckRequest struct {
	YachtID   string    `form:"yacht_id" binding:"required,uuid"`
	StartTime time.Time `form:"start" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
	EndTime   time.Time `form:"end" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
	ExcludeID string    `form:"exclude_id" binding:"omitempty,uuid"`
}

type DayAvailabilityResponse struct {
	Date          time.Time         `json:"date"`
	IsAvailable   bool              `json:"is_available"`
	Bookings      []BookingResponse `json:"bookings"`
	ConflictCount int               `json:"conflict_count"`
}

func NewDayAvailabilityResponse(d charter.DayAvailability) DayAvailabilityResponse {
	bookings := make([]BookingResponse, len(d.BookingsOnDay))
	for i, b := range d.BookingsOnDay {
		bookings[i] = NewBookingResponse(b)
	}
	return DayAvailabilityResponse{
		Date:          d.Date,
		IsAvailable:   d.IsAvailable,
		Bookings:      bookings,
		ConflictCount: d.ConflictCount,
	}
}

type SitrepResponse struct {
	GeneratedAt   time.Time         `json:"generated_at"`
	AtSea         []BookingResponse `json:"at_sea"`
	DepartingSoon []BookingResponse `json:"departing_soon"`
	ReturningSoon []BookingResponse `json:"returning_soon"`
	PendingCount  int               `json:"pending_count"`
}

func NewSitrepResponse(s charter.Sitrep) SitrepResponse {
	toResponses := func(bookings []*charter.Booking) []BookingResponse {
		out := make([]BookingResponse, len(bookings))
		for i, b := range bookings {
			out[i] = NewBookingResponse(b)
		}
		return out
	}
	return SitrepResponse{
		GeneratedAt:   s.GeneratedAt,
		AtSea:         toResponses(s.AtSea),
		DepartingSoon: toResponses(s.DepartingSoon),
		ReturningSoon: toResponses(s.ReturningSoon),
		PendingCount:  s.PendingCount,
	}
}
