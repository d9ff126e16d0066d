package charter

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/AndrewCorlett/yacht-charter-backend/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "booking not found")
	ErrYachtNotFound    = apperror.New(http.StatusNotFound, "yacht not found")
	ErrTimeConflict     = apperror.New(http.StatusConflict, "requested period conflicts with an existing booking")
	ErrInvalidTimeRange = apperror.New(http.StatusBadRequest, "start time must be before end time")
	ErrInvalidStatus    = apperror.New(http.StatusBadRequest, "invalid booking status")
	ErrInvalidCandidate = apperror.New(http.StatusBadRequest, "candidate booking is missing required fields")
	ErrInvalidDuration  = apperror.New(http.StatusBadRequest, "desired duration must be positive")
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

// ValidStatus reports whether s is one of the recognized booking statuses.
func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// Blocks reports whether a booking in this status occupies its yacht for
// conflict purposes. Cancelled bookings never block; completed charters are
// history and do not block new ones either.
func (s Status) Blocks() bool {
	return s != StatusCancelled && s != StatusCompleted
}

// Booking is one charter reservation. The interval is half-open
// [StartTime, EndTime): a charter ending at 17:00 and one starting at 17:00
// do not overlap. All times are stored in UTC.
type Booking struct {
	ID            string // UUID, immutable once assigned
	YachtID       string
	YachtName     string
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	StartTime     time.Time
	EndTime       time.Time
	Status        Status
	GuestCount    int
	TotalValue    int64 // cents
	DepositAmount int64 // cents
	Notes         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Duration returns the charter length. Non-positive for malformed records.
func (b *Booking) Duration() time.Duration {
	return b.EndTime.Sub(b.StartTime)
}

// Filter defines parameters for listing bookings.
type Filter struct {
	YachtID   string
	Status    string
	StartTime *time.Time // bookings ending after this time
	EndTime   *time.Time // bookings starting before this time
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}

// Slot is a free interval on a yacht.
type Slot struct {
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

func formatRange(start, end time.Time) string {
	return fmt.Sprintf("%s to %s",
		start.UTC().Format(time.RFC3339),
		end.UTC().Format(time.RFC3339))
}

func yachtLabel(name, id string) string {
	if strings.TrimSpace(name) != "" {
		return name
	}
	return id
}
