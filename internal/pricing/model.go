package pricing

import (
	"net/http"
	"time"

	"github.com/AndrewCorlett/yacht-charter-backend/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "rate not found")
	ErrInvalidDateRange = apperror.New(http.StatusBadRequest, "rate start date must be before end date")
	ErrInvalidRate      = apperror.New(http.StatusBadRequest, "daily rate cannot be negative")
	ErrRateOverlap      = apperror.New(http.StatusConflict, "rate period overlaps an existing rate for this yacht")
)

// SeasonalRate prices charters on one yacht during [StartDate, EndDate).
// Days outside every seasonal band fall back to the yacht's base daily rate.
type SeasonalRate struct {
	ID        string
	YachtID   string
	Name      string // e.g. "High season 2026"
	StartDate time.Time
	EndDate   time.Time
	DailyRate int64 // cents
	CreatedAt time.Time
}

// QuoteLine is one run of consecutive charter days priced at the same rate.
type QuoteLine struct {
	RateName  string    `json:"rate_name"`
	StartDate time.Time `json:"start_date"`
	Days      int       `json:"days"`
	DailyRate int64     `json:"daily_rate"`
	Amount    int64     `json:"amount"`
}

// Quote is a price estimate for a charter period.
type Quote struct {
	YachtID       string      `json:"yacht_id"`
	StartTime     time.Time   `json:"start_time"`
	EndTime       time.Time   `json:"end_time"`
	Days          int         `json:"days"`
	Lines         []QuoteLine `json:"lines"`
	TotalValue    int64       `json:"total_value"`
	DepositAmount int64       `json:"deposit_amount"`
}
