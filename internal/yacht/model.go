package yacht

import (
	"net/http"
	"time"

	"github.com/AndrewCorlett/yacht-charter-backend/internal/pkg/apperror"
)

var (
	ErrNotFound        = apperror.New(http.StatusNotFound, "yacht not found")
	ErrEmptyName       = apperror.New(http.StatusBadRequest, "name cannot be empty")
	ErrInvalidCapacity = apperror.New(http.StatusBadRequest, "capacity must be at least 1")
	ErrNameAlreadyUsed = apperror.New(http.StatusConflict, "a yacht with this name already exists")
)

// Yacht is a bookable vessel in the fleet. Capacity bounds the guest count
// the charter validator will accept.
type Yacht struct {
	ID            string // UUID
	Name          string
	Capacity      int
	HomePort      string
	BaseDailyRate int64 // cents; fallback when no seasonal rate matches
	PhotoPath     *string
	IsActive      bool
	CreatedAt     time.Time
}

// Filter defines parameters for listing yachts.
type Filter struct {
	HomePort   string
	ActiveOnly bool
	Page       int
	PageSize   int
}
