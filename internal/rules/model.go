package rules

import (
	"net/http"
	"time"

	"github.com/AndrewCorlett/yacht-charter-backend/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "blackout period not found")
	ErrInvalidTimeRange = apperror.New(http.StatusBadRequest, "start time must be before end time")
)

// RuleSet is the read-only business-rule configuration consumed by the
// charter core. Duration limits and thresholds come from deployment config;
// blackout periods come from the database.
type RuleSet struct {
	MinDuration           time.Duration
	MaxDuration           time.Duration
	MinAdvanceNotice      time.Duration
	MinTurnaround         time.Duration // violating this blocks a booking
	RecommendedTurnaround time.Duration // violating this is advisory only
	HighOverlapRatio      float64       // overlap/shorter-interval ratio at which a conflict is high severity
	TreatPendingAsSoft    bool          // downgrade conflicts against pending bookings to advisory
	Blackouts             []Blackout
}

// Blackout is a period during which a yacht cannot be chartered
// (maintenance, refit, owner use).
type Blackout struct {
	ID        string
	YachtID   string
	StartTime time.Time
	EndTime   time.Time
	Reason    string
	CreatedAt time.Time
}

// BlackoutsFor returns the blackout periods that apply to the given yacht.
func (rs RuleSet) BlackoutsFor(yachtID string) []Blackout {
	var out []Blackout
	for _, b := range rs.Blackouts {
		if b.YachtID == yachtID {
			out = append(out, b)
		}
	}
	return out
}
