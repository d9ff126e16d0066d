package charter

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/AndrewCorlett/yacht-charter-backend/internal/rules"
)

// ValidationResult collects every field failure of one booking. Validation
// failures are domain data, not errors: the caller renders them as form
// messages.
type ValidationResult struct {
	IsValid bool              `json:"is_valid"`
	Errors  map[string]string `json:"errors"`
}

func (r *ValidationResult) addError(field, message string) {
	if r.Errors == nil {
		r.Errors = make(map[string]string)
	}
	// Keep the first failure per field
	if _, exists := r.Errors[field]; !exists {
		r.Errors[field] = message
	}
	r.IsValid = false
}

var (
	// Permissive RFC-5322-shaped check; real verification happens by mailing.
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	// International phone numbers with common separators.
	phonePattern = regexp.MustCompile(`^\+?[0-9][0-9 .()\-]{5,18}[0-9]$`)
)

// Validate runs every applicable business-rule check on the booking and
// collects all failures keyed by field name. Checks are independent and do
// not short-circuit, except where a later check depends on an earlier valid
// value (the duration and advance-notice checks are skipped when the time
// range itself is malformed).
//
// yachtCapacity is supplied by the caller; pass 0 when unknown to skip the
// upper guest bound. The advance-notice rule applies only to bookings still
// being made (pending or no status yet), never to historical records.
func Validate(b *Booking, rs rules.RuleSet, yachtCapacity int, now time.Time) ValidationResult {
	result := ValidationResult{IsValid: true}

	if b == nil {
		result.addError("booking", "booking is required")
		return result
	}

	if b.YachtID == "" {
		result.addError("yacht_id", "yacht is required")
	}

	if strings.TrimSpace(b.CustomerName) == "" {
		result.addError("customer_name", "customer name is required")
	}

	timeRangeValid := true
	switch {
	case b.StartTime.IsZero():
		result.addError("start_time", "start time is required")
		timeRangeValid = false
	case b.EndTime.IsZero():
		result.addError("end_time", "end time is required")
		timeRangeValid = false
	case !b.EndTime.After(b.StartTime):
		result.addError("end_time", "end time must be after start time")
		timeRangeValid = false
	}

	if timeRangeValid {
		duration := b.Duration()
		if rs.MinDuration > 0 && duration < rs.MinDuration {
			result.addError("duration", fmt.Sprintf("charter must be at least %s, got %s", rs.MinDuration, duration))
		}
		if rs.MaxDuration > 0 && duration > rs.MaxDuration {
			result.addError("duration", fmt.Sprintf("charter must be at most %s, got %s", rs.MaxDuration, duration))
		}

		if newBooking(b) && rs.MinAdvanceNotice > 0 {
			if b.StartTime.Sub(now) < rs.MinAdvanceNotice {
				result.addError("start_time", fmt.Sprintf("bookings require at least %s advance notice", rs.MinAdvanceNotice))
			}
		}
	}

	if b.GuestCount < 1 {
		result.addError("guest_count", "at least one guest is required")
	} else if yachtCapacity > 0 && b.GuestCount > yachtCapacity {
		result.addError("guest_count", fmt.Sprintf("guest count %d exceeds yacht capacity %d", b.GuestCount, yachtCapacity))
	}

	if b.TotalValue < 0 {
		result.addError("total_value", "total value cannot be negative")
	}
	switch {
	case b.DepositAmount < 0:
		result.addError("deposit_amount", "deposit cannot be negative")
	case b.TotalValue >= 0 && b.DepositAmount > b.TotalValue:
		result.addError("deposit_amount", "deposit cannot exceed total value")
	}

	if b.CustomerEmail != "" && !emailPattern.MatchString(b.CustomerEmail) {
		result.addError("customer_email", "invalid email address")
	}
	if b.CustomerPhone != "" && !phonePattern.MatchString(b.CustomerPhone) {
		result.addError("customer_phone", "invalid phone number")
	}

	return result
}

// newBooking reports whether the record is still being made, as opposed to a
// historical record being re-validated on load or edit.
func newBooking(b *Booking) bool {
	return b.Status == "" || b.Status == StatusPending
}
