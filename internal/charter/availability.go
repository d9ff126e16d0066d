package charter

import (
	"log"
	"sort"
	"time"

	"github.com/AndrewCorlett/yacht-charter-backend/internal/rules"
)

const (
	// DefaultMaxSuggestions bounds how many alternative slots are proposed
	// when a requested period is unavailable.
	DefaultMaxSuggestions = 3

	// suggestionWindow is how far around the requested period alternatives
	// are searched.
	suggestionWindow = 14 * 24 * time.Hour
)

// DayAvailability summarizes one calendar day for one yacht.
type DayAvailability struct {
	Date          time.Time  `json:"date"`
	IsAvailable   bool       `json:"is_available"`
	BookingsOnDay []*Booking `json:"-"`
	ConflictCount int        `json:"conflict_count"`
}

// IsYachtAvailable reports whether the yacht is free for [start, end).
// It builds a synthetic candidate and delegates to CheckConflicts; there is
// no separate overlap logic to drift out of sync.
func IsYachtAvailable(yachtID string, start, end time.Time, existing []*Booking, rs rules.RuleSet) (bool, error) {
	report, err := CheckConflicts(&Booking{
		YachtID:   yachtID,
		StartTime: start,
		EndTime:   end,
	}, existing, rs, "")
	if err != nil {
		return false, err
	}
	return report.IsAvailable, nil
}

// AvailabilityForDate treats date as the UTC day [00:00, next 00:00) and
// reports which bookings intersect it and whether the yacht is free.
func AvailabilityForDate(date time.Time, yachtID string, existing []*Booking, rs rules.RuleSet) (DayAvailability, error) {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := day.Add(24 * time.Hour)

	report, err := CheckConflicts(&Booking{
		YachtID:   yachtID,
		StartTime: day,
		EndTime:   dayEnd,
	}, existing, rs, "")
	if err != nil {
		return DayAvailability{}, err
	}

	var onDay []*Booking
	for _, b := range existing {
		if b.YachtID != yachtID {
			continue
		}
		if Overlaps(day, dayEnd, b.StartTime, b.EndTime) {
			onDay = append(onDay, b)
		}
	}

	return DayAvailability{
		Date:          day,
		IsAvailable:   report.IsAvailable,
		BookingsOnDay: onDay,
		ConflictCount: len(report.Conflicts),
	}, nil
}

// FindAvailableSlots returns the maximal free gaps on the yacht within
// [searchStart, searchEnd) that are at least minDuration long, in
// chronological order. Blackout periods count as busy time. The sweep is a
// single pass over the busy intervals sorted by start.
func FindAvailableSlots(yachtID string, searchStart, searchEnd time.Time, minDuration time.Duration, existing []*Booking, rs rules.RuleSet) ([]Slot, error) {
	if yachtID == "" {
		return nil, ErrInvalidCandidate
	}
	if !searchEnd.After(searchStart) {
		return nil, ErrInvalidTimeRange
	}
	if minDuration <= 0 {
		return nil, ErrInvalidDuration
	}

	type busy struct {
		start, end time.Time
	}
	var occupied []busy

	for _, b := range existing {
		if b.YachtID != yachtID || !b.Status.Blocks() {
			continue
		}
		if b.Duration() <= 0 {
			log.Printf("data anomaly: booking %s has non-positive duration, skipped in slot search", b.ID)
			continue
		}
		if !Overlaps(searchStart, searchEnd, b.StartTime, b.EndTime) {
			continue
		}
		occupied = append(occupied, busy{start: b.StartTime, end: b.EndTime})
	}

	for _, bl := range rs.BlackoutsFor(yachtID) {
		if !Overlaps(searchStart, searchEnd, bl.StartTime, bl.EndTime) {
			continue
		}
		occupied = append(occupied, busy{start: bl.StartTime, end: bl.EndTime})
	}

	sort.Slice(occupied, func(i, j int) bool {
		return occupied[i].start.Before(occupied[j].start)
	})

	var slots []Slot
	cursor := searchStart

	for _, o := range occupied {
		if o.start.After(cursor) {
			gapEnd := o.start
			if gapEnd.After(searchEnd) {
				gapEnd = searchEnd
			}
			if gapEnd.Sub(cursor) >= minDuration {
				slots = append(slots, Slot{StartTime: cursor, EndTime: gapEnd})
			}
		}
		if o.end.After(cursor) {
			cursor = o.end
		}
		if !cursor.Before(searchEnd) {
			break
		}
	}

	if cursor.Before(searchEnd) && searchEnd.Sub(cursor) >= minDuration {
		slots = append(slots, Slot{StartTime: cursor, EndTime: searchEnd})
	}

	return slots, nil
}

// SuggestAlternatives proposes up to max charter-length slots near the
// candidate's requested period, ranked by distance from the original start.
// An empty result means no alternatives exist in the search window; it is a
// normal outcome, not an error.
func SuggestAlternatives(candidate *Booking, existing []*Booking, rs rules.RuleSet, max int) ([]Slot, error) {
	if candidate == nil || candidate.YachtID == "" {
		return nil, ErrInvalidCandidate
	}
	if !candidate.EndTime.After(candidate.StartTime) {
		return nil, ErrInvalidTimeRange
	}
	if max <= 0 {
		max = DefaultMaxSuggestions
	}

	duration := candidate.Duration()
	windowStart := candidate.StartTime.Add(-suggestionWindow)
	windowEnd := candidate.EndTime.Add(suggestionWindow)

	gaps, err := FindAvailableSlots(candidate.YachtID, windowStart, windowEnd, duration, existing, rs)
	if err != nil {
		return nil, err
	}

	// Carve a charter-length interval out of each gap, positioned as close
	// to the originally requested start as the gap allows.
	suggestions := make([]Slot, 0, len(gaps))
	for _, g := range gaps {
		start := candidate.StartTime
		latest := g.EndTime.Add(-duration)
		if start.Before(g.StartTime) {
			start = g.StartTime
		}
		if start.After(latest) {
			start = latest
		}
		suggestions = append(suggestions, Slot{StartTime: start, EndTime: start.Add(duration)})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		di := absDuration(suggestions[i].StartTime.Sub(candidate.StartTime))
		dj := absDuration(suggestions[j].StartTime.Sub(candidate.StartTime))
		if di != dj {
			return di < dj
		}
		return suggestions[i].StartTime.Before(suggestions[j].StartTime)
	})

	if len(suggestions) > max {
		suggestions = suggestions[:max]
	}

	return suggestions, nil
}
