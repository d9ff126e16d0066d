package charter

import (
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/AndrewCorlett/yacht-charter-backend/internal/rules"
)

// Severity grades how strongly a conflict blocks a candidate booking.
// High and medium conflicts block; low conflicts are advisory.
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

var severityRank = map[Severity]int{
	SeverityHigh:   3,
	SeverityMedium: 2,
	SeverityLow:    1,
}

// Conflict describes one clash between a candidate and an existing booking
// or blackout period. BookingID is empty for blackout conflicts.
type Conflict struct {
	BookingID string    `json:"booking_id,omitempty"`
	Severity  Severity  `json:"severity"`
	Reason    string    `json:"reason"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

// ConflictReport is the result of checking one candidate against a snapshot.
// Conflicts are ordered by severity (high first), then by temporal proximity
// to the candidate's start.
type ConflictReport struct {
	IsAvailable bool       `json:"is_available"`
	Conflicts   []Conflict `json:"conflicts"`
	Suggestions []Slot     `json:"suggestions,omitempty"`
}

// Overlaps is the single overlap primitive for half-open intervals [s, e).
// Two intervals overlap iff each starts before the other ends; intervals
// that merely share an endpoint do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// overlapDuration returns the length of the intersection of two intervals,
// zero when they do not overlap.
func overlapDuration(aStart, aEnd, bStart, bEnd time.Time) time.Duration {
	start := aStart
	if bStart.After(start) {
		start = bStart
	}
	end := aEnd
	if bEnd.Before(end) {
		end = bEnd
	}
	if !end.After(start) {
		return 0
	}
	return end.Sub(start)
}

// gapBetween returns the distance between two disjoint intervals, negative
// when they overlap.
func gapBetween(aStart, aEnd, bStart, bEnd time.Time) time.Duration {
	if !aEnd.After(bStart) {
		return bStart.Sub(aEnd)
	}
	if !bEnd.After(aStart) {
		return aStart.Sub(bEnd)
	}
	return -1
}

// CheckConflicts tests the candidate against every booking in the snapshot
// plus the rule set's blackout periods, on the candidate's yacht only.
// excludeID skips one booking id so an edited booking is not compared
// against itself. The snapshot is never mutated; calling twice with the same
// inputs yields the same report.
//
// A structurally broken candidate (missing yacht, zero or inverted times) is
// a caller bug and returns an error; domain outcomes are always reported as
// values in the ConflictReport.
func CheckConflicts(candidate *Booking, existing []*Booking, rs rules.RuleSet, excludeID string) (ConflictReport, error) {
	if candidate == nil || candidate.YachtID == "" {
		return ConflictReport{}, ErrInvalidCandidate
	}
	if candidate.StartTime.IsZero() || candidate.EndTime.IsZero() {
		return ConflictReport{}, ErrInvalidCandidate
	}
	if !candidate.EndTime.After(candidate.StartTime) {
		return ConflictReport{}, ErrInvalidTimeRange
	}

	var conflicts []Conflict

	for _, b := range existing {
		if b.YachtID != candidate.YachtID {
			continue
		}
		if !b.Status.Blocks() {
			continue
		}
		if excludeID != "" && b.ID == excludeID {
			continue
		}
		if b.Duration() <= 0 {
			// Degenerate data in the snapshot; skip rather than abort.
			log.Printf("data anomaly: booking %s has non-positive duration, skipped in conflict check", b.ID)
			continue
		}

		if c, ok := classify(candidate, b, rs); ok {
			conflicts = append(conflicts, c)
		}
	}

	for _, bl := range rs.BlackoutsFor(candidate.YachtID) {
		if !Overlaps(candidate.StartTime, candidate.EndTime, bl.StartTime, bl.EndTime) {
			continue
		}
		reason := fmt.Sprintf("yacht %s is unavailable (%s) from %s",
			yachtLabel(candidate.YachtName, candidate.YachtID), bl.Reason,
			formatRange(bl.StartTime, bl.EndTime))
		conflicts = append(conflicts, Conflict{
			Severity:  SeverityHigh,
			Reason:    reason,
			StartTime: bl.StartTime,
			EndTime:   bl.EndTime,
		})
	}

	sortConflicts(conflicts, candidate.StartTime)

	report := ConflictReport{
		IsAvailable: true,
		Conflicts:   conflicts,
	}
	for _, c := range conflicts {
		if c.Severity == SeverityHigh || c.Severity == SeverityMedium {
			report.IsAvailable = false
			break
		}
	}

	return report, nil
}

// classify grades the relationship between the candidate and one blocking
// booking on the same yacht. Returns false when the pair is unremarkable
// (disjoint and outside every turnaround window).
func classify(candidate, b *Booking, rs rules.RuleSet) (Conflict, bool) {
	label := yachtLabel(b.YachtName, b.YachtID)

	overlap := overlapDuration(candidate.StartTime, candidate.EndTime, b.StartTime, b.EndTime)
	if overlap > 0 {
		shorter := candidate.Duration()
		if b.Duration() < shorter {
			shorter = b.Duration()
		}
		ratio := float64(overlap) / float64(shorter)

		severity := SeverityMedium
		if ratio >= rs.HighOverlapRatio {
			severity = SeverityHigh
		}
		severity = softenForPending(severity, b, rs)

		return Conflict{
			BookingID: b.ID,
			Severity:  severity,
			Reason: fmt.Sprintf("overlaps booking %s on yacht %s (%s), %.0f%% of the shorter charter",
				b.ID, label, formatRange(b.StartTime, b.EndTime), ratio*100),
			StartTime: b.StartTime,
			EndTime:   b.EndTime,
		}, true
	}

	gap := gapBetween(candidate.StartTime, candidate.EndTime, b.StartTime, b.EndTime)

	if rs.MinTurnaround > 0 && gap >= 0 && gap < rs.MinTurnaround {
		severity := softenForPending(SeverityHigh, b, rs)
		return Conflict{
			BookingID: b.ID,
			Severity:  severity,
			Reason: fmt.Sprintf("only %s turnaround from booking %s on yacht %s (%s), minimum is %s",
				gap, b.ID, label, formatRange(b.StartTime, b.EndTime), rs.MinTurnaround),
			StartTime: b.StartTime,
			EndTime:   b.EndTime,
		}, true
	}

	if rs.RecommendedTurnaround > 0 && gap >= 0 && gap < rs.RecommendedTurnaround {
		return Conflict{
			BookingID: b.ID,
			Severity:  SeverityLow,
			Reason: fmt.Sprintf("only %s turnaround from booking %s on yacht %s (%s), %s recommended",
				gap, b.ID, label, formatRange(b.StartTime, b.EndTime), rs.RecommendedTurnaround),
			StartTime: b.StartTime,
			EndTime:   b.EndTime,
		}, true
	}

	return Conflict{}, false
}

// softenForPending downgrades conflicts against tentative bookings to
// advisory when the rule set opts in.
func softenForPending(severity Severity, b *Booking, rs rules.RuleSet) Severity {
	if rs.TreatPendingAsSoft && b.Status == StatusPending {
		return SeverityLow
	}
	return severity
}

func sortConflicts(conflicts []Conflict, candidateStart time.Time) {
	sort.SliceStable(conflicts, func(i, j int) bool {
		ri, rj := severityRank[conflicts[i].Severity], severityRank[conflicts[j].Severity]
		if ri != rj {
			return ri > rj
		}
		di := absDuration(candidateStart.Sub(conflicts[i].StartTime))
		dj := absDuration(candidateStart.Sub(conflicts[j].StartTime))
		return di < dj
	})
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
