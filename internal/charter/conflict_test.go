package charter

import (
	"reflect"
	"testing"
	"time"

	"github.com/AndrewCorlett/yacht-charter-backend/internal/rules"
)

// Base date for testing: 2026-06-01
var base = time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

func at(day, hour int) time.Time {
	return base.AddDate(0, 0, day-1).Add(time.Duration(hour) * time.Hour)
}

func defaultRules() rules.RuleSet {
	return rules.RuleSet{
		MinDuration:           4 * time.Hour,
		MaxDuration:           30 * 24 * time.Hour,
		MinAdvanceNotice:      48 * time.Hour,
		RecommendedTurnaround: 4 * time.Hour,
		HighOverlapRatio:      0.5,
	}
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name         string
		aStart, aEnd time.Time
		bStart, bEnd time.Time
		want         bool
	}{
		{
			name:   "Disjoint intervals",
			aStart: at(1, 0), aEnd: at(2, 0),
			bStart: at(3, 0), bEnd: at(4, 0),
			want: false,
		},
		{
			name:   "Partial overlap",
			aStart: at(1, 0), aEnd: at(3, 0),
			bStart: at(2, 0), bEnd: at(4, 0),
			want: true,
		},
		{
			name:   "Contained interval",
			aStart: at(1, 0), aEnd: at(10, 0),
			bStart: at(3, 0), bEnd: at(4, 0),
			want: true,
		},
		{
			name:   "Shared endpoint does not overlap",
			aStart: at(1, 0), aEnd: at(3, 0),
			bStart: at(3, 0), bEnd: at(5, 0),
			want: false,
		},
		{
			name:   "Identical intervals",
			aStart: at(1, 0), aEnd: at(3, 0),
			bStart: at(1, 0), bEnd: at(3, 0),
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd)
			if got != tt.want {
				t.Errorf("Overlaps() = %v, want %v", got, tt.want)
			}
			// Overlap is symmetric
			if rev := Overlaps(tt.bStart, tt.bEnd, tt.aStart, tt.aEnd); rev != got {
				t.Errorf("Overlaps() is not symmetric: %v vs %v", got, rev)
			}
		})
	}
}

func TestCheckConflicts(t *testing.T) {
	rs := defaultRules()

	tests := []struct {
		name           string
		candidate      *Booking
		existing       []*Booking
		excludeID      string
		wantAvailable  bool
		wantSeverities []Severity
		wantErr        error
	}{
		{
			name: "Empty snapshot is available",
			candidate: &Booking{
				YachtID:   "yacht-1",
				StartTime: at(1, 10),
				EndTime:   at(3, 10),
			},
			wantAvailable: true,
		},
		{
			name: "Identical interval is a high conflict",
			candidate: &Booking{
				YachtID:   "yacht-1",
				StartTime: at(1, 10),
				EndTime:   at(3, 10),
			},
			existing: []*Booking{
				{ID: "b1", YachtID: "yacht-1", Status: StatusConfirmed, StartTime: at(1, 10), EndTime: at(3, 10)},
			},
			wantAvailable:  false,
			wantSeverities: []Severity{SeverityHigh},
		},
		{
			name: "Small partial overlap is medium",
			candidate: &Booking{
				YachtID:   "yacht-1",
				StartTime: at(1, 0),
				EndTime:   at(8, 0), // 7 days
			},
			existing: []*Booking{
				// Overlaps days 6..8: 2 of 7 days of the shorter (<50%)
				{ID: "b1", YachtID: "yacht-1", Status: StatusConfirmed, StartTime: at(6, 0), EndTime: at(14, 0)},
			},
			wantAvailable:  false,
			wantSeverities: []Severity{SeverityMedium},
		},
		{
			name: "Overlap at exactly the ratio threshold is high",
			candidate: &Booking{
				YachtID:   "yacht-1",
				StartTime: at(1, 0),
				EndTime:   at(5, 0), // 4 days
			},
			existing: []*Booking{
				// Overlaps days 3..5: exactly half of the shorter interval
				{ID: "b1", YachtID: "yacht-1", Status: StatusConfirmed, StartTime: at(3, 0), EndTime: at(9, 0)},
			},
			wantAvailable:  false,
			wantSeverities: []Severity{SeverityHigh},
		},
		{
			name: "Different yacht never conflicts",
			candidate: &Booking{
				YachtID:   "yacht-1",
				StartTime: at(1, 10),
				EndTime:   at(3, 10),
			},
			existing: []*Booking{
				{ID: "b1", YachtID: "yacht-2", Status: StatusConfirmed, StartTime: at(1, 10), EndTime: at(3, 10)},
			},
			wantAvailable: true,
		},
		{
			name: "Cancelled and completed bookings do not block",
			candidate: &Booking{
				YachtID:   "yacht-1",
				StartTime: at(1, 10),
				EndTime:   at(3, 10),
			},
			existing: []*Booking{
				{ID: "b1", YachtID: "yacht-1", Status: StatusCancelled, StartTime: at(1, 10), EndTime: at(3, 10)},
				{ID: "b2", YachtID: "yacht-1", Status: StatusCompleted, StartTime: at(1, 10), EndTime: at(3, 10)},
			},
			wantAvailable: true,
		},
		{
			name: "Edited booking is not compared against itself",
			candidate: &Booking{
				ID:        "b1",
				YachtID:   "yacht-1",
				StartTime: at(1, 10),
				EndTime:   at(3, 10),
			},
			existing: []*Booking{
				{ID: "b1", YachtID: "yacht-1", Status: StatusConfirmed, StartTime: at(1, 10), EndTime: at(3, 10)},
			},
			excludeID:     "b1",
			wantAvailable: true,
		},
		{
			name: "Back-to-back within recommended turnaround is advisory",
			candidate: &Booking{
				YachtID:   "yacht-1",
				StartTime: at(3, 10),
				EndTime:   at(5, 10),
			},
			existing: []*Booking{
				{ID: "b1", YachtID: "yacht-1", Status: StatusConfirmed, StartTime: at(1, 10), EndTime: at(3, 10)},
			},
			wantAvailable:  true,
			wantSeverities: []Severity{SeverityLow},
		},
		{
			name: "Gap beyond recommended turnaround is clean",
			candidate: &Booking{
				YachtID:   "yacht-1",
				StartTime: at(3, 15),
				EndTime:   at(5, 15),
			},
			existing: []*Booking{
				{ID: "b1", YachtID: "yacht-1", Status: StatusConfirmed, StartTime: at(1, 10), EndTime: at(3, 10)},
			},
			wantAvailable: true,
		},
		{
			name: "Zero-duration booking in snapshot is skipped",
			candidate: &Booking{
				YachtID:   "yacht-1",
				StartTime: at(1, 10),
				EndTime:   at(3, 10),
			},
			existing: []*Booking{
				{ID: "bad", YachtID: "yacht-1", Status: StatusConfirmed, StartTime: at(2, 0), EndTime: at(2, 0)},
			},
			wantAvailable: true,
		},
		{
			name:      "Nil candidate is a contract error",
			candidate: nil,
			wantErr:   ErrInvalidCandidate,
		},
		{
			name: "Inverted time range is a contract error",
			candidate: &Booking{
				YachtID:   "yacht-1",
				StartTime: at(3, 10),
				EndTime:   at(1, 10),
			},
			wantErr: ErrInvalidTimeRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report, err := CheckConflicts(tt.candidate, tt.existing, rs, tt.excludeID)
			if tt.wantErr != nil {
				if err != tt.wantErr {
					t.Fatalf("CheckConflicts() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("CheckConflicts() unexpected error: %v", err)
			}

			if report.IsAvailable != tt.wantAvailable {
				t.Errorf("IsAvailable = %v, want %v", report.IsAvailable, tt.wantAvailable)
			}

			var severities []Severity
			for _, c := range report.Conflicts {
				severities = append(severities, c.Severity)
			}
			if !reflect.DeepEqual(severities, tt.wantSeverities) {
				t.Errorf("severities = %v, want %v", severities, tt.wantSeverities)
			}
		})
	}
}

func TestCheckConflictsIsDeterministic(t *testing.T) {
	rs := defaultRules()
	candidate := &Booking{
		YachtID:   "yacht-1",
		StartTime: at(5, 0),
		EndTime:   at(9, 0),
	}
	existing := []*Booking{
		{ID: "b1", YachtID: "yacht-1", Status: StatusConfirmed, StartTime: at(4, 0), EndTime: at(6, 0)},
		{ID: "b2", YachtID: "yacht-1", Status: StatusPending, StartTime: at(8, 0), EndTime: at(12, 0)},
		{ID: "b3", YachtID: "yacht-1", Status: StatusConfirmed, StartTime: at(1, 0), EndTime: at(2, 0)},
	}

	first, err := CheckConflicts(candidate, existing, rs, "")
	if err != nil {
		t.Fatalf("CheckConflicts() error: %v", err)
	}
	second, err := CheckConflicts(candidate, existing, rs, "")
	if err != nil {
		t.Fatalf("CheckConflicts() error: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated checks differ:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestCheckConflictsOrdering(t *testing.T) {
	rs := defaultRules()
	candidate := &Booking{
		YachtID:   "yacht-1",
		StartTime: at(10, 0),
		EndTime:   at(14, 0),
	}
	existing := []*Booking{
		// Advisory: ends 2h before the candidate starts
		{ID: "near-low", YachtID: "yacht-1", Status: StatusConfirmed, StartTime: at(8, 0), EndTime: at(9, 22)},
		// High: fully covers the candidate
		{ID: "far-high", YachtID: "yacht-1", Status: StatusConfirmed, StartTime: at(9, 0), EndTime: at(15, 0)},
		// Medium: overlaps the last day only (1 of 4 days)
		{ID: "mid", YachtID: "yacht-1", Status: StatusConfirmed, StartTime: at(13, 0), EndTime: at(20, 0)},
	}

	report, err := CheckConflicts(candidate, existing, rs, "")
	if err != nil {
		t.Fatalf("CheckConflicts() error: %v", err)
	}

	var ids []string
	for _, c := range report.Conflicts {
		ids = append(ids, c.BookingID)
	}
	want := []string{"far-high", "mid", "near-low"}
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("conflict order = %v, want %v", ids, want)
	}
}

func TestCheckConflictsNonTransitivity(t *testing.T) {
	// A overlaps B and B overlaps C, yet A is clean against C.
	rs := defaultRules()
	a := &Booking{YachtID: "yacht-1", StartTime: at(1, 0), EndTime: at(3, 0)}
	b := &Booking{ID: "b", YachtID: "yacht-1", Status: StatusConfirmed, StartTime: at(2, 0), EndTime: at(5, 0)}
	c := &Booking{ID: "c", YachtID: "yacht-1", Status: StatusConfirmed, StartTime: at(4, 12), EndTime: at(7, 0)}

	ab, err := CheckConflicts(a, []*Booking{b}, rs, "")
	if err != nil {
		t.Fatalf("CheckConflicts(a vs b) error: %v", err)
	}
	if ab.IsAvailable {
		t.Errorf("a vs b: want conflict")
	}

	bc, err := CheckConflicts(b, []*Booking{c}, rs, "")
	if err != nil {
		t.Fatalf("CheckConflicts(b vs c) error: %v", err)
	}
	if bc.IsAvailable {
		t.Errorf("b vs c: want conflict")
	}

	ac, err := CheckConflicts(a, []*Booking{c}, rs, "")
	if err != nil {
		t.Fatalf("CheckConflicts(a vs c) error: %v", err)
	}
	if !ac.IsAvailable {
		t.Errorf("a vs c: want available, got conflicts %+v", ac.Conflicts)
	}
}

func TestCheckConflictsMinTurnaround(t *testing.T) {
	rs := defaultRules()
	rs.MinTurnaround = 4 * time.Hour
	rs.RecommendedTurnaround = 8 * time.Hour

	candidate := &Booking{
		YachtID:   "yacht-1",
		StartTime: at(3, 12),
		EndTime:   at(5, 12),
	}
	existing := []*Booking{
		// Ends 2h before the candidate starts, inside the hard minimum
		{ID: "b1", YachtID: "yacht-1", Status: StatusConfirmed, StartTime: at(1, 10), EndTime: at(3, 10)},
	}

	report, err := CheckConflicts(candidate, existing, rs, "")
	if err != nil {
		t.Fatalf("CheckConflicts() error: %v", err)
	}
	if report.IsAvailable {
		t.Errorf("hard turnaround violation should block")
	}
	if len(report.Conflicts) != 1 || report.Conflicts[0].Severity != SeverityHigh {
		t.Errorf("conflicts = %+v, want one high conflict", report.Conflicts)
	}
}

func TestCheckConflictsPendingSoftens(t *testing.T) {
	rs := defaultRules()
	rs.TreatPendingAsSoft = true

	candidate := &Booking{
		YachtID:   "yacht-1",
		StartTime: at(1, 10),
		EndTime:   at(3, 10),
	}
	existing := []*Booking{
		{ID: "b1", YachtID: "yacht-1", Status: StatusPending, StartTime: at(1, 10), EndTime: at(3, 10)},
	}

	report, err := CheckConflicts(candidate, existing, rs, "")
	if err != nil {
		t.Fatalf("CheckConflicts() error: %v", err)
	}
	if !report.IsAvailable {
		t.Errorf("pending conflict should be advisory when softened")
	}
	if len(report.Conflicts) != 1 || report.Conflicts[0].Severity != SeverityLow {
		t.Errorf("conflicts = %+v, want one low conflict", report.Conflicts)
	}
}

func TestCheckConflictsBlackout(t *testing.T) {
	rs := defaultRules()
	rs.Blackouts = []rules.Blackout{
		{ID: "bl1", YachtID: "yacht-1", Reason: "annual refit", StartTime: at(2, 0), EndTime: at(4, 0)},
		{ID: "bl2", YachtID: "yacht-2", Reason: "owner use", StartTime: at(2, 0), EndTime: at(4, 0)},
	}

	candidate := &Booking{
		YachtID:   "yacht-1",
		StartTime: at(3, 0),
		EndTime:   at(6, 0),
	}

	report, err := CheckConflicts(candidate, nil, rs, "")
	if err != nil {
		t.Fatalf("CheckConflicts() error: %v", err)
	}
	if report.IsAvailable {
		t.Errorf("blackout overlap should block")
	}
	if len(report.Conflicts) != 1 {
		t.Fatalf("conflicts = %+v, want exactly one (other yacht's blackout ignored)", report.Conflicts)
	}
	if report.Conflicts[0].Severity != SeverityHigh || report.Conflicts[0].BookingID != "" {
		t.Errorf("blackout conflict = %+v, want high severity with empty booking id", report.Conflicts[0])
	}
}
