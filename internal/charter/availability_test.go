package charter

import (
	"reflect"
	"testing"
	"time"

	"github.com/AndrewCorlett/yacht-charter-backend/internal/rules"
)

func TestFindAvailableSlots(t *testing.T) {
	rs := defaultRules()

	tests := []struct {
		name        string
		yachtID     string
		searchStart time.Time
		searchEnd   time.Time
		minDuration time.Duration
		existing    []*Booking
		blackouts   []rules.Blackout
		want        []Slot
		wantErr     error
	}{
		{
			name:        "No bookings, whole window free",
			yachtID:     "yacht-1",
			searchStart: at(1, 0),
			searchEnd:   at(20, 0),
			minDuration: 4 * 24 * time.Hour,
			want: []Slot{
				{StartTime: at(1, 0), EndTime: at(20, 0)},
			},
		},
		{
			name:        "Two bookings leave two long gaps",
			yachtID:     "yacht-1",
			searchStart: at(1, 0),
			searchEnd:   at(20, 0),
			minDuration: 4 * 24 * time.Hour,
			existing: []*Booking{
				{ID: "b1", YachtID: "yacht-1", Status: StatusConfirmed, StartTime: at(1, 0), EndTime: at(3, 0)},
				{ID: "b2", YachtID: "yacht-1", Status: StatusConfirmed, StartTime: at(10, 0), EndTime: at(12, 0)},
			},
			want: []Slot{
				{StartTime: at(3, 0), EndTime: at(10, 0)},
				{StartTime: at(12, 0), EndTime: at(20, 0)},
			},
		},
		{
			name:        "Short gap is filtered out",
			yachtID:     "yacht-1",
			searchStart: at(1, 0),
			searchEnd:   at(20, 0),
			minDuration: 8 * 24 * time.Hour,
			existing: []*Booking{
				{ID: "b1", YachtID: "yacht-1", Status: StatusConfirmed, StartTime: at(1, 0), EndTime: at(3, 0)},
				{ID: "b2", YachtID: "yacht-1", Status: StatusConfirmed, StartTime: at(10, 0), EndTime: at(12, 0)},
			},
			want: []Slot{
				{StartTime: at(12, 0), EndTime: at(20, 0)},
			},
		},
		{
			name:        "Booking straddling the window start clips the first gap",
			yachtID:     "yacht-1",
			searchStart: at(5, 0),
			searchEnd:   at(20, 0),
			minDuration: 24 * time.Hour,
			existing: []*Booking{
				{ID: "b1", YachtID: "yacht-1", Status: StatusConfirmed, StartTime: at(1, 0), EndTime: at(8, 0)},
			},
			want: []Slot{
				{StartTime: at(8, 0), EndTime: at(20, 0)},
			},
		},
		{
			name:        "Other yachts and cancelled bookings are ignored",
			yachtID:     "yacht-1",
			searchStart: at(1, 0),
			searchEnd:   at(10, 0),
			minDuration: 24 * time.Hour,
			existing: []*Booking{
				{ID: "b1", YachtID: "yacht-2", Status: StatusConfirmed, StartTime: at(2, 0), EndTime: at(8, 0)},
				{ID: "b2", YachtID: "yacht-1", Status: StatusCancelled, StartTime: at(3, 0), EndTime: at(6, 0)},
			},
			want: []Slot{
				{StartTime: at(1, 0), EndTime: at(10, 0)},
			},
		},
		{
			name:        "Blackout counts as busy",
			yachtID:     "yacht-1",
			searchStart: at(1, 0),
			searchEnd:   at(10, 0),
			minDuration: 24 * time.Hour,
			blackouts: []rules.Blackout{
				{ID: "bl1", YachtID: "yacht-1", Reason: "refit", StartTime: at(4, 0), EndTime: at(6, 0)},
			},
			want: []Slot{
				{StartTime: at(1, 0), EndTime: at(4, 0)},
				{StartTime: at(6, 0), EndTime: at(10, 0)},
			},
		},
		{
			name:        "Fully booked window has no slots",
			yachtID:     "yacht-1",
			searchStart: at(1, 0),
			searchEnd:   at(10, 0),
			minDuration: 24 * time.Hour,
			existing: []*Booking{
				{ID: "b1", YachtID: "yacht-1", Status: StatusConfirmed, StartTime: at(1, 0), EndTime: at(10, 0)},
			},
			want: nil,
		},
		{
			name:        "Overlapping bookings do not double-count",
			yachtID:     "yacht-1",
			searchStart: at(1, 0),
			searchEnd:   at(10, 0),
			minDuration: 24 * time.Hour,
			existing: []*Booking{
				{ID: "b1", YachtID: "yacht-1", Status: StatusConfirmed, StartTime: at(2, 0), EndTime: at(5, 0)},
				{ID: "b2", YachtID: "yacht-1", Status: StatusPending, StartTime: at(4, 0), EndTime: at(7, 0)},
			},
			want: []Slot{
				{StartTime: at(1, 0), EndTime: at(2, 0)},
				{StartTime: at(7, 0), EndTime: at(10, 0)},
			},
		},
		{
			name:        "Missing yacht id is a contract error",
			yachtID:     "",
			searchStart: at(1, 0),
			searchEnd:   at(10, 0),
			minDuration: 24 * time.Hour,
			wantErr:     ErrInvalidCandidate,
		},
		{
			name:        "Inverted window is a contract error",
			yachtID:     "yacht-1",
			searchStart: at(10, 0),
			searchEnd:   at(1, 0),
			minDuration: 24 * time.Hour,
			wantErr:     ErrInvalidTimeRange,
		},
		{
			name:        "Non-positive duration is a contract error",
			yachtID:     "yacht-1",
			searchStart: at(1, 0),
			searchEnd:   at(10, 0),
			minDuration: 0,
			wantErr:     ErrInvalidDuration,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rs := rs
			rs.Blackouts = tt.blackouts

			got, err := FindAvailableSlots(tt.yachtID, tt.searchStart, tt.searchEnd, tt.minDuration, tt.existing, rs)
			if tt.wantErr != nil {
				if err != tt.wantErr {
					t.Fatalf("FindAvailableSlots() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("FindAvailableSlots() unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("FindAvailableSlots() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAvailabilityForDate(t *testing.T) {
	rs := defaultRules()
	existing := []*Booking{
		{ID: "b1", YachtID: "yacht-1", Status: StatusConfirmed, StartTime: at(2, 12), EndTime: at(4, 12)},
		{ID: "b2", YachtID: "yacht-2", Status: StatusConfirmed, StartTime: at(2, 12), EndTime: at(4, 12)},
	}

	t.Run("Booked day", func(t *testing.T) {
		day, err := AvailabilityForDate(at(3, 9), "yacht-1", existing, rs)
		if err != nil {
			t.Fatalf("AvailabilityForDate() error: %v", err)
		}
		if day.IsAvailable {
			t.Errorf("day should be unavailable")
		}
		if len(day.BookingsOnDay) != 1 || day.BookingsOnDay[0].ID != "b1" {
			t.Errorf("BookingsOnDay = %+v, want [b1]", day.BookingsOnDay)
		}
		if !day.Date.Equal(at(3, 0)) {
			t.Errorf("Date = %v, want midnight UTC", day.Date)
		}
	})

	t.Run("Free day", func(t *testing.T) {
		day, err := AvailabilityForDate(at(10, 0), "yacht-1", existing, rs)
		if err != nil {
			t.Fatalf("AvailabilityForDate() error: %v", err)
		}
		if !day.IsAvailable {
			t.Errorf("day should be available")
		}
		if len(day.BookingsOnDay) != 0 {
			t.Errorf("BookingsOnDay = %+v, want empty", day.BookingsOnDay)
		}
	})
}

func TestSuggestAlternatives(t *testing.T) {
	rs := defaultRules()
	// Yacht is occupied over the requested period
	existing := []*Booking{
		{ID: "b1", YachtID: "yacht-1", Status: StatusConfirmed, StartTime: at(10, 0), EndTime: at(14, 0)},
	}

	candidate := &Booking{
		YachtID:   "yacht-1",
		StartTime: at(11, 0),
		EndTime:   at(13, 0),
	}

	got, err := SuggestAlternatives(candidate, existing, rs, 2)
	if err != nil {
		t.Fatalf("SuggestAlternatives() error: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("suggestions = %v, want 2", got)
	}

	// The gap before the booking ends at day 10; the charter-length slot is
	// carved right against it. The gap after starts at day 14.
	want := []Slot{
		{StartTime: at(8, 0), EndTime: at(10, 0)},
		{StartTime: at(14, 0), EndTime: at(16, 0)},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("suggestions = %v, want %v", got, want)
	}

	// Closest-first ranking: the slot 3 days early outranks the one 3 days late
	// only by chronology when distances tie; here 3 days vs 3 days.
	d0 := absDuration(got[0].StartTime.Sub(candidate.StartTime))
	d1 := absDuration(got[1].StartTime.Sub(candidate.StartTime))
	if d0 > d1 {
		t.Errorf("suggestions not ranked by distance: %v then %v", d0, d1)
	}
}

func TestSuggestAlternativesNoRoom(t *testing.T) {
	rs := defaultRules()
	// One booking swallows the entire search window
	existing := []*Booking{
		{ID: "b1", YachtID: "yacht-1", Status: StatusConfirmed, StartTime: at(-20, 0), EndTime: at(40, 0)},
	}

	candidate := &Booking{
		YachtID:   "yacht-1",
		StartTime: at(11, 0),
		EndTime:   at(13, 0),
	}

	got, err := SuggestAlternatives(candidate, existing, rs, DefaultMaxSuggestions)
	if err != nil {
		t.Fatalf("SuggestAlternatives() error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("suggestions = %v, want none", got)
	}
}

func TestIsYachtAvailable(t *testing.T) {
	rs := defaultRules()
	existing := []*Booking{
		{ID: "b1", YachtID: "yacht-1", Status: StatusConfirmed, StartTime: at(5, 0), EndTime: at(8, 0)},
	}

	free, err := IsYachtAvailable("yacht-1", at(1, 0), at(4, 0), existing, rs)
	if err != nil {
		t.Fatalf("IsYachtAvailable() error: %v", err)
	}
	if !free {
		t.Errorf("want available before the booking")
	}

	free, err = IsYachtAvailable("yacht-1", at(6, 0), at(9, 0), existing, rs)
	if err != nil {
		t.Fatalf("IsYachtAvailable() error: %v", err)
	}
	if free {
		t.Errorf("want unavailable over the booking")
	}
}
