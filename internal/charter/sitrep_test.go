package charter

import (
	"reflect"
	"testing"
	"time"
)

func TestBuildSitrep(t *testing.T) {
	now := at(10, 12)
	horizon := 7 * 24 * time.Hour

	bookings := []*Booking{
		// At sea, returns inside the horizon
		{ID: "at-sea-near", YachtID: "y1", Status: StatusConfirmed, StartTime: at(8, 0), EndTime: at(12, 0)},
		// At sea, returns beyond the horizon
		{ID: "at-sea-far", YachtID: "y2", Status: StatusConfirmed, StartTime: at(9, 0), EndTime: at(25, 0)},
		// Departs inside the horizon
		{ID: "departing", YachtID: "y3", Status: StatusPending, StartTime: at(13, 0), EndTime: at(16, 0)},
		// Departs beyond the horizon
		{ID: "later", YachtID: "y4", Status: StatusConfirmed, StartTime: at(20, 0), EndTime: at(23, 0)},
		// Already finished
		{ID: "done", YachtID: "y5", Status: StatusCompleted, StartTime: at(1, 0), EndTime: at(4, 0)},
		// Cancelled, ignored entirely
		{ID: "gone", YachtID: "y6", Status: StatusCancelled, StartTime: at(11, 0), EndTime: at(14, 0)},
		// Pending but far in the future, still counted as pending
		{ID: "pending-far", YachtID: "y7", Status: StatusPending, StartTime: at(25, 0), EndTime: at(28, 0)},
	}

	s := BuildSitrep(now, horizon, bookings)

	if !s.GeneratedAt.Equal(now) {
		t.Errorf("GeneratedAt = %v, want %v", s.GeneratedAt, now)
	}

	ids := func(bs []*Booking) []string {
		var out []string
		for _, b := range bs {
			out = append(out, b.ID)
		}
		return out
	}

	if got, want := ids(s.AtSea), []string{"at-sea-near", "at-sea-far"}; !reflect.DeepEqual(got, want) {
		t.Errorf("AtSea = %v, want %v", got, want)
	}
	if got, want := ids(s.DepartingSoon), []string{"departing"}; !reflect.DeepEqual(got, want) {
		t.Errorf("DepartingSoon = %v, want %v", got, want)
	}
	if got, want := ids(s.ReturningSoon), []string{"at-sea-near"}; !reflect.DeepEqual(got, want) {
		t.Errorf("ReturningSoon = %v, want %v", got, want)
	}
	if s.PendingCount != 2 {
		t.Errorf("PendingCount = %d, want 2", s.PendingCount)
	}
}

func TestBuildSitrepEmpty(t *testing.T) {
	s := BuildSitrep(at(1, 0), 7*24*time.Hour, nil)
	if len(s.AtSea) != 0 || len(s.DepartingSoon) != 0 || len(s.ReturningSoon) != 0 || s.PendingCount != 0 {
		t.Errorf("empty snapshot should produce an empty sitrep, got %+v", s)
	}
}

func TestBuildSitrepDepartureSorting(t *testing.T) {
	now := at(1, 0)
	bookings := []*Booking{
		{ID: "second", YachtID: "y1", Status: StatusConfirmed, StartTime: at(3, 0), EndTime: at(5, 0)},
		{ID: "first", YachtID: "y2", Status: StatusConfirmed, StartTime: at(2, 0), EndTime: at(4, 0)},
	}

	s := BuildSitrep(now, 7*24*time.Hour, bookings)

	if len(s.DepartingSoon) != 2 || s.DepartingSoon[0].ID != "first" || s.DepartingSoon[1].ID != "second" {
		t.Errorf("DepartingSoon not sorted by start: %v", s.DepartingSoon)
	}
}
