package charter

import (
	"sort"
	"time"
)

// Sitrep is the situation report shown on the dashboard: what is at sea
// right now, what departs and returns within the horizon, and how many
// bookings still await confirmation.
type Sitrep struct {
	GeneratedAt   time.Time     `json:"generated_at"`
	Horizon       time.Duration `json:"-"`
	AtSea         []*Booking    `json:"-"`
	DepartingSoon []*Booking    `json:"-"`
	ReturningSoon []*Booking    `json:"-"`
	PendingCount  int           `json:"pending_count"`
}

// BuildSitrep classifies the snapshot against the current time. Cancelled
// and completed bookings are ignored. Each section is sorted by the time
// that puts it in the section (start for departures, end for returns).
func BuildSitrep(now time.Time, horizon time.Duration, bookings []*Booking) Sitrep {
	s := Sitrep{GeneratedAt: now, Horizon: horizon}
	horizonEnd := now.Add(horizon)

	for _, b := range bookings {
		if !b.Status.Blocks() {
			continue
		}
		if b.Status == StatusPending {
			s.PendingCount++
		}

		switch {
		case !b.StartTime.After(now) && b.EndTime.After(now):
			s.AtSea = append(s.AtSea, b)
			if b.EndTime.Before(horizonEnd) {
				s.ReturningSoon = append(s.ReturningSoon, b)
			}
		case b.StartTime.After(now) && b.StartTime.Before(horizonEnd):
			s.DepartingSoon = append(s.DepartingSoon, b)
		}
	}

	sort.Slice(s.AtSea, func(i, j int) bool {
		return s.AtSea[i].EndTime.Before(s.AtSea[j].EndTime)
	})
	sort.Slice(s.DepartingSoon, func(i, j int) bool {
		return s.DepartingSoon[i].StartTime.Before(s.DepartingSoon[j].StartTime)
	})
	sort.Slice(s.ReturningSoon, func(i, j int) bool {
		return s.ReturningSoon[i].EndTime.Before(s.ReturningSoon[j].EndTime)
	})

	return s
}
