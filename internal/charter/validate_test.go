package charter

import (
	"reflect"
	"sort"
	"testing"
	"time"
)

func validBooking() *Booking {
	return &Booking{
		YachtID:       "yacht-1",
		CustomerName:  "Alexandra Shaw",
		CustomerEmail: "a.shaw@example.com",
		CustomerPhone: "+44 7700 900123",
		StartTime:     at(10, 10),
		EndTime:       at(13, 10),
		Status:        StatusPending,
		GuestCount:    6,
		TotalValue:    450000,
		DepositAmount: 135000,
	}
}

func TestValidate(t *testing.T) {
	rs := defaultRules()
	now := at(1, 0)
	const capacity = 8

	tests := []struct {
		name       string
		mutate     func(b *Booking)
		wantFields []string
	}{
		{
			name:   "Valid booking has no errors",
			mutate: func(b *Booking) {},
		},
		{
			name:       "Missing yacht",
			mutate:     func(b *Booking) { b.YachtID = "" },
			wantFields: []string{"yacht_id"},
		},
		{
			name:       "Blank customer name",
			mutate:     func(b *Booking) { b.CustomerName = "   " },
			wantFields: []string{"customer_name"},
		},
		{
			name:       "Missing start time",
			mutate:     func(b *Booking) { b.StartTime = time.Time{} },
			wantFields: []string{"start_time"},
		},
		{
			name: "End before start",
			mutate: func(b *Booking) {
				b.StartTime = at(13, 10)
				b.EndTime = at(10, 10)
			},
			wantFields: []string{"end_time"},
		},
		{
			name: "Too short a charter flags duration only",
			mutate: func(b *Booking) {
				b.StartTime = at(10, 10)
				b.EndTime = at(10, 12) // 2h against a 4h minimum
			},
			wantFields: []string{"duration"},
		},
		{
			name: "Too long a charter",
			mutate: func(b *Booking) {
				b.EndTime = b.StartTime.Add(31 * 24 * time.Hour)
			},
			wantFields: []string{"duration"},
		},
		{
			name: "Insufficient advance notice for a pending booking",
			mutate: func(b *Booking) {
				b.StartTime = now.Add(24 * time.Hour)
				b.EndTime = b.StartTime.Add(48 * time.Hour)
			},
			wantFields: []string{"start_time"},
		},
		{
			name:       "Zero guests",
			mutate:     func(b *Booking) { b.GuestCount = 0 },
			wantFields: []string{"guest_count"},
		},
		{
			name:       "Guests over capacity",
			mutate:     func(b *Booking) { b.GuestCount = 9 },
			wantFields: []string{"guest_count"},
		},
		{
			name:       "Negative total",
			mutate:     func(b *Booking) { b.TotalValue = -1 },
			wantFields: []string{"total_value"},
		},
		{
			name:       "Deposit exceeds total",
			mutate:     func(b *Booking) { b.DepositAmount = b.TotalValue + 1 },
			wantFields: []string{"deposit_amount"},
		},
		{
			name:       "Negative deposit",
			mutate:     func(b *Booking) { b.DepositAmount = -1 },
			wantFields: []string{"deposit_amount"},
		},
		{
			name:       "Malformed email",
			mutate:     func(b *Booking) { b.CustomerEmail = "not-an-email" },
			wantFields: []string{"customer_email"},
		},
		{
			name:       "Malformed phone",
			mutate:     func(b *Booking) { b.CustomerPhone = "call me" },
			wantFields: []string{"customer_phone"},
		},
		{
			name:   "Empty email and phone are allowed",
			mutate: func(b *Booking) { b.CustomerEmail = ""; b.CustomerPhone = "" },
		},
		{
			name: "Independent failures are all collected",
			mutate: func(b *Booking) {
				b.CustomerName = ""
				b.GuestCount = 0
				b.CustomerEmail = "bad"
			},
			wantFields: []string{"customer_email", "customer_name", "guest_count"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := validBooking()
			tt.mutate(b)

			result := Validate(b, rs, capacity, now)

			if wantValid := len(tt.wantFields) == 0; result.IsValid != wantValid {
				t.Errorf("IsValid = %v, want %v (errors: %v)", result.IsValid, wantValid, result.Errors)
			}

			var gotFields []string
			for field := range result.Errors {
				gotFields = append(gotFields, field)
			}
			sort.Strings(gotFields)
			if !reflect.DeepEqual(gotFields, tt.wantFields) {
				t.Errorf("error fields = %v, want %v", gotFields, tt.wantFields)
			}
		})
	}
}

func TestValidateAdvanceNoticeOnlyForNewBookings(t *testing.T) {
	rs := defaultRules()
	now := at(1, 0)

	b := validBooking()
	b.Status = StatusConfirmed
	b.StartTime = now.Add(24 * time.Hour) // inside the notice window
	b.EndTime = b.StartTime.Add(48 * time.Hour)

	result := Validate(b, rs, 8, now)
	if !result.IsValid {
		t.Errorf("confirmed booking should skip the advance-notice rule, got %v", result.Errors)
	}
}

func TestValidateNilBooking(t *testing.T) {
	result := Validate(nil, defaultRules(), 0, at(1, 0))
	if result.IsValid {
		t.Errorf("nil booking should not validate")
	}
	if _, ok := result.Errors["booking"]; !ok {
		t.Errorf("errors = %v, want a booking entry", result.Errors)
	}
}

func TestValidateZeroCapacitySkipsUpperBound(t *testing.T) {
	b := validBooking()
	b.GuestCount = 500

	result := Validate(b, defaultRules(), 0, at(1, 0))
	if !result.IsValid {
		t.Errorf("guest upper bound should be skipped when capacity is unknown, got %v", result.Errors)
	}
}
