package pricing

import (
	"reflect"
	"testing"
	"time"
)

func day(d int) time.Time {
	return time.Date(2026, 7, d, 0, 0, 0, 0, time.UTC)
}

func TestComputeQuote(t *testing.T) {
	highSeason := SeasonalRate{
		ID:        "r1",
		YachtID:   "yacht-1",
		Name:      "high season",
		StartDate: day(10),
		EndDate:   day(20),
		DailyRate: 200000,
	}

	tests := []struct {
		name        string
		start, end  time.Time
		base        int64
		rates       []SeasonalRate
		wantDays    int
		wantTotal   int64
		wantDeposit int64
		wantLines   []QuoteLine
	}{
		{
			name:  "Base rate only",
			start: day(1), end: day(4),
			base:        100000,
			wantDays:    3,
			wantTotal:   300000,
			wantDeposit: 90000,
			wantLines: []QuoteLine{
				{RateName: "base rate", StartDate: day(1), Days: 3, DailyRate: 100000, Amount: 300000},
			},
		},
		{
			name:  "Partial day charges a full block",
			start: day(1), end: day(2).Add(6 * time.Hour),
			base:        100000,
			wantDays:    2,
			wantTotal:   200000,
			wantDeposit: 60000,
			wantLines: []QuoteLine{
				{RateName: "base rate", StartDate: day(1), Days: 2, DailyRate: 100000, Amount: 200000},
			},
		},
		{
			name:  "Charter crossing into a seasonal band",
			start: day(8), end: day(12),
			base:        100000,
			rates:       []SeasonalRate{highSeason},
			wantDays:    4,
			wantTotal:   100000*2 + 200000*2,
			wantDeposit: 180000,
			wantLines: []QuoteLine{
				{RateName: "base rate", StartDate: day(8), Days: 2, DailyRate: 100000, Amount: 200000},
				{RateName: "high season", StartDate: day(10), Days: 2, DailyRate: 200000, Amount: 400000},
			},
		},
		{
			name:  "Charter entirely inside the band",
			start: day(12), end: day(15),
			base:        100000,
			rates:       []SeasonalRate{highSeason},
			wantDays:    3,
			wantTotal:   600000,
			wantDeposit: 180000,
			wantLines: []QuoteLine{
				{RateName: "high season", StartDate: day(12), Days: 3, DailyRate: 200000, Amount: 600000},
			},
		},
		{
			name:  "Charter leaving the band returns to base",
			start: day(19), end: day(22),
			base:        100000,
			rates:       []SeasonalRate{highSeason},
			wantDays:    3,
			wantTotal:   200000 + 100000*2,
			wantDeposit: 120000,
			wantLines: []QuoteLine{
				{RateName: "high season", StartDate: day(19), Days: 1, DailyRate: 200000, Amount: 200000},
				{RateName: "base rate", StartDate: day(20), Days: 2, DailyRate: 100000, Amount: 200000},
			},
		},
		{
			name:  "Band end date is exclusive",
			start: day(20), end: day(21),
			base:        100000,
			rates:       []SeasonalRate{highSeason},
			wantDays:    1,
			wantTotal:   100000,
			wantDeposit: 30000,
			wantLines: []QuoteLine{
				{RateName: "base rate", StartDate: day(20), Days: 1, DailyRate: 100000, Amount: 100000},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := ComputeQuote("yacht-1", tt.start, tt.end, tt.base, tt.rates, 0.3)

			if q.Days != tt.wantDays {
				t.Errorf("Days = %d, want %d", q.Days, tt.wantDays)
			}
			if q.TotalValue != tt.wantTotal {
				t.Errorf("TotalValue = %d, want %d", q.TotalValue, tt.wantTotal)
			}
			if q.DepositAmount != tt.wantDeposit {
				t.Errorf("DepositAmount = %d, want %d", q.DepositAmount, tt.wantDeposit)
			}
			if !reflect.DeepEqual(q.Lines, tt.wantLines) {
				t.Errorf("Lines = %+v, want %+v", q.Lines, tt.wantLines)
			}
		})
	}
}

func TestComputeQuoteDepositRounding(t *testing.T) {
	// 3 days at 33333 cents with a 30% deposit: 99999 * 0.3 = 29999.7,
	// rounded to the nearest cent.
	q := ComputeQuote("yacht-1", day(1), day(4), 33333, nil, 0.3)
	if q.TotalValue != 99999 {
		t.Fatalf("TotalValue = %d, want 99999", q.TotalValue)
	}
	if q.DepositAmount != 30000 {
		t.Errorf("DepositAmount = %d, want 30000", q.DepositAmount)
	}
}
