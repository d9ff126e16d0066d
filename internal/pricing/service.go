package pricing

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/AndrewCorlett/yacht-charter-backend/internal/charter"
	"github.com/AndrewCorlett/yacht-charter-backend/internal/yacht"
)

// defaultDepositRatio is the fraction of the quote requested up front.
const defaultDepositRatio = 0.3

type CreateRateRequest struct {
	YachtID   string
	Name      string
	StartDate time.Time
	EndDate   time.Time
	DailyRate int64
}

type Service interface {
	CreateRate(ctx context.Context, req CreateRateRequest) (*SeasonalRate, error)
	DeleteRate(ctx context.Context, id string) error
	ListRates(ctx context.Context, yachtID string) ([]SeasonalRate, error)

	// Quote prices the period [start, end) on the yacht using its seasonal
	// rates, falling back to the yacht's base daily rate.
	Quote(ctx context.Context, yachtID string, start, end time.Time) (Quote, error)
}

type service struct {
	repo         Repository
	yachtService yacht.Service
	depositRatio float64
}

func NewService(repo Repository, yachtService yacht.Service) Service {
	return &service{
		repo:         repo,
		yachtService: yachtService,
		depositRatio: defaultDepositRatio,
	}
}

func (s *service) CreateRate(ctx context.Context, req CreateRateRequest) (*SeasonalRate, error) {
	if !req.EndDate.After(req.StartDate) {
		return nil, ErrInvalidDateRange
	}
	if req.DailyRate < 0 {
		return nil, ErrInvalidRate
	}

	if _, err := s.yachtService.GetByID(ctx, req.YachtID); err != nil {
		return nil, err
	}

	// Rate bands on one yacht must not overlap, or quoting is ambiguous.
	existing, err := s.repo.ListForYachtInWindow(ctx, req.YachtID, req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return nil, ErrRateOverlap
	}

	rate := &SeasonalRate{
		YachtID:   req.YachtID,
		Name:      req.Name,
		StartDate: req.StartDate.UTC(),
		EndDate:   req.EndDate.UTC(),
		DailyRate: req.DailyRate,
	}
	if err := s.repo.Create(ctx, rate); err != nil {
		return nil, err
	}
	return rate, nil
}

func (s *service) DeleteRate(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *service) ListRates(ctx context.Context, yachtID string) ([]SeasonalRate, error) {
	return s.repo.ListForYacht(ctx, yachtID)
}

func (s *service) Quote(ctx context.Context, yachtID string, start, end time.Time) (Quote, error) {
	if !end.After(start) {
		return Quote{}, charter.ErrInvalidTimeRange
	}

	y, err := s.yachtService.GetByID(ctx, yachtID)
	if err != nil {
		if errors.Is(err, yacht.ErrNotFound) {
			return Quote{}, charter.ErrYachtNotFound
		}
		return Quote{}, err
	}

	rates, err := s.repo.ListForYachtInWindow(ctx, yachtID, start, end)
	if err != nil {
		return Quote{}, err
	}

	return ComputeQuote(yachtID, start.UTC(), end.UTC(), y.BaseDailyRate, rates, s.depositRatio), nil
}

// ComputeQuote prices a charter in 24-hour blocks from the charter start.
// A started block is charged in full. Each block takes the daily rate of
// the seasonal band containing the block's start, or the base rate when no
// band matches. Consecutive blocks at the same rate collapse into one line.
func ComputeQuote(yachtID string, start, end time.Time, baseDailyRate int64, rates []SeasonalRate, depositRatio float64) Quote {
	days := int(math.Ceil(end.Sub(start).Hours() / 24))

	q := Quote{
		YachtID:   yachtID,
		StartTime: start,
		EndTime:   end,
		Days:      days,
	}

	for i := 0; i < days; i++ {
		blockStart := start.Add(time.Duration(i) * 24 * time.Hour)

		rateName := "base rate"
		dailyRate := baseDailyRate
		for _, r := range rates {
			if !blockStart.Before(r.StartDate) && blockStart.Before(r.EndDate) {
				rateName = r.Name
				dailyRate = r.DailyRate
				break
			}
		}

		if n := len(q.Lines); n > 0 && q.Lines[n-1].RateName == rateName && q.Lines[n-1].DailyRate == dailyRate {
			q.Lines[n-1].Days++
			q.Lines[n-1].Amount += dailyRate
		} else {
			q.Lines = append(q.Lines, QuoteLine{
				RateName:  rateName,
				StartDate: blockStart,
				Days:      1,
				DailyRate: dailyRate,
				Amount:    dailyRate,
			})
		}

		q.TotalValue += dailyRate
	}

	q.DepositAmount = int64(math.Round(float64(q.TotalValue) * depositRatio))

	return q
}
