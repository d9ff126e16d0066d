package rules

import (
	"context"
	"time"
)

// Defaults are the deployment-wide rule values loaded from configuration.
type Defaults struct {
	MinDuration           time.Duration
	MaxDuration           time.Duration
	MinAdvanceNotice      time.Duration
	MinTurnaround         time.Duration
	RecommendedTurnaround time.Duration
	HighOverlapRatio      float64
	TreatPendingAsSoft    bool
}

// Service assembles the RuleSet handed to the charter core and manages
// blackout periods.
type Service interface {
	// RuleSetFor returns the effective rule set for conflict checks touching
	// the given yacht and window. An empty yachtID loads blackouts fleet-wide.
	RuleSetFor(ctx context.Context, yachtID string, start, end time.Time) (RuleSet, error)

	CreateBlackout(ctx context.Context, b *Blackout) error
	DeleteBlackout(ctx context.Context, id string) error
	ListBlackouts(ctx context.Context, yachtID string) ([]Blackout, error)
}

type service struct {
	repo     Repository
	defaults Defaults
}

// NewService creates a rules Service.
func NewService(repo Repository, defaults Defaults) Service {
	return &service{
		repo:     repo,
		defaults: defaults,
	}
}

func (s *service) RuleSetFor(ctx context.Context, yachtID string, start, end time.Time) (RuleSet, error) {
	rs := RuleSet{
		MinDuration:           s.defaults.MinDuration,
		MaxDuration:           s.defaults.MaxDuration,
		MinAdvanceNotice:      s.defaults.MinAdvanceNotice,
		MinTurnaround:         s.defaults.MinTurnaround,
		RecommendedTurnaround: s.defaults.RecommendedTurnaround,
		HighOverlapRatio:      s.defaults.HighOverlapRatio,
		TreatPendingAsSoft:    s.defaults.TreatPendingAsSoft,
	}

	blackouts, err := s.repo.ListBlackoutsInWindow(ctx, yachtID, start, end)
	if err != nil {
		return RuleSet{}, err
	}
	rs.Blackouts = blackouts

	return rs, nil
}

func (s *service) CreateBlackout(ctx context.Context, b *Blackout) error {
	if !b.EndTime.After(b.StartTime) {
		return ErrInvalidTimeRange
	}
	return s.repo.CreateBlackout(ctx, b)
}

func (s *service) DeleteBlackout(ctx context.Context, id string) error {
	return s.repo.DeleteBlackout(ctx, id)
}

func (s *service) ListBlackouts(ctx context.Context, yachtID string) ([]Blackout, error) {
	return s.repo.ListBlackouts(ctx, yachtID)
}
