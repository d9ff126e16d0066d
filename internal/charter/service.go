package charter

import (
	"context"
	"errors"
	"time"

	"github.com/AndrewCorlett/yacht-charter-backend/internal/rules"
	"github.com/AndrewCorlett/yacht-charter-backend/internal/yacht"
)

// snapshotPadding is how far beyond a booking's interval the snapshot
// extends, so turnaround checks see the neighbouring charters.
const snapshotPadding = 7 * 24 * time.Hour

// sitrepLookback bounds how far back the situation report scans for
// charters that are still at sea.
const sitrepLookback = 60 * 24 * time.Hour

// ValidationError carries a structured ValidationResult across the service
// boundary. The result is domain data; handlers render it field by field.
type ValidationError struct {
	Result ValidationResult
}

func (e *ValidationError) Error() string {
	return "booking failed validation"
}

// ConflictError carries the ConflictReport for a blocked booking, including
// any alternative slots.
type ConflictError struct {
	Report ConflictReport
}

func (e *ConflictError) Error() string {
	return "requested period conflicts with an existing booking"
}

type CreateRequest struct {
	YachtID       string
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	StartTime     time.Time
	EndTime       time.Time
	GuestCount    int
	TotalValue    int64
	DepositAmount int64
	Notes         string
}

type UpdateRequest struct {
	CustomerName  *string
	CustomerEmail *string
	CustomerPhone *string
	StartTime     *time.Time
	EndTime       *time.Time
	Status        *string
	GuestCount    *int
	TotalValue    *int64
	DepositAmount *int64
	Notes         *string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Booking, error)
	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Booking, error)

	// Move reassigns a booking to a different yacht, re-validating and
	// re-checking conflicts on the target.
	Move(ctx context.Context, id string, newYachtID string) (*Booking, error)

	// Cancel soft-cancels a booking. Records are never physically deleted.
	Cancel(ctx context.Context, id string) (*Booking, error)

	// Check reports conflicts for a hypothetical booking without writing
	// anything. excludeID lets an edit screen ignore the booking being edited.
	Check(ctx context.Context, yachtID string, start, end time.Time, excludeID string) (ConflictReport, error)

	AvailabilityForDate(ctx context.Context, yachtID string, date time.Time) (DayAvailability, error)
	FindSlots(ctx context.Context, yachtID string, start, end time.Time, minDuration time.Duration) ([]Slot, error)

	// Suggest proposes alternative slots near [start, end) regardless of
	// whether the period itself is free.
	Suggest(ctx context.Context, yachtID string, start, end time.Time, max int) ([]Slot, error)
	Sitrep(ctx context.Context, horizon time.Duration) (Sitrep, error)
}

type service struct {
	repo         Repository
	yachtService yacht.Service
	ruleService  rules.Service
	now          func() time.Time
}

func NewService(repo Repository, yachtService yacht.Service, ruleService rules.Service) Service {
	return &service{
		repo:         repo,
		yachtService: yachtService,
		ruleService:  ruleService,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// checkContext bundles everything a conflict check needs for one interval.
type checkContext struct {
	yacht    *yacht.Yacht
	ruleSet  rules.RuleSet
	snapshot []*Booking
}

func (s *service) loadCheckContext(ctx context.Context, yachtID string, start, end time.Time) (*checkContext, error) {
	y, err := s.yachtService.GetByID(ctx, yachtID)
	if err != nil {
		if errors.Is(err, yacht.ErrNotFound) {
			return nil, ErrYachtNotFound
		}
		return nil, err
	}

	windowStart := start.Add(-snapshotPadding)
	windowEnd := end.Add(snapshotPadding)

	rs, err := s.ruleService.RuleSetFor(ctx, yachtID, windowStart, windowEnd)
	if err != nil {
		return nil, err
	}

	snapshot, err := s.repo.SnapshotForYacht(ctx, yachtID, windowStart, windowEnd)
	if err != nil {
		return nil, err
	}

	return &checkContext{yacht: y, ruleSet: rs, snapshot: snapshot}, nil
}

// checkCandidate runs validation and conflict detection against a fresh
// snapshot. Phase one of the two-phase protocol; the repository-level
// HasOverlap re-check before the write is phase two.
func (s *service) checkCandidate(ctx context.Context, candidate *Booking, excludeID string) error {
	if !candidate.EndTime.After(candidate.StartTime) {
		return ErrInvalidTimeRange
	}

	cc, err := s.loadCheckContext(ctx, candidate.YachtID, candidate.StartTime, candidate.EndTime)
	if err != nil {
		return err
	}

	result := Validate(candidate, cc.ruleSet, cc.yacht.Capacity, s.now())
	if !result.IsValid {
		return &ValidationError{Result: result}
	}

	candidate.YachtName = cc.yacht.Name

	report, err := CheckConflicts(candidate, cc.snapshot, cc.ruleSet, excludeID)
	if err != nil {
		return err
	}
	if !report.IsAvailable {
		if suggestions, sErr := SuggestAlternatives(candidate, cc.snapshot, cc.ruleSet, DefaultMaxSuggestions); sErr == nil {
			report.Suggestions = suggestions
		}
		return &ConflictError{Report: report}
	}

	return nil
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Booking, error) {
	b := &Booking{
		YachtID:       req.YachtID,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		StartTime:     req.StartTime.UTC(),
		EndTime:       req.EndTime.UTC(),
		Status:        StatusPending,
		GuestCount:    req.GuestCount,
		TotalValue:    req.TotalValue,
		DepositAmount: req.DepositAmount,
		Notes:         req.Notes,
	}

	if err := s.checkCandidate(ctx, b, ""); err != nil {
		return nil, err
	}

	// Re-check in the database right before the insert; a concurrent
	// writer may have won the slot since the snapshot was taken.
	hasOverlap, err := s.repo.HasOverlap(ctx, b.YachtID, b.StartTime, b.EndTime, "")
	if err != nil {
		return nil, err
	}
	if hasOverlap {
		return nil, ErrTimeConflict
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Booking, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.CustomerName != nil {
		b.CustomerName = *req.CustomerName
	}
	if req.CustomerEmail != nil {
		b.CustomerEmail = *req.CustomerEmail
	}
	if req.CustomerPhone != nil {
		b.CustomerPhone = *req.CustomerPhone
	}
	if req.GuestCount != nil {
		b.GuestCount = *req.GuestCount
	}
	if req.TotalValue != nil {
		b.TotalValue = *req.TotalValue
	}
	if req.DepositAmount != nil {
		b.DepositAmount = *req.DepositAmount
	}
	if req.Notes != nil {
		b.Notes = *req.Notes
	}

	timeChanged := false
	if req.StartTime != nil {
		b.StartTime = req.StartTime.UTC()
		timeChanged = true
	}
	if req.EndTime != nil {
		b.EndTime = req.EndTime.UTC()
		timeChanged = true
	}

	if req.Status != nil {
		st := Status(*req.Status)
		if !ValidStatus(st) {
			return nil, ErrInvalidStatus
		}
		b.Status = st
	}

	// A cancelled booking frees its slot, so only live bookings need the
	// full re-check.
	if b.Status.Blocks() {
		if err := s.checkCandidate(ctx, b, b.ID); err != nil {
			return nil, err
		}

		if timeChanged {
			hasOverlap, err := s.repo.HasOverlap(ctx, b.YachtID, b.StartTime, b.EndTime, b.ID)
			if err != nil {
				return nil, err
			}
			if hasOverlap {
				return nil, ErrTimeConflict
			}
		}
	}

	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) Move(ctx context.Context, id string, newYachtID string) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if b.Status == StatusCancelled || b.Status == StatusCompleted {
		return nil, ErrInvalidStatus
	}

	b.YachtID = newYachtID
	b.YachtName = ""

	if err := s.checkCandidate(ctx, b, b.ID); err != nil {
		return nil, err
	}

	hasOverlap, err := s.repo.HasOverlap(ctx, newYachtID, b.StartTime, b.EndTime, b.ID)
	if err != nil {
		return nil, err
	}
	if hasOverlap {
		return nil, ErrTimeConflict
	}

	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) Cancel(ctx context.Context, id string) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if b.Status == StatusCancelled {
		return b, nil
	}
	if b.Status == StatusCompleted {
		return nil, ErrInvalidStatus
	}

	b.Status = StatusCancelled
	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) Check(ctx context.Context, yachtID string, start, end time.Time, excludeID string) (ConflictReport, error) {
	if !end.After(start) {
		return ConflictReport{}, ErrInvalidTimeRange
	}

	cc, err := s.loadCheckContext(ctx, yachtID, start, end)
	if err != nil {
		return ConflictReport{}, err
	}

	candidate := &Booking{
		YachtID:   yachtID,
		YachtName: cc.yacht.Name,
		StartTime: start.UTC(),
		EndTime:   end.UTC(),
	}

	report, err := CheckConflicts(candidate, cc.snapshot, cc.ruleSet, excludeID)
	if err != nil {
		return ConflictReport{}, err
	}
	if !report.IsAvailable {
		if suggestions, sErr := SuggestAlternatives(candidate, cc.snapshot, cc.ruleSet, DefaultMaxSuggestions); sErr == nil {
			report.Suggestions = suggestions
		}
	}

	return report, nil
}

func (s *service) AvailabilityForDate(ctx context.Context, yachtID string, date time.Time) (DayAvailability, error) {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)

	cc, err := s.loadCheckContext(ctx, yachtID, day, day.Add(24*time.Hour))
	if err != nil {
		return DayAvailability{}, err
	}

	return AvailabilityForDate(day, yachtID, cc.snapshot, cc.ruleSet)
}

func (s *service) FindSlots(ctx context.Context, yachtID string, start, end time.Time, minDuration time.Duration) ([]Slot, error) {
	cc, err := s.loadCheckContext(ctx, yachtID, start, end)
	if err != nil {
		return nil, err
	}

	return FindAvailableSlots(yachtID, start.UTC(), end.UTC(), minDuration, cc.snapshot, cc.ruleSet)
}

func (s *service) Suggest(ctx context.Context, yachtID string, start, end time.Time, max int) ([]Slot, error) {
	if !end.After(start) {
		return nil, ErrInvalidTimeRange
	}

	// Load a snapshot wide enough for the whole suggestion window.
	cc, err := s.loadCheckContext(ctx, yachtID, start.Add(-suggestionWindow), end.Add(suggestionWindow))
	if err != nil {
		return nil, err
	}

	candidate := &Booking{
		YachtID:   yachtID,
		StartTime: start.UTC(),
		EndTime:   end.UTC(),
	}

	return SuggestAlternatives(candidate, cc.snapshot, cc.ruleSet, max)
}

func (s *service) Sitrep(ctx context.Context, horizon time.Duration) (Sitrep, error) {
	now := s.now()

	snapshot, err := s.repo.SnapshotInWindow(ctx, now.Add(-sitrepLookback), now.Add(horizon))
	if err != nil {
		return Sitrep{}, err
	}

	return BuildSitrep(now, horizon, snapshot), nil
}
