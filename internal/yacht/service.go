package yacht

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/AndrewCorlett/yacht-charter-backend/internal/pkg/storage"
)

type CreateRequest struct {
	Name          string
	Capacity      int
	HomePort      string
	BaseDailyRate int64
}

type UpdateRequest struct {
	Name          *string
	Capacity      *int
	HomePort      *string
	BaseDailyRate *int64
	IsActive      *bool
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Yacht, error)
	GetByID(ctx context.Context, id string) (*Yacht, error)
	List(ctx context.Context, filter Filter) ([]*Yacht, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Yacht, error)
	Delete(ctx context.Context, id string) error

	// SetPhoto stores a normalized photo for the yacht and records its path.
	SetPhoto(ctx context.Context, id string, content io.Reader) (*Yacht, error)
}

const (
	photoMaxWidth  = 1600
	photoMaxHeight = 1200
)

type service struct {
	repo      Repository
	store     storage.Storage
	processor *storage.ImageProcessor
}

func NewService(repo Repository, store storage.Storage, processor *storage.ImageProcessor) Service {
	return &service{
		repo:      repo,
		store:     store,
		processor: processor,
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Yacht, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrEmptyName
	}
	if req.Capacity < 1 {
		return nil, ErrInvalidCapacity
	}

	y := &Yacht{
		Name:          strings.TrimSpace(req.Name),
		Capacity:      req.Capacity,
		HomePort:      strings.TrimSpace(req.HomePort),
		BaseDailyRate: req.BaseDailyRate,
		IsActive:      true,
	}

	if err := s.repo.Create(ctx, y); err != nil {
		return nil, err
	}
	return y, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Yacht, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Yacht, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Yacht, error) {
	y, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrEmptyName
		}
		y.Name = strings.TrimSpace(*req.Name)
	}
	if req.Capacity != nil {
		if *req.Capacity < 1 {
			return nil, ErrInvalidCapacity
		}
		y.Capacity = *req.Capacity
	}
	if req.HomePort != nil {
		y.HomePort = strings.TrimSpace(*req.HomePort)
	}
	if req.BaseDailyRate != nil {
		y.BaseDailyRate = *req.BaseDailyRate
	}
	if req.IsActive != nil {
		y.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, y); err != nil {
		return nil, err
	}
	return y, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	y, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if y.PhotoPath != nil {
		if err := s.store.Delete(ctx, *y.PhotoPath); err != nil {
			return fmt.Errorf("failed to delete yacht photo: %w", err)
		}
	}

	return s.repo.Delete(ctx, id)
}

func (s *service) SetPhoto(ctx context.Context, id string, content io.Reader) (*Yacht, error) {
	y, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	processed, err := s.processor.FitJPEG(content, photoMaxWidth, photoMaxHeight)
	if err != nil {
		return nil, err
	}

	path := fmt.Sprintf("yachts/%s.jpg", y.ID)
	if err := s.store.Save(ctx, path, processed); err != nil {
		return nil, err
	}

	y.PhotoPath = &path
	if err := s.repo.Update(ctx, y); err != nil {
		return nil, err
	}
	return y, nil
}
