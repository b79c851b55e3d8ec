package service

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"cityguide/internal/cache"
	"cityguide/internal/errors"
	"cityguide/internal/model"
	"cityguide/internal/repository"
)

// CityService handles city operations, including the cascade that removes a
// city together with everything under it.
type CityService interface {
	CreateCity(ctx context.Context, city *model.City) (*model.City, error)
	ListCities(ctx context.Context) ([]model.City, error)
	UpdateCity(ctx context.Context, id uuid.UUID, name, description, image string) (*model.City, error)
	DeleteCity(ctx context.Context, id uuid.UUID) error
}

type cityService struct {
	cityRepo     repository.CityRepository
	categoryRepo repository.CategoryRepository
	cascade      *cascadeDeleter
	locker       *EntityLocker
	cache        *cache.Client
}

// NewCityService creates a new city service.
func NewCityService(
	cityRepo repository.CityRepository,
	categoryRepo repository.CategoryRepository,
	attractionRepo repository.AttractionRepository,
	reviewRepo repository.ReviewRepository,
	locker *EntityLocker,
	cache *cache.Client,
) CityService {
	return &cityService{
		cityRepo:     cityRepo,
		categoryRepo: categoryRepo,
		cascade: &cascadeDeleter{
			categoryRepo:   categoryRepo,
			attractionRepo: attractionRepo,
			reviewRepo:     reviewRepo,
		},
		locker: locker,
		cache:  cache,
	}
}

// CreateCity persists a new city.
func (s *cityService) CreateCity(ctx context.Context, city *model.City) (*model.City, error) {
	if err := s.cityRepo.Create(ctx, city); err != nil {
		return nil, fmt.Errorf("create city: %w", err)
	}
	_ = s.cache.Delete(ctx, dashboardStatsKey)
	return city, nil
}

// ListCities returns all cities with their categories populated.
func (s *cityService) ListCities(ctx context.Context) ([]model.City, error) {
	return s.cityRepo.List(ctx)
}

// UpdateCity replaces the scalar fields of a city. The image reference is
// only replaced when the caller supplied a new one.
func (s *cityService) UpdateCity(ctx context.Context, id uuid.UUID, name, description, image string) (*model.City, error) {
	city, err := s.cityRepo.FindByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrCityNotFound
		}
		return nil, fmt.Errorf("find city: %w", err)
	}

	city.Name = name
	city.Description = description
	if image != "" {
		city.Image = image
	}

	if err := s.cityRepo.Save(ctx, city); err != nil {
		return nil, fmt.Errorf("update city: %w", err)
	}
	return city, nil
}

// DeleteCity removes a city and cascades to its categories, their
// attractions, and their reviews. The city row is only removed once every
// descendant is gone; otherwise a PartialCascadeError names the survivors and
// the city is kept for remediation.
func (s *cityService) DeleteCity(ctx context.Context, id uuid.UUID) error {
	mutex := s.locker.Get(id)
	mutex.Lock()
	defer mutex.Unlock()

	if _, err := s.cityRepo.FindByID(ctx, id); err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return errors.ErrCityNotFound
		}
		return fmt.Errorf("find city: %w", err)
	}

	categories, err := s.categoryRepo.ListByCityID(ctx, id)
	if err != nil {
		return fmt.Errorf("list categories: %w", err)
	}

	rem := newRemainder()
	for _, category := range categories {
		s.cascade.deleteCategoryTree(ctx, category.ID, rem)
	}
	if !rem.empty() {
		return &errors.PartialCascadeError{
			Parent:    fmt.Sprintf("city %s", id),
			Remaining: rem.ids,
		}
	}

	if err := s.cityRepo.Delete(ctx, id); err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return errors.ErrCityNotFound
		}
		return fmt.Errorf("delete city: %w", err)
	}

	_ = s.cache.Delete(ctx, dashboardStatsKey)
	return nil
}
