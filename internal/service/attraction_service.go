package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"cityguide/internal/cache"
	"cityguide/internal/errors"
	"cityguide/internal/model"
	"cityguide/internal/repository"
)

// AttractionUpdate carries the replacement fields for an attraction. An empty
// Image keeps the stored reference.
type AttractionUpdate struct {
	Name        string
	Description string
	Image       string
	CategoryID  uuid.UUID
	CityID      uuid.UUID
	Latitude    decimal.Decimal
	Longitude   decimal.Decimal
}

// AttractionService handles attraction mutations and the read-side joins
// across the hierarchy.
type AttractionService interface {
	CreateAttraction(ctx context.Context, attraction *model.Attraction) (*model.Attraction, error)
	ListAttractions(ctx context.Context) ([]model.Attraction, error)
	UpdateAttraction(ctx context.Context, id uuid.UUID, update AttractionUpdate) (*model.Attraction, error)
	DeleteAttraction(ctx context.Context, id uuid.UUID) error
	SearchByCityAndCategory(ctx context.Context, cityName, categoryName string) ([]model.Attraction, error)
	FindByName(ctx context.Context, name string) ([]model.Attraction, error)
}

type attractionService struct {
	attractionRepo repository.AttractionRepository
	categoryRepo   repository.CategoryRepository
	cityRepo       repository.CityRepository
	reviewRepo     repository.ReviewRepository
	locker         *EntityLocker
	cache          *cache.Client
}

// NewAttractionService creates a new attraction service.
func NewAttractionService(
	attractionRepo repository.AttractionRepository,
	categoryRepo repository.CategoryRepository,
	cityRepo repository.CityRepository,
	reviewRepo repository.ReviewRepository,
	locker *EntityLocker,
	cache *cache.Client,
) AttractionService {
	return &attractionService{
		attractionRepo: attractionRepo,
		categoryRepo:   categoryRepo,
		cityRepo:       cityRepo,
		reviewRepo:     reviewRepo,
		locker:         locker,
		cache:          cache,
	}
}

// CreateAttraction persists a new attraction after validating that both the
// owning category and city exist.
func (s *attractionService) CreateAttraction(ctx context.Context, attraction *model.Attraction) (*model.Attraction, error) {
	if _, err := s.categoryRepo.FindByID(ctx, attraction.CategoryID); err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("find category: %w", err)
	}
	if _, err := s.cityRepo.FindByID(ctx, attraction.CityID); err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrCityNotFound
		}
		return nil, fmt.Errorf("find city: %w", err)
	}

	mutex := s.locker.Get(attraction.CategoryID)
	mutex.Lock()
	defer mutex.Unlock()

	if err := s.attractionRepo.Create(ctx, attraction); err != nil {
		return nil, fmt.Errorf("create attraction: %w", err)
	}
	_ = s.cache.Delete(ctx, dashboardStatsKey)
	return attraction, nil
}

// ListAttractions returns all attractions with category and city populated.
func (s *attractionService) ListAttractions(ctx context.Context) ([]model.Attraction, error) {
	return s.attractionRepo.List(ctx)
}

// UpdateAttraction replaces an attraction's fields. A changed category is
// verified to exist and the move is applied in one transaction, so readers
// never observe the attraction owned by two categories at once.
func (s *attractionService) UpdateAttraction(ctx context.Context, id uuid.UUID, update AttractionUpdate) (*model.Attraction, error) {
	attraction, err := s.attractionRepo.FindByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrAttractionNotFound
		}
		return nil, fmt.Errorf("find attraction: %w", err)
	}

	if update.CategoryID != attraction.CategoryID {
		if _, err := s.categoryRepo.FindByID(ctx, update.CategoryID); err != nil {
			if stderrors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errors.ErrCategoryNotFound
			}
			return nil, fmt.Errorf("find category: %w", err)
		}
	}
	if update.CityID != attraction.CityID {
		if _, err := s.cityRepo.FindByID(ctx, update.CityID); err != nil {
			if stderrors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errors.ErrCityNotFound
			}
			return nil, fmt.Errorf("find city: %w", err)
		}
	}

	unlock := s.locker.LockOrdered(attraction.CategoryID, update.CategoryID)
	defer unlock()

	attraction.Name = update.Name
	attraction.Description = update.Description
	attraction.CategoryID = update.CategoryID
	attraction.CityID = update.CityID
	attraction.Latitude = update.Latitude
	attraction.Longitude = update.Longitude
	if update.Image != "" {
		attraction.Image = update.Image
	}

	err = s.attractionRepo.WithTransaction(ctx, func(ctx context.Context, txRepo repository.AttractionRepository) error {
		return txRepo.Save(ctx, attraction)
	})
	if err != nil {
		return nil, fmt.Errorf("update attraction: %w", err)
	}
	return attraction, nil
}

// DeleteAttraction removes an attraction together with its reviews. A missing
// owning category is a pre-existing inconsistency: it is logged and the
// delete proceeds.
func (s *attractionService) DeleteAttraction(ctx context.Context, id uuid.UUID) error {
	attraction, err := s.attractionRepo.FindByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return errors.ErrAttractionNotFound
		}
		return fmt.Errorf("find attraction: %w", err)
	}

	if _, err := s.categoryRepo.FindByID(ctx, attraction.CategoryID); err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			log.Warn().
				Str("attraction_id", id.String()).
				Str("category_id", attraction.CategoryID.String()).
				Msg("consistency warning: owning category missing, deleting attraction anyway")
		}
	}

	mutex := s.locker.Get(attraction.CategoryID)
	mutex.Lock()
	defer mutex.Unlock()

	if err := s.reviewRepo.DeleteByAttractionID(ctx, id); err != nil {
		return &errors.PartialCascadeError{
			Parent:    fmt.Sprintf("attraction %s", id),
			Remaining: map[string][]string{"attractions": {id.String()}},
		}
	}
	if err := s.attractionRepo.Delete(ctx, id); err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return errors.ErrAttractionNotFound
		}
		return fmt.Errorf("delete attraction: %w", err)
	}

	_ = s.cache.Delete(ctx, dashboardStatsKey)
	return nil
}

// SearchByCityAndCategory returns the attractions whose resolved city and
// category names both match, compared trimmed and case-insensitively. No
// match is an empty result, not an error.
func (s *attractionService) SearchByCityAndCategory(ctx context.Context, cityName, categoryName string) ([]model.Attraction, error) {
	city := strings.ToLower(strings.TrimSpace(cityName))
	category := strings.ToLower(strings.TrimSpace(categoryName))
	if city == "" || category == "" {
		return nil, fmt.Errorf("%w: city and category names", errors.ErrMissingParameter)
	}
	return s.attractionRepo.SearchByCityAndCategory(ctx, city, category)
}

// FindByName returns attractions matching name (trimmed, case-insensitive)
// with category, city, and reviews with their reviewers populated.
func (s *attractionService) FindByName(ctx context.Context, name string) ([]model.Attraction, error) {
	trimmed := strings.ToLower(strings.TrimSpace(name))
	if trimmed == "" {
		return nil, fmt.Errorf("%w: attraction name", errors.ErrMissingParameter)
	}
	return s.attractionRepo.FindByName(ctx, trimmed)
}
