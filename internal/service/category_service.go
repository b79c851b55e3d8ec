package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"cityguide/internal/cache"
	"cityguide/internal/errors"
	"cityguide/internal/model"
	"cityguide/internal/repository"
)

// CategoryService handles category operations. Creation validates that the
// owning city exists; deletion cascades to the category's attractions and
// their reviews. CityID is never reassigned after creation.
type CategoryService interface {
	CreateCategory(ctx context.Context, category *model.Category) (*model.Category, error)
	ListCategories(ctx context.Context) ([]model.Category, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, name, description, image string) (*model.Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error
	CategoriesByCityName(ctx context.Context, cityName string) ([]model.Category, error)
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
	cityRepo     repository.CityRepository
	cascade      *cascadeDeleter
	locker       *EntityLocker
	cache        *cache.Client
}

// NewCategoryService creates a new category service.
func NewCategoryService(
	categoryRepo repository.CategoryRepository,
	cityRepo repository.CityRepository,
	attractionRepo repository.AttractionRepository,
	reviewRepo repository.ReviewRepository,
	locker *EntityLocker,
	cache *cache.Client,
) CategoryService {
	return &categoryService{
		categoryRepo: categoryRepo,
		cityRepo:     cityRepo,
		cascade: &cascadeDeleter{
			categoryRepo:   categoryRepo,
			attractionRepo: attractionRepo,
			reviewRepo:     reviewRepo,
		},
		locker: locker,
		cache:  cache,
	}
}

// CreateCategory persists a new category under an existing city.
func (s *categoryService) CreateCategory(ctx context.Context, category *model.Category) (*model.Category, error) {
	if _, err := s.cityRepo.FindByID(ctx, category.CityID); err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrCityNotFound
		}
		return nil, fmt.Errorf("find city: %w", err)
	}

	mutex := s.locker.Get(category.CityID)
	mutex.Lock()
	defer mutex.Unlock()

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	_ = s.cache.Delete(ctx, dashboardStatsKey)
	return category, nil
}

// ListCategories returns all categories with their owning city populated.
func (s *categoryService) ListCategories(ctx context.Context) ([]model.Category, error) {
	return s.categoryRepo.List(ctx)
}

// UpdateCategory replaces the scalar fields of a category. The owning city is
// immutable; the image reference is only replaced when supplied.
func (s *categoryService) UpdateCategory(ctx context.Context, id uuid.UUID, name, description, image string) (*model.Category, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("find category: %w", err)
	}

	category.Name = name
	category.Description = description
	if image != "" {
		category.Image = image
	}

	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}
	return category, nil
}

// DeleteCategory removes a category and cascades to its attractions and their
// reviews. Survivors are reported via PartialCascadeError and the category is
// kept.
func (s *categoryService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	mutex := s.locker.Get(id)
	mutex.Lock()
	defer mutex.Unlock()

	if _, err := s.categoryRepo.FindByID(ctx, id); err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return errors.ErrCategoryNotFound
		}
		return fmt.Errorf("find category: %w", err)
	}

	rem := newRemainder()
	s.cascade.deleteCategoryTree(ctx, id, rem)
	if !rem.empty() {
		// The category id itself ends up in the remainder when any of its
		// attractions survive.
		return &errors.PartialCascadeError{
			Parent:    fmt.Sprintf("category %s", id),
			Remaining: rem.ids,
		}
	}

	_ = s.cache.Delete(ctx, dashboardStatsKey)
	return nil
}

// CategoriesByCityName returns the categories whose owning city's name
// matches cityName, compared trimmed and case-insensitively.
func (s *categoryService) CategoriesByCityName(ctx context.Context, cityName string) ([]model.Category, error) {
	name := strings.ToLower(strings.TrimSpace(cityName))
	if name == "" {
		return nil, fmt.Errorf("%w: city name", errors.ErrMissingParameter)
	}
	return s.categoryRepo.ListByCityName(ctx, name)
}
