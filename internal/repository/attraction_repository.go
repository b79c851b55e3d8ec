package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"cityguide/internal/model"
)

// AttractionRepository defines attraction persistence operations.
type AttractionRepository interface {
	Create(ctx context.Context, attraction *model.Attraction) error
	Save(ctx context.Context, attraction *model.Attraction) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Attraction, error)
	List(ctx context.Context) ([]model.Attraction, error)
	ListByCategoryID(ctx context.Context, categoryID uuid.UUID) ([]model.Attraction, error)
	// SearchByCityAndCategory matches on the resolved city and category names.
	// Callers pass trimmed, lowercased names.
	SearchByCityAndCategory(ctx context.Context, cityName, categoryName string) ([]model.Attraction, error)
	// FindByName matches on the attraction name (trimmed, lowercased by the
	// caller) and populates category, city, and reviews with their reviewers.
	FindByName(ctx context.Context, name string) ([]model.Attraction, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
	CountCreatedSince(ctx context.Context, since time.Time) (int64, error)
	WithTransaction(ctx context.Context, fn func(ctx context.Context, repo AttractionRepository) error) error
}

type attractionRepository struct {
	db *gorm.DB
}

// NewAttractionRepository creates a new attraction repository.
func NewAttractionRepository(db *gorm.DB) AttractionRepository {
	return &attractionRepository{db: db}
}

// Create creates a new attraction.
func (r *attractionRepository) Create(ctx context.Context, attraction *model.Attraction) error {
	return r.db.WithContext(ctx).Create(attraction).Error
}

// Save updates an existing attraction.
func (r *attractionRepository) Save(ctx context.Context, attraction *model.Attraction) error {
	return r.db.WithContext(ctx).Save(attraction).Error
}

// FindByID finds an attraction by ID.
func (r *attractionRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Attraction, error) {
	var attraction model.Attraction
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&attraction).Error; err != nil {
		return nil, err
	}
	return &attraction, nil
}

// List lists all attractions with category and city populated.
func (r *attractionRepository) List(ctx context.Context) ([]model.Attraction, error) {
	var attractions []model.Attraction
	if err := r.db.WithContext(ctx).Preload("Category").Preload("City").
		Order("created_at ASC").Find(&attractions).Error; err != nil {
		return nil, err
	}
	return attractions, nil
}

// ListByCategoryID lists the attractions owned by a category.
func (r *attractionRepository) ListByCategoryID(ctx context.Context, categoryID uuid.UUID) ([]model.Attraction, error) {
	var attractions []model.Attraction
	if err := r.db.WithContext(ctx).Where("category_id = ?", categoryID).
		Order("created_at ASC").Find(&attractions).Error; err != nil {
		return nil, err
	}
	return attractions, nil
}

// SearchByCityAndCategory returns attractions whose resolved city and category
// names both match. An empty result is not an error.
func (r *attractionRepository) SearchByCityAndCategory(ctx context.Context, cityName, categoryName string) ([]model.Attraction, error) {
	var attractions []model.Attraction
	if err := r.db.WithContext(ctx).Preload("Category").Preload("City").
		Joins("JOIN cities ON cities.id = attractions.city_id").
		Joins("JOIN categories ON categories.id = attractions.category_id").
		Where("LOWER(cities.name) = ? AND LOWER(categories.name) = ?", cityName, categoryName).
		Order("attractions.created_at ASC").
		Find(&attractions).Error; err != nil {
		return nil, err
	}
	return attractions, nil
}

// FindByName returns attractions matching name with nested reviews and reviewers.
func (r *attractionRepository) FindByName(ctx context.Context, name string) ([]model.Attraction, error) {
	var attractions []model.Attraction
	if err := r.db.WithContext(ctx).
		Preload("Category").Preload("City").
		Preload("Reviews").Preload("Reviews.User").
		Where("LOWER(attractions.name) = ?", name).
		Order("created_at ASC").
		Find(&attractions).Error; err != nil {
		return nil, err
	}
	return attractions, nil
}

// Delete removes an attraction row. Returns gorm.ErrRecordNotFound when no row matched.
func (r *attractionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Attraction{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Count returns the total number of attractions.
func (r *attractionRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Attraction{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountCreatedSince returns the number of attractions created at or after since.
func (r *attractionRepository) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Attraction{}).
		Where("created_at >= ?", since).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// WithTransaction executes a function within a database transaction.
func (r *attractionRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo AttractionRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := &attractionRepository{db: tx}
		return fn(ctx, txRepo)
	})
}
