package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"cityguide/internal/model"
)

// CityStat is a per-city summary row used by the dashboard.
type CityStat struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Categories  int64     `json:"categories"`
	Attractions int64     `json:"attractions"`
}

// CityRepository defines city persistence operations.
type CityRepository interface {
	Create(ctx context.Context, city *model.City) error
	Save(ctx context.Context, city *model.City) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.City, error)
	List(ctx context.Context) ([]model.City, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
	CountCreatedSince(ctx context.Context, since time.Time) (int64, error)
	ListStats(ctx context.Context) ([]CityStat, error)
	WithTransaction(ctx context.Context, fn func(ctx context.Context, repo CityRepository) error) error
}

type cityRepository struct {
	db *gorm.DB
}

// NewCityRepository creates a new city repository.
func NewCityRepository(db *gorm.DB) CityRepository {
	return &cityRepository{db: db}
}

// Create creates a new city.
func (r *cityRepository) Create(ctx context.Context, city *model.City) error {
	return r.db.WithContext(ctx).Create(city).Error
}

// Save updates an existing city.
func (r *cityRepository) Save(ctx context.Context, city *model.City) error {
	return r.db.WithContext(ctx).Save(city).Error
}

// FindByID finds a city by ID.
func (r *cityRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.City, error) {
	var city model.City
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&city).Error; err != nil {
		return nil, err
	}
	return &city, nil
}

// List lists all cities with their categories populated.
func (r *cityRepository) List(ctx context.Context) ([]model.City, error) {
	var cities []model.City
	if err := r.db.WithContext(ctx).Preload("Categories").
		Order("created_at ASC").Find(&cities).Error; err != nil {
		return nil, err
	}
	return cities, nil
}

// Delete removes a city row. Returns gorm.ErrRecordNotFound when no row matched.
func (r *cityRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.City{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Count returns the total number of cities.
func (r *cityRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.City{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountCreatedSince returns the number of cities created at or after since.
func (r *cityRepository) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.City{}).
		Where("created_at >= ?", since).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ListStats returns one row per city with its category and attraction counts,
// in creation order. Ranking is left to the aggregation layer.
func (r *cityRepository) ListStats(ctx context.Context) ([]CityStat, error) {
	var stats []CityStat
	err := r.db.WithContext(ctx).Raw(`
		SELECT c.id, c.name,
			(SELECT COUNT(*) FROM categories g WHERE g.city_id = c.id) AS categories,
			(SELECT COUNT(*) FROM attractions a WHERE a.city_id = c.id) AS attractions
		FROM cities c
		ORDER BY c.created_at ASC`).Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// WithTransaction executes a function within a database transaction.
func (r *cityRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo CityRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := &cityRepository{db: tx}
		return fn(ctx, txRepo)
	})
}
