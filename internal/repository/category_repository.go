package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"cityguide/internal/model"
)

// CategoryRepository defines category persistence operations.
type CategoryRepository interface {
	Create(ctx context.Context, category *model.Category) error
	Save(ctx context.Context, category *model.Category) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Category, error)
	List(ctx context.Context) ([]model.Category, error)
	ListByCityID(ctx context.Context, cityID uuid.UUID) ([]model.Category, error)
	ListByCityName(ctx context.Context, name string) ([]model.Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
	WithTransaction(ctx context.Context, fn func(ctx context.Context, repo CategoryRepository) error) error
}

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new category repository.
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

// Create creates a new category.
func (r *categoryRepository) Create(ctx context.Context, category *model.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

// Save updates an existing category.
func (r *categoryRepository) Save(ctx context.Context, category *model.Category) error {
	return r.db.WithContext(ctx).Save(category).Error
}

// FindByID finds a category by ID.
func (r *categoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	var category model.Category
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// List lists all categories with their owning city populated.
func (r *categoryRepository) List(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	if err := r.db.WithContext(ctx).Preload("City").
		Order("created_at ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// ListByCityID lists the categories owned by a city.
func (r *categoryRepository) ListByCityID(ctx context.Context, cityID uuid.UUID) ([]model.Category, error) {
	var categories []model.Category
	if err := r.db.WithContext(ctx).Where("city_id = ?", cityID).
		Order("created_at ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// ListByCityName lists categories whose owning city matches name.
// The caller is expected to pass a trimmed, lowercased name.
func (r *categoryRepository) ListByCityName(ctx context.Context, name string) ([]model.Category, error) {
	var categories []model.Category
	if err := r.db.WithContext(ctx).Preload("City").
		Joins("JOIN cities ON cities.id = categories.city_id").
		Where("LOWER(cities.name) = ?", name).
		Order("categories.created_at ASC").
		Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// Delete removes a category row. Returns gorm.ErrRecordNotFound when no row matched.
func (r *categoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Category{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Count returns the total number of categories.
func (r *categoryRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Category{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// WithTransaction executes a function within a database transaction.
func (r *categoryRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo CategoryRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := &categoryRepository{db: tx}
		return fn(ctx, txRepo)
	})
}
