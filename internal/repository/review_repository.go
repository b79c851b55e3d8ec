package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"cityguide/internal/model"
)

// ReviewRepository defines review persistence operations.
type ReviewRepository interface {
	Create(ctx context.Context, review *model.Review) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Review, error)
	List(ctx context.Context) ([]model.Review, error)
	Recent(ctx context.Context, limit int) ([]model.Review, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByAttractionID(ctx context.Context, attractionID uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}

type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository creates a new review repository.
func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

// Create creates a new review.
func (r *reviewRepository) Create(ctx context.Context, review *model.Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}

// FindByID finds a review by ID.
func (r *reviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Review, error) {
	var review model.Review
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&review).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

// List lists all reviews with reviewer and attraction populated.
func (r *reviewRepository) List(ctx context.Context) ([]model.Review, error) {
	var reviews []model.Review
	if err := r.db.WithContext(ctx).Preload("User").Preload("Attraction").
		Order("created_at ASC").Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

// Recent returns the most recently created reviews, newest first.
func (r *reviewRepository) Recent(ctx context.Context, limit int) ([]model.Review, error) {
	var reviews []model.Review
	if err := r.db.WithContext(ctx).Preload("User").Preload("Attraction").
		Order("created_at DESC").Limit(limit).Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

// Delete removes a review row. Returns gorm.ErrRecordNotFound when no row matched.
func (r *reviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Review{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteByAttractionID removes all reviews of an attraction. Used by cascades;
// deleting zero rows is not an error here.
func (r *reviewRepository) DeleteByAttractionID(ctx context.Context, attractionID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("attraction_id = ?", attractionID).
		Delete(&model.Review{}).Error
}

// Count returns the total number of reviews.
func (r *reviewRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Review{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
