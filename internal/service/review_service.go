package service

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"cityguide/internal/cache"
	"cityguide/internal/errors"
	"cityguide/internal/model"
	"cityguide/internal/repository"
)

// ReviewService handles review creation and removal. Ratings are validated
// before anything is persisted; both referenced parents must exist.
type ReviewService interface {
	AddReview(ctx context.Context, review *model.Review) (*model.Review, error)
	ListReviews(ctx context.Context) ([]model.Review, error)
	DeleteReview(ctx context.Context, id uuid.UUID) error
}

type reviewService struct {
	reviewRepo     repository.ReviewRepository
	attractionRepo repository.AttractionRepository
	userRepo       repository.UserRepository
	locker         *EntityLocker
	cache          *cache.Client
}

// NewReviewService creates a new review service.
func NewReviewService(
	reviewRepo repository.ReviewRepository,
	attractionRepo repository.AttractionRepository,
	userRepo repository.UserRepository,
	locker *EntityLocker,
	cache *cache.Client,
) ReviewService {
	return &reviewService{
		reviewRepo:     reviewRepo,
		attractionRepo: attractionRepo,
		userRepo:       userRepo,
		locker:         locker,
		cache:          cache,
	}
}

// AddReview persists a new review after validating the rating bounds and the
// existence of the reviewed attraction and the reviewing user.
func (s *reviewService) AddReview(ctx context.Context, review *model.Review) (*model.Review, error) {
	if !review.RatingInBounds() {
		return nil, errors.ErrInvalidRating
	}

	if _, err := s.attractionRepo.FindByID(ctx, review.AttractionID); err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrAttractionNotFound
		}
		return nil, fmt.Errorf("find attraction: %w", err)
	}
	if _, err := s.userRepo.FindByID(ctx, review.UserID); err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	mutex := s.locker.Get(review.AttractionID)
	mutex.Lock()
	defer mutex.Unlock()

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}
	_ = s.cache.Delete(ctx, dashboardStatsKey)
	return review, nil
}

// ListReviews returns all reviews with reviewer and attraction populated.
func (s *reviewService) ListReviews(ctx context.Context) ([]model.Review, error) {
	return s.reviewRepo.List(ctx)
}

// DeleteReview removes a review. Missing owners are a pre-existing
// inconsistency: logged as a warning, never a reason to keep the review.
func (s *reviewService) DeleteReview(ctx context.Context, id uuid.UUID) error {
	review, err := s.reviewRepo.FindByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return errors.ErrReviewNotFound
		}
		return fmt.Errorf("find review: %w", err)
	}

	if _, err := s.attractionRepo.FindByID(ctx, review.AttractionID); err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			log.Warn().
				Str("review_id", id.String()).
				Str("attraction_id", review.AttractionID.String()).
				Msg("consistency warning: reviewed attraction missing, deleting review anyway")
		}
	}
	if _, err := s.userRepo.FindByID(ctx, review.UserID); err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			log.Warn().
				Str("review_id", id.String()).
				Str("user_id", review.UserID.String()).
				Msg("consistency warning: reviewing user missing, deleting review anyway")
		}
	}

	mutex := s.locker.Get(review.AttractionID)
	mutex.Lock()
	defer mutex.Unlock()

	if err := s.reviewRepo.Delete(ctx, id); err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return errors.ErrReviewNotFound
		}
		return fmt.Errorf("delete review: %w", err)
	}

	_ = s.cache.Delete(ctx, dashboardStatsKey)
	return nil
}
