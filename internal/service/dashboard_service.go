package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"cityguide/internal/cache"
	"cityguide/internal/model"
	"cityguide/internal/repository"
)

const (
	dashboardStatsKey = "dashboard:stats"
	dashboardCacheTTL = time.Minute

	topCitiesLimit     = 4
	recentReviewsLimit = 5
	// newEntityWindow is the period covered by the "new this period" deltas.
	newEntityWindow = 30 * 24 * time.Hour
)

// DashboardStats is the aggregate payload rendered by the admin dashboard.
type DashboardStats struct {
	TotalUsers       int64                 `json:"totalUsers"`
	TotalCities      int64                 `json:"totalCities"`
	TotalCategories  int64                 `json:"totalCategories"`
	TotalAttractions int64                 `json:"totalAttractions"`
	TopCities        []repository.CityStat `json:"topCities"`
	RecentReviews    []model.Review        `json:"recentReviews"`
	NewUsers         int64                 `json:"newUsers"`
	NewAttractions   int64                 `json:"newAttractions"`
	NewCities        int64                 `json:"newCities"`
}

// DashboardService computes cross-entity statistics without mutating state.
type DashboardService interface {
	Stats(ctx context.Context) (*DashboardStats, error)
}

type dashboardService struct {
	cityRepo       repository.CityRepository
	categoryRepo   repository.CategoryRepository
	attractionRepo repository.AttractionRepository
	reviewRepo     repository.ReviewRepository
	userRepo       repository.UserRepository
	cache          *cache.Client
	now            func() time.Time
}

// NewDashboardService creates a new dashboard service.
func NewDashboardService(
	cityRepo repository.CityRepository,
	categoryRepo repository.CategoryRepository,
	attractionRepo repository.AttractionRepository,
	reviewRepo repository.ReviewRepository,
	userRepo repository.UserRepository,
	cache *cache.Client,
) DashboardService {
	return &dashboardService{
		cityRepo:       cityRepo,
		categoryRepo:   categoryRepo,
		attractionRepo: attractionRepo,
		reviewRepo:     reviewRepo,
		userRepo:       userRepo,
		cache:          cache,
		now:            time.Now,
	}
}

// Stats assembles the dashboard aggregate. Results are cached briefly in
// Redis; mutating services invalidate the key.
func (s *dashboardService) Stats(ctx context.Context) (*DashboardStats, error) {
	if data, _ := s.cache.Get(ctx, dashboardStatsKey); data != nil {
		var cached DashboardStats
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	stats := &DashboardStats{
		TopCities:     []repository.CityStat{},
		RecentReviews: []model.Review{},
	}

	var err error
	if stats.TotalUsers, err = s.userRepo.Count(ctx); err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	if stats.TotalCities, err = s.cityRepo.Count(ctx); err != nil {
		return nil, fmt.Errorf("count cities: %w", err)
	}
	if stats.TotalCategories, err = s.categoryRepo.Count(ctx); err != nil {
		return nil, fmt.Errorf("count categories: %w", err)
	}
	if stats.TotalAttractions, err = s.attractionRepo.Count(ctx); err != nil {
		return nil, fmt.Errorf("count attractions: %w", err)
	}

	cityStats, err := s.cityRepo.ListStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("list city stats: %w", err)
	}
	stats.TopCities = rankTopCities(cityStats, topCitiesLimit)

	recent, err := s.reviewRepo.Recent(ctx, recentReviewsLimit)
	if err != nil {
		return nil, fmt.Errorf("recent reviews: %w", err)
	}
	if recent != nil {
		stats.RecentReviews = recent
	}

	since := s.now().Add(-newEntityWindow)
	if stats.NewUsers, err = s.userRepo.CountCreatedSince(ctx, since); err != nil {
		return nil, fmt.Errorf("count new users: %w", err)
	}
	if stats.NewAttractions, err = s.attractionRepo.CountCreatedSince(ctx, since); err != nil {
		return nil, fmt.Errorf("count new attractions: %w", err)
	}
	if stats.NewCities, err = s.cityRepo.CountCreatedSince(ctx, since); err != nil {
		return nil, fmt.Errorf("count new cities: %w", err)
	}

	if payload, err := json.Marshal(stats); err == nil {
		_ = s.cache.Set(ctx, dashboardStatsKey, payload, dashboardCacheTTL)
	}
	return stats, nil
}

// rankTopCities sorts city stats by attraction count descending and keeps the
// first limit entries. The sort is stable, so cities tied on attraction count
// keep their creation order.
func rankTopCities(stats []repository.CityStat, limit int) []repository.CityStat {
	ranked := make([]repository.CityStat, len(stats))
	copy(ranked, stats)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Attractions > ranked[j].Attractions
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
