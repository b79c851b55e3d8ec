package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"cityguide/internal/model"
	"cityguide/internal/repository"
)

func TestDashboardStats(t *testing.T) {
	cityRepo := new(MockCityRepository)
	categoryRepo := new(MockCategoryRepository)
	attractionRepo := new(MockAttractionRepository)
	reviewRepo := new(MockReviewRepository)
	userRepo := new(MockUserRepository)

	svc := NewDashboardService(cityRepo, categoryRepo, attractionRepo, reviewRepo, userRepo, nil).(*dashboardService)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }
	since := now.Add(-30 * 24 * time.Hour)

	userRepo.On("Count", mock.Anything).Return(int64(42), nil)
	cityRepo.On("Count", mock.Anything).Return(int64(3), nil)
	categoryRepo.On("Count", mock.Anything).Return(int64(7), nil)
	attractionRepo.On("Count", mock.Anything).Return(int64(19), nil)

	cityRepo.On("ListStats", mock.Anything).Return([]repository.CityStat{
		{Name: "Paris", Attractions: 5},
		{Name: "Lyon", Attractions: 8},
		{Name: "Nice", Attractions: 2},
	}, nil)
	reviewRepo.On("Recent", mock.Anything, 5).Return([]model.Review{
		{Comment: "latest"}, {Comment: "older"},
	}, nil)

	userRepo.On("CountCreatedSince", mock.Anything, since).Return(int64(4), nil)
	attractionRepo.On("CountCreatedSince", mock.Anything, since).Return(int64(2), nil)
	cityRepo.On("CountCreatedSince", mock.Anything, since).Return(int64(1), nil)

	stats, err := svc.Stats(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, int64(42), stats.TotalUsers)
	assert.Equal(t, int64(3), stats.TotalCities)
	assert.Equal(t, int64(7), stats.TotalCategories)
	assert.Equal(t, int64(19), stats.TotalAttractions)
	assert.Equal(t, "Lyon", stats.TopCities[0].Name)
	assert.Equal(t, "Paris", stats.TopCities[1].Name)
	assert.Equal(t, "Nice", stats.TopCities[2].Name)
	assert.Len(t, stats.RecentReviews, 2)
	assert.Equal(t, "latest", stats.RecentReviews[0].Comment)
	assert.Equal(t, int64(4), stats.NewUsers)
	assert.Equal(t, int64(2), stats.NewAttractions)
	assert.Equal(t, int64(1), stats.NewCities)
}

func TestDashboardStats_EmptyPlatform(t *testing.T) {
	cityRepo := new(MockCityRepository)
	categoryRepo := new(MockCategoryRepository)
	attractionRepo := new(MockAttractionRepository)
	reviewRepo := new(MockReviewRepository)
	userRepo := new(MockUserRepository)

	svc := NewDashboardService(cityRepo, categoryRepo, attractionRepo, reviewRepo, userRepo, nil)

	userRepo.On("Count", mock.Anything).Return(int64(0), nil)
	cityRepo.On("Count", mock.Anything).Return(int64(0), nil)
	categoryRepo.On("Count", mock.Anything).Return(int64(0), nil)
	attractionRepo.On("Count", mock.Anything).Return(int64(0), nil)
	cityRepo.On("ListStats", mock.Anything).Return([]repository.CityStat{}, nil)
	reviewRepo.On("Recent", mock.Anything, 5).Return([]model.Review{}, nil)
	userRepo.On("CountCreatedSince", mock.Anything, mock.Anything).Return(int64(0), nil)
	attractionRepo.On("CountCreatedSince", mock.Anything, mock.Anything).Return(int64(0), nil)
	cityRepo.On("CountCreatedSince", mock.Anything, mock.Anything).Return(int64(0), nil)

	stats, err := svc.Stats(context.Background())

	assert.NoError(t, err)
	assert.Zero(t, stats.TotalUsers)
	// Zero-valued slices serialize as [], not null.
	assert.NotNil(t, stats.TopCities)
	assert.NotNil(t, stats.RecentReviews)
	assert.Empty(t, stats.TopCities)
	assert.Empty(t, stats.RecentReviews)
}

func TestRankTopCities(t *testing.T) {
	// Creation order; B and D tie on attraction count.
	stats := []repository.CityStat{
		{Name: "A", Attractions: 5},
		{Name: "B", Attractions: 8},
		{Name: "C", Attractions: 1},
		{Name: "D", Attractions: 8},
		{Name: "E", Attractions: 3},
	}

	ranked := rankTopCities(stats, 4)

	assert.Len(t, ranked, 4)
	assert.Equal(t, "B", ranked[0].Name)
	// Stable sort keeps the earlier-created city first on ties.
	assert.Equal(t, "D", ranked[1].Name)
	assert.Equal(t, "A", ranked[2].Name)
	assert.Equal(t, "E", ranked[3].Name)
	// Input order is untouched.
	assert.Equal(t, "A", stats[0].Name)
}

func TestRankTopCities_FewerThanLimit(t *testing.T) {
	stats := []repository.CityStat{
		{Name: "A", Attractions: 0},
		{Name: "B", Attractions: 2},
	}

	ranked := rankTopCities(stats, 4)

	assert.Len(t, ranked, 2)
	assert.Equal(t, "B", ranked[0].Name)
	assert.Equal(t, "A", ranked[1].Name)
}
