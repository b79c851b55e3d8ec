package main

import (
	"log"
	"net/http"

	_ "cityguide/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"cityguide/internal/auth"
	"cityguide/internal/cache"
	"cityguide/internal/config"
	"cityguide/internal/db"
	"cityguide/internal/handler"
	"cityguide/internal/logging"
	"cityguide/internal/model"
	"cityguide/internal/repository"
	"cityguide/internal/router"
	"cityguide/internal/service"
)

// @title CityGuide API
// @version 1.0
// @description Tourism guide content API: cities, categories, attractions, reviews, and dashboard statistics.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()
	logging.Init("cityguide", cfg.Environment)

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.City{},
		&model.Category{},
		&model.Attraction{},
		&model.Review{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	cityRepo := repository.NewCityRepository(gormDB)
	categoryRepo := repository.NewCategoryRepository(gormDB)
	attractionRepo := repository.NewAttractionRepository(gormDB)
	reviewRepo := repository.NewReviewRepository(gormDB)
	userRepo := repository.NewUserRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// One locker shared by every mutating service, so writers to the same
	// subtree always exclude each other.
	locker := service.NewEntityLocker()

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, tokenStore)
	cityService := service.NewCityService(cityRepo, categoryRepo, attractionRepo, reviewRepo, locker, cacheClient)
	categoryService := service.NewCategoryService(categoryRepo, cityRepo, attractionRepo, reviewRepo, locker, cacheClient)
	attractionService := service.NewAttractionService(attractionRepo, categoryRepo, cityRepo, reviewRepo, locker, cacheClient)
	reviewService := service.NewReviewService(reviewRepo, attractionRepo, userRepo, locker, cacheClient)
	dashboardService := service.NewDashboardService(cityRepo, categoryRepo, attractionRepo, reviewRepo, userRepo, cacheClient)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	cityHandler := handler.NewCityHandler(cityService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	attractionHandler := handler.NewAttractionHandler(attractionService)
	reviewHandler := handler.NewReviewHandler(reviewService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)

	// Register routes
	router.Register(
		e,
		cfg,
		authHandler,
		cityHandler,
		categoryHandler,
		attractionHandler,
		reviewHandler,
		dashboardHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
