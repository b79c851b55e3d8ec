package main

import (
	"context"
	"log"

	"github.com/shopspring/decimal"

	"cityguide/internal/cache"
	"cityguide/internal/config"
	"cityguide/internal/db"
	"cityguide/internal/model"
	"cityguide/internal/repository"
	"cityguide/internal/service"
)

type seedAttraction struct {
	name        string
	description string
	latitude    string
	longitude   string
}

type seedCategory struct {
	name        string
	description string
	attractions []seedAttraction
}

type seedCity struct {
	name        string
	description string
	categories  []seedCategory
}

var sampleContent = []seedCity{
	{
		name:        "Paris",
		description: "Capital of France",
		categories: []seedCategory{
			{
				name:        "Museums",
				description: "Art and history museums",
				attractions: []seedAttraction{
					{"Louvre", "World's largest art museum", "48.8606111", "2.3376440"},
					{"Musee d'Orsay", "Impressionist masterpieces", "48.8599614", "2.3265614"},
				},
			},
			{
				name:        "Landmarks",
				description: "Iconic sights",
				attractions: []seedAttraction{
					{"Eiffel Tower", "Wrought-iron lattice tower", "48.8582602", "2.2944991"},
				},
			},
		},
	},
	{
		name:        "Lyon",
		description: "Gastronomic capital of France",
		categories: []seedCategory{
			{
				name:        "Food",
				description: "Bouchons and markets",
				attractions: []seedAttraction{
					{"Les Halles de Lyon", "Indoor food market", "45.7626495", "4.8498245"},
				},
			},
		},
	},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.City{},
		&model.Category{},
		&model.Attraction{},
		&model.Review{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	cityRepo := repository.NewCityRepository(gormDB)
	categoryRepo := repository.NewCategoryRepository(gormDB)
	attractionRepo := repository.NewAttractionRepository(gormDB)
	reviewRepo := repository.NewReviewRepository(gormDB)

	locker := service.NewEntityLocker()
	cityService := service.NewCityService(cityRepo, categoryRepo, attractionRepo, reviewRepo, locker, cacheClient)
	categoryService := service.NewCategoryService(categoryRepo, cityRepo, attractionRepo, reviewRepo, locker, cacheClient)
	attractionService := service.NewAttractionService(attractionRepo, categoryRepo, cityRepo, reviewRepo, locker, cacheClient)

	ctx := context.Background()
	created := 0

	// Content goes through the services so referential checks apply the same
	// way they do for the admin API.
	for _, sc := range sampleContent {
		city, err := cityService.CreateCity(ctx, &model.City{
			Name:        sc.name,
			Description: sc.description,
			Image:       "seed/" + sc.name + ".jpg",
		})
		if err != nil {
			log.Fatalf("Failed to seed city %s: %v", sc.name, err)
		}
		created++

		for _, sg := range sc.categories {
			category, err := categoryService.CreateCategory(ctx, &model.Category{
				Name:        sg.name,
				Description: sg.description,
				Image:       "seed/" + sg.name + ".jpg",
				CityID:      city.ID,
			})
			if err != nil {
				log.Fatalf("Failed to seed category %s: %v", sg.name, err)
			}
			created++

			for _, sa := range sg.attractions {
				attraction := &model.Attraction{
					Name:        sa.name,
					Description: sa.description,
					Image:       "seed/" + sa.name + ".jpg",
					CategoryID:  category.ID,
					CityID:      city.ID,
				}
				attraction.Latitude, err = parseCoordinate(sa.latitude)
				if err != nil {
					log.Fatalf("Bad latitude for %s: %v", sa.name, err)
				}
				attraction.Longitude, err = parseCoordinate(sa.longitude)
				if err != nil {
					log.Fatalf("Bad longitude for %s: %v", sa.name, err)
				}
				if _, err := attractionService.CreateAttraction(ctx, attraction); err != nil {
					log.Fatalf("Failed to seed attraction %s: %v", sa.name, err)
				}
				created++
			}
		}
	}

	log.Printf("Seed complete: %d records created", created)
}

func parseCoordinate(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(s)
}
