package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"cityguide/internal/config"
	"cityguide/internal/handler"
)

// Register wires routes and middleware. Reads are public; content mutations
// require a JWT issued by the auth handler.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	cityHandler *handler.CityHandler,
	categoryHandler *handler.CategoryHandler,
	attractionHandler *handler.AttractionHandler,
	reviewHandler *handler.ReviewHandler,
	dashboardHandler *handler.DashboardHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/signup", authHandler.Signup)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)
	api.POST("/auth/logout", authHandler.Logout)
	api.POST("/auth/forgot-password", authHandler.ForgotPassword)
	api.POST("/auth/verify-otp", authHandler.VerifyOTP)
	api.POST("/auth/reset-password", authHandler.ResetPassword)

	// Public reads for the end-user application
	api.GET("/cities", cityHandler.ListCities)
	api.GET("/categories", categoryHandler.ListCategories)
	api.GET("/categories/by-city", categoryHandler.CategoriesByCityName)
	api.GET("/attractions", attractionHandler.ListAttractions)
	api.GET("/attractions/search", attractionHandler.SearchAttractions)
	api.GET("/attractions/by-name", attractionHandler.AttractionByName)
	api.GET("/reviews", reviewHandler.ListReviews)

	// End users post reviews from the consumer app
	api.POST("/reviews", reviewHandler.AddReview)

	// Secured routes (require JWT authentication)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
	}))

	secured.GET("/me", authHandler.Profile)
	secured.GET("/users", authHandler.ListUsers)

	secured.POST("/cities", cityHandler.CreateCity)
	secured.PUT("/cities/:id", cityHandler.UpdateCity)
	secured.DELETE("/cities/:id", cityHandler.DeleteCity)

	secured.POST("/categories", categoryHandler.CreateCategory)
	secured.PUT("/categories/:id", categoryHandler.UpdateCategory)
	secured.DELETE("/categories/:id", categoryHandler.DeleteCategory)

	secured.POST("/attractions", attractionHandler.CreateAttraction)
	secured.PUT("/attractions/:id", attractionHandler.UpdateAttraction)
	secured.DELETE("/attractions/:id", attractionHandler.DeleteAttraction)

	secured.DELETE("/reviews/:id", reviewHandler.DeleteReview)

	secured.GET("/dashboard/stats", dashboardHandler.Stats)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
