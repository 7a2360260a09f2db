package config

import (
	"os"
	"time"

	"recipe-box/internal/api/handlers"
	"recipe-box/internal/api/routes"
	"recipe-box/internal/middleware"
	"recipe-box/internal/utils"
	"recipe-box/internal/utils/storage"
	"recipe-box/pkg/auth"
	"recipe-box/pkg/cache"
	"recipe-box/pkg/recipe"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/template/html/v2"
	"gorm.io/gorm"
)

// Read results are memoized for at most a minute; mutations invalidate the
// affected tags eagerly, the TTL only bounds staleness for everything else.
const cacheTTL = 60 * time.Second

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	engine := html.New("./views", ".html")
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
		Views:             engine,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()
	readCache := cache.New(cache.NewMemoryStore(), cacheTTL)

	// Repository
	authRepository := auth.NewAuthRepository(db)
	recipeRepository := recipe.NewRecipeRepository(db)

	// Service
	authService := auth.NewAuthService(authRepository, auth.NewSMTPMailer())
	recipeService := recipe.NewRecipeService(recipeRepository, readCache)

	// Handler
	userHandler := handlers.NewUserHandler(authService, validator)
	recipeHandler := handlers.NewRecipeHandler(recipeService, validator, s3)
	pageHandler := handlers.NewPageHandler(authService, recipeService)

	// routes
	routesConfig := routes.Config{
		App:           app,
		UserHandler:   userHandler,
		RecipeHandler: recipeHandler,
		PageHandler:   pageHandler,
		Middleware:    middlewares,
		AuthService:   authService,
	}
	routesConfig.Setup()

	return app, nil
}
