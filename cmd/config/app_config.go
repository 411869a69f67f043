package config

import (
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"

	"FreshFocus-Backend/internal/api/handlers"
	"FreshFocus-Backend/internal/api/routes"
	"FreshFocus-Backend/internal/middleware"
	"FreshFocus-Backend/internal/utils"
	"FreshFocus-Backend/internal/utils/storage"
	"FreshFocus-Backend/pkg/gemini"
	"FreshFocus-Backend/pkg/jwt"
	"FreshFocus-Backend/pkg/pantry"
	"FreshFocus-Backend/pkg/preference"
	"FreshFocus-Backend/pkg/recipe"
	"FreshFocus-Backend/pkg/scan"
	"FreshFocus-Backend/pkg/user"
)

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
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
		TimeZone:   "UTC",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()
	geminiClient := gemini.NewClient(
		utils.GetConfig("GEMINI_API_KEY"),
		utils.GetConfig("GEMINI_MODEL"),
	)

	// Repository
	userRepository := user.NewUserRepository(db)
	pantryRepository := pantry.NewPantryRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	userService := user.NewUserService(userRepository, jwtService)
	pantryService := pantry.NewPantryService(pantryRepository)
	preferenceService := preference.NewPreferenceService()
	scanService := scan.NewScanService(pantryService, geminiClient, s3)
	recipeService := recipe.NewRecipeService(pantryService, preferenceService, geminiClient)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	pantryHandler := handlers.NewPantryHandler(pantryService, validator)
	scanHandler := handlers.NewScanHandler(scanService, validator)
	recipeHandler := handlers.NewRecipeHandler(recipeService, validator)
	preferenceHandler := handlers.NewPreferenceHandler(preferenceService, validator)

	// routes
	routesConfig := routes.Config{
		App:               app,
		UserHandler:       userHandler,
		PantryHandler:     pantryHandler,
		ScanHandler:       scanHandler,
		RecipeHandler:     recipeHandler,
		PreferenceHandler: preferenceHandler,
		Middleware:        middlewares,
		JWTService:        jwtService,
	}
	routesConfig.Setup()
	return app, nil
}
