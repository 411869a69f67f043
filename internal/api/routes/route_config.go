package routes

import (
	"github.com/gofiber/fiber/v2"

	"FreshFocus-Backend/internal/api/handlers"
	"FreshFocus-Backend/internal/middleware"
	"FreshFocus-Backend/pkg/jwt"
)

type Config struct {
	App               *fiber.App
	UserHandler       handlers.UserHandler
	PantryHandler     handlers.PantryHandler
	ScanHandler       handlers.ScanHandler
	RecipeHandler     handlers.RecipeHandler
	PreferenceHandler handlers.PreferenceHandler
	Middleware        middleware.Middleware
	JWTService        jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.User()
	c.Pantry()
	c.Scan()
	c.Recipes()
	c.Preferences()
	c.GuestRoute()
}

func (c *Config) User() {
	user := c.App.Group("/api/v1/users")
	// user routes
	{
		user.Post("/register", c.UserHandler.Register)
		user.Post("/login", c.UserHandler.Login)
		user.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Me)
	}
}

func (c *Config) Pantry() {
	pantry := c.App.Group("/api/v1/pantry", c.Middleware.AuthMiddleware(c.JWTService))
	pantry.Get("/dashboard", c.PantryHandler.GetDashboardStats)
	pantry.Get("/selected", c.PantryHandler.GetSelectedIngredients)

	// Basic CRUD operations
	pantry.Post("", c.PantryHandler.AddIngredients)
	pantry.Get("", c.PantryHandler.GetIngredients)
	pantry.Delete("/:id", c.PantryHandler.DeleteIngredient)

	// Consumption and selection
	pantry.Post("/:id/use", c.PantryHandler.UseIngredient)
	pantry.Post("/:id/decrease", c.PantryHandler.DecreaseIngredient)
	pantry.Put("/:id/select", c.PantryHandler.SelectIngredient)
}

func (c *Config) Scan() {
	scan := c.App.Group("/api/v1/scan", c.Middleware.AuthMiddleware(c.JWTService))
	scan.Post("", c.ScanHandler.AnalyzeImage)
	scan.Get("", c.ScanHandler.GetSession)
	scan.Patch("/items/:index", c.ScanHandler.EditItem)
	scan.Post("/save", c.ScanHandler.SaveItems)
	scan.Post("/cancel", c.ScanHandler.CancelScan)
}

func (c *Config) Recipes() {
	recipes := c.App.Group("/api/v1/recipes", c.Middleware.AuthMiddleware(c.JWTService))
	recipes.Post("/generate", c.RecipeHandler.GenerateRecipes)
	recipes.Get("", c.RecipeHandler.GetRecipes)
}

func (c *Config) Preferences() {
	preferences := c.App.Group("/api/v1/preferences", c.Middleware.AuthMiddleware(c.JWTService))
	preferences.Get("", c.PreferenceHandler.GetPreferences)
	preferences.Put("/goal", c.PreferenceHandler.UpdateGoal)
	preferences.Post("/restrictions", c.PreferenceHandler.ToggleRestriction)
	preferences.Put("/tastes", c.PreferenceHandler.UpdateTastes)
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}
