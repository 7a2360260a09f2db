package routes

import (
	"recipe-box/internal/api/handlers"
	"recipe-box/internal/middleware"
	"recipe-box/pkg/auth"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App           *fiber.App
	UserHandler   handlers.UserHandler
	RecipeHandler handlers.RecipeHandler
	PageHandler   handlers.PageHandler
	Middleware    middleware.Middleware
	AuthService   auth.AuthService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.User()
	c.Recipes()
	c.Pages()
	c.GuestRoute()
}

func (c *Config) User() {
	user := c.App.Group("/api/v1/users")
	// user routes
	{
		user.Post("/register", c.UserHandler.Register)
		user.Post("/login", c.UserHandler.Login)
		user.Post("/logout", c.UserHandler.Logout)
		user.Get("/verify", c.UserHandler.VerifyEmail)
		user.Get("/me", c.Middleware.AuthMiddleware(c.AuthService), c.UserHandler.Me)
	}
}

func (c *Config) Recipes() {
	recipes := c.App.Group("/api/v1/recipes", c.Middleware.AuthMiddleware(c.AuthService))

	recipes.Get("", c.RecipeHandler.GetUserRecipes)
	recipes.Post("", c.RecipeHandler.CreateRecipe)
	recipes.Post("/image", c.RecipeHandler.UploadRecipeImage)
	recipes.Get("/:id", c.RecipeHandler.GetRecipeDetail)
	recipes.Put("/:id", c.RecipeHandler.UpdateRecipe)
	recipes.Delete("/:id", c.RecipeHandler.DeleteRecipe)
}

func (c *Config) Pages() {
	c.App.Get("/signin", c.PageHandler.SignInPage)
	c.App.Get("/signup", c.PageHandler.SignUpPage)
	c.App.Post("/signin", c.PageHandler.SignInForm)
	c.App.Post("/signup", c.PageHandler.SignUpForm)
	c.App.Post("/signout", c.PageHandler.SignOutForm)

	pages := c.App.Group("/recipes", c.Middleware.PageAuthMiddleware(c.AuthService))
	pages.Get("", c.PageHandler.RecipesPage)
	pages.Post("", c.PageHandler.CreateRecipeForm)
	pages.Get("/new", c.PageHandler.NewRecipePage)
	pages.Get("/:id", c.PageHandler.RecipeDetailPage)
	pages.Post("/:id", c.PageHandler.UpdateRecipeForm)
	pages.Get("/:id/edit", c.PageHandler.EditRecipePage)
	pages.Post("/:id/delete", c.PageHandler.DeleteRecipeForm)
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
	c.App.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect("/recipes", fiber.StatusSeeOther)
	})
}
