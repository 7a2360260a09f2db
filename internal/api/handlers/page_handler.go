package handlers

import (
	"strings"

	"recipe-box/domain"
	"recipe-box/internal/middleware"
	"recipe-box/internal/utils"
	"recipe-box/pkg/auth"
	"recipe-box/pkg/recipe"

	"github.com/gofiber/fiber/v2"
)

type (
	// PageHandler serves the HTML surface. Forms post back here and are
	// answered with redirects; errors re-render the page inline.
	PageHandler interface {
		SignInPage(c *fiber.Ctx) error
		SignUpPage(c *fiber.Ctx) error
		SignInForm(c *fiber.Ctx) error
		SignUpForm(c *fiber.Ctx) error
		SignOutForm(c *fiber.Ctx) error

		RecipesPage(c *fiber.Ctx) error
		RecipeDetailPage(c *fiber.Ctx) error
		NewRecipePage(c *fiber.Ctx) error
		EditRecipePage(c *fiber.Ctx) error
		CreateRecipeForm(c *fiber.Ctx) error
		UpdateRecipeForm(c *fiber.Ctx) error
		DeleteRecipeForm(c *fiber.Ctx) error
	}

	pageHandler struct {
		authService   auth.AuthService
		recipeService recipe.RecipeService
	}
)

func NewPageHandler(authService auth.AuthService, recipeService recipe.RecipeService) PageHandler {
	return &pageHandler{
		authService:   authService,
		recipeService: recipeService,
	}
}

func (h *pageHandler) SignInPage(c *fiber.Ctx) error {
	return c.Render("signin", fiber.Map{}, "layouts/main")
}

func (h *pageHandler) SignUpPage(c *fiber.Ctx) error {
	return c.Render("signup", fiber.Map{}, "layouts/main")
}

func (h *pageHandler) SignInForm(c *fiber.Ctx) error {
	req := domain.LoginRequest{
		Email:    c.FormValue("email"),
		Password: c.FormValue("password"),
	}

	res, err := h.authService.Login(c.Context(), req, c.IP(), c.Get(fiber.HeaderUserAgent))
	if err != nil {
		return c.Render("signin", fiber.Map{"Error": err.Error()}, "layouts/main")
	}

	setSessionCookie(c, res.Token, res.ExpiresAt)
	return c.Redirect("/recipes", fiber.StatusSeeOther)
}

func (h *pageHandler) SignUpForm(c *fiber.Ctx) error {
	req := domain.RegisterRequest{
		Name:     c.FormValue("name"),
		Email:    c.FormValue("email"),
		Password: c.FormValue("password"),
	}

	if _, err := h.authService.Register(c.Context(), req); err != nil {
		return c.Render("signup", fiber.Map{"Error": err.Error()}, "layouts/main")
	}

	return c.Redirect("/signin", fiber.StatusSeeOther)
}

func (h *pageHandler) SignOutForm(c *fiber.Ctx) error {
	if token := middleware.SessionToken(c); token != "" {
		_ = h.authService.Logout(c.Context(), token)
	}
	clearSessionCookie(c)
	return c.Redirect("/signin", fiber.StatusSeeOther)
}

func (h *pageHandler) RecipesPage(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	recipes, err := h.recipeService.GetUserRecipes(c.Context(), userID)
	if err != nil {
		return c.Render("recipes/index", fiber.Map{
			"UserName": c.Locals("user_name"),
			"Error":    err.Error(),
		}, "layouts/main")
	}

	return c.Render("recipes/index", fiber.Map{
		"UserName": c.Locals("user_name"),
		"Recipes":  recipes,
	}, "layouts/main")
}

func (h *pageHandler) RecipeDetailPage(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	detail, err := h.recipeService.GetRecipe(c.Context(), c.Params("id"), userID)
	if err != nil {
		return err
	}
	if detail == nil {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{}, "layouts/main")
	}

	return c.Render("recipes/detail", fiber.Map{
		"UserName": c.Locals("user_name"),
		"Recipe":   detail,
	}, "layouts/main")
}

func (h *pageHandler) NewRecipePage(c *fiber.Ctx) error {
	return c.Render("recipes/form", fiber.Map{
		"UserName": c.Locals("user_name"),
		"Action":   "/recipes",
	}, "layouts/main")
}

func (h *pageHandler) EditRecipePage(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	recipeID := c.Params("id")

	detail, err := h.recipeService.GetRecipe(c.Context(), recipeID, userID)
	if err != nil {
		return err
	}
	if detail == nil {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{}, "layouts/main")
	}

	return c.Render("recipes/form", fiber.Map{
		"UserName": c.Locals("user_name"),
		"Action":   "/recipes/" + recipeID,
		"Recipe":   detail,
		"Tags":     strings.Join(detail.Tags, ", "),
	}, "layouts/main")
}

func (h *pageHandler) CreateRecipeForm(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	form := parseRecipeForm(c)

	if _, err := h.recipeService.CreateRecipe(c.Context(), form, userID); err != nil {
		return c.Render("recipes/form", fiber.Map{
			"UserName": c.Locals("user_name"),
			"Action":   "/recipes",
			"Error":    err.Error(),
		}, "layouts/main")
	}

	return c.Redirect("/recipes", fiber.StatusSeeOther)
}

func (h *pageHandler) UpdateRecipeForm(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	recipeID := c.Params("id")
	form := parseRecipeForm(c)

	if err := h.recipeService.UpdateRecipe(c.Context(), recipeID, form, userID); err != nil {
		return c.Render("recipes/form", fiber.Map{
			"UserName": c.Locals("user_name"),
			"Action":   "/recipes/" + recipeID,
			"Error":    err.Error(),
		}, "layouts/main")
	}

	return c.Redirect("/recipes/"+recipeID, fiber.StatusSeeOther)
}

func (h *pageHandler) DeleteRecipeForm(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	if err := h.recipeService.DeleteRecipe(c.Context(), c.Params("id"), userID); err != nil {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{}, "layouts/main")
	}

	return c.Redirect("/recipes", fiber.StatusSeeOther)
}

// parseRecipeForm reads the recipe form's parallel field arrays. Numeric
// fields coerce blank or non-numeric input to absent; rows with no name or
// instruction are dropped.
func parseRecipeForm(c *fiber.Ctx) domain.RecipeFormData {
	form := domain.RecipeFormData{
		Title:           c.FormValue("title"),
		Description:     c.FormValue("description"),
		Servings:        utils.CoerceInt(c.FormValue("servings")),
		PrepTimeMinutes: utils.CoerceInt(c.FormValue("prep_time")),
		CookTimeMinutes: utils.CoerceInt(c.FormValue("cook_time")),
		ImageURL:        c.FormValue("image_url"),
		Tags:            utils.SplitTags(c.FormValue("tags")),
	}

	args := c.Context().PostArgs()
	names := args.PeekMulti("ingredient_name")
	quantities := args.PeekMulti("ingredient_quantity")
	units := args.PeekMulti("ingredient_unit")
	for i, raw := range names {
		name := strings.TrimSpace(string(raw))
		if name == "" {
			continue
		}
		ingredient := domain.IngredientInput{Name: name}
		if i < len(quantities) {
			ingredient.Quantity = string(quantities[i])
		}
		if i < len(units) {
			ingredient.Unit = string(units[i])
		}
		form.Ingredients = append(form.Ingredients, ingredient)
	}

	for _, raw := range args.PeekMulti("step_instruction") {
		instruction := strings.TrimSpace(string(raw))
		if instruction == "" {
			continue
		}
		form.Steps = append(form.Steps, domain.StepInput{Instruction: instruction})
	}

	return form
}
