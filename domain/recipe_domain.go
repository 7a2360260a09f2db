package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessGetRecipes      = "success get recipes"
	MessageSuccessGetRecipeDetail = "success get recipe detail"
	MessageSuccessCreateRecipe    = "recipe created successfully"
	MessageSuccessUpdateRecipe    = "recipe updated successfully"
	MessageSuccessDeleteRecipe    = "recipe deleted successfully"
	MessageSuccessUploadImage     = "image uploaded successfully"

	MessageFailedGetRecipes      = "failed to get recipes"
	MessageFailedGetRecipeDetail = "failed to get recipe detail"
	MessageFailedCreateRecipe    = "failed to create recipe"
	MessageFailedUpdateRecipe    = "failed to update recipe"
	MessageFailedDeleteRecipe    = "failed to delete recipe"
	MessageFailedUploadImage     = "failed to upload image"

	ErrTitleRequired = errors.New("title is required")

	// Ownership failures deliberately do not distinguish "does not exist"
	// from "owned by someone else". The strings are the exact messages shown
	// in the form UI.
	ErrRecipeNotPermittedEdit   = errors.New("Recipe not found or you don't have permission to edit it")
	ErrRecipeNotPermittedDelete = errors.New("Recipe not found or you don't have permission to delete it")
)

type (
	IngredientInput struct {
		Name     string `json:"name" form:"name" validate:"required"`
		Quantity string `json:"quantity,omitempty" form:"quantity"`
		Unit     string `json:"unit,omitempty" form:"unit"`
	}

	StepInput struct {
		Instruction string `json:"instruction" form:"instruction" validate:"required"`
	}

	RecipeFormData struct {
		Title           string            `json:"title" validate:"required"`
		Description     string            `json:"description,omitempty"`
		Servings        int               `json:"servings,omitempty"`
		PrepTimeMinutes int               `json:"prep_time_minutes,omitempty"`
		CookTimeMinutes int               `json:"cook_time_minutes,omitempty"`
		ImageURL        string            `json:"image_url,omitempty"`
		Ingredients     []IngredientInput `json:"ingredients" validate:"dive"`
		Steps           []StepInput       `json:"steps" validate:"dive"`
		Tags            []string          `json:"tags"`
	}

	IngredientResponse struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		Quantity string `json:"quantity,omitempty"`
		Unit     string `json:"unit,omitempty"`
	}

	StepResponse struct {
		ID          string `json:"id"`
		Order       int    `json:"order"`
		Instruction string `json:"instruction"`
	}

	RecipeSummary struct {
		ID              string    `json:"id"`
		Title           string    `json:"title"`
		Description     string    `json:"description,omitempty"`
		Servings        int       `json:"servings,omitempty"`
		PrepTimeMinutes int       `json:"prep_time_minutes,omitempty"`
		CookTimeMinutes int       `json:"cook_time_minutes,omitempty"`
		ImageURL        string    `json:"image_url,omitempty"`
		Tags            []string  `json:"tags"`
		CreatedAt       time.Time `json:"created_at"`
		UpdatedAt       time.Time `json:"updated_at"`
	}

	RecipeDetail struct {
		RecipeSummary
		Ingredients []IngredientResponse `json:"ingredients"`
		Steps       []StepResponse       `json:"steps"`
	}

	UploadImageResponse struct {
		ImageURL string `json:"image_url"`
	}
)
