package handlers

import (
	"errors"
	"fmt"

	"recipe-box/domain"
	"recipe-box/internal/api/presenters"
	"recipe-box/internal/utils/storage"
	"recipe-box/pkg/recipe"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

var errRecipeNotFound = errors.New("recipe not found")

type (
	RecipeHandler interface {
		GetUserRecipes(c *fiber.Ctx) error
		GetRecipeDetail(c *fiber.Ctx) error
		CreateRecipe(c *fiber.Ctx) error
		UpdateRecipe(c *fiber.Ctx) error
		DeleteRecipe(c *fiber.Ctx) error
		UploadRecipeImage(c *fiber.Ctx) error
	}

	recipeHandler struct {
		recipeService recipe.RecipeService
		validator     *validator.Validate
		s3            storage.AwsS3
	}
)

func NewRecipeHandler(recipeService recipe.RecipeService, validator *validator.Validate, s3 storage.AwsS3) RecipeHandler {
	return &recipeHandler{
		recipeService: recipeService,
		validator:     validator,
		s3:            s3,
	}
}

func (h *recipeHandler) GetUserRecipes(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	recipes, err := h.recipeService.GetUserRecipes(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetRecipes, err)
	}

	return presenters.SuccessResponse(c, recipes, fiber.StatusOK, domain.MessageSuccessGetRecipes)
}

func (h *recipeHandler) GetRecipeDetail(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	recipeID := c.Params("id")

	detail, err := h.recipeService.GetRecipe(c.Context(), recipeID, userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetRecipeDetail, err)
	}
	if detail == nil {
		return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedGetRecipeDetail, errRecipeNotFound)
	}

	return presenters.SuccessResponse(c, detail, fiber.StatusOK, domain.MessageSuccessGetRecipeDetail)
}

func (h *recipeHandler) CreateRecipe(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.RecipeFormData)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateRecipe, err)
	}

	recipeID, err := h.recipeService.CreateRecipe(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateRecipe, err)
	}

	c.Set(fiber.HeaderLocation, "/recipes/"+recipeID)
	return presenters.SuccessResponse(c, fiber.Map{"id": recipeID}, fiber.StatusCreated, domain.MessageSuccessCreateRecipe)
}

func (h *recipeHandler) UpdateRecipe(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	recipeID := c.Params("id")
	req := new(domain.RecipeFormData)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateRecipe, err)
	}

	if err := h.recipeService.UpdateRecipe(c.Context(), recipeID, *req, userID); err != nil {
		if errors.Is(err, domain.ErrRecipeNotPermittedEdit) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedUpdateRecipe, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateRecipe, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{"id": recipeID}, fiber.StatusOK, domain.MessageSuccessUpdateRecipe)
}

func (h *recipeHandler) DeleteRecipe(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	recipeID := c.Params("id")

	if err := h.recipeService.DeleteRecipe(c.Context(), recipeID, userID); err != nil {
		if errors.Is(err, domain.ErrRecipeNotPermittedDelete) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedDeleteRecipe, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeleteRecipe, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteRecipe)
}

func (h *recipeHandler) UploadRecipeImage(c *fiber.Ctx) error {
	file, err := c.FormFile("image")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadImage, err)
	}

	fileName := fmt.Sprintf("%s-%s", uuid.New().String(), file.Filename)
	objectKey, err := h.s3.UploadFile(fileName, file, "recipes", storage.AllowImage...)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadImage, err)
	}

	res := domain.UploadImageResponse{ImageURL: h.s3.GetPublicLinkKey(objectKey)}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessUploadImage)
}
