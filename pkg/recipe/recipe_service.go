package recipe

import (
	"context"
	"errors"
	"strings"

	"recipe-box/domain"
	"recipe-box/entities"
	"recipe-box/internal/utils"
	"recipe-box/pkg/cache"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	RecipeService interface {
		CreateRecipe(ctx context.Context, form domain.RecipeFormData, userID string) (string, error)
		UpdateRecipe(ctx context.Context, recipeID string, form domain.RecipeFormData, userID string) error
		DeleteRecipe(ctx context.Context, recipeID string, userID string) error
		GetUserRecipes(ctx context.Context, userID string) ([]domain.RecipeSummary, error)
		GetRecipe(ctx context.Context, recipeID string, userID string) (*domain.RecipeDetail, error)
	}

	recipeService struct {
		recipeRepository RecipeRepository
		cache            *cache.Cache
	}
)

func NewRecipeService(recipeRepository RecipeRepository, cache *cache.Cache) RecipeService {
	return &recipeService{
		recipeRepository: recipeRepository,
		cache:            cache,
	}
}

// Cache labels. A mutation invalidates by tag so every cached view that
// could embed the recipe is dropped without enumerating keys.
func userRecipesTag(userID string) string {
	return "user-recipes-" + userID
}

func recipeTag(recipeID string) string {
	return "recipe-" + recipeID
}

func recipeKey(recipeID, userID string) string {
	return "recipe-" + recipeID + "-" + userID
}

func (s *recipeService) CreateRecipe(ctx context.Context, form domain.RecipeFormData, userID string) (string, error) {
	authorID, err := uuid.Parse(userID)
	if err != nil {
		return "", domain.ErrParseUUID
	}

	title := strings.TrimSpace(form.Title)
	if title == "" {
		return "", domain.ErrTitleRequired
	}

	recipeID := uuid.New()
	recipe := &entities.Recipe{
		ID:              recipeID,
		Title:           title,
		Description:     utils.OptionalString(form.Description),
		Servings:        utils.OptionalInt(form.Servings),
		PrepTimeMinutes: utils.OptionalInt(form.PrepTimeMinutes),
		CookTimeMinutes: utils.OptionalInt(form.CookTimeMinutes),
		ImageURL:        utils.OptionalString(form.ImageURL),
		AuthorID:        authorID,
	}

	ingredients, steps := buildChildren(recipeID, form)
	tagNames := normalizeTags(form.Tags)

	if err := s.recipeRepository.CreateRecipe(ctx, recipe, ingredients, steps, tagNames); err != nil {
		return "", err
	}

	s.cache.Invalidate(userRecipesTag(userID))
	return recipeID.String(), nil
}

func (s *recipeService) UpdateRecipe(ctx context.Context, recipeID string, form domain.RecipeFormData, userID string) error {
	id, authorID, err := parseIDs(recipeID, userID)
	if err != nil {
		return domain.ErrRecipeNotPermittedEdit
	}

	title := strings.TrimSpace(form.Title)
	if title == "" {
		return domain.ErrTitleRequired
	}

	if _, err := s.recipeRepository.GetOwnedRecipe(ctx, id, authorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrRecipeNotPermittedEdit
		}
		return err
	}

	recipe := &entities.Recipe{
		ID:              id,
		Title:           title,
		Description:     utils.OptionalString(form.Description),
		Servings:        utils.OptionalInt(form.Servings),
		PrepTimeMinutes: utils.OptionalInt(form.PrepTimeMinutes),
		CookTimeMinutes: utils.OptionalInt(form.CookTimeMinutes),
		ImageURL:        utils.OptionalString(form.ImageURL),
		AuthorID:        authorID,
	}

	ingredients, steps := buildChildren(id, form)
	tagNames := normalizeTags(form.Tags)

	if err := s.recipeRepository.ReplaceRecipe(ctx, recipe, ingredients, steps, tagNames); err != nil {
		return err
	}

	s.cache.Invalidate(userRecipesTag(userID), recipeTag(recipeID))
	return nil
}

func (s *recipeService) DeleteRecipe(ctx context.Context, recipeID string, userID string) error {
	id, authorID, err := parseIDs(recipeID, userID)
	if err != nil {
		return domain.ErrRecipeNotPermittedDelete
	}

	if _, err := s.recipeRepository.GetOwnedRecipe(ctx, id, authorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrRecipeNotPermittedDelete
		}
		return err
	}

	if err := s.recipeRepository.SoftDeleteRecipe(ctx, id); err != nil {
		return err
	}

	s.cache.Invalidate(userRecipesTag(userID), recipeTag(recipeID))
	return nil
}

func (s *recipeService) GetUserRecipes(ctx context.Context, userID string) ([]domain.RecipeSummary, error) {
	authorID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	key := userRecipesTag(userID)
	return cache.GetOrLoad(ctx, s.cache, key, []string{key}, func(ctx context.Context) ([]domain.RecipeSummary, error) {
		recipes, err := s.recipeRepository.GetRecipesByAuthor(ctx, authorID)
		if err != nil {
			return nil, err
		}

		summaries := make([]domain.RecipeSummary, 0, len(recipes))
		for _, recipe := range recipes {
			summaries = append(summaries, toSummary(recipe))
		}
		return summaries, nil
	})
}

// GetRecipe returns nil when the recipe is missing, soft-deleted, or owned
// by someone else. Absent results are not memoized, so a freshly created id
// is never masked by a cached miss.
func (s *recipeService) GetRecipe(ctx context.Context, recipeID string, userID string) (*domain.RecipeDetail, error) {
	id, authorID, err := parseIDs(recipeID, userID)
	if err != nil {
		return nil, nil
	}

	key := recipeKey(recipeID, userID)
	tags := []string{recipeTag(recipeID), userRecipesTag(userID)}
	detail, err := cache.GetOrLoad(ctx, s.cache, key, tags, func(ctx context.Context) (*domain.RecipeDetail, error) {
		recipe, err := s.recipeRepository.GetRecipeWithChildren(ctx, id, authorID)
		if err != nil {
			return nil, err
		}
		return toDetail(recipe), nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return detail, nil
}

func parseIDs(recipeID, userID string) (uuid.UUID, uuid.UUID, error) {
	id, err := uuid.Parse(recipeID)
	if err != nil {
		return uuid.Nil, uuid.Nil, domain.ErrParseUUID
	}
	authorID, err := uuid.Parse(userID)
	if err != nil {
		return uuid.Nil, uuid.Nil, domain.ErrParseUUID
	}
	return id, authorID, nil
}

func buildChildren(recipeID uuid.UUID, form domain.RecipeFormData) ([]*entities.Ingredient, []*entities.Step) {
	ingredients := make([]*entities.Ingredient, 0, len(form.Ingredients))
	for _, ing := range form.Ingredients {
		ingredients = append(ingredients, &entities.Ingredient{
			ID:       uuid.New(),
			Name:     ing.Name,
			Quantity: utils.OptionalString(ing.Quantity),
			Unit:     utils.OptionalString(ing.Unit),
			RecipeID: recipeID,
		})
	}

	// Step order is the 1-based position in the submitted list, never
	// user-supplied.
	steps := make([]*entities.Step, 0, len(form.Steps))
	for index, step := range form.Steps {
		steps = append(steps, &entities.Step{
			ID:          uuid.New(),
			Order:       index + 1,
			Instruction: step.Instruction,
			RecipeID:    recipeID,
		})
	}
	return ingredients, steps
}

func normalizeTags(raw []string) []string {
	names := make([]string, 0, len(raw))
	for _, tag := range raw {
		name := utils.NormalizeTag(tag)
		if name == "" {
			continue
		}
		names = append(names, name)
	}
	return names
}

func toSummary(recipe *entities.Recipe) domain.RecipeSummary {
	summary := domain.RecipeSummary{
		ID:        recipe.ID.String(),
		Title:     recipe.Title,
		Tags:      make([]string, 0, len(recipe.Tags)),
		CreatedAt: recipe.CreatedAt,
		UpdatedAt: recipe.UpdatedAt,
	}
	if recipe.Description != nil {
		summary.Description = *recipe.Description
	}
	if recipe.Servings != nil {
		summary.Servings = *recipe.Servings
	}
	if recipe.PrepTimeMinutes != nil {
		summary.PrepTimeMinutes = *recipe.PrepTimeMinutes
	}
	if recipe.CookTimeMinutes != nil {
		summary.CookTimeMinutes = *recipe.CookTimeMinutes
	}
	if recipe.ImageURL != nil {
		summary.ImageURL = *recipe.ImageURL
	}
	for _, tag := range recipe.Tags {
		summary.Tags = append(summary.Tags, tag.Name)
	}
	return summary
}

func toDetail(recipe *entities.Recipe) *domain.RecipeDetail {
	detail := &domain.RecipeDetail{
		RecipeSummary: toSummary(recipe),
		Ingredients:   make([]domain.IngredientResponse, 0, len(recipe.Ingredients)),
		Steps:         make([]domain.StepResponse, 0, len(recipe.Steps)),
	}
	for _, ing := range recipe.Ingredients {
		resp := domain.IngredientResponse{
			ID:   ing.ID.String(),
			Name: ing.Name,
		}
		if ing.Quantity != nil {
			resp.Quantity = *ing.Quantity
		}
		if ing.Unit != nil {
			resp.Unit = *ing.Unit
		}
		detail.Ingredients = append(detail.Ingredients, resp)
	}
	for _, step := range recipe.Steps {
		detail.Steps = append(detail.Steps, domain.StepResponse{
			ID:          step.ID.String(),
			Order:       step.Order,
			Instruction: step.Instruction,
		})
	}
	return detail
}
