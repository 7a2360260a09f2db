package recipe

import (
	"context"
	"errors"
	"time"

	"recipe-box/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	RecipeRepository interface {
		CreateRecipe(ctx context.Context, recipe *entities.Recipe, ingredients []*entities.Ingredient, steps []*entities.Step, tagNames []string) error
		ReplaceRecipe(ctx context.Context, recipe *entities.Recipe, ingredients []*entities.Ingredient, steps []*entities.Step, tagNames []string) error
		SoftDeleteRecipe(ctx context.Context, recipeID uuid.UUID) error
		GetOwnedRecipe(ctx context.Context, recipeID, authorID uuid.UUID) (*entities.Recipe, error)
		GetRecipeWithChildren(ctx context.Context, recipeID, authorID uuid.UUID) (*entities.Recipe, error)
		GetRecipesByAuthor(ctx context.Context, authorID uuid.UUID) ([]*entities.Recipe, error)
	}

	recipeRepository struct {
		db *gorm.DB
	}
)

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

// CreateRecipe persists the whole aggregate in one transaction: the recipe
// row, its ingredients and steps, and a lookup-or-create plus link for every
// tag name. Any failure rolls the aggregate back.
func (r *recipeRepository) CreateRecipe(ctx context.Context, recipe *entities.Recipe, ingredients []*entities.Ingredient, steps []*entities.Step, tagNames []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(recipe).Error; err != nil {
			return err
		}
		return insertChildren(tx, recipe.ID, ingredients, steps, tagNames)
	})
}

// ReplaceRecipe updates the recipe's mutable columns and swaps out ALL of
// its children for the submitted set. Full replace, no diffing.
func (r *recipeRepository) ReplaceRecipe(ctx context.Context, recipe *entities.Recipe, ingredients []*entities.Ingredient, steps []*entities.Step, tagNames []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"title":       recipe.Title,
			"description": recipe.Description,
			"servings":    recipe.Servings,
			"prep_time":   recipe.PrepTimeMinutes,
			"cook_time":   recipe.CookTimeMinutes,
			"image_url":   recipe.ImageURL,
			"updated_at":  time.Now(),
		}
		if err := tx.Model(&entities.Recipe{}).Where("id = ?", recipe.ID).Updates(updates).Error; err != nil {
			return err
		}

		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&entities.Ingredient{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&entities.Step{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&entities.RecipeTag{}).Error; err != nil {
			return err
		}

		return insertChildren(tx, recipe.ID, ingredients, steps, tagNames)
	})
}

// SoftDeleteRecipe marks the recipe row deleted. Children and tag links are
// left in place; they become unreachable through the parent filter.
func (r *recipeRepository) SoftDeleteRecipe(ctx context.Context, recipeID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", recipeID).Delete(&entities.Recipe{}).Error
}

func (r *recipeRepository) GetOwnedRecipe(ctx context.Context, recipeID, authorID uuid.UUID) (*entities.Recipe, error) {
	var recipe entities.Recipe
	if err := r.db.WithContext(ctx).
		Where("id = ? AND author_id = ?", recipeID, authorID).
		First(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) GetRecipeWithChildren(ctx context.Context, recipeID, authorID uuid.UUID) (*entities.Recipe, error) {
	var recipe entities.Recipe
	if err := r.db.WithContext(ctx).
		Preload("Ingredients").
		Preload("Steps", func(db *gorm.DB) *gorm.DB {
			return db.Order(`"order" ASC`)
		}).
		Preload("Tags").
		Where("id = ? AND author_id = ?", recipeID, authorID).
		First(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) GetRecipesByAuthor(ctx context.Context, authorID uuid.UUID) ([]*entities.Recipe, error) {
	var recipes []*entities.Recipe
	if err := r.db.WithContext(ctx).
		Preload("Tags").
		Where("author_id = ?", authorID).
		Order("created_at desc").
		Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

func insertChildren(tx *gorm.DB, recipeID uuid.UUID, ingredients []*entities.Ingredient, steps []*entities.Step, tagNames []string) error {
	if len(ingredients) > 0 {
		if err := tx.Create(&ingredients).Error; err != nil {
			return err
		}
	}
	if len(steps) > 0 {
		if err := tx.Create(&steps).Error; err != nil {
			return err
		}
	}

	// Tag names arrive normalized but not deduplicated; each one runs its
	// own lookup/insert/link. Repeated links collapse on the composite key.
	// Lookup-or-create is not upsert-atomic, so two concurrent callers
	// inventing the same tag race on the unique name index.
	for _, name := range tagNames {
		var tag entities.Tag
		err := tx.Where("name = ?", name).First(&tag).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			tag = entities.Tag{ID: uuid.New(), Name: name}
			if err := tx.Create(&tag).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		link := entities.RecipeTag{RecipeID: recipeID, TagID: tag.ID}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&link).Error; err != nil {
			return err
		}
	}
	return nil
}
