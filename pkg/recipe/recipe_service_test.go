package recipe_test

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"recipe-box/domain"
	"recipe-box/entities"
	"recipe-box/pkg/cache"
	"recipe-box/pkg/recipe"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&entities.User{},
		&entities.Recipe{},
		&entities.Ingredient{},
		&entities.Step{},
		&entities.Tag{},
		&entities.RecipeTag{},
	))
	return db
}

func newTestService(t *testing.T) (recipe.RecipeService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	readCache := cache.New(cache.NewMemoryStore(), time.Minute)
	service := recipe.NewRecipeService(recipe.NewRecipeRepository(db), readCache)
	return service, db
}

func createUser(t *testing.T, db *gorm.DB, name string) string {
	t.Helper()
	user := entities.User{
		ID:    uuid.New(),
		Name:  name,
		Email: strings.ToLower(name) + "@example.com",
	}
	require.NoError(t, db.Create(&user).Error)
	return user.ID.String()
}

func pancakesForm() domain.RecipeFormData {
	return domain.RecipeFormData{
		Title:           "Pancakes",
		Description:     "Weekend breakfast",
		Servings:        4,
		PrepTimeMinutes: 10,
		CookTimeMinutes: 15,
		Ingredients: []domain.IngredientInput{
			{Name: "Flour", Quantity: "2", Unit: "cups"},
		},
		Steps: []domain.StepInput{
			{Instruction: "Mix"},
			{Instruction: "Cook"},
		},
		Tags: []string{"Breakfast", "quick"},
	}
}

func TestCreateRecipeRoundtrip(t *testing.T) {
	service, db := newTestService(t)
	userID := createUser(t, db, "Alice")
	ctx := context.Background()

	recipeID, err := service.CreateRecipe(ctx, pancakesForm(), userID)
	require.NoError(t, err)

	detail, err := service.GetRecipe(ctx, recipeID, userID)
	require.NoError(t, err)
	require.NotNil(t, detail)

	assert.Equal(t, "Pancakes", detail.Title)
	assert.Equal(t, "Weekend breakfast", detail.Description)
	assert.Equal(t, 4, detail.Servings)
	assert.Equal(t, 10, detail.PrepTimeMinutes)
	assert.Equal(t, 15, detail.CookTimeMinutes)

	require.Len(t, detail.Ingredients, 1)
	assert.Equal(t, "Flour", detail.Ingredients[0].Name)
	assert.Equal(t, "2", detail.Ingredients[0].Quantity)
	assert.Equal(t, "cups", detail.Ingredients[0].Unit)

	require.Len(t, detail.Steps, 2)
	assert.Equal(t, 1, detail.Steps[0].Order)
	assert.Equal(t, "Mix", detail.Steps[0].Instruction)
	assert.Equal(t, 2, detail.Steps[1].Order)
	assert.Equal(t, "Cook", detail.Steps[1].Instruction)

	assert.ElementsMatch(t, []string{"breakfast", "quick"}, detail.Tags)
}

func TestCreateRecipeRequiresTitle(t *testing.T) {
	service, db := newTestService(t)
	userID := createUser(t, db, "Alice")

	form := pancakesForm()
	form.Title = "   "
	_, err := service.CreateRecipe(context.Background(), form, userID)
	assert.ErrorIs(t, err, domain.ErrTitleRequired)
}

func TestCreateRecipeNormalizesBlankOptionals(t *testing.T) {
	service, db := newTestService(t)
	userID := createUser(t, db, "Alice")

	form := domain.RecipeFormData{Title: "Toast"}
	recipeID, err := service.CreateRecipe(context.Background(), form, userID)
	require.NoError(t, err)

	var stored entities.Recipe
	require.NoError(t, db.First(&stored, "id = ?", recipeID).Error)
	assert.Nil(t, stored.Description)
	assert.Nil(t, stored.Servings)
	assert.Nil(t, stored.PrepTimeMinutes)
	assert.Nil(t, stored.CookTimeMinutes)
	assert.Nil(t, stored.ImageURL)
}

func TestDuplicateTagNamesShareOneTagRow(t *testing.T) {
	service, db := newTestService(t)
	userID := createUser(t, db, "Alice")

	form := pancakesForm()
	form.Tags = []string{"Vegan", "vegan", " VEGAN "}
	recipeID, err := service.CreateRecipe(context.Background(), form, userID)
	require.NoError(t, err)

	var tagCount int64
	require.NoError(t, db.Model(&entities.Tag{}).Count(&tagCount).Error)
	assert.EqualValues(t, 1, tagCount)

	var tag entities.Tag
	require.NoError(t, db.First(&tag).Error)
	assert.Equal(t, "vegan", tag.Name)

	detail, err := service.GetRecipe(context.Background(), recipeID, userID)
	require.NoError(t, err)
	require.NotNil(t, detail)
	assert.Equal(t, []string{"vegan"}, detail.Tags)
}

func TestTagsSharedAcrossUsers(t *testing.T) {
	service, db := newTestService(t)
	user1 := createUser(t, db, "Alice")
	user2 := createUser(t, db, "Bob")
	ctx := context.Background()

	form := pancakesForm()
	form.Tags = []string{"Vegan"}
	_, err := service.CreateRecipe(ctx, form, user1)
	require.NoError(t, err)

	form.Tags = []string{" vegan "}
	_, err = service.CreateRecipe(ctx, form, user2)
	require.NoError(t, err)

	var tagCount int64
	require.NoError(t, db.Model(&entities.Tag{}).Where("name = ?", "vegan").Count(&tagCount).Error)
	assert.EqualValues(t, 1, tagCount)
}

func TestGetRecipeHidesForeignRecipes(t *testing.T) {
	service, db := newTestService(t)
	owner := createUser(t, db, "Alice")
	intruder := createUser(t, db, "Bob")
	ctx := context.Background()

	recipeID, err := service.CreateRecipe(ctx, pancakesForm(), owner)
	require.NoError(t, err)

	detail, err := service.GetRecipe(ctx, recipeID, intruder)
	require.NoError(t, err)
	assert.Nil(t, detail)

	listing, err := service.GetUserRecipes(ctx, intruder)
	require.NoError(t, err)
	assert.Empty(t, listing)
}

func TestMutationsByNonOwnerFail(t *testing.T) {
	service, db := newTestService(t)
	owner := createUser(t, db, "Alice")
	intruder := createUser(t, db, "Bob")
	ctx := context.Background()

	recipeID, err := service.CreateRecipe(ctx, pancakesForm(), owner)
	require.NoError(t, err)

	err = service.UpdateRecipe(ctx, recipeID, pancakesForm(), intruder)
	assert.ErrorIs(t, err, domain.ErrRecipeNotPermittedEdit)

	err = service.DeleteRecipe(ctx, recipeID, intruder)
	assert.ErrorIs(t, err, domain.ErrRecipeNotPermittedDelete)

	var stored entities.Recipe
	require.NoError(t, db.Unscoped().First(&stored, "id = ?", recipeID).Error)
	assert.False(t, stored.DeletedAt.Valid, "failed delete must not touch deleted_at")
}

func TestUpdateRecipeReplacesChildren(t *testing.T) {
	service, db := newTestService(t)
	userID := createUser(t, db, "Alice")
	ctx := context.Background()

	recipeID, err := service.CreateRecipe(ctx, pancakesForm(), userID)
	require.NoError(t, err)

	updated := domain.RecipeFormData{
		Title: "Savory Pancakes",
		Ingredients: []domain.IngredientInput{
			{Name: "Flour", Quantity: "2", Unit: "cups"},
			{Name: "Chives"},
		},
		Steps: []domain.StepInput{
			{Instruction: "Whisk"},
			{Instruction: "Fry"},
			{Instruction: "Serve"},
		},
		Tags: []string{"savory"},
	}
	require.NoError(t, service.UpdateRecipe(ctx, recipeID, updated, userID))

	detail, err := service.GetRecipe(ctx, recipeID, userID)
	require.NoError(t, err)
	require.NotNil(t, detail)

	assert.Equal(t, "Savory Pancakes", detail.Title)
	assert.Len(t, detail.Ingredients, 2)
	require.Len(t, detail.Steps, 3)
	assert.Equal(t, "Whisk", detail.Steps[0].Instruction)
	assert.Equal(t, 3, detail.Steps[2].Order)
	assert.Equal(t, []string{"savory"}, detail.Tags)
}

func TestUpdateRecipeIdempotent(t *testing.T) {
	service, db := newTestService(t)
	userID := createUser(t, db, "Alice")
	ctx := context.Background()

	recipeID, err := service.CreateRecipe(ctx, pancakesForm(), userID)
	require.NoError(t, err)

	payload := pancakesForm()
	require.NoError(t, service.UpdateRecipe(ctx, recipeID, payload, userID))
	require.NoError(t, service.UpdateRecipe(ctx, recipeID, payload, userID))

	var ingredientCount, stepCount, linkCount int64
	require.NoError(t, db.Model(&entities.Ingredient{}).Where("recipe_id = ?", recipeID).Count(&ingredientCount).Error)
	require.NoError(t, db.Model(&entities.Step{}).Where("recipe_id = ?", recipeID).Count(&stepCount).Error)
	require.NoError(t, db.Model(&entities.RecipeTag{}).Where("recipe_id = ?", recipeID).Count(&linkCount).Error)

	assert.EqualValues(t, 1, ingredientCount)
	assert.EqualValues(t, 2, stepCount)
	assert.EqualValues(t, 2, linkCount)
}

func TestDeleteRecipeSoftDeletes(t *testing.T) {
	service, db := newTestService(t)
	userID := createUser(t, db, "Alice")
	ctx := context.Background()

	recipeID, err := service.CreateRecipe(ctx, pancakesForm(), userID)
	require.NoError(t, err)
	require.NoError(t, service.DeleteRecipe(ctx, recipeID, userID))

	// Row survives, reads no longer see it.
	var stored entities.Recipe
	require.NoError(t, db.Unscoped().First(&stored, "id = ?", recipeID).Error)
	assert.True(t, stored.DeletedAt.Valid)

	detail, err := service.GetRecipe(ctx, recipeID, userID)
	require.NoError(t, err)
	assert.Nil(t, detail)

	listing, err := service.GetUserRecipes(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, listing)

	// Children are orphaned in storage, not cascaded.
	var stepCount int64
	require.NoError(t, db.Model(&entities.Step{}).Where("recipe_id = ?", recipeID).Count(&stepCount).Error)
	assert.EqualValues(t, 2, stepCount)
}

func TestDeleteRecipeIdempotentInEffect(t *testing.T) {
	service, db := newTestService(t)
	userID := createUser(t, db, "Alice")
	ctx := context.Background()

	recipeID, err := service.CreateRecipe(ctx, pancakesForm(), userID)
	require.NoError(t, err)
	require.NoError(t, service.DeleteRecipe(ctx, recipeID, userID))

	err = service.DeleteRecipe(ctx, recipeID, userID)
	assert.ErrorIs(t, err, domain.ErrRecipeNotPermittedDelete)

	err = service.DeleteRecipe(ctx, uuid.NewString(), userID)
	assert.ErrorIs(t, err, domain.ErrRecipeNotPermittedDelete)
}

func TestUserRecipesNewestFirst(t *testing.T) {
	service, db := newTestService(t)
	userID := createUser(t, db, "Alice")
	ctx := context.Background()

	first := pancakesForm()
	first.Title = "First"
	_, err := service.CreateRecipe(ctx, first, userID)
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	second := pancakesForm()
	second.Title = "Second"
	_, err = service.CreateRecipe(ctx, second, userID)
	require.NoError(t, err)

	listing, err := service.GetUserRecipes(ctx, userID)
	require.NoError(t, err)
	require.Len(t, listing, 2)
	assert.Equal(t, "Second", listing[0].Title)
	assert.Equal(t, "First", listing[1].Title)
	assert.ElementsMatch(t, []string{"breakfast", "quick"}, listing[0].Tags)
}

func TestMutationsInvalidateCachedReads(t *testing.T) {
	service, db := newTestService(t)
	userID := createUser(t, db, "Alice")
	ctx := context.Background()

	// Prime the list cache with an empty result.
	listing, err := service.GetUserRecipes(ctx, userID)
	require.NoError(t, err)
	require.Empty(t, listing)

	recipeID, err := service.CreateRecipe(ctx, pancakesForm(), userID)
	require.NoError(t, err)

	listing, err = service.GetUserRecipes(ctx, userID)
	require.NoError(t, err)
	require.Len(t, listing, 1, "create must invalidate the list cache")

	// Prime the detail cache, then update through the service.
	detail, err := service.GetRecipe(ctx, recipeID, userID)
	require.NoError(t, err)
	require.NotNil(t, detail)

	updated := pancakesForm()
	updated.Title = "Blueberry Pancakes"
	require.NoError(t, service.UpdateRecipe(ctx, recipeID, updated, userID))

	detail, err = service.GetRecipe(ctx, recipeID, userID)
	require.NoError(t, err)
	require.NotNil(t, detail)
	assert.Equal(t, "Blueberry Pancakes", detail.Title, "update must invalidate the detail cache")

	listing, err = service.GetUserRecipes(ctx, userID)
	require.NoError(t, err)
	require.Len(t, listing, 1)
	assert.Equal(t, "Blueberry Pancakes", listing[0].Title)

	require.NoError(t, service.DeleteRecipe(ctx, recipeID, userID))

	detail, err = service.GetRecipe(ctx, recipeID, userID)
	require.NoError(t, err)
	assert.Nil(t, detail, "delete must invalidate the detail cache")

	listing, err = service.GetUserRecipes(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, listing, "delete must invalidate the list cache")
}
