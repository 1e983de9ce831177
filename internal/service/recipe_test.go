package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/savorly/savorly-server/internal/domain"
	domainerrors "github.com/savorly/savorly-server/internal/errors"
)

func TestCreateRecipeProjection(t *testing.T) {
	svcs, _ := setupTestServices(t)

	author := registerTestUser(t, svcs, "alice")
	tagID, flourID, _ := seedTestCatalog(t, svcs)

	view := createTestRecipe(t, svcs, author.ID, tagID, flourID)

	assert.Equal(t, "Pancakes", view.Name)
	assert.Equal(t, author.ID, view.Author.ID)
	assert.Equal(t, "alice", view.Author.Username)
	require.Len(t, view.Tags, 1)
	assert.Equal(t, "dinner", view.Tags[0].Slug)
	require.Len(t, view.Ingredients, 1)
	assert.Equal(t, "flour", view.Ingredients[0].Name)
	assert.Equal(t, "g", view.Ingredients[0].MeasurementUnit)
	assert.Equal(t, 200, view.Ingredients[0].Amount)
	// The author has not favorited their own recipe.
	assert.False(t, view.IsFavorited)
	assert.False(t, view.IsInShoppingCart)
}

func TestCreateRecipeValidation(t *testing.T) {
	svcs, _ := setupTestServices(t)
	ctx := context.Background()

	author := registerTestUser(t, svcs, "alice")
	tagID, flourID, _ := seedTestCatalog(t, svcs)

	base := func() WriteRecipeRequest {
		return WriteRecipeRequest{
			Name:        "Pancakes",
			Text:        "Mix and fry.",
			CookingTime: 20,
			TagIDs:      []string{tagID},
			Ingredients: []IngredientLineRequest{{ID: flourID, Amount: 200}},
		}
	}

	cases := []struct {
		name   string
		mutate func(*WriteRecipeRequest)
	}{
		{"no tags", func(r *WriteRecipeRequest) { r.TagIDs = nil }},
		{"duplicate tags", func(r *WriteRecipeRequest) { r.TagIDs = []string{tagID, tagID} }},
		{"unknown tag", func(r *WriteRecipeRequest) { r.TagIDs = []string{"tag-ghost"} }},
		{"no ingredients", func(r *WriteRecipeRequest) { r.Ingredients = nil }},
		{"duplicate ingredients", func(r *WriteRecipeRequest) {
			r.Ingredients = []IngredientLineRequest{{ID: flourID, Amount: 1}, {ID: flourID, Amount: 2}}
		}},
		{"unknown ingredient", func(r *WriteRecipeRequest) {
			r.Ingredients = []IngredientLineRequest{{ID: "ing-ghost", Amount: 1}}
		}},
		{"zero amount", func(r *WriteRecipeRequest) {
			r.Ingredients = []IngredientLineRequest{{ID: flourID, Amount: 0}}
		}},
		{"negative amount", func(r *WriteRecipeRequest) {
			r.Ingredients = []IngredientLineRequest{{ID: flourID, Amount: -5}}
		}},
		{"zero cooking time", func(r *WriteRecipeRequest) { r.CookingTime = 0 }},
		{"empty name", func(r *WriteRecipeRequest) { r.Name = "" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := base()
			tc.mutate(&req)
			_, err := svcs.Recipe.Create(ctx, author.ID, req)
			assert.ErrorIs(t, err, domainerrors.ErrValidation)
		})
	}

	// Nothing was persisted by the failed attempts.
	page, err := svcs.Recipe.List(ctx, "", ListRecipesRequest{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 0, page.Total)
}

func TestUpdateRecipeAuthorOnly(t *testing.T) {
	svcs, _ := setupTestServices(t)
	ctx := context.Background()

	author := registerTestUser(t, svcs, "alice")
	other := registerTestUser(t, svcs, "bob")
	tagID, flourID, _ := seedTestCatalog(t, svcs)
	view := createTestRecipe(t, svcs, author.ID, tagID, flourID)

	req := WriteRecipeRequest{
		Name:        "Stolen Pancakes",
		Text:        "...",
		CookingTime: 5,
		TagIDs:      []string{tagID},
		Ingredients: []IngredientLineRequest{{ID: flourID, Amount: 1}},
	}

	_, err := svcs.Recipe.Update(ctx, other.ID, view.ID, req)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)

	err = svcs.Recipe.Delete(ctx, other.ID, view.ID)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)

	// The recipe is untouched.
	got, err := svcs.Recipe.Get(ctx, "", view.ID)
	require.NoError(t, err)
	assert.Equal(t, "Pancakes", got.Name)
}

func TestUpdateRecipeReplacesAggregate(t *testing.T) {
	svcs, _ := setupTestServices(t)
	ctx := context.Background()

	author := registerTestUser(t, svcs, "alice")
	tagID, flourID, milkID := seedTestCatalog(t, svcs)

	vegan, err := svcs.Tag.Create(ctx, CreateTagRequest{Name: "Vegan", Slug: "vegan"})
	require.NoError(t, err)

	view := createTestRecipe(t, svcs, author.ID, tagID, flourID)

	updated, err := svcs.Recipe.Update(ctx, author.ID, view.ID, WriteRecipeRequest{
		Name:        "Milk Pancakes",
		Text:        "Now with milk.",
		CookingTime: 25,
		TagIDs:      []string{vegan.ID},
		Ingredients: []IngredientLineRequest{{ID: milkID, Amount: 300}},
	})
	require.NoError(t, err)

	assert.Equal(t, "Milk Pancakes", updated.Name)
	require.Len(t, updated.Tags, 1)
	assert.Equal(t, "vegan", updated.Tags[0].Slug)
	require.Len(t, updated.Ingredients, 1)
	assert.Equal(t, "milk", updated.Ingredients[0].Name)
	// Author and identity survive the full replace.
	assert.Equal(t, author.ID, updated.Author.ID)
	assert.Equal(t, view.ID, updated.ID)
	assert.Equal(t, view.CreatedAt, updated.CreatedAt)
}

func TestRecipeViewerFlags(t *testing.T) {
	svcs, _ := setupTestServices(t)
	ctx := context.Background()

	author := registerTestUser(t, svcs, "alice")
	viewer := registerTestUser(t, svcs, "bob")
	tagID, flourID, _ := seedTestCatalog(t, svcs)
	view := createTestRecipe(t, svcs, author.ID, tagID, flourID)

	_, err := svcs.Relation.Add(ctx, domain.RelationFavorite, viewer.ID, view.ID)
	require.NoError(t, err)

	// The viewer who favorited sees the flag.
	got, err := svcs.Recipe.Get(ctx, viewer.ID, view.ID)
	require.NoError(t, err)
	assert.True(t, got.IsFavorited)
	assert.False(t, got.IsInShoppingCart)

	// Anyone else, and anonymous viewers, do not.
	asAuthor, err := svcs.Recipe.Get(ctx, author.ID, view.ID)
	require.NoError(t, err)
	assert.False(t, asAuthor.IsFavorited)

	anon, err := svcs.Recipe.Get(ctx, "", view.ID)
	require.NoError(t, err)
	assert.False(t, anon.IsFavorited)
}

func TestListRecipesAnonymousIgnoresViewerFilters(t *testing.T) {
	svcs, _ := setupTestServices(t)
	ctx := context.Background()

	author := registerTestUser(t, svcs, "alice")
	tagID, flourID, _ := seedTestCatalog(t, svcs)
	createTestRecipe(t, svcs, author.ID, tagID, flourID)

	page, err := svcs.Recipe.List(ctx, "", ListRecipesRequest{IsFavorited: true, Limit: 10})
	require.NoError(t, err)
	// The favorited filter needs a viewer; without one it is ignored.
	assert.Equal(t, 1, page.Total)
}

func TestDeleteRecipeGone(t *testing.T) {
	svcs, _ := setupTestServices(t)
	ctx := context.Background()

	author := registerTestUser(t, svcs, "alice")
	tagID, flourID, _ := seedTestCatalog(t, svcs)
	view := createTestRecipe(t, svcs, author.ID, tagID, flourID)

	require.NoError(t, svcs.Recipe.Delete(ctx, author.ID, view.ID))

	_, err := svcs.Recipe.Get(ctx, "", view.ID)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)

	err = svcs.Recipe.Delete(ctx, author.ID, view.ID)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}
